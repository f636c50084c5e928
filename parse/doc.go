// Package parse reads VRML97 documents into scene graphs.
//
// # Usage
//
//	res, err := parse.Parse(data, parse.ForwardRefs(true))
//	if err != nil {
//	    return err
//	}
//	for _, d := range res.Diagnostics {
//	    log.Println(d)
//	}
//	res.Graph.Walk(res.Root, visit)
//
// Top level statements become children of a Base root node.  Node types the
// scene package cannot construct, PROTO and EXTERNPROTO declarations and
// ROUTE statements are skipped.  Scalar field values are kept as raw words.
//
// Problems that leave the rest of the document readable, such as a USE of
// an unknown name or a node placed where its type is not allowed, are
// collected as [Diagnostic]s.  Malformed structure ends the read with an
// error wrapping [ErrParse].
//
// # Related Packages
//
//   - github.com/signadot/wrl2/scene - the graph being built
//   - github.com/signadot/wrl2/token - tokenization
package parse
