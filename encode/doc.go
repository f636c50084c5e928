// Package encode writes scene graphs out.
//
// # Usage
//
//	// indented outline
//	err := encode.Encode(g, root, os.Stdout)
//
//	// a VRML97 document which parses back to the same graph
//	err := encode.Encode(g, root, w, encode.EncodeFormat(format.VRMLFormat))
//
// JSON and YAML output go through [Build], which copies a subtree into
// plain [Node] values.
//
// # Related Packages
//
//   - github.com/signadot/wrl2/format - output formats
//   - github.com/signadot/wrl2/scene - the graphs written
package encode
