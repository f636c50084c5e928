// Package libdiff compares encoded scene graphs.
//
// # Usage
//
//	// line diff of two outlines
//	d := libdiff.Lines(encode.MustString(g1, r1), encode.MustString(g2, r2))
//	fmt.Print(d)
//
//	// RFC 7386 merge patch between JSON encodings, and its application
//	patch, err := libdiff.MergePatch(fromJSON, toJSON)
//	doc, err := libdiff.ApplyMergePatch(fromJSON, patch)
//
// # Related Packages
//
//   - github.com/signadot/wrl2/encode - produces the compared text
package libdiff
