package libdiff

import (
	"bytes"

	jsonpatch "github.com/evanphx/json-patch"
)

// MergePatch returns the RFC 7386 merge patch taking the JSON document
// from to to.  Equal documents yield `{}`.
func MergePatch(from, to []byte) ([]byte, error) {
	return jsonpatch.CreateMergePatch(from, to)
}

// ApplyMergePatch applies a merge patch to doc.
func ApplyMergePatch(doc, patch []byte) ([]byte, error) {
	return jsonpatch.MergePatch(doc, patch)
}

// ApplyPatch applies an RFC 6902 JSON patch to doc.
func ApplyPatch(doc, patch []byte) ([]byte, error) {
	ops, err := jsonpatch.DecodePatch(patch)
	if err != nil {
		return nil, err
	}
	return ops.Apply(doc)
}

// Empty reports whether a merge patch changes nothing.
func Empty(patch []byte) bool {
	return bytes.Equal(bytes.TrimSpace(patch), []byte("{}"))
}
