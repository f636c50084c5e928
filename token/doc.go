// Package token splits VRML97 documents into words, brackets and quoted
// strings.
//
// [NewSource] validates the `#VRML V2.0 utf8` header and returns a
// [Source] from which tokens are read one at a time.  Field values are not
// decoded: a number is a word like any other.
package token
