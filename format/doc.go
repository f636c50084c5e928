// Package format names the output formats of scene graphs.
package format
