package token

import "github.com/signadot/wrl2/debug"

// logToken traces t on stderr, with its line and column.
func logToken(t *Token) {
	line, col := t.Pos.LineCol()
	debug.Logf("token %d:%d %s `%s`\n", line+1, col+1, t.Type, t.Bytes)
}
