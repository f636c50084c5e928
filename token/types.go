package token

import (
	"fmt"
	"strings"
)

type TokenType int

const (
	TWord TokenType = iota
	TString
	TLCurl
	TRCurl
	TLSquare
	TRSquare
)

func (t TokenType) String() string {
	return map[TokenType]string{
		TWord:    "TWord",
		TString:  "TString",
		TLCurl:   "TLCurl",
		TRCurl:   "TRCurl",
		TLSquare: "TLSquare",
		TRSquare: "TRSquare",
	}[t]
}

type Token struct {
	Type  TokenType
	Pos   *Pos
	Bytes []byte
}

func (t *Token) Info() string {
	return fmt.Sprintf("%s %s", t.Type, t.Pos.String())
}

// Is reports whether t is the word w.
func (t *Token) Is(w string) bool {
	return t.Type == TWord && string(t.Bytes) == w
}

// String returns the text of t with quoted strings unescaped.
func (t *Token) String() string {
	if t.Type != TString {
		return string(t.Bytes)
	}
	return QuotedToString(t.Bytes)
}

// QuotedToString strips the quotes of a VRML string and resolves its `\"`
// and `\\` escapes.
func QuotedToString(d []byte) string {
	if len(d) >= 2 && d[0] == '"' && d[len(d)-1] == '"' {
		d = d[1 : len(d)-1]
	}
	var b strings.Builder
	b.Grow(len(d))
	for i := 0; i < len(d); i++ {
		if d[i] == '\\' && i+1 < len(d) {
			i++
		}
		b.WriteByte(d[i])
	}
	return b.String()
}

// Quote is the inverse of QuotedToString.
func Quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		if s[i] == '"' || s[i] == '\\' {
			b.WriteByte('\\')
		}
		b.WriteByte(s[i])
	}
	b.WriteByte('"')
	return b.String()
}
