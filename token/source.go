package token

import (
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/signadot/wrl2/debug"
	"golang.org/x/text/encoding/charmap"
)

const header = "#VRML V2.0 utf8"

// Source reads tokens from a whole document.  After the first error every
// call to Next returns that error; Err reports it.
type Source struct {
	d      []byte
	pd     *PosDoc
	i      int
	peeked *Token
	err    error
	header string
}

// NewSource validates and prepares d for reading.  Unless NoHeader is
// given, the first line must be the VRML97 header; anything on it after
// `utf8` is kept as the header comment.
func NewSource(d []byte, opts ...TokenOpt) (*Source, error) {
	opt := &tokenOpts{}
	for _, o := range opts {
		o(opt)
	}
	if opt.latin1 {
		dd, err := charmap.ISO8859_1.NewDecoder().Bytes(d)
		if err != nil {
			return nil, err
		}
		d = dd
	}
	s := &Source{d: d, pd: NewPosDoc(d)}
	if i := firstBadUTF8(d); i >= 0 {
		return nil, NewTokenizeErr(ErrBadUTF8, s.pd.Pos(i))
	}
	if opt.noHeader && !bytes.HasPrefix(d, []byte("#VRML")) {
		return s, nil
	}
	line, rest := d, []byte(nil)
	if j := bytes.IndexByte(d, '\n'); j >= 0 {
		line, rest = d[:j], d[j:]
	}
	line = bytes.TrimRight(line, "\r")
	switch {
	case bytes.HasPrefix(line, []byte(header)):
		s.header = string(bytes.TrimSpace(line[len(header):]))
	case bytes.HasPrefix(line, []byte("#VRML V")):
		return nil, NewTokenizeErr(fmt.Errorf("%w: %s", ErrVersion, line[len("#VRML "):]), s.pd.Pos(0))
	default:
		return nil, NewTokenizeErr(ErrHeader, s.pd.Pos(0))
	}
	s.i = len(d) - len(rest)
	return s, nil
}

func firstBadUTF8(d []byte) int {
	for i := 0; i < len(d); {
		r, n := utf8.DecodeRune(d[i:])
		if r == utf8.RuneError && n <= 1 {
			return i
		}
		i += n
	}
	return -1
}

// Header returns the comment following `utf8` on the header line.
func (s *Source) Header() string {
	return s.header
}

func (s *Source) PosDoc() *PosDoc {
	return s.pd
}

// Pos returns the position of the next token, or of the end of the
// document.
func (s *Source) Pos() *Pos {
	if s.peeked != nil {
		return s.peeked.Pos
	}
	s.skipSpace()
	return s.pd.Pos(s.i)
}

func (s *Source) Err() error {
	return s.err
}

// Peek returns the next token without consuming it.
func (s *Source) Peek() (*Token, error) {
	if s.peeked != nil {
		return s.peeked, nil
	}
	t, err := s.Next()
	if err != nil {
		return nil, err
	}
	s.peeked = t
	return t, nil
}

// Next returns the next token, or io.EOF at the end of the document.
func (s *Source) Next() (*Token, error) {
	if t := s.peeked; t != nil {
		s.peeked = nil
		return t, nil
	}
	if s.err != nil {
		return nil, s.err
	}
	t, err := s.next()
	if err != nil {
		s.err = err
		return nil, err
	}
	if debug.Tokens() {
		logToken(t)
	}
	return t, nil
}

func (s *Source) next() (*Token, error) {
	s.skipSpace()
	if s.i >= len(s.d) {
		return nil, io.EOF
	}
	start := s.i
	tok := func(tt TokenType, end int) *Token {
		s.i = end
		return &Token{Type: tt, Pos: s.pd.Pos(start), Bytes: s.d[start:end]}
	}
	switch s.d[start] {
	case '{':
		return tok(TLCurl, start+1), nil
	case '}':
		return tok(TRCurl, start+1), nil
	case '[':
		return tok(TLSquare, start+1), nil
	case ']':
		return tok(TRSquare, start+1), nil
	case '"':
		for j := start + 1; j < len(s.d); j++ {
			switch s.d[j] {
			case '\\':
				j++
			case '"':
				return tok(TString, j+1), nil
			}
		}
		return nil, NewTokenizeErr(fmt.Errorf("%w string", ErrUnterminated), s.pd.Pos(start))
	}
	j := start
	for j < len(s.d) && !isSpace(s.d[j]) && !isDelim(s.d[j]) {
		j++
	}
	return tok(TWord, j), nil
}

func (s *Source) skipSpace() {
	for s.i < len(s.d) {
		c := s.d[s.i]
		switch {
		case isSpace(c):
			s.i++
		case c == '#':
			j := bytes.IndexByte(s.d[s.i:], '\n')
			if j < 0 {
				s.i = len(s.d)
				return
			}
			s.i += j + 1
		default:
			return
		}
	}
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', ',':
		return true
	}
	return false
}

func isDelim(c byte) bool {
	switch c {
	case '{', '}', '[', ']', '"', '#':
		return true
	}
	return false
}

// Tokenize reads every token of d.
func Tokenize(d []byte, opts ...TokenOpt) ([]Token, error) {
	s, err := NewSource(d, opts...)
	if err != nil {
		return nil, err
	}
	var res []Token
	for {
		t, err := s.Next()
		if err == io.EOF {
			return res, nil
		}
		if err != nil {
			return res, err
		}
		res = append(res, *t)
	}
}
