package token

import (
	"errors"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type tokTest struct {
	in   string
	want []string
}

func words(toks []Token) []string {
	res := make([]string, len(toks))
	for i := range toks {
		res[i] = toks[i].Type.String() + ":" + toks[i].String()
	}
	return res
}

func TestTokenize(t *testing.T) {
	tests := []tokTest{
		{
			in:   "#VRML V2.0 utf8\nShape { }",
			want: []string{"TWord:Shape", "TLCurl:{", "TRCurl:}"},
		},
		{
			in: "#VRML V2.0 utf8 made by hand\n# comment\nDEF A Transform{children[USE B,USE C]}",
			want: []string{
				"TWord:DEF", "TWord:A", "TWord:Transform", "TLCurl:{",
				"TWord:children", "TLSquare:[", "TWord:USE", "TWord:B",
				"TWord:USE", "TWord:C", "TRSquare:]", "TRCurl:}",
			},
		},
		{
			in:   "#VRML V2.0 utf8\nurl [\"a b.wrl\", \"q\\\"x\\\\\"]",
			want: []string{"TWord:url", "TLSquare:[", "TString:a b.wrl", `TString:q"x\`, "TRSquare:]"},
		},
		{
			in:   "#VRML V2.0 utf8\r\nROUTE T.x TO S.y#tail",
			want: []string{"TWord:ROUTE", "TWord:T.x", "TWord:TO", "TWord:S.y"},
		},
		{
			in:   "#VRML V2.0 utf8\n1.5,-2e3\t0x1F",
			want: []string{"TWord:1.5", "TWord:-2e3", "TWord:0x1F"},
		},
	}
	for _, tt := range tests {
		toks, err := Tokenize([]byte(tt.in))
		if err != nil {
			t.Errorf("%q: %v", tt.in, err)
			continue
		}
		if diff := cmp.Diff(tt.want, words(toks)); diff != "" {
			t.Errorf("%q: (-want +got)\n%s", tt.in, diff)
		}
	}
}

func TestHeader(t *testing.T) {
	tests := []struct {
		in   string
		opts []TokenOpt
		err  error
	}{
		{in: "#VRML V2.0 utf8", err: nil},
		{in: "#VRML V1.0 ascii\nSeparator {}", err: ErrVersion},
		{in: "Shape {}", err: ErrHeader},
		{in: "", err: ErrHeader},
		{in: "Shape {}", opts: []TokenOpt{NoHeader()}, err: nil},
		{in: "#VRML V1.0 ascii\n", opts: []TokenOpt{NoHeader()}, err: ErrVersion},
		{in: "#VRML V2.0 utf8\n\xff", err: ErrBadUTF8},
	}
	for _, tt := range tests {
		_, err := NewSource([]byte(tt.in), tt.opts...)
		if !errors.Is(err, tt.err) {
			t.Errorf("%q: got %v want %v", tt.in, err, tt.err)
		}
	}
}

func TestLatin1(t *testing.T) {
	in := []byte("#VRML V2.0 utf8\nWorldInfo { title \"caf\xe9\" }")
	if _, err := NewSource(in); !errors.Is(err, ErrBadUTF8) {
		t.Fatalf("latin1 accepted as utf8: %v", err)
	}
	toks, err := Tokenize(in, Latin1())
	if err != nil {
		t.Fatal(err)
	}
	if got := toks[3].String(); got != "café" {
		t.Errorf("got %q", got)
	}
}

func TestUnterminated(t *testing.T) {
	s, err := NewSource([]byte("#VRML V2.0 utf8\nurl \"abc"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Next(); err != nil {
		t.Fatal(err)
	}
	_, err = s.Next()
	if !errors.Is(err, ErrUnterminated) {
		t.Fatalf("got %v", err)
	}
	if !errors.Is(s.Err(), ErrUnterminated) {
		t.Errorf("error state not kept: %v", s.Err())
	}
	var te *TokenizeErr
	if !errors.As(err, &te) || te.Pos.Line() != 1 || te.Pos.Col() != 4 {
		t.Errorf("bad position: %v", err)
	}
}

func TestPeekAndPos(t *testing.T) {
	s, err := NewSource([]byte("#VRML V2.0 utf8 x\n  Group {\n}\n"))
	if err != nil {
		t.Fatal(err)
	}
	if s.Header() != "x" {
		t.Errorf("header %q", s.Header())
	}
	p := s.Pos()
	if l, c := p.LineCol(); l != 1 || c != 2 {
		t.Errorf("pos %d:%d", l, c)
	}
	a, _ := s.Peek()
	b, _ := s.Next()
	if a != b || !b.Is("Group") {
		t.Errorf("peek %v next %v", a, b)
	}
	s.Next()
	last, _ := s.Next()
	if last.Type != TRCurl || last.Pos.Line() != 2 {
		t.Errorf("last %s", last.Info())
	}
	if _, err := s.Next(); err != io.EOF {
		t.Errorf("got %v want EOF", err)
	}
}

func TestOffset(t *testing.T) {
	d := []byte("ab\ncde\n\nf")
	pd := NewPosDoc(d)
	for i := range d {
		l, c := pd.LineCol(i)
		if got := pd.Offset(l, c); got != i {
			t.Errorf("offset %d -> %d:%d -> %d", i, l, c, got)
		}
	}
	if got := pd.Offset(0, 99); got != 2 {
		t.Errorf("clamp got %d", got)
	}
	if got := pd.Offset(9, 0); got != len(d) {
		t.Errorf("past end got %d", got)
	}
}

func TestQuote(t *testing.T) {
	for _, s := range []string{"", "a", `a"b`, `c:\dir\`} {
		if got := QuotedToString([]byte(Quote(s))); got != s {
			t.Errorf("%q -> %q", s, got)
		}
	}
}
