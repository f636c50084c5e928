package parse

import (
	"fmt"
	"io"

	"github.com/signadot/wrl2/debug"
	"github.com/signadot/wrl2/scene"
	"github.com/signadot/wrl2/token"
)

// Use is a USE site.  Target is NoHandle if the name did not resolve.
type Use struct {
	Name   string
	Pos    *token.Pos
	Holder scene.Handle
	Target scene.Handle
}

type Result struct {
	Graph       *scene.Graph
	Root        scene.Handle
	Header      string
	Diagnostics []*Diagnostic

	// filled in with Positions(true)
	Doc       *token.PosDoc
	Positions map[scene.Handle]*token.Pos
	Names     map[scene.Handle]*token.Pos
	Uses      []*Use
}

func ParseReader(r io.Reader, opts ...ParseOption) (*Result, error) {
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(d, opts...)
}

// Parse reads the VRML97 document d.  On an error after the header was
// accepted, the partial Result is returned along with it.
func Parse(d []byte, opts ...ParseOption) (*Result, error) {
	pOpts := newOpts(opts)
	src, err := token.NewSource(d, pOpts.tokenOpts...)
	if err != nil {
		return nil, err
	}
	g := scene.NewGraph(append([]scene.GraphOption{scene.WithLogger(pOpts.log)}, pOpts.graphOpts...)...)
	root, err := g.New(scene.BaseKind)
	if err != nil {
		return nil, err
	}
	res := &Result{Graph: g, Root: root, Header: src.Header()}
	if pOpts.positions {
		res.Doc = src.PosDoc()
		res.Positions = map[scene.Handle]*token.Pos{}
		res.Names = map[scene.Handle]*token.Pos{}
	}
	p := &parser{src: src, g: g, opts: pOpts, res: res, protos: map[string]bool{}}
	if err := p.doc(root); err != nil {
		return res, err
	}
	if err := p.resolvePending(); err != nil {
		return res, err
	}
	return res, nil
}

type pendingUse struct {
	holder scene.Handle
	field  string
	use    *Use
}

type parser struct {
	src     *token.Source
	g       *scene.Graph
	opts    *parseOpts
	res     *Result
	protos  map[string]bool
	pending []pendingUse
}

func (p *parser) diag(err error, pos *token.Pos) error {
	d := &Diagnostic{Err: err, Pos: pos}
	p.opts.log.Debug("diagnostic", "err", err, "pos", pos)
	if p.opts.strict {
		return d
	}
	p.res.Diagnostics = append(p.res.Diagnostics, d)
	return nil
}

// next returns the next token, reporting the end of the document as
// missing what.
func (p *parser) next(what string) (*token.Token, error) {
	t, err := p.src.Next()
	if err == io.EOF {
		return nil, syntaxErr(token.ExpectedErr(what, p.src.Pos()))
	}
	return t, err
}

func (p *parser) word(what string) (*token.Token, error) {
	t, err := p.next(what)
	if err != nil {
		return nil, err
	}
	if t.Type != token.TWord {
		return nil, syntaxErr(token.ExpectedErr(what, t.Pos))
	}
	return t, nil
}

func (p *parser) doc(root scene.Handle) error {
	for {
		if _, err := p.src.Peek(); err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}
		if err := p.statement(root, "children"); err != nil {
			return err
		}
	}
}

// statement reads one statement into the slot field of holder.
func (p *parser) statement(holder scene.Handle, field string) error {
	t, err := p.next("statement")
	if err != nil {
		return err
	}
	if t.Type != token.TWord {
		return syntaxErr(token.UnexpectedErr(fmt.Sprintf("%q", t.Bytes), t.Pos))
	}
	if ok, err := p.skipDecl(t); ok {
		return err
	}
	switch {
	case t.Is("NULL"):
		return nil
	case t.Is("USE"):
		name, err := p.word("USE name")
		if err != nil {
			return err
		}
		return p.use(holder, field, name)
	case t.Is("DEF"):
		name, err := p.word("DEF name")
		if err != nil {
			return err
		}
		kind, err := p.word("node type")
		if err != nil {
			return err
		}
		return p.node(holder, field, t.Pos, name, kind)
	}
	return p.node(holder, field, t.Pos, nil, t)
}

func (p *parser) node(holder scene.Handle, field string, start *token.Pos, name, kindTok *token.Token) error {
	kindName := kindTok.String()
	k := scene.KindOf(kindName)
	if !k.Supported() {
		switch {
		case k != scene.InvalidKind:
			p.opts.log.Debug("skipping unsupported node", "kind", k, "pos", kindTok.Pos)
		case p.protos[kindName]:
			p.opts.log.Debug("skipping PROTO instance", "proto", kindName, "pos", kindTok.Pos)
		default:
			if err := p.diag(fmt.Errorf("%w %q", ErrUnknownKind, kindName), kindTok.Pos); err != nil {
				return err
			}
		}
		return p.skipBlock(token.TLCurl, "{")
	}
	h, err := p.g.New(k)
	if err != nil {
		return err
	}
	if debug.Parse() {
		debug.Logf("node %s %s in %s.%s\n", k, h, holder, field)
	}
	if name != nil {
		if err := p.g.SetName(h, name.String()); err != nil {
			if err := p.diag(err, name.Pos); err != nil {
				p.g.Destroy(h)
				return err
			}
		}
	}
	if err := p.g.AddChildField(holder, field, h); err != nil {
		p.g.Destroy(h)
		if err := p.diag(err, kindTok.Pos); err != nil {
			return err
		}
		return p.skipBlock(token.TLCurl, "{")
	}
	if p.res.Positions != nil {
		p.res.Positions[h] = start
		if name != nil {
			p.res.Names[h] = name.Pos
		}
	}
	return p.body(h, k)
}

func (p *parser) body(h scene.Handle, k scene.Kind) error {
	t, err := p.next("{")
	if err != nil {
		return err
	}
	if t.Type != token.TLCurl {
		return syntaxErr(token.ExpectedErr("{", t.Pos))
	}
	for {
		t, err := p.next("}")
		if err != nil {
			return err
		}
		if t.Type == token.TRCurl {
			return nil
		}
		if t.Type != token.TWord {
			return syntaxErr(token.ExpectedErr("field name", t.Pos))
		}
		if ok, err := p.skipDecl(t); ok {
			if err != nil {
				return err
			}
			continue
		}
		fname := t.String()
		if slot, ok := scene.FieldSlot(k, fname); ok {
			if err := p.slotValue(h, slot); err != nil {
				return err
			}
			continue
		}
		if scene.IsField(k, fname) {
			f, err := p.scalarValue(k)
			if err != nil {
				return err
			}
			f.Name = fname
			if err := p.g.SetField(h, f); err != nil {
				if err := p.diag(err, t.Pos); err != nil {
					return err
				}
			}
			continue
		}
		if err := p.diag(fmt.Errorf("%w: %s has no field %q", scene.ErrUnknownField, k, fname), t.Pos); err != nil {
			return err
		}
		if err := p.skipValue(k); err != nil {
			return err
		}
	}
}

func (p *parser) slotValue(h scene.Handle, slot scene.Slot) error {
	t, err := p.src.Peek()
	if err == io.EOF {
		return syntaxErr(token.ExpectedErr(slot.Field+" value", p.src.Pos()))
	}
	if err != nil {
		return err
	}
	if t.Type != token.TLSquare {
		return p.statement(h, slot.Field)
	}
	p.src.Next()
	for {
		t, err := p.src.Peek()
		if err == io.EOF {
			return syntaxErr(token.ExpectedErr("]", p.src.Pos()))
		}
		if err != nil {
			return err
		}
		if t.Type == token.TRSquare {
			p.src.Next()
			return nil
		}
		if err := p.statement(h, slot.Field); err != nil {
			return err
		}
	}
}

// scalarValue reads either one bracketed list or the run of words and
// strings up to the next field name of k.  Values keep their raw text.
func (p *parser) scalarValue(k scene.Kind) (scene.Field, error) {
	var res scene.Field
	t, err := p.src.Peek()
	if err == io.EOF {
		return res, syntaxErr(token.ExpectedErr("value", p.src.Pos()))
	}
	if err != nil {
		return res, err
	}
	if t.Type == token.TLSquare {
		p.src.Next()
		res.List = true
		for {
			t, err := p.next("]")
			if err != nil {
				return res, err
			}
			switch t.Type {
			case token.TRSquare:
				return res, nil
			case token.TWord, token.TString:
				res.Values = append(res.Values, string(t.Bytes))
			default:
				return res, syntaxErr(token.UnexpectedErr(fmt.Sprintf("%q", t.Bytes), t.Pos))
			}
		}
	}
	for {
		t, err := p.src.Peek()
		if err == io.EOF {
			return res, nil
		}
		if err != nil {
			return res, err
		}
		if t.Type != token.TWord && t.Type != token.TString {
			return res, nil
		}
		if t.Type == token.TWord && p.endsValue(k, t) {
			return res, nil
		}
		p.src.Next()
		res.Values = append(res.Values, string(t.Bytes))
	}
}

func (p *parser) endsValue(k scene.Kind, t *token.Token) bool {
	return scene.IsField(k, t.String()) || t.Is("ROUTE") || t.Is("PROTO") || t.Is("EXTERNPROTO")
}

// skipValue drops the value of a field which k does not have, including
// any nodes it holds.
func (p *parser) skipValue(k scene.Kind) error {
	for {
		t, err := p.src.Peek()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		switch t.Type {
		case token.TRCurl, token.TRSquare:
			return nil
		case token.TLCurl:
			if err := p.skipBlock(token.TLCurl, "{"); err != nil {
				return err
			}
			continue
		case token.TLSquare:
			if err := p.skipBlock(token.TLSquare, "["); err != nil {
				return err
			}
			continue
		case token.TWord:
			if p.endsValue(k, t) {
				return nil
			}
		}
		p.src.Next()
	}
}

func (p *parser) use(holder scene.Handle, field string, name *token.Token) error {
	u := &Use{Name: name.String(), Pos: name.Pos, Holder: holder}
	if p.res.Positions != nil {
		p.res.Uses = append(p.res.Uses, u)
	}
	target := p.g.Find(holder, u.Name, scene.NoHandle)
	if target.IsZero() {
		if p.opts.forwardRefs {
			p.pending = append(p.pending, pendingUse{holder: holder, field: field, use: u})
			return nil
		}
		return p.diag(fmt.Errorf("%w %q", ErrUnresolved, u.Name), name.Pos)
	}
	return p.link(holder, field, target, u)
}

func (p *parser) link(holder scene.Handle, field string, target scene.Handle, u *Use) error {
	if err := p.g.AddRefField(holder, field, target); err != nil {
		return p.diag(err, u.Pos)
	}
	u.Target = target
	return nil
}

func (p *parser) resolvePending() error {
	pending := p.pending
	p.pending = nil
	for _, pu := range pending {
		if !p.g.Valid(pu.holder) {
			continue
		}
		target := p.g.Find(pu.holder, pu.use.Name, scene.NoHandle)
		if target.IsZero() {
			if err := p.diag(fmt.Errorf("%w %q", ErrUnresolved, pu.use.Name), pu.use.Pos); err != nil {
				return err
			}
			continue
		}
		if err := p.link(pu.holder, pu.field, target, pu.use); err != nil {
			return err
		}
	}
	return nil
}

// skipDecl skips a PROTO, EXTERNPROTO or ROUTE statement whose keyword t
// has been read.  It reports false if t starts none of them.
func (p *parser) skipDecl(t *token.Token) (bool, error) {
	switch {
	case t.Is("PROTO"):
		return true, p.skipProto(false)
	case t.Is("EXTERNPROTO"):
		return true, p.skipProto(true)
	case t.Is("ROUTE"):
		return true, p.skipRoute(t)
	}
	return false, nil
}

func (p *parser) skipProto(external bool) error {
	name, err := p.word("PROTO name")
	if err != nil {
		return err
	}
	p.protos[name.String()] = true
	p.opts.log.Debug("skipping PROTO", "name", name.String(), "external", external, "pos", name.Pos)
	if err := p.skipBlock(token.TLSquare, "["); err != nil {
		return err
	}
	if !external {
		return p.skipBlock(token.TLCurl, "{")
	}
	t, err := p.src.Peek()
	if err == io.EOF {
		return syntaxErr(token.ExpectedErr("EXTERNPROTO url", p.src.Pos()))
	}
	if err != nil {
		return err
	}
	if t.Type == token.TString {
		p.src.Next()
		return nil
	}
	return p.skipBlock(token.TLSquare, "[")
}

func (p *parser) skipRoute(t *token.Token) error {
	from, err := p.word("ROUTE source")
	if err != nil {
		return err
	}
	to, err := p.word("TO")
	if err != nil {
		return err
	}
	if !to.Is("TO") {
		return syntaxErr(token.ExpectedErr("TO", to.Pos))
	}
	dst, err := p.word("ROUTE destination")
	if err != nil {
		return err
	}
	p.opts.log.Debug("skipping ROUTE", "from", from.String(), "to", dst.String(), "pos", t.Pos)
	return nil
}

// skipBlock skips a balanced {} or [] block which must come next.
func (p *parser) skipBlock(open token.TokenType, what string) error {
	t, err := p.next(what)
	if err != nil {
		return err
	}
	if t.Type != open {
		return syntaxErr(token.ExpectedErr(what, t.Pos))
	}
	var stack []token.TokenType
	stack = append(stack, open)
	for len(stack) > 0 {
		t, err := p.next(closer(stack[len(stack)-1]))
		if err != nil {
			return err
		}
		switch t.Type {
		case token.TLCurl, token.TLSquare:
			stack = append(stack, t.Type)
		case token.TRCurl, token.TRSquare:
			if want := closer(stack[len(stack)-1]); string(t.Bytes) != want {
				return syntaxErr(token.ExpectedErr(want, t.Pos))
			}
			stack = stack[:len(stack)-1]
		}
	}
	return nil
}

func closer(open token.TokenType) string {
	if open == token.TLSquare {
		return "]"
	}
	return "}"
}
