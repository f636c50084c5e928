package scene

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/samber/lo"
	"github.com/signadot/wrl2/debug"
)

// Handle addresses a node of a Graph.  A handle stays comparable after its
// node is destroyed but no longer resolves, even if the slot is reused.
type Handle struct {
	slot uint32
	gen  uint32
}

// NoHandle is the zero Handle; it never resolves.
var NoHandle Handle

func (h Handle) IsZero() bool { return h.gen == 0 }

func (h Handle) String() string {
	if h.IsZero() {
		return "#none"
	}
	return fmt.Sprintf("#%d.%d", h.slot, h.gen)
}

// Field is the raw value of a scalar field: its words in document order.
// List is set for values written as a bracketed list.
type Field struct {
	Name   string
	Values []string
	List   bool
}

// String renders the value as it is written in a document.
func (f Field) String() string {
	s := strings.Join(f.Values, " ")
	if f.List {
		return "[ " + s + " ]"
	}
	return s
}

// Link is one entry of a node's slots.  Ref links do not own their
// target.
type Link struct {
	Field  string
	Target Handle
	Ref    bool
}

type link struct {
	slot   int
	target Handle
	ref    bool
}

type node struct {
	kind   Kind
	name   string
	parent Handle
	links  []link
	fields []Field
	// one entry per reference edge held by another node.
	backPtrs []Handle
}

type entry struct {
	gen uint32
	n   *node
}

// Callbacks observe destruction.  They are invoked after the graph lock is
// released, in protocol order, and may call back into the graph.
type Callbacks struct {
	OnDestroy   func(h Handle, k Kind, name string)
	OnUnlinkRef func(holder, target Handle)
}

type GraphOption func(*Graph)

func WithLogger(l *slog.Logger) GraphOption {
	return func(g *Graph) { g.log = l }
}

// Checked makes every mutation assert Check, panicking on violation.
func Checked(v bool) GraphOption {
	return func(g *Graph) { g.checked = v }
}

func WithCallbacks(cb Callbacks) GraphOption {
	return func(g *Graph) { g.cb = cb }
}

// Graph is an arena of scene nodes.  Nodes without a parent are owned by
// the graph itself.
type Graph struct {
	mu      sync.RWMutex
	entries []entry
	free    []uint32
	live    int

	log     *slog.Logger
	checked bool
	cb      Callbacks
	events  []event
}

type event struct {
	destroy bool
	a, b    Handle
	kind    Kind
	name    string
}

func NewGraph(opts ...GraphOption) *Graph {
	g := &Graph{
		log:     debug.Discard(),
		checked: debug.Graph(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// New creates a parentless node of kind k.
func (g *Graph) New(k Kind) (Handle, error) {
	if !k.Valid() {
		return NoHandle, fmt.Errorf("%w: %d", ErrBadKind, int(k))
	}
	if !k.Supported() {
		return NoHandle, fmt.Errorf("%w: %s", ErrUnsupported, k)
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	n := &node{kind: k}
	var h Handle
	if len(g.free) > 0 {
		slot := g.free[len(g.free)-1]
		g.free = g.free[:len(g.free)-1]
		e := &g.entries[slot]
		e.n = n
		h = Handle{slot: slot, gen: e.gen}
	} else {
		g.entries = append(g.entries, entry{gen: 1, n: n})
		h = Handle{slot: uint32(len(g.entries) - 1), gen: 1}
	}
	g.live++
	return h, nil
}

func (g *Graph) get(h Handle) (*node, error) {
	if h.IsZero() || int(h.slot) >= len(g.entries) {
		return nil, staleErr(h)
	}
	e := &g.entries[h.slot]
	if e.gen != h.gen || e.n == nil {
		return nil, staleErr(h)
	}
	return e.n, nil
}

// Valid reports whether h resolves to a live node.
func (g *Graph) Valid(h Handle) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, err := g.get(h)
	return err == nil
}

// Len returns the number of live nodes.
func (g *Graph) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.live
}

func (g *Graph) Kind(h Handle) Kind {
	g.mu.RLock()
	defer g.mu.RUnlock()
	n, err := g.get(h)
	if err != nil {
		return InvalidKind
	}
	return n.kind
}

// Parent returns the owner of h, or NoHandle for top level or stale
// handles.
func (g *Graph) Parent(h Handle) Handle {
	g.mu.RLock()
	defer g.mu.RUnlock()
	n, err := g.get(h)
	if err != nil {
		return NoHandle
	}
	return n.parent
}

func (g *Graph) Name(h Handle) string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	n, err := g.get(h)
	if err != nil {
		return ""
	}
	return n.name
}

// SetName names h for DEF/USE resolution.  An empty name clears it.
func (g *Graph) SetName(h Handle, name string) error {
	if err := CheckName(name); err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	n, err := g.get(h)
	if err != nil {
		return err
	}
	n.name = name
	return nil
}

// Children returns the nodes owned by h in document order.
func (g *Graph) Children(h Handle) []Handle {
	return g.linkTargets(h, false)
}

// Refs returns the nodes h references without owning, in document order.
func (g *Graph) Refs(h Handle) []Handle {
	return g.linkTargets(h, true)
}

func (g *Graph) linkTargets(h Handle, ref bool) []Handle {
	g.mu.RLock()
	defer g.mu.RUnlock()
	n, err := g.get(h)
	if err != nil {
		return nil
	}
	var res []Handle
	for _, l := range n.links {
		if l.ref == ref {
			res = append(res, l.target)
		}
	}
	return res
}

// Links returns every slot entry of h, owned and referenced, in document
// order.
func (g *Graph) Links(h Handle) []Link {
	g.mu.RLock()
	defer g.mu.RUnlock()
	n, err := g.get(h)
	if err != nil {
		return nil
	}
	return n.exportLinks()
}

func (n *node) exportLinks() []Link {
	slots := Slots(n.kind)
	res := make([]Link, len(n.links))
	for i, l := range n.links {
		res[i] = Link{Field: slots[l.slot].Field, Target: l.target, Ref: l.ref}
	}
	return res
}

// BackRefs returns the distinct nodes holding a reference to h.
func (g *Graph) BackRefs(h Handle) []Handle {
	g.mu.RLock()
	defer g.mu.RUnlock()
	n, err := g.get(h)
	if err != nil {
		return nil
	}
	return lo.Uniq(n.backPtrs)
}

func (g *Graph) Fields(h Handle) []Field {
	g.mu.RLock()
	defer g.mu.RUnlock()
	n, err := g.get(h)
	if err != nil {
		return nil
	}
	return n.exportFields()
}

func (n *node) exportFields() []Field {
	res := make([]Field, len(n.fields))
	for i, f := range n.fields {
		res[i] = Field{Name: f.Name, Values: append([]string(nil), f.Values...), List: f.List}
	}
	return res
}

// SetField stores the raw value of a scalar field of h, replacing an
// earlier value of the same field.
func (g *Graph) SetField(h Handle, f Field) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	n, err := g.get(h)
	if err != nil {
		return err
	}
	if !lo.Contains(ScalarFields(n.kind), f.Name) {
		return fmt.Errorf("%w: %s has no field %q", ErrUnknownField, n.kind, f.Name)
	}
	f.Values = append([]string(nil), f.Values...)
	for i := range n.fields {
		if n.fields[i].Name == f.Name {
			n.fields[i] = f
			return nil
		}
	}
	n.fields = append(n.fields, f)
	return nil
}

// Roots returns the live nodes without a parent, in creation slot order.
func (g *Graph) Roots() []Handle {
	g.mu.RLock()
	defer g.mu.RUnlock()
	var res []Handle
	for i := range g.entries {
		e := &g.entries[i]
		if e.n == nil || !e.n.parent.IsZero() {
			continue
		}
		res = append(res, Handle{slot: uint32(i), gen: e.gen})
	}
	return res
}

// Destroy destroys h and every node it owns.  Holders of references to a
// destroyed node lose those references; its owner loses it as a child.
func (g *Graph) Destroy(h Handle) error {
	g.mu.Lock()
	if _, err := g.get(h); err != nil {
		g.mu.Unlock()
		return err
	}
	g.destroy(h)
	g.assert()
	events := g.takeEvents()
	g.mu.Unlock()
	g.fire(events)
	return nil
}

// Clear tears down the whole graph.
func (g *Graph) Clear() {
	for _, h := range g.Roots() {
		// destroying a root only frees what it owns, so later roots stay
		// live and Destroy cannot fail.
		_ = g.Destroy(h)
	}
}

func (g *Graph) destroy(h Handle) {
	n, err := g.get(h)
	if err != nil {
		return
	}
	// back-pointer holders first, while n is intact.
	for _, holder := range lo.Uniq(n.backPtrs) {
		g.unlinkRefNode(holder, h)
	}
	n.backPtrs = nil
	for _, l := range n.links {
		if l.ref {
			g.delNodeRef(l.target, h)
		}
	}
	if !n.parent.IsZero() {
		g.unlinkChildNode(n.parent, h)
	}
	var owned []Handle
	for _, l := range n.links {
		if !l.ref {
			owned = append(owned, l.target)
		}
	}
	for _, c := range owned {
		g.destroy(c)
	}
	g.log.Debug("destroyed node", "node", h, "kind", n.kind, "name", n.name, "children", len(owned))
	g.events = append(g.events, event{destroy: true, a: h, kind: n.kind, name: n.name})

	e := &g.entries[h.slot]
	e.n = nil
	e.gen++
	if e.gen == 0 {
		e.gen = 1
	}
	g.free = append(g.free, h.slot)
	g.live--
}

func (g *Graph) takeEvents() []event {
	res := g.events
	g.events = nil
	return res
}

func (g *Graph) fire(events []event) {
	for _, ev := range events {
		switch {
		case ev.destroy && g.cb.OnDestroy != nil:
			g.cb.OnDestroy(ev.a, ev.kind, ev.name)
		case !ev.destroy && g.cb.OnUnlinkRef != nil:
			g.cb.OnUnlinkRef(ev.a, ev.b)
		}
	}
}

func (g *Graph) assert() {
	if !g.checked {
		return
	}
	if err := g.check(); err != nil {
		panic(err)
	}
}
