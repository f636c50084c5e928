package scene

import "fmt"

// Check verifies the ownership and back-pointer invariants of the whole
// graph: every owned node is listed exactly once by its owner and nowhere
// else, no link names a destroyed node, single slots hold at most one node,
// and each node's back-pointers match the references held to it.
func (g *Graph) Check() error {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.check()
}

func (g *Graph) check() error {
	type pair struct{ holder, target Handle }
	owners := map[Handle]int{}
	refs := map[pair]int{}
	live := 0

	for i := range g.entries {
		e := &g.entries[i]
		if e.n == nil {
			continue
		}
		live++
		h := Handle{slot: uint32(i), gen: e.gen}
		n := e.n
		bad := func(format string, args ...any) error {
			return &InvariantError{Node: h, Kind: n.kind, Msg: fmt.Sprintf(format, args...)}
		}
		if !n.parent.IsZero() {
			pn, err := g.get(n.parent)
			if err != nil {
				return bad("stale parent %s", n.parent)
			}
			if c := countLinks(pn, h, false); c != 1 {
				return bad("listed %d times by parent %s", c, n.parent)
			}
		}
		slots := Slots(n.kind)
		for j, l := range n.links {
			if l.slot < 0 || l.slot >= len(slots) {
				return bad("link %d has no slot", j)
			}
			tn, err := g.get(l.target)
			if err != nil {
				return bad("link %d names stale %s", j, l.target)
			}
			if !slots[l.slot].Accepts(tn.kind) {
				return bad("%s.%s holds %s", n.kind, slots[l.slot].Field, tn.kind)
			}
			if l.ref {
				refs[pair{h, l.target}]++
				continue
			}
			if tn.parent != h {
				return bad("owns %s whose parent is %s", l.target, tn.parent)
			}
			owners[l.target]++
		}
		for j, s := range slots {
			if s.Multi {
				continue
			}
			if c := countSlot(n, j); c > 1 {
				return bad("single slot %s holds %d nodes", s.Field, c)
			}
		}
	}
	if live != g.live {
		return &InvariantError{Msg: fmt.Sprintf("live count %d, found %d", g.live, live)}
	}
	for h, c := range owners {
		if c != 1 {
			n, _ := g.get(h)
			return &InvariantError{Node: h, Kind: n.kind, Msg: fmt.Sprintf("owned %d times", c)}
		}
	}
	// back-pointers are a multiset mirroring the reference edges.
	backs := map[pair]int{}
	for i := range g.entries {
		e := &g.entries[i]
		if e.n == nil {
			continue
		}
		h := Handle{slot: uint32(i), gen: e.gen}
		for _, holder := range e.n.backPtrs {
			if _, err := g.get(holder); err != nil {
				return &InvariantError{Node: h, Kind: e.n.kind, Msg: fmt.Sprintf("back-pointer to stale %s", holder)}
			}
			backs[pair{holder, h}]++
		}
	}
	for p, c := range refs {
		if backs[p] != c {
			n, _ := g.get(p.target)
			return &InvariantError{
				Node: p.target, Kind: n.kind,
				Msg: fmt.Sprintf("%d references from %s, %d back-pointers", c, p.holder, backs[p]),
			}
		}
	}
	for p, c := range backs {
		if refs[p] != c {
			n, _ := g.get(p.target)
			return &InvariantError{
				Node: p.target, Kind: n.kind,
				Msg: fmt.Sprintf("%d back-pointers to %s, %d references", c, p.holder, refs[p]),
			}
		}
	}
	return nil
}

func countLinks(n *node, target Handle, ref bool) int {
	c := 0
	for _, l := range n.links {
		if l.target == target && l.ref == ref {
			c++
		}
	}
	return c
}

func countSlot(n *node, slot int) int {
	c := 0
	for _, l := range n.links {
		if l.slot == slot {
			c++
		}
	}
	return c
}
