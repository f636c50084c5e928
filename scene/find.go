package scene

import "github.com/samber/lo"

// Find searches for the first node named name, starting at h: h itself,
// then the nodes h owns in document order, then h's owner and onward up
// the tree.  caller is never re-entered, which keeps a search bouncing
// between a node and its owner from recursing forever.  References are not
// followed.  Find returns NoHandle if no node matches.
func (g *Graph) Find(h Handle, name string, caller Handle) Handle {
	if name == "" {
		return NoHandle
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.find(h, name, caller)
}

func (g *Graph) find(h Handle, name string, caller Handle) Handle {
	n, err := g.get(h)
	if err != nil {
		return NoHandle
	}
	if n.name == name {
		return h
	}
	for _, l := range n.links {
		if l.ref || l.target == caller {
			continue
		}
		if res := g.find(l.target, name, h); !res.IsZero() {
			return res
		}
	}
	if !n.parent.IsZero() && n.parent != caller {
		return g.find(n.parent, name, h)
	}
	return NoHandle
}

// Walk visits h and the nodes it owns in document order, depth first.
// Returning false from fn prunes the subtree of the visited node.  The
// visited set is computed before fn is first called, so fn may use the
// graph freely.
func (g *Graph) Walk(h Handle, fn func(h Handle, depth int) bool) {
	type visit struct {
		h     Handle
		depth int
		end   int
	}
	g.mu.RLock()
	var order []visit
	var collect func(h Handle, depth int)
	collect = func(h Handle, depth int) {
		n, err := g.get(h)
		if err != nil {
			return
		}
		i := len(order)
		order = append(order, visit{h: h, depth: depth})
		for _, l := range n.links {
			if !l.ref {
				collect(l.target, depth+1)
			}
		}
		order[i].end = len(order)
	}
	collect(h, 0)
	g.mu.RUnlock()

	for i := 0; i < len(order); {
		v := order[i]
		if !fn(v.h, v.depth) {
			i = v.end
			continue
		}
		i++
	}
}

// Path returns the chain of owners from the top level down to h,
// inclusive.
func (g *Graph) Path(h Handle) []Handle {
	g.mu.RLock()
	defer g.mu.RUnlock()
	var res []Handle
	for cur := h; !cur.IsZero(); {
		n, err := g.get(cur)
		if err != nil {
			break
		}
		res = append(res, cur)
		cur = n.parent
	}
	for i, j := 0, len(res)-1; i < j; i, j = i+1, j-1 {
		res[i], res[j] = res[j], res[i]
	}
	return res
}

// View is a copy of the state of one node.
type View struct {
	Handle   Handle
	Kind     Kind
	Name     string
	Parent   Handle
	Links    []Link
	Fields   []Field
	BackRefs []Handle
}

func (g *Graph) View(h Handle) (*View, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	n, err := g.get(h)
	if err != nil {
		return nil, err
	}
	return &View{
		Handle:   h,
		Kind:     n.kind,
		Name:     n.name,
		Parent:   n.parent,
		Links:    n.exportLinks(),
		Fields:   n.exportFields(),
		BackRefs: lo.Uniq(n.backPtrs),
	}, nil
}
