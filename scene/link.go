package scene

import (
	"fmt"
	"slices"
	"strings"
)

// AddChild transfers ownership of c to p, placing it in the first slot of p
// that accepts c's kind and has room.  If c is already a child of p
// nothing changes.  On error nothing changes.
func (g *Graph) AddChild(p, c Handle) error {
	return g.addChild(p, "", c)
}

// AddChildField is AddChild restricted to the slot named field.
func (g *Graph) AddChildField(p Handle, field string, c Handle) error {
	return g.addChild(p, field, c)
}

// SetParent moves h under p.  A zero p detaches h to the top level.  The
// kind table of p decides whether h may be contained.
func (g *Graph) SetParent(h, p Handle) error {
	if p.IsZero() {
		g.mu.Lock()
		defer g.mu.Unlock()
		n, err := g.get(h)
		if err != nil {
			return err
		}
		if !n.parent.IsZero() {
			g.unlinkChildNode(n.parent, h)
			n.parent = NoHandle
		}
		g.assert()
		return nil
	}
	return g.addChild(p, "", h)
}

func (g *Graph) addChild(p Handle, field string, c Handle) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	pn, err := g.get(p)
	if err != nil {
		return err
	}
	cn, err := g.get(c)
	if err != nil {
		return err
	}
	if cn.parent == p && (field == "" || g.linkField(pn, c, false) == field) {
		return nil
	}
	if g.reachable(c, p) {
		return rejectf("%s %s cannot own %s %s: cycle", pn.kind, p, cn.kind, c)
	}
	slot, err := g.pickSlot(pn, field, cn.kind)
	if err != nil {
		return err
	}
	if !cn.parent.IsZero() {
		g.unlinkChildNode(cn.parent, c)
	}
	pn.links = append(pn.links, link{slot: slot, target: c})
	cn.parent = p
	g.assert()
	return nil
}

// AddRef makes h reference target without owning it, placing the
// reference in the first slot of h that accepts target's kind and has
// room.  h is registered as a back-pointer holder on target.
func (g *Graph) AddRef(h, target Handle) error {
	return g.addRef(h, "", target)
}

// AddRefField is AddRef restricted to the slot named field.
func (g *Graph) AddRefField(h Handle, field string, target Handle) error {
	return g.addRef(h, field, target)
}

func (g *Graph) addRef(h Handle, field string, target Handle) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	hn, err := g.get(h)
	if err != nil {
		return err
	}
	tn, err := g.get(target)
	if err != nil {
		return err
	}
	if g.reachable(target, h) {
		return rejectf("%s %s cannot reference %s %s: cycle", hn.kind, h, tn.kind, target)
	}
	slot, err := g.pickSlot(hn, field, tn.kind)
	if err != nil {
		return err
	}
	hn.links = append(hn.links, link{slot: slot, target: target, ref: true})
	g.addNodeRef(target, h)
	g.assert()
	return nil
}

// DelRef removes one reference from h to target.
func (g *Graph) DelRef(h, target Handle) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	hn, err := g.get(h)
	if err != nil {
		return err
	}
	i := slices.IndexFunc(hn.links, func(l link) bool { return l.ref && l.target == target })
	if i < 0 {
		return fmt.Errorf("%w: %s -> %s", ErrNoRef, h, target)
	}
	hn.links = slices.Delete(hn.links, i, i+1)
	g.delNodeRef(target, h)
	g.assert()
	return nil
}

func (g *Graph) pickSlot(pn *node, field string, k Kind) (int, error) {
	slots := Slots(pn.kind)
	if field != "" {
		i := slotIndex(pn.kind, field)
		if i < 0 {
			return -1, fmt.Errorf("%w: %s has no node field %q", ErrUnknownField, pn.kind, field)
		}
		if !slots[i].Accepts(k) {
			return -1, rejectf("%s.%s does not accept %s", pn.kind, field, k)
		}
		if !slots[i].Multi && pn.used(i) {
			return -1, rejectf("%s.%s is already set", pn.kind, field)
		}
		return i, nil
	}
	cands := acceptingSlots(pn.kind, k)
	if len(cands) == 0 {
		return -1, rejectf("%s does not accept %s", pn.kind, k)
	}
	for _, i := range cands {
		if slots[i].Multi || !pn.used(i) {
			return i, nil
		}
	}
	return -1, rejectf("%s.%s is already set", pn.kind, slots[cands[0]].Field)
}

func (n *node) used(slot int) bool {
	return slices.ContainsFunc(n.links, func(l link) bool { return l.slot == slot })
}

func (g *Graph) linkField(pn *node, target Handle, ref bool) string {
	for _, l := range pn.links {
		if l.target == target && l.ref == ref {
			return Slots(pn.kind)[l.slot].Field
		}
	}
	return ""
}

// reachable reports whether to can be reached from from by following
// owned and referenced links.
func (g *Graph) reachable(from, to Handle) bool {
	seen := map[Handle]bool{}
	stack := []Handle{from}
	for len(stack) > 0 {
		h := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if h == to {
			return true
		}
		if seen[h] {
			continue
		}
		seen[h] = true
		n, err := g.get(h)
		if err != nil {
			continue
		}
		for _, l := range n.links {
			stack = append(stack, l.target)
		}
	}
	return false
}

// unlinkChildNode is invoked on the owner p by its child c while c is
// detached or destroyed.  A c which is not a child of p is ignored.
func (g *Graph) unlinkChildNode(p, c Handle) {
	pn, err := g.get(p)
	if err != nil {
		return
	}
	pn.links = slices.DeleteFunc(pn.links, func(l link) bool { return !l.ref && l.target == c })
}

// unlinkRefNode is invoked on holder by target while target is destroyed.
// Every reference from holder to target is dropped.
func (g *Graph) unlinkRefNode(holder, target Handle) {
	hn, err := g.get(holder)
	if err != nil {
		return
	}
	n := len(hn.links)
	hn.links = slices.DeleteFunc(hn.links, func(l link) bool { return l.ref && l.target == target })
	if len(hn.links) != n {
		g.log.Debug("unlinked reference", "holder", holder, "target", target)
		g.events = append(g.events, event{a: holder, b: target})
	}
}

func (g *Graph) addNodeRef(target, holder Handle) {
	tn, err := g.get(target)
	if err != nil {
		return
	}
	tn.backPtrs = append(tn.backPtrs, holder)
}

// delNodeRef removes one back-pointer entry for holder from target.
func (g *Graph) delNodeRef(target, holder Handle) {
	tn, err := g.get(target)
	if err != nil {
		return
	}
	if i := slices.Index(tn.backPtrs, holder); i >= 0 {
		tn.backPtrs = slices.Delete(tn.backPtrs, i, i+1)
	}
}

var reservedNames = []string{
	"DEF", "EXTERNPROTO", "FALSE", "IS", "NULL", "PROTO", "ROUTE", "TO",
	"TRUE", "USE", "eventIn", "eventOut", "exposedField", "field",
}

// CheckName validates a DEF name against the VRML97 identifier rules.  The
// empty name is valid and means unnamed.
func CheckName(name string) error {
	if name == "" {
		return nil
	}
	if slices.Contains(reservedNames, name) {
		return fmt.Errorf("%w: %q is reserved", ErrBadName, name)
	}
	switch c := name[0]; {
	case c >= '0' && c <= '9', c == '+', c == '-':
		return fmt.Errorf("%w: %q starts with %q", ErrBadName, name, c)
	}
	if i := strings.IndexFunc(name, func(r rune) bool {
		return r <= 0x20 || r == 0x7f || strings.ContainsRune("\"#',.[\\]{}", r)
	}); i >= 0 {
		return fmt.Errorf("%w: %q contains %q", ErrBadName, name, name[i])
	}
	return nil
}
