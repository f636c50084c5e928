// Package scene holds VRML97 scene graphs as an arena of nodes addressed by
// generation-checked handles.
//
// Each node is owned by at most one parent and may in addition be
// referenced, without ownership, by other nodes, as `USE` does for a
// `DEF`ed node.  A referenced node records its referrers as back-pointers;
// when it is destroyed they drop their references before it goes away.
//
// # Usage
//
//	g := scene.NewGraph()
//	root, _ := g.New(scene.BaseKind)
//	t, _ := g.New(scene.TransformKind)
//	if err := g.AddChild(root, t); err != nil {
//	    return err
//	}
//	g.SetName(t, "T")
//	found := g.Find(root, "T", scene.NoHandle)
//
// Which kinds may be placed where is fixed by a table of node-valued fields
// per kind, see [Slots].  Kinds outside the table are recognized by
// [KindOf] but cannot be constructed.
//
// # Related Packages
//
//   - github.com/signadot/wrl2/parse - build a Graph from a .wrl document
//   - github.com/signadot/wrl2/encode - write a Graph out
package scene
