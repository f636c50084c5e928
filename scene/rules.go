package scene

import "slices"

// Slot is a node-valued field of a supported kind.  Multi slots hold an
// ordered list (MFNode); single slots hold at most one node, owned or
// referenced (SFNode).
type Slot struct {
	Field string
	Multi bool
	Kinds []Kind
}

func (s *Slot) Accepts(k Kind) bool {
	return slices.Contains(s.Kinds, k)
}

type rule struct {
	slots   []Slot
	scalars []string
}

var (
	childKinds = []Kind{
		AnchorKind, BillboardKind, CollisionKind, GroupKind, InlineKind,
		LODKind, ShapeKind, SwitchKind, TransformKind,
	}
	geometryKinds = []Kind{
		BoxKind, ConeKind, CylinderKind, ElevationGridKind, ExtrusionKind,
		IndexedFaceSetKind, IndexedLineSetKind, PointSetKind, SphereKind,
		TextKind,
	}
	textureKinds = []Kind{ImageTextureKind, MovieTextureKind, PixelTextureKind}

	bbox = []string{"bboxCenter", "bboxSize"}
)

func children(field string) Slot {
	return Slot{Field: field, Multi: true, Kinds: childKinds}
}

func single(field string, kinds ...Kind) Slot {
	return Slot{Field: field, Kinds: kinds}
}

func scalars(groups ...[]string) []string {
	return slices.Concat(groups...)
}

// rules holds the containment table of every kind the importer constructs.
// Kinds without an entry are recognized but skipped when read.
var rules = map[Kind]*rule{
	BaseKind: {slots: []Slot{children("children")}},
	AnchorKind: {
		slots:   []Slot{children("children")},
		scalars: scalars([]string{"description", "parameter", "url"}, bbox),
	},
	BillboardKind: {
		slots:   []Slot{children("children")},
		scalars: scalars([]string{"axisOfRotation"}, bbox),
	},
	CollisionKind: {
		slots:   []Slot{children("children"), {Field: "proxy", Kinds: childKinds}},
		scalars: scalars([]string{"collide"}, bbox),
	},
	GroupKind: {
		slots:   []Slot{children("children")},
		scalars: bbox,
	},
	TransformKind: {
		slots: []Slot{children("children")},
		scalars: scalars([]string{
			"center", "rotation", "scale", "scaleOrientation", "translation",
		}, bbox),
	},
	SwitchKind: {
		slots:   []Slot{children("choice")},
		scalars: []string{"whichChoice"},
	},
	LODKind: {
		slots:   []Slot{children("level")},
		scalars: []string{"center", "range"},
	},
	InlineKind: {scalars: scalars([]string{"url"}, bbox)},
	ShapeKind: {
		slots: []Slot{
			single("appearance", AppearanceKind),
			single("geometry", geometryKinds...),
		},
	},
	AppearanceKind: {
		slots: []Slot{
			single("material", MaterialKind),
			single("texture", textureKinds...),
			single("textureTransform", TextureTransformKind),
		},
	},
	MaterialKind: {
		scalars: []string{
			"ambientIntensity", "diffuseColor", "emissiveColor", "shininess",
			"specularColor", "transparency",
		},
	},
	BoxKind:      {scalars: []string{"size"}},
	ConeKind:     {scalars: []string{"bottomRadius", "height", "side", "bottom"}},
	CylinderKind: {scalars: []string{"bottom", "height", "radius", "side", "top"}},
	SphereKind:   {scalars: []string{"radius"}},
	IndexedFaceSetKind: {
		slots: []Slot{
			single("coord", CoordinateKind),
			single("color", ColorKind),
			single("normal", NormalKind),
			single("texCoord", TextureCoordinateKind),
		},
		scalars: []string{
			"ccw", "colorIndex", "colorPerVertex", "convex", "coordIndex",
			"creaseAngle", "normalIndex", "normalPerVertex", "solid",
			"texCoordIndex",
		},
	},
	IndexedLineSetKind: {
		slots: []Slot{
			single("coord", CoordinateKind),
			single("color", ColorKind),
		},
		scalars: []string{"colorIndex", "colorPerVertex", "coordIndex"},
	},
	PointSetKind: {
		slots: []Slot{
			single("coord", CoordinateKind),
			single("color", ColorKind),
		},
	},
	ElevationGridKind: {
		slots: []Slot{
			single("color", ColorKind),
			single("normal", NormalKind),
			single("texCoord", TextureCoordinateKind),
		},
		scalars: []string{
			"height", "ccw", "colorPerVertex", "creaseAngle", "normalPerVertex",
			"solid", "xDimension", "xSpacing", "zDimension", "zSpacing",
		},
	},
	ExtrusionKind: {
		scalars: []string{
			"beginCap", "ccw", "convex", "creaseAngle", "crossSection",
			"endCap", "orientation", "scale", "solid", "spine",
		},
	},
	TextKind: {
		slots:   []Slot{single("fontStyle", FontStyleKind)},
		scalars: []string{"string", "length", "maxExtent"},
	},
	FontStyleKind: {
		scalars: []string{
			"family", "horizontal", "justify", "language", "leftToRight",
			"size", "spacing", "style", "topToBottom",
		},
	},
	CoordinateKind:        {scalars: []string{"point"}},
	ColorKind:             {scalars: []string{"color"}},
	NormalKind:            {scalars: []string{"vector"}},
	TextureCoordinateKind: {scalars: []string{"point"}},
	ImageTextureKind:      {scalars: []string{"url", "repeatS", "repeatT"}},
	MovieTextureKind: {
		scalars: []string{
			"loop", "speed", "startTime", "stopTime", "url", "repeatS", "repeatT",
		},
	},
	PixelTextureKind:     {scalars: []string{"image", "repeatS", "repeatT"}},
	TextureTransformKind: {scalars: []string{"center", "rotation", "scale", "translation"}},
}

// Supported reports whether nodes of kind k can be constructed.
func (k Kind) Supported() bool {
	_, ok := rules[k]
	return ok
}

// Slots returns the node-valued fields of k in declaration order.
func Slots(k Kind) []Slot {
	r := rules[k]
	if r == nil {
		return nil
	}
	return r.slots
}

// ScalarFields returns the names of the non-node fields of k.
func ScalarFields(k Kind) []string {
	r := rules[k]
	if r == nil {
		return nil
	}
	return r.scalars
}

// FieldSlot returns the slot of k named field.
func FieldSlot(k Kind, field string) (Slot, bool) {
	i := slotIndex(k, field)
	if i < 0 {
		return Slot{}, false
	}
	return rules[k].slots[i], true
}

// IsField reports whether field is a scalar or node-valued field of k.
func IsField(k Kind, field string) bool {
	return slotIndex(k, field) >= 0 || slices.Contains(ScalarFields(k), field)
}

func slotIndex(k Kind, field string) int {
	r := rules[k]
	if r == nil {
		return -1
	}
	return slices.IndexFunc(r.slots, func(s Slot) bool { return s.Field == field })
}

// acceptingSlots returns the indices of the slots of parent which accept
// child, in declaration order.
func acceptingSlots(parent, child Kind) []int {
	r := rules[parent]
	if r == nil {
		return nil
	}
	var res []int
	for i := range r.slots {
		if r.slots[i].Accepts(child) {
			res = append(res, i)
		}
	}
	return res
}
