package scene

import "fmt"

// Kind identifies the VRML97 node type of a scene node.
type Kind int

const (
	InvalidKind Kind = iota
	BaseKind
	AnchorKind
	AppearanceKind
	AudioClipKind
	BackgroundKind
	BillboardKind
	BoxKind
	CollisionKind
	ColorKind
	ColorInterpolatorKind
	ConeKind
	CoordinateKind
	CoordinateInterpolatorKind
	CylinderKind
	CylinderSensorKind
	DirectionalLightKind
	ElevationGridKind
	ExtrusionKind
	FogKind
	FontStyleKind
	GroupKind
	ImageTextureKind
	IndexedFaceSetKind
	IndexedLineSetKind
	InlineKind
	LODKind
	MaterialKind
	MovieTextureKind
	NavigationInfoKind
	NormalKind
	NormalInterpolatorKind
	OrientationInterpolatorKind
	PixelTextureKind
	PlaneSensorKind
	PointLightKind
	PointSetKind
	PositionInterpolatorKind
	ProximitySensorKind
	ScalarInterpolatorKind
	ScriptKind
	ShapeKind
	SoundKind
	SphereKind
	SphereSensorKind
	SpotLightKind
	SwitchKind
	TextKind
	TextureCoordinateKind
	TextureTransformKind
	TimeSensorKind
	TouchSensorKind
	TransformKind
	ViewpointKind
	VisibilitySensorKind
	WorldInfoKind

	endKind
)

var kindNames = [endKind]string{
	InvalidKind:                 "<invalid>",
	BaseKind:                    "Base",
	AnchorKind:                  "Anchor",
	AppearanceKind:              "Appearance",
	AudioClipKind:               "AudioClip",
	BackgroundKind:              "Background",
	BillboardKind:               "Billboard",
	BoxKind:                     "Box",
	CollisionKind:               "Collision",
	ColorKind:                   "Color",
	ColorInterpolatorKind:       "ColorInterpolator",
	ConeKind:                    "Cone",
	CoordinateKind:              "Coordinate",
	CoordinateInterpolatorKind:  "CoordinateInterpolator",
	CylinderKind:                "Cylinder",
	CylinderSensorKind:          "CylinderSensor",
	DirectionalLightKind:        "DirectionalLight",
	ElevationGridKind:           "ElevationGrid",
	ExtrusionKind:               "Extrusion",
	FogKind:                     "Fog",
	FontStyleKind:               "FontStyle",
	GroupKind:                   "Group",
	ImageTextureKind:            "ImageTexture",
	IndexedFaceSetKind:          "IndexedFaceSet",
	IndexedLineSetKind:          "IndexedLineSet",
	InlineKind:                  "Inline",
	LODKind:                     "LOD",
	MaterialKind:                "Material",
	MovieTextureKind:            "MovieTexture",
	NavigationInfoKind:          "NavigationInfo",
	NormalKind:                  "Normal",
	NormalInterpolatorKind:      "NormalInterpolator",
	OrientationInterpolatorKind: "OrientationInterpolator",
	PixelTextureKind:            "PixelTexture",
	PlaneSensorKind:             "PlaneSensor",
	PointLightKind:              "PointLight",
	PointSetKind:                "PointSet",
	PositionInterpolatorKind:    "PositionInterpolator",
	ProximitySensorKind:         "ProximitySensor",
	ScalarInterpolatorKind:      "ScalarInterpolator",
	ScriptKind:                  "Script",
	ShapeKind:                   "Shape",
	SoundKind:                   "Sound",
	SphereKind:                  "Sphere",
	SphereSensorKind:            "SphereSensor",
	SpotLightKind:               "SpotLight",
	SwitchKind:                  "Switch",
	TextKind:                    "Text",
	TextureCoordinateKind:       "TextureCoordinate",
	TextureTransformKind:        "TextureTransform",
	TimeSensorKind:              "TimeSensor",
	TouchSensorKind:             "TouchSensor",
	TransformKind:               "Transform",
	ViewpointKind:               "Viewpoint",
	VisibilitySensorKind:        "VisibilitySensor",
	WorldInfoKind:               "WorldInfo",
}

// vrmlKinds maps VRML97 node type names to kinds.  Base and the invalid
// sentinel are not VRML names and are absent.
var vrmlKinds = func() map[string]Kind {
	m := make(map[string]Kind, int(endKind))
	for k := AnchorKind; k < endKind; k++ {
		m[kindNames[k]] = k
	}
	return m
}()

// KindOf returns the kind of the VRML97 node type called name, or
// InvalidKind if no such node type exists.  Statement keywords such as
// PROTO, EXTERNPROTO and ROUTE are not node types and yield InvalidKind.
func KindOf(name string) Kind {
	k, ok := vrmlKinds[name]
	if !ok {
		return InvalidKind
	}
	return k
}

func (k Kind) String() string {
	if k < 0 || k >= endKind {
		return "<unknown kind>"
	}
	return kindNames[k]
}

func (k Kind) Valid() bool {
	return k > InvalidKind && k < endKind
}

func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrBadKind, int(k))
	}
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(d []byte) error {
	s := string(d)
	if s == kindNames[BaseKind] {
		*k = BaseKind
		return nil
	}
	kk := KindOf(s)
	if kk == InvalidKind {
		return fmt.Errorf("%w: %q", ErrBadKind, s)
	}
	*k = kk
	return nil
}

// Kinds returns every valid kind, Base first, then the VRML97 node types in
// alphabetical order.
func Kinds() []Kind {
	res := make([]Kind, 0, int(endKind)-1)
	for k := BaseKind; k < endKind; k++ {
		res = append(res, k)
	}
	return res
}
