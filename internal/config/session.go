package config

import (
	"fmt"
	"math/rand/v2"

	"github.com/lukaszgryglicki/commedia/internal/geom"
)

type PathPolicy uint8

const (
	// Replace restarts numbering at 0 and truncates the CSV. Only files named
	// like frames (NNNNN.bmp, .png or .pb) are removed; anything else in the
	// directory and the directory itself are kept.
	Replace PathPolicy = iota
	Append // keep frames, continue numbering
)

type OutputPath struct {
	Policy PathPolicy
	Dir    string
}

func (p OutputPath) String() string {
	if p.Policy == Append {
		return "append " + p.Dir
	}
	return "replace " + p.Dir
}

type StyleKind uint8

const (
	Still       StyleKind = iota // still image per instance
	StillDepth                   // still image + depth per instance
	Moving                       // sequence of still images per instance
	MovingDepth                  // sequence of still images + depth per instance
)

var styleNames = map[StyleKind]string{
	Still:       "still",
	StillDepth:  "still_depth",
	Moving:      "moving",
	MovingDepth: "moving_depth",
}

// Style carries the depth mapping for the depth variants: alpha = Offset + Scale*depth.
type Style struct {
	Kind   StyleKind
	Scale  float64
	Offset float64
}

func (s Style) HasDepth() bool { return s.Kind == StillDepth || s.Kind == MovingDepth }

// DepthMap returns the scale and offset applied to normalized depth. Styles
// without depth map everything to an opaque alpha.
func (s Style) DepthMap() (scale, offset float64) {
	if !s.HasDepth() {
		return 0, 1
	}
	return s.Scale, s.Offset
}

func (s Style) String() string {
	if s.HasDepth() {
		return fmt.Sprintf("%s %g,%g", styleNames[s.Kind], s.Scale, s.Offset)
	}
	return styleNames[s.Kind]
}

type Format uint8

const (
	BMP      Format = iota // depth is stored in the alpha channel
	PNG                    // depth is stored in the alpha channel
	ProtoBuf               // TensorFlow tensor proto
)

// Ext is the file extension used for images of this format.
func (f Format) Ext() string {
	switch f {
	case PNG:
		return "png"
	case ProtoBuf:
		return "pb"
	default:
		return "bmp"
	}
}

func (f Format) String() string {
	if f == ProtoBuf {
		return "protobuf"
	}
	return f.Ext()
}

type XYZ struct{ X, Y, Z Distribution }

type YPB struct{ Y, P, B Distribution }

type RGB struct{ R, G, B Distribution }

func (d XYZ) Sample(rng *rand.Rand) geom.Vec3 {
	return geom.Vec3{X: d.X.Sample(rng), Y: d.Y.Sample(rng), Z: d.Z.Sample(rng)}
}

func (d YPB) Sample(rng *rand.Rand) geom.YPB {
	return geom.YPB{Y: d.Y.Sample(rng), P: d.P.Sample(rng), B: d.B.Sample(rng)}
}

func (d RGB) Sample(rng *rand.Rand) geom.RGB {
	return geom.RGB{R: d.R.Sample(rng), G: d.G.Sample(rng), B: d.B.Sample(rng)}
}

func constXYZ(x, y, z float64) XYZ { return XYZ{Constant(x), Constant(y), Constant(z)} }
func constYPB(y, p, b float64) YPB { return YPB{Constant(y), Constant(p), Constant(b)} }
func constRGB(r, g, b float64) RGB { return RGB{Constant(r), Constant(g), Constant(b)} }

type BackgroundKind uint8

const (
	BackgroundColor BackgroundKind = iota // solid color, drawn per instance
	BackgroundImage                       // random crop of a random image from Dir
)

type Background struct {
	Kind  BackgroundKind
	Color RGB
	Dir   string
}

// Session describes one dataset generation run.
type Session struct {
	Name       string
	Path       OutputPath
	CSV        string
	Count      int
	Style      Style
	Format     Format
	Size       geom.Size
	Projection geom.Mat4
	HeadPos    XYZ
	HeadDir    YPB
	LeftEye    YPB
	RightEye   YPB
	LightDir   YPB
	LightColor RGB
	Background Background
	Ambient    RGB
	Skin       RGB
	Sclera     RGB
	Iris       RGB
}

// NewSession returns a session with every field at its default.
func NewSession(name string) *Session {
	return &Session{
		Name:       name,
		Path:       OutputPath{Policy: Replace, Dir: DefaultPath},
		CSV:        DefaultCSV,
		Count:      DefaultCount,
		Style:      Style{Kind: Still},
		Format:     BMP,
		Size:       geom.Size{W: DefaultWidth, H: DefaultHeight},
		Projection: DefaultProjection(),
		HeadPos:    constXYZ(0, 0, 0),
		HeadDir:    constYPB(0, 0, 0),
		LeftEye:    constYPB(0, 0, 0),
		RightEye:   constYPB(0, 0, 0),
		LightDir:   constYPB(0, 0, 0),
		LightColor: constRGB(1, 1, 1),
		Background: Background{Kind: BackgroundColor, Color: constRGB(0, 0, 0)},
		Ambient:    constRGB(0.2, 0.2, 0.2),
		Skin:       constRGB(0.8, 0.7, 0.6),
		Sclera:     constRGB(0.8, 0.8, 0.8),
		Iris:       constRGB(0.2, 0.3, 0.4),
	}
}

func DefaultProjection() geom.Mat4 {
	return geom.Perspective(DefaultFovY, DefaultAspect, DefaultNear, DefaultFar)
}
