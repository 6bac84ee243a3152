// Package render is a small CPU renderer that draws the head as a lit sphere
// impostor with sclera and iris discs for the eyes.
package render

import (
	"image"
	"image/color"
	"math"

	"github.com/lukaszgryglicki/commedia/internal/config"
	"github.com/lukaszgryglicki/commedia/internal/geom"
	"github.com/lukaszgryglicki/commedia/internal/sampler"
)

const (
	DefaultSupersample = 4
	DefaultHeadRadius  = 0.09

	eyeSize    = 0.0115
	irisRadius = 0.5 // fraction of the eye disc
)

// Eye positions in head space; the face looks down +Z.
var (
	leftEyePos  = geom.Vec3{X: -0.031, Y: 0.026, Z: 0.023}
	rightEyePos = geom.Vec3{X: 0.031, Y: 0.026, Z: 0.023}
)

// Ids written by the diagnostic pass. Face is mid gray; eyes sit outside the face band.
var (
	FaceID     = color.NRGBA{0x80, 0x80, 0x80, 0xff}
	LeftEyeID  = color.NRGBA{0xff, 0x00, 0x00, 0xff}
	RightEyeID = color.NRGBA{0x00, 0xff, 0x00, 0xff}
	IrisID     = color.NRGBA{0x00, 0x00, 0xff, 0xff}
)

type Options struct {
	Supersample int
	HeadRadius  float64
}

// Billboard renders into one framebuffer, Supersample times the output size,
// reused across calls.
type Billboard struct {
	out  geom.Size
	k    int
	rad  float64
	fb   *image.NRGBA
	mask []surface
}

var _ sampler.Renderer = (*Billboard)(nil)

func New(out geom.Size, opt Options) *Billboard {
	if opt.Supersample <= 0 {
		opt.Supersample = DefaultSupersample
	}
	if opt.HeadRadius <= 0 {
		opt.HeadRadius = DefaultHeadRadius
	}
	fb := out.Scale(opt.Supersample)
	return &Billboard{
		out:  out,
		k:    opt.Supersample,
		rad:  opt.HeadRadius,
		fb:   image.NewNRGBA(image.Rect(0, 0, fb.W, fb.H)),
		mask: make([]surface, fb.W*fb.H),
	}
}

func (b *Billboard) Framebuffer() geom.Size { return b.out.Scale(b.k) }

// RenderDiagnostic paints surface ids on black. The returned image is the
// shared framebuffer and is overwritten by the next call.
func (b *Billboard) RenderDiagnostic(P geom.Mat4, inst *sampler.Instance) (*image.NRGBA, error) {
	b.rasterize(P, inst)
	fb := b.Framebuffer()
	for y := 0; y < fb.H; y++ {
		for x := 0; x < fb.W; x++ {
			c := color.NRGBA{0, 0, 0, 0xff}
			switch s := b.mask[y*fb.W+x]; s.kind {
			case skin:
				c = FaceID
			case sclera:
				if s.left {
					c = LeftEyeID
				} else {
					c = RightEyeID
				}
			case iris:
				c = IrisID
			}
			b.set(x, y, c)
		}
	}
	return b.fb, nil
}

// RenderFinal shades the instance over its background and returns a new
// image of the output size, box filtered down from the framebuffer.
func (b *Billboard) RenderFinal(P geom.Mat4, inst *sampler.Instance, style config.Style) (*image.NRGBA, error) {
	b.rasterize(P, inst)
	scale, offset := style.DepthMap()
	light := inst.LightDir.Rotation().MulVec(geom.Vec3{Y: 1}.Dir()).XYZ().Norm()
	fb := b.Framebuffer()
	for y := 0; y < fb.H; y++ {
		for x := 0; x < fb.W; x++ {
			s := b.mask[y*fb.W+x]
			if s.kind == none {
				b.set(x, y, background(inst.Background, x, y))
				continue
			}
			albedo := inst.Skin
			switch s.kind {
			case sclera:
				albedo = inst.Sclera
			case iris:
				albedo = inst.Iris
			}
			lambert := math.Max(0, s.normal.Dot(light))
			rgb := albedo.Modulate(inst.Ambient.Add(inst.LightColor.Mul(lambert)))
			a := offset + scale*s.depth
			b.set(x, y, color.NRGBA{geom.Byte(rgb.R), geom.Byte(rgb.G), geom.Byte(rgb.B), geom.Byte(a)})
		}
	}
	return Downsample(b.fb, b.k), nil
}

// set writes framebuffer pixel (x, y) with y counted from the bottom row.
func (b *Billboard) set(x, y int, c color.NRGBA) {
	h := b.fb.Rect.Dy()
	b.fb.SetNRGBA(x, h-1-y, c)
}

// background returns the background pixel at bottom-up row y. Image
// backgrounds arrive flipped, so row y of the crop lands on framebuffer row y.
func background(bg sampler.Background, x, y int) color.NRGBA {
	if bg.IsImage() {
		return bg.Image.NRGBAAt(bg.Image.Rect.Min.X+x, bg.Image.Rect.Min.Y+y)
	}
	return color.NRGBA{geom.Byte(bg.Color.R), geom.Byte(bg.Color.G), geom.Byte(bg.Color.B), 0xff}
}
