package render

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/lukaszgryglicki/commedia/internal/config"
	"github.com/lukaszgryglicki/commedia/internal/geom"
	"github.com/lukaszgryglicki/commedia/internal/sampler"
)

func facing() *sampler.Instance {
	return &sampler.Instance{
		HeadPos:    geom.Vec3{Z: -0.5},
		LightDir:   geom.YPB{P: math.Pi / 2}, // toward the camera
		LightColor: geom.RGB{R: 1, G: 1, B: 1},
		Ambient:    geom.RGB{R: 0.1, G: 0.1, B: 0.1},
		Skin:       geom.RGB{R: 0.8, G: 0.7, B: 0.6},
		Sclera:     geom.RGB{R: 1, G: 1, B: 1},
		Iris:       geom.RGB{R: 0, G: 0, B: 1},
		Background: sampler.Background{Color: geom.RGB{R: 0, G: 1, B: 0}},
	}
}

func count(img *image.NRGBA, c color.NRGBA) int {
	n := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.NRGBAAt(x, y) == c {
				n++
			}
		}
	}
	return n
}

func TestFramebufferSize(t *testing.T) {
	b := New(geom.Size{W: 32, H: 24}, Options{})
	if got := b.Framebuffer(); got != (geom.Size{W: 128, H: 96}) {
		t.Fatalf("framebuffer %v", got)
	}
	b = New(geom.Size{W: 32, H: 24}, Options{Supersample: 2, HeadRadius: 0.2})
	if got := b.Framebuffer(); got != (geom.Size{W: 64, H: 48}) {
		t.Fatalf("framebuffer %v", got)
	}
}

func TestDiagnosticFacing(t *testing.T) {
	b := New(geom.Size{W: 64, H: 48}, Options{})
	img, err := b.RenderDiagnostic(config.DefaultProjection(), facing())
	if err != nil {
		t.Fatal(err)
	}
	if !sampler.FaceVisible(img) {
		t.Fatalf("face not visible")
	}
	if n := count(img, LeftEyeID) + count(img, RightEyeID); n == 0 {
		t.Fatalf("no sclera pixels")
	}
	if count(img, IrisID) == 0 {
		t.Fatalf("no iris pixels")
	}
	if got := img.NRGBAAt(0, 0); got != (color.NRGBA{0, 0, 0, 0xff}) {
		t.Fatalf("corner %v, want black", got)
	}
	// Left eye is at negative X so it lands on the left half.
	l := image.Rect(0, 0, 128, 192)
	if count(img.SubImage(l).(*image.NRGBA), LeftEyeID) == 0 {
		t.Fatalf("left eye not on the left half")
	}
}

func meanX(img *image.NRGBA, c color.NRGBA) float64 {
	sum, n := 0.0, 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.NRGBAAt(x, y) == c {
				sum += float64(x)
				n++
			}
		}
	}
	if n == 0 {
		return math.NaN()
	}
	return sum / float64(n)
}

func TestIrisFollowsGaze(t *testing.T) {
	b := New(geom.Size{W: 128, H: 96}, Options{})
	P := config.DefaultProjection()
	img, err := b.RenderDiagnostic(P, facing())
	if err != nil {
		t.Fatal(err)
	}
	ahead := meanX(img, IrisID)

	inst := facing()
	inst.LeftEye = geom.YPB{Y: 1.2}
	inst.RightEye = geom.YPB{Y: 1.2}
	img, err = b.RenderDiagnostic(P, inst)
	if err != nil {
		t.Fatal(err)
	}
	turned := meanX(img, IrisID)
	if math.IsNaN(ahead) || math.IsNaN(turned) {
		t.Fatalf("iris not drawn: ahead=%v turned=%v", ahead, turned)
	}
	if turned <= ahead {
		t.Fatalf("iris did not move with yaw: ahead=%.2f turned=%.2f", ahead, turned)
	}
}

func TestDiagnosticTurnedAway(t *testing.T) {
	b := New(geom.Size{W: 64, H: 48}, Options{})
	inst := facing()
	inst.HeadDir = geom.YPB{Y: math.Pi}
	img, _ := b.RenderDiagnostic(config.DefaultProjection(), inst)
	if count(img, LeftEyeID)+count(img, RightEyeID)+count(img, IrisID) != 0 {
		t.Fatalf("eyes drawn on the back of the head")
	}
	if !sampler.FaceVisible(img) {
		t.Fatalf("back of the head should still be face pixels")
	}
}

func TestDiagnosticBehindCamera(t *testing.T) {
	b := New(geom.Size{W: 16, H: 12}, Options{})
	inst := facing()
	inst.HeadPos = geom.Vec3{Z: 1}
	img, _ := b.RenderDiagnostic(config.DefaultProjection(), inst)
	if sampler.FaceVisible(img) {
		t.Fatalf("head behind the camera rendered")
	}
}

func TestFinalBackgroundAndAlpha(t *testing.T) {
	P := config.DefaultProjection()
	b := New(geom.Size{W: 64, H: 48}, Options{})
	img, err := b.RenderFinal(P, facing(), config.Style{Kind: config.Still})
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds() != image.Rect(0, 0, 64, 48) {
		t.Fatalf("bounds %v", img.Bounds())
	}
	if got := img.NRGBAAt(0, 0); got != (color.NRGBA{0, 0xff, 0, 0xff}) {
		t.Fatalf("corner %v, want green background", got)
	}
	if a := img.NRGBAAt(32, 24).A; a != 0xff {
		t.Fatalf("still alpha %d, want opaque", a)
	}

	img, _ = b.RenderFinal(P, facing(), config.Style{Kind: config.StillDepth, Scale: 1, Offset: 0})
	a := img.NRGBAAt(32, 24).A
	if a == 0 || a == 0xff {
		t.Fatalf("depth alpha %d, want window depth", a)
	}
	if bg := img.NRGBAAt(0, 0).A; bg != 0xff {
		t.Fatalf("background alpha %d", bg)
	}
}

func TestFinalLambert(t *testing.T) {
	P := config.DefaultProjection()
	b := New(geom.Size{W: 64, H: 48}, Options{})
	lit, _ := b.RenderFinal(P, facing(), config.Style{})
	away := facing()
	away.LightDir = geom.YPB{P: -math.Pi / 2}
	dark, _ := b.RenderFinal(P, away, config.Style{})

	// Sample the cheek below the eyes.
	l, d := lit.NRGBAAt(32, 30), dark.NRGBAAt(32, 30)
	if l.R <= d.R {
		t.Fatalf("lit %v not brighter than unlit %v", l, d)
	}
	// Unlit skin is ambient only: 0.8*0.1.
	if want := geom.Byte(0.08); absDiff(d.R, want) > 1 {
		t.Fatalf("unlit red %d, want about %d", d.R, want)
	}
}

func TestFinalImageBackgroundUpright(t *testing.T) {
	b := New(geom.Size{W: 4, H: 4}, Options{Supersample: 1, HeadRadius: 1e-6})
	bgSrc := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			bgSrc.SetNRGBA(x, y, color.NRGBA{uint8(y * 50), 0, 0, 0xff})
		}
	}
	inst := facing()
	inst.HeadPos = geom.Vec3{Z: 1}
	inst.Background = sampler.Background{Image: sampler.CropFlipped(bgSrc, bgSrc.Bounds())}
	img, _ := b.RenderFinal(config.DefaultProjection(), inst, config.Style{})
	for y := 0; y < 4; y++ {
		if got := img.NRGBAAt(1, y).R; got != uint8(y*50) {
			t.Fatalf("row %d red %d, want %d", y, got, y*50)
		}
	}
}

func TestDownsampleBox(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 8, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 8; x++ {
			v := uint8(0)
			if (x+y)%2 == 0 {
				v = 200
			}
			if x >= 4 {
				v = 40
			}
			src.SetNRGBA(x, y, color.NRGBA{v, v, v, 0xff})
		}
	}
	dst := Downsample(src, 4)
	if dst.Bounds() != image.Rect(0, 0, 2, 1) {
		t.Fatalf("bounds %v", dst.Bounds())
	}
	if got := dst.NRGBAAt(0, 0).R; absDiff(got, 100) > 1 {
		t.Fatalf("left block %d, want 100", got)
	}
	if got := dst.NRGBAAt(1, 0).R; absDiff(got, 40) > 1 {
		t.Fatalf("right block %d, want 40", got)
	}
	if same := Downsample(src, 1); same.NRGBAAt(0, 0) != src.NRGBAAt(0, 0) {
		t.Fatalf("k=1 changed pixels")
	}
}

func absDiff(a, b uint8) uint8 {
	if a > b {
		return a - b
	}
	return b - a
}
