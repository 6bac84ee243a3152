package sampler

import (
	"image"
	"math/rand/v2"

	"github.com/lukaszgryglicki/commedia/internal/config"
	"github.com/lukaszgryglicki/commedia/internal/geom"
)

// Background is either a solid color or a cropped image the size of the framebuffer.
type Background struct {
	Color geom.RGB
	Image *image.NRGBA
}

func (b Background) IsImage() bool { return b.Image != nil }

// Instance is one fully resolved scene draw.
type Instance struct {
	HeadPos    geom.Vec3
	HeadDir    geom.YPB
	LeftEye    geom.YPB
	RightEye   geom.YPB
	LightDir   geom.YPB
	LightColor geom.RGB
	Background Background
	Ambient    geom.RGB
	Skin       geom.RGB
	Sclera     geom.RGB
	Iris       geom.RGB
}

// draw resolves every distribution of s once. The order of draws is fixed;
// bg runs between the light and the material colors.
func draw(s *config.Session, rng *rand.Rand, bg func() (Background, error)) (*Instance, error) {
	inst := &Instance{}
	inst.HeadPos = s.HeadPos.Sample(rng)
	inst.HeadDir = s.HeadDir.Sample(rng)
	inst.LeftEye = s.LeftEye.Sample(rng)
	inst.RightEye = s.RightEye.Sample(rng)
	inst.LightDir = s.LightDir.Sample(rng)
	inst.LightColor = s.LightColor.Sample(rng)
	b, err := bg()
	if err != nil {
		return nil, err
	}
	inst.Background = b
	inst.Ambient = s.Ambient.Sample(rng)
	inst.Skin = s.Skin.Sample(rng)
	inst.Sclera = s.Sclera.Sample(rng)
	inst.Iris = s.Iris.Sample(rng)
	return inst, nil
}

// CropFlipped copies r out of src into a new image, flipping it vertically.
func CropFlipped(src image.Image, r image.Rectangle) *image.NRGBA {
	w, h := r.Dx(), r.Dy()
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dst.Set(x, h-1-y, src.At(r.Min.X+x, r.Min.Y+y))
		}
	}
	return dst
}
