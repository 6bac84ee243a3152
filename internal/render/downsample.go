package render

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// box averages each k×k source block once the kernel is stretched by the scale factor.
var box = &xdraw.Kernel{
	Support: 0.5,
	At: func(t float64) float64 {
		if t < 0.5 {
			return 1
		}
		return 0
	},
}

// Downsample reduces src by an integer factor with a box filter.
func Downsample(src *image.NRGBA, k int) *image.NRGBA {
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx()/k, b.Dy()/k))
	if k == 1 {
		xdraw.Draw(dst, dst.Bounds(), src, b.Min, xdraw.Src)
		return dst
	}
	box.Scale(dst, dst.Bounds(), src, b, xdraw.Src, nil)
	return dst
}
