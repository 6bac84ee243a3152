package sampler

import (
	"image"

	"github.com/lukaszgryglicki/commedia/internal/geom"
)

// Face pixels of the diagnostic pass have all channels in [faceLo, faceHi).
const (
	faceLo = 0x70
	faceHi = 0x90
)

// InFrustum reports whether p projects strictly inside the X/Y clip range.
// Near/far and the sign of w are not checked beyond what the inequalities imply.
func InFrustum(P geom.Mat4, p geom.Vec3) bool {
	h := P.MulVec(p.Point())
	return h.X > -h.W && h.X < h.W && h.Y > -h.W && h.Y < h.W
}

// FaceVisible scans a diagnostic render for at least one face pixel.
func FaceVisible(img *image.NRGBA) bool {
	if img == nil {
		return false
	}
	b := img.Bounds()
	for y := 0; y < b.Dy(); y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+b.Dx()*4]
		for i := 0; i < len(row); i += 4 {
			r, g, bl := row[i], row[i+1], row[i+2]
			if r >= faceLo && r < faceHi && g >= faceLo && g < faceHi && bl >= faceLo && bl < faceHi {
				return true
			}
		}
	}
	return false
}
