package render

import (
	"math"

	"github.com/lukaszgryglicki/commedia/internal/geom"
	"github.com/lukaszgryglicki/commedia/internal/sampler"
)

type surfaceKind uint8

const (
	none surfaceKind = iota
	skin
	sclera
	iris
)

// surface is what one framebuffer pixel sees.
type surface struct {
	kind   surfaceKind
	left   bool
	normal geom.Vec3
	depth  float64 // window depth in [0,1]
}

// disc is an ellipse in framebuffer pixels (origin bottom-left).
type disc struct {
	cx, cy, rx, ry float64
}

func (d disc) at(px, py float64) (dx, dy float64, in bool) {
	dx, dy = (px-d.cx)/d.rx, (py-d.cy)/d.ry
	return dx, dy, dx*dx+dy*dy < 1
}

// project maps a view space sphere to its screen ellipse. ok is false behind the camera.
func project(P geom.Mat4, c geom.Vec3, r float64, fb geom.Size) (disc, bool) {
	h := P.MulVec(c.Point())
	if h.W <= 0 {
		return disc{}, false
	}
	ndc := h.Divide()
	return disc{
		cx: 0.5 * (1 + ndc.X) * float64(fb.W),
		cy: 0.5 * (1 + ndc.Y) * float64(fb.H),
		rx: r * P.M[0][0] / h.W * 0.5 * float64(fb.W),
		ry: r * P.M[1][1] / h.W * 0.5 * float64(fb.H),
	}, true
}

func windowDepth(P geom.Mat4, p geom.Vec3) float64 {
	return geom.Clamp01(0.5 * (P.MulVec(p.Point()).Divide().Z + 1))
}

type eye struct {
	left         bool
	white, pupil disc
}

// rasterize fills b.mask for inst. The head has no bank; eyes use yaw and pitch only.
func (b *Billboard) rasterize(P geom.Mat4, inst *sampler.Instance) {
	for i := range b.mask {
		b.mask[i] = surface{}
	}
	fb := b.Framebuffer()
	c := inst.HeadPos
	head, ok := project(P, c, b.rad, fb)
	if !ok {
		return
	}
	// model matrices: head = T(pos)*yaw*pitch, eye = head*T(offset)*yaw*pitch*S(eyeSize)
	headM := geom.Translate(c).Mul(geom.Yaw(inst.HeadDir.Y)).Mul(geom.Pitch(inst.HeadDir.P))
	eyeScale := geom.Scale(geom.Vec3{X: eyeSize, Y: eyeSize, Z: eyeSize})
	var eyes []eye
	for _, e := range []struct {
		left bool
		pos  geom.Vec3
		dir  geom.YPB
	}{{true, leftEyePos, inst.LeftEye}, {false, rightEyePos, inst.RightEye}} {
		n := headM.MulVec(e.pos.Norm().Dir()).XYZ()
		eyeM := headM.Mul(geom.Translate(e.pos.Norm().Mul(b.rad))).
			Mul(geom.Yaw(e.dir.Y)).Mul(geom.Pitch(e.dir.P)).Mul(eyeScale)
		p := eyeM.MulVec(geom.Vec3{}.Point()).XYZ()
		if n.Dot(p.Mul(-1)) <= 0 {
			continue
		}
		white, ok := project(P, p, eyeSize, fb)
		if !ok {
			continue
		}
		ic := eyeM.MulVec(geom.Vec3{Z: irisRadius}.Point()).XYZ()
		pupil, ok := project(P, ic, eyeSize*irisRadius, fb)
		if !ok {
			continue
		}
		eyes = append(eyes, eye{left: e.left, white: white, pupil: pupil})
	}

	x0, x1 := clampSpan(head.cx-head.rx, head.cx+head.rx, fb.W)
	y0, y1 := clampSpan(head.cy-head.ry, head.cy+head.ry, fb.H)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			px, py := float64(x)+0.5, float64(y)+0.5
			dx, dy, in := head.at(px, py)
			if !in {
				continue
			}
			n := geom.Vec3{X: dx, Y: dy, Z: math.Sqrt(1 - dx*dx - dy*dy)}
			s := surface{kind: skin, normal: n, depth: windowDepth(P, c.Add(n.Mul(b.rad)))}
			for _, e := range eyes {
				if _, _, in := e.white.at(px, py); in {
					s.kind, s.left = sclera, e.left
					if _, _, in := e.pupil.at(px, py); in {
						s.kind = iris
					}
				}
			}
			b.mask[y*fb.W+x] = s
		}
	}
}

func clampSpan(lo, hi float64, n int) (int, int) {
	a, b := int(math.Floor(lo)), int(math.Ceil(hi))
	if a < 0 {
		a = 0
	}
	if b > n {
		b = n
	}
	return a, b
}
