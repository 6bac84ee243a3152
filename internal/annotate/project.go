// Package annotate computes and persists the per-image annotation rows.
package annotate

import "github.com/lukaszgryglicki/commedia/internal/geom"

// Project maps a head position to normalized device coordinates and to pixel
// coordinates of an image of the given size (origin top-left, Y down).
// A point on the camera plane (w=0) yields Inf/NaN; no error is reported.
func Project(P geom.Mat4, headPos geom.Vec3, size geom.Size) (ndc geom.Vec3, screen geom.Vec2) {
	ndc = P.MulVec(headPos.Point()).Divide()
	screen = geom.Vec2{
		X: 0.5 * (1 + ndc.X) * geom.Real(size.W),
		Y: 0.5 * (1 - ndc.Y) * geom.Real(size.H),
	}
	return ndc, screen
}
