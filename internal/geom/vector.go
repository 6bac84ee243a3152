package geom

import "math"

type Real = float64

// Vec2 is a 2D point, used for screen coordinates.
type Vec2 struct {
	X, Y Real
}

// Vec3 represents a point or a direction in 3D space.
type Vec3 struct {
	X, Y, Z Real
}

// Vec4 is a homogeneous coordinate.
type Vec4 struct {
	X, Y, Z, W Real
}

func (a Vec3) Add(b Vec3) Vec3 { return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z} }
func (a Vec3) Sub(b Vec3) Vec3 { return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z} }
func (v Vec3) Mul(s Real) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// Dot returns the dot product between two 3D vectors.
func (a Vec3) Dot(b Vec3) Real {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

// Len returns the Euclidean length of the vector.
func (v Vec3) Len() Real { return math.Sqrt(v.Dot(v)) }

// Norm returns a unit-length version of the vector.
func (v Vec3) Norm() Vec3 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return Vec3{v.X / l, v.Y / l, v.Z / l}
}

// Point lifts v to homogeneous coordinates with w=1.
func (v Vec3) Point() Vec4 { return Vec4{v.X, v.Y, v.Z, 1} }

// Dir lifts v to homogeneous coordinates with w=0.
func (v Vec3) Dir() Vec4 { return Vec4{v.X, v.Y, v.Z, 0} }

// Divide performs the perspective divide.
func (h Vec4) Divide() Vec3 {
	return Vec3{h.X / h.W, h.Y / h.W, h.Z / h.W}
}

func (h Vec4) XYZ() Vec3 { return Vec3{h.X, h.Y, h.Z} }

// Size is a pixel extent.
type Size struct {
	W, H int
}

func (s Size) Scale(k int) Size { return Size{s.W * k, s.H * k} }

// Covers reports whether s is at least as large as o in both dimensions.
func (s Size) Covers(o Size) bool { return s.W >= o.W && s.H >= o.H }
