package geom

import (
	"math"
	"testing"
)

func TestYPBRotationIsOrthonormal(t *testing.T) {
	R := YPB{Y: math.Pi / 6, P: math.Pi / 7, B: math.Pi / 5}.Rotation()
	I := I4()
	for i := range 4 {
		for j := range 4 {
			diff := math.Abs(dot4(R.col(i), R.col(j)) - I.M[i][j])
			if diff > 1e-12 {
				t.Fatalf("columns %d,%d not orthonormal: %.3g", i, j, diff)
			}
		}
	}
}

func TestAxisRotations(t *testing.T) {
	cases := []struct {
		name string
		R    Mat4
		in   Vec3
		want Vec3
	}{
		{"yaw", Yaw(math.Pi / 2), Vec3{0, 0, 1}, Vec3{1, 0, 0}},
		{"pitch", Pitch(math.Pi / 2), Vec3{0, 1, 0}, Vec3{0, 0, 1}},
		{"roll", Roll(math.Pi / 2), Vec3{1, 0, 0}, Vec3{0, 1, 0}},
	}
	for _, c := range cases {
		o := c.R.MulVec(c.in.Dir()).XYZ()
		if o.Sub(c.want).Len() > 1e-12 {
			t.Fatalf("%s failed: %+v", c.name, o)
		}
		if math.Abs(o.Len()-1) > 1e-12 {
			t.Fatalf("%s broke length: %.12g", c.name, o.Len())
		}
	}
}
