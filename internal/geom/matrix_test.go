package geom

import (
	"math"
	"testing"
)

func TestI4MulVec(t *testing.T) {
	I := I4()
	v := Vec4{1, 2, 3, 4}
	out := I.MulVec(v)
	if out != v {
		t.Fatalf("I*v != v: %+v", out)
	}
}

func TestMulOrder(t *testing.T) {
	M := Mat4{M: [4][4]Real{
		{1, 2, 3, 4},
		{0, 1, 0, 0.5},
		{2, 0, 1, -1},
		{0, 0, 0.25, 1},
	}}
	if M.Mul(I4()) != M || I4().Mul(M) != M {
		t.Fatal("identity must be neutral")
	}
	// (A*B)v == A(Bv)
	A := Translate(Vec3{1, -2, 0.5})
	B := Yaw(0.3).Mul(M)
	v := Vec4{0.5, -1, 2, 1}
	lhs := A.Mul(B).MulVec(v)
	rhs := A.MulVec(B.MulVec(v))
	if math.Abs(lhs.X-rhs.X)+math.Abs(lhs.Y-rhs.Y)+math.Abs(lhs.Z-rhs.Z)+math.Abs(lhs.W-rhs.W) > 1e-12 {
		t.Fatalf("product order wrong: %+v vs %+v", lhs, rhs)
	}
	if got := M.Mul(M).M[0][1]; got != 1*2+2*1+3*0+4*0 {
		t.Fatalf("M*M[0][1] = %g", got)
	}
}

func TestPerspectiveDepthRange(t *testing.T) {
	P := Perspective(30, 4.0/3.0, 0.1, 100)
	near := P.MulVec(Vec3{0, 0, -0.1}.Point()).Divide()
	far := P.MulVec(Vec3{0, 0, -100}.Point()).Divide()
	if math.Abs(near.Z+1) > 1e-9 || math.Abs(far.Z-1) > 1e-9 {
		t.Fatalf("depth range wrong: near=%.12g far=%.12g", near.Z, far.Z)
	}
	// top edge of the view volume maps to ndc y=1
	z := -2.0
	top := -z * math.Tan(15*math.Pi/180)
	h := P.MulVec(Vec3{0, top, z}.Point())
	if math.Abs(h.Y-h.W) > 1e-9 {
		t.Fatalf("fovy edge not at y=w: y=%.12g w=%.12g", h.Y, h.W)
	}
}

func TestTranslateScale(t *testing.T) {
	M := Translate(Vec3{1, 2, 3}).Mul(Scale(Vec3{2, 2, 2}))
	o := M.MulVec(Vec3{1, 1, 1}.Point())
	if o != (Vec4{3, 4, 5, 1}) {
		t.Fatalf("translate*scale mismatch: %+v", o)
	}
	d := M.MulVec(Vec3{1, 0, 0}.Dir())
	if d != (Vec4{2, 0, 0, 0}) {
		t.Fatalf("directions must ignore translation: %+v", d)
	}
}
