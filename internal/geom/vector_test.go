package geom

import (
	"math"
	"testing"
)

func TestVectorOps(t *testing.T) {
	v := Vec3{1, 2, 3}
	w := Vec3{-1, 0.5, 2}

	if add := v.Add(w); add != (Vec3{0, 2.5, 5}) {
		t.Fatalf("Add mismatch: %+v", add)
	}
	if sub := v.Sub(w); sub != (Vec3{2, 1.5, 1}) {
		t.Fatalf("Sub mismatch: %+v", sub)
	}
	if mul := v.Mul(3); mul != (Vec3{3, 6, 9}) {
		t.Fatalf("Mul mismatch: %+v", mul)
	}
	if dot := v.Dot(w); dot != 6 {
		t.Fatalf("Dot mismatch: got %.12g want 6", dot)
	}
	if l := v.Len(); math.Abs(l-math.Sqrt(14)) > 1e-12 {
		t.Fatalf("Len mismatch: %.12g", l)
	}
	if n := v.Norm(); math.Abs(n.Len()-1) > 1e-12 {
		t.Fatalf("Norm not unit: %.12g", n.Len())
	}
	if z := (Vec3{}).Norm(); z != (Vec3{}) {
		t.Fatalf("zero vector Norm changed: %+v", z)
	}
}

func TestSizeCovers(t *testing.T) {
	fb := Size{256, 192}.Scale(4)
	if fb != (Size{1024, 768}) {
		t.Fatalf("Scale mismatch: %+v", fb)
	}
	if !(Size{1024, 768}).Covers(fb) || (Size{1023, 800}).Covers(fb) {
		t.Fatal("Covers failed")
	}
}

func TestByteClamps(t *testing.T) {
	if Byte(-1) != 0 || Byte(2) != 255 || Byte(0.5) != 128 {
		t.Fatalf("Byte mapping wrong: %d %d %d", Byte(-1), Byte(2), Byte(0.5))
	}
}
