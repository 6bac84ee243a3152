package geom

// YPB is an orientation: yaw, pitch and bank (roll), in radians.
type YPB struct {
	Y, P, B Real
}

// RGB stores color components; each should be in [0,1].
type RGB struct {
	R, G, B Real
}

func (c RGB) Mul(k Real) RGB { return RGB{c.R * k, c.G * k, c.B * k} }
func (c RGB) Add(o RGB) RGB  { return RGB{c.R + o.R, c.G + o.G, c.B + o.B} }

// Modulate multiplies the channels pairwise.
func (c RGB) Modulate(o RGB) RGB { return RGB{c.R * o.R, c.G * o.G, c.B * o.B} }

func Clamp01(x Real) Real {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// Byte maps [0,1] to 0..255, clamping out-of-range input.
func Byte(x Real) uint8 {
	return uint8(Clamp01(x)*255 + 0.5)
}
