package geom

import "math"

// Yaw rotates about +Y.
func Yaw(a Real) Mat4 {
	c, s := math.Cos(a), math.Sin(a)
	M := I4()
	M.M[0][0], M.M[0][2] = c, s
	M.M[2][0], M.M[2][2] = -s, c
	return M
}

// Pitch rotates about +X.
func Pitch(a Real) Mat4 {
	c, s := math.Cos(a), math.Sin(a)
	M := I4()
	M.M[1][1], M.M[1][2] = c, -s
	M.M[2][1], M.M[2][2] = s, c
	return M
}

// Roll rotates about +Z.
func Roll(a Real) Mat4 {
	c, s := math.Cos(a), math.Sin(a)
	M := I4()
	M.M[0][0], M.M[0][1] = c, -s
	M.M[1][0], M.M[1][1] = s, c
	return M
}

// Rotation composes yaw, pitch and roll in that order (roll applied first).
func (o YPB) Rotation() Mat4 {
	return Yaw(o.Y).Mul(Pitch(o.P)).Mul(Roll(o.B))
}
