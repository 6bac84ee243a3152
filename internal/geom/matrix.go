package geom

import "math"

// 4×4 matrix (row-major), applied to column vectors.
type Mat4 struct {
	M [4][4]Real
}

func I4() Mat4 {
	var M Mat4
	for i := range M.M {
		M.M[i][i] = 1
	}
	return M
}

func (A Mat4) row(i int) Vec4 {
	r := A.M[i]
	return Vec4{r[0], r[1], r[2], r[3]}
}

func (A Mat4) col(j int) Vec4 {
	return Vec4{A.M[0][j], A.M[1][j], A.M[2][j], A.M[3][j]}
}

func dot4(a, b Vec4) Real { return a.X*b.X + a.Y*b.Y + a.Z*b.Z + a.W*b.W }

// Mul returns A*B, so B applies first.
func (A Mat4) Mul(B Mat4) Mat4 {
	var R Mat4
	for j := range 4 {
		c := A.MulVec(B.col(j))
		R.M[0][j], R.M[1][j], R.M[2][j], R.M[3][j] = c.X, c.Y, c.Z, c.W
	}
	return R
}

func (A Mat4) MulVec(v Vec4) Vec4 {
	return Vec4{dot4(A.row(0), v), dot4(A.row(1), v), dot4(A.row(2), v), dot4(A.row(3), v)}
}

// Perspective builds an OpenGL style projection; the camera looks down -Z.
// fovy is the vertical field of view in degrees.
func Perspective(fovy, aspect, near, far Real) Mat4 {
	f := 1 / math.Tan(fovy*math.Pi/360)
	var P Mat4
	P.M[0][0] = f / aspect
	P.M[1][1] = f
	P.M[2][2] = (far + near) / (near - far)
	P.M[2][3] = 2 * far * near / (near - far)
	P.M[3][2] = -1
	return P
}

func Translate(t Vec3) Mat4 {
	M := I4()
	M.M[0][3], M.M[1][3], M.M[2][3] = t.X, t.Y, t.Z
	return M
}

func Scale(s Vec3) Mat4 {
	M := I4()
	M.M[0][0], M.M[1][1], M.M[2][2] = s.X, s.Y, s.Z
	return M
}
