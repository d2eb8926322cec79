package math3d

// Mat4 is a 4x4 matrix stored in column-major order.
//
// Memory layout (indices):
// | 0  4  8  12 |
// | 1  5  9  13 |
// | 2  6  10 14 |
// | 3  7  11 15 |
type Mat4 [16]float64

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translate creates a translation matrix.
func Translate(v Vec3) Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		v.X, v.Y, v.Z, 1,
	}
}

// ScaleUniform creates a uniform scaling matrix.
func ScaleUniform(s float64) Mat4 {
	return Mat4{
		s, 0, 0, 0,
		0, s, 0, 0,
		0, 0, s, 0,
		0, 0, 0, 1,
	}
}

// ViewMatrix creates a camera frame looking from eye towards center. The
// frame's axes are translated by eye-center, so with center at the origin
// the eye sits at the frame's origin and center lands on -z.
func ViewMatrix(eye, center, up Vec3) (Mat4, error) {
	dir := eye.Sub(center)
	if dir.IsZero() || IsParallel(up, dir) {
		return Mat4{}, ErrDivideByZero
	}
	z := dir.Normalize()
	x := up.Cross(z).Normalize()
	y := z.Cross(x).Normalize()

	m := Identity()
	for col, v := range [3]float64{x.X, x.Y, x.Z} {
		m.Set(0, col, v)
	}
	for col, v := range [3]float64{y.X, y.Y, y.Z} {
		m.Set(1, col, v)
	}
	for col, v := range [3]float64{z.X, z.Y, z.Z} {
		m.Set(2, col, v)
	}
	m.Set(0, 3, -x.Dot(dir))
	m.Set(1, 3, -y.Dot(dir))
	m.Set(2, 3, -z.Dot(dir))
	return m, nil
}

// Perspective creates a central projection with the eye at distance d from
// the projection plane. Nearer points get larger w-divided z.
func Perspective(d float64) (Mat4, error) {
	if d == 0 {
		return Mat4{}, ErrDivideByZero
	}
	m := Identity()
	m.Set(2, 2, 1/d)
	m.Set(3, 2, -1/d)
	return m, nil
}

// Orthographic creates a parallel projection of a w×h×d box onto NDC.
func Orthographic(w, h, d float64) (Mat4, error) {
	if w == 0 || h == 0 || d == 0 {
		return Mat4{}, ErrDivideByZero
	}
	m := Identity()
	m.Set(0, 0, 2/w)
	m.Set(1, 1, 2/h)
	m.Set(2, 2, 2/d)
	m.Set(2, 3, 1)
	return m, nil
}

// Viewport maps NDC [-1,1] onto [x,x+w] × [y,y+h] and z onto [0,depth].
func Viewport(x, y, w, h, depth float64) Mat4 {
	m := Identity()
	m.Set(0, 0, w/2)
	m.Set(0, 3, x+w/2)
	m.Set(1, 1, h/2)
	m.Set(1, 3, y+h/2)
	m.Set(2, 2, depth/2)
	m.Set(2, 3, depth/2)
	return m
}

// Mul multiplies two matrices: a * b.
//
//nolint:st1016 // a*b naming convention is clearer for matrix multiplication
func (a Mat4) Mul(b Mat4) Mat4 {
	var m Mat4
	for col := range 4 {
		for row := range 4 {
			var sum float64
			for k := range 4 {
				sum += a[row+k*4] * b[k+col*4]
			}
			m[row+col*4] = sum
		}
	}
	return m
}

// MulVec3 transforms a Vec3 as an affine point (w=1, no divide).
func (m Mat4) MulVec3(v Vec3) Vec3 {
	return m.MulVec4(V4FromV3(v, 1)).Vec3()
}

// MulVec3Dir transforms a Vec3 as a direction (w=0, no translation).
func (m Mat4) MulVec3Dir(v Vec3) Vec3 {
	return m.MulVec4(V4FromV3(v, 0)).Vec3()
}

// MulVec4 transforms a Vec4.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4{
		m[0]*v.X + m[4]*v.Y + m[8]*v.Z + m[12]*v.W,
		m[1]*v.X + m[5]*v.Y + m[9]*v.Z + m[13]*v.W,
		m[2]*v.X + m[6]*v.Y + m[10]*v.Z + m[14]*v.W,
		m[3]*v.X + m[7]*v.Y + m[11]*v.Z + m[15]*v.W,
	}
}

// Get returns the element at (row, col).
func (m Mat4) Get(row, col int) float64 {
	return m[row+col*4]
}

// Set sets the element at (row, col).
func (m *Mat4) Set(row, col int, val float64) {
	m[row+col*4] = val
}
