package math3d

// Mat3 is a 3x3 matrix stored in column-major order, like Mat4.
type Mat3 [9]float64

// Mat3FromRows builds a matrix whose rows are a, b and c.
func Mat3FromRows(a, b, c Vec3) Mat3 {
	return Mat3{
		a.X, b.X, c.X,
		a.Y, b.Y, c.Y,
		a.Z, b.Z, c.Z,
	}
}

// Get returns the element at (row, col).
func (m Mat3) Get(row, col int) float64 {
	return m[row+col*3]
}

// Determinant returns the determinant of the matrix.
func (m Mat3) Determinant() float64 {
	return m.Get(0, 0)*(m.Get(1, 1)*m.Get(2, 2)-m.Get(1, 2)*m.Get(2, 1)) -
		m.Get(0, 1)*(m.Get(1, 0)*m.Get(2, 2)-m.Get(1, 2)*m.Get(2, 0)) +
		m.Get(0, 2)*(m.Get(1, 0)*m.Get(2, 1)-m.Get(1, 1)*m.Get(2, 0))
}

// Inverse returns the inverse computed from the adjugate.
func (m Mat3) Inverse() (Mat3, error) {
	det := m.Determinant()
	if det == 0 {
		return Mat3{}, ErrSingular
	}
	var inv Mat3
	for row := range 3 {
		for col := range 3 {
			// inverse[row][col] = cofactor[col][row] / det
			r0, r1 := others(col)
			c0, c1 := others(row)
			minor := m.Get(r0, c0)*m.Get(r1, c1) - m.Get(r0, c1)*m.Get(r1, c0)
			if (row+col)%2 == 1 {
				minor = -minor
			}
			inv[row+col*3] = minor / det
		}
	}
	return inv, nil
}

// others returns the two indices in [0,3) other than i, in order.
func others(i int) (int, int) {
	switch i {
	case 0:
		return 1, 2
	case 1:
		return 0, 2
	default:
		return 0, 1
	}
}

// MulVec3 transforms v.
func (m Mat3) MulVec3(v Vec3) Vec3 {
	return Vec3{
		m[0]*v.X + m[3]*v.Y + m[6]*v.Z,
		m[1]*v.X + m[4]*v.Y + m[7]*v.Z,
		m[2]*v.X + m[5]*v.Y + m[8]*v.Z,
	}
}
