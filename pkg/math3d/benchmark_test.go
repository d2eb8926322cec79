package math3d

import (
	"testing"
)

func BenchmarkMat4Mul(b *testing.B) {
	m1 := Translate(V3(1, 2, 3))
	m2 := Viewport(0, 0, 800, 800, 1)

	for b.Loop() {
		_ = m1.Mul(m2)
	}
}

func BenchmarkMat4MulVec4(b *testing.B) {
	m := Viewport(0, 0, 800, 800, 1).Mul(Translate(V3(1, 2, 3)))
	v := V4(1, 2, 3, 1)

	for b.Loop() {
		_ = m.MulVec4(v)
	}
}

func BenchmarkMat3Inverse(b *testing.B) {
	m := Mat3FromRows(V3(1, 0, 0), V3(0, 2, 1), V3(0, 1, 3))

	for b.Loop() {
		_, _ = m.Inverse()
	}
}

func BenchmarkVec3Normalize(b *testing.B) {
	v := V3(1, 2, 3)

	for b.Loop() {
		_ = v.Normalize()
	}
}

func BenchmarkInterpolate(b *testing.B) {
	v := [3]Vec3{V3(1, 0, 0), V3(0, 1, 0), V3(0, 0, 1)}
	w := V3(0.2, 0.3, 0.5)

	for b.Loop() {
		_ = Interpolate(v, w)
	}
}
