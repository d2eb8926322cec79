package math3d

// Clamp limits x to [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	return max(lo, min(hi, x))
}

// Smoothstep performs Hermite interpolation of x between edge0 and edge1.
func Smoothstep(edge0, edge1, x float64) float64 {
	t := Clamp((x-edge0)/(edge1-edge0), 0, 1)
	return t * t * (3 - 2*t)
}
