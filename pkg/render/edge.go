package render

import "github.com/taigrr/tinyrender/pkg/math3d"

// edgeFunc returns the signed doubled area of (a, b, p): positive when p is
// left of a->b, zero on the line. The endpoints are evaluated in a fixed
// order so edgeFunc(a, b, p) == -edgeFunc(b, a, p) exactly, which keeps
// the edge shared by two triangles consistent between them.
func edgeFunc(a, b, p math3d.Vec2) float64 {
	if b.X < a.X || (b.X == a.X && b.Y < a.Y) {
		return -edgeFunc(b, a, p)
	}
	return (b.X-a.X)*(p.Y-a.Y) - (b.Y-a.Y)*(p.X-a.X)
}

// ownsEdge decides which of two triangles sharing an edge draws the pixels
// lying exactly on it. d is the edge direction with the triangle wound
// counter-clockwise; the neighbor sees -d, so exactly one side owns it.
func ownsEdge(d math3d.Vec2) bool {
	return d.Y > 0 || (d.Y == 0 && d.X > 0)
}

// Barycentric returns the barycentric coordinates of p in triangle abc.
// A zero-area triangle yields (-1, 1, 1), which no inside test accepts.
func Barycentric(a, b, c, p math3d.Vec2) math3d.Vec3 {
	w0 := edgeFunc(b, c, p)
	w1 := edgeFunc(c, a, p)
	w2 := edgeFunc(a, b, p)
	area := w0 + w1 + w2
	if area == 0 || edgeFunc(a, b, c) == 0 {
		return math3d.V3(-1, 1, 1)
	}
	return math3d.V3(w0/area, w1/area, w2/area)
}

// covers applies the inside test to barycentric coordinates bc of a pixel
// center in triangle pts. Pixels on an edge are accepted only when the
// triangle owns that edge.
func covers(pts [3]math3d.Vec2, bc math3d.Vec3) bool {
	w := [3]float64{bc.X, bc.Y, bc.Z}
	ccw := edgeFunc(pts[0], pts[1], pts[2]) > 0
	for i := range 3 {
		switch {
		case w[i] > 0:
		case w[i] == 0:
			// The edge opposite vertex i runs from j to k.
			j, k := pts[(i+1)%3], pts[(i+2)%3]
			d := k.Sub(j)
			if !ccw {
				d = d.Scale(-1)
			}
			if !ownsEdge(d) {
				return false
			}
		default: // negative or NaN
			return false
		}
	}
	return true
}
