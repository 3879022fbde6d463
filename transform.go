package mindpaper

import "math"

// View matrices are stored column-major as [a, b, c, d, tx, ty] and map
// (x, y) to (a*x + c*y + tx, b*x + d*y + ty). The viewport only ever
// produces uniform scale plus translation, so b and c stay zero.

var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

// scaleTranslate returns the matrix that first shifts by (tx, ty) and then
// scales by s.
func scaleTranslate(s, tx, ty float64) [6]float64 {
	return [6]float64{s, 0, 0, s, s * tx, s * ty}
}

// invertAffine returns the inverse of m, or the identity when m collapses
// the plane.
func invertAffine(m [6]float64) [6]float64 {
	a, b, c, d, tx, ty := m[0], m[1], m[2], m[3], m[4], m[5]
	det := a*d - b*c
	if math.Abs(det) < 1e-12 {
		return identityTransform
	}
	ia, ib := d/det, -b/det
	ic, id := -c/det, a/det
	return [6]float64{ia, ib, ic, id, -(ia*tx + ic*ty), -(ib*tx + id*ty)}
}

func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// finite reports whether no value is NaN or infinite.
func finite(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
