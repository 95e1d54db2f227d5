package manipulate

import "math"

// Matrix is a 2D affine transform stored as [a, b, c, d, tx, ty]:
//
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
//
// A point (x, y) maps to (a*x + c*y + tx, b*x + d*y + ty).
type Matrix [6]float64

// Identity is the identity transform.
var Identity = Matrix{1, 0, 0, 1, 0, 0}

// singularEpsilon bounds the determinant below which a matrix is treated as
// non-invertible.
const singularEpsilon = 1e-12

// Multiply returns p * m: the transform that applies m first, then p.
func (p Matrix) Multiply(m Matrix) Matrix {
	return Matrix{
		p[0]*m[0] + p[2]*m[1],
		p[1]*m[0] + p[3]*m[1],
		p[0]*m[2] + p[2]*m[3],
		p[1]*m[2] + p[3]*m[3],
		p[0]*m[4] + p[2]*m[5] + p[4],
		p[1]*m[4] + p[3]*m[5] + p[5],
	}
}

// Determinant returns the determinant of the linear part.
func (m Matrix) Determinant() float64 {
	return m[0]*m[3] - m[2]*m[1]
}

// Invert returns the inverse of m.
// Returns the identity matrix if m is singular (determinant ≈ 0).
func (m Matrix) Invert() Matrix {
	det := m.Determinant()
	if det > -singularEpsilon && det < singularEpsilon {
		return Identity
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return Matrix{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// IsValid reports whether every component is finite and the linear part is
// invertible.
func (m Matrix) IsValid() bool {
	for _, v := range m {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	det := m.Determinant()
	return det <= -singularEpsilon || det >= singularEpsilon
}

// Apply maps the point (x, y) through m.
func (m Matrix) Apply(x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// ApplyVec maps v through m.
func (m Matrix) ApplyVec(v Vec2) Vec2 {
	x, y := m.Apply(v.X, v.Y)
	return Vec2{x, y}
}

// TransformRect returns the axis-aligned bounds of r's four corners mapped
// through m.
func (m Matrix) TransformRect(r Rect) Rect {
	x0, y0 := m.Apply(r.X, r.Y)
	x1, y1 := m.Apply(r.Right(), r.Y)
	x2, y2 := m.Apply(r.X, r.Bottom())
	x3, y3 := m.Apply(r.Right(), r.Bottom())

	minX := math.Min(math.Min(x0, x1), math.Min(x2, x3))
	maxX := math.Max(math.Max(x0, x1), math.Max(x2, x3))
	minY := math.Min(math.Min(y0, y1), math.Min(y2, y3))
	maxY := math.Max(math.Max(y0, y1), math.Max(y2, y3))
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// --- Appending operations ---
//
// Each of these applies the operation after m, in m's output space:
// m.ScaleAt(...) == scaleAbout(...).Multiply(m).

// ScaleAt returns m followed by a scale of (sx, sy) about the point (cx, cy).
func (m Matrix) ScaleAt(sx, sy, cx, cy float64) Matrix {
	s := Matrix{sx, 0, 0, sy, cx - sx*cx, cy - sy*cy}
	return s.Multiply(m)
}

// RotateAt returns m followed by a rotation of degrees about (cx, cy).
// Positive angles rotate clockwise on screen (Y down).
func (m Matrix) RotateAt(degrees, cx, cy float64) Matrix {
	sin, cos := math.Sincos(math.Mod(degrees, 360) * math.Pi / 180)
	r := Matrix{
		cos, sin, -sin, cos,
		cx - cos*cx + sin*cy,
		cy - sin*cx - cos*cy,
	}
	return r.Multiply(m)
}

// Translate returns m followed by a translation of (dx, dy).
func (m Matrix) Translate(dx, dy float64) Matrix {
	m[4] += dx
	m[5] += dy
	return m
}
