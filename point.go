package manifolds

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"
)

// === Numeric Helpers =======================================================

// Deg2Rad is a constant for converting from DEG to RAD or vice versa
const Deg2Rad float64 = math.Pi / 180

// Epsilon : numbers below ε are considered 0
var Epsilon float64 = 0.0000001

// Is0 is a predicate: is n = 0 ?
func Is0(n float64) bool {
	return math.Abs(n) <= Epsilon
}

// Is1 is a predicate: is n = 1.0 ?
func Is1(n float64) bool {
	return math.Abs(1-n) <= Epsilon
}

// Zap makes n = 0 if n "means" to be zero
func Zap(n float64) float64 {
	if Is0(n) {
		n = 0
	}
	return n
}

// === Point Data Type =======================================================

// MaxDim is the largest number of components a Point may carry.
const MaxDim = 3

// Point is a location (or, for tangents, a direction) with 1 to 3 real
// components. Points are values and never change after construction.
type Point struct {
	x   [MaxDim]float64
	dim int
}

// P is a quick notation for constructing a point from its coordinates.
// P panics if given no coordinates or more than MaxDim of them.
func P(coords ...float64) Point {
	if len(coords) == 0 || len(coords) > MaxDim {
		panic(fmt.Sprintf("manifolds: cannot create point of dimension %d", len(coords)))
	}
	var p Point
	p.dim = copy(p.x[:], coords)
	return p
}

// Origin returns the point (0,…,0) of dimension dim.
func Origin(dim int) Point {
	if dim < 1 || dim > MaxDim {
		panic(fmt.Sprintf("manifolds: cannot create point of dimension %d", dim))
	}
	return Point{dim: dim}
}

// UnitVector returns the unit vector along coordinate axis i in dimension dim.
func UnitVector(dim, i int) Point {
	p := Origin(dim)
	p.x[i] = 1
	return p
}

// Pretty Stringer for points.
func (p Point) String() string {
	var sb strings.Builder
	sb.WriteByte('(')
	for i := 0; i < p.dim; i++ {
		if i > 0 {
			sb.WriteByte(',')
		}
		fmt.Fprintf(&sb, "%g", p.x[i])
	}
	sb.WriteByte(')')
	return sb.String()
}

// Dim is the number of components of p.
func (p Point) Dim() int {
	return p.dim
}

// At returns component i.
func (p Point) At(i int) float64 {
	if i >= p.dim {
		panic(fmt.Sprintf("manifolds: index %d out of range for point %v", i, p))
	}
	return p.x[i]
}

// X is the first component of a point.
func (p Point) X() float64 { return p.x[0] }

// Y is the second component of a point, or 0 for 1D points.
func (p Point) Y() float64 { return p.x[1] }

// Z is the third component of a point, or 0 for points of lower dimension.
func (p Point) Z() float64 { return p.x[2] }

// Coords returns a fresh slice of the components of p.
func (p Point) Coords() []float64 {
	c := make([]float64, p.dim)
	copy(c, p.x[:p.dim])
	return c
}

// With returns a copy of p with component i set to v.
func (p Point) With(i int, v float64) Point {
	if i >= p.dim {
		panic(fmt.Sprintf("manifolds: index %d out of range for point %v", i, p))
	}
	p.x[i] = v
	return p
}

func (p Point) mustMatch(q Point) {
	if p.dim != q.dim {
		panic(fmt.Sprintf("manifolds: dimension mismatch %v vs %v", p, q))
	}
}

// Add returns p + q.
func (p Point) Add(q Point) Point {
	p.mustMatch(q)
	floats.Add(p.x[:p.dim], q.x[:q.dim])
	return p
}

// Sub returns p − q.
func (p Point) Sub(q Point) Point {
	p.mustMatch(q)
	floats.Sub(p.x[:p.dim], q.x[:q.dim])
	return p
}

// Scaled returns a new point scaled by factor a.
func (p Point) Scaled(a float64) Point {
	floats.Scale(a, p.x[:p.dim])
	return p
}

// AddScaled returns p + a⋅q.
func (p Point) AddScaled(a float64, q Point) Point {
	p.mustMatch(q)
	floats.AddScaled(p.x[:p.dim], a, q.x[:q.dim])
	return p
}

// Lerp returns the linear interpolation (1−w)⋅p + w⋅q.
func (p Point) Lerp(q Point, w float64) Point {
	return p.AddScaled(w, q.Sub(p))
}

// Dot returns the scalar product p⋅q.
func (p Point) Dot(q Point) float64 {
	p.mustMatch(q)
	return floats.Dot(p.x[:p.dim], q.x[:q.dim])
}

// Norm returns the Euclidean length of p.
func (p Point) Norm() float64 {
	return floats.Norm(p.x[:p.dim], 2)
}

// Distance returns the Euclidean distance between p and q.
func (p Point) Distance(q Point) float64 {
	p.mustMatch(q)
	return floats.Distance(p.x[:p.dim], q.x[:q.dim], 2)
}

// Unit returns p scaled to length 1. The zero vector is returned unchanged.
func (p Point) Unit() Point {
	n := p.Norm()
	if n == 0 {
		return p
	}
	return p.Scaled(1 / n)
}

// Cross returns the cross product p × q of two 3D vectors.
func (p Point) Cross(q Point) Point {
	if p.dim != 3 || q.dim != 3 {
		panic(fmt.Sprintf("manifolds: cross product needs 3D vectors, have %v and %v", p, q))
	}
	return FromVec(r3.Cross(p.Vec(), q.Vec()), 3)
}

// IsOrigin is a predicate: is this point the origin?
func (p Point) IsOrigin() bool {
	return p.Equal(Origin(p.dim))
}

// Equal compares two points component-wise up to Epsilon.
func (p Point) Equal(q Point) bool {
	if p.dim != q.dim {
		return false
	}
	for i := 0; i < p.dim; i++ {
		if !Is0(p.x[i] - q.x[i]) {
			return false
		}
	}
	return true
}

// Zap rounds every component to zero which "means" to be zero.
func (p Point) Zap() Point {
	for i := 0; i < p.dim; i++ {
		p.x[i] = Zap(p.x[i])
	}
	return p
}

// IsFinite is false if any component is NaN or infinite.
func (p Point) IsFinite() bool {
	for i := 0; i < p.dim; i++ {
		if math.IsNaN(p.x[i]) || math.IsInf(p.x[i], 0) {
			return false
		}
	}
	return true
}

// === Embedding into R³ =====================================================

// Vec embeds p into R³. Missing components are zero.
func (p Point) Vec() r3.Vec {
	return r3.Vec{X: p.x[0], Y: p.x[1], Z: p.x[2]}
}

// FromVec projects v onto the first dim coordinates.
func FromVec(v r3.Vec, dim int) Point {
	p := Origin(dim)
	c := [MaxDim]float64{v.X, v.Y, v.Z}
	copy(p.x[:dim], c[:dim])
	return p
}

// Rotated returns a new point rotated around axis by theta (right-handed,
// radians). axis is taken as a vector in R³ and must not be zero; 2D points
// stay in the xy-plane only for axis ±e_z.
func (p Point) Rotated(axis Point, theta float64) Point {
	rot := r3.NewRotation(theta, axis.Vec())
	return FromVec(rot.Rotate(p.Vec()), p.dim)
}
