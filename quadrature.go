package manifolds

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// WeightSumTolerance is the allowed deviation of the sum of quadrature
// weights from 1.
const WeightSumTolerance = 1e-10

var (
	// ErrEmptyQuadrature indicates a weighted point set without points.
	ErrEmptyQuadrature = errors.New("quadrature must contain at least one point")
	// ErrWeightCount indicates different numbers of points and weights.
	ErrWeightCount = errors.New("quadrature needs one weight per point")
	// ErrNegativeWeight indicates a weight below zero.
	ErrNegativeWeight = errors.New("quadrature weights must not be negative")
	// ErrWeightSum indicates weights not summing up to 1.
	ErrWeightSum = errors.New("quadrature weights must sum to 1")
	// ErrDimension indicates points of differing or unsupported dimension.
	ErrDimension = errors.New("dimension mismatch")
)

// Quadrature is an ordered set of weighted points. Weights are non-negative
// and sum up to 1. Quadratures are consumed by Manifold.Average and never
// retained beyond the call.
type Quadrature struct {
	points  []Point
	weights []float64
}

// NewQuadrature creates a weighted point set, checking its invariants.
// The arguments are copied.
func NewQuadrature(points []Point, weights []float64) (Quadrature, error) {
	if len(points) == 0 {
		return Quadrature{}, ErrEmptyQuadrature
	}
	if len(points) != len(weights) {
		return Quadrature{}, fmt.Errorf("%w: %d points, %d weights", ErrWeightCount, len(points), len(weights))
	}
	dim := points[0].Dim()
	for i, p := range points {
		if p.Dim() != dim || dim == 0 {
			return Quadrature{}, fmt.Errorf("%w: point %d is %v", ErrDimension, i, p)
		}
	}
	for i, w := range weights {
		if w < 0 || math.IsNaN(w) {
			return Quadrature{}, fmt.Errorf("%w: weight %d is %g", ErrNegativeWeight, i, w)
		}
	}
	if sum := floats.Sum(weights); math.Abs(sum-1) > WeightSumTolerance {
		return Quadrature{}, fmt.Errorf("%w: sum is %g", ErrWeightSum, sum)
	}
	q := Quadrature{
		points:  make([]Point, len(points)),
		weights: make([]float64, len(weights)),
	}
	copy(q.points, points)
	copy(q.weights, weights)
	return q, nil
}

// MustQuadrature is like NewQuadrature, but panics on invalid input.
func MustQuadrature(points []Point, weights []float64) Quadrature {
	q, err := NewQuadrature(points, weights)
	if err != nil {
		panic(err)
	}
	return q
}

// Pair is a quick notation for the two-point quadrature (1−w)⋅p1 + w⋅p2.
func Pair(p1, p2 Point, w float64) (Quadrature, error) {
	return NewQuadrature([]Point{p1, p2}, []float64{1 - w, w})
}

// Size is the number of points.
func (q Quadrature) Size() int {
	return len(q.points)
}

// Point returns point i.
func (q Quadrature) Point(i int) Point {
	return q.points[i]
}

// Weight returns weight i.
func (q Quadrature) Weight(i int) float64 {
	return q.weights[i]
}

// Dim is the dimension of the points.
func (q Quadrature) Dim() int {
	if len(q.points) == 0 {
		return 0
	}
	return q.points[0].Dim()
}

// check re-validates q. A zero Quadrature value is reported as empty.
func (q Quadrature) check() error {
	if len(q.points) == 0 {
		return ErrEmptyQuadrature
	}
	return nil
}

// Debug Stringer for a quadrature.
func (q Quadrature) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, p := range q.points {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%g:%v", q.weights[i], p)
	}
	sb.WriteByte('}')
	return sb.String()
}

// reduce folds a quadrature into a single point by sequential pairwise
// blending. The running point carries the accumulated weight w; point i
// enters with factor w_i/(w+w_i). While w is still zero, point i is taken
// as it is.
func reduce(q Quadrature, blend func(p1, p2 Point, w float64) Point) (Point, error) {
	if err := q.check(); err != nil {
		return Point{}, err
	}
	p := q.points[0]
	w := q.weights[0]
	for i := 1; i < len(q.points); i++ {
		wi := q.weights[i]
		if w != 0 {
			p = blend(p, q.points[i], wi/(w+wi))
		} else {
			p = q.points[i]
		}
		w += wi
	}
	return p, nil
}
