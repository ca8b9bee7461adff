package manifolds

import "fmt"

// FlatManifold is Euclidean space, optionally with periodic coordinate
// axes. Blending is linear. Along a periodic axis the second point is moved
// by whole periods towards the first one before blending; results are not
// wrapped back into [0, period).
type FlatManifold struct {
	dim    int
	period Point
}

// NewFlatManifold creates a non-periodic flat manifold in dimension dim.
func NewFlatManifold(dim int) FlatManifold {
	return FlatManifold{dim: dim, period: Origin(dim)}
}

// NewPeriodicFlatManifold creates a flat manifold whose axis d is periodic
// with period[d], unless period[d] is 0. Periods must not be negative.
func NewPeriodicFlatManifold(period Point) (FlatManifold, error) {
	for d := 0; d < period.Dim(); d++ {
		if period.At(d) < 0 {
			return FlatManifold{}, fmt.Errorf("%w: %g for axis %d", ErrInvalidPeriod, period.At(d), d)
		}
	}
	return FlatManifold{dim: period.Dim(), period: period}, nil
}

// Periodicity returns the period of every axis, 0 for non-periodic ones.
func (m FlatManifold) Periodicity() Point {
	return m.period
}

// Blend interpolates linearly between p1 and p2.
func (m FlatManifold) Blend(p1, p2 Point, w float64) Point {
	return p1.Lerp(shiftPeriodic(p1, p2, m.period), w)
}

// Average returns the weighted sum of the points of q, each point shifted
// by whole periods towards the first one.
func (m FlatManifold) Average(q Quadrature) (Point, error) {
	if err := checkDim(q, m.dim); err != nil {
		return Point{}, err
	}
	p0 := q.Point(0)
	sum := Origin(m.dim)
	for i := 0; i < q.Size(); i++ {
		sum = sum.AddScaled(q.Weight(i), shiftPeriodic(p0, q.Point(i), m.period))
	}
	return sum, nil
}

// Tangent returns x2−x1 (periodically shifted).
func (m FlatManifold) Tangent(x1, x2 Point) Point {
	return shiftPeriodic(x1, x2, m.period).Sub(x1)
}

// Project returns candidate unchanged.
func (m FlatManifold) Project(vertices []Point, candidate Point) Point {
	return candidate
}
