package manifolds

import (
	"fmt"
)

// DefaultCylinderTolerance is the relative distance from the axis below
// which a point is treated as lying on it. It is scaled by the mean
// distance of the points involved from the axis.
const DefaultCylinderTolerance = 1e-10

// CylindricalManifold describes (concentric) cylinders around an axis in 3D.
// A point is split into its coordinate along the axis and its radial offset
// orthogonal to the axis. Axial coordinates are averaged linearly, radial
// offsets along circular arcs in the plane orthogonal to the axis.
//
// Points on the axis itself are singular. If the averaged radial offset is
// shorter than tolerance times the weighted mean distance of the points from
// the axis, the linear average of the points is returned.
type CylindricalManifold struct {
	direction   Point // unit vector
	pointOnAxis Point
	tolerance   float64
	flat        FlatManifold
	disc        SphericalManifold // circles around the axis, in offset space
}

// NewCylindricalManifold creates a cylinder around coordinate axis 0, 1 or 2
// through the origin. A tolerance ≤ 0 selects DefaultCylinderTolerance.
func NewCylindricalManifold(axis int, tolerance float64) (CylindricalManifold, error) {
	if axis < 0 || axis > 2 {
		return CylindricalManifold{}, fmt.Errorf("%w: no coordinate axis %d in 3D", ErrInvalidAxis, axis)
	}
	return NewCylindricalManifoldAround(UnitVector(3, axis), Origin(3), tolerance)
}

// NewCylindricalManifoldAround creates a cylinder around the line through
// pointOnAxis with the given direction. The direction need not be
// normalized, but must not be zero. A tolerance ≤ 0 selects
// DefaultCylinderTolerance.
func NewCylindricalManifoldAround(direction, pointOnAxis Point, tolerance float64) (CylindricalManifold, error) {
	if direction.Dim() != 3 || pointOnAxis.Dim() != 3 {
		return CylindricalManifold{}, fmt.Errorf("%w: cylinder needs 3D axis, have %v through %v",
			ErrDimension, direction, pointOnAxis)
	}
	if direction.Norm() < geodesicTolerance {
		return CylindricalManifold{}, fmt.Errorf("%w: zero direction", ErrInvalidAxis)
	}
	if tolerance <= 0 {
		tolerance = DefaultCylinderTolerance
	}
	direction = direction.Unit()
	return CylindricalManifold{
		direction:   direction,
		pointOnAxis: pointOnAxis,
		tolerance:   tolerance,
		flat:        NewFlatManifold(3),
		disc:        newDisc(direction.Vec()),
	}, nil
}

// Direction returns the unit direction of the axis.
func (m CylindricalManifold) Direction() Point {
	return m.direction
}

// PointOnAxis returns the point the axis passes through.
func (m CylindricalManifold) PointOnAxis() Point {
	return m.pointOnAxis
}

// split returns the axial coordinate of p and its radial offset vector.
func (m CylindricalManifold) split(p Point) (float64, Point) {
	v := p.Sub(m.pointOnAxis)
	s := v.Dot(m.direction)
	return s, v.AddScaled(-s, m.direction)
}

// Average returns the weighted average of q on the cylinder. The flat
// average of the points serves as tentative point and provides the axial
// coordinate; the radial offsets are averaged along circular arcs around
// the axis.
func (m CylindricalManifold) Average(q Quadrature) (Point, error) {
	middle, err := m.flat.Average(q)
	if err != nil {
		return Point{}, err
	}
	offsets := make([]Point, q.Size())
	weights := make([]float64, q.Size())
	var rbar float64
	for i := range offsets {
		_, offsets[i] = m.split(q.Point(i))
		weights[i] = q.Weight(i)
		rbar += weights[i] * offsets[i].Norm()
	}
	radial, err := m.disc.Average(Quadrature{points: offsets, weights: weights})
	if err != nil {
		return Point{}, err
	}
	if radial.Norm() <= m.tolerance*rbar {
		tracer().Debugf("cylindrical average %v: on axis, keeping flat average", q)
		return middle, nil
	}
	s, _ := m.split(middle)
	return m.pointOnAxis.AddScaled(s, m.direction).Add(radial), nil
}

// Blend averages the two-point quadrature {1−w: p1, w: p2}.
func (m CylindricalManifold) Blend(p1, p2 Point, w float64) Point {
	if w == 0 {
		return p1
	} else if w == 1 {
		return p2
	}
	p, err := m.Average(Quadrature{
		points:  []Point{p1, p2},
		weights: []float64{1 - w, w},
	})
	if err != nil {
		panic(fmt.Sprintf("manifolds: cylindrical blend of %v and %v: %v", p1, p2, err))
	}
	return p
}

// Tangent is the derivative of Blend(x1, x2, w) at w = 0: the axial
// difference plus the circular tangent of the radial offsets.
func (m CylindricalManifold) Tangent(x1, x2 Point) Point {
	s1, off1 := m.split(x1)
	s2, off2 := m.split(x2)
	return m.disc.Tangent(off1, off2).AddScaled(s2-s1, m.direction)
}

// Project keeps the axial coordinate of candidate and moves it radially to
// the mean distance of vertices from the axis. Candidates closer to the axis
// than tolerance times that distance are returned unchanged.
func (m CylindricalManifold) Project(vertices []Point, candidate Point) Point {
	if len(vertices) == 0 {
		return candidate
	}
	var radius float64
	for _, v := range vertices {
		_, off := m.split(v)
		radius += off.Norm()
	}
	radius /= float64(len(vertices))
	s, off := m.split(candidate)
	n := off.Norm()
	if n == 0 || n <= m.tolerance*radius {
		return candidate
	}
	return m.pointOnAxis.AddScaled(s, m.direction).Add(off.Scaled(radius / n))
}
