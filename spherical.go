package manifolds

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

const (
	// geodesicTolerance is the radius below which a point is treated as
	// coinciding with the center, and the distance below which two points
	// are treated as equal.
	geodesicTolerance = 1e-10
	// parallelTolerance is the length of u1×u2 below which two unit
	// directions are treated as parallel or antipodal.
	parallelTolerance = 1e-12
)

// SphericalManifold describes circles (2D) and spheres (3D) around a center,
// or more precisely the family of concentric ones: points are blended along
// the great circle through their directions, while radii are interpolated
// linearly. This is the exact geodesic interpolation on the sphere and stays
// well behaved near the poles, where chart-based blending does not.
//
// Degenerate configurations are resolved deterministically:
//
//   - A point at the center has no direction. Such points are blended
//     linearly in ambient space.
//   - Parallel directions (cross product below 1e-12) are blended by the
//     normalized linear combination of the unit directions.
//   - Antipodal directions are connected by infinitely many great circles.
//     The rotation axis is derived from the first direction u: in 3D it is
//     u×e_j, e_j being the coordinate axis least aligned with u; in 2D it is
//     ±e_z, the sign depending on the side of a fixed reference line u lies
//     on. The axis changes sign with u, which keeps
//     Blend(a,b,w) = Blend(b,a,1−w). The rotation angle is π.
type SphericalManifold struct {
	center    Point
	normal    r3.Vec  // plane normal for circles, zero for spheres
	tolerance float64 // radius treated as zero
}

// NewSphericalManifold creates a spherical manifold around center, which
// has to be a 2D or 3D point.
func NewSphericalManifold(center Point) (SphericalManifold, error) {
	if center.Dim() < 2 {
		return SphericalManifold{}, fmt.Errorf("%w: spherical manifold needs 2D or 3D center, have %v",
			ErrDimension, center)
	}
	m := SphericalManifold{center: center, tolerance: geodesicTolerance}
	if center.Dim() == 2 {
		m.normal = r3.Vec{Z: 1}
	}
	return m, nil
}

// newDisc creates a manifold of circles around the origin of R³, lying in
// the plane orthogonal to the unit vector normal. Only offsets of length 0
// count as lying at the center; callers judge smaller ones themselves.
func newDisc(normal r3.Vec) SphericalManifold {
	return SphericalManifold{center: Origin(3), normal: normal}
}

// Center returns the center of the sphere.
func (m SphericalManifold) Center() Point {
	return m.center
}

// Blend returns the point at fraction w along the geodesic from p1 to p2.
// Its distance to the center is (1−w)⋅r1 + w⋅r2.
func (m SphericalManifold) Blend(p1, p2 Point, w float64) Point {
	if w == 0 || p1.Distance(p2) <= m.tolerance {
		return p1
	} else if w == 1 {
		return p2
	}
	u1, r1, ok1 := m.direction(p1)
	u2, r2, ok2 := m.direction(p2)
	if !ok1 || !ok2 {
		tracer().Debugf("spherical blend of %v and %v: point at center, blending linearly", p1, p2)
		return p1.Lerp(p2, w)
	}
	var u r3.Vec
	if k, alpha, ok := m.geodesic(u1, u2); ok {
		u = r3.NewRotation(w*alpha, k).Rotate(u1)
	} else {
		u = r3.Unit(r3.Add(r3.Scale(1-w, u1), r3.Scale(w, u2)))
	}
	r := (1-w)*r1 + w*r2
	return m.center.Add(FromVec(r3.Scale(r, u), m.center.Dim()))
}

// Average reduces q pairwise with Blend.
func (m SphericalManifold) Average(q Quadrature) (Point, error) {
	if err := checkDim(q, m.center.Dim()); err != nil {
		return Point{}, err
	}
	return reduce(q, m.Blend)
}

// Tangent returns the derivative of Blend(x1, x2, w) at w = 0,
//
//	(r2−r1)⋅u1 + r1⋅α⋅(k×u1)
//
// α being the angle between the directions of x1 and x2 and k the rotation
// axis. For equal radii its length is the great-circle arc length from x1
// to x2. If a point lies at the center or the directions are parallel, the
// chord x2−x1 is returned.
func (m SphericalManifold) Tangent(x1, x2 Point) Point {
	u1, r1, ok1 := m.direction(x1)
	_, r2, ok2 := m.direction(x2)
	if !ok1 || !ok2 {
		return x2.Sub(x1)
	}
	u2 := r3.Scale(1/r2, x2.Sub(m.center).Vec())
	k, alpha, ok := m.geodesic(u1, u2)
	if !ok {
		return x2.Sub(x1)
	}
	t := r3.Add(r3.Scale(r2-r1, u1), r3.Scale(r1*alpha, r3.Cross(k, u1)))
	return FromVec(t, m.center.Dim())
}

// Project moves candidate radially to the mean distance of vertices from
// the center. A candidate at the center is returned unchanged.
func (m SphericalManifold) Project(vertices []Point, candidate Point) Point {
	if len(vertices) == 0 {
		return candidate
	}
	var radius float64
	for _, v := range vertices {
		radius += v.Distance(m.center)
	}
	radius /= float64(len(vertices))
	d := candidate.Sub(m.center)
	n := d.Norm()
	if n <= m.tolerance {
		tracer().Debugf("spherical projection of %v: candidate at center", candidate)
		return candidate
	}
	return m.center.Add(d.Scaled(radius / n))
}

// direction splits p−center into unit direction and radius. ok is false for
// points at the center.
func (m SphericalManifold) direction(p Point) (u r3.Vec, r float64, ok bool) {
	v := p.Sub(m.center).Vec()
	r = r3.Norm(v)
	if r <= m.tolerance {
		return r3.Vec{}, r, false
	}
	return r3.Scale(1/r, v), r, true
}

// geodesic returns the rotation axis k and the angle α which carry u1 onto
// u2. ok is false for parallel directions, which have no rotation axis.
func (m SphericalManifold) geodesic(u1, u2 r3.Vec) (k r3.Vec, alpha float64, ok bool) {
	cross := r3.Cross(u1, u2)
	s := r3.Norm(cross)
	c := r3.Dot(u1, u2)
	if s >= parallelTolerance {
		return r3.Scale(1/s, cross), math.Atan2(s, c), true
	}
	if c > 0 {
		return r3.Vec{}, 0, false
	}
	tracer().Debugf("spherical geodesic: antipodal directions %v and %v", u1, u2)
	return m.antipodalAxis(u1), math.Pi, true
}

// antipodalAxis picks a unit vector orthogonal to u, with
// antipodalAxis(−u) = −antipodalAxis(u).
func (m SphericalManifold) antipodalAxis(u r3.Vec) r3.Vec {
	if m.normal == (r3.Vec{}) {
		return r3.Unit(r3.Cross(u, leastAligned(u)))
	}
	ref := r3.Unit(r3.Cross(m.normal, leastAligned(m.normal)))
	s := r3.Dot(u, ref)
	if s == 0 {
		s = r3.Dot(u, r3.Cross(m.normal, ref))
	}
	if s > 0 {
		return m.normal
	}
	return r3.Scale(-1, m.normal)
}

// leastAligned returns the coordinate unit vector with the smallest angle
// cosine to v.
func leastAligned(v r3.Vec) r3.Vec {
	ax, ay, az := math.Abs(v.X), math.Abs(v.Y), math.Abs(v.Z)
	switch {
	case ax <= ay && ax <= az:
		return r3.Vec{X: 1}
	case ay <= az:
		return r3.Vec{Y: 1}
	}
	return r3.Vec{Z: 1}
}
