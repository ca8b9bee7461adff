package manifolds

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// PolarManifold is a chart manifold in polar (2D) or spherical (3D)
// coordinates around a center.
//
// In 2D the chart point is (r, φ) with φ = atan2(y, x), and the angle axis is
// periodic with period 2π. Blending happens in the chart.
//
// In 3D the chart point is (r, θ, φ), θ being the angle to the z-axis. This
// chart is singular along the whole z-axis, so Blend, Average and Tangent
// are delegated to a SphericalManifold around the same center; the chart
// maps remain available.
//
// The center itself is singular: it is pulled back to r = 0 with all angles
// 0.
type PolarManifold struct {
	center Point
	sphere SphericalManifold
}

// NewPolarManifold creates a polar manifold around center, which has to be
// a 2D or 3D point.
func NewPolarManifold(center Point) (PolarManifold, error) {
	sphere, err := NewSphericalManifold(center)
	if err != nil {
		return PolarManifold{}, fmt.Errorf("polar manifold: %w", err)
	}
	return PolarManifold{center: center, sphere: sphere}, nil
}

// Center returns the origin of the polar coordinates.
func (m PolarManifold) Center() Point {
	return m.center
}

// ChartDim equals SpaceDim.
func (m PolarManifold) ChartDim() int {
	return m.center.Dim()
}

// SpaceDim is the ambient dimension.
func (m PolarManifold) SpaceDim() int {
	return m.center.Dim()
}

// Periodicity declares the last chart axis (φ) periodic with 2π.
func (m PolarManifold) Periodicity() Point {
	p := Origin(m.center.Dim())
	return p.With(p.Dim()-1, 2*math.Pi)
}

// PullBack returns (r, φ) in 2D and (r, θ, φ) in 3D.
func (m PolarManifold) PullBack(x Point) Point {
	d := x.Sub(m.center)
	r := d.Norm()
	phi := math.Atan2(d.Y(), d.X())
	if d.Dim() == 2 {
		return P(r, phi)
	}
	var theta float64
	if r > 0 {
		theta = math.Acos(math.Max(-1, math.Min(1, d.Z()/r)))
	}
	return P(r, theta, phi)
}

// PushForward is the inverse of PullBack.
func (m PolarManifold) PushForward(c Point) Point {
	r := c.At(0)
	if c.Dim() == 2 {
		sphi, cphi := math.Sincos(c.At(1))
		return m.center.Add(P(r*cphi, r*sphi))
	}
	stheta, ctheta := math.Sincos(c.At(1))
	sphi, cphi := math.Sincos(c.At(2))
	return m.center.Add(P(r*stheta*cphi, r*stheta*sphi, r*ctheta))
}

// PushForwardGradient returns the closed-form Jacobian of PushForward.
func (m PolarManifold) PushForwardGradient(c Point) *mat.Dense {
	r := c.At(0)
	if c.Dim() == 2 {
		sphi, cphi := math.Sincos(c.At(1))
		return mat.NewDense(2, 2, []float64{
			cphi, -r * sphi,
			sphi, r * cphi,
		})
	}
	stheta, ctheta := math.Sincos(c.At(1))
	sphi, cphi := math.Sincos(c.At(2))
	return mat.NewDense(3, 3, []float64{
		stheta * cphi, r * ctheta * cphi, -r * stheta * sphi,
		stheta * sphi, r * ctheta * sphi, r * stheta * cphi,
		ctheta, -r * stheta, 0,
	})
}

// Blend interpolates (r, φ) in 2D and follows the great circle in 3D.
func (m PolarManifold) Blend(p1, p2 Point, w float64) Point {
	if m.center.Dim() == 3 {
		return m.sphere.Blend(p1, p2, w)
	}
	return ChartBlend(m, p1, p2, w)
}

// Average reduces q pairwise with Blend.
func (m PolarManifold) Average(q Quadrature) (Point, error) {
	if m.center.Dim() == 3 {
		return m.sphere.Average(q)
	}
	return ChartAverage(m, q)
}

// Tangent returns the chart tangent in 2D and the great-circle tangent in 3D.
func (m PolarManifold) Tangent(x1, x2 Point) Point {
	if m.center.Dim() == 3 {
		return m.sphere.Tangent(x1, x2)
	}
	return ChartTangent(m, x1, x2)
}

// Project round-trips candidate through the chart. This leaves points
// unchanged, as every point of the plane (or space) is on the manifold.
func (m PolarManifold) Project(vertices []Point, candidate Point) Point {
	return ChartProject(m, candidate)
}
