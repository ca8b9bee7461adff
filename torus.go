package manifolds

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// TorusManifold is a solid torus around the y-axis. R is the radius of the
// center line (a circle in the xz-plane), r the radius of the tube.
//
// Chart points are (φ, θ, w): φ is the angle around the y-axis, θ the angle
// around the center line and w ∈ [0,1] the distance from the center line as
// a fraction of r. Both angles are periodic with 2π. Chart points outside
// this range are not sanitized.
type TorusManifold struct {
	bigR, r float64
}

// NewTorusManifold creates a torus with center-line radius R and tube
// radius r, R > r > 0.
func NewTorusManifold(R, r float64) (TorusManifold, error) {
	if !(R > r && r > 0) {
		tracer().Errorf("cannot create torus with R=%g, r=%g", R, r)
		return TorusManifold{}, fmt.Errorf("%w: R=%g, r=%g", ErrTorusRadii, R, r)
	}
	return TorusManifold{bigR: R, r: r}, nil
}

// Radii returns R and r.
func (m TorusManifold) Radii() (float64, float64) {
	return m.bigR, m.r
}

// ChartDim is 3.
func (m TorusManifold) ChartDim() int { return 3 }

// SpaceDim is 3.
func (m TorusManifold) SpaceDim() int { return 3 }

// Periodicity is (2π, 2π, 0).
func (m TorusManifold) Periodicity() Point {
	return P(2*math.Pi, 2*math.Pi, 0)
}

// PullBack maps an ambient point to (φ, θ, w).
func (m TorusManifold) PullBack(p Point) Point {
	x, y, z := p.X(), p.Y(), p.Z()
	phi := math.Atan2(z, x)
	theta := math.Atan2(y, math.Hypot(x, z)-m.bigR)
	sphi, cphi := math.Sincos(phi)
	w := math.Sqrt(sq(z-sphi*m.bigR)+sq(x-cphi*m.bigR)+sq(y)) / m.r
	return P(phi, theta, w)
}

// PushForward maps (φ, θ, w) to ambient space.
func (m TorusManifold) PushForward(c Point) Point {
	sphi, cphi := math.Sincos(c.At(0))
	stheta, ctheta := math.Sincos(c.At(1))
	rw := m.r * c.At(2)
	return P(cphi*(m.bigR+rw*ctheta), rw*stheta, sphi*(m.bigR+rw*ctheta))
}

// PushForwardGradient returns the closed-form Jacobian of PushForward.
func (m TorusManifold) PushForwardGradient(c Point) *mat.Dense {
	sphi, cphi := math.Sincos(c.At(0))
	stheta, ctheta := math.Sincos(c.At(1))
	w := c.At(2)
	rw := m.r * w
	return mat.NewDense(3, 3, []float64{
		-sphi * (m.bigR + rw*ctheta), -rw * stheta * cphi, m.r * ctheta * cphi,
		0, rw * ctheta, m.r * stheta,
		cphi * (m.bigR + rw*ctheta), -rw * stheta * sphi, m.r * ctheta * sphi,
	})
}

// Blend interpolates in the chart.
func (m TorusManifold) Blend(p1, p2 Point, w float64) Point {
	return ChartBlend(m, p1, p2, w)
}

// Average reduces q pairwise in the chart.
func (m TorusManifold) Average(q Quadrature) (Point, error) {
	return ChartAverage(m, q)
}

// Tangent maps the chart difference by the Jacobian.
func (m TorusManifold) Tangent(x1, x2 Point) Point {
	return ChartTangent(m, x1, x2)
}

// Project round-trips candidate through the chart.
func (m TorusManifold) Project(vertices []Point, candidate Point) Point {
	return ChartProject(m, candidate)
}

func sq(x float64) float64 {
	return x * x
}
