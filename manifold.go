package manifolds

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrInvalidAxis indicates an unusable axis of a cylinder.
	ErrInvalidAxis = errors.New("invalid axis")
	// ErrInvalidPeriod indicates a negative period of a periodic axis.
	ErrInvalidPeriod = errors.New("invalid period")
	// ErrNotInverse indicates a pair of user maps which are not inverse to
	// each other.
	ErrNotInverse = errors.New("push forward and pull back are not inverse to each other")
	// ErrTorusRadii indicates torus radii violating R > r > 0.
	ErrTorusRadii = errors.New("torus radii must satisfy R > r > 0")
)

// Manifold is the contract every shape descriptor fulfills. Points handed
// to a manifold are expected to lie on (or close to) the shape; results for
// points far away from it are of low quality.
type Manifold interface {
	// Blend returns the point on the manifold between p1 and p2, w being
	// the weight of p2. Blend(p1, p2, 0) is p1, Blend(p1, p2, 1) is p2.
	Blend(p1, p2 Point, w float64) Point
	// Average returns the weighted average of the points of q on the
	// manifold.
	Average(q Quadrature) (Point, error)
	// Tangent returns the initial velocity of the path along the manifold
	// from x1 to x2, i.e. d/dw Blend(x1, x2, w) at w = 0.
	Tangent(x1, x2 Point) Point
	// Project snaps candidate onto the manifold, guided by vertices which
	// already lie on it.
	Project(vertices []Point, candidate Point) Point
}

// Chart is a pair of mutually inverse maps between ambient space and a
// chart space.
type Chart interface {
	ChartDim() int
	SpaceDim() int
	// PullBack maps an ambient point to chart coordinates.
	PullBack(x Point) Point
	// PushForward maps chart coordinates to an ambient point.
	PushForward(c Point) Point
	// PushForwardGradient is the Jacobian of PushForward at c, with
	// SpaceDim rows and ChartDim columns.
	PushForwardGradient(c Point) *mat.Dense
	// Periodicity holds one entry per chart axis: 0 for non-periodic axes,
	// the period length otherwise.
	Periodicity() Point
}

// ChartManifold is a manifold which does its work in chart coordinates.
type ChartManifold interface {
	Manifold
	Chart
}

// Compile-time interface checks.
var (
	_ Manifold      = FlatManifold{}
	_ Manifold      = SphericalManifold{}
	_ Manifold      = CylindricalManifold{}
	_ ChartManifold = PolarManifold{}
	_ ChartManifold = TorusManifold{}
	_ ChartManifold = (*FunctionManifold)(nil)
)
