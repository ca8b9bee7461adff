package manifolds

import (
	"errors"
	"fmt"
	"io"

	"gonum.org/v1/gonum/mat"
)

// DefaultFunctionTolerance is the default relative tolerance of the inverse
// consistency check of a FunctionManifold.
const DefaultFunctionTolerance = 1e-10

// VectorFunction is a vector-valued function of a point, as used for the
// maps of a FunctionManifold. Implementations must be safe for concurrent
// use.
type VectorFunction interface {
	// NComponents is the dimension of the function value.
	NComponents() int
	// Value evaluates the function at p.
	Value(p Point) Point
}

// GradientFunction is a VectorFunction with an analytic Jacobian.
type GradientFunction interface {
	VectorFunction
	// Gradient returns the Jacobian at p, with one row per component and
	// one column per coordinate of p.
	Gradient(p Point) *mat.Dense
}

// FunctionOptions configures a FunctionManifold. The zero value selects
// defaults for every field.
type FunctionOptions struct {
	// Periodicity has one entry per chart axis, 0 for non-periodic axes.
	// A zero Point means no periodic axis.
	Periodicity Point
	// Tolerance is the relative tolerance of the inverse consistency check
	// (default DefaultFunctionTolerance).
	Tolerance float64
	// StepSize is the step of the difference quotients approximating the
	// Jacobian when the push forward is no GradientFunction (default
	// DefaultStepSize).
	StepSize float64
	// ChartSamples are chart points c for which pull_back(push_forward(c))
	// ≈ c is checked. If neither chart nor space samples are given,
	// DefaultChartSamples are checked.
	ChartSamples []Point
	// SpaceSamples are ambient points x for which push_forward(pull_back(x))
	// ≈ x is checked.
	SpaceSamples []Point
	// SkipValidation disables the inverse consistency check.
	SkipValidation bool
	// Owned makes the manifold responsible for the maps: Close will close
	// every map which implements io.Closer.
	Owned bool
}

// FunctionManifold is a chart manifold with user supplied maps.
//
// The pair of maps is checked for being mutually inverse on the sample
// points given at construction time; a failing check fails the
// construction. The Jacobian is taken from the push forward if it is a
// GradientFunction, otherwise it is approximated by symmetric difference
// quotients.
type FunctionManifold struct {
	pushForward VectorFunction
	pullBack    VectorFunction
	chartdim    int
	spacedim    int
	period      Point
	tolerance   float64
	step        float64
	owned       bool
	gradient    func(Point) *mat.Dense
}

// NewFunctionManifold creates a chart manifold from a push forward
// (chart → ambient) and a pull back (ambient → chart).
func NewFunctionManifold(pushForward, pullBack VectorFunction, opts FunctionOptions) (*FunctionManifold, error) {
	if pushForward == nil || pullBack == nil {
		return nil, errors.New("function manifold needs push forward and pull back")
	}
	m := &FunctionManifold{
		pushForward: pushForward,
		pullBack:    pullBack,
		chartdim:    pullBack.NComponents(),
		spacedim:    pushForward.NComponents(),
		period:      opts.Periodicity,
		tolerance:   opts.Tolerance,
		step:        opts.StepSize,
		owned:       opts.Owned,
	}
	if m.chartdim < 1 || m.chartdim > MaxDim || m.spacedim < 1 || m.spacedim > MaxDim {
		return nil, fmt.Errorf("%w: chart dimension %d, space dimension %d", ErrDimension, m.chartdim, m.spacedim)
	}
	if m.period.Dim() == 0 {
		m.period = Origin(m.chartdim)
	} else if m.period.Dim() != m.chartdim {
		return nil, fmt.Errorf("%w: periodicity %v for chart dimension %d", ErrDimension, m.period, m.chartdim)
	}
	if m.tolerance <= 0 {
		m.tolerance = DefaultFunctionTolerance
	}
	if m.step <= 0 {
		m.step = DefaultStepSize
	}
	if g, ok := pushForward.(GradientFunction); ok {
		m.gradient = g.Gradient
	} else {
		m.gradient = func(c Point) *mat.Dense {
			return FiniteDifferenceGradient(m.pushForward.Value, c, m.step)
		}
	}
	if !opts.SkipValidation {
		chart, space := opts.ChartSamples, opts.SpaceSamples
		if len(chart) == 0 && len(space) == 0 {
			chart = DefaultChartSamples(m.chartdim)
		}
		if err := m.validate(chart, space); err != nil {
			tracer().Errorf("function manifold rejected: %v", err)
			return nil, err
		}
	}
	return m, nil
}

// DefaultChartSamples returns the chart points checked by
// NewFunctionManifold when no samples are configured. They lie inside the
// unit cube, away from the origin and from the coordinate axes, where charts
// tend to be singular.
func DefaultChartSamples(dim int) []Point {
	a, b := Origin(dim), Origin(dim)
	for i := 0; i < dim; i++ {
		a = a.With(i, 0.5+0.1*float64(i))
		b = b.With(i, 0.3-0.1*float64(i))
	}
	return []Point{a, b}
}

// validate checks pull_back∘push_forward ≈ id on chart samples and
// push_forward∘pull_back ≈ id on space samples, relative to the tolerance.
func (m *FunctionManifold) validate(chart, space []Point) error {
	for _, c := range chart {
		if c.Dim() != m.chartdim {
			return fmt.Errorf("%w: chart sample %v", ErrDimension, c)
		}
		x := m.PushForward(c)
		if x.Dim() != m.spacedim {
			return fmt.Errorf("%w: push forward of %v is %v", ErrDimension, c, x)
		}
		back := m.PullBack(x)
		if d := periodicDistance(c, back, m.period); !(d < m.tolerance*(c.Norm()+1)) {
			return fmt.Errorf("%w: pull_back(push_forward(%v)) = %v", ErrNotInverse, c, back)
		}
	}
	for _, x := range space {
		if x.Dim() != m.spacedim {
			return fmt.Errorf("%w: space sample %v", ErrDimension, x)
		}
		c := m.PullBack(x)
		if c.Dim() != m.chartdim {
			return fmt.Errorf("%w: pull back of %v is %v", ErrDimension, x, c)
		}
		forth := m.PushForward(c)
		if d := x.Distance(forth); !(d < m.tolerance*(x.Norm()+1)) {
			return fmt.Errorf("%w: push_forward(pull_back(%v)) = %v", ErrNotInverse, x, forth)
		}
	}
	return nil
}

// ChartDim is the dimension of chart points.
func (m *FunctionManifold) ChartDim() int { return m.chartdim }

// SpaceDim is the dimension of ambient points.
func (m *FunctionManifold) SpaceDim() int { return m.spacedim }

// Periodicity returns the period of every chart axis, 0 for non-periodic
// ones.
func (m *FunctionManifold) Periodicity() Point { return m.period }

// Tolerance is the relative tolerance of the inverse consistency check.
func (m *FunctionManifold) Tolerance() float64 { return m.tolerance }

// StepSize is the step of difference quotients for the Jacobian.
func (m *FunctionManifold) StepSize() float64 { return m.step }

// HasAnalyticGradient is true if the push forward supplies its Jacobian.
func (m *FunctionManifold) HasAnalyticGradient() bool {
	_, ok := m.pushForward.(GradientFunction)
	return ok
}

// PushForward evaluates the push forward map.
func (m *FunctionManifold) PushForward(c Point) Point {
	return m.pushForward.Value(c)
}

// PullBack evaluates the pull back map.
func (m *FunctionManifold) PullBack(x Point) Point {
	return m.pullBack.Value(x)
}

// PushForwardGradient returns the Jacobian of the push forward, either
// analytic or by symmetric difference quotients.
func (m *FunctionManifold) PushForwardGradient(c Point) *mat.Dense {
	return m.gradient(c)
}

// Blend interpolates in the chart.
func (m *FunctionManifold) Blend(p1, p2 Point, w float64) Point {
	return ChartBlend(m, p1, p2, w)
}

// Average reduces q pairwise in the chart.
func (m *FunctionManifold) Average(q Quadrature) (Point, error) {
	return ChartAverage(m, q)
}

// Tangent maps the chart difference by the Jacobian.
func (m *FunctionManifold) Tangent(x1, x2 Point) Point {
	return ChartTangent(m, x1, x2)
}

// Project round-trips candidate through the chart.
func (m *FunctionManifold) Project(vertices []Point, candidate Point) Point {
	return ChartProject(m, candidate)
}

// Owned tells if the manifold is responsible for closing its maps.
func (m *FunctionManifold) Owned() bool { return m.owned }

// Close closes the maps if the manifold owns them and they implement
// io.Closer. For maps not owned, Close does nothing. The manifold must not
// be used after Close.
func (m *FunctionManifold) Close() error {
	if !m.owned {
		return nil
	}
	var errs []error
	for _, f := range []VectorFunction{m.pushForward, m.pullBack} {
		if c, ok := f.(io.Closer); ok {
			errs = append(errs, c.Close())
		}
	}
	return errors.Join(errs...)
}
