package funcparser

import (
	"math"
	"testing"

	"github.com/npillmayer/manifolds"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	polarPush = "r*cos(phi); r*sin(phi)"
	polarPull = "sqrt(x^2+y^2); atan2(y, x)"
)

var polarConfig = Config{
	ChartVariables: "r,phi",
	FunctionOptions: manifolds.FunctionOptions{
		Periodicity:  manifolds.P(0, 2*math.Pi),
		ChartSamples: []manifolds.Point{manifolds.P(1, 0.5), manifolds.P(2, -3)},
		SpaceSamples: []manifolds.Point{manifolds.P(1, 1), manifolds.P(-2, 0.5)},
	},
}

func TestPolarManifold(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	m, err := NewManifold(polarPush, polarPull, polarConfig)
	require.NoError(t, err)
	assert.True(t, m.Owned())
	assert.False(t, m.HasAnalyticGradient())
	assert.Equal(t, 2, m.ChartDim())
	assert.Equal(t, 2, m.SpaceDim())
	s2 := math.Sqrt2 / 2
	assertPoint(t, manifolds.P(s2, s2), m.Blend(manifolds.P(1, 0), manifolds.P(0, 1), 0.5))
	p1 := manifolds.P(math.Cos(170*manifolds.Deg2Rad), math.Sin(170*manifolds.Deg2Rad))
	p2 := manifolds.P(math.Cos(-170*manifolds.Deg2Rad), math.Sin(-170*manifolds.Deg2Rad))
	assertPoint(t, manifolds.P(-1, 0), m.Blend(p1, p2, 0.5))

	polar, err := manifolds.NewPolarManifold(manifolds.P(0, 0))
	require.NoError(t, err)
	a, b := manifolds.P(1, 2), manifolds.P(-3, 0.5)
	for _, w := range []float64{0.2, 0.5, 0.7} {
		assertPoint(t, polar.Blend(a, b, w), m.Blend(a, b, w), w)
	}
	assert.NoError(t, m.Close())
	assert.Panics(t, func() { m.Blend(a, b, 0.5) })
}

func TestTorusManifold(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	m, err := NewManifold(
		"cos(phi)*(R+r*w*cos(theta)); r*w*sin(theta); sin(phi)*(R+r*w*cos(theta))",
		"atan2(z, x); atan2(y, sqrt(x^2+z^2)-R); sqrt((z-sin(atan2(z,x))*R)^2 + (x-cos(atan2(z,x))*R)^2 + y^2)/r",
		Config{
			ChartVariables: "phi,theta,w",
			Constants:      map[string]float64{"R": 2, "r": 0.5},
			FunctionOptions: manifolds.FunctionOptions{
				Periodicity:  manifolds.P(2*math.Pi, 2*math.Pi, 0),
				ChartSamples: []manifolds.Point{manifolds.P(0.3, 1.1, 0.6)},
			},
		})
	require.NoError(t, err)
	defer m.Close()
	torus, err := manifolds.NewTorusManifold(2, 0.5)
	require.NoError(t, err)
	p1 := torus.PushForward(manifolds.P(0.3, 1.1, 0.6))
	p2 := torus.PushForward(manifolds.P(3, -2.9, 1))
	for _, w := range []float64{0.25, 0.5, 0.75} {
		assertPoint(t, torus.Blend(p1, p2, w), m.Blend(p1, p2, w), w)
	}
}

func TestManifoldErrors(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	_, err := NewManifold("r; r", "x; y", Config{ChartVariables: "r"})
	assert.ErrorIs(t, err, manifolds.ErrDimension)
	_, err = NewManifold(polarPush, "sqrt(x^2+y^2); atan2(x, y)", Config{
		ChartVariables:  "r,phi",
		FunctionOptions: manifolds.FunctionOptions{SpaceSamples: []manifolds.Point{manifolds.P(1, 2)}},
	})
	assert.ErrorIs(t, err, manifolds.ErrNotInverse)
	_, err = NewManifold("r*cos(phi", polarPull, Config{ChartVariables: "r,phi"})
	assert.ErrorIs(t, err, ErrCompile)
}

func TestCurveManifold(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	m, err := NewManifold("cos(t); sin(t)", "atan2(y, x)", Config{
		ChartVariables:  "t",
		FunctionOptions: manifolds.FunctionOptions{Periodicity: manifolds.P(2 * math.Pi)},
	})
	require.NoError(t, err)
	defer m.Close()
	assert.Equal(t, 1, m.ChartDim())
	assert.Equal(t, 2, m.SpaceDim())
	r, c := m.PushForwardGradient(manifolds.P(0)).Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, 1, c)
	s2 := math.Sqrt2 / 2
	assertPoint(t, manifolds.P(s2, s2), m.Blend(manifolds.P(1, 0), manifolds.P(0, 1), 0.5))
	p1 := manifolds.P(math.Cos(3), math.Sin(3))
	p2 := manifolds.P(math.Cos(-3), math.Sin(-3))
	assertPoint(t, manifolds.P(-1, 0), m.Blend(p1, p2, 0.5))
	assertPoint(t, manifolds.P(1, 0), m.Project(nil, manifolds.P(0, 0)))
}
