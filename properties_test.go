package manifolds

import (
	"sync"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type manifoldCase struct {
	name   string
	m      Manifold
	p1, p2 Point
}

func manifoldCases(t *testing.T) []manifoldCase {
	t.Helper()
	periodic, err := NewPeriodicFlatManifold(P(0, 3))
	require.NoError(t, err)
	cyl, err := NewCylindricalManifoldAround(P(1, 2, 0), P(0, 1, 0), 0)
	require.NoError(t, err)
	torus, err := NewTorusManifold(3, 1)
	require.NoError(t, err)
	fn, err := NewFunctionManifold(polarPushGradient{}, polarPull{}, polarOptions)
	require.NoError(t, err)
	return []manifoldCase{
		{"flat", NewFlatManifold(2), P(1, 2), P(-3, 0.5)},
		{"periodic flat", periodic, P(1, 0.2), P(-3, 1.2)},
		{"polar 2D", mustPolar(t, P(1, 1)), P(2, 3), P(-1, 0)},
		{"polar 3D", mustPolar(t, P(0, 0, 1)), P(1, 2, 3), P(-1, 0.5, -2)},
		{"spherical 2D", mustSphere(t, P(0, 0)), P(2, 1), P(-1, -3)},
		{"spherical 3D", mustSphere(t, P(1, 0, 0)), P(2, 2, 2), P(0, -1, 3)},
		{"cylindrical", cyl, P(3, 0, 1), P(-1, 4, 2)},
		{"torus", torus, torus.PushForward(P(0.3, 1, 0.8)), torus.PushForward(P(2, -2.5, 0.4))},
		{"function", fn, P(1, 2), P(-2, -1)},
	}
}

func TestManifoldProperties(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	for _, tc := range manifoldCases(t) {
		t.Run(tc.name, func(t *testing.T) {
			m, p1, p2 := tc.m, tc.p1, tc.p2
			assertPoint(t, p1, m.Blend(p1, p2, 0), "w=0")
			assertPoint(t, p2, m.Blend(p1, p2, 1), "w=1")
			for _, w := range []float64{0.1, 0.37, 0.5, 0.9} {
				assertPoint(t, p1, m.Blend(p1, p1, w), "identity", w)
				assertPoint(t, m.Blend(p1, p2, w), m.Blend(p2, p1, 1-w), "symmetry", w)
				q, err := Pair(p1, p2, w)
				require.NoError(t, err)
				avg, err := m.Average(q)
				require.NoError(t, err)
				assertPoint(t, m.Blend(p1, p2, w), avg, "pair average", w)
			}
			single := MustQuadrature([]Point{p2}, []float64{1})
			avg, err := m.Average(single)
			require.NoError(t, err)
			assertPoint(t, p2, avg, "single point")
			assert.True(t, m.Tangent(p1, p2).IsFinite())
			assert.True(t, m.Project([]Point{p1, p2}, m.Blend(p1, p2, 0.5)).IsFinite())
		})
	}
}

func TestManifoldsConcurrently(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	for _, tc := range manifoldCases(t) {
		want := tc.m.Blend(tc.p1, tc.p2, 0.3)
		results := make([]Point, 16)
		var wg sync.WaitGroup
		for i := range results {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i] = tc.m.Blend(tc.p1, tc.p2, 0.3)
			}(i)
		}
		wg.Wait()
		for _, got := range results {
			assert.Equal(t, want, got, tc.name)
		}
	}
}
