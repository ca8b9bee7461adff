package funcparser

import (
	"math"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/npillmayer/manifolds"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var approx = cmp.Options{
	cmp.Transformer("coords", func(p manifolds.Point) []float64 { return p.Coords() }),
	cmpopts.EquateApprox(0, 1e-9),
}

func assertPoint(t *testing.T, want, got manifolds.Point, context ...interface{}) {
	t.Helper()
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Errorf("%v: point mismatch (-want +got):\n%s", context, diff)
	}
}

func TestDefaultVariables(t *testing.T) {
	assert.Equal(t, "x", DefaultVariables(1))
	assert.Equal(t, "x,y,z", DefaultVariables(3))
	assert.Equal(t, "", DefaultVariables(4))
}

func TestFunctionValue(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	f, err := New("x+y; x*y", "", nil)
	require.NoError(t, err)
	assert.Equal(t, 2, f.NComponents())
	assert.Equal(t, []string{"x", "y"}, f.Variables())
	assertPoint(t, manifolds.P(5, 6), f.Value(manifolds.P(2, 3)))

	f = MustNew("a*t", "t", map[string]float64{"a": 2})
	assert.Equal(t, 1, f.NVariables())
	assertPoint(t, manifolds.P(6), f.Value(manifolds.P(3)))

	f = MustNew("1; 2", "u, v", nil)
	assertPoint(t, manifolds.P(1, 2), f.Value(manifolds.P(7, 8)))
	assert.Equal(t, "(u,v) -> (1; 2)", f.String())
}

func TestFunctionMath(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	f := MustNew("x^2; 2**y; pow(x, 3)", "x,y", nil)
	assertPoint(t, manifolds.P(9, 16, 27), f.Value(manifolds.P(3, 4)))
	f = MustNew("sqrt(x^2+y^2); atan2(y, x)", "", nil)
	assertPoint(t, manifolds.P(2, math.Pi/2), f.Value(manifolds.P(0, 2)))
	f = MustNew("pi*x; abs(y); exp(log(x)) + sin(0)", "", nil)
	assertPoint(t, manifolds.P(2*math.Pi, 3, 2), f.Value(manifolds.P(2, -3, 0)))
	// abs is a builtin of the expression language, not one of ours
	assertPoint(t, manifolds.P(2, 0.5), MustNew("abs(x); abs(-1/2)", "x", nil).Value(manifolds.P(-2)))
}

func TestFunctionErrors(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	_, err := New(" ; ", "x", nil)
	assert.ErrorIs(t, err, ErrNoExpression)
	_, err = New("x +* y", "x,y", nil)
	assert.ErrorIs(t, err, ErrCompile)
	_, err = New("x + q", "x", nil)
	assert.ErrorIs(t, err, ErrCompile)
	_, err = New("x", "x,x", nil)
	assert.ErrorIs(t, err, ErrVariables)
	_, err = New("x", "x,pi", nil)
	assert.ErrorIs(t, err, ErrVariables)
	_, err = New("x", "x,a", map[string]float64{"a": 1})
	assert.ErrorIs(t, err, ErrVariables)
	_, err = New("1; 2; 3; 4", "x", nil)
	assert.ErrorIs(t, err, manifolds.ErrDimension)
	assert.Panics(t, func() { MustNew("(", "x", nil) })

	f := MustNew("x; y", "", nil)
	assert.Panics(t, func() { f.Value(manifolds.P(1, 2, 3)) })
	assert.NoError(t, f.Close())
	assert.PanicsWithError(t, ErrClosed.Error(), func() { f.Value(manifolds.P(1, 2)) })
}

func TestFunctionConcurrently(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	f := MustNew("x*cos(y); x*sin(y)", "", nil)
	var wg sync.WaitGroup
	results := make([]manifolds.Point, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = f.Value(manifolds.P(float64(i), 0))
		}(i)
	}
	wg.Wait()
	for i, p := range results {
		assertPoint(t, manifolds.P(float64(i), 0), p, i)
	}
}
