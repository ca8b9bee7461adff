package manifolds

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

const tol = 1e-9

var s2 = math.Sqrt2 / 2

// approx compares points component-wise up to tol.
var approx = cmp.Options{
	cmp.Transformer("coords", func(p Point) []float64 { return p.Coords() }),
	cmpopts.EquateApprox(0, tol),
}

func assertPoint(t *testing.T, want, got Point, context ...interface{}) {
	t.Helper()
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Errorf("%v: point mismatch (-want +got):\n%s", context, diff)
	}
}

func mustSphere(t *testing.T, center Point) SphericalManifold {
	t.Helper()
	m, err := NewSphericalManifold(center)
	if err != nil {
		t.Fatalf("cannot create spherical manifold: %v", err)
	}
	return m
}

func mustPolar(t *testing.T, center Point) PolarManifold {
	t.Helper()
	m, err := NewPolarManifold(center)
	if err != nil {
		t.Fatalf("cannot create polar manifold: %v", err)
	}
	return m
}

func deg(d float64) float64 {
	return d * Deg2Rad
}
