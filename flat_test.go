package manifolds

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestFlatBlend(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	m := NewFlatManifold(3)
	assertPoint(t, P(0.5, 1, 1.5), m.Blend(P(0, 0, 0), P(1, 2, 3), 0.5))
	assertPoint(t, P(1, 2, 3), m.Blend(P(0, 0, 0), P(1, 2, 3), 1))
	assertPoint(t, P(1, 1, 1), m.Tangent(P(1, 2, 3), P(2, 3, 4)))
	assertPoint(t, P(7, 7, 7), m.Project([]Point{P(0, 0, 0)}, P(7, 7, 7)))
	q := MustQuadrature([]Point{P(0, 0, 0), P(4, 0, 0), P(0, 8, 0)}, []float64{0.5, 0.25, 0.25})
	p, err := m.Average(q)
	assert.NoError(t, err)
	assertPoint(t, P(1, 2, 0), p)
}

func TestFlatPeriodic(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	m, err := NewPeriodicFlatManifold(P(0, 1))
	assert.NoError(t, err)
	assert.Equal(t, P(0, 1), m.Periodicity())
	// results are not wrapped into [0, 1)
	assertPoint(t, P(1, 1), m.Blend(P(0, 0.9), P(2, 0.1), 0.5))
	assertPoint(t, P(1, 0), m.Blend(P(0, 0.1), P(2, 0.9), 0.5))
	assertPoint(t, P(0, 0.2), m.Tangent(P(0, 0.9), P(0, 0.1)))
	q := MustQuadrature([]Point{P(0, 0.9), P(0, 0.1), P(0, 1.9)}, []float64{0.5, 0.25, 0.25})
	p, err := m.Average(q)
	assert.NoError(t, err)
	assertPoint(t, P(0, 0.95), p)

	_, err = NewPeriodicFlatManifold(P(-1, 0))
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}
