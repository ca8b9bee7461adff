package manifolds

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// DefaultStepSize is the step of symmetric difference quotients used where
// no analytic derivative is available.
const DefaultStepSize = 1e-8

// ChartBlend implements Manifold.Blend for chart manifolds: both points are
// pulled back, the second chart point is moved by whole periods along every
// periodic axis to be as close to the first one as possible, the chart
// points are interpolated linearly and the result is pushed forward.
func ChartBlend(c Chart, p1, p2 Point, w float64) Point {
	c1 := c.PullBack(p1)
	c2 := shiftPeriodic(c1, c.PullBack(p2), c.Periodicity())
	return c.PushForward(c1.Lerp(c2, w))
}

// ChartAverage implements Manifold.Average for chart manifolds by pairwise
// reduction with ChartBlend.
func ChartAverage(c Chart, q Quadrature) (Point, error) {
	if err := checkDim(q, c.SpaceDim()); err != nil {
		return Point{}, err
	}
	return reduce(q, func(p1, p2 Point, w float64) Point {
		return ChartBlend(c, p1, p2, w)
	})
}

// ChartTangent implements Manifold.Tangent for chart manifolds. The chart
// difference c2−c1 (after periodic shifting) is mapped to ambient space by
// the Jacobian at c1.
func ChartTangent(c Chart, x1, x2 Point) Point {
	c1 := c.PullBack(x1)
	c2 := shiftPeriodic(c1, c.PullBack(x2), c.Periodicity())
	dc := mat.NewVecDense(c1.Dim(), c2.Sub(c1).Coords())
	var t mat.VecDense
	t.MulVec(c.PushForwardGradient(c1), dc)
	return P(t.RawVector().Data...)
}

// ChartProject implements Manifold.Project for chart manifolds by a round
// trip through chart space.
func ChartProject(c Chart, candidate Point) Point {
	return c.PushForward(c.PullBack(candidate))
}

// FiniteDifferenceGradient approximates the Jacobian of f at c by symmetric
// difference quotients with step h. Column j holds the derivative along
// chart axis j, row i the ambient component i.
func FiniteDifferenceGradient(f func(Point) Point, c Point, h float64) *mat.Dense {
	var jac *mat.Dense
	for j := 0; j < c.Dim(); j++ {
		fp := f(c.With(j, c.At(j)+h))
		fm := f(c.With(j, c.At(j)-h))
		if jac == nil {
			jac = mat.NewDense(fp.Dim(), c.Dim(), nil)
		}
		d := fp.Sub(fm).Scaled(1 / (2 * h))
		jac.SetCol(j, d.Coords())
	}
	return jac
}

// shiftPeriodic moves c2 by whole periods along every periodic axis so
// that |c2[d]−c1[d]| ≤ period[d]/2.
func shiftPeriodic(c1, c2, period Point) Point {
	for d := 0; d < period.Dim(); d++ {
		T := period.At(d)
		if T == 0 {
			continue
		}
		if k := math.Round((c2.At(d) - c1.At(d)) / T); k != 0 {
			c2 = c2.With(d, c2.At(d)-k*T)
		}
	}
	return c2
}

// periodicDistance is |c2−c1| after periodic shifting.
func periodicDistance(c1, c2, period Point) float64 {
	return c1.Distance(shiftPeriodic(c1, c2, period))
}

func checkDim(q Quadrature, dim int) error {
	if err := q.check(); err != nil {
		return err
	}
	if q.Dim() != dim {
		return fmt.Errorf("%w: points are %dD, manifold is %dD", ErrDimension, q.Dim(), dim)
	}
	return nil
}
