/*
Package manifolds implements analytic geometric descriptors for mesh
refinement. A manifold knows how to place new points on a curved shape:
given two points on the shape, or a weighted set of them, it returns the
blended point on the shape, and it reports tangent directions along the
shape.

Manifolds come in two flavours. Plain manifolds (SphericalManifold,
CylindricalManifold, FlatManifold) blend points by direct geometric
construction. Chart manifolds (PolarManifold, FunctionManifold,
TorusManifold) map points to an auxiliary coordinate system, blend linearly
there, and map the result back. Periodic chart axes, like angles, are
shifted by whole periods before blending, so that averaging 359° and 1°
yields 0°.

All manifolds are immutable after construction. Every query is a pure
function of its arguments and may be called concurrently.

# Singular configurations

Points coinciding with the center of a SphericalManifold or PolarManifold,
or lying on the axis of a CylindricalManifold, have no well defined
direction. Operations on such points fall back to linear blending in ambient
space and do not produce NaN, but the result is not on the curved shape.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package manifolds

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'manifolds'
func tracer() tracing.Trace {
	return tracing.Select("manifolds")
}
