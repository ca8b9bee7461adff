package funcparser

import (
	"fmt"

	"github.com/npillmayer/manifolds"
)

// Config configures NewManifold. The embedded FunctionOptions are handed to
// manifolds.NewFunctionManifold; Owned is always set.
type Config struct {
	// ChartVariables names the chart coordinates, comma-separated
	// (default DefaultVariables of the chart dimension).
	ChartVariables string
	// SpaceVariables names the ambient coordinates, comma-separated
	// (default DefaultVariables of the space dimension).
	SpaceVariables string
	// Constants may be referenced by name from both expressions.
	Constants map[string]float64
	manifolds.FunctionOptions
}

// NewManifold creates a FunctionManifold from textual expressions.
// pushForward has one component per ambient coordinate, pullBack one per
// chart coordinate. The manifold owns the compiled functions.
//
//	m, err := funcparser.NewManifold("r*cos(phi); r*sin(phi)", "sqrt(x^2+y^2); atan2(y,x)",
//	    funcparser.Config{ChartVariables: "r,phi"})
func NewManifold(pushForward, pullBack string, conf Config) (*manifolds.FunctionManifold, error) {
	chartdim := len(split(pullBack, ";"))
	spacedim := len(split(pushForward, ";"))
	chartVars := conf.ChartVariables
	if chartVars == "" {
		chartVars = DefaultVariables(chartdim)
	}
	spaceVars := conf.SpaceVariables
	if spaceVars == "" {
		spaceVars = DefaultVariables(spacedim)
	}
	push, err := New(pushForward, chartVars, conf.Constants)
	if err != nil {
		return nil, fmt.Errorf("push forward: %w", err)
	}
	pull, err := New(pullBack, spaceVars, conf.Constants)
	if err != nil {
		return nil, fmt.Errorf("pull back: %w", err)
	}
	if push.NVariables() != pull.NComponents() {
		return nil, fmt.Errorf("%w: push forward takes %d variables, pull back yields %d components",
			manifolds.ErrDimension, push.NVariables(), pull.NComponents())
	}
	if pull.NVariables() != push.NComponents() {
		return nil, fmt.Errorf("%w: pull back takes %d variables, push forward yields %d components",
			manifolds.ErrDimension, pull.NVariables(), push.NComponents())
	}
	opts := conf.FunctionOptions
	opts.Owned = true
	return manifolds.NewFunctionManifold(push, pull, opts)
}
