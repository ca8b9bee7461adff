/*
Package funcparser creates vector-valued functions from textual
expressions, to be used as maps of a manifolds.FunctionManifold.

A function is given by its components, separated by semicolons, over a
comma-separated list of variable names:

	f, err := funcparser.New("r*cos(phi); r*sin(phi)", "r,phi", nil)

Expressions are compiled once and may be evaluated concurrently. The usual
arithmetic operators are available, '^' and '**' denote exponentiation, and
the functions sin, cos, tan, asin, acos, atan, atan2, sinh, cosh, tanh,
sqrt, exp, log, pow and abs may be called. The constant pi is predefined;
more constants may be handed to New.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package funcparser

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/npillmayer/manifolds"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'manifolds.funcparser'
func tracer() tracing.Trace {
	return tracing.Select("manifolds.funcparser")
}

var (
	// ErrNoExpression indicates an empty expression string.
	ErrNoExpression = errors.New("no expression given")
	// ErrVariables indicates an unusable list of variable names.
	ErrVariables = errors.New("invalid variable names")
	// ErrCompile indicates an expression which does not compile.
	ErrCompile = errors.New("cannot compile expression")
	// ErrClosed indicates evaluation of a closed function.
	ErrClosed = errors.New("function is closed")
)

// DefaultVariables returns the default variable names "x,y,z", truncated to
// dim names.
func DefaultVariables(dim int) string {
	names := []string{"x", "y", "z"}
	if dim < 1 || dim > len(names) {
		return ""
	}
	return strings.Join(names[:dim], ",")
}

// Function is a vector-valued function compiled from expressions. It
// implements manifolds.VectorFunction.
type Function struct {
	source    []string
	programs  []*vm.Program
	variables []string
	constants map[string]float64
}

var _ manifolds.VectorFunction = (*Function)(nil)

// New compiles a function. expressions holds the components separated by
// ';', variables the comma-separated names of the arguments. An empty
// variables string selects DefaultVariables for as many variables as there
// are components. Constants may be referenced by name from every
// component.
func New(expressions, variables string, constants map[string]float64) (*Function, error) {
	source := split(expressions, ";")
	if len(source) == 0 {
		return nil, ErrNoExpression
	}
	if len(source) > manifolds.MaxDim {
		return nil, fmt.Errorf("%w: %d components", manifolds.ErrDimension, len(source))
	}
	if strings.TrimSpace(variables) == "" {
		variables = DefaultVariables(len(source))
	}
	vars := split(variables, ",")
	if len(vars) == 0 || len(vars) > manifolds.MaxDim {
		return nil, fmt.Errorf("%w: %q", ErrVariables, variables)
	}
	f := &Function{
		source:    source,
		variables: vars,
		constants: make(map[string]float64, len(constants)+1),
	}
	f.constants["pi"] = math.Pi
	for k, v := range constants {
		f.constants[k] = v
	}
	seen := make(map[string]bool, len(vars))
	for _, v := range vars {
		if seen[v] {
			return nil, fmt.Errorf("%w: %q appears twice", ErrVariables, v)
		}
		if _, ok := f.constants[v]; ok {
			return nil, fmt.Errorf("%w: %q is a constant", ErrVariables, v)
		}
		seen[v] = true
	}
	env := f.environment(manifolds.Origin(len(vars)))
	opts := append([]expr.Option{expr.Env(env)}, mathFunctions()...)
	for i, s := range source {
		program, err := expr.Compile(s, opts...)
		if err != nil {
			tracer().Errorf("component %d: %v", i, err)
			return nil, fmt.Errorf("%w %q: %v", ErrCompile, s, err)
		}
		f.programs = append(f.programs, program)
	}
	tracer().Debugf("compiled function (%s) -> (%s)", strings.Join(vars, ","), strings.Join(source, "; "))
	return f, nil
}

// MustNew is like New, but panics if the expressions do not compile.
func MustNew(expressions, variables string, constants map[string]float64) *Function {
	f, err := New(expressions, variables, constants)
	if err != nil {
		panic(err)
	}
	return f
}

// NComponents is the number of components of the function value.
func (f *Function) NComponents() int {
	return len(f.source)
}

// NVariables is the number of arguments.
func (f *Function) NVariables() int {
	return len(f.variables)
}

// Variables returns the names of the arguments.
func (f *Function) Variables() []string {
	v := make([]string, len(f.variables))
	copy(v, f.variables)
	return v
}

// Value evaluates every component at p. p must have NVariables components.
// Value panics if the function is closed or an expression fails to
// evaluate; both are programming errors, as the expressions compiled.
func (f *Function) Value(p manifolds.Point) manifolds.Point {
	if f.programs == nil {
		panic(ErrClosed)
	}
	if p.Dim() != len(f.variables) {
		panic(fmt.Sprintf("funcparser: function of (%s) called with %v", strings.Join(f.variables, ","), p))
	}
	env := f.environment(p)
	values := make([]float64, len(f.programs))
	for i, program := range f.programs {
		out, err := expr.Run(program, env)
		if err != nil {
			panic(fmt.Sprintf("funcparser: evaluating %q at %v: %v", f.source[i], p, err))
		}
		v, err := toFloat(out)
		if err != nil {
			panic(fmt.Sprintf("funcparser: evaluating %q at %v: %v", f.source[i], p, err))
		}
		values[i] = v
	}
	return manifolds.P(values...)
}

// Close releases the compiled expressions. The function must not be
// evaluated afterwards.
func (f *Function) Close() error {
	f.programs = nil
	return nil
}

// String returns the source of the function.
func (f *Function) String() string {
	return fmt.Sprintf("(%s) -> (%s)", strings.Join(f.variables, ","), strings.Join(f.source, "; "))
}

// environment binds the variables to the components of p.
func (f *Function) environment(p manifolds.Point) map[string]any {
	env := make(map[string]any, len(f.constants)+len(f.variables))
	for k, v := range f.constants {
		env[k] = v
	}
	for i, name := range f.variables {
		env[name] = p.At(i)
	}
	return env
}

func split(s, sep string) []string {
	var parts []string
	for _, part := range strings.Split(s, sep) {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}
