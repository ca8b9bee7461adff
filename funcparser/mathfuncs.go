package funcparser

import (
	"fmt"
	"math"

	"github.com/expr-lang/expr"
)

var unary = map[string]func(float64) float64{
	"sin":  math.Sin,
	"cos":  math.Cos,
	"tan":  math.Tan,
	"asin": math.Asin,
	"acos": math.Acos,
	"atan": math.Atan,
	"sinh": math.Sinh,
	"cosh": math.Cosh,
	"tanh": math.Tanh,
	"sqrt": math.Sqrt,
	"exp":  math.Exp,
	"log":  math.Log,
}

var binary = map[string]func(float64, float64) float64{
	"atan2": math.Atan2,
	"pow":   math.Pow,
}

// mathFunctions makes the functions of package math callable from
// expressions. Arguments may be integer or float literals.
func mathFunctions() []expr.Option {
	opts := make([]expr.Option, 0, len(unary)+len(binary))
	for name, fn := range unary {
		name, fn := name, fn
		opts = append(opts, expr.Function(name, func(params ...any) (any, error) {
			if len(params) != 1 {
				return nil, fmt.Errorf("%s expects 1 argument, got %d", name, len(params))
			}
			x, err := toFloat(params[0])
			if err != nil {
				return nil, err
			}
			return fn(x), nil
		}))
	}
	for name, fn := range binary {
		name, fn := name, fn
		opts = append(opts, expr.Function(name, func(params ...any) (any, error) {
			if len(params) != 2 {
				return nil, fmt.Errorf("%s expects 2 arguments, got %d", name, len(params))
			}
			x, err := toFloat(params[0])
			if err != nil {
				return nil, err
			}
			y, err := toFloat(params[1])
			if err != nil {
				return nil, err
			}
			return fn(x, y), nil
		}))
	}
	return opts
}

func toFloat(v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case int32:
		return float64(x), nil
	case uint:
		return float64(x), nil
	case uint64:
		return float64(x), nil
	}
	return 0, fmt.Errorf("value %v of type %T is not a number", v, v)
}
