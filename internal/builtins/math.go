// Package builtins implements the full built-in function set: math,
// string, array/object, crypto/encoding, networking, and misc/conversion
// functions. One Go function per builtin, registered under its
// script-visible name, built on golang.org/x/text and tidwall/pretty
// where those libraries fit.
package builtins

import (
	"fmt"
	"math"

	"github.com/rscarson/lavendeux-parser/internal/registry"
	"github.com/rscarson/lavendeux-parser/internal/state"
	"github.com/rscarson/lavendeux-parser/pkg/value"
)

// Register adds the full built-in set to reg. caps gates the
// ambient-authority functions (network and filesystem access); pass nil to
// deny all of them.
func Register(reg *registry.Registry, caps *state.Capabilities) {
	for _, fn := range mathFuncs() {
		reg.RegisterFunction(fn)
	}
	for _, fn := range stringFuncs() {
		reg.RegisterFunction(fn)
	}
	for _, fn := range arrayFuncs() {
		reg.RegisterFunction(fn)
	}
	for _, fn := range cryptoFuncs() {
		reg.RegisterFunction(fn)
	}
	for _, fn := range miscFuncs(reg, caps) {
		reg.RegisterFunction(fn)
	}
	for _, fn := range conversionFuncs() {
		reg.RegisterFunction(fn)
	}
	for _, fn := range networkFuncs(caps) {
		reg.RegisterFunction(fn)
	}
}

func unaryFloat(name string, f func(float64) float64) *registry.Func {
	return &registry.Func{
		Name: name,
		Args: []registry.ArgSpec{{Name: "x", Type: registry.ArgFloat}},
		Handler: func(args []value.Value) (value.Value, error) {
			return value.NewFloat(f(args[0].AsFloat())), nil
		},
	}
}

func domainCheckedUnary(name string, f func(float64) float64, valid func(float64) bool, msg string) *registry.Func {
	return &registry.Func{
		Name: name,
		Args: []registry.ArgSpec{{Name: "x", Type: registry.ArgFloat}},
		Handler: func(args []value.Value) (value.Value, error) {
			x := args[0].AsFloat()
			if valid != nil && !valid(x) {
				return value.Value{}, &value.ArithError{Kind: "DomainError", Message: fmt.Sprintf(msg, x)}
			}
			return value.NewFloat(f(x)), nil
		},
	}
}

func mathFuncs() []*registry.Func {
	return []*registry.Func{
		{
			Name: "abs",
			Args: []registry.ArgSpec{{Name: "x", Type: registry.ArgNumeric}},
			Handler: func(args []value.Value) (value.Value, error) {
				if args[0].Kind() == value.Integer {
					i := args[0].AsInt()
					if i < 0 {
						i = -i
					}
					return value.NewInteger(i), nil
				}
				f, _ := args[0].ToFloat()
				return value.NewFloat(math.Abs(f)), nil
			},
		},
		unaryFloat("ceil", math.Ceil),
		unaryFloat("floor", math.Floor),
		{
			Name: "round",
			Args: []registry.ArgSpec{
				{Name: "x", Type: registry.ArgFloat},
				{Name: "places", Type: registry.ArgInteger, Optional: true},
			},
			Handler: func(args []value.Value) (value.Value, error) {
				places := int64(0)
				if len(args) > 1 {
					places = args[1].AsInt()
				}
				mult := math.Pow(10, float64(places))
				return value.NewFloat(math.Round(args[0].AsFloat()*mult) / mult), nil
			},
		},
		domainCheckedUnary("sqrt", math.Sqrt, func(x float64) bool { return x >= 0 }, "sqrt of negative number %v"),
		{
			Name: "root",
			Args: []registry.ArgSpec{{Name: "x", Type: registry.ArgFloat}, {Name: "n", Type: registry.ArgFloat}},
			Handler: func(args []value.Value) (value.Value, error) {
				x, n := args[0].AsFloat(), args[1].AsFloat()
				if x < 0 && math.Mod(n, 2) == 0 {
					return value.Value{}, &value.ArithError{Kind: "DomainError", Message: fmt.Sprintf("%v root of negative number %v", n, x)}
				}
				return value.NewFloat(math.Pow(x, 1/n)), nil
			},
		},
		domainCheckedUnary("ln", math.Log, func(x float64) bool { return x > 0 }, "ln of non-positive number %v"),
		{
			Name: "log",
			Args: []registry.ArgSpec{{Name: "x", Type: registry.ArgFloat}, {Name: "base", Type: registry.ArgFloat, Optional: true}},
			Handler: func(args []value.Value) (value.Value, error) {
				x := args[0].AsFloat()
				if x <= 0 {
					return value.Value{}, &value.ArithError{Kind: "DomainError", Message: fmt.Sprintf("log of non-positive number %v", x)}
				}
				if len(args) > 1 {
					return value.NewFloat(math.Log(x) / math.Log(args[1].AsFloat())), nil
				}
				return value.NewFloat(math.Log10(x)), nil
			},
		},
		domainCheckedUnary("log10", math.Log10, func(x float64) bool { return x > 0 }, "log10 of non-positive number %v"),
		unaryFloat("sin", math.Sin),
		unaryFloat("cos", math.Cos),
		unaryFloat("tan", math.Tan),
		domainCheckedUnary("asin", math.Asin, func(x float64) bool { return x >= -1 && x <= 1 }, "asin domain error for %v"),
		domainCheckedUnary("acos", math.Acos, func(x float64) bool { return x >= -1 && x <= 1 }, "acos domain error for %v"),
		unaryFloat("atan", math.Atan),
		unaryFloat("sinh", math.Sinh),
		unaryFloat("cosh", math.Cosh),
		unaryFloat("tanh", math.Tanh),
		unaryFloat("to_radians", func(x float64) float64 { return x * math.Pi / 180 }),
		unaryFloat("to_degrees", func(x float64) float64 { return x * 180 / math.Pi }),
		{
			Name:     "min",
			Args:     []registry.ArgSpec{{Name: "x", Type: registry.ArgNumeric}, {Name: "y", Type: registry.ArgNumeric}},
			Variadic: true,
			Handler:  reduceNumeric(func(a, b float64) bool { return a < b }),
		},
		{
			Name:     "max",
			Args:     []registry.ArgSpec{{Name: "x", Type: registry.ArgNumeric}, {Name: "y", Type: registry.ArgNumeric}},
			Variadic: true,
			Handler:  reduceNumeric(func(a, b float64) bool { return a > b }),
		},
	}
}

// reduceNumeric builds a variadic min/max handler: keep whichever operand
// satisfies better(candidate, current).
func reduceNumeric(better func(a, b float64) bool) func([]value.Value) (value.Value, error) {
	return func(args []value.Value) (value.Value, error) {
		best := args[0]
		bestF, _ := best.ToFloat()
		for _, a := range args[1:] {
			if !a.IsNumeric() {
				return value.Value{}, &registry.TypeError{FuncName: "min/max", ArgName: "x", Want: registry.ArgNumeric, Got: a.Kind()}
			}
			f, _ := a.ToFloat()
			if better(f, bestF) {
				best, bestF = a, f
			}
		}
		return best, nil
	}
}
