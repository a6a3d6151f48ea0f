package builtins

import (
	"strconv"

	"github.com/rscarson/lavendeux-parser/internal/registry"
	"github.com/rscarson/lavendeux-parser/pkg/value"
)

func conversionFuncs() []*registry.Func {
	return []*registry.Func{
		{
			Name: "int",
			Args: []registry.ArgSpec{{Name: "x", Type: registry.Any}},
			Handler: func(args []value.Value) (value.Value, error) {
				if args[0].Kind() == value.String {
					i, err := strconv.ParseInt(args[0].AsString(), 10, 64)
					if err != nil {
						f, ferr := strconv.ParseFloat(args[0].AsString(), 64)
						if ferr != nil {
							return value.Value{}, &value.ArithError{Kind: "ArgumentType", Message: "cannot convert " + strconv.Quote(args[0].AsString()) + " to an integer"}
						}
						return value.NewInteger(int64(f)), nil
					}
					return value.NewInteger(i), nil
				}
				i, ok := args[0].ToInt()
				if !ok {
					return value.Value{}, &registry.TypeError{FuncName: "int", ArgName: "x", Want: registry.ArgInteger, Got: args[0].Kind()}
				}
				return value.NewInteger(i), nil
			},
		},
		{
			Name: "float",
			Args: []registry.ArgSpec{{Name: "x", Type: registry.Any}},
			Handler: func(args []value.Value) (value.Value, error) {
				if args[0].Kind() == value.String {
					f, err := strconv.ParseFloat(args[0].AsString(), 64)
					if err != nil {
						return value.Value{}, &value.ArithError{Kind: "ArgumentType", Message: "cannot convert " + strconv.Quote(args[0].AsString()) + " to a float"}
					}
					return value.NewFloat(f), nil
				}
				f, ok := args[0].ToFloat()
				if !ok {
					return value.Value{}, &registry.TypeError{FuncName: "float", ArgName: "x", Want: registry.ArgFloat, Got: args[0].Kind()}
				}
				return value.NewFloat(f), nil
			},
		},
		{
			Name: "bool",
			Args: []registry.ArgSpec{{Name: "x", Type: registry.Any}},
			Handler: func(args []value.Value) (value.Value, error) {
				return value.NewBoolean(args[0].Truthy()), nil
			},
		},
	}
}
