package builtins

import (
	"github.com/rscarson/lavendeux-parser/internal/registry"
	"github.com/rscarson/lavendeux-parser/pkg/value"
)

func arrayFuncs() []*registry.Func {
	return []*registry.Func{
		{
			Name: "len",
			Args: []registry.ArgSpec{{Name: "x", Type: registry.Any}},
			Handler: func(args []value.Value) (value.Value, error) {
				switch args[0].Kind() {
				case value.Array:
					return value.NewInteger(int64(len(args[0].AsArray()))), nil
				case value.Object:
					return value.NewInteger(int64(args[0].AsObject().Len())), nil
				case value.String:
					return value.NewInteger(int64(len([]rune(args[0].AsString())))), nil
				default:
					return value.Value{}, &registry.TypeError{FuncName: "len", ArgName: "x", Want: registry.ArgArray, Got: args[0].Kind()}
				}
			},
		},
		{
			Name: "element",
			Args: []registry.ArgSpec{{Name: "arr", Type: registry.ArgArray}, {Name: "index", Type: registry.ArgInteger}},
			Handler: func(args []value.Value) (value.Value, error) {
				arr := args[0].AsArray()
				i := args[1].AsInt()
				if i < 0 {
					i += int64(len(arr))
				}
				if i < 0 || i >= int64(len(arr)) {
					return value.Value{}, &value.ArithError{Kind: "IndexOutOfRange", Message: "element index out of range"}
				}
				return arr[i], nil
			},
		},
		{
			Name: "keys",
			Args: []registry.ArgSpec{{Name: "obj", Type: registry.ArgObject}},
			Handler: func(args []value.Value) (value.Value, error) {
				keys := args[0].AsObject().SortedKeys()
				out := make([]value.Value, len(keys))
				for i, k := range keys {
					out[i] = value.NewString(k)
				}
				return value.NewArray(out), nil
			},
		},
		{
			Name: "values",
			Args: []registry.ArgSpec{{Name: "obj", Type: registry.ArgObject}},
			Handler: func(args []value.Value) (value.Value, error) {
				keys := args[0].AsObject().SortedKeys()
				out := make([]value.Value, len(keys))
				for i, k := range keys {
					out[i], _ = args[0].AsObject().Get(k)
				}
				return value.NewArray(out), nil
			},
		},
		{
			Name: "enqueue",
			Args: []registry.ArgSpec{{Name: "arr", Type: registry.ArgArray}, {Name: "value", Type: registry.Any}},
			Handler: func(args []value.Value) (value.Value, error) {
				return value.NewArray(append(append([]value.Value{}, args[0].AsArray()...), args[1])), nil
			},
		},
		{
			Name: "dequeue",
			Args: []registry.ArgSpec{{Name: "arr", Type: registry.ArgArray}},
			Handler: func(args []value.Value) (value.Value, error) {
				arr := args[0].AsArray()
				if len(arr) == 0 {
					return value.Value{}, &value.ArithError{Kind: "IndexOutOfRange", Message: "dequeue from an empty array"}
				}
				return arr[0], nil
			},
		},
		{
			Name: "push",
			Args: []registry.ArgSpec{{Name: "arr", Type: registry.ArgArray}, {Name: "value", Type: registry.Any}},
			Handler: func(args []value.Value) (value.Value, error) {
				return value.NewArray(append(append([]value.Value{}, args[0].AsArray()...), args[1])), nil
			},
		},
		{
			Name: "pop",
			Args: []registry.ArgSpec{{Name: "arr", Type: registry.ArgArray}},
			Handler: func(args []value.Value) (value.Value, error) {
				arr := args[0].AsArray()
				if len(arr) == 0 {
					return value.Value{}, &value.ArithError{Kind: "IndexOutOfRange", Message: "pop from an empty array"}
				}
				return arr[len(arr)-1], nil
			},
		},
		{
			Name: "remove",
			Args: []registry.ArgSpec{{Name: "arr", Type: registry.ArgArray}, {Name: "index", Type: registry.ArgInteger}},
			Handler: func(args []value.Value) (value.Value, error) {
				arr := args[0].AsArray()
				i := args[1].AsInt()
				if i < 0 {
					i += int64(len(arr))
				}
				if i < 0 || i >= int64(len(arr)) {
					return value.Value{}, &value.ArithError{Kind: "IndexOutOfRange", Message: "remove index out of range"}
				}
				out := make([]value.Value, 0, len(arr)-1)
				out = append(out, arr[:i]...)
				out = append(out, arr[i+1:]...)
				return value.NewArray(out), nil
			},
		},
		{
			Name: "merge",
			Args: []registry.ArgSpec{{Name: "a", Type: registry.Any}, {Name: "b", Type: registry.Any}},
			Handler: func(args []value.Value) (value.Value, error) {
				a, b := args[0], args[1]
				if a.Kind() == value.Array && b.Kind() == value.Array {
					out := append(append([]value.Value{}, a.AsArray()...), b.AsArray()...)
					return value.NewArray(out), nil
				}
				if a.Kind() == value.Object && b.Kind() == value.Object {
					out := a.AsObject().Clone()
					for _, k := range b.AsObject().Keys() {
						v, _ := b.AsObject().Get(k)
						out.Set(k, v)
					}
					return value.NewObject(out), nil
				}
				return value.Value{}, &value.ArithError{Kind: "ArgumentType", Message: "merge requires two arrays or two objects"}
			},
		},
		{
			Name: "is_empty",
			Args: []registry.ArgSpec{{Name: "x", Type: registry.Any}},
			Handler: func(args []value.Value) (value.Value, error) {
				switch args[0].Kind() {
				case value.Array:
					return value.NewBoolean(len(args[0].AsArray()) == 0), nil
				case value.Object:
					return value.NewBoolean(args[0].AsObject().Len() == 0), nil
				case value.String:
					return value.NewBoolean(args[0].AsString() == ""), nil
				default:
					return value.NewBoolean(!args[0].Truthy()), nil
				}
			},
		},
		{
			Name:     "array",
			Args:     []registry.ArgSpec{{Name: "x", Type: registry.Any, Optional: true}},
			Variadic: true,
			Handler: func(args []value.Value) (value.Value, error) {
				return value.NewArray(append([]value.Value{}, args...)), nil
			},
		},
	}
}
