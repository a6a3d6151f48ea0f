// Package registry implements the function and decorator registries that
// back every built-in and every extension-contributed handler: argument
// descriptors, positional matching with coercion, and variadic/alias
// support, generalized from a fixed builtin set to a registry hosts can
// extend.
package registry

import (
	"fmt"

	"github.com/rscarson/lavendeux-parser/pkg/value"
)

// ArgType names the coercion a positional argument accepts before dispatch.
type ArgType int

const (
	Any ArgType = iota
	ArgBoolean
	ArgInteger
	ArgFloat
	ArgNumeric
	ArgString
	ArgArray
	ArgObject
)

func (t ArgType) String() string {
	switch t {
	case Any:
		return "Any"
	case ArgBoolean:
		return "Boolean"
	case ArgInteger:
		return "Integer"
	case ArgFloat:
		return "Float"
	case ArgNumeric:
		return "Numeric"
	case ArgString:
		return "String"
	case ArgArray:
		return "Array"
	case ArgObject:
		return "Object"
	default:
		return "Unknown"
	}
}

// ArgSpec describes one positional parameter of a registered function.
type ArgSpec struct {
	Name     string
	Type     ArgType
	Optional bool
}

// Func is a registered callable. Args describes fixed positional
// parameters; if Variadic is true, any arguments past len(Args) are passed
// through uncoerced and Handler must consume them via the raw args slice.
type Func struct {
	Name     string
	Args     []ArgSpec
	Variadic bool
	Handler  func(args []value.Value) (value.Value, error)
}

// Decorator formats a Value as a string for an `@name` suffix.
type Decorator struct {
	Name    string
	Handler func(v value.Value) (string, error)
}

// ArityError reports a function call with the wrong number of arguments.
type ArityError struct {
	Name     string
	Got      int
	Min, Max int
}

func (e *ArityError) Error() string {
	if e.Min == e.Max {
		return fmt.Sprintf("%s expects %d argument(s), got %d", e.Name, e.Min, e.Got)
	}
	return fmt.Sprintf("%s expects between %d and %d argument(s), got %d", e.Name, e.Min, e.Max, e.Got)
}

// TypeError reports an argument that could not be coerced to its
// declared ArgType.
type TypeError struct {
	FuncName string
	ArgName  string
	Want     ArgType
	Got      value.Kind
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("%s: argument %q expects %s, got %s", e.FuncName, e.ArgName, e.Want, e.Got)
}

// Registry holds every function and decorator available to a running
// script: the built-ins, plus whatever the host or a loaded extension has
// registered. Aliasing is supported by registering the same Func/Decorator
// under multiple names.
type Registry struct {
	functions  map[string]*Func
	decorators map[string]*Decorator
}

func New() *Registry {
	return &Registry{
		functions:  map[string]*Func{},
		decorators: map[string]*Decorator{},
	}
}

// RegisterFunction adds or replaces a function under fn.Name.
func (r *Registry) RegisterFunction(fn *Func) {
	r.functions[fn.Name] = fn
}

// Alias registers an existing function under an additional name.
func (r *Registry) Alias(existing, alias string) bool {
	fn, ok := r.functions[existing]
	if !ok {
		return false
	}
	r.functions[alias] = fn
	return true
}

// RegisterDecorator adds or replaces a decorator under d.Name.
func (r *Registry) RegisterDecorator(d *Decorator) {
	r.decorators[d.Name] = d
}

func (r *Registry) Function(name string) (*Func, bool) {
	fn, ok := r.functions[name]
	return fn, ok
}

func (r *Registry) DecoratorByName(name string) (*Decorator, bool) {
	d, ok := r.decorators[name]
	return d, ok
}

// FunctionNames lists every registered function name, used by the `help`
// builtin.
func (r *Registry) FunctionNames() []string {
	out := make([]string, 0, len(r.functions))
	for name := range r.functions {
		out = append(out, name)
	}
	return out
}

// Call validates arity and coerces arguments per fn.Args, then invokes the
// handler.
func Call(fn *Func, args []value.Value) (value.Value, error) {
	min := 0
	for _, a := range fn.Args {
		if !a.Optional {
			min++
		}
	}
	max := len(fn.Args)
	if fn.Variadic {
		if len(args) < min {
			return value.Value{}, &ArityError{Name: fn.Name, Got: len(args), Min: min, Max: max}
		}
	} else if len(args) < min || len(args) > max {
		return value.Value{}, &ArityError{Name: fn.Name, Got: len(args), Min: min, Max: max}
	}

	coerced := make([]value.Value, len(args))
	copy(coerced, args)
	for i, spec := range fn.Args {
		if i >= len(args) {
			break
		}
		v, ok := Coerce(args[i], spec.Type)
		if !ok {
			return value.Value{}, &TypeError{FuncName: fn.Name, ArgName: spec.Name, Want: spec.Type, Got: args[i].Kind()}
		}
		coerced[i] = v
	}
	return fn.Handler(coerced)
}

// Coerce converts v to the requested ArgType per the coercion lattice, or
// reports failure.
func Coerce(v value.Value, t ArgType) (value.Value, bool) {
	switch t {
	case Any:
		return v, true
	case ArgBoolean:
		return value.NewBoolean(v.Truthy()), true
	case ArgInteger:
		i, ok := v.ToInt()
		if !ok {
			return value.Value{}, false
		}
		return value.NewInteger(i), true
	case ArgFloat:
		f, ok := v.ToFloat()
		if !ok {
			return value.Value{}, false
		}
		return value.NewFloat(f), true
	case ArgNumeric:
		if !v.IsNumeric() {
			return value.Value{}, false
		}
		return v, true
	case ArgString:
		if v.Kind() != value.String {
			return value.NewString(v.String()), true
		}
		return v, true
	case ArgArray:
		return value.NewArray(v.ToArray()), true
	case ArgObject:
		return value.NewObject(v.ToObject()), true
	default:
		return value.Value{}, false
	}
}
