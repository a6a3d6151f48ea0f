package registry

import (
	"testing"

	"github.com/rscarson/lavendeux-parser/pkg/value"
)

func TestArgTypeString(t *testing.T) {
	tests := []struct {
		t    ArgType
		want string
	}{
		{Any, "Any"},
		{ArgBoolean, "Boolean"},
		{ArgInteger, "Integer"},
		{ArgFloat, "Float"},
		{ArgNumeric, "Numeric"},
		{ArgString, "String"},
		{ArgArray, "Array"},
		{ArgObject, "Object"},
		{ArgType(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.t.String(); got != tt.want {
			t.Errorf("ArgType(%d).String() = %q, want %q", tt.t, got, tt.want)
		}
	}
}

func TestCoerce(t *testing.T) {
	tests := []struct {
		name string
		v    value.Value
		t    ArgType
		ok   bool
	}{
		{"any accepts anything", value.NewString("x"), Any, true},
		{"boolean from truthy int", value.NewInteger(1), ArgBoolean, true},
		{"integer from float truncates", value.NewFloat(3.9), ArgInteger, true},
		{"float from int", value.NewInteger(2), ArgFloat, true},
		{"numeric rejects string", value.NewString("1"), ArgNumeric, false},
		{"string stringifies non-string", value.NewInteger(5), ArgString, true},
		{"array accepts array", value.NewArray(nil), ArgArray, true},
		{"array lattice-coerces a scalar to a one-element array", value.NewInteger(1), ArgArray, true},
		{"object accepts object", value.NewObject(nil), ArgObject, true},
		{"object lattice-coerces a scalar to a single-entry object", value.NewInteger(1), ArgObject, true},
		{"integer rejects a non-numeric string", value.NewString("abc"), ArgInteger, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := Coerce(tt.v, tt.t)
			if ok != tt.ok {
				t.Errorf("Coerce() ok = %v, want %v", ok, tt.ok)
			}
		})
	}
}

func TestCoerceStringPassesThroughUnchanged(t *testing.T) {
	v, ok := Coerce(value.NewString("already"), ArgString)
	if !ok || v.AsString() != "already" {
		t.Errorf("Coerce(String, ArgString) = %v, %v", v, ok)
	}
}

func echoFunc(name string, args ...ArgSpec) *Func {
	return &Func{
		Name: name,
		Args: args,
		Handler: func(a []value.Value) (value.Value, error) {
			if len(a) == 0 {
				return value.NewString(""), nil
			}
			return a[0], nil
		},
	}
}

func TestRegistryFunctionAndAlias(t *testing.T) {
	reg := New()
	reg.RegisterFunction(echoFunc("echo", ArgSpec{Name: "x", Type: Any}))

	if _, ok := reg.Function("echo"); !ok {
		t.Fatal("Function(echo) not found after registration")
	}
	if !reg.Alias("echo", "say") {
		t.Fatal("Alias(echo, say) returned false")
	}
	if _, ok := reg.Function("say"); !ok {
		t.Fatal("Function(say) not found after aliasing")
	}
	if reg.Alias("missing", "whatever") {
		t.Error("Alias of an unregistered function should fail")
	}
}

func TestRegistryDecorator(t *testing.T) {
	reg := New()
	reg.RegisterDecorator(&Decorator{Name: "shout", Handler: func(v value.Value) (string, error) {
		return v.String() + "!", nil
	}})
	dec, ok := reg.DecoratorByName("shout")
	if !ok {
		t.Fatal("DecoratorByName(shout) not found")
	}
	out, err := dec.Handler(value.NewString("hi"))
	if err != nil || out != "hi!" {
		t.Errorf("Handler() = %q, %v, want hi!, nil", out, err)
	}
}

func TestFunctionNames(t *testing.T) {
	reg := New()
	reg.RegisterFunction(echoFunc("a"))
	reg.RegisterFunction(echoFunc("b"))
	names := reg.FunctionNames()
	if len(names) != 2 {
		t.Fatalf("FunctionNames() returned %d names, want 2", len(names))
	}
}

func TestCallArity(t *testing.T) {
	fn := echoFunc("f", ArgSpec{Name: "x", Type: Any}, ArgSpec{Name: "y", Type: Any, Optional: true})

	if _, err := Call(fn, nil); err == nil {
		t.Fatal("Call with too few arguments should fail")
	}
	if _, err := Call(fn, []value.Value{value.NewInteger(1), value.NewInteger(2), value.NewInteger(3)}); err == nil {
		t.Fatal("Call with too many arguments should fail")
	}
	if _, err := Call(fn, []value.Value{value.NewInteger(1)}); err != nil {
		t.Errorf("Call with the one required argument should succeed, got %v", err)
	}
}

func TestCallVariadicArity(t *testing.T) {
	fn := &Func{
		Name:     "sum",
		Args:     []ArgSpec{{Name: "x", Type: ArgNumeric}},
		Variadic: true,
		Handler: func(args []value.Value) (value.Value, error) {
			total := int64(0)
			for _, a := range args {
				i, _ := a.ToInt()
				total += i
			}
			return value.NewInteger(total), nil
		},
	}
	if _, err := Call(fn, nil); err == nil {
		t.Fatal("variadic call missing its required argument should fail")
	}
	got, err := Call(fn, []value.Value{value.NewInteger(1), value.NewInteger(2), value.NewInteger(3)})
	if err != nil {
		t.Fatalf("Call() error = %v", err)
	}
	if got.AsInt() != 6 {
		t.Errorf("Call() = %d, want 6", got.AsInt())
	}
}

func TestCallCoercesArguments(t *testing.T) {
	fn := &Func{
		Name: "double",
		Args: []ArgSpec{{Name: "x", Type: ArgFloat}},
		Handler: func(args []value.Value) (value.Value, error) {
			return value.NewFloat(args[0].AsFloat() * 2), nil
		},
	}
	got, err := Call(fn, []value.Value{value.NewInteger(3)})
	if err != nil {
		t.Fatalf("Call() error = %v", err)
	}
	if got.AsFloat() != 6 {
		t.Errorf("Call() = %v, want 6", got.AsFloat())
	}
}

func TestCallTypeError(t *testing.T) {
	fn := &Func{
		Name:    "needsInteger",
		Args:    []ArgSpec{{Name: "n", Type: ArgInteger}},
		Handler: func(args []value.Value) (value.Value, error) { return args[0], nil },
	}
	_, err := Call(fn, []value.Value{value.NewString("not a number")})
	if err == nil {
		t.Fatal("Call with a mismatched argument type should fail")
	}
	if _, ok := err.(*TypeError); !ok {
		t.Errorf("err = %#v, want *TypeError", err)
	}
}

func TestCallCoercesScalarToArrayAndObject(t *testing.T) {
	arrayFn := &Func{
		Name: "needsArray",
		Args: []ArgSpec{{Name: "a", Type: ArgArray}},
		Handler: func(args []value.Value) (value.Value, error) { return args[0], nil },
	}
	got, err := Call(arrayFn, []value.Value{value.NewInteger(7)})
	if err != nil {
		t.Fatalf("Call() error = %v", err)
	}
	if got.Kind() != value.Array || len(got.AsArray()) != 1 || got.AsArray()[0].AsInt() != 7 {
		t.Errorf("Call() = %v, want a one-element array holding 7", got)
	}

	objectFn := &Func{
		Name: "needsObject",
		Args: []ArgSpec{{Name: "o", Type: ArgObject}},
		Handler: func(args []value.Value) (value.Value, error) { return args[0], nil },
	}
	got, err = Call(objectFn, []value.Value{value.NewString("x")})
	if err != nil {
		t.Fatalf("Call() error = %v", err)
	}
	v, ok := got.AsObject().Get("0")
	if got.Kind() != value.Object || !ok || v.AsString() != "x" {
		t.Errorf("Call() = %v, want {0: \"x\"}", got)
	}
}

func TestArityErrorMessage(t *testing.T) {
	exact := &ArityError{Name: "f", Got: 1, Min: 2, Max: 2}
	if exact.Error() != "f expects 2 argument(s), got 1" {
		t.Errorf("Error() = %q", exact.Error())
	}
	ranged := &ArityError{Name: "g", Got: 0, Min: 1, Max: 3}
	if ranged.Error() != "g expects between 1 and 3 argument(s), got 0" {
		t.Errorf("Error() = %q", ranged.Error())
	}
}
