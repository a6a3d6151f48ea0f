package value

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// TestNestedStructuralEqual exercises Value.Equal (the cmp.Equal method
// convention) on arrays-of-objects and objects-of-arrays, where a bare
// boolean mismatch is hard to debug by hand: cmp.Diff walks the nested
// Array/Object tree and reports exactly which element or key differs.
func TestNestedStructuralEqual(t *testing.T) {
	objA := NewOrderedMap()
	objA.Set("name", NewString("lhs"))
	objA.Set("scores", NewArray([]Value{NewInteger(1), NewInteger(2)}))

	objB := NewOrderedMap()
	objB.Set("name", NewString("lhs"))
	objB.Set("scores", NewArray([]Value{NewInteger(1), NewInteger(2)}))

	a := NewArray([]Value{NewObject(objA), NewInteger(3)})
	b := NewArray([]Value{NewObject(objB), NewInteger(3)})
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("nested values should compare equal (-a +b):\n%s", diff)
	}

	objC := NewOrderedMap()
	objC.Set("name", NewString("rhs"))
	objC.Set("scores", NewArray([]Value{NewInteger(1), NewInteger(9)}))
	c := NewArray([]Value{NewObject(objC), NewInteger(3)})

	if diff := cmp.Diff(a, c); diff == "" {
		t.Error("expected a diff between differing nested objects, got none")
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected string
	}{
		{Boolean, "Boolean"},
		{Integer, "Integer"},
		{Float, "Float"},
		{String, "String"},
		{Array, "Array"},
		{Object, "Object"},
		{Kind(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.expected {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.expected)
		}
	}
}

func TestTruthy(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want bool
	}{
		{"false boolean", NewBoolean(false), false},
		{"true boolean", NewBoolean(true), true},
		{"zero integer", NewInteger(0), false},
		{"nonzero integer", NewInteger(1), true},
		{"zero float", NewFloat(0), false},
		{"nonzero float", NewFloat(0.5), true},
		{"empty string", NewString(""), false},
		{"nonempty string", NewString("x"), true},
		{"empty array", NewArray(nil), false},
		{"nonempty array", NewArray([]Value{NewInteger(1)}), true},
		{"empty object", NewObject(nil), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Truthy(); got != tt.want {
				t.Errorf("Truthy() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestToFloatToInt(t *testing.T) {
	if f, ok := NewBoolean(true).ToFloat(); !ok || f != 1 {
		t.Errorf("true.ToFloat() = %v, %v", f, ok)
	}
	if f, ok := NewInteger(3).ToFloat(); !ok || f != 3 {
		t.Errorf("3.ToFloat() = %v, %v", f, ok)
	}
	if _, ok := NewString("x").ToFloat(); ok {
		t.Error("String.ToFloat() should fail")
	}
	if i, ok := NewFloat(3.9).ToInt(); !ok || i != 3 {
		t.Errorf("3.9.ToInt() = %v, %v, want 3", i, ok)
	}
	if _, ok := NewArray(nil).ToInt(); ok {
		t.Error("Array.ToInt() should fail")
	}
}

func TestPromote(t *testing.T) {
	tests := []struct {
		name   string
		a, b   Value
		want   Kind
		wantOK bool
	}{
		{"bool and int", NewBoolean(true), NewInteger(1), Integer, true},
		{"int and float", NewInteger(1), NewFloat(1.5), Float, true},
		{"two ints", NewInteger(1), NewInteger(2), Integer, true},
		{"string not numeric", NewString("x"), NewInteger(1), 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, ok := Promote(tt.a, tt.b)
			if ok != tt.wantOK {
				t.Fatalf("Promote() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && kind != tt.want {
				t.Errorf("Promote() = %v, want %v", kind, tt.want)
			}
		})
	}
}

func TestValueString(t *testing.T) {
	m := NewOrderedMap()
	m.Set("b", NewInteger(2))
	m.Set("a", NewInteger(1))

	tests := []struct {
		name string
		v    Value
		want string
	}{
		{"boolean true", NewBoolean(true), "true"},
		{"boolean false", NewBoolean(false), "false"},
		{"integer", NewInteger(42), "42"},
		{"float with trailing zero", NewFloat(3), "3.0"},
		{"float fraction", NewFloat(3.25), "3.25"},
		{"currency", NewCurrency(19.5, "$"), "$19.5"},
		{"string", NewString("hi"), "hi"},
		{"array", NewArray([]Value{NewInteger(1), NewString("x")}), `[1, "x"]`},
		{"object preserves insertion order", NewObject(m), `{"b": 2, "a": 1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatFloatSpecialValues(t *testing.T) {
	if got := formatFloat(posInf()); got != "inf" {
		t.Errorf("formatFloat(+Inf) = %q, want inf", got)
	}
	if got := formatFloat(negInf()); got != "-inf" {
		t.Errorf("formatFloat(-Inf) = %q, want -inf", got)
	}
	if got := formatFloat(nan()); got != "NaN" {
		t.Errorf("formatFloat(NaN) = %q, want NaN", got)
	}
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"int equals float", NewInteger(2), NewFloat(2.0), true},
		{"bool equals int", NewBoolean(true), NewInteger(1), true},
		{"different numeric values", NewInteger(2), NewInteger(3), false},
		{"equal strings", NewString("a"), NewString("a"), true},
		{"different kinds non numeric", NewString("1"), NewInteger(1), false},
		{"equal arrays", NewArray([]Value{NewInteger(1)}), NewArray([]Value{NewInteger(1)}), true},
		{"different length arrays", NewArray([]Value{NewInteger(1)}), NewArray([]Value{}), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equal(tt.a, tt.b); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOrderedMap(t *testing.T) {
	m := NewOrderedMap()
	m.Set("z", NewInteger(1))
	m.Set("a", NewInteger(2))
	m.Set("z", NewInteger(3))

	if got, ok := m.Get("z"); !ok || got.AsInt() != 3 {
		t.Fatalf("Get(z) = %v, %v, want 3, true", got, ok)
	}
	if keys := m.Keys(); len(keys) != 2 || keys[0] != "z" || keys[1] != "a" {
		t.Fatalf("Keys() = %v, want [z a] (insertion order, re-set keeps position)", keys)
	}
	if keys := m.SortedKeys(); keys[0] != "a" || keys[1] != "z" {
		t.Fatalf("SortedKeys() = %v, want [a z]", keys)
	}

	clone := m.Clone()
	clone.Set("a", NewInteger(99))
	if v, _ := m.Get("a"); v.AsInt() != 2 {
		t.Error("mutating a clone affected the original")
	}

	m.Delete("z")
	if _, ok := m.Get("z"); ok {
		t.Error("Delete(z) left z reachable")
	}
	if m.Len() != 1 {
		t.Errorf("Len() after delete = %d, want 1", m.Len())
	}
}

func posInf() float64 { return 1e308 * 10 }
func negInf() float64 { return -1e308 * 10 }
func nan() float64    { return posInf() - posInf() }
