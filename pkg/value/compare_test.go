package value

import "testing"

func TestCompareNumeric(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want int
	}{
		{"less", NewInteger(1), NewInteger(2), -1},
		{"greater", NewFloat(3.5), NewInteger(2), 1},
		{"equal across kinds", NewInteger(2), NewFloat(2.0), 0},
		{"boolean promotes", NewBoolean(true), NewInteger(0), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Compare(tt.a, tt.b)
			if !ok {
				t.Fatalf("Compare() ok = false, want true")
			}
			if got != tt.want {
				t.Errorf("Compare() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCompareString(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{"less", "apple", "banana", -1},
		{"greater", "banana", "apple", 1},
		{"equal", "same", "same", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Compare(NewString(tt.a), NewString(tt.b))
			if !ok {
				t.Fatalf("Compare() ok = false, want true")
			}
			if got != tt.want {
				t.Errorf("Compare(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestCompareMismatchedKinds(t *testing.T) {
	if _, ok := Compare(NewString("1"), NewInteger(1)); ok {
		t.Error("Compare(String, Integer) should report ok=false")
	}
	if _, ok := Compare(NewArray(nil), NewString("x")); ok {
		t.Error("Compare(Array, String) should report ok=false")
	}
}

func TestCompareArraysStructural(t *testing.T) {
	tests := []struct {
		name string
		a, b []Value
		want int
	}{
		{"equal", []Value{NewInteger(1), NewInteger(2)}, []Value{NewInteger(1), NewInteger(2)}, 0},
		{"less at second element", []Value{NewInteger(1), NewInteger(2)}, []Value{NewInteger(1), NewInteger(3)}, -1},
		{"greater at first element", []Value{NewInteger(5)}, []Value{NewInteger(1), NewInteger(9)}, 1},
		{"shorter prefix sorts first", []Value{NewInteger(1)}, []Value{NewInteger(1), NewInteger(2)}, -1},
		{"longer prefix sorts last", []Value{NewInteger(1), NewInteger(2)}, []Value{NewInteger(1)}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Compare(NewArray(tt.a), NewArray(tt.b))
			if !ok {
				t.Fatalf("Compare() ok = false, want true")
			}
			if got != tt.want {
				t.Errorf("Compare(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}

	if _, ok := Compare(NewArray([]Value{NewString("x")}), NewArray([]Value{NewInteger(1)})); ok {
		t.Error("Compare should report ok=false when elements at the first differing index are incomparable")
	}
}

func TestCompareObjectsStructural(t *testing.T) {
	lo := NewOrderedMap()
	lo.Set("a", NewInteger(1))
	hi := NewOrderedMap()
	hi.Set("a", NewInteger(2))
	if got, ok := Compare(NewObject(lo), NewObject(hi)); !ok || got != -1 {
		t.Errorf("Compare({a:1}, {a:2}) = %d, %v, want -1, true", got, ok)
	}

	shortMap := NewOrderedMap()
	shortMap.Set("a", NewInteger(1))
	longMap := NewOrderedMap()
	longMap.Set("a", NewInteger(1))
	longMap.Set("b", NewInteger(1))
	if got, ok := Compare(NewObject(shortMap), NewObject(longMap)); !ok || got != -1 {
		t.Errorf("Compare({a:1}, {a:1,b:1}) = %d, %v, want -1, true (fewer keys sorts first)", got, ok)
	}

	keyOrderA := NewOrderedMap()
	keyOrderA.Set("b", NewInteger(1))
	keyOrderB := NewOrderedMap()
	keyOrderB.Set("a", NewInteger(1))
	if got, ok := Compare(NewObject(keyOrderA), NewObject(keyOrderB)); !ok || got != 1 {
		t.Errorf("Compare({b:1}, {a:1}) = %d, %v, want 1, true (keys compare lexicographically)", got, ok)
	}
}
