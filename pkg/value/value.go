// Package value implements Lavendeux's tagged-union runtime value and its
// coercion lattice (Boolean < Integer < Float, plus String/Array/Object as
// incomparable reference kinds), flattened to six kinds.
package value

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Kind identifies which of the six tagged-union alternatives a Value holds.
type Kind int

const (
	Boolean Kind = iota
	Integer
	Float
	String
	Array
	Object
)

func (k Kind) String() string {
	switch k {
	case Boolean:
		return "Boolean"
	case Integer:
		return "Integer"
	case Float:
		return "Float"
	case String:
		return "String"
	case Array:
		return "Array"
	case Object:
		return "Object"
	default:
		return "Unknown"
	}
}

// Value is Lavendeux's single runtime representation: every literal,
// operator result, variable, and function argument is a Value.
//
// Only one of b/i/f/s/arr/obj is meaningful, selected by Kind. A Float that
// carries currency metadata (Currency != "") renders with that symbol and
// participates in arithmetic as a plain float64.
type Value struct {
	kind Kind

	b   bool
	i   int64
	f   float64
	s   string
	arr []Value
	obj *OrderedMap

	// Currency is the symbol ("$", "€", ...) a Float literal was tagged
	// with, per the specification's decision to model currency as a Float
	// plus display metadata rather than an arbitrary-precision decimal.
	Currency string
}

// Kind returns which alternative this Value holds.
func (v Value) Kind() Kind { return v.kind }

func NewBoolean(b bool) Value { return Value{kind: Boolean, b: b} }
func NewInteger(i int64) Value { return Value{kind: Integer, i: i} }
func NewFloat(f float64) Value { return Value{kind: Float, f: f} }
func NewString(s string) Value { return Value{kind: String, s: s} }
func NewArray(elems []Value) Value {
	if elems == nil {
		elems = []Value{}
	}
	return Value{kind: Array, arr: elems}
}
func NewObject(m *OrderedMap) Value {
	if m == nil {
		m = NewOrderedMap()
	}
	return Value{kind: Object, obj: m}
}

// NewCurrency builds a Float Value tagged with a currency symbol.
func NewCurrency(amount float64, symbol string) Value {
	v := NewFloat(amount)
	v.Currency = symbol
	return v
}

func (v Value) AsBool() bool        { return v.b }
func (v Value) AsInt() int64        { return v.i }
func (v Value) AsFloat() float64    { return v.f }
func (v Value) AsString() string    { return v.s }
func (v Value) AsArray() []Value    { return v.arr }
func (v Value) AsObject() *OrderedMap { return v.obj }

func (v Value) IsNumeric() bool {
	return v.kind == Boolean || v.kind == Integer || v.kind == Float
}

// Truthy implements the coercion lattice's rule for use as a condition:
// zero/empty values are false, everything else is true.
func (v Value) Truthy() bool {
	switch v.kind {
	case Boolean:
		return v.b
	case Integer:
		return v.i != 0
	case Float:
		return v.f != 0
	case String:
		return v.s != ""
	case Array:
		return len(v.arr) > 0
	case Object:
		return v.obj != nil && v.obj.Len() > 0
	default:
		return false
	}
}

// ToFloat coerces a numeric Value up the Boolean < Integer < Float lattice.
// Non-numeric kinds return (0, false).
func (v Value) ToFloat() (float64, bool) {
	switch v.kind {
	case Boolean:
		if v.b {
			return 1, true
		}
		return 0, true
	case Integer:
		return float64(v.i), true
	case Float:
		return v.f, true
	default:
		return 0, false
	}
}

// ToInt coerces a numeric Value down to an int64, truncating Float.
func (v Value) ToInt() (int64, bool) {
	switch v.kind {
	case Boolean:
		if v.b {
			return 1, true
		}
		return 0, true
	case Integer:
		return v.i, true
	case Float:
		return int64(v.f), true
	default:
		return 0, false
	}
}

// ToArray coerces v to Array per the lattice: an Array passes through
// unchanged, an Object becomes its ordered values, and any other kind
// becomes a one-element array holding v.
func (v Value) ToArray() []Value {
	switch v.kind {
	case Array:
		return v.arr
	case Object:
		keys := v.obj.Keys()
		out := make([]Value, len(keys))
		for i, k := range keys {
			out[i], _ = v.obj.Get(k)
		}
		return out
	default:
		return []Value{v}
	}
}

// ToObject coerces v to Object per the lattice: an Object passes through
// unchanged, an Array becomes an index-keyed object ("0", "1", ...), and
// any other kind becomes a single-entry object under key "0".
func (v Value) ToObject() *OrderedMap {
	switch v.kind {
	case Object:
		return v.obj
	case Array:
		m := NewOrderedMap()
		for i, e := range v.arr {
			m.Set(strconv.Itoa(i), e)
		}
		return m
	default:
		m := NewOrderedMap()
		m.Set("0", v)
		return m
	}
}

// Rank orders the three numeric kinds for promotion: an operation between
// two numeric Values promotes both operands to the higher-ranked kind.
func (k Kind) Rank() int {
	switch k {
	case Boolean:
		return 0
	case Integer:
		return 1
	case Float:
		return 2
	default:
		return -1
	}
}

// Promote returns a and b coerced to a common numeric kind: the higher rank
// of the two. ok is false if either isn't numeric.
func Promote(a, b Value) (Kind, bool) {
	if !a.IsNumeric() || !b.IsNumeric() {
		return 0, false
	}
	if a.kind.Rank() > b.kind.Rank() {
		return a.kind, true
	}
	return b.kind, true
}

// String renders the Value the way it would appear as a script's default
// (un-decorated) output.
func (v Value) String() string {
	switch v.kind {
	case Boolean:
		if v.b {
			return "true"
		}
		return "false"
	case Integer:
		return strconv.FormatInt(v.i, 10)
	case Float:
		s := formatFloat(v.f)
		if v.Currency != "" {
			return v.Currency + s
		}
		return s
	case String:
		return v.s
	case Array:
		parts := make([]string, len(v.arr))
		for i, e := range v.arr {
			parts[i] = e.quotedIfString()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case Object:
		keys := v.obj.Keys()
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			val, _ := v.obj.Get(k)
			parts = append(parts, fmt.Sprintf("%q: %s", k, val.quotedIfString()))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return ""
	}
}

func (v Value) quotedIfString() string {
	if v.kind == String {
		return strconv.Quote(v.s)
	}
	return v.String()
}

func formatFloat(f float64) string {
	if math.IsInf(f, 1) {
		return "inf"
	}
	if math.IsInf(f, -1) {
		return "-inf"
	}
	if math.IsNaN(f) {
		return "NaN"
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// Equal reports value equality across the coercion lattice: numeric kinds
// compare by promoted value, everything else compares structurally.
func Equal(a, b Value) bool {
	if a.IsNumeric() && b.IsNumeric() {
		af, _ := a.ToFloat()
		bf, _ := b.ToFloat()
		return af == bf
	}
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case String:
		return a.s == b.s
	case Array:
		if len(a.arr) != len(b.arr) {
			return false
		}
		for i := range a.arr {
			if !Equal(a.arr[i], b.arr[i]) {
				return false
			}
		}
		return true
	case Object:
		return a.obj.Equal(b.obj)
	default:
		return false
	}
}

// Equal adapts the package-level Equal function to the single-argument
// method shape github.com/google/go-cmp/cmp recognizes automatically, so
// cmp.Diff on a Value (or a struct embedding one) compares by value
// semantics across the coercion lattice rather than panicking on the
// type's unexported fields.
func (v Value) Equal(other Value) bool {
	return Equal(v, other)
}

// OrderedMap is a string-keyed map that preserves insertion order, used for
// Object values so `{b: 1, a: 2}` renders and iterates as written.
type OrderedMap struct {
	keys   []string
	values map[string]Value
}

func NewOrderedMap() *OrderedMap {
	return &OrderedMap{values: map[string]Value{}}
}

func (m *OrderedMap) Set(key string, v Value) {
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = v
}

func (m *OrderedMap) Get(key string) (Value, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m *OrderedMap) Delete(key string) {
	if _, ok := m.values[key]; !ok {
		return
	}
	delete(m.values, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
}

func (m *OrderedMap) Len() int { return len(m.keys) }

// Keys returns keys in insertion order.
func (m *OrderedMap) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// SortedKeys returns keys in lexical order, used by builtins like `keys`
// that document a stable, sorted result independent of insertion order.
func (m *OrderedMap) SortedKeys() []string {
	out := m.Keys()
	sort.Strings(out)
	return out
}

func (m *OrderedMap) Clone() *OrderedMap {
	out := NewOrderedMap()
	for _, k := range m.keys {
		out.Set(k, m.values[k])
	}
	return out
}

func (m *OrderedMap) Equal(other *OrderedMap) bool {
	if m.Len() != other.Len() {
		return false
	}
	for _, k := range m.keys {
		a, _ := m.Get(k)
		b, ok := other.Get(k)
		if !ok || !Equal(a, b) {
			return false
		}
	}
	return true
}
