package value

import (
	"strconv"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// ToJSON renders v as JSON text. Objects/arrays are built incrementally
// with sjson so key order is preserved exactly as stored in the
// OrderedMap, rather than going through encoding/json's map ordering.
func ToJSON(v Value) (string, error) {
	switch v.Kind() {
	case Boolean:
		return strconv.FormatBool(v.b), nil
	case Integer:
		return strconv.FormatInt(v.i, 10), nil
	case Float:
		return formatFloat(v.f), nil
	case String:
		return strconv.Quote(v.s), nil
	case Array:
		out := "[]"
		var err error
		for i, elem := range v.arr {
			child, cerr := ToJSON(elem)
			if cerr != nil {
				return "", cerr
			}
			out, err = sjson.SetRaw(out, strconv.Itoa(i), child)
			if err != nil {
				return "", err
			}
		}
		return out, nil
	case Object:
		out := "{}"
		var err error
		for _, k := range v.obj.Keys() {
			val, _ := v.obj.Get(k)
			child, cerr := ToJSON(val)
			if cerr != nil {
				return "", cerr
			}
			out, err = sjson.SetRaw(out, gjsonEscapePath(k), child)
			if err != nil {
				return "", err
			}
		}
		return out, nil
	default:
		return "null", nil
	}
}

// gjsonEscapePath escapes path-metacharacters (`.`, `*`, `?`) so arbitrary
// object keys round-trip through sjson's path syntax unchanged.
func gjsonEscapePath(key string) string {
	out := make([]byte, 0, len(key))
	for i := 0; i < len(key); i++ {
		c := key[i]
		if c == '.' || c == '*' || c == '?' || c == '\\' {
			out = append(out, '\\')
		}
		out = append(out, c)
	}
	return string(out)
}

// FromJSON parses JSON text into a Value, using gjson so object key order
// follows the source text's order rather than being alphabetized.
func FromJSON(text string) (Value, error) {
	if !gjson.Valid(text) {
		return Value{}, errInvalidJSON
	}
	return fromGJSON(gjson.Parse(text)), nil
}

var errInvalidJSON = jsonError("invalid JSON")

type jsonError string

func (e jsonError) Error() string { return string(e) }

func fromGJSON(r gjson.Result) Value {
	switch r.Type {
	case gjson.True, gjson.False:
		return NewBoolean(r.Bool())
	case gjson.Number:
		if r.Num == float64(int64(r.Num)) && !hasDecimalPoint(r.Raw) {
			return NewInteger(r.Int())
		}
		return NewFloat(r.Num)
	case gjson.String:
		return NewString(r.String())
	case gjson.JSON:
		if r.IsArray() {
			var elems []Value
			r.ForEach(func(_, v gjson.Result) bool {
				elems = append(elems, fromGJSON(v))
				return true
			})
			return NewArray(elems)
		}
		m := NewOrderedMap()
		r.ForEach(func(k, v gjson.Result) bool {
			m.Set(k.String(), fromGJSON(v))
			return true
		})
		return NewObject(m)
	default:
		return NewString(r.String())
	}
}

func hasDecimalPoint(raw string) bool {
	for _, c := range raw {
		if c == '.' || c == 'e' || c == 'E' {
			return true
		}
	}
	return false
}
