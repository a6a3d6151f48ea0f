// Package extension implements the extension adapter: it loads
// host-script extensions into a caller-supplied sandbox, marshals Values
// to and from the sandbox's wrapped-value wire format, and registers
// trampolines for the functions/decorators an extension exports.
//
// A marshal/unmarshal pair at the Go<->script boundary, plus a safe-call
// wrapper that turns a sandbox panic into a Go error rather than crashing
// the host.
package extension

import (
	"fmt"

	"github.com/rscarson/lavendeux-parser/pkg/value"
)

// WrappedValue is the stable wire format a sandbox observes: a single-key
// mapping whose key is the Value's kind name and whose value is the
// payload. Arrays marshal to a list of WrappedValue; objects marshal to a
// list of [wrappedKey, wrappedValue] pairs, preserving insertion order
// since a JSON/script-native map cannot be trusted to.
type WrappedValue map[string]any

// Wrap converts a Value into its wrapped representation.
func Wrap(v value.Value) WrappedValue {
	switch v.Kind() {
	case value.Boolean:
		return WrappedValue{"Boolean": v.Truthy()}
	case value.Integer:
		return WrappedValue{"Integer": v.AsInt()}
	case value.Float:
		return WrappedValue{"Float": v.AsFloat()}
	case value.String:
		return WrappedValue{"String": v.AsString()}
	case value.Array:
		arr := v.AsArray()
		out := make([]WrappedValue, len(arr))
		for i, elem := range arr {
			out[i] = Wrap(elem)
		}
		return WrappedValue{"Array": out}
	case value.Object:
		obj := v.AsObject()
		pairs := make([][2]WrappedValue, 0, obj.Len())
		for _, k := range obj.Keys() {
			val, _ := obj.Get(k)
			pairs = append(pairs, [2]WrappedValue{Wrap(value.NewString(k)), Wrap(val)})
		}
		return WrappedValue{"Object": pairs}
	default:
		return WrappedValue{"String": v.String()}
	}
}

// Unwrap converts a wrapped representation back into a Value. It accepts
// both the WrappedValue produced by Wrap and the loosely-typed
// map[string]any a real scripting sandbox would hand back (numbers as
// float64, nested maps/slices as any), since the sandbox's own
// marshalling conventions are out of this package's control.
func Unwrap(w WrappedValue) (value.Value, error) {
	if b, ok := w["Boolean"]; ok {
		v, ok := b.(bool)
		if !ok {
			return value.Value{}, fmt.Errorf("wrapped Boolean payload is %T, not bool", b)
		}
		return value.NewBoolean(v), nil
	}
	if i, ok := w["Integer"]; ok {
		v, err := asInt64(i)
		if err != nil {
			return value.Value{}, fmt.Errorf("wrapped Integer: %w", err)
		}
		return value.NewInteger(v), nil
	}
	if f, ok := w["Float"]; ok {
		v, err := asFloat64(f)
		if err != nil {
			return value.Value{}, fmt.Errorf("wrapped Float: %w", err)
		}
		return value.NewFloat(v), nil
	}
	if s, ok := w["String"]; ok {
		v, ok := s.(string)
		if !ok {
			return value.Value{}, fmt.Errorf("wrapped String payload is %T, not string", s)
		}
		return value.NewString(v), nil
	}
	if a, ok := w["Array"]; ok {
		elems, err := asWrappedList(a)
		if err != nil {
			return value.Value{}, fmt.Errorf("wrapped Array: %w", err)
		}
		out := make([]value.Value, len(elems))
		for i, e := range elems {
			v, err := Unwrap(e)
			if err != nil {
				return value.Value{}, err
			}
			out[i] = v
		}
		return value.NewArray(out), nil
	}
	if o, ok := w["Object"]; ok {
		pairs, err := asPairList(o)
		if err != nil {
			return value.Value{}, fmt.Errorf("wrapped Object: %w", err)
		}
		m := value.NewOrderedMap()
		for _, pair := range pairs {
			k, err := Unwrap(pair[0])
			if err != nil {
				return value.Value{}, err
			}
			v, err := Unwrap(pair[1])
			if err != nil {
				return value.Value{}, err
			}
			m.Set(k.String(), v)
		}
		return value.NewObject(m), nil
	}
	return value.Value{}, fmt.Errorf("wrapped value has no recognized kind key: %v", w)
}

func asInt64(v any) (int64, error) {
	switch n := v.(type) {
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	case float64:
		return int64(n), nil
	default:
		return 0, fmt.Errorf("unsupported numeric type %T", v)
	}
}

func asFloat64(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case int:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("unsupported numeric type %T", v)
	}
}

// asWrappedList normalizes either []WrappedValue (produced by Wrap) or
// []any (produced by a real sandbox's own JSON-ish decoding) into
// []WrappedValue.
func asWrappedList(v any) ([]WrappedValue, error) {
	switch list := v.(type) {
	case []WrappedValue:
		return list, nil
	case []any:
		out := make([]WrappedValue, len(list))
		for i, item := range list {
			w, err := asWrappedValue(item)
			if err != nil {
				return nil, err
			}
			out[i] = w
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected a list, got %T", v)
	}
}

func asWrappedValue(v any) (WrappedValue, error) {
	switch w := v.(type) {
	case WrappedValue:
		return w, nil
	case map[string]any:
		return WrappedValue(w), nil
	default:
		return nil, fmt.Errorf("expected a wrapped value, got %T", v)
	}
}

// asPairList normalizes the Object payload's [wrappedKey, wrappedValue]
// pair list, accepting either the [2]WrappedValue shape Wrap produces or
// a generic []any-of-[]any shape a real sandbox might hand back.
func asPairList(v any) ([][2]WrappedValue, error) {
	switch pairs := v.(type) {
	case [][2]WrappedValue:
		return pairs, nil
	case []any:
		out := make([][2]WrappedValue, len(pairs))
		for i, p := range pairs {
			switch pair := p.(type) {
			case [2]WrappedValue:
				out[i] = pair
			case []any:
				if len(pair) != 2 {
					return nil, fmt.Errorf("object pair %d has %d elements, want 2", i, len(pair))
				}
				k, err := asWrappedValue(pair[0])
				if err != nil {
					return nil, err
				}
				val, err := asWrappedValue(pair[1])
				if err != nil {
					return nil, err
				}
				out[i] = [2]WrappedValue{k, val}
			default:
				return nil, fmt.Errorf("object pair %d has unsupported shape %T", i, p)
			}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected a pair list, got %T", v)
	}
}
