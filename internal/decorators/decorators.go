// Package decorators implements the built-in `@name` formatters applied to
// a line's result value, plus the `@default` per-kind fallback formatter,
// as a registry.Decorator set.
package decorators

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/rscarson/lavendeux-parser/internal/registry"
	"github.com/rscarson/lavendeux-parser/pkg/value"
)

func formatUnixUTC(secs int64) string {
	return time.Unix(secs, 0).UTC().Format("2006-01-02T15:04:05Z")
}

// Register adds every built-in decorator to reg.
func Register(reg *registry.Registry) {
	for _, d := range all() {
		reg.RegisterDecorator(d)
	}
}

func all() []*registry.Decorator {
	return []*registry.Decorator{
		{Name: "default", Handler: func(v value.Value) (string, error) { return v.String(), nil }},
		{Name: "hex", Handler: intRadix(16, "0x")},
		{Name: "oct", Handler: intRadix(8, "0o")},
		{Name: "bin", Handler: intRadix(2, "0b")},
		{Name: "int", Handler: asInt},
		{Name: "integer", Handler: asInt},
		{Name: "float", Handler: asFloat},
		{Name: "sci", Handler: asScientific},
		{Name: "bool", Handler: asBool},
		{Name: "boolean", Handler: asBool},
		{Name: "array", Handler: asArray},
		{Name: "object", Handler: asObject},
		{Name: "percent", Handler: asPercent},
		{Name: "percentage", Handler: asPercent},
		{Name: "roman", Handler: asRoman},
		{Name: "utc", Handler: asUTC},
		{Name: "usd", Handler: currency("$")},
		{Name: "dollar", Handler: currency("$")},
		{Name: "dollars", Handler: currency("$")},
		{Name: "cad", Handler: currency("$")},
		{Name: "aud", Handler: currency("$")},
		{Name: "euro", Handler: currency("€")},
		{Name: "euros", Handler: currency("€")},
		{Name: "pound", Handler: currency("£")},
		{Name: "pounds", Handler: currency("£")},
		{Name: "yen", Handler: currency("¥")},
	}
}

func intRadix(base int, prefix string) func(value.Value) (string, error) {
	return func(v value.Value) (string, error) {
		i, ok := v.ToInt()
		if !ok {
			return "", fmt.Errorf("cannot format %s as an integer", v.Kind())
		}
		neg := ""
		if i < 0 {
			neg = "-"
			i = -i
		}
		return neg + prefix + strconv.FormatInt(i, base), nil
	}
}

func asInt(v value.Value) (string, error) {
	i, ok := v.ToInt()
	if !ok {
		return "", fmt.Errorf("cannot format %s as an integer", v.Kind())
	}
	return strconv.FormatInt(i, 10), nil
}

func asFloat(v value.Value) (string, error) {
	f, ok := v.ToFloat()
	if !ok {
		return "", fmt.Errorf("cannot format %s as a float", v.Kind())
	}
	return value.NewFloat(f).String(), nil
}

func asScientific(v value.Value) (string, error) {
	f, ok := v.ToFloat()
	if !ok {
		return "", fmt.Errorf("cannot format %s in scientific notation", v.Kind())
	}
	return strconv.FormatFloat(f, 'e', -1, 64), nil
}

func asBool(v value.Value) (string, error) {
	if v.Truthy() {
		return "true", nil
	}
	return "false", nil
}

func asArray(v value.Value) (string, error) {
	if v.Kind() == value.Array {
		return v.String(), nil
	}
	return value.NewArray([]value.Value{v}).String(), nil
}

func asObject(v value.Value) (string, error) {
	if v.Kind() == value.Object {
		return v.String(), nil
	}
	return "", fmt.Errorf("cannot format %s as an object", v.Kind())
}

func asPercent(v value.Value) (string, error) {
	f, ok := v.ToFloat()
	if !ok {
		return "", fmt.Errorf("cannot format %s as a percentage", v.Kind())
	}
	return value.NewFloat(f*100).String() + "%", nil
}

func asRoman(v value.Value) (string, error) {
	i, ok := v.ToInt()
	if !ok || i <= 0 || i > 3999 {
		return "", fmt.Errorf("%q can only format integers from 1 to 3999", "roman")
	}
	return toRoman(i), nil
}

var romanTable = []struct {
	value  int64
	symbol string
}{
	{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"},
	{100, "C"}, {90, "XC"}, {50, "L"}, {40, "XL"},
	{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
}

func toRoman(n int64) string {
	var sb strings.Builder
	for _, entry := range romanTable {
		for n >= entry.value {
			sb.WriteString(entry.symbol)
			n -= entry.value
		}
	}
	return sb.String()
}

func asUTC(v value.Value) (string, error) {
	secs, ok := v.ToFloat()
	if !ok {
		return "", fmt.Errorf("cannot format %s as a UTC timestamp", v.Kind())
	}
	whole := int64(math.Trunc(secs))
	return formatUnixUTC(whole), nil
}

func currency(symbol string) func(value.Value) (string, error) {
	return func(v value.Value) (string, error) {
		f, ok := v.ToFloat()
		if !ok {
			return "", fmt.Errorf("cannot format %s as currency", v.Kind())
		}
		return fmt.Sprintf("%s%.2f", symbol, f), nil
	}
}
