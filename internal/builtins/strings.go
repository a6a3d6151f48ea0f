package builtins

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/rscarson/lavendeux-parser/internal/registry"
	"github.com/rscarson/lavendeux-parser/pkg/value"
)

var (
	upperCaser = cases.Upper(language.Und)
	lowerCaser = cases.Lower(language.Und)
)

func stringFuncs() []*registry.Func {
	return []*registry.Func{
		{
			Name:     "concat",
			Args:     []registry.ArgSpec{{Name: "a", Type: registry.ArgString}, {Name: "b", Type: registry.ArgString}},
			Variadic: true,
			Handler: func(args []value.Value) (value.Value, error) {
				var sb strings.Builder
				for _, a := range args {
					sb.WriteString(a.String())
				}
				return value.NewString(sb.String()), nil
			},
		},
		{
			Name: "strlen",
			Args: []registry.ArgSpec{{Name: "s", Type: registry.ArgString}},
			Handler: func(args []value.Value) (value.Value, error) {
				return value.NewInteger(int64(len([]rune(args[0].AsString())))), nil
			},
		},
		{
			Name: "substr",
			Args: []registry.ArgSpec{
				{Name: "s", Type: registry.ArgString},
				{Name: "start", Type: registry.ArgInteger},
				{Name: "length", Type: registry.ArgInteger, Optional: true},
			},
			Handler: func(args []value.Value) (value.Value, error) {
				runes := []rune(args[0].AsString())
				start := int(args[1].AsInt())
				if start < 0 {
					start += len(runes)
				}
				if start < 0 {
					start = 0
				}
				if start > len(runes) {
					start = len(runes)
				}
				end := len(runes)
				if len(args) > 2 {
					length := int(args[2].AsInt())
					if start+length < end {
						end = start + length
					}
				}
				return value.NewString(string(runes[start:end])), nil
			},
		},
		{
			Name: "lowercase",
			Args: []registry.ArgSpec{{Name: "s", Type: registry.ArgString}},
			Handler: func(args []value.Value) (value.Value, error) {
				return value.NewString(lowerCaser.String(args[0].AsString())), nil
			},
		},
		{
			Name: "uppercase",
			Args: []registry.ArgSpec{{Name: "s", Type: registry.ArgString}},
			Handler: func(args []value.Value) (value.Value, error) {
				return value.NewString(upperCaser.String(args[0].AsString())), nil
			},
		},
		{
			Name: "trim",
			Args: []registry.ArgSpec{{Name: "s", Type: registry.ArgString}},
			Handler: func(args []value.Value) (value.Value, error) {
				return value.NewString(strings.TrimSpace(args[0].AsString())), nil
			},
		},
		{
			Name: "contains",
			Args: []registry.ArgSpec{{Name: "haystack", Type: registry.ArgString}, {Name: "needle", Type: registry.ArgString}},
			Handler: func(args []value.Value) (value.Value, error) {
				return value.NewBoolean(strings.Contains(args[0].AsString(), args[1].AsString())), nil
			},
		},
		{
			Name: "regex",
			Args: []registry.ArgSpec{{Name: "pattern", Type: registry.ArgString}, {Name: "s", Type: registry.ArgString}},
			Handler: func(args []value.Value) (value.Value, error) {
				re, err := regexp.Compile(args[0].AsString())
				if err != nil {
					return value.Value{}, &value.ArithError{Kind: "ArgumentType", Message: "invalid regular expression: " + err.Error()}
				}
				matches := re.FindAllString(args[1].AsString(), -1)
				out := make([]value.Value, len(matches))
				for i, m := range matches {
					out[i] = value.NewString(m)
				}
				return value.NewArray(out), nil
			},
		},
	}
}
