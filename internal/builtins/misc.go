package builtins

import (
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/tidwall/pretty"

	"github.com/rscarson/lavendeux-parser/internal/evaluator"
	"github.com/rscarson/lavendeux-parser/internal/parser"
	"github.com/rscarson/lavendeux-parser/internal/registry"
	"github.com/rscarson/lavendeux-parser/internal/state"
	"github.com/rscarson/lavendeux-parser/pkg/value"
)

func miscFuncs(reg *registry.Registry, caps *state.Capabilities) []*registry.Func {
	return []*registry.Func{
		{
			Name:     "help",
			Args:     []registry.ArgSpec{{Name: "name", Type: registry.ArgString, Optional: true}},
			Variadic: true,
			Handler: func(args []value.Value) (value.Value, error) {
				names := reg.FunctionNames()
				sort.Strings(names)
				out := make([]value.Value, len(names))
				for i, n := range names {
					out[i] = value.NewString(n)
				}
				return value.NewArray(out), nil
			},
		},
		{
			Name: "prettyjson",
			Args: []registry.ArgSpec{{Name: "x", Type: registry.Any}},
			Handler: func(args []value.Value) (value.Value, error) {
				text := args[0].String()
				if args[0].Kind() == value.Array || args[0].Kind() == value.Object {
					raw, err := value.ToJSON(args[0])
					if err != nil {
						return value.Value{}, &value.ArithError{Kind: "ArgumentType", Message: err.Error()}
					}
					text = raw
				} else if args[0].Kind() == value.String {
					text = args[0].AsString()
				}
				formatted := pretty.Pretty([]byte(text))
				return value.NewString(string(formatted)), nil
			},
		},
		{
			Name:    "tail",
			Args:    []registry.ArgSpec{{Name: "path", Type: registry.ArgString}, {Name: "lines", Type: registry.ArgInteger, Optional: true}},
			Handler: tailHandler(caps),
		},
		{
			Name:     "time",
			Args:     []registry.ArgSpec{{Name: "path", Type: registry.ArgString, Optional: true}},
			Variadic: true,
			Handler:  timeHandler(caps),
		},
		{
			Name: "call",
			Args: []registry.ArgSpec{
				{Name: "name", Type: registry.ArgString},
				{Name: "args", Type: registry.ArgArray, Optional: true},
			},
			Handler: func(args []value.Value) (value.Value, error) {
				name := args[0].AsString()
				fn, ok := reg.Function(name)
				if !ok {
					return value.Value{}, &value.ArithError{Kind: "UnknownFunction", Message: "no function named " + strconv.Quote(name)}
				}
				var callArgs []value.Value
				if len(args) > 1 {
					callArgs = args[1].AsArray()
				}
				return registry.Call(fn, callArgs)
			},
		},
		{
			Name: "run",
			Args: []registry.ArgSpec{{Name: "script", Type: registry.ArgString}},
			// run evaluates a nested script against its own fresh State but
			// the same function/decorator Registry, so it sees every
			// built-in and extension the outer script does without
			// entangling the two scripts' variable bindings.
			Handler: func(args []value.Value) (value.Value, error) {
				script, perrs := parser.Parse(args[0].AsString())
				if len(perrs) > 0 {
					return value.Value{}, &value.ArithError{Kind: "ArgumentType", Message: "run: " + perrs[0].Error()}
				}
				sub := state.New()
				results := evaluator.New(sub, reg).Run(script)
				out := make([]value.Value, 0, len(results))
				for _, r := range results {
					if r.Err != nil {
						return value.Value{}, &value.ArithError{Kind: "ExtensionFailure", Message: "run: " + r.Err.Error()}
					}
					out = append(out, r.Value)
				}
				return value.NewArray(out), nil
			},
		},
	}
}

func deniedFileSystem(name string) error {
	return &value.ArithError{Kind: "ExtensionFailure", Message: name + " requires filesystem access, which this state does not grant"}
}

// tailHandler reads the last N lines (default 10) of a file. Gated by
// Capabilities.FileSystem: each ParserState carries its own Capabilities,
// captured here by closure rather than read from shared mutable state.
func tailHandler(caps *state.Capabilities) func([]value.Value) (value.Value, error) {
	return func(args []value.Value) (value.Value, error) {
		if caps == nil || !caps.FileSystem {
			return value.Value{}, deniedFileSystem("tail")
		}
		n := int64(10)
		if len(args) > 1 {
			n = args[1].AsInt()
		}
		data, err := os.ReadFile(args[0].AsString())
		if err != nil {
			return value.Value{}, &value.ArithError{Kind: "IOError", Message: err.Error()}
		}
		lines := splitLines(string(data))
		if int64(len(lines)) > n {
			lines = lines[int64(len(lines))-n:]
		}
		out := make([]value.Value, len(lines))
		for i, l := range lines {
			out[i] = value.NewString(l)
		}
		return value.NewArray(out), nil
	}
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}

// timeHandler returns the current Unix timestamp with no arguments, or a
// file's modification time (gated by Capabilities.FileSystem) when given a
// path.
func timeHandler(caps *state.Capabilities) func([]value.Value) (value.Value, error) {
	return func(args []value.Value) (value.Value, error) {
		if len(args) == 0 {
			return value.NewInteger(time.Now().Unix()), nil
		}
		if caps == nil || !caps.FileSystem {
			return value.Value{}, deniedFileSystem("time")
		}
		info, err := os.Stat(args[0].AsString())
		if err != nil {
			return value.Value{}, &value.ArithError{Kind: "IOError", Message: err.Error()}
		}
		return value.NewInteger(info.ModTime().Unix()), nil
	}
}
