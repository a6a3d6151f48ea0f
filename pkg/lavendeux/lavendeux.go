// Package lavendeux is the library surface a host program embeds: create a
// ParserState, register functions/decorators/extensions against it, and
// evaluate script text to get back one Result per line.
//
// Grounded on the teacher's top-level interp.New/Eval entry point
// (internal/interp/interp.go): one long-lived handle a host keeps
// across many evaluations.
package lavendeux

import (
	"github.com/rscarson/lavendeux-parser/internal/builtins"
	"github.com/rscarson/lavendeux-parser/internal/decorators"
	"github.com/rscarson/lavendeux-parser/internal/errors"
	"github.com/rscarson/lavendeux-parser/internal/evaluator"
	"github.com/rscarson/lavendeux-parser/internal/extension"
	"github.com/rscarson/lavendeux-parser/internal/parser"
	"github.com/rscarson/lavendeux-parser/internal/registry"
	"github.com/rscarson/lavendeux-parser/internal/state"
	"github.com/rscarson/lavendeux-parser/pkg/ast"
	"github.com/rscarson/lavendeux-parser/pkg/value"
)

// Result is one evaluated line's outcome, re-exported from the evaluator
// package so a host never needs to import internal/evaluator directly.
type Result = evaluator.Result

// Capabilities gates the ambient-authority builtins (network, filesystem)
// a ParserState's functions may use. The zero value denies both.
type Capabilities = state.Capabilities

// ParserState is the handle a host holds across many Evaluate calls: its
// variables, user-defined functions, registered builtins/extensions, and
// capability grants all persist between calls.
type ParserState struct {
	state *state.State
	reg   *registry.Registry
	ext   *extension.Manager
	caps  state.Capabilities
}

// Option configures a new ParserState.
type Option func(*ParserState)

// WithCapabilities grants the ambient-authority builtins (tail, time,
// get, post, resolve, api) access to the filesystem and/or network.
// Without this option both are denied.
func WithCapabilities(caps Capabilities) Option {
	return func(ps *ParserState) {
		ps.caps = caps
	}
}

// WithSandbox attaches a Sandbox, letting the host load extensions with
// Load/LoadFile/LoadDirectory. Without this option those calls fail.
func WithSandbox(sandbox extension.Sandbox) Option {
	return func(ps *ParserState) {
		ps.ext = extension.NewManager(sandbox, ps.reg)
	}
}

// New creates a ParserState with every built-in function and decorator
// registered, ready to evaluate scripts.
func New(opts ...Option) *ParserState {
	st := state.New()
	reg := registry.New()
	ps := &ParserState{state: st, reg: reg}
	for _, opt := range opts {
		opt(ps)
	}
	builtins.Register(reg, &ps.caps)
	decorators.Register(reg)
	return ps
}

// RegisterFunction adds a host-defined function to the registry, visible
// to scripts under fn.Name alongside the built-ins. A host function with
// the same name as a built-in replaces it.
func (ps *ParserState) RegisterFunction(fn *registry.Func) {
	ps.reg.RegisterFunction(fn)
}

// RegisterDecorator adds a host-defined decorator to the registry.
func (ps *ParserState) RegisterDecorator(dec *registry.Decorator) {
	ps.reg.RegisterDecorator(dec)
}

// LoadExtension submits source to the configured sandbox and registers
// its exported functions/decorators. Requires WithSandbox at construction.
func (ps *ParserState) LoadExtension(sourceName, source string) (*extension.Extension, error) {
	if ps.ext == nil {
		return nil, errExtensionUnconfigured{}
	}
	ext, err := ps.ext.Load(sourceName, source)
	if err != nil {
		return nil, err
	}
	ps.ext.BindState(ps.state)
	return ext, nil
}

// LoadExtensionFile loads a single extension described by a manifest
// file. Requires WithSandbox at construction.
func (ps *ParserState) LoadExtensionFile(manifestPath string) (*extension.Extension, error) {
	if ps.ext == nil {
		return nil, errExtensionUnconfigured{}
	}
	ext, err := ps.ext.LoadFile(manifestPath)
	if err != nil {
		return nil, err
	}
	ps.ext.BindState(ps.state)
	return ext, nil
}

// LoadExtensionDirectory loads every manifest in dir. Requires
// WithSandbox at construction.
func (ps *ParserState) LoadExtensionDirectory(dir string) ([]*extension.Extension, error) {
	if ps.ext == nil {
		return nil, errExtensionUnconfigured{}
	}
	exts, err := ps.ext.LoadDirectory(dir)
	if err != nil {
		return nil, err
	}
	ps.ext.BindState(ps.state)
	return exts, nil
}

// Extensions lists every extension loaded so far, in load order.
func (ps *ParserState) Extensions() []*extension.Extension {
	if ps.ext == nil {
		return nil
	}
	return ps.ext.Extensions()
}

// Get reads a variable's current value.
func (ps *ParserState) Get(name string) (value.Value, bool) {
	return ps.state.Get(name)
}

// Set assigns a variable, failing if name is read-only (pi, e, tau).
func (ps *ParserState) Set(name string, v value.Value) error {
	return ps.state.Set(name, v)
}

// Parse tokenizes and parses source into a Script without evaluating it,
// for a host that wants the token tree on its own (e.g. for syntax
// highlighting or static analysis).
func Parse(source string) (*ast.Script, []*errors.Error) {
	return parser.Parse(source)
}

// Evaluate parses and evaluates source against ps, returning one Result
// per line. A parse error short-circuits evaluation entirely; a
// per-line evaluation error is reported in that line's Result.Err and
// does not stop later lines from running.
func (ps *ParserState) Evaluate(source string) ([]Result, []*errors.Error) {
	script, perrs := parser.Parse(source)
	if len(perrs) > 0 {
		return nil, perrs
	}
	return evaluator.New(ps.state, ps.reg).Run(script), nil
}

type errExtensionUnconfigured struct{}

func (errExtensionUnconfigured) Error() string {
	return "no extension sandbox configured: use lavendeux.WithSandbox when creating the ParserState"
}
