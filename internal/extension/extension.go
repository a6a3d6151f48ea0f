package extension

import (
	"fmt"

	"github.com/rscarson/lavendeux-parser/internal/registry"
	"github.com/rscarson/lavendeux-parser/internal/state"
	"github.com/rscarson/lavendeux-parser/pkg/value"
)

// LifecycleState is one of the four states an Extension passes through,
// per the specification's trivial state machine:
// Unloaded -> Loaded -> (Active | Superseded) -> Unloaded.
type LifecycleState int

const (
	Unloaded LifecycleState = iota
	Loaded
	Active
	Superseded
)

func (s LifecycleState) String() string {
	switch s {
	case Unloaded:
		return "Unloaded"
	case Loaded:
		return "Loaded"
	case Active:
		return "Active"
	case Superseded:
		return "Superseded"
	default:
		return "Unknown"
	}
}

// ArgDescriptor mirrors registry.ArgSpec for an extension-contributed
// function argument, decoded from the extension's manifest.
type ArgDescriptor struct {
	Name     string
	Type     registry.ArgType
	Optional bool
}

// FunctionDescriptor is one function an extension exports: the
// script-visible name, the sandbox handler identifier that trampolines
// dispatch through, its argument shape, and whether it needs the
// parser-state snapshot as an extra final argument.
type FunctionDescriptor struct {
	Name      string
	HandlerID string
	Args      []ArgDescriptor
	Variadic  bool
	Stateful  bool
	Returns   registry.ArgType
}

// DecoratorDescriptor is one decorator an extension exports.
type DecoratorDescriptor struct {
	Name      string
	HandlerID string
	ArgType   registry.ArgType
}

// Descriptor is what an extension exports once its host script has been
// successfully evaluated by the sandbox: identity plus the function and
// decorator tables the adapter turns into registry trampolines.
type Descriptor struct {
	Name       string
	Author     string
	Version    string
	Functions  []FunctionDescriptor
	Decorators []DecoratorDescriptor
}

// Sandbox is the out-of-scope collaborator this package depends on only
// by contract (§1, §4.6): a way to submit a host script and get back its
// exported Descriptor, and a way to invoke one of its handlers by
// identifier with wrapped-value arguments. The sandbox's own isolation,
// language, and module system are not specified here.
type Sandbox interface {
	// Submit loads source into the sandbox and returns the extension's
	// exported descriptor, or an error if the script itself failed.
	Submit(source string) (Descriptor, error)

	// Invoke calls handlerID with args already wrapped. If stateVars is
	// non-nil the call is stateful: stateVars is a snapshot of the parser
	// state's variables (wrapped), and the sandbox may return an updated
	// snapshot to merge back. Invoke must not be called concurrently
	// against the same Sandbox for the same loaded extension (§5).
	Invoke(handlerID string, args []WrappedValue, stateVars map[string]WrappedValue) (result WrappedValue, updatedState map[string]WrappedValue, err error)
}

// Extension is one loaded sandbox script, tracked through its lifecycle
// and holding the names it registered so a later extension replacing one
// of them can supersede this one.
type Extension struct {
	Descriptor
	State        LifecycleState
	Source       string // path or identifier the extension was loaded from
	ownedFuncs   map[string]bool
	ownedDecs    map[string]bool
	supersededBy string
}

// Manager loads extensions into reg, keeping a registry.Registry and the
// live Extension list in sync: a later extension's function/decorator
// name wins over an earlier one's, and the earlier extension transitions
// to Superseded.
type Manager struct {
	sandbox    Sandbox
	reg        *registry.Registry
	extensions []*Extension
	owners     map[string]*Extension // function/decorator name -> owning extension
}

// NewManager creates a Manager that registers extension-contributed
// functions/decorators into reg, dispatching through sandbox.
func NewManager(sandbox Sandbox, reg *registry.Registry) *Manager {
	return &Manager{sandbox: sandbox, reg: reg, owners: map[string]*Extension{}}
}

// Extensions lists every extension loaded so far, in load order.
func (m *Manager) Extensions() []*Extension {
	out := make([]*Extension, len(m.extensions))
	copy(out, m.extensions)
	return out
}

// Load submits source (the extension's host script) to the sandbox,
// registers its exported functions/decorators, and returns the resulting
// Extension. A name this extension exports that an earlier extension
// already owns supersedes that earlier extension, per §4.6's replacement
// rule.
func (m *Manager) Load(sourceName, source string) (*Extension, error) {
	desc, err := m.sandbox.Submit(source)
	if err != nil {
		return nil, fmt.Errorf("extension %q: %w", sourceName, err)
	}

	ext := &Extension{
		Descriptor: desc,
		State:      Loaded,
		Source:     sourceName,
		ownedFuncs: map[string]bool{},
		ownedDecs:  map[string]bool{},
	}

	for _, fn := range desc.Functions {
		m.registerFunction(ext, fn)
	}
	for _, dec := range desc.Decorators {
		m.registerDecorator(ext, dec)
	}

	ext.State = Active
	m.extensions = append(m.extensions, ext)
	return ext, nil
}

func (m *Manager) supersede(name string, newOwner *Extension) {
	prev, ok := m.owners[name]
	if !ok || prev == newOwner {
		m.owners[name] = newOwner
		return
	}
	prev.State = Superseded
	prev.supersededBy = newOwner.Source
	m.owners[name] = newOwner
}

func (m *Manager) registerFunction(ext *Extension, fn FunctionDescriptor) {
	m.supersede(fn.Name, ext)
	ext.ownedFuncs[fn.Name] = true

	args := make([]registry.ArgSpec, len(fn.Args))
	for i, a := range fn.Args {
		args[i] = registry.ArgSpec{Name: a.Name, Type: a.Type, Optional: a.Optional}
	}

	handlerID := fn.HandlerID
	stateful := fn.Stateful
	sandbox := m.sandbox

	m.reg.RegisterFunction(&registry.Func{
		Name:     fn.Name,
		Args:     args,
		Variadic: fn.Variadic,
		Handler: func(callArgs []value.Value) (value.Value, error) {
			return invoke(sandbox, handlerID, callArgs, stateful, nil)
		},
	})
}

// BindState rewires every stateful extension function's trampoline to
// observe st: the adapter passes st's variables as an extra wrapped
// argument and merges whatever the sandbox returns back into st, per
// §4.6 point 4. Call this once the host's long-lived ParserState exists,
// after Load has registered the extension's plain (state-blind)
// trampolines.
func (m *Manager) BindState(st *state.State) {
	for _, ext := range m.extensions {
		for _, fn := range ext.Functions {
			if !fn.Stateful {
				continue
			}
			if m.owners[fn.Name] != ext {
				continue
			}
			m.rebindStateful(ext, fn, st)
		}
	}
}

func (m *Manager) rebindStateful(ext *Extension, fn FunctionDescriptor, st *state.State) {
	args := make([]registry.ArgSpec, len(fn.Args))
	for i, a := range fn.Args {
		args[i] = registry.ArgSpec{Name: a.Name, Type: a.Type, Optional: a.Optional}
	}
	handlerID := fn.HandlerID
	sandbox := m.sandbox

	m.reg.RegisterFunction(&registry.Func{
		Name:     fn.Name,
		Args:     args,
		Variadic: fn.Variadic,
		Handler: func(callArgs []value.Value) (value.Value, error) {
			return invokeStateful(sandbox, handlerID, callArgs, st)
		},
	})
}

func invoke(sandbox Sandbox, handlerID string, callArgs []value.Value, stateful bool, st *state.State) (value.Value, error) {
	wrapped := make([]WrappedValue, len(callArgs))
	for i, a := range callArgs {
		wrapped[i] = Wrap(a)
	}

	var snapshot map[string]WrappedValue
	if stateful && st != nil {
		snapshot = map[string]WrappedValue{}
		for name, v := range st.Variables() {
			snapshot[name] = Wrap(v)
		}
	}

	result, updated, err := safeInvoke(sandbox, handlerID, wrapped, snapshot)
	if err != nil {
		return value.Value{}, err
	}

	if stateful && st != nil && updated != nil {
		for name, w := range updated {
			v, uerr := Unwrap(w)
			if uerr != nil {
				continue
			}
			_ = st.Set(name, v)
		}
	}

	return Unwrap(result)
}

func invokeStateful(sandbox Sandbox, handlerID string, callArgs []value.Value, st *state.State) (value.Value, error) {
	return invoke(sandbox, handlerID, callArgs, true, st)
}

// safeInvoke recovers from a sandbox panic and turns it into an error,
// mirroring the teacher's safe wrapper around its FFI callback boundary.
func safeInvoke(sandbox Sandbox, handlerID string, args []WrappedValue, stateVars map[string]WrappedValue) (result WrappedValue, updated map[string]WrappedValue, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("extension handler %q panicked: %v", handlerID, r)
		}
	}()
	return sandbox.Invoke(handlerID, args, stateVars)
}

func (m *Manager) registerDecorator(ext *Extension, dec DecoratorDescriptor) {
	m.supersede(dec.Name, ext)
	ext.ownedDecs[dec.Name] = true

	handlerID := dec.HandlerID
	sandbox := m.sandbox

	m.reg.RegisterDecorator(&registry.Decorator{
		Name: dec.Name,
		Handler: func(v value.Value) (string, error) {
			result, _, err := safeInvoke(sandbox, handlerID, []WrappedValue{Wrap(v)}, nil)
			if err != nil {
				return "", err
			}
			out, err := Unwrap(result)
			if err != nil {
				return "", err
			}
			return out.String(), nil
		},
	})
}
