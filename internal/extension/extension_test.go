package extension

import (
	"fmt"
	"testing"

	"github.com/rscarson/lavendeux-parser/internal/registry"
	"github.com/rscarson/lavendeux-parser/internal/state"
	"github.com/rscarson/lavendeux-parser/pkg/value"
)

// fakeSandbox is a test double standing in for a real scripting sandbox: it
// answers Submit with a pre-baked Descriptor and Invoke by looking up a
// Go function keyed by handler ID.
type fakeSandbox struct {
	descriptor Descriptor
	submitErr  error
	handlers   map[string]func(args []WrappedValue, stateVars map[string]WrappedValue) (WrappedValue, map[string]WrappedValue, error)
	panicOn    string
}

func (f *fakeSandbox) Submit(source string) (Descriptor, error) {
	if f.submitErr != nil {
		return Descriptor{}, f.submitErr
	}
	return f.descriptor, nil
}

func (f *fakeSandbox) Invoke(handlerID string, args []WrappedValue, stateVars map[string]WrappedValue) (WrappedValue, map[string]WrappedValue, error) {
	if handlerID == f.panicOn {
		panic("boom")
	}
	h, ok := f.handlers[handlerID]
	if !ok {
		return nil, nil, fmt.Errorf("no handler %q", handlerID)
	}
	return h(args, stateVars)
}

func doubleHandler(args []WrappedValue, stateVars map[string]WrappedValue) (WrappedValue, map[string]WrappedValue, error) {
	v, err := Unwrap(args[0])
	if err != nil {
		return nil, nil, err
	}
	return Wrap(value.NewInteger(v.AsInt() * 2)), nil, nil
}

func TestManagerLoadRegistersFunctionsAndDecorators(t *testing.T) {
	sandbox := &fakeSandbox{
		descriptor: Descriptor{
			Name: "doubler",
			Functions: []FunctionDescriptor{
				{Name: "double", HandlerID: "double", Args: []ArgDescriptor{{Name: "x", Type: registry.ArgInteger}}},
			},
			Decorators: []DecoratorDescriptor{
				{Name: "shout", HandlerID: "shout"},
			},
		},
		handlers: map[string]func([]WrappedValue, map[string]WrappedValue) (WrappedValue, map[string]WrappedValue, error){
			"double": doubleHandler,
			"shout": func(args []WrappedValue, stateVars map[string]WrappedValue) (WrappedValue, map[string]WrappedValue, error) {
				v, err := Unwrap(args[0])
				if err != nil {
					return nil, nil, err
				}
				return Wrap(value.NewString(v.String() + "!")), nil, nil
			},
		},
	}

	reg := registry.New()
	mgr := NewManager(sandbox, reg)
	ext, err := mgr.Load("doubler.lav", "")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if ext.State != Active {
		t.Errorf("State = %v, want Active", ext.State)
	}

	fn, ok := reg.Function("double")
	if !ok {
		t.Fatal("double was not registered")
	}
	got, err := registry.Call(fn, []value.Value{value.NewInteger(5)})
	if err != nil || got.AsInt() != 10 {
		t.Errorf("double(5) = %v, %v, want 10", got, err)
	}

	dec, ok := reg.DecoratorByName("shout")
	if !ok {
		t.Fatal("shout was not registered")
	}
	out, err := dec.Handler(value.NewString("hi"))
	if err != nil || out != "hi!" {
		t.Errorf("shout(hi) = %q, %v", out, err)
	}
}

func TestManagerLoadPropagatesSubmitError(t *testing.T) {
	sandbox := &fakeSandbox{submitErr: fmt.Errorf("syntax error")}
	mgr := NewManager(sandbox, registry.New())
	if _, err := mgr.Load("broken.lav", "garbage"); err == nil {
		t.Fatal("Load() should fail when Submit fails")
	}
}

func TestManagerSupersession(t *testing.T) {
	reg := registry.New()

	first := &fakeSandbox{
		descriptor: Descriptor{Name: "ext1", Functions: []FunctionDescriptor{
			{Name: "greet", HandlerID: "greet1"},
		}},
		handlers: map[string]func([]WrappedValue, map[string]WrappedValue) (WrappedValue, map[string]WrappedValue, error){
			"greet1": func(args []WrappedValue, sv map[string]WrappedValue) (WrappedValue, map[string]WrappedValue, error) {
				return Wrap(value.NewString("hello from ext1")), nil, nil
			},
		},
	}
	mgr := NewManager(first, reg)
	ext1, err := mgr.Load("ext1.lav", "")
	if err != nil {
		t.Fatalf("Load(ext1) error = %v", err)
	}

	second := &fakeSandbox{
		descriptor: Descriptor{Name: "ext2", Functions: []FunctionDescriptor{
			{Name: "greet", HandlerID: "greet2"},
		}},
		handlers: map[string]func([]WrappedValue, map[string]WrappedValue) (WrappedValue, map[string]WrappedValue, error){
			"greet2": func(args []WrappedValue, sv map[string]WrappedValue) (WrappedValue, map[string]WrappedValue, error) {
				return Wrap(value.NewString("hello from ext2")), nil, nil
			},
		},
	}
	mgr.sandbox = second
	if _, err := mgr.Load("ext2.lav", ""); err != nil {
		t.Fatalf("Load(ext2) error = %v", err)
	}

	if ext1.State != Superseded {
		t.Errorf("ext1.State = %v, want Superseded after ext2 redefines greet", ext1.State)
	}

	fn, _ := reg.Function("greet")
	got, err := registry.Call(fn, nil)
	if err != nil || got.AsString() != "hello from ext2" {
		t.Errorf("greet() = %v, %v, want the latest extension's definition", got, err)
	}
}

func TestManagerInvokeRecoversFromPanic(t *testing.T) {
	sandbox := &fakeSandbox{
		descriptor: Descriptor{Name: "crashy", Functions: []FunctionDescriptor{
			{Name: "crash", HandlerID: "crash"},
		}},
		panicOn: "crash",
	}
	reg := registry.New()
	mgr := NewManager(sandbox, reg)
	if _, err := mgr.Load("crashy.lav", ""); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	fn, _ := reg.Function("crash")
	if _, err := registry.Call(fn, nil); err == nil {
		t.Fatal("calling a function whose sandbox handler panics should return an error, not crash the test")
	}
}

func TestManagerBindStatePassesVariableSnapshot(t *testing.T) {
	var seenVars map[string]WrappedValue
	sandbox := &fakeSandbox{
		descriptor: Descriptor{Name: "statey", Functions: []FunctionDescriptor{
			{Name: "peek", HandlerID: "peek", Stateful: true},
		}},
		handlers: map[string]func([]WrappedValue, map[string]WrappedValue) (WrappedValue, map[string]WrappedValue, error){
			"peek": func(args []WrappedValue, sv map[string]WrappedValue) (WrappedValue, map[string]WrappedValue, error) {
				seenVars = sv
				return Wrap(value.NewBoolean(true)), nil, nil
			},
		},
	}
	reg := registry.New()
	mgr := NewManager(sandbox, reg)
	if _, err := mgr.Load("statey.lav", ""); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	st := state.New()
	st.Set("x", value.NewInteger(99))
	mgr.BindState(st)

	fn, _ := reg.Function("peek")
	if _, err := registry.Call(fn, nil); err != nil {
		t.Fatalf("Call() error = %v", err)
	}
	if seenVars == nil {
		t.Fatal("stateful handler should have received a variable snapshot")
	}
	v, err := Unwrap(seenVars["x"])
	if err != nil || v.AsInt() != 99 {
		t.Errorf("seenVars[x] = %v, %v, want 99", v, err)
	}
}

func TestLifecycleStateString(t *testing.T) {
	tests := []struct {
		s    LifecycleState
		want string
	}{
		{Unloaded, "Unloaded"}, {Loaded, "Loaded"}, {Active, "Active"}, {Superseded, "Superseded"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.s, got, tt.want)
		}
	}
}
