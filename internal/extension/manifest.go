package extension

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/goccy/go-yaml"

	"github.com/rscarson/lavendeux-parser/internal/registry"
)

// manifest is the on-disk descriptor loaded alongside an extension's host
// script: lavendeux.yaml (or any *.lavendeux.yaml) declares the static
// argument shape the adapter needs up front, since a real scripting
// sandbox's own export reflection is outside this package's contract
// (§4.6 says only that the sandbox "exports its descriptor" — this file
// is how that export reaches Go code without a live sandbox wired in).
type manifest struct {
	Name       string              `yaml:"name"`
	Author     string              `yaml:"author"`
	Version    string              `yaml:"version"`
	Script     string              `yaml:"script"`
	Functions  []manifestFunction  `yaml:"functions"`
	Decorators []manifestDecorator `yaml:"decorators"`
}

type manifestArg struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	Optional bool   `yaml:"optional"`
}

type manifestFunction struct {
	Name     string        `yaml:"name"`
	Handler  string        `yaml:"handler"`
	Args     []manifestArg `yaml:"args"`
	Variadic bool          `yaml:"variadic"`
	Stateful bool          `yaml:"stateful"`
	Returns  string        `yaml:"returns"`
}

type manifestDecorator struct {
	Name    string `yaml:"name"`
	Handler string `yaml:"handler"`
	Arg     string `yaml:"arg"`
}

// parseArgType maps a manifest's textual type name to the registry's
// ArgType, per the descriptor vocabulary in §4.4.
func parseArgType(name string) (registry.ArgType, error) {
	switch name {
	case "", "Any":
		return registry.Any, nil
	case "Boolean":
		return registry.ArgBoolean, nil
	case "Integer":
		return registry.ArgInteger, nil
	case "Float":
		return registry.ArgFloat, nil
	case "Numeric":
		return registry.ArgNumeric, nil
	case "String":
		return registry.ArgString, nil
	case "Array":
		return registry.ArgArray, nil
	case "Object":
		return registry.ArgObject, nil
	default:
		return registry.Any, fmt.Errorf("unknown argument type %q", name)
	}
}

func decodeManifest(data []byte) (*manifest, error) {
	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing extension manifest: %w", err)
	}
	if m.Name == "" {
		return nil, fmt.Errorf("extension manifest is missing a name")
	}
	return &m, nil
}

func (m *manifest) toDescriptor() (Descriptor, error) {
	desc := Descriptor{Name: m.Name, Author: m.Author, Version: m.Version}
	for _, fn := range m.Functions {
		args := make([]ArgDescriptor, len(fn.Args))
		for i, a := range fn.Args {
			t, err := parseArgType(a.Type)
			if err != nil {
				return Descriptor{}, fmt.Errorf("function %q argument %q: %w", fn.Name, a.Name, err)
			}
			args[i] = ArgDescriptor{Name: a.Name, Type: t, Optional: a.Optional}
		}
		ret, err := parseArgType(fn.Returns)
		if err != nil {
			return Descriptor{}, fmt.Errorf("function %q return type: %w", fn.Name, err)
		}
		handler := fn.Handler
		if handler == "" {
			handler = fn.Name
		}
		desc.Functions = append(desc.Functions, FunctionDescriptor{
			Name: fn.Name, HandlerID: handler, Args: args,
			Variadic: fn.Variadic, Stateful: fn.Stateful, Returns: ret,
		})
	}
	for _, dec := range m.Decorators {
		t, err := parseArgType(dec.Arg)
		if err != nil {
			return Descriptor{}, fmt.Errorf("decorator %q argument: %w", dec.Name, err)
		}
		handler := dec.Handler
		if handler == "" {
			handler = dec.Name
		}
		desc.Decorators = append(desc.Decorators, DecoratorDescriptor{Name: dec.Name, HandlerID: handler, ArgType: t})
	}
	return desc, nil
}

// manifestSandbox wraps a real Sandbox so that Submit returns the
// manifest's declared Descriptor instead of whatever (possibly empty)
// descriptor the sandbox itself would infer from evaluating the script.
// The underlying sandbox still evaluates the script — manifestSandbox
// only overrides the shape the adapter dispatches through.
type manifestSandbox struct {
	Sandbox
	desc Descriptor
}

func (s *manifestSandbox) Submit(source string) (Descriptor, error) {
	if _, err := s.Sandbox.Submit(source); err != nil {
		return Descriptor{}, err
	}
	return s.desc, nil
}

// LoadFile loads a single extension described by a manifest file at
// manifestPath. The manifest's "script" field is resolved relative to the
// manifest's own directory and read as the host script submitted to the
// sandbox.
func (m *Manager) LoadFile(manifestPath string) (*Extension, error) {
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("reading extension manifest %q: %w", manifestPath, err)
	}
	parsed, err := decodeManifest(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", manifestPath, err)
	}
	desc, err := parsed.toDescriptor()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", manifestPath, err)
	}

	scriptPath := parsed.Script
	if scriptPath != "" && !filepath.IsAbs(scriptPath) {
		scriptPath = filepath.Join(filepath.Dir(manifestPath), scriptPath)
	}
	var source string
	if scriptPath != "" {
		raw, err := os.ReadFile(scriptPath)
		if err != nil {
			return nil, fmt.Errorf("reading extension script %q: %w", scriptPath, err)
		}
		source = string(raw)
	}

	saved := m.sandbox
	m.sandbox = &manifestSandbox{Sandbox: saved, desc: desc}
	defer func() { m.sandbox = saved }()

	return m.Load(manifestPath, source)
}

// LoadDirectory loads every .yaml or .yml manifest in dir, in
// lexical filename order so load-order-dependent supersession (§4.6) is
// deterministic.
func (m *Manager) LoadDirectory(dir string) ([]*Extension, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading extension directory %q: %w", dir, err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if filepath.Ext(e.Name()) == ".yaml" || filepath.Ext(e.Name()) == ".yml" {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var out []*Extension
	for _, name := range names {
		ext, err := m.LoadFile(filepath.Join(dir, name))
		if err != nil {
			return out, err
		}
		out = append(out, ext)
	}
	return out, nil
}
