package extension

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rscarson/lavendeux-parser/internal/registry"
)

func TestDecodeManifest(t *testing.T) {
	data := []byte(`
name: greeter
author: someone
version: "1.0"
script: greeter.lav
functions:
  - name: greet
    handler: doGreet
    args:
      - name: who
        type: String
    returns: String
decorators:
  - name: shout
    arg: String
`)
	m, err := decodeManifest(data)
	if err != nil {
		t.Fatalf("decodeManifest() error = %v", err)
	}
	if m.Name != "greeter" || m.Script != "greeter.lav" {
		t.Errorf("manifest = %+v", m)
	}

	desc, err := m.toDescriptor()
	if err != nil {
		t.Fatalf("toDescriptor() error = %v", err)
	}
	if len(desc.Functions) != 1 || desc.Functions[0].HandlerID != "doGreet" {
		t.Errorf("Functions = %+v", desc.Functions)
	}
	if desc.Functions[0].Args[0].Type != registry.ArgString {
		t.Errorf("arg type = %v, want ArgString", desc.Functions[0].Args[0].Type)
	}
	if len(desc.Decorators) != 1 || desc.Decorators[0].HandlerID != "shout" {
		t.Errorf("Decorators = %+v, want handler defaulting to the decorator's own name", desc.Decorators)
	}
}

func TestDecodeManifestRequiresName(t *testing.T) {
	if _, err := decodeManifest([]byte(`author: x`)); err == nil {
		t.Fatal("decodeManifest without a name should fail")
	}
}

func TestDecodeManifestRejectsUnknownArgType(t *testing.T) {
	data := []byte(`
name: bad
functions:
  - name: f
    args:
      - name: x
        type: NotAType
`)
	m, err := decodeManifest(data)
	if err != nil {
		t.Fatalf("decodeManifest() error = %v", err)
	}
	if _, err := m.toDescriptor(); err == nil {
		t.Fatal("toDescriptor() should fail on an unknown argument type")
	}
}

func TestManagerLoadFile(t *testing.T) {
	dir := t.TempDir()
	scriptPath := filepath.Join(dir, "greeter.lav")
	if err := os.WriteFile(scriptPath, []byte("// extension host script"), 0o644); err != nil {
		t.Fatalf("WriteFile(script) error = %v", err)
	}
	manifestPath := filepath.Join(dir, "greeter.lavendeux.yaml")
	manifestText := `
name: greeter
script: greeter.lav
functions:
  - name: greet
    returns: String
`
	if err := os.WriteFile(manifestPath, []byte(manifestText), 0o644); err != nil {
		t.Fatalf("WriteFile(manifest) error = %v", err)
	}

	var submittedSource string
	sandbox := &fakeSandbox{
		handlers: map[string]func([]WrappedValue, map[string]WrappedValue) (WrappedValue, map[string]WrappedValue, error){},
	}
	sandbox.descriptor = Descriptor{Name: "greeter"}
	probe := &probingSandbox{fakeSandbox: sandbox, onSubmit: func(src string) { submittedSource = src }}

	reg := registry.New()
	mgr := NewManager(probe, reg)
	ext, err := mgr.LoadFile(manifestPath)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if ext.Source != manifestPath {
		t.Errorf("Source = %q, want %q", ext.Source, manifestPath)
	}
	if submittedSource != "// extension host script" {
		t.Errorf("submitted source = %q", submittedSource)
	}
	if _, ok := reg.Function("greet"); !ok {
		t.Error("greet should be registered from the manifest's declared functions")
	}
}

// probingSandbox wraps fakeSandbox to observe the source text LoadFile
// actually submits, since manifestSandbox overrides the returned descriptor
// but still forwards the real script to the underlying sandbox.
type probingSandbox struct {
	*fakeSandbox
	onSubmit func(string)
}

func (p *probingSandbox) Submit(source string) (Descriptor, error) {
	p.onSubmit(source)
	return p.fakeSandbox.Submit(source)
}

func TestManagerLoadDirectoryOrdersLexically(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("WriteFile(%s) error = %v", name, err)
		}
	}
	write("b.lavendeux.yaml", "name: ext_b\n")
	write("a.lavendeux.yaml", "name: ext_a\n")
	write("notes.txt", "ignore me")

	sandbox := &fakeSandbox{descriptor: Descriptor{Name: "whatever"}}
	mgr := NewManager(sandbox, registry.New())
	exts, err := mgr.LoadDirectory(dir)
	if err != nil {
		t.Fatalf("LoadDirectory() error = %v", err)
	}
	if len(exts) != 2 {
		t.Fatalf("LoadDirectory() loaded %d extensions, want 2 (the .txt file should be skipped)", len(exts))
	}
	if filepath.Base(exts[0].Source) != "a.lavendeux.yaml" || filepath.Base(exts[1].Source) != "b.lavendeux.yaml" {
		t.Errorf("load order = %s, %s, want a before b", exts[0].Source, exts[1].Source)
	}
}
