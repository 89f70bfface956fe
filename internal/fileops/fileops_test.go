package fileops

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	alpherrors "github.com/alph-cli/alph/internal/errors"
)

func TestReadJSONNotFound(t *testing.T) {
	o := New()
	_, err := o.ReadJSON(filepath.Join(t.TempDir(), "absent.json"))
	if !errors.Is(err, alpherrors.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestReadJSONParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	o := New()
	_, err := o.ReadJSON(path)
	if !errors.Is(err, alpherrors.ErrParse) {
		t.Errorf("expected ErrParse, got %v", err)
	}
	if !strings.Contains(err.Error(), path) {
		t.Errorf("error should name the path: %v", err)
	}
}

func TestWriteJSONPrettyPrinted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	o := New()

	doc := map[string]any{
		"mcpServers": map[string]any{
			"github": map[string]any{"command": "npx"},
		},
	}
	if err := o.WriteJSON(path, doc); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)
	if !strings.Contains(content, "  \"mcpServers\"") {
		t.Errorf("expected 2-space indentation, got:\n%s", content)
	}
	if !strings.HasSuffix(content, "\n") {
		t.Error("expected trailing newline")
	}

	// Round-trip
	got, err := o.ReadJSON(path)
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	servers, ok := got["mcpServers"].(map[string]any)
	if !ok {
		t.Fatalf("mcpServers lost in round-trip: %#v", got)
	}
	if _, ok := servers["github"]; !ok {
		t.Error("github entry lost in round-trip")
	}
}

func TestAtomicWriteLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	o := New()

	if err := o.AtomicWrite(path, []byte(`{}`), 0o644); err != nil {
		t.Fatalf("AtomicWrite: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.Contains(e.Name(), ".tmp.") {
			t.Errorf("temp file survived: %s", e.Name())
		}
	}
}

func TestAtomicWriteCopyMode(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	o := New(WithAtomicMode(ModeCopy))

	if err := o.AtomicWrite(path, []byte(`{"a":1}`), 0o644); err != nil {
		t.Fatalf("AtomicWrite copy mode: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"a":1}` {
		t.Errorf("content = %q", data)
	}

	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		if strings.Contains(e.Name(), ".tmp.") {
			t.Errorf("temp file survived in copy mode: %s", e.Name())
		}
	}
}

func TestAtomicWriteOverwritesIntact(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	o := New()

	if err := o.AtomicWrite(path, []byte("first"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := o.AtomicWrite(path, []byte("second"), 0o644); err != nil {
		t.Fatal(err)
	}

	data, _ := os.ReadFile(path)
	if string(data) != "second" {
		t.Errorf("content = %q, want %q", data, "second")
	}
}

func TestParseAtomicMode(t *testing.T) {
	tests := []struct {
		in   string
		want AtomicMode
	}{
		{"auto", ModeAuto},
		{"copy", ModeCopy},
		{"rename", ModeRename},
		{"RENAME", ModeRename},
		{"", ModeAuto},
		{"bogus", ModeAuto},
	}
	for _, tt := range tests {
		if got := ParseAtomicMode(tt.in); got != tt.want {
			t.Errorf("ParseAtomicMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestTempPathShape(t *testing.T) {
	p := tempPath("/etc/app/config.json")
	if !strings.HasPrefix(p, "/etc/app/config.json.tmp.") {
		t.Errorf("tempPath = %q", p)
	}
	suffix := strings.TrimPrefix(p, "/etc/app/config.json.tmp.")
	if len(suffix) != 16 {
		t.Errorf("temp suffix %q has length %d, want 16", suffix, len(suffix))
	}
}

func TestGuardTimeout(t *testing.T) {
	o := New(WithTimeout(10 * time.Millisecond))
	err := o.guard("reading", "/slow/share", func() error {
		time.Sleep(200 * time.Millisecond)
		return nil
	})
	if !errors.Is(err, alpherrors.ErrTimeout) {
		t.Errorf("expected ErrTimeout, got %v", err)
	}
}

func TestGuardDisabled(t *testing.T) {
	o := New(WithTimeout(0))
	err := o.guard("reading", "x", func() error { return nil })
	if err != nil {
		t.Errorf("guard with disabled timeout: %v", err)
	}
}

func TestDeleteIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gone.json")
	o := New()

	if err := o.Delete(path); err != nil {
		t.Errorf("deleting missing file: %v", err)
	}

	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := o.Delete(path); err != nil {
		t.Errorf("deleting existing file: %v", err)
	}
	if o.FileExists(path) {
		t.Error("file still exists after Delete")
	}
}

func TestIsWritableMissingFile(t *testing.T) {
	dir := t.TempDir()
	o := New()

	if !o.IsWritable(filepath.Join(dir, "new.json")) {
		t.Error("missing file in writable dir should be writable")
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("writability probe left %d entries behind", len(entries))
	}
}

func TestTOMLCodecRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	o := New()

	doc := map[string]any{
		"mcp_servers": map[string]any{
			"github": map[string]any{"command": "npx", "args": []any{"-y", "@mcp/github"}},
		},
	}
	if err := o.WriteDoc(path, TOML, doc); err != nil {
		t.Fatalf("WriteDoc: %v", err)
	}

	got, err := o.ReadDoc(path, TOML)
	if err != nil {
		t.Fatalf("ReadDoc: %v", err)
	}
	servers, ok := got["mcp_servers"].(map[string]any)
	if !ok {
		t.Fatalf("mcp_servers lost: %#v", got)
	}
	if _, ok := servers["github"]; !ok {
		t.Error("github entry lost in TOML round-trip")
	}
}
