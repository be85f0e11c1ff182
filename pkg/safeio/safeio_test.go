package safeio

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCleanUserPath(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		hasError bool
	}{
		{name: "simple path", input: "foo/bar", expected: "foo/bar"},
		{name: "redundant segments", input: "foo//bar/./baz", expected: "foo/bar/baz"},
		{name: "traversal", input: "../etc/passwd", hasError: true},
		{name: "embedded traversal", input: "foo/../../etc", hasError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CleanUserPath(tt.input)
			if tt.hasError {
				if err == nil {
					t.Errorf("CleanUserPath(%q) expected error, got %q", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("CleanUserPath(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("CleanUserPath(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestReadFileContained(t *testing.T) {
	base := t.TempDir()
	inside := filepath.Join(base, "inside.txt")
	if err := os.WriteFile(inside, []byte("ok"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	outside := filepath.Join(t.TempDir(), "outside.txt")
	if err := os.WriteFile(outside, []byte("nope"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	data, err := ReadFileContained(base, inside)
	if err != nil {
		t.Fatalf("ReadFileContained(inside) unexpected error: %v", err)
	}
	if string(data) != "ok" {
		t.Errorf("content = %q, expected %q", data, "ok")
	}

	if _, err := ReadFileContained(base, outside); err == nil {
		t.Error("ReadFileContained(outside) expected containment error")
	}
	if _, err := ReadFileContained(base, filepath.Join(base, "..", "escape.txt")); err == nil {
		t.Error("ReadFileContained(traversal) expected containment error")
	}
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.json")

	if err := WriteFileAtomic(path, []byte("first"), 0o644); err != nil {
		t.Fatalf("WriteFileAtomic() unexpected error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "first" {
		t.Errorf("content = %q, expected %q", data, "first")
	}

	if err := WriteFileAtomic(path, []byte("second"), 0o600); err != nil {
		t.Fatalf("WriteFileAtomic() overwrite error: %v", err)
	}
	data, _ = os.ReadFile(path)
	if string(data) != "second" {
		t.Errorf("content = %q, expected %q", data, "second")
	}
	st, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if st.Mode()&0o777 != 0o600 {
		t.Errorf("mode = %o, expected 0600", st.Mode()&0o777)
	}

	// No temp siblings survive.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".tmp-") {
			t.Errorf("leftover temp file %s", e.Name())
		}
	}
}

func TestCopyDir(t *testing.T) {
	src := t.TempDir()
	if err := os.MkdirAll(filepath.Join(src, "nested"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(src, "a.txt"), []byte("a"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(filepath.Join(src, "nested", "b.sh"), []byte("b"), 0o755); err != nil {
		t.Fatalf("write: %v", err)
	}

	dst := filepath.Join(t.TempDir(), "copy")
	if err := CopyDir(src, dst); err != nil {
		t.Fatalf("CopyDir() unexpected error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dst, "nested", "b.sh"))
	if err != nil {
		t.Fatalf("read copied file: %v", err)
	}
	if string(data) != "b" {
		t.Errorf("content = %q, expected %q", data, "b")
	}
	st, err := os.Stat(filepath.Join(dst, "nested", "b.sh"))
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if st.Mode()&0o777 != 0o755 {
		t.Errorf("mode = %o, expected 0755 preserved", st.Mode()&0o777)
	}
}

func TestCopyDirRejectsFile(t *testing.T) {
	src := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(src, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := CopyDir(src, filepath.Join(t.TempDir(), "dst")); err == nil {
		t.Error("CopyDir(file) expected error")
	}
}
