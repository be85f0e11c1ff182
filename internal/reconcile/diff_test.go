package reconcile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/promptdeck/promptdeck/internal/catalog"
)

func writeRaw(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestDiffIdenticalIsEmpty(t *testing.T) {
	dir := t.TempDir()
	content := "---\nname: deploy\n---\nline one\nline two\n"
	a := writeAsset(t, dir, "deploy", "", "line one\nline two\n")

	installed := filepath.Join(dir, "installed.md")
	writeRaw(t, installed, []byte(content))

	out, err := Diff(a, installed, nil)
	if err != nil {
		t.Fatalf("Diff() unexpected error: %v", err)
	}
	if out != "" {
		t.Errorf("Diff() = %q, expected empty for identical content", out)
	}
}

func TestDiffEditedFile(t *testing.T) {
	dir := t.TempDir()
	a := writeAsset(t, dir, "deploy", "", "line one\nline two\nline three\n")

	installed := filepath.Join(dir, "installed.md")
	writeRaw(t, installed, []byte("---\nname: deploy\n---\nline one\nline 2\nline three\n"))

	out, err := Diff(a, installed, nil)
	if err != nil {
		t.Fatalf("Diff() unexpected error: %v", err)
	}
	if out == "" {
		t.Fatal("Diff() empty for diverged content")
	}
	if !strings.Contains(out, "--- installed/command/deploy") {
		t.Errorf("missing installed header:\n%s", out)
	}
	if !strings.Contains(out, "+++ catalog/command/deploy") {
		t.Errorf("missing catalog header:\n%s", out)
	}
	if !strings.Contains(out, "-line 2") {
		t.Errorf("missing removed line:\n%s", out)
	}
	if !strings.Contains(out, "+line two") {
		t.Errorf("missing added line:\n%s", out)
	}
	if !strings.Contains(out, "@@ ") {
		t.Errorf("missing hunk header:\n%s", out)
	}
}

func TestDiffMissingInstalledSide(t *testing.T) {
	dir := t.TempDir()
	a := writeAsset(t, dir, "deploy", "", "body\n")

	out, err := Diff(a, filepath.Join(dir, "nope.md"), nil)
	if err != nil {
		t.Fatalf("Diff() unexpected error: %v", err)
	}
	if !strings.Contains(out, "+body") {
		t.Errorf("expected pure-insert diff, got:\n%s", out)
	}
}

func TestDiffBinaryContent(t *testing.T) {
	dir := t.TempDir()
	a := writeAsset(t, dir, "deploy", "", "text body\n")

	installed := filepath.Join(dir, "installed.md")
	writeRaw(t, installed, []byte{0x00, 0x01, 0x02, 0xff})

	out, err := Diff(a, installed, nil)
	if err != nil {
		t.Fatalf("Diff() unexpected error: %v", err)
	}
	if !strings.Contains(out, BinaryDiffUnavailable) {
		t.Errorf("expected binary sentinel, got:\n%s", out)
	}
	if strings.Contains(out, "@@") {
		t.Errorf("binary diff must not carry hunks:\n%s", out)
	}
}

func TestDiffDirectoryAsset(t *testing.T) {
	dir := t.TempDir()

	source := filepath.Join(dir, "code-review")
	writeRaw(t, filepath.Join(source, "SKILL.md"), []byte("---\nname: code-review\n---\nchecklist\n"))
	writeRaw(t, filepath.Join(source, "templates", "report.md"), []byte("# Report v2\n"))

	a, err := catalog.Extract(source, catalog.CategorySkill, nil)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	installed := filepath.Join(dir, "installed", "code-review")
	writeRaw(t, filepath.Join(installed, "SKILL.md"), []byte("---\nname: code-review\n---\nchecklist\n"))
	writeRaw(t, filepath.Join(installed, "templates", "report.md"), []byte("# Report v1\n"))
	writeRaw(t, filepath.Join(installed, "notes.md"), []byte("local only\n"))

	out, err := Diff(a, installed, nil)
	if err != nil {
		t.Fatalf("Diff() unexpected error: %v", err)
	}
	// SKILL.md is identical and must not appear.
	if strings.Contains(out, "SKILL.md") {
		t.Errorf("identical file leaked into diff:\n%s", out)
	}
	if !strings.Contains(out, "skill/code-review/templates/report.md") {
		t.Errorf("edited file missing from diff:\n%s", out)
	}
	if !strings.Contains(out, "-local only") {
		t.Errorf("installed-only file must show as removal:\n%s", out)
	}
}
