package reconcile

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/promptdeck/promptdeck/internal/catalog"
)

// BinaryDiffUnavailable is the sentinel returned in place of a diff when
// either side of a comparison is not text.
const BinaryDiffUnavailable = "Binary content differs (diff unavailable)"

// contextLines is the amount of unchanged context around each hunk.
const contextLines = 3

// Diff renders a unified diff between an asset's canonical content and
// its installed counterpart. Directory assets are rendered per logical
// file; single-file assets as one diff. The result is presentation-only
// and empty when both sides are identical.
func Diff(a *catalog.Asset, installedLocation string, ignore []string) (string, error) {
	if !a.Category.IsDirectory() {
		oldData, err := readIfExists(installedLocation)
		if err != nil {
			return "", err
		}
		newData, err := readIfExists(a.SourcePath)
		if err != nil {
			return "", err
		}
		return renderFileDiff(a.Key().String(), oldData, newData), nil
	}

	installedFiles, err := listIfExists(installedLocation, ignore)
	if err != nil {
		return "", err
	}
	sourceFiles, err := listIfExists(a.SourcePath, ignore)
	if err != nil {
		return "", err
	}

	union := make(map[string]bool)
	for _, f := range installedFiles {
		union[f] = true
	}
	for _, f := range sourceFiles {
		union[f] = true
	}
	files := make([]string, 0, len(union))
	for f := range union {
		files = append(files, f)
	}
	sort.Strings(files)

	var out strings.Builder
	for _, rel := range files {
		oldData, err := readIfExists(filepath.Join(installedLocation, filepath.FromSlash(rel)))
		if err != nil {
			return "", err
		}
		newData, err := readIfExists(filepath.Join(a.SourcePath, filepath.FromSlash(rel)))
		if err != nil {
			return "", err
		}
		section := renderFileDiff(a.Key().String()+"/"+rel, oldData, newData)
		if section != "" {
			out.WriteString(section)
		}
	}
	return out.String(), nil
}

func readIfExists(path string) ([]byte, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- paths derive from catalog and root discovery
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}

func listIfExists(path string, ignore []string) ([]string, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return catalog.ListFiles(path, ignore)
}

// renderFileDiff produces one file's unified diff section, or "" when
// the contents are identical.
func renderFileDiff(label string, oldData, newData []byte) string {
	if bytes.Equal(oldData, newData) {
		return ""
	}
	header := fmt.Sprintf("--- installed/%s\n+++ catalog/%s\n", label, label)
	if isBinary(oldData) || isBinary(newData) {
		return header + BinaryDiffUnavailable + "\n"
	}
	body := unifiedHunks(string(oldData), string(newData))
	if body == "" {
		return ""
	}
	return header + body
}

// isBinary applies the usual null-byte heuristic over the leading bytes.
func isBinary(data []byte) bool {
	probe := data
	if len(probe) > 8000 {
		probe = probe[:8000]
	}
	return bytes.IndexByte(probe, 0) >= 0
}

type lineOp struct {
	kind    diffmatchpatch.Operation
	oldLine int // 1-based, 0 when the line has no old-side position
	newLine int
	text    string
}

// unifiedHunks computes a line-level diff and renders it as unified
// hunks with @@ headers. The line-level reduction avoids newline
// boundary artifacts when converting character diffs to line ops.
func unifiedHunks(oldText, newText string) string {
	dmp := diffmatchpatch.New()
	a, b, lineArray := dmp.DiffLinesToChars(oldText, newText)
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	ops := toLineOps(diffs)
	if len(ops) == 0 {
		return ""
	}

	changed := false
	for _, op := range ops {
		if op.kind != diffmatchpatch.DiffEqual {
			changed = true
			break
		}
	}
	if !changed {
		return ""
	}

	var out strings.Builder
	for _, h := range groupHunks(ops) {
		writeHunk(&out, ops, h)
	}
	return out.String()
}

func toLineOps(diffs []diffmatchpatch.Diff) []lineOp {
	var ops []lineOp
	oldLine, newLine := 1, 1
	for _, d := range diffs {
		lines := strings.SplitAfter(d.Text, "\n")
		for _, line := range lines {
			if line == "" {
				continue
			}
			text := strings.TrimSuffix(line, "\n")
			switch d.Type {
			case diffmatchpatch.DiffEqual:
				ops = append(ops, lineOp{kind: d.Type, oldLine: oldLine, newLine: newLine, text: text})
				oldLine++
				newLine++
			case diffmatchpatch.DiffDelete:
				ops = append(ops, lineOp{kind: d.Type, oldLine: oldLine, text: text})
				oldLine++
			case diffmatchpatch.DiffInsert:
				ops = append(ops, lineOp{kind: d.Type, newLine: newLine, text: text})
				newLine++
			}
		}
	}
	return ops
}

type hunkRange struct {
	start, end int // op index range, end exclusive
}

// groupHunks merges changed regions whose context windows overlap.
func groupHunks(ops []lineOp) []hunkRange {
	var hunks []hunkRange
	i := 0
	for i < len(ops) {
		if ops[i].kind == diffmatchpatch.DiffEqual {
			i++
			continue
		}
		start := i - contextLines
		if start < 0 {
			start = 0
		}
		end := i
		lastChange := i
		for end < len(ops) {
			if ops[end].kind != diffmatchpatch.DiffEqual {
				lastChange = end
			} else if end-lastChange > 2*contextLines {
				break
			}
			end++
		}
		end = lastChange + contextLines + 1
		if end > len(ops) {
			end = len(ops)
		}
		hunks = append(hunks, hunkRange{start: start, end: end})
		i = end
	}
	return hunks
}

func writeHunk(out *strings.Builder, ops []lineOp, h hunkRange) {
	oldStart, oldCount := 0, 0
	newStart, newCount := 0, 0
	for _, op := range ops[h.start:h.end] {
		if op.kind != diffmatchpatch.DiffInsert {
			if oldStart == 0 {
				oldStart = op.oldLine
			}
			oldCount++
		}
		if op.kind != diffmatchpatch.DiffDelete {
			if newStart == 0 {
				newStart = op.newLine
			}
			newCount++
		}
	}
	// A pure insertion or deletion hunk anchors just before the change.
	if oldCount == 0 {
		oldStart = 0
	}
	if newCount == 0 {
		newStart = 0
	}

	fmt.Fprintf(out, "@@ -%d,%d +%d,%d @@\n", oldStart, oldCount, newStart, newCount)
	for _, op := range ops[h.start:h.end] {
		switch op.kind {
		case diffmatchpatch.DiffEqual:
			out.WriteString(" " + op.text + "\n")
		case diffmatchpatch.DiffDelete:
			out.WriteString("-" + op.text + "\n")
		case diffmatchpatch.DiffInsert:
			out.WriteString("+" + op.text + "\n")
		}
	}
}
