package scope

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/promptdeck/promptdeck/internal/catalog"
)

// Options configures a discovery pass.
type Options struct {
	// MarkerDir is the directory name that marks an installation root
	// (e.g. ".promptdeck").
	MarkerDir string
	// GlobalRoot is the fixed global root, always appended last.
	GlobalRoot string
	// Ignore holds doublestar patterns excluded from installed
	// fingerprint walks; it must match the catalog's patterns so the
	// two sides hash identically.
	Ignore []string
}

// Discover walks upward from startDir and returns every plausible
// installation root, ordered nearest-scope-first: project, then each
// ancestor outward, then the global root last. The global root is
// deduplicated if the walk already found it.
func Discover(startDir string, opts Options) ([]*Root, error) {
	if opts.MarkerDir == "" {
		return nil, fmt.Errorf("marker directory name is required")
	}

	start, err := filepath.Abs(startDir)
	if err != nil {
		return nil, fmt.Errorf("resolving start directory %s: %w", startDir, err)
	}

	var roots []*Root
	seen := make(map[string]bool)

	dir := start
	for {
		marker := filepath.Join(dir, opts.MarkerDir)
		if info, err := os.Stat(marker); err == nil && info.IsDir() {
			tier := ScopeAncestor
			if len(roots) == 0 {
				tier = ScopeProject
			}
			roots = append(roots, readRoot(marker, tier, opts.Ignore))
			seen[filepath.Clean(marker)] = true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	if opts.GlobalRoot != "" {
		global, err := filepath.Abs(opts.GlobalRoot)
		if err != nil {
			return nil, fmt.Errorf("resolving global root %s: %w", opts.GlobalRoot, err)
		}
		if !seen[filepath.Clean(global)] {
			roots = append(roots, readRoot(global, ScopeGlobal, opts.Ignore))
		}
	}

	return roots, nil
}

// ReadRoot reads a single root's current contents into a fresh index.
// The installer re-reads through this before every write to close the
// staleness window between discovery and action.
func ReadRoot(path string, tier Scope, ignore []string) *Root {
	return readRoot(path, tier, ignore)
}

func readRoot(path string, tier Scope, ignore []string) *Root {
	root := &Root{
		Path:  path,
		Scope: tier,
		Index: make(map[catalog.Key]Entry),
	}

	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			root.Warnings = append(root.Warnings, fmt.Sprintf("cannot stat root: %v", err))
		}
		// A root that does not exist yet is a valid empty target.
		return root
	}

	for _, category := range catalog.Categories() {
		dir := filepath.Join(path, category.Dir())
		entries, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			// Partial visibility must not abort the whole scan.
			root.Warnings = append(root.Warnings, fmt.Sprintf("cannot read %s: %v", dir, err))
			continue
		}

		for _, entry := range entries {
			if strings.HasPrefix(entry.Name(), ".") {
				continue
			}
			if entry.IsDir() != category.IsDirectory() {
				continue
			}
			location := filepath.Join(dir, entry.Name())
			fp, err := catalog.FingerprintPath(location, ignore)
			if err != nil {
				root.Warnings = append(root.Warnings, fmt.Sprintf("cannot fingerprint %s: %v", location, err))
				continue
			}

			key := catalog.Key{Category: category, Name: category.NameFromFile(entry.Name())}
			e := Entry{Fingerprint: fp, Location: location}
			// Declared version is best-effort: an installed copy with
			// unparseable metadata still occupies its slot.
			if a, err := catalog.Extract(location, category, ignore); err == nil {
				e.Version = a.Version
			}
			root.Index[key] = e
		}
	}

	return root
}
