package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Warning records a non-fatal problem found while building a catalog.
type Warning struct {
	Path   string
	Detail string
}

// Catalog is the full set of available assets, keyed by (category, name).
type Catalog struct {
	assets   map[Key]*Asset
	Warnings []Warning
}

// Lookup returns the asset for a key, if present.
func (c *Catalog) Lookup(key Key) (*Asset, bool) {
	a, ok := c.assets[key]
	return a, ok
}

// Assets returns every asset ordered by category then name.
func (c *Catalog) Assets() []*Asset {
	out := make([]*Asset, 0, len(c.assets))
	for _, a := range c.assets {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Len returns the number of cataloged assets.
func (c *Catalog) Len() int {
	return len(c.assets)
}

// add inserts an asset, rejecting duplicate identities.
func (c *Catalog) add(a *Asset) error {
	key := a.Key()
	if existing, ok := c.assets[key]; ok {
		return &DuplicateError{Key: key, FirstPath: existing.SourcePath, SecondPath: a.SourcePath}
	}
	c.assets[key] = a
	return nil
}

// Build walks each category root and produces the catalog of available
// assets. Extraction failures for individual assets become warnings on
// the catalog; only structural problems (a duplicate identity, an
// unreadable category root) fail the build. A category root that does
// not exist is treated as empty.
func Build(categoryRoots map[Category]string, ignore []string) (*Catalog, error) {
	cat := &Catalog{assets: make(map[Key]*Asset)}

	// Deterministic iteration so duplicate errors are stable across runs.
	for _, category := range Categories() {
		root, ok := categoryRoots[category]
		if !ok {
			continue
		}
		if err := buildCategory(cat, category, root, ignore); err != nil {
			return nil, err
		}
	}
	return cat, nil
}

func buildCategory(cat *Catalog, category Category, root string, ignore []string) error {
	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading category root %s: %w", root, err)
	}

	for _, entry := range entries {
		path := filepath.Join(root, entry.Name())
		if !candidateEntry(category, entry.Name(), entry.IsDir()) {
			continue
		}

		asset, err := Extract(path, category, ignore)
		if err != nil {
			cat.Warnings = append(cat.Warnings, Warning{Path: path, Detail: err.Error()})
			continue
		}
		if err := cat.add(asset); err != nil {
			return err
		}
	}
	return nil
}

// candidateEntry reports whether a directory entry looks like an asset
// of the given category. Hidden entries never qualify.
func candidateEntry(category Category, name string, isDir bool) bool {
	if strings.HasPrefix(name, ".") {
		return false
	}
	if category.IsDirectory() {
		return isDir
	}
	if isDir {
		return false
	}
	switch category {
	case CategoryWorkflow:
		ext := strings.ToLower(filepath.Ext(name))
		return ext == ".yaml" || ext == ".yml"
	default:
		return strings.ToLower(filepath.Ext(name)) == ".md"
	}
}

// RootsUnder maps every category to its conventional directory beneath
// baseDir ("hooks/", "commands/", ...). This is the layout the shipped
// asset bundle uses.
func RootsUnder(baseDir string) map[Category]string {
	roots := make(map[Category]string, len(Categories()))
	for _, c := range Categories() {
		roots[c] = filepath.Join(baseDir, c.Dir())
	}
	return roots
}
