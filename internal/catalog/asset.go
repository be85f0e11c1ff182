// Package catalog models installable assets and builds the in-memory
// catalog of everything shipped with the tool. Asset content is opaque
// payload; only declared metadata and content fingerprints matter here.
package catalog

import (
	"fmt"
	"strings"
)

// Category is the kind of an installable asset.
type Category string

const (
	CategoryHook     Category = "hook"
	CategoryCommand  Category = "command"
	CategoryAgent    Category = "agent"
	CategorySkill    Category = "skill"
	CategoryMode     Category = "mode"
	CategoryWorkflow Category = "workflow"
)

// Categories lists every known category in a stable order.
func Categories() []Category {
	return []Category{
		CategoryHook,
		CategoryCommand,
		CategoryAgent,
		CategorySkill,
		CategoryMode,
		CategoryWorkflow,
	}
}

// ParseCategory converts a user-supplied category name.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	switch c {
	case CategoryHook, CategoryCommand, CategoryAgent, CategorySkill, CategoryMode, CategoryWorkflow:
		return c, nil
	}
	return "", fmt.Errorf("unknown category %q (expected one of hook, command, agent, skill, mode, workflow)", s)
}

// Dir returns the directory name that holds this category inside an
// installation root (and inside the shipped asset tree).
func (c Category) Dir() string {
	return string(c) + "s"
}

// IsDirectory reports whether assets of this category are directory
// trees rather than single files.
func (c Category) IsDirectory() bool {
	return c == CategorySkill || c == CategoryHook
}

// FileName returns the on-disk name an asset of this category occupies
// inside a root's category directory. Directory categories use the bare
// name; single-file categories keep their conventional extension.
func (c Category) FileName(name string) string {
	if c.IsDirectory() {
		return name
	}
	if c == CategoryWorkflow {
		return name + ".yaml"
	}
	return name + ".md"
}

// NameFromFile is the inverse of FileName: it recovers the asset name
// from an on-disk entry name.
func (c Category) NameFromFile(file string) string {
	if c.IsDirectory() {
		return file
	}
	return strings.TrimSuffix(strings.TrimSuffix(strings.TrimSuffix(file, ".md"), ".yaml"), ".yml")
}

// Key uniquely identifies an asset within a catalog.
type Key struct {
	Category Category
	Name     string
}

// String renders the key as "category/name".
func (k Key) String() string {
	return string(k.Category) + "/" + k.Name
}

// Ref is a declared dependency on another asset.
type Ref struct {
	Category Category
	Name     string
}

// String renders the reference as "category/name".
func (r Ref) String() string {
	return string(r.Category) + "/" + r.Name
}

// ParseRef parses a "category/name" dependency reference.
func ParseRef(s string) (Ref, error) {
	parts := strings.SplitN(strings.TrimSpace(s), "/", 2)
	if len(parts) != 2 || parts[1] == "" {
		return Ref{}, fmt.Errorf("invalid asset reference %q (expected category/name)", s)
	}
	cat, err := ParseCategory(parts[0])
	if err != nil {
		return Ref{}, err
	}
	return Ref{Category: cat, Name: parts[1]}, nil
}

// Asset is one installable unit.
type Asset struct {
	Name         string
	Category     Category
	SourcePath   string
	Version      string
	Dependencies []Ref
	Description  string
	// Metadata preserves declared fields the engine does not interpret,
	// so asset authors can add fields without breaking extraction.
	Metadata map[string]interface{}

	// ignore holds the doublestar patterns active when the asset was
	// extracted; they scope the fingerprint walk.
	ignore []string

	fingerprint string
}

// Key returns the asset's catalog identity.
func (a *Asset) Key() Key {
	return Key{Category: a.Category, Name: a.Name}
}

// Fingerprint returns the deterministic content hash of the asset's
// installable content. It is computed on first use and cached; all
// equality comparisons go through this value rather than raw bytes.
func (a *Asset) Fingerprint() (string, error) {
	if a.fingerprint != "" {
		return a.fingerprint, nil
	}
	fp, err := FingerprintPath(a.SourcePath, a.ignore)
	if err != nil {
		return "", fmt.Errorf("fingerprinting %s: %w", a.SourcePath, err)
	}
	a.fingerprint = fp
	return fp, nil
}
