// Package scope discovers installation roots: the current project, each
// ancestor directory carrying the marker, and the fixed global root.
// Roots are recomputed fresh on every discovery pass and never persisted.
package scope

import (
	"github.com/promptdeck/promptdeck/internal/catalog"
)

// Scope is the provenance tier of an installation root, ordered by
// proximity to the working directory.
type Scope string

const (
	ScopeProject  Scope = "project"
	ScopeAncestor Scope = "ancestor"
	ScopeGlobal   Scope = "global"
)

// Entry describes whatever currently occupies one asset slot in a root.
type Entry struct {
	Fingerprint string
	Version     string
	Location    string
}

// Root is one candidate installation target.
type Root struct {
	Path  string
	Scope Scope
	// Index maps (category, name) to the installed occupant. An empty
	// index with warnings means the root exists but could not be read.
	Index    map[catalog.Key]Entry
	Warnings []string
}

// Installed returns the index entry for a key, if anything occupies it.
func (r *Root) Installed(key catalog.Key) (Entry, bool) {
	e, ok := r.Index[key]
	return e, ok
}
