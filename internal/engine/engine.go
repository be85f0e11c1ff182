// Package engine is the caller-facing surface of the reconciliation and
// installation machinery. The CLI layer calls only what is exported
// here; catalog and root state are explicit values threaded through
// calls, never ambient.
package engine

import (
	"fmt"

	"github.com/promptdeck/promptdeck/internal/catalog"
	"github.com/promptdeck/promptdeck/internal/installer"
	"github.com/promptdeck/promptdeck/internal/reconcile"
	"github.com/promptdeck/promptdeck/internal/scope"
	"github.com/promptdeck/promptdeck/pkg/config"
)

// Engine wires configuration into the reconciliation components. It
// holds no catalog or root state; every call re-derives what it needs
// from the filesystem.
type Engine struct {
	cfg  *config.Config
	inst *installer.Installer
}

// New creates an engine for the given resolved configuration.
func New(cfg *config.Config) *Engine {
	return &Engine{
		cfg:  cfg,
		inst: &installer.Installer{Ignore: cfg.IgnorePatterns},
	}
}

// BuildCatalog walks the configured asset bundle and returns the full
// catalog of available assets.
func (e *Engine) BuildCatalog() (*catalog.Catalog, error) {
	return catalog.Build(catalog.RootsUnder(e.cfg.AssetDir), e.cfg.IgnorePatterns)
}

// DiscoverRoots returns every plausible installation root for startDir,
// nearest scope first, global last.
func (e *Engine) DiscoverRoots(startDir string) ([]*scope.Root, error) {
	return scope.Discover(startDir, scope.Options{
		MarkerDir:  e.cfg.MarkerDir,
		GlobalRoot: e.cfg.GlobalRoot,
		Ignore:     e.cfg.IgnorePatterns,
	})
}

// Status reconciles one asset against one root.
func (e *Engine) Status(a *catalog.Asset, r *scope.Root) (reconcile.Status, error) {
	return reconcile.Reconcile(a, r)
}

// Diff renders a unified diff between the asset's canonical content and
// whatever occupies its slot in the root. An asset that is not
// installed has nothing to diff against.
func (e *Engine) Diff(a *catalog.Asset, r *scope.Root) (string, error) {
	entry, ok := r.Installed(a.Key())
	if !ok {
		return "", fmt.Errorf("%s is not installed in %s", a.Key(), r.Path)
	}
	return reconcile.Diff(a, entry.Location, e.cfg.IgnorePatterns)
}

// Install writes one asset into one root.
func (e *Engine) Install(a *catalog.Asset, r *scope.Root) installer.Result {
	return e.inst.Install(a, r)
}

// Uninstall removes one asset from one root.
func (e *Engine) Uninstall(category catalog.Category, name string, r *scope.Root) installer.Result {
	return e.inst.Uninstall(category, name, r)
}

// Update replaces one asset's installed copy with the catalog version.
func (e *Engine) Update(a *catalog.Asset, r *scope.Root) installer.Result {
	return e.inst.Update(a, r)
}

// RunBulk executes planned operations independently, returning one
// result per input in input order.
func (e *Engine) RunBulk(ops []installer.PlannedOp) []installer.Result {
	return e.inst.Run(ops)
}
