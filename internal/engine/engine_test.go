package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptdeck/promptdeck/internal/catalog"
	"github.com/promptdeck/promptdeck/internal/installer"
	"github.com/promptdeck/promptdeck/internal/reconcile"
	"github.com/promptdeck/promptdeck/internal/scope"
	"github.com/promptdeck/promptdeck/pkg/config"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// fixture builds an engine over a small asset bundle and a workspace
// with a project marker plus a separate global root.
func fixture(t *testing.T) (*Engine, string) {
	t.Helper()
	base := t.TempDir()
	assetDir := filepath.Join(base, "assets")
	workDir := filepath.Join(base, "work")

	writeFile(t, filepath.Join(assetDir, "commands", "deploy.md"),
		"---\nname: deploy\nversion: 1.0.0\n---\nrun the deploy\n")
	writeFile(t, filepath.Join(assetDir, "agents", "reviewer.md"),
		"---\nname: reviewer\nversion: 2.1.0\n---\nreview persona\n")
	writeFile(t, filepath.Join(assetDir, "skills", "code-review", "SKILL.md"),
		"---\nname: code-review\nversion: 0.3.1\n---\nchecklist\n")

	require.NoError(t, os.MkdirAll(filepath.Join(workDir, ".promptdeck"), 0o755))

	cfg := config.Default()
	cfg.AssetDir = assetDir
	cfg.GlobalRoot = filepath.Join(base, "global")
	return New(&cfg), workDir
}

func mustAsset(t *testing.T, cat *catalog.Catalog, ref string) *catalog.Asset {
	t.Helper()
	parsed, err := catalog.ParseRef(ref)
	require.NoError(t, err)
	a, ok := cat.Lookup(catalog.Key(parsed))
	require.True(t, ok, "catalog missing %s", ref)
	return a
}

func TestEngineLifecycle(t *testing.T) {
	e, workDir := fixture(t)

	cat, err := e.BuildCatalog()
	require.NoError(t, err)
	require.Equal(t, 3, cat.Len())

	roots, err := e.DiscoverRoots(workDir)
	require.NoError(t, err)
	require.Len(t, roots, 2)
	require.Equal(t, scope.ScopeProject, roots[0].Scope)
	require.Equal(t, scope.ScopeGlobal, roots[1].Scope)
	project := roots[0]

	deploy := mustAsset(t, cat, "command/deploy")

	status, err := e.Status(deploy, project)
	require.NoError(t, err)
	assert.Equal(t, reconcile.NotInstalled, status)

	res := e.Install(deploy, project)
	require.Equal(t, installer.OutcomeSuccess, res.Outcome, res.Message)

	// Re-discover to see the new install.
	roots, err = e.DiscoverRoots(workDir)
	require.NoError(t, err)
	project = roots[0]

	status, err = e.Status(deploy, project)
	require.NoError(t, err)
	assert.Equal(t, reconcile.InstalledSame, status)

	// Local edit drives the slot to modified and makes the diff non-empty.
	installed := filepath.Join(project.Path, "commands", "deploy.md")
	writeFile(t, installed, "---\nname: deploy\nversion: 1.0.0\n---\nrun the deploy my way\n")
	roots, err = e.DiscoverRoots(workDir)
	require.NoError(t, err)
	project = roots[0]

	status, err = e.Status(deploy, project)
	require.NoError(t, err)
	assert.Equal(t, reconcile.InstalledDifferent, status)

	diff, err := e.Diff(deploy, project)
	require.NoError(t, err)
	assert.Contains(t, diff, "-run the deploy my way")
	assert.Contains(t, diff, "+run the deploy")

	// Update restores the catalog version.
	res = e.Update(deploy, project)
	require.Equal(t, installer.OutcomeSuccess, res.Outcome, res.Message)

	roots, err = e.DiscoverRoots(workDir)
	require.NoError(t, err)
	project = roots[0]
	status, err = e.Status(deploy, project)
	require.NoError(t, err)
	assert.Equal(t, reconcile.InstalledSame, status)

	// And uninstall empties the slot again.
	res = e.Uninstall(catalog.CategoryCommand, "deploy", project)
	require.Equal(t, installer.OutcomeSuccess, res.Outcome, res.Message)

	roots, err = e.DiscoverRoots(workDir)
	require.NoError(t, err)
	status, err = e.Status(deploy, roots[0])
	require.NoError(t, err)
	assert.Equal(t, reconcile.NotInstalled, status)
}

func TestEngineDiffRequiresInstall(t *testing.T) {
	e, workDir := fixture(t)
	cat, err := e.BuildCatalog()
	require.NoError(t, err)
	roots, err := e.DiscoverRoots(workDir)
	require.NoError(t, err)

	_, err = e.Diff(mustAsset(t, cat, "command/deploy"), roots[0])
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not installed")
}

func TestEngineBulkAcrossScopes(t *testing.T) {
	e, workDir := fixture(t)
	cat, err := e.BuildCatalog()
	require.NoError(t, err)
	roots, err := e.DiscoverRoots(workDir)
	require.NoError(t, err)
	project, global := roots[0], roots[1]

	deploy := mustAsset(t, cat, "command/deploy")
	reviewer := mustAsset(t, cat, "agent/reviewer")

	results := e.RunBulk([]installer.PlannedOp{
		{Action: installer.ActionInstall, Asset: deploy, Root: project},
		{Action: installer.ActionInstall, Asset: reviewer, Root: global},
		{Action: installer.ActionInstall, Asset: deploy, Root: project}, // duplicate slot
	})
	require.Len(t, results, 3)
	assert.Equal(t, installer.OutcomeSuccess, results[0].Outcome, results[0].Message)
	assert.Equal(t, installer.OutcomeSuccess, results[1].Outcome, results[1].Message)
	assert.Equal(t, installer.OutcomeSkipped, results[2].Outcome)

	assert.FileExists(t, filepath.Join(project.Path, "commands", "deploy.md"))
	assert.FileExists(t, filepath.Join(global.Path, "agents", "reviewer.md"))
	assert.NoFileExists(t, filepath.Join(project.Path, "agents", "reviewer.md"))
}
