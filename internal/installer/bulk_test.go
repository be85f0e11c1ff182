package installer

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptdeck/promptdeck/internal/catalog"
	"github.com/promptdeck/promptdeck/internal/scope"
)

func TestRunReturnsResultsInInputOrder(t *testing.T) {
	inst := &Installer{}
	src := t.TempDir()
	root := newRoot(t)

	var ops []PlannedOp
	for i := 0; i < 5; i++ {
		a := commandAsset(t, src, fmt.Sprintf("cmd-%d", i), "1.0.0", "body\n")
		ops = append(ops, PlannedOp{Action: ActionInstall, Asset: a, Root: root})
	}

	results := inst.Run(ops)
	require.Len(t, results, len(ops))
	for i, res := range results {
		assert.Equal(t, fmt.Sprintf("cmd-%d", i), res.Key.Name)
		assert.Equal(t, OutcomeSuccess, res.Outcome, res.Message)
	}
}

func TestRunSkipsDuplicateSlot(t *testing.T) {
	inst := &Installer{}
	src := t.TempDir()
	root := newRoot(t)
	a := commandAsset(t, src, "deploy", "1.0.0", "body\n")

	results := inst.Run([]PlannedOp{
		{Action: ActionInstall, Asset: a, Root: root},
		{Action: ActionUninstall, Key: a.Key(), Root: root},
	})
	require.Len(t, results, 2)
	assert.Equal(t, OutcomeSuccess, results[0].Outcome)
	assert.Equal(t, OutcomeSkipped, results[1].Outcome)
	assert.Contains(t, results[1].Message, "already planned")

	// The first operation won: the asset stays installed.
	assert.FileExists(t, filepath.Join(root.Path, "commands", "deploy.md"))
}

func TestRunSameAssetDifferentRoots(t *testing.T) {
	inst := &Installer{}
	a := commandAsset(t, t.TempDir(), "deploy", "1.0.0", "body\n")
	project := newRoot(t)
	global := scope.ReadRoot(t.TempDir(), scope.ScopeGlobal, nil)

	results := inst.Run([]PlannedOp{
		{Action: ActionInstall, Asset: a, Root: project},
		{Action: ActionInstall, Asset: a, Root: global},
	})
	require.Len(t, results, 2)
	assert.Equal(t, OutcomeSuccess, results[0].Outcome)
	assert.Equal(t, OutcomeSuccess, results[1].Outcome, "distinct roots are distinct slots")
}

func TestRunFailureDoesNotAbortBatch(t *testing.T) {
	inst := &Installer{}
	src := t.TempDir()
	root := newRoot(t)

	good1 := commandAsset(t, src, "good-1", "1.0.0", "body\n")
	good2 := commandAsset(t, src, "good-2", "1.0.0", "body\n")

	// A stale view of a slot someone else has since written makes the
	// middle operation fail while its neighbors proceed.
	bad := commandAsset(t, src, "bad", "1.0.0", "body\n")
	staleRoot := &scope.Root{Path: root.Path, Scope: root.Scope,
		Index: map[catalog.Key]scope.Entry{
			bad.Key(): {Fingerprint: "sha256:gone", Location: filepath.Join(root.Path, "commands", "bad.md")},
		}}

	results := inst.Run([]PlannedOp{
		{Action: ActionInstall, Asset: good1, Root: root},
		{Action: ActionInstall, Asset: bad, Root: staleRoot},
		{Action: ActionInstall, Asset: good2, Root: root},
	})
	require.Len(t, results, 3)
	assert.Equal(t, OutcomeSuccess, results[0].Outcome)
	assert.Equal(t, OutcomeFailed, results[1].Outcome)
	assert.Contains(t, results[1].Message, string(KindConcurrentModification))
	assert.Equal(t, OutcomeSuccess, results[2].Outcome)

	assert.FileExists(t, filepath.Join(root.Path, "commands", "good-1.md"))
	assert.FileExists(t, filepath.Join(root.Path, "commands", "good-2.md"))
	assert.NoFileExists(t, filepath.Join(root.Path, "commands", "bad.md"))
}

func TestRunUnknownAction(t *testing.T) {
	inst := &Installer{}
	a := commandAsset(t, t.TempDir(), "deploy", "1.0.0", "body\n")
	root := newRoot(t)

	results := inst.Run([]PlannedOp{{Action: Action("reinstall"), Asset: a, Root: root}})
	require.Len(t, results, 1)
	assert.Equal(t, OutcomeFailed, results[0].Outcome)
	assert.Contains(t, results[0].Message, "reinstall")
}
