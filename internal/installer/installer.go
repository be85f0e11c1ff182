// Package installer performs install, uninstall, and update of one asset
// against one installation root with all-or-nothing semantics: content is
// staged inside the target root and moved into place atomically, so a
// failure partway through leaves the root exactly as it was.
package installer

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/promptdeck/promptdeck/internal/catalog"
	"github.com/promptdeck/promptdeck/internal/reconcile"
	"github.com/promptdeck/promptdeck/internal/scope"
	"github.com/promptdeck/promptdeck/pkg/logger"
	"github.com/promptdeck/promptdeck/pkg/safeio"
)

// Outcome is the result classification of one operation.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailed  Outcome = "failed"
	OutcomeSkipped Outcome = "skipped"
)

// Result is the outcome of one installer call. A batch of N operations
// always yields N results; nothing is aggregated away.
type Result struct {
	Key      catalog.Key
	RootPath string
	Outcome  Outcome
	Message  string
}

// Installer executes operations against installation roots. The engine
// assumes it is the sole writer to a root during a batch; concurrent
// external writers are detected best-effort by the pre-write re-check,
// not prevented.
type Installer struct {
	// Ignore holds the doublestar patterns scoping fingerprint walks;
	// it must match the patterns the catalog was built with.
	Ignore []string
}

// Install writes asset a into root. Installing an asset that is already
// present and identical is a success no-op.
func (inst *Installer) Install(a *catalog.Asset, root *scope.Root) Result {
	key := a.Key()
	res := Result{Key: key, RootPath: root.Path}

	// Re-read the root immediately before writing. This closes the
	// staleness window between the caller's discovery pass and now.
	fresh := scope.ReadRoot(root.Path, root.Scope, inst.Ignore)
	if failure := detectConcurrentChange(key, root, fresh); failure != nil {
		return failed(res, failure)
	}

	status, err := reconcile.Reconcile(a, fresh)
	if err != nil {
		return failed(res, classify(a.SourcePath, err))
	}
	if status == reconcile.InstalledSame {
		res.Outcome = OutcomeSuccess
		res.Message = "already installed, no change"
		return res
	}

	if err := inst.installInto(a, fresh); err != nil {
		return failed(res, classify(root.Path, err))
	}

	logger.Info("installed asset",
		logger.String("asset", key.String()),
		logger.String("root", root.Path))
	res.Outcome = OutcomeSuccess
	res.Message = fmt.Sprintf("installed %s into %s", key, root.Path)
	return res
}

// Uninstall removes the named asset from root. Removing an asset that is
// not present is a success no-op.
func (inst *Installer) Uninstall(category catalog.Category, name string, root *scope.Root) Result {
	key := catalog.Key{Category: category, Name: name}
	res := Result{Key: key, RootPath: root.Path}

	fresh := scope.ReadRoot(root.Path, root.Scope, inst.Ignore)
	if failure := detectConcurrentChange(key, root, fresh); failure != nil {
		return failed(res, failure)
	}

	entry, ok := fresh.Installed(key)
	if !ok {
		res.Outcome = OutcomeSuccess
		res.Message = "not installed, nothing to remove"
		return res
	}

	if err := inst.removeFrom(key, entry, fresh); err != nil {
		return failed(res, classify(root.Path, err))
	}

	logger.Info("uninstalled asset",
		logger.String("asset", key.String()),
		logger.String("root", root.Path))
	res.Outcome = OutcomeSuccess
	res.Message = fmt.Sprintf("removed %s from %s", key, root.Path)
	return res
}

// Update replaces whatever occupies the asset's slot with the catalog
// version. It is uninstall-then-install reported as one operation.
func (inst *Installer) Update(a *catalog.Asset, root *scope.Root) Result {
	key := a.Key()
	res := Result{Key: key, RootPath: root.Path}

	fresh := scope.ReadRoot(root.Path, root.Scope, inst.Ignore)
	if failure := detectConcurrentChange(key, root, fresh); failure != nil {
		return failed(res, failure)
	}

	if entry, ok := fresh.Installed(key); ok {
		if err := inst.removeFrom(key, entry, fresh); err != nil {
			return failed(res, classify(root.Path, err))
		}
		fresh = scope.ReadRoot(root.Path, root.Scope, inst.Ignore)
	}
	if err := inst.installInto(a, fresh); err != nil {
		return failed(res, classify(root.Path, err))
	}

	res.Outcome = OutcomeSuccess
	res.Message = fmt.Sprintf("updated %s in %s", key, root.Path)
	return res
}

// detectConcurrentChange compares the slot the caller saw at discovery
// time against the slot as it is now. A mismatch means something else
// wrote to the root since the caller decided to act.
func detectConcurrentChange(key catalog.Key, stale, fresh *scope.Root) *OperationFailure {
	before, hadBefore := stale.Installed(key)
	now, hasNow := fresh.Installed(key)
	if hadBefore != hasNow || (hadBefore && before.Fingerprint != now.Fingerprint) {
		return &OperationFailure{
			Kind: KindConcurrentModification,
			Path: filepath.Join(fresh.Path, key.Category.Dir(), key.Category.FileName(key.Name)),
			Err:  fmt.Errorf("slot %s changed since it was last inspected", key),
		}
	}
	return nil
}

// installInto stages the asset's content (and, for hooks, the merged
// settings document) inside the root, then moves everything into place:
// content first, settings last, so a crash mid-operation never leaves a
// settings reference to content that failed to land.
func (inst *Installer) installInto(a *catalog.Asset, root *scope.Root) error {
	key := a.Key()
	categoryDir := filepath.Join(root.Path, key.Category.Dir())
	if err := os.MkdirAll(categoryDir, 0o755); err != nil {
		return err
	}

	// Staging lives inside the root so the final renames stay on one
	// filesystem and remain atomic.
	staging, err := os.MkdirTemp(root.Path, ".staging-")
	if err != nil {
		return err
	}
	defer func() {
		if rmErr := os.RemoveAll(staging); rmErr != nil {
			logger.Warn("failed to clean staging directory",
				logger.String("path", staging), logger.Err(rmErr))
		}
	}()

	stagedContent := filepath.Join(staging, key.Category.FileName(key.Name))
	if err := stageContent(a, stagedContent); err != nil {
		return err
	}

	var stagedSettings string
	settingsPath := filepath.Join(root.Path, SettingsFileName)
	if key.Category == catalog.CategoryHook {
		current, err := readSettings(settingsPath)
		if err != nil {
			return err
		}
		registration, err := buildHookRegistration(a)
		if err != nil {
			return classify(settingsPath, err)
		}
		merged, err := mergeHookEntry(current, registration, settingsPath)
		if err != nil {
			return err
		}
		stagedSettings = filepath.Join(staging, SettingsFileName)
		if err := os.WriteFile(stagedSettings, merged, 0o644); err != nil {
			return err
		}
	}

	// All writes succeeded; move into place. Content first.
	target := filepath.Join(categoryDir, key.Category.FileName(key.Name))
	displaced, err := moveIntoPlace(stagedContent, target, staging)
	if err != nil {
		return err
	}
	if stagedSettings != "" {
		if err := os.Rename(stagedSettings, settingsPath); err != nil {
			// Roll the content move back so no partial state is visible.
			rollback(target, displaced)
			return err
		}
	}
	return nil
}

// removeFrom drops the asset's slot. For hooks the settings reference is
// removed first, so a crash between the two steps leaves an orphaned
// payload rather than a dangling registration.
func (inst *Installer) removeFrom(key catalog.Key, entry scope.Entry, root *scope.Root) error {
	if key.Category == catalog.CategoryHook {
		settingsPath := filepath.Join(root.Path, SettingsFileName)
		current, err := readSettings(settingsPath)
		if err != nil {
			return err
		}
		rewritten, changed, err := removeHookEntry(current, key.Name, settingsPath)
		if err != nil {
			return err
		}
		if changed {
			if err := safeio.WriteFileAtomic(settingsPath, rewritten, 0o644); err != nil {
				return err
			}
		}
	}

	// Rename into a staging location first so the removal is atomic
	// from the root's point of view, then delete.
	staging, err := os.MkdirTemp(root.Path, ".staging-")
	if err != nil {
		return err
	}
	defer func() {
		_ = os.RemoveAll(staging)
	}()

	doomed := filepath.Join(staging, filepath.Base(entry.Location))
	if err := os.Rename(entry.Location, doomed); err != nil {
		return err
	}
	return nil
}

// stageContent copies the asset's canonical content into the staging area.
func stageContent(a *catalog.Asset, dst string) error {
	if a.Category.IsDirectory() {
		return safeio.CopyDir(a.SourcePath, dst)
	}
	data, err := os.ReadFile(a.SourcePath) // #nosec G304 -- source paths come from the catalog
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0o644)
}

// moveIntoPlace renames staged content to target, parking any existing
// occupant inside the staging directory. It returns the parked path so
// a later failure can roll the move back.
func moveIntoPlace(staged, target, staging string) (string, error) {
	displaced := ""
	if _, err := os.Lstat(target); err == nil {
		displaced = filepath.Join(staging, ".displaced-"+filepath.Base(target))
		if err := os.Rename(target, displaced); err != nil {
			return "", err
		}
	}
	if err := os.Rename(staged, target); err != nil {
		rollback(target, displaced)
		return "", err
	}
	return displaced, nil
}

// rollback undoes a content move by restoring the displaced occupant.
func rollback(target, displaced string) {
	_ = os.RemoveAll(target)
	if displaced != "" {
		if err := os.Rename(displaced, target); err != nil {
			logger.Error("failed to restore displaced content",
				logger.String("path", target), logger.Err(err))
		}
	}
}

// readSettings reads the root's settings document; a missing document is
// an empty starting point, any other error is surfaced.
func readSettings(path string) ([]byte, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is <root>/settings.json
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}

func failed(res Result, failure *OperationFailure) Result {
	res.Outcome = OutcomeFailed
	res.Message = failure.Error()
	logger.Error("operation failed",
		logger.String("asset", res.Key.String()),
		logger.String("root", res.RootPath),
		logger.Err(failure))
	return res
}
