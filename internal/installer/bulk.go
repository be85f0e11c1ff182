package installer

import (
	"fmt"

	"github.com/promptdeck/promptdeck/internal/catalog"
	"github.com/promptdeck/promptdeck/internal/scope"
)

// Action is the kind of a planned operation.
type Action string

const (
	ActionInstall   Action = "install"
	ActionUninstall Action = "uninstall"
	ActionUpdate    Action = "update"
)

// PlannedOp is one operation queued for a batch. Install and update
// carry the Asset; uninstall carries only the Key.
type PlannedOp struct {
	Action Action
	Asset  *catalog.Asset
	Key    catalog.Key
	Root   *scope.Root
}

func (op PlannedOp) key() catalog.Key {
	if op.Asset != nil {
		return op.Asset.Key()
	}
	return op.Key
}

// Run executes each planned operation independently and returns one
// result per input, in input order. A failure is recorded and execution
// continues; nothing short of the process dying aborts the batch. Two
// operations targeting the same (category, name, root) slot would make
// the batch's outcome ambiguous, so only the first runs and the second
// is skipped with a message naming the conflict.
func (inst *Installer) Run(ops []PlannedOp) []Result {
	results := make([]Result, 0, len(ops))
	claimed := make(map[string]Action, len(ops))

	for _, op := range ops {
		key := op.key()
		slot := key.String() + "@" + op.Root.Path

		if prior, ok := claimed[slot]; ok {
			results = append(results, Result{
				Key:      key,
				RootPath: op.Root.Path,
				Outcome:  OutcomeSkipped,
				Message:  fmt.Sprintf("skipped: %s of %s already planned for this root", prior, key),
			})
			continue
		}
		claimed[slot] = op.Action

		switch op.Action {
		case ActionInstall:
			results = append(results, inst.Install(op.Asset, op.Root))
		case ActionUninstall:
			results = append(results, inst.Uninstall(key.Category, key.Name, op.Root))
		case ActionUpdate:
			results = append(results, inst.Update(op.Asset, op.Root))
		default:
			results = append(results, Result{
				Key:      key,
				RootPath: op.Root.Path,
				Outcome:  OutcomeFailed,
				Message:  fmt.Sprintf("unknown action %q", op.Action),
			})
		}
	}
	return results
}
