// Package reconcile computes the relationship between catalog (desired)
// and installed (actual) state for one asset/root pair, and renders
// human-readable diffs when the two have diverged.
package reconcile

import (
	"github.com/promptdeck/promptdeck/internal/catalog"
	"github.com/promptdeck/promptdeck/internal/scope"
	"github.com/promptdeck/promptdeck/pkg/versioning"
)

// Status is the derived installation state of an asset in one root.
// It is a pure function of the asset's fingerprint and version against
// the root's index; it must never depend on installer history.
type Status int

const (
	NotInstalled Status = iota
	InstalledSame
	InstalledDifferent
	InstalledNewer
	InstalledOlder
)

// String returns the string representation of the status.
func (s Status) String() string {
	switch s {
	case NotInstalled:
		return "not-installed"
	case InstalledSame:
		return "installed"
	case InstalledDifferent:
		return "modified"
	case InstalledNewer:
		return "newer"
	case InstalledOlder:
		return "outdated"
	default:
		return "unknown"
	}
}

// Reconcile computes the status of asset a in root r.
//
// Decision order: absent slot, identical fingerprint, then version
// comparison. Version ordering is only trusted when both sides declare
// a comparable version; otherwise the result degrades to
// InstalledDifferent rather than guessing a lexical order.
func Reconcile(a *catalog.Asset, r *scope.Root) (Status, error) {
	entry, ok := r.Installed(a.Key())
	if !ok {
		return NotInstalled, nil
	}

	fp, err := a.Fingerprint()
	if err != nil {
		return NotInstalled, err
	}
	if entry.Fingerprint == fp {
		return InstalledSame, nil
	}

	if entry.Version != "" && a.Version != "" {
		switch versioning.Compare(entry.Version, a.Version) {
		case versioning.ComparisonLess:
			return InstalledOlder, nil
		case versioning.ComparisonGreater:
			return InstalledNewer, nil
		}
	}
	return InstalledDifferent, nil
}
