// Package versioning compares declared asset versions. Versions are
// expected to be semantic; anything else is reported as non-comparable
// so callers can fall back to content comparison instead of guessing
// a lexical order.
package versioning

import (
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Comparison is the ordering between two version strings.
type Comparison int

const (
	ComparisonUnknown Comparison = iota
	ComparisonLess
	ComparisonEqual
	ComparisonGreater
)

// String returns the string representation of the comparison.
func (c Comparison) String() string {
	switch c {
	case ComparisonLess:
		return "less"
	case ComparisonEqual:
		return "equal"
	case ComparisonGreater:
		return "greater"
	default:
		return "unknown"
	}
}

// IsComparable reports whether s parses as a semantic version
// (an optional leading "v" is tolerated).
func IsComparable(s string) bool {
	_, err := semver.NewVersion(strings.TrimSpace(s))
	return err == nil
}

// Compare orders version a against version b. Either side failing to
// parse as semver yields ComparisonUnknown; no lexical fallback is
// attempted.
func Compare(a, b string) Comparison {
	av, err := semver.NewVersion(strings.TrimSpace(a))
	if err != nil {
		return ComparisonUnknown
	}
	bv, err := semver.NewVersion(strings.TrimSpace(b))
	if err != nil {
		return ComparisonUnknown
	}
	switch av.Compare(bv) {
	case -1:
		return ComparisonLess
	case 1:
		return ComparisonGreater
	default:
		return ComparisonEqual
	}
}
