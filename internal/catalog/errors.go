package catalog

import "fmt"

// ExtractionReason classifies why metadata extraction failed.
type ExtractionReason string

const (
	ReasonMissingName  ExtractionReason = "missing-name"
	ReasonParseFailure ExtractionReason = "parse-failure"
	ReasonUnreadable   ExtractionReason = "unreadable"
)

// ExtractionError reports a single asset whose metadata could not be
// extracted. It is recoverable: the catalog builder records it as a
// warning and continues with the remaining assets.
type ExtractionError struct {
	Path   string
	Reason ExtractionReason
	Detail string
	Err    error
}

func (e *ExtractionError) Error() string {
	msg := fmt.Sprintf("extracting %s: %s", e.Path, e.Reason)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// DuplicateError is fatal to a catalog build: two assets claim the same
// (category, name) identity. Picking one silently would make
// installation non-deterministic across runs, so neither is chosen.
type DuplicateError struct {
	Key        Key
	FirstPath  string
	SecondPath string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate asset %s: declared by both %s and %s",
		e.Key, e.FirstPath, e.SecondPath)
}
