package installer

import (
	"errors"
	"fmt"
	"os"
	"syscall"
)

// FailureKind classifies why an operation stopped.
type FailureKind string

const (
	KindPermissionDenied       FailureKind = "permission-denied"
	KindDiskFull               FailureKind = "disk-full"
	KindConcurrentModification FailureKind = "concurrent-modification"
	KindSettingsCorrupt        FailureKind = "settings-corrupt"
	KindIO                     FailureKind = "io-error"
)

// OperationFailure is a failed install, uninstall, or update step. It
// carries enough to act on: what was being written, where, and why it
// stopped.
type OperationFailure struct {
	Kind FailureKind
	Path string
	Err  error
}

func (f *OperationFailure) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("%s at %s: %v", f.Kind, f.Path, f.Err)
	}
	return fmt.Sprintf("%s at %s", f.Kind, f.Path)
}

func (f *OperationFailure) Unwrap() error {
	return f.Err
}

// classify maps a filesystem error onto the failure taxonomy.
func classify(path string, err error) *OperationFailure {
	var failure *OperationFailure
	if errors.As(err, &failure) {
		return failure
	}
	kind := KindIO
	switch {
	case os.IsPermission(err):
		kind = KindPermissionDenied
	case errors.Is(err, syscall.ENOSPC):
		kind = KindDiskFull
	}
	return &OperationFailure{Kind: kind, Path: path, Err: err}
}
