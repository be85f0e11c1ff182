// Package exitcode provides standardized exit codes for promptdeck
package exitcode

// Exit codes for the promptdeck CLI
const (
	Success         = 0
	GeneralError    = 1
	ConfigError     = 2
	CatalogError    = 3
	FileSystemError = 4
	PermissionError = 5
	PartialFailure  = 6
)

// String returns a human-readable description of the exit code
func String(code int) string {
	switch code {
	case Success:
		return "Success"
	case GeneralError:
		return "General error"
	case ConfigError:
		return "Configuration error"
	case CatalogError:
		return "Catalog error"
	case FileSystemError:
		return "File system error"
	case PermissionError:
		return "Permission error"
	case PartialFailure:
		return "Some operations failed"
	default:
		return "Unknown error"
	}
}
