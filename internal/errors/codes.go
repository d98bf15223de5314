// Package errors provides structured error handling for guslee.
//
// Error codes follow the pattern ERR_XXX_DESCRIPTION where:
//   - 1XX: Configuration errors
//   - 2XX: Content and IO errors
//   - 4XX: Query and lookup errors
//   - 5XX: Index and internal errors
package errors

// Category defines error categories for classification.
type Category string

const (
	// CategoryConfig indicates configuration-related errors.
	CategoryConfig Category = "CONFIG"
	// CategoryContent indicates content ingestion and file I/O errors.
	CategoryContent Category = "CONTENT"
	// CategoryQuery indicates query and lookup errors.
	CategoryQuery Category = "QUERY"
	// CategoryIndex indicates index backend errors.
	CategoryIndex Category = "INDEX"
)

// Severity defines error severity levels.
type Severity string

const (
	// SeverityFatal indicates unrecoverable error, the process must not start.
	SeverityFatal Severity = "FATAL"
	// SeverityError indicates the operation failed but serving can continue.
	SeverityError Severity = "ERROR"
	// SeverityWarning indicates degraded operation, continuing.
	SeverityWarning Severity = "WARNING"
)

// Error codes organized by category.
const (
	// Config errors (100-199)
	ErrCodeConfigInvalid = "ERR_101_CONFIG_INVALID"

	// Content errors (200-299)
	ErrCodeContentRoot = "ERR_201_CONTENT_ROOT"
	ErrCodeFileSkipped = "ERR_202_FILE_SKIPPED"
	ErrCodeFrontMatter = "ERR_203_FRONT_MATTER"

	// Query errors (400-499)
	ErrCodeNotFound    = "ERR_401_NOT_FOUND"
	ErrCodeParse       = "ERR_402_PARSE"
	ErrCodeQueryFailed = "ERR_403_QUERY_FAILED"

	// Index errors (500-599)
	ErrCodeIndexUnavailable = "ERR_501_INDEX_UNAVAILABLE"
	ErrCodeInternal         = "ERR_502_INTERNAL"
)

// categoryFromCode derives the category from the code's number range.
func categoryFromCode(code string) Category {
	switch {
	case len(code) > 4 && code[4] == '1':
		return CategoryConfig
	case len(code) > 4 && code[4] == '2':
		return CategoryContent
	case len(code) > 4 && code[4] == '4':
		return CategoryQuery
	default:
		return CategoryIndex
	}
}

// severityFromCode derives the severity from the code.
// Startup-time conditions (bad config, unreadable content root) are fatal;
// everything on the query path degrades without crashing the process.
func severityFromCode(code string) Severity {
	switch code {
	case ErrCodeConfigInvalid, ErrCodeContentRoot:
		return SeverityFatal
	case ErrCodeFileSkipped, ErrCodeFrontMatter, ErrCodeQueryFailed:
		return SeverityWarning
	default:
		return SeverityError
	}
}
