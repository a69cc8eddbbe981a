// Package pypage provides custom error types for scanner and document failures.
package pypage

import "fmt"

// TagError reports a scanner-internal contract violation: a line already
// matched by the opening-delimiter pattern failed the column lookup. It
// indicates a scanner defect, not bad input.
type TagError struct {
	Message string
	Line    int
}

func (e *TagError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("tag error at line %d: %s", e.Line, e.Message)
	}
	return fmt.Sprintf("tag error: %s", e.Message)
}

// NewTagError creates a new tag error with position information
func NewTagError(message string, line int) error {
	return &TagError{
		Message: message,
		Line:    line,
	}
}

// UnterminatedBlockError reports a block-open with no matching close.
// Only returned in strict mode; the default contract flushes the
// unterminated remainder as literal text instead.
type UnterminatedBlockError struct {
	Line int
}

func (e *UnterminatedBlockError) Error() string {
	return fmt.Sprintf("unterminated %s block opened at line %d", blockOpenTag, e.Line)
}

// NewUnterminatedBlockError creates a new unterminated block error
func NewUnterminatedBlockError(line int) error {
	return &UnterminatedBlockError{Line: line}
}

// DocumentError represents an error during document I/O operations
type DocumentError struct {
	Operation string
	Path      string
	Cause     error
}

func (e *DocumentError) Error() string {
	if e.Path != "" && e.Cause != nil {
		return fmt.Sprintf("document error during %s of '%s': %v", e.Operation, e.Path, e.Cause)
	} else if e.Path != "" {
		return fmt.Sprintf("document error during %s of '%s'", e.Operation, e.Path)
	} else if e.Cause != nil {
		return fmt.Sprintf("document error during %s: %v", e.Operation, e.Cause)
	}
	return fmt.Sprintf("document error during %s", e.Operation)
}

func (e *DocumentError) Unwrap() error {
	return e.Cause
}

// NewDocumentError creates a new document error
func NewDocumentError(operation, path string, cause error) error {
	return &DocumentError{
		Operation: operation,
		Path:      path,
		Cause:     cause,
	}
}

// IsTagError checks if an error is a tag error
func IsTagError(err error) bool {
	_, ok := err.(*TagError)
	return ok
}

// IsUnterminatedBlockError checks if an error is an unterminated block error
func IsUnterminatedBlockError(err error) bool {
	_, ok := err.(*UnterminatedBlockError)
	return ok
}

// IsDocumentError checks if an error is a document error
func IsDocumentError(err error) bool {
	_, ok := err.(*DocumentError)
	return ok
}
