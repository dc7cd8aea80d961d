// Package profile validates, normalizes, imports and exports resume profiles.
package profile

import (
	"fmt"
	"strings"
)

// ErrorCode identifies the kind of field-level validation failure.
type ErrorCode string

// Validation error codes.
const (
	CodeInvalidPhoneFormat   ErrorCode = "InvalidPhoneFormat"
	CodeInvalidDateFormat    ErrorCode = "InvalidDateFormat"
	CodeInvalidDateRange     ErrorCode = "InvalidDateRange"
	CodeInvalidLinkedInURL   ErrorCode = "InvalidLinkedInURL"
	CodeSummaryTooLong       ErrorCode = "SummaryTooLong"
	CodeRequiredFieldMissing ErrorCode = "RequiredFieldMissing"
	CodeInvalidEmail         ErrorCode = "InvalidEmail"
	CodeInvalidValue         ErrorCode = "InvalidValue"
)

// FieldError describes one invalid field. Field is a dotted path such as
// "work_history[1].end_date".
type FieldError struct {
	Field   string    `json:"field"`
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is the full list of problems found in one profile.
type ValidationErrors []FieldError

func (ve ValidationErrors) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve {
		sb.WriteString(fmt.Sprintf("  %d. %s [%s]: %s\n", i+1, err.Field, err.Code, err.Message))
	}
	return sb.String()
}

// Has reports whether any error carries the given code.
func (ve ValidationErrors) Has(code ErrorCode) bool {
	for _, e := range ve {
		if e.Code == code {
			return true
		}
	}
	return false
}

// ForField returns the errors recorded against one field path.
func (ve ValidationErrors) ForField(field string) []FieldError {
	var out []FieldError
	for _, e := range ve {
		if e.Field == field {
			out = append(out, e)
		}
	}
	return out
}

// LoadError represents an error during file I/O or JSON parsing
type LoadError struct {
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("load error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("load error: %s", e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// ExportError represents a failure serializing a profile
type ExportError struct {
	Message string
	Cause   error
}

func (e *ExportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("export error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("export error: %s", e.Message)
}

func (e *ExportError) Unwrap() error {
	return e.Cause
}
