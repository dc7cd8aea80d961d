// Package mos loads the MOS-to-civilian reference dataset and answers lookups and searches against it.
package mos

import "fmt"

// ReferenceDatasetMissingError means the dataset file does not exist or cannot be opened.
type ReferenceDatasetMissingError struct {
	Path  string
	Cause error
}

func (e *ReferenceDatasetMissingError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("reference dataset missing: %s: %v", e.Path, e.Cause)
	}
	return fmt.Sprintf("reference dataset missing: %s", e.Path)
}

func (e *ReferenceDatasetMissingError) Unwrap() error {
	return e.Cause
}

// ReferenceDatasetMalformedError means the dataset was readable but its
// structure could not be interpreted.
type ReferenceDatasetMalformedError struct {
	Path    string
	Message string
	Cause   error
}

func (e *ReferenceDatasetMalformedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("reference dataset malformed: %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("reference dataset malformed: %s: %s", e.Path, e.Message)
}

func (e *ReferenceDatasetMalformedError) Unwrap() error {
	return e.Cause
}

// NotFoundError is returned by Require when no entry matches a code.
type NotFoundError struct {
	Code string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("MOS code not found: %s", e.Code)
}
