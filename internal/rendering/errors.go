// Package rendering lays out resume profiles as Word documents.
package rendering

import (
	"fmt"
	"strings"
)

// TemplateError reports a layout template that is missing or unknown.
type TemplateError struct {
	// Name is the requested template, empty when none was set.
	Name      string
	Available []string
}

func (e *TemplateError) Error() string {
	return "template error: " + e.Reason()
}

// Reason is the error text without the package prefix, suitable for users.
func (e *TemplateError) Reason() string {
	if e.Name == "" {
		return "template is not set"
	}
	if len(e.Available) == 0 {
		return fmt.Sprintf("unknown template %q", e.Name)
	}
	return fmt.Sprintf("unknown template %q (available: %s)", e.Name, strings.Join(e.Available, ", "))
}

// RenderError reports a profile that could not be laid out or packaged.
// Section names the part of the document being built.
type RenderError struct {
	Section string
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	msg := e.Message
	if e.Section != "" {
		msg = e.Section + ": " + msg
	}
	if e.Cause != nil {
		return fmt.Sprintf("render error: %s: %v", msg, e.Cause)
	}
	return "render error: " + msg
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}
