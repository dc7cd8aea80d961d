// Package schemas checks JSON documents against JSON Schema before they are
// decoded, so shape problems are reported per field.
package schemas

import (
	"fmt"
	"strings"
	"sync"

	rootschemas "github.com/jonathan/resume-builder/schemas"
	"github.com/xeipuuv/gojsonschema"
)

// ValidationError lists every schema violation found in one document.
type ValidationError struct {
	Schema string
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field.
// Type is the JSON Schema keyword that failed, e.g. "required" or "invalid_type".
type FieldError struct {
	Field   string
	Type    string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s document failed validation:\n", ve.Schema))
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// SchemaLoadError reports a schema that could not be compiled.
type SchemaLoadError struct {
	Schema string
	Cause  error
}

func (e *SchemaLoadError) Error() string {
	return fmt.Sprintf("failed to compile schema %s: %v", e.Schema, e.Cause)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

// Schema is a compiled JSON Schema. It is safe for concurrent use.
type Schema struct {
	name   string
	schema *gojsonschema.Schema
}

// Compile parses schema content. name is used in error messages.
func Compile(name, content string) (*Schema, error) {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(content))
	if err != nil {
		return nil, &SchemaLoadError{Schema: name, Cause: err}
	}
	return &Schema{name: name, schema: s}, nil
}

// Validate checks document. Violations are returned as *ValidationError;
// a document that is not JSON gives a plain error.
func (s *Schema) Validate(document []byte) error {
	result, err := s.schema.Validate(gojsonschema.NewBytesLoader(document))
	if err != nil {
		return fmt.Errorf("failed to read %s document: %w", s.name, err)
	}
	if result.Valid() {
		return nil
	}

	verr := &ValidationError{
		Schema: s.name,
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		verr.Errors = append(verr.Errors, FieldError{
			Field:   fieldName(desc),
			Type:    desc.Type(),
			Message: desc.Description(),
		})
	}
	return verr
}

var profileSchema = sync.OnceValues(func() (*Schema, error) {
	return Compile("profile", rootschemas.Profile)
})

// ValidateProfile checks a profile import document against the embedded
// profile schema, compiled on first use.
func ValidateProfile(document []byte) error {
	s, err := profileSchema()
	if err != nil {
		return err
	}
	return s.Validate(document)
}

// fieldName resolves the path of the offending field. Required-property
// errors are reported against the parent, so the missing property is appended.
func fieldName(desc gojsonschema.ResultError) string {
	field := desc.Field()
	if desc.Type() == "required" {
		if prop, ok := desc.Details()["property"].(string); ok && prop != "" {
			if field == "" || field == "(root)" {
				return prop
			}
			return field + "." + prop
		}
	}
	if field == "" {
		return "(root)"
	}
	return field
}
