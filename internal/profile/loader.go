package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/types"
)

// DecodeDocument checks data against the profile schema and decodes it.
// Shape problems come back as ValidationErrors, malformed JSON as a LoadError.
func DecodeDocument(data []byte) (*Document, error) {
	if !json.Valid(data) {
		return nil, &LoadError{Message: "profile is not valid JSON"}
	}

	if err := schemas.ValidateProfile(data); err != nil {
		var schemaErr *schemas.ValidationError
		if errors.As(err, &schemaErr) {
			return nil, fromSchemaErrors(schemaErr)
		}
		return nil, &LoadError{Message: "failed to check profile schema", Cause: err}
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &LoadError{Message: "failed to decode profile JSON", Cause: err}
	}
	return &doc, nil
}

// Parse decodes and builds a profile from JSON bytes.
func (b *Builder) Parse(data []byte) (*types.ResumeProfile, error) {
	doc, err := DecodeDocument(data)
	if err != nil {
		return nil, err
	}
	return b.Build(doc)
}

// LoadFile reads a profile JSON file and builds it.
func (b *Builder) LoadFile(path string) (*types.ResumeProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Message: fmt.Sprintf("failed to read profile file %s", path), Cause: err}
	}
	return b.Parse(data)
}

func fromSchemaErrors(se *schemas.ValidationError) ValidationErrors {
	out := make(ValidationErrors, 0, len(se.Errors))
	for _, e := range se.Errors {
		code := CodeInvalidValue
		if e.Type == "required" {
			code = CodeRequiredFieldMissing
		}
		out = append(out, FieldError{Field: e.Field, Code: code, Message: e.Message})
	}
	return out
}
