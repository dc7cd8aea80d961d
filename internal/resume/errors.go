// Package resume orchestrates resume generation: validation, optional text
// enrichment, layout and the atomic write of the finished document.
package resume

import (
	"errors"
	"fmt"

	goerrors "github.com/go-errors/errors"
	"github.com/jonathan/resume-builder/internal/profile"
	"github.com/jonathan/resume-builder/internal/rendering"
)

// Step names the stage of generation that failed.
type Step string

// Generation steps
const (
	StepValidate Step = "validate"
	StepTemplate Step = "template"
	StepEnrich   Step = "enrich"
	StepLayout   Step = "layout"
	StepWrite    Step = "write"
)

// GenerationFailed reports a failed generation. Cause is the underlying error;
// the stack is captured where the failure was wrapped.
type GenerationFailed struct {
	ProfileName string
	Step        Step
	Cause       error
	stack       []byte
}

func newGenerationFailed(name string, step Step, cause error) *GenerationFailed {
	var stack []byte
	var stackErr *goerrors.Error
	if errors.As(cause, &stackErr) {
		stack = stackErr.Stack()
	} else if cause != nil {
		stack = goerrors.Wrap(cause, 2).Stack()
	} else {
		stack = goerrors.New(string(step)).Stack()
	}
	return &GenerationFailed{ProfileName: name, Step: step, Cause: cause, stack: stack}
}

func (e *GenerationFailed) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("generation failed for %s: %s: %v", e.ProfileName, e.Step, e.Cause)
	}
	return fmt.Sprintf("generation failed for %s: %s", e.ProfileName, e.Step)
}

func (e *GenerationFailed) Unwrap() error {
	return e.Cause
}

// StackTrace returns the stack captured when the failure was created.
func (e *GenerationFailed) StackTrace() []byte {
	return e.stack
}

// UserMessage describes the failure without internal detail.
func (e *GenerationFailed) UserMessage() string {
	name := e.ProfileName
	if name == "" {
		name = "this profile"
	}

	var verrs profile.ValidationErrors
	var terr *rendering.TemplateError
	switch {
	case errors.As(e.Cause, &verrs):
		return fmt.Sprintf("The resume for %s could not be generated: %d field(s) need attention.", name, len(verrs))
	case errors.As(e.Cause, &terr):
		return fmt.Sprintf("The resume for %s could not be generated: %s.", name, terr.Reason())
	case e.Step == StepWrite:
		return fmt.Sprintf("The resume for %s was generated but could not be saved. Check that the output folder is writable.", name)
	}
	return fmt.Sprintf("The resume for %s could not be generated. Please try again.", name)
}
