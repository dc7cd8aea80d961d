package docx

import "fmt"

// PackageError is returned when a part cannot be written to the archive.
type PackageError struct {
	Part  string
	Cause error
}

func (e *PackageError) Error() string {
	return fmt.Sprintf("package error: %s: %v", e.Part, e.Cause)
}

func (e *PackageError) Unwrap() error {
	return e.Cause
}

// ReadError is returned when a .docx archive cannot be read.
type ReadError struct {
	Message string
	Cause   error
}

func (e *ReadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("read error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("read error: %s", e.Message)
}

func (e *ReadError) Unwrap() error {
	return e.Cause
}
