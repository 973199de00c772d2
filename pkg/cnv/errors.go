package cnv

import (
	"errors"
	"fmt"
)

// Sentinel errors for the fatal failure kinds. Use errors.Is to tell them apart.
var (
	ErrStream         = errors.New("unusable header stream")
	ErrStructuralLine = errors.New("invalid header line")
)

// StreamError reports that the line source is absent or could not be read.
type StreamError struct {
	Err error
}

func (e *StreamError) Error() string {
	if e.Err == nil {
		return ErrStream.Error()
	}
	return fmt.Sprintf("%s: %v", ErrStream, e.Err)
}

func (e *StreamError) Unwrap() error { return e.Err }

// Is reports whether target is ErrStream.
func (e *StreamError) Is(target error) bool { return target == ErrStream }

// LineError reports a header line that breaks the structural contract.
type LineError struct {
	// Line is the 1-based line number in the source.
	Line int

	// Text is the raw line content.
	Text string

	// Reason describes what was wrong with the line.
	Reason string
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %s: %s (%q)", e.Line, ErrStructuralLine, e.Reason, e.Text)
}

// Is reports whether target is ErrStructuralLine.
func (e *LineError) Is(target error) bool { return target == ErrStructuralLine }

// FieldError is a parse failure of a recognized special field value.
// HeaderReader absorbs it; the field is left absent.
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("parsing %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }
