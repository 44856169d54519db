package gen

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure cases.
var (
	// ErrInvalidConfig indicates a configuration that failed validation.
	ErrInvalidConfig = errors.New("netforge: invalid configuration")
	// ErrSynthesisFailed indicates a read-mode synthesis failure. A validated
	// config should never trigger it; seeing one means the validator and the
	// synthesizer disagree about what a well-formed read mode is.
	ErrSynthesisFailed = errors.New("netforge: read-mode synthesis failed")
	// ErrGenerationFailed indicates an archetype generation failure.
	ErrGenerationFailed = errors.New("netforge: generation failed")
	// ErrEmitFailed indicates an emission (filesystem) failure.
	ErrEmitFailed = errors.New("netforge: emit failed")
)

// ValidationError reports a config field that violated a validation rule.
type ValidationError struct {
	Field   string // config field, e.g. "routes[2].handler"
	Value   any    // offending value, if meaningful
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("netforge: invalid config field %q (value: %v): %s", e.Field, e.Value, e.Message)
	}
	return fmt.Sprintf("netforge: invalid config field %q: %s", e.Field, e.Message)
}

// Is reports whether the target matches the sentinel error for ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// SynthesisError reports a read mode the synthesizer could not handle.
type SynthesisError struct {
	Mode    string
	Message string
}

// Error implements the error interface.
func (e *SynthesisError) Error() string {
	var b strings.Builder
	b.WriteString("netforge: synthesis error")
	if e.Mode != "" {
		b.WriteString(" for read mode ")
		b.WriteString(e.Mode)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	return b.String()
}

// Is reports whether the target matches the sentinel error for SynthesisError.
func (e *SynthesisError) Is(target error) bool {
	return target == ErrSynthesisFailed
}

// GenerationError reports a failure while composing an archetype's file set.
type GenerationError struct {
	Archetype string // "tcp-echo", "tcp-worker", "http"
	File      string // relative output path, if the failure is file-scoped
	Message   string
	Cause     error
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	var b strings.Builder
	b.WriteString("netforge: generation error")
	if e.Archetype != "" {
		b.WriteString(" in archetype ")
		b.WriteString(e.Archetype)
	}
	if e.File != "" {
		b.WriteString(" (file: ")
		b.WriteString(e.File)
		b.WriteString(")")
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for GenerationError.
func (e *GenerationError) Is(target error) bool {
	return target == ErrGenerationFailed
}

// EmitError reports an emission failure with the path that caused it.
type EmitError struct {
	Path  string
	Cause error
}

// Error implements the error interface.
func (e *EmitError) Error() string {
	return fmt.Sprintf("netforge: emit error for %q: %v", e.Path, e.Cause)
}

// Unwrap returns the underlying error.
func (e *EmitError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for EmitError.
func (e *EmitError) Is(target error) bool {
	return target == ErrEmitFailed
}

// IsValidationError reports whether the error is a ValidationError.
func IsValidationError(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}

// IsSynthesisError reports whether the error is a SynthesisError.
func IsSynthesisError(err error) bool {
	var serr *SynthesisError
	return errors.As(err, &serr)
}

// IsGenerationError reports whether the error is a GenerationError.
func IsGenerationError(err error) bool {
	var gerr *GenerationError
	return errors.As(err, &gerr)
}

// IsEmitError reports whether the error is an EmitError.
func IsEmitError(err error) bool {
	var eerr *EmitError
	return errors.As(err, &eerr)
}
