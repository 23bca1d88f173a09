// Package errors provides custom error types for the orderrate pipeline.
// These errors enable programmatic error checking (missing input files vs.
// malformed data vs. stage failures) and carry enough context to identify
// which file pair and stage produced a failure.
package errors

import (
	"errors"
	"fmt"
	"io/fs"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors for the orderrate pipeline
var (
	// ErrNotFound indicates that a required input file was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")
)

// IOError represents a file I/O failure. A missing lookup or source file
// surfaces as an IOError whose cause is fs.ErrNotExist, which makes it
// match ErrNotFound via errors.Is.
type IOError struct {
	Operation string // "read", "write", "create", "open"
	Path      string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Operation, e.Path, e.Err)
}

// Unwrap returns the underlying error
func (e *IOError) Unwrap() error {
	return e.Err
}

// Is reports whether this error matches the target sentinel
func (e *IOError) Is(target error) bool {
	if target == ErrNotFound {
		return errors.Is(e.Err, fs.ErrNotExist)
	}
	return false
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	return &IOError{
		Operation: operation,
		Path:      path,
		Err:       err,
	}
}

// ParseError represents a failure to parse input data
type ParseError struct {
	Format  string // "tsv", "xlsx", "csv"
	File    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("failed to parse %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("failed to parse %s: %s", e.Format, e.Message)
}

// Unwrap returns the underlying error
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError
func NewParseError(format, file, message string, err error) *ParseError {
	return &ParseError{
		Format:  format,
		File:    file,
		Message: message,
		Err:     err,
	}
}

// PipelineError represents a failure of one stage of a file-pair run.
// Stage names the pipeline step ("extract", "lookup", "match", "report"),
// Pair identifies the run it belongs to.
type PipelineError struct {
	Stage string
	Pair  string
	Err   error
}

// Error implements the error interface
func (e *PipelineError) Error() string {
	return fmt.Sprintf("pipeline stage %s failed for %s: %v", e.Stage, e.Pair, e.Err)
}

// Unwrap returns the underlying error
func (e *PipelineError) Unwrap() error {
	return e.Err
}

// NewPipelineError creates a new PipelineError
func NewPipelineError(stage, pair string, err error) *PipelineError {
	return &PipelineError{
		Stage: stage,
		Pair:  pair,
		Err:   err,
	}
}

// IsNotFound checks if an error indicates a missing input file
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// WrapIO wraps an error with I/O context.
// Returns nil if err is nil.
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapParse wraps an error with parse context.
// Returns nil if err is nil.
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, file, err.Error(), err)
}

// WrapPipeline wraps an error with pipeline stage context.
// Returns nil if err is nil.
func WrapPipeline(stage, pair string, err error) error {
	if err == nil {
		return nil
	}
	return NewPipelineError(stage, pair, err)
}
