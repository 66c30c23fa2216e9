// Package ingesterror defines the typed errors surfaced by the ingestion
// pipeline. Duplicate and incomplete extractions are outcomes, not errors,
// and have no type here.
package ingesterror

import (
	"errors"
	"fmt"
)

// InputError reports an unusable source file: missing, unreadable, or an
// unsupported format. Nothing has been persisted when it is returned.
type InputError struct {
	Path   string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("input error for %s: %s", e.Path, e.Reason)
}

// ExtractionError reports a failed call to the extraction service, transport
// and reply-decoding failures included.
type ExtractionError struct {
	Path string
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction failed for %s: %v", e.Path, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// ConversionError reports a failed document-to-image rendering step.
type ConversionError struct {
	Path string
	Err  error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("conversion failed for %s: %v", e.Path, e.Err)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

// PersistenceError reports a failed archive copy or ledger append.
type PersistenceError struct {
	Op   string
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s failed for %s: %v", e.Op, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// ValidationError reports that a ledger tree or partition could not be
// examined at all (as opposed to validation findings, which are data).
type ValidationError struct {
	Partition string
	Reason    string
	Err       error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.Partition, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// IsInput reports whether err is or wraps an InputError.
func IsInput(err error) bool {
	var target *InputError
	return errors.As(err, &target)
}

// IsExtraction reports whether err is or wraps an ExtractionError.
func IsExtraction(err error) bool {
	var target *ExtractionError
	return errors.As(err, &target)
}

// IsConversion reports whether err is or wraps a ConversionError.
func IsConversion(err error) bool {
	var target *ConversionError
	return errors.As(err, &target)
}

// IsPersistence reports whether err is or wraps a PersistenceError.
func IsPersistence(err error) bool {
	var target *PersistenceError
	return errors.As(err, &target)
}
