/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package types

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is checks against the typed errors below.
var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("task not found")
	ErrStorageRead  = errors.New("storage read failed")
	ErrStorageWrite = errors.New("storage write failed")
)

// ValidationError reports rejected user input, such as an empty description
// or a priority outside 1-3. It is an expected outcome, never fatal.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// NotFoundError reports an operation that targeted an id no task has.
type NotFoundError struct {
	ID int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("task with ID %d not found", e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// StorageError wraps an I/O or encoding failure at the persistence boundary.
// Op is "read" or "write".
type StorageError struct {
	Op   string
	Path string
	Err  error
}

const (
	StorageOpRead  = "read"
	StorageOpWrite = "write"
)

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func (e *StorageError) Is(target error) bool {
	switch e.Op {
	case StorageOpRead:
		return target == ErrStorageRead
	case StorageOpWrite:
		return target == ErrStorageWrite
	}
	return false
}

// NewStorageReadError wraps err as a read failure on path.
func NewStorageReadError(path string, err error) *StorageError {
	return &StorageError{Op: StorageOpRead, Path: path, Err: err}
}

// NewStorageWriteError wraps err as a write failure on path.
func NewStorageWriteError(path string, err error) *StorageError {
	return &StorageError{Op: StorageOpWrite, Path: path, Err: err}
}
