package utils

import (
	"errors"
	"fmt"
)

var (
	ErrStorage       = errors.New("storage error")
	ErrConfiguration = errors.New("configuration error")
)

// ValidationError is a client-side fault detected before anything reaches storage.
type ValidationError struct {
	Kind    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Kind + ": " + e.Message
}

var (
	ErrMissingField = &ValidationError{
		Kind:    "missing_field",
		Message: "All fields (name, email, message) are required.",
	}
	ErrInvalidEmail = &ValidationError{
		Kind:    "invalid_email",
		Message: "Please provide a valid email address.",
	}
	ErrBlankField = &ValidationError{
		Kind:    "blank_field",
		Message: "Fields must not be blank or whitespace only.",
	}
)

// StorageError wraps a read or write failure of a storage backend.
type StorageError struct {
	Op  string
	Err error
}

func NewStorageError(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func (e *StorageError) Is(target error) bool { return target == ErrStorage }

// ConfigurationError reports a required setting that is absent.
type ConfigurationError struct {
	Key string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s environment variable is not set", e.Key)
}

func (e *ConfigurationError) Is(target error) bool { return target == ErrConfiguration }
