package errors

import (
	"fmt"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrTypeFilenameFormat ErrorType = "FILENAME_FORMAT"
	ErrTypeStructure      ErrorType = "STRUCTURE"
	ErrTypeRowParse       ErrorType = "ROW_PARSE"
	ErrTypeSubjectMapping ErrorType = "SUBJECT_MAPPING"
	ErrTypeEncoding       ErrorType = "ENCODING"
	ErrTypeStorage        ErrorType = "STORAGE"
	ErrTypeConfig         ErrorType = "CONFIG"
)

// AppError represents an application-specific error
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to work with AppError
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// Helper functions for common error types

// NewFilenameFormatError reports a filename that does not match the corpus
// naming convention. The offending filename travels in the error context.
func NewFilenameFormatError(filename string) *AppError {
	return NewAppError(ErrTypeFilenameFormat, "filename does not match expected pattern", nil).
		WithContext("filename", filename)
}

// NewStructuralError reports a document missing an expected section.
func NewStructuralError(message string) *AppError {
	return NewAppError(ErrTypeStructure, message, nil)
}

// NewRowParseError reports a single table row that matched no known layout.
func NewRowParseError(message, rawRow string) *AppError {
	return NewAppError(ErrTypeRowParse, message, nil).WithContext("row", rawRow)
}

// NewEncodingError creates an encoding-related error
func NewEncodingError(message string, cause error) *AppError {
	return NewAppError(ErrTypeEncoding, message, cause)
}

// NewStorageError creates a storage-related error
func NewStorageError(message string, cause error) *AppError {
	return NewAppError(ErrTypeStorage, message, cause)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}

// IsType checks whether err is an AppError of the given type.
func IsType(err error, errType ErrorType) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Type == errType
	}
	return false
}
