// Package derrors provides custom error types for the mcfunction tooling.
// Errors only occur at the I/O edges (catalog, schema and configuration
// loading); completion itself reports failure as the absence of a result.
package derrors

import (
	"fmt"
)

// MCFunctionError is the base interface for all typed errors
type MCFunctionError interface {
	error
	// Code returns a unique error code for programmatic error handling
	Code() string
}

// baseError provides common functionality for all typed errors
type baseError struct {
	code    string
	message string
	cause   error
}

func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *baseError) Code() string {
	return e.code
}

func (e *baseError) Unwrap() error {
	return e.cause
}

// CatalogError represents errors while loading a command catalog
type CatalogError struct {
	baseError
	Source string
}

// NewCatalogError creates a new catalog error
func NewCatalogError(source string, message string, cause error) *CatalogError {
	return &CatalogError{
		baseError: baseError{
			code:    "CATALOG_ERROR",
			message: message,
			cause:   cause,
		},
		Source: source,
	}
}

// SchemaError represents errors while loading or resolving a schema reference
type SchemaError struct {
	baseError
	Reference string
}

// NewSchemaError creates a new schema error
func NewSchemaError(reference string, message string, cause error) *SchemaError {
	return &SchemaError{
		baseError: baseError{
			code:    "SCHEMA_ERROR",
			message: message,
			cause:   cause,
		},
		Reference: reference,
	}
}

// ConfigurationError represents errors in configuration files
type ConfigurationError struct {
	baseError
	Path string
}

// NewConfigurationError creates a new configuration error
func NewConfigurationError(path string, message string, cause error) *ConfigurationError {
	return &ConfigurationError{
		baseError: baseError{
			code:    "CONFIG_ERROR",
			message: message,
			cause:   cause,
		},
		Path: path,
	}
}

// ValidationError represents errors during validation
type ValidationError struct {
	baseError
	Field string
}

// NewValidationError creates a new validation error
func NewValidationError(field string, message string, cause error) *ValidationError {
	return &ValidationError{
		baseError: baseError{
			code:    "VALIDATION_ERROR",
			message: message,
			cause:   cause,
		},
		Field: field,
	}
}

// NotFoundError represents errors when a resource is not found
type NotFoundError struct {
	baseError
	Resource string
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource string, message string) *NotFoundError {
	return &NotFoundError{
		baseError: baseError{
			code:    "NOT_FOUND",
			message: message,
			cause:   nil,
		},
		Resource: resource,
	}
}

// AlreadyExistsError represents errors when a resource already exists
type AlreadyExistsError struct {
	baseError
	Resource string
}

// NewAlreadyExistsError creates a new already exists error
func NewAlreadyExistsError(resource string, message string) *AlreadyExistsError {
	return &AlreadyExistsError{
		baseError: baseError{
			code:    "ALREADY_EXISTS",
			message: message,
			cause:   nil,
		},
		Resource: resource,
	}
}
