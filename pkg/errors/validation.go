package errors

import (
	"strings"
)

// MaxContentBytes bounds the size of a single note body
const MaxContentBytes = 1024 * 1024

// ValidationResult holds validation results
type ValidationResult struct {
	IsValid bool
	Errors  []*AppError
}

// AddError adds an error to the validation result
func (vr *ValidationResult) AddError(err *AppError) {
	vr.IsValid = false
	vr.Errors = append(vr.Errors, err)
}

// GetFirstError returns the first error or nil
func (vr *ValidationResult) GetFirstError() *AppError {
	if len(vr.Errors) > 0 {
		return vr.Errors[0]
	}
	return nil
}

// Summary lists the codes of every failure, comma separated
func (vr *ValidationResult) Summary() string {
	return joinCodes(vr.Errors)
}

// Validator provides validation utilities
type Validator struct{}

// NewValidator creates a new validator
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateNoteID validates that a note ID was supplied
func (v *Validator) ValidateNoteID(id string) *ValidationResult {
	result := &ValidationResult{IsValid: true}

	if strings.TrimSpace(id) == "" {
		result.AddError(New(ErrTypeValidation, "ID_EMPTY", "note ID cannot be empty").
			WithUserMessage("Note ID is required"))
	}

	return result
}

// ValidateNoteContent validates note content
func (v *Validator) ValidateNoteContent(content string) *ValidationResult {
	result := &ValidationResult{IsValid: true}

	if len(content) > MaxContentBytes {
		result.AddError(New(ErrTypeValidation, "CONTENT_TOO_LARGE", "note content too large").
			WithUserMessage("Note content is too large. Maximum size is 1MB").
			WithContext("size", len(content)))
	}

	return result
}

// ValidateSlotKey validates the storage key that holds the notes blob
func (v *Validator) ValidateSlotKey(key string) *ValidationResult {
	result := &ValidationResult{IsValid: true}

	if strings.TrimSpace(key) == "" {
		result.AddError(New(ErrTypeValidation, "KEY_EMPTY", "storage key cannot be empty").
			WithUserMessage("Storage key is required"))
		return result
	}

	if strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		result.AddError(New(ErrTypeValidation, "KEY_INVALID", "storage key contains path separators").
			WithUserMessage("Storage key must be a plain name").
			WithContext("key", key))
	}

	return result
}
