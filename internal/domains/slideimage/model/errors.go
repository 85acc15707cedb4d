package model

import (
	"errors"
	"fmt"
	"net/http"
)

// ImageError is the base error for the slideimage domain.
type ImageError struct {
	Code    string
	Message string
	Err     error
}

func (e *ImageError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *ImageError) Unwrap() error {
	return e.Err
}

// ============================================
// ERROR FACTORY FUNCTIONS
// ============================================

// NewValidationError signals malformed input, detected before any mutation.
func NewValidationError(message string) *ImageError {
	return &ImageError{
		Code:    "VALIDATION_ERROR",
		Message: message,
	}
}

func NewImageNotFound(id string) *ImageError {
	return &ImageError{
		Code:    "IMAGE_NOT_FOUND",
		Message: fmt.Sprintf("Slide image not found: %s", id),
	}
}

func NewSlideNotFound(id string) *ImageError {
	return &ImageError{
		Code:    "SLIDE_NOT_FOUND",
		Message: fmt.Sprintf("Slide not found: %s", id),
	}
}

// NewGenerationError wraps a failure of the external generation service.
func NewGenerationError(err error) *ImageError {
	return &ImageError{
		Code:    "GENERATION_ERROR",
		Message: "Image generation failed",
		Err:     err,
	}
}

// NewStoreError wraps a persistence failure.
func NewStoreError(op string, err error) *ImageError {
	return &ImageError{
		Code:    "STORE_ERROR",
		Message: fmt.Sprintf("Failed to %s slide image", op),
		Err:     err,
	}
}

// ============================================
// ERROR CHECKING FUNCTIONS
// ============================================

func IsValidationError(err error) bool {
	var imgErr *ImageError
	return errors.As(err, &imgErr) && imgErr.Code == "VALIDATION_ERROR"
}

func IsImageNotFound(err error) bool {
	var imgErr *ImageError
	return errors.As(err, &imgErr) && imgErr.Code == "IMAGE_NOT_FOUND"
}

func IsSlideNotFound(err error) bool {
	var imgErr *ImageError
	return errors.As(err, &imgErr) && imgErr.Code == "SLIDE_NOT_FOUND"
}

func IsGenerationError(err error) bool {
	var imgErr *ImageError
	return errors.As(err, &imgErr) && imgErr.Code == "GENERATION_ERROR"
}

func IsDomainError(err error) bool {
	var imgErr *ImageError
	return errors.As(err, &imgErr)
}

func GetErrorCode(err error) string {
	var imgErr *ImageError
	if errors.As(err, &imgErr) {
		return imgErr.Code
	}
	return "UNKNOWN_ERROR"
}

func GetErrorMessage(err error) string {
	var imgErr *ImageError
	if errors.As(err, &imgErr) {
		return imgErr.Message
	}
	return err.Error()
}

// GetErrorResponse maps a domain error onto an HTTP status, message and code.
func GetErrorResponse(err error) (statusCode int, message string, code string) {
	switch {
	case IsValidationError(err):
		return http.StatusBadRequest, GetErrorMessage(err), GetErrorCode(err)
	case IsImageNotFound(err), IsSlideNotFound(err):
		return http.StatusNotFound, GetErrorMessage(err), GetErrorCode(err)
	case IsGenerationError(err):
		return http.StatusBadGateway, GetErrorMessage(err), GetErrorCode(err)
	case IsDomainError(err):
		return http.StatusInternalServerError, GetErrorMessage(err), GetErrorCode(err)
	default:
		return http.StatusInternalServerError, "Internal server error", "INTERNAL_ERROR"
	}
}
