package model

import (
	"errors"
	"fmt"
	"net/http"
)

// SlideError is the base error for the slide domain.
type SlideError struct {
	Code    string
	Message string
	Err     error
}

func (e *SlideError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *SlideError) Unwrap() error {
	return e.Err
}

func NewSlideNotFound(id string) *SlideError {
	return &SlideError{
		Code:    "SLIDE_NOT_FOUND",
		Message: fmt.Sprintf("Slide not found: %s", id),
	}
}

func NewValidationError(message string) *SlideError {
	return &SlideError{
		Code:    "VALIDATION_ERROR",
		Message: message,
	}
}

func NewStoreError(op string, err error) *SlideError {
	return &SlideError{
		Code:    "STORE_ERROR",
		Message: fmt.Sprintf("Failed to %s slide", op),
		Err:     err,
	}
}

func IsSlideNotFound(err error) bool {
	var slideErr *SlideError
	return errors.As(err, &slideErr) && slideErr.Code == "SLIDE_NOT_FOUND"
}

func IsValidationError(err error) bool {
	var slideErr *SlideError
	return errors.As(err, &slideErr) && slideErr.Code == "VALIDATION_ERROR"
}

func IsDomainError(err error) bool {
	var slideErr *SlideError
	return errors.As(err, &slideErr)
}

func GetErrorResponse(err error) (statusCode int, message string, code string) {
	var slideErr *SlideError
	if !errors.As(err, &slideErr) {
		return http.StatusInternalServerError, "Internal server error", "INTERNAL_ERROR"
	}

	switch slideErr.Code {
	case "SLIDE_NOT_FOUND":
		return http.StatusNotFound, slideErr.Message, slideErr.Code
	case "VALIDATION_ERROR":
		return http.StatusBadRequest, slideErr.Message, slideErr.Code
	default:
		return http.StatusInternalServerError, slideErr.Message, slideErr.Code
	}
}
