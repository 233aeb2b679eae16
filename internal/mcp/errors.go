package mcp

import (
	"errors"
	"fmt"

	"github.com/rpggio/policyatlas/internal/domain/casestudy"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	Details      any    `json:"details,omitempty"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	if e.RecoveryHint != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.RecoveryHint)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to MCP error codes.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	var apiErr *APIError
	switch {
	case errors.As(err, &apiErr):
		return apiErr
	case errors.Is(err, casestudy.ErrCaseStudyNotFound):
		return &APIError{Code: "CASE_STUDY_NOT_FOUND", Message: "case study not found", RecoveryHint: "Use an id from browse_case_studies"}
	case errors.Is(err, casestudy.ErrUnknownQuality):
		return &APIError{Code: "INVALID_QUALITY", Message: err.Error(), RecoveryHint: "Use high, medium or projected"}
	case errors.Is(err, casestudy.ErrInvalidInput):
		return &APIError{Code: "INVALID_INPUT", Message: err.Error(), RecoveryHint: "Check list_filters for accepted values"}
	default:
		return nil
	}
}

// toolError converts any error into an APIError for a tool result.
func toolError(err error) *APIError {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return &APIError{Code: "INTERNAL", Message: err.Error()}
}
