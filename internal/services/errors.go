package services

import (
	"errors"

	apperrors "github.com/SAP-F-2025/certification-service/internal/errors"
)

// ===== COMMON SERVICE ERRORS =====

var (
	ErrInternalError    = errors.New("internal server error")
	ErrValidationFailed = errors.New("validation failed")

	ErrCertificationCourseNotFound = errors.New("certification course not found")
	ErrAssessmentNotFound          = errors.New("assessment not found")
	ErrInvalidCourseReference      = errors.New("assessment does not reference a certification course")
	ErrCertificationNotCompleted   = errors.New("certification assessment is not completed")
	ErrNoChallengesToCertify       = errors.New("profile proposes no challenge to certify")
	ErrAssessmentAlreadyCompleted  = errors.New("assessment is already completed")
)

// ===== CUSTOM ERROR TYPES =====

// Use shared error types from errors package
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

// ===== ERROR HELPERS =====

func NewValidationError(field, message string, value interface{}) *ValidationError {
	return apperrors.NewValidationError(field, message, value)
}

// IsNotFound checks if error represents a "not found" condition
func IsNotFound(err error) bool {
	return apperrors.IsNotFound(err) ||
		errors.Is(err, ErrCertificationCourseNotFound) ||
		errors.Is(err, ErrAssessmentNotFound)
}

// IsUnauthorized checks if error represents an eligibility refusal
func IsUnauthorized(err error) bool {
	return apperrors.IsUserNotAuthorizedToCertify(err)
}

// IsComputeError checks if scoring failed on inconsistent reference data
func IsComputeError(err error) bool {
	return apperrors.IsCertificationCompute(err)
}

// IsValidation checks if error represents a validation failure
func IsValidation(err error) bool {
	if errors.Is(err, ErrValidationFailed) {
		return true
	}
	var ve apperrors.ValidationErrors
	return errors.As(err, &ve)
}

// IsConflict checks if the request does not fit the current state of the certification
func IsConflict(err error) bool {
	return errors.Is(err, ErrInvalidCourseReference) ||
		errors.Is(err, ErrCertificationNotCompleted) ||
		errors.Is(err, ErrNoChallengesToCertify) ||
		errors.Is(err, ErrAssessmentAlreadyCompleted)
}
