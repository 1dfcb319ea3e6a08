package errors

import (
	"errors"
	"fmt"
)

// CertificationComputeError is raised when an answer references a challenge
// that cannot be mapped to a competence of the catalog.
type CertificationComputeError struct {
	ChallengeID string `json:"challenge_id"`
}

func (e *CertificationComputeError) Error() string {
	return fmt.Sprintf("failed to load competence for challenge %s", e.ChallengeID)
}

func NewCertificationComputeError(challengeID string) *CertificationComputeError {
	return &CertificationComputeError{ChallengeID: challengeID}
}

// UserNotAuthorizedToCertifyError is raised when a profile does not meet the
// eligibility rules for a new certification.
type UserNotAuthorizedToCertifyError struct {
	UserID string `json:"user_id"`
	Reason string `json:"reason"`
}

func (e *UserNotAuthorizedToCertifyError) Error() string {
	return fmt.Sprintf("user %s is not authorized to certify: %s", e.UserID, e.Reason)
}

func NewUserNotAuthorizedToCertifyError(userID, reason string) *UserNotAuthorizedToCertifyError {
	return &UserNotAuthorizedToCertifyError{UserID: userID, Reason: reason}
}

// NotFoundError is raised when a referenced resource does not exist upstream
type NotFoundError struct {
	Resource string      `json:"resource"`
	ID       interface{} `json:"id"`
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %v not found", e.Resource, e.ID)
}

func NewNotFoundError(resource string, id interface{}) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

func IsCertificationCompute(err error) bool {
	var ce *CertificationComputeError
	return errors.As(err, &ce)
}

func IsUserNotAuthorizedToCertify(err error) bool {
	var ue *UserNotAuthorizedToCertifyError
	return errors.As(err, &ue)
}
