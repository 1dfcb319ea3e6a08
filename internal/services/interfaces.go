package services

import (
	"context"
	"time"

	"github.com/SAP-F-2025/certification-service/internal/models"
	"gorm.io/gorm"
)

// CertificationService assembles, starts and stores certifications
type CertificationService interface {
	StartNewCertification(ctx context.Context, userID string, sessionID uint) (*models.CertificationCourse, error)

	CalculateCertificationResultByCertificationCourseID(ctx context.Context, courseID uint) (*models.CertificationResult, error)
	CalculateCertificationResultByAssessmentID(ctx context.Context, assessmentID uint) (*models.CertificationResult, error)
	GetCertificationResult(ctx context.Context, courseID uint) (*models.CertificationResultView, error)
	ComputeAndStoreResult(ctx context.Context, courseID uint) (*models.AssessmentResult, error)
}

// ProfileService builds positioning profiles from completed placements
type ProfileService interface {
	GetProfileToCertify(ctx context.Context, userID string, at time.Time) ([]models.ProfileCompetence, error)
	GetPositionedCompetences(ctx context.Context, userID string, at time.Time) ([]models.PositionedCompetence, error)
}

// ChallengeSelectionService turns a profile into the challenge set of a certification
type ChallengeSelectionService interface {
	SaveChallenges(ctx context.Context, tx *gorm.DB, profile []models.ProfileCompetence, course *models.CertificationCourse) (*models.CertificationCourse, error)
}

// AnswerService records answers given during a certification assessment
type AnswerService interface {
	RecordAnswer(ctx context.Context, assessmentID uint, userID string, req *RecordAnswerRequest) (*models.Answer, error)
}

// ExportService renders certification results as spreadsheets
type ExportService interface {
	ExportCertificationResult(ctx context.Context, courseID uint) ([]byte, error)
}

// ===== REQUESTS =====

type StartCertificationRequest struct {
	SessionID uint `json:"session_id" validate:"required,gt=0"`
}

type RecordAnswerRequest struct {
	ChallengeID string              `json:"challenge_id" validate:"required"`
	Result      models.AnswerResult `json:"result" validate:"required,answer_result"`
	Value       string              `json:"value" validate:"max=10000"`
}
