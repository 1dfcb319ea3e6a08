package repositories

import (
	"context"
	"time"

	"github.com/SAP-F-2025/certification-service/internal/models"
	"gorm.io/gorm"
)

// Write methods accept an optional transaction; a nil tx runs on the base connection.

// AnswerRepository reads the append-only answers of an assessment
type AnswerRepository interface {
	FindByAssessment(ctx context.Context, assessmentID uint) ([]*models.Answer, error)
	Create(ctx context.Context, tx *gorm.DB, answer *models.Answer) error
}

type AssessmentRepository interface {
	Get(ctx context.Context, id uint) (*models.Assessment, error)
	GetByCertificationCourseID(ctx context.Context, courseID uint) (*models.Assessment, error)
	Create(ctx context.Context, tx *gorm.DB, assessment *models.Assessment) error
	UpdateState(ctx context.Context, tx *gorm.DB, id uint, state models.AssessmentState) error
}

type AssessmentResultRepository interface {
	Get(ctx context.Context, id uint) (*models.AssessmentResult, error)
	Save(ctx context.Context, tx *gorm.DB, result *models.AssessmentResult) error
}

type CertificationCourseRepository interface {
	Get(ctx context.Context, id uint) (*models.CertificationCourse, error)
	Save(ctx context.Context, tx *gorm.DB, course *models.CertificationCourse) error
	Update(ctx context.Context, tx *gorm.DB, course *models.CertificationCourse) error
	ChangeCompletionDate(ctx context.Context, tx *gorm.DB, id uint, completedAt time.Time) error
}

type CertificationChallengeRepository interface {
	FindByCertificationCourseID(ctx context.Context, courseID uint) ([]*models.CertificationChallenge, error)
	CreateBatch(ctx context.Context, tx *gorm.DB, challenges []*models.CertificationChallenge) error
}

// PositioningRepository provides the assessments a positioning profile is built from
type PositioningRepository interface {
	// FindLastCompletedAssessmentsForEachCourseByUser returns, per course, the most
	// recent completed non-certification assessment of the user having a result
	// created before cutoff. Only those results are loaded, newest first.
	FindLastCompletedAssessmentsForEachCourseByUser(ctx context.Context, userID string, cutoff time.Time) ([]*models.Assessment, error)
}

// Repository aggregates the repositories and owns transactions
type Repository interface {
	Answer() AnswerRepository
	Assessment() AssessmentRepository
	AssessmentResult() AssessmentResultRepository
	CertificationCourse() CertificationCourseRepository
	CertificationChallenge() CertificationChallengeRepository
	Positioning() PositioningRepository

	WithTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error
	Ping(ctx context.Context) error
	Close() error
}
