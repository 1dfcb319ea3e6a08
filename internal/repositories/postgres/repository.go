package postgres

import (
	"context"
	"fmt"

	"github.com/SAP-F-2025/certification-service/internal/repositories"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB

	answer                 repositories.AnswerRepository
	assessment             repositories.AssessmentRepository
	assessmentResult       repositories.AssessmentResultRepository
	certificationCourse    repositories.CertificationCourseRepository
	certificationChallenge repositories.CertificationChallengeRepository
	positioning            repositories.PositioningRepository
}

// NewRepository wires every PostgreSQL repository on one connection
func NewRepository(db *gorm.DB) repositories.Repository {
	return &repository{
		db:                     db,
		answer:                 NewAnswerPostgreSQL(db),
		assessment:             NewAssessmentPostgreSQL(db),
		assessmentResult:       NewAssessmentResultPostgreSQL(db),
		certificationCourse:    NewCertificationCoursePostgreSQL(db),
		certificationChallenge: NewCertificationChallengePostgreSQL(db),
		positioning:            NewPositioningPostgreSQL(db),
	}
}

func (r *repository) Answer() repositories.AnswerRepository         { return r.answer }
func (r *repository) Assessment() repositories.AssessmentRepository { return r.assessment }
func (r *repository) AssessmentResult() repositories.AssessmentResultRepository {
	return r.assessmentResult
}
func (r *repository) CertificationCourse() repositories.CertificationCourseRepository {
	return r.certificationCourse
}
func (r *repository) CertificationChallenge() repositories.CertificationChallengeRepository {
	return r.certificationChallenge
}
func (r *repository) Positioning() repositories.PositioningRepository { return r.positioning }

func (r *repository) WithTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func (r *repository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

func (r *repository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
