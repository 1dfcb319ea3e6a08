package postgres

import (
	"context"
	"strconv"

	"github.com/SAP-F-2025/certification-service/internal/models"
	"github.com/SAP-F-2025/certification-service/internal/repositories"
	"gorm.io/gorm"
)

type AssessmentPostgreSQL struct {
	baseRepository
}

func NewAssessmentPostgreSQL(db *gorm.DB) repositories.AssessmentRepository {
	return &AssessmentPostgreSQL{baseRepository{db: db}}
}

// Get retrieves an assessment with its results
func (a *AssessmentPostgreSQL) Get(ctx context.Context, id uint) (*models.Assessment, error) {
	var assessment models.Assessment
	err := a.db.WithContext(ctx).
		Preload("AssessmentResults", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Preload("AssessmentResults.CompetenceMarks").
		First(&assessment, id).Error
	if err != nil {
		return nil, translateNotFound(err, "assessment", id)
	}
	return &assessment, nil
}

// GetByCertificationCourseID retrieves the certification assessment of a course
func (a *AssessmentPostgreSQL) GetByCertificationCourseID(ctx context.Context, courseID uint) (*models.Assessment, error) {
	var assessment models.Assessment
	err := a.db.WithContext(ctx).
		Preload("AssessmentResults", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Preload("AssessmentResults.CompetenceMarks").
		Where("course_id = ? AND type = ?", strconv.FormatUint(uint64(courseID), 10), models.AssessmentTypeCertification).
		Order("created_at DESC").
		First(&assessment).Error
	if err != nil {
		return nil, translateNotFound(err, "certification assessment of course", courseID)
	}
	return &assessment, nil
}

func (a *AssessmentPostgreSQL) Create(ctx context.Context, tx *gorm.DB, assessment *models.Assessment) error {
	return a.getDB(tx).WithContext(ctx).Create(assessment).Error
}

func (a *AssessmentPostgreSQL) UpdateState(ctx context.Context, tx *gorm.DB, id uint, state models.AssessmentState) error {
	result := a.getDB(tx).WithContext(ctx).
		Model(&models.Assessment{}).
		Where("id = ?", id).
		Update("state", state)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return translateNotFound(gorm.ErrRecordNotFound, "assessment", id)
	}
	return nil
}
