package postgres

import (
	"context"

	"github.com/SAP-F-2025/certification-service/internal/models"
	"github.com/SAP-F-2025/certification-service/internal/repositories"
	"gorm.io/gorm"
)

type AssessmentResultPostgreSQL struct {
	baseRepository
}

func NewAssessmentResultPostgreSQL(db *gorm.DB) repositories.AssessmentResultRepository {
	return &AssessmentResultPostgreSQL{baseRepository{db: db}}
}

func (a *AssessmentResultPostgreSQL) Get(ctx context.Context, id uint) (*models.AssessmentResult, error) {
	var result models.AssessmentResult
	if err := a.db.WithContext(ctx).
		Preload("CompetenceMarks").
		First(&result, id).Error; err != nil {
		return nil, translateNotFound(err, "assessment result", id)
	}
	return &result, nil
}

// Save inserts the result together with its competence marks
func (a *AssessmentResultPostgreSQL) Save(ctx context.Context, tx *gorm.DB, result *models.AssessmentResult) error {
	return a.getDB(tx).WithContext(ctx).Create(result).Error
}
