package postgres

import (
	"context"
	"fmt"

	"github.com/SAP-F-2025/certification-service/internal/models"
	"github.com/SAP-F-2025/certification-service/internal/repositories"
	"gorm.io/gorm"
)

type AnswerPostgreSQL struct {
	baseRepository
}

func NewAnswerPostgreSQL(db *gorm.DB) repositories.AnswerRepository {
	return &AnswerPostgreSQL{baseRepository{db: db}}
}

// FindByAssessment returns the answers of an assessment in submission order
func (a *AnswerPostgreSQL) FindByAssessment(ctx context.Context, assessmentID uint) ([]*models.Answer, error) {
	var answers []*models.Answer
	if err := a.db.WithContext(ctx).
		Where("assessment_id = ?", assessmentID).
		Order("id ASC").
		Find(&answers).Error; err != nil {
		return nil, fmt.Errorf("failed to load answers of assessment %d: %w", assessmentID, err)
	}
	return answers, nil
}

func (a *AnswerPostgreSQL) Create(ctx context.Context, tx *gorm.DB, answer *models.Answer) error {
	return a.getDB(tx).WithContext(ctx).Create(answer).Error
}
