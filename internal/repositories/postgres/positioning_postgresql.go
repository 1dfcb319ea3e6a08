package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/SAP-F-2025/certification-service/internal/models"
	"github.com/SAP-F-2025/certification-service/internal/repositories"
	"gorm.io/gorm"
)

type PositioningPostgreSQL struct {
	baseRepository
}

func NewPositioningPostgreSQL(db *gorm.DB) repositories.PositioningRepository {
	return &PositioningPostgreSQL{baseRepository{db: db}}
}

func (p *PositioningPostgreSQL) FindLastCompletedAssessmentsForEachCourseByUser(ctx context.Context, userID string, cutoff time.Time) ([]*models.Assessment, error) {
	var assessments []*models.Assessment

	err := p.db.WithContext(ctx).
		Preload("AssessmentResults", func(db *gorm.DB) *gorm.DB {
			return db.Where("created_at < ?", cutoff).Order("created_at DESC")
		}).
		Where("assessments.user_id = ? AND assessments.state = ?", userID, models.AssessmentCompleted).
		Where("(assessments.type IS NULL OR assessments.type <> ?)", models.AssessmentTypeCertification).
		Where("EXISTS (SELECT 1 FROM assessment_results ar WHERE ar.assessment_id = assessments.id AND ar.created_at < ?)", cutoff).
		Order("assessments.created_at DESC").
		Order("assessments.id DESC").
		Find(&assessments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load positioning assessments of user %s: %w", userID, err)
	}

	return latestPerCourse(assessments), nil
}

// latestPerCourse keeps the first assessment seen for each course; input is newest first
func latestPerCourse(assessments []*models.Assessment) []*models.Assessment {
	seen := make(map[string]bool, len(assessments))
	out := make([]*models.Assessment, 0, len(assessments))

	for _, a := range assessments {
		if seen[a.CourseID] {
			continue
		}
		seen[a.CourseID] = true
		out = append(out, a)
	}
	return out
}
