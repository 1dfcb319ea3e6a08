package postgres

import (
	"context"
	"time"

	"github.com/SAP-F-2025/certification-service/internal/models"
	"github.com/SAP-F-2025/certification-service/internal/repositories"
	"gorm.io/gorm"
)

type CertificationCoursePostgreSQL struct {
	baseRepository
}

func NewCertificationCoursePostgreSQL(db *gorm.DB) repositories.CertificationCourseRepository {
	return &CertificationCoursePostgreSQL{baseRepository{db: db}}
}

func (c *CertificationCoursePostgreSQL) Get(ctx context.Context, id uint) (*models.CertificationCourse, error) {
	var course models.CertificationCourse
	if err := c.db.WithContext(ctx).First(&course, id).Error; err != nil {
		return nil, translateNotFound(err, "certification course", id)
	}
	return &course, nil
}

// Save inserts the course; challenges are stored separately through CreateBatch
func (c *CertificationCoursePostgreSQL) Save(ctx context.Context, tx *gorm.DB, course *models.CertificationCourse) error {
	return c.getDB(tx).WithContext(ctx).Omit("Challenges").Create(course).Error
}

func (c *CertificationCoursePostgreSQL) Update(ctx context.Context, tx *gorm.DB, course *models.CertificationCourse) error {
	result := c.getDB(tx).WithContext(ctx).Omit("Challenges").Save(course)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return translateNotFound(gorm.ErrRecordNotFound, "certification course", course.ID)
	}
	return nil
}

func (c *CertificationCoursePostgreSQL) ChangeCompletionDate(ctx context.Context, tx *gorm.DB, id uint, completedAt time.Time) error {
	result := c.getDB(tx).WithContext(ctx).
		Model(&models.CertificationCourse{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"completed_at": completedAt,
			"status":       models.CertificationCompleted,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return translateNotFound(gorm.ErrRecordNotFound, "certification course", id)
	}
	return nil
}

type CertificationChallengePostgreSQL struct {
	baseRepository
}

func NewCertificationChallengePostgreSQL(db *gorm.DB) repositories.CertificationChallengeRepository {
	return &CertificationChallengePostgreSQL{baseRepository{db: db}}
}

func (c *CertificationChallengePostgreSQL) FindByCertificationCourseID(ctx context.Context, courseID uint) ([]*models.CertificationChallenge, error) {
	var challenges []*models.CertificationChallenge
	if err := c.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("id ASC").
		Find(&challenges).Error; err != nil {
		return nil, err
	}
	return challenges, nil
}

func (c *CertificationChallengePostgreSQL) CreateBatch(ctx context.Context, tx *gorm.DB, challenges []*models.CertificationChallenge) error {
	if len(challenges) == 0 {
		return nil
	}
	return c.getDB(tx).WithContext(ctx).CreateInBatches(challenges, 100).Error
}
