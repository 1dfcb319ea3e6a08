package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SAP-F-2025/certification-service/internal/models"
	"github.com/SAP-F-2025/certification-service/internal/repositories"
	"github.com/SAP-F-2025/certification-service/internal/validator"
	"gorm.io/gorm"
)

type challengeSelectionService struct {
	repo      repositories.Repository
	validator *validator.Validator
	logger    *slog.Logger
}

func NewChallengeSelectionService(repo repositories.Repository, validator *validator.Validator, logger *slog.Logger) ChallengeSelectionService {
	return &challengeSelectionService{
		repo:      repo,
		validator: validator,
		logger:    logger,
	}
}

// SaveChallenges stores one certification challenge per challenge proposed by
// the profile and returns the course with NbChallenges set
func (s *challengeSelectionService) SaveChallenges(ctx context.Context, tx *gorm.DB, profile []models.ProfileCompetence, course *models.CertificationCourse) (*models.CertificationCourse, error) {
	var challenges []*models.CertificationChallenge
	for _, competence := range profile {
		for _, proposed := range competence.Challenges {
			challenges = append(challenges, &models.CertificationChallenge{
				CourseID:            course.ID,
				ChallengeID:         proposed.ChallengeID,
				CompetenceID:        competence.ID,
				AssociatedSkillName: proposed.SkillName,
			})
		}
	}

	if errs := s.validator.ValidateBusiness(challenges); len(errs) > 0 {
		return nil, errs
	}

	if err := s.repo.CertificationChallenge().CreateBatch(ctx, tx, challenges); err != nil {
		return nil, fmt.Errorf("failed to save certification challenges: %w", err)
	}

	course.NbChallenges = len(challenges)
	s.logger.InfoContext(ctx, "Certification challenges saved", "certification_course_id", course.ID, "nb_challenges", course.NbChallenges)

	return course, nil
}
