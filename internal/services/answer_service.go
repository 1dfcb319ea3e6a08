package services

import (
	"context"
	"fmt"
	"log/slog"

	apperrors "github.com/SAP-F-2025/certification-service/internal/errors"
	"github.com/SAP-F-2025/certification-service/internal/models"
	"github.com/SAP-F-2025/certification-service/internal/repositories"
	"github.com/SAP-F-2025/certification-service/internal/validator"
)

type answerService struct {
	repo      repositories.Repository
	validator *validator.Validator
	logger    *slog.Logger
}

func NewAnswerService(repo repositories.Repository, validator *validator.Validator, logger *slog.Logger) AnswerService {
	return &answerService{
		repo:      repo,
		validator: validator,
		logger:    logger,
	}
}

// RecordAnswer appends an answer to a started assessment owned by userID
func (s *answerService) RecordAnswer(ctx context.Context, assessmentID uint, userID string, req *RecordAnswerRequest) (*models.Answer, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	assessment, err := s.repo.Assessment().Get(ctx, assessmentID)
	if err != nil {
		return nil, err
	}
	// Another user's assessment is reported as missing
	if assessment.UserID != userID {
		return nil, apperrors.NewNotFoundError("assessment", assessmentID)
	}
	if assessment.IsCompleted() {
		return nil, ErrAssessmentAlreadyCompleted
	}

	answer := &models.Answer{
		AssessmentID: assessmentID,
		ChallengeID:  req.ChallengeID,
		Result:       req.Result,
		Value:        req.Value,
	}
	if err := s.repo.Answer().Create(ctx, nil, answer); err != nil {
		return nil, fmt.Errorf("failed to record answer: %w", err)
	}

	s.logger.InfoContext(ctx, "Answer recorded",
		"assessment_id", assessmentID, "challenge_id", answer.ChallengeID, "result", answer.Result)

	return answer, nil
}
