package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/SAP-F-2025/certification-service/internal/catalog"
	apperrors "github.com/SAP-F-2025/certification-service/internal/errors"
	"github.com/SAP-F-2025/certification-service/internal/events"
	"github.com/SAP-F-2025/certification-service/internal/metrics"
	"github.com/SAP-F-2025/certification-service/internal/models"
	"github.com/SAP-F-2025/certification-service/internal/repositories"
	"github.com/SAP-F-2025/certification-service/internal/scoring"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// minCompetencesToCertify is the size of the smallest certifiable profile
const minCompetencesToCertify = 5

type certificationService struct {
	repo      repositories.Repository
	profile   ProfileService
	selection ChallengeSelectionService
	catalog   catalog.Client
	engine    *scoring.Engine
	publisher events.EventPublisher
	metrics   *metrics.Metrics
	logger    *slog.Logger
	opLogger  *ServiceLogger
	now       func() time.Time
}

type CertificationServiceDeps struct {
	Repo      repositories.Repository
	Profile   ProfileService
	Selection ChallengeSelectionService
	Catalog   catalog.Client
	Engine    *scoring.Engine
	Publisher events.EventPublisher
	Metrics   *metrics.Metrics
	Logger    *slog.Logger
}

func NewCertificationService(deps CertificationServiceDeps) CertificationService {
	return &certificationService{
		repo:      deps.Repo,
		profile:   deps.Profile,
		selection: deps.Selection,
		catalog:   deps.Catalog,
		engine:    deps.Engine,
		publisher: deps.Publisher,
		metrics:   deps.Metrics,
		logger:    deps.Logger,
		opLogger:  NewServiceLogger(deps.Logger, LogConfig{Service: "certification-service", Component: "certification"}),
		now:       time.Now,
	}
}

// ===== START =====

func (s *certificationService) StartNewCertification(ctx context.Context, userID string, sessionID uint) (course *models.CertificationCourse, err error) {
	op := s.opLogger.WithOperation(ctx, "start_certification", userID)
	defer func() {
		var id uint
		if course != nil {
			id = course.ID
		}
		op.LogResult(id, "certification_course", err)
	}()

	profile, err := s.profile.GetProfileToCertify(ctx, userID, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to build profile to certify: %w", err)
	}

	if reason, ok := isCertifiable(profile); !ok {
		s.metrics.CertificationRejected()
		return nil, apperrors.NewUserNotAuthorizedToCertifyError(userID, reason)
	}
	if !hasProposedChallenges(profile) {
		return nil, ErrNoChallengesToCertify
	}

	course = &models.CertificationCourse{
		UserID:    userID,
		SessionID: sessionID,
		Status:    models.CertificationStarted,
	}

	err = s.repo.WithTransaction(ctx, func(tx *gorm.DB) error {
		if err := s.repo.CertificationCourse().Save(ctx, tx, course); err != nil {
			return fmt.Errorf("failed to save certification course: %w", err)
		}

		if _, err := s.selection.SaveChallenges(ctx, tx, profile, course); err != nil {
			return err
		}

		certificationType := models.AssessmentTypeCertification
		assessment := &models.Assessment{
			UserID:   userID,
			CourseID: course.AssessmentCourseID(),
			Type:     &certificationType,
			State:    models.AssessmentStarted,
		}
		if err := s.repo.Assessment().Create(ctx, tx, assessment); err != nil {
			return fmt.Errorf("failed to create certification assessment: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.CertificationStarted()
	s.publish(ctx, events.NewCertificationStartedEvent(course.ID, userID, sessionID, course.NbChallenges, course.CreatedAt))

	return course, nil
}

// isCertifiable requires at least five positioned competences, all above level 0
func isCertifiable(profile []models.ProfileCompetence) (string, bool) {
	if len(profile) < minCompetencesToCertify {
		return fmt.Sprintf("%d competences positioned, %d required", len(profile), minCompetencesToCertify), false
	}
	for _, c := range profile {
		if c.EstimatedLevel <= 0 {
			return fmt.Sprintf("competence %s is positioned at level %d", c.Index, c.EstimatedLevel), false
		}
	}
	return "", true
}

func hasProposedChallenges(profile []models.ProfileCompetence) bool {
	for _, c := range profile {
		if len(c.Challenges) > 0 {
			return true
		}
	}
	return false
}

// ===== COMPUTE =====

func (s *certificationService) CalculateCertificationResultByCertificationCourseID(ctx context.Context, courseID uint) (*models.CertificationResult, error) {
	assessment, err := s.repo.Assessment().GetByCertificationCourseID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	result, _, err := s.calculate(ctx, assessment)
	return result, err
}

func (s *certificationService) CalculateCertificationResultByAssessmentID(ctx context.Context, assessmentID uint) (*models.CertificationResult, error) {
	assessment, err := s.repo.Assessment().Get(ctx, assessmentID)
	if err != nil {
		return nil, err
	}

	result, _, err := s.calculate(ctx, assessment)
	return result, err
}

func (s *certificationService) calculate(ctx context.Context, assessment *models.Assessment) (*models.CertificationResult, *scoring.Outcome, error) {
	courseID, err := certificationCourseID(assessment)
	if err != nil {
		return nil, nil, err
	}

	course, err := s.repo.CertificationCourse().Get(ctx, courseID)
	if err != nil {
		return nil, nil, err
	}

	answers, err := s.repo.Answer().FindByAssessment(ctx, assessment.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load answers: %w", err)
	}

	certChallenges, err := s.repo.CertificationChallenge().FindByCertificationCourseID(ctx, courseID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load certification challenges: %w", err)
	}

	challenges, err := s.catalog.ListChallenges(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list catalog challenges: %w", err)
	}

	competences, err := s.catalog.ListCompetences(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list catalog competences: %w", err)
	}

	positioning, err := s.profile.GetPositionedCompetences(ctx, assessment.UserID, assessment.CreatedAt)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load positioning: %w", err)
	}

	outcome, err := s.engine.Score(scoring.Input{
		Answers:                 answers,
		CertificationChallenges: certChallenges,
		Challenges:              challenges,
		Competences:             competences,
		Positioning:             positioning,
	})
	if err != nil {
		return nil, nil, err
	}

	return &models.CertificationResult{
		CompetencesWithMark:      outcome.CompetencesWithMark,
		ListChallengesAndAnswers: outcome.ListChallengesAndAnswers,
		PercentageCorrectAnswers: outcome.PercentageCorrectAnswers,
		Status:                   course.Status,
		TotalScore:               outcome.TotalScore,
		UserID:                   assessment.UserID,
		CreatedAt:                assessment.CreatedAt,
		CompletedAt:              course.CompletedAt,
	}, outcome, nil
}

// certificationCourseID reads the certification course an assessment runs
func certificationCourseID(assessment *models.Assessment) (uint, error) {
	if assessment.Type != nil && *assessment.Type != models.AssessmentTypeCertification {
		return 0, ErrInvalidCourseReference
	}
	id, err := strconv.ParseUint(assessment.CourseID, 10, 64)
	if err != nil || id == 0 {
		return 0, ErrInvalidCourseReference
	}
	return uint(id), nil
}

// ===== STORE =====

func (s *certificationService) ComputeAndStoreResult(ctx context.Context, courseID uint) (stored *models.AssessmentResult, err error) {
	op := s.opLogger.WithOperation(ctx, "compute_and_store_result", "")
	defer func() { op.LogResult(courseID, "certification_course", err) }()

	assessment, err := s.repo.Assessment().GetByCertificationCourseID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	result, outcome, err := s.calculate(ctx, assessment)
	if err != nil {
		return nil, err
	}

	stored, err = newAssessmentResult(assessment.ID, result, outcome)
	if err != nil {
		return nil, err
	}

	err = s.repo.WithTransaction(ctx, func(tx *gorm.DB) error {
		if err := s.repo.AssessmentResult().Save(ctx, tx, stored); err != nil {
			return fmt.Errorf("failed to save assessment result: %w", err)
		}
		if err := s.repo.Assessment().UpdateState(ctx, tx, assessment.ID, models.AssessmentCompleted); err != nil {
			return fmt.Errorf("failed to complete assessment: %w", err)
		}
		if result.CompletedAt == nil {
			if err := s.repo.CertificationCourse().ChangeCompletionDate(ctx, tx, courseID, s.now()); err != nil {
				return fmt.Errorf("failed to stamp completion date: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.ObserveScoring(string(outcome.Tier))
	s.opLogger.LogScoring(ctx, assessment.ID, string(outcome.Tier), outcome.PercentageCorrectAnswers, outcome.TotalScore)
	s.publish(ctx, events.NewCertificationScoredEvent(courseID, assessment.ID, assessment.UserID,
		outcome.TotalScore, outcome.PercentageCorrectAnswers, string(outcome.Tier)))

	return stored, nil
}

type resultMetadata struct {
	Tier                     scoring.Tier              `json:"tier"`
	PercentageCorrectAnswers int                       `json:"percentage_correct_answers"`
	Units                    []scoring.CompetenceUnits `json:"units"`
}

func newAssessmentResult(assessmentID uint, result *models.CertificationResult, outcome *scoring.Outcome) (*models.AssessmentResult, error) {
	metadata, err := json.Marshal(resultMetadata{
		Tier:                     outcome.Tier,
		PercentageCorrectAnswers: outcome.PercentageCorrectAnswers,
		Units:                    outcome.Units,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode result metadata: %w", err)
	}

	status := models.ResultRejected
	if result.TotalScore > 0 {
		status = models.ResultValidated
	}

	level := models.UncertifiedLevel
	marks := make([]models.StoredCompetenceMark, 0, len(result.CompetencesWithMark))
	for _, m := range result.CompetencesWithMark {
		level = max(level, m.ObtainedLevel)
		marks = append(marks, models.StoredCompetenceMark{
			Level:          m.ObtainedLevel,
			Score:          m.ObtainedScore,
			AreaCode:       models.Competence{Index: m.Index}.AreaCode(),
			CompetenceCode: m.Index,
		})
	}

	return &models.AssessmentResult{
		AssessmentID:    assessmentID,
		PixScore:        result.TotalScore,
		Level:           level,
		Status:          status,
		Emitter:         models.EmitterAlgorithm,
		Metadata:        datatypes.JSON(metadata),
		CompetenceMarks: marks,
	}, nil
}

// ===== READ =====

// GetCertificationResult projects what is stored for a certification; an
// unfinished certification yields an empty projection rather than an error
func (s *certificationService) GetCertificationResult(ctx context.Context, courseID uint) (*models.CertificationResultView, error) {
	course, err := s.repo.CertificationCourse().Get(ctx, courseID)
	if err != nil {
		return nil, err
	}

	view := &models.CertificationResultView{
		ID:                  course.ID,
		Status:              models.AssessmentStarted,
		CreatedAt:           course.CreatedAt,
		CompetencesWithMark: []models.StoredCompetenceMark{},
		FirstName:           course.FirstName,
		LastName:            course.LastName,
		Birthdate:           course.Birthdate,
		Birthplace:          course.Birthplace,
		ExternalID:          course.ExternalID,
		SessionID:           course.SessionID,
		IsPublished:         course.IsPublished,
	}

	assessment, err := s.repo.Assessment().GetByCertificationCourseID(ctx, courseID)
	if err != nil {
		if IsNotFound(err) {
			return view, nil
		}
		return nil, err
	}

	view.Status = assessment.State

	last := assessment.LastAssessmentResult()
	if !assessment.IsCompleted() || last == nil {
		return view, nil
	}

	score := last.PixScore
	view.PixScore = &score
	view.CompletedAt = course.CompletedAt
	if last.CompetenceMarks != nil {
		view.CompetencesWithMark = last.CompetenceMarks
	}

	return view, nil
}

// publish sends an event; a failure is logged and never fails the operation
func (s *certificationService) publish(ctx context.Context, event *events.CertificationEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishCertificationEvent(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish certification event",
			"event_type", event.Type, "event_id", event.ID, "error", err)
	}
}
