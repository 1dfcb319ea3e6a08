package services

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/certification-service/internal/models"
	"github.com/SAP-F-2025/certification-service/internal/repositories"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// MockAnswerRepository is a mock implementation of AnswerRepository
type MockAnswerRepository struct {
	mock.Mock
}

func (m *MockAnswerRepository) FindByAssessment(ctx context.Context, assessmentID uint) ([]*models.Answer, error) {
	args := m.Called(ctx, assessmentID)
	return args.Get(0).([]*models.Answer), args.Error(1)
}

func (m *MockAnswerRepository) Create(ctx context.Context, tx *gorm.DB, answer *models.Answer) error {
	args := m.Called(ctx, tx, answer)
	return args.Error(0)
}

// MockAssessmentRepository is a mock implementation of AssessmentRepository
type MockAssessmentRepository struct {
	mock.Mock
}

func (m *MockAssessmentRepository) Get(ctx context.Context, id uint) (*models.Assessment, error) {
	args := m.Called(ctx, id)
	if a := args.Get(0); a != nil {
		return a.(*models.Assessment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAssessmentRepository) GetByCertificationCourseID(ctx context.Context, courseID uint) (*models.Assessment, error) {
	args := m.Called(ctx, courseID)
	if a := args.Get(0); a != nil {
		return a.(*models.Assessment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAssessmentRepository) Create(ctx context.Context, tx *gorm.DB, assessment *models.Assessment) error {
	args := m.Called(ctx, tx, assessment)
	return args.Error(0)
}

func (m *MockAssessmentRepository) UpdateState(ctx context.Context, tx *gorm.DB, id uint, state models.AssessmentState) error {
	args := m.Called(ctx, tx, id, state)
	return args.Error(0)
}

// MockAssessmentResultRepository is a mock implementation of AssessmentResultRepository
type MockAssessmentResultRepository struct {
	mock.Mock
}

func (m *MockAssessmentResultRepository) Get(ctx context.Context, id uint) (*models.AssessmentResult, error) {
	args := m.Called(ctx, id)
	if r := args.Get(0); r != nil {
		return r.(*models.AssessmentResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAssessmentResultRepository) Save(ctx context.Context, tx *gorm.DB, result *models.AssessmentResult) error {
	args := m.Called(ctx, tx, result)
	return args.Error(0)
}

// MockCertificationCourseRepository is a mock implementation of CertificationCourseRepository
type MockCertificationCourseRepository struct {
	mock.Mock
}

func (m *MockCertificationCourseRepository) Get(ctx context.Context, id uint) (*models.CertificationCourse, error) {
	args := m.Called(ctx, id)
	if c := args.Get(0); c != nil {
		return c.(*models.CertificationCourse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCertificationCourseRepository) Save(ctx context.Context, tx *gorm.DB, course *models.CertificationCourse) error {
	args := m.Called(ctx, tx, course)
	return args.Error(0)
}

func (m *MockCertificationCourseRepository) Update(ctx context.Context, tx *gorm.DB, course *models.CertificationCourse) error {
	args := m.Called(ctx, tx, course)
	return args.Error(0)
}

func (m *MockCertificationCourseRepository) ChangeCompletionDate(ctx context.Context, tx *gorm.DB, id uint, completedAt time.Time) error {
	args := m.Called(ctx, tx, id, completedAt)
	return args.Error(0)
}

// MockCertificationChallengeRepository is a mock implementation of CertificationChallengeRepository
type MockCertificationChallengeRepository struct {
	mock.Mock
}

func (m *MockCertificationChallengeRepository) FindByCertificationCourseID(ctx context.Context, courseID uint) ([]*models.CertificationChallenge, error) {
	args := m.Called(ctx, courseID)
	return args.Get(0).([]*models.CertificationChallenge), args.Error(1)
}

func (m *MockCertificationChallengeRepository) CreateBatch(ctx context.Context, tx *gorm.DB, challenges []*models.CertificationChallenge) error {
	args := m.Called(ctx, tx, challenges)
	return args.Error(0)
}

// MockPositioningRepository is a mock implementation of PositioningRepository
type MockPositioningRepository struct {
	mock.Mock
}

func (m *MockPositioningRepository) FindLastCompletedAssessmentsForEachCourseByUser(ctx context.Context, userID string, cutoff time.Time) ([]*models.Assessment, error) {
	args := m.Called(ctx, userID, cutoff)
	return args.Get(0).([]*models.Assessment), args.Error(1)
}

// MockRepository is a mock implementation of the main Repository interface
type MockRepository struct {
	answerRepo         *MockAnswerRepository
	assessmentRepo     *MockAssessmentRepository
	resultRepo         *MockAssessmentResultRepository
	courseRepo         *MockCertificationCourseRepository
	certChallengeRepo  *MockCertificationChallengeRepository
	positioningRepo    *MockPositioningRepository
	transactionsOpened int
}

func newMockRepository() *MockRepository {
	return &MockRepository{
		answerRepo:        &MockAnswerRepository{},
		assessmentRepo:    &MockAssessmentRepository{},
		resultRepo:        &MockAssessmentResultRepository{},
		courseRepo:        &MockCertificationCourseRepository{},
		certChallengeRepo: &MockCertificationChallengeRepository{},
		positioningRepo:   &MockPositioningRepository{},
	}
}

func (m *MockRepository) Answer() repositories.AnswerRepository         { return m.answerRepo }
func (m *MockRepository) Assessment() repositories.AssessmentRepository { return m.assessmentRepo }
func (m *MockRepository) AssessmentResult() repositories.AssessmentResultRepository {
	return m.resultRepo
}
func (m *MockRepository) CertificationCourse() repositories.CertificationCourseRepository {
	return m.courseRepo
}
func (m *MockRepository) CertificationChallenge() repositories.CertificationChallengeRepository {
	return m.certChallengeRepo
}
func (m *MockRepository) Positioning() repositories.PositioningRepository { return m.positioningRepo }

// WithTransaction runs fn without a real transaction; repositories receive a nil tx
func (m *MockRepository) WithTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	m.transactionsOpened++
	return fn(nil)
}
func (m *MockRepository) Ping(ctx context.Context) error { return nil }
func (m *MockRepository) Close() error                   { return nil }

// MockCatalogClient is a mock implementation of catalog.Client
type MockCatalogClient struct {
	mock.Mock
}

func (m *MockCatalogClient) ListChallenges(ctx context.Context) ([]models.Challenge, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Challenge), args.Error(1)
}

func (m *MockCatalogClient) ListCompetences(ctx context.Context) ([]models.Competence, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Competence), args.Error(1)
}

// MockProfileService is a mock implementation of ProfileService
type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) GetProfileToCertify(ctx context.Context, userID string, at time.Time) ([]models.ProfileCompetence, error) {
	args := m.Called(ctx, userID, at)
	return args.Get(0).([]models.ProfileCompetence), args.Error(1)
}

func (m *MockProfileService) GetPositionedCompetences(ctx context.Context, userID string, at time.Time) ([]models.PositionedCompetence, error) {
	args := m.Called(ctx, userID, at)
	return args.Get(0).([]models.PositionedCompetence), args.Error(1)
}

// MockChallengeSelectionService is a mock implementation of ChallengeSelectionService
type MockChallengeSelectionService struct {
	mock.Mock
}

func (m *MockChallengeSelectionService) SaveChallenges(ctx context.Context, tx *gorm.DB, profile []models.ProfileCompetence, course *models.CertificationCourse) (*models.CertificationCourse, error) {
	args := m.Called(ctx, tx, profile, course)
	if c := args.Get(0); c != nil {
		return c.(*models.CertificationCourse), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockCertificationService is a mock implementation of CertificationService
type MockCertificationService struct {
	mock.Mock
}

func (m *MockCertificationService) StartNewCertification(ctx context.Context, userID string, sessionID uint) (*models.CertificationCourse, error) {
	args := m.Called(ctx, userID, sessionID)
	if c := args.Get(0); c != nil {
		return c.(*models.CertificationCourse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCertificationService) CalculateCertificationResultByCertificationCourseID(ctx context.Context, courseID uint) (*models.CertificationResult, error) {
	args := m.Called(ctx, courseID)
	if r := args.Get(0); r != nil {
		return r.(*models.CertificationResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCertificationService) CalculateCertificationResultByAssessmentID(ctx context.Context, assessmentID uint) (*models.CertificationResult, error) {
	args := m.Called(ctx, assessmentID)
	if r := args.Get(0); r != nil {
		return r.(*models.CertificationResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCertificationService) GetCertificationResult(ctx context.Context, courseID uint) (*models.CertificationResultView, error) {
	args := m.Called(ctx, courseID)
	if v := args.Get(0); v != nil {
		return v.(*models.CertificationResultView), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCertificationService) ComputeAndStoreResult(ctx context.Context, courseID uint) (*models.AssessmentResult, error) {
	args := m.Called(ctx, courseID)
	if r := args.Get(0); r != nil {
		return r.(*models.AssessmentResult), args.Error(1)
	}
	return nil, args.Error(1)
}
