package services

import (
	"context"
	"testing"

	"github.com/SAP-F-2025/certification-service/internal/models"
	"github.com/SAP-F-2025/certification-service/internal/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAnswerService_RecordAnswer(t *testing.T) {
	tests := []struct {
		name       string
		userID     string
		request    *RecordAnswerRequest
		state      models.AssessmentState
		expectSave bool
		checkErr   func(t *testing.T, err error)
	}{
		{
			name:       "answer appended",
			userID:     testUserID,
			request:    &RecordAnswerRequest{ChallengeID: "recA", Result: models.AnswerPartially, Value: "a,b"},
			state:      models.AssessmentStarted,
			expectSave: true,
		},
		{
			name:    "unknown result",
			userID:  testUserID,
			request: &RecordAnswerRequest{ChallengeID: "recA", Result: "maybe"},
			state:   models.AssessmentStarted,
			checkErr: func(t *testing.T, err error) {
				assert.True(t, IsValidation(err))
			},
		},
		{
			name:    "assessment of another user",
			userID:  "user-2",
			request: &RecordAnswerRequest{ChallengeID: "recA", Result: models.AnswerOK},
			state:   models.AssessmentStarted,
			checkErr: func(t *testing.T, err error) {
				assert.True(t, IsNotFound(err))
			},
		},
		{
			name:    "completed assessment",
			userID:  testUserID,
			request: &RecordAnswerRequest{ChallengeID: "recA", Result: models.AnswerKO},
			state:   models.AssessmentCompleted,
			checkErr: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrAssessmentAlreadyCompleted)
				assert.True(t, IsConflict(err))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMockRepository()
			svc := NewAnswerService(repo, validator.New(), discardLogger())

			assessment := testCertificationAssessment()
			assessment.State = tt.state
			repo.assessmentRepo.On("Get", mock.Anything, testAssessmentID).Return(assessment, nil)
			repo.answerRepo.On("Create", mock.Anything, mock.Anything, mock.AnythingOfType("*models.Answer")).Return(nil)

			answer, err := svc.RecordAnswer(context.Background(), testAssessmentID, tt.userID, tt.request)

			if !tt.expectSave {
				require.Error(t, err)
				tt.checkErr(t, err)
				repo.answerRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, testAssessmentID, answer.AssessmentID)
			assert.Equal(t, tt.request.ChallengeID, answer.ChallengeID)
			assert.Equal(t, tt.request.Result, answer.Result)
			assert.Equal(t, tt.request.Value, answer.Value)
			repo.answerRepo.AssertExpectations(t)
		})
	}
}
