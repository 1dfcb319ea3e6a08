package services

import (
	"bytes"
	"context"
	"testing"

	"github.com/SAP-F-2025/certification-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportService_ExportCertificationResult(t *testing.T) {
	certification := &MockCertificationService{}
	svc := NewExportService(certification, discardLogger())

	certification.On("GetCertificationResult", mock.Anything, testCourseID).
		Return(&models.CertificationResultView{ID: testCourseID, Status: models.AssessmentCompleted}, nil)
	certification.On("CalculateCertificationResultByCertificationCourseID", mock.Anything, testCourseID).
		Return(&models.CertificationResult{
			CompetencesWithMark: []models.CompetenceMark{
				{ID: "recComp1", Index: "1.1", Name: "Mener une recherche", PositionedLevel: 2, PositionedScore: 20, ObtainedLevel: 2, ObtainedScore: 20},
				{ID: "recComp2", Index: "1.2", Name: "Gérer des données", PositionedLevel: 3, PositionedScore: 28, ObtainedLevel: -1, ObtainedScore: 0},
			},
			ListChallengesAndAnswers: []models.ChallengeAndAnswer{
				{ChallengeID: "recA", Competence: "1.1", Skill: "@url2", Result: models.AnswerOK, Value: "b"},
				{ChallengeID: "recB", Competence: "1.2", Skill: "@web3", Result: models.AnswerKO, Value: "c"},
			},
			PercentageCorrectAnswers: 50,
			TotalScore:               20,
		}, nil)

	data, err := svc.ExportCertificationResult(context.Background(), testCourseID)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{competencesSheet, answersSheet}, f.GetSheetList())

	competences, err := f.GetRows(competencesSheet)
	require.NoError(t, err)
	assert.Equal(t, []string{"Index", "Competence", "Positioned Level", "Positioned Score", "Obtained Level", "Obtained Score"}, competences[0])
	assert.Equal(t, []string{"1.2", "Gérer des données", "3", "28", "-1", "0"}, competences[2])

	total, err := f.GetCellValue(competencesSheet, "B5")
	require.NoError(t, err)
	assert.Equal(t, "20", total)

	answers, err := f.GetRows(answersSheet)
	require.NoError(t, err)
	require.Len(t, answers, 3)
	assert.Equal(t, []string{"recB", "1.2", "@web3", "ko", "c"}, answers[2])
}

func TestExportService_NotCompleted(t *testing.T) {
	certification := &MockCertificationService{}
	svc := NewExportService(certification, discardLogger())

	certification.On("GetCertificationResult", mock.Anything, testCourseID).
		Return(&models.CertificationResultView{ID: testCourseID, Status: models.AssessmentStarted, CompetencesWithMark: []models.StoredCompetenceMark{}}, nil)

	_, err := svc.ExportCertificationResult(context.Background(), testCourseID)

	assert.ErrorIs(t, err, ErrCertificationNotCompleted)
	certification.AssertNotCalled(t, "CalculateCertificationResultByCertificationCourseID", mock.Anything, mock.Anything)
}
