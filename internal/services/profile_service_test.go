package services

import (
	"context"
	"testing"
	"time"

	"github.com/SAP-F-2025/certification-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func placement(courseID string, results ...models.AssessmentResult) *models.Assessment {
	placementType := models.AssessmentTypePlacement
	return &models.Assessment{
		UserID:            testUserID,
		CourseID:          courseID,
		Type:              &placementType,
		State:             models.AssessmentCompleted,
		AssessmentResults: results,
	}
}

func TestSkillDifficulty(t *testing.T) {
	tests := []struct {
		skill    string
		expected int
	}{
		{"@url5", 5},
		{"@recherche12", 12},
		{"@web1", 1},
		{"@noDigits", 0},
		{"", 0},
	}

	for _, tt := range tests {
		t.Run(tt.skill, func(t *testing.T) {
			assert.Equal(t, tt.expected, skillDifficulty(tt.skill))
		})
	}
}

func TestSelectChallenges(t *testing.T) {
	challenges := []models.Challenge{
		{ID: "recE", TestedSkill: "@url2"},
		{ID: "recA", TestedSkill: "@url4"},
		{ID: "recD", TestedSkill: "@web3"},
		{ID: "recC", TestedSkill: "@url3"},
		{ID: "recB", TestedSkill: "@url3"},
		{ID: "recF", TestedSkill: "@url6"},
		{ID: "recG", Skills: []string{"@file1"}},
		{ID: "recH"},
	}

	t.Run("hardest distinct skills first", func(t *testing.T) {
		selected := selectChallenges(challenges, 3)

		assert.Equal(t, []models.ProfileChallenge{
			{ChallengeID: "recA", SkillName: "@url4"},
			{ChallengeID: "recB", SkillName: "@url3"},
			{ChallengeID: "recD", SkillName: "@web3"},
		}, selected)
	})

	t.Run("skills above the next level are excluded", func(t *testing.T) {
		selected := selectChallenges(challenges, 1)

		assert.Equal(t, []models.ProfileChallenge{
			{ChallengeID: "recE", SkillName: "@url2"},
			{ChallengeID: "recG", SkillName: "@file1"},
		}, selected)
	})

	t.Run("no candidate", func(t *testing.T) {
		assert.Empty(t, selectChallenges(nil, 5))
	})
}

func TestProfileService_GetProfileToCertify(t *testing.T) {
	repo := newMockRepository()
	catalogClient := &MockCatalogClient{}
	svc := NewProfileService(repo, catalogClient, discardLogger())

	repo.positioningRepo.On("FindLastCompletedAssessmentsForEachCourseByUser", mock.Anything, testUserID, fixedNow).Return([]*models.Assessment{
		placement("course3", models.AssessmentResult{Level: 2, PixScore: 21, CreatedAt: fixedNow.Add(-2 * time.Hour)}),
		placement("course1",
			models.AssessmentResult{Level: 1, PixScore: 9, CreatedAt: fixedNow.Add(-3 * time.Hour)},
			models.AssessmentResult{Level: 3, PixScore: 30, CreatedAt: fixedNow.Add(-1 * time.Hour)},
		),
		placement("course4"),
	}, nil)
	catalogClient.On("ListCompetences", mock.Anything).Return(testCompetences, nil)
	catalogClient.On("ListChallenges", mock.Anything).Return([]models.Challenge{
		{ID: "rec1", CompetenceID: "recComp1", TestedSkill: "@a3"},
		{ID: "rec2", CompetenceID: "recComp1", TestedSkill: "@b5"},
		{ID: "rec3", CompetenceID: "recComp3", TestedSkill: "@c1"},
		{ID: "rec4", CompetenceID: "recComp2", TestedSkill: "@d1"},
	}, nil)

	profile, err := svc.GetProfileToCertify(context.Background(), testUserID, fixedNow)

	require.NoError(t, err)
	require.Len(t, profile, 2)

	// Catalog order, latest result of each placement
	assert.Equal(t, "recComp1", profile[0].ID)
	assert.Equal(t, "1.1", profile[0].Index)
	assert.Equal(t, 3, profile[0].EstimatedLevel)
	assert.Equal(t, 30, profile[0].PixScore)
	assert.Equal(t, []models.ProfileChallenge{{ChallengeID: "rec1", SkillName: "@a3"}}, profile[0].Challenges)

	assert.Equal(t, "recComp3", profile[1].ID)
	assert.Equal(t, 2, profile[1].EstimatedLevel)
	assert.Equal(t, []models.ProfileChallenge{{ChallengeID: "rec3", SkillName: "@c1"}}, profile[1].Challenges)
}

func TestProfileService_GetPositionedCompetences(t *testing.T) {
	repo := newMockRepository()
	catalogClient := &MockCatalogClient{}
	svc := NewProfileService(repo, catalogClient, discardLogger())

	repo.positioningRepo.On("FindLastCompletedAssessmentsForEachCourseByUser", mock.Anything, testUserID, assessmentStart).Return([]*models.Assessment{
		placement("course2", models.AssessmentResult{Level: -1, PixScore: -1}),
		placement("course4", models.AssessmentResult{Level: 4, PixScore: 40}),
	}, nil)
	catalogClient.On("ListCompetences", mock.Anything).Return(testCompetences, nil)

	positioned, err := svc.GetPositionedCompetences(context.Background(), testUserID, assessmentStart)

	require.NoError(t, err)
	assert.Equal(t, []models.PositionedCompetence{
		{CompetenceID: "recComp2", PositionedLevel: 0, PositionedScore: 0},
		{CompetenceID: "recComp4", PositionedLevel: 4, PositionedScore: 40},
	}, positioned)
	catalogClient.AssertNotCalled(t, "ListChallenges", mock.Anything)
}
