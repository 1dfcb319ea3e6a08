package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"time"

	"github.com/SAP-F-2025/certification-service/internal/catalog"
	"github.com/SAP-F-2025/certification-service/internal/models"
	"github.com/SAP-F-2025/certification-service/internal/repositories"
)

// maxChallengesPerCompetence caps the challenges proposed for one competence
const maxChallengesPerCompetence = 3

type profileService struct {
	repo    repositories.Repository
	catalog catalog.Client
	logger  *slog.Logger
}

func NewProfileService(repo repositories.Repository, catalogClient catalog.Client, logger *slog.Logger) ProfileService {
	return &profileService{
		repo:    repo,
		catalog: catalogClient,
		logger:  logger,
	}
}

// GetPositionedCompetences returns the level and score reached on every
// competence as of at, in catalog order
func (s *profileService) GetPositionedCompetences(ctx context.Context, userID string, at time.Time) ([]models.PositionedCompetence, error) {
	profile, err := s.positionedProfile(ctx, userID, at)
	if err != nil {
		return nil, err
	}

	positioned := make([]models.PositionedCompetence, 0, len(profile))
	for _, c := range profile {
		positioned = append(positioned, models.PositionedCompetence{
			CompetenceID:    c.ID,
			PositionedLevel: c.EstimatedLevel,
			PositionedScore: c.PixScore,
		})
	}
	return positioned, nil
}

// GetProfileToCertify returns the positioned competences with the challenges
// proposed for certification
func (s *profileService) GetProfileToCertify(ctx context.Context, userID string, at time.Time) ([]models.ProfileCompetence, error) {
	profile, err := s.positionedProfile(ctx, userID, at)
	if err != nil {
		return nil, err
	}

	challenges, err := s.catalog.ListChallenges(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list catalog challenges: %w", err)
	}

	byCompetence := make(map[string][]models.Challenge)
	for _, ch := range challenges {
		byCompetence[ch.CompetenceID] = append(byCompetence[ch.CompetenceID], ch)
	}

	for i := range profile {
		profile[i].Challenges = selectChallenges(byCompetence[profile[i].ID], profile[i].EstimatedLevel)
	}

	return profile, nil
}

func (s *profileService) positionedProfile(ctx context.Context, userID string, at time.Time) ([]models.ProfileCompetence, error) {
	assessments, err := s.repo.Positioning().FindLastCompletedAssessmentsForEachCourseByUser(ctx, userID, at)
	if err != nil {
		return nil, err
	}

	competences, err := s.catalog.ListCompetences(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list catalog competences: %w", err)
	}

	byCourse := make(map[string]*models.AssessmentResult, len(assessments))
	for _, a := range assessments {
		if last := a.LastAssessmentResult(); last != nil {
			byCourse[a.CourseID] = last
		}
	}

	profile := make([]models.ProfileCompetence, 0, len(byCourse))
	for _, c := range competences {
		result, ok := byCourse[c.CourseID]
		if !ok {
			continue
		}
		profile = append(profile, models.ProfileCompetence{
			ID:             c.ID,
			Index:          c.Index,
			Name:           c.Name,
			EstimatedLevel: max(result.Level, 0),
			PixScore:       max(result.PixScore, 0),
		})
	}

	s.logger.DebugContext(ctx, "Built positioning profile", "user_id", userID, "competences", len(profile), "at", at)
	return profile, nil
}

// selectChallenges picks up to three challenges testing distinct skills,
// hardest first, among skills at most one level above the estimated level
func selectChallenges(challenges []models.Challenge, level int) []models.ProfileChallenge {
	candidates := make([]models.Challenge, 0, len(challenges))
	for _, ch := range challenges {
		if skill := testedSkill(ch); skill != "" && skillDifficulty(skill) <= level+1 {
			candidates = append(candidates, ch)
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		di, dj := skillDifficulty(testedSkill(candidates[i])), skillDifficulty(testedSkill(candidates[j]))
		if di != dj {
			return di > dj
		}
		return candidates[i].ID < candidates[j].ID
	})

	selected := make([]models.ProfileChallenge, 0, maxChallengesPerCompetence)
	seenSkills := make(map[string]bool)
	for _, ch := range candidates {
		skill := testedSkill(ch)
		if seenSkills[skill] {
			continue
		}
		seenSkills[skill] = true
		selected = append(selected, models.ProfileChallenge{ChallengeID: ch.ID, SkillName: skill})
		if len(selected) == maxChallengesPerCompetence {
			break
		}
	}
	return selected
}

func testedSkill(ch models.Challenge) string {
	if ch.TestedSkill != "" {
		return ch.TestedSkill
	}
	if len(ch.Skills) > 0 {
		return ch.Skills[0]
	}
	return ""
}

// skillDifficulty reads the trailing digits of a skill name, "@url5" is 5
func skillDifficulty(skill string) int {
	i := len(skill)
	for i > 0 && skill[i-1] >= '0' && skill[i-1] <= '9' {
		i--
	}
	difficulty, err := strconv.Atoi(skill[i:])
	if err != nil {
		return 0
	}
	return difficulty
}
