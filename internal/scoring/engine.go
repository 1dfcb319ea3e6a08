package scoring

import (
	apperrors "github.com/SAP-F-2025/certification-service/internal/errors"
	"github.com/SAP-F-2025/certification-service/internal/models"
)

// Input gathers everything needed to score one certification
type Input struct {
	Answers                 []*models.Answer                 `json:"answers" yaml:"answers"`
	CertificationChallenges []*models.CertificationChallenge `json:"certification_challenges" yaml:"certification_challenges"`
	Challenges              []models.Challenge               `json:"challenges" yaml:"challenges"`
	Competences             []models.Competence              `json:"competences" yaml:"competences"`
	Positioning             []models.PositionedCompetence    `json:"positioning" yaml:"positioning"`
}

// Outcome is the scored certification
type Outcome struct {
	CompetencesWithMark      []models.CompetenceMark     `json:"competences_with_mark"`
	ListChallengesAndAnswers []models.ChallengeAndAnswer `json:"list_challenges_and_answers"`
	PercentageCorrectAnswers int                         `json:"percentage_correct_answers"`
	TotalScore               int                         `json:"total_score"`
	Tier                     Tier                        `json:"tier"`
	Units                    []CompetenceUnits           `json:"units"`
}

// Engine scores certifications. It is pure and safe for concurrent use.
type Engine struct {
	policy Policy
}

func NewEngine(policy Policy) *Engine {
	return &Engine{policy: policy.withDefaults()}
}

func (e *Engine) Policy() Policy {
	return e.policy
}

// Score computes competence marks, the reproducibility rate and the total score.
// It fails with a CertificationComputeError when an answer or an administered
// challenge refers to a challenge or competence missing from the catalog.
func (e *Engine) Score(in Input) (*Outcome, error) {
	challenges := make(map[string]models.Challenge, len(in.Challenges))
	for _, ch := range in.Challenges {
		challenges[ch.ID] = ch
	}
	competences := make(map[string]models.Competence, len(in.Competences))
	for _, c := range in.Competences {
		competences[c.ID] = c
	}

	for _, a := range in.Answers {
		if a == nil {
			continue
		}
		ch, ok := challenges[a.ChallengeID]
		if !ok {
			return nil, apperrors.NewCertificationComputeError(a.ChallengeID)
		}
		if _, ok := competences[ch.CompetenceID]; !ok {
			return nil, apperrors.NewCertificationComputeError(a.ChallengeID)
		}
	}

	administered := dedupeChallenges(in.CertificationChallenges)
	byChallenge := make(map[string]*models.CertificationChallenge, len(administered))
	for _, cc := range administered {
		if _, ok := challenges[cc.ChallengeID]; !ok {
			return nil, apperrors.NewCertificationComputeError(cc.ChallengeID)
		}
		byChallenge[cc.ChallengeID] = cc
	}

	// The first answer to a challenge is the one credited
	credited := make(map[string]models.AnswerResult, len(in.Answers))
	list := make([]models.ChallengeAndAnswer, 0, len(in.Answers))
	for _, a := range in.Answers {
		if a == nil {
			continue
		}
		cc, ok := byChallenge[a.ChallengeID]
		if !ok {
			continue
		}
		if _, seen := credited[a.ChallengeID]; !seen {
			credited[a.ChallengeID] = a.Result
		}
		list = append(list, models.ChallengeAndAnswer{
			ChallengeID: a.ChallengeID,
			Competence:  competences[challenges[a.ChallengeID].CompetenceID].Index,
			Skill:       cc.AssociatedSkillName,
			Result:      a.Result,
			Value:       a.Value,
		})
	}

	units := tally(expand(administered, challenges, credited))
	expected, validated := 0, 0
	perCompetence := make(map[string]CompetenceUnits, len(units))
	for _, u := range units {
		expected += u.Expected
		validated += u.Validated
		perCompetence[u.CompetenceID] = u
	}

	rate := percentage(validated, expected)
	tier := e.policy.TierFor(rate)

	positioned := make(map[string]models.PositionedCompetence, len(in.Positioning))
	for _, p := range in.Positioning {
		positioned[p.CompetenceID] = p
	}

	marks := make([]models.CompetenceMark, 0, len(positioned))
	total := 0
	for _, c := range in.Competences {
		p, ok := positioned[c.ID]
		if !ok {
			continue
		}
		mark := models.CompetenceMark{
			ID:              c.ID,
			Name:            c.Name,
			Index:           c.Index,
			PositionedLevel: p.PositionedLevel,
			PositionedScore: p.PositionedScore,
		}
		mark.ObtainedLevel, mark.ObtainedScore = e.markCompetence(p, perCompetence[c.ID], tier)
		total += mark.ObtainedScore
		marks = append(marks, mark)
	}

	return &Outcome{
		CompetencesWithMark:      marks,
		ListChallengesAndAnswers: list,
		PercentageCorrectAnswers: rate,
		TotalScore:               total,
		Tier:                     tier,
		Units:                    units,
	}, nil
}

// markCompetence applies the tier rules to one positioned competence
func (e *Engine) markCompetence(p models.PositionedCompetence, u CompetenceUnits, tier Tier) (level, score int) {
	wrong := u.Wrong()

	switch {
	case tier == TierFailed, u.Expected == 0, wrong == u.Expected:
		return models.UncertifiedLevel, 0
	case tier == TierPartial && u.Validated < e.policy.MinValidatedUnits:
		return models.UncertifiedLevel, 0
	case wrong == 0:
		return p.PositionedLevel, p.PositionedScore
	}

	score = max(0, p.PositionedScore-e.policy.MalusPerWrongUnit*wrong)
	level = max(0, p.PositionedLevel-e.policy.levelsLost(wrong))
	return level, score
}

// percentage rounds validated/expected half up; no expected unit yields 0
func percentage(validated, expected int) int {
	if expected == 0 {
		return 0
	}
	return (validated*100 + expected/2) / expected
}

func dedupeChallenges(challenges []*models.CertificationChallenge) []*models.CertificationChallenge {
	out := make([]*models.CertificationChallenge, 0, len(challenges))
	seen := make(map[string]bool, len(challenges))
	for _, cc := range challenges {
		if cc == nil || seen[cc.ChallengeID] {
			continue
		}
		seen[cc.ChallengeID] = true
		out = append(out, cc)
	}
	return out
}
