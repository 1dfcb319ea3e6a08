package scoring

import "github.com/SAP-F-2025/certification-service/internal/models"

// unit is one scorable credit slot. Most challenges expand to one unit,
// QROCM-dep challenges to two (one per validated skill).
type unit struct {
	challengeID  string
	competenceID string
	skill        string
	validated    bool
}

func unitsPerChallenge(t models.ChallengeType) int {
	if t == models.ChallengeQROCMDep {
		return 2
	}
	return 1
}

// validatedUnits returns how many of n units an answer result validates
func validatedUnits(result models.AnswerResult, n int) int {
	switch result {
	case models.AnswerOK:
		return n
	case models.AnswerPartially:
		if n > 1 {
			return 1
		}
	}
	return 0
}

// skillsFor names the skills behind each unit of a certification challenge
func skillsFor(cc *models.CertificationChallenge, ch models.Challenge, n int) []string {
	skills := make([]string, n)
	for i := range skills {
		if i < len(ch.Skills) && ch.Skills[i] != "" {
			skills[i] = ch.Skills[i]
		} else {
			skills[i] = cc.AssociatedSkillName
		}
	}
	return skills
}

// expand turns the administered challenges into answer-units credited with
// the answer given to each challenge. Challenges without an answer yield
// invalidated units.
func expand(certChallenges []*models.CertificationChallenge, catalog map[string]models.Challenge, answers map[string]models.AnswerResult) []unit {
	units := make([]unit, 0, len(certChallenges))

	for _, cc := range certChallenges {
		ch := catalog[cc.ChallengeID]
		n := unitsPerChallenge(ch.Type)

		credit := 0
		if result, answered := answers[cc.ChallengeID]; answered {
			credit = validatedUnits(result, n)
		}

		for i, skill := range skillsFor(cc, ch, n) {
			units = append(units, unit{
				challengeID:  cc.ChallengeID,
				competenceID: cc.CompetenceID,
				skill:        skill,
				validated:    i < credit,
			})
		}
	}

	return units
}

// CompetenceUnits is the answer-unit tally of one competence
type CompetenceUnits struct {
	CompetenceID string `json:"competence_id"`
	Expected     int    `json:"expected"`
	Validated    int    `json:"validated"`
}

func (c CompetenceUnits) Wrong() int {
	return c.Expected - c.Validated
}

// tally groups units per competence, preserving first-seen order
func tally(units []unit) []CompetenceUnits {
	var out []CompetenceUnits
	pos := make(map[string]int)

	for _, u := range units {
		i, ok := pos[u.competenceID]
		if !ok {
			i = len(out)
			pos[u.competenceID] = i
			out = append(out, CompetenceUnits{CompetenceID: u.competenceID})
		}
		out[i].Expected++
		if u.validated {
			out[i].Validated++
		}
	}

	return out
}
