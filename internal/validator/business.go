package validator

import (
	"fmt"

	apperrors "github.com/SAP-F-2025/certification-service/internal/errors"
	"github.com/SAP-F-2025/certification-service/internal/models"
)

const maxPositionedLevel = 5

// BusinessValidator checks rules that struct tags cannot express
type BusinessValidator struct{}

func NewBusinessValidator() *BusinessValidator {
	return &BusinessValidator{}
}

// Validate dispatches on the known scoring inputs; other values have no business rules
func (v *BusinessValidator) Validate(s interface{}) ValidationErrors {
	switch value := s.(type) {
	case []*models.CertificationChallenge:
		return v.ValidateCertificationChallenges(value)
	case []models.PositionedCompetence:
		return v.ValidatePositioning(value)
	case []models.Challenge:
		return v.ValidateCatalogChallenges(value)
	}
	return nil
}

// ValidateCertificationChallenges rejects a challenge set that administers the same challenge twice
func (v *BusinessValidator) ValidateCertificationChallenges(challenges []*models.CertificationChallenge) ValidationErrors {
	var errs ValidationErrors
	seen := make(map[string]bool, len(challenges))

	for i, c := range challenges {
		field := fmt.Sprintf("certification_challenges[%d]", i)
		if c.ChallengeID == "" {
			errs = append(errs, *apperrors.NewValidationErrorWithRule(field+".challenge_id", "is required", "required", nil))
			continue
		}
		if c.CompetenceID == "" {
			errs = append(errs, *apperrors.NewValidationErrorWithRule(field+".competence_id", "is required", "required", c.ChallengeID))
		}
		if seen[c.ChallengeID] {
			errs = append(errs, *apperrors.NewValidationErrorWithRule(field+".challenge_id", "is administered more than once", "unique", c.ChallengeID))
		}
		seen[c.ChallengeID] = true
	}

	return errs
}

// ValidatePositioning checks levels are in range and each competence is positioned once
func (v *BusinessValidator) ValidatePositioning(profile []models.PositionedCompetence) ValidationErrors {
	var errs ValidationErrors
	seen := make(map[string]bool, len(profile))

	for i, p := range profile {
		field := fmt.Sprintf("positioning[%d]", i)
		if p.PositionedLevel < 0 || p.PositionedLevel > maxPositionedLevel {
			errs = append(errs, *apperrors.NewValidationErrorWithRule(field+".positioned_level",
				fmt.Sprintf("must be between 0 and %d", maxPositionedLevel), "level_range", p.PositionedLevel))
		}
		if p.PositionedScore < 0 {
			errs = append(errs, *apperrors.NewValidationErrorWithRule(field+".positioned_score", "must be at least 0", "min", p.PositionedScore))
		}
		if seen[p.CompetenceID] {
			errs = append(errs, *apperrors.NewValidationErrorWithRule(field+".competence_id", "is positioned more than once", "unique", p.CompetenceID))
		}
		seen[p.CompetenceID] = true
	}

	return errs
}

func (v *BusinessValidator) ValidateCatalogChallenges(challenges []models.Challenge) ValidationErrors {
	var errs ValidationErrors
	seen := make(map[string]bool, len(challenges))

	for i, c := range challenges {
		if seen[c.ID] {
			errs = append(errs, *apperrors.NewValidationErrorWithRule(fmt.Sprintf("challenges[%d].id", i), "is duplicated", "unique", c.ID))
		}
		seen[c.ID] = true
	}

	return errs
}
