package scoring

// Default certification policy
const (
	DefaultFailureThreshold    = 50
	DefaultFullCreditThreshold = 80
	DefaultMalusPerWrongUnit   = 8
	DefaultWrongUnitsPerLevel  = 2
	DefaultMinValidatedUnits   = 2
)

// Tier is the band the reproducibility rate falls into
type Tier string

const (
	TierFailed  Tier = "failed"
	TierPartial Tier = "partial"
	TierFull    Tier = "full"
)

// Policy holds the thresholds of the certification scoring rules.
// Rates are integer percentages.
type Policy struct {
	FailureThreshold    int `json:"failure_threshold" yaml:"failure_threshold"`
	FullCreditThreshold int `json:"full_credit_threshold" yaml:"full_credit_threshold"`
	MalusPerWrongUnit   int `json:"malus_per_wrong_unit" yaml:"malus_per_wrong_unit"`
	WrongUnitsPerLevel  int `json:"wrong_units_per_level" yaml:"wrong_units_per_level"`

	// MinValidatedUnits is the fewest validated units that certify a
	// competence in the partial tier
	MinValidatedUnits int `json:"min_validated_units" yaml:"min_validated_units"`
}

func DefaultPolicy() Policy {
	return Policy{
		FailureThreshold:    DefaultFailureThreshold,
		FullCreditThreshold: DefaultFullCreditThreshold,
		MalusPerWrongUnit:   DefaultMalusPerWrongUnit,
		WrongUnitsPerLevel:  DefaultWrongUnitsPerLevel,
		MinValidatedUnits:   DefaultMinValidatedUnits,
	}
}

// withDefaults fills unset or unusable fields from DefaultPolicy
func (p Policy) withDefaults() Policy {
	d := DefaultPolicy()
	if p.FailureThreshold <= 0 {
		p.FailureThreshold = d.FailureThreshold
	}
	if p.FullCreditThreshold < p.FailureThreshold {
		p.FullCreditThreshold = max(d.FullCreditThreshold, p.FailureThreshold)
	}
	if p.MalusPerWrongUnit <= 0 {
		p.MalusPerWrongUnit = d.MalusPerWrongUnit
	}
	if p.WrongUnitsPerLevel <= 0 {
		p.WrongUnitsPerLevel = d.WrongUnitsPerLevel
	}
	if p.MinValidatedUnits <= 0 {
		p.MinValidatedUnits = d.MinValidatedUnits
	}
	return p
}

// TierFor classifies a reproducibility rate
func (p Policy) TierFor(rate int) Tier {
	switch {
	case rate < p.FailureThreshold:
		return TierFailed
	case rate >= p.FullCreditThreshold:
		return TierFull
	default:
		return TierPartial
	}
}

// levelsLost is the level penalty for a number of invalidated units, rounded up
func (p Policy) levelsLost(wrongUnits int) int {
	return (wrongUnits + p.WrongUnitsPerLevel - 1) / p.WrongUnitsPerLevel
}
