package validator

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/SAP-F-2025/certification-service/internal/models"
	"github.com/go-playground/validator/v10"
)

// Validator is the main validator instance that combines all validation types
type Validator struct {
	structValidator   *validator.Validate
	businessValidator *BusinessValidator
}

// New creates a new centralized validator instance
func New() *Validator {
	structValidator := validator.New()

	// Register all custom validators once
	registerCustomValidators(structValidator)

	return &Validator{
		structValidator:   structValidator,
		businessValidator: NewBusinessValidator(),
	}
}

// ValidateStruct validates struct tags only
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.structValidator.Struct(s)
}

// ValidateBusiness validates business rules only
func (v *Validator) ValidateBusiness(s interface{}) ValidationErrors {
	return v.businessValidator.Validate(s)
}

// Validate performs complete validation (struct + business rules)
func (v *Validator) Validate(s interface{}) error {
	if err := v.ValidateStruct(s); err != nil {
		if errs := ToValidationErrors(err); len(errs) > 0 {
			return errs
		}
		return err
	}

	if errors := v.ValidateBusiness(s); len(errors) > 0 {
		return errors
	}

	return nil
}

// Business returns the business validator
func (v *Validator) Business() *BusinessValidator {
	return v.businessValidator
}

// registerCustomValidators registers all custom validation functions
func registerCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("answer_result", validateAnswerResult)
	validate.RegisterValidation("challenge_type", validateChallengeType)
	validate.RegisterValidation("competence_index", validateCompetenceIndex)

	// Custom tag name function for better error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

func validateAnswerResult(fl validator.FieldLevel) bool {
	return models.AnswerResult(fl.Field().String()).IsValid()
}

func validateChallengeType(fl validator.FieldLevel) bool {
	validTypes := []models.ChallengeType{
		models.ChallengeQCM,
		models.ChallengeQCU,
		models.ChallengeQROC,
		models.ChallengeQROCMInd,
		models.ChallengeQROCMDep,
	}

	value := fl.Field().String()
	for _, validType := range validTypes {
		if string(validType) == value {
			return true
		}
	}
	return false
}

var competenceIndexPattern = regexp.MustCompile(`^\d+\.\d+$`)

func validateCompetenceIndex(fl validator.FieldLevel) bool {
	return competenceIndexPattern.MatchString(fl.Field().String())
}
