package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Tag     string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}

	switch e.Tag {
	case "required":
		return fmt.Sprintf("%s is required", e.Field)
	case "min":
		return fmt.Sprintf("%s is below the allowed minimum", e.Field)
	case "max":
		return fmt.Sprintf("%s is above the allowed maximum", e.Field)
	default:
		return fmt.Sprintf("%s failed validation", e.Field)
	}
}

// ValidationErrors represents multiple validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var messages []string
	for _, err := range e {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(messages, "; "))
}

// Validator provides configuration validation.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new configuration validator.
func NewValidator() *Validator {
	return &Validator{validate: validator.New()}
}

// Validate checks an evolution configuration against its struct tags plus
// the cross-field rules the tags cannot express.
func (v *Validator) Validate(cfg EvolutionConfig) error {
	var validationErrors ValidationErrors

	if err := v.validate.Struct(cfg); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok {
			for _, e := range errs {
				validationErrors = append(validationErrors, ValidationError{
					Field: e.Field(),
					Tag:   e.Tag(),
					Value: e.Value(),
				})
			}
		} else {
			validationErrors = append(validationErrors, ValidationError{
				Message: err.Error(),
			})
		}
	}

	// Elitism must leave at least one slot for offspring, or the population
	// never explores.
	if cfg.EliteCount >= cfg.PopulationSize && cfg.PopulationSize > 0 {
		validationErrors = append(validationErrors, ValidationError{
			Field:   "EliteCount",
			Tag:     "ltfield",
			Value:   cfg.EliteCount,
			Message: fmt.Sprintf("elite_count (%d) must be less than population_size (%d)", cfg.EliteCount, cfg.PopulationSize),
		})
	}

	if len(validationErrors) > 0 {
		return validationErrors
	}
	return nil
}
