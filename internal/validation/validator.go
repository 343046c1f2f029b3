package validation

import (
	"reflect"
	"strings"

	"leadhub/internal/models"

	"github.com/go-playground/validator/v10"
)

// Validator wraps the go-playground validator with custom rules and
// JSON-tag-based field naming.
type Validator struct {
	validate *validator.Validate
}

// GetValidate returns the underlying validator.Validate instance for use with Echo
func (v *Validator) GetValidate() *validator.Validate {
	return v.validate
}

// singleton instance of the validator
var instance *Validator

// GetValidator returns the singleton validator instance
func GetValidator() *Validator {
	if instance == nil {
		instance = NewValidator()
	}
	return instance
}

// NewValidator creates a new validator instance with custom rules and configuration
func NewValidator() *Validator {
	v := validator.New()

	_ = v.RegisterValidation("lead_status", validateLeadStatus)
	_ = v.RegisterValidation("aggregation", validateAggregation)

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v}
}

// Custom validation functions

// validateLeadStatus checks membership in the closed lead status enum
func validateLeadStatus(fl validator.FieldLevel) bool {
	return models.IsValidLeadStatus(fl.Field().String())
}

// validateAggregation checks membership in the closed aggregation enum
func validateAggregation(fl validator.FieldLevel) bool {
	_, err := models.ParseAggregation(fl.Field().String())
	return err == nil
}
