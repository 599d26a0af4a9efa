package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/FissureBot_Go/internal/domain"
)

// Validator wraps the validator instance
type Validator struct {
	validate *validator.Validate
}

// Global validator instance
var validate *Validator

// InitValidator initializes the global validator
func InitValidator() {
	v := validator.New()

	_ = v.RegisterValidation("runstyle", validateRunStyle)
	_ = v.RegisterValidation("refinement", validateRefinement)
	_ = v.RegisterValidation("prioritymode", validatePriorityMode)
	_ = v.RegisterValidation("fissurecategory", validateFissureCategory)

	validate = &Validator{validate: v}
}

// GetValidator returns the global validator instance
func GetValidator() *Validator {
	if validate == nil {
		InitValidator()
	}
	return validate
}

// ValidateStruct validates a struct using tags
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

// FormatValidationError formats validation errors into a user-friendly map
// keyed by the lower-cased field name.
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	errs := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errs["error"] = "Invalid request format"
		return errs
	}

	for _, e := range validationErrors {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			errs[field] = "This field is required"
		case "runstyle":
			errs[field] = fmt.Sprintf("Unknown run style. Valid options: %s", joinStyles())
		case "refinement":
			errs[field] = "Unknown refinement. Valid options: intact, exceptional, flawless, radiant"
		case "prioritymode":
			errs[field] = "Unknown priority mode. Valid options: auto, plat, ducat"
		case "fissurecategory":
			errs[field] = "Unknown fissure category. Valid options: normal, steelpath, voidstorm"
		case "oneof":
			errs[field] = fmt.Sprintf("Must be one of: %s", e.Param())
		case "max":
			errs[field] = fmt.Sprintf("Must be at most %s", e.Param())
		case "min":
			errs[field] = fmt.Sprintf("Must be at least %s", e.Param())
		default:
			errs[field] = "Invalid value"
		}
	}

	return errs
}

func validateRunStyle(fl validator.FieldLevel) bool {
	_, ok := domain.ParseRunStyle(fl.Field().String())
	return ok
}

// Empty is allowed; the service defaults it.
func validateRefinement(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true
	}
	_, ok := domain.ParseRefinement(s)
	return ok
}

func validatePriorityMode(fl validator.FieldLevel) bool {
	_, ok := domain.ParsePriorityMode(fl.Field().String())
	return ok
}

func validateFissureCategory(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true
	}
	_, ok := domain.ParseFissureCategory(s)
	return ok
}

func joinStyles() string {
	names := make([]string, len(domain.Styles))
	for i, s := range domain.Styles {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}
