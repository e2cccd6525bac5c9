package validation

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/flowloop/momentum-api/internal/models"
)

var (
	// Validate is a shared validator instance
	Validate *validator.Validate
)

func init() {
	Validate = validator.New()

	// Register custom validators for enums
	if err := Validate.RegisterValidation("analysis_type", validateAnalysisType); err != nil {
		panic(fmt.Sprintf("failed to register analysis_type validator: %v", err))
	}
	if err := Validate.RegisterValidation("task_priority", validateTaskPriority); err != nil {
		panic(fmt.Sprintf("failed to register task_priority validator: %v", err))
	}
}

// validateAnalysisType validates that a string is a supported analysis type
func validateAnalysisType(fl validator.FieldLevel) bool {
	return models.AnalysisType(fl.Field().String()).Valid()
}

// validateTaskPriority validates that a string is a valid task priority value
func validateTaskPriority(fl validator.FieldLevel) bool {
	switch models.TaskPriority(fl.Field().String()) {
	case models.TaskPriorityLow, models.TaskPriorityMedium, models.TaskPriorityHigh:
		return true
	default:
		return false
	}
}

// SanitizeText sanitizes text input by trimming whitespace and removing control characters
func SanitizeText(text string) string {
	text = strings.TrimSpace(text)

	// Remove control characters except newline and tab
	var sanitized strings.Builder
	for _, r := range text {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			continue
		}
		sanitized.WriteRune(r)
	}

	return sanitized.String()
}

// ValidateAnalysisType validates an analysis type string value
func ValidateAnalysisType(value string) error {
	if !models.AnalysisType(value).Valid() {
		return fmt.Errorf("invalid analysis type: %s", value)
	}
	return nil
}
