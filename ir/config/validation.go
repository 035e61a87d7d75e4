package config

import (
	"fmt"
	"sort"
	"strings"
)

// Validation helper functions
func validatePositive(field string, value int) []ValidationError {
	if value <= 0 {
		return []ValidationError{{
			Field:   field,
			Message: "must be positive",
		}}
	}
	return nil
}

func validateNonNegative(field string, value int) []ValidationError {
	if value < 0 {
		return []ValidationError{{
			Field:   field,
			Message: "must be non-negative",
		}}
	}
	return nil
}

func validateInRange(field string, value, min, max int) []ValidationError {
	if value < min || value > max {
		return []ValidationError{{
			Field:   field,
			Message: fmt.Sprintf("must be between %v and %v", min, max),
		}}
	}
	return nil
}

// ValidationError represents a structured validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// FormatValidationErrors formats validation errors grouped by category
func FormatValidationErrors(errs []ValidationError) string {
	if len(errs) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("Validation Errors:\n")

	// Group errors by category
	categories := map[string][]ValidationError{}
	for _, err := range errs {
		category := strings.Split(err.Field, ".")[0]
		categories[category] = append(categories[category], err)
	}
	names := make([]string, 0, len(categories))
	for category := range categories {
		names = append(names, category)
	}
	sort.Strings(names)

	for _, category := range names {
		b.WriteString(fmt.Sprintf("\n%s:\n", strings.ToUpper(category)))
		for _, err := range categories[category] {
			// Remove category prefix from field for cleaner display
			field := strings.TrimPrefix(err.Field, category+".")
			if field == category {
				field = "general"
			}
			b.WriteString(fmt.Sprintf("  - %s: %s\n", field, err.Message))
		}
	}

	return b.String()
}

// Validate performs validation on every field set in the preset
func (p *Preset) Validate() []ValidationError {
	var errors []ValidationError
	if p.Ratio != nil {
		errors = append(errors, validateInRange("blend.ratio", *p.Ratio, 0, 100)...)
	}
	if p.HighPass != nil {
		errors = append(errors, validateNonNegative("filter.high_pass", *p.HighPass)...)
	}
	if p.LowPass != nil {
		errors = append(errors, validateNonNegative("filter.low_pass", *p.LowPass)...)
	}
	if p.Order != nil {
		errors = append(errors, validatePositive("filter.order", *p.Order)...)
	}
	if p.NBits != nil {
		errors = append(errors, validatePositive("input.n_bits", *p.NBits)...)
	}
	if p.Output != nil && *p.Output == "" {
		errors = append(errors, ValidationError{
			Field:   "output",
			Message: "output directory must not be empty",
		})
	}
	return errors
}
