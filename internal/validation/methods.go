package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Validator collects field errors
type Validator struct {
	Errors Errors
}

// New creates a new validator
func New() *Validator {
	return &Validator{Errors: make(Errors)}
}

// Valid checks if there are any validation errors
func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

// AddError adds an error to the validator, keeping the first message per field
func (v *Validator) AddError(field, message string) {
	if _, exists := v.Errors[field]; !exists {
		v.Errors[field] = message
	}
}

// Check adds an error if the condition is false
func (v *Validator) Check(ok bool, field, message string) {
	if !ok {
		v.AddError(field, message)
	}
}

// Err returns the collected errors, or nil when valid
func (v *Validator) Err() error {
	if v.Valid() {
		return nil
	}
	return v.Errors
}

// Email validates email format using the validator "email" tag
func (v *Validator) Email(field, email string) {
	v.Check(instance().Var(email, "email") == nil, field, "must be a valid email address")
}

// Required checks if a string is not blank
func (v *Validator) Required(field, value string) {
	v.Check(strings.TrimSpace(value) != "", field, "must not be empty")
}

// MaxLength checks if a string has at most n characters
func (v *Validator) MaxLength(field, value string, n int) {
	v.Check(utf8.RuneCountInString(value) <= n, field, fmt.Sprintf("must not be more than %d characters long", n))
}

// MinLength checks if a string has at least n characters
func (v *Validator) MinLength(field, value string, n int) {
	v.Check(utf8.RuneCountInString(value) >= n, field, fmt.Sprintf("must be at least %d characters long", n))
}

// NonNegative checks that a number is zero or greater
func (v *Validator) NonNegative(field string, value float64) {
	v.Check(value >= 0, field, "must not be negative")
}

// Range checks if a number is between min and max
func (v *Validator) Range(field string, value float64, min, max float64) {
	v.Check(value >= min && value <= max, field, fmt.Sprintf("must be between %v and %v", min, max))
}

// OneOf checks that value is one of the allowed values
func OneOf[T comparable](v *Validator, field string, value T, allowed ...T) {
	for _, a := range allowed {
		if a == value {
			return
		}
	}
	parts := make([]string, len(allowed))
	for i, a := range allowed {
		parts[i] = fmt.Sprint(a)
	}
	v.AddError(field, "must be one of "+strings.Join(parts, ", "))
}
