package validation

import (
	"sort"
	"strings"

	apperrors "clinic/internal/errors"
)

// Errors maps a field name to the first problem found with it.
type Errors map[string]string

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = f + ": " + e[f]
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e Errors) Unwrap() error {
	return apperrors.ErrValidation
}

// Field builds a single-field validation error.
func Field(field, message string) error {
	return Errors{field: message}
}
