package fee

import (
	"fmt"

	"clinic/internal/models"
	"clinic/internal/validation"
)

// ValidateFeeSpec checks a fee spec before it is persisted or used in a calculation.
// field names the spec in the returned errors, e.g. "doctor_fee".
func ValidateFeeSpec(field string, spec *models.FeeSpec) error {
	if spec == nil {
		return nil
	}

	v := validation.New()
	CheckFeeSpec(v, field, spec)
	return v.Err()
}

// CheckFeeSpec records fee spec violations on an existing validator.
func CheckFeeSpec(v *validation.Validator, field string, spec *models.FeeSpec) {
	if spec == nil {
		return
	}

	switch spec.Type {
	case models.FeeTypePercentage, models.FeeTypeFixed:
	default:
		v.AddError(field+".type", fmt.Sprintf("must be %s or %s", models.FeeTypePercentage, models.FeeTypeFixed))
		return
	}

	v.Check(spec.Amount >= 0, field+".amount", "must not be negative")
	if spec.Type == models.FeeTypePercentage {
		v.Check(spec.Amount <= 100, field+".amount", "must not exceed 100 for a percentage fee")
	}
}
