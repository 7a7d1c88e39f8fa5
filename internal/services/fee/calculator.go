// Package fee derives VAT and professional fee amounts for a treatment.
package fee

import (
	"clinic/internal/models"
	"clinic/internal/utils/rounding"
)

// VatRate is the fixed VAT percentage included in VAT-inclusive prices.
const VatRate = 7

// Calculation is the derived pricing of a treatment.
type Calculation struct {
	VatAmount          float64 `json:"vat_amount"`
	PriceExcludingVat  float64 `json:"price_excluding_vat"`
	DoctorFeeAmount    float64 `json:"doctor_fee_amount"`
	AssistantFeeAmount float64 `json:"assistant_fee_amount"`
	TotalPrice         float64 `json:"total_price"`
}

// ComputeFees prices a treatment. The fee specs are trusted to have passed
// ValidateFeeSpec; nil specs contribute a zero amount.
//
// TotalPrice is the rounded base price; fee amounts are not added to it.
func ComputeFees(price float64, includeVat bool, doctorFee, assistantFee *models.FeeSpec) Calculation {
	priceExcludingVat := price
	vatAmount := 0.0
	if includeVat {
		priceExcludingVat = rounding.Round2(price * 100 / (100 + VatRate))
		vatAmount = rounding.Round2(price * VatRate / (100 + VatRate))
	}

	return Calculation{
		VatAmount:          vatAmount,
		PriceExcludingVat:  priceExcludingVat,
		DoctorFeeAmount:    feeAmount(priceExcludingVat, doctorFee),
		AssistantFeeAmount: feeAmount(priceExcludingVat, assistantFee),
		TotalPrice:         rounding.Round2(price),
	}
}

// ForTreatment computes fees from a treatment's persisted values.
func ForTreatment(t *models.Treatment) Calculation {
	return ComputeFees(t.Price, t.IncludeVat, t.DoctorFee, t.AssistantFee)
}

func feeAmount(base float64, spec *models.FeeSpec) float64 {
	if spec == nil {
		return 0
	}
	switch spec.Type {
	case models.FeeTypePercentage:
		return rounding.Round2(base * spec.Amount / 100)
	default:
		return spec.Amount
	}
}
