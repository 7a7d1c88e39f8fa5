// Package rounding holds the two-decimal rounding applied to prices and fee amounts.
package rounding

import "math"

// Round2 rounds x to two decimal places, halves away from zero.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}
