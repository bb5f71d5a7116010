package finance

import (
	"math"

	"github.com/ItsMattG/property-tracker-sub009/internal/domain"
)

// YearlyDeduction returns the annual depreciation deduction for an asset.
//
// prime_cost spreads the cost evenly over the effective life;
// diminishing_value uses the fixed 200% declining-balance rate, so it is
// exactly double the prime-cost deduction for the same inputs.
//
// Returns 0 for non-positive cost or life, or an unknown method — fails soft
// so a half-filled form never divides by zero. This is the single definition
// used by both the preview and report paths.
func YearlyDeduction(originalCost, effectiveLife float64, method string) float64 {
	if originalCost <= 0 || effectiveLife <= 0 {
		return 0
	}

	switch method {
	case domain.MethodPrimeCost:
		return round2(originalCost / effectiveLife)
	case domain.MethodDiminishingValue:
		return round2(originalCost * 2 / effectiveLife)
	default:
		return 0
	}
}

// round2 rounds to two decimal places (cents).
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
