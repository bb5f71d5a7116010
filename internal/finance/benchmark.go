package finance

import "github.com/ItsMattG/property-tracker-sub009/internal/domain"

// State-level reference tables. These move with insurer pricing and council
// budgets, not at runtime, so they ship as constants.

// insuranceRatePer100k is the average annual landlord insurance premium per
// $100,000 of property value.
var insuranceRatePer100k = map[string]float64{
	domain.StateNSW: 180,
	domain.StateVIC: 165,
	domain.StateQLD: 210,
	domain.StateWA:  175,
	domain.StateSA:  160,
	domain.StateTAS: 150,
	domain.StateACT: 170,
	domain.StateNT:  260,
}

// councilRatesPer100k is the average annual council rates per $100,000 of
// property value.
var councilRatesPer100k = map[string]float64{
	domain.StateNSW: 280,
	domain.StateVIC: 300,
	domain.StateQLD: 320,
	domain.StateWA:  290,
	domain.StateSA:  310,
	domain.StateTAS: 330,
	domain.StateACT: 380,
	domain.StateNT:  270,
}

// managementFeePct is the average property management fee as a percentage of
// rent collected.
var managementFeePct = map[string]float64{
	domain.StateNSW: 5.5,
	domain.StateVIC: 6.0,
	domain.StateQLD: 7.5,
	domain.StateWA:  8.5,
	domain.StateSA:  8.0,
	domain.StateTAS: 8.0,
	domain.StateACT: 6.5,
	domain.StateNT:  9.0,
}

// aboveThresholdRatio: spend has to exceed the state average by more than
// 15% before it is flagged as "above". Exactly 1.15x resolves to "average".
const aboveThresholdRatio = 1.15

// InsuranceBenchmark compares an annual insurance premium against the state
// average for a property of the given value. Returns nil when there is
// nothing to compare (zero premium, zero value, unknown state).
func InsuranceBenchmark(annualPremium, propertyValue float64, state string) *domain.CategoryBenchmark {
	rate, ok := insuranceRatePer100k[state]
	if !ok || annualPremium <= 0 || propertyValue <= 0 {
		return nil
	}
	average := propertyValue / 100000 * rate
	return compare(domain.CategoryInsurance, annualPremium, average)
}

// CouncilRatesBenchmark compares annual council rates against the state
// average for a property of the given value.
func CouncilRatesBenchmark(annualRates, propertyValue float64, state string) *domain.CategoryBenchmark {
	rate, ok := councilRatesPer100k[state]
	if !ok || annualRates <= 0 || propertyValue <= 0 {
		return nil
	}
	average := propertyValue / 100000 * rate
	return compare(domain.CategoryCouncilRates, annualRates, average)
}

// ManagementFeeBenchmark compares management fees as a percentage of rent,
// not raw dollars, so properties of different rents are comparable. The
// resulting amounts (and potential savings) are percentage points.
func ManagementFeeBenchmark(annualFees, annualRent float64, state string) *domain.CategoryBenchmark {
	avgPct, ok := managementFeePct[state]
	if !ok || annualFees <= 0 || annualRent <= 0 {
		return nil
	}
	userPct := annualFees / annualRent * 100
	return compare(domain.CategoryManagementFees, userPct, avgPct)
}

// compare applies the shared status rule: above when user exceeds average by
// more than 15%, below when under the average, otherwise average. The ratio
// comparison keeps the exact-1.15x boundary on the "average" side, which
// multiplying the average by 1.15 would not (1035/900 == 1.15, but
// 900*1.15 < 1035 in float arithmetic).
func compare(category string, userAmount, averageAmount float64) *domain.CategoryBenchmark {
	b := &domain.CategoryBenchmark{
		Category:      category,
		UserAmount:    userAmount,
		AverageAmount: averageAmount,
	}
	switch {
	case userAmount/averageAmount > aboveThresholdRatio:
		b.Status = domain.BenchmarkAbove
		b.PotentialSavings = userAmount - averageAmount
	case userAmount < averageAmount:
		b.Status = domain.BenchmarkBelow
	default:
		b.Status = domain.BenchmarkAverage
	}
	return b
}
