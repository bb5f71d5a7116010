// Package finance holds the pure calculator core: capital gains tax,
// depreciation, rental yield, benchmarking, tax forecasting, compliance
// rules, anomaly and milestone detection.
//
// Every function here is synchronous and side-effect free, operating on
// values the caller already fetched. Out-of-range numeric input degrades to
// a zero/nil result instead of an error: these functions are called
// speculatively (e.g. while a user is still typing into a form) where a
// crash would be worse than a harmless zero.
package finance

import (
	"math"

	"github.com/ItsMattG/property-tracker-sub009/internal/domain"
)

// acquisitionCostCategories are the transaction categories that form part of
// a property's CGT cost base.
var acquisitionCostCategories = map[string]bool{
	domain.CategoryStampDuty:       true,
	domain.CategoryConveyancing:    true,
	domain.CategoryBuyersAgentFees: true,
	domain.CategoryInitialRepairs:  true,
}

// CostBase returns the CGT cost base: purchase price plus eligible
// acquisition costs. Expense transactions are stored negative, so absolute
// values are summed.
func CostBase(purchasePrice float64, capitalTransactions []domain.Transaction) float64 {
	costBase := purchasePrice
	for _, tx := range capitalTransactions {
		if acquisitionCostCategories[tx.Category] {
			costBase += math.Abs(tx.Amount)
		}
	}
	return costBase
}

// CapitalGain computes the CGT position for a disposal. The 50% discount
// applies only when the asset was held twelve or more calendar months AND
// the gain is positive; a loss is never discounted. Inputs are assumed
// pre-validated; negative values produce mathematically consistent output
// rather than an error.
func CapitalGain(input domain.CapitalGainInput) domain.CapitalGainResult {
	totalSellingCosts := input.SellingCosts.Total()
	netProceeds := input.SalePrice - totalSellingCosts
	capitalGain := netProceeds - input.CostBase

	held := monthsBetween(input.PurchaseDate, input.SettlementDate) >= 12

	discountedGain := capitalGain
	if held && capitalGain > 0 {
		discountedGain = capitalGain * 0.5
	}

	return domain.CapitalGainResult{
		TotalSellingCosts:    totalSellingCosts,
		NetProceeds:          netProceeds,
		CapitalGain:          capitalGain,
		DiscountedGain:       discountedGain,
		HeldOverTwelveMonths: held,
	}
}
