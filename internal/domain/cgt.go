package domain

import "time"

// Depreciation methods recognised by the ATO for investment property assets.
const (
	MethodPrimeCost        = "prime_cost"
	MethodDiminishingValue = "diminishing_value"
)

// SellingCosts are the disposal costs deducted from the sale price when
// computing net proceeds.
type SellingCosts struct {
	AgentCommission   float64 `json:"agent_commission"`
	LegalFees         float64 `json:"legal_fees"`
	MarketingCosts    float64 `json:"marketing_costs"`
	OtherSellingCosts float64 `json:"other_selling_costs"`
}

// Total sums all selling cost components.
func (s SellingCosts) Total() float64 {
	return s.AgentCommission + s.LegalFees + s.MarketingCosts + s.OtherSellingCosts
}

// CapitalGainInput is everything needed to compute a capital gain on disposal.
// Amounts are AUD; purchaseDate must not be after settlementDate.
type CapitalGainInput struct {
	CostBase       float64      `json:"cost_base"`
	SalePrice      float64      `json:"sale_price"`
	SellingCosts   SellingCosts `json:"selling_costs"`
	PurchaseDate   time.Time    `json:"purchase_date"`
	SettlementDate time.Time    `json:"settlement_date"`
}

// CapitalGainResult is the derived CGT position for a disposal.
// DiscountedGain equals CapitalGain when the gain is non-positive or the
// asset was held under twelve months; otherwise it is halved.
type CapitalGainResult struct {
	TotalSellingCosts    float64 `json:"total_selling_costs"`
	NetProceeds          float64 `json:"net_proceeds"`
	CapitalGain          float64 `json:"capital_gain"`
	DiscountedGain       float64 `json:"discounted_gain"`
	HeldOverTwelveMonths bool    `json:"held_over_twelve_months"`
}

// DepreciationAsset is a depreciable asset attached to a property.
type DepreciationAsset struct {
	ID            string  `json:"id"`
	PropertyID    string  `json:"property_id"`
	Name          string  `json:"name"`
	OriginalCost  float64 `json:"original_cost"`
	EffectiveLife float64 `json:"effective_life"` // years
	Method        string  `json:"method"`
}

// PropertyCGTEstimate is a what-if CGT position for a property sold at its
// current value today.
type PropertyCGTEstimate struct {
	PropertyID string            `json:"property_id"`
	CostBase   float64           `json:"cost_base"`
	SalePrice  float64           `json:"sale_price"`
	Result     CapitalGainResult `json:"result"`
}

// DepreciationEntry is one asset's yearly claim.
type DepreciationEntry struct {
	Asset           DepreciationAsset `json:"asset"`
	YearlyDeduction float64           `json:"yearly_deduction"`
}

// DepreciationReport is the yearly depreciation claim across a set of assets.
type DepreciationReport struct {
	Entries     []DepreciationEntry `json:"entries"`
	TotalYearly float64             `json:"total_yearly"`
}
