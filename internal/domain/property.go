package domain

import "time"

// Australian states and territories, used as keys into the benchmark and
// compliance reference tables.
const (
	StateNSW = "NSW"
	StateVIC = "VIC"
	StateQLD = "QLD"
	StateWA  = "WA"
	StateSA  = "SA"
	StateTAS = "TAS"
	StateACT = "ACT"
	StateNT  = "NT"
)

// Property is an investment property owned by a user.
type Property struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	Address       string    `json:"address"`
	Suburb        string    `json:"suburb"`
	State         string    `json:"state"`
	Postcode      string    `json:"postcode"`
	PurchasePrice float64   `json:"purchase_price"`
	PurchaseDate  time.Time `json:"purchase_date"`
	CurrentValue  float64   `json:"current_value"`
	WeeklyRent    float64   `json:"weekly_rent"`
	Status        string    `json:"status"` // active, sold, archived
	FloodRisk     string    `json:"flood_risk,omitempty"`
	BushfireRisk  string    `json:"bushfire_risk,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// Loan is a mortgage secured against a property.
type Loan struct {
	ID             string    `json:"id"`
	PropertyID     string    `json:"property_id"`
	Lender         string    `json:"lender"`
	CurrentBalance float64   `json:"current_balance"`
	InterestRate   float64   `json:"interest_rate"` // annual, percent
	LoanType       string    `json:"loan_type"`     // variable, fixed, interest_only
	CreatedAt      time.Time `json:"created_at"`
}

// Valuation is a point-in-time estimate of a property's market value.
type Valuation struct {
	ID         string    `json:"id"`
	PropertyID string    `json:"property_id"`
	Value      float64   `json:"value"`
	Source     string    `json:"source"` // manual, avm, appraisal
	ValuedAt   time.Time `json:"valued_at"`
}

// PortfolioMetrics summarizes a user's whole portfolio at a point in time.
type PortfolioMetrics struct {
	UserID        string  `json:"user_id"`
	TotalValue    float64 `json:"total_value"`
	TotalDebt     float64 `json:"total_debt"`
	TotalEquity   float64 `json:"total_equity"`
	LVR           float64 `json:"lvr"` // percent; 0 when the portfolio has no value
	PropertyCount int     `json:"property_count"`
	GrossYield    float64 `json:"gross_yield"`
	NetYield      float64 `json:"net_yield"`
}

// PropertyYield is the rental return position for a single property over the
// trailing twelve months.
type PropertyYield struct {
	PropertyID     string  `json:"property_id"`
	PropertyValue  float64 `json:"property_value"`
	AnnualRent     float64 `json:"annual_rent"`
	AnnualExpenses float64 `json:"annual_expenses"`
	GrossYield     float64 `json:"gross_yield"`
	NetYield       float64 `json:"net_yield"`
}

// RiskLevel is an ordered climate risk rating.
type RiskLevel string

const (
	RiskLow     RiskLevel = "low"
	RiskMedium  RiskLevel = "medium"
	RiskHigh    RiskLevel = "high"
	RiskExtreme RiskLevel = "extreme"
)

// ClimateRisk is a per-property climate risk assessment. OverallRisk is the
// higher of the flood and bushfire ratings.
type ClimateRisk struct {
	PropertyID   string    `json:"property_id"`
	FloodRisk    RiskLevel `json:"flood_risk"`
	BushfireRisk RiskLevel `json:"bushfire_risk"`
	OverallRisk  RiskLevel `json:"overall_risk"`
}
