package domain

import "time"

// Transaction categories. Expense amounts are stored negative, income positive.
const (
	CategoryRent            = "rent"
	CategoryInsurance       = "insurance"
	CategoryCouncilRates    = "council_rates"
	CategoryManagementFees  = "management_fees"
	CategoryRepairs         = "repairs"
	CategoryInterest        = "loan_interest"
	CategoryStampDuty       = "stamp_duty"
	CategoryConveyancing    = "conveyancing"
	CategoryBuyersAgentFees = "buyers_agent_fees"
	CategoryInitialRepairs  = "initial_repairs"
)

// Transaction is a single bank-feed or manually entered transaction
// attributed to a property.
type Transaction struct {
	ID          string    `json:"id"`
	PropertyID  string    `json:"property_id"`
	UserID      string    `json:"user_id"`
	Date        time.Time `json:"date"`
	Amount      float64   `json:"amount"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
}

// ExpectedTransaction is a recurring transaction the system expects to see,
// e.g. fortnightly rent. AlertDelayDays is the grace period before a missing
// occurrence is treated as an anomaly.
type ExpectedTransaction struct {
	ID             string    `json:"id"`
	PropertyID     string    `json:"property_id"`
	UserID         string    `json:"user_id"`
	Category       string    `json:"category"`
	Amount         float64   `json:"amount"`
	FrequencyDays  int       `json:"frequency_days"`
	NextExpected   time.Time `json:"next_expected"`
	AlertDelayDays int       `json:"alert_delay_days"`
	Active         bool      `json:"active"`
}
