package domain

// MonthlyTotals maps calendar month number (1-12) to a monetary total.
// Used for both the current (partial) financial year and the prior one.
type MonthlyTotals map[int]float64

// ForecastConfidence rates how much history backs a forecast.
type ForecastConfidence string

const (
	ConfidenceHigh   ForecastConfidence = "high"
	ConfidenceMedium ForecastConfidence = "medium"
	ConfidenceLow    ForecastConfidence = "low"
)

// CategoryForecast is the projected full-FY total for one expense or income
// category: actuals to date plus the forecast for the remaining months.
type CategoryForecast struct {
	Category string  `json:"category"`
	Actual   float64 `json:"actual"`
	Forecast float64 `json:"forecast"`
}

// TaxForecastReport projects a user's full-financial-year position from
// partial-year actuals.
type TaxForecastReport struct {
	FinancialYear string             `json:"financial_year"` // e.g. "2024-25"
	MonthsElapsed int                `json:"months_elapsed"`
	Categories    []CategoryForecast `json:"categories"`
	TotalActual   float64            `json:"total_actual"`
	TotalForecast float64            `json:"total_forecast"`
	Confidence    ForecastConfidence `json:"confidence"`
	HasPriorYear  bool               `json:"has_prior_year"`
}
