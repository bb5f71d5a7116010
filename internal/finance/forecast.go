package finance

import "github.com/ItsMattG/property-tracker-sub009/internal/domain"

// CategoryForecast projects a full-financial-year total for one category
// from partial-year actuals.
//
// When prior-year data exists the forecast carries forward the prior year's
// value for each calendar month missing from the current year's totals.
// This handles lumpy categories — an annual insurance premium paid once in
// March is forecast for March again, not smeared across the year. Without
// prior data the actual is annualized proportionally to months elapsed.
func CategoryForecast(currentMonths, priorMonths domain.MonthlyTotals, monthsElapsed int) (actual, forecast float64) {
	for _, v := range currentMonths {
		actual += v
	}

	if len(priorMonths) > 0 {
		forecast = actual
		for month := 1; month <= 12; month++ {
			if _, seen := currentMonths[month]; !seen {
				forecast += priorMonths[month]
			}
		}
		return actual, forecast
	}

	if monthsElapsed > 0 {
		return actual, actual / float64(monthsElapsed) * 12
	}
	return actual, 0
}

// Confidence rates a forecast: high with a near-complete year or a full
// prior year to lean on, medium from four months of actuals, low otherwise.
func Confidence(monthsElapsed int, hasPriorYear bool) domain.ForecastConfidence {
	switch {
	case monthsElapsed >= 9 || hasPriorYear:
		return domain.ConfidenceHigh
	case monthsElapsed >= 4:
		return domain.ConfidenceMedium
	default:
		return domain.ConfidenceLow
	}
}
