package finance

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Australian financial year: 1 July to 30 June.

// FinancialYearLabel returns the FY label containing t, e.g. "2024-25" for
// any date from 1 Jul 2024 to 30 Jun 2025.
func FinancialYearLabel(t time.Time) string {
	startYear := t.Year()
	if t.Month() < time.July {
		startYear--
	}
	return fmt.Sprintf("%d-%02d", startYear, (startYear+1)%100)
}

// FinancialYearRange parses a label like "2024-25" into the FY's first and
// last calendar day.
func FinancialYearRange(label string) (start, end time.Time, err error) {
	parts := strings.SplitN(label, "-", 2)
	if len(parts) != 2 {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid financial year %q (expected YYYY-YY)", label)
	}
	startYear, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid financial year %q: %w", label, err)
	}
	start = time.Date(startYear, time.July, 1, 0, 0, 0, 0, time.UTC)
	end = time.Date(startYear+1, time.June, 30, 0, 0, 0, 0, time.UTC)
	return start, end, nil
}

// MonthsElapsedInFY counts the months of the FY starting at fyStart that have
// begun by now, inclusive of the current month. Clamped to [0, 12].
func MonthsElapsedInFY(fyStart, now time.Time) int {
	if now.Before(fyStart) {
		return 0
	}
	months := monthsBetween(fyStart, now) + 1
	if months > 12 {
		return 12
	}
	return months
}

// monthsBetween is the calendar year/month difference between two dates,
// ignoring the day component.
func monthsBetween(from, to time.Time) int {
	return (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
}
