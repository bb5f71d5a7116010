package finance_test

import (
	"testing"
	"time"

	"github.com/ItsMattG/property-tracker-sub009/internal/finance"
)

func TestFinancialYearLabel(t *testing.T) {
	cases := []struct {
		date time.Time
		want string
	}{
		{date(2024, time.July, 1), "2024-25"},
		{date(2025, time.June, 30), "2024-25"},
		{date(2025, time.July, 1), "2025-26"},
		{date(2024, time.January, 15), "2023-24"},
	}
	for _, c := range cases {
		if got := finance.FinancialYearLabel(c.date); got != c.want {
			t.Errorf("%s: expected %s, got %s", c.date.Format("2006-01-02"), c.want, got)
		}
	}
}

func TestFinancialYearRange(t *testing.T) {
	start, end, err := finance.FinancialYearRange("2024-25")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !start.Equal(date(2024, time.July, 1)) {
		t.Errorf("expected start 2024-07-01, got %s", start.Format("2006-01-02"))
	}
	if !end.Equal(date(2025, time.June, 30)) {
		t.Errorf("expected end 2025-06-30, got %s", end.Format("2006-01-02"))
	}
}

func TestFinancialYearRange_Invalid(t *testing.T) {
	if _, _, err := finance.FinancialYearRange("2024"); err == nil {
		t.Error("expected error for label without separator")
	}
	if _, _, err := finance.FinancialYearRange("20xx-25"); err == nil {
		t.Error("expected error for non-numeric year")
	}
}

func TestMonthsElapsedInFY(t *testing.T) {
	fyStart := date(2024, time.July, 1)
	cases := []struct {
		now  time.Time
		want int
	}{
		{date(2024, time.June, 30), 0},  // before the FY starts
		{date(2024, time.July, 15), 1},  // first month underway
		{date(2024, time.December, 1), 6},
		{date(2025, time.June, 30), 12},
		{date(2026, time.March, 1), 12}, // clamped after the FY ends
	}
	for _, c := range cases {
		if got := finance.MonthsElapsedInFY(fyStart, c.now); got != c.want {
			t.Errorf("now=%s: expected %d, got %d", c.now.Format("2006-01-02"), c.want, got)
		}
	}
}
