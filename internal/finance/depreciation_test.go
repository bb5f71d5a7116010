package finance_test

import (
	"testing"

	"github.com/ItsMattG/property-tracker-sub009/internal/domain"
	"github.com/ItsMattG/property-tracker-sub009/internal/finance"
)

func TestYearlyDeduction_PrimeCost(t *testing.T) {
	got := finance.YearlyDeduction(12000, 10, domain.MethodPrimeCost)
	if got != 1200 {
		t.Errorf("expected 1200, got %.2f", got)
	}
}

func TestYearlyDeduction_DiminishingValue(t *testing.T) {
	got := finance.YearlyDeduction(12000, 10, domain.MethodDiminishingValue)
	if got != 2400 {
		t.Errorf("expected 2400, got %.2f", got)
	}
}

func TestYearlyDeduction_DiminishingIsDoublePrime(t *testing.T) {
	cases := []struct {
		cost float64
		life float64
	}{
		{5000, 4},
		{1999.99, 7},
		{250000, 40},
		{833.33, 3},
	}
	for _, c := range cases {
		prime := finance.YearlyDeduction(c.cost, c.life, domain.MethodPrimeCost)
		dim := finance.YearlyDeduction(c.cost, c.life, domain.MethodDiminishingValue)
		// Both sides round to cents independently, so allow a cent of drift.
		if diff := dim - 2*prime; diff > 0.01 || diff < -0.01 {
			t.Errorf("cost=%.2f life=%.0f: diminishing %.2f is not double prime %.2f",
				c.cost, c.life, dim, prime)
		}
	}
}

func TestYearlyDeduction_GuardsInvalidInput(t *testing.T) {
	cases := []struct {
		name   string
		cost   float64
		life   float64
		method string
	}{
		{"zero cost", 0, 10, domain.MethodPrimeCost},
		{"negative cost", -500, 10, domain.MethodDiminishingValue},
		{"zero life", 10000, 0, domain.MethodPrimeCost},
		{"negative life", 10000, -3, domain.MethodDiminishingValue},
		{"unknown method", 10000, 10, "straight_line"},
	}
	for _, c := range cases {
		if got := finance.YearlyDeduction(c.cost, c.life, c.method); got != 0 {
			t.Errorf("%s: expected 0, got %.2f", c.name, got)
		}
	}
}

func TestYearlyDeduction_RoundsToCents(t *testing.T) {
	// 1000 / 3 = 333.333... -> 333.33
	if got := finance.YearlyDeduction(1000, 3, domain.MethodPrimeCost); got != 333.33 {
		t.Errorf("expected 333.33, got %.2f", got)
	}
}
