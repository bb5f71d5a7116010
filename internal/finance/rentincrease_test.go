package finance_test

import (
	"testing"

	"github.com/ItsMattG/property-tracker-sub009/internal/finance"
)

func TestRentIncreaseRule_VIC(t *testing.T) {
	rule := finance.RentIncreaseRule("VIC")
	if rule == nil {
		t.Fatal("expected a rule for VIC, got nil")
	}
	if rule.NoticeDays != 60 {
		t.Errorf("expected 60 notice days, got %d", rule.NoticeDays)
	}
	if rule.MaxFrequency != "12 months" {
		t.Errorf("expected max frequency '12 months', got %q", rule.MaxFrequency)
	}
	if rule.FixedTermRule != "Only at end of fixed term" {
		t.Errorf("unexpected fixed term rule: %q", rule.FixedTermRule)
	}
}

func TestRentIncreaseRule_AllJurisdictionsPresent(t *testing.T) {
	states := []string{"NSW", "VIC", "QLD", "WA", "SA", "TAS", "ACT", "NT"}
	for _, s := range states {
		rule := finance.RentIncreaseRule(s)
		if rule == nil {
			t.Errorf("expected a rule for %s, got nil", s)
			continue
		}
		if rule.State != s {
			t.Errorf("rule for %s carries state %s", s, rule.State)
		}
		if rule.NoticeDays <= 0 {
			t.Errorf("rule for %s has no notice period", s)
		}
	}
}

func TestRentIncreaseRule_UnknownState(t *testing.T) {
	if rule := finance.RentIncreaseRule("XX"); rule != nil {
		t.Errorf("expected nil for unknown state, got %+v", rule)
	}
}
