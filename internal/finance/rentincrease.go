package finance

import "github.com/ItsMattG/property-tracker-sub009/internal/domain"

// rentIncreaseRules holds the per-jurisdiction notice and frequency rules
// for rent increases on periodic tenancies.
var rentIncreaseRules = map[string]domain.RentIncreaseRule{
	domain.StateNSW: {State: domain.StateNSW, NoticeDays: 60, MaxFrequency: "12 months", FixedTermRule: "Only if the agreement allows it"},
	domain.StateVIC: {State: domain.StateVIC, NoticeDays: 60, MaxFrequency: "12 months", FixedTermRule: "Only at end of fixed term"},
	domain.StateQLD: {State: domain.StateQLD, NoticeDays: 60, MaxFrequency: "12 months", FixedTermRule: "Only if the agreement provides for it"},
	domain.StateWA:  {State: domain.StateWA, NoticeDays: 60, MaxFrequency: "6 months", FixedTermRule: "Only if the agreement allows it"},
	domain.StateSA:  {State: domain.StateSA, NoticeDays: 60, MaxFrequency: "12 months", FixedTermRule: "Only if the agreement allows it"},
	domain.StateTAS: {State: domain.StateTAS, NoticeDays: 60, MaxFrequency: "12 months", FixedTermRule: "Not within the first 12 months of the agreement"},
	domain.StateACT: {State: domain.StateACT, NoticeDays: 56, MaxFrequency: "12 months", FixedTermRule: "Only if the agreement allows it"},
	domain.StateNT:  {State: domain.StateNT, NoticeDays: 30, MaxFrequency: "6 months", FixedTermRule: "Only if the agreement allows it"},
}

// RentIncreaseRule returns the rule for a state, or nil for an unknown
// jurisdiction.
func RentIncreaseRule(state string) *domain.RentIncreaseRule {
	rule, ok := rentIncreaseRules[state]
	if !ok {
		return nil
	}
	return &rule
}
