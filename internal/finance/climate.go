package finance

import "github.com/ItsMattG/property-tracker-sub009/internal/domain"

// riskRank orders climate risk levels for comparison.
var riskRank = map[domain.RiskLevel]int{
	domain.RiskLow:     0,
	domain.RiskMedium:  1,
	domain.RiskHigh:    2,
	domain.RiskExtreme: 3,
}

// ParseRiskLevel maps a stored string to a RiskLevel, defaulting unknown or
// empty values to low.
func ParseRiskLevel(s string) domain.RiskLevel {
	level := domain.RiskLevel(s)
	if _, ok := riskRank[level]; !ok {
		return domain.RiskLow
	}
	return level
}

// OverallRisk is the higher of the flood and bushfire ratings.
func OverallRisk(flood, bushfire domain.RiskLevel) domain.RiskLevel {
	if riskRank[bushfire] > riskRank[flood] {
		return bushfire
	}
	return flood
}
