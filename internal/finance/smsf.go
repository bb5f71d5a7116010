package finance

import "github.com/ItsMattG/property-tracker-sub009/internal/domain"

// SMSF contribution caps (per member, per financial year).
const (
	ConcessionalCap    = 30000
	NonConcessionalCap = 120000
)

// drawdownBand is one age band of the minimum pension drawdown table.
type drawdownBand struct {
	minAge int
	factor float64 // percent of pension balance
}

// Minimum pension drawdown factors by age at 1 July.
var drawdownBands = []drawdownBand{
	{95, 14},
	{90, 11},
	{85, 9},
	{80, 7},
	{75, 6},
	{65, 5},
	{0, 4},
}

// DrawdownFactor returns the minimum pension drawdown percentage for a
// member of the given age.
func DrawdownFactor(age int) float64 {
	for _, band := range drawdownBands {
		if age >= band.minAge {
			return band.factor
		}
	}
	return 0
}

// SMSFCompliance classifies a fund member's drawdown and contribution
// progress part-way through a financial year.
//
// Contributions: over the cap is a breach, 90% or more of the cap is a
// warning. Pension drawdown is measured against the pro-rata minimum for
// the months elapsed: on track at 100%, a warning from 80%, behind below.
func SMSFCompliance(input domain.SMSFInput) domain.SMSFStatus {
	status := domain.SMSFStatus{
		ConcessionalCap:       ConcessionalCap,
		NonConcessionalCap:    NonConcessionalCap,
		ConcessionalStatus:    contributionStatus(input.ConcessionalToDate, ConcessionalCap),
		NonConcessionalStatus: contributionStatus(input.NonConcessionalToDate, NonConcessionalCap),
	}

	if !input.InPensionPhase {
		status.DrawdownStatus = domain.ComplianceOK
		return status
	}

	status.DrawdownFactor = DrawdownFactor(input.MemberAge)
	status.MinimumDrawdown = round2(input.PensionBalance * status.DrawdownFactor / 100)
	status.DrawdownStatus = drawdownStatus(input.DrawdownToDate, status.MinimumDrawdown, input.MonthsElapsed)
	return status
}

func contributionStatus(toDate, cap float64) domain.ComplianceStatus {
	switch {
	case toDate > cap:
		return domain.ComplianceBreach
	case toDate >= cap*0.9:
		return domain.ComplianceWarning
	default:
		return domain.ComplianceOK
	}
}

func drawdownStatus(toDate, minimum float64, monthsElapsed int) domain.ComplianceStatus {
	if minimum <= 0 {
		return domain.ComplianceOK
	}
	proRata := minimum * float64(monthsElapsed) / 12
	switch {
	case toDate >= proRata:
		return domain.ComplianceOK
	case toDate >= proRata*0.8:
		return domain.ComplianceWarning
	default:
		return domain.ComplianceBehind
	}
}
