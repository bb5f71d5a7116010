package finance_test

import (
	"testing"

	"github.com/ItsMattG/property-tracker-sub009/internal/domain"
	"github.com/ItsMattG/property-tracker-sub009/internal/finance"
)

func TestDrawdownFactor_AgeBands(t *testing.T) {
	cases := []struct {
		age  int
		want float64
	}{
		{55, 4},
		{64, 4},
		{65, 5},
		{74, 5},
		{75, 6},
		{80, 7},
		{85, 9},
		{90, 11},
		{95, 14},
		{101, 14},
	}
	for _, c := range cases {
		if got := finance.DrawdownFactor(c.age); got != c.want {
			t.Errorf("age %d: expected factor %.0f, got %.0f", c.age, c.want, got)
		}
	}
}

func TestSMSFCompliance_DrawdownOnTrack(t *testing.T) {
	status := finance.SMSFCompliance(domain.SMSFInput{
		MemberAge:      70,
		PensionBalance: 800000,
		DrawdownToDate: 20000, // pro-rata minimum at 6 months is 20000
		MonthsElapsed:  6,
		InPensionPhase: true,
	})

	if status.MinimumDrawdown != 40000 {
		t.Errorf("expected minimum drawdown 40000 (5%% of 800k), got %.2f", status.MinimumDrawdown)
	}
	if status.DrawdownStatus != domain.ComplianceOK {
		t.Errorf("expected drawdown ok, got %s", status.DrawdownStatus)
	}
}

func TestSMSFCompliance_DrawdownWarningAndBehind(t *testing.T) {
	input := domain.SMSFInput{
		MemberAge:      70,
		PensionBalance: 800000,
		MonthsElapsed:  6,
		InPensionPhase: true,
	}

	input.DrawdownToDate = 17000 // 85% of the 20000 pro-rata
	if got := finance.SMSFCompliance(input).DrawdownStatus; got != domain.ComplianceWarning {
		t.Errorf("expected warning at 85%% of pro-rata, got %s", got)
	}

	input.DrawdownToDate = 10000 // 50% of pro-rata
	if got := finance.SMSFCompliance(input).DrawdownStatus; got != domain.ComplianceBehind {
		t.Errorf("expected behind at 50%% of pro-rata, got %s", got)
	}
}

func TestSMSFCompliance_NotInPensionPhase(t *testing.T) {
	status := finance.SMSFCompliance(domain.SMSFInput{MemberAge: 50})
	if status.DrawdownStatus != domain.ComplianceOK {
		t.Errorf("expected ok outside pension phase, got %s", status.DrawdownStatus)
	}
	if status.MinimumDrawdown != 0 {
		t.Errorf("expected no minimum drawdown outside pension phase, got %.2f", status.MinimumDrawdown)
	}
}

func TestSMSFCompliance_ContributionCaps(t *testing.T) {
	cases := []struct {
		toDate float64
		want   domain.ComplianceStatus
	}{
		{10000, domain.ComplianceOK},
		{26999, domain.ComplianceOK},
		{27000, domain.ComplianceWarning}, // 90% of the 30000 cap
		{30000, domain.ComplianceWarning},
		{30001, domain.ComplianceBreach},
	}
	for _, c := range cases {
		status := finance.SMSFCompliance(domain.SMSFInput{ConcessionalToDate: c.toDate})
		if status.ConcessionalStatus != c.want {
			t.Errorf("concessional %.0f: expected %s, got %s", c.toDate, c.want, status.ConcessionalStatus)
		}
	}

	status := finance.SMSFCompliance(domain.SMSFInput{NonConcessionalToDate: 125000})
	if status.NonConcessionalStatus != domain.ComplianceBreach {
		t.Errorf("expected non-concessional breach over the 120000 cap, got %s", status.NonConcessionalStatus)
	}
}
