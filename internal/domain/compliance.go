package domain

// RentIncreaseRule is the jurisdiction-specific rule for raising rent on a
// periodic tenancy. These change only with legislation, so they ship as
// in-process constants rather than database rows.
type RentIncreaseRule struct {
	State         string `json:"state"`
	NoticeDays    int    `json:"notice_days"`
	MaxFrequency  string `json:"max_frequency"`
	FixedTermRule string `json:"fixed_term_rule"`
}

// Compliance status values shared by the SMSF checks.
type ComplianceStatus string

const (
	ComplianceOK      ComplianceStatus = "ok"
	ComplianceWarning ComplianceStatus = "warning"
	ComplianceBreach  ComplianceStatus = "breach"
	ComplianceBehind  ComplianceStatus = "behind"
)

// SMSFInput describes a fund member's position part-way through a
// financial year.
type SMSFInput struct {
	MemberAge             int     `json:"member_age"`
	PensionBalance        float64 `json:"pension_balance"`
	DrawdownToDate        float64 `json:"drawdown_to_date"`
	ConcessionalToDate    float64 `json:"concessional_to_date"`
	NonConcessionalToDate float64 `json:"non_concessional_to_date"`
	MonthsElapsed         int     `json:"months_elapsed"`
	InPensionPhase        bool    `json:"in_pension_phase"`
}

// SMSFStatus is the compliance position for a fund member.
type SMSFStatus struct {
	MinimumDrawdown       float64          `json:"minimum_drawdown"`
	DrawdownFactor        float64          `json:"drawdown_factor"` // percent of balance
	DrawdownStatus        ComplianceStatus `json:"drawdown_status"`
	ConcessionalCap       float64          `json:"concessional_cap"`
	ConcessionalStatus    ComplianceStatus `json:"concessional_status"`
	NonConcessionalCap    float64          `json:"non_concessional_cap"`
	NonConcessionalStatus ComplianceStatus `json:"non_concessional_status"`
}
