package finance

import (
	"time"

	"github.com/ItsMattG/property-tracker-sub009/internal/domain"
)

// MissedRent reports whether an expected recurring transaction is overdue by
// more than its configured grace period at the given time.
//
// The check itself is stateless; callers are responsible for de-duplication
// (checking for an existing active alert on the same expected transaction
// before acting on a true result).
func MissedRent(et domain.ExpectedTransaction, now time.Time) bool {
	if !et.Active || et.NextExpected.IsZero() {
		return false
	}
	deadline := et.NextExpected.AddDate(0, 0, et.AlertDelayDays)
	return now.After(deadline)
}
