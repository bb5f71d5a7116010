package domain

import "time"

// Alert types and statuses.
const (
	AlertMissedRent = "missed_rent"
	AlertMilestone  = "milestone"

	AlertActive    = "active"
	AlertDismissed = "dismissed"
)

// Alert is a persisted notification-worthy event, e.g. a missed rent payment.
// At most one active alert exists per expected transaction; the scan checks
// for an existing active alert before creating another.
type Alert struct {
	ID                    string    `json:"id"`
	UserID                string    `json:"user_id"`
	PropertyID            string    `json:"property_id,omitempty"`
	ExpectedTransactionID string    `json:"expected_transaction_id,omitempty"`
	Type                  string    `json:"type"`
	Status                string    `json:"status"`
	Message               string    `json:"message"`
	CreatedAt             time.Time `json:"created_at"`
}
