package domain

import "time"

// ThresholdConfig controls which LVR/equity levels trigger milestones.
// LVR thresholds are crossed downwards (descending list), equity thresholds
// upwards (ascending list).
type ThresholdConfig struct {
	LVRThresholds    []float64 `json:"lvr_thresholds"`
	EquityThresholds []float64 `json:"equity_thresholds"`
	Enabled          bool      `json:"enabled"`
}

// ThresholdOverride is a partial override layer. A nil field means "inherit
// from the layer below"; a non-nil field replaces it.
type ThresholdOverride struct {
	LVRThresholds    []float64 `json:"lvr_thresholds,omitempty"`
	EquityThresholds []float64 `json:"equity_thresholds,omitempty"`
	Enabled          *bool     `json:"enabled,omitempty"`
}

// MilestoneType distinguishes what metric crossed a threshold.
type MilestoneType string

const (
	MilestoneLVR    MilestoneType = "lvr"
	MilestoneEquity MilestoneType = "equity"
)

// Milestone records a threshold a portfolio has newly crossed.
type Milestone struct {
	ID         string        `json:"id"`
	UserID     string        `json:"user_id"`
	Type       MilestoneType `json:"type"`
	Threshold  float64       `json:"threshold"`
	Value      float64       `json:"value"` // metric value at detection time
	DetectedAt time.Time     `json:"detected_at"`
}
