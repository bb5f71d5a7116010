package finance

import "github.com/ItsMattG/property-tracker-sub009/internal/domain"

// DefaultThresholds is the system-wide milestone configuration applied when
// the user has not customized anything. LVR milestones are achievements as
// the ratio falls, equity milestones as the dollar figure rises.
func DefaultThresholds() domain.ThresholdConfig {
	return domain.ThresholdConfig{
		LVRThresholds:    []float64{80, 70, 60, 50, 40},
		EquityThresholds: []float64{100000, 250000, 500000, 1000000, 2000000},
		Enabled:          true,
	}
}

// ResolveThresholds merges the three configuration tiers: system defaults,
// the user's global preference, then the per-property override. Each
// override field is applied independently only when non-nil, so a property
// can, say, disable milestones while keeping the user's custom thresholds.
func ResolveThresholds(global, property *domain.ThresholdOverride) domain.ThresholdConfig {
	cfg := DefaultThresholds()
	for _, layer := range []*domain.ThresholdOverride{global, property} {
		if layer == nil {
			continue
		}
		if layer.LVRThresholds != nil {
			cfg.LVRThresholds = layer.LVRThresholds
		}
		if layer.EquityThresholds != nil {
			cfg.EquityThresholds = layer.EquityThresholds
		}
		if layer.Enabled != nil {
			cfg.Enabled = *layer.Enabled
		}
	}
	return cfg
}

// CrossedMilestones returns the thresholds newly crossed between two
// portfolio snapshots: an LVR threshold when the ratio dropped to or below
// it, an equity threshold when equity rose to or past it. Returns nil when
// milestones are disabled.
func CrossedMilestones(cfg domain.ThresholdConfig, prevLVR, currLVR, prevEquity, currEquity float64) []domain.Milestone {
	if !cfg.Enabled {
		return nil
	}

	var crossed []domain.Milestone
	for _, t := range cfg.LVRThresholds {
		if prevLVR > t && currLVR <= t {
			crossed = append(crossed, domain.Milestone{
				Type:      domain.MilestoneLVR,
				Threshold: t,
				Value:     currLVR,
			})
		}
	}
	for _, t := range cfg.EquityThresholds {
		if prevEquity < t && currEquity >= t {
			crossed = append(crossed, domain.Milestone{
				Type:      domain.MilestoneEquity,
				Threshold: t,
				Value:     currEquity,
			})
		}
	}
	return crossed
}
