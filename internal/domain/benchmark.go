package domain

// BenchmarkStatus classifies a user's spend against the state average.
type BenchmarkStatus string

const (
	BenchmarkBelow   BenchmarkStatus = "below"
	BenchmarkAverage BenchmarkStatus = "average"
	BenchmarkAbove   BenchmarkStatus = "above"
)

// CategoryBenchmark compares one cost category against the state reference
// average. PotentialSavings is only non-zero when the status is "above".
type CategoryBenchmark struct {
	Category         string          `json:"category"`
	UserAmount       float64         `json:"user_amount"`
	AverageAmount    float64         `json:"average_amount"`
	Status           BenchmarkStatus `json:"status"`
	PotentialSavings float64         `json:"potential_savings"`
}

// BenchmarkReport bundles all available comparisons for one property.
type BenchmarkReport struct {
	PropertyID string              `json:"property_id"`
	State      string              `json:"state"`
	Categories []CategoryBenchmark `json:"categories"`
}
