package api

type ScoreStatus string

const (
	Scored        ScoreStatus = "scored"
	RecordError   ScoreStatus = "record_error"
	InternalError ScoreStatus = "internal_error"
)

// TestPoints is the awarded points for a single test case.
type TestPoints struct {
	TestID    string  `json:"test_id"`
	Category  string  `json:"category"`
	PassCount int     `json:"pass_count"`
	Points    float64 `json:"points"`
}

// PerfTiming is the timing contribution of one performance-eligible test.
type PerfTiming struct {
	TestID           string   `json:"test_id"`
	PassCount        int      `json:"pass_count"`
	FastestSeconds   *float64 `json:"fastest_seconds,omitempty"`
	RobustnessFailed bool     `json:"robustness_failed"`
	AdjustedSeconds  *float64 `json:"adjusted_seconds,omitempty"`
}

// ScoreReport is the complete scoring result for one group.
type ScoreReport struct {
	GroupUuid string `json:"group_uuid"`

	Status ScoreStatus `json:"status"`

	BasicPoints  float64      `json:"basic_points"`
	PublicPoints []TestPoints `json:"public_points"`
	HiddenPoints float64      `json:"hidden_points"`
	TotalPoints  float64      `json:"total_points"`

	// Absent when the group is disqualified from the ranking, i.e. a
	// performance-eligible test never passed. Never zero as a stand-in.
	PerformanceRankingTime *float64     `json:"performance_ranking_time,omitempty"`
	PerfTimings            []PerfTiming `json:"perf_timings"`

	ErrorMessage *string `json:"error_message,omitempty"`
}
