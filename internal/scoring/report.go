package scoring

// TestScore is the points awarded for one test case.
type TestScore struct {
	TestID    string
	Category  Category
	PassCount int
	Points    float64
}

// PerfTiming is the timing contribution of one performance-eligible test
// case. FastestSeconds and AdjustedSeconds are only meaningful when
// PassCount > 0.
type PerfTiming struct {
	TestID           string
	PassCount        int
	FastestSeconds   float64
	RobustnessFailed bool
	AdjustedSeconds  float64
}

// Performance is the group's ranking metric. Ranked is false when any
// performance-eligible test never passed; TotalSeconds is meaningless then.
// The absent state is kept explicit so downstream ranking can tell
// "ranked but slow" from "disqualified".
type Performance struct {
	Ranked       bool
	TotalSeconds float64
	Timings      []PerfTiming
}

// ScoreReport is the scoring result for one group. Constructed once by
// Aggregate and never mutated afterwards.
type ScoreReport struct {
	GroupID string

	BasicPoints  float64
	PublicPoints []TestScore
	HiddenPoints float64
	TotalPoints  float64

	Performance Performance
}
