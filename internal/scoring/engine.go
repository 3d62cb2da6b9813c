package scoring

import (
	"fmt"
	"sort"
)

// Fixed rubric weights. The Basic pool is split evenly across however many
// Basic test cases the suite declares; everything else is per test case.
const (
	BasicPoolPoints     = 40.0
	PublicPerfectPoints = 10.0
	PublicPartialPoints = 7.0
	HiddenPerfectPoints = 10.0
	HiddenPartialPoints = 5.0

	DefaultRobustnessPenaltyFactor = 1.5
)

// Config describes the concrete test suite being scored. The id lists are
// suite-specific and come from the rubric file, not from this package.
type Config struct {
	BasicTestIDs  []string
	PublicTestIDs []string
	HiddenTestID  string

	// Performance eligibility is an attribute independent of category.
	PerfEligibleIDs []string

	// Multiplier on the fastest time of a performance-eligible test that
	// did not pass all RunsPerTest runs.
	RobustnessPenaltyFactor float64

	// Points for a public comprehensive test with zero passes. The rubric
	// text is ambiguous between 0 and a 4-point floor; 0 is the default.
	PublicZeroPassPoints float64
}

// Engine computes ScoreReports from RunRecords. It is pure and holds no
// mutable state; one Engine may score any number of groups concurrently.
type Engine struct {
	cfg Config
}

func New(cfg Config) (*Engine, error) {
	if len(cfg.BasicTestIDs) == 0 {
		return nil, &ConfigError{Reason: "no basic test ids configured"}
	}
	if cfg.HiddenTestID == "" {
		return nil, &ConfigError{Reason: "no hidden test id configured"}
	}
	if cfg.RobustnessPenaltyFactor == 0 {
		cfg.RobustnessPenaltyFactor = DefaultRobustnessPenaltyFactor
	}
	if cfg.RobustnessPenaltyFactor < 1 {
		return nil, &ConfigError{Reason: fmt.Sprintf(
			"robustness penalty factor %v is below 1", cfg.RobustnessPenaltyFactor)}
	}
	return &Engine{cfg: cfg}, nil
}

// Config returns the suite configuration the engine was built with.
func (e *Engine) Config() Config {
	return e.cfg
}

// BasicShare is the per-test value of a Basic test case.
func (e *Engine) BasicShare() float64 {
	return BasicPoolPoints / float64(len(e.cfg.BasicTestIDs))
}

// ScoreBasic awards the full Basic share if at least one of the runs
// passed. A single pass is enough; foundational behaviour is not penalized
// for flaky infrastructure.
func (e *Engine) ScoreBasic(rec RunRecord, testID string) (TestScore, error) {
	outcomes, err := e.outcomes(rec, testID)
	if err != nil {
		return TestScore{}, err
	}
	score := TestScore{TestID: testID, Category: Basic, PassCount: passCount(outcomes)}
	if score.PassCount >= 1 {
		score.Points = e.BasicShare()
	}
	return score, nil
}

// ScorePublic scores a public comprehensive test by pass count:
// all runs passed earns the full 10, a mix of passes and failures earns 7,
// zero passes earns the configured zero-pass floor.
func (e *Engine) ScorePublic(rec RunRecord, testID string) (TestScore, error) {
	outcomes, err := e.outcomes(rec, testID)
	if err != nil {
		return TestScore{}, err
	}
	score := TestScore{TestID: testID, Category: ComprehensivePublic, PassCount: passCount(outcomes)}
	switch {
	case score.PassCount == RunsPerTest:
		score.Points = PublicPerfectPoints
	case score.PassCount >= 1:
		score.Points = PublicPartialPoints
	default:
		score.Points = e.cfg.PublicZeroPassPoints
	}
	return score, nil
}

// ScoreHidden scores the hidden comprehensive test: 10 for a perfect
// 3/3, 5 for at least one pass, 0 otherwise.
func (e *Engine) ScoreHidden(rec RunRecord, testID string) (TestScore, error) {
	outcomes, err := e.outcomes(rec, testID)
	if err != nil {
		return TestScore{}, err
	}
	score := TestScore{TestID: testID, Category: ComprehensiveHidden, PassCount: passCount(outcomes)}
	switch {
	case score.PassCount == RunsPerTest:
		score.Points = HiddenPerfectPoints
	case score.PassCount >= 1:
		score.Points = HiddenPartialPoints
	}
	return score, nil
}

// ScorePerformance computes the group's ranking time over the
// performance-eligible tests. Per test: the fastest passing time, times
// the robustness penalty when any of the runs failed. The group is
// unranked when any eligible test never passed.
func (e *Engine) ScorePerformance(rec RunRecord) (Performance, error) {
	perf := Performance{Ranked: true}
	for _, testID := range e.cfg.PerfEligibleIDs {
		outcomes, err := e.outcomes(rec, testID)
		if err != nil {
			return Performance{}, err
		}
		timing := PerfTiming{TestID: testID, PassCount: passCount(outcomes)}
		fastest := 0.0
		found := false
		for _, o := range outcomes {
			if !o.Passed {
				timing.RobustnessFailed = true
				continue
			}
			if o.ElapsedSeconds == nil {
				return Performance{}, &MalformedRecordError{
					GroupID: rec.GroupID,
					TestID:  testID,
					Reason:  "passing run has no elapsed time",
				}
			}
			if !found || *o.ElapsedSeconds < fastest {
				fastest = *o.ElapsedSeconds
				found = true
			}
		}
		if found {
			timing.FastestSeconds = fastest
			timing.AdjustedSeconds = fastest
			if timing.RobustnessFailed {
				timing.AdjustedSeconds = fastest * e.cfg.RobustnessPenaltyFactor
			}
			perf.TotalSeconds += timing.AdjustedSeconds
		} else {
			perf.Ranked = false
		}
		perf.Timings = append(perf.Timings, timing)
	}
	if !perf.Ranked {
		perf.TotalSeconds = 0
	}
	return perf, nil
}

// Aggregate validates the record against the configured suite and produces
// the full report. It fails rather than guess: id mismatches and malformed
// outcome sequences abort scoring entirely.
func (e *Engine) Aggregate(rec RunRecord) (*ScoreReport, error) {
	if err := e.validate(rec); err != nil {
		return nil, err
	}

	report := &ScoreReport{GroupID: rec.GroupID}

	for _, testID := range e.cfg.BasicTestIDs {
		score, err := e.ScoreBasic(rec, testID)
		if err != nil {
			return nil, err
		}
		report.BasicPoints += score.Points
	}

	publicIDs := append([]string(nil), e.cfg.PublicTestIDs...)
	sort.Strings(publicIDs)
	for _, testID := range publicIDs {
		score, err := e.ScorePublic(rec, testID)
		if err != nil {
			return nil, err
		}
		report.PublicPoints = append(report.PublicPoints, score)
	}

	hidden, err := e.ScoreHidden(rec, e.cfg.HiddenTestID)
	if err != nil {
		return nil, err
	}
	report.HiddenPoints = hidden.Points

	report.TotalPoints = report.BasicPoints + report.HiddenPoints
	for _, score := range report.PublicPoints {
		report.TotalPoints += score.Points
	}

	perf, err := e.ScorePerformance(rec)
	if err != nil {
		return nil, err
	}
	report.Performance = perf

	return report, nil
}

// validate cross-checks the configured ids against the record and the
// per-test outcome count invariant.
func (e *Engine) validate(rec RunRecord) error {
	configured := make(map[string]bool)
	for _, id := range e.cfg.BasicTestIDs {
		configured[id] = true
	}
	for _, id := range e.cfg.PublicTestIDs {
		configured[id] = true
	}
	configured[e.cfg.HiddenTestID] = true

	for id := range configured {
		if _, ok := rec.Outcomes[id]; !ok {
			return &ConfigError{TestID: id, Reason: "configured test case missing from run record"}
		}
	}
	for id, outcomes := range rec.Outcomes {
		if !configured[id] {
			return &ConfigError{TestID: id, Reason: "run record test case is not mapped to any category"}
		}
		if len(outcomes) != RunsPerTest {
			return &MalformedRecordError{
				GroupID: rec.GroupID,
				TestID:  id,
				Reason:  fmt.Sprintf("expected %d outcomes, got %d", RunsPerTest, len(outcomes)),
			}
		}
	}
	return nil
}

func (e *Engine) outcomes(rec RunRecord, testID string) ([]RunOutcome, error) {
	outcomes, ok := rec.Outcomes[testID]
	if !ok {
		return nil, &ConfigError{TestID: testID, Reason: "configured test case missing from run record"}
	}
	if len(outcomes) != RunsPerTest {
		return nil, &MalformedRecordError{
			GroupID: rec.GroupID,
			TestID:  testID,
			Reason:  fmt.Sprintf("expected %d outcomes, got %d", RunsPerTest, len(outcomes)),
		}
	}
	return outcomes, nil
}
