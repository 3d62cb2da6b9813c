package scoring_test

import (
	"testing"

	"github.com/programme-lv/grader/internal/scoring"
	"github.com/stretchr/testify/require"
)

func pass(seconds float64) scoring.RunOutcome {
	return scoring.RunOutcome{Passed: true, ElapsedSeconds: &seconds}
}

func fail() scoring.RunOutcome {
	return scoring.RunOutcome{Passed: false}
}

func testConfig() scoring.Config {
	return scoring.Config{
		BasicTestIDs:    []string{"test_01_basic", "test_02_basic", "test_03_basic", "test_04_basic"},
		PublicTestIDs:   []string{"test_05_adv1", "test_06_adv2"},
		HiddenTestID:    "test_07_hidden",
		PerfEligibleIDs: []string{"test_06_adv2", "test_07_hidden"},
	}
}

// fullRecord returns a record where every test passes all runs in 100s,
// ready to be overridden per test.
func fullRecord() scoring.RunRecord {
	rec := scoring.RunRecord{GroupID: "group-1", Outcomes: map[string][]scoring.RunOutcome{}}
	for _, id := range []string{
		"test_01_basic", "test_02_basic", "test_03_basic", "test_04_basic",
		"test_05_adv1", "test_06_adv2", "test_07_hidden",
	} {
		rec.Outcomes[id] = []scoring.RunOutcome{pass(100), pass(100), pass(100)}
	}
	return rec
}

func newEngine(t *testing.T, cfg scoring.Config) *scoring.Engine {
	t.Helper()
	eng, err := scoring.New(cfg)
	require.NoError(t, err)
	return eng
}

func TestBasicPassOnceFullShare(t *testing.T) {
	eng := newEngine(t, testConfig())
	rec := fullRecord()

	// passing on the second run only still earns the full share
	rec.Outcomes["test_01_basic"] = []scoring.RunOutcome{fail(), pass(12), fail()}
	score, err := eng.ScoreBasic(rec, "test_01_basic")
	require.NoError(t, err)
	require.Equal(t, 10.0, score.Points) // 40 / 4 basic tests
	require.Equal(t, 1, score.PassCount)

	rec.Outcomes["test_02_basic"] = []scoring.RunOutcome{fail(), fail(), fail()}
	score, err = eng.ScoreBasic(rec, "test_02_basic")
	require.NoError(t, err)
	require.Equal(t, 0.0, score.Points)
}

func TestBasicShareFollowsSuiteSize(t *testing.T) {
	cfg := testConfig()
	cfg.BasicTestIDs = []string{"test_01_basic", "test_02_basic"}
	eng := newEngine(t, cfg)
	require.Equal(t, 20.0, eng.BasicShare())
}

func TestPublicTiers(t *testing.T) {
	eng := newEngine(t, testConfig())
	rec := fullRecord()

	score, err := eng.ScorePublic(rec, "test_05_adv1")
	require.NoError(t, err)
	require.Equal(t, 10.0, score.Points)

	rec.Outcomes["test_05_adv1"] = []scoring.RunOutcome{pass(10), fail(), pass(11)}
	score, err = eng.ScorePublic(rec, "test_05_adv1")
	require.NoError(t, err)
	require.Equal(t, 7.0, score.Points)

	rec.Outcomes["test_05_adv1"] = []scoring.RunOutcome{fail(), fail(), pass(11)}
	score, err = eng.ScorePublic(rec, "test_05_adv1")
	require.NoError(t, err)
	require.Equal(t, 7.0, score.Points)

	// zero passes earns 0, not the ambiguous 4-point floor
	rec.Outcomes["test_05_adv1"] = []scoring.RunOutcome{fail(), fail(), fail()}
	score, err = eng.ScorePublic(rec, "test_05_adv1")
	require.NoError(t, err)
	require.Equal(t, 0.0, score.Points)
}

func TestPublicZeroPassFloorPolicy(t *testing.T) {
	cfg := testConfig()
	cfg.PublicZeroPassPoints = 4
	eng := newEngine(t, cfg)

	rec := fullRecord()
	rec.Outcomes["test_05_adv1"] = []scoring.RunOutcome{fail(), fail(), fail()}
	score, err := eng.ScorePublic(rec, "test_05_adv1")
	require.NoError(t, err)
	require.Equal(t, 4.0, score.Points)
}

func TestHiddenTiers(t *testing.T) {
	eng := newEngine(t, testConfig())
	rec := fullRecord()

	score, err := eng.ScoreHidden(rec, "test_07_hidden")
	require.NoError(t, err)
	require.Equal(t, 10.0, score.Points)

	rec.Outcomes["test_07_hidden"] = []scoring.RunOutcome{fail(), pass(9), fail()}
	score, err = eng.ScoreHidden(rec, "test_07_hidden")
	require.NoError(t, err)
	require.Equal(t, 5.0, score.Points)

	rec.Outcomes["test_07_hidden"] = []scoring.RunOutcome{fail(), fail(), fail()}
	score, err = eng.ScoreHidden(rec, "test_07_hidden")
	require.NoError(t, err)
	require.Equal(t, 0.0, score.Points)
}

// The rubric's own worked example: fastest 100s and 70s, one failed run on
// the 70s test, so 100 + 70*1.5 = 205.
func TestPerformanceWorkedExample(t *testing.T) {
	eng := newEngine(t, testConfig())
	rec := fullRecord()
	rec.Outcomes["test_06_adv2"] = []scoring.RunOutcome{pass(100), pass(110), pass(105)}
	rec.Outcomes["test_07_hidden"] = []scoring.RunOutcome{pass(70), fail(), pass(75)}

	perf, err := eng.ScorePerformance(rec)
	require.NoError(t, err)
	require.True(t, perf.Ranked)
	require.Equal(t, 205.0, perf.TotalSeconds)

	require.Len(t, perf.Timings, 2)
	require.Equal(t, 100.0, perf.Timings[0].FastestSeconds)
	require.False(t, perf.Timings[0].RobustnessFailed)
	require.Equal(t, 100.0, perf.Timings[0].AdjustedSeconds)
	require.Equal(t, 70.0, perf.Timings[1].FastestSeconds)
	require.True(t, perf.Timings[1].RobustnessFailed)
	require.Equal(t, 105.0, perf.Timings[1].AdjustedSeconds)
}

func TestPerformanceUnranked(t *testing.T) {
	eng := newEngine(t, testConfig())
	rec := fullRecord()
	rec.Outcomes["test_06_adv2"] = []scoring.RunOutcome{fail(), fail(), fail()}
	rec.Outcomes["test_07_hidden"] = []scoring.RunOutcome{fail(), fail(), fail()}

	perf, err := eng.ScorePerformance(rec)
	require.NoError(t, err)
	require.False(t, perf.Ranked)
	require.Equal(t, 0.0, perf.TotalSeconds)

	// one ranked test is not enough; the other never passed
	rec.Outcomes["test_06_adv2"] = []scoring.RunOutcome{pass(50), pass(55), pass(52)}
	perf, err = eng.ScorePerformance(rec)
	require.NoError(t, err)
	require.False(t, perf.Ranked)
}

func TestPerformanceMonotonic(t *testing.T) {
	eng := newEngine(t, testConfig())
	rec := fullRecord()
	rec.Outcomes["test_06_adv2"] = []scoring.RunOutcome{pass(100), fail(), pass(120)}

	before, err := eng.ScorePerformance(rec)
	require.NoError(t, err)

	// speeding up a passing run with the same pass/fail pattern never
	// makes the ranking time worse
	rec.Outcomes["test_06_adv2"] = []scoring.RunOutcome{pass(80), fail(), pass(120)}
	after, err := eng.ScorePerformance(rec)
	require.NoError(t, err)
	require.LessOrEqual(t, after.TotalSeconds, before.TotalSeconds)
}

func TestPerformanceMissingTimingIsMalformed(t *testing.T) {
	eng := newEngine(t, testConfig())
	rec := fullRecord()
	rec.Outcomes["test_06_adv2"] = []scoring.RunOutcome{{Passed: true}, pass(100), pass(105)}

	_, err := eng.ScorePerformance(rec)
	var malformed *scoring.MalformedRecordError
	require.ErrorAs(t, err, &malformed)
	require.Equal(t, "test_06_adv2", malformed.TestID)
}

func TestAggregate(t *testing.T) {
	eng := newEngine(t, testConfig())
	rec := fullRecord()
	rec.Outcomes["test_02_basic"] = []scoring.RunOutcome{fail(), pass(5), fail()}   // still full share
	rec.Outcomes["test_05_adv1"] = []scoring.RunOutcome{pass(20), fail(), pass(22)} // 7
	rec.Outcomes["test_07_hidden"] = []scoring.RunOutcome{fail(), pass(70), fail()} // 5, penalized timing

	report, err := eng.Aggregate(rec)
	require.NoError(t, err)
	require.Equal(t, 40.0, report.BasicPoints)
	require.Equal(t, 5.0, report.HiddenPoints)
	require.Len(t, report.PublicPoints, 2)
	require.Equal(t, 7.0, report.PublicPoints[0].Points)
	require.Equal(t, 10.0, report.PublicPoints[1].Points)
	require.Equal(t, 62.0, report.TotalPoints)
	require.True(t, report.Performance.Ranked)
	require.Equal(t, 100.0+70.0*1.5, report.Performance.TotalSeconds)
}

func TestAggregateIdempotent(t *testing.T) {
	eng := newEngine(t, testConfig())
	rec := fullRecord()
	rec.Outcomes["test_06_adv2"] = []scoring.RunOutcome{pass(100), fail(), pass(95)}

	first, err := eng.Aggregate(rec)
	require.NoError(t, err)
	second, err := eng.Aggregate(rec)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestAggregateRejectsUnknownTest(t *testing.T) {
	eng := newEngine(t, testConfig())
	rec := fullRecord()
	rec.Outcomes["test_99_rogue"] = []scoring.RunOutcome{fail(), fail(), fail()}

	_, err := eng.Aggregate(rec)
	var cfgErr *scoring.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	require.Equal(t, "test_99_rogue", cfgErr.TestID)
}

func TestAggregateRejectsMissingTest(t *testing.T) {
	eng := newEngine(t, testConfig())
	rec := fullRecord()
	delete(rec.Outcomes, "test_03_basic")

	_, err := eng.Aggregate(rec)
	var cfgErr *scoring.ConfigError
	require.ErrorAs(t, err, &cfgErr)
}

func TestAggregateRejectsWrongRunCount(t *testing.T) {
	eng := newEngine(t, testConfig())
	rec := fullRecord()
	rec.Outcomes["test_04_basic"] = []scoring.RunOutcome{pass(1), pass(2)}

	_, err := eng.Aggregate(rec)
	var malformed *scoring.MalformedRecordError
	require.ErrorAs(t, err, &malformed)
	require.Equal(t, "test_04_basic", malformed.TestID)
}

func TestNewRejectsBadConfig(t *testing.T) {
	_, err := scoring.New(scoring.Config{})
	require.Error(t, err)

	cfg := testConfig()
	cfg.RobustnessPenaltyFactor = 0.5
	_, err = scoring.New(cfg)
	require.Error(t, err)
}
