package rubric

import (
	"fmt"
	"os"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/programme-lv/grader/internal/scoring"
)

// Rubric maps to the rubric TOML file declaring the concrete test suite.
type Rubric struct {
	BasicTests       []string `toml:"basic_tests"`
	PublicTests      []string `toml:"public_tests"`
	HiddenTest       string   `toml:"hidden_test"`
	PerformanceTests []string `toml:"performance_tests"`

	RobustnessPenalty float64 `toml:"robustness_penalty"`
	PublicZeroPassPts float64 `toml:"public_zero_pass_points"`
}

// Default is the course's shipped suite: four basic tests, two public
// advanced tests, one hidden test, with the two slowest tests eligible for
// the performance ranking.
func Default() Rubric {
	return Rubric{
		BasicTests: []string{
			"test_01_basic", "test_02_basic", "test_03_basic", "test_04_basic",
		},
		PublicTests:       []string{"test_05_adv1", "test_06_adv2"},
		HiddenTest:        "test_07_hidden",
		PerformanceTests:  []string{"test_06_adv2", "test_07_hidden"},
		RobustnessPenalty: scoring.DefaultRobustnessPenaltyFactor,
	}
}

// Parse reads a rubric TOML file and validates it.
func Parse(path string) (Rubric, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Rubric{}, fmt.Errorf("failed to read rubric file: %w", err)
	}
	r := Default()
	if err := toml.Unmarshal(data, &r); err != nil {
		return Rubric{}, fmt.Errorf("failed to parse rubric TOML: %w", err)
	}
	if err := r.Validate(); err != nil {
		return Rubric{}, err
	}
	return r, nil
}

// Validate checks the id lists for overlap and coverage. Categories must
// be disjoint; performance eligibility may point at any declared test.
func (r Rubric) Validate() error {
	if len(r.BasicTests) == 0 {
		return fmt.Errorf("rubric declares no basic tests")
	}
	if r.HiddenTest == "" {
		return fmt.Errorf("rubric declares no hidden test")
	}

	basic := mapset.NewSet(r.BasicTests...)
	public := mapset.NewSet(r.PublicTests...)
	hidden := mapset.NewSet(r.HiddenTest)

	if basic.Cardinality() != len(r.BasicTests) {
		return fmt.Errorf("rubric basic tests contain duplicates")
	}
	if public.Cardinality() != len(r.PublicTests) {
		return fmt.Errorf("rubric public tests contain duplicates")
	}
	if overlap := basic.Intersect(public).Union(basic.Intersect(hidden)).Union(public.Intersect(hidden)); overlap.Cardinality() > 0 {
		return fmt.Errorf("rubric assigns tests to multiple categories: %v", overlap.ToSlice())
	}

	all := basic.Union(public).Union(hidden)
	perf := mapset.NewSet(r.PerformanceTests...)
	if unknown := perf.Difference(all); unknown.Cardinality() > 0 {
		return fmt.Errorf("rubric marks undeclared tests as performance-eligible: %v", unknown.ToSlice())
	}

	if r.RobustnessPenalty < 1 {
		return fmt.Errorf("rubric robustness penalty %v is below 1", r.RobustnessPenalty)
	}
	if r.PublicZeroPassPts < 0 {
		return fmt.Errorf("rubric public zero-pass points %v is negative", r.PublicZeroPassPts)
	}
	return nil
}

// ScoringConfig converts the rubric into the engine's configuration.
func (r Rubric) ScoringConfig() scoring.Config {
	return scoring.Config{
		BasicTestIDs:            r.BasicTests,
		PublicTestIDs:           r.PublicTests,
		HiddenTestID:            r.HiddenTest,
		PerfEligibleIDs:         r.PerformanceTests,
		RobustnessPenaltyFactor: r.RobustnessPenalty,
		PublicZeroPassPoints:    r.PublicZeroPassPts,
	}
}
