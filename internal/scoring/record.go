package scoring

// Category assigns a test case to one of the rubric's scoring rules.
type Category string

const (
	Basic               Category = "basic"
	ComprehensivePublic Category = "comprehensive_public"
	ComprehensiveHidden Category = "comprehensive_hidden"
)

// RunsPerTest is how many times the harness executes every test case.
const RunsPerTest = 3

// RunOutcome is one execution attempt of a test case. ElapsedSeconds is
// only set for passing runs; a passing run without a timing is a
// malformed record.
type RunOutcome struct {
	Passed         bool
	ElapsedSeconds *float64
}

// RunRecord holds one group's recorded outcomes: test case id to the
// ordered sequence of its RunsPerTest attempts. Order carries no scoring
// meaning.
type RunRecord struct {
	GroupID  string
	Outcomes map[string][]RunOutcome
}

func passCount(outcomes []RunOutcome) int {
	n := 0
	for _, o := range outcomes {
		if o.Passed {
			n++
		}
	}
	return n
}
