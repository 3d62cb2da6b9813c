package scoring

import "fmt"

// ConfigError means the configured test suite and the run record disagree:
// a configured id has no recorded outcomes, or a recorded test case is not
// mapped to any category. Aggregation must not proceed past it.
type ConfigError struct {
	TestID string
	Reason string
}

func (e *ConfigError) Error() string {
	if e.TestID == "" {
		return fmt.Sprintf("scoring config error: %s", e.Reason)
	}
	return fmt.Sprintf("scoring config error (test %s): %s", e.TestID, e.Reason)
}

// MalformedRecordError means the harness handed over defective data: an
// outcome sequence of the wrong length, or a passing run without a timing.
// Never scored as zero; the upstream collection has to be fixed instead.
type MalformedRecordError struct {
	GroupID string
	TestID  string
	Reason  string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed run record (group %s, test %s): %s", e.GroupID, e.TestID, e.Reason)
}
