package api

// ScoreReq asks the grader to score one group's recorded test runs.
type ScoreReq struct {
	GroupUuid string `json:"group_uuid"`

	Runs []TestRuns `json:"runs"`

	// Where to deliver the report. Both optional; the terminal is the
	// fallback when neither is set.
	ReplySubject *string `json:"reply_subject,omitempty"`
	ResSqsUrl    *string `json:"res_sqs_url,omitempty"`
}

// TestRuns holds the repeated outcomes recorded for one test case.
type TestRuns struct {
	TestID string `json:"test_id"`

	Outcomes []Outcome `json:"outcomes"`
}

// Outcome is a single execution attempt of a test case.
type Outcome struct {
	Passed bool `json:"passed"`

	// Wall-clock seconds of the passing run; absent when the run failed.
	ElapsedSeconds *float64 `json:"elapsed_seconds,omitempty"`
}
