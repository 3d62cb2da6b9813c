package gatherer

import "github.com/programme-lv/grader/internal/scoring"

// ScoreGatherer receives scoring progress and the final report for one
// group. Implementations deliver to a terminal, a NATS subject or an SQS
// queue.
type ScoreGatherer interface {
	StartScoring(groupID string, testCount int)
	FinishTestCase(score scoring.TestScore)
	FinishScoring(report *scoring.ScoreReport)
	FinishWithError(groupID string, msg string)
}
