package grader

import (
	"github.com/google/uuid"
	"github.com/programme-lv/grader/api"
	"github.com/programme-lv/grader/internal/scoring"
)

// RecordFromRequest converts a wire request into an engine record. A
// request without a group uuid gets a fresh one so reports stay traceable.
func RecordFromRequest(req api.ScoreReq) scoring.RunRecord {
	groupID := req.GroupUuid
	if groupID == "" {
		groupID = uuid.NewString()
	}
	rec := scoring.RunRecord{
		GroupID:  groupID,
		Outcomes: make(map[string][]scoring.RunOutcome, len(req.Runs)),
	}
	for _, runs := range req.Runs {
		outcomes := make([]scoring.RunOutcome, 0, len(runs.Outcomes))
		for _, o := range runs.Outcomes {
			outcomes = append(outcomes, scoring.RunOutcome{
				Passed:         o.Passed,
				ElapsedSeconds: o.ElapsedSeconds,
			})
		}
		rec.Outcomes[runs.TestID] = outcomes
	}
	return rec
}
