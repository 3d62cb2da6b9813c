package gatherer

import (
	"github.com/programme-lv/grader/api"
	"github.com/programme-lv/grader/internal/scoring"
)

// MapReport converts an engine report to its wire form. The ranking time
// pointer stays nil for unranked groups.
func MapReport(report *scoring.ScoreReport) api.ScoreReport {
	res := api.ScoreReport{
		GroupUuid:    report.GroupID,
		Status:       api.Scored,
		BasicPoints:  report.BasicPoints,
		HiddenPoints: report.HiddenPoints,
		TotalPoints:  report.TotalPoints,
	}
	for _, score := range report.PublicPoints {
		res.PublicPoints = append(res.PublicPoints, api.TestPoints{
			TestID:    score.TestID,
			Category:  string(score.Category),
			PassCount: score.PassCount,
			Points:    score.Points,
		})
	}
	for _, timing := range report.Performance.Timings {
		wire := api.PerfTiming{
			TestID:           timing.TestID,
			PassCount:        timing.PassCount,
			RobustnessFailed: timing.RobustnessFailed,
		}
		if timing.PassCount > 0 {
			fastest := timing.FastestSeconds
			adjusted := timing.AdjustedSeconds
			wire.FastestSeconds = &fastest
			wire.AdjustedSeconds = &adjusted
		}
		res.PerfTimings = append(res.PerfTimings, wire)
	}
	if report.Performance.Ranked {
		total := report.Performance.TotalSeconds
		res.PerformanceRankingTime = &total
	}
	return res
}
