package termgath

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/programme-lv/grader/internal/scoring"
)

// TerminalGatherer prints scoring progress and the report for humans.
type TerminalGatherer struct {
	W         io.Writer
	StartedAt time.Time
}

func New(w io.Writer) *TerminalGatherer {
	return &TerminalGatherer{W: w, StartedAt: time.Now()}
}

func (t *TerminalGatherer) StartScoring(groupID string, testCount int) {
	fmt.Fprintf(t.W, "== Scoring group %s (%d test cases) ==\n", groupID, testCount)
}

func (t *TerminalGatherer) FinishTestCase(score scoring.TestScore) {
	pts := color.GreenString("%.1f pts", score.Points)
	if score.Points == 0 {
		pts = color.RedString("0.0 pts")
	}
	fmt.Fprintf(t.W, "<- %-16s %s  passed %d/%d  %s\n",
		score.TestID, score.Category, score.PassCount, scoring.RunsPerTest, pts)
}

func (t *TerminalGatherer) FinishScoring(report *scoring.ScoreReport) {
	fmt.Fprintf(t.W, "-- Totals --\n")
	fmt.Fprintf(t.W, "basic:  %.1f\n", report.BasicPoints)
	for _, score := range report.PublicPoints {
		fmt.Fprintf(t.W, "public %s: %.1f\n", score.TestID, score.Points)
	}
	fmt.Fprintf(t.W, "hidden: %.1f\n", report.HiddenPoints)
	fmt.Fprintf(t.W, "total:  %s\n", color.New(color.Bold).Sprintf("%.1f", report.TotalPoints))

	if report.Performance.Ranked {
		for _, timing := range report.Performance.Timings {
			line := fmt.Sprintf("perf %s: fastest %.2fs adjusted %.2fs",
				timing.TestID, timing.FastestSeconds, timing.AdjustedSeconds)
			if timing.RobustnessFailed {
				line += color.YellowString(" (robustness penalty)")
			}
			fmt.Fprintln(t.W, line)
		}
		fmt.Fprintf(t.W, "performance ranking time: %.2fs\n", report.Performance.TotalSeconds)
	} else {
		fmt.Fprintln(t.W, color.YellowString("performance ranking: unranked"))
	}

	dur := time.Since(t.StartedAt).Round(time.Millisecond)
	fmt.Fprintf(t.W, "== Scoring finished in %s ==\n", dur)
}

func (t *TerminalGatherer) FinishWithError(groupID string, msg string) {
	fmt.Fprintf(t.W, "== Scoring group %s failed: %s ==\n", groupID, color.RedString("%s", msg))
}
