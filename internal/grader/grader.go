package grader

import (
	"context"
	"log/slog"

	"github.com/programme-lv/grader/internal/gatherer"
	"github.com/programme-lv/grader/internal/scoring"
	"github.com/puzpuzpuz/xsync/v3"
	"golang.org/x/sync/errgroup"
)

// Grader scores groups with a shared engine. The engine is stateless, so
// one Grader may score many groups concurrently.
type Grader struct {
	engine *scoring.Engine
	logger *slog.Logger
}

func New(engine *scoring.Engine, logger *slog.Logger) *Grader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Grader{engine: engine, logger: logger}
}

// ScoreGroup scores one group, streaming per-test progress to the
// gatherer before delivering the final report.
func (g *Grader) ScoreGroup(rec scoring.RunRecord, gath gatherer.ScoreGatherer) (*scoring.ScoreReport, error) {
	cfg := g.engine.Config()
	gath.StartScoring(rec.GroupID, len(rec.Outcomes))

	report, err := g.engine.Aggregate(rec)
	if err != nil {
		g.logger.Error("scoring failed", "group", rec.GroupID, "error", err)
		gath.FinishWithError(rec.GroupID, err.Error())
		return nil, err
	}

	// per-test progress; Aggregate already validated the record, so the
	// individual scorers cannot fail here
	for _, testID := range cfg.BasicTestIDs {
		if score, err := g.engine.ScoreBasic(rec, testID); err == nil {
			gath.FinishTestCase(score)
		}
	}
	for _, score := range report.PublicPoints {
		gath.FinishTestCase(score)
	}
	if score, err := g.engine.ScoreHidden(rec, cfg.HiddenTestID); err == nil {
		gath.FinishTestCase(score)
	}

	gath.FinishScoring(report)
	g.logger.Info("scored group",
		"group", rec.GroupID,
		"total", report.TotalPoints,
		"ranked", report.Performance.Ranked)
	return report, nil
}

// BatchResult holds the outcome of scoring many groups. Groups with
// defective records land in Errors instead of being silently scored zero.
type BatchResult struct {
	Reports map[string]*scoring.ScoreReport
	Errors  map[string]error
}

// ScoreBatch scores the given records concurrently. Records are
// independent, so failures in one group never affect another.
func (g *Grader) ScoreBatch(ctx context.Context, recs []scoring.RunRecord, parallelism int) BatchResult {
	if parallelism <= 0 {
		parallelism = 4
	}

	reports := xsync.NewMapOf[string, *scoring.ScoreReport]()
	failures := xsync.NewMapOf[string, error]()

	errs, ctx := errgroup.WithContext(ctx)
	errs.SetLimit(parallelism)
	for _, rec := range recs {
		rec := rec
		errs.Go(func() error {
			if err := ctx.Err(); err != nil {
				failures.Store(rec.GroupID, err)
				return nil
			}
			report, err := g.engine.Aggregate(rec)
			if err != nil {
				g.logger.Error("scoring failed", "group", rec.GroupID, "error", err)
				failures.Store(rec.GroupID, err)
				return nil
			}
			reports.Store(rec.GroupID, report)
			return nil
		})
	}
	_ = errs.Wait()

	res := BatchResult{
		Reports: make(map[string]*scoring.ScoreReport, reports.Size()),
		Errors:  make(map[string]error, failures.Size()),
	}
	reports.Range(func(groupID string, report *scoring.ScoreReport) bool {
		res.Reports[groupID] = report
		return true
	})
	failures.Range(func(groupID string, err error) bool {
		res.Errors[groupID] = err
		return true
	})
	return res
}
