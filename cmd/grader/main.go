package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/nats-io/nats.go"
	"github.com/urfave/cli/v3"

	"github.com/programme-lv/grader/api"
	"github.com/programme-lv/grader/internal/environment"
	"github.com/programme-lv/grader/internal/gatherer"
	"github.com/programme-lv/grader/internal/gatherer/natsgath"
	"github.com/programme-lv/grader/internal/gatherer/sqsgath"
	"github.com/programme-lv/grader/internal/gatherer/termgath"
	"github.com/programme-lv/grader/internal/grader"
	"github.com/programme-lv/grader/internal/logging"
	"github.com/programme-lv/grader/internal/reportstore"
	"github.com/programme-lv/grader/internal/rubric"
	"github.com/programme-lv/grader/internal/scoring"
)

func main() {
	env := environment.ReadEnvConfig()
	logger := logging.NewLogger(env.LogLevel)

	rubricFlag := &cli.StringFlag{
		Name:  "rubric",
		Usage: "path to a rubric TOML file (built-in suite when omitted)",
	}

	cmd := &cli.Command{
		Name:  "grader",
		Usage: "score repeated test-run records against the course rubric",
		Commands: []*cli.Command{
			{
				Name:      "score",
				Usage:     "score a single group's run record file",
				ArgsUsage: "<record.json>",
				Flags: []cli.Flag{
					rubricFlag,
					&cli.BoolFlag{Name: "json", Usage: "print the report as JSON instead of a table"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					return runScore(c, logger)
				},
			},
			{
				Name:      "batch",
				Usage:     "score a directory of run record files and archive the reports",
				ArgsUsage: "<records-dir>",
				Flags: []cli.Flag{
					rubricFlag,
					&cli.StringFlag{Name: "out", Value: env.ReportDir, Usage: "report archive directory"},
					&cli.IntFlag{Name: "parallelism", Value: 4, Usage: "groups scored concurrently"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					return runBatch(ctx, c, logger)
				},
			},
			{
				Name:  "rank",
				Usage: "print the cross-group performance ranking from archived reports",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "reports", Value: env.ReportDir, Usage: "report archive directory"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					return runRank(c)
				},
			},
			{
				Name:  "listen",
				Usage: "consume scoring requests from NATS and publish reports",
				Flags: []cli.Flag{
					rubricFlag,
					&cli.StringFlag{Name: "subject", Value: "scoring.requests", Usage: "request subject"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					return runListen(ctx, c, env, logger)
				},
			},
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cmd.Run(ctx, os.Args); err != nil {
		logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func newGrader(c *cli.Command, logger *slog.Logger) (*grader.Grader, error) {
	r := rubric.Default()
	if path := c.String("rubric"); path != "" {
		var err error
		r, err = rubric.Parse(path)
		if err != nil {
			return nil, err
		}
	}
	engine, err := scoring.New(r.ScoringConfig())
	if err != nil {
		return nil, err
	}
	return grader.New(engine, logger), nil
}

func readRecord(path string) (scoring.RunRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return scoring.RunRecord{}, fmt.Errorf("failed to read record file: %w", err)
	}
	var req api.ScoreReq
	if err := json.Unmarshal(data, &req); err != nil {
		return scoring.RunRecord{}, fmt.Errorf("failed to parse record file %s: %w", path, err)
	}
	rec := grader.RecordFromRequest(req)
	if req.GroupUuid == "" {
		// fall back to the file name so reports stay recognizable
		rec.GroupID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return rec, nil
}

func runScore(c *cli.Command, logger *slog.Logger) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("expected exactly one record file argument")
	}
	g, err := newGrader(c, logger)
	if err != nil {
		return err
	}
	rec, err := readRecord(c.Args().First())
	if err != nil {
		return err
	}

	if c.Bool("json") {
		report, err := g.ScoreGroup(rec, &discardGatherer{})
		if err != nil {
			return err
		}
		b, err := json.MarshalIndent(gatherer.MapReport(report), "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(b))
		return nil
	}

	_, err = g.ScoreGroup(rec, termgath.New(os.Stdout))
	return err
}

func runBatch(ctx context.Context, c *cli.Command, logger *slog.Logger) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("expected exactly one records directory argument")
	}
	g, err := newGrader(c, logger)
	if err != nil {
		return err
	}

	dir := c.Args().First()
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read records dir %s: %w", dir, err)
	}
	var recs []scoring.RunRecord
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		rec, err := readRecord(filepath.Join(dir, entry.Name()))
		if err != nil {
			return err
		}
		recs = append(recs, rec)
	}
	if len(recs) == 0 {
		return fmt.Errorf("no record files found in %s", dir)
	}

	store, err := reportstore.New(c.String("out"))
	if err != nil {
		return err
	}

	res := g.ScoreBatch(ctx, recs, int(c.Int("parallelism")))
	for groupID, report := range res.Reports {
		if err := store.Save(report); err != nil {
			return err
		}
		logger.Info("archived report", "group", groupID, "total", report.TotalPoints)
	}
	for groupID, err := range res.Errors {
		logger.Error("group not scored", "group", groupID, "error", err)
	}
	if len(res.Errors) > 0 {
		return fmt.Errorf("%d of %d groups had defective records", len(res.Errors), len(recs))
	}
	return nil
}

func runRank(c *cli.Command) error {
	store, err := reportstore.New(c.String("reports"))
	if err != nil {
		return err
	}
	reports, err := store.LoadAll()
	if err != nil {
		return err
	}
	if len(reports) == 0 {
		return fmt.Errorf("no archived reports in %s", c.String("reports"))
	}

	ranking := grader.Rank(reports)
	for _, entry := range ranking.Ranked {
		fmt.Printf("%3d. %-24s %8.2fs\n", entry.Place, entry.GroupID, entry.TotalSeconds)
	}
	for _, groupID := range ranking.Unranked {
		fmt.Printf("  -. %-24s %s\n", groupID, color.YellowString("unranked"))
	}
	return nil
}

func runListen(ctx context.Context, c *cli.Command, env *environment.EnvConfig, logger *slog.Logger) error {
	g, err := newGrader(c, logger)
	if err != nil {
		return err
	}

	nc, err := nats.Connect(env.NatsUrl)
	if err != nil {
		return fmt.Errorf("failed to connect to NATS at %s: %w", env.NatsUrl, err)
	}
	defer nc.Drain()

	subject := c.String("subject")
	sub, err := nc.Subscribe(subject, func(msg *nats.Msg) {
		var req api.ScoreReq
		if err := json.Unmarshal(msg.Data, &req); err != nil {
			logger.Error("failed to parse scoring request", "error", err)
			return
		}
		rec := grader.RecordFromRequest(req)

		var gath gatherer.ScoreGatherer
		switch {
		case req.ReplySubject != nil:
			gath = natsgath.New(nc, rec.GroupID, *req.ReplySubject)
		case req.ResSqsUrl != nil:
			gath = sqsgath.NewSqsReportQueueGatherer(rec.GroupID, *req.ResSqsUrl)
		case msg.Reply != "":
			gath = natsgath.New(nc, rec.GroupID, msg.Reply)
		default:
			logger.Warn("scoring request without a reply destination", "group", rec.GroupID)
			gath = termgath.New(os.Stdout)
		}

		go func() {
			_, _ = g.ScoreGroup(rec, gath)
		}()
	})
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", subject, err)
	}
	defer sub.Unsubscribe()

	logger.Info("listening for scoring requests", "subject", subject, "nats", env.NatsUrl)
	<-ctx.Done()
	return nil
}

// discardGatherer drops progress events; used when the report itself is
// the only output.
type discardGatherer struct{}

func (discardGatherer) StartScoring(string, int)           {}
func (discardGatherer) FinishTestCase(scoring.TestScore)   {}
func (discardGatherer) FinishScoring(*scoring.ScoreReport) {}
func (discardGatherer) FinishWithError(string, string)     {}
