package gatherer_test

import (
	"testing"

	"github.com/programme-lv/grader/api"
	"github.com/programme-lv/grader/internal/gatherer"
	"github.com/programme-lv/grader/internal/scoring"
	"github.com/stretchr/testify/require"
)

func TestMapReportRanked(t *testing.T) {
	report := &scoring.ScoreReport{
		GroupID:      "g",
		BasicPoints:  40,
		HiddenPoints: 10,
		TotalPoints:  70,
		PublicPoints: []scoring.TestScore{
			{TestID: "test_05_adv1", Category: scoring.ComprehensivePublic, PassCount: 3, Points: 10},
		},
		Performance: scoring.Performance{
			Ranked:       true,
			TotalSeconds: 205,
			Timings: []scoring.PerfTiming{
				{TestID: "test_06_adv2", PassCount: 3, FastestSeconds: 100, AdjustedSeconds: 100},
				{TestID: "test_07_hidden", PassCount: 2, FastestSeconds: 70, RobustnessFailed: true, AdjustedSeconds: 105},
			},
		},
	}

	wire := gatherer.MapReport(report)
	require.Equal(t, api.Scored, wire.Status)
	require.NotNil(t, wire.PerformanceRankingTime)
	require.Equal(t, 205.0, *wire.PerformanceRankingTime)
	require.Len(t, wire.PerfTimings, 2)
	require.Equal(t, 105.0, *wire.PerfTimings[1].AdjustedSeconds)
}

func TestMapReportUnrankedOmitsTime(t *testing.T) {
	report := &scoring.ScoreReport{
		GroupID: "g",
		Performance: scoring.Performance{
			Ranked: false,
			Timings: []scoring.PerfTiming{
				{TestID: "test_06_adv2", PassCount: 0},
			},
		},
	}

	wire := gatherer.MapReport(report)
	require.Nil(t, wire.PerformanceRankingTime)
	require.Nil(t, wire.PerfTimings[0].FastestSeconds)
}
