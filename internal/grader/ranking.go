package grader

import (
	"sort"

	"github.com/programme-lv/grader/internal/scoring"
)

// RankEntry is one group's place in the performance ranking.
type RankEntry struct {
	Place        int
	GroupID      string
	TotalSeconds float64
}

// Ranking separates ranked groups from disqualified ones. An unranked
// group never appears among the ranked entries with a substitute time.
type Ranking struct {
	Ranked   []RankEntry
	Unranked []string
}

// Rank orders groups by performance ranking time, fastest first. Equal
// times share a place. Groups whose performance state is unranked are
// listed separately.
func Rank(reports []*scoring.ScoreReport) Ranking {
	var ranking Ranking
	for _, report := range reports {
		if report.Performance.Ranked {
			ranking.Ranked = append(ranking.Ranked, RankEntry{
				GroupID:      report.GroupID,
				TotalSeconds: report.Performance.TotalSeconds,
			})
		} else {
			ranking.Unranked = append(ranking.Unranked, report.GroupID)
		}
	}

	sort.Slice(ranking.Ranked, func(i, j int) bool {
		if ranking.Ranked[i].TotalSeconds != ranking.Ranked[j].TotalSeconds {
			return ranking.Ranked[i].TotalSeconds < ranking.Ranked[j].TotalSeconds
		}
		return ranking.Ranked[i].GroupID < ranking.Ranked[j].GroupID
	})
	for i := range ranking.Ranked {
		if i > 0 && ranking.Ranked[i].TotalSeconds == ranking.Ranked[i-1].TotalSeconds {
			ranking.Ranked[i].Place = ranking.Ranked[i-1].Place
		} else {
			ranking.Ranked[i].Place = i + 1
		}
	}
	sort.Strings(ranking.Unranked)
	return ranking
}
