package scoring

import (
	"sort"

	"github.com/venchfc/litmusEU/metrics"
	"github.com/venchfc/litmusEU/repository"
	"github.com/venchfc/litmusEU/utils"

	"github.com/prometheus/client_golang/prometheus"
)

// Standing is one contestant's tabulated result. Weighted totals treat
// criterion weights as percentages: each criterion contributes
// avg / maxScore * weight, and the total is capped at 100.
type Standing struct {
	Contestant *repository.Contestant
	Rank       int
	Total      float64
	TotalRaw   float64
	// Per-criterion breakdown, keyed by criterion id.
	CriterionTotals    map[int]float64
	CriterionRawTotals map[int]float64
	JudgeCount         int
}

type contestantScores struct {
	// criterion id -> values from distinct judges
	values map[int][]float64
	judges map[int]bool
}

// ComputeStandings tabulates entries into ranked standings. It is pure: the
// result depends only on the row set, not on slice order. Callers decide
// which entries qualify (the results service passes locked rows only).
// Contestants without entries appear with total 0 and rank last. Equal
// totals share a rank and the next distinct rank skips accordingly.
func ComputeStandings(contestants []*repository.Contestant, criteria []*repository.Criterion, entries []*repository.ScoreEntry) []*Standing {
	timer := prometheus.NewTimer(metrics.StandingsComputeDuration)
	defer timer.ObserveDuration()

	perContestant := make(map[int]*contestantScores)
	for _, entry := range entries {
		scores, ok := perContestant[entry.ContestantId]
		if !ok {
			scores = &contestantScores{values: make(map[int][]float64), judges: make(map[int]bool)}
			perContestant[entry.ContestantId] = scores
		}
		scores.values[entry.CriterionId] = append(scores.values[entry.CriterionId], entry.Value)
		scores.judges[entry.JudgeId] = true
	}

	standings := make([]*Standing, 0, len(contestants))
	for _, contestant := range contestants {
		standing := &Standing{
			Contestant:         contestant,
			CriterionTotals:    make(map[int]float64),
			CriterionRawTotals: make(map[int]float64),
		}
		scores := perContestant[contestant.Id]
		for _, criterion := range criteria {
			var raw, weighted float64
			if scores != nil {
				values := scores.values[criterion.Id]
				if len(values) > 0 {
					// Average across judges so totals do not depend on
					// how many judges scored the competition.
					raw = utils.SumBy(values, func(value float64) float64 { return value }) / float64(len(values))
					if criterion.MaxScore > 0 {
						weighted = raw / criterion.MaxScore * criterion.Weight
					}
				}
			}
			standing.CriterionRawTotals[criterion.Id] = raw
			standing.CriterionTotals[criterion.Id] = weighted
			standing.TotalRaw += raw
			standing.Total += weighted
		}
		if standing.Total > 100 {
			standing.Total = 100
		}
		if scores != nil {
			standing.JudgeCount = len(scores.judges)
		}
		standings = append(standings, standing)
	}

	// Ties and zero-score groups are ordered by contestant id so the
	// output is deterministic.
	sort.SliceStable(standings, func(i, j int) bool {
		if standings[i].Total != standings[j].Total {
			return standings[i].Total > standings[j].Total
		}
		return standings[i].Contestant.Id < standings[j].Contestant.Id
	})

	for i, standing := range standings {
		if i > 0 && standing.Total == standings[i-1].Total {
			standing.Rank = standings[i-1].Rank
		} else {
			standing.Rank = i + 1
		}
	}
	return standings
}

// JudgeBreakdownRow is one judge's weighted view of one contestant.
type JudgeBreakdownRow struct {
	Contestant      *repository.Contestant
	CriterionScores map[int]*float64
	Total           float64
}

// ComputeJudgeBreakdown produces each judge's per-contestant weighted
// totals, with nil holes where a score is missing.
func ComputeJudgeBreakdown(judge *repository.Judge, contestants []*repository.Contestant, criteria []*repository.Criterion, entries []*repository.ScoreEntry) []*JudgeBreakdownRow {
	ownEntries := utils.Filter(entries, func(entry *repository.ScoreEntry) bool { return entry.JudgeId == judge.Id })
	lookup := make(map[[2]int]float64)
	for _, entry := range ownEntries {
		lookup[[2]int{entry.ContestantId, entry.CriterionId}] = entry.Value
	}

	rows := make([]*JudgeBreakdownRow, 0, len(contestants))
	for _, contestant := range contestants {
		row := &JudgeBreakdownRow{
			Contestant:      contestant,
			CriterionScores: make(map[int]*float64),
		}
		for _, criterion := range criteria {
			value, ok := lookup[[2]int{contestant.Id, criterion.Id}]
			if !ok {
				row.CriterionScores[criterion.Id] = nil
				continue
			}
			raw := value
			row.CriterionScores[criterion.Id] = &raw
			if criterion.MaxScore > 0 {
				row.Total += raw / criterion.MaxScore * criterion.Weight
			}
		}
		if row.Total > 100 {
			row.Total = 100
		}
		rows = append(rows, row)
	}
	return rows
}
