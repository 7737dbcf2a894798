package scoring

import (
	"testing"

	"github.com/venchfc/litmusEU/repository"

	"github.com/stretchr/testify/assert"
)

func testContestants(ids ...int) []*repository.Contestant {
	contestants := make([]*repository.Contestant, 0, len(ids))
	for _, id := range ids {
		contestants = append(contestants, &repository.Contestant{Id: id, Name: "contestant", CompetitionId: 1})
	}
	return contestants
}

func entry(judgeId int, contestantId int, criterionId int, value float64) *repository.ScoreEntry {
	return &repository.ScoreEntry{
		EventId:       1,
		CompetitionId: 1,
		JudgeId:       judgeId,
		ContestantId:  contestantId,
		CriterionId:   criterionId,
		Value:         value,
		State:         repository.ScoreStateLocked,
	}
}

func TestComputeStandingsWeightedNormalization(t *testing.T) {
	contestants := testContestants(1)
	criteria := []*repository.Criterion{
		{Id: 10, Label: "Execution", MaxScore: 50, Weight: 60, CompetitionId: 1},
		{Id: 11, Label: "Impact", MaxScore: 10, Weight: 40, CompetitionId: 1},
	}
	entries := []*repository.ScoreEntry{
		entry(1, 1, 10, 40),
		entry(1, 1, 11, 5),
	}

	standings := ComputeStandings(contestants, criteria, entries)
	assert.Len(t, standings, 1)
	// 40/50*60 + 5/10*40
	assert.InDelta(t, 68.0, standings[0].Total, 1e-9)
	assert.InDelta(t, 45.0, standings[0].TotalRaw, 1e-9)
	assert.InDelta(t, 48.0, standings[0].CriterionTotals[10], 1e-9)
	assert.InDelta(t, 20.0, standings[0].CriterionTotals[11], 1e-9)
	assert.InDelta(t, 40.0, standings[0].CriterionRawTotals[10], 1e-9)
	assert.Equal(t, 1, standings[0].Rank)
	assert.Equal(t, 1, standings[0].JudgeCount)
}

func TestComputeStandingsAveragesAcrossJudges(t *testing.T) {
	contestants := testContestants(1)
	criteria := []*repository.Criterion{
		{Id: 10, Label: "Execution", MaxScore: 100, Weight: 100, CompetitionId: 1},
	}
	entries := []*repository.ScoreEntry{
		entry(1, 1, 10, 90),
		entry(2, 1, 10, 70),
	}

	standings := ComputeStandings(contestants, criteria, entries)
	assert.InDelta(t, 80.0, standings[0].Total, 1e-9)
	assert.InDelta(t, 80.0, standings[0].TotalRaw, 1e-9)
	assert.Equal(t, 2, standings[0].JudgeCount)
}

func TestComputeStandingsCompetitionRanking(t *testing.T) {
	contestants := testContestants(1, 2, 3, 4)
	criteria := []*repository.Criterion{
		{Id: 10, Label: "Execution", MaxScore: 100, Weight: 100, CompetitionId: 1},
	}
	entries := []*repository.ScoreEntry{
		entry(1, 1, 10, 85),
		entry(1, 2, 10, 85),
		entry(1, 3, 10, 70),
		entry(1, 4, 10, 60),
	}

	standings := ComputeStandings(contestants, criteria, entries)
	assert.Equal(t, []int{1, 2, 3, 4}, []int{
		standings[0].Contestant.Id,
		standings[1].Contestant.Id,
		standings[2].Contestant.Id,
		standings[3].Contestant.Id,
	})
	// tied totals share a rank and the next distinct rank skips
	assert.Equal(t, 1, standings[0].Rank)
	assert.Equal(t, 1, standings[1].Rank)
	assert.Equal(t, 3, standings[2].Rank)
	assert.Equal(t, 4, standings[3].Rank)
}

func TestComputeStandingsOrderIndependence(t *testing.T) {
	contestants := testContestants(1, 2)
	criteria := []*repository.Criterion{
		{Id: 10, Label: "Execution", MaxScore: 100, Weight: 60, CompetitionId: 1},
		{Id: 11, Label: "Impact", MaxScore: 100, Weight: 40, CompetitionId: 1},
	}
	entries := []*repository.ScoreEntry{
		entry(1, 1, 10, 90),
		entry(1, 1, 11, 80),
		entry(2, 1, 10, 70),
		entry(2, 1, 11, 60),
		entry(1, 2, 10, 95),
		entry(1, 2, 11, 85),
		entry(2, 2, 10, 75),
		entry(2, 2, 11, 65),
	}
	reversed := make([]*repository.ScoreEntry, len(entries))
	for i, e := range entries {
		reversed[len(entries)-1-i] = e
	}

	forward := ComputeStandings(contestants, criteria, entries)
	backward := ComputeStandings(contestants, criteria, reversed)
	assert.Equal(t, forward, backward)
}

func TestComputeStandingsUnscoredContestantsRankLast(t *testing.T) {
	contestants := testContestants(5, 3, 8)
	criteria := []*repository.Criterion{
		{Id: 10, Label: "Execution", MaxScore: 100, Weight: 100, CompetitionId: 1},
	}
	entries := []*repository.ScoreEntry{
		entry(1, 5, 10, 50),
	}

	standings := ComputeStandings(contestants, criteria, entries)
	assert.Equal(t, 5, standings[0].Contestant.Id)
	assert.Equal(t, 1, standings[0].Rank)
	// the zero-score group is ordered by contestant id and shares a rank
	assert.Equal(t, 3, standings[1].Contestant.Id)
	assert.Equal(t, 8, standings[2].Contestant.Id)
	assert.Equal(t, 2, standings[1].Rank)
	assert.Equal(t, 2, standings[2].Rank)
	assert.Equal(t, 0, standings[1].JudgeCount)
}

func TestComputeStandingsFullMarksHitTheCap(t *testing.T) {
	contestants := testContestants(1)
	criteria := []*repository.Criterion{
		{Id: 10, Label: "Execution", MaxScore: 50, Weight: 70, CompetitionId: 1},
		{Id: 11, Label: "Impact", MaxScore: 20, Weight: 30, CompetitionId: 1},
	}
	entries := []*repository.ScoreEntry{
		entry(1, 1, 10, 50),
		entry(1, 1, 11, 20),
	}

	standings := ComputeStandings(contestants, criteria, entries)
	assert.InDelta(t, 100.0, standings[0].Total, 1e-9)
}

func TestComputeJudgeBreakdown(t *testing.T) {
	judge := &repository.Judge{Id: 1, Name: "judge1", CompetitionId: 1}
	contestants := testContestants(1, 2)
	criteria := []*repository.Criterion{
		{Id: 10, Label: "Execution", MaxScore: 50, Weight: 60, CompetitionId: 1},
		{Id: 11, Label: "Impact", MaxScore: 10, Weight: 40, CompetitionId: 1},
	}
	entries := []*repository.ScoreEntry{
		entry(1, 1, 10, 25),
		entry(1, 1, 11, 10),
		entry(1, 2, 10, 50),
		// other judges' entries must not leak into the breakdown
		entry(2, 1, 10, 50),
	}

	rows := ComputeJudgeBreakdown(judge, contestants, criteria, entries)
	assert.Len(t, rows, 2)

	assert.Equal(t, 1, rows[0].Contestant.Id)
	assert.InDelta(t, 25.0, *rows[0].CriterionScores[10], 1e-9)
	assert.InDelta(t, 10.0, *rows[0].CriterionScores[11], 1e-9)
	// 25/50*60 + 10/10*40
	assert.InDelta(t, 70.0, rows[0].Total, 1e-9)

	assert.Equal(t, 2, rows[1].Contestant.Id)
	assert.Nil(t, rows[1].CriterionScores[11])
	assert.InDelta(t, 60.0, rows[1].Total, 1e-9)
}
