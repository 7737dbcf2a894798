package service

import (
	"fmt"

	"github.com/venchfc/litmusEU/metrics"
	"github.com/venchfc/litmusEU/repository"
	"github.com/venchfc/litmusEU/scoring"

	"github.com/gin-contrib/cache/persistence"
	"gorm.io/gorm"
)

// ResultsView is the display-ready projection consumed by the results
// endpoint and the PDF exporter. It is assembled from locked entries only
// and never written back.
type ResultsView struct {
	Event       *repository.Event
	Competition *repository.Competition
	Criteria    []*repository.Criterion
	Standings   []*scoring.Standing
	Breakdown   []*JudgeBreakdown
}

type JudgeBreakdown struct {
	Judge *repository.Judge
	Rows  []*scoring.JudgeBreakdownRow
}

type ResultsService struct {
	eventRepository      *repository.EventRepository
	competitionService   *CompetitionService
	contestantRepository *repository.ContestantRepository
	criterionRepository  *repository.CriterionRepository
	judgeRepository      *repository.JudgeRepository
	scoreRepository      *repository.ScoreRepository
	cacheStore           persistence.CacheStore
}

func NewResultsService(db *gorm.DB, cacheStore persistence.CacheStore) *ResultsService {
	return &ResultsService{
		eventRepository:      repository.NewEventRepository(db),
		competitionService:   NewCompetitionService(db),
		contestantRepository: repository.NewContestantRepository(db),
		criterionRepository:  repository.NewCriterionRepository(db),
		judgeRepository:      repository.NewJudgeRepository(db),
		scoreRepository:      repository.NewScoreRepository(db),
		cacheStore:           cacheStore,
	}
}

func resultsCacheKey(eventId int, competitionId int) string {
	return fmt.Sprintf("results:%d:%d", eventId, competitionId)
}

// InvalidateCache drops the cached view for one (event, competition). Called
// by the lock flow only; tabulation has no other write path.
func (s *ResultsService) InvalidateCache(eventId int, competitionId int) {
	_ = s.cacheStore.Delete(resultsCacheKey(eventId, competitionId))
}

// GetResults assembles the ResultsView for a competition within an event.
// Cached until the next lock event for the pair.
func (s *ResultsService) GetResults(eventId int, competitionId int) (*ResultsView, error) {
	var cached ResultsView
	if err := s.cacheStore.Get(resultsCacheKey(eventId, competitionId), &cached); err == nil {
		metrics.ResultsCacheCounter.WithLabelValues("hit").Inc()
		return &cached, nil
	}
	metrics.ResultsCacheCounter.WithLabelValues("miss").Inc()

	event, err := s.eventRepository.GetEventById(eventId)
	if err != nil {
		return nil, err
	}
	competition, err := s.competitionService.GetCompetitionById(competitionId)
	if err != nil {
		return nil, err
	}
	contestants, err := s.contestantRepository.GetContestantsForCompetition(competitionId)
	if err != nil {
		return nil, err
	}
	criteria, err := s.criterionRepository.GetCriteriaForCompetition(competitionId)
	if err != nil {
		return nil, err
	}
	judges, err := s.judgeRepository.GetJudgesForCompetition(competitionId)
	if err != nil {
		return nil, err
	}

	locked := repository.ScoreStateLocked
	entries, err := s.scoreRepository.GetScores(eventId, competitionId, &repository.ScoreFilter{State: &locked})
	if err != nil {
		return nil, err
	}

	view := &ResultsView{
		Event:       event,
		Competition: competition,
		Criteria:    criteria,
		Standings:   scoring.ComputeStandings(contestants, criteria, entries),
	}
	for _, judge := range judges {
		view.Breakdown = append(view.Breakdown, &JudgeBreakdown{
			Judge: judge,
			Rows:  scoring.ComputeJudgeBreakdown(judge, contestants, criteria, entries),
		})
	}

	_ = s.cacheStore.Set(resultsCacheKey(eventId, competitionId), *view, persistence.FOREVER)
	return view, nil
}

// CompletedCompetition marks a competition whose submissions are all locked
// for an event.
type CompletedCompetition struct {
	Event          *repository.Event
	Competition    *repository.Competition
	ExpectedScores int64
}

// GetCompletedCompetitions lists (event, competition) pairs where every
// expected entry exists and is locked. Completeness is a computed predicate
// over the score rows, never a stored flag.
func (s *ResultsService) GetCompletedCompetitions() ([]*CompletedCompetition, error) {
	events, err := s.eventRepository.GetAllEvents()
	if err != nil {
		return nil, err
	}
	competitions, err := s.competitionService.GetAllCompetitions()
	if err != nil {
		return nil, err
	}

	completed := make([]*CompletedCompetition, 0)
	for _, competition := range competitions {
		full, err := s.competitionService.GetCompetitionById(competition.Id, "Contestants", "Criteria", "Judges")
		if err != nil {
			return nil, err
		}
		expected := int64(len(full.Judges)) * int64(len(full.Contestants)) * int64(len(full.Criteria))
		if expected == 0 {
			continue
		}
		for _, event := range events {
			lockedCount, err := s.scoreRepository.CountLocked(event.Id, competition.Id)
			if err != nil {
				return nil, err
			}
			if lockedCount == expected {
				completed = append(completed, &CompletedCompetition{
					Event:          event,
					Competition:    competition,
					ExpectedScores: expected,
				})
			}
		}
	}
	return completed, nil
}
