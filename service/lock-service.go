package service

import (
	"github.com/venchfc/litmusEU/app_error"
	"github.com/venchfc/litmusEU/metrics"
	"github.com/venchfc/litmusEU/repository"
	"github.com/venchfc/litmusEU/utils"

	"github.com/gin-contrib/cache/persistence"
	"gorm.io/gorm"
)

// LockService owns the one-way Draft to Locked transition of a judge
// submission. There is no unlock anywhere in the codebase.
type LockService struct {
	scoreRepository      *repository.ScoreRepository
	contestantRepository *repository.ContestantRepository
	criterionRepository  *repository.CriterionRepository
	judgeRepository      *repository.JudgeRepository
	resultsService       *ResultsService
}

func NewLockService(db *gorm.DB, cacheStore persistence.CacheStore) *LockService {
	return &LockService{
		scoreRepository:      repository.NewScoreRepository(db),
		contestantRepository: repository.NewContestantRepository(db),
		criterionRepository:  repository.NewCriterionRepository(db),
		judgeRepository:      repository.NewJudgeRepository(db),
		resultsService:       NewResultsService(db, cacheStore),
	}
}

// Lock finalizes the (judge, competition) submission for the event. Either
// every entry locks or none does: completeness is re-checked inside the same
// transaction that flips the rows.
func (s *LockService) Lock(eventId int, competitionId int, judgeId int, user *repository.User) error {
	if !canScore(user, competitionId, judgeId) {
		return &app_error.AuthorizationError{Message: "you are not allowed to lock this submission"}
	}

	judge, err := s.judgeRepository.GetJudgeById(judgeId)
	if err != nil {
		return err
	}
	if judge.CompetitionId != competitionId {
		return app_error.Validationf("judge %d does not belong to competition %d", judgeId, competitionId)
	}

	contestants, err := s.contestantRepository.GetContestantsForCompetition(competitionId)
	if err != nil {
		return err
	}
	criteria, err := s.criterionRepository.GetCriteriaForCompetition(competitionId)
	if err != nil {
		return err
	}
	if len(contestants) == 0 || len(criteria) == 0 {
		return app_error.Validationf("competition %d has no contestants or criteria to lock", competitionId)
	}

	err = s.scoreRepository.LockSubmission(eventId, competitionId, judgeId,
		utils.Map(contestants, func(c *repository.Contestant) int { return c.Id }),
		utils.Map(criteria, func(c *repository.Criterion) int { return c.Id }),
	)
	if err != nil {
		return err
	}

	metrics.SubmissionsLockedCounter.Inc()
	// Standings may change now, drop the cached view for this competition.
	s.resultsService.InvalidateCache(eventId, competitionId)
	return nil
}
