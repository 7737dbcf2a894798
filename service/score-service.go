package service

import (
	"github.com/venchfc/litmusEU/app_error"
	"github.com/venchfc/litmusEU/metrics"
	"github.com/venchfc/litmusEU/repository"
	"github.com/venchfc/litmusEU/utils"

	"gorm.io/gorm"
)

type ScoreService struct {
	scoreRepository      *repository.ScoreRepository
	competitionService   *CompetitionService
	contestantRepository *repository.ContestantRepository
	criterionRepository  *repository.CriterionRepository
	judgeRepository      *repository.JudgeRepository
}

func NewScoreService(db *gorm.DB) *ScoreService {
	return &ScoreService{
		scoreRepository:      repository.NewScoreRepository(db),
		competitionService:   NewCompetitionService(db),
		contestantRepository: repository.NewContestantRepository(db),
		criterionRepository:  repository.NewCriterionRepository(db),
		judgeRepository:      repository.NewJudgeRepository(db),
	}
}

// canScore implements the caller-identity rules: admins always, tabulators
// for their assigned competition, judge accounts for their own judge only.
func canScore(user *repository.User, competitionId int, judgeId int) bool {
	switch user.Role {
	case repository.RoleAdmin:
		return true
	case repository.RoleTabulator:
		return user.CompetitionId != nil && *user.CompetitionId == competitionId
	case repository.RoleJudge:
		return user.JudgeId != nil && *user.JudgeId == judgeId
	}
	return false
}

func (s *ScoreService) GetScores(eventId int, competitionId int, filter *repository.ScoreFilter) ([]*repository.ScoreEntry, error) {
	return s.scoreRepository.GetScores(eventId, competitionId, filter)
}

// SaveScore validates and persists a single Draft entry. Re-saving the same
// tuple overwrites the value, it never duplicates the row.
func (s *ScoreService) SaveScore(eventId int, competitionId int, contestantId int, criterionId int, judgeId int, value float64, user *repository.User) (*repository.ScoreEntry, error) {
	if !canScore(user, competitionId, judgeId) {
		return nil, &app_error.AuthorizationError{Message: "you are not allowed to enter scores for this competition"}
	}

	judge, err := s.judgeRepository.GetJudgeById(judgeId)
	if err != nil {
		return nil, err
	}
	contestant, err := s.contestantRepository.GetContestantById(contestantId)
	if err != nil {
		return nil, err
	}
	criterion, err := s.criterionRepository.GetCriterionById(criterionId)
	if err != nil {
		return nil, err
	}
	if judge.CompetitionId != competitionId || contestant.CompetitionId != competitionId || criterion.CompetitionId != competitionId {
		metrics.ScoresRejectedCounter.WithLabelValues("wrong_competition").Inc()
		return nil, app_error.Validationf("judge, contestant and criterion must belong to competition %d", competitionId)
	}
	if value < 0 || value > criterion.MaxScore {
		metrics.ScoresRejectedCounter.WithLabelValues("out_of_range").Inc()
		return nil, app_error.Validationf("score %.2f for %q is outside [0, %.2f]", value, criterion.Label, criterion.MaxScore)
	}

	entry, err := s.scoreRepository.SaveDraft(&repository.ScoreEntry{
		EventId:       eventId,
		CompetitionId: competitionId,
		JudgeId:       judgeId,
		ContestantId:  contestantId,
		CriterionId:   criterionId,
		CreatedBy:     user.Id,
		Value:         value,
	})
	if err != nil {
		if _, ok := err.(*app_error.LockedError); ok {
			metrics.ScoresRejectedCounter.WithLabelValues("locked").Inc()
		}
		return nil, err
	}
	metrics.ScoresSavedCounter.Inc()
	return entry, nil
}

// SaveContestantScores is the score-entry form: one value per criterion for
// a (judge, contestant). The whole batch is rejected up front when the
// submission is locked or any value fails validation, so a partial form
// never lands.
func (s *ScoreService) SaveContestantScores(eventId int, competitionId int, contestantId int, judgeId int, values map[int]float64, user *repository.User) ([]*repository.ScoreEntry, error) {
	if !canScore(user, competitionId, judgeId) {
		return nil, &app_error.AuthorizationError{Message: "you are not allowed to enter scores for this competition"}
	}
	locked, err := s.scoreRepository.HasLockedEntries(eventId, competitionId, judgeId)
	if err != nil {
		return nil, err
	}
	if locked {
		metrics.ScoresRejectedCounter.WithLabelValues("locked").Inc()
		return nil, &app_error.LockedError{Message: "scores are locked and cannot be edited"}
	}

	criteria, err := s.criterionRepository.GetCriteriaForCompetition(competitionId)
	if err != nil {
		return nil, err
	}
	criterionIds := utils.Map(criteria, func(criterion *repository.Criterion) int { return criterion.Id })
	for _, criterionId := range utils.Keys(values) {
		if !utils.Contains(criterionIds, criterionId) {
			return nil, app_error.Validationf("criterion %d does not belong to competition %d", criterionId, competitionId)
		}
	}
	for _, criterion := range criteria {
		value, ok := values[criterion.Id]
		if !ok {
			return nil, app_error.Validationf("missing score for criterion %q", criterion.Label)
		}
		if value < 0 || value > criterion.MaxScore {
			metrics.ScoresRejectedCounter.WithLabelValues("out_of_range").Inc()
			return nil, app_error.Validationf("score %.2f for %q is outside [0, %.2f]", value, criterion.Label, criterion.MaxScore)
		}
	}

	entries := make([]*repository.ScoreEntry, 0, len(criteria))
	for _, criterion := range criteria {
		entry, err := s.SaveScore(eventId, competitionId, contestantId, criterion.Id, judgeId, values[criterion.Id], user)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
