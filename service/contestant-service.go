package service

import (
	"strings"

	"github.com/venchfc/litmusEU/repository"

	"gorm.io/gorm"
)

type ContestantService struct {
	contestantRepository  *repository.ContestantRepository
	competitionRepository *repository.CompetitionRepository
}

func NewContestantService(db *gorm.DB) *ContestantService {
	return &ContestantService{
		contestantRepository:  repository.NewContestantRepository(db),
		competitionRepository: repository.NewCompetitionRepository(db),
	}
}

func (s *ContestantService) GetContestantsForCompetition(competitionId int) ([]*repository.Contestant, error) {
	return s.contestantRepository.GetContestantsForCompetition(competitionId)
}

func (s *ContestantService) CreateContestant(competitionId int, name string) (*repository.Contestant, error) {
	if _, err := s.competitionRepository.GetCompetitionById(competitionId); err != nil {
		return nil, err
	}
	return s.contestantRepository.SaveContestant(&repository.Contestant{
		Name:          strings.TrimSpace(name),
		CompetitionId: competitionId,
	})
}

func (s *ContestantService) DeleteContestant(contestantId int) error {
	if _, err := s.contestantRepository.GetContestantById(contestantId); err != nil {
		return err
	}
	return s.contestantRepository.DeleteContestant(contestantId)
}
