package service

import (
	"strings"

	"github.com/venchfc/litmusEU/repository"

	"gorm.io/gorm"
)

type JudgeService struct {
	judgeRepository       *repository.JudgeRepository
	competitionRepository *repository.CompetitionRepository
}

func NewJudgeService(db *gorm.DB) *JudgeService {
	return &JudgeService{
		judgeRepository:       repository.NewJudgeRepository(db),
		competitionRepository: repository.NewCompetitionRepository(db),
	}
}

func (s *JudgeService) GetJudgesForCompetition(competitionId int) ([]*repository.Judge, error) {
	return s.judgeRepository.GetJudgesForCompetition(competitionId)
}

func (s *JudgeService) CreateJudge(competitionId int, name string) (*repository.Judge, error) {
	if _, err := s.competitionRepository.GetCompetitionById(competitionId); err != nil {
		return nil, err
	}
	return s.judgeRepository.SaveJudge(&repository.Judge{
		Name:          strings.TrimSpace(name),
		CompetitionId: competitionId,
	})
}

func (s *JudgeService) DeleteJudge(judgeId int) error {
	if _, err := s.judgeRepository.GetJudgeById(judgeId); err != nil {
		return err
	}
	return s.judgeRepository.DeleteJudge(judgeId)
}
