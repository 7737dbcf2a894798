package service

import (
	"strings"

	"github.com/venchfc/litmusEU/app_error"
	"github.com/venchfc/litmusEU/repository"

	"gorm.io/gorm"
)

// maxWeightTotal bounds the sum of criteria weights per competition, since
// weights are percentages of the final score.
const maxWeightTotal = 100.0

type CriterionService struct {
	criterionRepository   *repository.CriterionRepository
	competitionRepository *repository.CompetitionRepository
}

func NewCriterionService(db *gorm.DB) *CriterionService {
	return &CriterionService{
		criterionRepository:   repository.NewCriterionRepository(db),
		competitionRepository: repository.NewCompetitionRepository(db),
	}
}

func (s *CriterionService) GetCriteriaForCompetition(competitionId int) ([]*repository.Criterion, error) {
	return s.criterionRepository.GetCriteriaForCompetition(competitionId)
}

func (s *CriterionService) TotalWeight(competitionId int) (float64, error) {
	return s.criterionRepository.TotalWeight(competitionId)
}

func (s *CriterionService) CreateCriterion(competitionId int, label string, maxScore float64, weight float64) (*repository.Criterion, error) {
	if _, err := s.competitionRepository.GetCompetitionById(competitionId); err != nil {
		return nil, err
	}
	if maxScore <= 0 {
		return nil, app_error.Validationf("max score must be positive")
	}
	if weight < 0 {
		return nil, app_error.Validationf("weight cannot be negative")
	}
	total, err := s.criterionRepository.TotalWeight(competitionId)
	if err != nil {
		return nil, err
	}
	if total+weight > maxWeightTotal {
		return nil, app_error.Validationf("total criteria weight cannot exceed %.0f%%", maxWeightTotal)
	}
	return s.criterionRepository.SaveCriterion(&repository.Criterion{
		Label:         strings.TrimSpace(label),
		MaxScore:      maxScore,
		Weight:        weight,
		CompetitionId: competitionId,
	})
}

func (s *CriterionService) DeleteCriterion(criterionId int) error {
	if _, err := s.criterionRepository.GetCriterionById(criterionId); err != nil {
		return err
	}
	return s.criterionRepository.DeleteCriterion(criterionId)
}
