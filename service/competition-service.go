package service

import (
	"strings"

	"github.com/venchfc/litmusEU/app_error"
	"github.com/venchfc/litmusEU/repository"

	"gorm.io/gorm"
)

type CompetitionService struct {
	competitionRepository *repository.CompetitionRepository
}

func NewCompetitionService(db *gorm.DB) *CompetitionService {
	return &CompetitionService{
		competitionRepository: repository.NewCompetitionRepository(db),
	}
}

func Slugify(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "-")
}

func (s *CompetitionService) GetAllCompetitions() ([]*repository.Competition, error) {
	return s.competitionRepository.GetAllCompetitions()
}

func (s *CompetitionService) GetCompetitionById(competitionId int, preloads ...string) (*repository.Competition, error) {
	return s.competitionRepository.GetCompetitionById(competitionId, preloads...)
}

func (s *CompetitionService) CreateCompetition(name string, category string, slug string) (*repository.Competition, error) {
	if slug == "" {
		slug = Slugify(name)
	} else {
		slug = Slugify(slug)
	}
	if _, err := s.competitionRepository.GetCompetitionBySlug(slug); err == nil {
		return nil, app_error.Validationf("slug %q already exists", slug)
	}
	return s.competitionRepository.SaveCompetition(&repository.Competition{
		Name:     strings.TrimSpace(name),
		Slug:     slug,
		Category: category,
		Status:   repository.CompetitionOpen,
	})
}

func (s *CompetitionService) DeleteCompetition(competitionId int) error {
	if _, err := s.competitionRepository.GetCompetitionById(competitionId); err != nil {
		return err
	}
	return s.competitionRepository.DeleteCompetition(competitionId)
}
