package repository

import (
	"github.com/venchfc/litmusEU/app_error"

	"gorm.io/gorm"
)

type CompetitionStatus string

const (
	CompetitionOpen   CompetitionStatus = "open"
	CompetitionClosed CompetitionStatus = "closed"
)

type Competition struct {
	Id       int               `gorm:"primaryKey"`
	Name     string            `gorm:"not null"`
	Slug     string            `gorm:"uniqueIndex;not null"`
	Category string            `gorm:"null"`
	Status   CompetitionStatus `gorm:"not null;default:'open'"`

	Contestants []*Contestant `gorm:"foreignKey:CompetitionId;constraint:OnDelete:CASCADE"`
	Criteria    []*Criterion  `gorm:"foreignKey:CompetitionId;constraint:OnDelete:CASCADE"`
	Judges      []*Judge      `gorm:"foreignKey:CompetitionId;constraint:OnDelete:CASCADE"`
}

type CompetitionRepository struct {
	DB *gorm.DB
}

func NewCompetitionRepository(db *gorm.DB) *CompetitionRepository {
	return &CompetitionRepository{DB: db}
}

func (r *CompetitionRepository) GetCompetitionById(competitionId int, preloads ...string) (*Competition, error) {
	var competition Competition
	query := r.DB
	for _, preload := range preloads {
		query = query.Preload(preload)
	}
	result := query.First(&competition, competitionId)
	if result.Error != nil {
		return nil, &app_error.NotFoundError{Resource: "competition"}
	}
	return &competition, nil
}

func (r *CompetitionRepository) GetCompetitionBySlug(slug string) (*Competition, error) {
	var competition Competition
	result := r.DB.First(&competition, "slug = ?", slug)
	if result.Error != nil {
		return nil, result.Error
	}
	return &competition, nil
}

func (r *CompetitionRepository) GetAllCompetitions() ([]*Competition, error) {
	var competitions []*Competition
	result := r.DB.Order("name").Find(&competitions)
	if result.Error != nil {
		return nil, result.Error
	}
	return competitions, nil
}

func (r *CompetitionRepository) SaveCompetition(competition *Competition) (*Competition, error) {
	result := r.DB.Save(competition)
	if result.Error != nil {
		return nil, result.Error
	}
	return competition, nil
}

func (r *CompetitionRepository) DeleteCompetition(competitionId int) error {
	return r.DB.Select("Contestants", "Criteria", "Judges").Delete(&Competition{Id: competitionId}).Error
}
