package repository

import (
	"github.com/venchfc/litmusEU/app_error"

	"gorm.io/gorm"
)

type Contestant struct {
	Id            int    `gorm:"primaryKey"`
	Name          string `gorm:"not null"`
	CompetitionId int    `gorm:"not null"`
}

type ContestantRepository struct {
	DB *gorm.DB
}

func NewContestantRepository(db *gorm.DB) *ContestantRepository {
	return &ContestantRepository{DB: db}
}

func (r *ContestantRepository) GetContestantById(contestantId int) (*Contestant, error) {
	var contestant Contestant
	result := r.DB.First(&contestant, contestantId)
	if result.Error != nil {
		return nil, &app_error.NotFoundError{Resource: "contestant"}
	}
	return &contestant, nil
}

func (r *ContestantRepository) GetContestantsForCompetition(competitionId int) ([]*Contestant, error) {
	var contestants []*Contestant
	result := r.DB.Order("name").Find(&contestants, "competition_id = ?", competitionId)
	if result.Error != nil {
		return nil, result.Error
	}
	return contestants, nil
}

func (r *ContestantRepository) SaveContestant(contestant *Contestant) (*Contestant, error) {
	result := r.DB.Save(contestant)
	if result.Error != nil {
		return nil, result.Error
	}
	return contestant, nil
}

func (r *ContestantRepository) DeleteContestant(contestantId int) error {
	return r.DB.Delete(&Contestant{Id: contestantId}).Error
}
