package repository

import (
	"github.com/venchfc/litmusEU/app_error"

	"gorm.io/gorm"
)

type Judge struct {
	Id            int    `gorm:"primaryKey"`
	Name          string `gorm:"not null"`
	CompetitionId int    `gorm:"not null"`
}

type JudgeRepository struct {
	DB *gorm.DB
}

func NewJudgeRepository(db *gorm.DB) *JudgeRepository {
	return &JudgeRepository{DB: db}
}

func (r *JudgeRepository) GetJudgeById(judgeId int) (*Judge, error) {
	var judge Judge
	result := r.DB.First(&judge, judgeId)
	if result.Error != nil {
		return nil, &app_error.NotFoundError{Resource: "judge"}
	}
	return &judge, nil
}

func (r *JudgeRepository) GetJudgesForCompetition(competitionId int) ([]*Judge, error) {
	var judges []*Judge
	result := r.DB.Order("name").Find(&judges, "competition_id = ?", competitionId)
	if result.Error != nil {
		return nil, result.Error
	}
	return judges, nil
}

func (r *JudgeRepository) SaveJudge(judge *Judge) (*Judge, error) {
	result := r.DB.Save(judge)
	if result.Error != nil {
		return nil, result.Error
	}
	return judge, nil
}

func (r *JudgeRepository) DeleteJudge(judgeId int) error {
	return r.DB.Delete(&Judge{Id: judgeId}).Error
}
