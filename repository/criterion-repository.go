package repository

import (
	"github.com/venchfc/litmusEU/app_error"

	"gorm.io/gorm"
)

type Criterion struct {
	Id            int     `gorm:"primaryKey"`
	Label         string  `gorm:"not null"`
	MaxScore      float64 `gorm:"not null;default:10"`
	Weight        float64 `gorm:"not null;default:1"`
	CompetitionId int     `gorm:"not null"`
}

// TableName pins the plural gorm would not derive.
func (Criterion) TableName() string {
	return "litmus.criteria"
}

type CriterionRepository struct {
	DB *gorm.DB
}

func NewCriterionRepository(db *gorm.DB) *CriterionRepository {
	return &CriterionRepository{DB: db}
}

func (r *CriterionRepository) GetCriterionById(criterionId int) (*Criterion, error) {
	var criterion Criterion
	result := r.DB.First(&criterion, criterionId)
	if result.Error != nil {
		return nil, &app_error.NotFoundError{Resource: "criterion"}
	}
	return &criterion, nil
}

func (r *CriterionRepository) GetCriteriaForCompetition(competitionId int) ([]*Criterion, error) {
	var criteria []*Criterion
	result := r.DB.Order("label").Find(&criteria, "competition_id = ?", competitionId)
	if result.Error != nil {
		return nil, result.Error
	}
	return criteria, nil
}

// TotalWeight sums the weights of a competition's criteria. Weights are
// percentages, the sum may not exceed 100.
func (r *CriterionRepository) TotalWeight(competitionId int) (float64, error) {
	var total float64
	result := r.DB.Model(&Criterion{}).
		Where("competition_id = ?", competitionId).
		Select("coalesce(sum(weight), 0)").
		Scan(&total)
	if result.Error != nil {
		return 0, result.Error
	}
	return total, nil
}

func (r *CriterionRepository) SaveCriterion(criterion *Criterion) (*Criterion, error) {
	result := r.DB.Save(criterion)
	if result.Error != nil {
		return nil, result.Error
	}
	return criterion, nil
}

func (r *CriterionRepository) DeleteCriterion(criterionId int) error {
	return r.DB.Delete(&Criterion{Id: criterionId}).Error
}
