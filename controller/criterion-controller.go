package controller

import (
	"github.com/venchfc/litmusEU/app_error"
	"github.com/venchfc/litmusEU/repository"
	"github.com/venchfc/litmusEU/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CriterionController struct {
	criterionService *service.CriterionService
}

func NewCriterionController(db *gorm.DB) *CriterionController {
	return &CriterionController{
		criterionService: service.NewCriterionService(db),
	}
}

func setupCriterionController(db *gorm.DB) []RouteInfo {
	e := NewCriterionController(db)
	baseUrl := "/competitions/:competition_id/criteria"
	routes := []RouteInfo{
		{Method: "GET", Path: "", HandlerFunc: e.getCriteriaHandler(), Authenticated: true},
		{Method: "POST", Path: "", HandlerFunc: e.createCriterionHandler(), Authenticated: true, RequiredRoles: []repository.Role{repository.RoleAdmin}},
		{Method: "DELETE", Path: "/:criterion_id", HandlerFunc: e.deleteCriterionHandler(), Authenticated: true, RequiredRoles: []repository.Role{repository.RoleAdmin}},
	}
	for i, route := range routes {
		routes[i].Path = baseUrl + route.Path
	}
	return routes
}

type CriterionCreate struct {
	Label    string  `json:"label" binding:"required"`
	MaxScore float64 `json:"max_score" binding:"required"`
	Weight   float64 `json:"weight" binding:"required"`
}

// @id GetCriteria
// @Description Lists a competition's criteria with the current weight total
// @Tags criterion
// @Security BearerAuth
// @Produce json
// @Param competition_id path int true "Competition Id"
// @Success 200 {object} CriteriaResponse
// @Router /competitions/{competition_id}/criteria [get]
func (e *CriterionController) getCriteriaHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		competitionId, ok := pathId(c, "competition_id")
		if !ok {
			return
		}
		criteria, err := e.criterionService.GetCriteriaForCompetition(competitionId)
		if err != nil {
			app_error.Handle(c, err)
			return
		}
		total, err := e.criterionService.TotalWeight(competitionId)
		if err != nil {
			app_error.Handle(c, err)
			return
		}
		c.JSON(200, CriteriaResponse{Criteria: criteria, WeightTotal: total})
	}
}

type CriteriaResponse struct {
	Criteria    []*repository.Criterion `json:"criteria"`
	WeightTotal float64                 `json:"weight_total"`
}

// @id CreateCriterion
// @Description Adds a scoring criterion; the competition's weight total may not exceed 100
// @Tags criterion
// @Accept json
// @Security BearerAuth
// @Produce json
// @Param competition_id path int true "Competition Id"
// @Param body body CriterionCreate true "Criterion to create"
// @Success 201 {object} repository.Criterion
// @Router /competitions/{competition_id}/criteria [post]
func (e *CriterionController) createCriterionHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		competitionId, ok := pathId(c, "competition_id")
		if !ok {
			return
		}
		var request CriterionCreate
		if err := c.BindJSON(&request); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		criterion, err := e.criterionService.CreateCriterion(competitionId, request.Label, request.MaxScore, request.Weight)
		if err != nil {
			app_error.Handle(c, err)
			return
		}
		c.JSON(201, criterion)
	}
}

// @id DeleteCriterion
// @Description Removes a criterion
// @Tags criterion
// @Security BearerAuth
// @Param competition_id path int true "Competition Id"
// @Param criterion_id path int true "Criterion Id"
// @Success 204
// @Router /competitions/{competition_id}/criteria/{criterion_id} [delete]
func (e *CriterionController) deleteCriterionHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		criterionId, ok := pathId(c, "criterion_id")
		if !ok {
			return
		}
		if err := e.criterionService.DeleteCriterion(criterionId); err != nil {
			app_error.Handle(c, err)
			return
		}
		c.JSON(204, nil)
	}
}
