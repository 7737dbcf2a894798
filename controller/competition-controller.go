package controller

import (
	"github.com/venchfc/litmusEU/app_error"
	"github.com/venchfc/litmusEU/repository"
	"github.com/venchfc/litmusEU/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CompetitionController struct {
	competitionService *service.CompetitionService
}

func NewCompetitionController(db *gorm.DB) *CompetitionController {
	return &CompetitionController{
		competitionService: service.NewCompetitionService(db),
	}
}

func setupCompetitionController(db *gorm.DB) []RouteInfo {
	e := NewCompetitionController(db)
	baseUrl := "/competitions"
	routes := []RouteInfo{
		{Method: "GET", Path: "", HandlerFunc: e.getCompetitionsHandler()},
		{Method: "POST", Path: "", HandlerFunc: e.createCompetitionHandler(), Authenticated: true, RequiredRoles: []repository.Role{repository.RoleAdmin}},
		{Method: "DELETE", Path: "/:competition_id", HandlerFunc: e.deleteCompetitionHandler(), Authenticated: true, RequiredRoles: []repository.Role{repository.RoleAdmin}},
	}
	for i, route := range routes {
		routes[i].Path = baseUrl + route.Path
	}
	return routes
}

type CompetitionCreate struct {
	Name     string `json:"name" binding:"required"`
	Category string `json:"category"`
	Slug     string `json:"slug"`
}

// @id GetCompetitions
// @Description Lists all competitions
// @Tags competition
// @Produce json
// @Success 200 {array} repository.Competition
// @Router /competitions [get]
func (e *CompetitionController) getCompetitionsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		competitions, err := e.competitionService.GetAllCompetitions()
		if err != nil {
			app_error.Handle(c, err)
			return
		}
		c.JSON(200, competitions)
	}
}

// @id CreateCompetition
// @Description Creates a competition
// @Tags competition
// @Accept json
// @Security BearerAuth
// @Produce json
// @Param body body CompetitionCreate true "Competition to create"
// @Success 201 {object} repository.Competition
// @Router /competitions [post]
func (e *CompetitionController) createCompetitionHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var request CompetitionCreate
		if err := c.BindJSON(&request); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		competition, err := e.competitionService.CreateCompetition(request.Name, request.Category, request.Slug)
		if err != nil {
			app_error.Handle(c, err)
			return
		}
		c.JSON(201, competition)
	}
}

// @id DeleteCompetition
// @Description Deletes a competition and its contestants, criteria and judges
// @Tags competition
// @Security BearerAuth
// @Param competition_id path int true "Competition Id"
// @Success 204
// @Router /competitions/{competition_id} [delete]
func (e *CompetitionController) deleteCompetitionHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		competitionId, ok := pathId(c, "competition_id")
		if !ok {
			return
		}
		if err := e.competitionService.DeleteCompetition(competitionId); err != nil {
			app_error.Handle(c, err)
			return
		}
		c.JSON(204, nil)
	}
}
