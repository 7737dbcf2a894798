package controller

import (
	"github.com/venchfc/litmusEU/app_error"
	"github.com/venchfc/litmusEU/repository"
	"github.com/venchfc/litmusEU/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ContestantController struct {
	contestantService *service.ContestantService
}

func NewContestantController(db *gorm.DB) *ContestantController {
	return &ContestantController{
		contestantService: service.NewContestantService(db),
	}
}

func setupContestantController(db *gorm.DB) []RouteInfo {
	e := NewContestantController(db)
	baseUrl := "/competitions/:competition_id/contestants"
	routes := []RouteInfo{
		{Method: "GET", Path: "", HandlerFunc: e.getContestantsHandler(), Authenticated: true},
		{Method: "POST", Path: "", HandlerFunc: e.createContestantHandler(), Authenticated: true, RequiredRoles: []repository.Role{repository.RoleAdmin}},
		{Method: "DELETE", Path: "/:contestant_id", HandlerFunc: e.deleteContestantHandler(), Authenticated: true, RequiredRoles: []repository.Role{repository.RoleAdmin}},
	}
	for i, route := range routes {
		routes[i].Path = baseUrl + route.Path
	}
	return routes
}

type ContestantCreate struct {
	Name string `json:"name" binding:"required"`
}

// @id GetContestants
// @Description Lists a competition's contestants
// @Tags contestant
// @Security BearerAuth
// @Produce json
// @Param competition_id path int true "Competition Id"
// @Success 200 {array} repository.Contestant
// @Router /competitions/{competition_id}/contestants [get]
func (e *ContestantController) getContestantsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		competitionId, ok := pathId(c, "competition_id")
		if !ok {
			return
		}
		contestants, err := e.contestantService.GetContestantsForCompetition(competitionId)
		if err != nil {
			app_error.Handle(c, err)
			return
		}
		c.JSON(200, contestants)
	}
}

// @id CreateContestant
// @Description Adds a contestant to a competition
// @Tags contestant
// @Accept json
// @Security BearerAuth
// @Produce json
// @Param competition_id path int true "Competition Id"
// @Param body body ContestantCreate true "Contestant to create"
// @Success 201 {object} repository.Contestant
// @Router /competitions/{competition_id}/contestants [post]
func (e *ContestantController) createContestantHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		competitionId, ok := pathId(c, "competition_id")
		if !ok {
			return
		}
		var request ContestantCreate
		if err := c.BindJSON(&request); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		contestant, err := e.contestantService.CreateContestant(competitionId, request.Name)
		if err != nil {
			app_error.Handle(c, err)
			return
		}
		c.JSON(201, contestant)
	}
}

// @id DeleteContestant
// @Description Removes a contestant
// @Tags contestant
// @Security BearerAuth
// @Param competition_id path int true "Competition Id"
// @Param contestant_id path int true "Contestant Id"
// @Success 204
// @Router /competitions/{competition_id}/contestants/{contestant_id} [delete]
func (e *ContestantController) deleteContestantHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		contestantId, ok := pathId(c, "contestant_id")
		if !ok {
			return
		}
		if err := e.contestantService.DeleteContestant(contestantId); err != nil {
			app_error.Handle(c, err)
			return
		}
		c.JSON(204, nil)
	}
}
