package controller

import (
	"github.com/venchfc/litmusEU/app_error"
	"github.com/venchfc/litmusEU/repository"
	"github.com/venchfc/litmusEU/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type JudgeController struct {
	judgeService *service.JudgeService
}

func NewJudgeController(db *gorm.DB) *JudgeController {
	return &JudgeController{
		judgeService: service.NewJudgeService(db),
	}
}

func setupJudgeController(db *gorm.DB) []RouteInfo {
	e := NewJudgeController(db)
	baseUrl := "/competitions/:competition_id/judges"
	routes := []RouteInfo{
		{Method: "GET", Path: "", HandlerFunc: e.getJudgesHandler(), Authenticated: true},
		{Method: "POST", Path: "", HandlerFunc: e.createJudgeHandler(), Authenticated: true, RequiredRoles: []repository.Role{repository.RoleAdmin}},
		{Method: "DELETE", Path: "/:judge_id", HandlerFunc: e.deleteJudgeHandler(), Authenticated: true, RequiredRoles: []repository.Role{repository.RoleAdmin}},
	}
	for i, route := range routes {
		routes[i].Path = baseUrl + route.Path
	}
	return routes
}

type JudgeCreate struct {
	Name string `json:"name" binding:"required"`
}

// @id GetJudges
// @Description Lists a competition's judges
// @Tags judge
// @Security BearerAuth
// @Produce json
// @Param competition_id path int true "Competition Id"
// @Success 200 {array} repository.Judge
// @Router /competitions/{competition_id}/judges [get]
func (e *JudgeController) getJudgesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		competitionId, ok := pathId(c, "competition_id")
		if !ok {
			return
		}
		judges, err := e.judgeService.GetJudgesForCompetition(competitionId)
		if err != nil {
			app_error.Handle(c, err)
			return
		}
		c.JSON(200, judges)
	}
}

// @id CreateJudge
// @Description Adds a judge to a competition
// @Tags judge
// @Accept json
// @Security BearerAuth
// @Produce json
// @Param competition_id path int true "Competition Id"
// @Param body body JudgeCreate true "Judge to create"
// @Success 201 {object} repository.Judge
// @Router /competitions/{competition_id}/judges [post]
func (e *JudgeController) createJudgeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		competitionId, ok := pathId(c, "competition_id")
		if !ok {
			return
		}
		var request JudgeCreate
		if err := c.BindJSON(&request); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		judge, err := e.judgeService.CreateJudge(competitionId, request.Name)
		if err != nil {
			app_error.Handle(c, err)
			return
		}
		c.JSON(201, judge)
	}
}

// @id DeleteJudge
// @Description Removes a judge
// @Tags judge
// @Security BearerAuth
// @Param competition_id path int true "Competition Id"
// @Param judge_id path int true "Judge Id"
// @Success 204
// @Router /competitions/{competition_id}/judges/{judge_id} [delete]
func (e *JudgeController) deleteJudgeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		judgeId, ok := pathId(c, "judge_id")
		if !ok {
			return
		}
		if err := e.judgeService.DeleteJudge(judgeId); err != nil {
			app_error.Handle(c, err)
			return
		}
		c.JSON(204, nil)
	}
}
