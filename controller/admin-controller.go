package controller

import (
	"github.com/venchfc/litmusEU/app_error"
	"github.com/venchfc/litmusEU/repository"
	"github.com/venchfc/litmusEU/service"
	"github.com/venchfc/litmusEU/utils"

	"github.com/gin-contrib/cache/persistence"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AdminController struct {
	db             *gorm.DB
	userService    *service.UserService
	eventService   *service.EventService
	resultsService *service.ResultsService
}

func NewAdminController(db *gorm.DB) *AdminController {
	// History counts locked rows directly and never reads cached views, so
	// a private store is fine here.
	return &AdminController{
		db:             db,
		userService:    service.NewUserService(db),
		eventService:   service.NewEventService(db),
		resultsService: service.NewResultsService(db, persistence.NewInMemoryStore(persistence.DEFAULT)),
	}
}

func setupAdminController(db *gorm.DB) []RouteInfo {
	e := NewAdminController(db)
	baseUrl := "/admin"
	adminOnly := []repository.Role{repository.RoleAdmin}
	routes := []RouteInfo{
		{Method: "GET", Path: "/stats", HandlerFunc: e.getStatsHandler(), Authenticated: true, RequiredRoles: adminOnly},
		{Method: "GET", Path: "/history", HandlerFunc: e.getHistoryHandler(), Authenticated: true, RequiredRoles: adminOnly},
		{Method: "POST", Path: "/reset", HandlerFunc: e.resetDatabaseHandler(), Authenticated: true, RequiredRoles: adminOnly},
	}
	for i, route := range routes {
		routes[i].Path = baseUrl + route.Path
	}
	return routes
}

type DashboardStats struct {
	Competitions int64 `json:"competitions"`
	Judges       int64 `json:"judges"`
	Contestants  int64 `json:"contestants"`
	Criteria     int64 `json:"criteria"`
	Tabulators   int64 `json:"tabulators"`
}

// @id GetStats
// @Description Dashboard counts for the admin landing page
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} DashboardStats
// @Router /admin/stats [get]
func (e *AdminController) getStatsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var stats DashboardStats
		for _, count := range []struct {
			model any
			dest  *int64
		}{
			{&repository.Competition{}, &stats.Competitions},
			{&repository.Judge{}, &stats.Judges},
			{&repository.Contestant{}, &stats.Contestants},
			{&repository.Criterion{}, &stats.Criteria},
		} {
			if err := e.db.Model(count.model).Count(count.dest).Error; err != nil {
				app_error.Handle(c, err)
				return
			}
		}
		tabulators, err := repository.NewUserRepository(e.db).CountByRole(repository.RoleTabulator)
		if err != nil {
			app_error.Handle(c, err)
			return
		}
		stats.Tabulators = tabulators
		c.JSON(200, stats)
	}
}

type CompletedCompetitionResponse struct {
	EventId        int    `json:"event_id"`
	EventName      string `json:"event_name"`
	CompetitionId  int    `json:"competition_id"`
	Competition    string `json:"competition"`
	ExpectedScores int64  `json:"expected_scores"`
}

// @id GetHistory
// @Description Lists competitions whose submissions are fully locked, per event
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Success 200 {array} CompletedCompetitionResponse
// @Router /admin/history [get]
func (e *AdminController) getHistoryHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		completed, err := e.resultsService.GetCompletedCompetitions()
		if err != nil {
			app_error.Handle(c, err)
			return
		}
		c.JSON(200, utils.Map(completed, func(entry *service.CompletedCompetition) *CompletedCompetitionResponse {
			return &CompletedCompetitionResponse{
				EventId:        entry.Event.Id,
				EventName:      entry.Event.Name,
				CompetitionId:  entry.Competition.Id,
				Competition:    entry.Competition.Name,
				ExpectedScores: entry.ExpectedScores,
			}
		}))
	}
}

type ResetRequest struct {
	Password string `json:"password" binding:"required"`
}

// @id ResetDatabase
// @Description Wipes scores, reference data and non-primary accounts. Primary admin only, password re-checked.
// @Tags admin
// @Accept json
// @Security BearerAuth
// @Success 204
// @Router /admin/reset [post]
func (e *AdminController) resetDatabaseHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var request ResetRequest
		if err := c.BindJSON(&request); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		user, err := e.userService.GetUserFromContext(c)
		if err != nil {
			app_error.Handle(c, err)
			return
		}
		if err := e.userService.ResetDatabase(user, request.Password); err != nil {
			app_error.Handle(c, err)
			return
		}
		c.JSON(204, nil)
	}
}
