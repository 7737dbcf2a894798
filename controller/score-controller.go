package controller

import (
	"time"

	"github.com/venchfc/litmusEU/app_error"
	"github.com/venchfc/litmusEU/repository"
	"github.com/venchfc/litmusEU/service"
	"github.com/venchfc/litmusEU/utils"

	"github.com/gin-contrib/cache/persistence"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ScoreController struct {
	scoreService *service.ScoreService
	lockService  *service.LockService
	userService  *service.UserService
}

func NewScoreController(db *gorm.DB, cacheStore persistence.CacheStore) *ScoreController {
	return &ScoreController{
		scoreService: service.NewScoreService(db),
		lockService:  service.NewLockService(db, cacheStore),
		userService:  service.NewUserService(db),
	}
}

func setupScoreController(db *gorm.DB, cacheStore persistence.CacheStore) []RouteInfo {
	e := NewScoreController(db, cacheStore)
	baseUrl := "/events/:event_id/competitions/:competition_id"
	scoringRoles := []repository.Role{repository.RoleAdmin, repository.RoleTabulator, repository.RoleJudge}
	routes := []RouteInfo{
		{Method: "GET", Path: "/scores", HandlerFunc: e.getScoresHandler(), Authenticated: true, RequiredRoles: scoringRoles},
		{Method: "PUT", Path: "/scores", HandlerFunc: e.saveScoresHandler(), Authenticated: true, RequiredRoles: scoringRoles},
		{Method: "POST", Path: "/judges/:judge_id/lock", HandlerFunc: e.lockSubmissionHandler(), Authenticated: true, RequiredRoles: scoringRoles},
	}
	for i, route := range routes {
		routes[i].Path = baseUrl + route.Path
	}
	return routes
}

// @id GetScores
// @Description Fetches score entries for a competition within an event, optionally filtered by judge, contestant or state
// @Tags score
// @Security BearerAuth
// @Produce json
// @Param event_id path int true "Event Id"
// @Param competition_id path int true "Competition Id"
// @Param judge_id query int false "Judge Id"
// @Param contestant_id query int false "Contestant Id"
// @Param state query string false "DRAFT or LOCKED"
// @Success 200 {array} ScoreResponse
// @Router /events/{event_id}/competitions/{competition_id}/scores [get]
func (e *ScoreController) getScoresHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		eventId, ok := pathId(c, "event_id")
		if !ok {
			return
		}
		competitionId, ok := pathId(c, "competition_id")
		if !ok {
			return
		}
		filter := &repository.ScoreFilter{
			JudgeId:      queryId(c, "judge_id"),
			ContestantId: queryId(c, "contestant_id"),
		}
		if state := c.Query("state"); state != "" {
			scoreState := repository.ScoreState(state)
			filter.State = &scoreState
		}
		entries, err := e.scoreService.GetScores(eventId, competitionId, filter)
		if err != nil {
			app_error.Handle(c, err)
			return
		}
		c.JSON(200, utils.Map(entries, toScoreResponse))
	}
}

type ScoreSheetCreate struct {
	JudgeId      int             `json:"judge_id" binding:"required"`
	ContestantId int             `json:"contestant_id" binding:"required"`
	Values       map[int]float64 `json:"values" binding:"required"`
}

// @id SaveScores
// @Description Saves one judge's Draft scores for a contestant, one value per criterion. Re-submitting overwrites the Draft values.
// @Tags score
// @Accept json
// @Security BearerAuth
// @Produce json
// @Param event_id path int true "Event Id"
// @Param competition_id path int true "Competition Id"
// @Param body body ScoreSheetCreate true "Scores keyed by criterion id"
// @Success 201 {array} ScoreResponse
// @Router /events/{event_id}/competitions/{competition_id}/scores [put]
func (e *ScoreController) saveScoresHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		eventId, ok := pathId(c, "event_id")
		if !ok {
			return
		}
		competitionId, ok := pathId(c, "competition_id")
		if !ok {
			return
		}
		var request ScoreSheetCreate
		if err := c.BindJSON(&request); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		user, err := e.userService.GetUserFromContext(c)
		if err != nil {
			app_error.Handle(c, err)
			return
		}
		entries, err := e.scoreService.SaveContestantScores(eventId, competitionId, request.ContestantId, request.JudgeId, request.Values, user)
		if err != nil {
			app_error.Handle(c, err)
			return
		}
		c.JSON(201, utils.Map(entries, toScoreResponse))
	}
}

// @id LockSubmission
// @Description Irreversibly locks a judge's submission for a competition. All (contestant, criterion) pairs must be scored; either every entry locks or none does.
// @Tags score
// @Security BearerAuth
// @Produce json
// @Param event_id path int true "Event Id"
// @Param competition_id path int true "Competition Id"
// @Param judge_id path int true "Judge Id"
// @Success 204
// @Router /events/{event_id}/competitions/{competition_id}/judges/{judge_id}/lock [post]
func (e *ScoreController) lockSubmissionHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		eventId, ok := pathId(c, "event_id")
		if !ok {
			return
		}
		competitionId, ok := pathId(c, "competition_id")
		if !ok {
			return
		}
		judgeId, ok := pathId(c, "judge_id")
		if !ok {
			return
		}
		user, err := e.userService.GetUserFromContext(c)
		if err != nil {
			app_error.Handle(c, err)
			return
		}
		if err := e.lockService.Lock(eventId, competitionId, judgeId, user); err != nil {
			app_error.Handle(c, err)
			return
		}
		c.JSON(204, nil)
	}
}

type ScoreResponse struct {
	Id           int                   `json:"id"`
	JudgeId      int                   `json:"judge_id"`
	ContestantId int                   `json:"contestant_id"`
	CriterionId  int                   `json:"criterion_id"`
	Value        float64               `json:"value"`
	State        repository.ScoreState `json:"state"`
	CreatedAt    time.Time             `json:"created_at"`
	LockedAt     *time.Time            `json:"locked_at,omitempty"`
}

func toScoreResponse(entry *repository.ScoreEntry) *ScoreResponse {
	return &ScoreResponse{
		Id:           entry.Id,
		JudgeId:      entry.JudgeId,
		ContestantId: entry.ContestantId,
		CriterionId:  entry.CriterionId,
		Value:        entry.Value,
		State:        entry.State,
		CreatedAt:    entry.CreatedAt,
		LockedAt:     entry.LockedAt,
	}
}
