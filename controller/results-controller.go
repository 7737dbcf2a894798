package controller

import (
	"github.com/venchfc/litmusEU/app_error"
	"github.com/venchfc/litmusEU/export"
	"github.com/venchfc/litmusEU/repository"
	"github.com/venchfc/litmusEU/scoring"
	"github.com/venchfc/litmusEU/service"
	"github.com/venchfc/litmusEU/utils"

	"github.com/gin-contrib/cache/persistence"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ResultsController struct {
	resultsService *service.ResultsService
}

func NewResultsController(db *gorm.DB, cacheStore persistence.CacheStore) *ResultsController {
	return &ResultsController{
		resultsService: service.NewResultsService(db, cacheStore),
	}
}

func setupResultsController(db *gorm.DB, cacheStore persistence.CacheStore) []RouteInfo {
	e := NewResultsController(db, cacheStore)
	baseUrl := "/events/:event_id/competitions/:competition_id/results"
	adminOnly := []repository.Role{repository.RoleAdmin}
	routes := []RouteInfo{
		{Method: "GET", Path: "", HandlerFunc: e.getResultsHandler(), Authenticated: true, RequiredRoles: adminOnly},
		{Method: "GET", Path: "/pdf", HandlerFunc: e.getResultsPdfHandler(), Authenticated: true, RequiredRoles: adminOnly},
	}
	for i, route := range routes {
		routes[i].Path = baseUrl + route.Path
	}
	return routes
}

// @id GetResults
// @Description Returns ranked standings and the per-judge breakdown for a competition, computed from locked entries only
// @Tags results
// @Security BearerAuth
// @Produce json
// @Param event_id path int true "Event Id"
// @Param competition_id path int true "Competition Id"
// @Success 200 {object} ResultsResponse
// @Router /events/{event_id}/competitions/{competition_id}/results [get]
func (e *ResultsController) getResultsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		view, ok := e.resolveView(c)
		if !ok {
			return
		}
		c.JSON(200, toResultsResponse(view))
	}
}

// @id GetResultsPdf
// @Description Renders the competition results as a PDF download
// @Tags results
// @Security BearerAuth
// @Produce application/pdf
// @Param event_id path int true "Event Id"
// @Param competition_id path int true "Competition Id"
// @Success 200 {file} binary
// @Router /events/{event_id}/competitions/{competition_id}/results/pdf [get]
func (e *ResultsController) getResultsPdfHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		view, ok := e.resolveView(c)
		if !ok {
			return
		}
		document, err := export.RenderResultsPDF(view)
		if err != nil {
			app_error.Handle(c, err)
			return
		}
		c.Header("Content-Disposition", "attachment; filename="+export.Filename(view))
		c.Data(200, "application/pdf", document)
	}
}

func (e *ResultsController) resolveView(c *gin.Context) (*service.ResultsView, bool) {
	eventId, ok := pathId(c, "event_id")
	if !ok {
		return nil, false
	}
	competitionId, ok := pathId(c, "competition_id")
	if !ok {
		return nil, false
	}
	view, err := e.resultsService.GetResults(eventId, competitionId)
	if err != nil {
		app_error.Handle(c, err)
		return nil, false
	}
	return view, true
}

type StandingResponse struct {
	ContestantId    int             `json:"contestant_id"`
	ContestantName  string          `json:"contestant_name"`
	Rank            int             `json:"rank"`
	Total           float64         `json:"total"`
	TotalRaw        float64         `json:"total_raw"`
	CriterionTotals map[int]float64 `json:"criterion_totals"`
	JudgeCount      int             `json:"judge_count"`
}

type BreakdownRowResponse struct {
	ContestantId    int              `json:"contestant_id"`
	ContestantName  string           `json:"contestant_name"`
	CriterionScores map[int]*float64 `json:"criterion_scores"`
	Total           float64          `json:"total"`
}

type BreakdownResponse struct {
	JudgeId   int                     `json:"judge_id"`
	JudgeName string                  `json:"judge_name"`
	Rows      []*BreakdownRowResponse `json:"rows"`
}

type ResultsResponse struct {
	Event       *repository.Event       `json:"event"`
	Competition *repository.Competition `json:"competition"`
	Criteria    []*repository.Criterion `json:"criteria"`
	Standings   []*StandingResponse     `json:"standings"`
	Breakdown   []*BreakdownResponse    `json:"breakdown"`
}

func toResultsResponse(view *service.ResultsView) *ResultsResponse {
	response := &ResultsResponse{
		Event:       view.Event,
		Competition: view.Competition,
		Criteria:    view.Criteria,
	}
	for _, standing := range view.Standings {
		response.Standings = append(response.Standings, &StandingResponse{
			ContestantId:    standing.Contestant.Id,
			ContestantName:  standing.Contestant.Name,
			Rank:            standing.Rank,
			Total:           standing.Total,
			TotalRaw:        standing.TotalRaw,
			CriterionTotals: standing.CriterionTotals,
			JudgeCount:      standing.JudgeCount,
		})
	}
	for _, breakdown := range view.Breakdown {
		response.Breakdown = append(response.Breakdown, &BreakdownResponse{
			JudgeId:   breakdown.Judge.Id,
			JudgeName: breakdown.Judge.Name,
			Rows: utils.Map(breakdown.Rows, func(row *scoring.JudgeBreakdownRow) *BreakdownRowResponse {
				return &BreakdownRowResponse{
					ContestantId:    row.Contestant.Id,
					ContestantName:  row.Contestant.Name,
					CriterionScores: row.CriterionScores,
					Total:           row.Total,
				}
			}),
		})
	}
	return response
}
