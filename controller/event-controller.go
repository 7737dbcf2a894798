package controller

import (
	"github.com/venchfc/litmusEU/app_error"
	"github.com/venchfc/litmusEU/repository"
	"github.com/venchfc/litmusEU/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type EventController struct {
	eventService *service.EventService
}

func NewEventController(db *gorm.DB) *EventController {
	return &EventController{
		eventService: service.NewEventService(db),
	}
}

func setupEventController(db *gorm.DB) []RouteInfo {
	e := NewEventController(db)
	baseUrl := "/events"
	routes := []RouteInfo{
		{Method: "GET", Path: "", HandlerFunc: e.getEventsHandler(), Authenticated: true, RequiredRoles: []repository.Role{repository.RoleAdmin}},
		{Method: "GET", Path: "/current", HandlerFunc: e.getCurrentEventHandler(), Authenticated: true},
		{Method: "POST", Path: "/current/close", HandlerFunc: e.closeEventHandler(), Authenticated: true, RequiredRoles: []repository.Role{repository.RoleAdmin}},
	}
	for i, route := range routes {
		routes[i].Path = baseUrl + route.Path
	}
	return routes
}

// @id GetEvents
// @Description Lists all events, newest first
// @Tags event
// @Security BearerAuth
// @Produce json
// @Success 200 {array} repository.Event
// @Router /events [get]
func (e *EventController) getEventsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		events, err := e.eventService.GetAllEvents()
		if err != nil {
			app_error.Handle(c, err)
			return
		}
		c.JSON(200, events)
	}
}

// @id GetCurrentEvent
// @Description Returns the active event, creating one if none exists
// @Tags event
// @Security BearerAuth
// @Produce json
// @Success 200 {object} repository.Event
// @Router /events/current [get]
func (e *EventController) getCurrentEventHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		event, err := e.eventService.GetActiveEvent()
		if err != nil {
			app_error.Handle(c, err)
			return
		}
		c.JSON(200, event)
	}
}

// @id CloseEvent
// @Description Archives the active event and starts a new one
// @Tags event
// @Security BearerAuth
// @Produce json
// @Success 201 {object} repository.Event
// @Router /events/current/close [post]
func (e *EventController) closeEventHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		next, err := e.eventService.CloseActiveEvent()
		if err != nil {
			app_error.Handle(c, err)
			return
		}
		c.JSON(201, next)
	}
}
