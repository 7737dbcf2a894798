package controller

import (
	"github.com/venchfc/litmusEU/app_error"
	"github.com/venchfc/litmusEU/config"
	"github.com/venchfc/litmusEU/repository"
	"github.com/venchfc/litmusEU/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AuthController struct {
	userService *service.UserService
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{
		userService: service.NewUserService(db),
	}
}

func setupAuthController(db *gorm.DB) []RouteInfo {
	e := NewAuthController(db)
	baseUrl := "/auth"
	routes := []RouteInfo{
		{Method: "POST", Path: "/login", HandlerFunc: e.loginHandler()},
		{Method: "POST", Path: "/logout", HandlerFunc: e.logoutHandler(), Authenticated: true},
		{Method: "GET", Path: "/me", HandlerFunc: e.meHandler(), Authenticated: true},
	}
	for i, route := range routes {
		routes[i].Path = baseUrl + route.Path
	}
	return routes
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// @id Login
// @Description Authenticates a user and sets the auth cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Credentials"
// @Success 200 {object} UserResponse
// @Router /auth/login [post]
func (e *AuthController) loginHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var request LoginRequest
		if err := c.BindJSON(&request); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		user, token, err := e.userService.Login(request.Username, request.Password)
		if err != nil {
			app_error.Handle(c, err)
			return
		}
		c.SetCookie("auth", token, 12*3600, "/", "", config.IsProduction(), true)
		c.JSON(200, toUserResponse(user))
	}
}

// @id Logout
// @Description Clears the auth cookie
// @Tags auth
// @Security BearerAuth
// @Success 204
// @Router /auth/logout [post]
func (e *AuthController) logoutHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.SetCookie("auth", "", -1, "/", "", config.IsProduction(), true)
		c.JSON(204, nil)
	}
}

// @id Me
// @Description Returns the calling user
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} UserResponse
// @Router /auth/me [get]
func (e *AuthController) meHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := e.userService.GetUserFromContext(c)
		if err != nil {
			app_error.Handle(c, err)
			return
		}
		c.JSON(200, toUserResponse(user))
	}
}

type UserResponse struct {
	Id            int             `json:"id"`
	Username      string          `json:"username"`
	Role          repository.Role `json:"role"`
	IsPrimary     bool            `json:"is_primary"`
	CompetitionId *int            `json:"competition_id,omitempty"`
	JudgeId       *int            `json:"judge_id,omitempty"`
}

func toUserResponse(user *repository.User) *UserResponse {
	return &UserResponse{
		Id:            user.Id,
		Username:      user.Username,
		Role:          user.Role,
		IsPrimary:     user.IsPrimary,
		CompetitionId: user.CompetitionId,
		JudgeId:       user.JudgeId,
	}
}
