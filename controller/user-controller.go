package controller

import (
	"github.com/venchfc/litmusEU/app_error"
	"github.com/venchfc/litmusEU/repository"
	"github.com/venchfc/litmusEU/service"
	"github.com/venchfc/litmusEU/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UserController struct {
	userService *service.UserService
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{
		userService: service.NewUserService(db),
	}
}

func setupUserController(db *gorm.DB) []RouteInfo {
	e := NewUserController(db)
	baseUrl := "/users"
	adminOnly := []repository.Role{repository.RoleAdmin}
	routes := []RouteInfo{
		{Method: "GET", Path: "", HandlerFunc: e.getUsersHandler(), Authenticated: true, RequiredRoles: adminOnly},
		{Method: "POST", Path: "", HandlerFunc: e.createUserHandler(), Authenticated: true, RequiredRoles: adminOnly},
		{Method: "DELETE", Path: "/:user_id", HandlerFunc: e.deleteUserHandler(), Authenticated: true, RequiredRoles: adminOnly},
		{Method: "PUT", Path: "/password", HandlerFunc: e.changePasswordHandler(), Authenticated: true},
	}
	for i, route := range routes {
		routes[i].Path = baseUrl + route.Path
	}
	return routes
}

type AccountCreate struct {
	Username      string          `json:"username" binding:"required"`
	Password      string          `json:"password" binding:"required"`
	Role          repository.Role `json:"role" binding:"required,oneof=admin tabulator judge"`
	CompetitionId *int            `json:"competition_id"`
	JudgeId       *int            `json:"judge_id"`
}

// @id GetUsers
// @Description Lists all accounts
// @Tags user
// @Security BearerAuth
// @Produce json
// @Success 200 {array} UserResponse
// @Router /users [get]
func (e *UserController) getUsersHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := e.userService.GetAllUsers()
		if err != nil {
			app_error.Handle(c, err)
			return
		}
		c.JSON(200, utils.Map(users, toUserResponse))
	}
}

// @id CreateUser
// @Description Creates an account. Tabulators require a competition, judge accounts require a judge.
// @Tags user
// @Accept json
// @Security BearerAuth
// @Produce json
// @Param body body AccountCreate true "Account to create"
// @Success 201 {object} UserResponse
// @Router /users [post]
func (e *UserController) createUserHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var request AccountCreate
		if err := c.BindJSON(&request); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		user, err := e.userService.CreateAccount(service.AccountCreate{
			Username:      request.Username,
			Password:      request.Password,
			Role:          request.Role,
			CompetitionId: request.CompetitionId,
			JudgeId:       request.JudgeId,
		})
		if err != nil {
			app_error.Handle(c, err)
			return
		}
		c.JSON(201, toUserResponse(user))
	}
}

// @id DeleteUser
// @Description Deletes an account; the primary admin is protected
// @Tags user
// @Security BearerAuth
// @Param user_id path int true "User Id"
// @Success 204
// @Router /users/{user_id} [delete]
func (e *UserController) deleteUserHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, ok := pathId(c, "user_id")
		if !ok {
			return
		}
		if err := e.userService.DeleteAccount(userId); err != nil {
			app_error.Handle(c, err)
			return
		}
		c.JSON(204, nil)
	}
}

type PasswordChange struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
}

// @id ChangePassword
// @Description Changes the calling user's password
// @Tags user
// @Accept json
// @Security BearerAuth
// @Success 204
// @Router /users/password [put]
func (e *UserController) changePasswordHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var request PasswordChange
		if err := c.BindJSON(&request); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		user, err := e.userService.GetUserFromContext(c)
		if err != nil {
			app_error.Handle(c, err)
			return
		}
		if err := e.userService.ChangePassword(user, request.CurrentPassword, request.NewPassword); err != nil {
			app_error.Handle(c, err)
			return
		}
		c.JSON(204, nil)
	}
}
