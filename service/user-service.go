package service

import (
	"strings"

	"github.com/venchfc/litmusEU/app_error"
	"github.com/venchfc/litmusEU/auth"
	"github.com/venchfc/litmusEU/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UserService struct {
	userRepository *repository.UserRepository
	db             *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{
		userRepository: repository.NewUserRepository(db),
		db:             db,
	}
}

// Login verifies credentials and returns the user plus a signed token.
// Tabulator accounts without an assigned competition cannot log in.
func (s *UserService) Login(username string, password string) (*repository.User, string, error) {
	user, err := s.userRepository.GetUserByUsername(strings.TrimSpace(username))
	if err != nil || !user.CheckPassword(password) {
		return nil, "", &app_error.AuthorizationError{Message: "invalid username or password"}
	}
	if user.Role == repository.RoleTabulator && user.CompetitionId == nil {
		return nil, "", &app_error.AuthorizationError{Message: "tabulator account is not assigned to a competition"}
	}
	token, err := auth.CreateToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

type AccountCreate struct {
	Username      string
	Password      string
	Role          repository.Role
	CompetitionId *int
	JudgeId       *int
}

func (s *UserService) CreateAccount(account AccountCreate) (*repository.User, error) {
	username := strings.TrimSpace(account.Username)
	if username == "" || account.Password == "" {
		return nil, app_error.Validationf("username and password are required")
	}
	if _, err := s.userRepository.GetUserByUsername(username); err == nil {
		return nil, app_error.Validationf("username %q already exists", username)
	}

	user := &repository.User{
		Username: username,
		Role:     account.Role,
	}
	switch account.Role {
	case repository.RoleTabulator:
		if account.CompetitionId == nil {
			return nil, app_error.Validationf("tabulator accounts require a competition")
		}
		user.CompetitionId = account.CompetitionId
	case repository.RoleJudge:
		if account.JudgeId == nil {
			return nil, app_error.Validationf("judge accounts require a judge")
		}
		user.JudgeId = account.JudgeId
	case repository.RoleAdmin:
	default:
		return nil, app_error.Validationf("unknown role %q", account.Role)
	}
	if err := user.SetPassword(account.Password); err != nil {
		return nil, err
	}
	return s.userRepository.SaveUser(user)
}

func (s *UserService) GetAllUsers() ([]*repository.User, error) {
	return s.userRepository.GetAllUsers()
}

func (s *UserService) GetUserById(userId int) (*repository.User, error) {
	return s.userRepository.GetUserById(userId)
}

func (s *UserService) DeleteAccount(userId int) error {
	user, err := s.userRepository.GetUserById(userId)
	if err != nil {
		return err
	}
	if user.IsPrimary {
		return &app_error.AuthorizationError{Message: "primary admin account cannot be deleted"}
	}
	return s.userRepository.DeleteUser(userId)
}

func (s *UserService) ChangePassword(user *repository.User, currentPassword string, newPassword string) error {
	if !user.CheckPassword(currentPassword) {
		return &app_error.AuthorizationError{Message: "current password is incorrect"}
	}
	if newPassword == "" {
		return app_error.Validationf("new password cannot be empty")
	}
	if err := user.SetPassword(newPassword); err != nil {
		return err
	}
	_, err := s.userRepository.SaveUser(user)
	return err
}

// ResetDatabase wipes everything except primary accounts. The caller's
// password is re-checked so a stolen session alone cannot trigger it.
func (s *UserService) ResetDatabase(user *repository.User, password string) error {
	if !user.IsPrimary {
		return &app_error.AuthorizationError{Message: "only the primary admin can reset the database"}
	}
	if !user.CheckPassword(password) {
		return &app_error.AuthorizationError{Message: "password is incorrect"}
	}
	return repository.ResetDatabase(s.db)
}

// EnsurePrimaryAdmin creates the bootstrap admin account on first start.
func (s *UserService) EnsurePrimaryAdmin(username string, password string) error {
	if _, err := s.userRepository.GetUserByUsername(username); err == nil {
		return nil
	}
	user := &repository.User{
		Username:  username,
		Role:      repository.RoleAdmin,
		IsPrimary: true,
	}
	if err := user.SetPassword(password); err != nil {
		return err
	}
	_, err := s.userRepository.SaveUser(user)
	return err
}

// GetUserFromContext resolves the caller from the auth cookie set at login.
func (s *UserService) GetUserFromContext(c *gin.Context) (*repository.User, error) {
	authCookie, err := c.Cookie("auth")
	if err != nil {
		return nil, &app_error.AuthorizationError{Message: "not authenticated"}
	}
	token, err := auth.ParseToken(authCookie)
	if err != nil || !token.Valid {
		return nil, &app_error.AuthorizationError{Message: "not authenticated"}
	}
	claims := &auth.Claims{}
	claims.FromJWTClaims(token.Claims)
	if err := claims.Valid(); err != nil {
		return nil, &app_error.AuthorizationError{Message: "not authenticated"}
	}
	return s.userRepository.GetUserById(claims.UserId)
}
