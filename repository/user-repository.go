package repository

import (
	"github.com/venchfc/litmusEU/app_error"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Role string

const (
	RoleAdmin     Role = "admin"
	RoleTabulator Role = "tabulator"
	RoleJudge     Role = "judge"
)

type User struct {
	Id           int    `gorm:"primaryKey"`
	Username     string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Role         Role   `gorm:"type:litmus.user_role;not null"`
	IsPrimary    bool   `gorm:"not null;default:false"`
	// Tabulators are assigned to one competition, judge accounts to one judge.
	CompetitionId *int `gorm:"null"`
	JudgeId       *int `gorm:"null"`
}

func (u *User) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) GetUserById(userId int) (*User, error) {
	var user User
	result := r.DB.First(&user, userId)
	if result.Error != nil {
		return nil, &app_error.NotFoundError{Resource: "user"}
	}
	return &user, nil
}

func (r *UserRepository) GetUserByUsername(username string) (*User, error) {
	var user User
	result := r.DB.First(&user, "username = ?", username)
	if result.Error != nil {
		return nil, &app_error.NotFoundError{Resource: "user"}
	}
	return &user, nil
}

func (r *UserRepository) GetAllUsers() ([]*User, error) {
	var users []*User
	result := r.DB.Order("username").Find(&users)
	if result.Error != nil {
		return nil, result.Error
	}
	return users, nil
}

func (r *UserRepository) CountByRole(role Role) (int64, error) {
	var count int64
	result := r.DB.Model(&User{}).Where("role = ?", role).Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}

func (r *UserRepository) SaveUser(user *User) (*User, error) {
	result := r.DB.Save(user)
	if result.Error != nil {
		return nil, result.Error
	}
	return user, nil
}

func (r *UserRepository) DeleteUser(userId int) error {
	return r.DB.Delete(&User{Id: userId}).Error
}
