package postgres

import (
	"fmt"

	"github.com/VitaminP8/forumly/internal/apperror"
	"github.com/VitaminP8/forumly/models"
	"github.com/jinzhu/gorm"
)

type UserPostgresStorage struct{}

func NewUserPostgresStorage() *UserPostgresStorage {
	return &UserPostgresStorage{}
}

func (s *UserPostgresStorage) CreateUser(email, passwordHash, firstname, lastname string) (*models.User, error) {
	// проверка - не занят ли email
	var existUser models.User
	err := DB.Where("email = ?", email).First(&existUser).Error
	if err == nil {
		return nil, apperror.NewConflictError("email already in use", nil)
	}
	if !gorm.IsRecordNotFoundError(err) {
		return nil, apperror.NewInternalError("could not check email", err)
	}

	user := &models.User{
		Email:     email,
		Password:  passwordHash,
		Firstname: firstname,
		Lastname:  lastname,
		Role:      models.RoleUser,
	}

	err = DB.Create(user).Error
	if err != nil {
		return nil, apperror.NewInternalError("failed to create user", err)
	}

	return user, nil
}

func (s *UserPostgresStorage) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := DB.Where("email = ?", email).First(&user).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, apperror.NewNotFoundError(fmt.Sprintf("user with email %s not found", email), err)
	}
	if err != nil {
		return nil, apperror.NewInternalError("could not get user by email", err)
	}
	return &user, nil
}

func (s *UserPostgresStorage) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	err := DB.First(&user, id).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, apperror.NewNotFoundError("user not found", err)
	}
	if err != nil {
		return nil, apperror.NewInternalError("could not get user by id", err)
	}
	return &user, nil
}
