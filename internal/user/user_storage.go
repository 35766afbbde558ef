package user

import (
	"github.com/VitaminP8/forumly/models"
)

type UserStorage interface {
	CreateUser(email, passwordHash, firstname, lastname string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
}
