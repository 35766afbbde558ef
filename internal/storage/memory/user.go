package memory

import (
	"github.com/VitaminP8/forumly/internal/apperror"
	"github.com/VitaminP8/forumly/models"
)

type UserMemoryStorage struct {
	db *Database
}

func NewUserMemoryStorage(db *Database) *UserMemoryStorage {
	return &UserMemoryStorage{db: db}
}

func (s *UserMemoryStorage) CreateUser(email, passwordHash, firstname, lastname string) (*models.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	for _, u := range s.db.users {
		if u.Email == email {
			return nil, apperror.NewConflictError("email already in use", nil)
		}
	}

	u := &models.User{
		Email:     email,
		Password:  passwordHash,
		Firstname: firstname,
		Lastname:  lastname,
		Role:      models.RoleUser,
	}
	u.ID = s.db.nextUserID
	s.db.nextUserID++
	u.CreatedAt = stamp()
	u.UpdatedAt = u.CreatedAt

	s.db.users[u.ID] = u
	return u, nil
}

func (s *UserMemoryStorage) GetUserByEmail(email string) (*models.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	for _, u := range s.db.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperror.NewNotFoundError("user not found", nil)
}

func (s *UserMemoryStorage) GetUserByID(id uint) (*models.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	u, exists := s.db.users[id]
	if !exists {
		return nil, apperror.NewNotFoundError("user not found", nil)
	}
	return u, nil
}
