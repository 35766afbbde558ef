package mocks

import (
	"sync"

	"github.com/VitaminP8/forumly/internal/apperror"
	"github.com/VitaminP8/forumly/models"
)

// MockUserStorage — user.UserStorage для тестов.
// AddUser позволяет посадить пользователя с произвольной ролью.
type MockUserStorage struct {
	mu     sync.Mutex
	users  map[uint]*models.User
	nextID uint
}

func NewMockUserStorage() *MockUserStorage {
	return &MockUserStorage{
		users:  make(map[uint]*models.User),
		nextID: 1,
	}
}

// AddUser сохраняет пользователя как есть (включая роль) и выдает ему ID
func (m *MockUserStorage) AddUser(u *models.User) *models.User {
	m.mu.Lock()
	defer m.mu.Unlock()

	u.ID = m.nextID
	m.nextID++
	m.users[u.ID] = u
	return u
}

func (m *MockUserStorage) CreateUser(email, passwordHash, firstname, lastname string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
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
	u.ID = m.nextID
	m.nextID++
	m.users[u.ID] = u
	return u, nil
}

func (m *MockUserStorage) GetUserByEmail(email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperror.NewNotFoundError("user not found", nil)
}

func (m *MockUserStorage) GetUserByID(id uint) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, exists := m.users[id]
	if !exists {
		return nil, apperror.NewNotFoundError("user not found", nil)
	}
	return u, nil
}
