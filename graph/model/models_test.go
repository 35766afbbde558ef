package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VitaminP8/forumly/models"
)

func testUser() *models.User {
	u := &models.User{
		Email:      "user@example.com",
		Password:   "bcrypt-hash",
		Firstname:  "Ivan",
		Lastname:   "Petrov",
		ProfileImg: "avatar.png",
		Role:       models.RoleAdmin,
	}
	u.ID = 7
	u.CreatedAt = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return u
}

func TestAsPublicProfile(t *testing.T) {
	profile := AsPublicProfile(testUser())

	assert.Equal(t, "7", profile.ID)
	assert.Equal(t, "Ivan", profile.Firstname)
	// email в публичной проекции скрыт
	assert.Empty(t, profile.Email)
}

func TestAsOwnerProfile(t *testing.T) {
	profile := AsOwnerProfile(testUser())
	assert.Equal(t, "user@example.com", profile.Email)
}

func TestProfileNeverSerializesCredentials(t *testing.T) {
	// пароль и роль не должны существовать даже как поля boundary-типа
	raw, err := json.Marshal(AsOwnerProfile(testUser()))
	require.NoError(t, err)

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &fields))

	assert.NotContains(t, fields, "password")
	assert.NotContains(t, fields, "role")
	assert.NotContains(t, string(raw), "bcrypt-hash")
	assert.NotContains(t, string(raw), models.RoleAdmin)
}

func TestPostFromModel(t *testing.T) {
	p := &models.Post{
		Title:       "Title",
		Description: "Desc",
		Category:    "tech",
		Status:      "published",
		UpVotes:     3,
		UserID:      7,
	}
	p.ID = 1
	p.CreatedAt = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	result := PostFromModel(p)
	assert.Equal(t, "1", result.ID)
	assert.Equal(t, "7", result.AuthorID)
	assert.Equal(t, 3, result.UpVotes)
	assert.Equal(t, "2024-05-01T12:00:00Z", result.CreatedAt)
}
