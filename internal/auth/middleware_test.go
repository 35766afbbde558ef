package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VitaminP8/forumly/internal/mocks"
	"github.com/VitaminP8/forumly/models"
)

func TestBuildViewer(t *testing.T) {
	users := mocks.NewMockUserStorage()
	admin := users.AddUser(&models.User{Email: "admin@example.com", Role: models.RoleAdmin})

	t.Run("Authenticated identity gets role from storage", func(t *testing.T) {
		viewer := BuildViewer(Identity{Authenticated: true, UserID: admin.ID}, users)
		assert.True(t, viewer.Authenticated)
		assert.Equal(t, admin.ID, viewer.UserID)
		assert.Equal(t, models.RoleAdmin, viewer.Role)
	})

	t.Run("Unauthenticated identity keeps failure reason", func(t *testing.T) {
		viewer := BuildViewer(Identity{Reason: "token is expired"}, users)
		assert.False(t, viewer.Authenticated)
		assert.Equal(t, "token is expired", viewer.FailureReason)
	})

	t.Run("Valid token for deleted user is demoted", func(t *testing.T) {
		viewer := BuildViewer(Identity{Authenticated: true, UserID: 999}, users)
		assert.False(t, viewer.Authenticated)
		assert.Equal(t, "user not found", viewer.FailureReason)
	})
}

func TestSessionMiddleware(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	users := mocks.NewMockUserStorage()
	u := users.AddUser(&models.User{Email: "user@example.com", Role: models.RoleUser})

	var captured *Viewer
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = ViewerFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	handler := SessionMiddleware(users, next)

	t.Run("Request with valid token", func(t *testing.T) {
		tokenStr, err := CreateToken(u.ID)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/query", nil)
		req.Header.Set("Authorization", "Bearer "+tokenStr)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, captured)
		assert.True(t, captured.Authenticated)
		assert.Equal(t, u.ID, captured.UserID)
		assert.Equal(t, models.RoleUser, captured.Role)
	})

	t.Run("Request without token still passes through", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/query", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		// middleware не отклоняет запрос — доступ решают резолверы
		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, captured)
		assert.False(t, captured.Authenticated)
		assert.Equal(t, "missing authentication header", captured.FailureReason)
	})
}
