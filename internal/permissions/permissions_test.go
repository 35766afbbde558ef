package permissions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VitaminP8/forumly/internal/apperror"
	"github.com/VitaminP8/forumly/internal/auth"
	"github.com/VitaminP8/forumly/models"
)

func TestRequireAuthenticated(t *testing.T) {
	assert.NoError(t, RequireAuthenticated(&auth.Viewer{Authenticated: true, UserID: 1}))

	err := RequireAuthenticated(&auth.Viewer{FailureReason: "token is expired"})
	require.Error(t, err)
	// причина отказа наружу не утекает
	assert.Equal(t, "unauthorized", err.Error())
	assert.True(t, apperror.IsType(err, apperror.AuthError))
}

func TestRequireRole(t *testing.T) {
	admin := &auth.Viewer{Authenticated: true, UserID: 1, Role: models.RoleAdmin}
	user := &auth.Viewer{Authenticated: true, UserID: 2, Role: models.RoleUser}

	assert.NoError(t, RequireRole(admin, models.RoleAdmin))
	assert.Error(t, RequireRole(user, models.RoleAdmin))
	assert.Error(t, RequireRole(&auth.Viewer{Role: models.RoleAdmin}, models.RoleAdmin))
}

func TestRequireSelfOrRole(t *testing.T) {
	admin := &auth.Viewer{Authenticated: true, UserID: 1, Role: models.RoleAdmin}
	owner := &auth.Viewer{Authenticated: true, UserID: 7, Role: models.RoleUser}
	other := &auth.Viewer{Authenticated: true, UserID: 8, Role: models.RoleUser}

	assert.NoError(t, RequireSelfOrRole(owner, "7", models.RoleAdmin))
	assert.NoError(t, RequireSelfOrRole(admin, "7", models.RoleAdmin))
	assert.Error(t, RequireSelfOrRole(other, "7", models.RoleAdmin))
	assert.Error(t, RequireSelfOrRole(&auth.Viewer{}, "7", models.RoleAdmin))
}

func TestRequireOwner(t *testing.T) {
	assert.NoError(t, RequireOwner("7", "7"))

	err := RequireOwner("7", "8")
	require.Error(t, err)
	assert.Equal(t, "unauthorized", err.Error())
	assert.True(t, apperror.IsType(err, apperror.UnauthorizedError))
}
