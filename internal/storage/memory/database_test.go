package memory

import (
	"context"

	"github.com/VitaminP8/forumly/internal/auth"
	"github.com/VitaminP8/forumly/models"
)

func createUserContext(userID uint) context.Context {
	return auth.WithViewer(context.Background(), &auth.Viewer{
		Authenticated: true,
		UserID:        userID,
		Role:          models.RoleUser,
	})
}
