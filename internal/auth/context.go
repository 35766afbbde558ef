package auth

import (
	"context"
	"fmt"

	"github.com/VitaminP8/forumly/internal/apperror"
	"github.com/VitaminP8/forumly/models"
)

type contextKey string

const viewerKey = contextKey("viewer")

// Viewer — состояние сессии текущего запроса.
// Создается один раз в middleware, дальше только читается.
type Viewer struct {
	Authenticated bool
	UserID        uint
	Role          string
	FailureReason string
}

// IsAdmin — у viewer повышенный уровень доступа
func (v *Viewer) IsAdmin() bool {
	return v.Authenticated && v.Role == models.RoleAdmin
}

// SubjectID — строковый id субъекта ("" для анонимного запроса)
func (v *Viewer) SubjectID() string {
	if !v.Authenticated {
		return ""
	}
	return fmt.Sprint(v.UserID)
}

// Сохраняет viewer в контексте
func WithViewer(ctx context.Context, v *Viewer) context.Context {
	return context.WithValue(ctx, viewerKey, v)
}

// Достает viewer из контекста.
// Если middleware не отработал — считаем запрос анонимным.
func ViewerFromContext(ctx context.Context) *Viewer {
	v, ok := ctx.Value(viewerKey).(*Viewer)
	if !ok {
		return &Viewer{FailureReason: "missing authentication header"}
	}
	return v
}

// GetUserIDFromContext — id аутентифицированного пользователя из контекста.
// Хранилища используют его, чтобы проставить авторство (id никогда не берется из входных данных клиента).
func GetUserIDFromContext(ctx context.Context) (uint, error) {
	v := ViewerFromContext(ctx)
	if !v.Authenticated {
		return 0, apperror.NewAuthError("unauthorized", nil)
	}
	return v.UserID, nil
}
