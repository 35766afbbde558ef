package auth

import (
	"net/http"

	"github.com/VitaminP8/forumly/internal/apperror"
	"github.com/VitaminP8/forumly/internal/user"
)

// SessionMiddleware строит viewer текущего запроса: разбирает bearer-токен
// и дополняет субъект ролью из хранилища. Запрос не отклоняется никогда —
// защищенные операции отказывают сами, на уровне конкретного поля/мутации.
func SessionMiddleware(users user.UserStorage, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity := ResolveIdentity(r.Header.Get("Authorization"))
		viewer := BuildViewer(identity, users)

		ctx := WithViewer(r.Context(), viewer)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// BuildViewer дополняет identity ролью из хранилища.
// Валидный токен удаленного пользователя доступ не дает:
// если субъекта больше нет — понижаем до анонимного.
func BuildViewer(identity Identity, users user.UserStorage) *Viewer {
	if !identity.Authenticated {
		return &Viewer{FailureReason: identity.Reason}
	}

	u, err := users.GetUserByID(identity.UserID)
	if err != nil {
		if apperror.IsType(err, apperror.NotFoundError) {
			return &Viewer{FailureReason: "user not found"}
		}
		return &Viewer{FailureReason: err.Error()}
	}

	return &Viewer{
		Authenticated: true,
		UserID:        u.ID,
		Role:          u.Role,
	}
}
