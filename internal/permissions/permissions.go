// Package permissions — чистые предикаты доступа.
// Никакого I/O: только viewer и факты о ресурсе.
// Текст ошибки всегда "unauthorized" — конкретная причина отказа наружу не утекает.
package permissions

import (
	"github.com/VitaminP8/forumly/internal/apperror"
	"github.com/VitaminP8/forumly/internal/auth"
)

// RequireAuthenticated — запрос должен быть аутентифицирован
func RequireAuthenticated(v *auth.Viewer) error {
	if !v.Authenticated {
		return apperror.NewAuthError("unauthorized", nil)
	}
	return nil
}

// RequireRole — аутентифицирован и роль совпадает
func RequireRole(v *auth.Viewer, role string) error {
	if !v.Authenticated || v.Role != role {
		return apperror.NewUnauthorizedError("unauthorized", nil)
	}
	return nil
}

// RequireSelfOrRole — сам владелец ресурса либо указанная роль
func RequireSelfOrRole(v *auth.Viewer, ownerID string, role string) error {
	if !v.Authenticated {
		return apperror.NewAuthError("unauthorized", nil)
	}
	if v.SubjectID() == ownerID || v.Role == role {
		return nil
	}
	return apperror.NewUnauthorizedError("unauthorized", nil)
}

// RequireOwner — мутирующий субъект должен быть автором ресурса.
// Аутентификацию не проверяет: вызывающий обязан установить личность заранее.
func RequireOwner(resourceOwnerID, subjectID string) error {
	if resourceOwnerID != subjectID {
		return apperror.NewUnauthorizedError("unauthorized", nil)
	}
	return nil
}
