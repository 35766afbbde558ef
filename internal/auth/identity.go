package auth

import (
	"fmt"
	"os"
	"strings"

	"github.com/golang-jwt/jwt/v4"
)

// Identity — результат проверки bearer-токена.
// Все пути отказа закодированы в структуре, функция никогда не возвращает ошибку:
// решение "обязательна ли аутентификация" принимается ниже, на уровне операции.
type Identity struct {
	Authenticated bool
	UserID        uint
	Reason        string
}

// ResolveIdentity разбирает значение заголовка Authorization.
func ResolveIdentity(header string) Identity {
	if header == "" {
		return Identity{Reason: "missing authentication header"}
	}

	tokenStr := extractTokenFromHeader(header)
	if tokenStr == "" {
		return Identity{Reason: "authorization header format must be Bearer {token}"}
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return Identity{Reason: "JWT secret not set"}
	}

	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		// причина отказа — текст ошибки декодирования (expired, bad signature и т.д.)
		return Identity{Reason: err.Error()}
	}
	if !token.Valid {
		return Identity{Reason: "unable to decode JWT"}
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{Reason: "unable to decode JWT claims"}
	}

	idFloat, ok := claims["user_id"].(float64)
	if !ok {
		return Identity{Reason: "token is missing user_id claim"}
	}

	return Identity{Authenticated: true, UserID: uint(idFloat)}
}

func extractTokenFromHeader(header string) string {
	parts := strings.Split(header, " ")
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}
