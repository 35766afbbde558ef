// Package restapi — REST-поверхность аутентификации: /auth/signup, /auth/login,
// /auth/logout, /auth/alive. Остальное API — GraphQL.
package restapi

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"unicode"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/VitaminP8/forumly/graph/model"
	"github.com/VitaminP8/forumly/internal/apperror"
	"github.com/VitaminP8/forumly/internal/auth"
	"github.com/VitaminP8/forumly/internal/user"
)

type AuthHandler struct {
	UserStore user.UserStorage
}

func NewAuthHandler(users user.UserStorage) *AuthHandler {
	return &AuthHandler{UserStore: users}
}

// Register вешает маршруты аутентификации на mux
func (h *AuthHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/auth/signup", h.Signup)
	mux.HandleFunc("/auth/login", h.Login)
	mux.HandleFunc("/auth/logout", h.Logout)
	mux.HandleFunc("/auth/alive", h.Alive)
}

type signupRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
}

func (r signupRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required, validation.By(strongPassword)),
		validation.Field(&r.Firstname, validation.Required),
		validation.Field(&r.Lastname, validation.Required),
	)
}

// strongPassword: минимум 8 символов, заглавная, строчная, цифра и спецсимвол
func strongPassword(value interface{}) error {
	password, _ := value.(string)
	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, c := range password {
		switch {
		case unicode.IsUpper(c):
			hasUpper = true
		case unicode.IsLower(c):
			hasLower = true
		case unicode.IsDigit(c):
			hasDigit = true
		default:
			hasSymbol = true
		}
	}
	if len(password) < 8 || !hasUpper || !hasLower || !hasDigit || !hasSymbol {
		return apperror.NewValidationError(
			"password must be at least 8 characters with at least one uppercase, lowercase, number and symbol", nil)
	}
	return nil
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	AuthToken string      `json:"authToken"`
	User      *model.User `json:"user"`
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.NewValidationError("invalid request body", err))
		return
	}

	if err := req.Validate(); err != nil {
		writeError(w, apperror.NewValidationError(err.Error(), nil))
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		writeError(w, apperror.NewInternalError("could not hash password", err))
		return
	}

	u, err := h.UserStore.CreateUser(strings.ToLower(req.Email), hash, req.Firstname, req.Lastname)
	if err != nil {
		writeError(w, err)
		return
	}

	token, err := auth.CreateToken(u.ID)
	if err != nil {
		writeError(w, apperror.NewInternalError("could not create token", err))
		return
	}

	writeJSON(w, http.StatusOK, authResponse{
		AuthToken: token,
		User:      model.AsOwnerProfile(u),
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.NewValidationError("invalid request body", err))
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, apperror.NewValidationError("email and password are required", nil))
		return
	}

	// единый ответ для несуществующего email и неверного пароля
	u, err := h.UserStore.GetUserByEmail(strings.ToLower(req.Email))
	if err != nil || !auth.CheckPassword(req.Password, u.Password) {
		writeError(w, apperror.NewValidationError("email or password are invalid", nil))
		return
	}

	token, err := auth.CreateToken(u.ID)
	if err != nil {
		writeError(w, apperror.NewInternalError("could not create token", err))
		return
	}

	writeJSON(w, http.StatusOK, authResponse{
		AuthToken: token,
		User:      model.AsOwnerProfile(u),
	})
}

// Logout — JWT без серверного состояния: сбрасываем cookie, клиент забывает токен
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     "authToken",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

func (h *AuthHandler) Alive(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	if appErr := apperror.AsAppError(err); appErr != nil {
		status = appErr.StatusCode()
		message = appErr.Message
	}

	writeJSON(w, status, map[string]string{"error": message})
}
