package restapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VitaminP8/forumly/internal/auth"
	"github.com/VitaminP8/forumly/internal/mocks"
)

func newTestServer(t *testing.T) (*httptest.Server, *mocks.MockUserStorage) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	users := mocks.NewMockUserStorage()
	mux := http.NewServeMux()
	NewAuthHandler(users).Register(mux)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, users
}

func postJSON(t *testing.T, url string, payload interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func validSignup() map[string]string {
	return map[string]string{
		"email":     "ivan@example.com",
		"password":  "Str0ng!pass",
		"firstname": "Ivan",
		"lastname":  "Petrov",
	}
}

func TestSignup(t *testing.T) {
	t.Run("Successful signup returns token and owner profile", func(t *testing.T) {
		srv, _ := newTestServer(t)

		resp, body := postJSON(t, srv.URL+"/auth/signup", validSignup())
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.NotEmpty(t, body["authToken"])

		userMap := body["user"].(map[string]interface{})
		assert.Equal(t, "ivan@example.com", userMap["email"])
		// пароль и роль никогда не сериализуются
		assert.NotContains(t, userMap, "password")
		assert.NotContains(t, userMap, "role")
	})

	t.Run("Email is normalized to lowercase", func(t *testing.T) {
		srv, users := newTestServer(t)

		req := validSignup()
		req["email"] = "Ivan@Example.COM"
		resp, _ := postJSON(t, srv.URL+"/auth/signup", req)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		_, err := users.GetUserByEmail("ivan@example.com")
		assert.NoError(t, err)
	})

	t.Run("Validation errors", func(t *testing.T) {
		srv, _ := newTestServer(t)

		cases := map[string]map[string]string{
			"invalid email":    {"email": "not-an-email"},
			"missing email":    {"email": ""},
			"short password":   {"password": "S1!a"},
			"no uppercase":     {"password": "weak1!pass"},
			"no digit":         {"password": "Weak!pass"},
			"no symbol":        {"password": "Weak1pass"},
			"missing name":     {"firstname": ""},
			"missing lastname": {"lastname": ""},
		}
		for name, override := range cases {
			t.Run(name, func(t *testing.T) {
				req := validSignup()
				for k, v := range override {
					req[k] = v
				}
				resp, body := postJSON(t, srv.URL+"/auth/signup", req)
				assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
				assert.NotEmpty(t, body["error"])
			})
		}
	})

	t.Run("Duplicate email is rejected with conflict", func(t *testing.T) {
		srv, _ := newTestServer(t)

		resp, _ := postJSON(t, srv.URL+"/auth/signup", validSignup())
		require.Equal(t, http.StatusOK, resp.StatusCode)

		resp, body := postJSON(t, srv.URL+"/auth/signup", validSignup())
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		assert.NotEmpty(t, body["error"])
	})
}

func TestLogin(t *testing.T) {
	t.Run("Successful login", func(t *testing.T) {
		srv, _ := newTestServer(t)
		postJSON(t, srv.URL+"/auth/signup", validSignup())

		resp, body := postJSON(t, srv.URL+"/auth/login", map[string]string{
			"email":    "ivan@example.com",
			"password": "Str0ng!pass",
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.NotEmpty(t, body["authToken"])
		assert.Equal(t, "ivan@example.com", body["user"].(map[string]interface{})["email"])
	})

	t.Run("Wrong password and unknown email share one message", func(t *testing.T) {
		srv, _ := newTestServer(t)
		postJSON(t, srv.URL+"/auth/signup", validSignup())

		resp, body := postJSON(t, srv.URL+"/auth/login", map[string]string{
			"email":    "ivan@example.com",
			"password": "Wr0ng!pass",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "email or password are invalid", body["error"])

		resp, body = postJSON(t, srv.URL+"/auth/login", map[string]string{
			"email":    "nobody@example.com",
			"password": "Str0ng!pass",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "email or password are invalid", body["error"])
	})

	t.Run("Missing credentials", func(t *testing.T) {
		srv, _ := newTestServer(t)

		resp, body := postJSON(t, srv.URL+"/auth/login", map[string]string{"email": "ivan@example.com"})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "email and password are required", body["error"])
	})
}

func TestLogout(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, body := postJSON(t, srv.URL+"/auth/logout", map[string]string{})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "logged out", body["message"])

	var cleared bool
	for _, c := range resp.Cookies() {
		if c.Name == "authToken" && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared, "authToken cookie should be expired")
}

func TestAlive(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/auth/alive")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestSignupTokenIsUsable(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, body := postJSON(t, srv.URL+"/auth/signup", validSignup())
	require.Equal(t, http.StatusOK, resp.StatusCode)

	identity := auth.ResolveIdentity("Bearer " + body["authToken"].(string))
	assert.True(t, identity.Authenticated)
	assert.EqualValues(t, 1, identity.UserID)
}
