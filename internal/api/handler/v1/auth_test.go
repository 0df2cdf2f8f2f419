package v1

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yizeng/gab/gin/gorm/event-booking/internal/config"
	"github.com/yizeng/gab/gin/gorm/event-booking/internal/domain"
	"github.com/yizeng/gab/gin/gorm/event-booking/internal/service"
)

type fakeAuthService struct {
	user      domain.User
	signupErr error
	loginErr  error
}

func (f *fakeAuthService) Signup(_ context.Context, _ domain.User) (domain.User, error) {
	if f.signupErr != nil {
		return domain.User{}, f.signupErr
	}

	return f.user, nil
}

func (f *fakeAuthService) Login(_ context.Context, _, _ string) (domain.User, error) {
	if f.loginErr != nil {
		return domain.User{}, f.loginErr
	}

	return f.user, nil
}

func setupAuthRouter(svc AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)

	h := NewAuthHandler(&config.APIConfig{JWTSigningKey: "test-key"}, svc)

	router := gin.New()
	router.POST("/v1/auth/signup", h.HandleSignup)
	router.POST("/v1/auth/login", h.HandleLogin)

	return router
}

func TestHandleSignup(t *testing.T) {
	t.Run("201 with a token", func(t *testing.T) {
		svc := &fakeAuthService{user: domain.User{ID: 1, Email: "alice@example.com"}}
		router := setupAuthRouter(svc)

		body := `{"email":"alice@example.com","password":"passw0rd1","confirm_password":"passw0rd1","name":"Alice"}`
		req := httptest.NewRequest(http.MethodPost, "/v1/auth/signup", strings.NewReader(body))
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)

		require.Equal(t, http.StatusCreated, resp.Code)
		assert.Contains(t, resp.Body.String(), `"token":`)
		// The password hash must never appear in a response.
		assert.NotContains(t, resp.Body.String(), "password")
	})

	t.Run("400 for a weak password", func(t *testing.T) {
		svc := &fakeAuthService{}
		router := setupAuthRouter(svc)

		body := `{"email":"alice@example.com","password":"short","confirm_password":"short","name":"Alice"}`
		req := httptest.NewRequest(http.MethodPost, "/v1/auth/signup", strings.NewReader(body))
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)

		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})

	t.Run("400 for a mismatched confirmation", func(t *testing.T) {
		svc := &fakeAuthService{}
		router := setupAuthRouter(svc)

		body := `{"email":"alice@example.com","password":"passw0rd1","confirm_password":"passw0rd2","name":"Alice"}`
		req := httptest.NewRequest(http.MethodPost, "/v1/auth/signup", strings.NewReader(body))
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)

		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})

	t.Run("400 when the email is taken", func(t *testing.T) {
		svc := &fakeAuthService{signupErr: service.ErrUserEmailExists}
		router := setupAuthRouter(svc)

		body := `{"email":"alice@example.com","password":"passw0rd1","confirm_password":"passw0rd1","name":"Alice"}`
		req := httptest.NewRequest(http.MethodPost, "/v1/auth/signup", strings.NewReader(body))
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)

		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})
}

func TestHandleLogin(t *testing.T) {
	t.Run("200 with a token", func(t *testing.T) {
		svc := &fakeAuthService{user: domain.User{ID: 1, Email: "alice@example.com"}}
		router := setupAuthRouter(svc)

		body := `{"email":"alice@example.com","password":"passw0rd1"}`
		req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", strings.NewReader(body))
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)

		require.Equal(t, http.StatusOK, resp.Code)
		assert.Contains(t, resp.Body.String(), `"token":`)
	})

	t.Run("401 for wrong credentials", func(t *testing.T) {
		svc := &fakeAuthService{loginErr: service.ErrWrongPassword}
		router := setupAuthRouter(svc)

		body := `{"email":"alice@example.com","password":"wrongpass1"}`
		req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", strings.NewReader(body))
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)

		assert.Equal(t, http.StatusUnauthorized, resp.Code)
	})

	t.Run("401 for an unknown user", func(t *testing.T) {
		svc := &fakeAuthService{loginErr: service.ErrUserNotFound}
		router := setupAuthRouter(svc)

		body := `{"email":"nobody@example.com","password":"passw0rd1"}`
		req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", strings.NewReader(body))
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)

		assert.Equal(t, http.StatusUnauthorized, resp.Code)
	})
}
