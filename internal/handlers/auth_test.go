package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/taskboard-api/internal/dto"
	apierrors "github.com/yukikurage/taskboard-api/internal/errors"
	"github.com/yukikurage/taskboard-api/internal/middleware"
	"github.com/yukikurage/taskboard-api/internal/models"
	"github.com/yukikurage/taskboard-api/internal/repository"
	"github.com/yukikurage/taskboard-api/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type authHandlerTestEnv struct {
	db          *gorm.DB
	router      *gin.Engine
	authService *services.AuthService
	tokenSvc    *services.TokenService
}

func setupAuthHandlerTestEnv(t *testing.T) authHandlerTestEnv {
	t.Helper()

	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Task{},
		&models.TaskAssignment{},
	)
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(db)
	passwordSvc := services.NewPasswordService()
	tokenSvc := services.NewTokenService("test-secret", "taskboard-api", "taskboard-clients", 15)
	authService := services.NewAuthService(userRepo, passwordSvc, tokenSvc)
	handler := NewAuthHandler(authService)

	r := gin.New()
	r.POST("/api/auth/register", handler.Register)
	r.POST("/api/auth/login", handler.Login)
	r.POST("/api/auth/refresh-token", handler.RefreshToken)
	r.POST("/api/auth/change-password", middleware.RequireAuth(tokenSvc), handler.ChangePassword)
	r.GET("/api/auth/profile", middleware.RequireAuth(tokenSvc), handler.GetProfile)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return authHandlerTestEnv{
		db:          db,
		router:      r,
		authService: authService,
		tokenSvc:    tokenSvc,
	}
}

func postJSON(t *testing.T, r *gin.Engine, path string, payload any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Register(t *testing.T) {
	env := setupAuthHandlerTestEnv(t)

	w := postJSON(t, env.router, "/api/auth/register", map[string]string{
		"email":    "new@example.com",
		"username": "newuser",
		"password": "supersecret",
	}, nil)

	require.Equal(t, http.StatusCreated, w.Code)

	var response apierrors.Response[dto.UserDTO]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.True(t, response.IsSuccess)
	require.Equal(t, apierrors.CodeUserCreated, response.SuccessCode)
	require.Equal(t, "new@example.com", response.Data.Email)
	require.Equal(t, models.RoleAdmin, response.Data.Role)

	// Credential material must never appear on the wire
	require.NotContains(t, w.Body.String(), "password_hash")
	require.NotContains(t, w.Body.String(), "password_salt")
}

func TestAuthHandler_Register_DuplicateEmail(t *testing.T) {
	env := setupAuthHandlerTestEnv(t)

	payload := map[string]string{
		"email":    "taken@example.com",
		"username": "first",
		"password": "supersecret",
	}
	w := postJSON(t, env.router, "/api/auth/register", payload, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	payload["username"] = "second"
	w = postJSON(t, env.router, "/api/auth/register", payload, nil)
	require.Equal(t, http.StatusConflict, w.Code)

	var response apierrors.Response[dto.UserDTO]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.False(t, response.IsSuccess)
	require.Equal(t, apierrors.ErrCodeEmailAlreadyExists, response.ErrorCode)
}

func TestAuthHandler_Login(t *testing.T) {
	env := setupAuthHandlerTestEnv(t)

	_, err := env.authService.Register(services.RegisterInput{
		Email:    "login@example.com",
		Username: "loginuser",
		Password: "supersecret",
	})
	require.NoError(t, err)

	w := postJSON(t, env.router, "/api/auth/login", map[string]string{
		"email":    "login@example.com",
		"password": "supersecret",
	}, nil)

	require.Equal(t, http.StatusOK, w.Code)

	var response apierrors.Response[dto.LoginResponse]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.True(t, response.IsSuccess)
	require.NotEmpty(t, response.Data.AccessToken)
	require.NotEmpty(t, response.Data.RefreshToken)
	require.Equal(t, "login@example.com", response.Data.User.Email)
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	env := setupAuthHandlerTestEnv(t)

	_, err := env.authService.Register(services.RegisterInput{
		Email:    "login@example.com",
		Username: "loginuser",
		Password: "supersecret",
	})
	require.NoError(t, err)

	w := postJSON(t, env.router, "/api/auth/login", map[string]string{
		"email":    "login@example.com",
		"password": "wrongpassword",
	}, nil)

	require.Equal(t, http.StatusUnauthorized, w.Code)

	var response apierrors.Response[dto.LoginResponse]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, apierrors.ErrCodeInvalidCredentials, response.ErrorCode)
}

func TestAuthHandler_RefreshToken_RotationFlow(t *testing.T) {
	env := setupAuthHandlerTestEnv(t)

	_, err := env.authService.Register(services.RegisterInput{
		Email:    "rotate@example.com",
		Username: "rotator",
		Password: "supersecret",
	})
	require.NoError(t, err)

	login, err := env.authService.Login(services.LoginInput{
		Email:    "rotate@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	// First exchange succeeds
	w := postJSON(t, env.router, "/api/auth/refresh-token", map[string]string{
		"refresh_token": login.RefreshToken,
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var response apierrors.Response[dto.LoginResponse]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.NotEqual(t, login.RefreshToken, response.Data.RefreshToken)

	// Replaying the consumed token fails
	w = postJSON(t, env.router, "/api/auth/refresh-token", map[string]string{
		"refresh_token": login.RefreshToken,
	}, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	var failed apierrors.Response[dto.LoginResponse]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &failed))
	require.Equal(t, apierrors.ErrCodeInvalidRefreshToken, failed.ErrorCode)
}

func TestAuthHandler_GetProfile(t *testing.T) {
	env := setupAuthHandlerTestEnv(t)

	_, err := env.authService.Register(services.RegisterInput{
		Email:    "me@example.com",
		Username: "me",
		Password: "supersecret",
	})
	require.NoError(t, err)

	login, err := env.authService.Login(services.LoginInput{
		Email:    "me@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil)
	req.Header.Set("Authorization", "Bearer "+login.AccessToken)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response apierrors.Response[dto.UserDTO]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "me@example.com", response.Data.Email)
}
