package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/taskboard-api/internal/dto"
	apierrors "github.com/yukikurage/taskboard-api/internal/errors"
	"github.com/yukikurage/taskboard-api/internal/middleware"
	"github.com/yukikurage/taskboard-api/internal/services"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register creates a new user via self-registration.
func (h *AuthHandler) Register(c *gin.Context) {
	type RegisterRequest struct {
		Email    string `json:"email" binding:"required,email"`
		Username string `json:"username" binding:"required,min=3,max=50"`
		Password string `json:"password" binding:"required"`
	}

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c)
		return
	}

	user, err := h.authService.Register(services.RegisterInput{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	apierrors.Created(c, dto.ToUserDTO(*user), apierrors.CodeUserCreated)
}

// Login authenticates a user and returns the token pair.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c)
		return
	}

	result, err := h.authService.Login(services.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	apierrors.Success(c, dto.LoginResponse{
		User:         dto.ToUserDTO(*result.User),
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
	}, "")
}

// RefreshToken exchanges a refresh token for a new token pair.
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	type RefreshRequest struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}

	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c)
		return
	}

	result, err := h.authService.RefreshToken(req.RefreshToken)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	apierrors.Success(c, dto.LoginResponse{
		User:         dto.ToUserDTO(*result.User),
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
	}, "")
}

// ChangePassword rotates the caller's password.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	type ChangePasswordRequest struct {
		CurrentPassword string `json:"current_password" binding:"required"`
		NewPassword     string `json:"new_password" binding:"required"`
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c)
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c)
		return
	}

	if err := h.authService.ChangePassword(userID, req.CurrentPassword, req.NewPassword); err != nil {
		respondAuthError(c, err)
		return
	}

	apierrors.Success(c, true, apierrors.CodeUserUpdated)
}

// GetProfile returns the authenticated user.
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c)
		return
	}

	user, err := h.authService.GetUser(userID)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	apierrors.Success(c, dto.ToUserDTO(*user), "")
}

func respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPasswordTooShort):
		apierrors.Fail(c, apierrors.ErrCodeInvalidInput)
	case errors.Is(err, services.ErrEmailTaken):
		apierrors.Fail(c, apierrors.ErrCodeEmailAlreadyExists)
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.Fail(c, apierrors.ErrCodeInvalidCredentials)
	case errors.Is(err, services.ErrInvalidRefreshToken):
		apierrors.Fail(c, apierrors.ErrCodeInvalidRefreshToken)
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.Fail(c, apierrors.ErrCodeUserNotFound)
	default:
		apierrors.InternalError(c)
	}
}
