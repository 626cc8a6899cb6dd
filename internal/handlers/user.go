package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/taskboard-api/internal/dto"
	apierrors "github.com/yukikurage/taskboard-api/internal/errors"
	"github.com/yukikurage/taskboard-api/internal/middleware"
	"github.com/yukikurage/taskboard-api/internal/services"
	"github.com/yukikurage/taskboard-api/internal/utils"
)

// UserHandler coordinates user-management HTTP handlers.
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// CreateUser creates an employee on behalf of the authenticated admin.
func (h *UserHandler) CreateUser(c *gin.Context) {
	type CreateUserRequest struct {
		Email    string `json:"email" binding:"required,email"`
		Username string `json:"username" binding:"required,min=3,max=50"`
		Password string `json:"password" binding:"required"`
	}

	actorID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c)
		return
	}

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c)
		return
	}

	user, err := h.userService.CreateUser(services.CreateUserInput{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
		ActorID:  actorID,
	})
	if err != nil {
		respondUserError(c, err)
		return
	}

	apierrors.Created(c, dto.ToUserDTO(*user), apierrors.CodeUserCreated)
}

// GetUser returns a user by ID.
func (h *UserHandler) GetUser(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c)
		return
	}

	user, err := h.userService.GetUser(userID)
	if err != nil {
		respondUserError(c, err)
		return
	}

	apierrors.Success(c, dto.ToUserDTO(*user), "")
}

// ListCreatedUsers returns users created by the authenticated admin.
func (h *UserHandler) ListCreatedUsers(c *gin.Context) {
	actorID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c)
		return
	}

	params := utils.GetPaginationParams(c)

	users, total, err := h.userService.ListCreatedUsers(actorID, params)
	if err != nil {
		respondUserError(c, err)
		return
	}

	apierrors.Success(c, dto.UserListResponse{
		Users:      dto.ToUserDTOs(users),
		Page:       params.Page,
		PageSize:   params.Limit,
		TotalCount: total,
	}, "")
}

// UpdateUser updates a user the admin created.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	type UpdateUserRequest struct {
		Email    *string `json:"email" binding:"omitempty,email"`
		Username *string `json:"username" binding:"omitempty,min=3,max=50"`
		Password *string `json:"password"`
	}

	userID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c)
		return
	}

	actorID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c)
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c)
		return
	}

	user, err := h.userService.UpdateUser(userID, services.UpdateUserInput{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	}, actorID)
	if err != nil {
		respondUserError(c, err)
		return
	}

	apierrors.Success(c, dto.ToUserDTO(*user), apierrors.CodeUserUpdated)
}

// DeleteUser soft deletes a user the admin created.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c)
		return
	}

	actorID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c)
		return
	}

	if err := h.userService.SoftDeleteUser(userID, actorID); err != nil {
		respondUserError(c, err)
		return
	}

	apierrors.Success(c, true, apierrors.CodeUserDeleted)
}

func respondUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPasswordTooShort):
		apierrors.Fail(c, apierrors.ErrCodeInvalidInput)
	case errors.Is(err, services.ErrEmailTaken):
		apierrors.Fail(c, apierrors.ErrCodeEmailAlreadyExists)
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.Fail(c, apierrors.ErrCodeUserNotFound)
	default:
		apierrors.InternalError(c)
	}
}
