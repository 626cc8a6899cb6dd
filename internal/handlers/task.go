package handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/taskboard-api/internal/dto"
	apierrors "github.com/yukikurage/taskboard-api/internal/errors"
	"github.com/yukikurage/taskboard-api/internal/middleware"
	"github.com/yukikurage/taskboard-api/internal/models"
	"github.com/yukikurage/taskboard-api/internal/services"
	"github.com/yukikurage/taskboard-api/internal/utils"
)

// TaskHandler coordinates task HTTP handlers.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// CreateTask creates a new task owned by the authenticated admin.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	type CreateTaskRequest struct {
		Title           string     `json:"title" binding:"required"`
		Description     string     `json:"description"`
		DueDate         *time.Time `json:"due_date"`
		AssignedUserIDs []uint64   `json:"assigned_user_ids"`
	}

	actorID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c)
		return
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c)
		return
	}

	task, err := h.taskService.CreateTask(services.CreateTaskInput{
		Title:           req.Title,
		Description:     req.Description,
		DueDate:         req.DueDate,
		AssignedUserIDs: req.AssignedUserIDs,
		ActorID:         actorID,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	apierrors.Created(c, dto.ToTaskDTO(*task), apierrors.CodeTaskCreated)
}

// GetTask returns a task by ID.
func (h *TaskHandler) GetTask(c *gin.Context) {
	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c)
		return
	}

	task, err := h.taskService.GetTask(taskID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	apierrors.Success(c, dto.ToTaskDTO(*task), "")
}

// ListCreatedTasks returns tasks created by the authenticated admin.
func (h *TaskHandler) ListCreatedTasks(c *gin.Context) {
	actorID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c)
		return
	}

	params := utils.GetPaginationParams(c)

	tasks, total, err := h.taskService.ListCreatedTasks(actorID, params)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	apierrors.Success(c, dto.TaskListResponse{
		Tasks:      dto.ToTaskDTOs(tasks),
		Page:       params.Page,
		PageSize:   params.Limit,
		TotalCount: total,
	}, "")
}

// ListAssignedTasks returns tasks assigned to the authenticated employee.
func (h *TaskHandler) ListAssignedTasks(c *gin.Context) {
	actorID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c)
		return
	}

	params := utils.GetPaginationParams(c)

	tasks, total, err := h.taskService.ListAssignedTasks(actorID, params)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	apierrors.Success(c, dto.TaskListResponse{
		Tasks:      dto.ToTaskDTOs(tasks),
		Page:       params.Page,
		PageSize:   params.Limit,
		TotalCount: total,
	}, "")
}

// UpdateTask updates a task the admin created.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	type UpdateTaskRequest struct {
		Title           *string            `json:"title"`
		Description     *string            `json:"description"`
		Status          *models.TaskStatus `json:"status"`
		DueDate         *time.Time         `json:"due_date"`
		AssignedUserIDs []uint64           `json:"assigned_user_ids"`
	}

	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c)
		return
	}

	actorID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c)
		return
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c)
		return
	}

	task, err := h.taskService.UpdateTask(taskID, services.UpdateTaskInput{
		Title:           req.Title,
		Description:     req.Description,
		Status:          req.Status,
		DueDate:         req.DueDate,
		AssignedUserIDs: req.AssignedUserIDs,
	}, actorID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	apierrors.Success(c, dto.ToTaskDTO(*task), apierrors.CodeTaskUpdated)
}

// UpdateTaskStatus updates only the status of a task the employee is
// assigned to.
func (h *TaskHandler) UpdateTaskStatus(c *gin.Context) {
	type UpdateStatusRequest struct {
		Status models.TaskStatus `json:"status" binding:"required"`
	}

	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c)
		return
	}

	actorID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c)
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c)
		return
	}

	task, err := h.taskService.UpdateTaskStatus(taskID, req.Status, actorID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	apierrors.Success(c, dto.ToTaskDTO(*task), apierrors.CodeTaskUpdated)
}

// DeleteTask soft deletes a task the admin created.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c)
		return
	}

	actorID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c)
		return
	}

	if err := h.taskService.SoftDeleteTask(taskID, actorID); err != nil {
		respondTaskError(c, err)
		return
	}

	apierrors.Success(c, true, apierrors.CodeTaskDeleted)
}

// AssignUsers assigns users to a task the admin created.
func (h *TaskHandler) AssignUsers(c *gin.Context) {
	type AssignRequest struct {
		UserIDs []uint64 `json:"user_ids" binding:"required"`
	}

	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c)
		return
	}

	actorID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c)
		return
	}

	var req AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c)
		return
	}

	if err := h.taskService.AssignUsers(taskID, req.UserIDs, actorID); err != nil {
		respondTaskError(c, err)
		return
	}

	apierrors.Success(c, true, apierrors.CodeTaskUpdated)
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.Fail(c, apierrors.ErrCodeTaskNotFound)
	case errors.Is(err, services.ErrInvalidTaskStatus):
		apierrors.Fail(c, apierrors.ErrCodeInvalidTaskStatus)
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrNoUserIDsProvided),
		errors.Is(err, services.ErrInvalidTaskAssignee):
		apierrors.Fail(c, apierrors.ErrCodeInvalidInput)
	default:
		apierrors.InternalError(c)
	}
}
