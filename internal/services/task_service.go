package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/yukikurage/taskboard-api/internal/models"
	"github.com/yukikurage/taskboard-api/internal/repository"
	"github.com/yukikurage/taskboard-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound        = errors.New("task not found")
	ErrTitleRequired       = errors.New("title is required")
	ErrInvalidTaskStatus   = errors.New("invalid task status")
	ErrNoUserIDsProvided   = errors.New("at least one user ID is required")
	ErrInvalidTaskAssignee = errors.New("one or more users do not exist")
)

// TaskService handles task business logic. Mutations are ownership
// scoped: creator-only operations and assignee-only operations both
// report not found when the actor has no relationship to the task.
type TaskService struct {
	taskRepo repository.TaskRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskRepo repository.TaskRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title           string
	Description     string
	DueDate         *time.Time
	AssignedUserIDs []uint64
	ActorID         uint64
}

// UpdateTaskInput represents input for updating a task
type UpdateTaskInput struct {
	Title           *string
	Description     *string
	Status          *models.TaskStatus
	DueDate         *time.Time
	AssignedUserIDs []uint64
}

// CreateTask creates a new task owned by the actor, optionally assigning
// users up front.
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	if input.Title == "" {
		return nil, ErrTitleRequired
	}

	task := &models.Task{
		Title:           input.Title,
		Description:     input.Description,
		Status:          models.TaskStatusPending,
		DueDate:         input.DueDate,
		CreatedByUserID: input.ActorID,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	if len(input.AssignedUserIDs) > 0 {
		if err := s.assignValidated(task.ID, input.AssignedUserIDs); err != nil {
			return nil, err
		}
	}

	return s.taskRepo.FindByID(task.ID, "CreatedByUser", "Assignments", "Assignments.User")
}

// GetTask returns a task with related data.
func (s *TaskService) GetTask(taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID, "CreatedByUser", "Assignments", "Assignments.User")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	return task, nil
}

// ListCreatedTasks returns tasks created by the actor.
func (s *TaskService) ListCreatedTasks(actorID uint64, params utils.PaginationParams) ([]models.Task, int64, error) {
	tasks, total, err := s.taskRepo.List(repository.TaskFilter{
		CreatedByUserID: &actorID,
		Pagination:      params,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list created tasks: %w", err)
	}
	return tasks, total, nil
}

// ListAssignedTasks returns tasks assigned to the actor.
func (s *TaskService) ListAssignedTasks(actorID uint64, params utils.PaginationParams) ([]models.Task, int64, error) {
	tasks, total, err := s.taskRepo.List(repository.TaskFilter{
		AssignedUserID: &actorID,
		Pagination:     params,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list assigned tasks: %w", err)
	}
	return tasks, total, nil
}

// UpdateTask updates a task. Creator only; non-creators get not found.
func (s *TaskService) UpdateTask(taskID uint64, input UpdateTaskInput, actorID uint64) (*models.Task, error) {
	task, err := s.findOwnedTask(taskID, actorID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		if *input.Title == "" {
			return nil, ErrTitleRequired
		}
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Status != nil {
		if err := applyStatus(task, *input.Status); err != nil {
			return nil, err
		}
	}
	if input.DueDate != nil {
		task.DueDate = input.DueDate
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	// Assignments are validated after the field update is saved; a bad
	// assignee id errors out but leaves the saved field changes in place.
	if len(input.AssignedUserIDs) > 0 {
		if err := s.assignValidated(task.ID, input.AssignedUserIDs); err != nil {
			return nil, err
		}
	}

	return s.taskRepo.FindByID(task.ID, "CreatedByUser", "Assignments", "Assignments.User")
}

// UpdateTaskStatus updates only the status. Assignee only; non-assignees
// get not found.
func (s *TaskService) UpdateTaskStatus(taskID uint64, status models.TaskStatus, actorID uint64) (*models.Task, error) {
	if !models.ValidTaskStatus(status) {
		return nil, ErrInvalidTaskStatus
	}

	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	assigned, err := s.taskRepo.IsAssignee(taskID, actorID)
	if err != nil {
		return nil, fmt.Errorf("failed to check assignment: %w", err)
	}
	if !assigned {
		return nil, ErrTaskNotFound
	}

	if err := applyStatus(task, status); err != nil {
		return nil, err
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task status: %w", err)
	}

	return s.taskRepo.FindByID(task.ID, "CreatedByUser", "Assignments", "Assignments.User")
}

// SoftDeleteTask marks a task deleted. Creator only.
func (s *TaskService) SoftDeleteTask(taskID, actorID uint64) error {
	task, err := s.findOwnedTask(taskID, actorID)
	if err != nil {
		return err
	}

	task.DeletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}

	if err := s.taskRepo.Update(task); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

// AssignUsers assigns multiple users to a task. Creator only.
func (s *TaskService) AssignUsers(taskID uint64, userIDs []uint64, actorID uint64) error {
	if len(userIDs) == 0 {
		return ErrNoUserIDsProvided
	}

	if _, err := s.findOwnedTask(taskID, actorID); err != nil {
		return err
	}

	return s.assignValidated(taskID, userIDs)
}

// findOwnedTask loads a task and verifies the actor created it.
// Unrelated actors see not found, never forbidden.
func (s *TaskService) findOwnedTask(taskID, actorID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	created, err := s.taskRepo.IsCreator(taskID, actorID)
	if err != nil {
		return nil, fmt.Errorf("failed to check ownership: %w", err)
	}
	if !created {
		return nil, ErrTaskNotFound
	}

	return task, nil
}

func (s *TaskService) assignValidated(taskID uint64, userIDs []uint64) error {
	ids := uniqueUint64(userIDs)

	count, err := s.taskRepo.CountUsersByIDs(ids)
	if err != nil {
		return fmt.Errorf("failed to verify users: %w", err)
	}
	if count != int64(len(ids)) {
		return ErrInvalidTaskAssignee
	}

	if err := s.taskRepo.AssignUsers(taskID, ids); err != nil {
		return fmt.Errorf("failed to assign users: %w", err)
	}

	return nil
}

// applyStatus sets the task status, stamping or clearing the completion
// timestamp on transitions in and out of COMPLETED.
func applyStatus(task *models.Task, status models.TaskStatus) error {
	if !models.ValidTaskStatus(status) {
		return ErrInvalidTaskStatus
	}

	if status == models.TaskStatusCompleted && task.Status != models.TaskStatusCompleted {
		now := time.Now()
		task.CompletedOn = &now
	} else if status != models.TaskStatusCompleted {
		task.CompletedOn = nil
	}

	task.Status = status
	return nil
}

func uniqueUint64(values []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(values))
	result := make([]uint64, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}
	return result
}
