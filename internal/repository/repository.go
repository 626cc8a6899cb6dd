package repository

import (
	"time"

	"github.com/yukikurage/taskboard-api/internal/models"
	"github.com/yukikurage/taskboard-api/internal/utils"
)

// UserRepository defines the interface for user data access.
// All reads exclude soft-deleted rows.
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email (exact match)
	FindByEmail(email string) (*models.User, error)

	// FindByRefreshToken finds the user whose stored refresh token equals token
	FindByRefreshToken(token string) (*models.User, error)

	// Update persists changes to an existing user
	Update(user *models.User) error

	// ListCreatedBy lists users created by the given actor, with pagination
	ListCreatedBy(actorID uint64, params utils.PaginationParams) ([]models.User, int64, error)

	// IsCreatedBy reports whether the target user was created by the actor
	IsCreatedBy(userID, actorID uint64) (bool, error)
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	CreatedByUserID *uint64
	AssignedUserID  *uint64
	Status          *models.TaskStatus
	DueDateFrom     *time.Time
	DueDateTo       *time.Time
	Pagination      utils.PaginationParams
}

// TaskRepository defines the interface for task data access.
// All reads exclude soft-deleted rows.
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// List retrieves tasks with filtering and pagination
	List(filter TaskFilter) ([]models.Task, int64, error)

	// Update persists changes to an existing task
	Update(task *models.Task) error

	// AssignUsers assigns multiple users to a task
	AssignUsers(taskID uint64, userIDs []uint64) error

	// IsCreator reports whether the task was created by the actor
	IsCreator(taskID, actorID uint64) (bool, error)

	// IsAssignee reports whether the task is assigned to the actor
	IsAssignee(taskID, actorID uint64) (bool, error)

	// CountUsersByIDs counts how many of the given user IDs exist
	CountUsersByIDs(userIDs []uint64) (int64, error)

	// MarkCompletedAsDeleted soft deletes tasks completed before the cutoff
	// and returns the number of affected rows
	MarkCompletedAsDeleted(completedBefore time.Time) (int64, error)
}

// ExceptionLogRepository persists unhandled-panic records.
type ExceptionLogRepository interface {
	Write(log *models.ExceptionLog) error
}
