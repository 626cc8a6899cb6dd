package services

import (
	"fmt"
	"time"

	"github.com/yukikurage/taskboard-api/internal/constants"
	"github.com/yukikurage/taskboard-api/internal/repository"
)

// CleanupService soft deletes completed tasks once their retention
// period has elapsed.
type CleanupService struct {
	taskRepo repository.TaskRepository
}

// NewCleanupService creates a new CleanupService.
func NewCleanupService(taskRepo repository.TaskRepository) *CleanupService {
	return &CleanupService{
		taskRepo: taskRepo,
	}
}

// MarkCompletedTasksAsDeleted soft deletes tasks completed longer ago
// than the retention window and returns how many rows were affected.
func (s *CleanupService) MarkCompletedTasksAsDeleted() (int64, error) {
	cutoff := time.Now().Add(-constants.CompletedTaskRetention)

	affected, err := s.taskRepo.MarkCompletedAsDeleted(cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to clean up completed tasks: %w", err)
	}

	return affected, nil
}
