package models

import (
	"time"

	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "PENDING"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusCompleted  TaskStatus = "COMPLETED"
)

// ValidTaskStatus reports whether s is one of the known task statuses.
func ValidTaskStatus(s TaskStatus) bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

type Task struct {
	ID              uint64         `gorm:"primarykey" json:"id"`
	Title           string         `gorm:"not null" json:"title"`
	Description     string         `gorm:"type:text" json:"description"`
	Status          TaskStatus     `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	DueDate         *time.Time     `json:"due_date"`
	CompletedOn     *time.Time     `json:"completed_on"`
	CreatedByUserID uint64         `gorm:"not null;index" json:"created_by_user_id"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	CreatedByUser User             `gorm:"foreignKey:CreatedByUserID" json:"created_by_user,omitempty"`
	Assignments   []TaskAssignment `gorm:"foreignKey:TaskID" json:"assignments,omitempty"`
}
