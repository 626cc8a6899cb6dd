package models

import "time"

// ExceptionLog records an unhandled panic captured by the exception
// logging middleware.
type ExceptionLog struct {
	ID            uint64    `gorm:"primarykey" json:"id"`
	UserID        *uint64   `json:"user_id"`
	Method        string    `gorm:"type:varchar(10)" json:"method"`
	Endpoint      string    `gorm:"type:varchar(255)" json:"endpoint"`
	ExceptionName string    `gorm:"type:varchar(255)" json:"exception_name"`
	Message       string    `gorm:"type:text" json:"message"`
	StackTrace    string    `gorm:"type:text" json:"stack_trace"`
	TraceID       string    `gorm:"type:varchar(64)" json:"trace_id"`
	LoggedAt      time.Time `json:"logged_at"`
}
