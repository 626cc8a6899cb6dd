package repository

import (
	"github.com/yukikurage/taskboard-api/internal/models"
	"gorm.io/gorm"
)

// GormExceptionLogRepository is a GORM implementation of ExceptionLogRepository
type GormExceptionLogRepository struct {
	db *gorm.DB
}

// NewExceptionLogRepository creates a new ExceptionLogRepository
func NewExceptionLogRepository(db *gorm.DB) ExceptionLogRepository {
	return &GormExceptionLogRepository{db: db}
}

// Write persists an exception log entry
func (r *GormExceptionLogRepository) Write(log *models.ExceptionLog) error {
	return r.db.Create(log).Error
}
