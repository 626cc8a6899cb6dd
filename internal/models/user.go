package models

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleEmployee UserRole = "employee"
)

type CreationMethod string

const (
	CreationMethodRegistered     CreationMethod = "registered"
	CreationMethodCreatedByAdmin CreationMethod = "created_by_admin"
)

type User struct {
	ID              uint64         `gorm:"primarykey" json:"id"`
	Email           string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Username        string         `gorm:"type:varchar(100);not null" json:"username"`
	PasswordHash    string         `gorm:"type:varchar(255);not null" json:"-"`
	PasswordSalt    string         `gorm:"type:varchar(255);not null" json:"-"`
	Role            UserRole       `gorm:"type:varchar(20);not null" json:"role"`
	CreationMethod  CreationMethod `gorm:"type:varchar(30);not null" json:"creation_method"`
	CreatedByUserID *uint64        `gorm:"index" json:"created_by_user_id"`

	// Set together as a pair, only on successful login or refresh
	RefreshToken       *string    `gorm:"type:varchar(255);index" json:"-"`
	RefreshTokenExpiry *time.Time `json:"-"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	CreatedByUser *User            `gorm:"foreignKey:CreatedByUserID" json:"-"`
	CreatedTasks  []Task           `gorm:"foreignKey:CreatedByUserID" json:"-"`
	Assignments   []TaskAssignment `gorm:"foreignKey:UserID" json:"-"`
}
