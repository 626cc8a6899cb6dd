package dto

import (
	"time"

	"github.com/yukikurage/taskboard-api/internal/models"
)

// UserDTO represents a user in API responses. Credential fields are
// deliberately absent.
type UserDTO struct {
	ID              uint64                `json:"id"`
	Email           string                `json:"email"`
	Username        string                `json:"username"`
	Role            models.UserRole       `json:"role"`
	CreationMethod  models.CreationMethod `json:"creation_method"`
	CreatedByUserID *uint64               `json:"created_by_user_id,omitempty"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
}

// UserListResponse represents a paginated list of users
type UserListResponse struct {
	Users      []UserDTO `json:"users"`
	Page       int       `json:"page"`
	PageSize   int       `json:"page_size"`
	TotalCount int64     `json:"total_count"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:              user.ID,
		Email:           user.Email,
		Username:        user.Username,
		Role:            user.Role,
		CreationMethod:  user.CreationMethod,
		CreatedByUserID: user.CreatedByUserID,
		CreatedAt:       user.CreatedAt,
		UpdatedAt:       user.UpdatedAt,
	}
}

// ToUserDTOs converts a slice of User models
func ToUserDTOs(users []models.User) []UserDTO {
	dtos := make([]UserDTO, len(users))
	for i, u := range users {
		dtos[i] = ToUserDTO(u)
	}
	return dtos
}
