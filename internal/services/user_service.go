package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yukikurage/taskboard-api/internal/constants"
	"github.com/yukikurage/taskboard-api/internal/models"
	"github.com/yukikurage/taskboard-api/internal/repository"
	"github.com/yukikurage/taskboard-api/internal/utils"
	"gorm.io/gorm"
)

// UserService handles user management performed by admins. Mutations are
// ownership scoped: acting on a user you did not create reports not
// found, never forbidden.
type UserService struct {
	userRepo    repository.UserRepository
	passwordSvc *PasswordService
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository, passwordSvc *PasswordService) *UserService {
	return &UserService{
		userRepo:    userRepo,
		passwordSvc: passwordSvc,
	}
}

// CreateUserInput represents input for admin-initiated user creation.
type CreateUserInput struct {
	Email    string
	Username string
	Password string
	ActorID  uint64
}

// UpdateUserInput represents input for updating a user profile.
type UpdateUserInput struct {
	Email    *string
	Username *string
	Password *string
}

// CreateUser creates a new employee on behalf of an admin.
func (s *UserService) CreateUser(input CreateUserInput) (*models.User, error) {
	email := strings.TrimSpace(input.Email)
	if email == "" {
		return nil, fmt.Errorf("email is required")
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	if _, err := s.userRepo.FindByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	salt, err := s.passwordSvc.GenerateSalt()
	if err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	user := &models.User{
		Email:           email,
		Username:        strings.TrimSpace(input.Username),
		PasswordSalt:    salt,
		PasswordHash:    s.passwordSvc.HashPassword(input.Password, salt),
		Role:            models.RoleEmployee,
		CreationMethod:  models.CreationMethodCreatedByAdmin,
		CreatedByUserID: &input.ActorID,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// GetUser retrieves a user by ID.
func (s *UserService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

// ListCreatedUsers lists users created by the actor.
func (s *UserService) ListCreatedUsers(actorID uint64, params utils.PaginationParams) ([]models.User, int64, error) {
	users, total, err := s.userRepo.ListCreatedBy(actorID, params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list created users: %w", err)
	}
	return users, total, nil
}

// UpdateUser updates a user profile. Only the creating admin may update.
func (s *UserService) UpdateUser(userID uint64, input UpdateUserInput, actorID uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	owned, err := s.userRepo.IsCreatedBy(userID, actorID)
	if err != nil {
		return nil, fmt.Errorf("failed to check ownership: %w", err)
	}
	if !owned {
		return nil, ErrUserNotFound
	}

	if input.Email != nil && strings.TrimSpace(*input.Email) != "" {
		email := strings.TrimSpace(*input.Email)
		if email != user.Email {
			if _, err := s.userRepo.FindByEmail(email); err == nil {
				return nil, ErrEmailTaken
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("failed to check email: %w", err)
			}
			user.Email = email
		}
	}
	if input.Username != nil && strings.TrimSpace(*input.Username) != "" {
		user.Username = strings.TrimSpace(*input.Username)
	}
	if input.Password != nil && *input.Password != "" {
		if len(*input.Password) < constants.MinPasswordLength {
			return nil, ErrPasswordTooShort
		}
		salt, err := s.passwordSvc.GenerateSalt()
		if err != nil {
			return nil, fmt.Errorf("failed to generate salt: %w", err)
		}
		user.PasswordSalt = salt
		user.PasswordHash = s.passwordSvc.HashPassword(*input.Password, salt)
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// SoftDeleteUser marks a user deleted. Only the creating admin may
// delete; the row itself is kept.
func (s *UserService) SoftDeleteUser(userID, actorID uint64) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	owned, err := s.userRepo.IsCreatedBy(userID, actorID)
	if err != nil {
		return fmt.Errorf("failed to check ownership: %w", err)
	}
	if !owned {
		return ErrUserNotFound
	}

	user.DeletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}

	if err := s.userRepo.Update(user); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	return nil
}
