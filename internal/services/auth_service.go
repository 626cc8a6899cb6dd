package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yukikurage/taskboard-api/internal/constants"
	"github.com/yukikurage/taskboard-api/internal/models"
	"github.com/yukikurage/taskboard-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken          = errors.New("email already exists")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrPasswordTooShort    = errors.New("password too short")
	ErrUserNotFound        = errors.New("user not found")
)

// AuthService handles registration, login, refresh-token rotation and
// password changes.
type AuthService struct {
	userRepo    repository.UserRepository
	passwordSvc *PasswordService
	tokenSvc    *TokenService
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, passwordSvc *PasswordService, tokenSvc *TokenService) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
	}
}

// RegisterInput represents the required information to create a new user.
type RegisterInput struct {
	Email    string
	Username string
	Password string
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult carries the authenticated user and the issued token pair.
type LoginResult struct {
	User         *models.User
	AccessToken  string
	RefreshToken string
}

// Register creates a new user via self-registration. Self-registered
// users become admins.
func (s *AuthService) Register(input RegisterInput) (*models.User, error) {
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
		Email:          email,
		Username:       strings.TrimSpace(input.Username),
		PasswordSalt:   salt,
		PasswordHash:   s.passwordSvc.HashPassword(input.Password, salt),
		Role:           models.RoleAdmin,
		CreationMethod: models.CreationMethodRegistered,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Login verifies credentials and, on success, issues an access token and
// a refresh token, persisting the refresh pair on the user record.
func (s *AuthService) Login(input LoginInput) (*LoginResult, error) {
	user, err := s.userRepo.FindByEmail(input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !s.passwordSvc.VerifyPassword(input.Password, user.PasswordSalt, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return s.issueTokens(user)
}

// RefreshToken exchanges a valid refresh token for a new access+refresh
// pair. The presented token is invalidated by the rotation: the stored
// value is overwritten, so a token cannot be replayed after one use.
// An expired stored token fails identically to an unknown one.
func (s *AuthService) RefreshToken(presented string) (*LoginResult, error) {
	user, err := s.userRepo.FindByRefreshToken(presented)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, fmt.Errorf("failed to find user by refresh token: %w", err)
	}

	if user.RefreshTokenExpiry == nil || !user.RefreshTokenExpiry.After(time.Now()) {
		return nil, ErrInvalidRefreshToken
	}

	return s.issueTokens(user)
}

// ChangePassword verifies the current password and replaces the stored
// salt+hash pair. Nothing is persisted when verification fails.
func (s *AuthService) ChangePassword(actorID uint64, currentPassword, newPassword string) error {
	if len(newPassword) < constants.MinPasswordLength {
		return ErrPasswordTooShort
	}

	user, err := s.userRepo.FindByID(actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	if !s.passwordSvc.VerifyPassword(currentPassword, user.PasswordSalt, user.PasswordHash) {
		return ErrInvalidCredentials
	}

	salt, err := s.passwordSvc.GenerateSalt()
	if err != nil {
		return fmt.Errorf("failed to generate salt: %w", err)
	}

	user.PasswordSalt = salt
	user.PasswordHash = s.passwordSvc.HashPassword(newPassword, salt)

	if err := s.userRepo.Update(user); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

// issueTokens generates a fresh access+refresh pair and persists the
// refresh token with its expiry on the user record. Concurrent calls for
// the same user are last-writer-wins; there is no row-level guard here.
func (s *AuthService) issueTokens(user *models.User) (*LoginResult, error) {
	accessToken, err := s.tokenSvc.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.tokenSvc.GenerateRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	expiry := time.Now().Add(constants.RefreshTokenTTL)
	user.RefreshToken = &refreshToken
	user.RefreshTokenExpiry = &expiry

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to persist refresh token: %w", err)
	}

	return &LoginResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
