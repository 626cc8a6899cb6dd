package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/taskboard-api/internal/models"
	"github.com/yukikurage/taskboard-api/internal/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type userTestEnv struct {
	db          *gorm.DB
	userService *UserService
	userRepo    repository.UserRepository
	admin       *models.User
}

func setupUserTestEnv(t *testing.T) userTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Task{},
		&models.TaskAssignment{},
	)
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(db)
	passwordSvc := NewPasswordService()
	userService := NewUserService(userRepo, passwordSvc)

	authService := NewAuthService(userRepo, passwordSvc, newTestTokenService())
	admin, err := authService.Register(RegisterInput{
		Email:    "admin@example.com",
		Username: "admin",
		Password: "supersecret",
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return userTestEnv{
		db:          db,
		userService: userService,
		userRepo:    userRepo,
		admin:       admin,
	}
}

func TestUserService_CreateUser(t *testing.T) {
	env := setupUserTestEnv(t)

	user, err := env.userService.CreateUser(CreateUserInput{
		Email:    "employee@example.com",
		Username: "employee",
		Password: "supersecret",
		ActorID:  env.admin.ID,
	})
	require.NoError(t, err)
	require.Equal(t, models.RoleEmployee, user.Role)
	require.Equal(t, models.CreationMethodCreatedByAdmin, user.CreationMethod)
	require.NotNil(t, user.CreatedByUserID)
	require.Equal(t, env.admin.ID, *user.CreatedByUserID)
}

func TestUserService_CreateUser_DuplicateEmail(t *testing.T) {
	env := setupUserTestEnv(t)

	_, err := env.userService.CreateUser(CreateUserInput{
		Email:    "admin@example.com",
		Username: "duplicate",
		Password: "supersecret",
		ActorID:  env.admin.ID,
	})
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestUserService_UpdateUser_OwnershipScoped(t *testing.T) {
	env := setupUserTestEnv(t)

	employee, err := env.userService.CreateUser(CreateUserInput{
		Email:    "employee@example.com",
		Username: "employee",
		Password: "supersecret",
		ActorID:  env.admin.ID,
	})
	require.NoError(t, err)

	// An unrelated actor sees not found, never forbidden
	otherActorID := env.admin.ID + 1000
	newName := "renamed"
	_, err = env.userService.UpdateUser(employee.ID, UpdateUserInput{Username: &newName}, otherActorID)
	require.ErrorIs(t, err, ErrUserNotFound)

	// The creating admin may update
	updated, err := env.userService.UpdateUser(employee.ID, UpdateUserInput{Username: &newName}, env.admin.ID)
	require.NoError(t, err)
	require.Equal(t, "renamed", updated.Username)
}

func TestUserService_ListCreatedUsers_Paginated(t *testing.T) {
	env := setupUserTestEnv(t)

	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		_, err := env.userService.CreateUser(CreateUserInput{
			Email:    email,
			Username: "employee",
			Password: "supersecret",
			ActorID:  env.admin.ID,
		})
		require.NoError(t, err)
	}

	first, total, err := env.userService.ListCreatedUsers(env.admin.ID, pageParams(1, 2))
	require.NoError(t, err)
	require.Equal(t, int64(3), total)
	require.Len(t, first, 2)

	second, total, err := env.userService.ListCreatedUsers(env.admin.ID, pageParams(2, 2))
	require.NoError(t, err)
	require.Equal(t, int64(3), total)
	require.Len(t, second, 1)
}

func TestUserService_SoftDeleteUser(t *testing.T) {
	env := setupUserTestEnv(t)

	employee, err := env.userService.CreateUser(CreateUserInput{
		Email:    "employee@example.com",
		Username: "employee",
		Password: "supersecret",
		ActorID:  env.admin.ID,
	})
	require.NoError(t, err)

	// Not the creator: not found
	err = env.userService.SoftDeleteUser(employee.ID, employee.ID)
	require.ErrorIs(t, err, ErrUserNotFound)

	err = env.userService.SoftDeleteUser(employee.ID, env.admin.ID)
	require.NoError(t, err)

	// Deleted users are excluded from lookups
	_, err = env.userService.GetUser(employee.ID)
	require.ErrorIs(t, err, ErrUserNotFound)

	// The row itself is kept
	var count int64
	require.NoError(t, env.db.Unscoped().Model(&models.User{}).Where("id = ?", employee.ID).Count(&count).Error)
	require.Equal(t, int64(1), count)
}

func TestUserRepository_IsCreatedBy(t *testing.T) {
	env := setupUserTestEnv(t)

	employee, err := env.userService.CreateUser(CreateUserInput{
		Email:    "employee@example.com",
		Username: "employee",
		Password: "supersecret",
		ActorID:  env.admin.ID,
	})
	require.NoError(t, err)

	owned, err := env.userRepo.IsCreatedBy(employee.ID, env.admin.ID)
	require.NoError(t, err)
	require.True(t, owned)

	owned, err = env.userRepo.IsCreatedBy(employee.ID, employee.ID)
	require.NoError(t, err)
	require.False(t, owned, "an unrelated actor is never the creator")
}
