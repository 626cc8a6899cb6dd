package database

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/taskboard-api/internal/config"
	"github.com/yukikurage/taskboard-api/internal/models"
	"github.com/yukikurage/taskboard-api/internal/utils"
)

func TestConnect_Sqlite(t *testing.T) {
	cfg := &config.Config{
		DBDriver: "sqlite",
		DBName:   ":memory:",
	}

	db, err := Connect(cfg)
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	require.NoError(t, db.Create(&models.User{
		Email:        "probe@example.com",
		Username:     "probe",
		PasswordHash: "hash",
		PasswordSalt: "salt",
		Role:         models.RoleAdmin,
	}).Error)
}

func TestPaginate(t *testing.T) {
	cfg := &config.Config{
		DBDriver: "sqlite",
		DBName:   ":memory:",
	}

	db, err := Connect(cfg)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		require.NoError(t, db.Create(&models.User{
			Email:        email,
			Username:     "user",
			PasswordHash: "hash",
			PasswordSalt: "salt",
			Role:         models.RoleEmployee,
		}).Error)
	}

	var page []models.User
	err = db.Scopes(Paginate(utils.PaginationParams{Page: 2, Limit: 2, Offset: 2})).
		Order("id").Find(&page).Error
	require.NoError(t, err)
	require.Len(t, page, 1)
	require.Equal(t, "c@example.com", page[0].Email)
}
