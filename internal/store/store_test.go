package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/taskboard-dev/taskboard/db"
	"github.com/taskboard-dev/taskboard/internal/config"
	"github.com/taskboard-dev/taskboard/internal/models"
	"gorm.io/gorm"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	database, err := db.Connect(config.DatabaseConfig{URL: "sqlite://:memory:"}, nil)
	require.NoError(t, err)
	require.NoError(t, db.Migrate(database))

	t.Cleanup(func() { _ = db.Close(database) })

	return New(database)
}

func createTestUser(t *testing.T, s *Store, username string) *models.User {
	t.Helper()

	user, err := s.CreateUser(context.Background(), NewUser{
		Username: username,
		Email:    username + "@example.com",
		FullName: username,
	})
	require.NoError(t, err)

	return user
}

func createTestTask(t *testing.T, s *Store, ownerID uint, title string) *models.Task {
	t.Helper()

	task, err := s.CreateTask(context.Background(), NewTask{UserID: ownerID, Title: title})
	require.NoError(t, err)

	return task
}

func uintPtr(v uint) *uint { return &v }

func strPtr(v string) *string { return &v }

// failUserDeletes makes every DELETE on the users table fail with "boom".
func failUserDeletes(t *testing.T, database *gorm.DB) {
	t.Helper()

	err := database.Callback().Delete().Before("gorm:delete").Register("test:fail_user_delete", func(tx *gorm.DB) {
		if tx.Statement.Table == "users" {
			_ = tx.AddError(errors.New("boom"))
		}
	})
	require.NoError(t, err)
}
