package services

import (
	"context"
	"testing"
	"time"

	"github.com/justsurfingit/job-search-tracker/internal/config"
	"github.com/justsurfingit/job-search-tracker/internal/database"
	"github.com/justsurfingit/job-search-tracker/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fixedNow is a Wednesday.
var fixedNow = time.Date(2026, 1, 7, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(config.DatabaseConfig{Driver: "sqlite", DSN: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func ptr[T any](v T) *T { return &v }

func seedApplication(t *testing.T, db *gorm.DB, app models.Application) *models.Application {
	t.Helper()
	if app.Company == "" {
		app.Company = "Acme"
	}
	if app.Position == "" {
		app.Position = "Engineer"
	}
	if app.Status == "" {
		app.Status = models.StatusApplied
	}
	if app.Source == "" {
		app.Source = models.SourceOther
	}
	if app.InterestLevel == 0 {
		app.InterestLevel = 3
	}
	if app.ApplicationDate.IsZero() {
		app.ApplicationDate = fixedNow
	}
	require.NoError(t, db.Create(&app).Error)
	return &app
}

func seedTask(t *testing.T, db *gorm.DB, task models.Task) *models.Task {
	t.Helper()
	if task.Title == "" {
		task.Title = "task"
	}
	require.NoError(t, db.Create(&task).Error)
	return &task
}

func ctx() context.Context { return context.Background() }
