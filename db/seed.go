package db

import (
	"context"

	"github.com/devlog-dev/devlog/internal/models"
	"github.com/devlog-dev/devlog/internal/store"
	"gorm.io/gorm"
)

// Seed inserts the demo account with a couple of projects. It is a
// no-op when the demo user already exists, so it is safe to run on
// every boot with SEED=true.
func Seed(ctx context.Context, database *gorm.DB) error {
	var count int64

	err := database.WithContext(ctx).Model(&models.User{}).Where("username = ?", "denny").Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	users := store.NewUserStore(database)

	user, err := users.Register(ctx, "denny", "denny@example.com", "pass123")
	if err != nil {
		return err
	}

	projects := store.NewProjectStore(database)

	for _, p := range []struct {
		title       string
		description string
	}{
		{"Alarm Clock", "PIC18F46K22 build"},
		{"ETL Pipeline", "Airflow + Postgres"},
	} {
		description := p.description
		if _, err := projects.Create(ctx, user.ID, p.title, &description); err != nil {
			return err
		}
	}

	return nil
}
