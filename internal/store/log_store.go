package store

import (
	"context"
	"errors"

	"github.com/devlog-dev/devlog/internal/models"
	"gorm.io/gorm"
)

// LogStore handles log entries. Note that it is keyed by project id
// alone, not by owner: the log routes are unauthenticated in the current
// API, so there is no caller identity to scope by.
type LogStore struct {
	db *gorm.DB
}

func NewLogStore(db *gorm.DB) *LogStore {
	return &LogStore{db: db}
}

// Create attaches a log entry to an existing project. A missing parent
// is ErrNotFound.
func (s *LogStore) Create(ctx context.Context, projectID uint, message string) (*models.Log, error) {
	var log *models.Log

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var project models.Project

		if err := tx.First(&project, projectID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		log = &models.Log{
			ProjectID: project.ID,
			Message:   message,
		}

		return tx.Create(log).Error
	})
	if err != nil {
		return nil, err
	}

	return log, nil
}

// List returns logs newest first, ties broken by id descending so the
// order is a deterministic total order. projectID narrows the result to
// one project when non-nil.
func (s *LogStore) List(ctx context.Context, projectID *uint) ([]models.Log, error) {
	query := s.db.WithContext(ctx)

	if projectID != nil {
		query = query.Where("project_id = ?", *projectID)
	}

	var logs []models.Log

	if err := query.Order("date DESC, id DESC").Find(&logs).Error; err != nil {
		return nil, err
	}

	return logs, nil
}
