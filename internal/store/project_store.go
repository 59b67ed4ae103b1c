package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/devlog-dev/devlog/internal/models"
	"github.com/devlog-dev/devlog/internal/types"
	"gorm.io/gorm"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

// ProjectPatch carries the mutable fields of a PATCH. Each field is
// tri-state so "absent" and "explicitly null" stay distinguishable.
type ProjectPatch struct {
	Title       types.Optional[string]
	Description types.Optional[string]
}

// ProjectStore is the owner-scoped access path to projects. Every read
// and write filters on owner_id, so a project owned by somebody else
// behaves exactly like one that does not exist.
type ProjectStore struct {
	db *gorm.DB
}

func NewProjectStore(db *gorm.DB) *ProjectStore {
	return &ProjectStore{db: db}
}

func (s *ProjectStore) Create(ctx context.Context, ownerID uint, title string, description *string) (*models.Project, error) {
	project := models.Project{
		Title:       title,
		Description: description,
		OwnerID:     ownerID,
	}

	if err := s.db.WithContext(ctx).Create(&project).Error; err != nil {
		return nil, err
	}

	return &project, nil
}

func (s *ProjectStore) Get(ctx context.Context, ownerID, projectID uint) (*models.Project, error) {
	return firstOwned(s.db.WithContext(ctx), ownerID, projectID)
}

// List returns the caller's projects, newest first. q is an optional
// case-insensitive substring match against title or description; a NULL
// description never matches. limit must already be validated to [1,200].
func (s *ProjectStore) List(ctx context.Context, ownerID uint, q string, limit, offset int) ([]models.Project, error) {
	query := s.db.WithContext(ctx).Where("owner_id = ?", ownerID)

	if q != "" {
		like := "%" + strings.ToLower(q) + "%"
		// Parenthesized so the OR cannot escape the owner_id filter.
		query = query.Where("(LOWER(title) LIKE ? OR LOWER(description) LIKE ?)", like, like)
	}

	var projects []models.Project

	err := query.Order("id DESC").Offset(offset).Limit(limit).Find(&projects).Error
	if err != nil {
		return nil, err
	}

	return projects, nil
}

// UpdatePartial applies only the fields present in the patch. The
// ownership check and the write happen in one transaction so a
// concurrent delete cannot slip between them.
func (s *ProjectStore) UpdatePartial(ctx context.Context, ownerID, projectID uint, patch ProjectPatch) (*models.Project, error) {
	var project *models.Project

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error

		project, err = firstOwned(tx, ownerID, projectID)
		if err != nil {
			return err
		}

		if patch.Title.Set {
			project.Title = patch.Title.Value
		}
		if patch.Description.Set {
			if patch.Description.Valid {
				project.Description = &patch.Description.Value
			} else {
				project.Description = nil
			}
		}

		now := time.Now()
		project.UpdatedAt = &now

		return tx.Save(project).Error
	})
	if err != nil {
		return nil, err
	}

	return project, nil
}

// UpdateFull overwrites every mutable field. An omitted description
// becomes NULL; this is the PUT contract, not a bug.
func (s *ProjectStore) UpdateFull(ctx context.Context, ownerID, projectID uint, title string, description *string) (*models.Project, error) {
	var project *models.Project

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error

		project, err = firstOwned(tx, ownerID, projectID)
		if err != nil {
			return err
		}

		project.Title = title
		project.Description = description

		now := time.Now()
		project.UpdatedAt = &now

		return tx.Save(project).Error
	})
	if err != nil {
		return nil, err
	}

	return project, nil
}

// Delete removes a project and every log attached to it in a single
// transaction. The schema also declares ON DELETE CASCADE on the logs
// foreign key, but the explicit delete keeps the guarantee even on
// storage that ignores the constraint.
func (s *ProjectStore) Delete(ctx context.Context, ownerID, projectID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		project, err := firstOwned(tx, ownerID, projectID)
		if err != nil {
			return err
		}

		if err := tx.Where("project_id = ?", project.ID).Delete(&models.Log{}).Error; err != nil {
			return err
		}

		return tx.Delete(project).Error
	})
}

func firstOwned(tx *gorm.DB, ownerID, projectID uint) (*models.Project, error) {
	var project models.Project

	err := tx.Where("id = ? AND owner_id = ?", projectID, ownerID).First(&project).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &project, nil
}
