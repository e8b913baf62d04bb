package services

import (
	"context"
	"database/sql"
	"fmt"
	"unicode/utf8"

	"github.com/dmitrijs2005/listkeeper/internal/common"
	"github.com/dmitrijs2005/listkeeper/internal/dbx"
	"github.com/dmitrijs2005/listkeeper/internal/server/models"
	"github.com/dmitrijs2005/listkeeper/internal/server/repositories/repomanager"
)

const (
	titleMinLen       = 3
	titleMaxLen       = 500
	descriptionMaxLen = 1000
	imageMaxLen       = 2700000 // ~2MB binary, base64-encoded
)

type ProjectService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewProjectService(db *sql.DB, m repomanager.RepositoryManager) *ProjectService {
	return &ProjectService{db: db, repomanager: m}
}

func validateProjectFields(title, description, image string) error {
	// character limits, not byte limits: titles and descriptions are
	// user-facing text and frequently accented
	if utf8.RuneCountInString(title) < titleMinLen {
		return common.NewValidationError("title", "must be at least 3 characters")
	}
	if utf8.RuneCountInString(title) > titleMaxLen {
		return common.NewValidationError("title", "must not exceed 500 characters")
	}
	if utf8.RuneCountInString(description) > descriptionMaxLen {
		return common.NewValidationError("description", "must not exceed 1000 characters")
	}
	if len(image) > imageMaxLen {
		return common.NewValidationError("image", "too large (max 2MB)")
	}
	return nil
}

// Create validates the fields, coerces an unrecognized priority to medium and
// appends the project at the tail of the user's list. The max order lookup
// and the insert run in one transaction.
func (s *ProjectService) Create(ctx context.Context, userID int64, title, description, priority, image string, pinned bool) (*models.Project, error) {

	if err := validateProjectFields(title, description, image); err != nil {
		return nil, err
	}

	project := &models.Project{
		UserID:      userID,
		Title:       title,
		Description: description,
		Priority:    models.NormalizePriority(priority),
		Image:       image,
		Pinned:      pinned,
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Projects(tx)

		max, err := repo.MaxOrderIndex(ctx, userID)
		if err != nil {
			return err
		}
		project.OrderIndex = max + 1

		project, err = repo.Create(ctx, project)
		return err
	})

	if err != nil {
		return nil, fmt.Errorf("error creating project: %v", err)
	}

	return project, nil
}

// List returns the user's projects, pinned first, then by order index.
func (s *ProjectService) List(ctx context.Context, userID int64) ([]*models.Project, error) {

	repo := s.repomanager.Projects(s.db)

	result, err := repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing projects: %v", err)
	}

	return result, nil
}

// Update validates and rewrites the project identified by id, scoped to
// userID. A nil orderIndex keeps the stored position. Rows owned by another
// user are reported as not found.
func (s *ProjectService) Update(ctx context.Context, userID int64, id int64, title, description, priority, image string, pinned bool, orderIndex *int64) error {

	if err := validateProjectFields(title, description, image); err != nil {
		return err
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Projects(tx)

		project := &models.Project{
			ID:          id,
			UserID:      userID,
			Title:       title,
			Description: description,
			Priority:    models.NormalizePriority(priority),
			Image:       image,
			Pinned:      pinned,
		}

		if orderIndex != nil {
			project.OrderIndex = *orderIndex
		} else {
			current, err := repo.ListByUser(ctx, userID)
			if err != nil {
				return err
			}
			found := false
			for _, p := range current {
				if p.ID == id {
					project.OrderIndex = p.OrderIndex
					found = true
					break
				}
			}
			if !found {
				return common.ErrorNotFound
			}
		}

		return repo.Update(ctx, project)
	})
}

// Delete removes the project identified by id, scoped to userID.
func (s *ProjectService) Delete(ctx context.Context, userID int64, id int64) error {
	repo := s.repomanager.Projects(s.db)
	return repo.Delete(ctx, id, userID)
}

// DeleteAll removes every project of the user and returns how many rows went.
func (s *ProjectService) DeleteAll(ctx context.Context, userID int64) (int64, error) {
	repo := s.repomanager.Projects(s.db)
	return repo.DeleteAllByUser(ctx, userID)
}

// Reorder assigns order indexes by position in ids, scoped to userID, in one
// transaction. Ids that do not exist or belong to someone else are skipped
// without error; a repeated id keeps its last position; projects missing from
// ids keep their stored index.
func (s *ProjectService) Reorder(ctx context.Context, userID int64, ids []int64) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Projects(tx)

		for pos, id := range ids {
			if err := repo.UpdateOrderIndex(ctx, id, userID, int64(pos)); err != nil {
				return err
			}
		}
		return nil
	})
}
