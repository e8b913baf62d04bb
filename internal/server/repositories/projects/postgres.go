// Package projects provides PostgreSQL-backed repositories for project
// list persistence and ordering queries.
package projects

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/listkeeper/internal/common"
	"github.com/dmitrijs2005/listkeeper/internal/dbx"
	"github.com/dmitrijs2005/listkeeper/internal/server/models"
)

// PostgresRepository implements project storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a project row and fills in the generated ID.
func (r *PostgresRepository) Create(ctx context.Context, project *models.Project) (*models.Project, error) {

	query :=
		`INSERT INTO projects (user_id, title, description, priority, image, pinned, order_index)
         VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		project.UserID, project.Title, project.Description, project.Priority,
		project.Image, project.Pinned, project.OrderIndex).Scan(&project.ID)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return project, nil
}

// ListByUser returns all projects of a user, pinned rows first, then by
// ascending order index.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Project, error) {
	query :=
		`SELECT id, user_id, title, description, priority, image, pinned, order_index, created_at
		 FROM projects
		 WHERE user_id = $1
		 ORDER BY pinned DESC, order_index ASC
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select projects: %w", err)
	}
	defer rows.Close()

	var result []*models.Project
	for rows.Next() {
		var item models.Project
		if err := rows.Scan(
			&item.ID, &item.UserID, &item.Title, &item.Description, &item.Priority,
			&item.Image, &item.Pinned, &item.OrderIndex, &item.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// MaxOrderIndex returns the highest order index among the user's projects,
// or 0 when the user has none.
func (r *PostgresRepository) MaxOrderIndex(ctx context.Context, userID int64) (int64, error) {
	query :=
		`SELECT COALESCE(MAX(order_index), 0) FROM projects
		 WHERE user_id = $1
		 `

	var max int64
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&max)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	return max, nil
}

// Update rewrites every mutable field of the row identified by ID and user ID.
// Rows owned by another user are not touched and ErrorNotFound is returned.
func (r *PostgresRepository) Update(ctx context.Context, project *models.Project) error {
	query :=
		`UPDATE projects
		 SET title = $1, description = $2, priority = $3, image = $4, pinned = $5, order_index = $6
		 WHERE id = $7 AND user_id = $8
		 `

	res, err := r.db.ExecContext(ctx, query,
		project.Title, project.Description, project.Priority, project.Image,
		project.Pinned, project.OrderIndex, project.ID, project.UserID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

// Delete removes the row identified by ID and user ID. Rows owned by another
// user are not touched and ErrorNotFound is returned.
func (r *PostgresRepository) Delete(ctx context.Context, id int64, userID int64) error {
	query :=
		`DELETE FROM projects
		 WHERE id = $1 AND user_id = $2
		 `

	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

// DeleteAllByUser removes every project of a user and reports how many rows
// were deleted.
func (r *PostgresRepository) DeleteAllByUser(ctx context.Context, userID int64) (int64, error) {
	query :=
		`DELETE FROM projects
		 WHERE user_id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, userID)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected error: %w", err)
	}
	return n, nil
}

// UpdateOrderIndex sets the order index of a single row scoped to its owner.
// Rows that do not exist or belong to another user are silently skipped.
func (r *PostgresRepository) UpdateOrderIndex(ctx context.Context, id int64, userID int64, orderIndex int64) error {
	query :=
		`UPDATE projects SET order_index = $1
		 WHERE id = $2 AND user_id = $3
		 `

	_, err := r.db.ExecContext(ctx, query, orderIndex, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
