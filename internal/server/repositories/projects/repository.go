package projects

import (
	"context"

	"github.com/dmitrijs2005/listkeeper/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, project *models.Project) (*models.Project, error)
	ListByUser(ctx context.Context, userID int64) ([]*models.Project, error)
	MaxOrderIndex(ctx context.Context, userID int64) (int64, error)
	Update(ctx context.Context, project *models.Project) error
	Delete(ctx context.Context, id int64, userID int64) error
	DeleteAllByUser(ctx context.Context, userID int64) (int64, error)
	UpdateOrderIndex(ctx context.Context, id int64, userID int64, orderIndex int64) error
}
