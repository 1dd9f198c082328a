package repositories

import (
	"context"

	"github.com/nutralab/quantisim/internal/models"
)

type SupplementRepository interface {
	BulkCreate(ctx context.Context, supplements []*models.Supplement) error
	Create(ctx context.Context, supplement *models.Supplement) error
	GetByIDs(ctx context.Context, ids []string) ([]*models.Supplement, error)
	GetAll(ctx context.Context) ([]*models.Supplement, error)
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) error
}

type AnalysisRepository interface {
	Create(ctx context.Context, record *models.AnalysisRecord) error
	GetByUserID(ctx context.Context, userID string) ([]*models.AnalysisRecord, error)
	Count(ctx context.Context) (int, error)
}
