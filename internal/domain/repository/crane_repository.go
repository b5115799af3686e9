package repository

import (
	"context"

	"github.com/gruasdelsur/backoffice-api/internal/domain/entity"
)

// CraneRepository define el puerto de persistencia para las grúas del parque.
type CraneRepository interface {
	Create(ctx context.Context, crane *entity.Crane) error
	GetByID(ctx context.Context, id string) (*entity.Crane, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Crane, error)
}
