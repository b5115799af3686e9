package repository

import (
	"context"

	"github.com/gruasdelsur/backoffice-api/internal/domain/entity"
)

// LocationRepository define el puerto de persistencia para bodegas/bases.
type LocationRepository interface {
	Create(ctx context.Context, location *entity.Location) error
	GetByID(ctx context.Context, id string) (*entity.Location, error)
	Update(ctx context.Context, location *entity.Location) error
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Location, error)
}
