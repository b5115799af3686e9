package repository

import (
	"context"

	"github.com/gruasdelsur/backoffice-api/internal/domain/entity"
)

// ItemRepository define el puerto de persistencia para ítems de inventario.
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	GetByID(ctx context.Context, id string) (*entity.Item, error)
	GetBySKU(ctx context.Context, companyID, sku string) (*entity.Item, error)
	Update(ctx context.Context, item *entity.Item) error
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Item, error)
}
