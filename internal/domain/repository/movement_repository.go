package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gruasdelsur/backoffice-api/internal/domain/entity"
)

// MovementRepository define el puerto de persistencia para movimientos de inventario.
// No hay Update ni Delete: el libro es inmutable.
type MovementRepository interface {
	Create(ctx context.Context, movement *entity.Movement) error
	GetByID(ctx context.Context, id string) (*entity.Movement, error)
	ListByItem(ctx context.Context, itemID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error)
	ListByItemAndLocation(ctx context.Context, itemID, locationID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error)
	// SumByItemAndLocation devuelve el stock derivado: SUM(quantity) del libro.
	SumByItemAndLocation(ctx context.Context, itemID, locationID string) (decimal.Decimal, error)
	// CountByBatch cuenta movimientos que referencian un lote (guard para borrado).
	CountByBatch(ctx context.Context, batchID string) (int64, error)
}
