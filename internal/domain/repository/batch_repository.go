package repository

import (
	"context"
	"time"

	"github.com/gruasdelsur/backoffice-api/internal/domain/entity"
)

// BatchRepository define el puerto de persistencia para lotes.
// El store DEBE rechazar de forma determinística un par (item_id, batch_number)
// duplicado; el pre-chequeo local del poster es solo advisory.
type BatchRepository interface {
	Create(ctx context.Context, batch *entity.Batch) error
	// Delete debe ser seguro sobre un lote sin movimientos que lo referencien
	// (siempre cierto en la ruta de compensación, que corre antes del movimiento).
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*entity.Batch, error)
	ListByItem(ctx context.Context, itemID string) ([]*entity.Batch, error)
	// ListExpiringBefore lista lotes de la empresa con vencimiento anterior a cutoff.
	ListExpiringBefore(ctx context.Context, companyID string, cutoff time.Time) ([]*entity.Batch, error)
}
