package inventory

import (
	"context"
	"time"

	"github.com/gruasdelsur/backoffice-api/internal/domain"
	"github.com/gruasdelsur/backoffice-api/internal/domain/entity"
	"github.com/gruasdelsur/backoffice-api/internal/domain/repository"
)

// BatchUseCase gestión de lotes fuera del flujo de posteo: listado,
// reporte de vencimientos y borrado explícito.
type BatchUseCase struct {
	batches   repository.BatchRepository
	movements repository.MovementRepository
}

// NewBatchUseCase construye el caso de uso.
func NewBatchUseCase(batches repository.BatchRepository, movements repository.MovementRepository) *BatchUseCase {
	return &BatchUseCase{batches: batches, movements: movements}
}

// ListByItem lista los lotes de un ítem.
func (uc *BatchUseCase) ListByItem(ctx context.Context, itemID string) ([]*entity.Batch, error) {
	return uc.batches.ListByItem(ctx, itemID)
}

// ExpiringSoon lista lotes de la empresa que vencen dentro de days días.
func (uc *BatchUseCase) ExpiringSoon(ctx context.Context, companyID string, days int) ([]*entity.Batch, error) {
	cutoff := time.Now().AddDate(0, 0, days)
	return uc.batches.ListExpiringBefore(ctx, companyID, cutoff)
}

// Delete borra un lote solo si ningún movimiento lo referencia; si hay
// movimientos devuelve ErrConflict (el libro es inmutable, el lote no puede irse).
func (uc *BatchUseCase) Delete(ctx context.Context, id string) error {
	batch, err := uc.batches.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if batch == nil {
		return domain.ErrNotFound
	}
	count, err := uc.movements.CountByBatch(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrConflict
	}
	return uc.batches.Delete(ctx, id)
}
