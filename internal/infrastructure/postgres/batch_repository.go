package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/gruasdelsur/backoffice-api/internal/domain"
	"github.com/gruasdelsur/backoffice-api/internal/domain/entity"
	"github.com/gruasdelsur/backoffice-api/internal/domain/repository"
)

var _ repository.BatchRepository = (*BatchRepo)(nil)

// BatchRepo implementación sobre PostgreSQL (usable con pool o tx).
// La unicidad (item_id, lower(batch_number)) la impone un índice único;
// la violación se mapea a domain.ErrDuplicate.
type BatchRepo struct {
	q Querier
}

// NewBatchRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBatchRepository(q Querier) *BatchRepo {
	return &BatchRepo{q: q}
}

// Create persiste un lote.
func (r *BatchRepo) Create(ctx context.Context, batch *entity.Batch) error {
	if batch.ID == "" {
		batch.ID = uuid.New().String()
	}
	query := `
		INSERT INTO inventory_batches (id, item_id, batch_number, expiration_date, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query,
		batch.ID, batch.ItemID, batch.BatchNumber, batch.ExpirationDate, batch.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create batch: %w", err)
	}
	return nil
}

// Delete borra un lote por ID. Es seguro sobre un lote sin movimientos que lo
// referencien (la FK de inventory_movements rechaza el resto).
func (r *BatchRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM inventory_batches WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete batch: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID obtiene un lote por ID.
func (r *BatchRepo) GetByID(ctx context.Context, id string) (*entity.Batch, error) {
	query := `
		SELECT id, item_id, batch_number, expiration_date, created_at
		FROM inventory_batches WHERE id = $1`
	var b entity.Batch
	err := r.q.QueryRow(ctx, query, id).Scan(
		&b.ID, &b.ItemID, &b.BatchNumber, &b.ExpirationDate, &b.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get batch: %w", err)
	}
	return &b, nil
}

// ListByItem lista los lotes de un ítem, los más nuevos primero.
func (r *BatchRepo) ListByItem(ctx context.Context, itemID string) ([]*entity.Batch, error) {
	query := `
		SELECT id, item_id, batch_number, expiration_date, created_at
		FROM inventory_batches WHERE item_id = $1
		ORDER BY created_at DESC`
	rows, err := r.q.Query(ctx, query, itemID)
	if err != nil {
		return nil, fmt.Errorf("list batches by item: %w", err)
	}
	defer rows.Close()
	return scanBatches(rows)
}

// ListExpiringBefore lista lotes de la empresa con vencimiento anterior a cutoff.
func (r *BatchRepo) ListExpiringBefore(ctx context.Context, companyID string, cutoff time.Time) ([]*entity.Batch, error) {
	query := `
		SELECT b.id, b.item_id, b.batch_number, b.expiration_date, b.created_at
		FROM inventory_batches b
		JOIN inventory_items i ON i.id = b.item_id
		WHERE i.company_id = $1 AND b.expiration_date IS NOT NULL AND b.expiration_date < $2
		ORDER BY b.expiration_date ASC`
	rows, err := r.q.Query(ctx, query, companyID, cutoff)
	if err != nil {
		return nil, fmt.Errorf("list expiring batches: %w", err)
	}
	defer rows.Close()
	return scanBatches(rows)
}

func scanBatches(rows pgx.Rows) ([]*entity.Batch, error) {
	var list []*entity.Batch
	for rows.Next() {
		var b entity.Batch
		if err := rows.Scan(&b.ID, &b.ItemID, &b.BatchNumber, &b.ExpirationDate, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}
