package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/gruasdelsur/backoffice-api/internal/domain"
	"github.com/gruasdelsur/backoffice-api/internal/domain/entity"
	"github.com/gruasdelsur/backoffice-api/internal/domain/repository"
)

var _ repository.CraneRepository = (*CraneRepo)(nil)

// CraneRepo implementación sobre PostgreSQL (usable con pool o tx).
type CraneRepo struct {
	q Querier
}

// NewCraneRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCraneRepository(q Querier) *CraneRepo {
	return &CraneRepo{q: q}
}

// Create persiste una grúa. Patente duplicada por empresa -> domain.ErrDuplicate.
func (r *CraneRepo) Create(ctx context.Context, crane *entity.Crane) error {
	if crane.ID == "" {
		crane.ID = uuid.New().String()
	}
	query := `
		INSERT INTO cranes (id, company_id, plate, brand, model, year, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		crane.ID, crane.CompanyID, crane.Plate, crane.Brand, crane.Model,
		crane.Year, crane.Status, crane.CreatedAt, crane.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create crane: %w", err)
	}
	return nil
}

// GetByID obtiene una grúa por ID.
func (r *CraneRepo) GetByID(ctx context.Context, id string) (*entity.Crane, error) {
	query := `
		SELECT id, company_id, plate, brand, model, year, status, created_at, updated_at
		FROM cranes WHERE id = $1`
	var c entity.Crane
	err := r.q.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.CompanyID, &c.Plate, &c.Brand, &c.Model, &c.Year, &c.Status, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get crane: %w", err)
	}
	return &c, nil
}

// ListByCompany lista grúas por empresa con paginación.
func (r *CraneRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Crane, error) {
	query := `
		SELECT id, company_id, plate, brand, model, year, status, created_at, updated_at
		FROM cranes WHERE company_id = $1 ORDER BY plate ASC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list cranes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Crane
	for rows.Next() {
		var c entity.Crane
		if err := rows.Scan(&c.ID, &c.CompanyID, &c.Plate, &c.Brand, &c.Model, &c.Year, &c.Status, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan crane: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
