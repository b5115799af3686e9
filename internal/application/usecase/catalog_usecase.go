package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/gruasdelsur/backoffice-api/internal/application/dto"
	"github.com/gruasdelsur/backoffice-api/internal/domain"
	"github.com/gruasdelsur/backoffice-api/internal/domain/entity"
	"github.com/gruasdelsur/backoffice-api/internal/domain/repository"
)

// SupplierUseCase catálogo de proveedores (referencias de entradas).
type SupplierUseCase struct {
	repo repository.SupplierRepository
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository) *SupplierUseCase {
	return &SupplierUseCase{repo: repo}
}

// Create crea un proveedor.
func (uc *SupplierUseCase) Create(ctx context.Context, companyID string, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	s := &entity.Supplier{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      in.Name,
		TaxID:     in.TaxID,
		Phone:     in.Phone,
		Email:     in.Email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, err
	}
	return toSupplierResponse(s), nil
}

// List lista proveedores por empresa.
func (uc *SupplierUseCase) List(ctx context.Context, companyID string, limit, offset int) ([]dto.SupplierResponse, error) {
	list, err := uc.repo.ListByCompany(ctx, companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *toSupplierResponse(s))
	}
	return out, nil
}

func toSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	return &dto.SupplierResponse{
		ID:        s.ID,
		CompanyID: s.CompanyID,
		Name:      s.Name,
		TaxID:     s.TaxID,
		Phone:     s.Phone,
		Email:     s.Email,
		CreatedAt: s.CreatedAt,
	}
}

// CraneUseCase catálogo de grúas del parque (referencias de salidas a servicio).
type CraneUseCase struct {
	repo repository.CraneRepository
}

// NewCraneUseCase construye el caso de uso.
func NewCraneUseCase(repo repository.CraneRepository) *CraneUseCase {
	return &CraneUseCase{repo: repo}
}

// Create registra una grúa; la patente es única por empresa (lo impone el store).
func (uc *CraneUseCase) Create(ctx context.Context, companyID string, in dto.CreateCraneRequest) (*dto.CraneResponse, error) {
	if in.Plate == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	c := &entity.Crane{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Plate:     in.Plate,
		Brand:     in.Brand,
		Model:     in.Model,
		Year:      in.Year,
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return toCraneResponse(c), nil
}

// List lista grúas por empresa.
func (uc *CraneUseCase) List(ctx context.Context, companyID string, limit, offset int) ([]dto.CraneResponse, error) {
	list, err := uc.repo.ListByCompany(ctx, companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CraneResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toCraneResponse(c))
	}
	return out, nil
}

func toCraneResponse(c *entity.Crane) *dto.CraneResponse {
	return &dto.CraneResponse{
		ID:        c.ID,
		CompanyID: c.CompanyID,
		Plate:     c.Plate,
		Brand:     c.Brand,
		Model:     c.Model,
		Year:      c.Year,
		Status:    c.Status,
		CreatedAt: c.CreatedAt,
	}
}
