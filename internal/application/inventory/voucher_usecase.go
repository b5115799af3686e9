package inventory

import (
	"context"

	"github.com/gruasdelsur/backoffice-api/internal/domain"
	"github.com/gruasdelsur/backoffice-api/internal/domain/entity"
	"github.com/gruasdelsur/backoffice-api/internal/domain/repository"
)

// VoucherUseCase arma el comprobante PDF de un movimiento de inventario.
type VoucherUseCase struct {
	movements repository.MovementRepository
	items     repository.ItemRepository
	locations repository.LocationRepository
	batches   repository.BatchRepository
	companies repository.CompanyRepository
	generator MovementVoucherGenerator
}

// NewVoucherUseCase construye el caso de uso.
func NewVoucherUseCase(
	movements repository.MovementRepository,
	items repository.ItemRepository,
	locations repository.LocationRepository,
	batches repository.BatchRepository,
	companies repository.CompanyRepository,
	generator MovementVoucherGenerator,
) *VoucherUseCase {
	return &VoucherUseCase{
		movements: movements,
		items:     items,
		locations: locations,
		batches:   batches,
		companies: companies,
		generator: generator,
	}
}

// GenerateVoucher carga el movimiento y sus referencias y genera el PDF.
func (uc *VoucherUseCase) GenerateVoucher(ctx context.Context, companyID, movementID string) ([]byte, error) {
	mov, err := uc.movements.GetByID(ctx, movementID)
	if err != nil {
		return nil, err
	}
	if mov == nil {
		return nil, domain.ErrNotFound
	}
	if mov.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}

	item, err := uc.items.GetByID(ctx, mov.ItemID)
	if err != nil {
		return nil, err
	}
	location, err := uc.locations.GetByID(ctx, mov.LocationID)
	if err != nil {
		return nil, err
	}
	company, err := uc.companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if item == nil || location == nil || company == nil {
		return nil, domain.ErrNotFound
	}

	var batch *entity.Batch
	if mov.BatchID != nil {
		batch, err = uc.batches.GetByID(ctx, *mov.BatchID)
		if err != nil {
			return nil, err
		}
	}

	return uc.generator.GenerateMovementVoucher(ctx, VoucherData{
		Movement: mov,
		Item:     item,
		Location: location,
		Batch:    batch,
		Company:  company,
	})
}
