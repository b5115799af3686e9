package inventory

import (
	"context"
	"time"

	"github.com/gruasdelsur/backoffice-api/internal/application/dto"
	"github.com/gruasdelsur/backoffice-api/internal/domain"
	"github.com/gruasdelsur/backoffice-api/internal/domain/entity"
	domaininv "github.com/gruasdelsur/backoffice-api/internal/domain/inventory"
	"github.com/gruasdelsur/backoffice-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// KardexUseCase consulta del libro de movimientos de un ítem con saldo acumulado.
type KardexUseCase struct {
	movements repository.MovementRepository
	items     repository.ItemRepository
}

// NewKardexUseCase construye el caso de uso.
func NewKardexUseCase(movements repository.MovementRepository, items repository.ItemRepository) *KardexUseCase {
	return &KardexUseCase{movements: movements, items: items}
}

// ItemKardex arma el kardex de un ítem: movimientos del período en orden
// cronológico con saldo acumulado. Si locationID viene, filtra por ubicación
// y agrega el stock actual derivado (SUM del libro completo).
func (uc *KardexUseCase) ItemKardex(ctx context.Context, companyID, itemID, locationID string, from, to *time.Time, limit, offset int) (*dto.KardexResponse, error) {
	item, err := uc.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if item.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}

	var movs []*entity.Movement
	if locationID != "" {
		movs, err = uc.movements.ListByItemAndLocation(ctx, itemID, locationID, from, to, limit, offset)
		if err != nil {
			return nil, err
		}
	} else {
		movs, err = uc.movements.ListByItem(ctx, itemID, from, to, limit, offset)
		if err != nil {
			return nil, err
		}
	}

	// El repositorio lista descendente (lo más reciente primero); el kardex
	// se presenta cronológico ascendente para acumular saldo. El saldo parte
	// de cero en la primera fila: con offset > 0 es relativo a la página,
	// no al inicio del libro.
	reverse(movs)
	balances := domaininv.RunningBalance(movs, decimal.Zero)

	resp := &dto.KardexResponse{
		ItemID:      itemID,
		LocationID:  locationID,
		Rows:        make([]dto.KardexRow, 0, len(movs)),
		PeriodTotal: domaininv.StockFromMovements(movs),
		Page:        dto.PageResponse{Limit: limit, Offset: offset},
	}
	for i, m := range movs {
		resp.Rows = append(resp.Rows, dto.KardexRow{
			Movement: toMovementResponse(m),
			Balance:  balances[i],
		})
	}

	if locationID != "" {
		stock, err := uc.movements.SumByItemAndLocation(ctx, itemID, locationID)
		if err != nil {
			return nil, err
		}
		resp.CurrentStock = &stock
	}
	return resp, nil
}

// GetMovement obtiene un movimiento verificando que pertenezca a la empresa.
func (uc *KardexUseCase) GetMovement(ctx context.Context, companyID, id string) (*entity.Movement, error) {
	mov, err := uc.movements.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if mov == nil {
		return nil, domain.ErrNotFound
	}
	if mov.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return mov, nil
}

func reverse(movs []*entity.Movement) {
	for i, j := 0, len(movs)-1; i < j; i, j = i+1, j-1 {
		movs[i], movs[j] = movs[j], movs[i]
	}
}

func toMovementResponse(m *entity.Movement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:            m.ID,
		ItemID:        m.ItemID,
		LocationID:    m.LocationID,
		Type:          m.Type,
		Quantity:      m.Quantity,
		BatchID:       m.BatchID,
		ReferenceType: m.ReferenceType,
		ReferenceID:   m.ReferenceID,
		Notes:         m.Notes,
		CreatedAt:     m.CreatedAt,
		CreatedBy:     m.CreatedBy,
	}
}
