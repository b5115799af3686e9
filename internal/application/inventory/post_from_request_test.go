package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gruasdelsur/backoffice-api/internal/application/dto"
	"github.com/gruasdelsur/backoffice-api/internal/domain"
	"github.com/gruasdelsur/backoffice-api/internal/domain/entity"
)

func baseRequest() dto.PostMovementRequest {
	return dto.PostMovementRequest{
		ItemID:     "item-1",
		LocationID: "loc-1",
		Type:       entity.MovementTypeIN,
		Quantity:   decimal.NewFromInt(3),
	}
}

func TestPostFromRequest_BatchIDYNewBatchSonExcluyentes(t *testing.T) {
	req := baseRequest()
	req.BatchID = "b-1"
	req.NewBatch = &dto.NewBatchRequest{BatchNumber: "L-001"}

	_, err := newPoster(&fakeBatchRepo{}, &fakeMovementRepo{}).
		PostFromRequest(context.Background(), "co-1", "user-1", req)

	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "batch", vErr.Field)
}

func TestPostFromRequest_FechaDeVencimientoInvalida(t *testing.T) {
	req := baseRequest()
	req.NewBatch = &dto.NewBatchRequest{BatchNumber: "L-001", ExpirationDate: "31-12-2026"}

	_, err := newPoster(&fakeBatchRepo{}, &fakeMovementRepo{}).
		PostFromRequest(context.Background(), "co-1", "user-1", req)

	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "expiration_date", vErr.Field)
}

func TestPostFromRequest_FlujoCompleto_EntradaConLoteNuevo(t *testing.T) {
	batches := &fakeBatchRepo{}
	movements := &fakeMovementRepo{}

	exp := time.Now().AddDate(0, 6, 0).Format("2006-01-02")
	req := baseRequest()
	req.ReasonCode = "Factura 001"
	req.NewBatch = &dto.NewBatchRequest{BatchNumber: "L-2026-09", ExpirationDate: exp}

	movID, err := newPoster(batches, movements).
		PostFromRequest(context.Background(), "co-1", "user-1", req)

	require.NoError(t, err)
	require.NotEmpty(t, movID)
	require.Len(t, batches.created, 1)
	require.Len(t, movements.created, 1)

	mov := movements.created[0]
	assert.Equal(t, "co-1", mov.CompanyID)
	assert.Equal(t, "user-1", mov.CreatedBy)
	assert.Equal(t, entity.ReferenceTypeSupplier, mov.ReferenceType)
	assert.Equal(t, "Ref: Factura 001. ", mov.Notes)
	require.NotNil(t, mov.BatchID)
	assert.Equal(t, batches.created[0].ID, *mov.BatchID)
	require.NotNil(t, batches.created[0].ExpirationDate)
	assert.Equal(t, exp, batches.created[0].ExpirationDate.Format("2006-01-02"))
}

// El pre-chequeo de duplicados usa los lotes ya persistidos del ítem: postear
// dos veces el mismo número de lote falla la segunda vez sin tocar el store.
func TestPostFromRequest_SegundoLoteConMismoNumeroFalla(t *testing.T) {
	batches := &fakeBatchRepo{}
	movements := &fakeMovementRepo{}
	poster := newPoster(batches, movements)

	req := baseRequest()
	req.NewBatch = &dto.NewBatchRequest{BatchNumber: "L-001"}

	_, err := poster.PostFromRequest(context.Background(), "co-1", "user-1", req)
	require.NoError(t, err)

	req.NewBatch = &dto.NewBatchRequest{BatchNumber: "l-001"} // distinta capitalización
	_, err = poster.PostFromRequest(context.Background(), "co-1", "user-1", req)

	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "batch_number", vErr.Field)
	assert.Len(t, batches.created, 1, "el segundo lote no debe llegar al store")
	assert.Len(t, movements.created, 1)
}

func TestPostFromRequest_SalidaContraLoteExistente(t *testing.T) {
	batches := &fakeBatchRepo{}
	movements := &fakeMovementRepo{}
	// lote persistido previamente para el ítem
	require.NoError(t, batches.Create(context.Background(), &entity.Batch{
		ID: "b-1", ItemID: "item-1", BatchNumber: "L-001",
	}))

	req := baseRequest()
	req.Type = entity.MovementTypeOUT
	req.BatchID = "b-1"
	req.ReferenceType = entity.ReferenceTypeCrane
	req.ReferenceID = "crane-7"
	req.ReasonCode = "mantención programada"

	_, err := newPoster(batches, movements).
		PostFromRequest(context.Background(), "co-1", "user-1", req)

	require.NoError(t, err)
	require.Len(t, movements.created, 1)
	mov := movements.created[0]
	require.NotNil(t, mov.BatchID)
	assert.Equal(t, "b-1", *mov.BatchID)
	assert.Equal(t, "Motivo: mantención programada. ", mov.Notes)
}
