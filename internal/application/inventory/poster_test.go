package inventory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gruasdelsur/backoffice-api/internal/application/inventory"
	"github.com/gruasdelsur/backoffice-api/internal/domain"
	"github.com/gruasdelsur/backoffice-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes de repositorio: registran llamadas y fallan bajo demanda
// ──────────────────────────────────────────────────────────────────────────────

type fakeBatchRepo struct {
	createErr error
	deleteErr error

	created []*entity.Batch
	deleted []string
	// ctx.Err() observado al momento de Delete, para verificar que la
	// compensación no hereda la cancelación del caller.
	deleteCtxErr error
}

func (f *fakeBatchRepo) Create(_ context.Context, b *entity.Batch) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, b)
	return nil
}

func (f *fakeBatchRepo) Delete(ctx context.Context, id string) error {
	f.deleteCtxErr = ctx.Err()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeBatchRepo) GetByID(_ context.Context, id string) (*entity.Batch, error) {
	for _, b := range f.created {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, nil
}

func (f *fakeBatchRepo) ListByItem(_ context.Context, itemID string) ([]*entity.Batch, error) {
	var out []*entity.Batch
	for _, b := range f.created {
		if b.ItemID == itemID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBatchRepo) ListExpiringBefore(_ context.Context, _ string, _ time.Time) ([]*entity.Batch, error) {
	return nil, nil
}

type fakeMovementRepo struct {
	createErr  error
	created    []*entity.Movement
	batchCount int64

	// ledger simula lo ya persistido, en orden descendente como el repositorio real.
	ledger []*entity.Movement
}

func (f *fakeMovementRepo) Create(_ context.Context, m *entity.Movement) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, m)
	return nil
}

func (f *fakeMovementRepo) GetByID(_ context.Context, _ string) (*entity.Movement, error) {
	return nil, nil
}

func (f *fakeMovementRepo) ListByItem(_ context.Context, itemID string, _, _ *time.Time, limit, offset int) ([]*entity.Movement, error) {
	return f.page(func(m *entity.Movement) bool { return m.ItemID == itemID }, limit, offset), nil
}

func (f *fakeMovementRepo) ListByItemAndLocation(_ context.Context, itemID, locationID string, _, _ *time.Time, limit, offset int) ([]*entity.Movement, error) {
	return f.page(func(m *entity.Movement) bool {
		return m.ItemID == itemID && m.LocationID == locationID
	}, limit, offset), nil
}

func (f *fakeMovementRepo) page(match func(*entity.Movement) bool, limit, offset int) []*entity.Movement {
	var out []*entity.Movement
	for _, m := range f.ledger {
		if match(m) {
			out = append(out, m)
		}
	}
	if offset > len(out) {
		offset = len(out)
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out
}

func (f *fakeMovementRepo) SumByItemAndLocation(_ context.Context, itemID, locationID string) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, m := range f.ledger {
		if m.ItemID == itemID && m.LocationID == locationID {
			sum = sum.Add(m.Quantity)
		}
	}
	return sum, nil
}

func (f *fakeMovementRepo) CountByBatch(_ context.Context, _ string) (int64, error) {
	return f.batchCount, nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

func newPoster(batches *fakeBatchRepo, movements *fakeMovementRepo) *inventory.MovementPoster {
	return inventory.NewMovementPoster(batches, movements, nil)
}

func baseInput(movType string) inventory.MovementInput {
	return inventory.MovementInput{
		CompanyID:  "co-1",
		UserID:     "user-1",
		ItemID:     "item-1",
		LocationID: "loc-1",
		Type:       movType,
		Quantity:   decimal.NewFromInt(5),
		Batch:      inventory.NoBatch(),
	}
}

func futureDate(days int) *time.Time {
	d := time.Now().AddDate(0, 0, days)
	return &d
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación: ningún repositorio se toca si la entrada es inválida
// ──────────────────────────────────────────────────────────────────────────────

func TestPostMovement_ValidacionCampos(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*inventory.MovementInput)
		wantFld string
	}{
		{"sin item", func(in *inventory.MovementInput) { in.ItemID = "" }, "item_id"},
		{"sin ubicación", func(in *inventory.MovementInput) { in.LocationID = "" }, "location_id"},
		{"cantidad cero", func(in *inventory.MovementInput) { in.Quantity = decimal.Zero }, "quantity"},
		{"cantidad negativa", func(in *inventory.MovementInput) { in.Quantity = decimal.NewFromInt(-3) }, "quantity"},
		{"tipo desconocido", func(in *inventory.MovementInput) { in.Type = "TRANSFER" }, "type"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			batches := &fakeBatchRepo{}
			movements := &fakeMovementRepo{}
			in := baseInput(entity.MovementTypeIN)
			tc.mutate(&in)

			_, err := newPoster(batches, movements).PostMovement(context.Background(), in, nil)

			var vErr *domain.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tc.wantFld, vErr.Field)
			assert.Empty(t, batches.created, "una entrada inválida no debe crear lotes")
			assert.Empty(t, movements.created, "una entrada inválida no debe crear movimientos")
		})
	}
}

func TestPostMovement_AjusteSinMotivoValido(t *testing.T) {
	for _, reason := range []string{"", "porque sí", "LOSS"} {
		in := baseInput(entity.MovementTypeADJUSTMENT)
		in.ReasonCode = reason

		_, err := newPoster(&fakeBatchRepo{}, &fakeMovementRepo{}).
			PostMovement(context.Background(), in, nil)

		var vErr *domain.ValidationError
		require.ErrorAs(t, err, &vErr, "motivo %q debe rechazarse", reason)
		assert.Equal(t, "reason_code", vErr.Field)
	}
}

func TestPostMovement_LoteNuevoSoloEnEntradas(t *testing.T) {
	for _, movType := range []string{entity.MovementTypeOUT, entity.MovementTypeADJUSTMENT} {
		in := baseInput(movType)
		in.ReasonCode = "loss"
		in.Batch = inventory.NewBatch(inventory.NewBatchInput{BatchNumber: "L-001"})

		_, err := newPoster(&fakeBatchRepo{}, &fakeMovementRepo{}).
			PostMovement(context.Background(), in, nil)

		var vErr *domain.ValidationError
		require.ErrorAs(t, err, &vErr, "tipo %s no puede crear lote", movType)
		assert.Equal(t, "batch", vErr.Field)
	}
}

func TestPostMovement_LoteNuevoSinNumero(t *testing.T) {
	in := baseInput(entity.MovementTypeIN)
	in.Batch = inventory.NewBatch(inventory.NewBatchInput{BatchNumber: "   "})

	_, err := newPoster(&fakeBatchRepo{}, &fakeMovementRepo{}).
		PostMovement(context.Background(), in, nil)

	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "batch_number", vErr.Field)
}

func TestPostMovement_LoteNuevoVencimientoPasado(t *testing.T) {
	past := time.Now().AddDate(0, 0, -1)
	in := baseInput(entity.MovementTypeIN)
	in.Batch = inventory.NewBatch(inventory.NewBatchInput{
		BatchNumber:    "L-001",
		ExpirationDate: &past,
	})

	_, err := newPoster(&fakeBatchRepo{}, &fakeMovementRepo{}).
		PostMovement(context.Background(), in, nil)

	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "expiration_date", vErr.Field)
}

// El vencimiento de hoy es válido: el corte es el inicio del día, no el instante actual.
func TestPostMovement_LoteNuevoVenceHoyEsValido(t *testing.T) {
	today := time.Now()
	batches := &fakeBatchRepo{}
	movements := &fakeMovementRepo{}
	in := baseInput(entity.MovementTypeIN)
	in.Batch = inventory.NewBatch(inventory.NewBatchInput{
		BatchNumber:    "L-001",
		ExpirationDate: &today,
	})

	_, err := newPoster(batches, movements).PostMovement(context.Background(), in, nil)

	require.NoError(t, err)
	require.Len(t, batches.created, 1)
}

// Pre-chequeo advisory de duplicados: insensible a mayúsculas, solo contra la
// lista cargada, y corta antes de cualquier escritura.
func TestPostMovement_LoteDuplicadoPreChequeo(t *testing.T) {
	existing := []*entity.Batch{
		{ID: "b-1", ItemID: "item-1", BatchNumber: "LOTE-A"},
		{ID: "b-2", ItemID: "otro-item", BatchNumber: "LOTE-B"},
	}

	batches := &fakeBatchRepo{}
	movements := &fakeMovementRepo{}
	in := baseInput(entity.MovementTypeIN)
	in.Batch = inventory.NewBatch(inventory.NewBatchInput{BatchNumber: "lote-a"})

	_, err := newPoster(batches, movements).PostMovement(context.Background(), in, existing)

	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "batch_number", vErr.Field)
	assert.Empty(t, batches.created, "el duplicado detectado localmente no debe llegar al store")
	assert.Empty(t, movements.created)

	// El mismo número en OTRO ítem no es duplicado.
	in.Batch = inventory.NewBatch(inventory.NewBatchInput{BatchNumber: "LOTE-B"})
	_, err = newPoster(batches, movements).PostMovement(context.Background(), in, existing)
	require.NoError(t, err)
}

func TestPostMovement_LoteExistenteDeOtroItem(t *testing.T) {
	existing := []*entity.Batch{
		{ID: "b-1", ItemID: "otro-item", BatchNumber: "LOTE-A"},
	}
	in := baseInput(entity.MovementTypeOUT)
	in.Batch = inventory.ExistingBatch("b-1")

	_, err := newPoster(&fakeBatchRepo{}, &fakeMovementRepo{}).
		PostMovement(context.Background(), in, existing)

	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "batch_id", vErr.Field)
}

// ──────────────────────────────────────────────────────────────────────────────
// Derivación de campos por tipo (a través del flujo completo)
// ──────────────────────────────────────────────────────────────────────────────

func TestPostMovement_EntradaDerivaReferenciaYNotas(t *testing.T) {
	batches := &fakeBatchRepo{}
	movements := &fakeMovementRepo{}
	in := baseInput(entity.MovementTypeIN)
	in.ReasonCode = "Factura 001"

	_, err := newPoster(batches, movements).PostMovement(context.Background(), in, nil)

	require.NoError(t, err)
	require.Len(t, movements.created, 1)
	mov := movements.created[0]
	assert.Equal(t, entity.ReferenceTypeSupplier, mov.ReferenceType,
		"una entrada sin reference type explícito se atribuye a proveedor")
	assert.Equal(t, "Ref: Factura 001. ", mov.Notes)
	assert.True(t, mov.Quantity.Equal(decimal.NewFromInt(5)))
}

func TestPostMovement_EntradaSinMotivoNoTocaNotas(t *testing.T) {
	movements := &fakeMovementRepo{}
	in := baseInput(entity.MovementTypeIN)
	in.Notes = "llegó en camión"

	_, err := newPoster(&fakeBatchRepo{}, movements).PostMovement(context.Background(), in, nil)

	require.NoError(t, err)
	require.Len(t, movements.created, 1)
	assert.Equal(t, "llegó en camión", movements.created[0].Notes)
}

func TestPostMovement_EntradaRespetaReferenceTypeExplicito(t *testing.T) {
	movements := &fakeMovementRepo{}
	in := baseInput(entity.MovementTypeIN)
	in.ReferenceType = entity.ReferenceTypeDepartment
	in.ReferenceID = "dep-taller"

	_, err := newPoster(&fakeBatchRepo{}, movements).PostMovement(context.Background(), in, nil)

	require.NoError(t, err)
	assert.Equal(t, entity.ReferenceTypeDepartment, movements.created[0].ReferenceType)
	assert.Equal(t, "dep-taller", movements.created[0].ReferenceID)
}

func TestPostMovement_SalidaComponeMotivo(t *testing.T) {
	movements := &fakeMovementRepo{}
	in := baseInput(entity.MovementTypeOUT)
	in.ReferenceType = entity.ReferenceTypeCrane
	in.ReferenceID = "crane-7"
	in.ReasonCode = "servicio en ruta"
	in.Notes = "urgente"

	_, err := newPoster(&fakeBatchRepo{}, movements).PostMovement(context.Background(), in, nil)

	require.NoError(t, err)
	require.Len(t, movements.created, 1)
	mov := movements.created[0]
	assert.Equal(t, "Motivo: servicio en ruta. urgente", mov.Notes)
	assert.Equal(t, entity.ReferenceTypeCrane, mov.ReferenceType)
	assert.True(t, mov.Quantity.Equal(decimal.NewFromInt(5)),
		"la cantidad de una salida se persiste como la ingresó el usuario")
}

func TestPostMovement_AjusteNiegaCantidadSoloEnPerdidaYDanio(t *testing.T) {
	cases := []struct {
		reason   string
		negative bool
	}{
		{"loss", true},
		{"damage", true},
		{"found", false},
		{"correction", false},
	}

	for _, tc := range cases {
		t.Run(tc.reason, func(t *testing.T) {
			movements := &fakeMovementRepo{}
			in := baseInput(entity.MovementTypeADJUSTMENT)
			in.ReasonCode = tc.reason
			in.ReferenceID = "user-9"
			in.ReferenceType = entity.ReferenceTypeCrane // debe ser ignorado
			in.Notes = "conteo físico"

			_, err := newPoster(&fakeBatchRepo{}, movements).PostMovement(context.Background(), in, nil)

			require.NoError(t, err)
			require.Len(t, movements.created, 1)
			mov := movements.created[0]

			want := decimal.NewFromInt(5)
			if tc.negative {
				want = want.Neg()
			}
			assert.True(t, mov.Quantity.Equal(want), "cantidad %s para %s", mov.Quantity, tc.reason)
			assert.Equal(t, entity.ReferenceTypeAdjustment, mov.ReferenceType,
				"el reference type de un ajuste se fuerza siempre")
			assert.Equal(t, "Tipo: "+tc.reason+". Responsable: user-9. conteo físico", mov.Notes)
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Orden lote → movimiento y compensación
// ──────────────────────────────────────────────────────────────────────────────

func TestPostMovement_EntradaConLoteNuevo_CreaLoteYLoReferencia(t *testing.T) {
	batches := &fakeBatchRepo{}
	movements := &fakeMovementRepo{}
	in := baseInput(entity.MovementTypeIN)
	in.ReasonCode = "Factura 001"
	in.Batch = inventory.NewBatch(inventory.NewBatchInput{
		BatchNumber:    "L-2026-03",
		ExpirationDate: futureDate(90),
	})

	movID, err := newPoster(batches, movements).PostMovement(context.Background(), in, nil)

	require.NoError(t, err)
	require.NotEmpty(t, movID)
	require.Len(t, batches.created, 1)
	require.Len(t, movements.created, 1)

	batch := batches.created[0]
	mov := movements.created[0]
	assert.Equal(t, "item-1", batch.ItemID)
	assert.Equal(t, "L-2026-03", batch.BatchNumber)
	require.NotNil(t, mov.BatchID)
	assert.Equal(t, batch.ID, *mov.BatchID, "el movimiento debe referenciar el lote recién creado")
	assert.Empty(t, batches.deleted, "un posteo exitoso nunca compensa")
}

func TestPostMovement_FalloCrearLote_NadaQueCompensar(t *testing.T) {
	batches := &fakeBatchRepo{createErr: errors.New("constraint violada")}
	movements := &fakeMovementRepo{}
	in := baseInput(entity.MovementTypeIN)
	in.Batch = inventory.NewBatch(inventory.NewBatchInput{BatchNumber: "L-001"})

	_, err := newPoster(batches, movements).PostMovement(context.Background(), in, nil)

	var sErr *domain.StoreError
	require.ErrorAs(t, err, &sErr)
	assert.Empty(t, movements.created, "si el lote no se creó, el movimiento no se intenta")
	assert.Empty(t, batches.deleted)
}

func TestPostMovement_FalloMovimiento_CompensaElLote(t *testing.T) {
	batches := &fakeBatchRepo{}
	movements := &fakeMovementRepo{createErr: errors.New("caída de red")}
	in := baseInput(entity.MovementTypeIN)
	in.Batch = inventory.NewBatch(inventory.NewBatchInput{BatchNumber: "L-001"})

	_, err := newPoster(batches, movements).PostMovement(context.Background(), in, nil)

	var sErr *domain.StoreError
	require.ErrorAs(t, err, &sErr, "compensación exitosa reporta el error original del movimiento")
	require.Len(t, batches.created, 1)
	require.Len(t, batches.deleted, 1)
	assert.Equal(t, batches.created[0].ID, batches.deleted[0],
		"se borra exactamente el lote recién creado")
}

func TestPostMovement_CompensacionIgnoraCancelacionDelCaller(t *testing.T) {
	batches := &fakeBatchRepo{}
	movements := &fakeMovementRepo{createErr: context.Canceled}

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // el caller ya canceló; la compensación debe correr igual

	in := baseInput(entity.MovementTypeIN)
	in.Batch = inventory.NewBatch(inventory.NewBatchInput{BatchNumber: "L-001"})

	_, err := newPoster(batches, movements).PostMovement(ctx, in, nil)

	require.Error(t, err)
	require.Len(t, batches.deleted, 1, "la compensación debe ejecutarse aunque el ctx esté cancelado")
	assert.NoError(t, batches.deleteCtxErr,
		"el ctx de la compensación no debe heredar la cancelación del caller")
}

func TestPostMovement_FalloMovimientoSinLote_NoCompensa(t *testing.T) {
	batches := &fakeBatchRepo{}
	movements := &fakeMovementRepo{createErr: errors.New("caída de red")}

	_, err := newPoster(batches, movements).
		PostMovement(context.Background(), baseInput(entity.MovementTypeOUT), nil)

	var sErr *domain.StoreError
	require.ErrorAs(t, err, &sErr)
	assert.Empty(t, batches.deleted, "sin lote creado no hay nada que compensar")
}

func TestPostMovement_CompensacionFallida_ReportaAmbosErrores(t *testing.T) {
	movErr := errors.New("caída de red")
	delErr := errors.New("store no disponible")
	batches := &fakeBatchRepo{deleteErr: delErr}
	movements := &fakeMovementRepo{createErr: movErr}

	in := baseInput(entity.MovementTypeIN)
	in.Batch = inventory.NewBatch(inventory.NewBatchInput{BatchNumber: "L-001"})

	_, err := newPoster(batches, movements).PostMovement(context.Background(), in, nil)

	var cErr *domain.CompensationFailedError
	require.ErrorAs(t, err, &cErr)
	assert.Equal(t, batches.created[0].ID, cErr.BatchID,
		"el error identifica el lote que quedó huérfano")
	assert.ErrorIs(t, err, movErr, "el error del movimiento debe ser alcanzable con errors.Is")
	assert.ErrorIs(t, err, delErr, "el error del rollback debe ser alcanzable con errors.Is")
}
