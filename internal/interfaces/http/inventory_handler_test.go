package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gruasdelsur/backoffice-api/internal/application/inventory"
	"github.com/gruasdelsur/backoffice-api/internal/domain/entity"
	apphttp "github.com/gruasdelsur/backoffice-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Stubs de repositorio para el flujo HTTP de posteo
// ──────────────────────────────────────────────────────────────────────────────

type stubBatchRepo struct {
	created   []*entity.Batch
	deleted   []string
	deleteErr error
}

func (s *stubBatchRepo) Create(_ context.Context, b *entity.Batch) error {
	s.created = append(s.created, b)
	return nil
}

func (s *stubBatchRepo) Delete(_ context.Context, id string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *stubBatchRepo) GetByID(_ context.Context, _ string) (*entity.Batch, error) {
	return nil, nil
}

func (s *stubBatchRepo) ListByItem(_ context.Context, itemID string) ([]*entity.Batch, error) {
	var out []*entity.Batch
	for _, b := range s.created {
		if b.ItemID == itemID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *stubBatchRepo) ListExpiringBefore(_ context.Context, _ string, _ time.Time) ([]*entity.Batch, error) {
	return nil, nil
}

type stubMovementRepo struct {
	createErr error
	created   []*entity.Movement
}

func (s *stubMovementRepo) Create(_ context.Context, m *entity.Movement) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.created = append(s.created, m)
	return nil
}

func (s *stubMovementRepo) GetByID(_ context.Context, _ string) (*entity.Movement, error) {
	return nil, nil
}

func (s *stubMovementRepo) ListByItem(_ context.Context, _ string, _, _ *time.Time, _, _ int) ([]*entity.Movement, error) {
	return nil, nil
}

func (s *stubMovementRepo) ListByItemAndLocation(_ context.Context, _, _ string, _, _ *time.Time, _, _ int) ([]*entity.Movement, error) {
	return nil, nil
}

func (s *stubMovementRepo) SumByItemAndLocation(_ context.Context, _, _ string) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func (s *stubMovementRepo) CountByBatch(_ context.Context, _ string) (int64, error) {
	return 0, nil
}

// buildMovementsApp monta solo la ruta de posteo con auth real y el poster real
// sobre los stubs de repositorio.
func buildMovementsApp(batches *stubBatchRepo, movements *stubMovementRepo) *fiber.App {
	poster := inventory.NewMovementPoster(batches, movements, nil)
	handler := apphttp.NewInventoryHandler(poster, nil, nil, nil, 30)

	app := fiber.New()
	app.Post("/api/inventory/movements",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireRole(entity.RoleAdmin, entity.RoleBodeguero),
		handler.PostMovement,
	)
	return app
}

func postMovement(t *testing.T, app *fiber.App, role string, body map[string]any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/inventory/movements", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", tokenForRole(t, role))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// POST /api/inventory/movements
// ──────────────────────────────────────────────────────────────────────────────

func TestPostMovementEndpoint_EntradaConLoteNuevo201(t *testing.T) {
	batches := &stubBatchRepo{}
	movements := &stubMovementRepo{}
	app := buildMovementsApp(batches, movements)

	resp := postMovement(t, app, entity.RoleBodeguero, map[string]any{
		"item_id":     "item-1",
		"location_id": "loc-1",
		"type":        "IN",
		"quantity":    "12.5",
		"reason_code": "Factura 001",
		"new_batch":   map[string]any{"batch_number": "L-001"},
	})
	defer resp.Body.Close()

	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.NotEmpty(t, body["movement_id"])

	require.Len(t, movements.created, 1)
	mov := movements.created[0]
	assert.Equal(t, testCompanyID, mov.CompanyID, "el movimiento hereda la empresa del token")
	assert.Equal(t, testUserID, mov.CreatedBy, "el movimiento hereda el usuario del token")
	assert.Equal(t, "Ref: Factura 001. ", mov.Notes)
	require.Len(t, batches.created, 1)
}

func TestPostMovementEndpoint_ValidacionDevuelve400ConCampo(t *testing.T) {
	app := buildMovementsApp(&stubBatchRepo{}, &stubMovementRepo{})

	resp := postMovement(t, app, entity.RoleBodeguero, map[string]any{
		"item_id":     "item-1",
		"location_id": "loc-1",
		"type":        "ADJUSTMENT",
		"quantity":    "4",
		"reason_code": "no-es-un-motivo",
	})
	defer resp.Body.Close()

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "VALIDATION", body["code"])
	assert.Equal(t, "reason_code", body["field"], "el error debe señalar el campo del formulario")
}

func TestPostMovementEndpoint_OperadorRecibe403(t *testing.T) {
	app := buildMovementsApp(&stubBatchRepo{}, &stubMovementRepo{})

	resp := postMovement(t, app, entity.RoleOperador, map[string]any{
		"item_id":     "item-1",
		"location_id": "loc-1",
		"type":        "IN",
		"quantity":    "1",
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestPostMovementEndpoint_CompensacionFallidaDevuelve500(t *testing.T) {
	batches := &stubBatchRepo{deleteErr: errors.New("store caído")}
	movements := &stubMovementRepo{createErr: errors.New("timeout")}
	app := buildMovementsApp(batches, movements)

	resp := postMovement(t, app, entity.RoleAdmin, map[string]any{
		"item_id":     "item-1",
		"location_id": "loc-1",
		"type":        "IN",
		"quantity":    "2",
		"new_batch":   map[string]any{"batch_number": "L-001"},
	})
	defer resp.Body.Close()

	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "COMPENSATION_FAILED", body["code"],
		"el caller debe poder distinguir un lote huérfano de un fallo simple")
}

func TestPostMovementEndpoint_FalloSimpleCompensaYDevuelveSTORE(t *testing.T) {
	batches := &stubBatchRepo{}
	movements := &stubMovementRepo{createErr: errors.New("timeout")}
	app := buildMovementsApp(batches, movements)

	resp := postMovement(t, app, entity.RoleAdmin, map[string]any{
		"item_id":     "item-1",
		"location_id": "loc-1",
		"type":        "IN",
		"quantity":    "2",
		"new_batch":   map[string]any{"batch_number": "L-001"},
	})
	defer resp.Body.Close()

	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "STORE", body["code"])
	require.Len(t, batches.deleted, 1, "el lote creado debe compensarse")
}
