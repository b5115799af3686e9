package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gruasdelsur/backoffice-api/internal/domain"
	"github.com/gruasdelsur/backoffice-api/internal/domain/entity"
	"github.com/gruasdelsur/backoffice-api/internal/domain/repository"
	"github.com/gruasdelsur/backoffice-api/pkg/logger"
)

// MovementPoster publica un movimiento de inventario: opcionalmente crea primero
// un lote nuevo, luego crea el movimiento que lo referencia, y garantiza que si
// el movimiento falla después de crearse el lote, el lote se borra (compensación).
// No guarda estado entre llamadas; toda la durabilidad es de los repositorios.
type MovementPoster struct {
	batches   repository.BatchRepository
	movements repository.MovementRepository
	log       *logger.Logger
}

// NewMovementPoster construye el poster.
func NewMovementPoster(batches repository.BatchRepository, movements repository.MovementRepository, log *logger.Logger) *MovementPoster {
	if log == nil {
		log = logger.Nop()
	}
	return &MovementPoster{batches: batches, movements: movements, log: log}
}

// PostMovement valida la entrada, crea lote y movimiento en ese orden y devuelve
// el id del movimiento. existingBatches es la lista de lotes del ítem ya cargada
// por el caller, usada solo para el pre-chequeo local de número duplicado.
//
// Garantías: ningún movimiento referencia un lote inexistente al momento de
// crearse, y ningún lote huérfano sobrevive a una llamada fallida, salvo el caso
// reportado explícitamente como CompensationFailedError. La operación NO es
// idempotente: reintentar es responsabilidad del caller.
func (p *MovementPoster) PostMovement(ctx context.Context, in MovementInput, existingBatches []*entity.Batch) (string, error) {
	if err := validateInput(in, existingBatches, time.Now()); err != nil {
		return "", err
	}

	now := time.Now()

	// Crear el lote primero si corresponde (orden lote -> movimiento).
	// pendingBatchID es el marcador de compensación pendiente; vive solo en esta llamada.
	var pendingBatchID string
	var batchID *string
	switch {
	case in.Batch.IsNew():
		nb := in.Batch.New()
		b := &entity.Batch{
			ID:             uuid.New().String(),
			ItemID:         in.ItemID,
			BatchNumber:    nb.BatchNumber,
			ExpirationDate: nb.ExpirationDate,
			CreatedAt:      now,
		}
		if err := p.batches.Create(ctx, b); err != nil {
			// Nada que compensar: el lote no quedó creado.
			return "", &domain.StoreError{Op: "crear lote", Err: err}
		}
		pendingBatchID = b.ID
		batchID = &b.ID
	case in.Batch.IsExisting():
		id := in.Batch.ExistingID()
		batchID = &id
	}

	d := deriveFields(in)

	mov := &entity.Movement{
		ID:            uuid.New().String(),
		CompanyID:     in.CompanyID,
		ItemID:        in.ItemID,
		LocationID:    in.LocationID,
		Type:          in.Type,
		Quantity:      d.Quantity,
		BatchID:       batchID,
		ReferenceType: d.ReferenceType,
		ReferenceID:   d.ReferenceID,
		Notes:         d.Notes,
		CreatedAt:     now,
		CreatedBy:     in.UserID,
	}
	if err := p.movements.Create(ctx, mov); err != nil {
		movErr := &domain.StoreError{Op: "crear movimiento", Err: err}
		if pendingBatchID == "" {
			return "", movErr
		}
		// Compensación: borrar el lote recién creado. Corre sin cancelación del
		// caller: una compensación abandonada en vuelo es exactamente el lote
		// huérfano que este módulo existe para evitar.
		if delErr := p.batches.Delete(context.WithoutCancel(ctx), pendingBatchID); delErr != nil {
			p.log.Error().
				Str("batch_id", pendingBatchID).
				AnErr("movement_err", err).
				AnErr("rollback_err", delErr).
				Msg("compensación fallida: queda lote huérfano, requiere limpieza manual")
			return "", &domain.CompensationFailedError{
				BatchID:     pendingBatchID,
				MovementErr: movErr,
				RollbackErr: delErr,
			}
		}
		p.log.Warn().
			Str("batch_id", pendingBatchID).
			Err(err).
			Msg("crear movimiento falló; lote compensado")
		return "", movErr
	}

	return mov.ID, nil
}

// validateInput verifica las precondiciones sin tocar ningún repositorio.
// Incluye el pre-chequeo advisory de número de lote duplicado contra la lista
// ya cargada: acota el caso común a un error de campo amigable, pero la
// unicidad autoritativa la impone el store.
func validateInput(in MovementInput, existingBatches []*entity.Batch, now time.Time) error {
	if in.ItemID == "" {
		return domain.NewValidationError("item_id", "el ítem es obligatorio")
	}
	if in.LocationID == "" {
		return domain.NewValidationError("location_id", "la ubicación es obligatoria")
	}
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return domain.NewValidationError("quantity", "la cantidad debe ser mayor que cero")
	}
	if !entity.ValidMovementType(in.Type) {
		return domain.NewValidationError("type", "tipo de movimiento desconocido")
	}
	if in.Type == entity.MovementTypeADJUSTMENT && !entity.AdjustmentReason(in.ReasonCode).Valid() {
		return domain.NewValidationError("reason_code", "motivo de ajuste inválido")
	}

	switch {
	case in.Batch.IsNew():
		if in.Type != entity.MovementTypeIN {
			return domain.NewValidationError("batch", "solo una entrada puede crear un lote nuevo")
		}
		nb := in.Batch.New()
		if strings.TrimSpace(nb.BatchNumber) == "" {
			return domain.NewValidationError("batch_number", "el número de lote es obligatorio")
		}
		if nb.ExpirationDate != nil {
			startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
			if nb.ExpirationDate.Before(startOfDay) {
				return domain.NewValidationError("expiration_date", "la fecha de vencimiento no puede ser pasada")
			}
		}
		for _, b := range existingBatches {
			if b.ItemID == in.ItemID && strings.EqualFold(b.BatchNumber, nb.BatchNumber) {
				return domain.NewValidationError("batch_number", "ya existe un lote con ese número para el ítem")
			}
		}
	case in.Batch.IsExisting():
		// Si el lote viene en la lista cargada, validar que pertenezca al ítem.
		// Si no viene, el store lo resolverá (FK / validación del servidor).
		for _, b := range existingBatches {
			if b.ID == in.Batch.ExistingID() && b.ItemID != in.ItemID {
				return domain.NewValidationError("batch_id", "el lote pertenece a otro ítem")
			}
		}
	}
	return nil
}
