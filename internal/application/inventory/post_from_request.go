package inventory

import (
	"context"
	"time"

	"github.com/gruasdelsur/backoffice-api/internal/application/dto"
	"github.com/gruasdelsur/backoffice-api/internal/domain"
)

// PostFromRequest adapta el request HTTP a PostMovement(ctx, MovementInput, lotes).
// Carga la lista de lotes del ítem para el pre-chequeo local de duplicados,
// que en el front corresponde a la lista ya cargada por el formulario.
func (p *MovementPoster) PostFromRequest(ctx context.Context, companyID, userID string, in dto.PostMovementRequest) (string, error) {
	if in.BatchID != "" && in.NewBatch != nil {
		return "", domain.NewValidationError("batch", "batch_id y new_batch son excluyentes")
	}

	input := MovementInput{
		CompanyID:     companyID,
		UserID:        userID,
		ItemID:        in.ItemID,
		LocationID:    in.LocationID,
		Type:          in.Type,
		Quantity:      in.Quantity,
		Batch:         NoBatch(),
		ReferenceType: in.ReferenceType,
		ReferenceID:   in.ReferenceID,
		ReasonCode:    in.ReasonCode,
		Notes:         in.Notes,
	}

	switch {
	case in.NewBatch != nil:
		nb := NewBatchInput{BatchNumber: in.NewBatch.BatchNumber}
		if in.NewBatch.ExpirationDate != "" {
			exp, err := time.ParseInLocation("2006-01-02", in.NewBatch.ExpirationDate, time.Local)
			if err != nil {
				return "", domain.NewValidationError("expiration_date", "fecha inválida, formato esperado AAAA-MM-DD")
			}
			nb.ExpirationDate = &exp
		}
		input.Batch = NewBatch(nb)
	case in.BatchID != "":
		input.Batch = ExistingBatch(in.BatchID)
	}

	batches, err := p.batches.ListByItem(ctx, in.ItemID)
	if err != nil {
		return "", &domain.StoreError{Op: "listar lotes", Err: err}
	}

	return p.PostMovement(ctx, input, batches)
}
