package inventory

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/gruasdelsur/backoffice-api/internal/domain/entity"
)

// derivedFields campos finales del movimiento, función pura de la entrada (sin I/O).
type derivedFields struct {
	Quantity      decimal.Decimal
	ReferenceType string
	ReferenceID   string
	Notes         string
}

// deriveFields resuelve por tipo el reference type, las notas compuestas y el
// signo de la cantidad:
//   - IN: reference type del caller (default "supplier"); notas "Ref: {motivo}. {notas}".
//   - OUT: reference type del caller (grúa o departamento); notas "Motivo: {motivo}. {notas}".
//   - ADJUSTMENT: reference type forzado a "adjustment"; notas
//     "Tipo: {motivo}. Responsable: {referencia}. {notas}"; cantidad negada
//     solo para pérdida/daño.
func deriveFields(in MovementInput) derivedFields {
	d := derivedFields{
		Quantity:      in.Quantity,
		ReferenceType: in.ReferenceType,
		ReferenceID:   in.ReferenceID,
		Notes:         in.Notes,
	}

	switch in.Type {
	case entity.MovementTypeIN:
		if d.ReferenceType == "" {
			d.ReferenceType = entity.ReferenceTypeSupplier
		}
		if in.ReasonCode != "" {
			d.Notes = fmt.Sprintf("Ref: %s. %s", in.ReasonCode, in.Notes)
		}
	case entity.MovementTypeOUT:
		if in.ReasonCode != "" {
			d.Notes = fmt.Sprintf("Motivo: %s. %s", in.ReasonCode, in.Notes)
		}
	case entity.MovementTypeADJUSTMENT:
		// El caller no decide el reference type de un ajuste.
		d.ReferenceType = entity.ReferenceTypeAdjustment
		d.Notes = fmt.Sprintf("Tipo: %s. Responsable: %s. %s", in.ReasonCode, in.ReferenceID, in.Notes)
		if entity.AdjustmentReason(in.ReasonCode).InvertsSign() {
			d.Quantity = in.Quantity.Neg()
		}
	}
	return d
}
