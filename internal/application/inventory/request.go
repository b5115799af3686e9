package inventory

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementInput entrada para publicar un movimiento de inventario. Vive solo
// durante una llamada a PostMovement; no se persiste tal cual.
type MovementInput struct {
	CompanyID  string
	UserID     string
	ItemID     string
	LocationID string
	Type       string          // entity.MovementTypeIN | OUT | ADJUSTMENT
	Quantity   decimal.Decimal // siempre > 0 como la ingresa el usuario; el signo lo aplica el poster

	Batch BatchSelection

	// Clasificación libre de la causa del movimiento: proveedor, grúa,
	// departamento, responsable del ajuste.
	ReferenceType string
	ReferenceID   string

	// ReasonCode: texto libre en entradas/salidas ("Factura 123"); en ajustes
	// debe ser uno de los motivos cerrados (loss, damage, found, correction).
	ReasonCode string
	Notes      string
}

// NewBatchInput definición de un lote nuevo que acompaña a una entrada.
type NewBatchInput struct {
	BatchNumber    string
	ExpirationDate *time.Time
}

type batchSelectionKind int

const (
	batchNone batchSelectionKind = iota
	batchExisting
	batchNew
)

// BatchSelection indica cómo se resuelve el lote del movimiento: sin lote,
// lote existente, o lote nuevo creado junto con el movimiento. Las tres
// variantes son mutuamente excluyentes; se construye solo con NoBatch,
// ExistingBatch o NewBatch.
type BatchSelection struct {
	kind     batchSelectionKind
	existing string
	fresh    NewBatchInput
}

// NoBatch movimiento sin lote.
func NoBatch() BatchSelection {
	return BatchSelection{kind: batchNone}
}

// ExistingBatch movimiento contra un lote ya persistido.
func ExistingBatch(id string) BatchSelection {
	return BatchSelection{kind: batchExisting, existing: id}
}

// NewBatch el poster crea el lote antes del movimiento (solo entradas).
func NewBatch(in NewBatchInput) BatchSelection {
	return BatchSelection{kind: batchNew, fresh: in}
}

// IsNone reporta si no hay lote asociado.
func (s BatchSelection) IsNone() bool { return s.kind == batchNone }

// IsExisting reporta si referencia un lote existente.
func (s BatchSelection) IsExisting() bool { return s.kind == batchExisting }

// IsNew reporta si define un lote nuevo.
func (s BatchSelection) IsNew() bool { return s.kind == batchNew }

// ExistingID devuelve el id del lote existente (vacío si no aplica).
func (s BatchSelection) ExistingID() string { return s.existing }

// New devuelve la definición del lote nuevo (cero si no aplica).
func (s BatchSelection) New() NewBatchInput { return s.fresh }
