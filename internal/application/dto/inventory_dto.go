package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// NewBatchRequest definición de un lote nuevo dentro de un posteo de entrada.
type NewBatchRequest struct {
	BatchNumber    string `json:"batch_number"`
	ExpirationDate string `json:"expiration_date,omitempty"` // formato 2006-01-02
}

// PostMovementRequest body para POST /api/inventory/movements.
// batch_id y new_batch son mutuamente excluyentes.
type PostMovementRequest struct {
	ItemID        string           `json:"item_id"`
	LocationID    string           `json:"location_id"`
	Type          string           `json:"type"` // IN | OUT | ADJUSTMENT
	Quantity      decimal.Decimal  `json:"quantity"`
	BatchID       string           `json:"batch_id,omitempty"`
	NewBatch      *NewBatchRequest `json:"new_batch,omitempty"`
	ReferenceType string           `json:"reference_type,omitempty"` // supplier | crane | department
	ReferenceID   string           `json:"reference_id,omitempty"`
	ReasonCode    string           `json:"reason_code,omitempty"`
	Notes         string           `json:"notes,omitempty"`
}

// PostMovementResponse respuesta del posteo.
type PostMovementResponse struct {
	MovementID string `json:"movement_id"`
}

// MovementResponse representación de un movimiento en respuestas.
type MovementResponse struct {
	ID            string          `json:"id"`
	ItemID        string          `json:"item_id"`
	LocationID    string          `json:"location_id"`
	Type          string          `json:"type"`
	Quantity      decimal.Decimal `json:"quantity"`
	BatchID       *string         `json:"batch_id,omitempty"`
	ReferenceType string          `json:"reference_type,omitempty"`
	ReferenceID   string          `json:"reference_id,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	CreatedBy     string          `json:"created_by,omitempty"`
}

// BatchResponse representación de un lote en respuestas.
type BatchResponse struct {
	ID             string     `json:"id"`
	ItemID         string     `json:"item_id"`
	BatchNumber    string     `json:"batch_number"`
	ExpirationDate *time.Time `json:"expiration_date,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// KardexRow una fila del kardex: movimiento más saldo acumulado del período.
type KardexRow struct {
	Movement MovementResponse `json:"movement"`
	Balance  decimal.Decimal  `json:"balance"`
}

// KardexResponse kardex de un ítem: movimientos en orden cronológico con saldo.
// CurrentStock se llena solo cuando se filtra por ubicación (suma total del libro).
type KardexResponse struct {
	ItemID       string           `json:"item_id"`
	LocationID   string           `json:"location_id,omitempty"`
	Rows         []KardexRow      `json:"rows"`
	PeriodTotal  decimal.Decimal  `json:"period_total"`
	CurrentStock *decimal.Decimal `json:"current_stock,omitempty"`
	Page         PageResponse     `json:"page"`
}
