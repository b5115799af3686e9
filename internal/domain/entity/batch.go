package entity

import "time"

// Batch es un sub-lote fechado/numerado de un ítem, usado para control de vencimientos.
// BatchNumber es único por ítem (comparación insensible a mayúsculas); la unicidad
// autoritativa la impone el store, el poster solo hace un pre-chequeo local.
type Batch struct {
	ID             string
	ItemID         string
	BatchNumber    string
	ExpirationDate *time.Time // si está presente, debe ser >= hoy al crearse
	CreatedAt      time.Time
}

// Expired reporta si el lote está vencido respecto de now.
func (b *Batch) Expired(now time.Time) bool {
	if b.ExpirationDate == nil {
		return false
	}
	return b.ExpirationDate.Before(now)
}
