package entity

import "time"

// Location representa una bodega o base operativa contra la que se asientan
// los movimientos de inventario (multi-bodega).
type Location struct {
	ID        string
	CompanyID string
	Name      string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
