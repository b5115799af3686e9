package entity

import "time"

// Company empresa operadora (tenant). Todos los catálogos y movimientos
// se escopean por CompanyID.
type Company struct {
	ID        string
	Name      string
	TaxID     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
