package entity

import "time"

// Supplier proveedor de repuestos e insumos; referencia de negocio de las entradas.
type Supplier struct {
	ID        string
	CompanyID string
	Name      string
	TaxID     string // RUT/NIT del proveedor
	Phone     string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
