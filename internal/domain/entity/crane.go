package entity

import "time"

// Crane es una grúa del parque; las salidas de inventario a servicio
// la referencian como causa de negocio.
type Crane struct {
	ID        string
	CompanyID string
	Plate     string // patente, única por empresa
	Brand     string
	Model     string
	Year      int
	Status    string // "active" | "maintenance" | "retired"
	CreatedAt time.Time
	UpdatedAt time.Time
}
