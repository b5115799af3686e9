package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item representa un artículo de inventario del taller (repuestos, insumos,
// consumibles de las grúas). El stock no vive aquí: se deriva de los movimientos.
type Item struct {
	ID          string
	CompanyID   string
	SKU         string // código único por empresa
	Name        string
	Description string
	Unit        string          // unidad de medida: "un", "lt", "kg", ...
	MinStock    decimal.Decimal // umbral para alertas de reposición
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
