package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovementTypeIN         = "IN"         // entrada
	MovementTypeOUT        = "OUT"        // salida
	MovementTypeADJUSTMENT = "ADJUSTMENT" // ajuste
)

// ValidMovementType reporta si t es un tipo de movimiento conocido.
func ValidMovementType(t string) bool {
	switch t {
	case MovementTypeIN, MovementTypeOUT, MovementTypeADJUSTMENT:
		return true
	}
	return false
}

// Tipos de referencia: causa de negocio del movimiento.
const (
	ReferenceTypeSupplier   = "supplier"   // proveedor (entradas)
	ReferenceTypeCrane      = "crane"      // grúa del parque (salidas a servicio)
	ReferenceTypeDepartment = "department" // departamento interno
	ReferenceTypeAdjustment = "adjustment" // ajustes; siempre forzado por el poster
)

// AdjustmentReason motivo cerrado de un ajuste de inventario.
type AdjustmentReason string

const (
	AdjustmentLoss       AdjustmentReason = "loss"       // pérdida: descuenta stock
	AdjustmentDamage     AdjustmentReason = "damage"     // daño: descuenta stock
	AdjustmentFound      AdjustmentReason = "found"      // encontrado: suma stock
	AdjustmentCorrection AdjustmentReason = "correction" // corrección: suma stock
)

// Valid reporta si el motivo pertenece al conjunto cerrado de ajustes.
func (r AdjustmentReason) Valid() bool {
	switch r {
	case AdjustmentLoss, AdjustmentDamage, AdjustmentFound, AdjustmentCorrection:
		return true
	}
	return false
}

// InvertsSign reporta si el motivo descuenta stock (la cantidad se persiste negativa).
func (r AdjustmentReason) InvertsSign() bool {
	return r == AdjustmentLoss || r == AdjustmentDamage
}

// Movement es el registro durable del libro de inventario: un cambio de cantidad
// firmado contra un ítem/ubicación. El stock es un valor derivado (suma de movimientos);
// un movimiento, una vez creado, es inmutable.
type Movement struct {
	ID            string
	CompanyID     string
	ItemID        string
	LocationID    string
	Type          string
	Quantity      decimal.Decimal // firmada: negativa en ajustes por pérdida/daño
	BatchID       *string
	ReferenceType string
	ReferenceID   string
	Notes         string
	CreatedAt     time.Time
	CreatedBy     string
}
