package inventory

import (
	"context"

	"github.com/gruasdelsur/backoffice-api/internal/domain/entity"
)

// VoucherData datos para la representación gráfica de un movimiento.
type VoucherData struct {
	Movement *entity.Movement
	Item     *entity.Item
	Location *entity.Location
	Batch    *entity.Batch // nil si el movimiento no tiene lote
	Company  *entity.Company
}

// MovementVoucherGenerator puerto hacia el generador de PDF del comprobante.
type MovementVoucherGenerator interface {
	GenerateMovementVoucher(ctx context.Context, data VoucherData) ([]byte, error)
}
