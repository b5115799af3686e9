package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gruasdelsur/backoffice-api/internal/domain/entity"
	"github.com/gruasdelsur/backoffice-api/internal/domain/inventory"
)

func mov(q string) *entity.Movement {
	return &entity.Movement{Quantity: decimal.RequireFromString(q)}
}

func TestStockFromMovements_SumaFirmada(t *testing.T) {
	movs := []*entity.Movement{
		mov("10"),   // entrada
		mov("-3"),   // salida
		mov("-2.5"), // ajuste por pérdida
		mov("1.5"),  // ajuste por conteo
	}
	total := inventory.StockFromMovements(movs)
	assert.True(t, total.Equal(decimal.NewFromInt(6)), "total %s", total)
}

func TestStockFromMovements_LibroVacio(t *testing.T) {
	assert.True(t, inventory.StockFromMovements(nil).IsZero())
}

// El stock puede quedar negativo: el libro registra lo que pasó, no lo que
// debería haber pasado; la alerta es problema de la capa de reportes.
func TestStockFromMovements_PermiteNegativo(t *testing.T) {
	movs := []*entity.Movement{mov("2"), mov("-5")}
	assert.True(t, inventory.StockFromMovements(movs).Equal(decimal.NewFromInt(-3)))
}

func TestRunningBalance_AcumulaDesdeApertura(t *testing.T) {
	movs := []*entity.Movement{mov("10"), mov("-4"), mov("0.5")}

	balances := inventory.RunningBalance(movs, decimal.NewFromInt(100))

	require.Len(t, balances, 3)
	assert.True(t, balances[0].Equal(decimal.NewFromInt(110)))
	assert.True(t, balances[1].Equal(decimal.NewFromInt(106)))
	assert.True(t, balances[2].Equal(decimal.RequireFromString("106.5")))
}

func TestRunningBalance_SinMovimientos(t *testing.T) {
	assert.Empty(t, inventory.RunningBalance(nil, decimal.NewFromInt(7)))
}
