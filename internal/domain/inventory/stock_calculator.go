package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/gruasdelsur/backoffice-api/internal/domain/entity"
)

// StockFromMovements suma las cantidades firmadas de los movimientos (servicio de dominio).
// El stock de un ítem/ubicación NO se materializa: es siempre la suma de su libro.
func StockFromMovements(movs []*entity.Movement) decimal.Decimal {
	total := decimal.Zero
	for _, m := range movs {
		total = total.Add(m.Quantity)
	}
	return total
}

// RunningBalance devuelve el saldo acumulado después de cada movimiento,
// partiendo de opening. movs debe venir en orden cronológico ascendente.
func RunningBalance(movs []*entity.Movement, opening decimal.Decimal) []decimal.Decimal {
	balances := make([]decimal.Decimal, len(movs))
	saldo := opening
	for i, m := range movs {
		saldo = saldo.Add(m.Quantity)
		balances[i] = saldo
	}
	return balances
}
