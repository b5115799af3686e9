// Package pdf implementa la generación del comprobante de movimiento de
// inventario (documento interno de bodega).
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Razón Social + RUT  │  N° Comprobante + Fecha      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  MOVIMIENTO: Tipo / Referencia / Registrado por              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DETALLE: Ítem (SKU) | Bodega | Lote | Cantidad              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  OBSERVACIONES + Leyenda interna                             │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	appinv "github.com/gruasdelsur/backoffice-api/internal/application/inventory"
	"github.com/gruasdelsur/backoffice-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 178, Green: 34, Blue: 34}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MovementVoucherGenerator implementa inventory.MovementVoucherGenerator usando Maroto v2.
type MovementVoucherGenerator struct{}

// NewMovementVoucherGenerator construye el generador.
func NewMovementVoucherGenerator() *MovementVoucherGenerator { return &MovementVoucherGenerator{} }

// GenerateMovementVoucher genera el PDF del comprobante y devuelve sus bytes.
func (g *MovementVoucherGenerator) GenerateMovementVoucher(
	_ context.Context,
	data appinv.VoucherData,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprobante de Movimiento de Inventario", true).
		WithAuthor(data.Company.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(data.Movement, data.Company))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(movementInfoRow(data.Movement))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(detailHeaderRow())
	m.AddRows(detailRow(data))

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	for _, r := range notesRows(data.Movement) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar comprobante: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: razón social + RUT (izq) y N° de comprobante + fecha (der).
func headerRow(mov *entity.Movement, company *entity.Company) core.Row {
	fecha := mov.CreatedAt.Format("02/01/2006 15:04")

	return row.New(18).Add(
		col.New(7).Add(
			text.New(company.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("RUT: "+company.TaxID, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("COMPROBANTE DE MOVIMIENTO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(shortID(mov.ID), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// movementInfoRow: tipo, referencia de negocio y usuario que registró.
func movementInfoRow(mov *entity.Movement) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("DATOS DEL MOVIMIENTO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(movementTypeLabel(mov.Type), props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Referencia: %s %s   |   Registrado por: %s",
				referenceTypeLabel(mov.ReferenceType),
				nonEmpty(mov.ReferenceID, "—"),
				nonEmpty(mov.CreatedBy, "—"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// detailHeaderRow: cabecera de la tabla de detalle.
func detailHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Ítem (SKU)", 5, align.Left),
		h("Bodega", 3, align.Left),
		h("Lote", 2, align.Center),
		h("Cantidad", 2, align.Right),
	)
}

// detailRow: la única línea de detalle del comprobante.
func detailRow(data appinv.VoucherData) core.Row {
	batchLabel := "—"
	if data.Batch != nil {
		batchLabel = data.Batch.BatchNumber
		if data.Batch.ExpirationDate != nil {
			batchLabel += " (vence " + data.Batch.ExpirationDate.Format("02/01/2006") + ")"
		}
	}
	qty := data.Movement.Quantity.String() + " " + data.Item.Unit

	return row.New(8).Add(
		col.New(5).Add(text.New(
			fmt.Sprintf("%s (%s)", data.Item.Name, data.Item.SKU),
			props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
		)),
		col.New(3).Add(text.New(
			data.Location.Name,
			props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
		)),
		col.New(2).Add(text.New(
			batchLabel,
			props.Text{Size: 7.5, Align: align.Center, Top: 1},
		)),
		col.New(2).Add(text.New(
			qty,
			props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 1, Right: 1},
		)),
	)
}

// notesRows: observaciones del movimiento + leyenda interna.
func notesRows(mov *entity.Movement) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("OBSERVACIONES", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		)),
		row.New(10).Add(col.New(12).Add(
			text.New(nonEmpty(mov.Notes, "Sin observaciones."), props.Text{
				Size: 8, Top: 1, Left: 1, Color: colorGray,
			}),
		)),
		row.New(8).Add(col.New(12).Add(
			text.New(
				"Documento interno de control de bodega. No constituye documento tributario. "+
					"Conserve este comprobante como respaldo del asiento de inventario.",
				props.Text{Size: 6.5, Color: colorGray, Top: 2},
			),
		)),
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// shortID toma el primer segmento de un UUID como número visible de comprobante.
func shortID(id string) string {
	for i := 0; i < len(id); i++ {
		if id[i] == '-' {
			return "N° " + id[:i]
		}
	}
	return "N° " + id
}

func movementTypeLabel(t string) string {
	switch t {
	case entity.MovementTypeIN:
		return "ENTRADA DE INVENTARIO"
	case entity.MovementTypeOUT:
		return "SALIDA DE INVENTARIO"
	case entity.MovementTypeADJUSTMENT:
		return "AJUSTE DE INVENTARIO"
	}
	return t
}

func referenceTypeLabel(rt string) string {
	switch rt {
	case entity.ReferenceTypeSupplier:
		return "Proveedor"
	case entity.ReferenceTypeCrane:
		return "Grúa"
	case entity.ReferenceTypeDepartment:
		return "Departamento"
	case entity.ReferenceTypeAdjustment:
		return "Ajuste"
	}
	return rt
}
