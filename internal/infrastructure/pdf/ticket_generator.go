// Package pdf genera la comanda de cocina de un pedido.
//
// Layout (ancho A5, una columna):
//
//	┌──────────────────────────────────────────┐
//	│  Restaurante            Comanda #abcd1234 │
//	│  Estado / Fecha                          │
//	│  ──────────────────────────────────────  │
//	│  Cant | Producto           | Subtotal    │
//	│        + adicionales / observaciones     │
//	│  ──────────────────────────────────────  │
//	│  TOTAL                          QR del ID │
//	└──────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
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
	"github.com/shopspring/decimal"

	"github.com/LuizZonetti1/cafeterias-api/internal/application/order"
	"github.com/LuizZonetti1/cafeterias-api/internal/domain/entity"
)

var _ order.TicketGenerator = (*TicketGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 120, Green: 60, Blue: 20}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var statusLabels = map[string]string{
	entity.OrderPending:    "Pendiente",
	entity.OrderInProgress: "En preparación",
	entity.OrderCompleted:  "Finalizado",
	entity.OrderCancelled:  "Cancelado",
}

// ── Generator ─────────────────────────────────────────────────────────────────

// TicketGenerator implementa order.TicketGenerator con Maroto v2.
type TicketGenerator struct{}

// NewTicketGenerator construye el generador.
func NewTicketGenerator() *TicketGenerator { return &TicketGenerator{} }

// GenerateTicket genera la comanda y devuelve los bytes del PDF.
func (g *TicketGenerator) GenerateTicket(_ context.Context, o *entity.Order, r *entity.Restaurant) ([]byte, error) {
	restaurantName := "Restaurante"
	if r != nil && r.Name != "" {
		restaurantName = r.Name
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A5).
		WithLeftMargin(8).WithRightMargin(8).
		WithTopMargin(8).WithBottomMargin(8).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comanda "+ShortID(o.ID), true).
		WithAuthor(restaurantName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(o, restaurantName))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	m.AddRows(itemRows(o.Items)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(footerRow(o))
	if o.CancelReason != "" {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("Motivo de cancelación: "+o.CancelReason, props.Text{Size: 8, Top: 2, Color: colorGray}),
		)))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar comanda: %w", err)
	}
	return doc.GetBytes(), nil
}

// ShortID primeros 8 caracteres del ID, como se muestra en cocina.
func ShortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(o *entity.Order, restaurantName string) core.Row {
	status := statusLabels[o.Status]
	if status == "" {
		status = o.Status
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New(restaurantName, props.Text{Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 1}),
			text.New("Estado: "+status, props.Text{Size: 8, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("COMANDA #"+ShortID(o.ID), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 1,
			}),
			text.New(o.CreatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 2, Color: colorPrimary,
		}))
	}
	return row.New(7).Add(
		h("Cant.", 2, align.Center),
		h("Producto", 7, align.Left),
		h("Subtotal", 3, align.Right),
	)
}

// itemRows una fila por línea más una por adicional y por observación.
func itemRows(items []entity.OrderItem) []core.Row {
	rows := make([]core.Row, 0, len(items))
	for _, it := range items {
		subtotal := it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity)))
		rows = append(rows, row.New(6).Add(
			col.New(2).Add(text.New(fmt.Sprintf("%d", it.Quantity), props.Text{Size: 9, Align: align.Center, Top: 1})),
			col.New(7).Add(text.New(it.ProductName, props.Text{Size: 9, Style: fontstyle.Bold, Top: 1})),
			col.New(3).Add(text.New(money(subtotal), props.Text{Size: 9, Align: align.Right, Top: 1})),
		))
		for _, ad := range it.Additionals {
			rows = append(rows, detailRow(
				fmt.Sprintf("+ adicional %s %s", ad.Quantity.String(), unitLabel(ad.Unit)), money(ad.Price),
			))
		}
		if it.Additional != "" {
			rows = append(rows, detailRow("+ "+it.Additional, ""))
		}
		if it.Observations != "" {
			rows = append(rows, detailRow("Obs: "+it.Observations, ""))
		}
	}
	return rows
}

func detailRow(label, amount string) core.Row {
	return row.New(5).Add(
		col.New(2),
		col.New(7).Add(text.New(label, props.Text{Size: 7.5, Color: colorGray, Left: 2})),
		col.New(3).Add(text.New(amount, props.Text{Size: 7.5, Align: align.Right, Color: colorGray})),
	)
}

func footerRow(o *entity.Order) core.Row {
	return row.New(32).Add(
		col.New(4).Add(code.NewQr(o.ID, props.Rect{Percent: 90, Center: true})),
		col.New(8).Add(
			text.New("TOTAL", props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 6}),
			text.New(money(o.TotalAmount), props.Text{
				Style: fontstyle.Bold, Size: 14, Align: align.Right, Top: 13, Color: colorPrimary,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

func unitLabel(unit string) string {
	switch unit {
	case entity.UnitGrams:
		return "g"
	case entity.UnitLiters:
		return "l"
	case entity.UnitMilliliters:
		return "ml"
	case entity.UnitUnits:
		return "un"
	}
	return unit
}
