// Package pdf dibuja la lista de compras en PDF con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: StockRest + título  │  Fecha de generación         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  UMBRALES: margen de stock bajo / días de vencimiento       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Produto | Categoria | Atual | Mín. | Un. | Status…  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL: valor en stock de los ítems listados                │
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

	appreport "github.com/jhoicas/stockrest/internal/application/report"
	"github.com/jhoicas/stockrest/internal/domain/inventory"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorDanger  = &props.Color{Red: 180, Green: 30, Blue: 30}
	colorWarning = &props.Color{Red: 190, Green: 110, Blue: 0}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa report.ShoppingListPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateShoppingListPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateShoppingListPDF(_ context.Context, doc appreport.ShoppingListDocument) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("StockRest - Lista de Compras", true).
		WithAuthor("StockRest", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(thresholdsRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableRows(doc.Rows) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(doc))

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre y título (izq), fecha y cantidad de ítems (der).
func headerRow(doc appreport.ShoppingListDocument) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New("StockRest", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Lista de Compras", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Gerado em "+doc.GeneratedAt.Format("02/01/2006"), props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%d itens em falta", len(doc.Rows)), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// thresholdsRow: umbrales con los que se clasificó cada ítem.
func thresholdsRow(doc appreport.ShoppingListDocument) core.Row {
	return row.New(8).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf("Margem de estoque baixo: %d%%   |   Alerta de vencimento: %d dias",
				doc.Settings.LowStockPercentage,
				doc.Settings.ExpiryThresholdDays,
			), props.Text{Size: 8, Top: 2, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Produto", 3, align.Left),
		h("Categoria", 2, align.Left),
		h("Atual", 1, align.Right),
		h("Mín.", 1, align.Right),
		h("Un.", 1, align.Center),
		h("Status", 2, align.Center),
		h("Valor Unit.", 1, align.Right),
		h("Total", 1, align.Right),
	)
}

// tableRows: una fila por ítem en falta.
func tableRows(rows []inventory.ShoppingListRow) []core.Row {
	result := make([]core.Row, 0, len(rows))
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 7, Align: a, Top: 1, Left: 1, Right: 1}))
	}
	for _, r := range rows {
		status := colorWarning
		if r.Status == inventory.StatusOutOfStock {
			status = colorDanger
		}
		result = append(result, row.New(7).Add(
			cell(r.Product, 3, align.Left),
			cell(nonEmpty(r.Category, "—"), 2, align.Left),
			cell(r.CurrentStock.String(), 1, align.Right),
			cell(r.MinStock.String(), 1, align.Right),
			cell(r.Unit, 1, align.Center),
			col.New(2).Add(text.New(r.Status, props.Text{
				Style: fontstyle.Bold, Size: 7, Align: align.Center, Top: 1, Color: status,
			})),
			cell(appreport.FormatBRL(r.UnitValue), 1, align.Right),
			cell(appreport.FormatBRL(r.TotalValue), 1, align.Right),
		))
	}
	return result
}

// totalRow: valor en stock de los ítems listados, alineado a la derecha.
func totalRow(doc appreport.ShoppingListDocument) core.Row {
	return row.New(10).Add(
		col.New(6),
		col.New(3).Add(text.New("VALOR EM ESTOQUE:", props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Color: colorPrimary, Top: 2, Right: 2,
		})),
		col.New(3).Add(text.New(appreport.FormatBRL(doc.Total), props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Color: colorPrimary, Top: 2, Right: 1,
		})),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
