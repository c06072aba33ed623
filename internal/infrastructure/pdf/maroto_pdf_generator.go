// Package pdf implementa el informe PDF del inventario.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre de la empresa  │  Fecha de generación       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: SKU | Descripción | Ubicación | Cant | Mín | Costo  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: total de referencias / unidades / valor estimado  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"time"

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
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/application/export"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// Verificar en tiempo de compilación que implementa el puerto de exportación.
var _ export.InventoryPDFGenerator = (*MarotoPDFGenerator)(nil)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 180, Green: 40, Blue: 40}
)

// MarotoPDFGenerator implementa export.InventoryPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateInventoryReport genera el informe y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateInventoryReport(
	companyName string,
	items []*entity.InventoryItem,
	generatedAt time.Time,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Informe de Inventario", true).
		WithAuthor(companyName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(companyName, generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, it := range items {
		m.AddRows(itemRow(it))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(summaryRow(items))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: empresa (izq) y fecha de generación (der).
func headerRow(companyName string, generatedAt time.Time) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(companyName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Informe de inventario", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Generado: "+generatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 4, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla del catálogo.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("SKU", 2, align.Left),
		h("Descripción", 4, align.Left),
		h("Ubicación", 2, align.Left),
		h("Cant.", 1, align.Right),
		h("Mín.", 1, align.Right),
		h("Costo unit.", 2, align.Right),
	)
}

// itemRow: una fila por artículo; cantidad en rojo si está bajo el mínimo.
func itemRow(it *entity.InventoryItem) core.Row {
	qtyColor := colorGray
	if it.MinQuantity > 0 && it.Quantity <= it.MinQuantity {
		qtyColor = colorAlert
	}
	return row.New(7).Add(
		col.New(2).Add(text.New(it.SKU, props.Text{Size: 8, Top: 1, Left: 1})),
		col.New(4).Add(text.New(it.Description, props.Text{Size: 8, Top: 1, Left: 1})),
		col.New(2).Add(text.New(it.Location, props.Text{Size: 8, Top: 1, Left: 1, Color: colorGray})),
		col.New(1).Add(text.New(fmt.Sprintf("%d", it.Quantity), props.Text{
			Size: 8, Align: align.Right, Top: 1, Right: 1, Color: qtyColor, Style: fontstyle.Bold,
		})),
		col.New(1).Add(text.New(fmt.Sprintf("%d", it.MinQuantity), props.Text{
			Size: 8, Align: align.Right, Top: 1, Right: 1, Color: colorGray,
		})),
		col.New(2).Add(text.New("$"+it.UnitCost.StringFixed(2), props.Text{
			Size: 8, Align: align.Right, Top: 1, Right: 1,
		})),
	)
}

// summaryRow: totales del catálogo al pie del informe.
func summaryRow(items []*entity.InventoryItem) core.Row {
	var totalUnits int64
	totalValue := decimal.Zero
	for _, it := range items {
		totalUnits += it.Quantity
		totalValue = totalValue.Add(it.UnitCost.Mul(decimal.NewFromInt(it.Quantity)))
	}
	return row.New(10).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf("Referencias: %d   |   Unidades totales: %d   |   Valor estimado: $%s",
				len(items), totalUnits, totalValue.StringFixed(2),
			), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2, Color: colorPrimary,
			}),
		),
	)
}
