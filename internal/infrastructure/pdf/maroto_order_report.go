// Package pdf genera la ficha imprimible de una orden de trabajo.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa  │  OT N° + Fecha + Estado                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  MÓVIL: nombre / patente / km   CHOFER: nombre              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TAREAS: lista numerada                                      │
//	│  CHECKLIST: aceite / frenos / luces / neumáticos             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  REPUESTOS: Cant | Descripción | Estado solicitud            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: terceros / repuestos / TOTAL                       │
//	│  OBSERVACIONES                                               │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
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
	"github.com/shopspring/decimal"

	"github.com/transportechiro/flota-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// OrderReportData reúne todo lo que la ficha necesita ya resuelto: la capa
// HTTP junta entidades y nombres, acá solo se diagrama.
type OrderReportData struct {
	CompanyName string
	Order       *entity.WorkOrder
	VehicleName string
	Plate       string
	OdometerKM  int64
	DriverName  string
	Tasks       []string
	Parts       []OrderReportPart
	PartsCost   decimal.Decimal
}

// OrderReportPart es una línea de repuesto de la ficha.
type OrderReportPart struct {
	Name     string
	Quantity int64
	Status   string
}

// MarotoOrderReport genera la ficha de OT usando Maroto v2.
type MarotoOrderReport struct{}

// NewMarotoOrderReport construye el generador.
func NewMarotoOrderReport() *MarotoOrderReport { return &MarotoOrderReport{} }

// Generate genera el PDF y devuelve sus bytes.
func (g *MarotoOrderReport) Generate(data OrderReportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(fmt.Sprintf("Orden de Trabajo N° %d", data.Order.ID), true).
		WithAuthor(data.CompanyName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(unitRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitle("TAREAS"))
	for i, task := range data.Tasks {
		m.AddRows(row.New(5).Add(col.New(12).Add(
			text.New(fmt.Sprintf("%d. %s", i+1, latin1(task)), props.Text{Size: 9, Top: 0.5, Left: 2}),
		)))
	}

	m.AddRows(checklistRow(data.Order.Checklist))

	if len(data.Parts) > 0 {
		m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
		m.AddRows(sectionTitle("REPUESTOS SOLICITADOS"))
		m.AddRows(partsHeaderRow())
		for _, r := range partsRows(data.Parts) {
			m.AddRows(r)
		}
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(data))

	if data.Order.Observations != "" {
		m.AddRows(sectionTitle("OBSERVACIONES"))
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New(latin1(data.Order.Observations), props.Text{Size: 8, Top: 0.5, Left: 2, Color: colorGray}),
		)))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(data OrderReportData) core.Row {
	fecha := data.Order.Date.Format("02/01/2006")
	return row.New(18).Add(
		col.New(7).Add(
			text.New(latin1(data.CompanyName), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(latin1("Rubro: "+data.Order.Category), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("ORDEN DE TRABAJO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("N° %d", data.Order.ID), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New(fmt.Sprintf("Fecha: %s   Estado: %s", fecha, data.Order.Status), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func unitRow(data OrderReportData) core.Row {
	driver := data.DriverName
	if driver == "" {
		driver = "—"
	}
	responsible := data.Order.Responsible
	if data.Order.ExternalWorkshop != "" {
		responsible += " (" + data.Order.ExternalWorkshop + ")"
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("UNIDAD", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(latin1(fmt.Sprintf("Móvil: %s   |   Patente: %s   |   KM: %d",
				data.VehicleName, nonEmpty(data.Plate, "—"), data.OdometerKM)),
				props.Text{Style: fontstyle.Bold, Size: 9, Top: 6}),
			text.New(latin1(fmt.Sprintf("Chofer: %s   |   Responsable: %s", driver, responsible)),
				props.Text{Size: 8, Top: 11, Color: colorGray}),
		),
	)
}

func sectionTitle(title string) core.Row {
	return row.New(6).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
	))
}

func checklistRow(c entity.Checklist) core.Row {
	mark := func(label string, ok bool) string {
		if ok {
			return "[x] " + label
		}
		return "[ ] " + label
	}
	return row.New(8).Add(
		col.New(12).Add(
			text.New("CHECKLIST", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(latin1(fmt.Sprintf("%s   %s   %s   %s",
				mark("Aceite", c.Oil), mark("Frenos", c.Brakes),
				mark("Luces", c.Lights), mark("Neumáticos", c.Tires))),
				props.Text{Size: 8, Top: 5, Left: 2}),
		),
	)
}

func partsHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 1,
		}))
	}
	return row.New(6).Add(
		h("Cant.", 2, align.Center),
		h("Repuesto", 7, align.Left),
		h("Solicitud", 3, align.Right),
	)
}

func partsRows(parts []OrderReportPart) []core.Row {
	result := make([]core.Row, 0, len(parts))
	for _, p := range parts {
		result = append(result, row.New(5).Add(
			col.New(2).Add(text.New(
				fmt.Sprintf("%d", p.Quantity),
				props.Text{Size: 8, Align: align.Center, Top: 0.5},
			)),
			col.New(7).Add(text.New(
				latin1(p.Name),
				props.Text{Size: 8, Align: align.Left, Top: 0.5, Left: 1},
			)),
			col.New(3).Add(text.New(
				p.Status,
				props.Text{Size: 8, Align: align.Right, Top: 0.5, Right: 1},
			)),
		))
	}
	return result
}

func totalsRow(data OrderReportData) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandLabel := text.New("TOTAL:", props.Text{
		Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2,
	})
	grandValue := text.New("$"+data.Order.TotalCost.StringFixed(2), props.Text{
		Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1,
	})

	return row.New(20).Add(
		col.New(4),
		col.New(4).Add(
			label("Terceros:"),
			label("Repuestos:"),
			grandLabel,
		),
		col.New(4).Add(
			value("$"+data.Order.ThirdPartyCost.StringFixed(2)),
			value("$"+data.PartsCost.StringFixed(2)),
			grandValue,
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
