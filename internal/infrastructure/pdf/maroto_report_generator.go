// Package pdf genera el reporte de la cooperativa en PDF con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Cooperativa + título │ Período + fecha de emisión   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  KPIs: ingresos, variación, aportes, socios, inventario...   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: ventas por estado | pagos por tipo | producción    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PRODUCTOS: Producto | Ventas | Cantidad | Ingreso | %       │
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
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/application/dto"
	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/application/reports"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 34, Green: 102, Blue: 51}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorLight   = &props.Color{Red: 232, Green: 242, Blue: 234}
)

// MarotoReportGenerator implementa reports.ReportPDFGenerator usando Maroto v2.
type MarotoReportGenerator struct {
	orgName string
	printer *message.Printer
}

var _ reports.ReportPDFGenerator = (*MarotoReportGenerator)(nil)

// NewMarotoReportGenerator construye el generador; orgName encabeza cada reporte.
func NewMarotoReportGenerator(orgName string) *MarotoReportGenerator {
	return &MarotoReportGenerator{
		orgName: nonEmpty(orgName, "Cooperativa Agrícola"),
		printer: message.NewPrinter(language.Spanish),
	}
}

// GenerateReportPDF genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateReportPDF(_ context.Context, doc reports.ReportDocument) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(doc.Title, true).
		WithAuthor(g.orgName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	if doc.KPIs != nil {
		m.AddRows(sectionTitle("INDICADORES"))
		m.AddRows(g.kpiRows(doc.KPIs)...)
		m.AddRows(line.NewRow(2))
	}

	if s := doc.Summary; s != nil {
		m.AddRows(sectionTitle("RESUMEN DEL PERÍODO"))
		m.AddRows(g.groupTable("Ventas por estado", s.Ventas.PorEstado, true)...)
		m.AddRows(g.groupTable("Pagos por tipo", s.Pagos.PorTipo, true)...)
		m.AddRows(g.groupTable("Producción por calidad", s.Produccion.PorCalidad, false)...)
		m.AddRows(g.groupTable("Socios por estado", s.Socios, false)...)
		m.AddRows(g.insumosRow(s.Insumos))
		m.AddRows(line.NewRow(2))
	}

	if p := doc.Products; p != nil {
		m.AddRows(sectionTitle("VENTAS POR PRODUCTO"))
		m.AddRows(g.productRows(p)...)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(row.New(6).Add(col.New(12).Add(
		text.New("Los montos excluyen ventas canceladas y pagos rechazados. "+
			"El margen bruto se estima cuando no hay producción vinculada a las ventas.",
			props.Text{Size: 6.5, Color: colorGray, Top: 1}),
	)))

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar reporte: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *MarotoReportGenerator) headerRow(doc reports.ReportDocument) core.Row {
	period := ""
	if doc.Summary != nil {
		period = fmt.Sprintf("Período: %s a %s", doc.Summary.Period.From, doc.Summary.Period.To)
	}
	filters := ""
	if doc.Filters.Product != "" {
		filters = "Producto: " + doc.Filters.Product
	}
	if doc.Filters.SocioID != nil {
		filters = joinNonEmpty(filters, fmt.Sprintf("Socio #%d", *doc.Filters.SocioID))
	}

	return row.New(20).Add(
		col.New(7).Add(
			text.New(g.orgName, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New(doc.Title, props.Text{Size: 10, Top: 9}),
			text.New(filters, props.Text{Size: 8, Top: 15, Color: colorGray}),
		),
		col.New(5).Add(
			text.New(period, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2}),
			text.New("Emitido: "+doc.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func (g *MarotoReportGenerator) kpiRows(r *dto.KPIReport) []core.Row {
	k := r.KPIs
	cell := func(label, value string) core.Col {
		return col.New(4).Add(
			text.New(label, props.Text{Size: 7.5, Color: colorGray, Top: 1, Left: 1}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 11, Top: 5, Left: 1}),
		)
	}
	rows := []core.Row{
		row.New(13).Add(
			cell("Ingresos totales", g.money(k.TotalIncome)),
			cell("Variación vs. período anterior", g.percent(k.IncomeChange)),
			cell("Aportes de socios", g.money(k.TotalContributions)),
		),
		row.New(13).Add(
			cell("Socios activos", g.printer.Sprint(k.ActiveMembers)),
			cell("Valor de inventario", fmt.Sprintf("%s (%d insumos)", g.money(k.InventoryValue), k.AvailableItems)),
			cell("Margen bruto", g.percent(k.GrossMargin)),
		),
	}
	if r.Period.Widened {
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New(fmt.Sprintf("Sin ventas en el rango pedido: se muestra el histórico %s a %s.", r.Period.From, r.Period.To),
				props.Text{Size: 7, Style: fontstyle.Italic, Color: colorGray, Left: 1}),
		)))
	}
	return rows
}

// groupTable tabla clave | cantidad | monto.
func (g *MarotoReportGenerator) groupTable(title string, stats []dto.GroupStat, money bool) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New(title, props.Text{Style: fontstyle.Bold, Size: 8.5, Top: 1.5}),
		)),
		tableHeader([]string{"Clave", "Registros", "Monto"}, []int{6, 3, 3}),
	}
	if len(stats) == 0 {
		return append(rows, emptyRow())
	}
	for _, s := range stats {
		amount := g.printer.Sprint(number.Decimal(s.Amount.InexactFloat64(), number.Scale(2)))
		if money {
			amount = g.money(s.Amount)
		}
		rows = append(rows, row.New(5).Add(
			col.New(6).Add(text.New(humanize(s.Key), props.Text{Size: 8, Left: 1, Top: 0.5})),
			col.New(3).Add(text.New(g.printer.Sprint(s.Count), props.Text{Size: 8, Align: align.Right, Right: 1, Top: 0.5})),
			col.New(3).Add(text.New(amount, props.Text{Size: 8, Align: align.Right, Right: 1, Top: 0.5})),
		))
	}
	return rows
}

func (g *MarotoReportGenerator) insumosRow(in dto.InsumosSummary) core.Row {
	return row.New(10).Add(col.New(12).Add(
		text.New("Inventario de insumos", props.Text{Style: fontstyle.Bold, Size: 8.5, Top: 1.5}),
		text.New(fmt.Sprintf("%d insumos  |  %d disponibles  |  %d agotados  |  %d vencidos  |  Valor: %s",
			in.Items, in.Disponible, in.Agotados, in.Vencidos, g.money(in.Valor)),
			props.Text{Size: 8, Top: 6, Color: colorGray}),
	))
}

func (g *MarotoReportGenerator) productRows(p *dto.ProductReport) []core.Row {
	sizes := []int{4, 2, 2, 2, 2}
	rows := []core.Row{tableHeader([]string{"Producto", "Ventas", "Cantidad", "Ingreso", "Part. %"}, sizes)}
	if len(p.Products) == 0 {
		return append(rows, emptyRow())
	}
	for _, it := range p.Products {
		rows = append(rows, row.New(5).Add(
			col.New(sizes[0]).Add(text.New(it.Product, props.Text{Size: 8, Left: 1, Top: 0.5})),
			col.New(sizes[1]).Add(text.New(g.printer.Sprint(it.Sales), props.Text{Size: 8, Align: align.Right, Right: 1, Top: 0.5})),
			col.New(sizes[2]).Add(text.New(g.printer.Sprint(number.Decimal(it.Quantity.InexactFloat64(), number.Scale(2))),
				props.Text{Size: 8, Align: align.Right, Right: 1, Top: 0.5})),
			col.New(sizes[3]).Add(text.New(g.money(it.Revenue), props.Text{Size: 8, Align: align.Right, Right: 1, Top: 0.5})),
			col.New(sizes[4]).Add(text.New(g.percent(it.SharePercent), props.Text{Size: 8, Align: align.Right, Right: 1, Top: 0.5})),
		))
	}
	rows = append(rows, row.New(6).Add(
		col.New(8).Add(text.New("TOTAL", props.Text{Style: fontstyle.Bold, Size: 8.5, Align: align.Right, Right: 2, Top: 1})),
		col.New(2).Add(text.New(g.money(p.Total), props.Text{Style: fontstyle.Bold, Size: 8.5, Align: align.Right, Right: 1, Top: 1, Color: colorPrimary})),
		col.New(2),
	))
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func sectionTitle(s string) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2}),
	))
}

func tableHeader(labels []string, sizes []int) core.Row {
	cols := make([]core.Col, 0, len(labels))
	for i, l := range labels {
		a := align.Right
		if i == 0 {
			a = align.Left
		}
		cols = append(cols, col.New(sizes[i]).Add(text.New(l, props.Text{
			Style: fontstyle.Bold, Size: 7.5, Align: a, Top: 1, Left: 1, Right: 1,
		})))
	}
	return row.New(6).Add(cols...).WithStyle(&props.Cell{BackgroundColor: colorLight})
}

func emptyRow() core.Row {
	return row.New(5).Add(col.New(12).Add(
		text.New("Sin registros en el período.", props.Text{Size: 7.5, Style: fontstyle.Italic, Color: colorGray, Left: 1}),
	))
}

// money formato monetario con separadores en español, ej: "$12.345,50".
func (g *MarotoReportGenerator) money(d decimal.Decimal) string {
	return "$" + g.printer.Sprint(number.Decimal(d.InexactFloat64(), number.Scale(2)))
}

func (g *MarotoReportGenerator) percent(d decimal.Decimal) string {
	return g.printer.Sprint(number.Decimal(d.InexactFloat64(), number.Scale(2))) + "%"
}

// humanize "aporte_mensual" -> "Aporte mensual".
func humanize(key string) string {
	if key == "" {
		return "—"
	}
	b := []byte(key)
	for i, c := range b {
		if c == '_' {
			b[i] = ' '
		}
	}
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func joinNonEmpty(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	}
	return a + "  |  " + b
}
