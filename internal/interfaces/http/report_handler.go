package http

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/application/dto"
	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/domain"
)

// KPIService cálculo de indicadores.
type KPIService interface {
	GetKPIs(ctx context.Context, q dto.ReportQuery) (*dto.KPIReport, error)
}

// ChartsService series para los gráficos del tablero.
type ChartsService interface {
	GetCharts(ctx context.Context, q dto.ReportQuery) (*dto.Charts, error)
}

// SummaryService resumen y reporte por producto.
type SummaryService interface {
	GetSummary(ctx context.Context, q dto.ReportQuery) (*dto.Summary, error)
	GetProducts(ctx context.Context, q dto.ReportQuery) (*dto.ProductReport, error)
}

// ExportService exportación del reporte en PDF.
type ExportService interface {
	Export(ctx context.Context, q dto.ReportQuery) ([]byte, string, error)
}

// ReportHandler rutas de /api/reportes.
type ReportHandler struct {
	kpis    KPIService
	charts  ChartsService
	summary SummaryService
	export  ExportService
}

// NewReportHandler construye el handler de reportes.
func NewReportHandler(kpis KPIService, charts ChartsService, summary SummaryService, export ExportService) *ReportHandler {
	return &ReportHandler{kpis: kpis, charts: charts, summary: summary, export: export}
}

func reportQuery(c *fiber.Ctx) dto.ReportQuery {
	r := dateRangeQuery(c)
	return dto.ReportQuery{
		DateFrom: r.DateFrom,
		DateTo:   r.DateTo,
		Product:  strings.TrimSpace(c.Query("product")),
		SocioID:  queryInt64(c, "socio", "id_socio"),
	}
}

// KPIs godoc
// @Summary      Indicadores del período
// @Description  Si el rango no tiene datos se reporta el histórico y period.widened es true.
// @Tags         reportes
// @Security     Bearer
// @Produce      json
// @Param        dateFrom  query  string  false  "Desde (YYYY-MM-DD), por defecto inicio del mes"
// @Param        dateTo    query  string  false  "Hasta (YYYY-MM-DD), por defecto fin del mes"
// @Param        product   query  string  false  "Producto"
// @Param        socio     query  int     false  "Socio"
// @Success      200       {object}  map[string]interface{}
// @Failure      500       {object}  map[string]interface{}
// @Router       /api/reportes/kpis [get]
func (h *ReportHandler) KPIs(c *fiber.Ctx) error {
	out, err := h.kpis.GetKPIs(c.UserContext(), reportQuery(c))
	if err != nil {
		var ve *domain.ValidationError
		if errors.As(err, &ve) || out == nil {
			return err
		}
		// Fallo de base de datos: el tablero recibe indicadores en cero.
		status, body := errorResponse(err)
		return c.Status(status).JSON(fiber.Map{
			"success": false,
			"code":    body.Code,
			"message": body.Message,
			"kpis":    out.KPIs,
		})
	}
	return c.JSON(fiber.Map{
		"success":          true,
		"kpis":             out.KPIs,
		"period":           out.Period,
		"marginCostSource": out.MarginCostSource,
	})
}

// Charts series mensuales, aportes por socio, inventario por tipo y desempeño.
func (h *ReportHandler) Charts(c *fiber.Ctx) error {
	out, err := h.charts.GetCharts(c.UserContext(), reportQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "charts": out})
}

func (h *ReportHandler) Summary(c *fiber.Ctx) error {
	out, err := h.summary.GetSummary(c.UserContext(), reportQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "summary": out})
}

func (h *ReportHandler) Products(c *fiber.Ctx) error {
	out, err := h.summary.GetProducts(c.UserContext(), reportQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "products": out})
}

// ExportPDF godoc
// @Summary      Exportar reporte PDF
// @Tags         reportes
// @Security     Bearer
// @Produce      application/pdf
// @Param        dateFrom  query  string  false  "Desde (YYYY-MM-DD)"
// @Param        dateTo    query  string  false  "Hasta (YYYY-MM-DD)"
// @Success      200       {file}  binary
// @Router       /api/reportes/export/pdf [get]
func (h *ReportHandler) ExportPDF(c *fiber.Ctx) error {
	pdf, filename, err := h.export.Export(c.UserContext(), reportQuery(c))
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdf)
}
