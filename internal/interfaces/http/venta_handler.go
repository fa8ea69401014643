package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/application/dto"
)

// VentaService operaciones de ventas.
type VentaService interface {
	Create(ctx context.Context, in dto.VentaRequest) (*dto.VentaResponse, error)
	GetByID(ctx context.Context, id int64) (*dto.VentaResponse, error)
	Update(ctx context.Context, id int64, in dto.VentaRequest) (*dto.VentaResponse, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, q dto.VentaListQuery) (*dto.Page[dto.VentaResponse], error)
	Statistics(ctx context.Context, q dto.DateRangeQuery) (*dto.VentaStatistics, error)
}

// VentaHandler maneja las peticiones HTTP de ventas.
type VentaHandler struct {
	svc VentaService
}

// NewVentaHandler construye el handler.
func NewVentaHandler(svc VentaService) *VentaHandler {
	return &VentaHandler{svc: svc}
}

// List godoc
// @Summary      Listar ventas
// @Tags         ventas
// @Security     Bearer
// @Produce      json
// @Param        page       query  int     false  "Página"
// @Param        limit      query  int     false  "Límite"
// @Param        search     query  string  false  "Producto o cliente"
// @Param        estado     query  string  false  "pendiente | entregado | pagado | cancelado"
// @Param        id_socio   query  int     false  "Socio"
// @Param        date_from  query  string  false  "Desde (YYYY-MM-DD)"
// @Param        date_to    query  string  false  "Hasta (YYYY-MM-DD, inclusive)"
// @Success      200        {object}  envelope
// @Router       /api/ventas [get]
func (h *VentaHandler) List(c *fiber.Ctx) error {
	r := dateRangeQuery(c)
	out, err := h.svc.List(c.UserContext(), dto.VentaListQuery{
		PageQuery: pageQuery(c),
		IDSocio:   queryInt64(c, "id_socio", "socio"),
		Estado:    strings.TrimSpace(c.Query("estado")),
		DateFrom:  r.DateFrom,
		DateTo:    r.DateTo,
	})
	if err != nil {
		return err
	}
	return okPage(c, out)
}

// Statistics conteo y montos por estado en el rango.
func (h *VentaHandler) Statistics(c *fiber.Ctx) error {
	out, err := h.svc.Statistics(c.UserContext(), dateRangeQuery(c))
	if err != nil {
		return err
	}
	return ok(c, out)
}

func (h *VentaHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	out, err := h.svc.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return ok(c, out)
}

// Create godoc
// @Summary      Registrar venta
// @Description  El total se calcula como cantidad × precio_unitario; un total enviado por el cliente se ignora.
// @Tags         ventas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.VentaRequest  true  "Datos de la venta"
// @Success      201   {object}  envelope
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/ventas [post]
func (h *VentaHandler) Create(c *fiber.Ctx) error {
	var in dto.VentaRequest
	if err := bind(c, &in); err != nil {
		return err
	}
	out, err := h.svc.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return created(c, out)
}

func (h *VentaHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var in dto.VentaRequest
	if err := bind(c, &in); err != nil {
		return err
	}
	out, err := h.svc.Update(c.UserContext(), id, in)
	if err != nil {
		return err
	}
	return ok(c, out)
}

func (h *VentaHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return okMessage(c, "venta eliminada")
}
