package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/application/dto"
)

// PagoService operaciones de pagos.
type PagoService interface {
	Create(ctx context.Context, in dto.PagoRequest) (*dto.PagoResponse, error)
	GetByID(ctx context.Context, id int64) (*dto.PagoResponse, error)
	Update(ctx context.Context, id int64, in dto.PagoRequest) (*dto.PagoResponse, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, q dto.PagoListQuery) (*dto.Page[dto.PagoResponse], error)
	Statistics(ctx context.Context, q dto.DateRangeQuery) (*dto.PagoStatistics, error)
}

// PagoHandler maneja las peticiones HTTP de pagos y aportes.
type PagoHandler struct {
	svc PagoService
}

// NewPagoHandler construye el handler.
func NewPagoHandler(svc PagoService) *PagoHandler {
	return &PagoHandler{svc: svc}
}

func (h *PagoHandler) List(c *fiber.Ctx) error {
	r := dateRangeQuery(c)
	out, err := h.svc.List(c.UserContext(), dto.PagoListQuery{
		PageQuery: pageQuery(c),
		IDSocio:   queryInt64(c, "id_socio", "socio"),
		Tipo:      strings.TrimSpace(c.Query("tipo")),
		Estado:    strings.TrimSpace(c.Query("estado")),
		DateFrom:  r.DateFrom,
		DateTo:    r.DateTo,
	})
	if err != nil {
		return err
	}
	return okPage(c, out)
}

func (h *PagoHandler) Statistics(c *fiber.Ctx) error {
	out, err := h.svc.Statistics(c.UserContext(), dateRangeQuery(c))
	if err != nil {
		return err
	}
	return ok(c, out)
}

func (h *PagoHandler) GetByID(c *fiber.Ctx) error {
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
// @Summary      Registrar pago
// @Description  Recalcula aportes_totales del socio y liquida la venta vinculada en la misma transacción.
// @Tags         pagos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PagoRequest  true  "Datos del pago"
// @Success      201   {object}  envelope
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/pagos [post]
func (h *PagoHandler) Create(c *fiber.Ctx) error {
	var in dto.PagoRequest
	if err := bind(c, &in); err != nil {
		return err
	}
	out, err := h.svc.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return created(c, out)
}

func (h *PagoHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var in dto.PagoRequest
	if err := bind(c, &in); err != nil {
		return err
	}
	out, err := h.svc.Update(c.UserContext(), id, in)
	if err != nil {
		return err
	}
	return ok(c, out)
}

func (h *PagoHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return okMessage(c, "pago eliminado")
}
