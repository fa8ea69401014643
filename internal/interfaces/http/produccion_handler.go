package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/application/dto"
)

// ProduccionService operaciones de producción.
type ProduccionService interface {
	Create(ctx context.Context, in dto.ProduccionRequest) (*dto.ProduccionResponse, error)
	GetByID(ctx context.Context, id int64) (*dto.ProduccionResponse, error)
	Update(ctx context.Context, id int64, in dto.ProduccionRequest) (*dto.ProduccionResponse, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, q dto.ProduccionListQuery) (*dto.Page[dto.ProduccionResponse], error)
}

// ProduccionHandler maneja las peticiones HTTP de producción.
type ProduccionHandler struct {
	svc ProduccionService
}

// NewProduccionHandler construye el handler.
func NewProduccionHandler(svc ProduccionService) *ProduccionHandler {
	return &ProduccionHandler{svc: svc}
}

// List filtra por socio, calidad y rango de fecha de cosecha.
func (h *ProduccionHandler) List(c *fiber.Ctx) error {
	r := dateRangeQuery(c)
	out, err := h.svc.List(c.UserContext(), dto.ProduccionListQuery{
		PageQuery: pageQuery(c),
		IDSocio:   queryInt64(c, "id_socio", "socio"),
		Calidad:   strings.TrimSpace(c.Query("calidad")),
		DateFrom:  r.DateFrom,
		DateTo:    r.DateTo,
	})
	if err != nil {
		return err
	}
	return okPage(c, out)
}

func (h *ProduccionHandler) GetByID(c *fiber.Ctx) error {
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

func (h *ProduccionHandler) Create(c *fiber.Ctx) error {
	var in dto.ProduccionRequest
	if err := bind(c, &in); err != nil {
		return err
	}
	out, err := h.svc.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return created(c, out)
}

func (h *ProduccionHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var in dto.ProduccionRequest
	if err := bind(c, &in); err != nil {
		return err
	}
	out, err := h.svc.Update(c.UserContext(), id, in)
	if err != nil {
		return err
	}
	return ok(c, out)
}

func (h *ProduccionHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return okMessage(c, "registro de producción eliminado")
}
