package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/application/dto"
)

// InsumoService operaciones de insumos.
type InsumoService interface {
	Create(ctx context.Context, in dto.InsumoRequest) (*dto.InsumoResponse, error)
	GetByID(ctx context.Context, id int64) (*dto.InsumoResponse, error)
	Update(ctx context.Context, id int64, in dto.InsumoRequest) (*dto.InsumoResponse, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, q dto.InsumoListQuery) (*dto.Page[dto.InsumoResponse], error)
	Restock(ctx context.Context, id int64, in dto.ReposicionRequest) (*dto.InsumoResponse, error)
}

// InsumoHandler maneja las peticiones HTTP de insumos.
type InsumoHandler struct {
	svc InsumoService
}

// NewInsumoHandler construye el handler.
func NewInsumoHandler(svc InsumoService) *InsumoHandler {
	return &InsumoHandler{svc: svc}
}

func (h *InsumoHandler) List(c *fiber.Ctx) error {
	out, err := h.svc.List(c.UserContext(), dto.InsumoListQuery{
		PageQuery: pageQuery(c),
		Tipo:      strings.TrimSpace(c.Query("tipo")),
		Estado:    strings.TrimSpace(c.Query("estado")),
	})
	if err != nil {
		return err
	}
	return okPage(c, out)
}

func (h *InsumoHandler) GetByID(c *fiber.Ctx) error {
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

func (h *InsumoHandler) Create(c *fiber.Ctx) error {
	var in dto.InsumoRequest
	if err := bind(c, &in); err != nil {
		return err
	}
	out, err := h.svc.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return created(c, out)
}

func (h *InsumoHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var in dto.InsumoRequest
	if err := bind(c, &in); err != nil {
		return err
	}
	out, err := h.svc.Update(c.UserContext(), id, in)
	if err != nil {
		return err
	}
	return ok(c, out)
}

func (h *InsumoHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return okMessage(c, "insumo eliminado")
}

// Restock godoc
// @Summary      Reponer stock de un insumo
// @Description  Suma la cantidad y recalcula el precio unitario como promedio ponderado.
// @Tags         insumos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                    true  "ID del insumo"
// @Param        body  body  dto.ReposicionRequest  true  "cantidad y precio_unitario de la entrada"
// @Success      200   {object}  envelope
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/insumos/{id}/reposicion [post]
func (h *InsumoHandler) Restock(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var in dto.ReposicionRequest
	if err := bind(c, &in); err != nil {
		return err
	}
	out, err := h.svc.Restock(c.UserContext(), id, in)
	if err != nil {
		return err
	}
	return ok(c, out)
}
