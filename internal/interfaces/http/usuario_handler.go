package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/application/dto"
)

// UsuarioService administración de cuentas.
type UsuarioService interface {
	Create(ctx context.Context, in dto.UsuarioRequest) (*dto.UsuarioResponse, error)
	GetByID(ctx context.Context, id int64) (*dto.UsuarioResponse, error)
	Update(ctx context.Context, id int64, in dto.UsuarioRequest) (*dto.UsuarioResponse, error)
	Delete(ctx context.Context, id, currentUserID int64) error
	List(ctx context.Context, q dto.UsuarioListQuery) (*dto.Page[dto.UsuarioResponse], error)
}

// UsuarioHandler rutas de administración de usuarios (solo admin).
type UsuarioHandler struct {
	svc UsuarioService
}

// NewUsuarioHandler construye el handler.
func NewUsuarioHandler(svc UsuarioService) *UsuarioHandler {
	return &UsuarioHandler{svc: svc}
}

func (h *UsuarioHandler) List(c *fiber.Ctx) error {
	out, err := h.svc.List(c.UserContext(), dto.UsuarioListQuery{
		PageQuery: pageQuery(c),
		Rol:       strings.TrimSpace(c.Query("rol")),
		Estado:    strings.TrimSpace(c.Query("estado")),
	})
	if err != nil {
		return err
	}
	return okPage(c, out)
}

func (h *UsuarioHandler) GetByID(c *fiber.Ctx) error {
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

func (h *UsuarioHandler) Create(c *fiber.Ctx) error {
	var in dto.UsuarioRequest
	if err := bind(c, &in); err != nil {
		return err
	}
	out, err := h.svc.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return created(c, out)
}

func (h *UsuarioHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var in dto.UsuarioRequest
	if err := bind(c, &in); err != nil {
		return err
	}
	out, err := h.svc.Update(c.UserContext(), id, in)
	if err != nil {
		return err
	}
	return ok(c, out)
}

// Delete un admin no puede eliminar su propia cuenta.
func (h *UsuarioHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.UserContext(), id, GetUserID(c)); err != nil {
		return err
	}
	return okMessage(c, "usuario eliminado")
}
