package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/application/dto"
)

// SocioService operaciones de socios que expone la API.
type SocioService interface {
	Create(ctx context.Context, in dto.SocioRequest) (*dto.SocioResponse, error)
	GetByID(ctx context.Context, id int64) (*dto.SocioResponse, error)
	Update(ctx context.Context, id int64, in dto.SocioRequest) (*dto.SocioResponse, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, q dto.SocioListQuery) (*dto.Page[dto.SocioResponse], error)
	Options(ctx context.Context) ([]dto.SocioOptionResponse, error)
}

// SocioHandler maneja las peticiones HTTP de socios.
type SocioHandler struct {
	svc SocioService
}

// NewSocioHandler construye el handler.
func NewSocioHandler(svc SocioService) *SocioHandler {
	return &SocioHandler{svc: svc}
}

// List godoc
// @Summary      Listar socios
// @Tags         socios
// @Security     Bearer
// @Produce      json
// @Param        page    query  int     false  "Página"  default(1)
// @Param        limit   query  int     false  "Límite"  default(10)
// @Param        search  query  string  false  "Nombre, apellido, cédula o email"
// @Param        estado  query  string  false  "activo | inactivo | suspendido"
// @Success      200     {object}  envelope
// @Router       /api/socios [get]
func (h *SocioHandler) List(c *fiber.Ctx) error {
	out, err := h.svc.List(c.UserContext(), dto.SocioListQuery{
		PageQuery: pageQuery(c),
		Estado:    strings.TrimSpace(c.Query("estado")),
	})
	if err != nil {
		return err
	}
	return okPage(c, out)
}

// Options lista id y nombre de socios activos para selectores.
func (h *SocioHandler) Options(c *fiber.Ctx) error {
	out, err := h.svc.Options(c.UserContext())
	if err != nil {
		return err
	}
	return ok(c, out)
}

// GetByID godoc
// @Summary      Obtener socio
// @Tags         socios
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del socio"
// @Success      200  {object}  envelope
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/socios/{id} [get]
func (h *SocioHandler) GetByID(c *fiber.Ctx) error {
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
// @Summary      Registrar socio
// @Tags         socios
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SocioRequest  true  "Datos del socio"
// @Success      201   {object}  envelope
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/socios [post]
func (h *SocioHandler) Create(c *fiber.Ctx) error {
	var in dto.SocioRequest
	if err := bind(c, &in); err != nil {
		return err
	}
	out, err := h.svc.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return created(c, out)
}

// Update godoc
// @Summary      Actualizar socio
// @Tags         socios
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int               true  "ID del socio"
// @Param        body  body  dto.SocioRequest  true  "Datos del socio; version activa el control de concurrencia"
// @Success      200   {object}  envelope
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/socios/{id} [put]
func (h *SocioHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var in dto.SocioRequest
	if err := bind(c, &in); err != nil {
		return err
	}
	out, err := h.svc.Update(c.UserContext(), id, in)
	if err != nil {
		return err
	}
	return ok(c, out)
}

// Delete elimina el socio. Sus pagos, ventas y producción se conservan.
func (h *SocioHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return okMessage(c, "socio eliminado")
}
