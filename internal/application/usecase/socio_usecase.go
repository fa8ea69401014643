package usecase

import (
	"context"
	"strings"

	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/application/dto"
	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/domain"
	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/domain/entity"
	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/domain/repository"
)

// SocioUseCase casos de uso CRUD para socios.
type SocioUseCase struct {
	repo repository.SocioRepository
}

// NewSocioUseCase construye el caso de uso.
func NewSocioUseCase(repo repository.SocioRepository) *SocioUseCase {
	return &SocioUseCase{repo: repo}
}

// Create registra un socio. La cédula es única.
func (uc *SocioUseCase) Create(ctx context.Context, in dto.SocioRequest) (*dto.SocioResponse, error) {
	s, err := socioFromRequest(in, &entity.Socio{})
	if err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetByCedula(ctx, s.Cedula)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.NewValidationError("cedula", "ya existe un socio con esta cédula")
	}
	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, err
	}
	return toSocioResponse(s), nil
}

// GetByID obtiene un socio; ErrNotFound si no existe.
func (uc *SocioUseCase) GetByID(ctx context.Context, id int64) (*dto.SocioResponse, error) {
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	return toSocioResponse(s), nil
}

// Update reemplaza los datos editables. Version > 0 activa el bloqueo optimista.
func (uc *SocioUseCase) Update(ctx context.Context, id int64, in dto.SocioRequest) (*dto.SocioResponse, error) {
	current, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, domain.ErrNotFound
	}
	s, err := socioFromRequest(in, current)
	if err != nil {
		return nil, err
	}
	if other, err := uc.repo.GetByCedula(ctx, s.Cedula); err != nil {
		return nil, err
	} else if other != nil && other.ID != id {
		return nil, domain.NewValidationError("cedula", "ya existe un socio con esta cédula")
	}
	if err := uc.repo.Update(ctx, s, in.Version); err != nil {
		return nil, err
	}
	return toSocioResponse(s), nil
}

// Delete elimina el socio sin cascada.
func (uc *SocioUseCase) Delete(ctx context.Context, id int64) error {
	ok, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

// List lista socios paginados.
func (uc *SocioUseCase) List(ctx context.Context, q dto.SocioListQuery) (*dto.Page[dto.SocioResponse], error) {
	q.Normalize()
	if q.Estado != "" && !entity.ValidSocioEstado(q.Estado) {
		return nil, domain.NewValidationError("estado", "estado inválido")
	}
	list, total, err := uc.repo.List(ctx, repository.SocioFilter{
		ListParams: repository.ListParams{Search: q.Search, Limit: q.Limit, Offset: q.Offset()},
		Estado:     q.Estado,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.SocioResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSocioResponse(s))
	}
	return pageOf(items, q.PageQuery, total), nil
}

// Options lista id y nombre de socios activos.
func (uc *SocioUseCase) Options(ctx context.Context) ([]dto.SocioOptionResponse, error) {
	opts, err := uc.repo.Options(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SocioOptionResponse, 0, len(opts))
	for _, o := range opts {
		out = append(out, dto.SocioOptionResponse{IDSocio: o.ID, Nombre: o.Nombre})
	}
	return out, nil
}

func socioFromRequest(in dto.SocioRequest, s *entity.Socio) (*entity.Socio, error) {
	var ve domain.ValidationError
	s.Nombre = strings.TrimSpace(in.Nombre)
	s.Apellido = strings.TrimSpace(in.Apellido)
	s.Cedula = strings.TrimSpace(in.Cedula)
	if s.Nombre == "" {
		ve.Add("nombre", "es obligatorio")
	}
	if s.Apellido == "" {
		ve.Add("apellido", "es obligatorio")
	}
	if s.Cedula == "" {
		ve.Add("cedula", "es obligatorio")
	}
	s.Telefono = strings.TrimSpace(in.Telefono)
	s.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if s.Email != "" && !strings.Contains(s.Email, "@") {
		ve.Add("email", "email inválido")
	}
	s.Direccion = strings.TrimSpace(in.Direccion)
	def := s.FechaIngreso
	if def.IsZero() {
		def = today()
	}
	s.FechaIngreso = dateOr(&ve, "fecha_ingreso", in.FechaIngreso, def)
	s.Estado = orDefault(in.Estado, orDefault(s.Estado, entity.SocioActivo))
	if !entity.ValidSocioEstado(s.Estado) {
		ve.Add("estado", "estado inválido")
	}
	if err := ve.OrNil(); err != nil {
		return nil, err
	}
	return s, nil
}

func toSocioResponse(s *entity.Socio) *dto.SocioResponse {
	return &dto.SocioResponse{
		IDSocio:          s.ID,
		Nombre:           s.Nombre,
		Apellido:         s.Apellido,
		NombreCompleto:   s.NombreCompleto(),
		Cedula:           s.Cedula,
		Telefono:         s.Telefono,
		Email:            s.Email,
		Direccion:        s.Direccion,
		FechaIngreso:     dto.FormatDate(s.FechaIngreso),
		Estado:           s.Estado,
		AportesTotales:   s.AportesTotales,
		DeudasPendientes: s.DeudasPendientes,
		Version:          s.Version,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}
}
