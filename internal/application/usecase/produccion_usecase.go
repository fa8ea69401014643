package usecase

import (
	"context"
	"strings"

	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/application/dto"
	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/domain"
	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/domain/entity"
	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/domain/repository"
)

// ProduccionUseCase CRUD de registros de cosecha.
type ProduccionUseCase struct {
	repo   repository.ProduccionRepository
	socios repository.SocioRepository
}

// NewProduccionUseCase construye el caso de uso. socios valida que el socio exista al registrar.
func NewProduccionUseCase(repo repository.ProduccionRepository, socios repository.SocioRepository) *ProduccionUseCase {
	return &ProduccionUseCase{repo: repo, socios: socios}
}

func (uc *ProduccionUseCase) Create(ctx context.Context, in dto.ProduccionRequest) (*dto.ProduccionResponse, error) {
	p, err := produccionFromRequest(in, &entity.Produccion{})
	if err != nil {
		return nil, err
	}
	if err := uc.attachSocio(ctx, p); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return toProduccionResponse(p), nil
}

func (uc *ProduccionUseCase) GetByID(ctx context.Context, id int64) (*dto.ProduccionResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return toProduccionResponse(p), nil
}

func (uc *ProduccionUseCase) Update(ctx context.Context, id int64, in dto.ProduccionRequest) (*dto.ProduccionResponse, error) {
	current, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, domain.ErrNotFound
	}
	prevSocio := current.SocioID
	p, err := produccionFromRequest(in, current)
	if err != nil {
		return nil, err
	}
	// Un registro huérfano puede editarse sin reasignarlo.
	if p.SocioID != prevSocio {
		if err := uc.attachSocio(ctx, p); err != nil {
			return nil, err
		}
	}
	if err := uc.repo.Update(ctx, p, in.Version); err != nil {
		return nil, err
	}
	return toProduccionResponse(p), nil
}

func (uc *ProduccionUseCase) Delete(ctx context.Context, id int64) error {
	ok, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

func (uc *ProduccionUseCase) List(ctx context.Context, q dto.ProduccionListQuery) (*dto.Page[dto.ProduccionResponse], error) {
	q.Normalize()
	from, until, err := dateRange(q.DateFrom, q.DateTo)
	if err != nil {
		return nil, err
	}
	list, total, err := uc.repo.List(ctx, repository.ProduccionFilter{
		ListParams: repository.ListParams{Search: q.Search, Limit: q.Limit, Offset: q.Offset()},
		SocioID:    q.IDSocio,
		Calidad:    q.Calidad,
		From:       from,
		Until:      until,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProduccionResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProduccionResponse(p))
	}
	return pageOf(items, q.PageQuery, total), nil
}

func (uc *ProduccionUseCase) attachSocio(ctx context.Context, p *entity.Produccion) error {
	s, err := uc.socios.GetByID(ctx, p.SocioID)
	if err != nil {
		return err
	}
	if s == nil {
		return domain.NewValidationError("id_socio", "el socio no existe")
	}
	p.SocioNombre = s.NombreCompleto()
	return nil
}

func produccionFromRequest(in dto.ProduccionRequest, p *entity.Produccion) (*entity.Produccion, error) {
	var ve domain.ValidationError
	if in.IDSocio <= 0 {
		ve.Add("id_socio", "es obligatorio")
	}
	p.SocioID = in.IDSocio
	p.Cultivo = strings.TrimSpace(in.Cultivo)
	if p.Cultivo == "" {
		ve.Add("cultivo", "es obligatorio")
	}
	p.Variedad = strings.TrimSpace(in.Variedad)
	if !in.Cantidad.IsPositive() {
		ve.Add("cantidad", "debe ser mayor a 0")
	}
	p.Cantidad = in.Cantidad
	p.Unidad = strings.TrimSpace(in.Unidad)
	if p.Unidad == "" {
		ve.Add("unidad", "es obligatorio")
	}
	p.FechaCosecha = parseDate(&ve, "fecha_cosecha", in.FechaCosecha)
	p.Calidad = orDefault(in.Calidad, entity.CalidadPrimera)
	if !entity.ValidCalidad(p.Calidad) {
		ve.Add("calidad", "calidad inválida")
	}
	p.Destino = strings.TrimSpace(in.Destino)
	if in.PrecioEstimado.IsNegative() {
		ve.Add("precio_estimado", "no puede ser negativo")
	}
	p.PrecioEstimado = in.PrecioEstimado
	p.Observaciones = strings.TrimSpace(in.Observaciones)
	if err := ve.OrNil(); err != nil {
		return nil, err
	}
	return p, nil
}

func toProduccionResponse(p *entity.Produccion) *dto.ProduccionResponse {
	return &dto.ProduccionResponse{
		IDProduccion:   p.ID,
		IDSocio:        p.SocioID,
		SocioNombre:    p.SocioNombre,
		Cultivo:        p.Cultivo,
		Variedad:       p.Variedad,
		Cantidad:       p.Cantidad,
		Unidad:         p.Unidad,
		FechaCosecha:   dto.FormatDate(p.FechaCosecha),
		Calidad:        p.Calidad,
		Destino:        p.Destino,
		PrecioEstimado: p.PrecioEstimado,
		ValorEstimado:  p.Cantidad.Mul(p.PrecioEstimado).Round(2),
		Observaciones:  p.Observaciones,
		Version:        p.Version,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
