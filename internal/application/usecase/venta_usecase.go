package usecase

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/application/dto"
	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/domain"
	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/domain/entity"
	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/domain/repository"
)

// VentaUseCase CRUD y estadísticas de ventas. El total siempre lo calcula el servidor.
type VentaUseCase struct {
	repo   repository.VentaRepository
	socios repository.SocioRepository
}

// NewVentaUseCase construye el caso de uso.
func NewVentaUseCase(repo repository.VentaRepository, socios repository.SocioRepository) *VentaUseCase {
	return &VentaUseCase{repo: repo, socios: socios}
}

func (uc *VentaUseCase) Create(ctx context.Context, in dto.VentaRequest) (*dto.VentaResponse, error) {
	v, err := ventaFromRequest(in, &entity.Venta{})
	if err != nil {
		return nil, err
	}
	if err := uc.attachSocio(ctx, v); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, v); err != nil {
		return nil, err
	}
	return toVentaResponse(v), nil
}

func (uc *VentaUseCase) GetByID(ctx context.Context, id int64) (*dto.VentaResponse, error) {
	v, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, domain.ErrNotFound
	}
	return toVentaResponse(v), nil
}

func (uc *VentaUseCase) Update(ctx context.Context, id int64, in dto.VentaRequest) (*dto.VentaResponse, error) {
	current, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, domain.ErrNotFound
	}
	prevSocio := current.SocioID
	v, err := ventaFromRequest(in, current)
	if err != nil {
		return nil, err
	}
	if !sameSocio(prevSocio, v.SocioID) {
		if err := uc.attachSocio(ctx, v); err != nil {
			return nil, err
		}
	}
	if err := uc.repo.Update(ctx, v, in.Version); err != nil {
		return nil, err
	}
	return toVentaResponse(v), nil
}

func (uc *VentaUseCase) Delete(ctx context.Context, id int64) error {
	ok, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

func (uc *VentaUseCase) List(ctx context.Context, q dto.VentaListQuery) (*dto.Page[dto.VentaResponse], error) {
	q.Normalize()
	from, until, err := dateRange(q.DateFrom, q.DateTo)
	if err != nil {
		return nil, err
	}
	list, total, err := uc.repo.List(ctx, repository.VentaFilter{
		ListParams: repository.ListParams{Search: q.Search, Limit: q.Limit, Offset: q.Offset()},
		SocioID:    q.IDSocio,
		Estado:     q.Estado,
		From:       from,
		Until:      until,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.VentaResponse, 0, len(list))
	for _, v := range list {
		items = append(items, *toVentaResponse(v))
	}
	return pageOf(items, q.PageQuery, total), nil
}

// Statistics conteos y montos por estado. MontoTotal excluye canceladas.
func (uc *VentaUseCase) Statistics(ctx context.Context, q dto.DateRangeQuery) (*dto.VentaStatistics, error) {
	from, until, err := dateRange(q.DateFrom, q.DateTo)
	if err != nil {
		return nil, err
	}
	rows, err := uc.repo.StatsByEstado(ctx, from, until)
	if err != nil {
		return nil, err
	}
	out := &dto.VentaStatistics{
		DateFrom:  q.DateFrom,
		DateTo:    q.DateTo,
		PorEstado: make([]dto.GroupStat, 0, len(rows)),
	}
	countable := 0
	for _, r := range rows {
		out.TotalVentas += r.Count
		out.PorEstado = append(out.PorEstado, dto.GroupStat{Key: r.Key, Count: r.Count, Amount: r.Amount})
		if r.Key != entity.VentaCancelado {
			out.MontoTotal = out.MontoTotal.Add(r.Amount)
			countable += r.Count
		}
		if r.Key == entity.VentaPendiente {
			out.Pendientes = r.Count
		}
	}
	if countable > 0 {
		out.TicketPromedio = out.MontoTotal.Div(decimal.NewFromInt(int64(countable))).Round(2)
	}
	return out, nil
}

func (uc *VentaUseCase) attachSocio(ctx context.Context, v *entity.Venta) error {
	v.SocioNombre = ""
	if v.SocioID == nil {
		return nil
	}
	s, err := uc.socios.GetByID(ctx, *v.SocioID)
	if err != nil {
		return err
	}
	if s == nil {
		return domain.NewValidationError("id_socio", "el socio no existe")
	}
	v.SocioNombre = s.NombreCompleto()
	return nil
}

func sameSocio(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func ventaFromRequest(in dto.VentaRequest, v *entity.Venta) (*entity.Venta, error) {
	var ve domain.ValidationError
	v.SocioID = in.IDSocio
	if v.SocioID != nil && *v.SocioID <= 0 {
		v.SocioID = nil
	}
	v.Producto = strings.TrimSpace(in.Producto)
	if v.Producto == "" {
		ve.Add("producto", "es obligatorio")
	}
	if !in.Cantidad.IsPositive() {
		ve.Add("cantidad", "debe ser mayor a 0")
	}
	if !in.PrecioUnitario.IsPositive() {
		ve.Add("precio_unitario", "debe ser mayor a 0")
	}
	v.Cantidad = in.Cantidad
	v.PrecioUnitario = in.PrecioUnitario
	v.Cliente = strings.TrimSpace(in.Cliente)
	v.DireccionEntrega = strings.TrimSpace(in.DireccionEntrega)
	v.FechaVenta = parseDate(&ve, "fecha_venta", in.FechaVenta)
	v.FechaEntrega = parseOptionalDate(&ve, "fecha_entrega", in.FechaEntrega)
	if v.FechaEntrega != nil && !v.FechaVenta.IsZero() && v.FechaEntrega.Before(v.FechaVenta) {
		ve.Add("fecha_entrega", "no puede ser anterior a la fecha de venta")
	}
	v.MetodoPago = strings.TrimSpace(in.MetodoPago)
	v.Estado = orDefault(in.Estado, orDefault(v.Estado, entity.VentaPendiente))
	if !entity.ValidVentaEstado(v.Estado) {
		ve.Add("estado", "estado inválido")
	}
	v.Observaciones = strings.TrimSpace(in.Observaciones)
	if err := ve.OrNil(); err != nil {
		return nil, err
	}
	v.ComputeTotal()
	return v, nil
}

func toVentaResponse(v *entity.Venta) *dto.VentaResponse {
	return &dto.VentaResponse{
		IDVenta:          v.ID,
		IDSocio:          v.SocioID,
		SocioNombre:      v.SocioNombre,
		Producto:         v.Producto,
		Cantidad:         v.Cantidad,
		PrecioUnitario:   v.PrecioUnitario,
		Total:            v.Total,
		Cliente:          v.Cliente,
		DireccionEntrega: v.DireccionEntrega,
		FechaVenta:       dto.FormatDate(v.FechaVenta),
		FechaEntrega:     dto.FormatDatePtr(v.FechaEntrega),
		MetodoPago:       v.MetodoPago,
		Estado:           v.Estado,
		Observaciones:    v.Observaciones,
		Version:          v.Version,
		CreatedAt:        v.CreatedAt,
		UpdatedAt:        v.UpdatedAt,
	}
}
