package usecase

import (
	"context"
	"sort"
	"strings"

	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/application/dto"
	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/domain"
	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/domain/entity"
	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/domain/repository"
	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/pkg/logger"
)

// PagoTxRunner ejecuta fn con repos de pagos, socios y ventas atados a una misma transacción.
type PagoTxRunner interface {
	RunPagos(ctx context.Context, fn func(
		pagos repository.PagoRepository,
		socios repository.SocioRepository,
		ventas repository.VentaRepository,
	) error) error
}

// PagoUseCase CRUD de pagos. Toda escritura recalcula aportes_totales del socio
// y liquida la venta vinculada dentro de la misma transacción.
type PagoUseCase struct {
	repo     repository.PagoRepository
	txRunner PagoTxRunner
	log      *logger.Logger
}

// NewPagoUseCase construye el caso de uso.
func NewPagoUseCase(repo repository.PagoRepository, txRunner PagoTxRunner, log *logger.Logger) *PagoUseCase {
	return &PagoUseCase{repo: repo, txRunner: txRunner, log: log}
}

func (uc *PagoUseCase) Create(ctx context.Context, in dto.PagoRequest) (*dto.PagoResponse, error) {
	p, err := pagoFromRequest(in, &entity.Pago{})
	if err != nil {
		return nil, err
	}
	err = uc.txRunner.RunPagos(ctx, func(pagos repository.PagoRepository, socios repository.SocioRepository, ventas repository.VentaRepository) error {
		s, err := socios.LockForUpdate(ctx, p.SocioID)
		if err != nil {
			return err
		}
		if s == nil {
			return domain.NewValidationError("id_socio", "el socio no existe")
		}
		p.SocioNombre = s.NombreCompleto()
		if err := checkVenta(ctx, ventas, p); err != nil {
			return err
		}
		if err := pagos.Create(ctx, p); err != nil {
			return err
		}
		if err := socios.RecalculateAportes(ctx, p.SocioID); err != nil {
			return err
		}
		if !settlesVenta(p) {
			return nil
		}
		return uc.reconcileVenta(ctx, pagos, ventas, *p.VentaID, false)
	})
	if err != nil {
		return nil, err
	}
	return toPagoResponse(p), nil
}

func (uc *PagoUseCase) GetByID(ctx context.Context, id int64) (*dto.PagoResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return toPagoResponse(p), nil
}

func (uc *PagoUseCase) Update(ctx context.Context, id int64, in dto.PagoRequest) (*dto.PagoResponse, error) {
	var result *entity.Pago
	err := uc.txRunner.RunPagos(ctx, func(pagos repository.PagoRepository, socios repository.SocioRepository, ventas repository.VentaRepository) error {
		current, err := pagos.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNotFound
		}
		prevSocio := current.SocioID
		var prevVenta *int64
		if settlesVenta(current) {
			prevVenta = current.VentaID
		}
		p, err := pagoFromRequest(in, current)
		if err != nil {
			return err
		}

		// Bloqueo en orden de id para no cruzarse con otra transacción que toque los mismos socios.
		locked := map[int64]*entity.Socio{}
		for _, sid := range sortedIDs(prevSocio, p.SocioID) {
			s, err := socios.LockForUpdate(ctx, sid)
			if err != nil {
				return err
			}
			locked[sid] = s
		}
		s := locked[p.SocioID]
		if s == nil {
			return domain.NewValidationError("id_socio", "el socio no existe")
		}
		p.SocioNombre = s.NombreCompleto()
		if err := checkVenta(ctx, ventas, p); err != nil {
			return err
		}
		if err := pagos.Update(ctx, p, in.Version); err != nil {
			return err
		}
		for sid, ls := range locked {
			if ls == nil {
				continue
			}
			if err := socios.RecalculateAportes(ctx, sid); err != nil {
				return err
			}
		}
		// La venta anterior puede perder cobertura; la nueva puede quedar cubierta.
		var touched []int64
		if prevVenta != nil {
			touched = append(touched, *prevVenta)
		}
		if settlesVenta(p) {
			touched = append(touched, *p.VentaID)
		}
		for _, vid := range sortedIDs(touched...) {
			reopen := prevVenta != nil && *prevVenta == vid
			if err := uc.reconcileVenta(ctx, pagos, ventas, vid, reopen); err != nil {
				return err
			}
		}
		result = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toPagoResponse(result), nil
}

// Delete elimina el pago, recalcula los aportes del socio si aún existe
// y reabre la venta vinculada si deja de estar cubierta.
func (uc *PagoUseCase) Delete(ctx context.Context, id int64) error {
	return uc.txRunner.RunPagos(ctx, func(pagos repository.PagoRepository, socios repository.SocioRepository, ventas repository.VentaRepository) error {
		current, err := pagos.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNotFound
		}
		s, err := socios.LockForUpdate(ctx, current.SocioID)
		if err != nil {
			return err
		}
		ok, err := pagos.Delete(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrNotFound
		}
		if s != nil {
			if err := socios.RecalculateAportes(ctx, current.SocioID); err != nil {
				return err
			}
		}
		if !settlesVenta(current) {
			return nil
		}
		return uc.reconcileVenta(ctx, pagos, ventas, *current.VentaID, true)
	})
}

func (uc *PagoUseCase) List(ctx context.Context, q dto.PagoListQuery) (*dto.Page[dto.PagoResponse], error) {
	q.Normalize()
	from, until, err := dateRange(q.DateFrom, q.DateTo)
	if err != nil {
		return nil, err
	}
	list, total, err := uc.repo.List(ctx, repository.PagoFilter{
		ListParams: repository.ListParams{Search: q.Search, Limit: q.Limit, Offset: q.Offset()},
		SocioID:    q.IDSocio,
		Tipo:       q.Tipo,
		Estado:     q.Estado,
		From:       from,
		Until:      until,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.PagoResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toPagoResponse(p))
	}
	return pageOf(items, q.PageQuery, total), nil
}

// Statistics agregados por tipo y por estado en el rango.
func (uc *PagoUseCase) Statistics(ctx context.Context, q dto.DateRangeQuery) (*dto.PagoStatistics, error) {
	from, until, err := dateRange(q.DateFrom, q.DateTo)
	if err != nil {
		return nil, err
	}
	byTipo, err := uc.repo.StatsByTipo(ctx, from, until)
	if err != nil {
		return nil, err
	}
	byEstado, err := uc.repo.StatsByEstado(ctx, from, until)
	if err != nil {
		return nil, err
	}
	out := &dto.PagoStatistics{
		DateFrom:  q.DateFrom,
		DateTo:    q.DateTo,
		PorTipo:   make([]dto.GroupStat, 0, len(byTipo)),
		PorEstado: make([]dto.GroupStat, 0, len(byEstado)),
	}
	for _, r := range byTipo {
		out.PorTipo = append(out.PorTipo, dto.GroupStat{Key: r.Key, Count: r.Count, Amount: r.Amount})
	}
	for _, r := range byEstado {
		out.TotalPagos += r.Count
		out.PorEstado = append(out.PorEstado, dto.GroupStat{Key: r.Key, Count: r.Count, Amount: r.Amount})
		switch r.Key {
		case entity.PagoConfirmado:
			out.MontoConfirmado = r.Amount
		case entity.PagoPendiente:
			out.MontoPendiente = r.Amount
		}
	}
	return out, nil
}

// settlesVenta indica si el pago cuenta para cubrir el total de su venta.
func settlesVenta(p *entity.Pago) bool {
	return p.VentaID != nil && p.Tipo == entity.PagoVenta && p.Estado == entity.PagoConfirmado
}

// reconcileVenta ajusta el estado de la venta a la suma de sus pagos confirmados:
// pasa a pagado cuando la cubren. Con reopen, una venta pagada que deja de estar cubierta
// vuelve a entregado (o pendiente, sin fecha de entrega). Las canceladas no se tocan.
func (uc *PagoUseCase) reconcileVenta(ctx context.Context, pagos repository.PagoRepository, ventas repository.VentaRepository, ventaID int64, reopen bool) error {
	v, err := ventas.GetByID(ctx, ventaID)
	if err != nil {
		return err
	}
	if v == nil || v.Estado == entity.VentaCancelado {
		return nil
	}
	paid, err := pagos.ConfirmedForVenta(ctx, v.ID)
	if err != nil {
		return err
	}
	covered := !paid.LessThan(v.Total)
	switch {
	case covered && v.Estado != entity.VentaPagado:
		if err := ventas.UpdateEstado(ctx, v.ID, entity.VentaPagado); err != nil {
			return err
		}
		uc.log.Info().Int64("id_venta", v.ID).Str("pagado", paid.String()).Msg("venta liquidada por pagos confirmados")
	case reopen && !covered && v.Estado == entity.VentaPagado:
		reopened := entity.VentaPendiente
		if v.FechaEntrega != nil {
			reopened = entity.VentaEntregado
		}
		if err := ventas.UpdateEstado(ctx, v.ID, reopened); err != nil {
			return err
		}
		uc.log.Info().Int64("id_venta", v.ID).Str("pagado", paid.String()).Str("estado", reopened).Msg("venta reabierta, pagos insuficientes")
	}
	return nil
}

func checkVenta(ctx context.Context, ventas repository.VentaRepository, p *entity.Pago) error {
	if p.VentaID == nil {
		if p.Tipo == entity.PagoVenta {
			return domain.NewValidationError("id_venta", "es obligatorio para pagos de venta")
		}
		return nil
	}
	v, err := ventas.GetByID(ctx, *p.VentaID)
	if err != nil {
		return err
	}
	if v == nil {
		return domain.NewValidationError("id_venta", "la venta no existe")
	}
	return nil
}

func sortedIDs(ids ...int64) []int64 {
	seen := map[int64]bool{}
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func pagoFromRequest(in dto.PagoRequest, p *entity.Pago) (*entity.Pago, error) {
	var ve domain.ValidationError
	if in.IDSocio <= 0 {
		ve.Add("id_socio", "es obligatorio")
	}
	p.SocioID = in.IDSocio
	p.VentaID = in.IDVenta
	if p.VentaID != nil && *p.VentaID <= 0 {
		p.VentaID = nil
	}
	if !in.Monto.IsPositive() {
		ve.Add("monto", "debe ser mayor a 0")
	}
	p.Monto = in.Monto
	p.Tipo = strings.TrimSpace(in.Tipo)
	if !entity.ValidPagoTipo(p.Tipo) {
		ve.Add("tipo", "tipo inválido")
	}
	p.MetodoPago = strings.TrimSpace(in.MetodoPago)
	p.Estado = orDefault(in.Estado, orDefault(p.Estado, entity.PagoPendiente))
	if !entity.ValidPagoEstado(p.Estado) {
		ve.Add("estado", "estado inválido")
	}
	p.FechaPago = parseDate(&ve, "fecha_pago", in.FechaPago)
	p.Descripcion = strings.TrimSpace(in.Descripcion)
	if err := ve.OrNil(); err != nil {
		return nil, err
	}
	return p, nil
}

func toPagoResponse(p *entity.Pago) *dto.PagoResponse {
	return &dto.PagoResponse{
		IDPago:      p.ID,
		IDSocio:     p.SocioID,
		SocioNombre: p.SocioNombre,
		IDVenta:     p.VentaID,
		Monto:       p.Monto,
		Tipo:        p.Tipo,
		MetodoPago:  p.MetodoPago,
		Estado:      p.Estado,
		FechaPago:   dto.FormatDate(p.FechaPago),
		Descripcion: p.Descripcion,
		Version:     p.Version,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
