package usecase

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/application/dto"
	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/domain"
	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/domain/entity"
	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/domain/inventory"
	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/domain/repository"
)

// InsumoTxRunner ejecuta operaciones de stock dentro de una transacción.
type InsumoTxRunner interface {
	RunInsumos(ctx context.Context, fn func(insumos repository.InsumoRepository) error) error
}

// InsumoUseCase CRUD de insumos y reposición de stock.
type InsumoUseCase struct {
	repo     repository.InsumoRepository
	txRunner InsumoTxRunner
}

// NewInsumoUseCase construye el caso de uso.
func NewInsumoUseCase(repo repository.InsumoRepository, txRunner InsumoTxRunner) *InsumoUseCase {
	return &InsumoUseCase{repo: repo, txRunner: txRunner}
}

func (uc *InsumoUseCase) Create(ctx context.Context, in dto.InsumoRequest) (*dto.InsumoResponse, error) {
	i, err := insumoFromRequest(in, &entity.Insumo{})
	if err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, i); err != nil {
		return nil, err
	}
	return toInsumoResponse(i), nil
}

func (uc *InsumoUseCase) GetByID(ctx context.Context, id int64) (*dto.InsumoResponse, error) {
	i, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if i == nil {
		return nil, domain.ErrNotFound
	}
	return toInsumoResponse(i), nil
}

func (uc *InsumoUseCase) Update(ctx context.Context, id int64, in dto.InsumoRequest) (*dto.InsumoResponse, error) {
	current, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, domain.ErrNotFound
	}
	i, err := insumoFromRequest(in, current)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, i, in.Version); err != nil {
		return nil, err
	}
	return toInsumoResponse(i), nil
}

func (uc *InsumoUseCase) Delete(ctx context.Context, id int64) error {
	ok, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

func (uc *InsumoUseCase) List(ctx context.Context, q dto.InsumoListQuery) (*dto.Page[dto.InsumoResponse], error) {
	q.Normalize()
	list, total, err := uc.repo.List(ctx, repository.InsumoFilter{
		ListParams: repository.ListParams{Search: q.Search, Limit: q.Limit, Offset: q.Offset()},
		Tipo:       q.Tipo,
		Estado:     q.Estado,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.InsumoResponse, 0, len(list))
	for _, i := range list {
		items = append(items, *toInsumoResponse(i))
	}
	return pageOf(items, q.PageQuery, total), nil
}

// Restock suma stock al insumo y recalcula el precio unitario como promedio ponderado.
// La fila queda bloqueada durante la operación. Un insumo agotado vuelve a disponible.
func (uc *InsumoUseCase) Restock(ctx context.Context, id int64, in dto.ReposicionRequest) (*dto.InsumoResponse, error) {
	var ve domain.ValidationError
	if !in.Cantidad.IsPositive() {
		ve.Add("cantidad", "debe ser mayor a 0")
	}
	if !in.PrecioUnitario.IsPositive() {
		ve.Add("precio_unitario", "debe ser mayor a 0")
	}
	if err := ve.OrNil(); err != nil {
		return nil, err
	}

	var result *entity.Insumo
	err := uc.txRunner.RunInsumos(ctx, func(insumos repository.InsumoRepository) error {
		i, err := insumos.LockForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if i == nil {
			return domain.ErrNotFound
		}
		i.PrecioUnitario = inventory.WeightedUnitPrice(i.CantidadDisponible, i.PrecioUnitario, in.Cantidad, in.PrecioUnitario)
		i.CantidadDisponible = i.CantidadDisponible.Add(in.Cantidad)
		if i.Estado == entity.InsumoAgotado {
			i.Estado = entity.InsumoDisponible
		}
		if err := insumos.Update(ctx, i, 0); err != nil {
			return err
		}
		result = i
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toInsumoResponse(result), nil
}

func insumoFromRequest(in dto.InsumoRequest, i *entity.Insumo) (*entity.Insumo, error) {
	var ve domain.ValidationError
	i.Nombre = strings.TrimSpace(in.Nombre)
	if i.Nombre == "" {
		ve.Add("nombre", "es obligatorio")
	}
	i.Descripcion = strings.TrimSpace(in.Descripcion)
	i.Tipo = strings.TrimSpace(in.Tipo)
	if !entity.ValidInsumoTipo(i.Tipo) {
		ve.Add("tipo", "tipo inválido")
	}
	if in.CantidadDisponible.IsNegative() {
		ve.Add("cantidad_disponible", "no puede ser negativa")
	}
	i.CantidadDisponible = in.CantidadDisponible
	i.UnidadMedida = strings.TrimSpace(in.UnidadMedida)
	if i.UnidadMedida == "" {
		ve.Add("unidad_medida", "es obligatorio")
	}
	if !in.PrecioUnitario.IsPositive() {
		ve.Add("precio_unitario", "debe ser mayor a 0")
	}
	i.PrecioUnitario = in.PrecioUnitario
	i.Proveedor = strings.TrimSpace(in.Proveedor)
	def := i.FechaAdquisicion
	if def.IsZero() {
		def = today()
	}
	i.FechaAdquisicion = dateOr(&ve, "fecha_adquisicion", in.FechaAdquisicion, def)
	i.Estado = orDefault(in.Estado, orDefault(i.Estado, entity.InsumoDisponible))
	if !entity.ValidInsumoEstado(i.Estado) {
		ve.Add("estado", "estado inválido")
	}
	if err := ve.OrNil(); err != nil {
		return nil, err
	}
	// Sin stock deja de estar disponible.
	if i.CantidadDisponible.Equal(decimal.Zero) && i.Estado == entity.InsumoDisponible {
		i.Estado = entity.InsumoAgotado
	}
	return i, nil
}

func toInsumoResponse(i *entity.Insumo) *dto.InsumoResponse {
	return &dto.InsumoResponse{
		IDInsumo:           i.ID,
		Nombre:             i.Nombre,
		Descripcion:        i.Descripcion,
		Tipo:               i.Tipo,
		CantidadDisponible: i.CantidadDisponible,
		UnidadMedida:       i.UnidadMedida,
		PrecioUnitario:     i.PrecioUnitario,
		ValorTotal:         i.Valor().Round(2),
		Proveedor:          i.Proveedor,
		FechaAdquisicion:   dto.FormatDate(i.FechaAdquisicion),
		Estado:             i.Estado,
		Version:            i.Version,
		CreatedAt:          i.CreatedAt,
		UpdatedAt:          i.UpdatedAt,
	}
}
