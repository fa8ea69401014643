package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/domain"
	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/domain/entity"
	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/domain/repository"
)

// Repositorios en memoria para los tests de casos de uso.
// Update con expectedVersion > 0 distinta de la almacenada devuelve ErrConflict, igual que Postgres.

type memSocios struct {
	rows   map[int64]*entity.Socio
	pagos  *memPagos
	nextID int64
	locked []int64
}

var _ repository.SocioRepository = (*memSocios)(nil)

func newMemSocios(socios ...*entity.Socio) *memSocios {
	m := &memSocios{rows: map[int64]*entity.Socio{}}
	for _, s := range socios {
		m.rows[s.ID] = s
		if s.ID > m.nextID {
			m.nextID = s.ID
		}
	}
	return m
}

func (m *memSocios) Create(_ context.Context, s *entity.Socio) error {
	m.nextID++
	s.ID, s.Version = m.nextID, 1
	cp := *s
	m.rows[s.ID] = &cp
	return nil
}

func (m *memSocios) GetByID(_ context.Context, id int64) (*entity.Socio, error) {
	s, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (m *memSocios) GetByCedula(_ context.Context, cedula string) (*entity.Socio, error) {
	for _, s := range m.rows {
		if s.Cedula == cedula {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memSocios) Update(_ context.Context, s *entity.Socio, expectedVersion int) error {
	cur, ok := m.rows[s.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if expectedVersion > 0 && cur.Version != expectedVersion {
		return domain.ErrConflict
	}
	s.Version = cur.Version + 1
	cp := *s
	m.rows[s.ID] = &cp
	return nil
}

func (m *memSocios) Delete(_ context.Context, id int64) (bool, error) {
	_, ok := m.rows[id]
	delete(m.rows, id)
	return ok, nil
}

func (m *memSocios) List(context.Context, repository.SocioFilter) ([]*entity.Socio, int, error) {
	out := make([]*entity.Socio, 0, len(m.rows))
	for _, s := range m.rows {
		out = append(out, s)
	}
	return out, len(out), nil
}

func (m *memSocios) Options(context.Context) ([]repository.SocioOption, error) {
	return nil, nil
}

func (m *memSocios) LockForUpdate(ctx context.Context, id int64) (*entity.Socio, error) {
	m.locked = append(m.locked, id)
	return m.GetByID(ctx, id)
}

func (m *memSocios) RecalculateAportes(_ context.Context, id int64) error {
	s, ok := m.rows[id]
	if !ok {
		return nil
	}
	total := decimal.Zero
	if m.pagos != nil {
		for _, p := range m.pagos.rows {
			if p.SocioID == id && p.EsAporte() && p.Estado == entity.PagoConfirmado {
				total = total.Add(p.Monto)
			}
		}
	}
	s.AportesTotales = total
	return nil
}

type memVentas struct {
	rows   map[int64]*entity.Venta
	nextID int64
}

var _ repository.VentaRepository = (*memVentas)(nil)

func newMemVentas(ventas ...*entity.Venta) *memVentas {
	m := &memVentas{rows: map[int64]*entity.Venta{}}
	for _, v := range ventas {
		m.rows[v.ID] = v
		if v.ID > m.nextID {
			m.nextID = v.ID
		}
	}
	return m
}

func (m *memVentas) Create(_ context.Context, v *entity.Venta) error {
	m.nextID++
	v.ID, v.Version = m.nextID, 1
	cp := *v
	m.rows[v.ID] = &cp
	return nil
}

func (m *memVentas) GetByID(_ context.Context, id int64) (*entity.Venta, error) {
	v, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *v
	return &cp, nil
}

func (m *memVentas) Update(_ context.Context, v *entity.Venta, expectedVersion int) error {
	cur, ok := m.rows[v.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if expectedVersion > 0 && cur.Version != expectedVersion {
		return domain.ErrConflict
	}
	v.Version = cur.Version + 1
	cp := *v
	m.rows[v.ID] = &cp
	return nil
}

func (m *memVentas) UpdateEstado(_ context.Context, id int64, estado string) error {
	v, ok := m.rows[id]
	if !ok {
		return domain.ErrNotFound
	}
	v.Estado = estado
	v.Version++
	return nil
}

func (m *memVentas) Delete(_ context.Context, id int64) (bool, error) {
	_, ok := m.rows[id]
	delete(m.rows, id)
	return ok, nil
}

func (m *memVentas) List(context.Context, repository.VentaFilter) ([]*entity.Venta, int, error) {
	out := make([]*entity.Venta, 0, len(m.rows))
	for _, v := range m.rows {
		out = append(out, v)
	}
	return out, len(out), nil
}

func (m *memVentas) StatsByEstado(context.Context, time.Time, time.Time) ([]repository.CountAmount, error) {
	acc := map[string]*repository.CountAmount{}
	var keys []string
	for _, v := range m.rows {
		ca, ok := acc[v.Estado]
		if !ok {
			ca = &repository.CountAmount{Key: v.Estado, Amount: decimal.Zero}
			acc[v.Estado] = ca
			keys = append(keys, v.Estado)
		}
		ca.Count++
		ca.Amount = ca.Amount.Add(v.Total)
	}
	out := make([]repository.CountAmount, 0, len(keys))
	for _, k := range keys {
		out = append(out, *acc[k])
	}
	return out, nil
}

type memPagos struct {
	rows   map[int64]*entity.Pago
	nextID int64
}

var _ repository.PagoRepository = (*memPagos)(nil)

func newMemPagos() *memPagos { return &memPagos{rows: map[int64]*entity.Pago{}} }

func (m *memPagos) Create(_ context.Context, p *entity.Pago) error {
	m.nextID++
	p.ID, p.Version = m.nextID, 1
	cp := *p
	m.rows[p.ID] = &cp
	return nil
}

func (m *memPagos) GetByID(_ context.Context, id int64) (*entity.Pago, error) {
	p, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (m *memPagos) Update(_ context.Context, p *entity.Pago, expectedVersion int) error {
	cur, ok := m.rows[p.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if expectedVersion > 0 && cur.Version != expectedVersion {
		return domain.ErrConflict
	}
	p.Version = cur.Version + 1
	cp := *p
	m.rows[p.ID] = &cp
	return nil
}

func (m *memPagos) Delete(_ context.Context, id int64) (bool, error) {
	_, ok := m.rows[id]
	delete(m.rows, id)
	return ok, nil
}

func (m *memPagos) List(context.Context, repository.PagoFilter) ([]*entity.Pago, int, error) {
	out := make([]*entity.Pago, 0, len(m.rows))
	for _, p := range m.rows {
		out = append(out, p)
	}
	return out, len(out), nil
}

func (m *memPagos) ConfirmedForVenta(_ context.Context, ventaID int64) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, p := range m.rows {
		if p.VentaID != nil && *p.VentaID == ventaID && p.Estado == entity.PagoConfirmado {
			total = total.Add(p.Monto)
		}
	}
	return total, nil
}

func (m *memPagos) StatsByTipo(context.Context, time.Time, time.Time) ([]repository.CountAmount, error) {
	return nil, nil
}

func (m *memPagos) StatsByEstado(context.Context, time.Time, time.Time) ([]repository.CountAmount, error) {
	return nil, nil
}

// memTx ejecuta fn directamente sobre los repos en memoria; un error no revierte nada.
type memTx struct {
	pagos   *memPagos
	socios  *memSocios
	ventas  *memVentas
	insumos *memInsumos
	runs    int
}

func (t *memTx) RunPagos(_ context.Context, fn func(repository.PagoRepository, repository.SocioRepository, repository.VentaRepository) error) error {
	t.runs++
	return fn(t.pagos, t.socios, t.ventas)
}

func (t *memTx) RunInsumos(_ context.Context, fn func(repository.InsumoRepository) error) error {
	t.runs++
	return fn(t.insumos)
}

type memInsumos struct {
	rows   map[int64]*entity.Insumo
	nextID int64
	locks  int
}

var _ repository.InsumoRepository = (*memInsumos)(nil)

func newMemInsumos(insumos ...*entity.Insumo) *memInsumos {
	m := &memInsumos{rows: map[int64]*entity.Insumo{}}
	for _, i := range insumos {
		m.rows[i.ID] = i
		if i.ID > m.nextID {
			m.nextID = i.ID
		}
	}
	return m
}

func (m *memInsumos) Create(_ context.Context, i *entity.Insumo) error {
	m.nextID++
	i.ID, i.Version = m.nextID, 1
	cp := *i
	m.rows[i.ID] = &cp
	return nil
}

func (m *memInsumos) GetByID(_ context.Context, id int64) (*entity.Insumo, error) {
	i, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *i
	return &cp, nil
}

func (m *memInsumos) Update(_ context.Context, i *entity.Insumo, expectedVersion int) error {
	cur, ok := m.rows[i.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if expectedVersion > 0 && cur.Version != expectedVersion {
		return domain.ErrConflict
	}
	i.Version = cur.Version + 1
	cp := *i
	m.rows[i.ID] = &cp
	return nil
}

func (m *memInsumos) Delete(_ context.Context, id int64) (bool, error) {
	_, ok := m.rows[id]
	delete(m.rows, id)
	return ok, nil
}

func (m *memInsumos) List(context.Context, repository.InsumoFilter) ([]*entity.Insumo, int, error) {
	out := make([]*entity.Insumo, 0, len(m.rows))
	for _, i := range m.rows {
		out = append(out, i)
	}
	return out, len(out), nil
}

func (m *memInsumos) LockForUpdate(ctx context.Context, id int64) (*entity.Insumo, error) {
	m.locks++
	return m.GetByID(ctx, id)
}

type memUsuarios struct {
	rows    map[int64]*entity.Usuario
	nextID  int64
	touched []int64
}

var _ repository.UsuarioRepository = (*memUsuarios)(nil)

func newMemUsuarios(us ...*entity.Usuario) *memUsuarios {
	m := &memUsuarios{rows: map[int64]*entity.Usuario{}}
	for _, u := range us {
		m.rows[u.ID] = u
		if u.ID > m.nextID {
			m.nextID = u.ID
		}
	}
	return m
}

func (m *memUsuarios) Create(_ context.Context, u *entity.Usuario) error {
	m.nextID++
	u.ID, u.Version = m.nextID, 1
	cp := *u
	m.rows[u.ID] = &cp
	return nil
}

func (m *memUsuarios) GetByID(_ context.Context, id int64) (*entity.Usuario, error) {
	u, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (m *memUsuarios) GetByEmail(_ context.Context, email string) (*entity.Usuario, error) {
	for _, u := range m.rows {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memUsuarios) Update(_ context.Context, u *entity.Usuario, expectedVersion int) error {
	cur, ok := m.rows[u.ID]
	if !ok {
		return domain.ErrUserNotFound
	}
	if expectedVersion > 0 && cur.Version != expectedVersion {
		return domain.ErrConflict
	}
	u.Version = cur.Version + 1
	cp := *u
	m.rows[u.ID] = &cp
	return nil
}

func (m *memUsuarios) TouchLastAccess(_ context.Context, id int64, at time.Time) error {
	m.touched = append(m.touched, id)
	if u, ok := m.rows[id]; ok {
		u.UltimoAcceso = &at
	}
	return nil
}

func (m *memUsuarios) Delete(_ context.Context, id int64) (bool, error) {
	_, ok := m.rows[id]
	delete(m.rows, id)
	return ok, nil
}

func (m *memUsuarios) List(context.Context, repository.UsuarioFilter) ([]*entity.Usuario, int, error) {
	out := make([]*entity.Usuario, 0, len(m.rows))
	for _, u := range m.rows {
		out = append(out, u)
	}
	return out, len(out), nil
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func id64(v int64) *int64 { return &v }
