package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/application/usecase"
	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/domain/repository"
)

var (
	_ usecase.PagoTxRunner   = (*TxRunner)(nil)
	_ usecase.InsumoTxRunner = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// inTx inicia la transacción, ejecuta fn y hace Commit; cualquier error deja Rollback.
func (r *TxRunner) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunPagos ejecuta fn con repos de pagos, socios y ventas atados a la misma tx.
func (r *TxRunner) RunPagos(ctx context.Context, fn func(
	pagos repository.PagoRepository,
	socios repository.SocioRepository,
	ventas repository.VentaRepository,
) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(NewPagoRepository(tx), NewSocioRepository(tx), NewVentaRepository(tx))
	})
}

// RunInsumos ejecuta fn con el repo de insumos atado a una tx (reposición de stock).
func (r *TxRunner) RunInsumos(ctx context.Context, fn func(insumos repository.InsumoRepository) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(NewInsumoRepository(tx))
	})
}
