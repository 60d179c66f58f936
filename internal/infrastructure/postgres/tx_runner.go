package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/LuizZonetti1/cafeterias-api/internal/application/inventory"
	"github.com/LuizZonetti1/cafeterias-api/internal/domain"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta un consumo de stock en una transacción READ COMMITTED. Los bloqueos
// de fila (SELECT ... FOR UPDATE y UPDATE condicionado) dan la exclusión entre escritores.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run abre la transacción, entrega a fn los repositorios atados a ella y confirma si fn no
// falla. Un deadlock o fallo de serialización se devuelve como ErrStockConflict.
func (r *TxRunner) Run(ctx context.Context, fn func(repos inventory.TxRepos) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repos := inventory.TxRepos{
		Stocks:      NewStockRepository(tx),
		Movements:   NewStockMovementRepository(tx),
		Ingredients: NewIngredientRepository(tx),
		Orders:      NewOrderRepository(tx),
	}
	if err := fn(repos); err != nil {
		return concurrencyError(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return concurrencyError(fmt.Errorf("commit transaction: %w", err))
	}
	return nil
}

// concurrencyError traduce 40001 (serialization_failure) y 40P01 (deadlock_detected).
func concurrencyError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && (pgErr.Code == "40001" || pgErr.Code == "40P01") {
		return fmt.Errorf("%w: %s", domain.ErrStockConflict, pgErr.Message)
	}
	return err
}
