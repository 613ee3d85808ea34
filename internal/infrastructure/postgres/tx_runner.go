package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/catalog-admin-api/internal/application/ports"
	"github.com/jhoicas/catalog-admin-api/internal/domain/repository"
)

var _ ports.CategoryTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunCategoryTx toma FOR UPDATE sobre la fila de la categoría antes de llamar a fn.
// ProductRepo.Create toma FOR SHARE sobre las mismas filas, así que un alta de producto y un
// borrado de su categoría nunca se intercalan. En READ COMMITTED cada sentencia de fn ve lo
// confirmado antes de obtener el lock.
func (r *TxRunner) RunCategoryTx(ctx context.Context, categoryID string, fn func(
	categoryRepo repository.CategoryRepository,
	productRefs repository.ProductReferenceRepository,
) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if id, ok := parseID(categoryID); ok {
		if _, err := tx.Exec(ctx, `SELECT id FROM categories WHERE id = $1 FOR UPDATE`, id); err != nil {
			return fmt.Errorf("lock category: %w", err)
		}
	}

	if err := fn(NewCategoryRepository(tx), NewProductRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
