package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/catalog-admin-api/internal/domain/entity"
	"github.com/jhoicas/catalog-admin-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ErrUnknownCategory el producto referencia una categoría que no existe.
var ErrUnknownCategory = errors.New("categoría inexistente")

// ProductRepo acceso mínimo a products: conteo de referencias y alta (seed/tests).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// CountByCategory cuenta productos cuyo category_ids contiene categoryID.
func (r *ProductRepo) CountByCategory(ctx context.Context, categoryID string) (int64, error) {
	uid, ok := parseID(categoryID)
	if !ok {
		return 0, nil
	}
	var n int64
	err := r.q.QueryRow(ctx, `SELECT count(*) FROM products WHERE $1 = ANY(category_ids)`, uid).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count products by category: %w", err)
	}
	return n, nil
}

// Create persiste un producto con sus categorías. Las categorías se leen FOR SHARE en la misma
// sentencia: si alguna no existe (o la borró una tx que tenía el lock) no se inserta nada.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	id, ok := parseID(p.ID)
	if !ok {
		return fmt.Errorf("insert product: id %q no es UUID", p.ID)
	}
	categoryIDs := make([]uuid.UUID, 0, len(p.CategoryIDs))
	for _, c := range p.CategoryIDs {
		cid, ok := parseID(c)
		if !ok {
			return fmt.Errorf("insert product: category id %q no es UUID", c)
		}
		categoryIDs = append(categoryIDs, cid)
	}
	query := `
		WITH cats AS (
			SELECT id FROM categories WHERE id = ANY($4::uuid[]) FOR SHARE
		)
		INSERT INTO products (id, name, price, category_ids, created_at)
		SELECT $1::uuid, $2::text, $3::numeric, $4::uuid[], $5::timestamptz
		WHERE (SELECT count(*) FROM cats) = cardinality(ARRAY(SELECT DISTINCT unnest($4::uuid[])))`
	tag, err := r.q.Exec(ctx, query, id, p.Name, p.Price, categoryIDs, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("insert product: %w", ErrUnknownCategory)
	}
	return nil
}
