package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/catalog-admin-api/internal/domain/entity"
	"github.com/jhoicas/catalog-admin-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación del puerto CategoryRepository sobre PostgreSQL (usable con pool o tx).
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador de persistencia para categorías. Pasar pool o tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// Insert persiste una nueva categoría.
func (r *CategoryRepo) Insert(ctx context.Context, c *entity.Category) error {
	id, ok := parseID(c.ID)
	if !ok {
		return fmt.Errorf("insert category: id %q no es UUID", c.ID)
	}
	query := `
		INSERT INTO categories (id, name, image, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query, id, c.Name, c.Image, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert category: id duplicado: %w", err)
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// FindAllSortedByCreatedDesc lista todas las categorías, más recientes primero.
func (r *CategoryRepo) FindAllSortedByCreatedDesc(ctx context.Context) ([]*entity.Category, error) {
	query := `
		SELECT id::text, name, image, created_at, updated_at
		FROM categories ORDER BY created_at DESC, id DESC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Category, 0)
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Image, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// UpdateFields escribe solo los campos presentes más updated_at.
// Como updated_at siempre cambia, ModifiedCount coincide con MatchedCount.
func (r *CategoryRepo) UpdateFields(ctx context.Context, id string, f entity.CategoryFields) (entity.UpdateResult, error) {
	uid, ok := parseID(id)
	if !ok {
		return entity.UpdateResult{Acknowledged: true}, nil
	}
	sets := []string{"updated_at = $2"}
	args := []any{uid, f.UpdatedAt}
	if f.Name != nil {
		args = append(args, *f.Name)
		sets = append(sets, fmt.Sprintf("name = $%d", len(args)))
	}
	if f.Image != nil {
		args = append(args, *f.Image)
		sets = append(sets, fmt.Sprintf("image = $%d", len(args)))
	}
	query := `UPDATE categories SET ` + strings.Join(sets, ", ") + ` WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return entity.UpdateResult{}, fmt.Errorf("update category: %w", err)
	}
	n := cmd.RowsAffected()
	return entity.UpdateResult{Acknowledged: true, MatchedCount: n, ModifiedCount: n}, nil
}

// DeleteByID elimina una categoría por ID. Un ID inexistente devuelve DeletedCount = 0.
func (r *CategoryRepo) DeleteByID(ctx context.Context, id string) (entity.DeleteResult, error) {
	uid, ok := parseID(id)
	if !ok {
		return entity.DeleteResult{Acknowledged: true}, nil
	}
	cmd, err := r.q.Exec(ctx, `DELETE FROM categories WHERE id = $1`, uid)
	if err != nil {
		return entity.DeleteResult{}, fmt.Errorf("delete category: %w", err)
	}
	return entity.DeleteResult{Acknowledged: true, DeletedCount: cmd.RowsAffected()}, nil
}
