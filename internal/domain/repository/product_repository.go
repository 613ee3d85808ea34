package repository

import (
	"context"

	"github.com/jhoicas/catalog-admin-api/internal/domain/entity"
)

// ProductReferenceRepository consulta de solo lectura sobre la colección de productos.
type ProductReferenceRepository interface {
	// CountByCategory cuenta los productos cuyo conjunto de categorías contiene categoryID.
	CountByCategory(ctx context.Context, categoryID string) (int64, error)
}

// ProductRepository escritura mínima de productos, usada por el seed y los tests de integración.
type ProductRepository interface {
	ProductReferenceRepository
	Create(ctx context.Context, product *entity.Product) error
}
