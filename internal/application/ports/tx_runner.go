package ports

import (
	"context"

	"github.com/jhoicas/catalog-admin-api/internal/domain/repository"
)

// CategoryTxRunner ejecuta fn dentro de una transacción con la categoría categoryID bloqueada,
// pasando repositorios atados a esa tx. Cierra la ventana entre la verificación de referencias
// y el borrado en los stores que lo permiten.
type CategoryTxRunner interface {
	RunCategoryTx(ctx context.Context, categoryID string, fn func(
		categoryRepo repository.CategoryRepository,
		productRefs repository.ProductReferenceRepository,
	) error) error
}
