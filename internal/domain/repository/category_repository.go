package repository

import (
	"context"

	"github.com/jhoicas/catalog-admin-api/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
// Ninguna operación valida: eso es responsabilidad del caso de uso.
type CategoryRepository interface {
	Insert(ctx context.Context, category *entity.Category) error
	FindAllSortedByCreatedDesc(ctx context.Context) ([]*entity.Category, error)
	// UpdateFields aplica un merge parcial. Un id inexistente no es error: MatchedCount = 0.
	UpdateFields(ctx context.Context, id string, fields entity.CategoryFields) (entity.UpdateResult, error)
	// DeleteByID es idempotente: un id inexistente devuelve DeletedCount = 0 sin error.
	DeleteByID(ctx context.Context, id string) (entity.DeleteResult, error)
}
