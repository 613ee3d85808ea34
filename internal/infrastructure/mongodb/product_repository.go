package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jhoicas/catalog-admin-api/internal/domain/entity"
	"github.com/jhoicas/catalog-admin-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

type productDocument struct {
	ID        primitive.ObjectID   `bson:"_id"`
	Name      string               `bson:"name"`
	Price     primitive.Decimal128 `bson:"price"`
	Category  []primitive.ObjectID `bson:"category"`
	CreatedAt time.Time            `bson:"createdAt"`
}

// ProductRepo acceso mínimo a la colección products.
type ProductRepo struct {
	coll *mongo.Collection
}

// NewProductRepository construye el adaptador sobre la colección dada.
func NewProductRepository(coll *mongo.Collection) *ProductRepo {
	return &ProductRepo{coll: coll}
}

// CountByCategory cuenta productos cuyo arreglo category contiene categoryID.
func (r *ProductRepo) CountByCategory(ctx context.Context, categoryID string) (int64, error) {
	oid, ok := parseObjectID(categoryID)
	if !ok {
		return 0, nil
	}
	n, err := r.coll.CountDocuments(ctx, bson.M{"category": bson.M{"$in": bson.A{oid}}})
	if err != nil {
		return 0, fmt.Errorf("count products by category: %w", err)
	}
	return n, nil
}

// Create persiste un producto.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	oid, ok := parseObjectID(p.ID)
	if !ok {
		return fmt.Errorf("insert product: id %q no es ObjectID", p.ID)
	}
	price, err := primitive.ParseDecimal128(p.Price.String())
	if err != nil {
		return fmt.Errorf("insert product: precio %s: %w", p.Price, err)
	}
	categories := make([]primitive.ObjectID, 0, len(p.CategoryIDs))
	for _, c := range p.CategoryIDs {
		cid, ok := parseObjectID(c)
		if !ok {
			return fmt.Errorf("insert product: category id %q no es ObjectID", c)
		}
		categories = append(categories, cid)
	}
	doc := productDocument{ID: oid, Name: p.Name, Price: price, Category: categories, CreatedAt: p.CreatedAt}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}
