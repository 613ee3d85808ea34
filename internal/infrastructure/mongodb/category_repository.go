package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jhoicas/catalog-admin-api/internal/domain/entity"
	"github.com/jhoicas/catalog-admin-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

type categoryDocument struct {
	ID        primitive.ObjectID `bson:"_id"`
	Name      string             `bson:"name"`
	Image     string             `bson:"image"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

// CategoryRepo implementación del puerto CategoryRepository sobre la colección categories.
type CategoryRepo struct {
	coll *mongo.Collection
}

// NewCategoryRepository construye el adaptador sobre la colección dada.
func NewCategoryRepository(coll *mongo.Collection) *CategoryRepo {
	return &CategoryRepo{coll: coll}
}

// Insert persiste una nueva categoría. El ID debe ser un ObjectID en hex.
func (r *CategoryRepo) Insert(ctx context.Context, c *entity.Category) error {
	oid, ok := parseObjectID(c.ID)
	if !ok {
		return fmt.Errorf("insert category: id %q no es ObjectID", c.ID)
	}
	doc := categoryDocument{ID: oid, Name: c.Name, Image: c.Image, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// FindAllSortedByCreatedDesc lista todas las categorías, más recientes primero.
func (r *CategoryRepo) FindAllSortedByCreatedDesc(ctx context.Context) ([]*entity.Category, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	var docs []categoryDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode categories: %w", err)
	}
	list := make([]*entity.Category, 0, len(docs))
	for _, d := range docs {
		list = append(list, &entity.Category{
			ID:        d.ID.Hex(),
			Name:      d.Name,
			Image:     d.Image,
			CreatedAt: d.CreatedAt,
			UpdatedAt: d.UpdatedAt,
		})
	}
	return list, nil
}

// UpdateFields aplica $set solo con los campos presentes más updatedAt.
func (r *CategoryRepo) UpdateFields(ctx context.Context, id string, f entity.CategoryFields) (entity.UpdateResult, error) {
	oid, ok := parseObjectID(id)
	if !ok {
		return entity.UpdateResult{Acknowledged: true}, nil
	}
	set := bson.M{"updatedAt": f.UpdatedAt}
	if f.Name != nil {
		set["name"] = *f.Name
	}
	if f.Image != nil {
		set["image"] = *f.Image
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return entity.UpdateResult{}, fmt.Errorf("update category: %w", err)
	}
	return entity.UpdateResult{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
	}, nil
}

// DeleteByID elimina por _id. Un id inexistente devuelve DeletedCount = 0.
func (r *CategoryRepo) DeleteByID(ctx context.Context, id string) (entity.DeleteResult, error) {
	oid, ok := parseObjectID(id)
	if !ok {
		return entity.DeleteResult{Acknowledged: true}, nil
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return entity.DeleteResult{}, fmt.Errorf("delete category: %w", err)
	}
	return entity.DeleteResult{Acknowledged: true, DeletedCount: res.DeletedCount}, nil
}
