package mongodb_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/jhoicas/catalog-admin-api/internal/domain/entity"
	"github.com/jhoicas/catalog-admin-api/internal/infrastructure/mongodb"
)

// Los tests usan el deployment simulado de mtest: cada llamada al driver consume una
// respuesta encolada con AddMockResponses, sin servidor real.

func TestCategoryRepo_Insert(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("ok", func(mt *mtest.T) {
		repo := mongodb.NewCategoryRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		err := repo.Insert(context.Background(), &entity.Category{
			ID:        mongodb.NewObjectID(),
			Name:      "Lipsticks",
			Image:     "https://res.cloudinary.com/demo/categories/lipstick.png",
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		})
		assert.NoError(mt, err)
	})

	mt.Run("id inválido no llega al servidor", func(mt *mtest.T) {
		repo := mongodb.NewCategoryRepository(mt.Coll)
		err := repo.Insert(context.Background(), &entity.Category{ID: "no-hex", Name: "x"})
		assert.Error(mt, err)
	})

	mt.Run("error del servidor", func(mt *mtest.T) {
		repo := mongodb.NewCategoryRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index: 0, Code: 11000, Message: "duplicate key error",
		}))
		err := repo.Insert(context.Background(), &entity.Category{ID: mongodb.NewObjectID(), Name: "x"})
		assert.Error(mt, err)
	})
}

func TestCategoryRepo_FindAll(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("decodifica documentos", func(mt *mtest.T) {
		repo := mongodb.NewCategoryRepository(mt.Coll)
		newer := primitive.NewObjectID()
		older := primitive.NewObjectID()
		now := time.Now().UTC().Truncate(time.Millisecond)
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
				bson.D{
					{Key: "_id", Value: newer},
					{Key: "name", Value: "Lipsticks"},
					{Key: "image", Value: "https://cdn/l.png"},
					{Key: "createdAt", Value: now},
					{Key: "updatedAt", Value: now},
				},
				bson.D{
					{Key: "_id", Value: older},
					{Key: "name", Value: "Perfumes"},
					{Key: "image", Value: "https://cdn/p.png"},
					{Key: "createdAt", Value: now.Add(-time.Hour)},
					{Key: "updatedAt", Value: now.Add(-time.Hour)},
				},
			),
		)

		list, err := repo.FindAllSortedByCreatedDesc(context.Background())
		require.NoError(mt, err)
		require.Len(mt, list, 2)
		assert.Equal(mt, newer.Hex(), list[0].ID)
		assert.Equal(mt, "Lipsticks", list[0].Name)
		assert.Equal(mt, "https://cdn/l.png", list[0].Image)
		assert.True(mt, list[0].CreatedAt.Equal(now))
		assert.Equal(mt, older.Hex(), list[1].ID)
	})

	mt.Run("colección vacía", func(mt *mtest.T) {
		repo := mongodb.NewCategoryRepository(mt.Coll)
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		list, err := repo.FindAllSortedByCreatedDesc(context.Background())
		require.NoError(mt, err)
		assert.NotNil(mt, list)
		assert.Empty(mt, list)
	})
}

func TestCategoryRepo_UpdateFields(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("coincide y modifica", func(mt *mtest.T) {
		repo := mongodb.NewCategoryRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		name := "Labiales"
		res, err := repo.UpdateFields(context.Background(), mongodb.NewObjectID(), entity.CategoryFields{Name: &name, UpdatedAt: time.Now()})
		require.NoError(mt, err)
		assert.True(mt, res.Acknowledged)
		assert.Equal(mt, int64(1), res.MatchedCount)
		assert.Equal(mt, int64(1), res.ModifiedCount)
	})

	mt.Run("id mal formado coincide con cero", func(mt *mtest.T) {
		repo := mongodb.NewCategoryRepository(mt.Coll)
		res, err := repo.UpdateFields(context.Background(), "123", entity.CategoryFields{})
		require.NoError(mt, err)
		assert.Zero(mt, res.MatchedCount)
	})
}

func TestCategoryRepo_DeleteByID(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("borra", func(mt *mtest.T) {
		repo := mongodb.NewCategoryRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		res, err := repo.DeleteByID(context.Background(), mongodb.NewObjectID())
		require.NoError(mt, err)
		assert.Equal(mt, int64(1), res.DeletedCount)
	})

	mt.Run("inexistente", func(mt *mtest.T) {
		repo := mongodb.NewCategoryRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		res, err := repo.DeleteByID(context.Background(), mongodb.NewObjectID())
		require.NoError(mt, err)
		assert.True(mt, res.Acknowledged)
		assert.Zero(mt, res.DeletedCount)
	})
}

func TestProductRepo_CountByCategory(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("cuenta referencias", func(mt *mtest.T) {
		repo := mongodb.NewProductRepository(mt.Coll)
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{{Key: "n", Value: int32(2)}},
		))

		n, err := repo.CountByCategory(context.Background(), mongodb.NewObjectID())
		require.NoError(mt, err)
		assert.Equal(mt, int64(2), n)
	})

	mt.Run("id mal formado", func(mt *mtest.T) {
		repo := mongodb.NewProductRepository(mt.Coll)
		n, err := repo.CountByCategory(context.Background(), "xyz")
		require.NoError(mt, err)
		assert.Zero(mt, n)
	})

	mt.Run("error del servidor", func(mt *mtest.T) {
		repo := mongodb.NewProductRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code: 2, Message: "bad query", Name: "BadValue",
		}))
		_, err := repo.CountByCategory(context.Background(), mongodb.NewObjectID())
		assert.Error(mt, err)
	})
}

func TestProductRepo_Create(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("ok", func(mt *mtest.T) {
		repo := mongodb.NewProductRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		err := repo.Create(context.Background(), &entity.Product{
			ID:          mongodb.NewObjectID(),
			Name:        "Matte Red",
			Price:       decimal.RequireFromString("12.50"),
			CategoryIDs: []string{mongodb.NewObjectID()},
			CreatedAt:   time.Now(),
		})
		assert.NoError(mt, err)
	})

	mt.Run("categoría mal formada", func(mt *mtest.T) {
		repo := mongodb.NewProductRepository(mt.Coll)
		err := repo.Create(context.Background(), &entity.Product{
			ID:          mongodb.NewObjectID(),
			CategoryIDs: []string{"nope"},
		})
		assert.Error(mt, err)
	})
}
