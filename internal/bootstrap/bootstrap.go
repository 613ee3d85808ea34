// Package bootstrap arma los adaptadores elegidos por configuración (store, assets, caché).
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/afero"

	"github.com/jhoicas/catalog-admin-api/internal/application/ports"
	"github.com/jhoicas/catalog-admin-api/internal/application/usecase"
	"github.com/jhoicas/catalog-admin-api/internal/domain/repository"
	"github.com/jhoicas/catalog-admin-api/internal/infrastructure/cache"
	"github.com/jhoicas/catalog-admin-api/internal/infrastructure/mongodb"
	"github.com/jhoicas/catalog-admin-api/internal/infrastructure/postgres"
	"github.com/jhoicas/catalog-admin-api/internal/infrastructure/storage"
	"github.com/jhoicas/catalog-admin-api/pkg/config"
	"github.com/jhoicas/catalog-admin-api/pkg/logger"
)

// Store repositorios del driver elegido. TxRunner es nil cuando el driver no ofrece transacciones.
type Store struct {
	Categories repository.CategoryRepository
	Products   repository.ProductRepository
	TxRunner   ports.CategoryTxRunner
	NewID      usecase.IDGenerator
	close      func()
}

// Close libera la conexión.
func (s *Store) Close() {
	if s.close != nil {
		s.close()
	}
}

// CategoryOptions opciones del caso de uso que dependen del store.
func (s *Store) CategoryOptions() []usecase.CategoryOption {
	opts := []usecase.CategoryOption{usecase.WithIDGenerator(s.NewID)}
	if s.TxRunner != nil {
		opts = append(opts, usecase.WithTxRunner(s.TxRunner))
	}
	return opts
}

// OpenStore conecta al driver de STORE_DRIVER.
func OpenStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Store, error) {
	switch cfg.Store.Driver {
	case "mongo":
		client, err := mongodb.NewClient(ctx, cfg.Mongo)
		if err != nil {
			return nil, err
		}
		db := client.Database(cfg.Mongo.Database)
		log.Warn().Msg("store mongo: borrado sin transacción, la verificación de referencias no es atómica")
		return &Store{
			Categories: mongodb.NewCategoryRepository(db.Collection(mongodb.CategoriesCollection)),
			Products:   mongodb.NewProductRepository(db.Collection(mongodb.ProductsCollection)),
			NewID:      mongodb.NewObjectID,
			close: func() {
				closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = client.Disconnect(closeCtx)
			},
		}, nil
	case "postgres":
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, err
		}
		return &Store{
			Categories: postgres.NewCategoryRepository(pool),
			Products:   postgres.NewProductRepository(pool),
			TxRunner:   postgres.NewTxRunner(pool),
			NewID:      usecase.NewUUID,
			close:      pool.Close,
		}, nil
	default:
		return nil, fmt.Errorf("store desconocido: %q", cfg.Store.Driver)
	}
}

// OpenAssetStore construye el adaptador de ASSET_DRIVER.
func OpenAssetStore(cfg config.AssetConfig, fs afero.Fs) (ports.AssetStore, error) {
	switch cfg.Driver {
	case "s3":
		st, err := storage.NewS3AssetStore(cfg, fs)
		if err != nil {
			return nil, err
		}
		return st, nil
	case "cloudinary":
		st, err := storage.NewCloudinaryAssetStore(cfg.CloudinaryURL, fs)
		if err != nil {
			return nil, err
		}
		return st, nil
	case "local":
		return storage.NewLocalAssetStore(fs, cfg.LocalDir, cfg.PublicBaseURL), nil
	default:
		return nil, fmt.Errorf("asset driver desconocido: %q", cfg.Driver)
	}
}

// OpenListCache caché del listado según CACHE_DRIVER. Si Redis no responde se sigue sin caché.
func OpenListCache(ctx context.Context, cfg *config.Config, log *logger.Logger) (ports.CategoryListCache, func()) {
	switch cfg.Cache.Driver {
	case "memory":
		return cache.NewInMemoryCategoryCache(cfg.Redis.TTL), func() {}
	case "redis":
		rc, err := cache.NewRedisCategoryCache(ctx, cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis no disponible, listado sin caché")
			return nil, func() {}
		}
		return rc, func() { _ = rc.Close() }
	default:
		return nil, func() {}
	}
}

// Catalog caso de uso de categorías ya cableado, con los recursos que hay que cerrar.
type Catalog struct {
	Categories *usecase.CategoryUseCase
	Store      *Store
	closers    []func()
}

// Close libera caché y store en orden inverso.
func (c *Catalog) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}

// OpenCatalog arma store, asset store y caché según cfg y construye el caso de uso.
func OpenCatalog(ctx context.Context, cfg *config.Config, fs afero.Fs, log *logger.Logger) (*Catalog, error) {
	st, err := OpenStore(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("store %s: %w", cfg.Store.Driver, err)
	}
	assets, err := OpenAssetStore(cfg.Asset, fs)
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("asset store %s: %w", cfg.Asset.Driver, err)
	}

	opts := append(st.CategoryOptions(), usecase.WithFolder(cfg.Asset.Folder))
	listCache, closeCache := OpenListCache(ctx, cfg, log)
	if listCache != nil {
		opts = append(opts, usecase.WithListCache(listCache))
	}

	return &Catalog{
		Categories: usecase.NewCategoryUseCase(st.Categories, st.Products, assets, log, opts...),
		Store:      st,
		closers:    []func(){st.Close, closeCache},
	}, nil
}
