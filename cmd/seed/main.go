// seed carga categorías desde un CSV pasando por el caso de uso, igual que la API:
// cada imagen se sube al asset store configurado y luego se inserta la categoría.
//
// Uso: go run ./cmd/seed -file categorias.csv [-latin1]
// Formato: name,image_path[,products]  (products: "Matte Red=12.50;Nude=9.90")
package main

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"

	"github.com/jhoicas/catalog-admin-api/internal/application/dto"
	"github.com/jhoicas/catalog-admin-api/internal/bootstrap"
	"github.com/jhoicas/catalog-admin-api/internal/domain/entity"
	"github.com/jhoicas/catalog-admin-api/internal/domain/repository"
	"github.com/jhoicas/catalog-admin-api/pkg/config"
	"github.com/jhoicas/catalog-admin-api/pkg/logger"
)

func main() {
	file := flag.String("file", "categories.csv", "CSV con name,image_path[,products]")
	latin1 := flag.Bool("latin1", false, "el CSV está en ISO-8859-1")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	f, err := os.Open(*file)
	if err != nil {
		log.Fatal().Err(err).Str("file", *file).Msg("abrir CSV")
	}
	rows, err := readRows(f, filepath.Dir(*file), *latin1)
	_ = f.Close()
	if err != nil {
		log.Fatal().Err(err).Msg("leer CSV")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	fs := afero.NewOsFs()
	catalog, err := bootstrap.OpenCatalog(ctx, cfg, fs, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar catálogo")
	}
	defer catalog.Close()

	created, failed := seed(ctx, catalog.Categories, catalog.Store.Products, catalog.Store.NewID, fs, rows, log)
	log.Info().Int("created", created).Int("failed", failed).Msg("seed terminado")
	if failed > 0 {
		os.Exit(1)
	}
}

type categoryCreator interface {
	Create(ctx context.Context, in dto.CreateCategoryInput) (*dto.CategoryResponse, error)
}

// seed crea cada fila y sus productos. Una fila fallida no detiene el resto.
func seed(
	ctx context.Context,
	categories categoryCreator,
	products repository.ProductRepository,
	newID func() string,
	fs afero.Fs,
	rows []seedRow,
	log *logger.Logger,
) (created, failed int) {
	for _, row := range rows {
		in := dto.CreateCategoryInput{Name: row.Name}
		if row.ImagePath != "" {
			img, err := sourceImage(fs, row.ImagePath)
			if err != nil {
				log.Error().Err(err).Int("line", row.Line).Msg("imagen")
				failed++
				continue
			}
			in.Image = img
		}
		out, err := categories.Create(ctx, in)
		if err != nil {
			log.Error().Err(err).Int("line", row.Line).Str("name", row.Name).Msg("crear categoría")
			failed++
			continue
		}
		created++
		log.Info().Str("id", out.ID).Str("name", out.Name).Str("image", out.Image).Msg("categoría creada")

		for _, p := range row.Products {
			err := products.Create(ctx, &entity.Product{
				ID:          newID(),
				Name:        p.Name,
				Price:       p.Price,
				CategoryIDs: []string{out.ID},
				CreatedAt:   time.Now(),
			})
			if err != nil {
				log.Error().Err(err).Str("product", p.Name).Str("category_id", out.ID).Msg("crear producto")
				failed++
			}
		}
	}
	return created, failed
}

// sourceFile imagen de origen del seed. Release no borra nada: el archivo es del usuario.
type sourceFile struct {
	path string
	size int64
}

func sourceImage(fs afero.Fs, path string) (*sourceFile, error) {
	info, err := fs.Stat(path)
	if err != nil {
		return nil, err
	}
	return &sourceFile{path: path, size: info.Size()}, nil
}

func (f *sourceFile) Path() string        { return f.path }
func (f *sourceFile) Filename() string    { return filepath.Base(f.path) }
func (f *sourceFile) ContentType() string { return "" }
func (f *sourceFile) Size() int64         { return f.size }
func (f *sourceFile) Release() error      { return nil }
