package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/afero"

	"github.com/jhoicas/catalog-admin-api/internal/bootstrap"
	"github.com/jhoicas/catalog-admin-api/internal/infrastructure/upload"
	httpRouter "github.com/jhoicas/catalog-admin-api/internal/interfaces/http"
	"github.com/jhoicas/catalog-admin-api/pkg/config"
	"github.com/jhoicas/catalog-admin-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Str("assets", cfg.Asset.Driver).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET requerido")
	}

	ctx := context.Background()
	osFs := afero.NewOsFs()

	catalog, err := bootstrap.OpenCatalog(ctx, cfg, osFs, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar catálogo")
	}
	defer catalog.Close()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		// margen para los campos de texto del multipart
		BodyLimit:    int(cfg.Upload.MaxBytes) + 1<<20,
		ETag:         false,
		ErrorHandler: httpRouter.ErrorHandler(log),
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Catalog Admin API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	// Con el driver local las imágenes se sirven desde este mismo proceso.
	if cfg.Asset.Driver == "local" {
		app.Static("/uploads", cfg.Asset.LocalDir)
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		CategoryUC:     catalog.Categories,
		Stager:         upload.NewStager(osFs, cfg.Upload.TempDir),
		MaxUploadBytes: cfg.Upload.MaxBytes,
		JWTSecret:      cfg.JWT.Secret,
		Logger:         log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
