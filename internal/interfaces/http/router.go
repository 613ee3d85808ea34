package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalog-admin-api/internal/infrastructure/upload"
	"github.com/jhoicas/catalog-admin-api/pkg/jwt"
	"github.com/jhoicas/catalog-admin-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CategoryUC     CategoryService
	Stager         *upload.Stager
	MaxUploadBytes int64
	JWTSecret      string
	Logger         *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	h := NewCategoryHandler(deps.CategoryUC, deps.Stager, deps.MaxUploadBytes, deps.Logger)

	api := app.Group("/api", NoStore())
	registerCategories(api.Group("/categories"), h, deps.JWTSecret)

	// Alias sin prefijo /api que usan los clientes antiguos.
	registerCategories(app.Group("/categories", NoStore()), h, deps.JWTSecret)
}

func registerCategories(r fiber.Router, h *CategoryHandler, secret string) {
	r.Get("/", h.List)

	// Gestión: Bearer Token + rol admin
	admin := []fiber.Handler{AuthMiddleware(secret), RequireRole(jwt.RoleAdmin)}
	r.Post("/add-category", append(admin, h.Create)...)
	r.Put("/update-category", append(admin, h.Update)...)
	r.Delete("/delete-category", append(admin, h.Delete)...)
}
