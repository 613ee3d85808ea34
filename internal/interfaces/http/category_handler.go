package http

import (
	"context"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalog-admin-api/internal/application/dto"
	"github.com/jhoicas/catalog-admin-api/internal/infrastructure/upload"
	"github.com/jhoicas/catalog-admin-api/pkg/logger"
)

// Mensajes de éxito que consumen los clientes admin.
const (
	msgCategoryAdded   = "Add Category"
	msgCategoryUpdated = "Updated Category"
	msgCategoryDeleted = "Delete category successfully"

	msgInvalidBody      = "Invalid request body"
	msgInvalidMultipart = "Invalid multipart form"
)

// CategoryService operaciones que el handler necesita del caso de uso.
type CategoryService interface {
	Create(ctx context.Context, in dto.CreateCategoryInput) (*dto.CategoryResponse, error)
	ListAll(ctx context.Context) ([]dto.CategoryResponse, error)
	Update(ctx context.Context, in dto.UpdateCategoryInput) (*dto.UpdateResultResponse, error)
	Delete(ctx context.Context, id string) (*dto.DeleteResultResponse, error)
}

// CategoryHandler maneja las peticiones HTTP de categorías.
type CategoryHandler struct {
	svc      CategoryService
	stager   *upload.Stager
	maxBytes int64
	log      *logger.Logger
}

// NewCategoryHandler construye el handler. maxBytes limita el tamaño de la imagen.
func NewCategoryHandler(svc CategoryService, stager *upload.Stager, maxBytes int64, log *logger.Logger) *CategoryHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &CategoryHandler{svc: svc, stager: stager, maxBytes: maxBytes, log: log}
}

// imageRejection error de la frontera de transporte (tipo o tamaño), responde 400 con su mensaje.
type imageRejection struct{ msg string }

func (e *imageRejection) Error() string { return e.msg }

// List godoc
// @Summary      Listar categorías
// @Tags         categories
// @Produce      json
// @Success      200  {object}  dto.Envelope{data=[]dto.CategoryResponse}
// @Failure      500  {object}  dto.Envelope
// @Router       /api/categories [get]
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	items, err := h.svc.ListAll(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.OK("", items))
}

// Create godoc
// @Summary      Crear categoría
// @Tags         categories
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        name   formData  string  true  "Nombre"
// @Param        image  formData  file    true  "Imagen"
// @Success      200    {object}  dto.Envelope{data=dto.CategoryResponse}
// @Failure      400    {object}  dto.Envelope
// @Failure      401    {object}  dto.Envelope
// @Failure      403    {object}  dto.Envelope
// @Failure      500    {object}  dto.Envelope
// @Router       /api/categories/add-category [post]
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	img, err := h.stageImage(c)
	if err != nil {
		return h.rejectImage(c, err)
	}
	in := dto.CreateCategoryInput{Name: c.FormValue("name")}
	if img != nil {
		in.Image = img
	}
	out, err := h.svc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.OK(msgCategoryAdded, out))
}

// Update godoc
// @Summary      Actualizar categoría (parcial)
// @Tags         categories
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        _id    formData  string  true   "ID de la categoría"
// @Param        name   formData  string  false  "Nuevo nombre"
// @Param        image  formData  file    false  "Nueva imagen"
// @Success      200    {object}  dto.Envelope{data=dto.UpdateResultResponse}
// @Failure      400    {object}  dto.Envelope
// @Failure      500    {object}  dto.Envelope
// @Router       /api/categories/update-category [put]
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	img, err := h.stageImage(c)
	if err != nil {
		return h.rejectImage(c, err)
	}
	in := dto.UpdateCategoryInput{ID: c.FormValue("_id")}
	if name := c.FormValue("name"); name != "" {
		in.Name = &name
	}
	if img != nil {
		in.Image = img
	}
	out, err := h.svc.Update(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.OK(msgCategoryUpdated, out))
}

// Delete godoc
// @Summary      Eliminar categoría
// @Description  Rechaza con 400 si algún producto referencia la categoría.
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DeleteCategoryRequest  true  "ID de la categoría"
// @Success      200   {object}  dto.Envelope{data=dto.DeleteResultResponse}
// @Failure      400   {object}  dto.Envelope
// @Failure      500   {object}  dto.Envelope
// @Router       /api/categories/delete-category [delete]
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	var req dto.DeleteCategoryRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.Fail(msgInvalidBody))
		}
	}
	out, err := h.svc.Delete(c.UserContext(), req.ID)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.OK(msgCategoryDeleted, out))
}

// stageImage materializa el campo "image" si viene. Sin multipart o sin archivo devuelve nil.
func (h *CategoryHandler) stageImage(c *fiber.Ctx) (*upload.StagedFile, error) {
	if !strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEMultipartForm) {
		return nil, nil
	}
	form, err := c.MultipartForm()
	if err != nil {
		return nil, &imageRejection{msg: msgInvalidMultipart}
	}
	files := form.File["image"]
	if len(files) == 0 {
		return nil, nil
	}
	fh := files[0]

	contentType := fh.Header.Get(fiber.HeaderContentType)
	if !strings.HasPrefix(strings.ToLower(contentType), "image/") {
		return nil, &imageRejection{msg: "image must be an image file"}
	}
	if h.maxBytes > 0 && fh.Size > h.maxBytes {
		return nil, &imageRejection{msg: fmt.Sprintf("image exceeds %d bytes", h.maxBytes)}
	}

	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("abrir archivo subido: %w", err)
	}
	defer src.Close()
	return h.stager.Stage(src, fh.Filename, contentType)
}

func (h *CategoryHandler) rejectImage(c *fiber.Ctx, err error) error {
	if rej, ok := err.(*imageRejection); ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail(rej.msg))
	}
	return writeError(c, h.log, err)
}
