package dto

import "time"

// ImageFile archivo de imagen ya materializado en disco local por la capa de transporte.
// Release libera el recurso temporal; el caso de uso lo invoca en todos los caminos de salida.
type ImageFile interface {
	Path() string
	Filename() string
	ContentType() string
	Size() int64
	Release() error
}

// CreateCategoryInput entrada tipada para crear una categoría (multipart: name, image).
type CreateCategoryInput struct {
	Name  string    `validate:"required"`
	Image ImageFile `validate:"required"`
}

// UpdateCategoryInput entrada para actualización parcial (multipart: _id, name?, image?).
type UpdateCategoryInput struct {
	ID    string    `validate:"required"`
	Name  *string   `validate:"omitempty"`
	Image ImageFile `validate:"-"`
}

// DeleteCategoryRequest cuerpo JSON de DELETE /categories/delete-category.
type DeleteCategoryRequest struct {
	ID string `json:"_id" form:"_id"`
}

// CategoryResponse salida de una categoría (mismos nombres que consumen los clientes admin y móvil).
type CategoryResponse struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UpdateResultResponse resultado de update-category.
type UpdateResultResponse struct {
	Acknowledged  bool  `json:"acknowledged"`
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}

// DeleteResultResponse resultado de delete-category.
type DeleteResultResponse struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}
