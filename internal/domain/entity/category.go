package entity

import "time"

// Category representa una categoría de productos. Lista plana: no hay jerarquía.
// Image es la URL durable del asset subido; el registro no es dueño del archivo remoto.
type Category struct {
	ID        string
	Name      string // no se exige unicidad
	Image     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CategoryFields campos actualizables de una categoría. nil = no tocar.
type CategoryFields struct {
	Name      *string
	Image     *string
	UpdatedAt time.Time
}

// IsEmpty indica si no hay ningún campo de negocio que escribir.
func (f CategoryFields) IsEmpty() bool {
	return f.Name == nil && f.Image == nil
}

// UpdateResult resultado de una actualización parcial (sin el documento actualizado).
type UpdateResult struct {
	Acknowledged  bool
	MatchedCount  int64
	ModifiedCount int64
}

// DeleteResult resultado de un borrado por ID.
type DeleteResult struct {
	Acknowledged bool
	DeletedCount int64
}
