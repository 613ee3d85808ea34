package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product vista mínima de un producto del catálogo: solo lo que necesitan la verificación
// de referencias y el seed. El resto del subsistema de productos vive fuera de este servicio.
type Product struct {
	ID          string
	Name        string
	Price       decimal.Decimal
	CategoryIDs []string // categorías a las que pertenece
	CreatedAt   time.Time
}
