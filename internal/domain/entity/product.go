package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de presentación de una variación de producto.
const (
	VariationTypeCapsulas    = "capsulas"
	VariationTypeGotas       = "gotas"
	VariationTypeComprimidos = "comprimidos"
	VariationTypePo          = "po"
	VariationTypeGel         = "gel"
	VariationTypeOutro       = "outro"
)

// ValidVariationType indica si el tipo de presentación es conocido.
func ValidVariationType(t string) bool {
	switch t {
	case VariationTypeCapsulas, VariationTypeGotas, VariationTypeComprimidos,
		VariationTypePo, VariationTypeGel, VariationTypeOutro:
		return true
	}
	return false
}

// Product agrupa variaciones vendibles bajo un mismo nombre comercial.
// Nunca se borra físicamente: se desactiva con Active=false.
type Product struct {
	ID          string
	Name        string
	Description string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProductVariation es la unidad vendible (presentación concreta de un producto).
// CurrentStock es el contador materializado del inventario; el invariante del
// sistema es que siempre coincide con la suma del historial de stock y nunca
// baja de cero. Toda mutación pasa por el accessor de stock dentro de una
// transacción con bloqueo de fila.
type ProductVariation struct {
	ID           string
	ProductID    string
	Type         string // capsulas, gotas, comprimidos, po, gel, outro
	Cost         decimal.Decimal
	SalePrice    decimal.Decimal
	CurrentStock int64
	MinimumStock int64 // punto de reorden
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
