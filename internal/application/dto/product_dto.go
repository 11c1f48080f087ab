package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// UpdateProductRequest body para PUT /api/products/:id (campos opcionales).
type UpdateProductRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Active      *bool   `json:"active,omitempty"`
}

// ProductResponse producto en respuestas.
type ProductResponse struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description,omitempty"`
	Active      bool                `json:"active"`
	Variations  []VariationResponse `json:"variations,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// CreateVariationRequest body para POST /api/products/:id/variations.
// InitialStock > 0 genera la entrada inicial en el historial (razón manual).
type CreateVariationRequest struct {
	Type         string          `json:"type"`
	Cost         decimal.Decimal `json:"cost"`
	SalePrice    decimal.Decimal `json:"sale_price"`
	InitialStock int64           `json:"initial_stock,omitempty"`
	MinimumStock int64           `json:"minimum_stock,omitempty"`
}

// UpdateVariationRequest body para PUT /api/variations/:id.
// CurrentStock no es editable por esta vía: el stock solo se mueve por el
// accessor (ajustes, ventas, pedidos recibidos).
type UpdateVariationRequest struct {
	Type         *string          `json:"type,omitempty"`
	Cost         *decimal.Decimal `json:"cost,omitempty"`
	SalePrice    *decimal.Decimal `json:"sale_price,omitempty"`
	MinimumStock *int64           `json:"minimum_stock,omitempty"`
	Active       *bool            `json:"active,omitempty"`
}

// VariationResponse variación en respuestas.
type VariationResponse struct {
	ID           string          `json:"id"`
	ProductID    string          `json:"product_id"`
	Type         string          `json:"type"`
	Cost         decimal.Decimal `json:"cost"`
	SalePrice    decimal.Decimal `json:"sale_price"`
	CurrentStock int64           `json:"current_stock"`
	MinimumStock int64           `json:"minimum_stock"`
	Active       bool            `json:"active"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
