package dto

import "time"

// KitProductRequest línea de un kit en requests.
type KitProductRequest struct {
	VariationID string `json:"variation_id"`
	Quantity    int64  `json:"quantity"`
}

// CreateKitRequest body para POST /api/kits.
type CreateKitRequest struct {
	Name        string              `json:"name"`
	Description string              `json:"description,omitempty"`
	Products    []KitProductRequest `json:"products"`
}

// UpdateKitRequest body para PUT /api/kits/:id. Products no-nil reemplaza
// todas las líneas.
type UpdateKitRequest struct {
	Name        *string             `json:"name,omitempty"`
	Description *string             `json:"description,omitempty"`
	Active      *bool               `json:"active,omitempty"`
	Products    []KitProductRequest `json:"products,omitempty"`
}

// KitProductResponse línea de kit en respuestas.
type KitProductResponse struct {
	ID          string `json:"id"`
	VariationID string `json:"variation_id"`
	Quantity    int64  `json:"quantity"`
}

// KitResponse kit en respuestas.
type KitResponse struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description,omitempty"`
	Active      bool                 `json:"active"`
	Products    []KitProductResponse `json:"products,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// CreateKitSaleRequest body para POST /api/kit-sales.
type CreateKitSaleRequest struct {
	KitID    string     `json:"kit_id"`
	Quantity int64      `json:"quantity"`
	SaleDate *time.Time `json:"sale_date,omitempty"`
	Notes    string     `json:"notes,omitempty"`
}

// KitSaleResponse venta de kit en respuestas.
type KitSaleResponse struct {
	ID        string    `json:"id"`
	KitID     string    `json:"kit_id"`
	Quantity  int64     `json:"quantity"`
	SaleDate  time.Time `json:"sale_date"`
	UserID    string    `json:"user_id"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
