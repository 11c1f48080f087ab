package dto

import "time"

// CreateDistributorRequest body para POST /api/distributors.
type CreateDistributorRequest struct {
	Name        string `json:"name"`
	ContactName string `json:"contact_name,omitempty"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Address     string `json:"address,omitempty"`
}

// UpdateDistributorRequest body para PUT /api/distributors/:id.
type UpdateDistributorRequest struct {
	Name        *string `json:"name,omitempty"`
	ContactName *string `json:"contact_name,omitempty"`
	Email       *string `json:"email,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Address     *string `json:"address,omitempty"`
	Active      *bool   `json:"active,omitempty"`
}

// DistributorResponse distribuidor en respuestas.
type DistributorResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	ContactName string    `json:"contact_name,omitempty"`
	Email       string    `json:"email,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Address     string    `json:"address,omitempty"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DistOrderItemRequest línea de pedido en requests.
type DistOrderItemRequest struct {
	VariationID string `json:"variation_id"`
	Quantity    int64  `json:"quantity"`
}

// CreateDistOrderRequest body para POST /api/distributor-orders.
type CreateDistOrderRequest struct {
	DistributorID        string                 `json:"distributor_id"`
	ExpectedDeliveryDate *time.Time             `json:"expected_delivery_date,omitempty"`
	Notes                string                 `json:"notes,omitempty"`
	Items                []DistOrderItemRequest `json:"items"`
}

// UpdateDistOrderRequest body para PUT /api/distributor-orders/:id.
// status=complete dispara la transición guardada con efecto de stock.
type UpdateDistOrderRequest struct {
	Status               *string                `json:"status,omitempty"`
	ExpectedDeliveryDate *time.Time             `json:"expected_delivery_date,omitempty"`
	Notes                *string                `json:"notes,omitempty"`
	Items                []DistOrderItemRequest `json:"items,omitempty"`
}

// DistOrderItemResponse línea de pedido en respuestas.
type DistOrderItemResponse struct {
	ID          string `json:"id"`
	VariationID string `json:"variation_id"`
	Quantity    int64  `json:"quantity"`
}

// DistOrderResponse pedido a distribuidor en respuestas.
type DistOrderResponse struct {
	ID                   string                  `json:"id"`
	DistributorID        string                  `json:"distributor_id"`
	UserID               string                  `json:"user_id"`
	ExpectedDeliveryDate *time.Time              `json:"expected_delivery_date,omitempty"`
	Status               string                  `json:"status"`
	Notes                string                  `json:"notes,omitempty"`
	Items                []DistOrderItemResponse `json:"items,omitempty"`
	CreatedAt            time.Time               `json:"created_at"`
	UpdatedAt            time.Time               `json:"updated_at"`
}
