package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOrderRequest body para POST /api/orders.
type CreateOrderRequest struct {
	OrderNumber   string          `json:"order_number"`
	CustomerName  string          `json:"customer_name"`
	CustomerPhone string          `json:"customer_phone"`
	CustomerAddr  string          `json:"customer_address"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	TrackingCode  string          `json:"tracking_code,omitempty"`
	CollectorID   string          `json:"collector_id,omitempty"`
}

// UpdateOrderRequest body para PUT /api/orders/:id. paid_amount reaplica la
// regla de derivación de estado.
type UpdateOrderRequest struct {
	Status       *string          `json:"status,omitempty"`
	PaidAmount   *decimal.Decimal `json:"paid_amount,omitempty"`
	TrackingCode *string          `json:"tracking_code,omitempty"`
	CollectorID  *string          `json:"collector_id,omitempty"`
	IsDuplicate  *bool            `json:"is_duplicate,omitempty"`
}

// AddBillingRequest body para POST /api/orders/:id/billing.
type AddBillingRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Notes  string          `json:"notes,omitempty"`
}

// BillingEntryResponse cobranza en respuestas.
type BillingEntryResponse struct {
	ID        string          `json:"id"`
	Amount    decimal.Decimal `json:"amount"`
	Notes     string          `json:"notes,omitempty"`
	CreatedBy string          `json:"created_by"`
	CreatedAt time.Time       `json:"created_at"`
}

// OrderResponse pedido de cliente en respuestas.
type OrderResponse struct {
	ID             string                 `json:"id"`
	OrderNumber    string                 `json:"order_number"`
	CustomerName   string                 `json:"customer_name"`
	CustomerPhone  string                 `json:"customer_phone"`
	CustomerAddr   string                 `json:"customer_address"`
	TotalAmount    decimal.Decimal        `json:"total_amount"`
	PaidAmount     decimal.Decimal        `json:"paid_amount"`
	Status         string                 `json:"status"`
	TrackingCode   string                 `json:"tracking_code,omitempty"`
	SellerID       string                 `json:"seller_id"`
	CollectorID    string                 `json:"collector_id,omitempty"`
	IsDuplicate    bool                   `json:"is_duplicate"`
	BillingHistory []BillingEntryResponse `json:"billing_history,omitempty"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
}

// OrderStatsResponse estadísticas de cobranza.
type OrderStatsResponse struct {
	TotalOrders  int64            `json:"total_orders"`
	TotalAmount  decimal.Decimal  `json:"total_amount"`
	TotalPaid    decimal.Decimal  `json:"total_paid"`
	PaymentRate  decimal.Decimal  `json:"payment_rate"`
	StatusCounts map[string]int64 `json:"status_counts"`
}
