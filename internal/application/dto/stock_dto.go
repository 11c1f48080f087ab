package dto

import "time"

// AdjustStockRequest body para POST /api/variations/:id/adjust-stock.
type AdjustStockRequest struct {
	ChangeAmount int64  `json:"change_amount"`
	Reason       string `json:"reason"`
	Notes        string `json:"notes,omitempty"`
}

// StockHistoryResponse fila del historial en respuestas.
type StockHistoryResponse struct {
	ID            string    `json:"id"`
	VariationID   string    `json:"variation_id"`
	UserID        string    `json:"user_id"`
	ChangeAmount  int64     `json:"change_amount"`
	Reason        string    `json:"reason"`
	ReferenceType string    `json:"reference_type,omitempty"`
	ReferenceID   string    `json:"reference_id,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
