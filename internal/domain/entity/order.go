package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un pedido de cliente. paid y partially_paid se derivan del
// acumulado de cobranzas; los demás los fija un operador.
const (
	OrderPending       = "pending"
	OrderInProgress    = "in_progress"
	OrderPaid          = "paid"
	OrderPartiallyPaid = "partially_paid"
	OrderNegotiating   = "negotiating"
	OrderCancelled     = "cancelled"
	OrderDelivered     = "delivered"
)

// ValidOrderStatus indica si el estado es uno de los enumerados.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderPending, OrderInProgress, OrderPaid, OrderPartiallyPaid,
		OrderNegotiating, OrderCancelled, OrderDelivered:
		return true
	}
	return false
}

// Order agregado de cobranza de un pedido de cliente.
// PaidAmount es un acumulador: siempre igual a la suma del historial de
// cobranzas. IsDuplicate es monotónico: una vez true nunca vuelve a false
// por vía automática.
type Order struct {
	ID            string
	OrderNumber   string
	CustomerName  string
	CustomerPhone string
	CustomerAddr  string
	TotalAmount   decimal.Decimal
	PaidAmount    decimal.Decimal
	Status        string
	TrackingCode  string
	SellerID      string
	CollectorID   string
	IsDuplicate   bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// BillingEntry registro inmutable de una cobranza aplicada a un pedido.
type BillingEntry struct {
	ID        string
	OrderID   string
	Amount    decimal.Decimal
	Notes     string
	CreatedBy string
	CreatedAt time.Time
}

// DeriveOrderStatus es la función pura de transición del estado de pago:
// paid si lo cobrado cubre el total, partially_paid si hay cobros parciales,
// y en cualquier otro caso se conserva el estado actual (los estados manuales
// como negotiating/cancelled/delivered no se pisan salvo que llegue un cobro).
// Única vía de derivación: la usan tanto la cobranza como el update directo.
func DeriveOrderStatus(current string, paid, total decimal.Decimal) string {
	switch {
	case paid.GreaterThanOrEqual(total):
		return OrderPaid
	case paid.IsPositive():
		return OrderPartiallyPaid
	default:
		return current
	}
}
