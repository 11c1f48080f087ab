package entity

import "time"

// Razones de cambio de stock.
const (
	ReasonManual        = "manual"
	ReasonKitSale       = "kit_sale"
	ReasonOrderReceived = "order_received"
	ReasonAdjustment    = "adjustment"
	ReasonDamaged       = "damaged"
	ReasonExpired       = "expired"
)

// ValidStockReason indica si la razón es una de las enumeradas.
func ValidStockReason(r string) bool {
	switch r {
	case ReasonManual, ReasonKitSale, ReasonOrderReceived,
		ReasonAdjustment, ReasonDamaged, ReasonExpired:
		return true
	}
	return false
}

// RefKind discrimina la referencia de un movimiento de stock.
type RefKind string

const (
	RefNone    RefKind = ""
	RefKitSale RefKind = "kit_sale"
	RefOrder   RefKind = "order"
)

// StockRef referencia tipada a la entidad que causó el movimiento
// (venta de kit o pedido a distribuidor). El valor cero es "sin referencia".
type StockRef struct {
	Kind RefKind
	ID   string
}

// KitSaleRef referencia a una venta de kit.
func KitSaleRef(id string) StockRef { return StockRef{Kind: RefKitSale, ID: id} }

// OrderRef referencia a un pedido a distribuidor.
func OrderRef(id string) StockRef { return StockRef{Kind: RefOrder, ID: id} }

// IsZero indica si no hay referencia.
func (r StockRef) IsZero() bool { return r.Kind == RefNone }

// StockHistory es una fila del libro mayor de inventario: quién cambió cuánto,
// por qué y cuándo. Las filas son inmutables y solo se agregan; la suma de
// ChangeAmount por variación reconcilia con ProductVariation.CurrentStock.
type StockHistory struct {
	ID           string
	VariationID  string
	UserID       string
	ChangeAmount int64 // positivo = entrada, negativo = salida
	Reason       string
	Reference    StockRef
	Notes        string
	CreatedAt    time.Time
}
