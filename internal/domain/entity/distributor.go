package entity

import "time"

// Estados de un pedido a distribuidor. pending es el inicial;
// complete y cancelled son terminales. Solo la transición a complete
// repone stock, y debe disparar ese efecto exactamente una vez.
const (
	DistOrderPending   = "pending"
	DistOrderComplete  = "complete"
	DistOrderCancelled = "cancelled"
)

// Distributor proveedor al que se le hacen pedidos de reposición.
// Solo metadatos de contacto; sin invariantes propios.
type Distributor struct {
	ID          string
	Name        string
	ContactName string
	Email       string
	Phone       string
	Address     string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// DistributorOrder pedido de reposición a un distribuidor.
type DistributorOrder struct {
	ID                   string
	DistributorID        string
	UserID               string
	ExpectedDeliveryDate *time.Time
	Status               string // pending, complete, cancelled
	Notes                string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// DistributorOrderItem línea del pedido: variación y cantidad pedida.
type DistributorOrderItem struct {
	ID          string
	OrderID     string
	VariationID string
	Quantity    int64
}

// Terminal indica si el estado ya no admite transiciones.
func (o *DistributorOrder) Terminal() bool {
	return o.Status == DistOrderComplete || o.Status == DistOrderCancelled
}
