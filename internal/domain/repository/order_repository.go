package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jpcardenas/ordenes-api/internal/domain/entity"
)

// OrderRepository puerto de persistencia para pedidos de cliente y su
// historial de cobranzas. GetForUpdate serializa cobros concurrentes sobre
// el mismo pedido (PaidAmount consistente con la suma del historial).
type OrderRepository interface {
	Create(order *entity.Order) error
	GetByID(id string) (*entity.Order, error)
	GetForUpdate(id string) (*entity.Order, error)
	GetByNumber(orderNumber string) (*entity.Order, error)
	List(limit, offset int) ([]*entity.Order, error)
	ListByStatus(status string) ([]*entity.Order, error)
	ListBySeller(sellerID string) ([]*entity.Order, error)
	ListByCollector(collectorID string) ([]*entity.Order, error)
	ListByDateRange(from, to time.Time) ([]*entity.Order, error)
	ListDuplicates() ([]*entity.Order, error)
	ListAll() ([]*entity.Order, error)
	Search(query string) ([]*entity.Order, error)
	Update(order *entity.Order) error
	MarkDuplicate(id string) error
}

// BillingRepository puerto del historial de cobranzas (solo agrega y lista).
type BillingRepository interface {
	Append(entry *entity.BillingEntry) error
	ListByOrder(orderID string) ([]*entity.BillingEntry, error)
}

// OrderStats agregados de cobranza calculados en SQL.
type OrderStats struct {
	TotalOrders  int64
	TotalAmount  decimal.Decimal
	TotalPaid    decimal.Decimal
	StatusCounts map[string]int64
}

// OrderStatsRepository consultas de solo lectura sobre pedidos.
type OrderStatsRepository interface {
	GetStats(ctx context.Context) (*OrderStats, error)
}
