package repository

import "github.com/jpcardenas/ordenes-api/internal/domain/entity"

// DistributorRepository puerto de persistencia para distribuidores.
type DistributorRepository interface {
	Create(d *entity.Distributor) error
	GetByID(id string) (*entity.Distributor, error)
	List(activeOnly bool, limit, offset int) ([]*entity.Distributor, error)
	Update(d *entity.Distributor) error
}

// DistributorOrderRepository puerto de persistencia para pedidos a distribuidor.
// GetForUpdate bloquea la fila del pedido: la transición a complete debe leerse
// y escribirse bajo el mismo bloqueo para que el efecto de stock dispare una
// sola vez aun con llamadas concurrentes.
type DistributorOrderRepository interface {
	Create(order *entity.DistributorOrder, items []*entity.DistributorOrderItem) error
	GetByID(id string) (*entity.DistributorOrder, error)
	GetForUpdate(id string) (*entity.DistributorOrder, error)
	ListItems(orderID string) ([]*entity.DistributorOrderItem, error)
	List(status string, limit, offset int) ([]*entity.DistributorOrder, error)
	Update(order *entity.DistributorOrder) error
	ReplaceItems(orderID string, items []*entity.DistributorOrderItem) error
}
