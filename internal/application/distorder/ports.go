package distorder

import (
	"context"

	"github.com/jpcardenas/ordenes-api/internal/domain/repository"
)

// TxRunner abre la transacción que cubre el cambio de estado del pedido y la
// reposición de stock de todas sus líneas.
type TxRunner interface {
	RunDistOrder(ctx context.Context, fn func(
		orderRepo repository.DistributorOrderRepository,
		varRepo repository.VariationRepository,
		histRepo repository.StockHistoryRepository,
	) error) error
}
