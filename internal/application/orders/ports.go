package orders

import (
	"context"

	"github.com/jpcardenas/ordenes-api/internal/domain/repository"
)

// TxRunner abre la transacción que cubre una cobranza: fila del historial y
// acumulador PaidAmount del pedido se escriben juntos, con la fila del pedido
// bloqueada para serializar cobros concurrentes.
type TxRunner interface {
	RunBilling(ctx context.Context, fn func(
		orderRepo repository.OrderRepository,
		billingRepo repository.BillingRepository,
	) error) error
}
