package stock

import (
	"context"

	"github.com/jpcardenas/ordenes-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que el contador de stock y la fila
// del historial se escriban juntos o no se escriba ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		varRepo repository.VariationRepository,
		histRepo repository.StockHistoryRepository,
	) error) error
}
