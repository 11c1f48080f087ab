package kitsale

import (
	"context"

	"github.com/jpcardenas/ordenes-api/internal/domain/repository"
)

// TxRunner abre la transacción que cubre la venta completa: verificación de
// stock, alta de la venta, descuentos y filas del historial. Todo persiste
// junto o se revierte junto.
type TxRunner interface {
	RunKitSale(ctx context.Context, fn func(
		kitRepo repository.KitRepository,
		saleRepo repository.KitSaleRepository,
		varRepo repository.VariationRepository,
		histRepo repository.StockHistoryRepository,
	) error) error
}
