package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jpcardenas/ordenes-api/internal/application/distorder"
	"github.com/jpcardenas/ordenes-api/internal/application/kitsale"
	"github.com/jpcardenas/ordenes-api/internal/application/orders"
	"github.com/jpcardenas/ordenes-api/internal/application/stock"
	"github.com/jpcardenas/ordenes-api/internal/domain/repository"
)

// Ensure TxRunner implements todos los puertos transaccionales de la app.
var _ stock.TxRunner = (*TxRunner)(nil)
var _ kitsale.TxRunner = (*TxRunner)(nil)
var _ distorder.TxRunner = (*TxRunner)(nil)
var _ orders.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción con repos de stock atados a la tx (ajustes manuales).
func (r *TxRunner) Run(ctx context.Context, fn func(
	varRepo repository.VariationRepository,
	histRepo repository.StockHistoryRepository,
) error) error {
	return r.inTx(ctx, func(tx Querier) error {
		return fn(NewVariationRepository(tx), NewStockHistoryRepository(tx))
	})
}

// RunKitSale inicia una transacción que cubre la venta de un kit completa.
func (r *TxRunner) RunKitSale(ctx context.Context, fn func(
	kitRepo repository.KitRepository,
	saleRepo repository.KitSaleRepository,
	varRepo repository.VariationRepository,
	histRepo repository.StockHistoryRepository,
) error) error {
	return r.inTx(ctx, func(tx Querier) error {
		return fn(NewKitRepository(tx), NewKitSaleRepository(tx),
			NewVariationRepository(tx), NewStockHistoryRepository(tx))
	})
}

// RunDistOrder inicia una transacción que cubre la recepción de un pedido a distribuidor.
func (r *TxRunner) RunDistOrder(ctx context.Context, fn func(
	orderRepo repository.DistributorOrderRepository,
	varRepo repository.VariationRepository,
	histRepo repository.StockHistoryRepository,
) error) error {
	return r.inTx(ctx, func(tx Querier) error {
		return fn(NewDistributorOrderRepository(tx),
			NewVariationRepository(tx), NewStockHistoryRepository(tx))
	})
}

// RunBilling inicia una transacción que cubre una cobranza sobre un pedido.
func (r *TxRunner) RunBilling(ctx context.Context, fn func(
	orderRepo repository.OrderRepository,
	billingRepo repository.BillingRepository,
) error) error {
	return r.inTx(ctx, func(tx Querier) error {
		return fn(NewOrderRepository(tx), NewBillingRepository(tx))
	})
}

// inTx ejecuta fn dentro de una transacción con Commit o Rollback.
func (r *TxRunner) inTx(ctx context.Context, fn func(tx Querier) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
