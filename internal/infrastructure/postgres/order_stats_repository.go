package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jpcardenas/ordenes-api/internal/domain/repository"
)

var _ repository.OrderStatsRepository = (*OrderStatsRepo)(nil)

// OrderStatsRepo consultas de solo lectura con agregados de pedidos en SQL.
type OrderStatsRepo struct {
	pool *pgxpool.Pool
}

// NewOrderStatsRepository construye el adaptador de estadísticas.
func NewOrderStatsRepository(pool *pgxpool.Pool) *OrderStatsRepo {
	return &OrderStatsRepo{pool: pool}
}

// GetStats totales de pedidos, monto y cobrado, más conteos por estado.
func (r *OrderStatsRepo) GetStats(ctx context.Context) (*repository.OrderStats, error) {
	stats := &repository.OrderStats{StatusCounts: map[string]int64{}}

	const totalsQuery = `
		SELECT COUNT(*), COALESCE(SUM(total_amount), 0), COALESCE(SUM(paid_amount), 0)
		FROM orders`
	err := r.pool.QueryRow(ctx, totalsQuery).Scan(
		&stats.TotalOrders, &stats.TotalAmount, &stats.TotalPaid,
	)
	if err != nil {
		return nil, fmt.Errorf("order stats totals: %w", err)
	}

	const byStatusQuery = `SELECT status, COUNT(*) FROM orders GROUP BY status`
	rows, err := r.pool.Query(ctx, byStatusQuery)
	if err != nil {
		return nil, fmt.Errorf("order stats by status: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var status string
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		stats.StatusCounts[status] = count
	}
	return stats, rows.Err()
}
