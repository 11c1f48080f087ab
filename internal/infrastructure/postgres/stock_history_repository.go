package postgres

import (
	"context"
	"fmt"

	"github.com/jpcardenas/ordenes-api/internal/domain/entity"
	"github.com/jpcardenas/ordenes-api/internal/domain/repository"
)

var _ repository.StockHistoryRepository = (*StockHistoryRepo)(nil)

// StockHistoryRepo implementación del libro mayor de inventario sobre
// PostgreSQL. Solo INSERT y SELECT: las filas nunca se modifican.
type StockHistoryRepo struct {
	q Querier
}

// NewStockHistoryRepository construye el adaptador del historial. Pasar pool o tx (Querier).
func NewStockHistoryRepository(q Querier) *StockHistoryRepo {
	return &StockHistoryRepo{q: q}
}

// Append inserta una fila del historial. La referencia tipada se aplana a
// reference_type y reference_id (NULL cuando no hay referencia).
func (r *StockHistoryRepo) Append(entry *entity.StockHistory) error {
	query := `
		INSERT INTO stock_history (id, variation_id, user_id, change_amount, reason, reference_type, reference_id, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	var refType, refID *string
	if !entry.Reference.IsZero() {
		kind := string(entry.Reference.Kind)
		refType, refID = &kind, &entry.Reference.ID
	}
	_, err := r.q.Exec(context.Background(), query,
		entry.ID, entry.VariationID, entry.UserID, entry.ChangeAmount,
		entry.Reason, refType, refID, entry.Notes, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock history: %w", err)
	}
	return nil
}

// ListByVariation lista el historial de una variación, más reciente primero.
func (r *StockHistoryRepo) ListByVariation(variationID string, limit, offset int) ([]*entity.StockHistory, error) {
	query := `
		SELECT id, variation_id, user_id, change_amount, reason, reference_type, reference_id, notes, created_at
		FROM stock_history WHERE variation_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, variationID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock history: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockHistory
	for rows.Next() {
		var e entity.StockHistory
		var refType, refID *string
		if err := rows.Scan(&e.ID, &e.VariationID, &e.UserID, &e.ChangeAmount,
			&e.Reason, &refType, &refID, &e.Notes, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan stock history: %w", err)
		}
		if refType != nil && refID != nil {
			e.Reference = entity.StockRef{Kind: entity.RefKind(*refType), ID: *refID}
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
