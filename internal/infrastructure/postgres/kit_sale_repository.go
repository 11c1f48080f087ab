package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jpcardenas/ordenes-api/internal/domain/entity"
	"github.com/jpcardenas/ordenes-api/internal/domain/repository"
)

var _ repository.KitSaleRepository = (*KitSaleRepo)(nil)

// KitSaleRepo implementación de KitSaleRepository sobre PostgreSQL.
// Las ventas son inmutables: no hay UPDATE ni DELETE.
type KitSaleRepo struct {
	q Querier
}

// NewKitSaleRepository construye el adaptador de ventas de kit. Pasar pool o tx (Querier).
func NewKitSaleRepository(q Querier) *KitSaleRepo {
	return &KitSaleRepo{q: q}
}

// Create persiste una venta de kit.
func (r *KitSaleRepo) Create(sale *entity.KitSale) error {
	query := `
		INSERT INTO kit_sales (id, kit_id, quantity, sale_date, user_id, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.KitID, sale.Quantity, sale.SaleDate, sale.UserID, sale.Notes, sale.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert kit sale: %w", err)
	}
	return nil
}

// GetByID obtiene una venta por ID.
func (r *KitSaleRepo) GetByID(id string) (*entity.KitSale, error) {
	query := `
		SELECT id, kit_id, quantity, sale_date, user_id, notes, created_at
		FROM kit_sales WHERE id = $1`
	var s entity.KitSale
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.KitID, &s.Quantity, &s.SaleDate, &s.UserID, &s.Notes, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get kit sale: %w", err)
	}
	return &s, nil
}

// ListBetween lista ventas por rango de fecha (extremos opcionales),
// más reciente primero. limit en cero lista sin tope.
func (r *KitSaleRepo) ListBetween(from, to *time.Time, limit, offset int) ([]*entity.KitSale, error) {
	query := `
		SELECT id, kit_id, quantity, sale_date, user_id, notes, created_at
		FROM kit_sales
		WHERE ($1::timestamptz IS NULL OR sale_date >= $1)
		  AND ($2::timestamptz IS NULL OR sale_date <= $2)
		ORDER BY sale_date DESC
		LIMIT CASE WHEN $3 > 0 THEN $3 END OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, from, to, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list kit sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.KitSale
	for rows.Next() {
		var s entity.KitSale
		if err := rows.Scan(&s.ID, &s.KitID, &s.Quantity, &s.SaleDate, &s.UserID, &s.Notes, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan kit sale: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
