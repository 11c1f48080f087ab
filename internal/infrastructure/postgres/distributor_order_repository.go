package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jpcardenas/ordenes-api/internal/domain/entity"
	"github.com/jpcardenas/ordenes-api/internal/domain/repository"
)

var _ repository.DistributorOrderRepository = (*DistributorOrderRepo)(nil)

// DistributorOrderRepo implementación de DistributorOrderRepository sobre
// PostgreSQL (usable con pool o tx). GetForUpdate es la pieza clave: la
// transición a complete se decide con la fila bloqueada.
type DistributorOrderRepo struct {
	q Querier
}

// NewDistributorOrderRepository construye el adaptador de pedidos a distribuidor. Pasar pool o tx (Querier).
func NewDistributorOrderRepository(q Querier) *DistributorOrderRepo {
	return &DistributorOrderRepo{q: q}
}

const distOrderColumns = `id, distributor_id, user_id, expected_delivery_date, status, notes, created_at, updated_at`

func scanDistOrder(row pgx.Row) (*entity.DistributorOrder, error) {
	var o entity.DistributorOrder
	err := row.Scan(&o.ID, &o.DistributorID, &o.UserID, &o.ExpectedDeliveryDate,
		&o.Status, &o.Notes, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// Create persiste el pedido y todas sus líneas.
func (r *DistributorOrderRepo) Create(order *entity.DistributorOrder, items []*entity.DistributorOrderItem) error {
	query := `
		INSERT INTO distributor_orders (id, distributor_id, user_id, expected_delivery_date, status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.DistributorID, order.UserID, order.ExpectedDeliveryDate,
		order.Status, order.Notes, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert distributor order: %w", err)
	}
	return r.insertItems(items)
}

// GetByID obtiene un pedido por ID.
func (r *DistributorOrderRepo) GetByID(id string) (*entity.DistributorOrder, error) {
	query := `SELECT ` + distOrderColumns + ` FROM distributor_orders WHERE id = $1`
	o, err := scanDistOrder(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get distributor order: %w", err)
	}
	return o, nil
}

// GetForUpdate obtiene el pedido y bloquea la fila (SELECT FOR UPDATE).
// Con dos completados concurrentes, el segundo espera el lock y al releer
// encuentra el pedido ya completo.
func (r *DistributorOrderRepo) GetForUpdate(id string) (*entity.DistributorOrder, error) {
	query := `SELECT ` + distOrderColumns + ` FROM distributor_orders WHERE id = $1 FOR UPDATE`
	o, err := scanDistOrder(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get distributor order for update: %w", err)
	}
	return o, nil
}

// ListItems lista las líneas del pedido.
func (r *DistributorOrderRepo) ListItems(orderID string) ([]*entity.DistributorOrderItem, error) {
	query := `
		SELECT id, order_id, variation_id, quantity
		FROM distributor_order_items WHERE order_id = $1 ORDER BY variation_id`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()
	var list []*entity.DistributorOrderItem
	for rows.Next() {
		var item entity.DistributorOrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.VariationID, &item.Quantity); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		list = append(list, &item)
	}
	return list, rows.Err()
}

// List lista pedidos con paginación; status vacío lista todos.
func (r *DistributorOrderRepo) List(status string, limit, offset int) ([]*entity.DistributorOrder, error) {
	query := `
		SELECT ` + distOrderColumns + ` FROM distributor_orders
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list distributor orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.DistributorOrder
	for rows.Next() {
		o, err := scanDistOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan distributor order: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

// Update actualiza estado, fecha esperada y notas del pedido.
func (r *DistributorOrderRepo) Update(order *entity.DistributorOrder) error {
	query := `
		UPDATE distributor_orders
		SET expected_delivery_date = $2, status = $3, notes = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.ExpectedDeliveryDate, order.Status, order.Notes, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update distributor order: %w", err)
	}
	return nil
}

// ReplaceItems reemplaza todas las líneas del pedido (solo mientras está pendiente).
func (r *DistributorOrderRepo) ReplaceItems(orderID string, items []*entity.DistributorOrderItem) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM distributor_order_items WHERE order_id = $1`, orderID)
	if err != nil {
		return fmt.Errorf("delete order items: %w", err)
	}
	return r.insertItems(items)
}

func (r *DistributorOrderRepo) insertItems(items []*entity.DistributorOrderItem) error {
	query := `
		INSERT INTO distributor_order_items (id, order_id, variation_id, quantity)
		VALUES ($1, $2, $3, $4)`
	for _, item := range items {
		if _, err := r.q.Exec(context.Background(), query, item.ID, item.OrderID, item.VariationID, item.Quantity); err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}
	return nil
}
