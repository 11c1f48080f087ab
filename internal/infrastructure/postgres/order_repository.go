package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jpcardenas/ordenes-api/internal/domain"
	"github.com/jpcardenas/ordenes-api/internal/domain/entity"
	"github.com/jpcardenas/ordenes-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación de OrderRepository sobre PostgreSQL (usable con
// pool o tx). GetForUpdate serializa las cobranzas concurrentes sobre el
// mismo pedido.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador de pedidos de cliente. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderColumns = `id, order_number, customer_name, customer_phone, customer_address, total_amount, paid_amount, status, tracking_code, seller_id, collector_id, is_duplicate, created_at, updated_at`

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	err := row.Scan(&o.ID, &o.OrderNumber, &o.CustomerName, &o.CustomerPhone, &o.CustomerAddr,
		&o.TotalAmount, &o.PaidAmount, &o.Status, &o.TrackingCode,
		&o.SellerID, &o.CollectorID, &o.IsDuplicate, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepo) queryOrders(query string, args ...any) ([]*entity.Order, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

// Create persiste un nuevo pedido.
func (r *OrderRepo) Create(order *entity.Order) error {
	query := `
		INSERT INTO orders (id, order_number, customer_name, customer_phone, customer_address, total_amount, paid_amount, status, tracking_code, seller_id, collector_id, is_duplicate, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.OrderNumber, order.CustomerName, order.CustomerPhone, order.CustomerAddr,
		order.TotalAmount, order.PaidAmount, order.Status, order.TrackingCode,
		order.SellerID, order.CollectorID, order.IsDuplicate, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// GetByID obtiene un pedido por ID.
func (r *OrderRepo) GetByID(id string) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	o, err := scanOrder(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

// GetForUpdate obtiene el pedido y bloquea la fila (SELECT FOR UPDATE).
// El acumulador PaidAmount se lee y escribe con la fila bloqueada para que
// dos cobranzas concurrentes no pierdan ninguna suma.
func (r *OrderRepo) GetForUpdate(id string) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1 FOR UPDATE`
	o, err := scanOrder(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order for update: %w", err)
	}
	return o, nil
}

// GetByNumber obtiene un pedido por su número de negocio.
func (r *OrderRepo) GetByNumber(orderNumber string) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE order_number = $1`
	o, err := scanOrder(r.q.QueryRow(context.Background(), query, orderNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order by number: %w", err)
	}
	return o, nil
}

// List lista pedidos con paginación, más reciente primero.
func (r *OrderRepo) List(limit, offset int) ([]*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	return r.queryOrders(query, limit, offset)
}

// ListByStatus lista pedidos por estado.
func (r *OrderRepo) ListByStatus(status string) ([]*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE status = $1 ORDER BY created_at DESC`
	return r.queryOrders(query, status)
}

// ListBySeller lista pedidos de un vendedor.
func (r *OrderRepo) ListBySeller(sellerID string) ([]*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE seller_id = $1 ORDER BY created_at DESC`
	return r.queryOrders(query, sellerID)
}

// ListByCollector lista pedidos de un cobrador.
func (r *OrderRepo) ListByCollector(collectorID string) ([]*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE collector_id = $1 ORDER BY created_at DESC`
	return r.queryOrders(query, collectorID)
}

// ListByDateRange lista pedidos creados en el rango [from, to].
func (r *OrderRepo) ListByDateRange(from, to time.Time) ([]*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE created_at >= $1 AND created_at <= $2 ORDER BY created_at DESC`
	return r.queryOrders(query, from, to)
}

// ListDuplicates lista pedidos marcados como duplicados.
func (r *OrderRepo) ListDuplicates() ([]*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE is_duplicate = true ORDER BY created_at DESC`
	return r.queryOrders(query)
}

// ListAll lista todos los pedidos (barrido de detección de duplicados).
func (r *OrderRepo) ListAll() ([]*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at`
	return r.queryOrders(query)
}

// Search busca por número de pedido, nombre, teléfono o código de rastreo.
func (r *OrderRepo) Search(q string) ([]*entity.Order, error) {
	query := `
		SELECT ` + orderColumns + ` FROM orders
		WHERE order_number ILIKE $1 OR customer_name ILIKE $1
			OR customer_phone ILIKE $1 OR tracking_code ILIKE $1
		ORDER BY created_at DESC`
	return r.queryOrders(query, "%"+q+"%")
}

// Update actualiza el pedido completo.
func (r *OrderRepo) Update(order *entity.Order) error {
	query := `
		UPDATE orders
		SET customer_name = $2, customer_phone = $3, customer_address = $4,
		    total_amount = $5, paid_amount = $6, status = $7, tracking_code = $8,
		    seller_id = $9, collector_id = $10, is_duplicate = $11, updated_at = $12
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.CustomerName, order.CustomerPhone, order.CustomerAddr,
		order.TotalAmount, order.PaidAmount, order.Status, order.TrackingCode,
		order.SellerID, order.CollectorID, order.IsDuplicate, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	return nil
}

// MarkDuplicate levanta la bandera de duplicado. Solo pone true: no existe
// vía automática que la baje.
func (r *OrderRepo) MarkDuplicate(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE orders SET is_duplicate = true, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark duplicate: %w", err)
	}
	return nil
}

var _ repository.BillingRepository = (*BillingRepo)(nil)

// BillingRepo implementación del historial de cobranzas. Solo agrega y lista.
type BillingRepo struct {
	q Querier
}

// NewBillingRepository construye el adaptador de cobranzas. Pasar pool o tx (Querier).
func NewBillingRepository(q Querier) *BillingRepo {
	return &BillingRepo{q: q}
}

// Append inserta un registro de cobranza.
func (r *BillingRepo) Append(entry *entity.BillingEntry) error {
	query := `
		INSERT INTO billing_history (id, order_id, amount, notes, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		entry.ID, entry.OrderID, entry.Amount, entry.Notes, entry.CreatedBy, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert billing entry: %w", err)
	}
	return nil
}

// ListByOrder lista las cobranzas de un pedido en orden cronológico.
func (r *BillingRepo) ListByOrder(orderID string) ([]*entity.BillingEntry, error) {
	query := `
		SELECT id, order_id, amount, notes, created_by, created_at
		FROM billing_history WHERE order_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list billing entries: %w", err)
	}
	defer rows.Close()
	var list []*entity.BillingEntry
	for rows.Next() {
		var e entity.BillingEntry
		if err := rows.Scan(&e.ID, &e.OrderID, &e.Amount, &e.Notes, &e.CreatedBy, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan billing entry: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
