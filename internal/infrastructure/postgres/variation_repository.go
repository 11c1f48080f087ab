package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jpcardenas/ordenes-api/internal/domain"
	"github.com/jpcardenas/ordenes-api/internal/domain/entity"
	"github.com/jpcardenas/ordenes-api/internal/domain/repository"
)

var _ repository.VariationRepository = (*VariationRepo)(nil)

// VariationRepo implementación de VariationRepository sobre PostgreSQL (usable con pool o tx).
type VariationRepo struct {
	q Querier
}

// NewVariationRepository construye el adaptador de variaciones. Pasar pool o tx (Querier).
func NewVariationRepository(q Querier) *VariationRepo {
	return &VariationRepo{q: q}
}

const variationColumns = `id, product_id, type, cost, sale_price, current_stock, minimum_stock, active, created_at, updated_at`

func scanVariation(row pgx.Row) (*entity.ProductVariation, error) {
	var v entity.ProductVariation
	err := row.Scan(&v.ID, &v.ProductID, &v.Type, &v.Cost, &v.SalePrice,
		&v.CurrentStock, &v.MinimumStock, &v.Active, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Create persiste una nueva variación.
func (r *VariationRepo) Create(v *entity.ProductVariation) error {
	query := `
		INSERT INTO product_variations (id, product_id, type, cost, sale_price, current_stock, minimum_stock, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		v.ID, v.ProductID, v.Type, v.Cost, v.SalePrice,
		v.CurrentStock, v.MinimumStock, v.Active, v.CreatedAt, v.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert variation: %w", err)
	}
	return nil
}

// GetByID obtiene una variación por ID.
func (r *VariationRepo) GetByID(id string) (*entity.ProductVariation, error) {
	query := `SELECT ` + variationColumns + ` FROM product_variations WHERE id = $1`
	v, err := scanVariation(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get variation: %w", err)
	}
	return v, nil
}

// GetForUpdate obtiene la variación y bloquea la fila (SELECT FOR UPDATE).
// Base del modelo de concurrencia de stock: el contador se lee y escribe con
// la fila bloqueada dentro de la transacción.
func (r *VariationRepo) GetForUpdate(id string) (*entity.ProductVariation, error) {
	query := `SELECT ` + variationColumns + ` FROM product_variations WHERE id = $1 FOR UPDATE`
	v, err := scanVariation(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get variation for update: %w", err)
	}
	return v, nil
}

// ListByProduct lista las variaciones de un producto.
func (r *VariationRepo) ListByProduct(productID string, activeOnly bool) ([]*entity.ProductVariation, error) {
	query := `
		SELECT ` + variationColumns + ` FROM product_variations
		WHERE product_id = $1 AND ($2 = false OR active = true)
		ORDER BY type`
	rows, err := r.q.Query(context.Background(), query, productID, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("list variations: %w", err)
	}
	defer rows.Close()
	return collectVariations(rows)
}

// ListActive lista todas las variaciones activas (vistas de inventario).
func (r *VariationRepo) ListActive() ([]*entity.ProductVariation, error) {
	query := `SELECT ` + variationColumns + ` FROM product_variations WHERE active = true ORDER BY product_id, type`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list active variations: %w", err)
	}
	defer rows.Close()
	return collectVariations(rows)
}

// Update actualiza precios, mínimo y estado. No toca current_stock:
// esa columna solo se mueve por UpdateStock bajo el accessor.
func (r *VariationRepo) Update(v *entity.ProductVariation) error {
	query := `
		UPDATE product_variations
		SET type = $2, cost = $3, sale_price = $4, minimum_stock = $5, active = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		v.ID, v.Type, v.Cost, v.SalePrice, v.MinimumStock, v.Active, v.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update variation: %w", err)
	}
	return nil
}

// UpdateStock fija el contador materializado de stock.
func (r *VariationRepo) UpdateStock(id string, newStock int64) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE product_variations SET current_stock = $2, updated_at = now() WHERE id = $1`,
		id, newStock,
	)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	return nil
}

func collectVariations(rows pgx.Rows) ([]*entity.ProductVariation, error) {
	var list []*entity.ProductVariation
	for rows.Next() {
		v, err := scanVariation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan variation: %w", err)
		}
		list = append(list, v)
	}
	return list, rows.Err()
}
