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

var _ repository.KitRepository = (*KitRepo)(nil)

// KitRepo implementación de KitRepository sobre PostgreSQL (usable con pool o tx).
type KitRepo struct {
	q Querier
}

// NewKitRepository construye el adaptador de kits. Pasar pool o tx (Querier).
func NewKitRepository(q Querier) *KitRepo {
	return &KitRepo{q: q}
}

// Create persiste el kit y todas sus líneas.
func (r *KitRepo) Create(kit *entity.Kit, products []*entity.KitProduct) error {
	query := `
		INSERT INTO kits (id, name, description, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		kit.ID, kit.Name, kit.Description, kit.Active, kit.CreatedAt, kit.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert kit: %w", err)
	}
	return r.insertProducts(products)
}

// GetByID obtiene un kit por ID.
func (r *KitRepo) GetByID(id string) (*entity.Kit, error) {
	query := `
		SELECT id, name, description, active, created_at, updated_at
		FROM kits WHERE id = $1`
	var k entity.Kit
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&k.ID, &k.Name, &k.Description, &k.Active, &k.CreatedAt, &k.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get kit: %w", err)
	}
	return &k, nil
}

// ListProducts lista las líneas del kit.
func (r *KitRepo) ListProducts(kitID string) ([]*entity.KitProduct, error) {
	query := `
		SELECT id, kit_id, variation_id, quantity
		FROM kit_products WHERE kit_id = $1 ORDER BY variation_id`
	rows, err := r.q.Query(context.Background(), query, kitID)
	if err != nil {
		return nil, fmt.Errorf("list kit products: %w", err)
	}
	defer rows.Close()
	var list []*entity.KitProduct
	for rows.Next() {
		var p entity.KitProduct
		if err := rows.Scan(&p.ID, &p.KitID, &p.VariationID, &p.Quantity); err != nil {
			return nil, fmt.Errorf("scan kit product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// List lista kits con paginación.
func (r *KitRepo) List(activeOnly bool, limit, offset int) ([]*entity.Kit, error) {
	query := `
		SELECT id, name, description, active, created_at, updated_at
		FROM kits WHERE ($1 = false OR active = true)
		ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, activeOnly, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list kits: %w", err)
	}
	defer rows.Close()
	var list []*entity.Kit
	for rows.Next() {
		var k entity.Kit
		if err := rows.Scan(&k.ID, &k.Name, &k.Description, &k.Active, &k.CreatedAt, &k.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan kit: %w", err)
		}
		list = append(list, &k)
	}
	return list, rows.Err()
}

// Update actualiza metadatos del kit.
func (r *KitRepo) Update(kit *entity.Kit) error {
	query := `
		UPDATE kits SET name = $2, description = $3, active = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		kit.ID, kit.Name, kit.Description, kit.Active, kit.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update kit: %w", err)
	}
	return nil
}

// ReplaceProducts reemplaza todas las líneas del kit. Las ventas pasadas no
// se ven afectadas: sus descuentos ya quedaron en el historial.
func (r *KitRepo) ReplaceProducts(kitID string, products []*entity.KitProduct) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM kit_products WHERE kit_id = $1`, kitID)
	if err != nil {
		return fmt.Errorf("delete kit products: %w", err)
	}
	return r.insertProducts(products)
}

func (r *KitRepo) insertProducts(products []*entity.KitProduct) error {
	query := `
		INSERT INTO kit_products (id, kit_id, variation_id, quantity)
		VALUES ($1, $2, $3, $4)`
	for _, p := range products {
		if _, err := r.q.Exec(context.Background(), query, p.ID, p.KitID, p.VariationID, p.Quantity); err != nil {
			return fmt.Errorf("insert kit product: %w", err)
		}
	}
	return nil
}
