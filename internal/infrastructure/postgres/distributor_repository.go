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

var _ repository.DistributorRepository = (*DistributorRepo)(nil)

// DistributorRepo implementación de DistributorRepository sobre PostgreSQL (usable con pool o tx).
type DistributorRepo struct {
	q Querier
}

// NewDistributorRepository construye el adaptador de distribuidores. Pasar pool o tx (Querier).
func NewDistributorRepository(q Querier) *DistributorRepo {
	return &DistributorRepo{q: q}
}

// Create persiste un nuevo distribuidor.
func (r *DistributorRepo) Create(d *entity.Distributor) error {
	query := `
		INSERT INTO distributors (id, name, contact_name, email, phone, address, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		d.ID, d.Name, d.ContactName, d.Email, d.Phone, d.Address, d.Active, d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert distributor: %w", err)
	}
	return nil
}

// GetByID obtiene un distribuidor por ID.
func (r *DistributorRepo) GetByID(id string) (*entity.Distributor, error) {
	query := `
		SELECT id, name, contact_name, email, phone, address, active, created_at, updated_at
		FROM distributors WHERE id = $1`
	var d entity.Distributor
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&d.ID, &d.Name, &d.ContactName, &d.Email, &d.Phone, &d.Address, &d.Active, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get distributor: %w", err)
	}
	return &d, nil
}

// List lista distribuidores con paginación.
func (r *DistributorRepo) List(activeOnly bool, limit, offset int) ([]*entity.Distributor, error) {
	query := `
		SELECT id, name, contact_name, email, phone, address, active, created_at, updated_at
		FROM distributors WHERE ($1 = false OR active = true)
		ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, activeOnly, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list distributors: %w", err)
	}
	defer rows.Close()
	var list []*entity.Distributor
	for rows.Next() {
		var d entity.Distributor
		if err := rows.Scan(&d.ID, &d.Name, &d.ContactName, &d.Email, &d.Phone, &d.Address,
			&d.Active, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan distributor: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// Update actualiza datos de contacto y estado activo.
func (r *DistributorRepo) Update(d *entity.Distributor) error {
	query := `
		UPDATE distributors SET name = $2, contact_name = $3, email = $4, phone = $5, address = $6, active = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		d.ID, d.Name, d.ContactName, d.Email, d.Phone, d.Address, d.Active, d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update distributor: %w", err)
	}
	return nil
}
