package repository

import "github.com/jpcardenas/ordenes-api/internal/domain/entity"

// ProductRepository puerto de persistencia para productos (agrupadores).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	List(activeOnly bool, limit, offset int) ([]*entity.Product, error)
	Update(product *entity.Product) error
}

// VariationRepository puerto de persistencia para variaciones de producto.
// GetForUpdate bloquea la fila (SELECT FOR UPDATE); es la base del modelo de
// concurrencia: toda lectura-validación-escritura de CurrentStock ocurre con
// la fila bloqueada dentro de una transacción.
type VariationRepository interface {
	Create(v *entity.ProductVariation) error
	GetByID(id string) (*entity.ProductVariation, error)
	GetForUpdate(id string) (*entity.ProductVariation, error)
	ListByProduct(productID string, activeOnly bool) ([]*entity.ProductVariation, error)
	ListActive() ([]*entity.ProductVariation, error)
	Update(v *entity.ProductVariation) error
	UpdateStock(id string, newStock int64) error
}
