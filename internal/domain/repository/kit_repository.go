package repository

import (
	"time"

	"github.com/jpcardenas/ordenes-api/internal/domain/entity"
)

// KitRepository puerto de persistencia para kits y sus líneas.
type KitRepository interface {
	Create(kit *entity.Kit, products []*entity.KitProduct) error
	GetByID(id string) (*entity.Kit, error)
	ListProducts(kitID string) ([]*entity.KitProduct, error)
	List(activeOnly bool, limit, offset int) ([]*entity.Kit, error)
	Update(kit *entity.Kit) error
	// ReplaceProducts reemplaza todas las líneas del kit (patrón del update).
	ReplaceProducts(kitID string, products []*entity.KitProduct) error
}

// KitSaleRepository puerto de persistencia para ventas de kit.
type KitSaleRepository interface {
	Create(sale *entity.KitSale) error
	GetByID(id string) (*entity.KitSale, error)
	ListBetween(from, to *time.Time, limit, offset int) ([]*entity.KitSale, error)
}
