package repository

import "github.com/jpcardenas/ordenes-api/internal/domain/entity"

// StockHistoryRepository puerto del libro mayor de inventario.
// Solo inserta y lista: las filas nunca se modifican ni se borran.
type StockHistoryRepository interface {
	Append(entry *entity.StockHistory) error
	ListByVariation(variationID string, limit, offset int) ([]*entity.StockHistory, error)
}
