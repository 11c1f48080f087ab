package stock

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jpcardenas/ordenes-api/internal/domain"
	"github.com/jpcardenas/ordenes-api/internal/domain/entity"
	"github.com/jpcardenas/ordenes-api/internal/domain/repository"
)

// Accessor es la única vía de mutación de stock: lee el contador con la fila
// bloqueada, valida no-negatividad y escribe el nuevo contador más una fila
// del historial en la misma transacción.
type Accessor struct {
	txRunner TxRunner
	varRepo  repository.VariationRepository
	histRepo repository.StockHistoryRepository
}

// NewAccessor construye el accessor. varRepo e histRepo van atados al pool
// (solo lecturas fuera de transacción).
func NewAccessor(txRunner TxRunner, varRepo repository.VariationRepository, histRepo repository.StockHistoryRepository) *Accessor {
	return &Accessor{txRunner: txRunner, varRepo: varRepo, histRepo: histRepo}
}

// ChangeInput entrada para aplicar un cambio de stock.
// Amount firmado: positivo suma, negativo descuenta.
type ChangeInput struct {
	VariationID string
	Amount      int64
	Reason      string
	UserID      string
	Reference   entity.StockRef
	Notes       string
}

// ApplyChange aplica un cambio de stock en su propia transacción
// (ajustes manuales, stock inicial). Devuelve la fila del historial creada.
func (a *Accessor) ApplyChange(ctx context.Context, in ChangeInput) (*entity.StockHistory, error) {
	if in.VariationID == "" || in.Amount == 0 || in.UserID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidStockReason(in.Reason) {
		return nil, domain.ErrInvalidInput
	}
	var entry *entity.StockHistory
	err := a.txRunner.Run(ctx, func(
		varRepo repository.VariationRepository,
		histRepo repository.StockHistoryRepository,
	) error {
		var err error
		entry, err = ApplyChangeInTx(varRepo, histRepo, in, time.Now())
		return err
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// ApplyChangeInTx aplica el cambio usando repositorios ya atados a la
// transacción del caller (motor de ventas de kit, pedidos a distribuidor).
// Bloquea la fila de la variación, rechaza resultados negativos con
// StockShortage y deja el contador y el historial consistentes entre sí.
func ApplyChangeInTx(
	varRepo repository.VariationRepository,
	histRepo repository.StockHistoryRepository,
	in ChangeInput,
	now time.Time,
) (*entity.StockHistory, error) {
	variation, err := varRepo.GetForUpdate(in.VariationID)
	if err != nil {
		return nil, err
	}
	if variation == nil {
		return nil, domain.ErrNotFound
	}
	newStock := variation.CurrentStock + in.Amount
	if newStock < 0 {
		return nil, &domain.StockShortage{
			VariationID: in.VariationID,
			Required:    -in.Amount,
			Available:   variation.CurrentStock,
		}
	}
	if err := varRepo.UpdateStock(in.VariationID, newStock); err != nil {
		return nil, err
	}
	entry := &entity.StockHistory{
		ID:           uuid.New().String(),
		VariationID:  in.VariationID,
		UserID:       in.UserID,
		ChangeAmount: in.Amount,
		Reason:       in.Reason,
		Reference:    in.Reference,
		Notes:        in.Notes,
		CreatedAt:    now,
	}
	if err := histRepo.Append(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// History lista el historial de una variación (más reciente primero).
func (a *Accessor) History(ctx context.Context, variationID string, limit, offset int) ([]*entity.StockHistory, error) {
	variation, err := a.varRepo.GetByID(variationID)
	if err != nil {
		return nil, err
	}
	if variation == nil {
		return nil, domain.ErrNotFound
	}
	return a.histRepo.ListByVariation(variationID, limit, offset)
}
