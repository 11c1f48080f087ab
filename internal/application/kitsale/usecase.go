package kitsale

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/jpcardenas/ordenes-api/internal/application/stock"
	"github.com/jpcardenas/ordenes-api/internal/domain"
	"github.com/jpcardenas/ordenes-api/internal/domain/entity"
	"github.com/jpcardenas/ordenes-api/internal/domain/repository"
)

// UseCase registra ventas de kit descontando stock de todas las líneas de
// forma atómica. La verificación de suficiencia y el descuento ocurren con
// las filas de las variaciones bloqueadas en la misma transacción: dos ventas
// concurrentes sobre la misma variación no pueden pasar ambas la verificación
// y sobregirar el stock.
type UseCase struct {
	txRunner TxRunner
	saleRepo repository.KitSaleRepository
	kitRepo  repository.KitRepository
}

// New construye el caso de uso. saleRepo y kitRepo van atados al pool
// (lecturas de listados fuera de transacción).
func New(txRunner TxRunner, saleRepo repository.KitSaleRepository, kitRepo repository.KitRepository) *UseCase {
	return &UseCase{txRunner: txRunner, saleRepo: saleRepo, kitRepo: kitRepo}
}

// SaleInput entrada para registrar una venta de kit.
// SaleDate nil usa la hora actual.
type SaleInput struct {
	KitID    string
	Quantity int64
	UserID   string
	SaleDate *time.Time
	Notes    string
}

// RecordSale registra la venta: carga el kit, verifica stock de cada línea
// (todo-o-nada), crea la venta y descuenta con razón kit_sale y referencia a
// la venta. Las líneas se bloquean en orden de variación para que dos ventas
// concurrentes no se bloqueen mutuamente en orden cruzado.
func (uc *UseCase) RecordSale(ctx context.Context, in SaleInput) (*entity.KitSale, error) {
	if in.KitID == "" || in.Quantity <= 0 || in.UserID == "" {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	saleDate := now
	if in.SaleDate != nil {
		saleDate = *in.SaleDate
	}

	var sale *entity.KitSale
	err := uc.txRunner.RunKitSale(ctx, func(
		kitRepo repository.KitRepository,
		saleRepo repository.KitSaleRepository,
		varRepo repository.VariationRepository,
		histRepo repository.StockHistoryRepository,
	) error {
		kit, err := kitRepo.GetByID(in.KitID)
		if err != nil {
			return err
		}
		if kit == nil {
			return domain.ErrNotFound
		}
		lines, err := kitRepo.ListProducts(in.KitID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return &domain.StateError{Entity: "kit", ID: in.KitID, State: "vacío", Reason: "el kit no tiene productos"}
		}

		// Orden determinista de bloqueo por variación
		sort.Slice(lines, func(i, j int) bool { return lines[i].VariationID < lines[j].VariationID })

		// Verificación previa con las filas bloqueadas: si alguna línea no
		// alcanza, se rechaza la venta completa sin descontar nada.
		for _, line := range lines {
			variation, err := varRepo.GetForUpdate(line.VariationID)
			if err != nil {
				return err
			}
			if variation == nil {
				return domain.ErrNotFound
			}
			required := line.Quantity * in.Quantity
			if variation.CurrentStock < required {
				return &domain.StockShortage{
					VariationID: line.VariationID,
					Required:    required,
					Available:   variation.CurrentStock,
				}
			}
		}

		sale = &entity.KitSale{
			ID:        uuid.New().String(),
			KitID:     in.KitID,
			Quantity:  in.Quantity,
			SaleDate:  saleDate,
			UserID:    in.UserID,
			Notes:     in.Notes,
			CreatedAt: now,
		}
		if err := saleRepo.Create(sale); err != nil {
			return err
		}

		// Un descuento + una fila del historial por línea, referenciando la venta
		for _, line := range lines {
			required := line.Quantity * in.Quantity
			if _, err := stock.ApplyChangeInTx(varRepo, histRepo, stock.ChangeInput{
				VariationID: line.VariationID,
				Amount:      -required,
				Reason:      entity.ReasonKitSale,
				UserID:      in.UserID,
				Reference:   entity.KitSaleRef(sale.ID),
				Notes:       fmt.Sprintf("Venta de kit: %s x%d", kit.Name, in.Quantity),
			}, now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

// List lista ventas con filtro opcional de fechas (más recientes primero).
func (uc *UseCase) List(ctx context.Context, from, to *time.Time, limit, offset int) ([]*entity.KitSale, error) {
	return uc.saleRepo.ListBetween(from, to, limit, offset)
}
