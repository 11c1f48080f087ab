package orders

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jpcardenas/ordenes-api/internal/domain/entity"
)

// Umbral de proximidad de montos para el detector por lotes: dos pedidos del
// mismo teléfono con diferencia relativa de total ≤ 5% se consideran
// probables duplicados.
var duplicateAmountThreshold = decimal.NewFromFloat(0.05)

// DetectDuplicates recorre todos los pares de pedidos y marca como duplicados
// los que comparten teléfono con montos a menos del 5% relativo. Los flags son
// monotónicos: nunca se desmarca un pedido ya marcado. Devuelve los pedidos
// recién marcados.
//
// El barrido es O(n²) sobre todos los pedidos — aceptable para el volumen de
// back-office de este sistema; si el volumen crece hay que pasar a bucketing
// por teléfono. Respeta la cancelación del contexto entre pares para poder
// cortarlo como job por lotes.
func (uc *UseCase) DetectDuplicates(ctx context.Context) ([]*entity.Order, error) {
	all, err := uc.orderRepo.ListAll()
	if err != nil {
		return nil, err
	}

	var flagged []*entity.Order
	for i := range all {
		if err := ctx.Err(); err != nil {
			return flagged, err
		}
		for j := i + 1; j < len(all); j++ {
			a, b := all[i], all[j]
			if a.CustomerPhone != b.CustomerPhone {
				continue
			}
			if !amountsClose(a.TotalAmount, b.TotalAmount) {
				continue
			}
			if !a.IsDuplicate {
				if err := uc.orderRepo.MarkDuplicate(a.ID); err != nil {
					return flagged, err
				}
				a.IsDuplicate = true
				flagged = append(flagged, a)
			}
			if !b.IsDuplicate {
				if err := uc.orderRepo.MarkDuplicate(b.ID); err != nil {
					return flagged, err
				}
				b.IsDuplicate = true
				flagged = append(flagged, b)
			}
		}
	}
	return flagged, nil
}

// amountsClose indica si |a−b| / max(a,b) ≤ 5%.
func amountsClose(a, b decimal.Decimal) bool {
	maxAmount := decimal.Max(a, b)
	if !maxAmount.IsPositive() {
		// Ambos montos en cero: mismos valores, diferencia relativa nula
		return true
	}
	diff := a.Sub(b).Abs()
	return diff.Div(maxAmount).LessThanOrEqual(duplicateAmountThreshold)
}

// ListDuplicates lista los pedidos ya marcados como duplicados.
func (uc *UseCase) ListDuplicates(ctx context.Context) ([]*entity.Order, error) {
	return uc.orderRepo.ListDuplicates()
}
