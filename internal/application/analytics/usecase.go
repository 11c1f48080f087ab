package analytics

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jpcardenas/ordenes-api/internal/application/dto"
	"github.com/jpcardenas/ordenes-api/internal/domain/entity"
	"github.com/jpcardenas/ordenes-api/internal/domain/repository"
)

var hundred = decimal.NewFromInt(100)

// UseCase vistas de solo lectura sobre el estado actual: stock bajo, ventas
// en ventana móvil y valuación de inventario. Sin invariantes propios más
// allá de leer consistente al momento del barrido.
type UseCase struct {
	varRepo     repository.VariationRepository
	productRepo repository.ProductRepository
	kitRepo     repository.KitRepository
	saleRepo    repository.KitSaleRepository
}

// New construye el caso de uso.
func New(varRepo repository.VariationRepository, productRepo repository.ProductRepository, kitRepo repository.KitRepository, saleRepo repository.KitSaleRepository) *UseCase {
	return &UseCase{varRepo: varRepo, productRepo: productRepo, kitRepo: kitRepo, saleRepo: saleRepo}
}

// LowStock lista variaciones activas en o por debajo del umbral porcentual,
// ordenadas de más crítica a menos. minimum_stock en cero se trata como 100%
// ("ok") para evitar la división por cero.
func (uc *UseCase) LowStock(ctx context.Context, thresholdPct decimal.Decimal) ([]dto.VariationStockStatus, error) {
	if !thresholdPct.IsPositive() {
		thresholdPct = hundred
	}
	variations, err := uc.varRepo.ListActive()
	if err != nil {
		return nil, err
	}

	result := make([]dto.VariationStockStatus, 0)
	for _, v := range variations {
		percentage := stockPercentage(v)
		if percentage.GreaterThan(thresholdPct) {
			continue
		}
		status, err := uc.toStockStatus(v, percentage)
		if err != nil {
			return nil, err
		}
		result = append(result, status)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Percentage.LessThan(result[j].Percentage)
	})
	return result, nil
}

// SalesSummary resume las ventas de kits de los últimos days días: cantidad
// de ventas, ingreso estimado (precio de venta vigente de cada variación por
// las unidades descontadas) y unidades por producto y por kit.
func (uc *UseCase) SalesSummary(ctx context.Context, days int) (*dto.SalesSummary, error) {
	if days <= 0 {
		days = 30
	}
	from := time.Now().AddDate(0, 0, -days)
	sales, err := uc.saleRepo.ListBetween(&from, nil, 0, 0)
	if err != nil {
		return nil, err
	}

	summary := &dto.SalesSummary{
		TotalSales:   int64(len(sales)),
		TotalRevenue: decimal.Zero,
		ProductsSold: map[string]int64{},
		KitsSold:     map[string]int64{},
	}
	for _, sale := range sales {
		kit, err := uc.kitRepo.GetByID(sale.KitID)
		if err != nil {
			return nil, err
		}
		if kit == nil {
			continue
		}
		summary.KitsSold[kit.Name] += sale.Quantity

		lines, err := uc.kitRepo.ListProducts(sale.KitID)
		if err != nil {
			return nil, err
		}
		for _, line := range lines {
			variation, err := uc.varRepo.GetByID(line.VariationID)
			if err != nil {
				return nil, err
			}
			if variation == nil {
				continue
			}
			units := line.Quantity * sale.Quantity
			name, err := uc.variationLabel(variation)
			if err != nil {
				return nil, err
			}
			summary.ProductsSold[name] += units
			summary.TotalRevenue = summary.TotalRevenue.Add(
				variation.SalePrice.Mul(decimal.NewFromInt(units)))
		}
	}
	return summary, nil
}

// InventorySummary valuación del inventario activo (Σ stock × costo) más
// conteos de variaciones bajas y agotadas con su detalle ordenado.
func (uc *UseCase) InventorySummary(ctx context.Context) (*dto.InventorySummary, error) {
	variations, err := uc.varRepo.ListActive()
	if err != nil {
		return nil, err
	}

	summary := &dto.InventorySummary{
		TotalVariations:     int64(len(variations)),
		TotalInventoryValue: decimal.Zero,
		LowStockItems:       []dto.VariationStockStatus{},
	}
	for _, v := range variations {
		summary.TotalInventoryValue = summary.TotalInventoryValue.Add(
			v.Cost.Mul(decimal.NewFromInt(v.CurrentStock)))

		percentage := stockPercentage(v)
		status := stockStatus(v, percentage)
		switch status {
		case dto.StockStatusOut:
			summary.OutOfStockCount++
		case dto.StockStatusLow:
			summary.LowStockCount++
		default:
			continue
		}
		item, err := uc.toStockStatus(v, percentage)
		if err != nil {
			return nil, err
		}
		summary.LowStockItems = append(summary.LowStockItems, item)
	}
	sort.Slice(summary.LowStockItems, func(i, j int) bool {
		return summary.LowStockItems[i].Percentage.LessThan(summary.LowStockItems[j].Percentage)
	})
	return summary, nil
}

// stockPercentage calcula current/minimum × 100; mínimo cero cuenta como 100%.
func stockPercentage(v *entity.ProductVariation) decimal.Decimal {
	if v.MinimumStock <= 0 {
		return hundred
	}
	return decimal.NewFromInt(v.CurrentStock).
		Div(decimal.NewFromInt(v.MinimumStock)).
		Mul(hundred).Round(2)
}

// stockStatus clasifica: sin stock = out, bajo el mínimo = low, resto ok.
func stockStatus(v *entity.ProductVariation, percentage decimal.Decimal) string {
	switch {
	case v.CurrentStock == 0 && v.MinimumStock > 0:
		return dto.StockStatusOut
	case percentage.LessThan(hundred):
		return dto.StockStatusLow
	default:
		return dto.StockStatusOK
	}
}

func (uc *UseCase) toStockStatus(v *entity.ProductVariation, percentage decimal.Decimal) (dto.VariationStockStatus, error) {
	product, err := uc.productRepo.GetByID(v.ProductID)
	if err != nil {
		return dto.VariationStockStatus{}, err
	}
	name := ""
	if product != nil {
		name = product.Name
	}
	return dto.VariationStockStatus{
		VariationID:  v.ID,
		ProductName:  name,
		Type:         v.Type,
		CurrentStock: v.CurrentStock,
		MinimumStock: v.MinimumStock,
		Status:       stockStatus(v, percentage),
		Percentage:   percentage,
	}, nil
}

// variationLabel etiqueta legible para los mapas de ventas.
func (uc *UseCase) variationLabel(v *entity.ProductVariation) (string, error) {
	product, err := uc.productRepo.GetByID(v.ProductID)
	if err != nil {
		return "", err
	}
	if product == nil {
		return v.ID, nil
	}
	return product.Name + " (" + v.Type + ")", nil
}
