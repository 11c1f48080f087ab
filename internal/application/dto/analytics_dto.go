package dto

import "github.com/shopspring/decimal"

// Estados de stock para los reportes de inventario.
const (
	StockStatusOK  = "ok"
	StockStatusLow = "low"
	StockStatusOut = "out"
)

// VariationStockStatus estado de stock de una variación en los reportes.
// Percentage = current_stock / minimum_stock × 100; minimum_stock en cero
// se reporta como 100% para no dividir por cero.
type VariationStockStatus struct {
	VariationID  string          `json:"variation_id"`
	ProductName  string          `json:"product_name"`
	Type         string          `json:"type"`
	CurrentStock int64           `json:"current_stock"`
	MinimumStock int64           `json:"minimum_stock"`
	Status       string          `json:"status"`
	Percentage   decimal.Decimal `json:"percentage"`
}

// SalesSummary ventas de kits en una ventana móvil de días.
type SalesSummary struct {
	TotalSales   int64            `json:"total_sales"`
	TotalRevenue decimal.Decimal  `json:"total_revenue"`
	ProductsSold map[string]int64 `json:"products_sold"`
	KitsSold     map[string]int64 `json:"kits_sold"`
}

// InventorySummary valuación y estado global del inventario activo.
type InventorySummary struct {
	TotalVariations     int64                  `json:"total_variations"`
	LowStockCount       int64                  `json:"low_stock_count"`
	OutOfStockCount     int64                  `json:"out_of_stock_count"`
	TotalInventoryValue decimal.Decimal        `json:"total_inventory_value"`
	LowStockItems       []VariationStockStatus `json:"low_stock_items"`
}
