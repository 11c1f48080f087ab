package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jpcardenas/ordenes-api/internal/application/analytics"
)

// AnalyticsHandler reportes de solo lectura sobre inventario y ventas (protegido).
type AnalyticsHandler struct {
	uc *analytics.UseCase
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(uc *analytics.UseCase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

// LowStock GET /api/analytics/low-stock?threshold_pct=100
func (h *AnalyticsHandler) LowStock(c *fiber.Ctx) error {
	threshold := decimal.NewFromInt(int64(c.QueryInt("threshold_pct", 100)))
	out, err := h.uc.LowStock(c.Context(), threshold)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Sales GET /api/analytics/sales?days=30
func (h *AnalyticsHandler) Sales(c *fiber.Ctx) error {
	out, err := h.uc.SalesSummary(c.Context(), c.QueryInt("days", 30))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Inventory GET /api/analytics/inventory
func (h *AnalyticsHandler) Inventory(c *fiber.Ctx) error {
	out, err := h.uc.InventorySummary(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
