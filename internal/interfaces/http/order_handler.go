package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jpcardenas/ordenes-api/internal/application/dto"
	"github.com/jpcardenas/ordenes-api/internal/application/orders"
	"github.com/jpcardenas/ordenes-api/internal/domain/entity"
)

// OrderHandler maneja las peticiones HTTP para pedidos de cliente, cobranzas
// y detección de duplicados (protegido).
type OrderHandler struct {
	uc *orders.UseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *orders.UseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// Create POST /api/orders
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	order, err := h.uc.Create(c.Context(), orders.CreateInput{
		OrderNumber:   in.OrderNumber,
		CustomerName:  in.CustomerName,
		CustomerPhone: in.CustomerPhone,
		CustomerAddr:  in.CustomerAddr,
		TotalAmount:   in.TotalAmount,
		TrackingCode:  in.TrackingCode,
		SellerID:      GetUserID(c),
		CollectorID:   in.CollectorID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toOrderResponse(order, nil))
}

// List GET /api/orders
// Filtros mutuamente excluyentes: status, seller_id, collector_id, from/to.
func (h *OrderHandler) List(c *fiber.Ctx) error {
	ctx := c.Context()
	switch {
	case c.Query("status") != "":
		list, err := h.uc.ListByStatus(ctx, c.Query("status"))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(toOrderResponses(list))
	case c.Query("seller_id") != "":
		list, err := h.uc.ListBySeller(ctx, c.Query("seller_id"))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(toOrderResponses(list))
	case c.Query("collector_id") != "":
		list, err := h.uc.ListByCollector(ctx, c.Query("collector_id"))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(toOrderResponses(list))
	case c.Query("from") != "" && c.Query("to") != "":
		from, err1 := time.Parse(time.RFC3339, c.Query("from"))
		to, err2 := time.Parse(time.RFC3339, c.Query("to"))
		if err1 != nil || err2 != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from/to: fechas inválidas (RFC3339)"})
		}
		list, err := h.uc.ListByDateRange(ctx, from, to)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(toOrderResponses(list))
	}
	limit, offset := pageParams(c)
	list, err := h.uc.List(ctx, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toOrderResponses(list))
}

// Search GET /api/orders/search?q=
func (h *OrderHandler) Search(c *fiber.Ctx) error {
	list, err := h.uc.Search(c.Context(), c.Query("q"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toOrderResponses(list))
}

// Duplicates GET /api/orders/duplicates
func (h *OrderHandler) Duplicates(c *fiber.Ctx) error {
	list, err := h.uc.ListDuplicates(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toOrderResponses(list))
}

// DetectDuplicates POST /api/orders/detect-duplicates
// Barrido por lotes; devuelve los pedidos recién marcados.
func (h *OrderHandler) DetectDuplicates(c *fiber.Ctx) error {
	flagged, err := h.uc.DetectDuplicates(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toOrderResponses(flagged))
}

// Statistics GET /api/orders/statistics
func (h *OrderHandler) Statistics(c *fiber.Ctx) error {
	stats, err := h.uc.Statistics(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	rate := decimal.Zero
	if stats.TotalAmount.IsPositive() {
		rate = stats.TotalPaid.Div(stats.TotalAmount).Round(4)
	}
	return c.JSON(dto.OrderStatsResponse{
		TotalOrders:  stats.TotalOrders,
		TotalAmount:  stats.TotalAmount,
		TotalPaid:    stats.TotalPaid,
		PaymentRate:  rate,
		StatusCounts: stats.StatusCounts,
	})
}

// GetByID GET /api/orders/:id
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	order, billing, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toOrderResponse(order, billing))
}

// Update PUT /api/orders/:id
func (h *OrderHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	order, err := h.uc.Update(c.Context(), c.Params("id"), orders.UpdateInput{
		Status:       in.Status,
		PaidAmount:   in.PaidAmount,
		TrackingCode: in.TrackingCode,
		CollectorID:  in.CollectorID,
		IsDuplicate:  in.IsDuplicate,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toOrderResponse(order, nil))
}

// AddBilling POST /api/orders/:id/billing
func (h *OrderHandler) AddBilling(c *fiber.Ctx) error {
	var in dto.AddBillingRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	order, err := h.uc.AddBillingEntry(c.Context(), c.Params("id"), in.Amount, in.Notes, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toOrderResponse(order, nil))
}

// Statement GET /api/orders/:id/statement.pdf
func (h *OrderHandler) Statement(c *fiber.Ctx) error {
	pdfBytes, err := h.uc.Statement(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="estado-de-cuenta.pdf"`)
	return c.Send(pdfBytes)
}

func toOrderResponses(list []*entity.Order) []dto.OrderResponse {
	out := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, *toOrderResponse(o, nil))
	}
	return out
}

func toOrderResponse(o *entity.Order, billing []*entity.BillingEntry) *dto.OrderResponse {
	resp := &dto.OrderResponse{
		ID:            o.ID,
		OrderNumber:   o.OrderNumber,
		CustomerName:  o.CustomerName,
		CustomerPhone: o.CustomerPhone,
		CustomerAddr:  o.CustomerAddr,
		TotalAmount:   o.TotalAmount,
		PaidAmount:    o.PaidAmount,
		Status:        o.Status,
		TrackingCode:  o.TrackingCode,
		SellerID:      o.SellerID,
		CollectorID:   o.CollectorID,
		IsDuplicate:   o.IsDuplicate,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
	for _, e := range billing {
		resp.BillingHistory = append(resp.BillingHistory, dto.BillingEntryResponse{
			ID:        e.ID,
			Amount:    e.Amount,
			Notes:     e.Notes,
			CreatedBy: e.CreatedBy,
			CreatedAt: e.CreatedAt,
		})
	}
	return resp
}
