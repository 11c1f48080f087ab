package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jpcardenas/ordenes-api/internal/application/dto"
	"github.com/jpcardenas/ordenes-api/internal/application/stock"
	"github.com/jpcardenas/ordenes-api/internal/application/usecase"
	"github.com/jpcardenas/ordenes-api/internal/domain/entity"
)

// ProductHandler maneja las peticiones HTTP para productos, variaciones y
// stock (protegido).
type ProductHandler struct {
	uc       *usecase.ProductUseCase
	accessor *stock.Accessor
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase, accessor *stock.Accessor) *ProductHandler {
	return &ProductHandler{uc: uc, accessor: accessor}
}

// Create POST /api/products
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List GET /api/products
func (h *ProductHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	activeOnly := c.QueryBool("active_only", true)
	out, err := h.uc.List(activeOnly, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID GET /api/products/:id
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update PUT /api/products/:id
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete DELETE /api/products/:id
// Baja lógica: desactiva el producto sin borrar filas.
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	inactive := false
	_, err := h.uc.Update(c.Params("id"), dto.UpdateProductRequest{Active: &inactive})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "producto desactivado"})
}

// CreateVariation POST /api/products/:id/variations
func (h *ProductHandler) CreateVariation(c *fiber.Ctx) error {
	var in dto.CreateVariationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CreateVariation(c.Context(), c.Params("id"), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetVariation GET /api/variations/:id
func (h *ProductHandler) GetVariation(c *fiber.Ctx) error {
	out, err := h.uc.GetVariation(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateVariation PUT /api/variations/:id
func (h *ProductHandler) UpdateVariation(c *fiber.Ctx) error {
	var in dto.UpdateVariationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpdateVariation(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AdjustStock POST /api/variations/:id/adjust-stock
func (h *ProductHandler) AdjustStock(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	entry, err := h.accessor.ApplyChange(c.Context(), stock.ChangeInput{
		VariationID: c.Params("id"),
		Amount:      in.ChangeAmount,
		Reason:      in.Reason,
		UserID:      GetUserID(c),
		Notes:       in.Notes,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toStockHistoryResponse(entry))
}

// StockHistory GET /api/variations/:id/stock-history
func (h *ProductHandler) StockHistory(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	entries, err := h.accessor.History(c.Context(), c.Params("id"), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.StockHistoryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toStockHistoryResponse(e))
	}
	return c.JSON(out)
}

func toStockHistoryResponse(e *entity.StockHistory) dto.StockHistoryResponse {
	return dto.StockHistoryResponse{
		ID:            e.ID,
		VariationID:   e.VariationID,
		UserID:        e.UserID,
		ChangeAmount:  e.ChangeAmount,
		Reason:        e.Reason,
		ReferenceType: string(e.Reference.Kind),
		ReferenceID:   e.Reference.ID,
		Notes:         e.Notes,
		CreatedAt:     e.CreatedAt,
	}
}

// pageParams lee limit/offset con topes razonables.
func pageParams(c *fiber.Ctx) (int, int) {
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
