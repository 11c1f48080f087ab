package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jpcardenas/ordenes-api/internal/application/dto"
	"github.com/jpcardenas/ordenes-api/internal/application/kitsale"
	"github.com/jpcardenas/ordenes-api/internal/application/usecase"
	"github.com/jpcardenas/ordenes-api/internal/domain/entity"
)

// KitHandler maneja las peticiones HTTP para kits y ventas de kit (protegido).
type KitHandler struct {
	kitUC  *usecase.KitUseCase
	saleUC *kitsale.UseCase
}

// NewKitHandler construye el handler.
func NewKitHandler(kitUC *usecase.KitUseCase, saleUC *kitsale.UseCase) *KitHandler {
	return &KitHandler{kitUC: kitUC, saleUC: saleUC}
}

// Create POST /api/kits
func (h *KitHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateKitRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.kitUC.Create(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List GET /api/kits
func (h *KitHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	activeOnly := c.QueryBool("active_only", true)
	out, err := h.kitUC.List(activeOnly, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID GET /api/kits/:id
func (h *KitHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.kitUC.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update PUT /api/kits/:id
func (h *KitHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateKitRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.kitUC.Update(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete DELETE /api/kits/:id
// Baja lógica: desactiva el kit sin borrar filas ni ventas pasadas.
func (h *KitHandler) Delete(c *fiber.Ctx) error {
	inactive := false
	_, err := h.kitUC.Update(c.Params("id"), dto.UpdateKitRequest{Active: &inactive})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "kit desactivado"})
}

// CreateSale POST /api/kit-sales
func (h *KitHandler) CreateSale(c *fiber.Ctx) error {
	var in dto.CreateKitSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	sale, err := h.saleUC.RecordSale(c.Context(), kitsale.SaleInput{
		KitID:    in.KitID,
		Quantity: in.Quantity,
		UserID:   GetUserID(c),
		SaleDate: in.SaleDate,
		Notes:    in.Notes,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toKitSaleResponse(sale))
}

// ListSales GET /api/kit-sales
func (h *KitHandler) ListSales(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	var from, to *time.Time
	if v := c.Query("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from: fecha inválida (RFC3339)"})
		}
		from = &t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to: fecha inválida (RFC3339)"})
		}
		to = &t
	}
	sales, err := h.saleUC.List(c.Context(), from, to, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.KitSaleResponse, 0, len(sales))
	for _, s := range sales {
		out = append(out, toKitSaleResponse(s))
	}
	return c.JSON(out)
}

func toKitSaleResponse(s *entity.KitSale) dto.KitSaleResponse {
	return dto.KitSaleResponse{
		ID:        s.ID,
		KitID:     s.KitID,
		Quantity:  s.Quantity,
		SaleDate:  s.SaleDate,
		UserID:    s.UserID,
		Notes:     s.Notes,
		CreatedAt: s.CreatedAt,
	}
}
