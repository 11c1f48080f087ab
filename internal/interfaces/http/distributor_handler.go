package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jpcardenas/ordenes-api/internal/application/distorder"
	"github.com/jpcardenas/ordenes-api/internal/application/dto"
	"github.com/jpcardenas/ordenes-api/internal/application/usecase"
	"github.com/jpcardenas/ordenes-api/internal/domain/entity"
)

// DistributorHandler maneja las peticiones HTTP para distribuidores y sus
// pedidos de reposición (protegido).
type DistributorHandler struct {
	distUC  *usecase.DistributorUseCase
	orderUC *distorder.UseCase
}

// NewDistributorHandler construye el handler.
func NewDistributorHandler(distUC *usecase.DistributorUseCase, orderUC *distorder.UseCase) *DistributorHandler {
	return &DistributorHandler{distUC: distUC, orderUC: orderUC}
}

// Create POST /api/distributors
func (h *DistributorHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDistributorRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.distUC.Create(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List GET /api/distributors
func (h *DistributorHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	activeOnly := c.QueryBool("active_only", true)
	out, err := h.distUC.List(activeOnly, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID GET /api/distributors/:id
func (h *DistributorHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.distUC.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update PUT /api/distributors/:id
func (h *DistributorHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateDistributorRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.distUC.Update(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete DELETE /api/distributors/:id
// Baja lógica: desactiva el distribuidor sin borrar sus pedidos.
func (h *DistributorHandler) Delete(c *fiber.Ctx) error {
	inactive := false
	_, err := h.distUC.Update(c.Params("id"), dto.UpdateDistributorRequest{Active: &inactive})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "distribuidor desactivado"})
}

// CreateOrder POST /api/distributor-orders
func (h *DistributorHandler) CreateOrder(c *fiber.Ctx) error {
	var in dto.CreateDistOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	order, err := h.orderUC.Create(c.Context(), distorder.CreateInput{
		DistributorID:        in.DistributorID,
		UserID:               GetUserID(c),
		ExpectedDeliveryDate: in.ExpectedDeliveryDate,
		Notes:                in.Notes,
		Items:                toItemInputs(in.Items),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toDistOrderResponse(order, nil))
}

// ListOrders GET /api/distributor-orders
func (h *DistributorHandler) ListOrders(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	orders, err := h.orderUC.List(c.Context(), c.Query("status"), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.DistOrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, *toDistOrderResponse(o, nil))
	}
	return c.JSON(out)
}

// GetOrder GET /api/distributor-orders/:id
func (h *DistributorHandler) GetOrder(c *fiber.Ctx) error {
	order, items, err := h.orderUC.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toDistOrderResponse(order, items))
}

// UpdateOrder PUT /api/distributor-orders/:id
// Con status=complete delega en la transición guardada que repone stock.
func (h *DistributorHandler) UpdateOrder(c *fiber.Ctx) error {
	var in dto.UpdateDistOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	order, err := h.orderUC.Update(c.Context(), c.Params("id"), GetUserID(c), distorder.UpdateInput{
		Status:               in.Status,
		ExpectedDeliveryDate: in.ExpectedDeliveryDate,
		Notes:                in.Notes,
		Items:                toItemInputs(in.Items),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toDistOrderResponse(order, nil))
}

// CompleteOrder POST /api/distributor-orders/:id/complete
func (h *DistributorHandler) CompleteOrder(c *fiber.Ctx) error {
	order, err := h.orderUC.Complete(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toDistOrderResponse(order, nil))
}

func toItemInputs(items []dto.DistOrderItemRequest) []distorder.ItemInput {
	if items == nil {
		return nil
	}
	result := make([]distorder.ItemInput, 0, len(items))
	for _, item := range items {
		result = append(result, distorder.ItemInput{
			VariationID: item.VariationID,
			Quantity:    item.Quantity,
		})
	}
	return result
}

func toDistOrderResponse(o *entity.DistributorOrder, items []*entity.DistributorOrderItem) *dto.DistOrderResponse {
	resp := &dto.DistOrderResponse{
		ID:                   o.ID,
		DistributorID:        o.DistributorID,
		UserID:               o.UserID,
		ExpectedDeliveryDate: o.ExpectedDeliveryDate,
		Status:               o.Status,
		Notes:                o.Notes,
		CreatedAt:            o.CreatedAt,
		UpdatedAt:            o.UpdatedAt,
	}
	for _, item := range items {
		resp.Items = append(resp.Items, dto.DistOrderItemResponse{
			ID:          item.ID,
			VariationID: item.VariationID,
			Quantity:    item.Quantity,
		})
	}
	return resp
}
