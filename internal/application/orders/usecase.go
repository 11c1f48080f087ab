package orders

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jpcardenas/ordenes-api/internal/domain"
	"github.com/jpcardenas/ordenes-api/internal/domain/entity"
	"github.com/jpcardenas/ordenes-api/internal/domain/repository"
)

// UseCase gobierna el ciclo de vida de pedidos de cliente: creación con
// detección de número duplicado, cobranzas con derivación de estado y
// ediciones directas. El estado de pago nunca se asigna a mano: siempre sale
// de entity.DeriveOrderStatus.
type UseCase struct {
	txRunner    TxRunner
	orderRepo   repository.OrderRepository
	billingRepo repository.BillingRepository
	statsRepo   repository.OrderStatsRepository
	pdfGen      StatementPDFGenerator
}

// New construye el caso de uso.
func New(txRunner TxRunner, orderRepo repository.OrderRepository, billingRepo repository.BillingRepository, statsRepo repository.OrderStatsRepository, pdfGen StatementPDFGenerator) *UseCase {
	return &UseCase{txRunner: txRunner, orderRepo: orderRepo, billingRepo: billingRepo, statsRepo: statsRepo, pdfGen: pdfGen}
}

// CreateInput entrada para crear un pedido de cliente.
type CreateInput struct {
	OrderNumber   string
	CustomerName  string
	CustomerPhone string
	CustomerAddr  string
	TotalAmount   decimal.Decimal
	TrackingCode  string
	SellerID      string
	CollectorID   string
}

// Create crea el pedido. Si ya existe un pedido con el mismo número, el nuevo
// se marca como duplicado de inmediato — la creación no se bloquea.
func (uc *UseCase) Create(ctx context.Context, in CreateInput) (*entity.Order, error) {
	if in.OrderNumber == "" || in.CustomerName == "" || in.CustomerPhone == "" || in.SellerID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !in.TotalAmount.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.orderRepo.GetByNumber(in.OrderNumber)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	order := &entity.Order{
		ID:            uuid.New().String(),
		OrderNumber:   in.OrderNumber,
		CustomerName:  in.CustomerName,
		CustomerPhone: in.CustomerPhone,
		CustomerAddr:  in.CustomerAddr,
		TotalAmount:   in.TotalAmount,
		PaidAmount:    decimal.Zero,
		Status:        entity.OrderPending,
		TrackingCode:  in.TrackingCode,
		SellerID:      in.SellerID,
		CollectorID:   in.CollectorID,
		IsDuplicate:   existing != nil,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.orderRepo.Create(order); err != nil {
		return nil, err
	}
	return order, nil
}

// Get obtiene un pedido con su historial de cobranzas.
func (uc *UseCase) Get(ctx context.Context, id string) (*entity.Order, []*entity.BillingEntry, error) {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, nil, err
	}
	if order == nil {
		return nil, nil, domain.ErrNotFound
	}
	billing, err := uc.billingRepo.ListByOrder(id)
	if err != nil {
		return nil, nil, err
	}
	return order, billing, nil
}

// GetByNumber obtiene un pedido por su número.
func (uc *UseCase) GetByNumber(ctx context.Context, orderNumber string) (*entity.Order, error) {
	order, err := uc.orderRepo.GetByNumber(orderNumber)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return order, nil
}

// AddBillingEntry aplica una cobranza: agrega la fila al historial, acumula
// PaidAmount y rederiva el estado, todo con la fila del pedido bloqueada en
// una sola transacción. La suma del historial siempre iguala PaidAmount.
func (uc *UseCase) AddBillingEntry(ctx context.Context, orderID string, amount decimal.Decimal, notes, actorID string) (*entity.Order, error) {
	if orderID == "" || actorID == "" || !amount.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	var updated *entity.Order
	err := uc.txRunner.RunBilling(ctx, func(
		orderRepo repository.OrderRepository,
		billingRepo repository.BillingRepository,
	) error {
		order, err := orderRepo.GetForUpdate(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		entry := &entity.BillingEntry{
			ID:        uuid.New().String(),
			OrderID:   orderID,
			Amount:    amount,
			Notes:     notes,
			CreatedBy: actorID,
			CreatedAt: time.Now(),
		}
		if err := billingRepo.Append(entry); err != nil {
			return err
		}
		order.PaidAmount = order.PaidAmount.Add(amount)
		order.Status = entity.DeriveOrderStatus(order.Status, order.PaidAmount, order.TotalAmount)
		order.UpdatedAt = time.Now()
		if err := orderRepo.Update(order); err != nil {
			return err
		}
		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// UpdateInput patch de edición directa. Si trae PaidAmount la regla de
// derivación se reaplica; los demás campos se asignan tal cual.
type UpdateInput struct {
	Status       *string
	PaidAmount   *decimal.Decimal
	TrackingCode *string
	CollectorID  *string
	IsDuplicate  *bool
}

// Update edita campos del pedido. IsDuplicate solo puede subir a true
// (el flag es monotónico).
func (uc *UseCase) Update(ctx context.Context, id string, in UpdateInput) (*entity.Order, error) {
	var updated *entity.Order
	err := uc.txRunner.RunBilling(ctx, func(
		orderRepo repository.OrderRepository,
		_ repository.BillingRepository,
	) error {
		order, err := orderRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if in.Status != nil {
			if !entity.ValidOrderStatus(*in.Status) {
				return domain.ErrInvalidInput
			}
			order.Status = *in.Status
		}
		if in.TrackingCode != nil {
			order.TrackingCode = *in.TrackingCode
		}
		if in.CollectorID != nil {
			order.CollectorID = *in.CollectorID
		}
		if in.IsDuplicate != nil && *in.IsDuplicate {
			order.IsDuplicate = true
		}
		if in.PaidAmount != nil {
			if in.PaidAmount.IsNegative() {
				return domain.ErrInvalidInput
			}
			order.PaidAmount = *in.PaidAmount
			order.Status = entity.DeriveOrderStatus(order.Status, order.PaidAmount, order.TotalAmount)
		}
		order.UpdatedAt = time.Now()
		if err := orderRepo.Update(order); err != nil {
			return err
		}
		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// List lista pedidos con paginación.
func (uc *UseCase) List(ctx context.Context, limit, offset int) ([]*entity.Order, error) {
	return uc.orderRepo.List(limit, offset)
}

// ListByStatus lista pedidos por estado.
func (uc *UseCase) ListByStatus(ctx context.Context, status string) ([]*entity.Order, error) {
	if !entity.ValidOrderStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	return uc.orderRepo.ListByStatus(status)
}

// ListBySeller lista pedidos creados por un vendedor.
func (uc *UseCase) ListBySeller(ctx context.Context, sellerID string) ([]*entity.Order, error) {
	return uc.orderRepo.ListBySeller(sellerID)
}

// ListByCollector lista pedidos asignados a un cobrador.
func (uc *UseCase) ListByCollector(ctx context.Context, collectorID string) ([]*entity.Order, error) {
	return uc.orderRepo.ListByCollector(collectorID)
}

// ListByDateRange lista pedidos creados en un rango de fechas.
func (uc *UseCase) ListByDateRange(ctx context.Context, from, to time.Time) ([]*entity.Order, error) {
	return uc.orderRepo.ListByDateRange(from, to)
}

// Search busca por número, nombre, teléfono o código de rastreo.
func (uc *UseCase) Search(ctx context.Context, query string) ([]*entity.Order, error) {
	if query == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.orderRepo.Search(query)
}

// Statistics totales de cobranza y conteo por estado (agregados en SQL).
func (uc *UseCase) Statistics(ctx context.Context) (*repository.OrderStats, error) {
	return uc.statsRepo.GetStats(ctx)
}
