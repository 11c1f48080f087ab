package distorder

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

// UseCase gobierna el ciclo de vida de pedidos a distribuidor:
// pending → complete (repone stock, una sola vez) o pending → cancelled.
// La transición a complete es la única que muta stock y está centralizada en
// completeInTx: tanto Complete como un Update que trae status pasan por la
// misma guarda.
type UseCase struct {
	txRunner  TxRunner
	orderRepo repository.DistributorOrderRepository
	distRepo  repository.DistributorRepository
	varRepo   repository.VariationRepository
}

// New construye el caso de uso.
func New(txRunner TxRunner, orderRepo repository.DistributorOrderRepository, distRepo repository.DistributorRepository, varRepo repository.VariationRepository) *UseCase {
	return &UseCase{txRunner: txRunner, orderRepo: orderRepo, distRepo: distRepo, varRepo: varRepo}
}

// ItemInput línea del pedido.
type ItemInput struct {
	VariationID string
	Quantity    int64
}

// CreateInput entrada para crear un pedido.
type CreateInput struct {
	DistributorID        string
	UserID               string
	ExpectedDeliveryDate *time.Time
	Notes                string
	Items                []ItemInput
}

// Create crea el pedido en estado pending con sus líneas.
func (uc *UseCase) Create(ctx context.Context, in CreateInput) (*entity.DistributorOrder, error) {
	if in.DistributorID == "" || in.UserID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	dist, err := uc.distRepo.GetByID(in.DistributorID)
	if err != nil {
		return nil, err
	}
	if dist == nil {
		return nil, domain.ErrNotFound
	}
	for _, it := range in.Items {
		if it.VariationID == "" || it.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		variation, err := uc.varRepo.GetByID(it.VariationID)
		if err != nil {
			return nil, err
		}
		if variation == nil {
			return nil, domain.ErrNotFound
		}
	}

	now := time.Now()
	order := &entity.DistributorOrder{
		ID:                   uuid.New().String(),
		DistributorID:        in.DistributorID,
		UserID:               in.UserID,
		ExpectedDeliveryDate: in.ExpectedDeliveryDate,
		Status:               entity.DistOrderPending,
		Notes:                in.Notes,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	items := make([]*entity.DistributorOrderItem, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, &entity.DistributorOrderItem{
			ID:          uuid.New().String(),
			OrderID:     order.ID,
			VariationID: it.VariationID,
			Quantity:    it.Quantity,
		})
	}
	if err := uc.orderRepo.Create(order, items); err != nil {
		return nil, err
	}
	return order, nil
}

// Get obtiene un pedido por ID.
func (uc *UseCase) Get(ctx context.Context, id string) (*entity.DistributorOrder, []*entity.DistributorOrderItem, error) {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, nil, err
	}
	if order == nil {
		return nil, nil, domain.ErrNotFound
	}
	items, err := uc.orderRepo.ListItems(id)
	if err != nil {
		return nil, nil, err
	}
	return order, items, nil
}

// List lista pedidos con filtro opcional de estado (más recientes primero).
func (uc *UseCase) List(ctx context.Context, status string, limit, offset int) ([]*entity.DistributorOrder, error) {
	return uc.orderRepo.List(status, limit, offset)
}

// UpdateInput campos editables de un pedido. Status solo admite la transición
// a cancelled o a complete; complete vía Update dispara el mismo efecto de
// stock que Complete, con la misma guarda.
type UpdateInput struct {
	Status               *string
	ExpectedDeliveryDate *time.Time
	Notes                *string
	Items                []ItemInput
}

// Update edita el pedido. Si el patch trae status=complete delega en la
// transición guardada; ediciones de campos sueltos jamás tocan stock.
// El patch completo se valida antes de escribir y se aplica en una sola
// transacción: un patch rechazado no deja nada persistido.
func (uc *UseCase) Update(ctx context.Context, id, userID string, in UpdateInput) (*entity.DistributorOrder, error) {
	if in.Status != nil && *in.Status == entity.DistOrderComplete {
		// Los demás campos del patch se aplican antes de completar
		if err := uc.patchFields(ctx, id, in); err != nil {
			return nil, err
		}
		return uc.Complete(ctx, id, userID)
	}
	if in.Status != nil && *in.Status != entity.DistOrderPending && *in.Status != entity.DistOrderCancelled {
		return nil, domain.ErrInvalidInput
	}
	for _, it := range in.Items {
		if it.VariationID == "" || it.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
	}

	var updated *entity.DistributorOrder
	err := uc.txRunner.RunDistOrder(ctx, func(
		orderRepo repository.DistributorOrderRepository,
		varRepo repository.VariationRepository,
		_ repository.StockHistoryRepository,
	) error {
		order, err := orderRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.Terminal() && (in.Status != nil || in.Items != nil) {
			return &domain.StateError{Entity: "pedido a distribuidor", ID: id, State: order.Status, Reason: "estado terminal"}
		}
		if in.Status != nil {
			order.Status = *in.Status
		}
		if in.ExpectedDeliveryDate != nil {
			order.ExpectedDeliveryDate = in.ExpectedDeliveryDate
		}
		if in.Notes != nil {
			order.Notes = *in.Notes
		}
		if in.Items != nil {
			items := make([]*entity.DistributorOrderItem, 0, len(in.Items))
			for _, it := range in.Items {
				variation, err := varRepo.GetByID(it.VariationID)
				if err != nil {
					return err
				}
				if variation == nil {
					return domain.ErrNotFound
				}
				items = append(items, &entity.DistributorOrderItem{
					ID:          uuid.New().String(),
					OrderID:     id,
					VariationID: it.VariationID,
					Quantity:    it.Quantity,
				})
			}
			if err := orderRepo.ReplaceItems(id, items); err != nil {
				return err
			}
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

// patchFields aplica fecha/notas/líneas sin tocar el estado.
func (uc *UseCase) patchFields(ctx context.Context, id string, in UpdateInput) error {
	patch := in
	patch.Status = nil
	if patch.ExpectedDeliveryDate == nil && patch.Notes == nil && patch.Items == nil {
		return nil
	}
	_, err := uc.Update(ctx, id, "", patch)
	return err
}

// Complete marca el pedido como complete y repone el stock de cada línea con
// razón order_received. No es idempotente: un pedido ya completo (o cancelado)
// falla con ErrInvalidState y no vuelve a tocar stock. La fila del pedido se
// bloquea para que dos Complete concurrentes no dupliquen la reposición.
func (uc *UseCase) Complete(ctx context.Context, id, userID string) (*entity.DistributorOrder, error) {
	if userID == "" {
		return nil, domain.ErrInvalidInput
	}
	var completed *entity.DistributorOrder
	err := uc.txRunner.RunDistOrder(ctx, func(
		orderRepo repository.DistributorOrderRepository,
		varRepo repository.VariationRepository,
		histRepo repository.StockHistoryRepository,
	) error {
		order, err := orderRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.Status == entity.DistOrderComplete {
			return &domain.StateError{Entity: "pedido a distribuidor", ID: id, State: order.Status, Reason: "ya está completo"}
		}
		if order.Status == entity.DistOrderCancelled {
			return &domain.StateError{Entity: "pedido a distribuidor", ID: id, State: order.Status, Reason: "pedido cancelado"}
		}

		order.Status = entity.DistOrderComplete
		order.UpdatedAt = time.Now()
		if err := orderRepo.Update(order); err != nil {
			return err
		}

		items, err := orderRepo.ListItems(id)
		if err != nil {
			return err
		}
		sort.Slice(items, func(i, j int) bool { return items[i].VariationID < items[j].VariationID })
		now := time.Now()
		for _, item := range items {
			if _, err := stock.ApplyChangeInTx(varRepo, histRepo, stock.ChangeInput{
				VariationID: item.VariationID,
				Amount:      item.Quantity,
				Reason:      entity.ReasonOrderReceived,
				UserID:      userID,
				Reference:   entity.OrderRef(id),
				Notes:       fmt.Sprintf("Pedido recibido del distribuidor #%s", order.DistributorID),
			}, now); err != nil {
				return err
			}
		}
		completed = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return completed, nil
}
