package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jpcardenas/ordenes-api/internal/application/dto"
	"github.com/jpcardenas/ordenes-api/internal/domain"
	"github.com/jpcardenas/ordenes-api/internal/domain/entity"
	"github.com/jpcardenas/ordenes-api/internal/domain/repository"
)

// KitUseCase casos de uso CRUD para kits. Cambiar la composición no afecta
// ventas pasadas: las cantidades descontadas quedaron fijadas al vender.
type KitUseCase struct {
	kitRepo repository.KitRepository
	varRepo repository.VariationRepository
}

// NewKitUseCase construye el caso de uso.
func NewKitUseCase(kitRepo repository.KitRepository, varRepo repository.VariationRepository) *KitUseCase {
	return &KitUseCase{kitRepo: kitRepo, varRepo: varRepo}
}

// Create crea un kit con sus líneas. Cada línea referencia una variación
// existente con cantidad positiva.
func (uc *KitUseCase) Create(in dto.CreateKitRequest) (*dto.KitResponse, error) {
	if in.Name == "" || len(in.Products) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.validateLines(in.Products); err != nil {
		return nil, err
	}
	now := time.Now()
	kit := &entity.Kit{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	products := toKitProducts(kit.ID, in.Products)
	if err := uc.kitRepo.Create(kit, products); err != nil {
		return nil, err
	}
	return toKitResponse(kit, products), nil
}

// GetByID obtiene un kit con sus líneas.
func (uc *KitUseCase) GetByID(id string) (*dto.KitResponse, error) {
	kit, err := uc.kitRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if kit == nil {
		return nil, domain.ErrNotFound
	}
	products, err := uc.kitRepo.ListProducts(id)
	if err != nil {
		return nil, err
	}
	return toKitResponse(kit, products), nil
}

// List lista kits con paginación.
func (uc *KitUseCase) List(activeOnly bool, limit, offset int) ([]dto.KitResponse, error) {
	list, err := uc.kitRepo.List(activeOnly, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.KitResponse, 0, len(list))
	for _, k := range list {
		items = append(items, *toKitResponse(k, nil))
	}
	return items, nil
}

// Update actualiza metadatos del kit. Products no-nil reemplaza todas las
// líneas con la composición nueva. El patch se valida entero antes de
// escribir: un patch rechazado no deja metadatos a medio aplicar.
func (uc *KitUseCase) Update(id string, in dto.UpdateKitRequest) (*dto.KitResponse, error) {
	if in.Name != nil && *in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Products != nil {
		if len(in.Products) == 0 {
			return nil, domain.ErrInvalidInput
		}
		if err := uc.validateLines(in.Products); err != nil {
			return nil, err
		}
	}
	kit, err := uc.kitRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if kit == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		kit.Name = *in.Name
	}
	if in.Description != nil {
		kit.Description = *in.Description
	}
	if in.Active != nil {
		kit.Active = *in.Active
	}
	kit.UpdatedAt = time.Now()
	if err := uc.kitRepo.Update(kit); err != nil {
		return nil, err
	}
	if in.Products != nil {
		if err := uc.kitRepo.ReplaceProducts(id, toKitProducts(id, in.Products)); err != nil {
			return nil, err
		}
	}
	products, err := uc.kitRepo.ListProducts(id)
	if err != nil {
		return nil, err
	}
	return toKitResponse(kit, products), nil
}

func (uc *KitUseCase) validateLines(lines []dto.KitProductRequest) error {
	for _, line := range lines {
		if line.VariationID == "" || line.Quantity <= 0 {
			return domain.ErrInvalidInput
		}
		variation, err := uc.varRepo.GetByID(line.VariationID)
		if err != nil {
			return err
		}
		if variation == nil {
			return domain.ErrNotFound
		}
	}
	return nil
}

func toKitProducts(kitID string, lines []dto.KitProductRequest) []*entity.KitProduct {
	products := make([]*entity.KitProduct, 0, len(lines))
	for _, line := range lines {
		products = append(products, &entity.KitProduct{
			ID:          uuid.New().String(),
			KitID:       kitID,
			VariationID: line.VariationID,
			Quantity:    line.Quantity,
		})
	}
	return products
}

func toKitResponse(kit *entity.Kit, products []*entity.KitProduct) *dto.KitResponse {
	resp := &dto.KitResponse{
		ID:          kit.ID,
		Name:        kit.Name,
		Description: kit.Description,
		Active:      kit.Active,
		CreatedAt:   kit.CreatedAt,
		UpdatedAt:   kit.UpdatedAt,
	}
	for _, p := range products {
		resp.Products = append(resp.Products, dto.KitProductResponse{
			ID:          p.ID,
			VariationID: p.VariationID,
			Quantity:    p.Quantity,
		})
	}
	return resp
}
