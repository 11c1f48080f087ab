package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jpcardenas/ordenes-api/internal/application/dto"
	"github.com/jpcardenas/ordenes-api/internal/application/stock"
	"github.com/jpcardenas/ordenes-api/internal/domain"
	"github.com/jpcardenas/ordenes-api/internal/domain/entity"
	"github.com/jpcardenas/ordenes-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos y sus variaciones.
// CurrentStock no se edita por acá: toda mutación de stock pasa por el
// accessor (el alta con stock inicial delega en él).
type ProductUseCase struct {
	productRepo repository.ProductRepository
	varRepo     repository.VariationRepository
	accessor    *stock.Accessor
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(productRepo repository.ProductRepository, varRepo repository.VariationRepository, accessor *stock.Accessor) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo, varRepo: varRepo, accessor: accessor}
}

// Create crea un producto activo sin variaciones.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product, nil), nil
}

// GetByID obtiene un producto con sus variaciones.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	variations, err := uc.varRepo.ListByProduct(id, false)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product, variations), nil
}

// List lista productos con paginación. activeOnly filtra los desactivados.
func (uc *ProductUseCase) List(activeOnly bool, limit, offset int) ([]dto.ProductResponse, error) {
	list, err := uc.productRepo.List(activeOnly, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p, nil))
	}
	return items, nil
}

// Update actualiza metadatos del producto. Active=false lo desactiva
// (borrado lógico, las variaciones y el historial quedan intactos).
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Active != nil {
		product.Active = *in.Active
	}
	product.UpdatedAt = time.Now()
	if err := uc.productRepo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product, nil), nil
}

// CreateVariation crea una variación de un producto. InitialStock > 0 genera
// la primera fila del historial (razón manual) vía el accessor, así el
// contador arranca ya conciliado con el libro.
func (uc *ProductUseCase) CreateVariation(ctx context.Context, productID, userID string, in dto.CreateVariationRequest) (*dto.VariationResponse, error) {
	if !entity.ValidVariationType(in.Type) {
		return nil, domain.ErrInvalidInput
	}
	if in.Cost.IsNegative() || in.SalePrice.IsNegative() || in.InitialStock < 0 || in.MinimumStock < 0 {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	variation := &entity.ProductVariation{
		ID:           uuid.New().String(),
		ProductID:    productID,
		Type:         in.Type,
		Cost:         in.Cost,
		SalePrice:    in.SalePrice,
		CurrentStock: 0,
		MinimumStock: in.MinimumStock,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.varRepo.Create(variation); err != nil {
		return nil, err
	}
	if in.InitialStock > 0 {
		entry, err := uc.accessor.ApplyChange(ctx, stock.ChangeInput{
			VariationID: variation.ID,
			Amount:      in.InitialStock,
			Reason:      entity.ReasonManual,
			UserID:      userID,
			Notes:       "Stock inicial",
		})
		if err != nil {
			return nil, err
		}
		variation.CurrentStock = entry.ChangeAmount
	}
	return toVariationResponse(variation), nil
}

// GetVariation obtiene una variación por ID.
func (uc *ProductUseCase) GetVariation(id string) (*dto.VariationResponse, error) {
	variation, err := uc.varRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if variation == nil {
		return nil, domain.ErrNotFound
	}
	return toVariationResponse(variation), nil
}

// UpdateVariation actualiza precio, costo, mínimo o estado activo.
// CurrentStock nunca se toca por esta vía.
func (uc *ProductUseCase) UpdateVariation(id string, in dto.UpdateVariationRequest) (*dto.VariationResponse, error) {
	variation, err := uc.varRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if variation == nil {
		return nil, domain.ErrNotFound
	}
	if in.Type != nil {
		if !entity.ValidVariationType(*in.Type) {
			return nil, domain.ErrInvalidInput
		}
		variation.Type = *in.Type
	}
	if in.Cost != nil {
		if in.Cost.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		variation.Cost = *in.Cost
	}
	if in.SalePrice != nil {
		if in.SalePrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		variation.SalePrice = *in.SalePrice
	}
	if in.MinimumStock != nil {
		if *in.MinimumStock < 0 {
			return nil, domain.ErrInvalidInput
		}
		variation.MinimumStock = *in.MinimumStock
	}
	if in.Active != nil {
		variation.Active = *in.Active
	}
	variation.UpdatedAt = time.Now()
	if err := uc.varRepo.Update(variation); err != nil {
		return nil, err
	}
	return toVariationResponse(variation), nil
}

func toProductResponse(p *entity.Product, variations []*entity.ProductVariation) *dto.ProductResponse {
	resp := &dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Active:      p.Active,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	for _, v := range variations {
		resp.Variations = append(resp.Variations, *toVariationResponse(v))
	}
	return resp
}

func toVariationResponse(v *entity.ProductVariation) *dto.VariationResponse {
	return &dto.VariationResponse{
		ID:           v.ID,
		ProductID:    v.ProductID,
		Type:         v.Type,
		Cost:         v.Cost,
		SalePrice:    v.SalePrice,
		CurrentStock: v.CurrentStock,
		MinimumStock: v.MinimumStock,
		Active:       v.Active,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}
