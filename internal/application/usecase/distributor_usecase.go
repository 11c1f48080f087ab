package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jpcardenas/ordenes-api/internal/application/dto"
	"github.com/jpcardenas/ordenes-api/internal/domain"
	"github.com/jpcardenas/ordenes-api/internal/domain/entity"
	"github.com/jpcardenas/ordenes-api/internal/domain/repository"
)

// DistributorUseCase casos de uso CRUD para distribuidores.
type DistributorUseCase struct {
	repo repository.DistributorRepository
}

// NewDistributorUseCase construye el caso de uso.
func NewDistributorUseCase(repo repository.DistributorRepository) *DistributorUseCase {
	return &DistributorUseCase{repo: repo}
}

// Create crea un distribuidor activo.
func (uc *DistributorUseCase) Create(in dto.CreateDistributorRequest) (*dto.DistributorResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	distributor := &entity.Distributor{
		ID:          uuid.New().String(),
		Name:        in.Name,
		ContactName: in.ContactName,
		Email:       in.Email,
		Phone:       in.Phone,
		Address:     in.Address,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(distributor); err != nil {
		return nil, err
	}
	return toDistributorResponse(distributor), nil
}

// GetByID obtiene un distribuidor por ID.
func (uc *DistributorUseCase) GetByID(id string) (*dto.DistributorResponse, error) {
	distributor, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if distributor == nil {
		return nil, domain.ErrNotFound
	}
	return toDistributorResponse(distributor), nil
}

// List lista distribuidores con paginación.
func (uc *DistributorUseCase) List(activeOnly bool, limit, offset int) ([]dto.DistributorResponse, error) {
	list, err := uc.repo.List(activeOnly, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.DistributorResponse, 0, len(list))
	for _, d := range list {
		items = append(items, *toDistributorResponse(d))
	}
	return items, nil
}

// Update actualiza datos de contacto o desactiva al distribuidor.
// Desactivar no toca sus pedidos existentes.
func (uc *DistributorUseCase) Update(id string, in dto.UpdateDistributorRequest) (*dto.DistributorResponse, error) {
	distributor, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if distributor == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		distributor.Name = *in.Name
	}
	if in.ContactName != nil {
		distributor.ContactName = *in.ContactName
	}
	if in.Email != nil {
		distributor.Email = *in.Email
	}
	if in.Phone != nil {
		distributor.Phone = *in.Phone
	}
	if in.Address != nil {
		distributor.Address = *in.Address
	}
	if in.Active != nil {
		distributor.Active = *in.Active
	}
	distributor.UpdatedAt = time.Now()
	if err := uc.repo.Update(distributor); err != nil {
		return nil, err
	}
	return toDistributorResponse(distributor), nil
}

func toDistributorResponse(d *entity.Distributor) *dto.DistributorResponse {
	return &dto.DistributorResponse{
		ID:          d.ID,
		Name:        d.Name,
		ContactName: d.ContactName,
		Email:       d.Email,
		Phone:       d.Phone,
		Address:     d.Address,
		Active:      d.Active,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}
