package usecase_test

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpcardenas/ordenes-api/internal/application/dto"
	"github.com/jpcardenas/ordenes-api/internal/application/stock"
	"github.com/jpcardenas/ordenes-api/internal/application/usecase"
	"github.com/jpcardenas/ordenes-api/internal/domain"
	"github.com/jpcardenas/ordenes-api/internal/domain/entity"
	"github.com/jpcardenas/ordenes-api/internal/domain/repository"
)

// ── Fakes en memoria ──────────────────────────────────────────────

type memStore struct {
	mu       sync.Mutex
	products map[string]*entity.Product
	vars     map[string]*entity.ProductVariation
	hist     []*entity.StockHistory
}

func newMemStore() *memStore {
	return &memStore{
		products: map[string]*entity.Product{},
		vars:     map[string]*entity.ProductVariation{},
	}
}

type fakeProductRepo struct{ s *memStore }

func (r *fakeProductRepo) Create(p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) List(activeOnly bool, limit, offset int) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Product
	for _, p := range r.s.products {
		if activeOnly && !p.Active {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

type fakeVarRepo struct{ s *memStore }

func (r *fakeVarRepo) Create(v *entity.ProductVariation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *v
	r.s.vars[v.ID] = &cp
	return nil
}

func (r *fakeVarRepo) GetByID(id string) (*entity.ProductVariation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.vars[id]
	if !ok {
		return nil, nil
	}
	cp := *v
	return &cp, nil
}

func (r *fakeVarRepo) GetForUpdate(id string) (*entity.ProductVariation, error) {
	return r.GetByID(id)
}

func (r *fakeVarRepo) ListByProduct(productID string, activeOnly bool) ([]*entity.ProductVariation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.ProductVariation
	for _, v := range r.s.vars {
		if v.ProductID != productID || (activeOnly && !v.Active) {
			continue
		}
		cp := *v
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeVarRepo) ListActive() ([]*entity.ProductVariation, error) { return nil, nil }

func (r *fakeVarRepo) Update(v *entity.ProductVariation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *v
	r.s.vars[v.ID] = &cp
	return nil
}

func (r *fakeVarRepo) UpdateStock(id string, newStock int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.vars[id]
	if !ok {
		return domain.ErrNotFound
	}
	v.CurrentStock = newStock
	return nil
}

type fakeHistRepo struct{ s *memStore }

func (r *fakeHistRepo) Append(entry *entity.StockHistory) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *entry
	r.s.hist = append(r.s.hist, &cp)
	return nil
}

func (r *fakeHistRepo) ListByVariation(variationID string, limit, offset int) ([]*entity.StockHistory, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.StockHistory
	for i := len(r.s.hist) - 1; i >= 0; i-- {
		if r.s.hist[i].VariationID == variationID {
			cp := *r.s.hist[i]
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeTxRunner struct {
	txMu sync.Mutex
	s    *memStore
}

func (tr *fakeTxRunner) Run(ctx context.Context, fn func(
	varRepo repository.VariationRepository,
	histRepo repository.StockHistoryRepository,
) error) error {
	tr.txMu.Lock()
	defer tr.txMu.Unlock()
	return fn(&fakeVarRepo{tr.s}, &fakeHistRepo{tr.s})
}

// ── Helpers ───────────────────────────────────────────────────────

const testUserID = "usuario-1"

func buildProductUC() (*usecase.ProductUseCase, *memStore) {
	store := newMemStore()
	accessor := stock.NewAccessor(&fakeTxRunner{s: store}, &fakeVarRepo{store}, &fakeHistRepo{store})
	uc := usecase.NewProductUseCase(&fakeProductRepo{store}, &fakeVarRepo{store}, accessor)
	return uc, store
}

func createProduct(t *testing.T, uc *usecase.ProductUseCase, name string) *dto.ProductResponse {
	t.Helper()
	product, err := uc.Create(dto.CreateProductRequest{Name: name})
	require.NoError(t, err)
	require.NotNil(t, product)
	return product
}

// ── Tests ─────────────────────────────────────────────────────────

func TestProductCreate(t *testing.T) {
	uc, _ := buildProductUC()
	product := createProduct(t, uc, "Vitamina C")

	assert.Equal(t, "Vitamina C", product.Name)
	assert.True(t, product.Active)

	_, err := uc.Create(dto.CreateProductRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductUpdate_DesactivaSinBorrar(t *testing.T) {
	uc, _ := buildProductUC()
	product := createProduct(t, uc, "Vitamina C")

	inactive := false
	updated, err := uc.Update(product.ID, dto.UpdateProductRequest{Active: &inactive})
	require.NoError(t, err)
	assert.False(t, updated.Active)

	// Sigue recuperable por ID.
	got, err := uc.GetByID(product.ID)
	require.NoError(t, err)
	assert.False(t, got.Active)
}

func TestCreateVariation_StockInicialGeneraHistorial(t *testing.T) {
	uc, store := buildProductUC()
	product := createProduct(t, uc, "Vitamina C")

	variation, err := uc.CreateVariation(context.Background(), product.ID, testUserID, dto.CreateVariationRequest{
		Type:         entity.VariationTypeCapsulas,
		Cost:         decimal.NewFromInt(10),
		SalePrice:    decimal.NewFromInt(25),
		InitialStock: 50,
		MinimumStock: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(50), variation.CurrentStock)

	// El contador arranca conciliado con el libro: una fila manual de +50.
	require.Len(t, store.hist, 1)
	assert.Equal(t, int64(50), store.hist[0].ChangeAmount)
	assert.Equal(t, entity.ReasonManual, store.hist[0].Reason)
	assert.Equal(t, "Stock inicial", store.hist[0].Notes)
	assert.Equal(t, testUserID, store.hist[0].UserID)
}

func TestCreateVariation_SinStockInicial(t *testing.T) {
	uc, store := buildProductUC()
	product := createProduct(t, uc, "Vitamina C")

	variation, err := uc.CreateVariation(context.Background(), product.ID, testUserID, dto.CreateVariationRequest{
		Type:      entity.VariationTypeGotas,
		Cost:      decimal.NewFromInt(8),
		SalePrice: decimal.NewFromInt(18),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), variation.CurrentStock)
	assert.Empty(t, store.hist)
}

func TestCreateVariation_EntradaInvalida(t *testing.T) {
	uc, _ := buildProductUC()
	product := createProduct(t, uc, "Vitamina C")

	cases := []struct {
		name string
		in   dto.CreateVariationRequest
	}{
		{"tipo desconocido", dto.CreateVariationRequest{Type: "ampolla"}},
		{"costo negativo", dto.CreateVariationRequest{Type: entity.VariationTypeGel, Cost: decimal.NewFromInt(-1)}},
		{"precio negativo", dto.CreateVariationRequest{Type: entity.VariationTypeGel, SalePrice: decimal.NewFromInt(-1)}},
		{"stock inicial negativo", dto.CreateVariationRequest{Type: entity.VariationTypeGel, InitialStock: -5}},
		{"mínimo negativo", dto.CreateVariationRequest{Type: entity.VariationTypeGel, MinimumStock: -1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.CreateVariation(context.Background(), product.ID, testUserID, tc.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}

	_, err := uc.CreateVariation(context.Background(), uuid.New().String(), testUserID, dto.CreateVariationRequest{
		Type: entity.VariationTypeGel,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateVariation_NoTocaElStock(t *testing.T) {
	uc, _ := buildProductUC()
	product := createProduct(t, uc, "Vitamina C")

	variation, err := uc.CreateVariation(context.Background(), product.ID, testUserID, dto.CreateVariationRequest{
		Type:         entity.VariationTypeCapsulas,
		Cost:         decimal.NewFromInt(10),
		SalePrice:    decimal.NewFromInt(25),
		InitialStock: 50,
	})
	require.NoError(t, err)

	newPrice := decimal.NewFromInt(30)
	updated, err := uc.UpdateVariation(variation.ID, dto.UpdateVariationRequest{SalePrice: &newPrice})
	require.NoError(t, err)
	assert.True(t, updated.SalePrice.Equal(newPrice))
	assert.Equal(t, int64(50), updated.CurrentStock)
}

func TestProductGetByID_IncluyeVariaciones(t *testing.T) {
	uc, _ := buildProductUC()
	product := createProduct(t, uc, "Vitamina C")

	_, err := uc.CreateVariation(context.Background(), product.ID, testUserID, dto.CreateVariationRequest{
		Type: entity.VariationTypeCapsulas,
	})
	require.NoError(t, err)

	got, err := uc.GetByID(product.ID)
	require.NoError(t, err)
	assert.Len(t, got.Variations, 1)

	_, err = uc.GetByID(uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
