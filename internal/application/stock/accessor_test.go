package stock_test

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpcardenas/ordenes-api/internal/application/stock"
	"github.com/jpcardenas/ordenes-api/internal/domain"
	"github.com/jpcardenas/ordenes-api/internal/domain/entity"
	"github.com/jpcardenas/ordenes-api/internal/domain/repository"
)

// ── Fakes en memoria ──────────────────────────────────────────────

type fakeVarRepo struct {
	mu   sync.Mutex
	vars map[string]*entity.ProductVariation
}

func newFakeVarRepo() *fakeVarRepo {
	return &fakeVarRepo{vars: map[string]*entity.ProductVariation{}}
}

func (r *fakeVarRepo) Create(v *entity.ProductVariation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *v
	r.vars[v.ID] = &cp
	return nil
}

func (r *fakeVarRepo) GetByID(id string) (*entity.ProductVariation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.vars[id]
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
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.ProductVariation
	for _, v := range r.vars {
		if v.ProductID != productID || (activeOnly && !v.Active) {
			continue
		}
		cp := *v
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeVarRepo) ListActive() ([]*entity.ProductVariation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.ProductVariation
	for _, v := range r.vars {
		if v.Active {
			cp := *v
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeVarRepo) Update(v *entity.ProductVariation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *v
	r.vars[v.ID] = &cp
	return nil
}

func (r *fakeVarRepo) UpdateStock(id string, newStock int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.vars[id]
	if !ok {
		return domain.ErrNotFound
	}
	v.CurrentStock = newStock
	return nil
}

func (r *fakeVarRepo) snapshot() map[string]entity.ProductVariation {
	r.mu.Lock()
	defer r.mu.Unlock()
	snap := make(map[string]entity.ProductVariation, len(r.vars))
	for id, v := range r.vars {
		snap[id] = *v
	}
	return snap
}

func (r *fakeVarRepo) restore(snap map[string]entity.ProductVariation) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.vars = make(map[string]*entity.ProductVariation, len(snap))
	for id, v := range snap {
		cp := v
		r.vars[id] = &cp
	}
}

type fakeHistRepo struct {
	mu      sync.Mutex
	entries []*entity.StockHistory
}

func (r *fakeHistRepo) Append(entry *entity.StockHistory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *entry
	r.entries = append(r.entries, &cp)
	return nil
}

func (r *fakeHistRepo) ListByVariation(variationID string, limit, offset int) ([]*entity.StockHistory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.StockHistory
	for i := len(r.entries) - 1; i >= 0; i-- {
		if r.entries[i].VariationID == variationID {
			cp := *r.entries[i]
			out = append(out, &cp)
		}
	}
	if offset > 0 {
		if offset >= len(out) {
			return nil, nil
		}
		out = out[offset:]
	}
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeHistRepo) byVariation(variationID string) []*entity.StockHistory {
	out, _ := r.ListByVariation(variationID, 0, 0)
	return out
}

// fakeTxRunner serializa las transacciones con un mutex (el equivalente del
// bloqueo de fila) y revierte los fakes si fn devuelve error.
type fakeTxRunner struct {
	mu       sync.Mutex
	varRepo  *fakeVarRepo
	histRepo *fakeHistRepo
}

func (tr *fakeTxRunner) Run(ctx context.Context, fn func(
	varRepo repository.VariationRepository,
	histRepo repository.StockHistoryRepository,
) error) error {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	varSnap := tr.varRepo.snapshot()
	histLen := len(tr.histRepo.entries)
	if err := fn(tr.varRepo, tr.histRepo); err != nil {
		tr.varRepo.restore(varSnap)
		tr.histRepo.entries = tr.histRepo.entries[:histLen]
		return err
	}
	return nil
}

// ── Helpers ───────────────────────────────────────────────────────

const testUserID = "usuario-1"

func seedVariation(t *testing.T, repo *fakeVarRepo, stock int64) string {
	t.Helper()
	id := uuid.New().String()
	err := repo.Create(&entity.ProductVariation{
		ID:           id,
		ProductID:    uuid.New().String(),
		Type:         entity.VariationTypeCapsulas,
		Cost:         decimal.NewFromInt(10),
		SalePrice:    decimal.NewFromInt(25),
		CurrentStock: stock,
		MinimumStock: 2,
		Active:       true,
	})
	require.NoError(t, err)
	return id
}

func buildAccessor() (*stock.Accessor, *fakeVarRepo, *fakeHistRepo) {
	varRepo := newFakeVarRepo()
	histRepo := &fakeHistRepo{}
	tr := &fakeTxRunner{varRepo: varRepo, histRepo: histRepo}
	return stock.NewAccessor(tr, varRepo, histRepo), varRepo, histRepo
}

// ── Tests ─────────────────────────────────────────────────────────

func TestApplyChange_EntradaYSalida(t *testing.T) {
	accessor, varRepo, histRepo := buildAccessor()
	varID := seedVariation(t, varRepo, 10)

	entry, err := accessor.ApplyChange(context.Background(), stock.ChangeInput{
		VariationID: varID,
		Amount:      5,
		Reason:      entity.ReasonManual,
		UserID:      testUserID,
		Notes:       "reposición manual",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), entry.ChangeAmount)
	assert.Equal(t, entity.ReasonManual, entry.Reason)
	assert.True(t, entry.Reference.IsZero())

	_, err = accessor.ApplyChange(context.Background(), stock.ChangeInput{
		VariationID: varID,
		Amount:      -8,
		Reason:      entity.ReasonAdjustment,
		UserID:      testUserID,
	})
	require.NoError(t, err)

	v, err := varRepo.GetByID(varID)
	require.NoError(t, err)
	assert.Equal(t, int64(7), v.CurrentStock)
	assert.Len(t, histRepo.byVariation(varID), 2)
}

func TestApplyChange_StockInsuficiente(t *testing.T) {
	accessor, varRepo, histRepo := buildAccessor()
	varID := seedVariation(t, varRepo, 3)

	_, err := accessor.ApplyChange(context.Background(), stock.ChangeInput{
		VariationID: varID,
		Amount:      -5,
		Reason:      entity.ReasonDamaged,
		UserID:      testUserID,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var shortage *domain.StockShortage
	require.ErrorAs(t, err, &shortage)
	assert.Equal(t, varID, shortage.VariationID)
	assert.Equal(t, int64(5), shortage.Required)
	assert.Equal(t, int64(3), shortage.Available)

	// El rechazo no deja rastro: ni contador ni historial.
	v, _ := varRepo.GetByID(varID)
	assert.Equal(t, int64(3), v.CurrentStock)
	assert.Empty(t, histRepo.byVariation(varID))
}

func TestApplyChange_EntradaInvalida(t *testing.T) {
	accessor, varRepo, _ := buildAccessor()
	varID := seedVariation(t, varRepo, 3)

	cases := []struct {
		name string
		in   stock.ChangeInput
	}{
		{"sin variación", stock.ChangeInput{Amount: 1, Reason: entity.ReasonManual, UserID: testUserID}},
		{"cantidad cero", stock.ChangeInput{VariationID: varID, Amount: 0, Reason: entity.ReasonManual, UserID: testUserID}},
		{"sin usuario", stock.ChangeInput{VariationID: varID, Amount: 1, Reason: entity.ReasonManual}},
		{"razón desconocida", stock.ChangeInput{VariationID: varID, Amount: 1, Reason: "robo", UserID: testUserID}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := accessor.ApplyChange(context.Background(), tc.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestApplyChange_VariacionInexistente(t *testing.T) {
	accessor, _, _ := buildAccessor()

	_, err := accessor.ApplyChange(context.Background(), stock.ChangeInput{
		VariationID: uuid.New().String(),
		Amount:      1,
		Reason:      entity.ReasonManual,
		UserID:      testUserID,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// El contador materializado siempre reconcilia con la suma del historial,
// también bajo cambios concurrentes.
func TestApplyChange_ConcurrenciaConservaElLibroMayor(t *testing.T) {
	accessor, varRepo, histRepo := buildAccessor()
	varID := seedVariation(t, varRepo, 100)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		amount := int64(3)
		if i%2 == 0 {
			amount = -2
		}
		wg.Add(1)
		go func(amount int64) {
			defer wg.Done()
			_, err := accessor.ApplyChange(context.Background(), stock.ChangeInput{
				VariationID: varID,
				Amount:      amount,
				Reason:      entity.ReasonAdjustment,
				UserID:      testUserID,
			})
			assert.NoError(t, err)
		}(amount)
	}
	wg.Wait()

	v, err := varRepo.GetByID(varID)
	require.NoError(t, err)

	var sum int64
	for _, e := range histRepo.byVariation(varID) {
		sum += e.ChangeAmount
	}
	assert.Equal(t, v.CurrentStock, 100+sum)
	assert.Equal(t, int64(110), v.CurrentStock) // 100 + 10*3 - 10*2
}

func TestHistory(t *testing.T) {
	accessor, varRepo, _ := buildAccessor()
	varID := seedVariation(t, varRepo, 10)

	for i := 0; i < 3; i++ {
		_, err := accessor.ApplyChange(context.Background(), stock.ChangeInput{
			VariationID: varID,
			Amount:      1,
			Reason:      entity.ReasonManual,
			UserID:      testUserID,
		})
		require.NoError(t, err)
	}

	entries, err := accessor.History(context.Background(), varID, 2, 0)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	_, err = accessor.History(context.Background(), uuid.New().String(), 0, 0)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
