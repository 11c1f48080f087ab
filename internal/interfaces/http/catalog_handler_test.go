package http_test

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpcardenas/ordenes-api/internal/application/usecase"
	"github.com/jpcardenas/ordenes-api/internal/domain/entity"
	apphttp "github.com/jpcardenas/ordenes-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes con registro del flag activeOnly
// ──────────────────────────────────────────────────────────────────────────────

type recProductRepo struct {
	mu             sync.Mutex
	products       map[string]*entity.Product
	lastActiveOnly bool
}

func (r *recProductRepo) Create(p *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *recProductRepo) GetByID(id string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *recProductRepo) List(activeOnly bool, limit, offset int) ([]*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastActiveOnly = activeOnly
	return nil, nil
}

func (r *recProductRepo) Update(p *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

type recVarRepo struct{}

func (r *recVarRepo) Create(v *entity.ProductVariation) error { return nil }

func (r *recVarRepo) GetByID(id string) (*entity.ProductVariation, error) {
	return nil, nil
}

func (r *recVarRepo) GetForUpdate(id string) (*entity.ProductVariation, error) {
	return nil, nil
}

func (r *recVarRepo) ListByProduct(productID string, activeOnly bool) ([]*entity.ProductVariation, error) {
	return nil, nil
}

func (r *recVarRepo) ListActive() ([]*entity.ProductVariation, error) { return nil, nil }

func (r *recVarRepo) Update(v *entity.ProductVariation) error { return nil }

func (r *recVarRepo) UpdateStock(id string, newStock int64) error { return nil }

type recKitRepo struct {
	mu             sync.Mutex
	kits           map[string]*entity.Kit
	lastActiveOnly bool
}

func (r *recKitRepo) Create(kit *entity.Kit, products []*entity.KitProduct) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *kit
	r.kits[kit.ID] = &cp
	return nil
}

func (r *recKitRepo) GetByID(id string) (*entity.Kit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	kit, ok := r.kits[id]
	if !ok {
		return nil, nil
	}
	cp := *kit
	return &cp, nil
}

func (r *recKitRepo) ListProducts(kitID string) ([]*entity.KitProduct, error) { return nil, nil }

func (r *recKitRepo) List(activeOnly bool, limit, offset int) ([]*entity.Kit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastActiveOnly = activeOnly
	return nil, nil
}

func (r *recKitRepo) Update(kit *entity.Kit) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *kit
	r.kits[kit.ID] = &cp
	return nil
}

func (r *recKitRepo) ReplaceProducts(kitID string, products []*entity.KitProduct) error {
	return nil
}

type recDistRepo struct {
	mu             sync.Mutex
	dists          map[string]*entity.Distributor
	lastActiveOnly bool
}

func (r *recDistRepo) Create(d *entity.Distributor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *d
	r.dists[d.ID] = &cp
	return nil
}

func (r *recDistRepo) GetByID(id string) (*entity.Distributor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.dists[id]
	if !ok {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (r *recDistRepo) List(activeOnly bool, limit, offset int) ([]*entity.Distributor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastActiveOnly = activeOnly
	return nil, nil
}

func (r *recDistRepo) Update(d *entity.Distributor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *d
	r.dists[d.ID] = &cp
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

type catalogFixture struct {
	app         *fiber.App
	productRepo *recProductRepo
	kitRepo     *recKitRepo
	distRepo    *recDistRepo
}

// buildCatalogApp monta el router real sobre repos en memoria. Los casos de
// uso que estos tests no tocan quedan en nil.
func buildCatalogApp(t *testing.T) *catalogFixture {
	t.Helper()
	productRepo := &recProductRepo{products: map[string]*entity.Product{}}
	kitRepo := &recKitRepo{kits: map[string]*entity.Kit{}}
	distRepo := &recDistRepo{dists: map[string]*entity.Distributor{}}

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		ProductUC:     usecase.NewProductUseCase(productRepo, &recVarRepo{}, nil),
		KitUC:         usecase.NewKitUseCase(kitRepo, &recVarRepo{}),
		DistributorUC: usecase.NewDistributorUseCase(distRepo),
		JWTSecret:     testJWTSecret,
	})
	return &catalogFixture{app: app, productRepo: productRepo, kitRepo: kitRepo, distRepo: distRepo}
}

func (f *catalogFixture) request(t *testing.T, method, path, role string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("Authorization", tokenForRole(t, role))
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests listados — active_only por defecto
// ──────────────────────────────────────────────────────────────────────────────

func TestList_SoloActivosPorDefecto(t *testing.T) {
	f := buildCatalogApp(t)

	cases := []struct {
		name string
		path string
		got  func() bool
	}{
		{"productos", "/api/products", func() bool { return f.productRepo.lastActiveOnly }},
		{"kits", "/api/kits", func() bool { return f.kitRepo.lastActiveOnly }},
		{"distribuidores", "/api/distributors", func() bool { return f.distRepo.lastActiveOnly }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := f.request(t, http.MethodGet, tc.path, "admin")
			defer resp.Body.Close()
			require.Equal(t, http.StatusOK, resp.StatusCode)
			assert.True(t, tc.got(), "sin query param el listado debe filtrar inactivos")

			resp = f.request(t, http.MethodGet, tc.path+"?active_only=false", "admin")
			defer resp.Body.Close()
			require.Equal(t, http.StatusOK, resp.StatusCode)
			assert.False(t, tc.got(), "active_only=false debe incluir inactivos")
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests DELETE — baja lógica
// ──────────────────────────────────────────────────────────────────────────────

func TestDelete_DesactivaSinBorrarFilas(t *testing.T) {
	f := buildCatalogApp(t)

	require.NoError(t, f.productRepo.Create(&entity.Product{ID: "prod-1", Name: "Vitamina C", Active: true}))
	require.NoError(t, f.kitRepo.Create(&entity.Kit{ID: "kit-1", Name: "Inmunidad", Active: true}, nil))
	require.NoError(t, f.distRepo.Create(&entity.Distributor{ID: "dist-1", Name: "Distribuidora Norte", Active: true}))

	cases := []struct {
		name string
		path string
		got  func() (bool, bool)
	}{
		{"producto", "/api/products/prod-1", func() (bool, bool) {
			p, _ := f.productRepo.GetByID("prod-1")
			return p != nil, p != nil && p.Active
		}},
		{"kit", "/api/kits/kit-1", func() (bool, bool) {
			k, _ := f.kitRepo.GetByID("kit-1")
			return k != nil, k != nil && k.Active
		}},
		{"distribuidor", "/api/distributors/dist-1", func() (bool, bool) {
			d, _ := f.distRepo.GetByID("dist-1")
			return d != nil, d != nil && d.Active
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := f.request(t, http.MethodDelete, tc.path, "admin")
			defer resp.Body.Close()
			assert.Equal(t, http.StatusOK, resp.StatusCode)

			exists, active := tc.got()
			assert.True(t, exists, "la fila debe seguir existiendo tras el DELETE")
			assert.False(t, active, "la fila debe quedar desactivada")
		})
	}
}

func TestDelete_Inexistente_Retorna404(t *testing.T) {
	f := buildCatalogApp(t)

	resp := f.request(t, http.MethodDelete, "/api/products/no-existe", "admin")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RBAC — guardas de rol en las rutas de mutación
// ──────────────────────────────────────────────────────────────────────────────

func TestRutas_MutacionesExigenRol(t *testing.T) {
	f := buildCatalogApp(t)

	cases := []struct {
		name   string
		method string
		path   string
		role   string
	}{
		{"vendedor no crea productos", http.MethodPost, "/api/products", "vendedor"},
		{"cobrador no edita kits", http.MethodPut, "/api/kits/kit-1", "cobrador"},
		{"vendedor no desactiva distribuidores", http.MethodDelete, "/api/distributors/dist-1", "vendedor"},
		{"cobrador no registra ventas de kit", http.MethodPost, "/api/kit-sales", "cobrador"},
		{"vendedor no registra cobranzas", http.MethodPost, "/api/orders/x/billing", "vendedor"},
		{"cobrador no crea pedidos", http.MethodPost, "/api/orders", "cobrador"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := f.request(t, tc.method, tc.path, tc.role)
			defer resp.Body.Close()
			assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		})
	}

	// Las lecturas no exigen rol específico.
	resp := f.request(t, http.MethodGet, "/api/products", "cobrador")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
