package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/stock-core/internal/application/audit"
	"github.com/tu-usuario/stock-core/internal/application/authz"
	"github.com/tu-usuario/stock-core/internal/application/notify"
	"github.com/tu-usuario/stock-core/internal/application/stock"
	"github.com/tu-usuario/stock-core/internal/domain"
	"github.com/tu-usuario/stock-core/internal/domain/entity"
	"github.com/tu-usuario/stock-core/internal/domain/repository"
	apphttp "github.com/tu-usuario/stock-core/internal/interfaces/http"
	pkgjwt "github.com/tu-usuario/stock-core/pkg/jwt"
	"github.com/tu-usuario/stock-core/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles mínimos de persistencia para el test de handlers
// ──────────────────────────────────────────────────────────────────────────────

type fakeEntryRepo struct {
	mu   sync.Mutex
	byID map[string]*entity.StockEntry
}

func (r *fakeEntryRepo) clone(e *entity.StockEntry) *entity.StockEntry {
	c := *e
	return &c
}

func (r *fakeEntryRepo) GetByPair(_ context.Context, inventoryID, productID string) (*entity.StockEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.byID {
		if e.InventoryID == inventoryID && e.ProductID == productID {
			return r.clone(e), nil
		}
	}
	return nil, nil
}

func (r *fakeEntryRepo) GetByID(_ context.Context, id string) (*entity.StockEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.byID[id]; ok {
		return r.clone(e), nil
	}
	return nil, nil
}

func (r *fakeEntryRepo) ListByInventory(_ context.Context, inventoryID string) ([]*entity.StockEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.StockEntry
	for _, e := range r.byID {
		if e.InventoryID == inventoryID {
			out = append(out, r.clone(e))
		}
	}
	return out, nil
}

func (r *fakeEntryRepo) Insert(_ context.Context, entry *entity.StockEntry) (*entity.StockEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.byID {
		if e.InventoryID == entry.InventoryID && e.ProductID == entry.ProductID {
			return nil, domain.ErrConflict
		}
	}
	stored := r.clone(entry)
	stored.CreatedAt, stored.UpdatedAt = time.Now(), time.Now()
	r.byID[stored.ID] = stored
	return r.clone(stored), nil
}

func (r *fakeEntryRepo) UpdateConditional(_ context.Context, id string, expectedQuantity, newQuantity, newMinStock int64) (*entity.StockEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.byID[id]
	if !ok || e.Quantity != expectedQuantity {
		return nil, domain.ErrConcurrentUpdate
	}
	e.Quantity, e.MinStockQuantity, e.UpdatedAt = newQuantity, newMinStock, time.Now()
	return r.clone(e), nil
}

func (r *fakeEntryRepo) Delete(_ context.Context, id string) (*entity.StockEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	delete(r.byID, id)
	return r.clone(e), nil
}

type fakeCatalog struct {
	inventories map[string]*entity.Inventory
	products    map[string]*entity.Product
}

func (c *fakeCatalog) GetByID(_ context.Context, id string) (*entity.Inventory, error) {
	return c.inventories[id], nil
}

func (c *fakeCatalog) List(_ context.Context) ([]*entity.Inventory, error) { return nil, nil }

type fakeProducts struct{ c *fakeCatalog }

func (p *fakeProducts) GetByID(_ context.Context, id string) (*entity.Product, error) {
	return p.c.products[id], nil
}

func (p *fakeProducts) Search(_ context.Context, _ string, _, _ int) ([]*entity.Product, error) {
	return nil, nil
}

type fakeUsers struct {
	users       map[string]*entity.User
	assignments map[string]*entity.InventoryAssignment
}

func (r *fakeUsers) Create(_ context.Context, _ *entity.User) error { return nil }

func (r *fakeUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	return r.users[id], nil
}

func (r *fakeUsers) GetByEmail(_ context.Context, _ string) (*entity.User, error) { return nil, nil }

func (r *fakeUsers) GetByUserAndInventory(_ context.Context, userID, inventoryID string) (*entity.InventoryAssignment, error) {
	return r.assignments[userID+"|"+inventoryID], nil
}

type fakeAuditRepo struct {
	mu      sync.Mutex
	entries []*entity.AuditEntry
	failing bool
}

func (r *fakeAuditRepo) Create(_ context.Context, entry *entity.AuditEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failing {
		return errors.New("auditoría caída")
	}
	r.entries = append(r.entries, entry)
	return nil
}

func (r *fakeAuditRepo) List(_ context.Context, _ repository.AuditFilter) ([]*entity.AuditEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*entity.AuditEntry(nil), r.entries...), nil
}

// ──────────────────────────────────────────────────────────────────────────────
// App de test: rutas de stock con el stack real detrás de dobles en memoria
// ──────────────────────────────────────────────────────────────────────────────

type stockApp struct {
	app       *fiber.App
	auditRepo *fakeAuditRepo
}

func newStockApp(t *testing.T) *stockApp {
	t.Helper()

	catalog := &fakeCatalog{
		inventories: map[string]*entity.Inventory{
			"inv-1": {ID: "inv-1", Name: "Bodega Central", IsActive: true},
		},
		products: map[string]*entity.Product{
			"prod-1": {ID: "prod-1", Name: "Café Premium", SKU: "CAF-001", IsActive: true},
		},
	}
	users := &fakeUsers{
		users: map[string]*entity.User{
			testUserID: {ID: testUserID, Role: entity.RoleAdmin, Status: "active"},
			"viewer-1": {ID: "viewer-1", Role: entity.RoleViewer, Status: "active"},
		},
	}
	auditRepo := &fakeAuditRepo{}
	log := logger.Nop()

	uc := stock.NewUseCase(
		&fakeEntryRepo{byID: make(map[string]*entity.StockEntry)},
		catalog,
		&fakeProducts{c: catalog},
		authz.NewGate(users, users),
		audit.NewRecorder(auditRepo),
		notify.NewService(catalog, &fakeProducts{c: catalog}, notify.NewHub(log)),
		log,
	)

	app := fiber.New()
	handler := apphttp.NewStockHandler(uc)
	inventories := app.Group("/api/inventories/:inventoryId", apphttp.AuthMiddleware(testJWTSecret))
	inventories.Get("/stock", handler.ListByInventory)
	inventories.Post("/stock", handler.CreateEntry)
	inventories.Get("/stock/:productId", handler.GetEntry)
	inventories.Put("/stock/:productId", handler.SetQuantity)
	inventories.Delete("/stock/:productId", handler.RemoveEntry)
	inventories.Post("/stock/:productId/increase", handler.IncreaseQuantity)
	inventories.Post("/stock/:productId/decrease", handler.DecreaseQuantity)
	inventories.Put("/stock/:productId/min-stock", handler.SetMinStock)

	return &stockApp{app: app, auditRepo: auditRepo}
}

func (s *stockApp) do(t *testing.T, method, path, body, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeEntry(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func (s *stockApp) createEntry(t *testing.T, token string, qty, min int64) {
	t.Helper()
	body := fmt.Sprintf(`{"product_id":"prod-1","quantity":%d,"min_stock_quantity":%d}`, qty, min)
	resp := s.do(t, http.MethodPost, "/api/inventories/inv-1/stock", body, token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()
}

// tokenFor genera un JWT para un usuario concreto (distinto del actor admin
// por defecto de los helpers compartidos).
func tokenFor(t *testing.T, userID, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, userID, role, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestStockHandler_AltaYConsulta(t *testing.T) {
	s := newStockApp(t)
	token := tokenForRole(t, entity.RoleAdmin)

	resp := s.do(t, http.MethodPost, "/api/inventories/inv-1/stock",
		`{"product_id":"prod-1","quantity":10,"min_stock_quantity":5}`, token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decodeEntry(t, resp)
	assert.Equal(t, float64(10), body["quantity"])
	assert.Equal(t, false, body["low_stock"])

	resp = s.do(t, http.MethodGet, "/api/inventories/inv-1/stock/prod-1", "", token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body = decodeEntry(t, resp)
	assert.Equal(t, "inv-1", body["inventory_id"])
	assert.Equal(t, "prod-1", body["product_id"])
}

func TestStockHandler_DecreaseDejaLowStock(t *testing.T) {
	s := newStockApp(t)
	token := tokenForRole(t, entity.RoleAdmin)
	s.createEntry(t, token, 10, 5)

	resp := s.do(t, http.MethodPost, "/api/inventories/inv-1/stock/prod-1/decrease",
		`{"delta":6}`, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeEntry(t, resp)
	assert.Equal(t, float64(4), body["quantity"])
	assert.Equal(t, true, body["low_stock"])
}

func TestStockHandler_StockInsuficiente409(t *testing.T) {
	s := newStockApp(t)
	token := tokenForRole(t, entity.RoleAdmin)
	s.createEntry(t, token, 3, 0)

	resp := s.do(t, http.MethodPost, "/api/inventories/inv-1/stock/prod-1/decrease",
		`{"delta":5}`, token)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	var errBody map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&errBody))
	assert.Equal(t, "INSUFFICIENT_STOCK", errBody["code"])
}

func TestStockHandler_AltaDuplicada409(t *testing.T) {
	s := newStockApp(t)
	token := tokenForRole(t, entity.RoleAdmin)
	s.createEntry(t, token, 10, 0)

	resp := s.do(t, http.MethodPost, "/api/inventories/inv-1/stock",
		`{"product_id":"prod-1","quantity":1}`, token)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestStockHandler_EntradaInexistente404(t *testing.T) {
	s := newStockApp(t)
	token := tokenForRole(t, entity.RoleAdmin)

	resp := s.do(t, http.MethodGet, "/api/inventories/inv-1/stock/prod-1", "", token)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestStockHandler_DeltaInvalido400(t *testing.T) {
	s := newStockApp(t)
	token := tokenForRole(t, entity.RoleAdmin)
	s.createEntry(t, token, 10, 0)

	resp := s.do(t, http.MethodPost, "/api/inventories/inv-1/stock/prod-1/increase",
		`{"delta":0}`, token)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// El actor autenticado sin permiso sobre el inventario recibe 403 del motor,
// no del middleware: el token es válido, la asignación no existe.
func TestStockHandler_ActorSinPermiso403(t *testing.T) {
	s := newStockApp(t)
	admin := tokenForRole(t, entity.RoleAdmin)
	s.createEntry(t, admin, 10, 0)

	viewerToken := tokenFor(t, "viewer-1", entity.RoleViewer)
	resp := s.do(t, http.MethodPost, "/api/inventories/inv-1/stock/prod-1/decrease",
		`{"delta":1}`, viewerToken)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestStockHandler_SinToken401(t *testing.T) {
	s := newStockApp(t)

	resp := s.do(t, http.MethodGet, "/api/inventories/inv-1/stock", "", "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Auditoría caída tras el commit: la respuesta sigue siendo de éxito con
// audit_pending marcado.
func TestStockHandler_AuditPendingEnRespuesta(t *testing.T) {
	s := newStockApp(t)
	token := tokenForRole(t, entity.RoleAdmin)
	s.createEntry(t, token, 10, 0)

	s.auditRepo.failing = true
	resp := s.do(t, http.MethodPost, "/api/inventories/inv-1/stock/prod-1/increase",
		`{"delta":5}`, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeEntry(t, resp)
	assert.Equal(t, float64(15), body["quantity"])
	assert.Equal(t, true, body["audit_pending"])
}

func TestStockHandler_Remove(t *testing.T) {
	s := newStockApp(t)
	token := tokenForRole(t, entity.RoleAdmin)
	s.createEntry(t, token, 10, 0)

	resp := s.do(t, http.MethodDelete, "/api/inventories/inv-1/stock/prod-1", "", token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = s.do(t, http.MethodGet, "/api/inventories/inv-1/stock/prod-1", "", token)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestStockHandler_SetMinStock(t *testing.T) {
	s := newStockApp(t)
	token := tokenForRole(t, entity.RoleAdmin)
	s.createEntry(t, token, 10, 5)

	resp := s.do(t, http.MethodPut, "/api/inventories/inv-1/stock/prod-1/min-stock",
		`{"min_stock_quantity":10}`, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeEntry(t, resp)
	assert.Equal(t, float64(10), body["min_stock_quantity"])
	assert.Equal(t, true, body["low_stock"], "10 <= 10 deja la entrada en stock bajo")
}
