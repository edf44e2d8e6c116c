package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-backend/api/middleware"
	"github.com/angelmondragon/storefront-backend/internal/orders"
	"github.com/angelmondragon/storefront-backend/internal/profiles"
	"github.com/angelmondragon/storefront-backend/internal/tenants"
	"github.com/angelmondragon/storefront-backend/pkg/config"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
)

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decode(t *testing.T, resp *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(resp.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode response: %v (%s)", err, resp.Body.String())
	}
	return env
}

type stubStorefronts struct {
	store *tenants.Storefront
	err   error
	slug  string
}

func (s *stubStorefronts) GetBySlug(_ context.Context, slug string) (*tenants.Storefront, error) {
	s.slug = slug
	return s.store, s.err
}

type stubOrders struct {
	created *orders.Created
	detail  *orders.OrderDetail
	err     error
	input   orders.CreateInput
	tenant  uuid.UUID
	number  string
}

func (s *stubOrders) Create(_ context.Context, input orders.CreateInput) (*orders.Created, error) {
	s.input = input
	return s.created, s.err
}

func (s *stubOrders) GetByNumber(_ context.Context, tenantID uuid.UUID, number string) (*orders.OrderDetail, error) {
	s.tenant = tenantID
	s.number = number
	return s.detail, s.err
}

func TestStorefrontReturnsStore(t *testing.T) {
	svc := &stubStorefronts{store: &tenants.Storefront{Tenant: tenants.TenantDTO{Slug: "fresh-fruits", StoreName: "Fresh Fruits"}}}

	r := chi.NewRouter()
	r.Get("/api/storefront/{slug}", Storefront(svc, nil))
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/storefront/fresh-fruits", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.slug != "fresh-fruits" {
		t.Fatalf("expected slug passed through, got %q", svc.slug)
	}
	var out tenants.Storefront
	if err := json.Unmarshal(decode(t, resp).Data, &out); err != nil || out.Tenant.StoreName != "Fresh Fruits" {
		t.Fatalf("unexpected payload %+v %v", out, err)
	}
}

func TestStorefrontNotFound(t *testing.T) {
	svc := &stubStorefronts{err: pkgerrors.New(pkgerrors.CodeNotFound, "Store not found")}

	r := chi.NewRouter()
	r.Get("/api/storefront/{slug}", Storefront(svc, nil))
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/storefront/missing", nil))

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
	if env := decode(t, resp); env.Error == nil || env.Error.Message != "Store not found" {
		t.Fatalf("unexpected error %+v", env.Error)
	}
}

func TestOrderConfirmationHidesContactDetails(t *testing.T) {
	tenantID := uuid.New()
	stores := &stubStorefronts{store: &tenants.Storefront{Tenant: tenants.TenantDTO{ID: tenantID, Slug: "fresh", StoreName: "Fresh"}}}
	lookup := &stubOrders{detail: &orders.OrderDetail{
		OrderNumber:      "1001",
		Status:           enums.OrderStatusPending,
		CustomerWhatsApp: "9000000001",
		DeliveryAddress:  "12 Main St",
		TotalCents:       15000,
		Items:            []orders.OrderItemDTO{{ProductName: "Apple", ProductPriceCents: 5000, Quantity: 3, ProductUnit: "kg"}},
		CreatedAt:        time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}}

	r := chi.NewRouter()
	r.Get("/api/storefront/{slug}/orders/{orderNumber}", OrderConfirmation(stores, lookup, nil))
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/storefront/fresh/orders/1001", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if lookup.tenant != tenantID || lookup.number != "1001" {
		t.Fatalf("unexpected lookup tenant=%s number=%s", lookup.tenant, lookup.number)
	}
	body := resp.Body.String()
	if strings.Contains(body, "9000000001") || strings.Contains(body, "12 Main St") {
		t.Fatalf("confirmation leaked contact details: %s", body)
	}
	if !strings.Contains(body, `"total":150`) {
		t.Fatalf("expected total in major units: %s", body)
	}
}

func TestCreateOrderMapsContract(t *testing.T) {
	orderID := uuid.New()
	svc := &stubOrders{created: &orders.Created{OrderID: orderID, OrderNumber: "1001", TotalCents: 9100}}

	body := `{"tenantId":"t1","items":[{"productId":"p1","name":"Apple","price":45.5,"quantity":2,"unit":"kg"}],"customerDetails":{"name":"Asha","whatsappNumber":"9000000001","address":"12 Main St"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
	resp := httptest.NewRecorder()
	CreateOrder(svc, nil).ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d (%s)", resp.Code, resp.Body.String())
	}
	if len(svc.input.Items) != 1 || svc.input.Items[0].PriceCents != 4550 || svc.input.Customer.Name != "Asha" {
		t.Fatalf("unexpected service input %+v", svc.input)
	}

	var out struct {
		OrderID     string `json:"orderId"`
		OrderNumber string `json:"orderNumber"`
	}
	if err := json.Unmarshal(decode(t, resp).Data, &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.OrderID != orderID.String() || out.OrderNumber != "1001" {
		t.Fatalf("unexpected result %+v", out)
	}
}

func TestCreateOrderPropagatesServiceErrors(t *testing.T) {
	svc := &stubOrders{err: pkgerrors.New(pkgerrors.CodeValidation, "Missing required fields")}

	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(`{"tenantId":"","items":[]}`))
	resp := httptest.NewRecorder()
	CreateOrder(svc, nil).ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
	if env := decode(t, resp); env.Error == nil || env.Error.Message != "Missing required fields" {
		t.Fatalf("unexpected error %+v", env.Error)
	}
}

type stubProfiles struct {
	profile *profiles.ProfileDTO
	update  profiles.UpdateInput
}

func (s *stubProfiles) Ensure(_ context.Context, userID uuid.UUID) (*profiles.ProfileDTO, error) {
	out := *s.profile
	out.UserID = userID
	return &out, nil
}

func (s *stubProfiles) Update(_ context.Context, userID uuid.UUID, input profiles.UpdateInput) (*profiles.ProfileDTO, error) {
	s.update = input
	out := *s.profile
	out.UserID = userID
	out.FullName = input.FullName
	return &out, nil
}

func TestMeProfileRequiresUser(t *testing.T) {
	resp := httptest.NewRecorder()
	MeProfile(&stubProfiles{profile: &profiles.ProfileDTO{}}, nil).ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/me", nil))
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestMeUpdateTrimsFields(t *testing.T) {
	svc := &stubProfiles{profile: &profiles.ProfileDTO{Role: enums.UserRoleCustomer}}
	userID := uuid.New()

	req := httptest.NewRequest(http.MethodPut, "/api/v1/me", strings.NewReader(`{"full_name":"  Asha K "}`))
	req = req.WithContext(middleware.WithUserID(req.Context(), userID.String()))
	resp := httptest.NewRecorder()
	MeUpdate(svc, nil).ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d (%s)", resp.Code, resp.Body.String())
	}
	if svc.update.FullName == nil || *svc.update.FullName != "Asha K" {
		t.Fatalf("expected trimmed name, got %v", svc.update.FullName)
	}
	if svc.update.WhatsAppNumber != nil {
		t.Fatalf("absent field should stay nil")
	}
}

type stubOnboarder struct {
	input tenants.OnboardInput
	owner uuid.UUID
	err   error
}

func (s *stubOnboarder) Onboard(_ context.Context, owner uuid.UUID, input tenants.OnboardInput) (*tenants.Onboarded, error) {
	s.owner = owner
	s.input = input
	if s.err != nil {
		return nil, s.err
	}
	return &tenants.Onboarded{Tenant: tenants.TenantDTO{StoreName: input.StoreName, Slug: "fresh-fruits"}}, nil
}

func TestOnboardCreatesStore(t *testing.T) {
	svc := &stubOnboarder{}
	userID := uuid.New()

	body := `{"store_name":" Fresh Fruits ","business_type":"fruits","whatsapp_number":"9000000001"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/onboarding", strings.NewReader(body))
	req = req.WithContext(middleware.WithUserID(req.Context(), userID.String()))
	resp := httptest.NewRecorder()
	Onboard(svc, nil).ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d (%s)", resp.Code, resp.Body.String())
	}
	if svc.owner != userID || svc.input.StoreName != "Fresh Fruits" || svc.input.BusinessType != enums.BusinessType("fruits") {
		t.Fatalf("unexpected onboarding input %+v owner=%s", svc.input, svc.owner)
	}
}

func TestOnboardRejectsMissingFields(t *testing.T) {
	svc := &stubOnboarder{}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/onboarding", strings.NewReader(`{"store_name":"x"}`))
	req = req.WithContext(middleware.WithUserID(req.Context(), uuid.NewString()))
	resp := httptest.NewRecorder()
	Onboard(svc, nil).ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
	if svc.owner != uuid.Nil {
		t.Fatalf("service should not be called")
	}
}

type pingerFunc func(context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthReady(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Env: "dev"}}

	ok := HealthReady(cfg, nil, map[string]Pinger{"db": pingerFunc(func(context.Context) error { return nil })})
	resp := httptest.NewRecorder()
	ok.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	down := HealthReady(cfg, nil, map[string]Pinger{"redis": pingerFunc(func(context.Context) error { return errors.New("dial tcp") })})
	resp = httptest.NewRecorder()
	down.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 got %d", resp.Code)
	}
}
