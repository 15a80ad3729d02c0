package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"path/filepath"
	"strings"
	"testing"

	"agencyapp/internal/config"
	"agencyapp/internal/domain"
	"agencyapp/internal/repository"
	"agencyapp/internal/repository/sqlite"
	"agencyapp/internal/wizard"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	dir := t.TempDir()
	db, err := sqlite.New(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := db.Migrate(); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	cfg := &config.Config{Debug: true}
	cfg.Server.Port = 8080
	cfg.Database.Path = filepath.Join(dir, "test.db")
	cfg.Uploads.Dir = filepath.Join(dir, "uploads")
	cfg.Uploads.MaxSizeBytes = 10 << 20
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpirationHours = 1
	cfg.Business.Name = "AgencyApp"
	cfg.Business.DefaultLocale = "en"

	repos := &repository.Repositories{
		Users:    sqlite.NewUserRepo(db),
		Services: sqlite.NewServiceRepo(db),
		Orders:   sqlite.NewOrderRepo(db),
		Settings: sqlite.NewSettingsRepo(db),
	}

	return New(cfg, repos, wizard.NewStore(0))
}

func seedService(t *testing.T, s *Server, status string) *domain.Service {
	t.Helper()

	svc := &domain.Service{
		Name:         "Landing Page",
		BasePrice:    50000,
		DeliveryDays: 7,
		Status:       status,
		Steps: []domain.Step{
			{
				ID:    "scope",
				Title: "Scope",
				Options: []domain.Option{
					{
						ID:    "sections",
						Type:  domain.OptionTypeSelect,
						Label: "Page sections",
						Choices: []domain.Choice{
							{Value: "basic", Label: "Up to 4 sections"},
							{Value: "extended", Label: "Up to 8 sections", PriceAdjust: 20000, DeliveryAdjust: 3},
						},
					},
					{
						ID:             "copywriting",
						Type:           domain.OptionTypeCheckbox,
						Label:          "Professional copywriting",
						PriceAdjust:    15000,
						DeliveryAdjust: 2,
					},
				},
			},
		},
	}
	if err := s.repos.Services.Create(context.Background(), svc); err != nil {
		t.Fatalf("seed service: %v", err)
	}
	return svc
}

func doJSON(t *testing.T, s *Server, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	s.GetRouter().ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

func TestServicesEndpoints(t *testing.T) {
	s := newTestServer(t)
	active := seedService(t, s, domain.ServiceStatusActive)
	archived := seedService(t, s, domain.ServiceStatusArchived)

	rec := doJSON(t, s, "GET", "/api/services", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	var services []domain.Service
	decodeBody(t, rec, &services)
	if len(services) != 1 || services[0].ID != active.ID {
		t.Fatalf("active list = %+v", services)
	}

	rec = doJSON(t, s, "GET", fmt.Sprintf("/api/services/%d", active.ID), nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("detail status = %d", rec.Code)
	}
	var got domain.Service
	decodeBody(t, rec, &got)
	if len(got.Steps) != 1 || len(got.Steps[0].Options) != 2 {
		t.Fatalf("detail steps = %+v", got.Steps)
	}

	rec = doJSON(t, s, "GET", fmt.Sprintf("/api/services/%d", archived.ID), nil, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("archived detail status = %d", rec.Code)
	}

	rec = doJSON(t, s, "GET", "/api/services/999", nil, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("missing detail status = %d", rec.Code)
	}
}

func TestSubmitOrderValidation(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, "POST", "/api/orders", map[string]interface{}{
		"service":       "not-an-object",
		"configuration": 42,
		"createdAt":     "yesterday",
	}, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	var resp struct {
		Message string       `json:"message"`
		Errors  []FieldError `json:"errors"`
	}
	decodeBody(t, rec, &resp)

	want := map[string]bool{"service": false, "configuration": false, "totalPrice": false, "deliveryTime": false, "createdAt": false}
	for _, fe := range resp.Errors {
		if _, ok := want[fe.Field]; ok {
			want[fe.Field] = true
		}
	}
	for field, seen := range want {
		if !seen {
			t.Errorf("no error reported for field %q (got %+v)", field, resp.Errors)
		}
	}
}

func TestSubmitOrderAndTracking(t *testing.T) {
	s := newTestServer(t)
	svc := seedService(t, s, domain.ServiceStatusActive)

	payload := map[string]interface{}{
		"service": map[string]interface{}{"id": svc.ID, "name": svc.Name},
		"configuration": map[string]interface{}{
			"sections":    "extended",
			"copywriting": true,
			"brief":       "make it pop",
		},
		"contactInfo":  map[string]interface{}{"name": "Ada", "email": "ada@example.com"},
		"totalPrice":   85000,
		"deliveryTime": 12,
		"createdAt":    "2026-03-14T12:00:00Z",
		"locale":       "ru",
	}

	rec := doJSON(t, s, "POST", "/api/orders", payload, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp submitOrderResponse
	decodeBody(t, rec, &resp)
	if resp.TrackingCode == "" {
		t.Fatal("no tracking code assigned")
	}

	stored, err := s.repos.Orders.GetByID(context.Background(), resp.ID)
	if err != nil || stored == nil {
		t.Fatalf("stored order: %v, %+v", err, stored)
	}
	if stored.Currency != domain.CurrencyRUB {
		t.Errorf("currency = %q, want RUB for ru locale", stored.Currency)
	}
	if stored.TotalPrice != 85000 || stored.DeliveryDays != 12 {
		t.Errorf("totals stored as (%d, %d)", stored.TotalPrice, stored.DeliveryDays)
	}
	if stored.ServiceName != svc.Name {
		t.Errorf("service snapshot = %q", stored.ServiceName)
	}
	if len(stored.QRCode) == 0 {
		t.Error("no QR label generated")
	}

	rec = doJSON(t, s, "GET", "/api/orders/track/"+resp.TrackingCode, nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("tracking status = %d", rec.Code)
	}
	var tracked trackingResponse
	decodeBody(t, rec, &tracked)
	if tracked.Status != domain.OrderStatusPending || tracked.ServiceName != svc.Name {
		t.Errorf("tracking = %+v", tracked)
	}

	rec = doJSON(t, s, "GET", "/api/orders/track/"+resp.TrackingCode+"/qr", nil, nil)
	if rec.Code != http.StatusOK || rec.Header().Get("Content-Type") != "image/png" {
		t.Errorf("qr status = %d, content type %q", rec.Code, rec.Header().Get("Content-Type"))
	}

	rec = doJSON(t, s, "GET", "/api/orders/track/nosuchcode", nil, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown code status = %d", rec.Code)
	}
}

func multipartUpload(t *testing.T, filename, contentType string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	part.Write(content)
	mw.Close()

	return &buf, mw.FormDataContentType()
}

func TestUpload(t *testing.T) {
	s := newTestServer(t)

	t.Run("accepted type", func(t *testing.T) {
		body, contentType := multipartUpload(t, "project brief.pdf", "application/pdf", []byte("%PDF-1.4 test"))
		req := httptest.NewRequest("POST", "/api/upload", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		s.GetRouter().ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
		}
		var resp uploadResponse
		decodeBody(t, rec, &resp)
		if !strings.HasPrefix(resp.URL, "/uploads/") || !strings.HasSuffix(resp.URL, ".pdf") {
			t.Fatalf("url = %q", resp.URL)
		}
		if strings.Contains(resp.URL, " ") {
			t.Fatalf("unsanitized filename in url %q", resp.URL)
		}

		// The stored file is reachable through the static handler.
		req = httptest.NewRequest("GET", resp.URL, nil)
		rec = httptest.NewRecorder()
		s.GetRouter().ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("serving uploaded file: status = %d", rec.Code)
		}
	})

	t.Run("rejected extension", func(t *testing.T) {
		body, contentType := multipartUpload(t, "malware.exe", "application/octet-stream", []byte("MZ"))
		req := httptest.NewRequest("POST", "/api/upload", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		s.GetRouter().ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("content type mismatch", func(t *testing.T) {
		body, contentType := multipartUpload(t, "sneaky.png", "application/pdf", []byte("not a png"))
		req := httptest.NewRequest("POST", "/api/upload", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		s.GetRouter().ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("size limit", func(t *testing.T) {
		s := newTestServer(t)
		s.config.Uploads.MaxSizeBytes = 256

		body, contentType := multipartUpload(t, "big.pdf", "application/pdf", bytes.Repeat([]byte("a"), 4096))
		req := httptest.NewRequest("POST", "/api/upload", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		s.GetRouter().ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})
}

func TestWizardFlow(t *testing.T) {
	s := newTestServer(t)
	svc := seedService(t, s, domain.ServiceStatusActive)

	// Start a session
	rec := doJSON(t, s, "POST", "/api/wizard/", nil, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d", rec.Code)
	}
	var view wizardView
	decodeBody(t, rec, &view)
	if view.ID == "" || view.StepName != "select_service" {
		t.Fatalf("fresh session = %+v", view)
	}
	base := "/api/wizard/" + view.ID

	// Advancing before choosing a service is blocked
	rec = doJSON(t, s, "POST", base+"/next", nil, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("guarded next status = %d", rec.Code)
	}

	// Choose the service; defaults and base totals appear
	rec = doJSON(t, s, "POST", base+"/service", map[string]interface{}{"serviceId": svc.ID}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("select status = %d, body %s", rec.Code, rec.Body.String())
	}
	decodeBody(t, rec, &view)
	if view.Totals.Price != 50000 || view.Totals.DeliveryDays != 7 {
		t.Fatalf("initial totals = %+v", view.Totals)
	}

	rec = doJSON(t, s, "POST", base+"/next", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("next to configure status = %d", rec.Code)
	}

	// Configure: totals update with each change
	rec = doJSON(t, s, "POST", base+"/configure", map[string]interface{}{"optionId": "sections", "value": "extended"}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("configure status = %d, body %s", rec.Code, rec.Body.String())
	}
	decodeBody(t, rec, &view)
	if view.Totals.Price != 70000 || view.Totals.DeliveryDays != 10 {
		t.Fatalf("totals after select change = %+v", view.Totals)
	}

	rec = doJSON(t, s, "POST", base+"/configure", map[string]interface{}{"optionId": "copywriting", "value": true}, nil)
	decodeBody(t, rec, &view)
	if view.Totals.Price != 85000 || view.Totals.DeliveryDays != 12 {
		t.Fatalf("totals after checkbox change = %+v", view.Totals)
	}

	// Unknown option is rejected
	rec = doJSON(t, s, "POST", base+"/configure", map[string]interface{}{"optionId": "bogus", "value": "x"}, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown option status = %d", rec.Code)
	}

	rec = doJSON(t, s, "POST", base+"/next", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("next to contact status = %d", rec.Code)
	}

	// Contact gate: blocked until name and a valid email are present
	rec = doJSON(t, s, "POST", base+"/next", nil, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unguarded contact step: status = %d", rec.Code)
	}
	rec = doJSON(t, s, "POST", base+"/contact", map[string]interface{}{"name": "Ada", "email": "ada@example.com"}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("contact status = %d", rec.Code)
	}

	// Submitting before reaching review is blocked
	rec = doJSON(t, s, "POST", base+"/submit", nil, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("early submit status = %d", rec.Code)
	}

	rec = doJSON(t, s, "POST", base+"/next", nil, nil)
	decodeBody(t, rec, &view)
	if view.StepName != "review" {
		t.Fatalf("step = %q, want review", view.StepName)
	}

	// Back is never guarded and works from anywhere
	rec = doJSON(t, s, "POST", base+"/back", nil, nil)
	decodeBody(t, rec, &view)
	if view.StepName != "contact_info" {
		t.Fatalf("after back: step = %q", view.StepName)
	}
	rec = doJSON(t, s, "POST", base+"/next", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("re-advance status = %d", rec.Code)
	}

	// Submit: order persisted, session reset
	rec = doJSON(t, s, "POST", base+"/submit", map[string]interface{}{"locale": "en"}, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("submit status = %d, body %s", rec.Code, rec.Body.String())
	}
	var submitted wizardSubmitResponse
	decodeBody(t, rec, &submitted)
	if submitted.TrackingCode == "" {
		t.Fatal("no tracking code on wizard submit")
	}
	if submitted.Session.StepName != "select_service" || submitted.Session.ServiceID != 0 {
		t.Fatalf("session not reset: %+v", submitted.Session)
	}
	if len(submitted.Session.Configuration) != 0 {
		t.Fatalf("configuration survived submit: %+v", submitted.Session.Configuration)
	}

	stored, err := s.repos.Orders.GetByID(context.Background(), submitted.ID)
	if err != nil || stored == nil {
		t.Fatalf("stored order: %v, %+v", err, stored)
	}
	if stored.TotalPrice != 85000 || stored.DeliveryDays != 12 {
		t.Errorf("stored totals = (%d, %d)", stored.TotalPrice, stored.DeliveryDays)
	}
	if stored.Configuration["sections"].Str != "extended" {
		t.Errorf("stored configuration = %+v", stored.Configuration)
	}

	// The session is reusable for a new order
	rec = doJSON(t, s, "POST", base+"/next", nil, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("reset session next: status = %d, want guard failure", rec.Code)
	}

	// Unknown sessions are 404s
	rec = doJSON(t, s, "POST", "/api/wizard/no-such-session/next", nil, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown session status = %d", rec.Code)
	}
}

func TestSelectServiceKeepsConfigurationOnReselect(t *testing.T) {
	s := newTestServer(t)
	svc := seedService(t, s, domain.ServiceStatusActive)

	rec := doJSON(t, s, "POST", "/api/wizard/", nil, nil)
	var view wizardView
	decodeBody(t, rec, &view)
	base := "/api/wizard/" + view.ID

	doJSON(t, s, "POST", base+"/service", map[string]interface{}{"serviceId": svc.ID}, nil)
	doJSON(t, s, "POST", base+"/configure", map[string]interface{}{"optionId": "sections", "value": "extended"}, nil)

	rec = doJSON(t, s, "POST", base+"/service", map[string]interface{}{"serviceId": svc.ID}, nil)
	decodeBody(t, rec, &view)
	if view.Totals.Price != 70000 {
		t.Fatalf("re-selecting the same service discarded configuration: %+v", view.Totals)
	}
}

func TestAuthAndAdminAccess(t *testing.T) {
	s := newTestServer(t)

	// Register a customer
	rec := doJSON(t, s, "POST", "/api/auth/register", map[string]interface{}{
		"name":     "Ada",
		"email":    "ada@example.com",
		"password": "secret123",
	}, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register status = %d, body %s", rec.Code, rec.Body.String())
	}
	var customer authResponse
	decodeBody(t, rec, &customer)
	if customer.Token == "" || customer.User.Role != domain.RoleCustomer {
		t.Fatalf("register response = %+v", customer)
	}

	// Weak registration payloads get field errors
	rec = doJSON(t, s, "POST", "/api/auth/register", map[string]interface{}{"email": "bad", "password": "short"}, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid register status = %d", rec.Code)
	}

	// Duplicate email
	rec = doJSON(t, s, "POST", "/api/auth/register", map[string]interface{}{
		"name": "Ada Again", "email": "ada@example.com", "password": "secret123",
	}, nil)
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate register status = %d", rec.Code)
	}

	// Login
	rec = doJSON(t, s, "POST", "/api/auth/login", map[string]interface{}{
		"email": "ada@example.com", "password": "secret123",
	}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d", rec.Code)
	}
	decodeBody(t, rec, &customer)

	rec = doJSON(t, s, "POST", "/api/auth/login", map[string]interface{}{
		"email": "ada@example.com", "password": "wrong",
	}, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad login status = %d", rec.Code)
	}

	bearer := map[string]string{"Authorization": "Bearer " + customer.Token}

	// Profile requires auth
	rec = doJSON(t, s, "GET", "/api/me", nil, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated profile status = %d", rec.Code)
	}
	rec = doJSON(t, s, "GET", "/api/me", nil, bearer)
	if rec.Code != http.StatusOK {
		t.Fatalf("profile status = %d", rec.Code)
	}

	// Customers cannot reach the admin panel
	rec = doJSON(t, s, "GET", "/api/admin/dashboard", nil, bearer)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("customer admin access status = %d", rec.Code)
	}

	// An admin can
	hash, err := sqlite.HashPassword("admin123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	admin := &domain.User{Email: "admin@example.com", PasswordHash: hash, Name: "Admin", Role: domain.RoleAdmin}
	if err := s.repos.Users.Create(context.Background(), admin); err != nil {
		t.Fatalf("create admin: %v", err)
	}

	rec = doJSON(t, s, "POST", "/api/auth/login", map[string]interface{}{
		"email": "admin@example.com", "password": "admin123",
	}, nil)
	var adminAuth authResponse
	decodeBody(t, rec, &adminAuth)

	rec = doJSON(t, s, "GET", "/api/admin/dashboard", nil, map[string]string{"Authorization": "Bearer " + adminAuth.Token})
	if rec.Code != http.StatusOK {
		t.Fatalf("admin dashboard status = %d, body %s", rec.Code, rec.Body.String())
	}
}

func TestAdminServiceLifecycle(t *testing.T) {
	s := newTestServer(t)

	hash, _ := sqlite.HashPassword("admin123")
	admin := &domain.User{Email: "admin@example.com", PasswordHash: hash, Name: "Admin", Role: domain.RoleAdmin}
	if err := s.repos.Users.Create(context.Background(), admin); err != nil {
		t.Fatalf("create admin: %v", err)
	}
	rec := doJSON(t, s, "POST", "/api/auth/login", map[string]interface{}{
		"email": "admin@example.com", "password": "admin123",
	}, nil)
	var auth authResponse
	decodeBody(t, rec, &auth)
	bearer := map[string]string{"Authorization": "Bearer " + auth.Token}

	// Invalid service payloads get field errors
	rec = doJSON(t, s, "POST", "/api/admin/services", map[string]interface{}{
		"name":      "",
		"basePrice": -5,
	}, bearer)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid create status = %d", rec.Code)
	}

	// Create
	rec = doJSON(t, s, "POST", "/api/admin/services", map[string]interface{}{
		"name":         "SEO Audit",
		"basePrice":    20000,
		"deliveryTime": 5,
		"steps": []map[string]interface{}{
			{
				"id": "depth", "title": "Depth",
				"options": []map[string]interface{}{
					{
						"id": "pages", "type": "select", "label": "Pages covered",
						"choices": []map[string]interface{}{
							{"value": "10", "label": "10 pages"},
							{"value": "50", "label": "50 pages", "priceAdjustment": 10000},
						},
					},
				},
			},
		},
	}, bearer)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rec.Code, rec.Body.String())
	}
	var created domain.Service
	decodeBody(t, rec, &created)
	if created.ID == 0 || created.Status != domain.ServiceStatusActive {
		t.Fatalf("created = %+v", created)
	}

	// Archive hides it from the public catalog but keeps the record
	rec = doJSON(t, s, "POST", fmt.Sprintf("/api/admin/services/%d/archive", created.ID), nil, bearer)
	if rec.Code != http.StatusOK {
		t.Fatalf("archive status = %d", rec.Code)
	}

	rec = doJSON(t, s, "GET", "/api/services", nil, nil)
	var publicList []domain.Service
	decodeBody(t, rec, &publicList)
	if len(publicList) != 0 {
		t.Fatalf("archived service visible publicly: %+v", publicList)
	}

	rec = doJSON(t, s, "GET", fmt.Sprintf("/api/admin/services/%d", created.ID), nil, bearer)
	if rec.Code != http.StatusOK {
		t.Fatalf("admin detail after archive status = %d", rec.Code)
	}
}

func TestAdminOrderStatus(t *testing.T) {
	s := newTestServer(t)

	hash, _ := sqlite.HashPassword("admin123")
	admin := &domain.User{Email: "admin@example.com", PasswordHash: hash, Name: "Admin", Role: domain.RoleAdmin}
	if err := s.repos.Users.Create(context.Background(), admin); err != nil {
		t.Fatalf("create admin: %v", err)
	}
	rec := doJSON(t, s, "POST", "/api/auth/login", map[string]interface{}{
		"email": "admin@example.com", "password": "admin123",
	}, nil)
	var auth authResponse
	decodeBody(t, rec, &auth)
	bearer := map[string]string{"Authorization": "Bearer " + auth.Token}

	rec = doJSON(t, s, "POST", "/api/orders", map[string]interface{}{
		"totalPrice":   1000,
		"deliveryTime": 3,
		"createdAt":    "2026-03-14T12:00:00Z",
	}, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("submit status = %d, body %s", rec.Code, rec.Body.String())
	}
	var submitted submitOrderResponse
	decodeBody(t, rec, &submitted)

	rec = doJSON(t, s, "PUT", fmt.Sprintf("/api/admin/orders/%d/status", submitted.ID),
		map[string]interface{}{"status": "shipped"}, bearer)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown status accepted: %d", rec.Code)
	}

	rec = doJSON(t, s, "PUT", fmt.Sprintf("/api/admin/orders/%d/status", submitted.ID),
		map[string]interface{}{"status": domain.OrderStatusConfirmed}, bearer)
	if rec.Code != http.StatusOK {
		t.Fatalf("status update = %d, body %s", rec.Code, rec.Body.String())
	}

	var updated domain.Order
	decodeBody(t, rec, &updated)
	if updated.Status != domain.OrderStatusConfirmed {
		t.Fatalf("order status = %q", updated.Status)
	}
}
