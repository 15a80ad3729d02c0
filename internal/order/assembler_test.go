package order

import (
	"testing"
	"time"

	"agencyapp/internal/domain"
	"agencyapp/internal/pricing"
)

func TestAssemble(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	svc := &domain.Service{ID: 7, Name: "Landing Page"}
	cfg := domain.Configuration{
		"sections": domain.SelectValue("extended"),
		"brief":    domain.TextValue("make it pop"),
	}

	in := Input{
		Service:       svc,
		Config:        cfg,
		Contact:       domain.ContactInfo{Name: "Ada", Email: "ada@example.com"},
		Totals:        pricing.Totals{Price: 70000, DeliveryDays: 10},
		AttachmentURL: "/uploads/brief.pdf",
		Locale:        domain.LocaleRU,
		CustomerID:    42,
		Now:           now,
	}

	o := Assemble(in)

	if o.ServiceID != 7 || o.ServiceName != "Landing Page" {
		t.Errorf("service snapshot = (%d, %q)", o.ServiceID, o.ServiceName)
	}
	if o.TotalPrice != 70000 || o.DeliveryDays != 10 {
		t.Errorf("totals = (%d, %d)", o.TotalPrice, o.DeliveryDays)
	}
	if o.Status != domain.OrderStatusPending {
		t.Errorf("status = %q, want pending", o.Status)
	}
	if o.Currency != domain.CurrencyRUB {
		t.Errorf("currency = %q, want RUB for ru locale", o.Currency)
	}
	if o.CustomerID != 42 {
		t.Errorf("customer id = %d", o.CustomerID)
	}
	if o.AttachmentURL != "/uploads/brief.pdf" {
		t.Errorf("attachment = %q", o.AttachmentURL)
	}
	if !o.CreatedAt.Equal(now) {
		t.Errorf("created at = %v, want %v", o.CreatedAt, now)
	}
	if o.Contact.Name != "Ada" {
		t.Errorf("contact = %+v", o.Contact)
	}
}

func TestAssembleClonesConfiguration(t *testing.T) {
	cfg := domain.Configuration{"sections": domain.SelectValue("basic")}
	o := Assemble(Input{Config: cfg, Now: time.Now()})

	cfg["sections"] = domain.SelectValue("extended")
	if o.Configuration["sections"].Str != "basic" {
		t.Fatalf("order configuration shares storage with input: %+v", o.Configuration["sections"])
	}
}

func TestAssembleNilService(t *testing.T) {
	o := Assemble(Input{Now: time.Now()})
	if o.ServiceID != 0 || o.ServiceName != "" {
		t.Fatalf("nil service left a snapshot: (%d, %q)", o.ServiceID, o.ServiceName)
	}
	if o.Status != domain.OrderStatusPending {
		t.Fatalf("status = %q", o.Status)
	}
}

func TestAssembleCurrencyByLocale(t *testing.T) {
	tests := []struct {
		locale   string
		currency string
	}{
		{domain.LocaleRU, domain.CurrencyRUB},
		{domain.LocaleEN, domain.CurrencyUSD},
		{"", domain.CurrencyUSD},
		{"de", domain.CurrencyUSD},
	}
	for _, tt := range tests {
		o := Assemble(Input{Locale: tt.locale, Now: time.Now()})
		if o.Currency != tt.currency {
			t.Errorf("locale %q: currency = %q, want %q", tt.locale, o.Currency, tt.currency)
		}
	}
}
