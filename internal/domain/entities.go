// Package domain defines core business entities
package domain

import (
	"regexp"
	"strings"
	"time"
)

// User represents a system user (customer or admin)
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Company      string    `json:"company,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	Role         string    `json:"role"` // customer, admin
	CreatedAt    time.Time `json:"createdAt"`
}

// User roles
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// ContactInfo is the buyer detail block collected by the ordering wizard
type ContactInfo struct {
	Company     string `json:"company"`
	Website     string `json:"website,omitempty"`
	Industry    string `json:"industry"`
	CompanySize string `json:"companySize"`
	Name        string `json:"name"`
	Position    string `json:"position,omitempty"`
	Email       string `json:"email"`
	Phone       string `json:"phone,omitempty"`
	Message     string `json:"message,omitempty"`
	Consent     bool   `json:"consent"`
}

var emailShape = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidEmail reports whether the address matches the basic local@domain.tld
// shape required before an order may advance past the contact step.
func ValidEmail(email string) bool {
	return emailShape.MatchString(strings.TrimSpace(email))
}

// MissingFields lists the required contact fields that are still empty.
// Company, industry, company size, name, email and consent are required for a
// complete order; the wizard gate itself only blocks on name and email.
func (c ContactInfo) MissingFields() []string {
	var missing []string
	if strings.TrimSpace(c.Company) == "" {
		missing = append(missing, "company")
	}
	if strings.TrimSpace(c.Industry) == "" {
		missing = append(missing, "industry")
	}
	if strings.TrimSpace(c.CompanySize) == "" {
		missing = append(missing, "companySize")
	}
	if strings.TrimSpace(c.Name) == "" {
		missing = append(missing, "name")
	}
	if !ValidEmail(c.Email) {
		missing = append(missing, "email")
	}
	if !c.Consent {
		missing = append(missing, "consent")
	}
	return missing
}

// Order statuses
const (
	OrderStatusPending    = "pending"
	OrderStatusConfirmed  = "confirmed"
	OrderStatusInProgress = "in_progress"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"
)

// Order is the finalized record submitted at the end of the wizard.
// ServiceID and ServiceName are a denormalized snapshot taken at assembly
// time; later edits to the service do not rewrite submitted orders.
type Order struct {
	ID            int64         `json:"id"`
	CustomerID    int64         `json:"customerId,omitempty"`
	ServiceID     int64         `json:"serviceId,omitempty"`
	ServiceName   string        `json:"serviceName,omitempty"`
	Configuration Configuration `json:"configuration"`
	Contact       ContactInfo   `json:"contactInfo"`
	TotalPrice    int64         `json:"totalPrice"`
	DeliveryDays  int           `json:"deliveryTime"`
	AttachmentURL string        `json:"attachmentUrl,omitempty"`
	Status        string        `json:"status"`
	Currency      string        `json:"currency"`
	TrackingCode  string        `json:"trackingCode,omitempty"`
	QRCode        []byte        `json:"-"`
	CreatedAt     time.Time     `json:"createdAt"`
}

// Supported locales and their fixed currency codes. No conversion happens
// anywhere; the locale only selects the label.
const (
	LocaleRU = "ru"
	LocaleEN = "en"

	CurrencyRUB = "RUB"
	CurrencyUSD = "USD"
)

// CurrencyForLocale maps a locale to its currency code. Unknown locales fall
// back to the English storefront currency.
func CurrencyForLocale(locale string) string {
	if locale == LocaleRU {
		return CurrencyRUB
	}
	return CurrencyUSD
}

// OrderStatusLabel returns a human-readable label for an order status
func OrderStatusLabel(status string) string {
	labels := map[string]string{
		OrderStatusPending:    "Pending review",
		OrderStatusConfirmed:  "Confirmed",
		OrderStatusInProgress: "In progress",
		OrderStatusCompleted:  "Completed",
		OrderStatusCancelled:  "Cancelled",
	}
	if label, ok := labels[status]; ok {
		return label
	}
	return status
}
