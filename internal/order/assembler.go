// Package order assembles the final order record submitted at the end of the
// wizard.
package order

import (
	"time"

	"agencyapp/internal/domain"
	"agencyapp/internal/pricing"
)

// Input carries everything assembly needs. Locale and clock are explicit
// parameters so the projection stays reproducible in tests; nothing is read
// from ambient state.
type Input struct {
	Service       *domain.Service
	Config        domain.Configuration
	Contact       domain.ContactInfo
	Totals        pricing.Totals
	AttachmentURL string
	Locale        string
	CustomerID    int64
	Now           time.Time
}

// Assemble produces the order payload. It is a pure projection: inputs are
// never mutated, and a nil service yields empty snapshot fields instead of an
// error (the wizard's first-step guard is expected to have blocked that case
// already).
func Assemble(in Input) domain.Order {
	o := domain.Order{
		CustomerID:    in.CustomerID,
		Configuration: in.Config.Clone(),
		Contact:       in.Contact,
		TotalPrice:    in.Totals.Price,
		DeliveryDays:  in.Totals.DeliveryDays,
		AttachmentURL: in.AttachmentURL,
		Status:        domain.OrderStatusPending,
		Currency:      domain.CurrencyForLocale(in.Locale),
		CreatedAt:     in.Now,
	}
	if in.Service != nil {
		o.ServiceID = in.Service.ID
		o.ServiceName = in.Service.Name
	}
	return o
}
