// Package wizard implements the gated, ordered session state machine that
// guides order creation.
package wizard

import (
	"errors"
	"time"

	"agencyapp/internal/domain"
	"agencyapp/internal/pricing"
)

// Step indexes the four ordered wizard states
type Step int

const (
	StepSelectService Step = iota
	StepConfigureService
	StepProvideContactInfo
	StepReviewAndSubmit
)

var stepNames = [...]string{
	"select_service",
	"configure_service",
	"contact_info",
	"review",
}

// String returns the wire name of the step
func (s Step) String() string {
	if s < StepSelectService || int(s) >= len(stepNames) {
		return "unknown"
	}
	return stepNames[s]
}

// Guard failures surfaced to the caller when next() is blocked
var (
	ErrServiceRequired = errors.New("a service must be selected before continuing")
	ErrContactRequired = errors.New("name and a valid email are required before continuing")
	ErrUnknownOption   = errors.New("option does not exist on the selected service")
	ErrNotAtReview     = errors.New("submission is only available from the review step")
)

// Session holds the transient per-ordering state. It is not safe for
// concurrent use; the Store serializes access to it.
type Session struct {
	ID            string
	Step          Step
	Service       *domain.Service
	Config        domain.Configuration
	Contact       domain.ContactInfo
	Totals        pricing.Totals
	AttachmentURL string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewSession returns a session at the first step with no selections
func NewSession(id string, now time.Time) *Session {
	return &Session{
		ID:        id,
		Step:      StepSelectService,
		Config:    make(domain.Configuration),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// SelectService records the chosen service. Choosing a different service
// discards the previous configuration, initializes defaults and computes the
// initial totals; re-selecting the same service keeps the work done so far.
func (s *Session) SelectService(svc *domain.Service) {
	if s.Service != nil && svc != nil && s.Service.ID == svc.ID {
		s.Service = svc
		return
	}
	s.Service = svc
	s.Config = pricing.Defaults(svc)
	s.Totals = pricing.ComputeTotals(svc, s.Config)
}

// SetOption applies a single option change through the pure reducer and
// updates totals incrementally. Auxiliary free-text keys are always accepted.
func (s *Session) SetOption(ch domain.Change) error {
	if s.Service == nil {
		return ErrServiceRequired
	}
	if !domain.AuxiliaryKey(ch.OptionID) && s.Service.FindOption(ch.OptionID) == nil {
		return ErrUnknownOption
	}
	s.Totals = pricing.ApplyChange(s.Service, s.Totals, s.Config, ch)
	s.Config = pricing.Reduce(s.Config, ch)
	return nil
}

// SetContact replaces the buyer details
func (s *Session) SetContact(info domain.ContactInfo) {
	s.Contact = info
}

// SetAttachment records the uploaded file reference
func (s *Session) SetAttachment(url string) {
	s.AttachmentURL = url
}

// Next advances one step if the current step's guard passes. Advancing from
// the last step is a no-op. Guards are evaluated on next only, never on back.
func (s *Session) Next() error {
	switch s.Step {
	case StepSelectService:
		if s.Service == nil {
			return ErrServiceRequired
		}
	case StepConfigureService:
		// No required fields at this step.
	case StepProvideContactInfo:
		if s.Contact.Name == "" || !domain.ValidEmail(s.Contact.Email) {
			return ErrContactRequired
		}
	case StepReviewAndSubmit:
		return nil
	}
	s.Step++
	return nil
}

// Back moves one step toward the start, clamped at the first step
func (s *Session) Back() {
	if s.Step > StepSelectService {
		s.Step--
	}
}

// Reset returns the session to its initial state: step 0, no service, no
// configuration, no contact info, no attachment.
func (s *Session) Reset() {
	s.Step = StepSelectService
	s.Service = nil
	s.Config = make(domain.Configuration)
	s.Contact = domain.ContactInfo{}
	s.Totals = pricing.Totals{}
	s.AttachmentURL = ""
}
