package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"agencyapp/internal/domain"
	"agencyapp/internal/order"
	"agencyapp/internal/pricing"
	"agencyapp/internal/wizard"
)

// wizardView is the session snapshot returned by every wizard endpoint
type wizardView struct {
	ID            string               `json:"id"`
	Step          int                  `json:"step"`
	StepName      string               `json:"stepName"`
	ServiceID     int64                `json:"serviceId,omitempty"`
	ServiceName   string               `json:"serviceName,omitempty"`
	Configuration domain.Configuration `json:"configuration"`
	ContactInfo   domain.ContactInfo   `json:"contactInfo"`
	Totals        pricing.Totals       `json:"totals"`
	AttachmentURL string               `json:"attachmentUrl,omitempty"`
}

func viewOf(sess *wizard.Session) wizardView {
	v := wizardView{
		ID:            sess.ID,
		Step:          int(sess.Step),
		StepName:      sess.Step.String(),
		Configuration: sess.Config,
		ContactInfo:   sess.Contact,
		Totals:        sess.Totals,
		AttachmentURL: sess.AttachmentURL,
	}
	if sess.Service != nil {
		v.ServiceID = sess.Service.ID
		v.ServiceName = sess.Service.Name
	}
	return v
}

// withSession runs fn against the addressed session and renders the result.
// Guard failures come back as 400s with the guard's message; an unknown id is
// a 404.
func (s *Server) withSession(w http.ResponseWriter, r *http.Request, fn func(*wizard.Session) error) {
	id := getURLParam(r, "sessionId")

	var view wizardView
	err := s.sessions.With(id, func(sess *wizard.Session) error {
		if err := fn(sess); err != nil {
			return err
		}
		view = viewOf(sess)
		return nil
	})

	switch {
	case err == nil:
		respondJSON(w, http.StatusOK, view)
	case errors.Is(err, wizard.ErrSessionNotFound):
		respondError(w, http.StatusNotFound, "wizard session not found")
	case errors.Is(err, wizard.ErrServiceRequired),
		errors.Is(err, wizard.ErrContactRequired),
		errors.Is(err, wizard.ErrUnknownOption),
		errors.Is(err, wizard.ErrNotAtReview):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, "wizard error")
	}
}

// handleWizardCreate starts a fresh ordering session
func (s *Server) handleWizardCreate(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.Create()
	respondJSON(w, http.StatusCreated, viewOf(sess))
}

// handleWizardGet returns the current session state
func (s *Server) handleWizardGet(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(sess *wizard.Session) error { return nil })
}

type selectServiceRequest struct {
	ServiceID int64 `json:"serviceId"`
}

// handleWizardSelectService records the chosen service and initializes its
// default configuration and totals.
func (s *Server) handleWizardSelectService(w http.ResponseWriter, r *http.Request) {
	var req selectServiceRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	svc, err := s.repos.Services.GetByID(r.Context(), req.ServiceID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "error loading service")
		return
	}
	if svc == nil || svc.Status != domain.ServiceStatusActive {
		respondError(w, http.StatusNotFound, "service not found")
		return
	}

	s.withSession(w, r, func(sess *wizard.Session) error {
		sess.SelectService(svc)
		return nil
	})
}

type configureRequest struct {
	OptionID string          `json:"optionId"`
	Value    json.RawMessage `json:"value"`
}

// handleWizardConfigure applies a single option change and recomputes totals
// incrementally.
func (s *Server) handleWizardConfigure(w http.ResponseWriter, r *http.Request) {
	var req configureRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.OptionID == "" {
		respondFieldErrors(w, []FieldError{{Field: "optionId", Message: "optionId is required"}})
		return
	}

	var value domain.Value
	if err := json.Unmarshal(req.Value, &value); err != nil {
		respondFieldErrors(w, []FieldError{{Field: "value", Message: "value must be a string or a boolean"}})
		return
	}

	s.withSession(w, r, func(sess *wizard.Session) error {
		// Retag untagged strings destined for a select option
		if value.Kind == domain.ValueText && sess.Service != nil {
			if opt := sess.Service.FindOption(req.OptionID); opt != nil && opt.Type == domain.OptionTypeSelect {
				value = domain.SelectValue(value.Str)
			}
		}
		return sess.SetOption(domain.Change{OptionID: req.OptionID, Value: value})
	})
}

// handleWizardContact replaces the session's buyer details
func (s *Server) handleWizardContact(w http.ResponseWriter, r *http.Request) {
	var info domain.ContactInfo
	if err := decodeJSON(r, &info); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.withSession(w, r, func(sess *wizard.Session) error {
		sess.SetContact(info)
		return nil
	})
}

type attachmentRequest struct {
	URL string `json:"url"`
}

// handleWizardAttachment records an uploaded file reference on the session
func (s *Server) handleWizardAttachment(w http.ResponseWriter, r *http.Request) {
	var req attachmentRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.withSession(w, r, func(sess *wizard.Session) error {
		sess.SetAttachment(req.URL)
		return nil
	})
}

// handleWizardNext advances the wizard if the current step's guard passes
func (s *Server) handleWizardNext(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(sess *wizard.Session) error {
		return sess.Next()
	})
}

// handleWizardBack moves one step toward the start; never guarded
func (s *Server) handleWizardBack(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(sess *wizard.Session) error {
		sess.Back()
		return nil
	})
}

type wizardSubmitRequest struct {
	Locale string `json:"locale"`
}

type wizardSubmitResponse struct {
	ID           int64      `json:"id"`
	TrackingCode string     `json:"trackingCode"`
	Message      string     `json:"message"`
	Session      wizardView `json:"session"`
}

// handleWizardSubmit assembles and persists the order, then resets the
// session to its initial state. A failed submission leaves the session
// untouched so the buyer can retry without re-entering anything.
func (s *Server) handleWizardSubmit(w http.ResponseWriter, r *http.Request) {
	var req wizardSubmitRequest
	if r.ContentLength > 0 {
		if err := decodeJSON(r, &req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	locale := req.Locale
	if locale == "" {
		locale = s.defaultLocale(r.Context())
	}

	var customerID int64
	if claims := getUserClaims(r); claims != nil {
		customerID = claims.UserID
	}

	id := getURLParam(r, "sessionId")
	var resp wizardSubmitResponse

	err := s.sessions.With(id, func(sess *wizard.Session) error {
		if sess.Step != wizard.StepReviewAndSubmit {
			return wizard.ErrNotAtReview
		}
		if sess.Service == nil {
			return wizard.ErrServiceRequired
		}

		o := order.Assemble(order.Input{
			Service:       sess.Service,
			Config:        sess.Config,
			Contact:       sess.Contact,
			Totals:        sess.Totals,
			AttachmentURL: sess.AttachmentURL,
			Locale:        locale,
			CustomerID:    customerID,
			Now:           time.Now().UTC(),
		})

		if err := s.createOrder(r.Context(), &o); err != nil {
			return err
		}

		// Success: back to a blank wizard
		sess.Reset()

		resp = wizardSubmitResponse{
			ID:           o.ID,
			TrackingCode: o.TrackingCode,
			Message:      "order received",
			Session:      viewOf(sess),
		}
		return nil
	})

	switch {
	case err == nil:
		respondJSON(w, http.StatusCreated, resp)
	case errors.Is(err, wizard.ErrSessionNotFound):
		respondError(w, http.StatusNotFound, "wizard session not found")
	case errors.Is(err, wizard.ErrNotAtReview), errors.Is(err, wizard.ErrServiceRequired):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, "error creating order")
	}
}
