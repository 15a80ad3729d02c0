package server

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"agencyapp/internal/domain"
	"agencyapp/internal/pricing"

	"github.com/skip2/go-qrcode"
	"golang.org/x/crypto/bcrypt"
)

// --- Auth ---

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Company  string `json:"company"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

// handleRegister creates a customer account
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var fields []FieldError
	if strings.TrimSpace(req.Name) == "" {
		fields = append(fields, FieldError{Field: "name", Message: "name is required"})
	}
	if !domain.ValidEmail(req.Email) {
		fields = append(fields, FieldError{Field: "email", Message: "a valid email is required"})
	}
	if len(req.Password) < 8 {
		fields = append(fields, FieldError{Field: "password", Message: "password must be at least 8 characters"})
	}
	if fields != nil {
		respondFieldErrors(w, fields)
		return
	}

	ctx := r.Context()
	existing, _ := s.repos.Users.GetByEmail(ctx, req.Email)
	if existing != nil {
		respondError(w, http.StatusConflict, "email is already registered")
		return
	}

	hashedPassword, err := hashPassword(req.Password)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "error processing registration")
		return
	}

	user := &domain.User{
		Name:         req.Name,
		Email:        req.Email,
		Company:      req.Company,
		Phone:        req.Phone,
		PasswordHash: hashedPassword,
		Role:         domain.RoleCustomer,
	}

	if err := s.repos.Users.Create(ctx, user); err != nil {
		respondError(w, http.StatusInternalServerError, "error creating user")
		return
	}

	token, err := s.generateToken(user)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "error generating token")
		return
	}
	s.setAuthCookie(w, token, s.config.JWT.ExpirationHours*3600)

	respondJSON(w, http.StatusCreated, authResponse{Token: token, User: *user})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// handleLogin verifies credentials and issues a token
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx := r.Context()
	user, err := s.repos.Users.GetByEmail(ctx, req.Email)
	if err != nil || user == nil || !checkPasswordHash(req.Password, user.PasswordHash) {
		respondError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := s.generateToken(user)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "error generating token")
		return
	}
	s.setAuthCookie(w, token, s.config.JWT.ExpirationHours*3600)

	respondJSON(w, http.StatusOK, authResponse{Token: token, User: *user})
}

// handleLogout clears the auth cookie
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	clearAuthCookie(w)
	respondJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// --- Catalog ---

// handleServicesList returns the active service catalog
func (s *Server) handleServicesList(w http.ResponseWriter, r *http.Request) {
	services, err := s.repos.Services.ListActive(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "error loading services")
		return
	}
	if services == nil {
		services = []domain.Service{}
	}
	respondJSON(w, http.StatusOK, services)
}

// handleServiceDetail returns one service
func (s *Server) handleServiceDetail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(getURLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid service id")
		return
	}

	service, err := s.repos.Services.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "error loading service")
		return
	}
	if service == nil || service.Status == domain.ServiceStatusArchived {
		respondError(w, http.StatusNotFound, "service not found")
		return
	}
	respondJSON(w, http.StatusOK, service)
}

// --- Order submission ---

// submitOrderRequest keeps the outer fields raw so shape problems can be
// reported per field instead of failing the whole decode.
type submitOrderRequest struct {
	Service       json.RawMessage `json:"service"`
	Configuration json.RawMessage `json:"configuration"`
	ContactInfo   json.RawMessage `json:"contactInfo"`
	TotalPrice    *float64        `json:"totalPrice"`
	DeliveryTime  *float64        `json:"deliveryTime"`
	CreatedAt     string          `json:"createdAt"`
	AttachmentURL string          `json:"attachmentUrl"`
	Locale        string          `json:"locale"`
}

type submitOrderResponse struct {
	ID           int64  `json:"id"`
	TrackingCode string `json:"trackingCode"`
	Message      string `json:"message"`
}

// handleSubmitOrder accepts a pre-assembled order payload.
// Shape validation only: service nullable object, configuration and
// contactInfo objects, numeric totals, ISO-8601 createdAt. The totals are
// stored as submitted; recomputing them against the current catalog would
// reject orders placed against a definition an admin edited mid-session.
func (s *Server) handleSubmitOrder(w http.ResponseWriter, r *http.Request) {
	var req submitOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var fields []FieldError

	var service *domain.Service
	if len(req.Service) > 0 && string(req.Service) != "null" {
		service = &domain.Service{}
		if err := json.Unmarshal(req.Service, service); err != nil {
			fields = append(fields, FieldError{Field: "service", Message: "service must be an object or null"})
			service = nil
		}
	}

	configuration := make(domain.Configuration)
	if len(req.Configuration) > 0 && string(req.Configuration) != "null" {
		if err := json.Unmarshal(req.Configuration, &configuration); err != nil {
			fields = append(fields, FieldError{Field: "configuration", Message: "configuration must be a key-value object"})
		}
	}

	var contact domain.ContactInfo
	if len(req.ContactInfo) > 0 && string(req.ContactInfo) != "null" {
		if err := json.Unmarshal(req.ContactInfo, &contact); err != nil {
			fields = append(fields, FieldError{Field: "contactInfo", Message: "contactInfo must be a key-value object"})
		}
	}

	if req.TotalPrice == nil {
		fields = append(fields, FieldError{Field: "totalPrice", Message: "totalPrice is required and must be a number"})
	}
	if req.DeliveryTime == nil {
		fields = append(fields, FieldError{Field: "deliveryTime", Message: "deliveryTime is required and must be a number"})
	}

	createdAt := time.Now().UTC()
	if req.CreatedAt == "" {
		fields = append(fields, FieldError{Field: "createdAt", Message: "createdAt is required"})
	} else if parsed, err := time.Parse(time.RFC3339, req.CreatedAt); err != nil {
		fields = append(fields, FieldError{Field: "createdAt", Message: "createdAt must be an ISO-8601 timestamp"})
	} else {
		createdAt = parsed
	}

	if fields != nil {
		respondFieldErrors(w, fields)
		return
	}

	if service != nil {
		configuration = pricing.Normalize(service, configuration)
	}

	locale := req.Locale
	if locale == "" {
		locale = s.defaultLocale(r.Context())
	}

	o := domain.Order{
		Configuration: configuration,
		Contact:       contact,
		TotalPrice:    int64(*req.TotalPrice),
		DeliveryDays:  int(*req.DeliveryTime),
		AttachmentURL: req.AttachmentURL,
		Status:        domain.OrderStatusPending,
		Currency:      domain.CurrencyForLocale(locale),
		CreatedAt:     createdAt,
	}
	if service != nil {
		o.ServiceID = service.ID
		o.ServiceName = service.Name
	}
	if claims := getUserClaims(r); claims != nil {
		o.CustomerID = claims.UserID
	}

	if err := s.createOrder(r.Context(), &o); err != nil {
		respondError(w, http.StatusInternalServerError, "error creating order")
		return
	}

	respondJSON(w, http.StatusCreated, submitOrderResponse{
		ID:           o.ID,
		TrackingCode: o.TrackingCode,
		Message:      "order received",
	})
}

// createOrder assigns a tracking code and QR label, then persists the order
func (s *Server) createOrder(ctx context.Context, o *domain.Order) error {
	o.TrackingCode = generateTrackingCode()

	trackingURL := s.config.PublicBaseURL() + "/api/orders/track/" + o.TrackingCode
	qrPNG, err := qrcode.Encode(trackingURL, qrcode.Medium, 256)
	if err != nil {
		return err
	}
	o.QRCode = qrPNG

	return s.repos.Orders.Create(ctx, o)
}

// generateTrackingCode generates a unique short tracking code
func generateTrackingCode() string {
	bytes := make([]byte, 4)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

// defaultLocale reads the storefront locale, settings first, config fallback
func (s *Server) defaultLocale(ctx context.Context) string {
	if locale, err := s.repos.Settings.Get(ctx, "default_locale"); err == nil && locale != "" {
		return locale
	}
	return s.config.Business.DefaultLocale
}

// --- Public order tracking ---

type trackingResponse struct {
	TrackingCode string    `json:"trackingCode"`
	ServiceName  string    `json:"serviceName,omitempty"`
	Status       string    `json:"status"`
	StatusLabel  string    `json:"statusLabel"`
	DeliveryDays int       `json:"deliveryTime"`
	CreatedAt    time.Time `json:"createdAt"`
}

// handleTrackOrder returns a public status snapshot by tracking code
func (s *Server) handleTrackOrder(w http.ResponseWriter, r *http.Request) {
	code := getURLParam(r, "code")
	order, err := s.repos.Orders.GetByTrackingCode(r.Context(), code)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "error loading order")
		return
	}
	if order == nil {
		respondError(w, http.StatusNotFound, "no order with that tracking code")
		return
	}

	respondJSON(w, http.StatusOK, trackingResponse{
		TrackingCode: order.TrackingCode,
		ServiceName:  order.ServiceName,
		Status:       order.Status,
		StatusLabel:  domain.OrderStatusLabel(order.Status),
		DeliveryDays: order.DeliveryDays,
		CreatedAt:    order.CreatedAt,
	})
}

// handleTrackOrderQR serves the order's QR label as a PNG
func (s *Server) handleTrackOrderQR(w http.ResponseWriter, r *http.Request) {
	code := getURLParam(r, "code")
	order, err := s.repos.Orders.GetByTrackingCode(r.Context(), code)
	if err != nil || order == nil || len(order.QRCode) == 0 {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(order.QRCode)
}

// --- Password helpers ---

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func checkPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
