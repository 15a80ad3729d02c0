package server

import (
	"net/http"
	"strconv"
	"strings"

	"agencyapp/internal/domain"
)

// handleAdminDashboard returns headline numbers for the admin panel
func (s *Server) handleAdminDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	orderCounts, err := s.repos.Orders.CountByStatus(ctx)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "error loading order stats")
		return
	}
	customers, _ := s.repos.Users.Count(ctx, domain.RoleCustomer)
	services, _ := s.repos.Services.List(ctx, domain.ServiceStatusActive)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"ordersByStatus": orderCounts,
		"customers":      customers,
		"activeServices": len(services),
	})
}

// --- Catalog management ---

// handleAdminServicesList lists services across all statuses, optionally
// filtered with ?status=
func (s *Server) handleAdminServicesList(w http.ResponseWriter, r *http.Request) {
	services, err := s.repos.Services.List(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "error loading services")
		return
	}
	if services == nil {
		services = []domain.Service{}
	}
	respondJSON(w, http.StatusOK, services)
}

func (s *Server) handleAdminServiceDetail(w http.ResponseWriter, r *http.Request) {
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
	if service == nil {
		respondError(w, http.StatusNotFound, "service not found")
		return
	}
	respondJSON(w, http.StatusOK, service)
}

// handleAdminCreateService creates a catalog entry
func (s *Server) handleAdminCreateService(w http.ResponseWriter, r *http.Request) {
	var service domain.Service
	if err := decodeJSON(r, &service); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if fields := validateService(&service); fields != nil {
		respondFieldErrors(w, fields)
		return
	}

	if err := s.repos.Services.Create(r.Context(), &service); err != nil {
		respondError(w, http.StatusInternalServerError, "error creating service")
		return
	}
	respondJSON(w, http.StatusCreated, service)
}

// handleAdminUpdateService replaces a catalog entry
func (s *Server) handleAdminUpdateService(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(getURLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid service id")
		return
	}

	ctx := r.Context()
	existing, err := s.repos.Services.GetByID(ctx, id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "error loading service")
		return
	}
	if existing == nil {
		respondError(w, http.StatusNotFound, "service not found")
		return
	}

	var service domain.Service
	if err := decodeJSON(r, &service); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if fields := validateService(&service); fields != nil {
		respondFieldErrors(w, fields)
		return
	}

	service.ID = id
	if service.Status == "" {
		service.Status = existing.Status
	}
	if err := s.repos.Services.Update(ctx, &service); err != nil {
		respondError(w, http.StatusInternalServerError, "error updating service")
		return
	}
	respondJSON(w, http.StatusOK, service)
}

func (s *Server) handleAdminDeleteService(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(getURLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid service id")
		return
	}
	if err := s.repos.Services.Delete(r.Context(), id); err != nil {
		respondError(w, http.StatusInternalServerError, "error deleting service")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "service deleted"})
}

// handleAdminArchiveService retires a service without deleting the record;
// submitted orders keep their snapshot either way.
func (s *Server) handleAdminArchiveService(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(getURLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid service id")
		return
	}

	ctx := r.Context()
	service, err := s.repos.Services.GetByID(ctx, id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "error loading service")
		return
	}
	if service == nil {
		respondError(w, http.StatusNotFound, "service not found")
		return
	}

	service.Status = domain.ServiceStatusArchived
	if err := s.repos.Services.Update(ctx, service); err != nil {
		respondError(w, http.StatusInternalServerError, "error archiving service")
		return
	}
	respondJSON(w, http.StatusOK, service)
}

// validateService enforces catalog invariants: non-negative base values,
// known option types, choices on selects.
func validateService(service *domain.Service) []FieldError {
	var fields []FieldError
	if strings.TrimSpace(service.Name) == "" {
		fields = append(fields, FieldError{Field: "name", Message: "name is required"})
	}
	if service.BasePrice < 0 {
		fields = append(fields, FieldError{Field: "basePrice", Message: "base price must not be negative"})
	}
	if service.DeliveryDays < 0 {
		fields = append(fields, FieldError{Field: "deliveryTime", Message: "base delivery time must not be negative"})
	}
	for _, step := range service.Steps {
		for _, opt := range step.Options {
			switch opt.Type {
			case domain.OptionTypeSelect:
				if len(opt.Choices) == 0 {
					fields = append(fields, FieldError{Field: "steps", Message: "select option " + opt.ID + " has no choices"})
				}
			case domain.OptionTypeCheckbox:
				// nothing beyond the adjustment pair
			default:
				fields = append(fields, FieldError{Field: "steps", Message: "option " + opt.ID + " has unknown type " + string(opt.Type)})
			}
		}
	}
	return fields
}

// --- Order management ---

func (s *Server) handleAdminOrdersList(w http.ResponseWriter, r *http.Request) {
	limit, offset := paginationParams(r, 50)
	orders, err := s.repos.Orders.List(r.Context(), r.URL.Query().Get("status"), limit, offset)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "error loading orders")
		return
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	respondJSON(w, http.StatusOK, orders)
}

func (s *Server) handleAdminOrderDetail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(getURLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid order id")
		return
	}
	order, err := s.repos.Orders.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "error loading order")
		return
	}
	if order == nil {
		respondError(w, http.StatusNotFound, "order not found")
		return
	}
	respondJSON(w, http.StatusOK, order)
}

var validOrderStatuses = map[string]bool{
	domain.OrderStatusPending:    true,
	domain.OrderStatusConfirmed:  true,
	domain.OrderStatusInProgress: true,
	domain.OrderStatusCompleted:  true,
	domain.OrderStatusCancelled:  true,
}

type updateOrderStatusRequest struct {
	Status string `json:"status"`
}

func (s *Server) handleAdminUpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(getURLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	var req updateOrderStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !validOrderStatuses[req.Status] {
		respondFieldErrors(w, []FieldError{{Field: "status", Message: "unknown order status"}})
		return
	}

	ctx := r.Context()
	order, err := s.repos.Orders.GetByID(ctx, id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "error loading order")
		return
	}
	if order == nil {
		respondError(w, http.StatusNotFound, "order not found")
		return
	}

	if err := s.repos.Orders.UpdateStatus(ctx, id, req.Status); err != nil {
		respondError(w, http.StatusInternalServerError, "error updating order")
		return
	}
	order.Status = req.Status
	respondJSON(w, http.StatusOK, order)
}

// --- Users ---

func (s *Server) handleAdminUsersList(w http.ResponseWriter, r *http.Request) {
	limit, offset := paginationParams(r, 50)
	users, err := s.repos.Users.List(r.Context(), r.URL.Query().Get("role"), limit, offset)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "error loading users")
		return
	}
	if users == nil {
		users = []domain.User{}
	}
	respondJSON(w, http.StatusOK, users)
}

// --- Settings ---

// Settings keys the admin panel knows about
var settingsKeys = []string{"default_locale", "notify_email", "studio_name"}

func (s *Server) handleAdminSettings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	out := make(map[string]string, len(settingsKeys))
	for _, key := range settingsKeys {
		value, err := s.repos.Settings.Get(ctx, key)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "error loading settings")
			return
		}
		out[key] = value
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleAdminUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req map[string]string
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx := r.Context()
	for _, key := range settingsKeys {
		value, ok := req[key]
		if !ok {
			continue
		}
		if err := s.repos.Settings.Set(ctx, key, value); err != nil {
			respondError(w, http.StatusInternalServerError, "error saving settings")
			return
		}
	}
	s.handleAdminSettings(w, r)
}
