package server

import (
	"net/http"
	"strconv"
	"strings"

	"agencyapp/internal/domain"
)

// handleProfile returns the signed-in user's profile
func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	claims := getUserClaims(r)

	user, err := s.repos.Users.GetByID(r.Context(), claims.UserID)
	if err != nil || user == nil {
		respondError(w, http.StatusNotFound, "user not found")
		return
	}
	respondJSON(w, http.StatusOK, user)
}

type updateProfileRequest struct {
	Name    string `json:"name"`
	Company string `json:"company"`
	Phone   string `json:"phone"`
}

// handleUpdateProfile updates name, company and phone. Email and role are
// not editable here.
func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	claims := getUserClaims(r)

	var req updateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		respondFieldErrors(w, []FieldError{{Field: "name", Message: "name is required"}})
		return
	}

	ctx := r.Context()
	user, err := s.repos.Users.GetByID(ctx, claims.UserID)
	if err != nil || user == nil {
		respondError(w, http.StatusNotFound, "user not found")
		return
	}

	user.Name = req.Name
	user.Company = req.Company
	user.Phone = req.Phone

	if err := s.repos.Users.Update(ctx, user); err != nil {
		respondError(w, http.StatusInternalServerError, "error updating profile")
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// handleMyOrders lists the signed-in customer's orders, newest first
func (s *Server) handleMyOrders(w http.ResponseWriter, r *http.Request) {
	claims := getUserClaims(r)

	limit, offset := paginationParams(r, 20)
	orders, err := s.repos.Orders.GetByCustomerID(r.Context(), claims.UserID, limit, offset)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "error loading orders")
		return
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	respondJSON(w, http.StatusOK, orders)
}

// paginationParams reads limit/offset query parameters with sane bounds
func paginationParams(r *http.Request, defaultLimit int) (limit, offset int) {
	limit = defaultLimit
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 && v <= 100 {
		limit = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && v >= 0 {
		offset = v
	}
	return limit, offset
}
