package server

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"agencyapp/internal/domain"

	"github.com/go-chi/chi/v5"
)

// setupRoutes configures all application routes
func (s *Server) setupRoutes() {
	r := s.router

	// Uploaded attachments with cache headers
	r.Handle("/uploads/*", s.uploadsHandler())

	// Health check endpoint
	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		// Public routes
		r.Group(func(r chi.Router) {
			r.Post("/auth/register", s.handleRegister)
			r.Post("/auth/login", s.handleLogin)
			r.Post("/auth/logout", s.handleLogout)

			// Public services catalog
			r.Get("/services", s.handleServicesList)
			r.Get("/services/{id}", s.handleServiceDetail)

			// Attachment upload
			r.Post("/upload", s.handleUpload)

			// Public order tracking
			r.Get("/orders/track/{code}", s.handleTrackOrder)
			r.Get("/orders/track/{code}/qr", s.handleTrackOrderQR)
		})

		// Order submission links the order to a customer when a valid
		// token accompanies the request, but stays open to anonymous buyers.
		r.Group(func(r chi.Router) {
			r.Use(s.optionalAuthMiddleware)
			r.Post("/orders", s.handleSubmitOrder)
		})

		// Ordering wizard sessions
		r.Route("/wizard", func(r chi.Router) {
			r.Use(s.optionalAuthMiddleware)

			r.Post("/", s.handleWizardCreate)
			r.Route("/{sessionId}", func(r chi.Router) {
				r.Get("/", s.handleWizardGet)
				r.Post("/service", s.handleWizardSelectService)
				r.Post("/configure", s.handleWizardConfigure)
				r.Post("/contact", s.handleWizardContact)
				r.Post("/attachment", s.handleWizardAttachment)
				r.Post("/next", s.handleWizardNext)
				r.Post("/back", s.handleWizardBack)
				r.Post("/submit", s.handleWizardSubmit)
			})
		})

		// Protected routes - Customer
		r.Group(func(r chi.Router) {
			r.Use(s.authMiddleware)

			r.Get("/me", s.handleProfile)
			r.Put("/me", s.handleUpdateProfile)
			r.Get("/my/orders", s.handleMyOrders)
		})

		// Protected routes - Admin only
		r.Route("/admin", func(r chi.Router) {
			r.Use(s.authMiddleware)
			r.Use(s.roleMiddleware(domain.RoleAdmin))

			r.Get("/dashboard", s.handleAdminDashboard)

			// Catalog management
			r.Get("/services", s.handleAdminServicesList)
			r.Post("/services", s.handleAdminCreateService)
			r.Get("/services/{id}", s.handleAdminServiceDetail)
			r.Put("/services/{id}", s.handleAdminUpdateService)
			r.Delete("/services/{id}", s.handleAdminDeleteService)
			r.Post("/services/{id}/archive", s.handleAdminArchiveService)

			// Order management
			r.Get("/orders", s.handleAdminOrdersList)
			r.Get("/orders/{id}", s.handleAdminOrderDetail)
			r.Put("/orders/{id}/status", s.handleAdminUpdateOrderStatus)

			// User management
			r.Get("/users", s.handleAdminUsersList)

			// Settings
			r.Get("/settings", s.handleAdminSettings)
			r.Put("/settings", s.handleAdminUpdateSettings)
		})
	})
}

// uploadsHandler serves uploaded attachments with caching
func (s *Server) uploadsHandler() http.Handler {
	uploadDir := filepath.Clean(s.config.Uploads.Dir)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		urlPath := strings.TrimPrefix(r.URL.Path, "/uploads/")

		// Clean and validate the path to prevent directory traversal
		cleanPath := filepath.Clean(urlPath)
		if strings.Contains(cleanPath, "..") {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}

		fullPath := filepath.Join(uploadDir, cleanPath)

		// Verify the file is within the upload directory
		absUploadDir, _ := filepath.Abs(uploadDir)
		absFullPath, _ := filepath.Abs(fullPath)
		if !strings.HasPrefix(absFullPath, absUploadDir) {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}

		if _, err := os.Stat(fullPath); os.IsNotExist(err) {
			http.NotFound(w, r)
			return
		}

		if !s.config.Debug {
			w.Header().Set("Cache-Control", "public, max-age=604800")
		} else {
			w.Header().Set("Cache-Control", "no-cache")
		}

		http.ServeFile(w, r, fullPath)
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy","timestamp":"` + time.Now().Format(time.RFC3339) + `"}`))
}

// getURLParam is a helper to get URL parameters
func getURLParam(r *http.Request, key string) string {
	return chi.URLParam(r, key)
}
