// Package repository defines interfaces for data persistence
package repository

import (
	"context"

	"agencyapp/internal/domain"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, role string, limit, offset int) ([]domain.User, error)
	Count(ctx context.Context, role string) (int, error)
}

// ServiceRepository defines the interface for catalog data operations
type ServiceRepository interface {
	Create(ctx context.Context, service *domain.Service) error
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
	Update(ctx context.Context, service *domain.Service) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, status string) ([]domain.Service, error)
	ListActive(ctx context.Context) ([]domain.Service, error)
}

// OrderRepository defines the interface for order data operations
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	GetByTrackingCode(ctx context.Context, code string) (*domain.Order, error)
	GetByCustomerID(ctx context.Context, customerID int64, limit, offset int) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	List(ctx context.Context, status string, limit, offset int) ([]domain.Order, error)
	CountByStatus(ctx context.Context) (map[string]int, error)
}

// SettingsRepository handles application configuration
type SettingsRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// Repositories bundles all repository interfaces
type Repositories struct {
	Users    UserRepository
	Services ServiceRepository
	Orders   OrderRepository
	Settings SettingsRepository
}
