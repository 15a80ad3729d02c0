package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"agencyapp/internal/domain"
	"agencyapp/internal/repository"
)

// ServiceRepo implements repository.ServiceRepository. Steps and the
// free-text lists live in JSON columns; the ordering flow always reads a
// service whole, so there is nothing to join.
type ServiceRepo struct {
	db *DB
}

// NewServiceRepo creates a new ServiceRepo
func NewServiceRepo(db *DB) repository.ServiceRepository {
	return &ServiceRepo{db: db}
}

const serviceColumns = `id, name, short_description, description, base_price, delivery_days,
	steps_json, features_json, benefits_json, scope_json, category, status, created_at, updated_at`

func (r *ServiceRepo) Create(ctx context.Context, service *domain.Service) error {
	steps, features, benefits, scope, err := marshalServiceLists(service)
	if err != nil {
		return err
	}

	if service.Status == "" {
		service.Status = domain.ServiceStatusActive
	}

	query := `
		INSERT INTO services (name, short_description, description, base_price, delivery_days,
			steps_json, features_json, benefits_json, scope_json, category, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	result, err := r.db.ExecContext(ctx, query,
		service.Name, service.ShortDescription, service.Description,
		service.BasePrice, service.DeliveryDays,
		steps, features, benefits, scope,
		service.Category, service.Status, time.Now())
	if err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get service ID: %w", err)
	}
	service.ID = id
	return nil
}

func (r *ServiceRepo) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services WHERE id = ?`
	service, err := scanService(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get service: %w", err)
	}
	return service, nil
}

func (r *ServiceRepo) Update(ctx context.Context, service *domain.Service) error {
	steps, features, benefits, scope, err := marshalServiceLists(service)
	if err != nil {
		return err
	}

	query := `
		UPDATE services SET name = ?, short_description = ?, description = ?,
			base_price = ?, delivery_days = ?, steps_json = ?, features_json = ?,
			benefits_json = ?, scope_json = ?, category = ?, status = ?, updated_at = ?
		WHERE id = ?
	`
	_, err = r.db.ExecContext(ctx, query,
		service.Name, service.ShortDescription, service.Description,
		service.BasePrice, service.DeliveryDays,
		steps, features, benefits, scope,
		service.Category, service.Status, time.Now(), service.ID)
	if err != nil {
		return fmt.Errorf("failed to update service: %w", err)
	}
	return nil
}

func (r *ServiceRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM services WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete service: %w", err)
	}
	return nil
}

func (r *ServiceRepo) List(ctx context.Context, status string) ([]domain.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services`
	args := []interface{}{}
	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY category, name`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	defer rows.Close()

	var services []domain.Service
	for rows.Next() {
		service, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan service: %w", err)
		}
		services = append(services, *service)
	}
	return services, rows.Err()
}

func (r *ServiceRepo) ListActive(ctx context.Context) ([]domain.Service, error) {
	return r.List(ctx, domain.ServiceStatusActive)
}

// rowScanner covers both *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanService(row rowScanner) (*domain.Service, error) {
	service := &domain.Service{}
	var shortDesc, desc, stepsJSON, featuresJSON, benefitsJSON, scopeJSON, category sql.NullString
	var updatedAt sql.NullTime

	err := row.Scan(
		&service.ID, &service.Name, &shortDesc, &desc,
		&service.BasePrice, &service.DeliveryDays,
		&stepsJSON, &featuresJSON, &benefitsJSON, &scopeJSON,
		&category, &service.Status, &service.CreatedAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	service.ShortDescription = shortDesc.String
	service.Description = desc.String
	service.Category = category.String
	if updatedAt.Valid {
		service.UpdatedAt = updatedAt.Time
	}

	if stepsJSON.String != "" {
		if err := json.Unmarshal([]byte(stepsJSON.String), &service.Steps); err != nil {
			return nil, fmt.Errorf("failed to unmarshal service steps: %w", err)
		}
	}
	for _, col := range []struct {
		raw  sql.NullString
		dest *[]string
	}{
		{featuresJSON, &service.Features},
		{benefitsJSON, &service.Benefits},
		{scopeJSON, &service.Scope},
	} {
		if col.raw.String == "" {
			continue
		}
		if err := json.Unmarshal([]byte(col.raw.String), col.dest); err != nil {
			return nil, fmt.Errorf("failed to unmarshal service list: %w", err)
		}
	}

	return service, nil
}

func marshalServiceLists(service *domain.Service) (steps, features, benefits, scope string, err error) {
	marshal := func(v interface{}) (string, error) {
		if v == nil {
			return "", nil
		}
		b, err := json.Marshal(v)
		if err != nil {
			return "", fmt.Errorf("failed to marshal service data: %w", err)
		}
		return string(b), nil
	}

	if steps, err = marshal(service.Steps); err != nil {
		return
	}
	if features, err = marshal(service.Features); err != nil {
		return
	}
	if benefits, err = marshal(service.Benefits); err != nil {
		return
	}
	scope, err = marshal(service.Scope)
	return
}
