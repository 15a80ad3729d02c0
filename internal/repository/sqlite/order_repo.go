package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"agencyapp/internal/domain"
	"agencyapp/internal/repository"
)

// OrderRepo implements repository.OrderRepository. The configuration and
// contact blocks are snapshots, stored as JSON the way quotes stored their
// line items.
type OrderRepo struct {
	db *DB
}

// NewOrderRepo creates a new OrderRepo
func NewOrderRepo(db *DB) repository.OrderRepository {
	return &OrderRepo{db: db}
}

const orderColumns = `id, customer_id, service_id, service_name, configuration_json, contact_json,
	total_price, delivery_days, attachment_url, status, currency, tracking_code, qr_code, created_at`

func (r *OrderRepo) Create(ctx context.Context, order *domain.Order) error {
	configJSON, err := json.Marshal(order.Configuration)
	if err != nil {
		return fmt.Errorf("failed to marshal order configuration: %w", err)
	}
	contactJSON, err := json.Marshal(order.Contact)
	if err != nil {
		return fmt.Errorf("failed to marshal order contact info: %w", err)
	}

	var customerID interface{}
	if order.CustomerID != 0 {
		customerID = order.CustomerID
	}

	query := `
		INSERT INTO orders (customer_id, service_id, service_name, configuration_json, contact_json,
			total_price, delivery_days, attachment_url, status, currency, tracking_code, qr_code, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	result, err := r.db.ExecContext(ctx, query,
		customerID, order.ServiceID, order.ServiceName, string(configJSON), string(contactJSON),
		order.TotalPrice, order.DeliveryDays, order.AttachmentURL,
		order.Status, order.Currency, order.TrackingCode, order.QRCode, order.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get order ID: %w", err)
	}
	order.ID = id
	return nil
}

func (r *OrderRepo) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = ?`
	order, err := scanOrder(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return order, nil
}

func (r *OrderRepo) GetByTrackingCode(ctx context.Context, code string) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE tracking_code = ?`
	order, err := scanOrder(r.db.QueryRowContext(ctx, query, code))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order by tracking code: %w", err)
	}
	return order, nil
}

func (r *OrderRepo) GetByCustomerID(ctx context.Context, customerID int64, limit, offset int) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE customer_id = ? ORDER BY created_at DESC LIMIT ? OFFSET ?`
	return r.queryOrders(ctx, query, customerID, limit, offset)
}

func (r *OrderRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE orders SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	return nil
}

func (r *OrderRepo) List(ctx context.Context, status string, limit, offset int) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders`
	args := []interface{}{}
	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC LIMIT ? OFFSET ?`
	args = append(args, limit, offset)
	return r.queryOrders(ctx, query, args...)
}

func (r *OrderRepo) CountByStatus(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM orders GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan order count: %w", err)
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

func (r *OrderRepo) queryOrders(ctx context.Context, query string, args ...interface{}) ([]domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, *order)
	}
	return orders, rows.Err()
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	order := &domain.Order{}
	var customerID, serviceID sql.NullInt64
	var serviceName, configJSON, contactJSON, attachmentURL, currency sql.NullString

	err := row.Scan(
		&order.ID, &customerID, &serviceID, &serviceName, &configJSON, &contactJSON,
		&order.TotalPrice, &order.DeliveryDays, &attachmentURL,
		&order.Status, &currency, &order.TrackingCode, &order.QRCode, &order.CreatedAt)
	if err != nil {
		return nil, err
	}

	order.CustomerID = customerID.Int64
	order.ServiceID = serviceID.Int64
	order.ServiceName = serviceName.String
	order.AttachmentURL = attachmentURL.String
	order.Currency = currency.String

	if configJSON.String != "" {
		if err := json.Unmarshal([]byte(configJSON.String), &order.Configuration); err != nil {
			return nil, fmt.Errorf("failed to unmarshal order configuration: %w", err)
		}
	}
	if contactJSON.String != "" {
		if err := json.Unmarshal([]byte(contactJSON.String), &order.Contact); err != nil {
			return nil, fmt.Errorf("failed to unmarshal order contact info: %w", err)
		}
	}

	return order, nil
}
