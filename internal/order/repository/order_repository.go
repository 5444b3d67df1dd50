package repository

import (
	"context"
	"database/sql"
	"fmt"

	"plataforma-pedidos/internal/domain"
)

// MySQLOrderRepository is append-only: orders are inserted and read, never
// updated or deleted.
type MySQLOrderRepository struct {
	db *sql.DB
}

func NewMySQLOrderRepository(db *sql.DB) *MySQLOrderRepository {
	return &MySQLOrderRepository{db: db}
}

func (r *MySQLOrderRepository) Create(ctx context.Context, order *domain.Order) (uint64, error) {
	query := `
		INSERT INTO orders (client_name, client_phone, latitude, longitude, products, total, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		order.ClientName, order.ClientPhone, order.Latitude, order.Longitude,
		order.Products, order.Total, order.Status, order.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting order: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting inserted order id: %w", err)
	}

	return uint64(id), nil
}

// FindAll returns every order, newest first.
func (r *MySQLOrderRepository) FindAll(ctx context.Context) ([]domain.Order, error) {
	query := `
		SELECT id, client_name, client_phone, latitude, longitude, products, total, status, created_at
		FROM orders
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying orders: %w", err)
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(
			&o.ID, &o.ClientName, &o.ClientPhone, &o.Latitude, &o.Longitude,
			&o.Products, &o.Total, &o.Status, &o.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning order row: %w", err)
		}
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating order rows: %w", err)
	}

	return orders, nil
}
