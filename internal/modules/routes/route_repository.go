package routes

import (
	"context"
	"errors"
	"fmt"

	"agri-connect/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryInterface is the read-only view of orders, products, and users the
// route optimizer consumes. It never writes.
type RepositoryInterface interface {
	// ListActiveOrders returns every order still relevant for routing:
	// pending, confirmed, in transit, or delivered but not yet completed.
	ListActiveOrders(ctx context.Context) ([]*models.Order, error)
	FindProduct(ctx context.Context, id string) (*models.Product, error)
	FindUser(ctx context.Context, id string) (*models.User, error)
}

// Repository implements the RepositoryInterface.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new route repository.
func NewRepository(db *pgxpool.Pool) RepositoryInterface {
	return &Repository{db: db}
}

func (r *Repository) ListActiveOrders(ctx context.Context) ([]*models.Order, error) {
	query := `
		SELECT id, product_id, buyer_id, quantity, unit_price, total_price, status,
		       payment_method, payment_status, delivery_address, delivery_lat, delivery_lng, delivery_date, created_at, updated_at
		FROM orders
		WHERE status IN ('pending', 'confirmed', 'in_transit', 'delivered')`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("repository.ListActiveOrders: %w", err)
	}
	defer rows.Close()

	orders := []*models.Order{}
	for rows.Next() {
		var order models.Order
		err := rows.Scan(
			&order.ID,
			&order.ProductID,
			&order.BuyerID,
			&order.Quantity,
			&order.UnitPrice,
			&order.TotalPrice,
			&order.Status,
			&order.PaymentMethod,
			&order.PaymentStatus,
			&order.DeliveryAddress,
			&order.DeliveryLat,
			&order.DeliveryLng,
			&order.DeliveryDate,
			&order.CreatedAt,
			&order.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, &order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository.ListActiveOrders: %w", err)
	}
	return orders, nil
}

func (r *Repository) FindProduct(ctx context.Context, id string) (*models.Product, error) {
	query := `
		SELECT id, farmer_id, name, location_lat, location_lng, address
		FROM products
		WHERE id = $1`

	var p models.Product
	err := r.db.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.FarmerID, &p.Name, &p.LocationLat, &p.LocationLng, &p.Address)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository.FindProduct: %w", err)
	}
	return &p, nil
}

func (r *Repository) FindUser(ctx context.Context, id string) (*models.User, error) {
	query := `
		SELECT id, role, full_name, farm_name, phone, location_lat, location_lng, address
		FROM users
		WHERE id = $1`

	var u models.User
	err := r.db.QueryRow(ctx, query, id).Scan(
		&u.ID, &u.Role, &u.FullName, &u.FarmName, &u.Phone, &u.LocationLat, &u.LocationLng, &u.Address)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository.FindUser: %w", err)
	}
	return &u, nil
}
