package orders

import (
	"context"
	"errors"
	"fmt"

	"agri-connect/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryInterface defines the contract for the order repository.
type RepositoryInterface interface {
	Create(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, orderID string) (*models.Order, error)
	ListByBuyer(ctx context.Context, buyerID string) ([]*models.Order, error)
	ListByFarmer(ctx context.Context, farmerID string) ([]*models.Order, error)
	Update(ctx context.Context, orderID string, status, paymentStatus *string) error
}

// Repository implements the RepositoryInterface.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new order repository.
func NewRepository(db *pgxpool.Pool) RepositoryInterface {
	return &Repository{db: db}
}

const orderColumns = `o.id, o.product_id, p.name, o.buyer_id, o.quantity, o.unit_price, o.total_price, o.status,
	o.payment_method, o.payment_status, o.delivery_address, o.delivery_lat, o.delivery_lng, o.delivery_date, o.created_at, o.updated_at`

// Create inserts the order and decrements the product's stock in one
// transaction. Returns ErrInsufficientQuantity when the product does not have
// enough units left.
func (r *Repository) Create(ctx context.Context, order *models.Order) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("repository.CreateOrder: begin: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE products SET quantity = quantity - $1, updated_at = now()
		 WHERE id = $2 AND is_deleted = false AND quantity >= $1`,
		order.Quantity, order.ProductID)
	if err != nil {
		return fmt.Errorf("repository.CreateOrder: reserve stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrInsufficientQuantity
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO orders (id, product_id, buyer_id, quantity, unit_price, total_price, status,
			payment_method, payment_status, delivery_address, delivery_lat, delivery_lng, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, 'pending', $7, $8, $9, $10, $11, now(), now())`,
		order.ID, order.ProductID, order.BuyerID, order.Quantity, order.UnitPrice, order.TotalPrice,
		order.PaymentMethod, order.PaymentStatus, order.DeliveryAddress, order.DeliveryLat, order.DeliveryLng)
	if err != nil {
		return fmt.Errorf("repository.CreateOrder: insert: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("repository.CreateOrder: commit: %w", err)
	}
	return nil
}

func (r *Repository) FindByID(ctx context.Context, orderID string) (*models.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders o
		JOIN products p ON o.product_id = p.id
		WHERE o.id = $1`
	return r.scanOrder(r.db.QueryRow(ctx, query, orderID))
}

func (r *Repository) ListByBuyer(ctx context.Context, buyerID string) ([]*models.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders o
		JOIN products p ON o.product_id = p.id
		WHERE o.buyer_id = $1
		ORDER BY o.created_at DESC`

	rows, err := r.db.Query(ctx, query, buyerID)
	if err != nil {
		return nil, fmt.Errorf("repository.ListByBuyer: %w", err)
	}
	defer rows.Close()
	return r.collectOrders(rows)
}

func (r *Repository) ListByFarmer(ctx context.Context, farmerID string) ([]*models.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders o
		JOIN products p ON o.product_id = p.id
		WHERE p.farmer_id = $1
		ORDER BY o.created_at DESC`

	rows, err := r.db.Query(ctx, query, farmerID)
	if err != nil {
		return nil, fmt.Errorf("repository.ListByFarmer: %w", err)
	}
	defer rows.Close()
	return r.collectOrders(rows)
}

// Update changes order status and/or payment status. Cancelling an order
// restores the reserved product quantity in the same transaction.
func (r *Repository) Update(ctx context.Context, orderID string, status, paymentStatus *string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("repository.UpdateOrder: begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if status != nil && *status == models.OrderStatusCancelled {
		_, err := tx.Exec(ctx, `
			UPDATE products SET quantity = quantity + o.quantity, updated_at = now()
			FROM orders o
			WHERE products.id = o.product_id AND o.id = $1 AND o.status <> 'cancelled'`, orderID)
		if err != nil {
			return fmt.Errorf("repository.UpdateOrder: restore stock: %w", err)
		}
	}

	tag, err := tx.Exec(ctx, `
		UPDATE orders
		SET status = COALESCE($2, status), payment_status = COALESCE($3, payment_status), updated_at = now()
		WHERE id = $1`, orderID, status, paymentStatus)
	if err != nil {
		return fmt.Errorf("repository.UpdateOrder: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("repository.UpdateOrder: commit: %w", err)
	}
	return nil
}

// scanOrder is a helper function to scan a row into an Order model.
func (r *Repository) scanOrder(row pgx.Row) (*models.Order, error) {
	var order models.Order
	err := row.Scan(
		&order.ID,
		&order.ProductID,
		&order.ProductName,
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
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan order: %w", err)
	}
	return &order, nil
}

func (r *Repository) collectOrders(rows pgx.Rows) ([]*models.Order, error) {
	orders := []*models.Order{}
	for rows.Next() {
		order, err := r.scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository.collectOrders: %w", err)
	}
	return orders, nil
}
