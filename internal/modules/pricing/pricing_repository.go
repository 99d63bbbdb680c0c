package pricing

import (
	"context"
	"fmt"

	"agri-connect/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryInterface defines the contract for the pricing repository.
type RepositoryInterface interface {
	ListAdjustable(ctx context.Context) ([]*models.Product, error)
	SetCurrentPrice(ctx context.Context, productID string, price float64) error
	RecordChange(ctx context.Context, productID string, oldPrice, newPrice float64) error
}

// Repository implements the RepositoryInterface.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new pricing repository.
func NewRepository(db *pgxpool.Pool) RepositoryInterface {
	return &Repository{db: db}
}

// ListAdjustable returns every listing the fluctuation engine may reprice.
func (r *Repository) ListAdjustable(ctx context.Context) ([]*models.Product, error) {
	query := `
		SELECT id, quantity, base_price, current_price
		FROM products
		WHERE status = 'available' AND is_deleted = false`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("repository.ListAdjustable: %w", err)
	}
	defer rows.Close()

	products := []*models.Product{}
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Quantity, &p.BasePrice, &p.CurrentPrice); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository.ListAdjustable: %w", err)
	}
	return products, nil
}

func (r *Repository) SetCurrentPrice(ctx context.Context, productID string, price float64) error {
	_, err := r.db.Exec(ctx,
		`UPDATE products SET current_price = $1, updated_at = now() WHERE id = $2`, price, productID)
	if err != nil {
		return fmt.Errorf("repository.SetCurrentPrice: %w", err)
	}
	return nil
}

func (r *Repository) RecordChange(ctx context.Context, productID string, oldPrice, newPrice float64) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO price_history (id, product_id, old_price, new_price, recorded_at)
		 VALUES ($1, $2, $3, $4, now())`,
		uuid.New().String(), productID, oldPrice, newPrice)
	if err != nil {
		return fmt.Errorf("repository.RecordChange: %w", err)
	}
	return nil
}
