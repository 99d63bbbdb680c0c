package products

import (
	"context"
	"errors"
	"fmt"

	"agri-connect/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryInterface defines the contract for the product repository.
type RepositoryInterface interface {
	Create(ctx context.Context, product *models.Product) error
	FindByID(ctx context.Context, id string) (*models.Product, error)
	List(ctx context.Context, filters models.ProductFilters) ([]*models.Product, error)
	ListAvailableByFarmer(ctx context.Context, farmerID string) ([]*models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	UpdatePrice(ctx context.Context, id string, basePrice, currentPrice float64) error
	SoftDelete(ctx context.Context, id string) error
}

// Repository implements the RepositoryInterface.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new product repository.
func NewRepository(db *pgxpool.Pool) RepositoryInterface {
	return &Repository{db: db}
}

const productColumns = `p.id, p.farmer_id, u.full_name, p.name, p.category, p.quantity, p.unit, p.base_price, p.current_price,
	p.harvest_date, p.expiry_date, p.location_lat, p.location_lng, p.address, p.images, p.description, p.status, p.created_at, p.updated_at`

// Create inserts a new product. The current price starts at the base price;
// the pricing engine moves it from there.
func (r *Repository) Create(ctx context.Context, product *models.Product) error {
	query := `
		INSERT INTO products (id, farmer_id, name, category, quantity, unit, base_price, current_price,
			harvest_date, expiry_date, location_lat, location_lng, address, images, description, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7, $8, $9, $10, $11, $12, $13, $14, 'available', now(), now())`

	_, err := r.db.Exec(ctx, query,
		product.ID, product.FarmerID, product.Name, product.Category, product.Quantity, product.Unit,
		product.BasePrice, product.HarvestDate, product.ExpiryDate,
		product.LocationLat, product.LocationLng, product.Address, product.Images, product.Description)
	if err != nil {
		return fmt.Errorf("repository.CreateProduct: %w", err)
	}
	return nil
}

func (r *Repository) FindByID(ctx context.Context, id string) (*models.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products p
		LEFT JOIN users u ON p.farmer_id = u.id
		WHERE p.id = $1 AND p.is_deleted = false`
	return r.scanProduct(r.db.QueryRow(ctx, query, id))
}

// List returns non-deleted products, newest first, narrowed by the filters.
func (r *Repository) List(ctx context.Context, filters models.ProductFilters) ([]*models.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products p
		LEFT JOIN users u ON p.farmer_id = u.id
		WHERE p.is_deleted = false`
	args := []interface{}{}

	if filters.Category != "" {
		args = append(args, filters.Category)
		query += fmt.Sprintf(" AND p.category = $%d", len(args))
	}
	if filters.FarmerID != "" {
		args = append(args, filters.FarmerID)
		query += fmt.Sprintf(" AND p.farmer_id = $%d", len(args))
	}
	if filters.Status != "" {
		args = append(args, filters.Status)
		query += fmt.Sprintf(" AND p.status = $%d", len(args))
	}
	if filters.Search != "" {
		args = append(args, "%"+filters.Search+"%")
		query += fmt.Sprintf(" AND (p.name ILIKE $%d OR p.description ILIKE $%d)", len(args), len(args))
	}

	query += " ORDER BY p.created_at DESC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("repository.ListProducts: %w", err)
	}
	defer rows.Close()

	return r.collectProducts(rows)
}

func (r *Repository) ListAvailableByFarmer(ctx context.Context, farmerID string) ([]*models.Product, error) {
	return r.List(ctx, models.ProductFilters{FarmerID: farmerID, Status: models.ProductStatusAvailable})
}

func (r *Repository) Update(ctx context.Context, product *models.Product) error {
	query := `
		UPDATE products
		SET name = $2, category = $3, quantity = $4, unit = $5, harvest_date = $6, expiry_date = $7,
		    location_lat = $8, location_lng = $9, address = $10, description = $11, status = $12, updated_at = now()
		WHERE id = $1 AND is_deleted = false`

	tag, err := r.db.Exec(ctx, query,
		product.ID, product.Name, product.Category, product.Quantity, product.Unit,
		product.HarvestDate, product.ExpiryDate, product.LocationLat, product.LocationLng,
		product.Address, product.Description, product.Status)
	if err != nil {
		return fmt.Errorf("repository.UpdateProduct: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *Repository) UpdatePrice(ctx context.Context, id string, basePrice, currentPrice float64) error {
	query := `
		UPDATE products SET base_price = $2, current_price = $3, updated_at = now()
		WHERE id = $1 AND is_deleted = false`

	tag, err := r.db.Exec(ctx, query, id, basePrice, currentPrice)
	if err != nil {
		return fmt.Errorf("repository.UpdateProductPrice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *Repository) SoftDelete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE products SET is_deleted = true, updated_at = now() WHERE id = $1 AND is_deleted = false`, id)
	if err != nil {
		return fmt.Errorf("repository.DeleteProduct: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

// scanProduct is a helper function to scan a row into a Product model.
func (r *Repository) scanProduct(row pgx.Row) (*models.Product, error) {
	var p models.Product
	var farmerName *string
	err := row.Scan(
		&p.ID,
		&p.FarmerID,
		&farmerName,
		&p.Name,
		&p.Category,
		&p.Quantity,
		&p.Unit,
		&p.BasePrice,
		&p.CurrentPrice,
		&p.HarvestDate,
		&p.ExpiryDate,
		&p.LocationLat,
		&p.LocationLng,
		&p.Address,
		&p.Images,
		&p.Description,
		&p.Status,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan product: %w", err)
	}
	if farmerName != nil {
		p.FarmerName = *farmerName
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	return &p, nil
}

func (r *Repository) collectProducts(rows pgx.Rows) ([]*models.Product, error) {
	products := []*models.Product{}
	for rows.Next() {
		p, err := r.scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository.collectProducts: %w", err)
	}
	return products, nil
}
