package users

import (
	"context"
	"errors"
	"fmt"

	"agri-connect/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryInterface defines the contract for the user repository.
type RepositoryInterface interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByEmailOrPhone(ctx context.Context, email, phone string) (bool, error)
	Update(ctx context.Context, user *models.User) error
}

// Repository implements the RepositoryInterface.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new user repository.
func NewRepository(db *pgxpool.Pool) RepositoryInterface {
	return &Repository{db: db}
}

const userColumns = `id, email, phone, password_hash, role, full_name, location_lat, location_lng, address, bio, farm_name, profile_image, verified, rating, rating_count, created_at, updated_at`

// Create inserts a new user row.
func (r *Repository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, email, phone, password_hash, role, full_name, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())`

	_, err := r.db.Exec(ctx, query,
		user.ID, user.Email, user.Phone, user.PasswordHash, user.Role, user.FullName, user.Address)
	if err != nil {
		return fmt.Errorf("repository.CreateUser: %w", err)
	}
	return nil
}

func (r *Repository) FindByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanUser(r.db.QueryRow(ctx, query, id))
}

func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.scanUser(r.db.QueryRow(ctx, query, email))
}

func (r *Repository) ExistsByEmailOrPhone(ctx context.Context, email, phone string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1 OR phone = $2)`, email, phone).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("repository.ExistsByEmailOrPhone: %w", err)
	}
	return exists, nil
}

// Update writes all mutable profile fields back to the row.
func (r *Repository) Update(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users
		SET full_name = $2, email = $3, phone = $4, address = $5, location_lat = $6,
		    location_lng = $7, bio = $8, farm_name = $9, profile_image = $10, updated_at = now()
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		user.ID, user.FullName, user.Email, user.Phone, user.Address,
		user.LocationLat, user.LocationLng, user.Bio, user.FarmName, user.ProfileImage)
	if err != nil {
		return fmt.Errorf("repository.UpdateUser: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

// scanUser is a helper function to scan a row into a User model.
func (r *Repository) scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Phone,
		&user.PasswordHash,
		&user.Role,
		&user.FullName,
		&user.LocationLat,
		&user.LocationLng,
		&user.Address,
		&user.Bio,
		&user.FarmName,
		&user.ProfileImage,
		&user.Verified,
		&user.Rating,
		&user.RatingCount,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return &user, nil
}
