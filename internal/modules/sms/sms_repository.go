package sms

import (
	"context"
	"errors"
	"fmt"

	"agri-connect/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryInterface defines the contract for the SMS repository.
type RepositoryInterface interface {
	InsertLog(ctx context.Context, log *models.SmsLog) error
	FindProductByName(ctx context.Context, name string) (*models.Product, error)
}

// Repository implements the RepositoryInterface.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new SMS repository.
func NewRepository(db *pgxpool.Pool) RepositoryInterface {
	return &Repository{db: db}
}

func (r *Repository) InsertLog(ctx context.Context, log *models.SmsLog) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO sms_logs (id, phone_number, message, direction, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, now())`,
		log.ID, log.Phone, log.Message, log.Direction, log.Status)
	if err != nil {
		return fmt.Errorf("repository.InsertSmsLog: %w", err)
	}
	return nil
}

// FindProductByName matches the first available listing whose name contains
// the given text, case-insensitively.
func (r *Repository) FindProductByName(ctx context.Context, name string) (*models.Product, error) {
	query := `
		SELECT id, name, current_price, unit
		FROM products
		WHERE name ILIKE '%' || $1 || '%' AND is_deleted = false
		LIMIT 1`

	var p models.Product
	err := r.db.QueryRow(ctx, query, name).Scan(&p.ID, &p.Name, &p.CurrentPrice, &p.Unit)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository.FindProductByName: %w", err)
	}
	return &p, nil
}
