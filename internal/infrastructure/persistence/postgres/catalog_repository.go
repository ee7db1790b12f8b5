package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/DanielPopoola/ficmart-payment-methods/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CatalogRepository resolves payment methods from the catalog table.
// The catalog is owned by another service; this repository is strictly
// read-only.
type CatalogRepository struct {
	db *pgxpool.Pool
}

func NewCatalogRepository(db *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// FindByID resolves a payment method by id. Returns (nil, nil) when no
// method exists, matching the application port contract.
func (r *CatalogRepository) FindByID(ctx context.Context, id string) (*domain.PaymentMethod, error) {
	query := `
		SELECT id, name, description, type_code, status, asset
		FROM payment_methods WHERE id = $1
	`

	var method domain.PaymentMethod
	err := r.db.QueryRow(ctx, query, id).Scan(
		&method.ID,
		&method.Name,
		&method.Description,
		&method.TypeCode,
		&method.Status,
		&method.Asset,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find payment method: %w", err)
	}

	return &method, nil
}
