package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/orgware/staffd/pkg/domain"
)

// OrganisationsRepository handles organisation persistence.
type OrganisationsRepository struct {
	db *sql.DB
}

// NewOrganisationsRepository creates a new organisations repository.
func NewOrganisationsRepository(db *sql.DB) *OrganisationsRepository {
	return &OrganisationsRepository{db: db}
}

// CreateTx creates a new organisation within a transaction.
func (r *OrganisationsRepository) CreateTx(ctx context.Context, q Querier, org *domain.Organisation) error {
	query := `
		INSERT INTO organisations (id, name, created_at)
		VALUES ($1, $2, $3)
	`
	_, err := q.ExecContext(ctx, query, org.ID, org.Name, org.CreatedAt)
	return err
}

// GetByID retrieves an organisation by ID.
func (r *OrganisationsRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Organisation, error) {
	query := `
		SELECT id, name, created_at
		FROM organisations
		WHERE id = $1
	`
	org := &domain.Organisation{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&org.ID, &org.Name, &org.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrOrganisationNotFound
	}
	if err != nil {
		return nil, err
	}
	return org, nil
}
