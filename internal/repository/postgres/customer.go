package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/flexcart/flexcart/internal/domain/customer"
	ierr "github.com/flexcart/flexcart/internal/errors"
	"github.com/flexcart/flexcart/internal/logger"
	"github.com/flexcart/flexcart/internal/postgres"
	"github.com/flexcart/flexcart/internal/types"
	"github.com/jmoiron/sqlx"
)

type customerRow struct {
	ID            string `db:"id"`
	ExternalID    string `db:"external_id"`
	Name          string `db:"name"`
	Email         string `db:"email"`
	EnvironmentID string `db:"environment_id"`
	types.BaseModel
}

func (r *customerRow) toDomain() *customer.Customer {
	return &customer.Customer{
		ID:            r.ID,
		ExternalID:    r.ExternalID,
		Name:          r.Name,
		Email:         r.Email,
		EnvironmentID: r.EnvironmentID,
		BaseModel:     r.BaseModel,
	}
}

type customerRepository struct {
	client *postgres.Client
	log    *logger.Logger
}

func NewCustomerRepository(client *postgres.Client, log *logger.Logger) customer.Repository {
	return &customerRepository{client: client, log: log}
}

func (r *customerRepository) Create(ctx context.Context, c *customer.Customer) error {
	query := `
	INSERT INTO customers (
		id, external_id, name, email, environment_id,
		tenant_id, status, created_at, updated_at, created_by, updated_by
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.client.Querier(ctx).ExecContext(ctx, query,
		c.ID, c.ExternalID, c.Name, c.Email, c.EnvironmentID,
		c.TenantID, c.Status, c.CreatedAt, c.UpdatedAt, c.CreatedBy, c.UpdatedBy,
	)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create customer").
			WithReportableDetails(map[string]interface{}{"id": c.ID}).
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *customerRepository) Get(ctx context.Context, id string) (*customer.Customer, error) {
	query := `
	SELECT id, external_id, name, email, environment_id,
		tenant_id, status, created_at, updated_at, created_by, updated_by
	FROM customers
	WHERE id = $1 AND tenant_id = $2 AND status != $3
	`
	var row customerRow
	err := sqlx.GetContext(ctx, r.client.Querier(ctx), &row, query,
		id, types.GetTenantID(ctx), types.StatusDeleted,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.NewErrorf("customer %s not found", id).
				WithHint("Customer not found").
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get customer").
			Mark(ierr.ErrDatabase)
	}
	return row.toDomain(), nil
}
