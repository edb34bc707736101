package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/flexcart/flexcart/internal/domain/creditgrant"
	ierr "github.com/flexcart/flexcart/internal/errors"
	"github.com/flexcart/flexcart/internal/logger"
	"github.com/flexcart/flexcart/internal/postgres"
	"github.com/flexcart/flexcart/internal/types"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type creditGrantRow struct {
	ID              string          `db:"id"`
	CustomerID      string          `db:"customer_id"`
	Currency        string          `db:"currency"`
	OriginalAmount  decimal.Decimal `db:"original_amount"`
	RemainingAmount decimal.Decimal `db:"remaining_amount"`
	EnvironmentID   string          `db:"environment_id"`
	types.BaseModel
}

func (r *creditGrantRow) toDomain() *creditgrant.CreditGrant {
	return &creditgrant.CreditGrant{
		ID:              r.ID,
		CustomerID:      r.CustomerID,
		Currency:        r.Currency,
		OriginalAmount:  r.OriginalAmount,
		RemainingAmount: r.RemainingAmount,
		EnvironmentID:   r.EnvironmentID,
		BaseModel:       r.BaseModel,
	}
}

type creditGrantRepository struct {
	client *postgres.Client
	log    *logger.Logger
}

func NewCreditGrantRepository(client *postgres.Client, log *logger.Logger) creditgrant.Repository {
	return &creditGrantRepository{client: client, log: log}
}

func (r *creditGrantRepository) Create(ctx context.Context, grant *creditgrant.CreditGrant) error {
	if err := grant.Validate(); err != nil {
		return err
	}

	query := `
	INSERT INTO credit_grants (
		id, customer_id, currency, original_amount, remaining_amount, environment_id,
		tenant_id, status, created_at, updated_at, created_by, updated_by
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.client.Querier(ctx).ExecContext(ctx, query,
		grant.ID, grant.CustomerID, grant.Currency,
		grant.OriginalAmount, grant.RemainingAmount, grant.EnvironmentID,
		grant.TenantID, grant.Status, grant.CreatedAt, grant.UpdatedAt, grant.CreatedBy, grant.UpdatedBy,
	)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create credit grant").
			WithReportableDetails(map[string]interface{}{"id": grant.ID}).
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *creditGrantRepository) Get(ctx context.Context, id string) (*creditgrant.CreditGrant, error) {
	query := `
	SELECT id, customer_id, currency, original_amount, remaining_amount, environment_id,
		tenant_id, status, created_at, updated_at, created_by, updated_by
	FROM credit_grants
	WHERE id = $1 AND tenant_id = $2 AND status != $3
	`
	var row creditGrantRow
	err := sqlx.GetContext(ctx, r.client.Querier(ctx), &row, query,
		id, types.GetTenantID(ctx), types.StatusDeleted,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.NewErrorf("credit grant %s not found", id).
				WithHint("Credit grant not found").
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get credit grant").
			Mark(ierr.ErrDatabase)
	}
	return row.toDomain(), nil
}

func (r *creditGrantRepository) ListByCustomer(ctx context.Context, customerID string) ([]*creditgrant.CreditGrant, error) {
	// ordering by (created_at, id) keeps the FIFO consumption order stable
	// even when grants share a timestamp; ids are time-ordered ULIDs
	query := `
	SELECT id, customer_id, currency, original_amount, remaining_amount, environment_id,
		tenant_id, status, created_at, updated_at, created_by, updated_by
	FROM credit_grants
	WHERE customer_id = $1 AND tenant_id = $2 AND status != $3
	ORDER BY created_at ASC, id ASC
	`
	var rows []creditGrantRow
	err := sqlx.SelectContext(ctx, r.client.Querier(ctx), &rows, query,
		customerID, types.GetTenantID(ctx), types.StatusDeleted,
	)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list credit grants").
			WithReportableDetails(map[string]interface{}{"customer_id": customerID}).
			Mark(ierr.ErrDatabase)
	}

	grants := make([]*creditgrant.CreditGrant, len(rows))
	for i := range rows {
		grants[i] = rows[i].toDomain()
	}
	return grants, nil
}

func (r *creditGrantRepository) UpdateRemainingAmount(ctx context.Context, id string, remaining decimal.Decimal) error {
	query := `
	UPDATE credit_grants
	SET remaining_amount = $1, updated_at = NOW(), updated_by = $2
	WHERE id = $3 AND tenant_id = $4
	`
	res, err := r.client.Querier(ctx).ExecContext(ctx, query,
		remaining, types.GetUserID(ctx), id, types.GetTenantID(ctx),
	)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update credit grant").
			WithReportableDetails(map[string]interface{}{"id": id}).
			Mark(ierr.ErrDatabase)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ierr.NewErrorf("credit grant %s not found", id).
			WithHint("Credit grant not found").
			Mark(ierr.ErrNotFound)
	}
	return nil
}
