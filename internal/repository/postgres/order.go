package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/flexcart/flexcart/internal/domain/order"
	ierr "github.com/flexcart/flexcart/internal/errors"
	"github.com/flexcart/flexcart/internal/logger"
	"github.com/flexcart/flexcart/internal/postgres"
	"github.com/flexcart/flexcart/internal/types"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type orderRow struct {
	ID            string          `db:"id"`
	CustomerID    sql.NullString  `db:"customer_id"`
	Currency      string          `db:"currency"`
	Subtotal      decimal.Decimal `db:"subtotal"`
	Total         decimal.Decimal `db:"total"`
	Completed     bool            `db:"completed"`
	CompletedAt   *time.Time      `db:"completed_at"`
	CompletionKey *string         `db:"completion_key"`
	EnvironmentID string          `db:"environment_id"`
	types.BaseModel
}

func (r *orderRow) toDomain() *order.Order {
	return &order.Order{
		ID:            r.ID,
		CustomerID:    r.CustomerID.String,
		Currency:      r.Currency,
		Subtotal:      r.Subtotal,
		Total:         r.Total,
		Completed:     r.Completed,
		CompletedAt:   r.CompletedAt,
		CompletionKey: r.CompletionKey,
		EnvironmentID: r.EnvironmentID,
		BaseModel:     r.BaseModel,
	}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

type orderRepository struct {
	client *postgres.Client
	log    *logger.Logger
}

func NewOrderRepository(client *postgres.Client, log *logger.Logger) order.Repository {
	return &orderRepository{client: client, log: log}
}

func (r *orderRepository) Create(ctx context.Context, o *order.Order) error {
	if err := o.Validate(); err != nil {
		return err
	}

	query := `
	INSERT INTO orders (
		id, customer_id, currency, subtotal, total, completed, completed_at, completion_key,
		environment_id, tenant_id, status, created_at, updated_at, created_by, updated_by
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	_, err := r.client.Querier(ctx).ExecContext(ctx, query,
		o.ID, nullString(o.CustomerID), o.Currency, o.Subtotal, o.Total,
		o.Completed, o.CompletedAt, o.CompletionKey,
		o.EnvironmentID, o.TenantID, o.Status, o.CreatedAt, o.UpdatedAt, o.CreatedBy, o.UpdatedBy,
	)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create order").
			WithReportableDetails(map[string]interface{}{"id": o.ID}).
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *orderRepository) Get(ctx context.Context, id string) (*order.Order, error) {
	query := `
	SELECT id, customer_id, currency, subtotal, total, completed, completed_at, completion_key,
		environment_id, tenant_id, status, created_at, updated_at, created_by, updated_by
	FROM orders
	WHERE id = $1 AND tenant_id = $2 AND status != $3
	`
	var row orderRow
	err := sqlx.GetContext(ctx, r.client.Querier(ctx), &row, query,
		id, types.GetTenantID(ctx), types.StatusDeleted,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.NewErrorf("order %s not found", id).
				WithHint("Order not found").
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get order").
			Mark(ierr.ErrDatabase)
	}
	return row.toDomain(), nil
}

func (r *orderRepository) Update(ctx context.Context, o *order.Order) error {
	query := `
	UPDATE orders
	SET subtotal = $1, total = $2, completed = $3, completed_at = $4, completion_key = $5,
		updated_at = NOW(), updated_by = $6
	WHERE id = $7 AND tenant_id = $8
	`
	res, err := r.client.Querier(ctx).ExecContext(ctx, query,
		o.Subtotal, o.Total, o.Completed, o.CompletedAt, o.CompletionKey,
		types.GetUserID(ctx), o.ID, o.TenantID,
	)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update order").
			WithReportableDetails(map[string]interface{}{"id": o.ID}).
			Mark(ierr.ErrDatabase)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ierr.NewErrorf("order %s not found", o.ID).
			WithHint("Order not found").
			Mark(ierr.ErrNotFound)
	}
	return nil
}
