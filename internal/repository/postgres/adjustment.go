package postgres

import (
	"context"

	"github.com/flexcart/flexcart/internal/domain/order"
	ierr "github.com/flexcart/flexcart/internal/errors"
	"github.com/flexcart/flexcart/internal/logger"
	"github.com/flexcart/flexcart/internal/postgres"
	"github.com/flexcart/flexcart/internal/types"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type adjustmentRow struct {
	ID            string               `db:"id"`
	OrderID       string               `db:"order_id"`
	Type          order.AdjustmentType `db:"type"`
	Label         string               `db:"label"`
	Amount        decimal.Decimal      `db:"amount"`
	EnvironmentID string               `db:"environment_id"`
	types.BaseModel
}

func (r *adjustmentRow) toDomain() *order.Adjustment {
	return &order.Adjustment{
		ID:            r.ID,
		OrderID:       r.OrderID,
		Type:          r.Type,
		Label:         r.Label,
		Amount:        r.Amount,
		EnvironmentID: r.EnvironmentID,
		BaseModel:     r.BaseModel,
	}
}

type adjustmentRepository struct {
	client *postgres.Client
	log    *logger.Logger
}

func NewAdjustmentRepository(client *postgres.Client, log *logger.Logger) order.AdjustmentRepository {
	return &adjustmentRepository{client: client, log: log}
}

func (r *adjustmentRepository) Create(ctx context.Context, a *order.Adjustment) error {
	if err := a.Validate(); err != nil {
		return err
	}

	query := `
	INSERT INTO order_adjustments (
		id, order_id, type, label, amount, environment_id,
		tenant_id, status, created_at, updated_at, created_by, updated_by
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.client.Querier(ctx).ExecContext(ctx, query,
		a.ID, a.OrderID, a.Type, a.Label, a.Amount, a.EnvironmentID,
		a.TenantID, a.Status, a.CreatedAt, a.UpdatedAt, a.CreatedBy, a.UpdatedBy,
	)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create adjustment").
			WithReportableDetails(map[string]interface{}{"order_id": a.OrderID}).
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *adjustmentRepository) Update(ctx context.Context, a *order.Adjustment) error {
	if err := a.Validate(); err != nil {
		return err
	}

	query := `
	UPDATE order_adjustments
	SET amount = $1, label = $2, updated_at = NOW(), updated_by = $3
	WHERE id = $4 AND tenant_id = $5
	`
	res, err := r.client.Querier(ctx).ExecContext(ctx, query,
		a.Amount, a.Label, types.GetUserID(ctx), a.ID, a.TenantID,
	)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update adjustment").
			WithReportableDetails(map[string]interface{}{"id": a.ID}).
			Mark(ierr.ErrDatabase)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ierr.NewErrorf("adjustment %s not found", a.ID).
			WithHint("Adjustment not found").
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (r *adjustmentRepository) ListByOrder(ctx context.Context, orderID string, adjustmentType order.AdjustmentType) ([]*order.Adjustment, error) {
	query := `
	SELECT id, order_id, type, label, amount, environment_id,
		tenant_id, status, created_at, updated_at, created_by, updated_by
	FROM order_adjustments
	WHERE order_id = $1 AND type = $2 AND tenant_id = $3 AND status != $4
	ORDER BY created_at ASC, id ASC
	`
	var rows []adjustmentRow
	err := sqlx.SelectContext(ctx, r.client.Querier(ctx), &rows, query,
		orderID, adjustmentType, types.GetTenantID(ctx), types.StatusDeleted,
	)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list adjustments").
			WithReportableDetails(map[string]interface{}{"order_id": orderID}).
			Mark(ierr.ErrDatabase)
	}

	adjustments := make([]*order.Adjustment, len(rows))
	for i := range rows {
		adjustments[i] = rows[i].toDomain()
	}
	return adjustments, nil
}

func (r *adjustmentRepository) DeleteByOrder(ctx context.Context, orderID string, adjustmentType order.AdjustmentType) error {
	query := `
	DELETE FROM order_adjustments
	WHERE order_id = $1 AND type = $2 AND tenant_id = $3
	`
	_, err := r.client.Querier(ctx).ExecContext(ctx, query,
		orderID, adjustmentType, types.GetTenantID(ctx),
	)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete adjustments").
			WithReportableDetails(map[string]interface{}{"order_id": orderID}).
			Mark(ierr.ErrDatabase)
	}
	return nil
}
