package types

import (
	"context"
	"time"

	ierr "github.com/flexcart/flexcart/internal/errors"
)

// Status represents the lifecycle state of a record
type Status string

const (
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
	StatusDeleted   Status = "deleted"
)

func (s Status) Validate() error {
	switch s {
	case StatusPublished, StatusArchived, StatusDeleted:
		return nil
	default:
		return ierr.NewErrorf("invalid status: %s", s).
			WithHint("Invalid status").
			Mark(ierr.ErrValidation)
	}
}

// BaseModel carries the audit and tenancy fields shared by all records
type BaseModel struct {
	TenantID  string    `db:"tenant_id" json:"tenant_id"`
	Status    Status    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
	CreatedBy string    `db:"created_by" json:"created_by"`
	UpdatedBy string    `db:"updated_by" json:"updated_by"`
}

// GetDefaultBaseModel returns a BaseModel populated from the request context
func GetDefaultBaseModel(ctx context.Context) BaseModel {
	now := time.Now().UTC()
	return BaseModel{
		TenantID:  GetTenantID(ctx),
		Status:    StatusPublished,
		CreatedAt: now,
		UpdatedAt: now,
		CreatedBy: GetUserID(ctx),
		UpdatedBy: GetUserID(ctx),
	}
}
