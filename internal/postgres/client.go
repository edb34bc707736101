package postgres

import (
	"context"
	"fmt"

	"github.com/flexcart/flexcart/internal/config"
	"github.com/flexcart/flexcart/internal/logger"
	"github.com/flexcart/flexcart/internal/types"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

type txKey struct{}

// IClient is the transactional surface services depend on. The concrete
// *Client backs it in production; tests substitute an in-memory client.
type IClient interface {
	// WithTx runs fn inside a transaction. The transaction is carried in the
	// context fn receives; repository calls made with that context join it.
	// Nested calls join the current transaction instead of opening a new one.
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error

	// LockKey acquires a transaction-scoped advisory lock. Must be called
	// inside WithTx.
	LockKey(ctx context.Context, req types.LockRequest) error
}

// Client wraps a sqlx database handle with context-carried transactions
type Client struct {
	db     *sqlx.DB
	logger *logger.Logger
}

// NewClient opens a postgres connection pool from config
func NewClient(cfg *config.Configuration, log *logger.Logger) (*Client, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.User,
		cfg.Postgres.Password, cfg.Postgres.DBName, cfg.Postgres.SSLMode,
	)

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	return &Client{db: db, logger: log}, nil
}

// TxFromContext returns the transaction carried in ctx, or nil
func (c *Client) TxFromContext(ctx context.Context) *sqlx.Tx {
	if tx, ok := ctx.Value(txKey{}).(*sqlx.Tx); ok {
		return tx
	}
	return nil
}

// Querier returns the active transaction if ctx carries one, else the pool.
// Repositories route every statement through this so they transparently join
// an enclosing WithTx.
func (c *Client) Querier(ctx context.Context) sqlx.ExtContext {
	if tx := c.TxFromContext(ctx); tx != nil {
		return tx
	}
	return c.db
}

func (c *Client) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if tx := c.TxFromContext(ctx); tx != nil {
		// already inside a transaction, join it
		return fn(ctx)
	}

	tx, err := c.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			c.logger.Errorw("failed to rollback transaction", "error", rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Close closes the underlying connection pool
func (c *Client) Close() error {
	return c.db.Close()
}
