package db

import (
	"context"
	"fmt"

	"marketplace-bidding-service/internal/config"
	"marketplace-bidding-service/internal/ports/outbound"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
)

// Connection represents a database connection
type Connection struct {
	db     *sqlx.DB
	logger zerolog.Logger
}

// NewConnection opens and pings a PostgreSQL connection pool
func NewConnection(ctx context.Context, cfg config.DatabaseConfig, logger zerolog.Logger) (*Connection, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", cfg.GetConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Set connection pool settings
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	return NewConnectionFromDB(db, logger), nil
}

// NewConnectionFromDB wraps an already opened pool
func NewConnectionFromDB(db *sqlx.DB, logger zerolog.Logger) *Connection {
	return &Connection{
		db:     db,
		logger: logger.With().Str("component", "postgres").Logger(),
	}
}

// GetDB returns the underlying sqlx.DB instance
func (client *Connection) GetDB() *sqlx.DB {
	return client.db
}

// Ping checks that the database is reachable
func (client *Connection) Ping(ctx context.Context) error {
	return client.db.PingContext(ctx)
}

// Close closes the database connection
func (client *Connection) Close() error {
	return client.db.Close()
}

// WithinTransaction implements outbound.Transactor. The repositories handed
// to fn run every statement on the same transaction.
func (client *Connection) WithinTransaction(ctx context.Context, fn func(ctx context.Context, repos outbound.Repositories) error) error {
	tx, err := client.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	repos := outbound.Repositories{
		Projects: &ProjectRepository{q: tx},
		Bids:     &BidRepository{q: tx},
	}
	if err := fn(ctx, repos); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("tx failed: %w, rollback failed: %v", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
