package db

import (
	"context"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// Migrate applies every pending migration embedded in the binary
func (client *Connection) Migrate(ctx context.Context) error {
	goose.SetBaseFS(embedMigrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}

	if err := goose.UpContext(ctx, client.db.DB, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	version, err := goose.GetDBVersionContext(ctx, client.db.DB)
	if err != nil {
		return fmt.Errorf("failed to read migration version: %w", err)
	}
	client.logger.Info().Int64("version", version).Msg("Database migrations applied")
	return nil
}
