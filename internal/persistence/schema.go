package persistence

import (
	"context"
	_ "embed"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	apperrors "github.com/spec-kit/ticket-classifier/pkg/util"
)

//go:embed schema.sql
var schemaSQL string

// InitSchema applies the embedded DDL. Every statement is idempotent, so
// running it on an already-initialized database is a no-op.
func InitSchema(ctx context.Context, pool *pgxpool.Pool, logger *zap.Logger) error {
	if pool == nil {
		return apperrors.NewConnectionError("no postgres pool available", nil)
	}

	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		return apperrors.NewPersistenceError("failed to initialize schema", err)
	}

	logger.Info("database schema initialized")
	return nil
}
