package datastore

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/sqlcoach-ai/sqlcoach-engine/pkg/config"
)

// NewStore builds the configured dataset backend.
func NewStore(ctx context.Context, cfg *config.DatasetConfig, logger *zap.Logger) (Store, error) {
	switch cfg.Backend {
	case "sqlite":
		return NewSQLiteStore(cfg.Path, logger)
	case "postgres":
		return NewPostgresStore(ctx, cfg.URL, logger)
	default:
		return nil, fmt.Errorf("unknown dataset backend %q", cfg.Backend)
	}
}
