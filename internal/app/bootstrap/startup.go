// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/affiliatehub/internal/app/system/seed"
	"github.com/dalemusser/affiliatehub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	timeouts.Configure(timeouts.Config{
		Short:  appCfg.TimeoutShort,
		Medium: appCfg.TimeoutMedium,
		Long:   appCfg.TimeoutLong,
	})
	logger.Info("timeouts configured",
		zap.Duration("short", timeouts.Short()),
		zap.Duration("medium", timeouts.Medium()),
		zap.Duration("long", timeouts.Long()))

	if !appCfg.SeedDefaultUsers {
		return nil
	}
	return seedDefaultUsers(ctx, deps, logger)
}

func seedDefaultUsers(ctx context.Context, deps DBDeps, logger *zap.Logger) error {
	n, err := seed.New(deps.MongoDatabase, logger).EnsureDefaultUsers(ctx)
	if err != nil {
		logger.Error("seeding default users failed", zap.Error(err))
		return err
	}
	if n > 0 {
		logger.Info("default users created", zap.Int("count", n))
	}
	return nil
}
