// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"errors"

	userstore "github.com/dalemusser/fundops/internal/app/store/users"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built.
//
// If superadmin_email is configured, the matching account is promoted to
// platform admin so a fresh deployment always has one account that can
// manage everything. The account must already exist (register first, then
// restart with the config set).
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if appCfg.SuperAdminEmail == "" {
		return nil
	}

	users := userstore.New(deps.MongoDatabase)
	u, err := users.GetByEmail(ctx, appCfg.SuperAdminEmail)
	if errors.Is(err, userstore.ErrNotFound) {
		logger.Warn("superadmin account not found; register it and restart",
			zap.String("email", appCfg.SuperAdminEmail))
		return nil
	}
	if err != nil {
		return err
	}
	if u.IsSuperuser {
		return nil
	}

	promote := true
	if _, err := users.Update(ctx, u.ID, userstore.Update{IsSuperuser: &promote}); err != nil {
		return err
	}
	logger.Info("promoted superadmin account", zap.String("email", appCfg.SuperAdminEmail))
	return nil
}
