package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/arklim/user-admin-console/internal/core/domain"
	"github.com/arklim/user-admin-console/internal/infra/config"
	eventsinfra "github.com/arklim/user-admin-console/internal/infra/events"
	"github.com/arklim/user-admin-console/internal/infra/logger"
	"github.com/arklim/user-admin-console/internal/infra/security"
	"github.com/arklim/user-admin-console/internal/repository/memory"
	"github.com/arklim/user-admin-console/internal/transport/cli"
	"github.com/arklim/user-admin-console/internal/usecase"
)

// Application wires the directory, usecases and console menu together. All
// state is in memory and disappears on exit.
type Application struct {
	cfg       *config.AppConfig
	logger    *zap.Logger
	directory *memory.Directory
	menu      *cli.Menu
}

// New builds the application from configuration and seeds the demo accounts
// when enabled.
func New(ctx context.Context, cfg *config.AppConfig) (*Application, error) {
	log, err := logger.New(cfg.App.Env)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	directory := memory.NewDirectory(cfg.Directory.MaxUsers)
	publisher := eventsinfra.NewLogPublisher(log)
	strength := security.NewStrengthMeter()

	authService := usecase.NewAuthService(directory, publisher, log)
	userService := usecase.NewUserService(directory, publisher, strength, log)
	historyService := usecase.NewHistoryService(directory, log)

	app := &Application{
		cfg:       cfg,
		logger:    log,
		directory: directory,
		menu:      cli.NewMenu(cfg.App.Name, authService, userService, historyService, log),
	}

	if cfg.Seed.Enabled {
		if err := app.seed(ctx); err != nil {
			return nil, fmt.Errorf("seed accounts: %w", err)
		}
	}

	return app, nil
}

// Run drives the console loop until exit or cancellation.
func (a *Application) Run(ctx context.Context) error {
	defer func() {
		_ = a.logger.Sync()
	}()
	return a.menu.Run(ctx)
}

// seed inserts the demo accounts directly into the directory; bootstrap has
// no acting user, so no actor audit entries are written.
func (a *Application) seed(ctx context.Context) error {
	accounts := []struct {
		seed config.SeedAccount
		role domain.Role
	}{
		{seed: a.cfg.Seed.Admin, role: domain.RoleAdministrator},
		{seed: a.cfg.Seed.User, role: domain.RoleStandard},
	}

	for _, entry := range accounts {
		user, err := domain.NewUserWithID(entry.seed.ID, entry.seed.FullName, entry.seed.Username, entry.seed.Credential, entry.role)
		if err != nil {
			return fmt.Errorf("build seed user %s: %w", entry.seed.Username, err)
		}
		if err := a.directory.Insert(ctx, user); err != nil {
			return fmt.Errorf("insert seed user %s: %w", entry.seed.Username, err)
		}
		a.logger.Info("seeded account",
			zap.String("user_id", user.ID()),
			zap.String("username", user.Username()),
			zap.String("role", string(user.Role())),
		)
	}
	return nil
}
