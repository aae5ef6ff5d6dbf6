// Package leads wires the operator console that registers marketing leads
// and verifies their postal addresses.
package leads

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"

	"github.com/dmitrijs2005/kitportal/internal/dbx"
	"github.com/dmitrijs2005/kitportal/internal/leads/config"
	"github.com/dmitrijs2005/kitportal/internal/leads/melissa"
	"github.com/dmitrijs2005/kitportal/internal/leads/repositories/repomanager"
	"github.com/dmitrijs2005/kitportal/internal/leads/services"
	"github.com/dmitrijs2005/kitportal/internal/logging"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	console *Console
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stderr, logging.ParseLevel(c.LogLevel))

	key := c.MelissaKey
	if key == "" && isTerminal(int(os.Stdin.Fd())) {
		b, err := GetSecret(os.Stdout, "Melissa license key")
		if err != nil {
			return nil, fmt.Errorf("read license key: %w", err)
		}
		key = string(b)
	}

	db, err := dbx.Open(ctx, repomanager.DriverName, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager(melissa.NewClient(c.MelissaURL, key, &http.Client{}))
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	svc := services.NewInterestedUserService(db, rm, logger)

	return &App{
		config:  c,
		logger:  logger,
		db:      db,
		console: NewConsole(svc, os.Stdin, os.Stdout),
	}, nil
}

func (app *App) Run(ctx context.Context) {
	app.logger.Info(ctx, "Starting leads console...")
	fmt.Fprintln(os.Stdout, "Leads console (type 'help' for commands)")

	app.console.Run(ctx)

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "closing database", "error", err)
	}
}
