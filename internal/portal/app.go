// Package portal wires the onboarding web portal: configuration, the private
// API client, session handling and the web server.
package portal

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/dmitrijs2005/kitportal/internal/logging"
	"github.com/dmitrijs2005/kitportal/internal/portal/auth"
	"github.com/dmitrijs2005/kitportal/internal/portal/client"
	"github.com/dmitrijs2005/kitportal/internal/portal/config"
	"github.com/dmitrijs2005/kitportal/internal/portal/session"
	"github.com/dmitrijs2005/kitportal/internal/portal/web"
)

type App struct {
	config *config.Config
	logger logging.Logger
	server *web.Server
}

func NewApp(c *config.Config) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	logger := logging.NewJSONLogger(os.Stdout, logging.ParseLevel(c.LogLevel))

	verifier, err := auth.NewVerifierFromPEM(c.JWTPublicKey)
	if err != nil {
		return nil, fmt.Errorf("jwt public key: %w", err)
	}

	httpClient, err := client.NewTLSClient(c.CAFile, c.APITimeout)
	if err != nil {
		return nil, fmt.Errorf("api client: %w", err)
	}
	requester := client.NewRequester(c.APIBaseURL(), httpClient, url.Values{"language_tag": {c.LanguageTag}}, c.HelpEmail)

	sessions, err := session.NewStore(c.SessionSecret, c.SessionMaxAge, strings.HasPrefix(c.Endpoint, "https://"))
	if err != nil {
		return nil, fmt.Errorf("session store: %w", err)
	}

	srv, err := web.NewServer(web.Options{
		Address:        c.ListenAddr,
		LoginURL:       c.LoginURL(),
		ConsentPostURL: c.ConsentPostURL(),
		HelpEmail:      c.HelpEmail,
	}, logger, client.NewHTTPClient(requester), sessions, verifier)
	if err != nil {
		return nil, err
	}

	return &App{config: c, logger: logger, server: srv}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting portal...", "endpoint", app.config.Endpoint)

	app.initSignalHandler(cancelFunc)

	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, "web server stopped", "error", err.Error())
	}
}
