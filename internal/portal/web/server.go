// Package web serves the browser side of the portal: the onboarding wizard
// and the pages behind it.
package web

import (
	"context"
	"fmt"
	"html/template"

	"github.com/gofiber/fiber/v3"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/dmitrijs2005/kitportal/internal/logging"
	"github.com/dmitrijs2005/kitportal/internal/portal/auth"
	"github.com/dmitrijs2005/kitportal/internal/portal/client"
	"github.com/dmitrijs2005/kitportal/internal/portal/session"
	"github.com/dmitrijs2005/kitportal/internal/portal/workflow"
)

const (
	routeRoot     = "/"
	routeCallback = "/authrocket_callback"
	routeLogout   = "/logout"
	routeSource   = "/accounts/:account_id/sources/:source_id"
	routeSample   = routeSource + "/samples/:sample_id"
)

// Options are the settings the handlers read.
type Options struct {
	Address        string
	LoginURL       string
	ConsentPostURL string
	HelpEmail      string
}

type Server struct {
	opts     Options
	logger   logging.Logger
	api      client.Client
	sessions *session.Store
	verifier *auth.Verifier
	pages    *template.Template
	app      *fiber.App
}

func NewServer(opts Options, l logging.Logger, api client.Client, sessions *session.Store, verifier *auth.Verifier) (*Server, error) {
	pages, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	s := &Server{
		opts:     opts,
		logger:   l.With("module", "web_server"),
		api:      api,
		sessions: sessions,
		verifier: verifier,
		pages:    pages,
	}

	s.app = fiber.New(fiber.Config{
		AppName:      "kitportal",
		ErrorHandler: s.errorHandler,
	})
	s.routes()

	return s, nil
}

func (s *Server) routes() {
	app := s.app
	app.Use(s.requestLogger)
	app.Use(recoverer.New())
	app.Use(s.loadSession)

	app.Get(routeRoot, s.getRoot)
	app.Get(workflow.RouteHome, s.getHome)
	app.Get(routeCallback, s.getAuthRocketCallback)
	app.Get(routeLogout, s.getLogout)
	app.Get(workflow.RouteWorkflow, s.withSnapshot, s.getWorkflow)

	// Every wizard step and post-onboarding page is guarded by the state it
	// belongs to.
	app.Get(workflow.RouteCreateAccount, s.withSnapshot, requireState(workflow.NeedsAccount), s.getCreateAccount)
	app.Post(workflow.RouteCreateAccount, s.withSnapshot, requireState(workflow.NeedsAccount), s.postCreateAccount)
	app.Get(workflow.RouteCreateHumanSource, s.withSnapshot, requireState(workflow.NeedsHumanSource), s.getCreateHumanSource)
	app.Post(workflow.RouteCreateHumanSource, s.withSnapshot, requireState(workflow.NeedsHumanSource), s.postCreateHumanSource)
	app.Get(workflow.RouteFillPrimarySurvey, s.withSnapshot, requireState(workflow.NeedsPrimarySurvey), s.getFillPrimarySurvey)
	app.Post(workflow.RouteFillPrimarySurvey, s.withSnapshot, requireState(workflow.NeedsPrimarySurvey), s.postFillPrimarySurvey)
	app.Get(workflow.RouteClaimKitSamples, s.withSnapshot, requireState(workflow.NeedsSample), s.getClaimKitSamples)
	app.Post(workflow.RouteClaimKitSamples, s.withSnapshot, requireState(workflow.NeedsSample), s.postClaimKitSamples)

	app.Get(routeSource, s.withSnapshot, requireState(workflow.AllDone), s.getSource)
	app.Get(routeSample, s.withSnapshot, requireState(workflow.AllDone), s.getSample)
	app.Post(routeSample, s.withSnapshot, requireState(workflow.AllDone), s.putSample)
	app.Put(routeSample, s.withSnapshot, requireState(workflow.AllDone), s.putSample)
}

// Run serves until ctx is cancelled, then shuts the server down.
func (s *Server) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		s.logger.Info(context.Background(), "Stopping web server...")
		if err := s.app.Shutdown(); err != nil {
			s.logger.Error(context.Background(), "shutdown", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting web server", "address", s.opts.Address)

	return s.app.Listen(s.opts.Address, fiber.ListenConfig{DisableStartupMessage: true})
}
