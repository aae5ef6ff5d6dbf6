package web

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/kitportal/internal/portal/auth"
	"github.com/dmitrijs2005/kitportal/internal/portal/client"
	"github.com/dmitrijs2005/kitportal/internal/portal/session"
	"github.com/dmitrijs2005/kitportal/internal/portal/workflow"
)

type localsKey string

const (
	sessionKey  localsKey = "session"
	identityKey localsKey = "identity"
	snapshotKey localsKey = "snapshot"
)

const requestIDHeader = "X-Request-ID"

func sessionFrom(c fiber.Ctx) session.Data {
	d, _ := c.Locals(sessionKey).(session.Data)
	return d
}

func identityFrom(c fiber.Ctx) *auth.Identity {
	id, _ := c.Locals(identityKey).(*auth.Identity)
	return id
}

func snapshotFrom(c fiber.Ctx) *workflow.Snapshot {
	snap, _ := c.Locals(snapshotKey).(*workflow.Snapshot)
	return snap
}

func (s *Server) requestLogger(c fiber.Ctx) error {
	start := time.Now()
	requestID := uuid.NewString()
	c.Set(requestIDHeader, requestID)

	err := c.Next()

	status := c.Response().StatusCode()
	var ferr *fiber.Error
	if errors.As(err, &ferr) {
		status = ferr.Code
	} else if err != nil {
		status = fiber.StatusInternalServerError
	}

	s.logger.Info(c.Context(), "request",
		"request_id", requestID,
		"method", c.Method(),
		"path", c.Path(),
		"status", status,
		"latency", time.Since(start).String(),
	)
	return err
}

// loadSession decodes the session cookie and checks the stored token. A
// token that no longer verifies sends the browser to /logout.
func (s *Server) loadSession(c fiber.Ctx) error {
	sess := s.sessions.Load(c)
	c.Locals(sessionKey, sess)

	if sess.Token == "" {
		return c.Next()
	}

	id, err := s.verifier.Parse(sess.Token)
	if err != nil {
		switch c.Path() {
		case routeLogout, routeCallback:
			return c.Next()
		}
		s.logger.Info(c.Context(), "stored token rejected", "error", err.Error())
		return redirect(c, routeLogout)
	}

	c.Locals(identityKey, id)
	c.SetContext(client.WithAccessToken(c.Context(), sess.Token))
	return c.Next()
}

// withSnapshot derives the workflow state once for the request.
func (s *Server) withSnapshot(c fiber.Ctx) error {
	snap, err := workflow.Determine(c.Context(), s.api)
	if err != nil {
		return err
	}
	s.logger.Debug(c.Context(), "workflow state",
		"state", string(snap.State),
		"account_id", snap.AccountID,
		"human_source_id", snap.HumanSourceID,
	)
	c.Locals(snapshotKey, snap)
	return c.Next()
}

// requireState lets the request through only when the user is exactly at
// state; everyone else goes back to /workflow.
func requireState(state workflow.State) fiber.Handler {
	return func(c fiber.Ctx) error {
		if snapshotFrom(c).State != state {
			return redirect(c, workflow.RouteWorkflow)
		}
		return c.Next()
	}
}
