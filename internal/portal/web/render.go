package web

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"

	"github.com/gofiber/fiber/v3"

	"github.com/dmitrijs2005/kitportal/internal/portal/client"
	"github.com/dmitrijs2005/kitportal/internal/portal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

func parseTemplates() (*template.Template, error) {
	return template.ParseFS(templateFS, "templates/*.html")
}

// page is the data every template is executed with.
type page struct {
	Title    string
	LoggedIn bool

	// home
	UserName   string
	AccountID  string
	ShowWizard bool
	LoginURL   string

	// create_acct
	Email string

	// kit_sample_association
	Message string

	// survey, sample
	Action string
	Schema string
	Model  string

	// source, sample
	Samples    []models.Sample
	SourcePath string
	Sample     *models.Sample

	// error
	StatusCode int
	MailtoURL  string
}

func (s *Server) render(c fiber.Ctx, status int, name string, p page) error {
	p.LoggedIn = sessionFrom(c).Token != ""

	var buf bytes.Buffer
	if err := s.pages.ExecuteTemplate(&buf, name, p); err != nil {
		return err
	}
	c.Status(status)
	c.Type("html", "utf-8")
	return c.Send(buf.Bytes())
}

func toJSON(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// redirect answers with 302 Found.
func redirect(c fiber.Ctx, location string) error {
	return c.Redirect().Status(fiber.StatusFound).To(location)
}

// reroute ends the request the way the private API asked: a rejected token
// forces a new login, anything else shows the error page.
func (s *Server) reroute(c fiber.Ctx, rerr *client.RerouteError) error {
	if rerr.Kind == client.RerouteLogin {
		return redirect(c, routeLogout)
	}
	return s.render(c, rerr.StatusCode, "error.html", page{
		Title:      "Error",
		StatusCode: rerr.StatusCode,
		MailtoURL:  rerr.MailtoURL,
	})
}

// apiError answers a failed private API call. Errors that are not reroutes go
// to the fiber error handler.
func (s *Server) apiError(c fiber.Ctx, err error) error {
	if rerr, ok := client.AsReroute(err); ok {
		return s.reroute(c, rerr)
	}
	return err
}

func (s *Server) errorHandler(c fiber.Ctx, err error) error {
	status := http.StatusInternalServerError
	var ferr *fiber.Error
	if errors.As(err, &ferr) {
		status = ferr.Code
	}

	if status >= http.StatusInternalServerError {
		s.logger.Error(c.Context(), "request failed", "method", c.Method(), "path", c.Path(), "error", err.Error())
	}

	msg := http.StatusText(status)
	if ferr != nil {
		msg = ferr.Message
	}
	rerr := &client.RerouteError{
		Kind:       client.RerouteErrorPage,
		StatusCode: status,
		Body:       msg,
		MailtoURL:  client.MailtoURL(s.opts.HelpEmail, msg),
	}
	if renderErr := s.reroute(c, rerr); renderErr != nil {
		return c.Status(status).SendString(msg)
	}
	return nil
}
