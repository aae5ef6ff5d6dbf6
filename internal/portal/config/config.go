// Package config handles configuration for the web portal,
// including defaults, JSON overlay, environment and command-line flags.
package config

import (
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/kitportal/internal/common"
)

// DefaultSessionSecret is the development session secret set by LoadDefaults.
const DefaultSessionSecret = "sessionSecret"

// ErrDefaultSessionSecret is returned by Validate when an https deployment
// still uses DefaultSessionSecret.
var ErrDefaultSessionSecret = errors.New("session secret must be changed for https endpoints")

// Config holds runtime settings for the portal.
//
// Fields:
//   - ListenAddr: bind address for the browser-facing HTTP server.
//   - Endpoint: public base URL of the deployment. The private API lives at
//     Endpoint + "/api" and consent forms post back to this host.
//   - CAFile: PEM bundle used to verify the private API's TLS certificate.
//     Empty means system roots.
//   - AuthRocketURL: login page that calls back /authrocket_callback.
//   - JWTPublicKey: RS256 public key (inline PEM or file path).
//   - SessionSecret: secret the session cookie key is derived from.
//   - SessionMaxAge: lifetime of the session cookie.
//   - HelpEmail: recipient of the error page support link.
//   - LanguageTag: default language_tag query parameter.
//   - APITimeout: per-request timeout of the private API client, 0 for none.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	ListenAddr    string        `env:"PORTAL_LISTEN_ADDR"`
	Endpoint      string        `env:"PORTAL_ENDPOINT"`
	CAFile        string        `env:"PORTAL_CA_FILE"`
	AuthRocketURL string        `env:"PORTAL_AUTHROCKET_URL"`
	JWTPublicKey  string        `env:"PORTAL_JWT_PUBLIC_KEY"`
	SessionSecret string        `env:"PORTAL_SESSION_SECRET"`
	SessionMaxAge time.Duration `env:"PORTAL_SESSION_MAX_AGE"`
	HelpEmail     string        `env:"PORTAL_HELP_EMAIL"`
	LanguageTag   string        `env:"PORTAL_LANGUAGE_TAG"`
	APITimeout    time.Duration `env:"PORTAL_API_TIMEOUT"`
	LogLevel      string        `env:"PORTAL_LOG_LEVEL"`
}

// LoadDefaults populates Config with development defaults.
// SessionSecret must be overridden outside development, see Validate.
func (c *Config) LoadDefaults() {
	c.ListenAddr = ":8083"
	c.Endpoint = "https://localhost:8083"
	c.CAFile = ""
	c.AuthRocketURL = "https://microsetta.e1.loginrocket.com"
	c.JWTPublicKey = "authrocket.pubkey"
	c.SessionSecret = DefaultSessionSecret
	c.SessionMaxAge = 24 * time.Hour
	c.HelpEmail = common.DefaultHelpEmail
	c.LanguageTag = common.DefaultLanguageTag
	c.APITimeout = 0
	c.LogLevel = "info"
}

// Validate rejects settings that must not reach a deployed portal. Plain
// http endpoints are treated as local development.
func (c *Config) Validate() error {
	if strings.HasPrefix(c.Endpoint, "https://") && c.SessionSecret == DefaultSessionSecret {
		return ErrDefaultSessionSecret
	}
	return nil
}

// APIBaseURL is the root every private API path is appended to.
func (c *Config) APIBaseURL() string {
	return strings.TrimRight(c.Endpoint, "/") + "/api"
}

// ConsentPostURL is where the consent form rendered by the API posts back.
func (c *Config) ConsentPostURL() string {
	return strings.TrimRight(c.Endpoint, "/") + "/workflow_create_human_source"
}

// LoginURL is the login page; the provider calls back /authrocket_callback
// with the issued token.
func (c *Config) LoginURL() string {
	callback := strings.TrimRight(c.Endpoint, "/") + "/authrocket_callback"
	return strings.TrimRight(c.AuthRocketURL, "/") + "/login?redirect_uri=" + url.QueryEscape(callback)
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment and finally command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	if err := parseEnv(cfg); err != nil {
		panic(err)
	}
	parseFlags(cfg)
	return cfg
}
