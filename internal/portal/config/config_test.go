package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, ":8083", c.ListenAddr)
	assert.Equal(t, "https://localhost:8083", c.Endpoint)
	assert.Empty(t, c.CAFile)
	assert.Equal(t, "https://microsetta.e1.loginrocket.com", c.AuthRocketURL)
	assert.Equal(t, "authrocket.pubkey", c.JWTPublicKey)
	assert.Equal(t, DefaultSessionSecret, c.SessionSecret)
	assert.Equal(t, 24*time.Hour, c.SessionMaxAge)
	assert.Equal(t, "help@microsetta.edu", c.HelpEmail)
	assert.Equal(t, "en-US", c.LanguageTag)
	assert.Zero(t, c.APITimeout)
	assert.Equal(t, "info", c.LogLevel)
}

func TestDerivedURLs(t *testing.T) {
	c := &Config{Endpoint: "https://portal.example/", AuthRocketURL: "https://login.example/"}

	assert.Equal(t, "https://portal.example/api", c.APIBaseURL())
	assert.Equal(t, "https://portal.example/workflow_create_human_source", c.ConsentPostURL())
	assert.Equal(t, "https://login.example/login?redirect_uri=https%3A%2F%2Fportal.example%2Fauthrocket_callback", c.LoginURL())
}

func TestValidate_SessionSecret(t *testing.T) {
	var c Config
	c.LoadDefaults()
	require.ErrorIs(t, c.Validate(), ErrDefaultSessionSecret)

	c.SessionSecret = "rotated"
	require.NoError(t, c.Validate())

	c.SessionSecret = DefaultSessionSecret
	c.Endpoint = "http://localhost:8083"
	require.NoError(t, c.Validate())
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"portal"}

	c := LoadConfig()
	require.NotNil(t, c, "LoadConfig must not return nil")

	assert.Equal(t, ":8083", c.ListenAddr)
	assert.Equal(t, "https://localhost:8083/api", c.APIBaseURL())
	assert.Equal(t, 24*time.Hour, c.SessionMaxAge)
}

func TestLoadConfig_FlagsOverrideEnv(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Setenv("PORTAL_LISTEN_ADDR", ":9000")
	t.Setenv("PORTAL_HELP_EMAIL", "ops@example.org")
	os.Args = []string{"portal", "-a", ":9100"}

	c := LoadConfig()

	assert.Equal(t, ":9100", c.ListenAddr)
	assert.Equal(t, "ops@example.org", c.HelpEmail)
}
