package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_OverlaysOnlySetVariables(t *testing.T) {
	t.Setenv("PORTAL_ENDPOINT", "https://env.example")
	t.Setenv("PORTAL_SESSION_MAX_AGE", "90m")
	t.Setenv("PORTAL_API_TIMEOUT", "5s")

	c := &Config{}
	c.LoadDefaults()
	require.NoError(t, parseEnv(c))

	assert.Equal(t, "https://env.example", c.Endpoint)
	assert.Equal(t, 90*time.Minute, c.SessionMaxAge)
	assert.Equal(t, 5*time.Second, c.APITimeout)
	assert.Equal(t, ":8083", c.ListenAddr)
	assert.Equal(t, "en-US", c.LanguageTag)
}

func TestParseEnv_BadDuration(t *testing.T) {
	t.Setenv("PORTAL_SESSION_MAX_AGE", "forever")

	c := &Config{}
	err := parseEnv(c)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env")
}
