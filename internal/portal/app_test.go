package portal

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/kitportal/internal/portal/auth"
	"github.com/dmitrijs2005/kitportal/internal/portal/config"
)

func writePublicKey(t *testing.T) string {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "authrocket.pubkey")
	require.NoError(t, os.WriteFile(path, pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}), 0o600))
	return path
}

func TestNewApp(t *testing.T) {
	c := &config.Config{}
	c.LoadDefaults()
	c.SessionSecret = "test-secret"
	c.JWTPublicKey = writePublicKey(t)

	app, err := NewApp(c)
	require.NoError(t, err)
	assert.NotNil(t, app.server)
}

func TestNewApp_Failures(t *testing.T) {
	c := &config.Config{}
	c.LoadDefaults()
	c.SessionSecret = "test-secret"
	c.JWTPublicKey = filepath.Join(t.TempDir(), "missing.pubkey")

	_, err := NewApp(c)
	require.Error(t, err)

	c.JWTPublicKey = writePublicKey(t)
	c.CAFile = filepath.Join(t.TempDir(), "missing-ca.pem")
	_, err = NewApp(c)
	require.Error(t, err)

	c.CAFile = ""
	c.JWTPublicKey = "-----BEGIN PUBLIC KEY-----\nnope\n-----END PUBLIC KEY-----"
	_, err = NewApp(c)
	require.ErrorIs(t, err, auth.ErrInvalidKey)
}

func TestNewApp_RejectsDefaultSessionSecret(t *testing.T) {
	c := &config.Config{}
	c.LoadDefaults()
	c.JWTPublicKey = writePublicKey(t)

	_, err := NewApp(c)
	require.ErrorIs(t, err, config.ErrDefaultSessionSecret)

	c.Endpoint = "http://localhost:8083"
	_, err = NewApp(c)
	require.NoError(t, err)
}
