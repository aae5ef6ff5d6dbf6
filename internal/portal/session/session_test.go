package session

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T, secret string) *Store {
	t.Helper()
	s, err := NewStore(secret, time.Hour, false)
	require.NoError(t, err)
	return s
}

func TestEncodeDecode(t *testing.T) {
	s := newStore(t, "sessionSecret")

	v, err := s.Encode(Data{Token: "tok", KitName: "DADIS"})
	require.NoError(t, err)
	assert.NotContains(t, v, "tok")

	assert.Equal(t, Data{Token: "tok", KitName: "DADIS"}, s.Decode(v))
}

func TestDecode_GarbageIsEmpty(t *testing.T) {
	s := newStore(t, "sessionSecret")
	v, _ := s.Encode(Data{Token: "tok"})

	other := newStore(t, "anotherSecret")
	assert.Equal(t, Data{}, other.Decode(v))
	assert.Equal(t, Data{}, s.Decode("!!not base64!!"))
	assert.Equal(t, Data{}, s.Decode(v[:len(v)-4]+"AAAA"))
	assert.Equal(t, Data{}, s.Decode(""))
}

func TestSaveLoad_ThroughFiber(t *testing.T) {
	s := newStore(t, "sessionSecret")
	app := fiber.New()
	app.Get("/set", func(c fiber.Ctx) error {
		return s.Save(c, Data{Token: "tok", KitName: "K"})
	})
	app.Get("/get", func(c fiber.Ctx) error {
		d := s.Load(c)
		return c.SendString(d.Token + "|" + d.KitName)
	})
	app.Get("/clear", func(c fiber.Ctx) error {
		return s.Save(c, Data{})
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/set", nil))
	require.NoError(t, err)
	cookies := resp.Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, 3600, cookies[0].MaxAge)

	req := httptest.NewRequest(http.MethodGet, "/get", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: cookies[0].Value})
	resp, err = app.Test(req)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "tok|K", string(body))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/clear", nil))
	require.NoError(t, err)
	require.NotEmpty(t, resp.Header.Values("Set-Cookie"))
	cleared := resp.Cookies()
	require.Len(t, cleared, 1)
	assert.Empty(t, cleared[0].Value)
	assert.True(t, cleared[0].Expires.Before(time.Now()))
}
