// Package session keeps the portal's per-browser state in one sealed cookie.
package session

import (
	"encoding/base64"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/dmitrijs2005/kitportal/internal/cryptox"
)

const CookieName = "kitportal_session"

// Data is everything the portal remembers between requests.
type Data struct {
	Token   string `json:"token,omitempty"`
	KitName string `json:"kit_name,omitempty"`
}

// Store seals Data into the session cookie and reads it back.
type Store struct {
	key    *[cryptox.KeySize]byte
	maxAge time.Duration
	secure bool
}

// NewStore derives the sealing key from secret. secure marks the cookie
// HTTPS-only.
func NewStore(secret string, maxAge time.Duration, secure bool) (*Store, error) {
	key, err := cryptox.DeriveKey([]byte(secret), "kitportal session cookie")
	if err != nil {
		return nil, err
	}
	return &Store{key: key, maxAge: maxAge, secure: secure}, nil
}

func (s *Store) Encode(d Data) (string, error) {
	box, err := cryptox.SealEntry(d, s.key)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(box), nil
}

// Decode returns the empty session for anything it cannot open.
func (s *Store) Decode(value string) Data {
	var d Data
	if value == "" {
		return d
	}
	box, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return Data{}
	}
	if err := cryptox.OpenEntry(box, s.key, &d); err != nil {
		return Data{}
	}
	return d
}

func (s *Store) Load(c fiber.Ctx) Data {
	return s.Decode(c.Cookies(CookieName))
}

// Save writes d back to the browser. An empty d clears the cookie.
func (s *Store) Save(c fiber.Ctx, d Data) error {
	if d == (Data{}) {
		s.Clear(c)
		return nil
	}
	value, err := s.Encode(d)
	if err != nil {
		return err
	}
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(s.maxAge.Seconds()),
		Secure:   s.secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return nil
}

func (s *Store) Clear(c fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		Secure:   s.secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
