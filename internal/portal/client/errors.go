package client

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnavailable = errors.New("private api unavailable")
	ErrDecode      = errors.New("private api returned malformed json")
)

// RerouteKind says where the browser must go after a failed API call.
type RerouteKind int

const (
	// RerouteLogin: the token was rejected, the user has to log in again.
	RerouteLogin RerouteKind = iota + 1
	// RerouteErrorPage: show the error page with a support link.
	RerouteErrorPage
)

func (k RerouteKind) String() string {
	switch k {
	case RerouteLogin:
		return "login"
	case RerouteErrorPage:
		return "error page"
	default:
		return "unknown"
	}
}

// RerouteError ends the current browser request early.
type RerouteError struct {
	Kind       RerouteKind
	StatusCode int
	Body       string
	// MailtoURL is set for RerouteErrorPage.
	MailtoURL string
}

func (e *RerouteError) Error() string {
	return fmt.Sprintf("private api status %d: reroute to %s", e.StatusCode, e.Kind)
}

// AsReroute unwraps a *RerouteError from err.
func AsReroute(err error) (*RerouteError, bool) {
	var rerr *RerouteError
	if errors.As(err, &rerr) {
		return rerr, true
	}
	return nil, false
}

// MailtoURL builds the support link shown on the error page, with the API
// response text as the mail body.
func MailtoURL(helpEmail, body string) string {
	return "mailto:" + helpEmail + "?subject=" + quote("minimal interface error") + "&body=" + quote(body)
}

// quote percent-encodes everything except unreserved characters and '/'.
func quote(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9') ||
			c == '_' || c == '.' || c == '-' || c == '~' || c == '/' {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&15])
	}
	return b.String()
}
