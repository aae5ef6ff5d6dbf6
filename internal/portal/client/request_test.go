package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorded struct {
	method string
	path   string
	query  url.Values
	auth   string
	ctype  string
	body   string
}

func newAPI(t *testing.T, status int, body string) (*Requester, *recorded) {
	t.Helper()
	rec := &recorded{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		*rec = recorded{
			method: r.Method,
			path:   r.URL.Path,
			query:  r.URL.Query(),
			auth:   r.Header.Get("Authorization"),
			ctype:  r.Header.Get("Content-Type"),
			body:   string(b),
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	r := NewRequester(srv.URL+"/api", srv.Client(), url.Values{"language_tag": {"en-US"}}, "help@microsetta.edu")
	return r, rec
}

func authed() context.Context {
	return WithAccessToken(context.Background(), "tok-1")
}

func TestDo_DecodesJSONAndSendsBearer(t *testing.T) {
	r, rec := newAPI(t, http.StatusOK, `[{"account_id":"a-1"}]`)

	var out []map[string]string
	err := r.Do(authed(), http.MethodGet, "/accounts", url.Values{"x": {"1"}}, nil, &out)
	require.NoError(t, err)

	assert.Equal(t, []map[string]string{{"account_id": "a-1"}}, out)
	assert.Equal(t, http.MethodGet, rec.method)
	assert.Equal(t, "/api/accounts", rec.path)
	assert.Equal(t, "Bearer tok-1", rec.auth)
	assert.Equal(t, "en-US", rec.query.Get("language_tag"))
	assert.Equal(t, "1", rec.query.Get("x"))
}

func TestDo_SendsJSONBody(t *testing.T) {
	r, rec := newAPI(t, http.StatusCreated, "")

	err := r.Do(authed(), http.MethodPost, "/accounts", nil, map[string]string{"kit_name": "DADIS"}, nil)
	require.NoError(t, err)

	assert.Equal(t, "application/json", rec.ctype)
	assert.JSONEq(t, `{"kit_name":"DADIS"}`, rec.body)
}

func TestDo_EmptyBodyLeavesOutUntouched(t *testing.T) {
	r, _ := newAPI(t, http.StatusOK, "  \n")

	out := map[string]string{"keep": "me"}
	require.NoError(t, r.Do(authed(), http.MethodGet, "/x", nil, nil, &out))
	assert.Equal(t, map[string]string{"keep": "me"}, out)
}

func TestDo_Unauthorized(t *testing.T) {
	r, _ := newAPI(t, http.StatusUnauthorized, "expired")

	err := r.Do(authed(), http.MethodGet, "/accounts", nil, nil, nil)
	rerr, ok := AsReroute(err)
	require.True(t, ok, "got %v", err)
	assert.Equal(t, RerouteLogin, rerr.Kind)
	assert.Equal(t, http.StatusUnauthorized, rerr.StatusCode)
	assert.Empty(t, rerr.MailtoURL)
}

func TestDo_ErrorStatusesBuildMailto(t *testing.T) {
	for _, status := range []int{http.StatusBadRequest, http.StatusNotFound, http.StatusInternalServerError} {
		r, _ := newAPI(t, status, "kit not found")

		err := r.Do(authed(), http.MethodGet, "/kits", nil, nil, nil)
		rerr, ok := AsReroute(err)
		require.True(t, ok, "status %d: got %v", status, err)
		assert.Equal(t, RerouteErrorPage, rerr.Kind)
		assert.Equal(t, status, rerr.StatusCode)
		assert.Equal(t, "kit not found", rerr.Body)
		assert.Equal(t, "mailto:help@microsetta.edu?subject=minimal%20interface%20error&body=kit%20not%20found", rerr.MailtoURL)
	}
}

func TestDo_NoTokenIsLoginReroute(t *testing.T) {
	r, rec := newAPI(t, http.StatusOK, "[]")

	err := r.Do(context.Background(), http.MethodGet, "/accounts", nil, nil, nil)
	rerr, ok := AsReroute(err)
	require.True(t, ok)
	assert.Equal(t, RerouteLogin, rerr.Kind)
	assert.Empty(t, rec.method, "no request must be sent")
}

func TestDo_MalformedJSON(t *testing.T) {
	r, _ := newAPI(t, http.StatusOK, "<html>")

	var out []string
	err := r.Do(authed(), http.MethodGet, "/accounts", nil, nil, &out)
	require.ErrorIs(t, err, ErrDecode)
}

func TestDo_TransportError(t *testing.T) {
	r := NewRequester("http://127.0.0.1:1/api", http.DefaultClient, nil, "h@x")

	err := r.Do(authed(), http.MethodGet, "/accounts", nil, nil, nil)
	require.True(t, errors.Is(err, ErrUnavailable), "got %v", err)
}

func TestBuildParams_CallerWins(t *testing.T) {
	r := NewRequester("http://x", http.DefaultClient, url.Values{"language_tag": {"en-US"}, "a": {"1"}}, "")

	got := r.BuildParams(url.Values{"language_tag": {"es-MX"}, "b": {"2"}})
	assert.Equal(t, url.Values{"language_tag": {"es-MX"}, "a": {"1"}, "b": {"2"}}, got)

	got.Set("a", "mutated")
	assert.Equal(t, "1", r.BuildParams(nil).Get("a"), "defaults must not be aliased")
}
