package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/kitportal/internal/common"
)

// Requester performs one private API call per Do.
type Requester struct {
	baseURL       string
	http          *http.Client
	defaultParams url.Values
	helpEmail     string
}

func NewRequester(baseURL string, httpClient *http.Client, defaultParams url.Values, helpEmail string) *Requester {
	return &Requester{
		baseURL:       strings.TrimRight(baseURL, "/"),
		http:          httpClient,
		defaultParams: defaultParams,
		helpEmail:     helpEmail,
	}
}

// BuildParams merges params over the defaults; caller values win.
func (r *Requester) BuildParams(params url.Values) url.Values {
	all := url.Values{}
	for k, v := range r.defaultParams {
		all[k] = append([]string(nil), v...)
	}
	for k, v := range params {
		all[k] = append([]string(nil), v...)
	}
	return all
}

// Do sends method path with params and an optional JSON body, and decodes a
// successful JSON response into out. An empty response body leaves out
// untouched. Rejected calls return *RerouteError.
func (r *Requester) Do(ctx context.Context, method, path string, params url.Values, body, out any) error {
	token, ok := AccessToken(ctx)
	if !ok {
		return &RerouteError{Kind: RerouteLogin, StatusCode: http.StatusUnauthorized}
	}

	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reqBody = bytes.NewReader(b)
	}

	u := r.baseURL + path + "?" + r.BuildParams(params).Encode()
	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set(common.AccessTokenHeaderName, "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := r.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrUnavailable, method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read body: %v", ErrUnavailable, err)
	}

	return r.checkResponse(resp.StatusCode, respBody, out)
}

func (r *Requester) checkResponse(status int, body []byte, out any) error {
	switch {
	case status == http.StatusUnauthorized:
		return &RerouteError{Kind: RerouteLogin, StatusCode: status, Body: string(body)}
	case status >= http.StatusBadRequest:
		return &RerouteError{
			Kind:       RerouteErrorPage,
			StatusCode: status,
			Body:       string(body),
			MailtoURL:  MailtoURL(r.helpEmail, string(body)),
		}
	}

	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return nil
}
