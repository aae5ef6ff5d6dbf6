// Package melissa verifies postal addresses against the Melissa Global
// Address web service.
package melissa

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/kitportal/internal/leads/models"
)

const globalAddressPath = "/v3/WEB/GlobalAddress/doGlobalAddress"

// goodCodes are the address-verified result codes, from premise level
// (AV25) down to locality level (AV21).
var goodCodes = []string{"AV25", "AV24", "AV23", "AV22", "AV21"}

var (
	ErrMissingKey   = errors.New("melissa license key is not configured")
	ErrNoRecords    = errors.New("melissa returned no records")
	ErrTransmission = errors.New("melissa transmission error")
)

type response struct {
	TransmissionResults string   `json:"TransmissionResults"`
	Records             []record `json:"Records"`
}

type record struct {
	Results            string `json:"Results"`
	AddressLine1       string `json:"AddressLine1"`
	AddressLine2       string `json:"AddressLine2"`
	Locality           string `json:"Locality"`
	AdministrativeArea string `json:"AdministrativeArea"`
	PostalCode         string `json:"PostalCode"`
	Latitude           string `json:"Latitude"`
	Longitude          string `json:"Longitude"`
}

// Client calls doGlobalAddress once per Verify. It never retries.
type Client struct {
	baseURL string
	key     string
	http    *http.Client
}

func NewClient(baseURL, key string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), key: key, http: httpClient}
}

// Verify sends a to Melissa and reports whether it resolved to a deliverable
// address, together with the normalized form.
func (c *Client) Verify(ctx context.Context, a models.Address) (*models.AddressVerification, error) {
	if c.key == "" {
		return nil, ErrMissingKey
	}

	q := url.Values{}
	q.Set("id", c.key)
	q.Set("a1", a.Address1)
	q.Set("a2", a.Address2)
	q.Set("loc", a.City)
	q.Set("admarea", a.State)
	q.Set("postal", a.PostalCode)
	q.Set("ctry", a.Country)
	q.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+globalAddressPath+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("melissa request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read melissa response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("melissa status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var r response
	if err := json.Unmarshal(body, &r); err != nil {
		return nil, fmt.Errorf("decode melissa response: %w", err)
	}
	if strings.TrimSpace(r.TransmissionResults) != "" {
		return nil, fmt.Errorf("%w: %s", ErrTransmission, r.TransmissionResults)
	}
	if len(r.Records) == 0 {
		return nil, ErrNoRecords
	}

	return toVerification(r.Records[0])
}

func toVerification(rec record) (*models.AddressVerification, error) {
	v := &models.AddressVerification{Valid: hasGoodCode(rec.Results)}
	if !v.Valid {
		return v, nil
	}

	lat, err := parseCoordinate(rec.Latitude)
	if err != nil {
		return nil, fmt.Errorf("latitude: %w", err)
	}
	lon, err := parseCoordinate(rec.Longitude)
	if err != nil {
		return nil, fmt.Errorf("longitude: %w", err)
	}

	v.Address1 = rec.AddressLine1
	v.Address2 = rec.AddressLine2
	v.City = rec.Locality
	v.State = rec.AdministrativeArea
	v.Postal = rec.PostalCode
	v.Latitude = lat
	v.Longitude = lon
	return v, nil
}

func hasGoodCode(results string) bool {
	for _, code := range strings.Split(results, ",") {
		code = strings.TrimSpace(code)
		for _, good := range goodCodes {
			if code == good {
				return true
			}
		}
	}
	return false
}

// parseCoordinate returns nil for a missing coordinate.
func parseCoordinate(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &f, nil
}
