package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/kitportal/internal/portal/models"
)

// HTTPClient implements Client over a Requester.
type HTTPClient struct {
	r *Requester
}

func NewHTTPClient(r *Requester) *HTTPClient {
	return &HTTPClient{r: r}
}

func accountPath(accountID string) string {
	return "/accounts/" + url.PathEscape(accountID)
}

func sourcePath(accountID, sourceID string) string {
	return accountPath(accountID) + "/sources/" + url.PathEscape(sourceID)
}

func samplePath(accountID, sourceID, sampleID string) string {
	return sourcePath(accountID, sourceID) + "/samples/" + url.PathEscape(sampleID)
}

func (c *HTTPClient) ListAccounts(ctx context.Context) ([]models.Account, error) {
	var out []models.Account
	if err := c.r.Do(ctx, http.MethodGet, "/accounts", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) CreateAccount(ctx context.Context, acct models.NewAccount) (*models.Account, error) {
	out := &models.Account{}
	if err := c.r.Do(ctx, http.MethodPost, "/accounts", nil, acct, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) ListSources(ctx context.Context, accountID, sourceType string) ([]models.Source, error) {
	var params url.Values
	if sourceType != "" {
		params = url.Values{"source_type": {sourceType}}
	}
	var out []models.Source
	if err := c.r.Do(ctx, http.MethodGet, accountPath(accountID)+"/sources", params, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) GetConsent(ctx context.Context, accountID, postURL string) (*models.Consent, error) {
	out := &models.Consent{}
	params := url.Values{"consent_post_url": {postURL}}
	if err := c.r.Do(ctx, http.MethodGet, accountPath(accountID)+"/consent", params, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) SubmitConsent(ctx context.Context, accountID string, form map[string]string) error {
	return c.r.Do(ctx, http.MethodPost, accountPath(accountID)+"/consent", nil, form, nil)
}

func (c *HTTPClient) ListSurveys(ctx context.Context, accountID, sourceID string) ([]models.Survey, error) {
	var out []models.Survey
	if err := c.r.Do(ctx, http.MethodGet, sourcePath(accountID, sourceID)+"/surveys", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) GetSurveyTemplate(ctx context.Context, accountID, sourceID string, templateID int) (*models.SurveyTemplate, error) {
	out := &models.SurveyTemplate{}
	path := fmt.Sprintf("%s/survey_templates/%d", sourcePath(accountID, sourceID), templateID)
	if err := c.r.Do(ctx, http.MethodGet, path, nil, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) SubmitSurvey(ctx context.Context, accountID, sourceID string, answers models.SurveyAnswers) error {
	return c.r.Do(ctx, http.MethodPost, sourcePath(accountID, sourceID)+"/surveys", nil, answers, nil)
}

func (c *HTTPClient) ListSamples(ctx context.Context, accountID, sourceID string) ([]models.Sample, error) {
	var out []models.Sample
	if err := c.r.Do(ctx, http.MethodGet, sourcePath(accountID, sourceID)+"/samples", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) GetSample(ctx context.Context, accountID, sourceID, sampleID string) (*models.Sample, error) {
	out := &models.Sample{}
	if err := c.r.Do(ctx, http.MethodGet, samplePath(accountID, sourceID, sampleID), nil, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) UpdateSample(ctx context.Context, accountID, sourceID, sampleID string, fields map[string]string) error {
	return c.r.Do(ctx, http.MethodPut, samplePath(accountID, sourceID, sampleID), nil, fields, nil)
}

func (c *HTTPClient) AssociateSample(ctx context.Context, accountID, sourceID, sampleID string) error {
	body := map[string]string{"sample_id": sampleID}
	return c.r.Do(ctx, http.MethodPost, sourcePath(accountID, sourceID)+"/samples", nil, body, nil)
}

// ListKitSamples returns the samples of kitName not yet associated with a source.
func (c *HTTPClient) ListKitSamples(ctx context.Context, kitName string) ([]models.Sample, error) {
	var out []models.Sample
	if err := c.r.Do(ctx, http.MethodGet, "/kits", url.Values{"kit_name": {kitName}}, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
