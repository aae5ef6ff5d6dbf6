package client

import (
	"context"

	"github.com/dmitrijs2005/kitportal/internal/portal/models"
)

type Client interface {
	ListAccounts(ctx context.Context) ([]models.Account, error)
	CreateAccount(ctx context.Context, acct models.NewAccount) (*models.Account, error)

	ListSources(ctx context.Context, accountID, sourceType string) ([]models.Source, error)
	GetConsent(ctx context.Context, accountID, postURL string) (*models.Consent, error)
	SubmitConsent(ctx context.Context, accountID string, form map[string]string) error

	ListSurveys(ctx context.Context, accountID, sourceID string) ([]models.Survey, error)
	GetSurveyTemplate(ctx context.Context, accountID, sourceID string, templateID int) (*models.SurveyTemplate, error)
	SubmitSurvey(ctx context.Context, accountID, sourceID string, answers models.SurveyAnswers) error

	ListSamples(ctx context.Context, accountID, sourceID string) ([]models.Sample, error)
	GetSample(ctx context.Context, accountID, sourceID, sampleID string) (*models.Sample, error)
	UpdateSample(ctx context.Context, accountID, sourceID, sampleID string, fields map[string]string) error
	AssociateSample(ctx context.Context, accountID, sourceID, sampleID string) error
	ListKitSamples(ctx context.Context, kitName string) ([]models.Sample, error)
}
