package web

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/kitportal/internal/portal/models"
)

// fakeAPI is an in-memory private API. Calls are recorded by method name;
// errs makes the named method fail.
type fakeAPI struct {
	mu sync.Mutex

	accounts   []models.Account
	sources    []models.Source
	surveys    []models.Survey
	samples    []models.Sample
	kitSamples []models.Sample
	consent    models.Consent
	template   models.SurveyTemplate
	sample     models.Sample

	errs map[string]error
	// failAssociationAt fails AssociateSample on that call number (1-based).
	failAssociationAt int
	associationErr    error

	calls []string

	createdAccount *models.NewAccount
	consentPostURL string
	consentForm    map[string]string
	templateID     int
	answers        *models.SurveyAnswers
	kitName        string
	associated     []string
	updatedSample  map[string]string
	updatedPath    [3]string
}

func (f *fakeAPI) record(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
	return f.errs[name]
}

func (f *fakeAPI) count(name string) int {
	n := 0
	for _, c := range f.calls {
		if c == name {
			n++
		}
	}
	return n
}

func (f *fakeAPI) ListAccounts(ctx context.Context) ([]models.Account, error) {
	if err := f.record("ListAccounts"); err != nil {
		return nil, err
	}
	return f.accounts, nil
}

func (f *fakeAPI) CreateAccount(ctx context.Context, acct models.NewAccount) (*models.Account, error) {
	if err := f.record("CreateAccount"); err != nil {
		return nil, err
	}
	f.createdAccount = &acct
	return &models.Account{AccountID: "new-acct", Email: acct.Email}, nil
}

func (f *fakeAPI) ListSources(ctx context.Context, accountID, sourceType string) ([]models.Source, error) {
	if err := f.record("ListSources"); err != nil {
		return nil, err
	}
	return f.sources, nil
}

func (f *fakeAPI) GetConsent(ctx context.Context, accountID, postURL string) (*models.Consent, error) {
	if err := f.record("GetConsent"); err != nil {
		return nil, err
	}
	f.consentPostURL = postURL
	c := f.consent
	return &c, nil
}

func (f *fakeAPI) SubmitConsent(ctx context.Context, accountID string, form map[string]string) error {
	if err := f.record("SubmitConsent"); err != nil {
		return err
	}
	f.consentForm = form
	return nil
}

func (f *fakeAPI) ListSurveys(ctx context.Context, accountID, sourceID string) ([]models.Survey, error) {
	if err := f.record("ListSurveys"); err != nil {
		return nil, err
	}
	return f.surveys, nil
}

func (f *fakeAPI) GetSurveyTemplate(ctx context.Context, accountID, sourceID string, templateID int) (*models.SurveyTemplate, error) {
	if err := f.record("GetSurveyTemplate"); err != nil {
		return nil, err
	}
	f.templateID = templateID
	t := f.template
	return &t, nil
}

func (f *fakeAPI) SubmitSurvey(ctx context.Context, accountID, sourceID string, answers models.SurveyAnswers) error {
	if err := f.record("SubmitSurvey"); err != nil {
		return err
	}
	f.answers = &answers
	return nil
}

func (f *fakeAPI) ListSamples(ctx context.Context, accountID, sourceID string) ([]models.Sample, error) {
	if err := f.record("ListSamples"); err != nil {
		return nil, err
	}
	return f.samples, nil
}

func (f *fakeAPI) GetSample(ctx context.Context, accountID, sourceID, sampleID string) (*models.Sample, error) {
	if err := f.record("GetSample"); err != nil {
		return nil, err
	}
	s := f.sample
	return &s, nil
}

func (f *fakeAPI) UpdateSample(ctx context.Context, accountID, sourceID, sampleID string, fields map[string]string) error {
	if err := f.record("UpdateSample"); err != nil {
		return err
	}
	f.updatedSample = fields
	f.updatedPath = [3]string{accountID, sourceID, sampleID}
	return nil
}

func (f *fakeAPI) AssociateSample(ctx context.Context, accountID, sourceID, sampleID string) error {
	if err := f.record("AssociateSample"); err != nil {
		return err
	}
	if f.failAssociationAt == f.count("AssociateSample") {
		return f.associationErr
	}
	f.associated = append(f.associated, sampleID)
	return nil
}

func (f *fakeAPI) ListKitSamples(ctx context.Context, kitName string) ([]models.Sample, error) {
	if err := f.record("ListKitSamples"); err != nil {
		return nil, err
	}
	f.kitName = kitName
	return f.kitSamples, nil
}

// onboarded returns a fake whose user finished every wizard step.
func onboarded() *fakeAPI {
	return &fakeAPI{
		accounts: []models.Account{{AccountID: "a1"}},
		sources:  []models.Source{{SourceID: "s1", SourceType: models.SourceTypeHuman}},
		surveys:  []models.Survey{{SurveyID: "v1", SurveyTemplateID: 1}},
		samples:  []models.Sample{{SampleID: "x1", SampleBarcode: "000001234"}},
	}
}
