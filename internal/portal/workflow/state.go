// Package workflow derives where a user stands in the onboarding sequence
// from what the private API already holds for them.
package workflow

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/kitportal/internal/portal/client"
	"github.com/dmitrijs2005/kitportal/internal/portal/models"
)

type State string

const (
	NeedsReroute       State = "NeedsReroute"
	NeedsLogin         State = "NeedsLogin"
	NeedsAccount       State = "NeedsAccount"
	NeedsHumanSource   State = "NeedsHumanSource"
	NeedsPrimarySurvey State = "NeedsPrimarySurvey"
	NeedsSample        State = "NeedsSample"
	AllDone            State = "AllDone"
)

// PrimarySurveyTemplateID identifies the survey every human source must fill.
const PrimarySurveyTemplateID = 1

// API is the part of the private API the state machine reads.
type API interface {
	ListAccounts(ctx context.Context) ([]models.Account, error)
	ListSources(ctx context.Context, accountID, sourceType string) ([]models.Source, error)
	ListSurveys(ctx context.Context, accountID, sourceID string) ([]models.Survey, error)
	ListSamples(ctx context.Context, accountID, sourceID string) ([]models.Sample, error)
}

// Snapshot is the outcome of Determine. Context fields are filled up to the
// step that decided the state.
type Snapshot struct {
	State         State
	AccountID     string
	HumanSourceID string
	Samples       []models.Sample

	// Reroute is set only for NeedsReroute.
	Reroute *client.RerouteError
}

// Determine walks accounts, human sources, surveys and samples in that order
// and stops at the first missing step. The first account and the first human
// source are the ones considered.
func Determine(ctx context.Context, api API) (*Snapshot, error) {
	snap := &Snapshot{}
	if _, ok := client.AccessToken(ctx); !ok {
		snap.State = NeedsLogin
		return snap, nil
	}

	accounts, err := api.ListAccounts(ctx)
	if err != nil {
		return snap.fail(err, "list accounts")
	}
	if len(accounts) == 0 {
		snap.State = NeedsAccount
		return snap, nil
	}
	snap.AccountID = accounts[0].AccountID

	sources, err := api.ListSources(ctx, snap.AccountID, models.SourceTypeHuman)
	if err != nil {
		return snap.fail(err, "list sources")
	}
	if len(sources) == 0 {
		snap.State = NeedsHumanSource
		return snap, nil
	}
	snap.HumanSourceID = sources[0].SourceID

	surveys, err := api.ListSurveys(ctx, snap.AccountID, snap.HumanSourceID)
	if err != nil {
		return snap.fail(err, "list surveys")
	}
	if !hasPrimarySurvey(surveys) {
		snap.State = NeedsPrimarySurvey
		return snap, nil
	}

	samples, err := api.ListSamples(ctx, snap.AccountID, snap.HumanSourceID)
	if err != nil {
		return snap.fail(err, "list samples")
	}
	if len(samples) == 0 {
		snap.State = NeedsSample
		return snap, nil
	}
	snap.Samples = samples
	snap.State = AllDone
	return snap, nil
}

func (s *Snapshot) fail(err error, step string) (*Snapshot, error) {
	if rerr, ok := client.AsReroute(err); ok {
		s.State = NeedsReroute
		s.Reroute = rerr
		return s, nil
	}
	return nil, fmt.Errorf("%s: %w", step, err)
}

func hasPrimarySurvey(surveys []models.Survey) bool {
	for _, s := range surveys {
		if s.SurveyTemplateID == PrimarySurveyTemplateID {
			return true
		}
	}
	return false
}
