package workflow

import "net/url"

// Browser routes of the onboarding wizard.
const (
	RouteHome              = "/home"
	RouteWorkflow          = "/workflow"
	RouteCreateAccount     = "/workflow_create_account"
	RouteCreateHumanSource = "/workflow_create_human_source"
	RouteFillPrimarySurvey = "/workflow_fill_primary_survey"
	RouteClaimKitSamples   = "/workflow_claim_kit_samples"
)

// SourcePath is the page listing the samples of a source.
func SourcePath(accountID, sourceID string) string {
	return "/accounts/" + url.PathEscape(accountID) + "/sources/" + url.PathEscape(sourceID)
}

// Next returns where /workflow sends the browser for the snapshot's state.
// It returns "" for NeedsReroute, which the caller answers from s.Reroute.
func (s *Snapshot) Next() string {
	switch s.State {
	case NeedsLogin:
		return RouteHome
	case NeedsAccount:
		return RouteCreateAccount
	case NeedsHumanSource:
		return RouteCreateHumanSource
	case NeedsPrimarySurvey:
		return RouteFillPrimarySurvey
	case NeedsSample:
		return RouteClaimKitSamples
	case AllDone:
		return SourcePath(s.AccountID, s.HumanSourceID)
	default:
		return ""
	}
}
