package common

// AccessTokenHeaderName is the HTTP header carrying the bearer token on
// outbound private API requests.
const AccessTokenHeaderName = "Authorization"

// DefaultHelpEmail receives the pre-filled support mail from the error page.
const DefaultHelpEmail = "help@microsetta.edu"

// DefaultLanguageTag is sent as language_tag on every private API call.
const DefaultLanguageTag = "en-US"
