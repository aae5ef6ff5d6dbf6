// Package client is the portal's façade over the private REST API.
//
// Every call carries the session's bearer token (see WithAccessToken), merges
// the default query parameters with the caller's, and verifies TLS against
// the configured CA bundle. Responses are classified once: 401 and other
// 4xx/5xx statuses come back as *RerouteError, anything else is decoded
// as JSON. Nothing is retried.
package client
