// Package holidaze implements the typed client for the Holidaze REST API.
//
// # Layering
//
// The raw HTTP concerns (credentials, rate limiting, error normalization)
// live in the api package. This package adds one method per consumed
// endpoint, decoding the API's {data} envelope into models types.
//
// # Remote interface
//
// Workflows and the TUI depend on [Remote] rather than [Client] so tests
// can substitute a recording double (internal/testing.MockRemote).
//
// # Auth levels
//
// Public reads (venue list/detail) carry no credentials. API-key
// provisioning needs only the bearer token, since it runs before a key
// exists. Everything else sends both the bearer token and the
// X-Noroff-API-Key header and fails locally when either is missing.
package holidaze
