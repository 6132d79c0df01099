// package api implements the raw HTTP gateway to the Holidaze REST API.
//
// The gateway attaches session credentials, normalizes error responses
// into typed errors, and never retries. Workflows decide whether to retry
// or surface the failure.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/solvberg/holidaze/internal/models"
	"golang.org/x/time/rate"
)

// DefaultBaseURL is the production Holidaze API host.
const DefaultBaseURL = "https://v2.api.noroff.dev"

const apiKeyHeader = "X-Noroff-API-Key"

// AuthLevel selects which credentials a request requires.
type AuthLevel int

const (
	// Public requests carry no credentials.
	Public AuthLevel = iota
	// Bearer requests require the access token. Used only for API-key
	// provisioning, which by definition runs before a key exists.
	Bearer
	// BearerAndKey requests require both the access token and the API
	// key. Every other authenticated endpoint uses this level.
	BearerAndKey
)

// SessionSource provides the credentials attached to authenticated
// requests. Satisfied by *session.Store.
type SessionSource interface {
	Get() models.Session
}

// Client issues requests against the Holidaze API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    SessionSource
	limiter    *rate.Limiter
}

// NewClient creates a gateway client. An empty baseURL falls back to
// [DefaultBaseURL], a nil httpClient to [http.DefaultClient]. rps bounds
// the client-side request rate; zero or negative disables limiting.
func NewClient(baseURL string, httpClient *http.Client, session SessionSource, rps float64) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	var limiter *rate.Limiter
	if rps > 0 {
		limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		session:    session,
		limiter:    limiter,
	}
}

// errorPayload covers the two error shapes the API produces.
type errorPayload struct {
	Message string `json:"message"`
	Errors  []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// Request performs a single call and returns the raw response body on 2xx.
//
// A request at an auth level the session cannot satisfy fails immediately
// with [*AuthRequiredError] and no network side effect. Non-2xx responses
// become [*Error]; transport failures become [*NetworkError].
func (c *Client) Request(ctx context.Context, method, path string, body any, level AuthLevel) ([]byte, error) {
	var sess models.Session
	if level != Public {
		sess = c.session.Get()
		if sess.Token == "" {
			return nil, &AuthRequiredError{Reason: "no access token"}
		}
		if level == BearerAndKey && sess.APIKey == "" {
			return nil, &AuthRequiredError{Reason: "no API key"}
		}
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if level != Public {
		req.Header.Set("Authorization", "Bearer "+sess.Token)
		if sess.APIKey != "" {
			req.Header.Set(apiKeyHeader, sess.APIKey)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &Error{Status: resp.StatusCode, Message: errorMessage(respBody, resp.StatusCode)}
	}

	return respBody, nil
}

// errorMessage extracts the server's error text from a failure payload,
// preferring the errors array, then the top-level message, then a generic
// fallback.
func errorMessage(body []byte, status int) string {
	var payload errorPayload
	if err := json.Unmarshal(body, &payload); err == nil {
		if len(payload.Errors) > 0 && payload.Errors[0].Message != "" {
			return payload.Errors[0].Message
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	return fmt.Sprintf("request failed with status %d", status)
}
