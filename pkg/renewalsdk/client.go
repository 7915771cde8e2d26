package renewalsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

// ExchangeRateCacheWindow is how long the client reuses a fetched rate.
const ExchangeRateCacheWindow = 24 * time.Hour

// Client talks to the renewal HTTP API on behalf of one user.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	// Token is the hosted provider's access token, sent as a bearer token.
	Token string

	// OrganizationID selects the tenant; empty acts personally.
	OrganizationID string

	// Now is used for the exchange rate cache. Defaults to time.Now.
	Now func() time.Time

	rateMu        sync.Mutex
	rate          *ExchangeRate
	rateFetchedAt time.Time
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		Token: token,
	}
}

// WithOrganization returns a copy of the client scoped to orgID. The copy
// has its own exchange rate cache.
func (c *Client) WithOrganization(orgID string) *Client {
	return &Client{
		BaseURL:        c.BaseURL,
		HTTPClient:     c.HTTPClient,
		Token:          c.Token,
		OrganizationID: orgID,
		Now:            c.Now,
	}
}

func (c *Client) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

func (c *Client) url(path string) string {
	return c.BaseURL + path
}

// doRequest sends a request with the client's credentials. body is encoded
// as JSON when non-nil.
func (c *Client) doRequest(ctx context.Context, method, path string, body any, headers map[string]string) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	if c.OrganizationID != "" {
		req.Header.Set(OrganizationHeader, c.OrganizationID)
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	return resp, nil
}

// OrganizationHeader selects the tenant organization of a request.
const OrganizationHeader = "X-Organization-ID"

// decodeJSON decodes a response with the expected status into target and
// turns anything else into an *APIError.
func decodeJSON(resp *http.Response, target any, expectedStatus int) error {
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != expectedStatus {
		return parseErrorResponse(resp, bodyBytes)
	}
	if target == nil {
		return nil
	}
	if err := json.Unmarshal(bodyBytes, target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func checkStatusNoContent(resp *http.Response) error {
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return parseErrorResponse(resp, bodyBytes)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, target any) error {
	resp, err := c.doRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return err
	}
	return decodeJSON(resp, target, http.StatusOK)
}

func (c *Client) send(ctx context.Context, method, path string, body, target any, expectedStatus int) error {
	resp, err := c.doRequest(ctx, method, path, body, nil)
	if err != nil {
		return err
	}
	return decodeJSON(resp, target, expectedStatus)
}
