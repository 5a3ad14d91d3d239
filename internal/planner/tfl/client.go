// Package tfl provides the Transport for London API client used as the
// planner's journey gateway.
package tfl

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/multiplanner/multiplanner/internal/planner"
	"github.com/multiplanner/multiplanner/internal/provider/resilience"
)

const (
	// ProviderName identifies this transit provider.
	ProviderName = "tfl"

	// DefaultBaseURL is the TfL Unified API base URL.
	DefaultBaseURL = "https://api.tfl.gov.uk"
)

// ClientConfig holds configuration for the TfL client.
type ClientConfig struct {
	// AppKey is the TfL application key (required).
	AppKey string

	// BaseURL is the API base URL (optional, defaults to the TfL API).
	BaseURL string

	// HTTPClient is the HTTP client to use (optional).
	// If nil, uses a resilient client with defaults.
	HTTPClient *resilience.Client

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is a TfL Unified API client for stop-point search and journey
// planning. It returns raw decoded documents; interpretation is the
// planner's concern.
type Client struct {
	appKey     string
	baseURL    string
	httpClient *resilience.Client
	logger     zerolog.Logger
}

// NewClient creates a new TfL client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = resilience.NewClient(resilience.DefaultClientConfig(ProviderName))
	}

	return &Client{
		appKey:     cfg.AppKey,
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     cfg.Logger,
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

// SearchStopPoints queries StopPoint search by station name.
func (c *Client) SearchStopPoints(ctx context.Context, query string) (planner.Document, error) {
	endpoint := fmt.Sprintf("%s/StopPoint/Search/%s", c.baseURL, url.PathEscape(query))
	return c.get(ctx, "StopPoint search", endpoint, nil)
}

// JourneyResults fetches journey options between two stop identifiers.
func (c *Client) JourneyResults(ctx context.Context, fromID, toID, modesCSV string) (planner.Document, error) {
	endpoint := fmt.Sprintf("%s/Journey/JourneyResults/%s/to/%s",
		c.baseURL, url.PathEscape(fromID), url.PathEscape(toID))

	params := url.Values{}
	if modesCSV != "" {
		params.Set("mode", modesCSV)
	}

	return c.get(ctx, "JourneyResults", endpoint, params)
}

// get performs an authenticated GET and decodes the JSON body.
func (c *Client) get(ctx context.Context, op, endpoint string, params url.Values) (planner.Document, error) {
	if params == nil {
		params = url.Values{}
	}
	params.Set("app_key", c.appKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn().
			Str("op", op).
			Int("status", resp.StatusCode).
			Msg("tfl request failed")
		return nil, &StatusError{Op: op, StatusCode: resp.StatusCode}
	}

	var doc map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding %s response: %w", op, err)
	}

	return planner.Document(doc), nil
}

// StatusError reports a non-200 response from the TfL API.
type StatusError struct {
	Op         string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("tfl %s: unexpected status code %d", e.Op, e.StatusCode)
}
