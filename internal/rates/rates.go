// Package rates fetches currency exchange rates for the dashboard. The
// upstream responds with {"result":"success","rates":{...}}; anything
// else is treated as an outage and surfaced to the caller.
package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"ledger/internal/cache"
)

const (
	DefaultBaseURL = "https://open.er-api.com/v6/latest"

	cacheSize = 8
	cacheTTL  = time.Hour
)

// Rates maps currency codes to their value in the base currency.
type Rates map[string]float64

type apiResponse struct {
	Result string  `json:"result"`
	Rates  Rates   `json:"rates"`
	Error  *string `json:"error-type,omitempty"`
}

// Client fetches and caches exchange rates for a base currency.
type Client struct {
	httpClient *http.Client
	baseURL    string
	cache      *cache.TTLCache[Rates]
}

// New creates a rates client. An empty baseURL selects the default
// upstream; a nil httpClient gets a 10 second timeout client.
func New(baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		cache:      cache.New[Rates](cacheSize, cacheTTL),
	}
}

// Latest returns the current rates for the base currency, served from
// cache when a fresh copy exists.
func (c *Client) Latest(ctx context.Context, baseCurrency string) (Rates, error) {
	base := strings.ToUpper(strings.TrimSpace(baseCurrency))
	if base == "" {
		return nil, fmt.Errorf("base currency is required")
	}

	if cached, ok := c.cache.Get(base); ok {
		return cached, nil
	}

	url := fmt.Sprintf("%s/%s", c.baseURL, base)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build rates request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch rates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch rates: upstream returned %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read rates response: %w", err)
	}

	var parsed apiResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode rates response: %w", err)
	}
	if parsed.Result != "success" {
		if parsed.Error != nil {
			return nil, fmt.Errorf("rates upstream error: %s", *parsed.Error)
		}
		return nil, fmt.Errorf("rates upstream result %q", parsed.Result)
	}
	if len(parsed.Rates) == 0 {
		return nil, fmt.Errorf("rates upstream returned no rates for %s", base)
	}

	c.cache.Set(base, parsed.Rates)
	return parsed.Rates, nil
}
