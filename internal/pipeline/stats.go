package pipeline

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/ppiankov/tcase/internal/util"
)

// Stats is the out-of-band metadata of a PDF statement
type Stats struct {
	Title           string `json:"title"`
	TimeLimitMillis int    `json:"rtl"`
}

// MetadataLookup resolves problem metadata that is not part of the document
type MetadataLookup interface {
	Lookup(ctx context.Context, rawURL string) (*Stats, error)
}

// StatsClient queries the uHunt problem API
type StatsClient struct {
	client *resty.Client
}

// NewStatsClient creates a uHunt client sharing the fetcher's HTTP settings
func NewStatsClient(timeout time.Duration, userAgent string, httpProxy, httpsProxy string) *StatsClient {
	httpClient := &http.Client{
		Timeout:   timeout,
		Transport: &http.Transport{Proxy: util.NewProxyFunc(httpProxy, httpsProxy)},
	}

	client := resty.NewWithClient(httpClient).
		SetHeader("User-Agent", userAgent).
		SetHeader("Accept", "application/json")

	return &StatsClient{client: client}
}

// Lookup fetches title and time limit; an empty record counts as not found
func (c *StatsClient) Lookup(ctx context.Context, rawURL string) (*Stats, error) {
	var stats Stats
	resp, err := c.client.R().
		SetContext(ctx).
		SetResult(&stats).
		ForceContentType("application/json").
		Get(rawURL)
	if err != nil {
		return nil, &FetchError{URL: rawURL, Err: err}
	}
	if resp.IsError() {
		return nil, &FetchError{URL: rawURL, StatusCode: resp.StatusCode()}
	}

	if stats.Title == "" {
		return nil, &FetchError{URL: rawURL, Err: fmt.Errorf("empty metadata record: %w", ErrNotFound)}
	}

	return &stats, nil
}
