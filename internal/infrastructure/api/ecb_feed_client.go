package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/damon-houk/ecb-currency-exchange/internal/infrastructure/logger"
)

// DefaultFeedURL is the ECB daily reference rate document
const DefaultFeedURL = "https://www.ecb.europa.eu/stats/eurofxref/eurofxref-daily.xml"

// maxFeedSize bounds the body read from upstream; the daily document is a few KB
const maxFeedSize = 4 << 20

// ECBFeedClient implements the FeedFetcher interface over HTTP
type ECBFeedClient struct {
	feedURL    string
	httpClient *http.Client
	logger     logger.Logger
}

// NewECBFeedClient creates a new ECB feed client
func NewECBFeedClient(feedURL string, httpClient *http.Client, log logger.Logger) *ECBFeedClient {
	if feedURL == "" {
		feedURL = DefaultFeedURL
	}

	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: 10 * time.Second,
		}
	}

	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &ECBFeedClient{
		feedURL:    feedURL,
		httpClient: httpClient,
		logger:     log,
	}
}

// FetchFeed downloads the feed document once. Retrying is left to the caller,
// which rate limits upstream calls.
func (c *ECBFeedClient) FetchFeed(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Add("Accept", "application/xml")

	c.logger.Debug("Fetching rate feed", map[string]interface{}{
		"url": c.feedURL,
	})

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}

	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.Warn("Error closing response body", map[string]interface{}{
				"error": closeErr.Error(),
			})
		}
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if len(body) > maxFeedSize {
		return nil, fmt.Errorf("feed document exceeds limit of %d bytes", maxFeedSize)
	}

	c.logger.Debug("Rate feed response received", map[string]interface{}{
		"status": resp.StatusCode,
		"bytes":  len(body),
	})

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed returned error status: %d, body: %s", resp.StatusCode, truncate(body, 256))
	}

	if len(body) == 0 {
		return nil, fmt.Errorf("feed returned an empty body")
	}

	return body, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
