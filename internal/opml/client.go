package opml

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/mwren/radiola/internal/domain"
)

const (
	defaultTimeout = 15 * time.Second
	userAgent      = "radiola/1.0"

	// Directory documents are small; anything past this is not OPML.
	maxBodySize = 4 << 20
)

// Client fetches OPML documents over HTTP and parses them into listings
type Client struct {
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new OPML client
func NewClient(logger *slog.Logger) *Client {
	return NewClientWithHTTP(&http.Client{Timeout: defaultTimeout}, logger)
}

// NewClientWithHTTP creates an OPML client with a caller-supplied HTTP
// client, mainly so tests can point it at a TLS test server.
func NewClientWithHTTP(hc *http.Client, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{httpClient: hc, logger: logger}
}

// Fetch retrieves and parses the OPML document at url. Transport failures
// and non-2xx responses come back as *domain.FetchError, malformed documents
// as *domain.ParseError.
func (c *Client) Fetch(ctx context.Context, url string) (domain.Listing, error) {
	url = UpgradeURL(url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &domain.FetchError{URL: url, Err: err}
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &domain.FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &domain.FetchError{URL: url, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, &domain.FetchError{URL: url, Err: err}
	}

	listing, err := Parse(body)
	if err != nil {
		return nil, &domain.ParseError{URL: url, Err: err}
	}

	c.logger.Debug("fetched directory", "url", url, "nodes", len(listing))
	return listing, nil
}
