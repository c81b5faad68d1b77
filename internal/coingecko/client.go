package coingecko

import (
	"context"       // Cancellable fetches
	"encoding/json" // Response decoding
	"fmt"           // Error wrapping
	"io"            // Response body reads
	"net/http"      // HTTP client
	"strconv"       // Page number formatting
	"time"          // Timeouts and retry waits

	"cryptomarket/internal/domain"  // Cached snapshot shape
	"cryptomarket/internal/metrics" // Request counters

	"github.com/sirupsen/logrus" // Logging library
	"golang.org/x/time/rate"     // Client-side request rate limit
)

// Defaults for the markets endpoint
const (
	defaultPerPage    = 250
	defaultRetryWait  = 60 * time.Second
	defaultMaxRetries = 5
	requestTimeout    = 30 * time.Second
)

// Options configures the CoinGecko client
type Options struct {
	BaseURL    string        // API base, e.g. https://api.coingecko.com/api/v3
	APIKey     string        // Demo API key sent on every request
	VsCurrency string        // Quote currency for prices
	PerPage    int           // Page size; defaults to 250
	RetryWait  time.Duration // Base wait before retrying a failed page
	MaxRetries int           // Attempts per page before giving up
	Limiter    *rate.Limiter // Request rate limit; defaults to 30 req/min
}

// Client fetches the full market snapshot from CoinGecko, one page at a time
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	vsCurrency string
	perPage    int
	retryWait  time.Duration
	maxRetries int
	limiter    *rate.Limiter
}

// NewClient creates a client with the given options, filling in defaults
func NewClient(opts Options) *Client {
	if opts.PerPage <= 0 {
		opts.PerPage = defaultPerPage
	}
	if opts.RetryWait <= 0 {
		opts.RetryWait = defaultRetryWait
	}
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = defaultMaxRetries
	}
	if opts.Limiter == nil {
		// The demo tier allows around 30 calls per minute
		opts.Limiter = rate.NewLimiter(rate.Every(2*time.Second), 1)
	}
	return &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
		baseURL:    opts.BaseURL,
		apiKey:     opts.APIKey,
		vsCurrency: opts.VsCurrency,
		perPage:    opts.PerPage,
		retryWait:  opts.RetryWait,
		maxRetries: opts.MaxRetries,
		limiter:    opts.Limiter,
	}
}

// FetchMarkets returns the full current snapshot across all pages. Pagination
// stops at the first empty page; a page that keeps failing past the retry
// budget fails the whole fetch so a partial snapshot never replaces the cache.
func (c *Client) FetchMarkets(ctx context.Context) ([]domain.CryptoCurrency, error) {
	var all []domain.CryptoCurrency
	for page := 1; ; page++ {
		records, err := c.fetchPage(ctx, page)
		if err != nil {
			return nil, fmt.Errorf("fetching page %d: %w", page, err)
		}
		if len(records) == 0 {
			break // Provider exhausted
		}
		for _, rec := range records {
			all = append(all, rec.toDomain())
		}
	}
	logrus.WithFields(logrus.Fields{
		"cryptos": len(all),
	}).Info("Fetched market snapshot")
	return all, nil
}

// fetchPage requests one page, retrying the same page with exponentially
// growing waits up to the retry budget
func (c *Client) fetchPage(ctx context.Context, page int) ([]marketRecord, error) {
	var lastErr error
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		if attempt > 1 {
			wait := c.retryWait << (attempt - 2) // 1x, 2x, 4x, ...
			logrus.WithFields(logrus.Fields{
				"page":    page,
				"attempt": attempt,
				"wait":    wait.String(),
				"error":   lastErr.Error(),
			}).Warn("Retrying CoinGecko page")
			metrics.CoingeckoRetriesTotal.Inc()
			if err := sleepCtx(ctx, wait); err != nil {
				return nil, err
			}
		}
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		records, err := c.doRequest(ctx, page)
		if err == nil {
			metrics.CoingeckoRequestsTotal.WithLabelValues(metrics.StatusSuccess).Inc()
			return records, nil
		}
		metrics.CoingeckoRequestsTotal.WithLabelValues(metrics.StatusError).Inc()
		lastErr = err
	}
	return nil, fmt.Errorf("page failed after %d attempts: %w", c.maxRetries, lastErr)
}

// doRequest performs a single markets request
func (c *Client) doRequest(ctx context.Context, page int) ([]marketRecord, error) {
	url := c.baseURL + "/coins/markets" +
		"?vs_currency=" + c.vsCurrency +
		"&price_change_percentage=7d" +
		"&per_page=" + strconv.Itoa(c.perPage) +
		"&page=" + strconv.Itoa(page)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	if c.apiKey != "" {
		req.Header.Set("x-cg-demo-api-key", c.apiKey)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}
	var records []marketRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	return records, nil
}

// sleepCtx waits for the duration unless the context is cancelled first
func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
