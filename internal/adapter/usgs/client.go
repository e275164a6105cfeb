// Package usgs fetches earthquake features from the USGS FDSN event service.
package usgs

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/couchcryptid/seismic-map-service/internal/domain"
	"github.com/couchcryptid/seismic-map-service/internal/observability"
)

// maxErrorBody bounds how much of a failed response is kept for the error message.
const maxErrorBody = 512

// Client queries the FDSN event endpoint for GeoJSON features.
type Client struct {
	baseURL      string
	minMagnitude float64
	httpClient   *http.Client
	logger       *slog.Logger
	metrics      *observability.Metrics
}

// NewClient creates a feed client for the query endpoint at baseURL.
func NewClient(baseURL string, minMagnitude float64, timeout time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		baseURL:      baseURL,
		minMagnitude: minMagnitude,
		httpClient:   &http.Client{Timeout: timeout},
		logger:       logger,
		metrics:      metrics,
	}
}

// QueryURL returns the request URL for events starting at startDate (YYYY-MM-DD).
func (c *Client) QueryURL(startDate string) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("parse feed url: %w", err)
	}
	q := u.Query()
	q.Set("format", "geojson")
	q.Set("starttime", startDate)
	q.Set("minmagnitude", strconv.FormatFloat(c.minMagnitude, 'f', -1, 64))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// FetchFeatures requests the events since startDate and returns the raw
// features in feed order. Every failure wraps domain.ErrFeedUnavailable.
func (c *Client) FetchFeatures(ctx context.Context, startDate string) ([]json.RawMessage, error) {
	start := time.Now()
	defer func() {
		c.metrics.FeedFetchDuration.Observe(time.Since(start).Seconds())
	}()

	fullURL, err := c.QueryURL(startDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrFeedUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %w", domain.ErrFeedUnavailable, err)
	}
	req.Header.Set("Accept", "application/geo+json, application/json")

	c.logger.Debug("fetching feed", "url", fullURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: request: %w", domain.ErrFeedUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("%w: status %d: %s", domain.ErrFeedUnavailable, resp.StatusCode, body)
	}

	var collection featureCollection
	if err := json.NewDecoder(resp.Body).Decode(&collection); err != nil {
		return nil, fmt.Errorf("%w: decode response: %w", domain.ErrFeedUnavailable, err)
	}
	if collection.Features == nil {
		return nil, fmt.Errorf("%w: response has no features array", domain.ErrFeedUnavailable)
	}

	return collection.Features, nil
}

// featureCollection is the GeoJSON envelope. Features stay raw so each one
// can be normalized (or rejected) on its own.
type featureCollection struct {
	Features []json.RawMessage `json:"features"`
}
