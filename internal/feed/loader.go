// Package feed loads the earthquake feed and hands the result to the views.
package feed

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/seismic-map-service/internal/domain"
	"github.com/couchcryptid/seismic-map-service/internal/observability"
	"github.com/jonboulle/clockwork"
)

// FailureMessage is the single list entry shown when the feed cannot be loaded.
const FailureMessage = "Failed to load earthquake data."

// Fetcher returns the raw features of events starting at startDate.
type Fetcher interface {
	FetchFeatures(ctx context.Context, startDate string) ([]json.RawMessage, error)
}

// Renderer draws a loaded batch, or the failure state.
type Renderer interface {
	RenderAll(records []domain.EventRecord) int
	RenderFailure(message string)
}

// Publisher forwards a loaded batch downstream.
type Publisher interface {
	PublishBatch(ctx context.Context, records []domain.EventRecord) error
}

// Result summarizes one load.
type Result struct {
	Start    string `json:"start"`
	Rendered int    `json:"rendered"`
	Skipped  int    `json:"skipped"`
	Err      error  `json:"-"`
}

// Loader runs fetch, normalize, enrich, render and publish for one time
// window. It is the only place feed errors are handled; nothing escapes Load.
type Loader struct {
	fetcher   Fetcher
	renderer  Renderer
	geocoder  domain.Geocoder
	publisher Publisher
	period    domain.Period
	logger    *slog.Logger
	metrics   *observability.Metrics
	clock     clockwork.Clock

	mu        sync.Mutex // one load at a time
	attempted atomic.Bool
}

// New creates a Loader. geocoder and publisher may be nil.
func New(fetcher Fetcher, renderer Renderer, geocoder domain.Geocoder, publisher Publisher, period domain.Period, logger *slog.Logger, metrics *observability.Metrics) *Loader {
	return &Loader{
		fetcher:   fetcher,
		renderer:  renderer,
		geocoder:  geocoder,
		publisher: publisher,
		period:    period,
		logger:    logger,
		metrics:   metrics,
		clock:     clockwork.NewRealClock(),
	}
}

// SetClock replaces the clock driving the refresh ticker. For use in tests.
func (l *Loader) SetClock(c clockwork.Clock) {
	l.clock = c
}

// Period returns the configured time window.
func (l *Loader) Period() domain.Period {
	return l.period
}

// Load runs one complete load. A concurrent call waits for the one in
// flight and then runs its own.
func (l *Loader) Load(ctx context.Context) Result {
	l.mu.Lock()
	defer l.mu.Unlock()
	defer l.attempted.Store(true)

	start := domain.ResolveStart(l.period)
	res := Result{Start: start}

	raws, err := l.fetcher.FetchFeatures(ctx, start)
	if err != nil {
		l.logger.Error("feed load failed", "error", err, "start", start, "period", string(l.period))
		l.renderer.RenderFailure(FailureMessage)
		l.metrics.FeedLoads.WithLabelValues("failure").Inc()
		res.Err = err
		return res
	}

	batch := domain.NormalizeBatch(raws)
	for _, rej := range batch.Rejected {
		l.logger.Warn("skipping malformed feature", "index", rej.Index, "event_id", rej.ID, "error", rej.Err)
	}
	l.metrics.RecordsSkipped.Add(float64(len(batch.Rejected)))
	res.Skipped = len(batch.Rejected)

	records := domain.ResolvePlaces(ctx, batch.Records, l.geocoder, l.logger)

	res.Rendered = l.renderer.RenderAll(records)
	l.metrics.FeedLoads.WithLabelValues("success").Inc()
	l.logger.Info("feed loaded",
		"start", start,
		"features", len(raws),
		"rendered", res.Rendered,
		"skipped", res.Skipped,
	)

	l.publish(ctx, records)
	return res
}

// publish forwards records to the publisher. Failures are logged and
// counted; the views are already drawn and stay as they are.
func (l *Loader) publish(ctx context.Context, records []domain.EventRecord) {
	if l.publisher == nil || len(records) == 0 {
		return
	}
	if err := l.publisher.PublishBatch(ctx, records); err != nil {
		l.logger.Error("publish failed", "error", err, "count", len(records))
		l.metrics.PublishErrors.Inc()
		return
	}
	l.metrics.EventsPublished.Add(float64(len(records)))
}

// Run loads once and then, when interval is positive, reloads on every tick
// until ctx is done.
func (l *Loader) Run(ctx context.Context, interval time.Duration) {
	l.Load(ctx)
	if interval <= 0 {
		return
	}

	l.logger.Info("feed refresh enabled", "interval", interval)
	ticker := l.clock.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			l.logger.Info("feed refresh stopping", "reason", ctx.Err())
			return
		case <-ticker.Chan():
			l.Load(ctx)
		}
	}
}

// CheckReadiness returns nil once the first load attempt has finished,
// whether it rendered events or the failure message.
func (l *Loader) CheckReadiness(_ context.Context) error {
	if !l.attempted.Load() {
		return errors.New("feed has not been loaded yet")
	}
	return nil
}
