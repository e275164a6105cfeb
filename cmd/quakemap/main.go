// Command quakemap serves a map of recent earthquakes from the USGS feed
// alongside a synchronized list.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata" // DISPLAY_TIMEZONE must resolve in minimal containers

	httpadapter "github.com/couchcryptid/seismic-map-service/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/seismic-map-service/internal/adapter/kafka"
	"github.com/couchcryptid/seismic-map-service/internal/adapter/mapbox"
	"github.com/couchcryptid/seismic-map-service/internal/adapter/scene"
	"github.com/couchcryptid/seismic-map-service/internal/adapter/usgs"
	"github.com/couchcryptid/seismic-map-service/internal/config"
	"github.com/couchcryptid/seismic-map-service/internal/domain"
	"github.com/couchcryptid/seismic-map-service/internal/feed"
	"github.com/couchcryptid/seismic-map-service/internal/observability"
	"github.com/couchcryptid/seismic-map-service/internal/view"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	// Place enrichment (feature-flagged via MAPBOX_ENABLED / MAPBOX_TOKEN).
	var geocoder domain.Geocoder
	if cfg.MapboxEnabled {
		client := mapbox.NewClient(cfg.MapboxToken, cfg.MapboxTimeout, logger, metrics)
		geocoder = mapbox.NewCachedGeocoder(client, cfg.MapboxCacheSize, metrics)
		metrics.GeocodeEnabled.Set(1)
		logger.Info("mapbox geocoding enabled", "cache_size", cfg.MapboxCacheSize, "timeout", cfg.MapboxTimeout)
	} else {
		logger.Info("mapbox geocoding disabled")
	}

	// Event publishing (feature-flagged via KAFKA_ENABLED).
	var publisher feed.Publisher
	var writer *kafkaadapter.Writer
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		publisher = writer
		logger.Info("kafka publishing enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	}

	sc := scene.New(scene.TileLayer{URLTemplate: cfg.TileURL, Attribution: cfg.TileAttribution})
	formatter := domain.NewFormatter(cfg.DisplayLocale, cfg.DisplayLocation)
	views := view.NewSynchronizer(sc.Map, sc.List, formatter, cfg.MapFocusZoom, logger, metrics)

	client := usgs.NewClient(cfg.FeedURL, cfg.FeedMinMagnitude, cfg.FeedTimeout, logger, metrics)
	loader := feed.New(client, views, geocoder, publisher, domain.ParsePeriod(cfg.FeedPeriod), logger, metrics)

	srv := httpadapter.NewServer(cfg.HTTPAddr, sc, views, loader, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	// Initial load, then periodic refresh when FEED_REFRESH_INTERVAL is set.
	go loader.Run(ctx, cfg.FeedRefreshInterval)

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
