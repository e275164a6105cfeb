package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Defaults for the USGS feed query.
const (
	DefaultFeedURL         = "https://earthquake.usgs.gov/fdsnws/event/1/query"
	DefaultFeedPeriod      = "week"
	DefaultMinMagnitude    = 4.5
	DefaultTileURL         = "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png"
	DefaultTileAttribution = `&copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a> contributors`
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Feed query configuration.
	FeedURL             string
	FeedPeriod          string
	FeedMinMagnitude    float64
	FeedTimeout         time.Duration
	FeedRefreshInterval time.Duration

	// Display configuration.
	DisplayLocale   string
	DisplayLocation *time.Location
	MapFocusZoom    int
	TileURL         string
	TileAttribution string

	// Mapbox reverse geocoding configuration.
	MapboxToken     string
	MapboxEnabled   bool
	MapboxTimeout   time.Duration
	MapboxCacheSize int

	// Kafka publishing configuration.
	KafkaEnabled bool
	KafkaBrokers []string
	KafkaTopic   string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	feedTimeout, err := parsePositiveDuration("FEED_TIMEOUT", "30s")
	if err != nil {
		return nil, err
	}

	refreshInterval, err := parseDuration("FEED_REFRESH_INTERVAL", "0s")
	if err != nil {
		return nil, err
	}
	if refreshInterval < 0 {
		return nil, errors.New("invalid FEED_REFRESH_INTERVAL: must not be negative")
	}

	mapboxTimeout, err := parsePositiveDuration("MAPBOX_TIMEOUT", "5s")
	if err != nil {
		return nil, err
	}

	minMagnitude, err := parseMinMagnitude()
	if err != nil {
		return nil, err
	}

	focusZoom, err := parseFocusZoom()
	if err != nil {
		return nil, err
	}

	tzName := sharedcfg.EnvOrDefault("DISPLAY_TIMEZONE", "UTC")
	displayLoc, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, fmt.Errorf("invalid DISPLAY_TIMEZONE %q: %w", tzName, err)
	}

	mapboxToken := os.Getenv("MAPBOX_TOKEN")
	mapboxEnabled := mapboxToken != ""
	if v := os.Getenv("MAPBOX_ENABLED"); v != "" {
		mapboxEnabled = v == "true"
	}

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		FeedURL:             sharedcfg.EnvOrDefault("FEED_URL", DefaultFeedURL),
		FeedPeriod:          sharedcfg.EnvOrDefault("FEED_PERIOD", DefaultFeedPeriod),
		FeedMinMagnitude:    minMagnitude,
		FeedTimeout:         feedTimeout,
		FeedRefreshInterval: refreshInterval,

		DisplayLocale:   sharedcfg.EnvOrDefault("DISPLAY_LOCALE", "en-US"),
		DisplayLocation: displayLoc,
		MapFocusZoom:    focusZoom,
		TileURL:         sharedcfg.EnvOrDefault("TILE_URL", DefaultTileURL),
		TileAttribution: sharedcfg.EnvOrDefault("TILE_ATTRIBUTION", DefaultTileAttribution),

		MapboxToken:     mapboxToken,
		MapboxEnabled:   mapboxEnabled,
		MapboxTimeout:   mapboxTimeout,
		MapboxCacheSize: parseMapboxCacheSize(),

		KafkaEnabled: os.Getenv("KAFKA_ENABLED") == "true",
		KafkaBrokers: sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaTopic:   sharedcfg.EnvOrDefault("KAFKA_TOPIC", "seismic-events"),
	}

	if cfg.FeedURL == "" {
		return nil, errors.New("FEED_URL is required")
	}
	if cfg.MapboxEnabled && cfg.MapboxToken == "" {
		return nil, errors.New("MAPBOX_ENABLED is true but MAPBOX_TOKEN is not set")
	}
	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is empty")
	}
	if cfg.KafkaEnabled && cfg.KafkaTopic == "" {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_TOPIC is empty")
	}

	return cfg, nil
}

func parseDuration(key, def string) (time.Duration, error) {
	s := sharedcfg.EnvOrDefault(key, def)
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func parsePositiveDuration(key, def string) (time.Duration, error) {
	d, err := parseDuration(key, def)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s: must be positive", key)
	}
	return d, nil
}

func parseMinMagnitude() (float64, error) {
	s := os.Getenv("FEED_MIN_MAGNITUDE")
	if s == "" {
		return DefaultMinMagnitude, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid FEED_MIN_MAGNITUDE: %w", err)
	}
	return v, nil
}

func parseFocusZoom() (int, error) {
	s := os.Getenv("MAP_FOCUS_ZOOM")
	if s == "" {
		return 6, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > 19 {
		return 0, errors.New("invalid MAP_FOCUS_ZOOM: must be an integer between 1 and 19")
	}
	return n, nil
}

func parseMapboxCacheSize() int {
	if s := os.Getenv("MAPBOX_CACHE_SIZE"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return 1000
}
