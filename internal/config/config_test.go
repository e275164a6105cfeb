package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMapboxToken = "pk.test-token"

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, DefaultFeedURL, cfg.FeedURL)
	assert.Equal(t, "week", cfg.FeedPeriod)
	assert.Equal(t, 4.5, cfg.FeedMinMagnitude)
	assert.Equal(t, 30*time.Second, cfg.FeedTimeout)
	assert.Equal(t, time.Duration(0), cfg.FeedRefreshInterval)
	assert.Equal(t, "en-US", cfg.DisplayLocale)
	assert.Equal(t, "UTC", cfg.DisplayLocation.String())
	assert.Equal(t, 6, cfg.MapFocusZoom)
	assert.Equal(t, DefaultTileURL, cfg.TileURL)
	assert.Contains(t, cfg.TileAttribution, "OpenStreetMap")
	assert.False(t, cfg.MapboxEnabled)
	assert.Empty(t, cfg.MapboxToken)
	assert.Equal(t, 5*time.Second, cfg.MapboxTimeout)
	assert.Equal(t, 1000, cfg.MapboxCacheSize)
	assert.False(t, cfg.KafkaEnabled)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "seismic-events", cfg.KafkaTopic)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("FEED_URL", "http://localhost:8081/query")
	t.Setenv("FEED_PERIOD", "month")
	t.Setenv("FEED_MIN_MAGNITUDE", "2.5")
	t.Setenv("FEED_TIMEOUT", "3s")
	t.Setenv("FEED_REFRESH_INTERVAL", "5m")
	t.Setenv("DISPLAY_LOCALE", "ru-RU")
	t.Setenv("DISPLAY_TIMEZONE", "Europe/Moscow")
	t.Setenv("MAP_FOCUS_ZOOM", "8")
	t.Setenv("TILE_URL", "https://tiles.example/{z}/{x}/{y}.png")
	t.Setenv("TILE_ATTRIBUTION", "example")
	t.Setenv("MAPBOX_TOKEN", testMapboxToken)
	t.Setenv("MAPBOX_TIMEOUT", "10s")
	t.Setenv("MAPBOX_CACHE_SIZE", "500")
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("KAFKA_TOPIC", "quakes")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "http://localhost:8081/query", cfg.FeedURL)
	assert.Equal(t, "month", cfg.FeedPeriod)
	assert.Equal(t, 2.5, cfg.FeedMinMagnitude)
	assert.Equal(t, 3*time.Second, cfg.FeedTimeout)
	assert.Equal(t, 5*time.Minute, cfg.FeedRefreshInterval)
	assert.Equal(t, "ru-RU", cfg.DisplayLocale)
	assert.Equal(t, "Europe/Moscow", cfg.DisplayLocation.String())
	assert.Equal(t, 8, cfg.MapFocusZoom)
	assert.Equal(t, "https://tiles.example/{z}/{x}/{y}.png", cfg.TileURL)
	assert.Equal(t, "example", cfg.TileAttribution)
	assert.True(t, cfg.MapboxEnabled)
	assert.Equal(t, testMapboxToken, cfg.MapboxToken)
	assert.Equal(t, 10*time.Second, cfg.MapboxTimeout)
	assert.Equal(t, 500, cfg.MapboxCacheSize)
	assert.True(t, cfg.KafkaEnabled)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "quakes", cfg.KafkaTopic)
}

func TestLoad_UnknownPeriodIsAccepted(t *testing.T) {
	t.Setenv("FEED_PERIOD", "year")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "year", cfg.FeedPeriod)
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"FEED_TIMEOUT", "bad"},
		{"FEED_TIMEOUT", "0s"},
		{"FEED_REFRESH_INTERVAL", "soon"},
		{"FEED_REFRESH_INTERVAL", "-1m"},
		{"FEED_MIN_MAGNITUDE", "big"},
		{"MAP_FOCUS_ZOOM", "0"},
		{"MAP_FOCUS_ZOOM", "zoom"},
		{"MAP_FOCUS_ZOOM", "25"},
		{"DISPLAY_TIMEZONE", "Mars/Olympus_Mons"},
		{"MAPBOX_TIMEOUT", "bad"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}

func TestLoad_MapboxEnabledWithoutToken(t *testing.T) {
	t.Setenv("MAPBOX_ENABLED", "true")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MAPBOX_TOKEN")
}

func TestLoad_MapboxTokenImpliesEnabled(t *testing.T) {
	t.Setenv("MAPBOX_TOKEN", testMapboxToken)
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.MapboxEnabled)
}

func TestLoad_MapboxExplicitlyDisabled(t *testing.T) {
	t.Setenv("MAPBOX_TOKEN", testMapboxToken)
	t.Setenv("MAPBOX_ENABLED", "false")
	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.MapboxEnabled)
}

func TestLoad_InvalidMapboxCacheSizeFallsBack(t *testing.T) {
	t.Setenv("MAPBOX_CACHE_SIZE", "-3")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 1000, cfg.MapboxCacheSize)
}
