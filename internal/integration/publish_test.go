//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/couchcryptid/seismic-map-service/internal/adapter/kafka"
	"github.com/couchcryptid/seismic-map-service/internal/adapter/scene"
	"github.com/couchcryptid/seismic-map-service/internal/adapter/usgs"
	"github.com/couchcryptid/seismic-map-service/internal/config"
	"github.com/couchcryptid/seismic-map-service/internal/domain"
	"github.com/couchcryptid/seismic-map-service/internal/feed"
	"github.com/couchcryptid/seismic-map-service/internal/observability"
	"github.com/couchcryptid/seismic-map-service/internal/view"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTopic = "test-seismic-events"

const feedBody = `{"type":"FeatureCollection","features":[
  {"id":"us7000m1","geometry":{"coordinates":[142.37,38.29,29.5]},"properties":{"mag":6.1,"place":"90 km E of Ishinomaki, Japan","time":1710460800000}},
  {"id":"us7000m2","geometry":{"coordinates":[-70.6,-33.5,10]},"properties":{"mag":4.7,"place":"Chile","time":1710464400000}},
  {"id":"broken","geometry":{"coordinates":[1]},"properties":{"mag":5.5}},
  {"id":"us7000m3","geometry":{"coordinates":[28.1,36.2]},"properties":{"mag":5.0,"place":null,"time":1710468000000}}
]}`

type publishedMessage struct {
	Record  domain.EventRecord
	Key     string
	Headers map[string]string
}

func readPublished(ctx context.Context, t *testing.T, consumer *kafkago.Reader) publishedMessage {
	t.Helper()
	readCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	msg, err := consumer.ReadMessage(readCtx)
	require.NoError(t, err, "read from topic")

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	var rec domain.EventRecord
	require.NoError(t, json.Unmarshal(msg.Value, &rec))
	return publishedMessage{Record: rec, Key: string(msg.Key), Headers: headers}
}

// TestLoadPublishesToKafka runs a full load against a stub feed and a real
// broker: valid features are rendered and published, the malformed one is
// skipped in both places.
func TestLoadPublishesToKafka(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testTopic)

	feedSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, feedBody)
	}))
	t.Cleanup(feedSrv.Close)

	cfg := &config.Config{KafkaBrokers: []string{broker}, KafkaTopic: testTopic}
	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	metrics := observability.NewMetricsForTesting()
	sc := scene.New(scene.TileLayer{})
	views := view.NewSynchronizer(sc.Map, sc.List, domain.NewFormatter("en-US", time.UTC), 0, discardLogger(), metrics)
	client := usgs.NewClient(feedSrv.URL, 4.5, 10*time.Second, discardLogger(), metrics)
	loader := feed.New(client, views, nil, writer, domain.PeriodWeek, discardLogger(), metrics)

	res := loader.Load(ctx)
	require.NoError(t, res.Err)
	assert.Equal(t, 3, res.Rendered)
	assert.Equal(t, 1, res.Skipped)
	assert.Len(t, sc.State().List.Rows, 3)

	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       testTopic,
		GroupID:     fmt.Sprintf("test-consumer-%d", time.Now().UnixNano()),
		StartOffset: kafkago.FirstOffset,
	})
	t.Cleanup(func() { _ = consumer.Close() })

	got := map[string]publishedMessage{}
	for len(got) < 3 {
		pm := readPublished(ctx, t, consumer)
		got[pm.Key] = pm
	}

	require.Contains(t, got, "us7000m1")
	m1 := got["us7000m1"]
	assert.Equal(t, "high", m1.Headers["severity"])
	assert.Equal(t, "2024-03-15T00:00:00Z", m1.Headers["occurred_at"])
	assert.Equal(t, "90 km E of Ishinomaki, Japan", m1.Record.Place)
	require.NotNil(t, m1.Record.Coordinates.Depth)
	assert.Equal(t, 29.5, *m1.Record.Coordinates.Depth)

	require.Contains(t, got, "us7000m3")
	assert.Equal(t, "medium", got["us7000m3"].Headers["severity"])
	assert.Equal(t, domain.UnknownPlace, got["us7000m3"].Record.Place)
	assert.Nil(t, got["us7000m3"].Record.Coordinates.Depth)

	assert.NotContains(t, got, "broken")

	readCtx, readCancel := context.WithTimeout(ctx, 5*time.Second)
	_, err := consumer.ReadMessage(readCtx)
	readCancel()
	assert.Error(t, err, "expected no further messages")
}
