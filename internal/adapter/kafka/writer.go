// Package kafka publishes loaded seismic events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/seismic-map-service/internal/config"
	"github.com/couchcryptid/seismic-map-service/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Writer produces event messages to a Kafka topic.
// It implements feed.Publisher.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
		BatchTimeout: 50 * time.Millisecond,
	}
	return &Writer{writer: w, logger: logger}
}

// PublishBatch serializes records and writes them in a single WriteMessages
// call. Messages are keyed by event id, so repeated loads of the same event
// land on the same partition.
func (w *Writer) PublishBatch(ctx context.Context, records []domain.EventRecord) error {
	if len(records) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(records))
	for i := range records {
		msg, err := serializeToMessage(records[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("write %d messages: %w", len(msgs), err)
	}
	w.logger.Debug("events published", "count", len(msgs), "topic", w.writer.Topic)
	return nil
}

// Close flushes pending messages and closes the producer.
func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals an EventRecord into a Kafka message.
func serializeToMessage(rec domain.EventRecord) (kafkago.Message, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize event %s: %w", rec.ID, err)
	}

	headers := []kafkago.Header{
		{Key: "severity", Value: []byte(domain.Classify(rec.Magnitude).Tier)},
	}
	if !rec.OccurredAt.IsZero() {
		headers = append(headers, kafkago.Header{Key: "occurred_at", Value: []byte(rec.OccurredAt.UTC().Format(time.RFC3339))})
	}

	return kafkago.Message{
		Key:     []byte(rec.ID),
		Value:   data,
		Headers: headers,
	}, nil
}
