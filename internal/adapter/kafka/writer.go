package kafka

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/isoweather/internal/config"
	"github.com/couchcryptid/isoweather/internal/report"
)

// Writer publishes report documents to a Kafka topic.
// It implements pipeline.Loader.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured report topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaReportTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// Load serializes doc as JSON and publishes it keyed by station, so reports for
// the same station land on the same partition.
func (w *Writer) Load(ctx context.Context, doc report.Document) error {
	msg, err := serializeToMessage(doc)
	if err != nil {
		return err
	}
	if err := w.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish report: %w", err)
	}
	w.logger.Debug("report published", "topic", w.writer.Topic, "key", string(msg.Key), "bytes", len(msg.Value))
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a report document into a Kafka message.
func serializeToMessage(doc report.Document) (kafkago.Message, error) {
	data, err := report.MarshalJSON(doc)
	if err != nil {
		return kafkago.Message{}, err
	}
	stationID := doc.Report.Header().StationID
	return kafkago.Message{
		Key:   []byte(stationID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "station_id", Value: []byte(stationID)},
			{Key: "generated_at", Value: []byte(doc.GeneratedAt.UTC().Format(time.RFC3339))},
		},
	}, nil
}
