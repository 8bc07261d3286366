//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"

	"github.com/couchcryptid/isoweather/internal/adapter/file"
	"github.com/couchcryptid/isoweather/internal/adapter/kafka"
	"github.com/couchcryptid/isoweather/internal/config"
	"github.com/couchcryptid/isoweather/internal/observability"
	"github.com/couchcryptid/isoweather/internal/pipeline"
	"github.com/couchcryptid/isoweather/internal/report"
	"github.com/couchcryptid/isoweather/internal/weather"
	"github.com/couchcryptid/isoweather/internal/weather/synth"
)

const testReportTopic = "test-iso-weather-reports"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// startKafka runs a single-node broker and returns its address.
func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()
	ctr, err := tckafka.Run(ctx, "confluentinc/confluent-local:7.5.0", tckafka.WithClusterID("isoweather-test"))
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err, "start kafka container")

	brokers, err := ctr.Brokers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, brokers)
	return brokers[0]
}

func createTopic(t *testing.T, broker, topic string) {
	t.Helper()
	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err)
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err)
	cconn, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err)
	defer cconn.Close()

	require.NoError(t, cconn.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}))
}

func writeWeatherFile(t *testing.T, h weather.Header) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "site.epw")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, synth.Write(f, synth.Options{Header: h}))
	require.NoError(t, f.Close())
	return path
}

// TestPipelinePublishesReport runs the full pipeline from an EPW file to the
// Kafka report topic and a local file, then reads the published message back.
func TestPipelinePublishesReport(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testReportTopic)

	site := weather.Header{Location: "Boulder", StationID: "724699", Latitude: 40.02, Longitude: -105.25, TimeZone: -7}
	epw := writeWeatherFile(t, site)
	textOut := filepath.Join(t.TempDir(), "boulder.txt")

	cfg := &config.Config{KafkaBrokers: []string{broker}, KafkaReportTopic: testReportTopic}
	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	p := pipeline.New(
		file.NewExtractor(epw, discardLogger()),
		pipeline.NewTransformer(nil, 0.2, discardLogger()),
		[]pipeline.Sink{
			{Name: "file", Loader: file.NewWriter(textOut, report.FormatText, nil)},
			{Name: "kafka", Loader: writer},
		},
		discardLogger(),
		observability.NewMetricsForTesting(),
	)

	doc, err := p.Run(ctx)
	require.NoError(t, err)

	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:   []string{broker},
		Topic:     testReportTopic,
		Partition: 0,
		MinBytes:  1,
		MaxBytes:  10e6,
	})
	t.Cleanup(func() { _ = consumer.Close() })

	readCtx, readCancel := context.WithTimeout(ctx, 30*time.Second)
	defer readCancel()
	msg, err := consumer.ReadMessage(readCtx)
	require.NoError(t, err, "read from report topic")

	assert.Equal(t, "724699", string(msg.Key))
	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	assert.Equal(t, "724699", headers["station_id"])
	assert.Equal(t, doc.GeneratedAt.Format(time.RFC3339), headers["generated_at"])

	var body report.JSONDocument
	require.NoError(t, json.Unmarshal(msg.Value, &body))
	assert.Equal(t, site, body.Location)
	assert.Equal(t, epw, body.Source.Path)
	assert.Equal(t, doc.Report.MonthlyDryBulbTemp(), body.Monthly.DryBulbTemp)

	text, err := os.ReadFile(textOut)
	require.NoError(t, err)
	assert.Contains(t, string(text), "solar\n")
}
