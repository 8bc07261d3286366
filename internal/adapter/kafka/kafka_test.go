package kafka

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/isoweather/internal/calendar"
	"github.com/couchcryptid/isoweather/internal/config"
	"github.com/couchcryptid/isoweather/internal/report"
	"github.com/couchcryptid/isoweather/internal/solar"
	"github.com/couchcryptid/isoweather/internal/weather"
)

func testDocument(t *testing.T, generated time.Time) report.Document {
	t.Helper()
	channels := make(map[weather.Channel][]float64, weather.NumChannels)
	for c := weather.Channel(0); c < weather.NumChannels; c++ {
		channels[c] = make([]float64, weather.HoursPerYear)
	}
	h := weather.Header{Location: "Denver", StationID: "725650", Latitude: 39.8, Longitude: -104.7, TimeZone: -7}
	s, err := weather.NewSeries(h, channels)
	require.NoError(t, err)
	r, err := solar.Compute(s, calendar.Standard())
	require.NoError(t, err)
	return report.Document{
		Report:      r,
		Source:      report.Source{Path: "denver.epw", Rows: weather.HoursPerYear},
		GeneratedAt: generated,
	}
}

func TestSerializeToMessage(t *testing.T) {
	now := time.Date(2026, 4, 26, 15, 10, 0, 0, time.UTC)

	msg, err := serializeToMessage(testDocument(t, now))
	require.NoError(t, err)

	assert.Equal(t, []byte("725650"), msg.Key)
	require.Len(t, msg.Headers, 2)
	assert.Equal(t, "station_id", msg.Headers[0].Key)
	assert.Equal(t, []byte("725650"), msg.Headers[0].Value)
	assert.Equal(t, "generated_at", msg.Headers[1].Key)
	assert.Equal(t, []byte(now.Format(time.RFC3339)), msg.Headers[1].Value)

	var body report.JSONDocument
	require.NoError(t, json.Unmarshal(msg.Value, &body))
	assert.Equal(t, "Denver", body.Location.Location)
	assert.Equal(t, "denver.epw", body.Source.Path)
	assert.Len(t, body.Solar, calendar.Months)
}

func TestSerializeToMessage_GeneratedAtInUTC(t *testing.T) {
	denver := time.FixedZone("MST", -7*3600)
	local := time.Date(2026, 4, 26, 8, 10, 0, 0, denver)

	msg, err := serializeToMessage(testDocument(t, local))
	require.NoError(t, err)
	assert.Equal(t, "2026-04-26T15:10:00Z", string(msg.Headers[1].Value))
}

func TestNewWriter_UsesReportTopic(t *testing.T) {
	cfg := &config.Config{KafkaBrokers: []string{"broker:9092"}, KafkaReportTopic: "iso-weather-reports"}
	w := NewWriter(cfg, nil)
	t.Cleanup(func() { _ = w.Close() })

	assert.Equal(t, "iso-weather-reports", w.writer.Topic)
	assert.Equal(t, "broker:9092", w.writer.Addr.String())
}
