package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/isoweather/internal/report"
)

const defaultBroker = "localhost:9092"

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Empty(t, cfg.WeatherFile)
	assert.Equal(t, Stdout, cfg.ReportPath)
	assert.Equal(t, report.FormatText, cfg.ReportFormat)
	assert.InDelta(t, 0.2, cfg.GroundReflectance, 0)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.False(t, cfg.KafkaEnabled)
	assert.Equal(t, []string{defaultBroker}, cfg.KafkaBrokers)
	assert.Equal(t, "iso-weather-reports", cfg.KafkaReportTopic)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("WEATHER_FILE", "/data/denver.epw")
	t.Setenv("REPORT_PATH", "/out/denver.json")
	t.Setenv("REPORT_FORMAT", "json")
	t.Setenv("GROUND_REFLECTANCE", "0.35")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("KAFKA_REPORT_TOPIC", "custom-reports")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/data/denver.epw", cfg.WeatherFile)
	assert.Equal(t, "/out/denver.json", cfg.ReportPath)
	assert.Equal(t, report.FormatJSON, cfg.ReportFormat)
	assert.InDelta(t, 0.35, cfg.GroundReflectance, 1e-12)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.True(t, cfg.KafkaEnabled)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "custom-reports", cfg.KafkaReportTopic)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
		msg  string
	}{
		{"shutdown timeout not a duration", "SHUTDOWN_TIMEOUT", "not-a-duration", "SHUTDOWN_TIMEOUT"},
		{"negative shutdown timeout", "SHUTDOWN_TIMEOUT", "-1s", "SHUTDOWN_TIMEOUT"},
		{"unknown report format", "REPORT_FORMAT", "xml", "REPORT_FORMAT"},
		{"reflectance not a number", "GROUND_REFLECTANCE", "bright", "GROUND_REFLECTANCE"},
		{"reflectance above one", "GROUND_REFLECTANCE", "1.2", "GROUND_REFLECTANCE"},
		{"negative reflectance", "GROUND_REFLECTANCE", "-0.1", "GROUND_REFLECTANCE"},
		{"kafka enabled not a bool", "KAFKA_ENABLED", "maybe", "KAFKA_ENABLED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestValidate(t *testing.T) {
	t.Setenv("WEATHER_FILE", "")
	cfg, err := Load()
	require.NoError(t, err)

	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WEATHER_FILE")

	cfg.WeatherFile = "denver.epw"
	require.NoError(t, cfg.Validate())

	cfg.GroundReflectance = 2
	require.Error(t, cfg.Validate())
}
