package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/joho/godotenv"

	"github.com/couchcryptid/isoweather/internal/report"
	"github.com/couchcryptid/isoweather/internal/solar"
)

// Stdout is the REPORT_PATH value that writes the report to standard output.
const Stdout = "-"

// Config holds all service settings, populated from environment variables.
type Config struct {
	WeatherFile       string
	ReportPath        string
	ReportFormat      report.Format
	GroundReflectance float64

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Kafka report publishing.
	KafkaEnabled     bool
	KafkaBrokers     []string
	KafkaReportTopic string
}

// Load reads configuration from environment variables, applying defaults where
// unset. Values from a .env file in the working directory are loaded first but
// never override variables already set.
func Load() (*Config, error) {
	_ = godotenv.Load()

	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	format, err := report.ParseFormat(sharedcfg.EnvOrDefault("REPORT_FORMAT", string(report.FormatText)))
	if err != nil {
		return nil, fmt.Errorf("invalid REPORT_FORMAT: %w", err)
	}

	rho, err := parseGroundReflectance()
	if err != nil {
		return nil, err
	}

	kafkaEnabled, err := parseBool("KAFKA_ENABLED", false)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		WeatherFile:       os.Getenv("WEATHER_FILE"),
		ReportPath:        sharedcfg.EnvOrDefault("REPORT_PATH", Stdout),
		ReportFormat:      format,
		GroundReflectance: rho,
		HTTPAddr:          sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:          sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:         sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout:   shutdownTimeout,
		KafkaEnabled:      kafkaEnabled,
		KafkaBrokers:      sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaReportTopic:  sharedcfg.EnvOrDefault("KAFKA_REPORT_TOPIC", "iso-weather-reports"),
	}

	if cfg.KafkaEnabled {
		if len(cfg.KafkaBrokers) == 0 {
			return nil, errors.New("KAFKA_BROKERS is required when KAFKA_ENABLED is true")
		}
		if cfg.KafkaReportTopic == "" {
			return nil, errors.New("KAFKA_REPORT_TOPIC is required when KAFKA_ENABLED is true")
		}
	}

	return cfg, nil
}

// Validate checks the settings a report run needs beyond what Load enforces.
func (c *Config) Validate() error {
	if c.WeatherFile == "" {
		return errors.New("WEATHER_FILE is required")
	}
	if c.GroundReflectance < 0 || c.GroundReflectance > 1 {
		return fmt.Errorf("GROUND_REFLECTANCE %v outside [0, 1]", c.GroundReflectance)
	}
	return nil
}

func parseGroundReflectance() (float64, error) {
	s := os.Getenv("GROUND_REFLECTANCE")
	if s == "" {
		return solar.DefaultGroundReflectance, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 || v > 1 {
		return 0, fmt.Errorf("invalid GROUND_REFLECTANCE %q: must be a number in [0, 1]", s)
	}
	return v, nil
}

func parseBool(key string, def bool) (bool, error) {
	s := strings.TrimSpace(os.Getenv(key))
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q", key, s)
	}
	return v, nil
}
