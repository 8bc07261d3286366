package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/isoweather/internal/adapter/file"
	kafkaadapter "github.com/couchcryptid/isoweather/internal/adapter/kafka"
	"github.com/couchcryptid/isoweather/internal/config"
	"github.com/couchcryptid/isoweather/internal/observability"
	"github.com/couchcryptid/isoweather/internal/pipeline"
	"github.com/couchcryptid/isoweather/internal/solar"
)

// app carries the configuration and logger shared by every subcommand.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	var (
		weatherFile string
		rho         float64
	)

	root := &cobra.Command{
		Use:           "isoweather",
		Short:         "Monthly and hourly climate summaries from EPW weather files",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			flags := cmd.Flags()
			if flags.Changed("weather-file") {
				cfg.WeatherFile = weatherFile
			}
			if flags.Changed("ground-reflectance") {
				cfg.GroundReflectance = rho
			}
			a.cfg = cfg
			a.logger = observability.NewLogger(cfg)
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&weatherFile, "weather-file", "w", "", "EPW weather file (overrides WEATHER_FILE)")
	pf.Float64Var(&rho, "ground-reflectance", solar.DefaultGroundReflectance, "ground albedo in [0, 1] (overrides GROUND_REFLECTANCE)")

	root.AddCommand(newReportCmd(a), newServeCmd(a), newValidateCmd(a))
	return root
}

// buildPipeline wires the file extractor, the solar transformer and the
// configured sinks. The returned func closes sinks that hold connections.
func (a *app) buildPipeline(metrics *observability.Metrics, stdout io.Writer) (*pipeline.Pipeline, func()) {
	sinks := []pipeline.Sink{
		{Name: "file", Loader: file.NewWriter(a.cfg.ReportPath, a.cfg.ReportFormat, stdout)},
	}

	closeSinks := func() {}
	if a.cfg.KafkaEnabled {
		w := kafkaadapter.NewWriter(a.cfg, a.logger)
		sinks = append(sinks, pipeline.Sink{Name: "kafka", Loader: w})
		closeSinks = func() {
			if err := w.Close(); err != nil {
				a.logger.Error("kafka writer close error", "error", err)
			}
		}
		a.logger.Info("kafka publishing enabled", "topic", a.cfg.KafkaReportTopic, "brokers", a.cfg.KafkaBrokers)
	}

	p := pipeline.New(
		file.NewExtractor(a.cfg.WeatherFile, a.logger),
		pipeline.NewTransformer(nil, a.cfg.GroundReflectance, a.logger),
		sinks,
		a.logger,
		metrics,
	)
	return p, closeSinks
}
