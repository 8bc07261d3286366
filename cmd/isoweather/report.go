package main

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/couchcryptid/isoweather/internal/observability"
	"github.com/couchcryptid/isoweather/internal/report"
)

func newReportCmd(a *app) *cobra.Command {
	var output, format string

	cmd := &cobra.Command{
		Use:   "report [weather-file]",
		Short: "Compute the climate report for one EPW file and write it once",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				a.cfg.WeatherFile = args[0]
			}
			if cmd.Flags().Changed("output") {
				a.cfg.ReportPath = output
			}
			if cmd.Flags().Changed("format") {
				f, err := report.ParseFormat(format)
				if err != nil {
					return fmt.Errorf("--format: %w", err)
				}
				a.cfg.ReportFormat = f
			}
			if err := a.cfg.Validate(); err != nil {
				return err
			}

			// One-shot runs are never scraped, so metrics stay off the default registry.
			metrics := observability.NewMetricsWith(prometheus.NewRegistry())
			p, closeSinks := a.buildPipeline(metrics, cmd.OutOrStdout())
			defer closeSinks()

			_, err := p.Run(cmd.Context())
			return err
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "-", "report destination, - for stdout (overrides REPORT_PATH)")
	cmd.Flags().StringVarP(&format, "format", "f", string(report.FormatText), "text, json or csv (overrides REPORT_FORMAT)")
	return cmd
}
