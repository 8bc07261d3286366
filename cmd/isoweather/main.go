// Command isoweather reduces an EPW weather year to the monthly and hourly
// climate summary used by ISO 13790 style building energy models.
//
// Usage:
//
//	isoweather report denver.epw                      # text report on stdout
//	isoweather report -f json -o denver.json denver.epw
//	isoweather serve --weather-file denver.epw        # HTTP + Kafka
//	isoweather validate denver.epw
package main

import (
	"log/slog"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}
