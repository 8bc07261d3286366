// Command genepw writes a deterministic synthetic EPW file. The data follows a
// smooth seasonal and diurnal climate so reports computed from it are stable
// across runs, which makes it useful for demos and fixture generation.
//
// Usage:
//
//	go run ./cmd/genepw \
//	  -out data/synthetic/denver.epw \
//	  -location Denver -station 725650 \
//	  -lat 39.8 -lon -104.7 -tz -7
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/couchcryptid/isoweather/internal/weather"
	"github.com/couchcryptid/isoweather/internal/weather/synth"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "", "output path for the EPW file")
	location := flag.String("location", "Synthetic", "location name written to the header")
	station := flag.String("station", "000000", "station id written to the header")
	lat := flag.Float64("lat", 39.8, "latitude in degrees north")
	lon := flag.Float64("lon", -104.7, "longitude in degrees east")
	tz := flag.Int("tz", -7, "time zone offset from UTC in hours")
	rows := flag.Int("rows", weather.HoursPerYear, "number of hourly rows to write")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}
	if *rows < 1 || *rows > weather.HoursPerYear {
		return fmt.Errorf("-rows must be in [1, %d], got %d", weather.HoursPerYear, *rows)
	}

	if err := os.MkdirAll(filepath.Dir(*out), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	f, err := os.Create(*out)
	if err != nil {
		return fmt.Errorf("create %s: %w", *out, err)
	}

	opts := synth.Options{
		Header: weather.Header{
			Location:  *location,
			StationID: *station,
			Latitude:  *lat,
			Longitude: *lon,
			TimeZone:  *tz,
		},
		Rows: *rows,
	}
	if err := synth.Write(f, opts); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", *out, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", *out, err)
	}

	log.Printf("wrote %d rows to %s", *rows, *out)
	return nil
}
