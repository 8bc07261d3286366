package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/isoweather/internal/calendar"
	"github.com/couchcryptid/isoweather/internal/solar"
	"github.com/couchcryptid/isoweather/internal/weather"
)

// Limits for the plausibility checks.
const (
	maxNightGlobal    = 50.0   // W/m2 tolerated with the sun below nightZenith at mid-hour
	nightZenith       = 100.0  // degrees; the whole hour is dark
	maxGlobal         = 1400.0 // above the solar constant
	maxDiffuseExcess  = 10.0   // diffuse may exceed global by rounding only
	minDryBulb        = -70.0
	maxDryBulb        = 70.0
	maxWindSpeed      = 40.0
	maxReportedErrors = 20
)

// errValidationFailed is returned when at least one phase reports errors.
var errValidationFailed = errors.New("validation failed")

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [weather-file]",
		Short: "Check an EPW file for completeness and physically plausible values",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				a.cfg.WeatherFile = args[0]
			}
			if a.cfg.WeatherFile == "" {
				return errors.New("WEATHER_FILE is required")
			}
			s, err := weather.Load(a.cfg.WeatherFile)
			if err != nil {
				return err
			}
			return runValidation(cmd.OutOrStdout(), a.cfg.WeatherFile, s)
		},
	}
}

// runValidation runs every phase against s and prints a summary to out.
func runValidation(out io.Writer, path string, s *weather.Series) error {
	fmt.Fprintf(out, "=== EPW Validation: %s ===\n\n", path)

	phases := []*phase{
		validateHeader(s.Header()),
		validateCompleteness(s),
		validateRanges(s),
		validateRadiation(s, calendar.Standard()),
	}

	allPassed := true
	for _, p := range phases {
		status := "PASS"
		if !p.passed() {
			status = fmt.Sprintf("FAIL (%d errors)", len(p.errors))
			allPassed = false
		}
		fmt.Fprintf(out, "  %-36s %s\n", p.name, status)
	}

	h := s.Header()
	fmt.Fprintf(out, "\nStation: %s %s (%.2f, %.2f, UTC%+d), %d rows, %d coerced fields\n",
		h.StationID, h.Location, h.Latitude, h.Longitude, h.TimeZone, s.Rows(), s.Coerced())

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Fprintf(out, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			if i == maxReportedErrors {
				fmt.Fprintf(out, "  ... %d more\n", len(p.errors)-maxReportedErrors)
				break
			}
			fmt.Fprintf(out, "  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Fprintln(out, "\nAll validations passed.")
		return nil
	}
	fmt.Fprintln(out, "\nValidation FAILED.")
	return errValidationFailed
}

// ── Phase 1: Header ──

func validateHeader(h weather.Header) *phase {
	p := &phase{name: "Phase 1: Location header"}
	if h.Location == "" {
		p.errorf("location name is empty")
	}
	if h.StationID == "" {
		p.errorf("station id is empty")
	}
	if h.Latitude < -90 || h.Latitude > 90 {
		p.errorf("latitude %g outside [-90, 90]", h.Latitude)
	}
	if h.Longitude < -180 || h.Longitude > 180 {
		p.errorf("longitude %g outside [-180, 180]", h.Longitude)
	}
	if h.TimeZone < -12 || h.TimeZone > 14 {
		p.errorf("time zone %d outside [-12, 14]", h.TimeZone)
	}
	if h.Latitude == 0 && h.Longitude == 0 {
		p.errorf("coordinates are both zero")
	}
	return p
}

// ── Phase 2: Completeness ──

func validateCompleteness(s *weather.Series) *phase {
	p := &phase{name: "Phase 2: Completeness"}
	if s.Rows() != weather.HoursPerYear {
		p.errorf("%d data rows, expected %d", s.Rows(), weather.HoursPerYear)
	}
	if s.Coerced() > 0 {
		p.errorf("%d missing or malformed fields were read as zero", s.Coerced())
	}
	return p
}

// ── Phase 3: Meteorological ranges ──

func validateRanges(s *weather.Series) *phase {
	p := &phase{name: "Phase 3: Meteorological ranges"}
	for h := 0; h < s.Rows(); h++ {
		if v := s.At(weather.DryBulb, h); v < minDryBulb || v > maxDryBulb {
			p.errorf("hour %d: dry bulb %g C outside [%g, %g]", h, v, minDryBulb, maxDryBulb)
		}
		if v := s.At(weather.DewPoint, h); v > s.At(weather.DryBulb, h)+0.5 {
			p.errorf("hour %d: dew point %g C above dry bulb %g C", h, v, s.At(weather.DryBulb, h))
		}
		if v := s.At(weather.RelativeHumidity, h); v < 0 || v > 110 {
			p.errorf("hour %d: relative humidity %g%% outside [0, 110]", h, v)
		}
		if v := s.At(weather.WindSpeed, h); v < 0 || v > maxWindSpeed {
			p.errorf("hour %d: wind speed %g m/s outside [0, %g]", h, v, maxWindSpeed)
		}
	}
	return p
}

// ── Phase 4: Radiation consistency ──

func validateRadiation(s *weather.Series, f *calendar.Frame) *phase {
	p := &phase{name: "Phase 4: Radiation consistency"}
	site := s.Header()
	for h := 0; h < s.Rows(); h++ {
		global := s.At(weather.GlobalHorizontal, h)
		direct := s.At(weather.DirectNormal, h)
		diffuse := s.At(weather.DiffuseHorizontal, h)

		if global < 0 || direct < 0 || diffuse < 0 {
			p.errorf("hour %d: negative radiation (global %g, direct %g, diffuse %g)", h, global, direct, diffuse)
			continue
		}
		if global > maxGlobal {
			p.errorf("hour %d: global horizontal %g W/m2 above %g", h, global, maxGlobal)
		}
		if diffuse > global+maxDiffuseExcess {
			p.errorf("hour %d: diffuse %g W/m2 exceeds global %g", h, diffuse, global)
		}
		st := f.At(h)
		if global > maxNightGlobal && solar.SunPosition(site, st).Zenith > nightZenith {
			p.errorf("hour %d (%02d-%02d %02d:30): global %g W/m2 at night",
				h, st.Month+1, st.Day, st.Hour, global)
		}
	}
	return p
}
