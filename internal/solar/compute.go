// Package solar computes sun position and surface irradiance for every hour of
// a weather year and reduces them to monthly and hour-of-day means.
package solar

import (
	"errors"
	"fmt"

	"github.com/couchcryptid/isoweather/internal/calendar"
	"github.com/couchcryptid/isoweather/internal/weather"
)

// ErrPrecondition is returned when Compute is given inputs that break the
// series or calendar invariants.
var ErrPrecondition = errors.New("solar precondition violated")

type options struct {
	groundReflectance float64
}

// Option configures Compute.
type Option func(*options)

// WithGroundReflectance sets the albedo for the ground-reflected component.
func WithGroundReflectance(rho float64) Option {
	return func(o *options) { o.groundReflectance = rho }
}

// Compute makes one pass over the year and returns the aggregated report. The
// result depends only on its inputs: calling it again yields an identical
// report.
func Compute(s *weather.Series, f *calendar.Frame, opts ...Option) (*Report, error) {
	o := options{groundReflectance: DefaultGroundReflectance}
	for _, opt := range opts {
		opt(&o)
	}

	switch {
	case s == nil:
		return nil, fmt.Errorf("%w: nil weather series", ErrPrecondition)
	case f == nil:
		return nil, fmt.Errorf("%w: nil calendar", ErrPrecondition)
	case o.groundReflectance < 0 || o.groundReflectance > 1:
		return nil, fmt.Errorf("%w: ground reflectance %v outside [0, 1]", ErrPrecondition, o.groundReflectance)
	}

	site := s.Header()
	acc := newAccumulator()
	for h := 0; h < weather.HoursPerYear; h++ {
		st := f.At(h)
		m := st.Month

		dryBulb := s.At(weather.DryBulb, h)
		global := s.At(weather.GlobalHorizontal, h)

		addVec(acc.dryBulb, m, dryBulb)
		addVec(acc.wind, m, s.At(weather.WindSpeed, h))
		addVec(acc.global, m, global)
		addAt(acc.hourlyDryBulb, m, st.Hour, dryBulb)
		addAt(acc.hourlyGlobal, m, st.Hour, global)

		pos := SunPosition(site, st)
		if !pos.Up() {
			continue
		}
		in := Horizontal{
			Global:  global,
			Direct:  s.At(weather.DirectNormal, h),
			Diffuse: s.At(weather.DiffuseHorizontal, h),
		}
		for i, surf := range Surfaces {
			addAt(acc.solar, m, i, Incident(pos, surf, in, o.groundReflectance))
		}
	}
	return acc.finish(site, f), nil
}
