package solar

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/couchcryptid/isoweather/internal/calendar"
	"github.com/couchcryptid/isoweather/internal/weather"
)

var denver = weather.Header{Location: "Denver", StationID: "725650", Latitude: 39.8, Longitude: -104.7, TimeZone: -7}

func stampAt(month, day, hour int) calendar.Stamp {
	f := calendar.Standard()
	return f.At(f.HourOfYear(month, day, hour))
}

func TestSunPosition_Solstices(t *testing.T) {
	tests := []struct {
		name        string
		stamp       calendar.Stamp
		declination float64
	}{
		{"june solstice", stampAt(5, 21, 12), 23.44},
		{"december solstice", stampAt(11, 21, 12), -23.44},
		{"march equinox", stampAt(2, 20, 12), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := SunPosition(denver, tt.stamp)
			assert.InDelta(t, tt.declination, p.Declination, 0.5)
		})
	}
}

func TestSunPosition_SummerMidday(t *testing.T) {
	// 11:30 and 12:30 local standard time straddle solar noon in Denver.
	morning := SunPosition(denver, stampAt(5, 21, 11))
	afternoon := SunPosition(denver, stampAt(5, 21, 12))

	for _, p := range []Position{morning, afternoon} {
		assert.True(t, p.Up())
		// Noon zenith is latitude minus declination, about 16.4 degrees.
		assert.Greater(t, p.Zenith, 16.0)
		assert.Less(t, p.Zenith, 22.0)
	}
	assert.Less(t, morning.HourAngle, 0.0)
	assert.Greater(t, morning.Azimuth, 90.0)
	assert.Less(t, morning.Azimuth, 180.0)
	assert.Greater(t, afternoon.HourAngle, 0.0)
	assert.Greater(t, afternoon.Azimuth, 180.0)
	assert.Less(t, afternoon.Azimuth, 270.0)
}

func TestSunPosition_Night(t *testing.T) {
	for _, st := range []calendar.Stamp{stampAt(0, 1, 0), stampAt(5, 21, 2), stampAt(11, 31, 22)} {
		p := SunPosition(denver, st)
		assert.False(t, p.Up(), "%+v", st)
		assert.Less(t, p.CosZenith(), 0.0)
	}
}

func TestSunPosition_EquatorEquinox(t *testing.T) {
	site := weather.Header{Latitude: 0, Longitude: 0, TimeZone: 0}
	p := SunPosition(site, stampAt(2, 20, 11))
	assert.Less(t, p.Zenith, 15.0)
	assert.InDelta(t, -7.5, p.EquationOfTime, 1.5)
}

func TestSunPosition_TimeZoneShiftsClock(t *testing.T) {
	// The same instant seen from two clocks one hour apart must agree.
	east := weather.Header{Latitude: 40, Longitude: -75, TimeZone: -5}
	west := weather.Header{Latitude: 40, Longitude: -75, TimeZone: -6}
	a := SunPosition(east, stampAt(6, 10, 14))
	b := SunPosition(west, stampAt(6, 10, 13))
	assert.InDelta(t, a.Zenith, b.Zenith, 1e-9)
	assert.InDelta(t, a.Azimuth, b.Azimuth, 1e-9)
}

func TestFixAngle(t *testing.T) {
	assert.Equal(t, 0.0, fixAngle(360))
	assert.Equal(t, 350.0, fixAngle(-10))
	assert.Equal(t, 10.0, fixAngle(730))
}
