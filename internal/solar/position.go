package solar

import (
	"math"

	"github.com/soniakeys/meeus/v3/julian"

	"github.com/couchcryptid/isoweather/internal/calendar"
	"github.com/couchcryptid/isoweather/internal/weather"
)

// referenceYear anchors the non-leap calendar to a Julian date. Declination and
// equation of time drift by far less than a degree or a minute between years.
const referenceYear = 2001

const j2000 = 2451545.0

// Position is the sun's place in the sky for one hour. Angles are degrees.
type Position struct {
	Zenith         float64 // from vertical; > 90 below the horizon
	Azimuth        float64 // clockwise from north, [0, 360)
	Declination    float64
	HourAngle      float64 // negative before solar noon
	EquationOfTime float64 // minutes
}

// Up reports whether the sun is above the horizon.
func (p Position) Up() bool { return p.Zenith < 90 }

// CosZenith is the cosine of the zenith angle.
func (p Position) CosZenith() float64 { return math.Cos(degToRad(p.Zenith)) }

// SunPosition computes the sun position at the middle of the hour st, in the
// site's local standard time.
func SunPosition(site weather.Header, st calendar.Stamp) Position {
	utcHours := float64(st.Hour) + 0.5 - float64(site.TimeZone)
	jd := julian.CalendarGregorianToJD(referenceYear, st.Month+1, float64(st.Day)+utcHours/24)
	return positionAt(site.Latitude, site.Longitude, jd, utcHours)
}

// positionAt follows the NOAA low-precision solar ephemeris. lon is degrees
// east, utcHours the UTC time of day (may fall outside [0, 24)).
func positionAt(lat, lon, jd, utcHours float64) Position {
	t := (jd - j2000) / 36525.0 // Julian centuries since J2000

	l0 := fixAngle(280.46646 + t*(36000.76983+t*0.0003032))
	m := fixAngle(357.52911 + t*(35999.05029-t*0.0001537))
	e := 0.016708634 - t*(0.000042037+t*0.0000001267)
	c := math.Sin(degToRad(m))*(1.914602-t*(0.004817+t*0.000014)) +
		math.Sin(degToRad(2*m))*(0.019993-t*0.000101) +
		math.Sin(degToRad(3*m))*0.000289
	omega := 125.04 - 1934.136*t
	lambda := l0 + c - 0.00569 - 0.00478*math.Sin(degToRad(omega))
	eps0 := 23 + (26+(21.448-t*(46.815+t*(0.00059-t*0.001813)))/60)/60
	eps := eps0 + 0.00256*math.Cos(degToRad(omega))
	decl := math.Asin(math.Sin(degToRad(eps)) * math.Sin(degToRad(lambda)))

	y := math.Tan(degToRad(eps)/2) * math.Tan(degToRad(eps)/2)
	l0r, mr := degToRad(l0), degToRad(m)
	eqTime := 4 * radToDeg(y*math.Sin(2*l0r)-
		2*e*math.Sin(mr)+
		4*e*y*math.Sin(mr)*math.Cos(2*l0r)-
		0.5*y*y*math.Sin(4*l0r)-
		1.25*e*e*math.Sin(2*mr))

	trueSolarMin := math.Mod(utcHours*60+4*lon+eqTime, 1440)
	if trueSolarMin < 0 {
		trueSolarMin += 1440
	}
	ha := trueSolarMin/4 - 180

	latr, har := degToRad(lat), degToRad(ha)
	cosZen := math.Sin(latr)*math.Sin(decl) + math.Cos(latr)*math.Cos(decl)*math.Cos(har)
	zen := math.Acos(clamp(cosZen, -1, 1))

	az := radToDeg(math.Atan2(math.Sin(har), math.Cos(har)*math.Sin(latr)-math.Tan(decl)*math.Cos(latr))) + 180

	return Position{
		Zenith:         radToDeg(zen),
		Azimuth:        fixAngle(az),
		Declination:    radToDeg(decl),
		HourAngle:      ha,
		EquationOfTime: eqTime,
	}
}

func degToRad(deg float64) float64 { return deg * math.Pi / 180.0 }

func radToDeg(rad float64) float64 { return rad * 180.0 / math.Pi }

// fixAngle normalizes an angle to [0, 360).
func fixAngle(a float64) float64 { return a - 360.0*math.Floor(a/360.0) }

func clamp(v, lo, hi float64) float64 { return math.Max(lo, math.Min(hi, v)) }
