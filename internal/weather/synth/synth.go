// Package synth writes deterministic synthetic EPW files for demos and tests.
package synth

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/couchcryptid/isoweather/internal/calendar"
	"github.com/couchcryptid/isoweather/internal/weather"
)

// Year is written into the year column of every data row.
const Year = 2001

// ValueFunc returns the sample of channel c at hour-of-year h.
type ValueFunc func(c weather.Channel, h int) float64

// Options controls the generated file.
type Options struct {
	Header weather.Header
	// Rows is the number of data rows written. Zero means a full year.
	Rows int
	// Value supplies channel samples. Nil uses Climate.
	Value ValueFunc
}

var metadataLines = []string{
	"DESIGN CONDITIONS,0",
	"TYPICAL/EXTREME PERIODS,0",
	"GROUND TEMPERATURES,0",
	"HOLIDAYS/DAYLIGHT SAVINGS,No,0,0,0",
	"COMMENTS 1,synthetic weather",
	"COMMENTS 2,",
	"DATA PERIODS,1,1,Data,Monday, 1/ 1,12/31",
}

// Write emits an EPW file: the LOCATION header, seven metadata lines and the
// data rows.
func Write(w io.Writer, opts Options) error {
	rows := opts.Rows
	if rows <= 0 || rows > weather.HoursPerYear {
		rows = weather.HoursPerYear
	}
	value := opts.Value
	if value == nil {
		value = Climate
	}

	bw := bufio.NewWriter(w)
	h := opts.Header
	fmt.Fprintf(bw, "LOCATION,%s,,,SYN,%s,%s,%s,%s,0\n",
		h.Location, h.StationID,
		strconv.FormatFloat(h.Latitude, 'f', -1, 64),
		strconv.FormatFloat(h.Longitude, 'f', -1, 64),
		strconv.FormatFloat(float64(h.TimeZone), 'f', 1, 64))
	for _, l := range metadataLines {
		bw.WriteString(l)
		bw.WriteByte('\n')
	}

	frame := calendar.Standard()
	fields := make([]string, 35)
	for i := 0; i < rows; i++ {
		st := frame.At(i)
		fill(fields, st)
		for _, col := range weather.Columns {
			fields[col.Field] = strconv.FormatFloat(value(col.Channel, i), 'f', -1, 64)
		}
		bw.WriteString(strings.Join(fields, ","))
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// fill writes the date columns and placeholder values for the columns the
// parser ignores.
func fill(fields []string, st calendar.Stamp) {
	for i := range fields {
		fields[i] = "0"
	}
	fields[0] = strconv.Itoa(Year)
	fields[1] = strconv.Itoa(st.Month + 1)
	fields[2] = strconv.Itoa(st.Day)
	fields[3] = strconv.Itoa(st.Hour + 1)
	fields[4] = "60"
	fields[5] = "?9?9?9?9E0?9?9?9?9?9?9?9?9?9?9?9?9?9?9?9*9*9?9?9?9"
	fields[9] = "101325"
	fields[20] = "180"
	fields[22] = "10"
	fields[23] = "77777"
	fields[24] = "9999"
}

// Climate is a smooth northern-hemisphere mid-latitude climate: cold January,
// warm July, daylight radiation between 06:00 and 18:00.
func Climate(c weather.Channel, h int) float64 {
	st := calendar.Standard().At(h)
	doy := float64(st.DayOfYear)
	hod := float64(st.Hour)

	season := math.Cos(2 * math.Pi * (doy - 15) / calendar.DaysPerYear)
	dryBulb := round1(10 - 12*season + 5*math.Sin(2*math.Pi*(hod-9)/calendar.HoursPerDay))

	daylight := 0.0
	if st.Hour >= 6 && st.Hour < 18 {
		daylight = math.Sin(math.Pi * (hod + 0.5 - 6) / 12)
	}
	summer := 0.75 - 0.25*season
	direct := math.Round(700 * daylight * summer)
	diffuse := math.Round(120 * daylight)

	switch c {
	case weather.DryBulb:
		return dryBulb
	case weather.DewPoint:
		return round1(dryBulb - 6)
	case weather.RelativeHumidity:
		return 60
	case weather.GlobalHorizontal:
		return math.Round(direct*daylight + diffuse)
	case weather.DirectNormal:
		return direct
	case weather.DiffuseHorizontal:
		return diffuse
	case weather.WindSpeed:
		return round1(3 + 1.5*math.Sin(2*math.Pi*doy/calendar.DaysPerYear))
	default:
		return 0
	}
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
