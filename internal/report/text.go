package report

import (
	"bufio"
	"io"
	"strconv"

	"gonum.org/v1/gonum/mat"

	"github.com/couchcryptid/isoweather/internal/calendar"
	"github.com/couchcryptid/isoweather/internal/solar"
)

// Section tags, in output order.
const (
	SectionMonthlyDryBulb = "mdbt"
	SectionMonthlyWind    = "mwind"
	SectionMonthlyGlobal  = "mEgh"
	SectionHourlyDryBulb  = "hdbt"
	SectionHourlyGlobal   = "hEgh"
	SectionMonthlySolar   = "solar"
)

const significantDigits = 6

// WriteText writes the six sections of r. Each tag sits on its own line and is
// followed by twelve rows of the form "<month>,<v>[,<v>...]" with months
// numbered from 0.
func WriteText(w io.Writer, r *solar.Report) error {
	bw := bufio.NewWriter(w)

	writeVector(bw, SectionMonthlyDryBulb, r.MonthlyDryBulbTemp())
	writeVector(bw, SectionMonthlyWind, r.MonthlyWindspeed())
	writeVector(bw, SectionMonthlyGlobal, r.MonthlyGlobalHorizontalRadiation())
	writeMatrix(bw, SectionHourlyDryBulb, r.HourlyDryBulbTemp())
	writeMatrix(bw, SectionHourlyGlobal, r.HourlyGlobalHorizontalRadiation())
	writeMatrix(bw, SectionMonthlySolar, r.MonthlySolarRadiation())

	return bw.Flush()
}

func writeVector(bw *bufio.Writer, tag string, v []float64) {
	bw.WriteString(tag)
	bw.WriteByte('\n')
	for m := 0; m < calendar.Months; m++ {
		bw.WriteString(strconv.Itoa(m))
		bw.WriteByte(',')
		bw.WriteString(FormatValue(v[m]))
		bw.WriteByte('\n')
	}
}

func writeMatrix(bw *bufio.Writer, tag string, d *mat.Dense) {
	bw.WriteString(tag)
	bw.WriteByte('\n')
	rows, cols := d.Dims()
	for m := 0; m < rows; m++ {
		bw.WriteString(strconv.Itoa(m))
		for c := 0; c < cols; c++ {
			bw.WriteByte(',')
			bw.WriteString(FormatValue(d.At(m, c)))
		}
		bw.WriteByte('\n')
	}
}

// FormatValue renders v with six significant digits, trailing zeros dropped,
// switching to exponent notation below 1e-4 or at 1e6 and above.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', significantDigits, 64)
}
