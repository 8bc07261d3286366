package solar

import (
	"gonum.org/v1/gonum/mat"

	"github.com/couchcryptid/isoweather/internal/calendar"
	"github.com/couchcryptid/isoweather/internal/weather"
)

// Report holds the aggregates of one weather year. It is only produced by
// Compute, never mutated afterwards, and safe for concurrent readers. Every
// accessor returns a copy.
type Report struct {
	header weather.Header

	monthlyDryBulb *mat.VecDense // 12
	monthlyWind    *mat.VecDense // 12
	monthlyGlobal  *mat.VecDense // 12
	hourlyDryBulb  *mat.Dense    // 12 x 24
	hourlyGlobal   *mat.Dense    // 12 x 24
	monthlySolar   *mat.Dense    // 12 x NumSurfaces
}

// Header returns the site the report was computed for.
func (r *Report) Header() weather.Header { return r.header }

// MonthlyDryBulbTemp is the mean dry-bulb temperature of each month, C.
func (r *Report) MonthlyDryBulbTemp() []float64 { return vecCopy(r.monthlyDryBulb) }

// MonthlyWindspeed is the mean wind speed of each month, m/s.
func (r *Report) MonthlyWindspeed() []float64 { return vecCopy(r.monthlyWind) }

// MonthlyGlobalHorizontalRadiation is the mean global horizontal irradiance of
// each month, W/m2.
func (r *Report) MonthlyGlobalHorizontalRadiation() []float64 { return vecCopy(r.monthlyGlobal) }

// HourlyDryBulbTemp is the month x hour-of-day mean dry-bulb temperature.
func (r *Report) HourlyDryBulbTemp() *mat.Dense { return mat.DenseCopyOf(r.hourlyDryBulb) }

// HourlyGlobalHorizontalRadiation is the month x hour-of-day mean global
// horizontal irradiance.
func (r *Report) HourlyGlobalHorizontalRadiation() *mat.Dense {
	return mat.DenseCopyOf(r.hourlyGlobal)
}

// MonthlySolarRadiation is the month x surface mean incident irradiance, with
// columns in Surfaces order.
func (r *Report) MonthlySolarRadiation() *mat.Dense { return mat.DenseCopyOf(r.monthlySolar) }

func vecCopy(v *mat.VecDense) []float64 {
	out := make([]float64, v.Len())
	for i := range out {
		out[i] = v.AtVec(i)
	}
	return out
}

// accumulator collects running sums during the single pass over the year.
type accumulator struct {
	dryBulb, wind, global *mat.VecDense
	hourlyDryBulb         *mat.Dense
	hourlyGlobal          *mat.Dense
	solar                 *mat.Dense
}

func newAccumulator() *accumulator {
	return &accumulator{
		dryBulb:       mat.NewVecDense(calendar.Months, nil),
		wind:          mat.NewVecDense(calendar.Months, nil),
		global:        mat.NewVecDense(calendar.Months, nil),
		hourlyDryBulb: mat.NewDense(calendar.Months, calendar.HoursPerDay, nil),
		hourlyGlobal:  mat.NewDense(calendar.Months, calendar.HoursPerDay, nil),
		solar:         mat.NewDense(calendar.Months, NumSurfaces, nil),
	}
}

func addVec(v *mat.VecDense, i int, x float64) { v.SetVec(i, v.AtVec(i)+x) }

func addAt(m *mat.Dense, i, j int, x float64) { m.Set(i, j, m.At(i, j)+x) }

// finish divides the sums by the true hour counts of each month: hours in the
// month for monthly means, days in the month for hour-of-day means.
func (a *accumulator) finish(h weather.Header, f *calendar.Frame) *Report {
	perHour := func(i, _ int, v float64) float64 { return v / float64(f.HoursInMonth(i)) }
	perDay := func(i, _ int, v float64) float64 { return v / float64(f.DaysInMonth(i)) }

	r := &Report{
		header:         h,
		monthlyDryBulb: mat.NewVecDense(calendar.Months, nil),
		monthlyWind:    mat.NewVecDense(calendar.Months, nil),
		monthlyGlobal:  mat.NewVecDense(calendar.Months, nil),
		hourlyDryBulb:  &mat.Dense{},
		hourlyGlobal:   &mat.Dense{},
		monthlySolar:   &mat.Dense{},
	}
	for m := 0; m < calendar.Months; m++ {
		n := float64(f.HoursInMonth(m))
		r.monthlyDryBulb.SetVec(m, a.dryBulb.AtVec(m)/n)
		r.monthlyWind.SetVec(m, a.wind.AtVec(m)/n)
		r.monthlyGlobal.SetVec(m, a.global.AtVec(m)/n)
	}
	r.hourlyDryBulb.Apply(perDay, a.hourlyDryBulb)
	r.hourlyGlobal.Apply(perDay, a.hourlyGlobal)
	r.monthlySolar.Apply(perHour, a.solar)
	return r
}
