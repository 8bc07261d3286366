package report

import (
	"fmt"
	"io"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/couchcryptid/isoweather/internal/calendar"
	"github.com/couchcryptid/isoweather/internal/solar"
)

// MonthlyRow is one line of the CSV summary. Surface columns follow the
// solar.Surfaces order.
type MonthlyRow struct {
	Month                     int     `csv:"month"`
	Name                      string  `csv:"name"`
	DryBulbTemp               float64 `csv:"dry_bulb_temp"`
	Windspeed                 float64 `csv:"windspeed"`
	GlobalHorizontalRadiation float64 `csv:"global_horizontal_radiation"`
	South                     float64 `csv:"solar_s"`
	SouthEast                 float64 `csv:"solar_se"`
	East                      float64 `csv:"solar_e"`
	NorthEast                 float64 `csv:"solar_ne"`
	North                     float64 `csv:"solar_n"`
	NorthWest                 float64 `csv:"solar_nw"`
	West                      float64 `csv:"solar_w"`
	SouthWest                 float64 `csv:"solar_sw"`
	Roof                      float64 `csv:"solar_roof"`
}

// MonthlyRows tabulates r with one row per month, months numbered from 1.
func MonthlyRows(r *solar.Report) []*MonthlyRow {
	dbt := r.MonthlyDryBulbTemp()
	wind := r.MonthlyWindspeed()
	egh := r.MonthlyGlobalHorizontalRadiation()
	sol := r.MonthlySolarRadiation()

	rows := make([]*MonthlyRow, calendar.Months)
	for m := range rows {
		rows[m] = &MonthlyRow{
			Month:                     m + 1,
			Name:                      time.Month(m + 1).String()[:3],
			DryBulbTemp:               dbt[m],
			Windspeed:                 wind[m],
			GlobalHorizontalRadiation: egh[m],
			South:                     sol.At(m, 0),
			SouthEast:                 sol.At(m, 1),
			East:                      sol.At(m, 2),
			NorthEast:                 sol.At(m, 3),
			North:                     sol.At(m, 4),
			NorthWest:                 sol.At(m, 5),
			West:                      sol.At(m, 6),
			SouthWest:                 sol.At(m, 7),
			Roof:                      sol.At(m, 8),
		}
	}
	return rows
}

// WriteCSV writes the monthly summary of r with a header line.
func WriteCSV(w io.Writer, r *solar.Report) error {
	if err := gocsv.Marshal(MonthlyRows(r), w); err != nil {
		return fmt.Errorf("write csv summary: %w", err)
	}
	return nil
}
