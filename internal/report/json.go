package report

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/couchcryptid/isoweather/internal/solar"
	"github.com/couchcryptid/isoweather/internal/weather"
)

// JSONDocument is the wire shape of a Document. It is also what the Kafka sink
// publishes and what GET /report.json returns.
type JSONDocument struct {
	Location    weather.Header  `json:"location"`
	Source      Source          `json:"source"`
	GeneratedAt time.Time       `json:"generated_at"`
	Surfaces    []solar.Surface `json:"surfaces"`
	Monthly     MonthlyMeans    `json:"monthly"`
	Hourly      HourlyMeans     `json:"hourly"`
	// Solar is indexed [month][surface] in Surfaces order.
	Solar [][]float64 `json:"monthly_solar_radiation"`
}

// MonthlyMeans holds the twelve-element monthly series.
type MonthlyMeans struct {
	DryBulbTemp               []float64 `json:"dry_bulb_temp"`
	Windspeed                 []float64 `json:"windspeed"`
	GlobalHorizontalRadiation []float64 `json:"global_horizontal_radiation"`
}

// HourlyMeans holds the month x hour-of-day tables.
type HourlyMeans struct {
	DryBulbTemp               [][]float64 `json:"dry_bulb_temp"`
	GlobalHorizontalRadiation [][]float64 `json:"global_horizontal_radiation"`
}

// NewJSONDocument flattens doc into its wire shape.
func NewJSONDocument(doc Document) JSONDocument {
	r := doc.Report
	return JSONDocument{
		Location:    r.Header(),
		Source:      doc.Source,
		GeneratedAt: doc.GeneratedAt.UTC(),
		Surfaces:    solar.Surfaces[:],
		Monthly: MonthlyMeans{
			DryBulbTemp:               r.MonthlyDryBulbTemp(),
			Windspeed:                 r.MonthlyWindspeed(),
			GlobalHorizontalRadiation: r.MonthlyGlobalHorizontalRadiation(),
		},
		Hourly: HourlyMeans{
			DryBulbTemp:               rowsOf(r.HourlyDryBulbTemp()),
			GlobalHorizontalRadiation: rowsOf(r.HourlyGlobalHorizontalRadiation()),
		},
		Solar: rowsOf(r.MonthlySolarRadiation()),
	}
}

// MarshalJSON encodes doc as a JSONDocument.
func MarshalJSON(doc Document) ([]byte, error) {
	data, err := json.Marshal(NewJSONDocument(doc))
	if err != nil {
		return nil, fmt.Errorf("serialize report: %w", err)
	}
	return data, nil
}

// WriteJSON writes doc as an indented JSONDocument.
func WriteJSON(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewJSONDocument(doc)); err != nil {
		return fmt.Errorf("serialize report: %w", err)
	}
	return nil
}

func rowsOf(d *mat.Dense) [][]float64 {
	rows, _ := d.Dims()
	out := make([][]float64, rows)
	for i := range out {
		out[i] = mat.Row(nil, i, d)
	}
	return out
}
