package weather

import (
	"errors"
	"fmt"
)

// HoursPerYear is the length of every channel: a non-leap year of hourly rows.
const HoursPerYear = 8760

// ErrChannelLength is returned by NewSeries when a channel is not exactly
// HoursPerYear samples long.
var ErrChannelLength = errors.New("channel length must be 8760")

// Channel identifies one measured track of the series.
type Channel int

// Channels in declaration order. The order matches the EPW column order in
// Columns; NumChannels is the channel count.
const (
	DryBulb Channel = iota
	DewPoint
	RelativeHumidity
	GlobalHorizontal
	DirectNormal
	DiffuseHorizontal
	WindSpeed
	NumChannels
)

var channelNames = [NumChannels]string{
	DryBulb:           "dry_bulb",
	DewPoint:          "dew_point",
	RelativeHumidity:  "relative_humidity",
	GlobalHorizontal:  "global_horizontal",
	DirectNormal:      "direct_normal",
	DiffuseHorizontal: "diffuse_horizontal",
	WindSpeed:         "wind_speed",
}

func (c Channel) String() string {
	if c < 0 || c >= NumChannels {
		return fmt.Sprintf("channel(%d)", int(c))
	}
	return channelNames[c]
}

// Header is the site description taken from the first line of the file.
type Header struct {
	Location  string  `json:"location"`
	StationID string  `json:"station_id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	TimeZone  int     `json:"time_zone"`
}

// Series is an annual hourly weather record. It is immutable once built and
// safe for concurrent readers.
type Series struct {
	header  Header
	data    [NumChannels][HoursPerYear]float64
	rows    int
	coerced int
}

// NewSeries builds a series from in-memory channels. Every supplied channel
// must hold exactly HoursPerYear samples; channels not supplied are zero.
func NewSeries(h Header, channels map[Channel][]float64) (*Series, error) {
	s := &Series{header: h, rows: HoursPerYear}
	for c, values := range channels {
		if c < 0 || c >= NumChannels {
			return nil, fmt.Errorf("new series: unknown %s", c)
		}
		if len(values) != HoursPerYear {
			return nil, fmt.Errorf("new series: %s has %d samples: %w", c, len(values), ErrChannelLength)
		}
		copy(s.data[c][:], values)
	}
	return s, nil
}

// Header returns the site description.
func (s *Series) Header() Header { return s.header }

// At returns the sample of channel c at hour-of-year h.
func (s *Series) At(c Channel, h int) float64 { return s.data[c][h] }

// Values returns a copy of channel c.
func (s *Series) Values(c Channel) []float64 {
	out := make([]float64, HoursPerYear)
	copy(out, s.data[c][:])
	return out
}

// Rows is the number of data rows read from the source. Hours at or past Rows
// hold zero in every channel.
func (s *Series) Rows() int { return s.rows }

// Coerced is the number of consumed tokens that were empty or non-numeric and
// stored as zero.
func (s *Series) Coerced() int { return s.coerced }
