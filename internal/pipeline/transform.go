package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/couchcryptid/isoweather/internal/calendar"
	"github.com/couchcryptid/isoweather/internal/solar"
	"github.com/couchcryptid/isoweather/internal/weather"
)

// ReportTransformer implements Transformer with solar.Compute.
type ReportTransformer struct {
	frame             *calendar.Frame
	groundReflectance float64
	logger            *slog.Logger
}

// NewTransformer creates a ReportTransformer. A nil frame selects the standard
// non-leap calendar.
func NewTransformer(frame *calendar.Frame, groundReflectance float64, logger *slog.Logger) *ReportTransformer {
	if frame == nil {
		frame = calendar.Standard()
	}
	return &ReportTransformer{
		frame:             frame,
		groundReflectance: groundReflectance,
		logger:            logger,
	}
}

func (t *ReportTransformer) Transform(ctx context.Context, s *weather.Series) (*solar.Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r, err := solar.Compute(s, t.frame, solar.WithGroundReflectance(t.groundReflectance))
	if err != nil {
		return nil, fmt.Errorf("compute report: %w", err)
	}
	h := r.Header()
	t.logger.Debug("report computed",
		"station_id", h.StationID,
		"location", h.Location,
		"ground_reflectance", t.groundReflectance,
	)
	return r, nil
}
