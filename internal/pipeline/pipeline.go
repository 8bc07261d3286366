package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/isoweather/internal/observability"
	"github.com/couchcryptid/isoweather/internal/report"
	"github.com/couchcryptid/isoweather/internal/solar"
	"github.com/couchcryptid/isoweather/internal/weather"
)

// Extracted is the weather year read by an Extractor and where it came from.
type Extracted struct {
	Series *weather.Series
	Path   string
}

// Extractor loads the weather year for one run.
type Extractor interface {
	Extract(ctx context.Context) (Extracted, error)
}

// Transformer reduces a weather year to its report.
type Transformer interface {
	Transform(ctx context.Context, s *weather.Series) (*solar.Report, error)
}

// Loader delivers a finished report to a destination.
type Loader interface {
	Load(ctx context.Context, doc report.Document) error
}

// Sink is a Loader with the name used for it in logs and metrics.
type Sink struct {
	Name   string
	Loader Loader
}

// Pipeline orchestrates one extract-transform-load run and keeps the latest
// report for readers such as the HTTP server.
type Pipeline struct {
	extractor   Extractor
	transformer Transformer
	sinks       []Sink
	logger      *slog.Logger
	metrics     *observability.Metrics
	ready       atomic.Bool
	latest      atomic.Pointer[report.Document]
}

// New creates a Pipeline with the given stages and observability.
func New(e Extractor, t Transformer, sinks []Sink, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		extractor:   e,
		transformer: t,
		sinks:       sinks,
		logger:      logger,
		metrics:     metrics,
	}
}

// CheckReadiness returns nil once a report has been computed, or an error
// describing why the service is not yet ready.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("no report has been computed yet")
	}
	return nil
}

// Latest returns the most recently computed report.
func (p *Pipeline) Latest() (report.Document, bool) {
	doc := p.latest.Load()
	if doc == nil {
		return report.Document{}, false
	}
	return *doc, true
}

// Run extracts the weather year, computes its report and delivers it to every
// sink. A failing sink does not stop delivery to the others; their errors are
// joined into the returned error. The document is returned whenever the report
// was computed, even if a sink failed.
func (p *Pipeline) Run(ctx context.Context) (report.Document, error) {
	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	if err := ctx.Err(); err != nil {
		return report.Document{}, err
	}

	runStart := time.Now()
	start := runStart
	in, err := p.extractor.Extract(ctx)
	p.observeStage("extract", start)
	if err != nil {
		p.logger.Error("extract failed", "error", err)
		return report.Document{}, fmt.Errorf("extract: %w", err)
	}

	rows, coerced := in.Series.Rows(), in.Series.Coerced()
	p.metrics.RowsLoaded.Add(float64(rows))
	p.metrics.CoercedFields.Add(float64(coerced))
	p.logger.Info("weather file loaded", "path", in.Path, "rows", rows, "coerced_fields", coerced)
	if rows < weather.HoursPerYear {
		p.logger.Warn("weather file is short, missing hours read as zero",
			"path", in.Path, "rows", rows, "expected", weather.HoursPerYear)
	}
	if coerced > 0 {
		p.logger.Warn("malformed weather fields read as zero", "path", in.Path, "coerced_fields", coerced)
	}

	start = time.Now()
	r, err := p.transformer.Transform(ctx, in.Series)
	p.observeStage("transform", start)
	if err != nil {
		p.logger.Error("transform failed", "error", err, "path", in.Path)
		return report.Document{}, fmt.Errorf("transform: %w", err)
	}

	doc := report.Document{
		Report: r,
		Source: report.Source{
			Path:          in.Path,
			Rows:          rows,
			CoercedFields: coerced,
		},
		GeneratedAt: clock.Now().UTC(),
	}
	p.latest.Store(&doc)
	p.ready.Store(true)
	p.metrics.LastReportTimestamp.Set(float64(doc.GeneratedAt.Unix()))

	start = time.Now()
	err = p.load(ctx, doc)
	p.observeStage("load", start)
	if err != nil {
		return doc, fmt.Errorf("load: %w", err)
	}

	p.metrics.ReportsProduced.Inc()
	p.logger.Info("report delivered",
		"station_id", r.Header().StationID,
		"sinks", len(p.sinks),
		"duration_ms", time.Since(runStart).Milliseconds(),
	)
	return doc, nil
}

func (p *Pipeline) load(ctx context.Context, doc report.Document) error {
	var errs []error
	for _, s := range p.sinks {
		if err := s.Loader.Load(ctx, doc); err != nil {
			p.logger.Error("sink failed", "sink", s.Name, "error", err)
			p.metrics.SinkWrites.WithLabelValues(s.Name, "error").Inc()
			errs = append(errs, fmt.Errorf("%s: %w", s.Name, err))
			continue
		}
		p.metrics.SinkWrites.WithLabelValues(s.Name, "success").Inc()
	}
	return errors.Join(errs...)
}

func (p *Pipeline) observeStage(stage string, start time.Time) {
	p.metrics.StageDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
}
