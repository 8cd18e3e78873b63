// Package engine orchestrates dataset generation: it validates a request,
// runs the industry generator over a seeded random stream, applies
// post-processing, and reports progress while doing so.
package engine

import (
	"context"
	"fmt"
	"log"
	"time"

	"dataforge/internal/config"
	"dataforge/internal/dataset"
	"dataforge/internal/generator"
	"dataforge/internal/metrics"
	"dataforge/internal/postprocess"
	"dataforge/internal/random"
	"dataforge/internal/schema"
)

// MaxRows bounds a single generation request.
const MaxRows = 1_000_000

// Logger is the minimal logging interface used by the engine.
// *log.Logger satisfies this interface.
type Logger interface {
	Printf(format string, v ...any)
}

// Config describes one generation request.
type Config struct {
	Industry string
	Rows     int

	// Start and End bound the date fields of generated records (inclusive).
	Start time.Time
	End   time.Time

	// Quality is "quick" | "balanced" | "high".
	Quality string

	// Variance is "low" | "medium" | "high".
	Variance string

	// NullPercent injects nulls into non-protected fields, 0 to 100.
	NullPercent float64

	// Outliers is "none" | "rare" | "occasional" | "frequent".
	Outliers string

	// Seed makes the run deterministic. Zero means a time-derived seed.
	Seed int64
}

// Validate reports request problems. A request with any error-severity issue
// must not be run.
func (c Config) Validate() []config.Issue {
	var issues []config.Issue

	if _, err := schema.ParseIndustry(c.Industry); err != nil {
		issues = config.Errorf(issues, "industry", "%v", err)
	}
	if c.Rows < 1 || c.Rows > MaxRows {
		issues = config.Errorf(issues, "rows", "must be in [1, %d], got %d", MaxRows, c.Rows)
	}
	if c.Start.IsZero() || c.End.IsZero() {
		issues = config.Errorf(issues, "dates", "start and end are required")
	} else if c.End.Before(c.Start) {
		issues = config.Errorf(issues, "dates", "end %s is before start %s",
			c.End.Format("2006-01-02"), c.Start.Format("2006-01-02"))
	}

	switch c.Quality {
	case "", "quick", "balanced", "high":
	default:
		issues = config.Errorf(issues, "quality", "unknown level %q", c.Quality)
	}
	switch c.Variance {
	case "", "low", "medium", "high":
	default:
		issues = config.Errorf(issues, "variance", "unknown level %q", c.Variance)
	}
	if c.NullPercent < 0 || c.NullPercent > 100 {
		issues = config.Errorf(issues, "null_percent", "must be in [0, 100], got %g", c.NullPercent)
	}
	if !postprocess.ValidOutlierFrequency(c.Outliers) {
		issues = config.Errorf(issues, "outliers", "unknown frequency %q", c.Outliers)
	}

	return issues
}

// Progress is a point-in-time snapshot of a running generation.
type Progress struct {
	Done  int
	Total int
}

// Percent returns completion as 0-100.
func (p Progress) Percent() float64 {
	if p.Total <= 0 {
		return 0
	}
	return float64(p.Done) / float64(p.Total) * 100
}

// Engine runs generation requests. The zero value is usable; Logger and the
// seed function are optional seams.
type Engine struct {
	Logger Logger

	// newSeed is a test seam. When nil, time-derived seeds are used for
	// requests that do not carry their own.
	newSeed func() int64
}

func (e *Engine) logger() func(format string, v ...any) {
	if e.Logger == nil {
		l := log.New(discardWriter{}, "", 0)
		return l.Printf
	}
	return e.Logger.Printf
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }

func (e *Engine) seedFor(cfg Config) int64 {
	if cfg.Seed != 0 {
		return cfg.Seed
	}
	if e.newSeed != nil {
		return e.newSeed()
	}
	return time.Now().UnixNano()
}

// Generate runs one request synchronously. The context is checked at each
// progress boundary; a canceled run returns ctx.Err().
func (e *Engine) Generate(ctx context.Context, cfg Config) (*dataset.Dataset, error) {
	return e.generate(ctx, cfg, nil)
}

func (e *Engine) generate(ctx context.Context, cfg Config, report generator.ProgressFunc) (*dataset.Dataset, error) {
	logf := e.logger()

	if issues := cfg.Validate(); config.HasError(issues) {
		for _, iss := range issues {
			logf("config %s", iss)
		}
		return nil, fmt.Errorf("invalid generation config: %s", firstError(issues).Message)
	}

	industry, err := schema.ParseIndustry(cfg.Industry)
	if err != nil {
		return nil, err
	}
	gen, err := generator.ForIndustry(industry)
	if err != nil {
		return nil, err
	}

	seed := e.seedFor(cfg)
	rng := random.New(seed)
	tags := []string{"industry:" + industry.String()}

	logf("stage=generate industry=%s rows=%d seed=%d", industry, cfg.Rows, seed)
	start := time.Now()

	// Cancellation is observed at progress boundaries. A canceled run still
	// finishes its current batch; its result is discarded.
	var canceled error
	wrapped := func(done int) {
		if canceled == nil && ctx.Err() != nil {
			canceled = ctx.Err()
		}
		if report != nil && canceled == nil {
			report(done)
		}
	}

	records := gen.Generate(rng, cfg.Rows, generator.DateRange{Start: cfg.Start, End: cfg.End}, wrapped)
	if canceled != nil {
		return nil, canceled
	}

	dur := time.Since(start)
	logf("stage=generate ok rows=%d duration=%s", len(records), dur.Truncate(time.Millisecond))
	metrics.IncCounter("dataforge.rows_generated", float64(len(records)), tags)
	metrics.ObserveHistogram("dataforge.generate_seconds", dur.Seconds(), tags)

	if cfg.NullPercent > 0 {
		var nulled int
		records, nulled = postprocess.ApplyNulls(rng, records, cfg.NullPercent)
		metrics.IncCounter("dataforge.nulls_injected", float64(nulled), tags)
	}
	if rate := postprocess.OutlierRate(cfg.Outliers); rate > 0 {
		var scaled int
		records, scaled = postprocess.ApplyOutliers(rng, records, rate)
		metrics.IncCounter("dataforge.outliers_injected", float64(scaled), tags)
	}

	return &dataset.Dataset{Industry: industry, Records: records}, nil
}

func firstError(issues []config.Issue) config.Issue {
	for _, iss := range issues {
		if iss.Severity == config.SeverityError {
			return iss
		}
	}
	return config.Issue{}
}
