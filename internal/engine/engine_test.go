package engine

import (
	"context"
	"testing"
	"time"

	"dataforge/internal/config"
	"dataforge/internal/schema"
)

func validConfig() Config {
	return Config{
		Industry: "healthcare",
		Rows:     100,
		Start:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		End:      time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		Quality:  "balanced",
		Variance: "medium",
		Outliers: "none",
		Seed:     1,
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		path   string
	}{
		{name: "unknown_industry", mutate: func(c *Config) { c.Industry = "astrology" }, path: "industry"},
		{name: "zero_rows", mutate: func(c *Config) { c.Rows = 0 }, path: "rows"},
		{name: "too_many_rows", mutate: func(c *Config) { c.Rows = MaxRows + 1 }, path: "rows"},
		{name: "end_before_start", mutate: func(c *Config) { c.End = c.Start.AddDate(-1, 0, 0) }, path: "dates"},
		{name: "missing_dates", mutate: func(c *Config) { c.Start, c.End = time.Time{}, time.Time{} }, path: "dates"},
		{name: "bad_quality", mutate: func(c *Config) { c.Quality = "superb" }, path: "quality"},
		{name: "bad_variance", mutate: func(c *Config) { c.Variance = "wild" }, path: "variance"},
		{name: "null_percent_range", mutate: func(c *Config) { c.NullPercent = 120 }, path: "null_percent"},
		{name: "bad_outliers", mutate: func(c *Config) { c.Outliers = "sometimes" }, path: "outliers"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(&cfg)

			issues := cfg.Validate()
			if !config.HasError(issues) {
				t.Fatalf("expected an error issue, got %v", issues)
			}
			found := false
			for _, iss := range issues {
				if iss.Path == tc.path {
					found = true
				}
			}
			if !found {
				t.Fatalf("no issue at path %q: %v", tc.path, issues)
			}
		})
	}

	if issues := validConfig().Validate(); len(issues) != 0 {
		t.Fatalf("valid config produced issues: %v", issues)
	}
}

func TestGenerate(t *testing.T) {
	eng := &Engine{}

	ds, err := eng.Generate(context.Background(), validConfig())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if ds.Industry != schema.Healthcare {
		t.Fatalf("industry=%v, want healthcare", ds.Industry)
	}
	if ds.Len() != 100 {
		t.Fatalf("rows=%d, want 100", ds.Len())
	}
}

func TestGenerateInvalidConfig(t *testing.T) {
	eng := &Engine{}

	cfg := validConfig()
	cfg.Industry = "astrology"
	if _, err := eng.Generate(context.Background(), cfg); err == nil {
		t.Fatalf("expected error for unknown industry")
	}
}

func TestGenerateDeterministicPerSeed(t *testing.T) {
	eng := &Engine{}

	a, err := eng.Generate(context.Background(), validConfig())
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	b, err := eng.Generate(context.Background(), validConfig())
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	if a.Records[0]["patient_id"] != b.Records[0]["patient_id"] {
		t.Fatalf("seeded runs differ: %v vs %v", a.Records[0]["patient_id"], b.Records[0]["patient_id"])
	}
}

func TestGenerateAppliesNulls(t *testing.T) {
	eng := &Engine{}

	cfg := validConfig()
	cfg.Rows = 500
	cfg.NullPercent = 100

	ds, err := eng.Generate(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	nulled := 0
	for _, rec := range ds.Records {
		if rec["insurance_provider"] == nil {
			nulled++
		}
		if rec["patient_id"] == nil {
			t.Fatalf("protected field nulled")
		}
	}
	if nulled == 0 {
		t.Fatalf("no fields nulled at percent 100")
	}
}

func TestGenerateCanceledContext(t *testing.T) {
	eng := &Engine{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := validConfig()
	cfg.Rows = 5000

	if _, err := eng.Generate(ctx, cfg); err == nil {
		t.Fatalf("expected cancellation error")
	}
}

func TestStartJobLifecycle(t *testing.T) {
	eng := &Engine{}

	cfg := validConfig()
	cfg.Rows = 3500

	job := eng.Start(context.Background(), cfg)
	if job.ID == "" {
		t.Fatalf("job has no id")
	}

	var snapshots []Progress
	timeout := time.After(10 * time.Second)

	for {
		select {
		case p, ok := <-job.Progress:
			if ok {
				snapshots = append(snapshots, p)
			}
		case res := <-job.Done:
			if res.Err != nil {
				t.Fatalf("job failed: %v", res.Err)
			}
			if res.Dataset.Len() != 3500 {
				t.Fatalf("rows=%d, want 3500", res.Dataset.Len())
			}
			// Progress must be monotonic in Done.
			prev := -1
			for _, p := range snapshots {
				if p.Done <= prev {
					t.Fatalf("progress not monotonic: %v", snapshots)
				}
				prev = p.Done
				if p.Total != 3500 {
					t.Fatalf("progress total=%d, want 3500", p.Total)
				}
			}

			// Done delivers exactly one terminal event.
			select {
			case extra := <-job.Done:
				t.Fatalf("second terminal event: %+v", extra)
			case <-time.After(50 * time.Millisecond):
			}
			return
		case <-timeout:
			t.Fatalf("job did not finish")
		}
	}
}

func TestStartJobValidationError(t *testing.T) {
	eng := &Engine{}

	cfg := validConfig()
	cfg.Rows = 0

	job := eng.Start(context.Background(), cfg)

	select {
	case res := <-job.Done:
		if res.Err == nil {
			t.Fatalf("expected validation error")
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("no terminal event")
	}
}

func TestProgressPercent(t *testing.T) {
	p := Progress{Done: 500, Total: 2000}
	if got := p.Percent(); got != 25 {
		t.Fatalf("Percent()=%v, want 25", got)
	}
	if (Progress{}).Percent() != 0 {
		t.Fatalf("zero progress should be 0 percent")
	}
}
