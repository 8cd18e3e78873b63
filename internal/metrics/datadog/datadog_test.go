package datadog

import (
	"context"
	"net/http"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/DataDog/datadog-api-client-go/v2/api/datadogV2"
)

// fakeSubmitter captures payloads submitted by Backend.Flush().
type fakeSubmitter struct {
	mu       sync.Mutex
	payloads []datadogV2.MetricPayload
	err      error
}

func (f *fakeSubmitter) SubmitMetrics(ctx context.Context, body datadogV2.MetricPayload, params ...datadogV2.SubmitMetricsOptionalParameters) (datadogV2.IntakePayloadAccepted, *http.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.payloads = append(f.payloads, body)
	return datadogV2.IntakePayloadAccepted{}, nil, f.err
}

func (f *fakeSubmitter) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.payloads)
}

func (f *fakeSubmitter) last() (datadogV2.MetricPayload, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.payloads) == 0 {
		return datadogV2.MetricPayload{}, false
	}
	return f.payloads[len(f.payloads)-1], true
}

// newTestBackend builds a Backend with a fake submitter and a ticker that
// never fires, so only explicit Flush/Close submit.
func newTestBackend(t *testing.T, fake *fakeSubmitter) *Backend {
	t.Helper()

	b, err := NewBackend(context.Background(), Options{
		JobName: "test_job",
		now:     func() time.Time { return time.Unix(1700000000, 0) },
		newTicker: func(d time.Duration) *time.Ticker {
			return time.NewTicker(24 * time.Hour)
		},
		submitter: fake,
	})
	if err != nil {
		t.Fatalf("NewBackend: %v", err)
	}
	return b
}

// TestResolveEnvTag verifies environment-tag precedence and defaults.
//
// Edge cases:
//   - ENV wins over DD_ENV.
//   - Whitespace-only env vars are ignored.
//   - If neither is set, "env:unknown" is returned.
func TestResolveEnvTag(t *testing.T) {
	oldENV := os.Getenv("ENV")
	oldDDENV := os.Getenv("DD_ENV")
	t.Cleanup(func() {
		_ = os.Setenv("ENV", oldENV)
		_ = os.Setenv("DD_ENV", oldDDENV)
	})

	tests := []struct {
		name string
		env  string
		dd   string
		want string
	}{
		{name: "ENV_wins", env: "prod", dd: "stage", want: "env:prod"},
		{name: "DD_ENV_used_when_ENV_empty", env: "", dd: "stage", want: "env:stage"},
		{name: "whitespace_ignored", env: "   ", dd: "\n\t", want: "env:unknown"},
		{name: "default_unknown", env: "", dd: "", want: "env:unknown"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_ = os.Setenv("ENV", tc.env)
			_ = os.Setenv("DD_ENV", tc.dd)
			if got := resolveEnvTag(); got != tc.want {
				t.Fatalf("resolveEnvTag()=%q, want %q", got, tc.want)
			}
		})
	}
}

func TestFlushEmptySubmitsNothing(t *testing.T) {
	fake := &fakeSubmitter{}
	b := newTestBackend(t, fake)

	if err := b.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if got := fake.count(); got != 0 {
		t.Fatalf("submissions=%d, want 0", got)
	}
	_ = b.Close()
}

func TestFlushSubmitsCountersAndGauges(t *testing.T) {
	fake := &fakeSubmitter{}
	b := newTestBackend(t, fake)

	b.IncCounter("dataforge.rows_generated", 100, []string{"industry:finance"})
	b.IncCounter("dataforge.rows_generated", 50, []string{"industry:finance"})
	b.ObserveHistogram("dataforge.generate_seconds", 1.5, []string{"industry:finance"})
	b.ObserveHistogram("dataforge.generate_seconds", 2.5, []string{"industry:finance"})

	if err := b.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	payload, ok := fake.last()
	if !ok {
		t.Fatalf("no payload submitted")
	}
	if len(payload.Series) != 2 {
		t.Fatalf("series=%d, want 2", len(payload.Series))
	}

	var counter, gauge *datadogV2.MetricSeries
	for i := range payload.Series {
		switch payload.Series[i].Metric {
		case "dataforge.rows_generated":
			counter = &payload.Series[i]
		case "dataforge.generate_seconds":
			gauge = &payload.Series[i]
		}
	}

	if counter == nil {
		t.Fatalf("counter series missing")
	}
	if counter.Type == nil || *counter.Type != datadogV2.METRICINTAKETYPE_COUNT {
		t.Fatalf("counter type=%v, want COUNT", counter.Type)
	}
	if len(counter.Points) != 1 || counter.Points[0].Value == nil || *counter.Points[0].Value != 150 {
		t.Fatalf("counter points=%v, want single value 150", counter.Points)
	}

	if gauge == nil {
		t.Fatalf("gauge series missing")
	}
	if gauge.Type == nil || *gauge.Type != datadogV2.METRICINTAKETYPE_GAUGE {
		t.Fatalf("gauge type=%v, want GAUGE", gauge.Type)
	}
	if len(gauge.Points) != 2 {
		t.Fatalf("gauge points=%d, want 2", len(gauge.Points))
	}

	hasTag := func(tags []string, want string) bool {
		for _, tag := range tags {
			if tag == want {
				return true
			}
		}
		return false
	}
	if !hasTag(counter.Tags, "job:test_job") || !hasTag(counter.Tags, "industry:finance") {
		t.Fatalf("counter tags=%v, want job and industry tags", counter.Tags)
	}

	// Flush resets the buffers.
	if err := b.Flush(); err != nil {
		t.Fatalf("second Flush: %v", err)
	}
	if got := fake.count(); got != 1 {
		t.Fatalf("submissions=%d, want 1 (empty flush must not submit)", got)
	}
	_ = b.Close()
}

func TestZeroAndNegativeCounterDeltasIgnored(t *testing.T) {
	fake := &fakeSubmitter{}
	b := newTestBackend(t, fake)

	b.IncCounter("dataforge.rows_generated", 0, nil)
	b.IncCounter("dataforge.rows_generated", -5, nil)

	if err := b.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if got := fake.count(); got != 0 {
		t.Fatalf("submissions=%d, want 0", got)
	}
	_ = b.Close()
}

func TestCloseFlushesBufferedMetrics(t *testing.T) {
	fake := &fakeSubmitter{}
	b := newTestBackend(t, fake)

	b.IncCounter("dataforge.rows_generated", 7, nil)

	if err := b.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if got := fake.count(); got != 1 {
		t.Fatalf("submissions=%d, want 1 (Close must flush)", got)
	}
}

func TestPeriodicFlushLoop(t *testing.T) {
	fake := &fakeSubmitter{}

	tick := make(chan time.Time)
	b, err := NewBackend(context.Background(), Options{
		JobName: "test_job",
		now:     time.Now,
		newTicker: func(d time.Duration) *time.Ticker {
			t := time.NewTicker(24 * time.Hour)
			t.C = tick
			return t
		},
		submitter: fake,
	})
	if err != nil {
		t.Fatalf("NewBackend: %v", err)
	}

	b.IncCounter("dataforge.rows_generated", 1, nil)
	tick <- time.Now()

	deadline := time.After(2 * time.Second)
	for fake.count() == 0 {
		select {
		case <-deadline:
			t.Fatalf("flush loop did not submit after tick")
		case <-time.After(5 * time.Millisecond):
		}
	}
	_ = b.Close()
}

func TestParseTagsCSV(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		{name: "empty", in: "", want: 0},
		{name: "single", in: "env:prod", want: 1},
		{name: "spaces_and_empties", in: " a:b , , c:d ", want: 2},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseTagsCSV(tc.in)
			if len(got) != tc.want {
				t.Fatalf("ParseTagsCSV(%q)=%v, want %d tags", tc.in, got, tc.want)
			}
		})
	}
}
