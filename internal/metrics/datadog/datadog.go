// Package datadog implements a Datadog backend for the internal/metrics
// package.
//
// The backend buffers observations in memory (fast, lock-protected),
// periodically flushes them on a ticker (default once per minute), and
// flushes one final time on Close. A short one-shot generation run gets a
// single tail submission; a long-lived daemon gets an actual time series.
//
// Concurrency model:
//   - Any goroutine may call IncCounter/ObserveHistogram at any time.
//   - Flush snapshots and resets the buffers under a mutex, then submits
//     out-of-lock.
//   - The flush loop calls Flush periodically; Close stops the loop.
//
// If the process dies with SIGKILL/OOM, Close won't run and the last
// interval of metrics is lost.
package datadog

import (
	"context"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	dd "github.com/DataDog/datadog-api-client-go/v2/api/datadog"
	"github.com/DataDog/datadog-api-client-go/v2/api/datadogV2"
)

// Options controls backend configuration.
type Options struct {
	// JobName becomes tag "job:<name>" on every metric. Defaults to
	// "dataforge".
	JobName string

	// Tags are extra Datadog tags (e.g. []string{"env:prod"}).
	Tags []string

	// FlushEvery controls how often buffered metrics are submitted.
	// If <= 0, defaults to 60 seconds.
	FlushEvery time.Duration

	// Unexported test seams. Production code never sets them; unit tests
	// use them to avoid real network submission and nondeterministic clocks.
	now       func() time.Time
	newTicker func(d time.Duration) *time.Ticker
	submitter metricsSubmitter
}

// metricsSubmitter is the minimal slice of the Datadog SDK the backend
// needs. Depending on this interface instead of *datadogV2.MetricsApi lets
// tests inject a fake without HTTP.
type metricsSubmitter interface {
	SubmitMetrics(ctx context.Context, body datadogV2.MetricPayload, params ...datadogV2.SubmitMetricsOptionalParameters) (datadogV2.IntakePayloadAccepted, *http.Response, error)
}

// seriesKey identifies one buffered series. Tags are joined with commas so
// the key is comparable; per-call tag slices are short (industry, format)
// and never contain commas.
type seriesKey struct {
	name string
	tags string
}

// Backend implements metrics.Backend for Datadog.
type Backend struct {
	api metricsSubmitter
	ctx context.Context

	flushEvery time.Duration
	stopCh     chan struct{}
	doneCh     chan struct{}

	baseTags []string

	now       func() time.Time
	newTicker func(d time.Duration) *time.Ticker

	mu       sync.Mutex
	counters map[seriesKey]float64
	samples  map[seriesKey][]float64
}

func resolveEnvTag() string {
	if v := strings.TrimSpace(os.Getenv("ENV")); v != "" {
		return "env:" + v
	}
	if v := strings.TrimSpace(os.Getenv("DD_ENV")); v != "" {
		return "env:" + v
	}
	return "env:unknown"
}

// NewBackend constructs a Datadog backend using the official client.
// Credentials come from the standard DD_API_KEY/DD_APP_KEY environment
// variables via the SDK's default context; network errors surface during
// Flush, not here.
func NewBackend(parent context.Context, opts Options) (*Backend, error) {
	job := opts.JobName
	if job == "" {
		job = "dataforge"
	}

	flushEvery := opts.FlushEvery
	if flushEvery <= 0 {
		flushEvery = 60 * time.Second
	}

	baseTags := make([]string, 0, 2+len(opts.Tags))
	baseTags = append(baseTags, resolveEnvTag(), "job:"+job)
	baseTags = append(baseTags, opts.Tags...)

	nowFn := opts.now
	if nowFn == nil {
		nowFn = time.Now
	}
	newTicker := opts.newTicker
	if newTicker == nil {
		newTicker = time.NewTicker
	}

	submitter := opts.submitter
	if submitter == nil {
		cfg := dd.NewConfiguration()
		client := dd.NewAPIClient(cfg)
		submitter = datadogV2.NewMetricsApi(client)
	}

	b := &Backend{
		api:        submitter,
		ctx:        dd.NewDefaultContext(parent),
		flushEvery: flushEvery,
		stopCh:     make(chan struct{}),
		doneCh:     make(chan struct{}),
		baseTags:   baseTags,
		now:        nowFn,
		newTicker:  newTicker,
		counters:   make(map[seriesKey]float64),
		samples:    make(map[seriesKey][]float64),
	}

	go b.loop()
	return b, nil
}

func (b *Backend) loop() {
	defer close(b.doneCh)

	t := b.newTicker(b.flushEvery)
	defer t.Stop()

	for {
		select {
		case <-t.C:
			_ = b.Flush()
		case <-b.stopCh:
			return
		}
	}
}

func key(name string, tags []string) seriesKey {
	return seriesKey{name: name, tags: strings.Join(tags, ",")}
}

// IncCounter implements metrics.Backend.
func (b *Backend) IncCounter(name string, delta float64, tags []string) {
	if delta <= 0 {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.counters[key(name, tags)] += delta
}

// ObserveHistogram implements metrics.Backend. Samples are submitted as
// individual gauge points; Datadog-side rollups handle the distribution
// math.
func (b *Backend) ObserveHistogram(name string, value float64, tags []string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	k := key(name, tags)
	b.samples[k] = append(b.samples[k], value)
}

// Flush snapshot-and-resets the buffers, then submits one payload. An empty
// snapshot submits nothing and returns nil.
func (b *Backend) Flush() error {
	b.mu.Lock()
	counters := b.counters
	samples := b.samples
	b.counters = make(map[seriesKey]float64)
	b.samples = make(map[seriesKey][]float64)
	b.mu.Unlock()

	if len(counters) == 0 && len(samples) == 0 {
		return nil
	}

	ts := b.now().Unix()
	var series []datadogV2.MetricSeries

	for k, v := range counters {
		series = append(series, datadogV2.MetricSeries{
			Metric: k.name,
			Type:   datadogV2.METRICINTAKETYPE_COUNT.Ptr(),
			Points: []datadogV2.MetricPoint{{
				Timestamp: dd.PtrInt64(ts),
				Value:     dd.PtrFloat64(v),
			}},
			Tags: b.tagsFor(k),
		})
	}

	for k, vals := range samples {
		points := make([]datadogV2.MetricPoint, 0, len(vals))
		for _, v := range vals {
			points = append(points, datadogV2.MetricPoint{
				Timestamp: dd.PtrInt64(ts),
				Value:     dd.PtrFloat64(v),
			})
		}
		series = append(series, datadogV2.MetricSeries{
			Metric: k.name,
			Type:   datadogV2.METRICINTAKETYPE_GAUGE.Ptr(),
			Points: points,
			Tags:   b.tagsFor(k),
		})
	}

	_, _, err := b.api.SubmitMetrics(b.ctx, datadogV2.MetricPayload{Series: series})
	return err
}

func (b *Backend) tagsFor(k seriesKey) []string {
	tags := make([]string, 0, len(b.baseTags)+4)
	tags = append(tags, b.baseTags...)
	if k.tags != "" {
		tags = append(tags, strings.Split(k.tags, ",")...)
	}
	return tags
}

// Close stops the flush loop and performs one final Flush. Close exactly
// once; a second Close panics on the already-closed stop channel, the
// usual contract for process-lifetime backends.
func (b *Backend) Close() error {
	close(b.stopCh)
	<-b.doneCh
	return b.Flush()
}

// ParseTagsCSV turns "a:b, c:d" into []string{"a:b", "c:d"}. Empty input
// yields nil.
func ParseTagsCSV(s string) []string {
	var tags []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
