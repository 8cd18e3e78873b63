// Command dataforge is the one-shot CLI: generate a dataset for one industry
// and write it to a file, stdout, or a database sink.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"dataforge/internal/config"
	"dataforge/internal/engine"
	"dataforge/internal/export"
	"dataforge/internal/metrics"
	"dataforge/internal/metrics/datadog"
	"dataforge/internal/random"
	"dataforge/internal/storage"

	// register all backends with the storage factory.
	// flags specify which to use but we need to build in support for all of them.
	_ "dataforge/internal/storage/all"
)

func main() {
	var (
		industry          string
		rows              int
		startDate         string
		endDate           string
		quality           string
		variance          string
		nullPercent       float64
		outliers          string
		seed              int64
		format            string
		outPath           string
		sinkKind          string
		sinkDSN           string
		tableOverride     string
		metricsBackendFlg string
		validate          bool
	)

	flag.StringVar(&industry, "industry", "", "industry to generate (healthcare, finance, ...)")
	flag.IntVar(&rows, "rows", 100, "number of records to generate")
	flag.StringVar(&startDate, "start", "", "start date, YYYY-MM-DD (default: one year ago)")
	flag.StringVar(&endDate, "end", "", "end date, YYYY-MM-DD (default: today)")
	flag.StringVar(&quality, "quality", "balanced", "generation quality (quick, balanced, high)")
	flag.StringVar(&variance, "variance", "medium", "value variance (low, medium, high)")
	flag.Float64Var(&nullPercent, "null-percent", 0, "percent of nullable fields to blank, 0-100")
	flag.StringVar(&outliers, "outliers", "none", "outlier frequency (none, rare, occasional, frequent)")
	flag.Int64Var(&seed, "seed", 0, "random seed (0 = time-derived)")
	flag.StringVar(&format, "format", "csv", "output format ("+strings.Join(export.Formats, ", ")+")")
	flag.StringVar(&outPath, "o", "", "output file path (default: stdout)")
	flag.StringVar(&sinkKind, "sink", "", "database sink kind instead of file output (postgres, mssql, sqlite)")
	flag.StringVar(&sinkDSN, "sink-dsn", "", "database sink DSN (overrides env SINK_DSN)")
	flag.StringVar(&tableOverride, "table", "", "table name for -format sql (default: <industry>_data)")
	flag.StringVar(&metricsBackendFlg, "metrics-backend", "", "metrics backend to use (datadog, none)")
	flag.BoolVar(&validate, "validate", false, "validate the request and exit")
	verbose := flag.Bool("v", false, "enable verbose logs")

	flag.Parse()

	// Optional .env for DSNs and Datadog credentials.
	_ = godotenv.Load()

	now := time.Now()
	if startDate == "" {
		startDate = now.AddDate(-1, 0, 0).Format("2006-01-02")
	}
	if endDate == "" {
		endDate = now.Format("2006-01-02")
	}

	cfg := engine.Config{
		Industry:    industry,
		Rows:        rows,
		Quality:     quality,
		Variance:    variance,
		NullPercent: nullPercent,
		Outliers:    outliers,
		Seed:        seed,
	}

	var err error
	if cfg.Start, err = time.Parse("2006-01-02", startDate); err != nil {
		fatalf("parse -start: %v", err)
	}
	if cfg.End, err = time.Parse("2006-01-02", endDate); err != nil {
		fatalf("parse -end: %v", err)
	}

	issues := cfg.Validate()
	for _, iss := range issues {
		fmt.Fprintf(os.Stderr, "%s\n", iss)
	}
	if config.HasError(issues) {
		log.Printf("Request is invalid")
		os.Exit(1)
	}
	if validate {
		log.Printf("Request is valid")
		os.Exit(0)
	}

	if sinkKind == "" && !export.ValidFormat(format) {
		fatalf("unsupported -format %q (want one of %s)", format, strings.Join(export.Formats, ", "))
	}

	closeMetrics := setupMetrics(metricsBackendFlg, *verbose)
	defer closeMetrics()

	ctx := context.Background()
	start := time.Now()

	eng := &engine.Engine{}
	if *verbose {
		eng.Logger = log.Default()
	}

	ds, err := eng.Generate(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if sinkKind != "" {
		dsn := sinkDSN
		if dsn == "" {
			dsn = os.Getenv("SINK_DSN")
		}
		sink, err := storage.New(ctx, storage.Config{Kind: sinkKind, DSN: dsn})
		if err != nil {
			log.Fatalf("%v", err)
		}
		defer sink.Close()

		if err := sink.EnsureTable(ctx, ds); err != nil {
			log.Fatalf("%v", err)
		}
		n, err := sink.InsertRecords(ctx, ds)
		if err != nil {
			log.Fatalf("%v", err)
		}
		if *verbose {
			log.Printf("inserted %s rows into %s", random.FormatNumber(int(n)), storage.TableName(ds))
		}
	} else {
		var w io.Writer = os.Stdout
		if outPath != "" {
			f, err := os.Create(outPath)
			if err != nil {
				fatalf("create output: %v", err)
			}
			defer f.Close()
			w = f
		}
		if err := export.Write(w, ds, format, tableOverride, ""); err != nil {
			log.Fatalf("%v", err)
		}
	}

	if *verbose {
		log.Printf("completed %s rows in %s", random.FormatNumber(ds.Len()), time.Since(start).Truncate(time.Millisecond))
	}
}

// setupMetrics installs the configured metrics backend and returns the
// shutdown func. The backend is decided flag -> env -> default (none).
func setupMetrics(backendFlag string, verbose bool) func() {
	backendName := backendFlag
	if backendName == "" {
		backendName = os.Getenv("METRICS_BACKEND")
	}

	switch backendName {
	case "datadog":
		extraTags := datadog.ParseTagsCSV(os.Getenv("METRICS_TAGS"))

		b, err := datadog.NewBackend(context.Background(), datadog.Options{
			JobName:    "dataforge",
			Tags:       extraTags,
			FlushEvery: 60 * time.Second,
		})
		if err != nil {
			log.Printf("metrics: failed to init datadog backend: %v; using nop", err)
			return func() {}
		}
		if verbose {
			log.Printf("metrics: backend=%v tags=%v", backendName, extraTags)
		}
		metrics.SetBackend(b)

		// Close stops the periodic flush loop and performs a final Flush.
		return func() {
			if err := b.Close(); err != nil {
				log.Printf("metrics: datadog close/flush error: %v", err)
			}
		}

	case "", "none":
		if verbose {
			log.Printf("metrics: disabled (backend=%q)", backendName)
		}

	default:
		log.Printf("metrics: unknown backend %q; metrics disabled", backendName)
	}
	return func() {}
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
