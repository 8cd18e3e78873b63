// Command dataforged is the HTTP daemon: it serves the generation API until
// SIGINT/SIGTERM, then shuts down gracefully.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"dataforge/internal/config"
	"dataforge/internal/engine"
	"dataforge/internal/metrics"
	"dataforge/internal/metrics/datadog"
	"dataforge/internal/server"
)

func main() {
	var (
		cfgPath  string
		validate bool
	)

	flag.StringVar(&cfgPath, "config", "", "app config YAML path (default: built-in defaults)")
	flag.BoolVar(&validate, "validate", false, "validate the configuration and exit")
	flag.Parse()

	// Optional .env for Datadog credentials and sink DSNs.
	_ = godotenv.Load()

	app := config.Default()
	if cfgPath != "" {
		var err error
		app, err = config.Load(cfgPath)
		if err != nil {
			fatalf("%v", err)
		}
	}

	issues := config.Validate(app)
	for _, iss := range issues {
		fmt.Fprintf(os.Stderr, "%s\n", iss)
	}
	if config.HasError(issues) {
		log.Printf("Configuration is invalid: %v", cfgPath)
		os.Exit(1)
	}
	if validate {
		log.Printf("Configuration is valid: %v", cfgPath)
		os.Exit(0)
	}

	if app.Metrics.Backend == "datadog" {
		b, err := datadog.NewBackend(context.Background(), datadog.Options{
			JobName: app.Metrics.JobName,
			Tags:    datadog.ParseTagsCSV(app.Metrics.Tags),
		})
		if err != nil {
			log.Printf("metrics: failed to init datadog backend: %v; using nop", err)
		} else {
			metrics.SetBackend(b)
			defer func() {
				if err := b.Close(); err != nil {
					log.Printf("metrics: datadog close/flush error: %v", err)
				}
			}()
		}
	}

	eng := &engine.Engine{Logger: log.Default()}
	h := server.NewHandler(eng, app.Defaults, app.Server.MaxConcurrentJobs)
	router := server.NewRouter(h)

	srv := &http.Server{
		Addr:    app.Server.ListenAddr,
		Handler: router,
	}

	go func() {
		log.Printf("listening on %s", app.Server.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("serve: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
