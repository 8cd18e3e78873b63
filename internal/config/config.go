// Package config defines the application configuration for the generator
// daemon and CLI, plus the shared validation issue types used across the
// codebase.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Severity classifies a validation issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is one validation finding. Path is a dotted location inside the
// config ("server.listen_addr", "defaults.rows").
type Issue struct {
	Severity Severity
	Path     string
	Message  string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s: %s", i.Severity, i.Path, i.Message)
}

// Errorf appends an error-severity issue.
func Errorf(issues []Issue, path, format string, args ...any) []Issue {
	return append(issues, Issue{Severity: SeverityError, Path: path, Message: fmt.Sprintf(format, args...)})
}

// Warnf appends a warning-severity issue.
func Warnf(issues []Issue, path, format string, args ...any) []Issue {
	return append(issues, Issue{Severity: SeverityWarning, Path: path, Message: fmt.Sprintf(format, args...)})
}

// HasError reports whether any issue is an error.
func HasError(issues []Issue) bool {
	for _, iss := range issues {
		if iss.Severity == SeverityError {
			return true
		}
	}
	return false
}

// App is the top-level configuration file layout.
type App struct {
	Server   Server   `yaml:"server"`
	Metrics  Metrics  `yaml:"metrics"`
	Storage  Storage  `yaml:"storage"`
	Defaults Defaults `yaml:"defaults"`
}

// Server configures the HTTP daemon.
type Server struct {
	ListenAddr string `yaml:"listen_addr"`

	// MaxConcurrentJobs bounds in-flight async generation jobs. Zero means
	// the built-in default of 4.
	MaxConcurrentJobs int `yaml:"max_concurrent_jobs"`
}

// Metrics configures the metrics backend.
type Metrics struct {
	// Backend is "datadog" or "none".
	Backend string `yaml:"backend"`
	JobName string `yaml:"job_name"`
	Tags    string `yaml:"tags"` // comma-separated extra tags
}

// Storage configures the optional database sink.
type Storage struct {
	// Kind is "postgres" | "mssql" | "sqlite" | "" (disabled).
	Kind string `yaml:"kind"`
	DSN  string `yaml:"dsn"`
}

// Defaults are fallback generation parameters for requests that omit them.
type Defaults struct {
	Rows        int     `yaml:"rows"`
	Quality     string  `yaml:"quality"`
	Variance    string  `yaml:"variance"`
	NullPercent float64 `yaml:"null_percent"`
	Outliers    string  `yaml:"outliers"`
}

// Default returns the configuration used when no file is supplied.
func Default() App {
	return App{
		Server: Server{
			ListenAddr:        ":8080",
			MaxConcurrentJobs: 4,
		},
		Metrics: Metrics{
			Backend: "none",
			JobName: "dataforge",
		},
		Defaults: Defaults{
			Rows:        100,
			Quality:     "balanced",
			Variance:    "medium",
			NullPercent: 0,
			Outliers:    "none",
		},
	}
}

// Load reads a YAML config file, layering it over Default. Missing keys keep
// their defaults.
func Load(path string) (App, error) {
	app := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return app, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &app); err != nil {
		return app, fmt.Errorf("parse config %s: %w", path, err)
	}
	return app, nil
}

// Validate reports configuration problems. Warnings do not block startup.
func Validate(app App) []Issue {
	var issues []Issue

	if app.Server.ListenAddr == "" {
		issues = Errorf(issues, "server.listen_addr", "must not be empty")
	}
	if app.Server.MaxConcurrentJobs < 0 {
		issues = Errorf(issues, "server.max_concurrent_jobs", "must be >= 0, got %d", app.Server.MaxConcurrentJobs)
	}

	switch app.Metrics.Backend {
	case "", "none", "datadog":
	default:
		issues = Errorf(issues, "metrics.backend", "unknown backend %q (want datadog or none)", app.Metrics.Backend)
	}

	switch app.Storage.Kind {
	case "", "postgres", "mssql", "sqlite":
	default:
		issues = Errorf(issues, "storage.kind", "unknown storage kind %q", app.Storage.Kind)
	}
	if app.Storage.Kind != "" && app.Storage.DSN == "" {
		issues = Errorf(issues, "storage.dsn", "required when storage.kind is set")
	}

	if app.Defaults.Rows < 1 {
		issues = Errorf(issues, "defaults.rows", "must be >= 1, got %d", app.Defaults.Rows)
	}
	if app.Defaults.NullPercent < 0 || app.Defaults.NullPercent > 100 {
		issues = Errorf(issues, "defaults.null_percent", "must be in [0, 100], got %g", app.Defaults.NullPercent)
	}

	return issues
}
