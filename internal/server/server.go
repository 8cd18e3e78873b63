// Package server exposes the generation engine over HTTP. Handlers are thin:
// bind, validate, call the engine, translate errors to status codes.
package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"dataforge/internal/config"
	"dataforge/internal/engine"
	"dataforge/internal/export"
	"dataforge/internal/schema"
)

// maxSyncRows bounds POST /api/generate. Larger requests must go through
// the async job API.
const maxSyncRows = 10_000

type Handler struct {
	Engine   *engine.Engine
	Defaults config.Defaults

	jobs *jobRegistry
}

// NewHandler wires a handler around an engine. Zero-value defaults fall back
// to config.Default().
func NewHandler(eng *engine.Engine, defaults config.Defaults, maxJobs int) *Handler {
	if defaults == (config.Defaults{}) {
		defaults = config.Default().Defaults
	}
	return &Handler{
		Engine:   eng,
		Defaults: defaults,
		jobs:     newJobRegistry(maxJobs),
	}
}

// NewRouter builds the gin engine with all API routes.
func NewRouter(h *Handler) *gin.Engine {
	r := gin.Default()

	api := r.Group("/api")
	{
		api.GET("/industries", h.GetIndustries)
		api.GET("/schemas/:industry", h.GetSchema)
		api.POST("/generate", h.Generate)
		api.POST("/jobs", h.StartJob)
		api.GET("/jobs/:id", h.GetJob)
		api.GET("/jobs/:id/result", h.GetJobResult)
		api.DELETE("/jobs/:id", h.CancelJob)
	}
	return r
}

func (h *Handler) GetIndustries(c *gin.Context) {
	type entry struct {
		Tag  string `json:"tag"`
		Name string `json:"name"`
	}
	out := make([]entry, 0, len(schema.Industries()))
	for _, ind := range schema.Industries() {
		out = append(out, entry{Tag: ind.String(), Name: ind.DisplayName()})
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) GetSchema(c *gin.Context) {
	ind, err := schema.ParseIndustry(c.Param("industry"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"industry": ind.String(),
		"fields":   schema.Get(ind),
	})
}

// generateRequest is the JSON body of POST /api/generate and POST /api/jobs.
// Omitted knobs fall back to the configured defaults.
type generateRequest struct {
	Industry    string   `json:"industry" binding:"required"`
	Rows        int      `json:"rows"`
	StartDate   string   `json:"start_date" binding:"required"`
	EndDate     string   `json:"end_date" binding:"required"`
	Quality     string   `json:"quality"`
	Variance    string   `json:"variance"`
	NullPercent *float64 `json:"null_percent"`
	Outliers    string   `json:"outliers"`
	Seed        int64    `json:"seed"`
}

func (h *Handler) engineConfig(req generateRequest) (engine.Config, error) {
	cfg := engine.Config{
		Industry:    req.Industry,
		Rows:        req.Rows,
		Quality:     req.Quality,
		Variance:    req.Variance,
		Outliers:    req.Outliers,
		Seed:        req.Seed,
		NullPercent: h.Defaults.NullPercent,
	}
	if cfg.Rows == 0 {
		cfg.Rows = h.Defaults.Rows
	}
	if cfg.Quality == "" {
		cfg.Quality = h.Defaults.Quality
	}
	if cfg.Variance == "" {
		cfg.Variance = h.Defaults.Variance
	}
	if cfg.Outliers == "" {
		cfg.Outliers = h.Defaults.Outliers
	}
	if req.NullPercent != nil {
		cfg.NullPercent = *req.NullPercent
	}

	var err error
	if cfg.Start, err = time.Parse("2006-01-02", req.StartDate); err != nil {
		return cfg, err
	}
	if cfg.End, err = time.Parse("2006-01-02", req.EndDate); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Generate handles the synchronous path. Requests above maxSyncRows are
// rejected with a pointer at the job API.
func (h *Handler) Generate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cfg, err := h.engineConfig(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if cfg.Rows > maxSyncRows {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "rows exceeds the synchronous limit; use POST /api/jobs",
			"limit": maxSyncRows,
		})
		return
	}

	if issues := cfg.Validate(); config.HasError(issues) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "issues": issueStrings(issues)})
		return
	}

	ds, err := h.Engine.Generate(c.Request.Context(), cfg)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"industry": ds.Industry.String(),
		"columns":  ds.Columns(),
		"rows":     ds.Len(),
		"records":  ds.Records,
	})
}

// StartJob launches an async generation and returns its id immediately.
func (h *Handler) StartJob(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cfg, err := h.engineConfig(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if issues := cfg.Validate(); config.HasError(issues) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "issues": issueStrings(issues)})
		return
	}

	state, ok := h.jobs.start(h.Engine, cfg)
	if !ok {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many concurrent jobs"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"job_id": state.id, "status": state.snapshot().Status})
}

// GetJob reports progress or the terminal state of a job.
func (h *Handler) GetJob(c *gin.Context) {
	state, ok := h.jobs.get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown job"})
		return
	}
	c.JSON(http.StatusOK, state.snapshot())
}

// GetJobResult streams a finished job's dataset in the requested format
// (query parameter "format", default json).
func (h *Handler) GetJobResult(c *gin.Context) {
	state, ok := h.jobs.get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown job"})
		return
	}

	snap := state.snapshot()
	if snap.Status != jobStatusDone {
		c.JSON(http.StatusConflict, gin.H{"error": "job is not finished", "status": snap.Status})
		return
	}

	format := c.DefaultQuery("format", "json")
	if !export.ValidFormat(format) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported format", "formats": export.Formats})
		return
	}

	ds := state.dataset()
	name := ds.Industry.String() + "." + format
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Header("Content-Type", contentType(format))
	if err := export.Write(c.Writer, ds, format, "", ""); err != nil {
		// Headers are already gone; all we can do is abort the stream.
		_ = c.Error(err)
		c.Abort()
	}
}

// CancelJob requests a running job stop. Canceling a finished job is a no-op.
func (h *Handler) CancelJob(c *gin.Context) {
	state, ok := h.jobs.get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown job"})
		return
	}
	state.cancel()
	c.JSON(http.StatusOK, gin.H{"job_id": state.id, "status": state.snapshot().Status})
}

func contentType(format string) string {
	switch format {
	case "csv":
		return "text/csv"
	case "json":
		return "application/json"
	case "sql":
		return "application/sql"
	case "xlsx":
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/octet-stream"
	}
}

func issueStrings(issues []config.Issue) []string {
	out := make([]string, len(issues))
	for i, iss := range issues {
		out[i] = iss.String()
	}
	return out
}
