package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"dataforge/internal/config"
	"dataforge/internal/engine"
)

func newTestRouter(maxJobs int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(&engine.Engine{}, config.Defaults{}, maxJobs)
	return NewRouter(h)
}

func perform(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
	return out
}

func TestGetIndustries(t *testing.T) {
	r := newTestRouter(0)

	w := perform(r, http.MethodGet, "/api/industries", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, want 200", w.Code)
	}

	var entries []struct {
		Tag  string `json:"tag"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &entries); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(entries) != 8 {
		t.Fatalf("industries=%d, want 8", len(entries))
	}
	seen := map[string]bool{}
	for _, e := range entries {
		if e.Tag == "" || e.Name == "" {
			t.Fatalf("entry with empty tag or name: %+v", e)
		}
		seen[e.Tag] = true
	}
	for _, tag := range []string{"healthcare", "finance", "retail", "logistics"} {
		if !seen[tag] {
			t.Fatalf("missing industry %q in %v", tag, seen)
		}
	}
}

func TestGetSchema(t *testing.T) {
	r := newTestRouter(0)

	w := perform(r, http.MethodGet, "/api/schemas/healthcare", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, want 200", w.Code)
	}
	body := decodeJSON(t, w)
	if body["industry"] != "healthcare" {
		t.Fatalf("industry=%v, want healthcare", body["industry"])
	}
	fields, ok := body["fields"].([]any)
	if !ok || len(fields) == 0 {
		t.Fatalf("fields=%v, want non-empty list", body["fields"])
	}

	w = perform(r, http.MethodGet, "/api/schemas/petcare", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("unknown industry status=%d, want 400", w.Code)
	}
}

func TestGenerateSync(t *testing.T) {
	r := newTestRouter(0)

	body := `{"industry":"finance","rows":25,"start_date":"2024-01-01","end_date":"2024-06-30","seed":7}`
	w := perform(r, http.MethodPost, "/api/generate", body)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}

	resp := decodeJSON(t, w)
	if resp["industry"] != "finance" {
		t.Fatalf("industry=%v, want finance", resp["industry"])
	}
	if rows := resp["rows"].(float64); rows != 25 {
		t.Fatalf("rows=%v, want 25", rows)
	}
	records, ok := resp["records"].([]any)
	if !ok || len(records) != 25 {
		t.Fatalf("records len=%d, want 25", len(records))
	}
	columns, ok := resp["columns"].([]any)
	if !ok || len(columns) == 0 {
		t.Fatalf("columns=%v, want non-empty", resp["columns"])
	}
}

func TestGenerateRejectsBadRequests(t *testing.T) {
	r := newTestRouter(0)

	cases := []struct {
		name string
		body string
	}{
		{"empty body", `{}`},
		{"missing industry", `{"rows":10,"start_date":"2024-01-01","end_date":"2024-06-30"}`},
		{"bad date", `{"industry":"retail","rows":10,"start_date":"01/02/2024","end_date":"2024-06-30"}`},
		{"end before start", `{"industry":"retail","rows":10,"start_date":"2024-06-30","end_date":"2024-01-01"}`},
		{"unknown industry", `{"industry":"petcare","rows":10,"start_date":"2024-01-01","end_date":"2024-06-30"}`},
		{"rows over sync limit", `{"industry":"retail","rows":10001,"start_date":"2024-01-01","end_date":"2024-06-30"}`},
	}
	for _, tc := range cases {
		w := perform(r, http.MethodPost, "/api/generate", tc.body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: status=%d, want 400", tc.name, w.Code)
		}
	}
}

func TestJobLifecycle(t *testing.T) {
	r := newTestRouter(0)

	body := `{"industry":"logistics","rows":3000,"start_date":"2024-01-01","end_date":"2024-12-31","seed":21}`
	w := perform(r, http.MethodPost, "/api/jobs", body)
	if w.Code != http.StatusAccepted {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	resp := decodeJSON(t, w)
	jobID, _ := resp["job_id"].(string)
	if jobID == "" {
		t.Fatalf("missing job_id in %v", resp)
	}

	deadline := time.Now().Add(10 * time.Second)
	var snap map[string]any
	for {
		if time.Now().After(deadline) {
			t.Fatalf("job did not finish, last snapshot %v", snap)
		}
		w = perform(r, http.MethodGet, "/api/jobs/"+jobID, "")
		if w.Code != http.StatusOK {
			t.Fatalf("poll status=%d", w.Code)
		}
		snap = decodeJSON(t, w)
		if snap["status"] == "done" {
			break
		}
		if snap["status"] != "running" {
			t.Fatalf("job ended %v", snap)
		}
		time.Sleep(10 * time.Millisecond)
	}
	if rows := snap["rows"].(float64); rows != 3000 {
		t.Fatalf("rows=%v, want 3000", rows)
	}
	if pct := snap["percent"].(float64); pct != 100 {
		t.Fatalf("percent=%v, want 100", pct)
	}

	w = perform(r, http.MethodGet, "/api/jobs/"+jobID+"/result?format=csv", "")
	if w.Code != http.StatusOK {
		t.Fatalf("result status=%d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/csv" {
		t.Fatalf("content type=%q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "logistics.csv") {
		t.Fatalf("content disposition=%q", cd)
	}
	lines := strings.Split(strings.TrimRight(w.Body.String(), "\n"), "\n")
	if len(lines) != 3001 {
		t.Fatalf("csv lines=%d, want header + 3000 rows", len(lines))
	}

	w = perform(r, http.MethodGet, "/api/jobs/"+jobID+"/result?format=tsv", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("unsupported format status=%d, want 400", w.Code)
	}
}

func TestJobEndpointsUnknownID(t *testing.T) {
	r := newTestRouter(0)

	for _, path := range []string{
		"/api/jobs/no-such-job",
		"/api/jobs/no-such-job/result",
	} {
		w := perform(r, http.MethodGet, path, "")
		if w.Code != http.StatusNotFound {
			t.Fatalf("GET %s status=%d, want 404", path, w.Code)
		}
	}
	w := perform(r, http.MethodDelete, "/api/jobs/no-such-job", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("DELETE status=%d, want 404", w.Code)
	}
}

func TestJobConcurrencyCapAndCancel(t *testing.T) {
	r := newTestRouter(1)

	body := `{"industry":"manufacturing","rows":500000,"start_date":"2024-01-01","end_date":"2024-12-31","seed":3}`
	w := perform(r, http.MethodPost, "/api/jobs", body)
	if w.Code != http.StatusAccepted {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	jobID := decodeJSON(t, w)["job_id"].(string)

	// Cap is 1, so a second job is refused while the first is running.
	w = perform(r, http.MethodPost, "/api/jobs", body)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("second job status=%d, want 429", w.Code)
	}

	// The first job has not finished; its result is not available yet.
	w = perform(r, http.MethodGet, "/api/jobs/"+jobID+"/result", "")
	if w.Code != http.StatusConflict {
		t.Fatalf("early result status=%d, want 409", w.Code)
	}

	w = perform(r, http.MethodDelete, "/api/jobs/"+jobID, "")
	if w.Code != http.StatusOK {
		t.Fatalf("cancel status=%d", w.Code)
	}

	deadline := time.Now().Add(10 * time.Second)
	for {
		if time.Now().After(deadline) {
			t.Fatal("job did not reach a terminal state after cancel")
		}
		snap := decodeJSON(t, perform(r, http.MethodGet, "/api/jobs/"+jobID, ""))
		status := snap["status"].(string)
		if status == "canceled" {
			break
		}
		if status != "running" {
			// A fast machine may finish the batch before the cancel lands.
			if status == "done" {
				break
			}
			t.Fatalf("unexpected terminal status %v", snap)
		}
		time.Sleep(10 * time.Millisecond)
	}
}
