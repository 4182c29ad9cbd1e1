package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/your-org/pipelines/internal/testutil"
	"github.com/your-org/pipelines/pkg/pipeline"
	"github.com/your-org/pipelines/pkg/run"
)

// Test helpers

func mustNewTestHandlers(t *testing.T, runner *testutil.MockRunner) *Handlers {
	t.Helper()

	p, err := pipeline.New(runner, nil, slog.Default())
	if err != nil {
		t.Fatalf("failed to create pipeline: %v", err)
	}

	return NewHandlers(p, slog.Default())
}

func Test_HandleHealth(t *testing.T) {
	h := mustNewTestHandlers(t, testutil.NewMockRunner(""))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	h.HandleHealth(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}

	var response map[string]string
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if response["status"] != "healthy" {
		t.Errorf("expected status 'healthy', got '%s'", response["status"])
	}
}

func Test_HandleActions(t *testing.T) {
	h := mustNewTestHandlers(t, testutil.NewMockRunner(""))

	req := httptest.NewRequest(http.MethodGet, "/actions", nil)
	w := httptest.NewRecorder()

	h.HandleActions(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var resp ListActionsResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(resp.Actions) != 2 {
		t.Fatalf("expected 2 actions, got %d", len(resp.Actions))
	}
}

func Test_HandleActions_InvalidMethod(t *testing.T) {
	h := mustNewTestHandlers(t, testutil.NewMockRunner(""))

	tests := []string{http.MethodPost, http.MethodPut, http.MethodDelete}

	for _, method := range tests {
		t.Run(method, func(t *testing.T) {
			req := httptest.NewRequest(method, "/actions", nil)
			w := httptest.NewRecorder()

			h.HandleActions(w, req)

			if w.Code != http.StatusMethodNotAllowed {
				t.Errorf("expected status 405, got %d", w.Code)
			}
		})
	}
}

func Test_HandleAction_Get(t *testing.T) {
	h := mustNewTestHandlers(t, testutil.NewMockRunner(""))

	req := httptest.NewRequest(http.MethodGet, "/actions/publish", nil)
	w := httptest.NewRecorder()

	h.HandleAction(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var def struct {
		Name string `json:"name"`
		Kind string `json:"kind"`
	}
	if err := json.NewDecoder(w.Body).Decode(&def); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if def.Name != "publish" || def.Kind != "command" {
		t.Errorf("unexpected definition: %+v", def)
	}
}

func Test_HandleAction_NotFound(t *testing.T) {
	h := mustNewTestHandlers(t, testutil.NewMockRunner(""))

	req := httptest.NewRequest(http.MethodGet, "/actions/deploy", nil)
	w := httptest.NewRecorder()

	h.HandleAction(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}
}

func Test_RunAction(t *testing.T) {
	runner := testutil.NewMockRunner("Python 3.11.1\n")
	h := mustNewTestHandlers(t, runner)

	req := httptest.NewRequest(http.MethodPost, "/actions/publish/run", nil)
	w := httptest.NewRecorder()

	h.HandleAction(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp RunActionResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Run.Status != run.StatusSucceeded {
		t.Errorf("expected succeeded run, got %s", resp.Run.Status)
	}
	if resp.Run.Output != "Python 3.11.1\n" {
		t.Errorf("unexpected output: %q", resp.Run.Output)
	}
}

func Test_RunAction_CheckName(t *testing.T) {
	runner := testutil.NewMockRunner("Python 3.11.1\n")
	h := mustNewTestHandlers(t, runner)

	// "check: lint" needs escaping in the request path
	path := "/actions/" + url.PathEscape("check: lint") + "/run"
	req := httptest.NewRequest(http.MethodPost, path, nil)
	w := httptest.NewRecorder()

	h.HandleAction(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp RunActionResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Run.Action != "check: lint" {
		t.Errorf("expected check: lint run, got %s", resp.Run.Action)
	}
}

func Test_RunAction_EngineFailure(t *testing.T) {
	runner := testutil.NewMockRunner("")
	runner.RunErr = errors.New("engine unreachable")
	h := mustNewTestHandlers(t, runner)

	req := httptest.NewRequest(http.MethodPost, "/actions/publish/run", nil)
	w := httptest.NewRecorder()

	h.HandleAction(w, req)

	if w.Code != http.StatusBadGateway {
		t.Errorf("expected status 502, got %d", w.Code)
	}
}

func Test_RunAction_InvalidMethod(t *testing.T) {
	h := mustNewTestHandlers(t, testutil.NewMockRunner(""))

	req := httptest.NewRequest(http.MethodGet, "/actions/publish/run", nil)
	w := httptest.NewRecorder()

	h.HandleAction(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status 405, got %d", w.Code)
	}
}

func Test_HandleRuns(t *testing.T) {
	runner := testutil.NewMockRunner("Python 3.11.1\n")
	h := mustNewTestHandlers(t, runner)

	// Invoke once so there is something to list
	runReq := httptest.NewRequest(http.MethodPost, "/actions/publish/run", nil)
	h.HandleAction(httptest.NewRecorder(), runReq)

	req := httptest.NewRequest(http.MethodGet, "/runs", nil)
	w := httptest.NewRecorder()

	h.HandleRuns(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var resp ListRunsResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(resp.Runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(resp.Runs))
	}

	// Filtered listing
	req = httptest.NewRequest(http.MethodGet, "/runs?action=nothing", nil)
	w = httptest.NewRecorder()

	h.HandleRuns(w, req)

	resp = ListRunsResponse{}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Runs) != 0 {
		t.Errorf("expected no runs for unknown action, got %d", len(resp.Runs))
	}
}

func Test_HandleRun(t *testing.T) {
	runner := testutil.NewMockRunner("Python 3.11.1\n")
	h := mustNewTestHandlers(t, runner)

	runReq := httptest.NewRequest(http.MethodPost, "/actions/publish/run", nil)
	rec := httptest.NewRecorder()
	h.HandleAction(rec, runReq)

	var created RunActionResponse
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("failed to decode run response: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/runs/"+created.Run.ID, nil)
	w := httptest.NewRecorder()

	h.HandleRun(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var got run.Record
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if got.ID != created.Run.ID {
		t.Errorf("expected run %s, got %s", created.Run.ID, got.ID)
	}
}

func Test_HandleRun_NotFound(t *testing.T) {
	h := mustNewTestHandlers(t, testutil.NewMockRunner(""))

	req := httptest.NewRequest(http.MethodGet, "/runs/non-existent", nil)
	w := httptest.NewRecorder()

	h.HandleRun(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}
}
