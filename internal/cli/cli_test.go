package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/task-analyzer/internal/model"
)

type harness struct {
	t  *testing.T
	db string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)
	t.Setenv("TASK_ANALYZER_CONFIG", filepath.Join(dir, "none.yaml"))
	for _, k := range []string{"TASK_ANALYZER_DB", "TASK_ANALYZER_BACKEND", "TASK_ANALYZER_API_URL",
		"TASK_ANALYZER_STRATEGY", "TASK_ANALYZER_TIMEOUT", "TASK_ANALYZER_LOG_LEVEL", "TASK_ANALYZER_LOG_FORMAT"} {
		t.Setenv(k, "")
	}
	return &harness{t: t, db: filepath.Join(dir, "tasks.db")}
}

func (h *harness) run(stdin string, args ...string) (string, string, error) {
	h.t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetArgs(append([]string{"--db", h.db}, args...))
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func (h *harness) mustRun(args ...string) string {
	h.t.Helper()
	out, _, err := h.run("", args...)
	require.NoError(h.t, err, "args %v", args)
	return out
}

func (h *harness) list() []model.Task {
	h.t.Helper()
	var list []model.Task
	require.NoError(h.t, json.Unmarshal([]byte(h.mustRun("list")), &list))
	return list
}

func TestAddListRemove(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("add", "Fix", "login", "--hours", "4", "--importance", "9", "--due", "2025-11-28", "--deps", "2, x, 3")
	var task model.Task
	require.NoError(t, json.Unmarshal([]byte(out), &task))
	assert.Equal(t, 1, task.ID)
	assert.Equal(t, "Fix login", task.Title)
	assert.Equal(t, []int{2, 3}, task.Dependencies)

	h.mustRun("add", "Docs", "-H", "6", "-i", "7")

	list := h.list()
	require.Len(t, list, 2)
	assert.Equal(t, "Docs", list[1].Title)
	assert.Equal(t, 2, list[1].ID)

	out = h.mustRun("rm", "1")
	assert.Contains(t, out, `"removed":true`)
	out = h.mustRun("rm", "1")
	assert.Contains(t, out, `"removed":false`)
	assert.Len(t, h.list(), 1)

	text := h.mustRun("--format", "text", "list")
	assert.Contains(t, text, "#2")
	assert.Contains(t, text, "importance 7/10")
}

func TestAddValidationErrors(t *testing.T) {
	h := newHarness(t)
	h.mustRun("add", "Docs", "-H", "1", "-i", "5")

	_, _, err := h.run("", "add", "docs", "-H", "1", "-i", "5")
	assert.ErrorContains(t, err, "a task with this title already exists")

	_, _, err = h.run("", "add", "New", "-H", "0", "-i", "5")
	assert.ErrorContains(t, err, "estimated hours must be greater than 0")

	_, _, err = h.run("", "add", "New", "-H", "Inf", "-i", "5")
	assert.ErrorContains(t, err, "estimated hours must be greater than 0")

	_, _, err = h.run("", "add", "New", "-H", "1", "-i", "11")
	assert.ErrorContains(t, err, "importance must be between 1 and 10")

	_, _, err = h.run("", "add", "New", "-H", "1", "-i", "5", "--due", "next week")
	require.Error(t, err)

	_, _, err = h.run("", "add", "New", "-i", "5")
	require.Error(t, err)

	assert.Len(t, h.list(), 1)
}

func TestClear(t *testing.T) {
	h := newHarness(t)

	_, _, err := h.run("", "clear", "--yes")
	require.ErrorIs(t, err, errNothingToClear)

	h.mustRun("add", "a", "-H", "1", "-i", "5")
	h.mustRun("add", "b", "-H", "1", "-i", "5")

	_, stderr, err := h.run("n\n", "clear")
	require.ErrorIs(t, err, errClearAborted)
	assert.Contains(t, stderr, "Clear all 2 tasks?")
	assert.Len(t, h.list(), 2)

	out, _, err := h.run("y\n", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, `"cleared":2`)
	assert.Empty(t, h.list())

	out = h.mustRun("add", "c", "-H", "1", "-i", "5")
	assert.Contains(t, out, `"id": 1`)
}

func TestImportExportRoundTrip(t *testing.T) {
	h := newHarness(t)

	out, _, err := h.run(`[{"title":"A"},{"title":"A"},{"title":"B","importance":8}]`, "import")
	require.NoError(t, err)
	var report struct {
		Imported int      `json:"imported"`
		Skipped  []string `json:"skipped"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 2, report.Imported)
	assert.Equal(t, []string{"A"}, report.Skipped)

	_, _, err = h.run(`{"title":"C"}`, "import")
	assert.ErrorContains(t, err, "import batch must be a JSON array of task objects")

	exported := h.mustRun("export")
	file := filepath.Join(t.TempDir(), "batch.json")
	require.NoError(t, os.WriteFile(file, []byte(exported), 0o644))

	other := newHarness(t)
	other.mustRun("import", file)
	assert.Equal(t, h.list(), other.list())

	sample := h.mustRun("sample")
	out, _, err = other.run(sample, "import", "-")
	require.NoError(t, err)
	assert.Contains(t, out, `"imported": 4`)
}

func TestDedupeAndStats(t *testing.T) {
	h := newHarness(t)
	h.mustRun("add", "a", "-H", "1", "-i", "5")

	out := h.mustRun("dedupe")
	assert.Contains(t, out, `"removed":0`)

	var st struct {
		Backend string `json:"backend"`
		Tasks   int    `json:"tasks"`
		NextID  int    `json:"next_id"`
	}
	require.NoError(t, json.Unmarshal([]byte(h.mustRun("stats")), &st))
	assert.Equal(t, "sqlite", st.Backend)
	assert.Equal(t, 1, st.Tasks)
	assert.Equal(t, 2, st.NextID)
}

func TestJSONBackend(t *testing.T) {
	h := newHarness(t)
	h.db = filepath.Join(t.TempDir(), "tasks.json")

	h.mustRun("--backend", "json", "add", "a", "-H", "1", "-i", "5")
	raw, err := os.ReadFile(h.db)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"next_id": "2"`)

	out := h.mustRun("--backend", "json", "list")
	assert.Contains(t, out, `"title": "a"`)
}

func TestStrategies(t *testing.T) {
	h := newHarness(t)
	out := h.mustRun("strategies")
	assert.Contains(t, out, `"name": "smart_balance"`)
	assert.Contains(t, out, `"default": true`)

	text := h.mustRun("--format", "text", "strategies")
	assert.Contains(t, text, "deadline_driven")
}

func scoringService(t *testing.T, status int, body string) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.Copy(io.Discard, r.Body)
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}

const scoredBody = `{"status":"success","data":{"sorted_tasks":[
	{"id":1,"title":"A","due_date":"2025-11-28","estimated_hours":1,"importance":9,"dependencies":[],"priority_score":0.9,"score_breakdown":{"urgency":1},"explanation":"very urgent"},
	{"id":1,"title":"A","due_date":null,"estimated_hours":1,"importance":9,"dependencies":[],"priority_score":0.1,"score_breakdown":{},"explanation":"dup"},
	{"id":2,"title":"B","due_date":null,"estimated_hours":2,"importance":5,"dependencies":[1],"priority_score":0.5,"score_breakdown":{},"explanation":"time-sensitive"}
]}}`

func TestAnalyze(t *testing.T) {
	h := newHarness(t)
	url := scoringService(t, http.StatusOK, scoredBody)

	_, _, err := h.run("", "--api", url, "analyze")
	require.Error(t, err, "empty task list is refused")

	h.mustRun("add", "A", "-H", "1", "-i", "9")
	h.mustRun("add", "B", "-H", "2", "-i", "5", "--deps", "1")

	out := h.mustRun("--api", url, "analyze", "--strategy", "high_impact")
	var got struct {
		RequestID string `json:"request_id"`
		Strategy  string `json:"strategy"`
		Top       []struct {
			Title string `json:"title"`
			Level string `json:"level"`
		} `json:"top"`
		Results []struct {
			Title string  `json:"title"`
			Score float64 `json:"priority_score"`
		} `json:"results"`
		Dropped int `json:"dropped"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.NotEmpty(t, got.RequestID)
	assert.Equal(t, "high_impact", got.Strategy)
	assert.Equal(t, 1, got.Dropped)
	require.Len(t, got.Results, 2)
	assert.Equal(t, 0.9, got.Results[0].Score)
	require.Len(t, got.Top, 2)
	assert.Equal(t, "high", got.Top[0].Level)
	assert.Equal(t, "medium", got.Top[1].Level)

	text := h.mustRun("--api", url, "--format", "text", "analyze", "--top", "1")
	assert.Contains(t, text, "Top suggestions (smart_balance)")
	assert.Contains(t, text, "#1 A  score 0.900 [high]")
	assert.Contains(t, text, "dependencies 1")
	assert.NotContains(t, text, "#2 B")

	_, _, err = h.run("", "--api", url, "analyze", "--strategy", "random")
	require.Error(t, err)
}

func TestAnalyzeErrorsAreDistinguishable(t *testing.T) {
	h := newHarness(t)
	h.mustRun("add", "A", "-H", "1", "-i", "9")

	url := scoringService(t, http.StatusBadRequest, `{"status":"error","message":"Invalid JSON data"}`)
	_, _, err := h.run("", "--api", url, "analyze")
	assert.ErrorContains(t, err, "analysis failed: Invalid JSON data")

	url = scoringService(t, http.StatusOK, `{"errors":["Circular dependency detected: 1 -> 1"]}`)
	_, _, err = h.run("", "--api", url, "analyze")
	assert.ErrorContains(t, err, "analysis rejected: Circular dependency detected: 1 -> 1")
}
