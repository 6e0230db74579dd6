package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandeepkv93/daybook/internal/metrics"
	"github.com/sandeepkv93/daybook/internal/model"
	"github.com/sandeepkv93/daybook/internal/service"
	"github.com/sandeepkv93/daybook/internal/storage"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type apiFixture struct {
	router http.Handler
	repo   *storage.SQLiteRepository
}

func newAPI(t *testing.T) apiFixture {
	t.Helper()
	repo, err := storage.OpenSQLite(filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })

	svc := service.New(repo)
	router := NewRouter(Config{
		Service: svc,
		Metrics: metrics.New(),
		Now:     func() time.Time { return time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC) },
	})
	return apiFixture{router: router, repo: repo}
}

func (f apiFixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	body := decode(t, rec)
	e, ok := body["error"].(map[string]any)
	require.True(t, ok, rec.Body.String())
	return e["code"].(string)
}

func TestHealthAndMetrics(t *testing.T) {
	f := newAPI(t)

	rec := f.do(t, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	f.do(t, http.MethodGet, "/api/tasks", nil)
	rec = f.do(t, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `daybook_http_requests_total{method="GET",route="/api/tasks",status="200"} 1`)
}

func TestTaskRoutes(t *testing.T) {
	f := newAPI(t)

	rec := f.do(t, http.MethodPost, "/api/tasks", map[string]string{"content": "write report"})
	require.Equal(t, http.StatusCreated, rec.Code)
	id := decode(t, rec)["id"].(string)

	rec = f.do(t, http.MethodPost, "/api/tasks/"+id+"/done", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decode(t, rec)["done"])

	rec = f.do(t, http.MethodGet, "/api/tasks?done=false", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode(t, rec)["items"])

	rec = f.do(t, http.MethodPost, "/api/tasks/"+id+"/undone", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, decode(t, rec)["done"])

	rec = f.do(t, http.MethodGet, "/api/tasks?done=maybe", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodPost, "/api/tasks", map[string]string{"content": " "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, CodeInvalidArgument, errorCode(t, rec))

	rec = f.do(t, http.MethodDelete, "/api/tasks/"+id, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = f.do(t, http.MethodDelete, "/api/tasks/"+id, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, CodeNotFound, errorCode(t, rec))
}

func TestReminderRoutes(t *testing.T) {
	f := newAPI(t)

	rec := f.do(t, http.MethodPost, "/api/reminders", map[string]string{
		"content": "rent", "cycle": "monthly", "target_date": "2024-01-31",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	rentID := decode(t, rec)["id"].(string)

	rec = f.do(t, http.MethodPost, "/api/reminders", map[string]string{
		"content": "dentist", "cycle": "once", "target_date": "2024-05-11",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	dentistID := decode(t, rec)["id"].(string)

	rec = f.do(t, http.MethodPost, "/api/reminders/"+rentID+"/advance", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2024-02-29", decode(t, rec)["target_date"])

	rec = f.do(t, http.MethodPost, "/api/reminders/"+dentistID+"/advance", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, CodeNotRecurring, errorCode(t, rec))

	rec = f.do(t, http.MethodGet, "/api/reminders/"+rentID+"/preview?count=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []any{"2024-03-29", "2024-04-29"}, decode(t, rec)["dates"])

	rec = f.do(t, http.MethodGet, "/api/reminders?today=2024-05-10", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	items := decode(t, rec)["items"].([]any)
	require.Len(t, items, 2)
	first := items[0].(map[string]any)
	assert.Equal(t, float64(-71), first["remaining_days"])

	rec = f.do(t, http.MethodGet, "/api/reminders/close?today=2024-05-10&threshold=0", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Len(t, body["items"], 1)
	assert.Equal(t, float64(0), body["threshold"])

	rec = f.do(t, http.MethodGet, "/api/reminders?today=10-05-2024", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, CodeInvalidDateFormat, errorCode(t, rec))

	rec = f.do(t, http.MethodPost, "/api/reminders", map[string]string{
		"content": "x", "cycle": "fortnightly", "target_date": "2024-05-11",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, CodeUnknownCycle, errorCode(t, rec))

	rec = f.do(t, http.MethodPost, "/api/reminders/missing/advance", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReminderRouteLimits(t *testing.T) {
	f := newAPI(t)
	rec := f.do(t, http.MethodPost, "/api/reminders", map[string]string{
		"content": "new year", "cycle": "daily", "target_date": "9999-12-31",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	id := decode(t, rec)["id"].(string)

	rec = f.do(t, http.MethodGet, "/api/reminders/"+id+"/preview?count=366", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, CodeDateOutOfRange, errorCode(t, rec))

	rec = f.do(t, http.MethodGet, "/api/reminders/"+id+"/preview?count=367", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, CodeInvalidArgument, errorCode(t, rec))

	rec = f.do(t, http.MethodGet, "/api/reminders/"+id+"/preview?count=1000000000", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodPost, "/api/reminders/"+id+"/advance", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, CodeDateOutOfRange, errorCode(t, rec))

	stored, err := f.repo.GetReminder(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "9999-12-31", stored.TargetDate)
}

func TestRemindersReportDamagedRows(t *testing.T) {
	f := newAPI(t)
	require.NoError(t, f.repo.CreateReminder(context.Background(), model.Reminder{
		ID: "legacy", Content: "imported", Cycle: model.CycleOnce, TargetDate: "soon",
		CreatedAt: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
	}))

	rec := f.do(t, http.MethodGet, "/api/reminders", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Empty(t, body["items"])
	errs := body["errors"].([]any)
	require.Len(t, errs, 1)
	item := errs[0].(map[string]any)
	assert.Equal(t, "legacy", item["reminder_id"])
	assert.Equal(t, "soon", item["value"])
	assert.Equal(t, float64(0), item["index"])
	assert.Contains(t, item["message"], "invalid date format")

	rec = f.do(t, http.MethodGet, "/api/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec)["errors"], 1)

	rec = f.do(t, http.MethodPost, "/api/reminders/legacy/advance", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, CodeInvalidDateFormat, errorCode(t, rec))
}

func TestStatsRoute(t *testing.T) {
	f := newAPI(t)
	f.do(t, http.MethodPost, "/api/tasks", map[string]string{"content": "a"})
	rec := f.do(t, http.MethodPost, "/api/tasks", map[string]string{"content": "b"})
	id := decode(t, rec)["id"].(string)
	f.do(t, http.MethodPost, "/api/tasks/"+id+"/done", nil)
	f.do(t, http.MethodPost, "/api/notes", map[string]string{"title": "plan", "body": "# hi"})

	rec = f.do(t, http.MethodGet, "/api/stats?today=2024-05-10", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "2024-05-10", body["today"])
	assert.Equal(t, 0.5, body["completion_ratio"])
	assert.Equal(t, float64(50), body["completion_percent"])
	assert.Equal(t, float64(1), body["notes"])
}

func TestBookmarkAndNoteRoutes(t *testing.T) {
	f := newAPI(t)

	rec := f.do(t, http.MethodPost, "/api/bookmarks", map[string]string{"content": "https://go.dev", "comment": "home"})
	require.Equal(t, http.StatusCreated, rec.Code)
	id := decode(t, rec)["id"].(string)
	rec = f.do(t, http.MethodPut, "/api/bookmarks/"+id, map[string]string{"content": "https://go.dev/doc", "comment": ""})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://go.dev/doc", decode(t, rec)["content"])

	rec = f.do(t, http.MethodPost, "/api/notes", map[string]string{"title": "ideas", "body": "- one"})
	require.Equal(t, http.StatusCreated, rec.Code)
	noteID := decode(t, rec)["id"].(string)
	rec = f.do(t, http.MethodGet, "/api/notes/"+noteID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "- one", decode(t, rec)["body"])

	req := httptest.NewRequest(http.MethodPost, "/api/notes", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	out := httptest.NewRecorder()
	f.router.ServeHTTP(out, req)
	assert.Equal(t, http.StatusBadRequest, out.Code)
}
