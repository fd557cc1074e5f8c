package tasks

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/easyhomework/backend/internal/apperr"
	"github.com/easyhomework/backend/internal/auth"
	"github.com/easyhomework/backend/internal/models"
	"github.com/easyhomework/backend/internal/response"
)

// memTasks is an in-memory TaskStore with the same ownership rules as the
// SQL statements.
type memTasks struct {
	rows  map[string]*models.Task
	clock time.Time
}

func newMemTasks() *memTasks {
	return &memTasks{rows: map[string]*models.Task{}, clock: time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)}
}

func (m *memTasks) ListTasks(_ context.Context, userID string) ([]models.Task, error) {
	var out []models.Task
	for _, t := range m.rows {
		if t.UserID == userID {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memTasks) CreateTask(_ context.Context, userID string, nt models.NewTask) (*models.Task, error) {
	m.clock = m.clock.Add(time.Minute)
	t := &models.Task{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     nt.Title,
		ChildName: nt.ChildName,
		Category:  nt.Category,
		DueDate:   nt.DueDate,
		Points:    10,
		CreatedAt: m.clock,
	}
	m.rows[t.ID] = t
	cp := *t
	return &cp, nil
}

func (m *memTasks) SetTaskCompleted(_ context.Context, userID, id string, completedAt *time.Time) (*models.Task, error) {
	t, ok := m.rows[id]
	if !ok || t.UserID != userID {
		return nil, apperr.ErrNotFound
	}
	t.Completed = completedAt != nil
	t.CompletedAt = completedAt
	cp := *t
	return &cp, nil
}

func (m *memTasks) DeleteTask(_ context.Context, userID, id string) error {
	t, ok := m.rows[id]
	if !ok || t.UserID != userID {
		return apperr.ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

func newTestRouter(store TaskStore) http.Handler {
	h := NewHandler(store, response.NewWriter(zap.NewNop(), false))
	h.now = func() time.Time { return time.Date(2026, 2, 3, 16, 45, 0, 0, time.UTC) }
	r := chi.NewRouter()
	r.Get("/tasks", h.List)
	r.Post("/tasks", h.Create)
	r.Patch("/tasks/{id}", h.Update)
	r.Delete("/tasks/{id}", h.Delete)
	return r
}

func do(h http.Handler, userID, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req = req.WithContext(auth.WithIdentity(req.Context(), auth.Identity{UserID: userID}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

type taskBody struct {
	Success bool          `json:"success"`
	Task    *models.Task  `json:"task"`
	Tasks   []models.Task `json:"tasks"`
	Message string        `json:"message"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) taskBody {
	t.Helper()
	var b taskBody
	if err := json.Unmarshal(rec.Body.Bytes(), &b); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return b
}

func createTask(t *testing.T, h http.Handler, userID, title string) models.Task {
	t.Helper()
	rec := do(h, userID, "POST", "/tasks", `{"title":"`+title+`","child_name":"Bob","category":"math","due_date":"2026-02-10"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("create status = %d: %s", rec.Code, rec.Body)
	}
	return *decode(t, rec).Task
}

func TestCreateTask(t *testing.T) {
	h := newTestRouter(newMemTasks())

	task := createTask(t, h, "alice", "Fractions worksheet")
	if task.Completed || task.CompletedAt != nil {
		t.Errorf("new task completed = %v, completed_at = %v", task.Completed, task.CompletedAt)
	}
	if task.DueDate == nil || task.DueDate.Format("2006-01-02") != "2026-02-10" {
		t.Errorf("due_date = %v", task.DueDate)
	}
	if task.Points != 10 {
		t.Errorf("points = %d, want 10", task.Points)
	}
}

func TestCreateTaskValidation(t *testing.T) {
	h := newTestRouter(newMemTasks())

	tests := []struct {
		name string
		body string
	}{
		{name: "bad json", body: `{`},
		{name: "missing title", body: `{"child_name":"Bob"}`},
		{name: "missing child", body: `{"title":"Read"}`},
		{name: "bad due date", body: `{"title":"Read","child_name":"Bob","due_date":"next week"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(h, "alice", "POST", "/tasks", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
			}
			if b := decode(t, rec); b.Success || b.Message == "" {
				t.Errorf("body = %+v", b)
			}
		})
	}
}

func TestListTasksScopedAndNewestFirst(t *testing.T) {
	h := newTestRouter(newMemTasks())
	createTask(t, h, "alice", "first")
	createTask(t, h, "alice", "second")
	createTask(t, h, "mallory", "not yours")

	rec := do(h, "alice", "GET", "/tasks", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	tasks := decode(t, rec).Tasks
	if len(tasks) != 2 {
		t.Fatalf("got %d tasks, want 2", len(tasks))
	}
	if tasks[0].Title != "second" || tasks[1].Title != "first" {
		t.Errorf("order = %q, %q; want newest first", tasks[0].Title, tasks[1].Title)
	}
}

func TestListTasksEmpty(t *testing.T) {
	h := newTestRouter(newMemTasks())
	rec := do(h, "alice", "GET", "/tasks", "")
	if !strings.Contains(rec.Body.String(), `"tasks":[]`) {
		t.Errorf("body = %s, want empty tasks array", rec.Body)
	}
}

func TestToggleCompleted(t *testing.T) {
	h := newTestRouter(newMemTasks())
	task := createTask(t, h, "alice", "Spelling")

	rec := do(h, "alice", "PATCH", "/tasks/"+task.ID, `{"completed":true}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	done := decode(t, rec).Task
	if !done.Completed || done.CompletedAt == nil {
		t.Fatalf("after completing: %+v", done)
	}
	if want := time.Date(2026, 2, 3, 16, 45, 0, 0, time.UTC); !done.CompletedAt.Equal(want) {
		t.Errorf("completed_at = %v, want %v", done.CompletedAt, want)
	}

	rec = do(h, "alice", "PATCH", "/tasks/"+task.ID, `{"completed":false}`)
	undone := decode(t, rec).Task
	if undone.Completed || undone.CompletedAt != nil {
		t.Errorf("after reopening: completed = %v, completed_at = %v", undone.Completed, undone.CompletedAt)
	}
	if !strings.Contains(rec.Body.String(), `"completed_at":null`) {
		t.Errorf("body = %s, want completed_at null", rec.Body)
	}
}

func TestToggleRequiresCompletedField(t *testing.T) {
	h := newTestRouter(newMemTasks())
	task := createTask(t, h, "alice", "Spelling")

	rec := do(h, "alice", "PATCH", "/tasks/"+task.ID, `{}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestForeignTaskLooksMissing(t *testing.T) {
	store := newMemTasks()
	h := newTestRouter(store)
	task := createTask(t, h, "alice", "Spelling")

	tests := []struct {
		name   string
		method string
		path   string
		body   string
	}{
		{name: "complete foreign", method: "PATCH", path: "/tasks/" + task.ID, body: `{"completed":true}`},
		{name: "delete foreign", method: "DELETE", path: "/tasks/" + task.ID},
		{name: "complete missing", method: "PATCH", path: "/tasks/" + uuid.NewString(), body: `{"completed":true}`},
		{name: "delete missing", method: "DELETE", path: "/tasks/" + uuid.NewString()},
		{name: "malformed id", method: "DELETE", path: "/tasks/42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(h, "mallory", tt.method, tt.path, tt.body)
			if rec.Code != http.StatusNotFound {
				t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
			}
			if msg := decode(t, rec).Message; msg != "Task not found" {
				t.Errorf("message = %q", msg)
			}
		})
	}

	if got := store.rows[task.ID]; got == nil || got.Completed {
		t.Errorf("alice's task was modified: %+v", got)
	}
}

func TestDeleteTask(t *testing.T) {
	h := newTestRouter(newMemTasks())
	task := createTask(t, h, "alice", "Spelling")

	rec := do(h, "alice", "DELETE", "/tasks/"+task.ID, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if strings.TrimSpace(rec.Body.String()) != `{"success":true}` {
		t.Errorf("body = %s", rec.Body)
	}

	rec = do(h, "alice", "DELETE", "/tasks/"+task.ID, "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}
