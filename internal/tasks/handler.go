package tasks

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/easyhomework/backend/internal/apperr"
	"github.com/easyhomework/backend/internal/auth"
	"github.com/easyhomework/backend/internal/models"
	"github.com/easyhomework/backend/internal/response"
)

// TaskStore defines the interface for task persistence. Every method is
// scoped by the owning user id; a row owned by someone else behaves exactly
// like a missing row (apperr.ErrNotFound).
type TaskStore interface {
	ListTasks(ctx context.Context, userID string) ([]models.Task, error)
	CreateTask(ctx context.Context, userID string, nt models.NewTask) (*models.Task, error)
	SetTaskCompleted(ctx context.Context, userID, id string, completedAt *time.Time) (*models.Task, error)
	DeleteTask(ctx context.Context, userID, id string) error
}

// Handler holds task HTTP handlers.
type Handler struct {
	store TaskStore
	errs  *response.Writer
	now   func() time.Time
}

func NewHandler(store TaskStore, errs *response.Writer) *Handler {
	return &Handler{store: store, errs: errs, now: time.Now}
}

type taskResponse struct {
	Success bool         `json:"success"`
	Task    *models.Task `json:"task"`
}

// dueDateLayouts are tried in order when parsing due_date.
var dueDateLayouts = []string{"2006-01-02", time.RFC3339}

func parseDueDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}
	return nil, apperr.ValidationError{Field: "due_date", Message: "due_date must be YYYY-MM-DD"}
}

// taskID reads the {id} URL param. Anything that is not a UUID cannot name a
// task, so it is reported as not found.
func taskID(r *http.Request) (string, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return "", apperr.ErrNotFound
	}
	return id.String(), nil
}

// List returns all tasks of the current user.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.store.ListTasks(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		h.errs.Error(w, r, err)
		return
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	response.JSON(w, http.StatusOK, map[string]any{"success": true, "tasks": tasks})
}

// Create adds a task owned by the current user.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errs.Error(w, r, apperr.ValidationError{Field: "body", Message: "invalid request body"})
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		h.errs.Error(w, r, apperr.Required("title"))
		return
	}
	if strings.TrimSpace(req.ChildName) == "" {
		h.errs.Error(w, r, apperr.Required("child_name"))
		return
	}
	due, err := parseDueDate(req.DueDate)
	if err != nil {
		h.errs.Error(w, r, err)
		return
	}

	task, err := h.store.CreateTask(r.Context(), auth.UserID(r.Context()), models.NewTask{
		Title:     req.Title,
		ChildName: req.ChildName,
		Category:  req.Category,
		DueDate:   due,
	})
	if err != nil {
		h.errs.Error(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, taskResponse{Success: true, Task: task})
}

// Update toggles the completed flag. completed_at is stamped when the flag is
// set and cleared when it is unset.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := taskID(r)
	if err != nil {
		h.errs.Error(w, r, err)
		return
	}
	var req models.UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errs.Error(w, r, apperr.ValidationError{Field: "body", Message: "invalid request body"})
		return
	}
	if req.Completed == nil {
		h.errs.Error(w, r, apperr.Required("completed"))
		return
	}

	var completedAt *time.Time
	if *req.Completed {
		now := h.now().UTC()
		completedAt = &now
	}
	task, err := h.store.SetTaskCompleted(r.Context(), auth.UserID(r.Context()), id, completedAt)
	if err != nil {
		h.errs.Error(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, taskResponse{Success: true, Task: task})
}

// Delete removes a task of the current user.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := taskID(r)
	if err != nil {
		h.errs.Error(w, r, err)
		return
	}
	if err := h.store.DeleteTask(r.Context(), auth.UserID(r.Context()), id); err != nil {
		h.errs.Error(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]bool{"success": true})
}
