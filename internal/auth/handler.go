package auth

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/easyhomework/backend/internal/apperr"
	"github.com/easyhomework/backend/internal/models"
	"github.com/easyhomework/backend/internal/response"
)

// Handler holds auth-related HTTP handlers.
type Handler struct {
	svc  *Service
	errs *response.Writer
}

func NewHandler(svc *Service, errs *response.Writer) *Handler {
	return &Handler{svc: svc, errs: errs}
}

type sessionResponse struct {
	Success     bool   `json:"success"`
	User        any    `json:"user"`
	AccessToken string `json:"access_token"`
}

func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperr.ValidationError{Field: "body", Message: "invalid request body"}
	}
	return nil
}

// Register creates a new parent account.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := decodeBody(r, &req); err != nil {
		h.errs.Error(w, r, err)
		return
	}
	user, token, err := h.svc.Register(r.Context(), req)
	if err != nil {
		h.errs.Error(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, sessionResponse{Success: true, User: user, AccessToken: token})
}

// Login authenticates a parent by email and password.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decodeBody(r, &req); err != nil {
		h.errs.Error(w, r, err)
		return
	}
	user, token, err := h.svc.Login(r.Context(), req)
	if err != nil {
		h.errs.Error(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, sessionResponse{Success: true, User: user, AccessToken: token})
}

// TeacherLogin opens a delegated session from a teacher code.
func (h *Handler) TeacherLogin(w http.ResponseWriter, r *http.Request) {
	var req models.TeacherLoginRequest
	if err := decodeBody(r, &req); err != nil {
		h.errs.Error(w, r, err)
		return
	}
	user, token, err := h.svc.TeacherLogin(r.Context(), req)
	if err != nil {
		h.errs.Error(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, sessionResponse{Success: true, User: user, AccessToken: token})
}

// TeacherLogins lists recent teacher logins on the caller's account.
func (h *Handler) TeacherLogins(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	logins, err := h.svc.RecentTeacherLogins(r.Context(), UserID(r.Context()), limit)
	if err != nil {
		h.errs.Error(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]any{"success": true, "logins": logins})
}
