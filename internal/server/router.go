package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/easyhomework/backend/internal/auth"
	"github.com/easyhomework/backend/internal/middleware"
	"github.com/easyhomework/backend/internal/response"
	"github.com/easyhomework/backend/internal/tasks"
)

const healthMessage = "EasyHomework API is running!"

// Deps are the already-built collaborators the router dispatches to.
type Deps struct {
	Auth        *auth.Handler
	Tasks       *tasks.Handler
	Tokens      middleware.TokenVerifier
	Errors      *response.Writer
	Logger      *zap.Logger
	CORSOrigins []string
}

// NewRouter wires every route. Health and the three login endpoints are
// public; everything else sits behind RequireAuth.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(d.Logger))
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: d.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		response.JSON(w, http.StatusOK, map[string]any{"success": true, "message": healthMessage})
	})

	requireAuth := middleware.RequireAuth(d.Tokens, d.Errors)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", d.Auth.Register)
		r.Post("/login", d.Auth.Login)
	})

	r.Route("/teacher", func(r chi.Router) {
		r.Post("/login", d.Auth.TeacherLogin)
		r.With(requireAuth).Get("/logins", d.Auth.TeacherLogins)
	})

	r.Route("/tasks", func(r chi.Router) {
		r.Use(requireAuth)
		r.Get("/", d.Tasks.List)
		r.Post("/", d.Tasks.Create)
		r.Patch("/{id}", d.Tasks.Update)
		r.Delete("/{id}", d.Tasks.Delete)
	})

	return r
}
