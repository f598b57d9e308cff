package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/todo-api/services/todo-service/internal/handler"
	"github.com/vasapolrittideah/todo-api/shared/middleware"
	"github.com/vasapolrittideah/todo-api/shared/utilities"
)

// Dependencies are the collaborators the router mounts.
type Dependencies struct {
	AuthHandler    *handler.AuthHTTPHandler
	TodoHandler    *handler.TodoHTTPHandler
	SessionGate    func(http.Handler) http.Handler
	AllowedOrigins []string
	Logger         *zerolog.Logger
}

func New(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.NotFound(notFound)
	r.MethodNotAllowed(notFound)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		utilities.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/register", deps.AuthHandler.Register)
		r.Post("/login", deps.AuthHandler.Login)
		r.Get("/logout", deps.AuthHandler.Logout)

		r.Group(func(r chi.Router) {
			r.Use(deps.SessionGate)
			r.Get("/todos", deps.TodoHandler.List)
		})
	})

	return r
}

func notFound(w http.ResponseWriter, _ *http.Request) {
	utilities.WriteMessage(w, http.StatusNotFound, "Not found")
}
