package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jobslist/jobslist-api/internal/api/handlers"
	"github.com/jobslist/jobslist-api/internal/api/middleware"
	"github.com/jobslist/jobslist-api/internal/config"
	"github.com/jobslist/jobslist-api/internal/service"
)

func NewRouter(services *service.Services, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.CORS(cfg.AllowedOrigin))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Initialize handlers
	jobHandler := handlers.NewJobHandler(services.Job)
	userHandler := handlers.NewUserHandler(services.Auth)

	r.Route("/api", func(r chi.Router) {
		r.Route("/jobs", func(r chi.Router) {
			// Public read routes
			r.Get("/", jobHandler.List)
			r.Get("/{id}", jobHandler.Get)

			// Mutations require authentication
			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(services.Auth))
				r.Post("/", jobHandler.Create)
				r.Post("/batch", jobHandler.CreateBatch)
				r.Put("/{id}", jobHandler.Update)
				r.Delete("/{id}", jobHandler.Delete)
			})
		})

		r.Route("/user", func(r chi.Router) {
			r.Post("/register", userHandler.Register)
			r.Post("/login", userHandler.Login)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(services.Auth))
				r.Get("/current", userHandler.Current)
			})
		})
	})

	return r
}
