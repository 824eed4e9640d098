package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/baharkarakas/blog-api/internal/api/handlers"
	"github.com/baharkarakas/blog-api/internal/api/httpx"
	"github.com/baharkarakas/blog-api/internal/auth"
	"github.com/baharkarakas/blog-api/internal/config"
	"github.com/baharkarakas/blog-api/internal/metrics"
	"github.com/baharkarakas/blog-api/internal/middleware"
	"github.com/baharkarakas/blog-api/internal/services"
)

type RouterDeps struct {
	Cfg      config.Config
	Tokens   *auth.TokenManager
	Verifier auth.Verifier
	UserSvc  *services.UserService
	PostSvc  *services.PostService
}

func NewRouter(d RouterDeps) http.Handler {
	metrics.Init()

	verifier := d.Verifier
	if verifier == nil {
		verifier = d.Tokens
	}
	authMW := middleware.NewAuthMiddleware(verifier)
	posts := handlers.NewPostHandler(d.PostSvc)
	users := handlers.NewUserHandler(d.UserSvc)
	authH := handlers.NewAuthHandler(d.Tokens, d.UserSvc)

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover, middleware.HTTPMetrics, middleware.RateLimit(d.Cfg.RateRPS))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{"X-Total-Count", "X-Page", "X-Limit", middleware.RequestIDHeader},
	}))
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteError(w, http.StatusNotFound, "not_found", "route not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed", nil)
	})

	// health & metrics
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		// ---------- auth ----------
		r.Post("/auth/register", users.Register)
		r.Post("/auth/login", authH.Login)
		r.Post("/auth/refresh", authH.Refresh)

		// ---------- users ----------
		r.With(authMW.Auth).Get("/users/me", users.Me)

		// ---------- posts ----------
		r.Route("/posts", func(r chi.Router) {
			r.Get("/", posts.List)
			r.Get("/{id}", posts.Get)

			r.Group(func(r chi.Router) {
				r.Use(authMW.Auth)
				r.Post("/", posts.Create)
				r.Put("/{id}", posts.Update)
				r.Delete("/{id}", posts.Delete)
			})
		})
	})

	return r
}
