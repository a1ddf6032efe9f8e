package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/marc/albumshare/internal/api/handlers"
	"github.com/marc/albumshare/internal/api/middleware"
	"github.com/marc/albumshare/internal/config"
	"github.com/marc/albumshare/internal/media"
	"github.com/marc/albumshare/internal/service"
)

func NewRouter(services *service.Services, gateway media.Gateway, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.CORS)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(services.Auth, cfg)
	userHandler := handlers.NewUserHandler(services.User)
	albumHandler := handlers.NewAlbumHandler(services.Album)
	photoHandler := handlers.NewPhotoHandler(services.Photo, gateway)

	credentialLimiter := middleware.NewRateLimiter(cfg.AuthRatePerSecond, cfg.AuthRateBurst)

	r.Route("/api", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			// Public routes; credential endpoints are rate limited per IP.
			r.Group(func(r chi.Router) {
				r.Use(credentialLimiter.Handler)
				r.Post("/signup", authHandler.Signup)
				r.Post("/login", authHandler.Login)
				r.Post("/forgot-password", authHandler.ForgotPassword)
			})
			r.Get("/logout", authHandler.Logout)

			// Authenticated routes
			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(services.Auth))
				r.Get("/renew", authHandler.Renew)
				r.Post("/checkpassword/{id}", authHandler.CheckPassword)
				r.Put("/password/{id}", authHandler.UpdatePassword)
				r.Put("/{id}", userHandler.Update)

				// Admin-only routes
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", userHandler.List)
					r.Delete("/{id}", userHandler.Delete)
					r.Put("/{id}/admin-status", userHandler.SetAdminStatus)
				})
			})
		})

		r.Route("/albums", func(r chi.Router) {
			r.Use(middleware.Auth(services.Auth))
			r.Get("/", albumHandler.List)
			r.Post("/", albumHandler.Create)
			r.Get("/search/{s}", albumHandler.Search)
			r.Get("/{id}", albumHandler.Get)
			r.Get("/{id}/count", albumHandler.CountPhotos)
			r.Put("/{id}", albumHandler.Update)
			r.Delete("/{id}", albumHandler.Delete)
		})

		r.Route("/photos", func(r chi.Router) {
			r.Use(middleware.Auth(services.Auth))
			r.Get("/", photoHandler.List)
			r.Post("/", photoHandler.Create)
			r.Get("/signature", photoHandler.GetSignature)
			r.Delete("/deleteMultiple", photoHandler.DeleteMultiple)
			r.Get("/{id}", photoHandler.Get)
			r.Put("/{id}", photoHandler.Update)
			r.Delete("/{id}", photoHandler.Delete)
			r.Delete("/{id}/{cid}", photoHandler.Delete)
		})
	})

	return r
}
