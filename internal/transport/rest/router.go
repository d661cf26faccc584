package rest

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"

	"github.com/frahmantamala/document-management/internal/auth"
	"github.com/frahmantamala/document-management/internal/category"
	"github.com/frahmantamala/document-management/internal/document"
	"github.com/frahmantamala/document-management/internal/permission"
	"github.com/frahmantamala/document-management/internal/post"
	"github.com/frahmantamala/document-management/internal/role"
	"github.com/frahmantamala/document-management/internal/transport/middleware"
	"github.com/frahmantamala/document-management/internal/transport/swagger"
	"github.com/frahmantamala/document-management/internal/user"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

type Handlers struct {
	Auth       *auth.Handler
	RBAC       *auth.RBACAuthorization
	User       *user.Handler
	Category   *category.Handler
	Document   *document.Handler
	Post       *post.Handler
	Role       *role.Handler
	Permission *permission.Handler
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, h Handlers, documentsDir string, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS)
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	// OpenAPI spec and Swagger UI live outside the API prefix
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	// Uploaded document blobs
	fileServer := http.StripPrefix("/storage/documents/", http.FileServer(http.Dir(documentsDir)))
	router.Get("/storage/documents/*", func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "..") {
			http.NotFound(w, r)
			return
		}
		fileServer.ServeHTTP(w, r)
	})

	router.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/register", h.Auth.Register)
			sr.Post("/login", h.Auth.Login)
		})

		// Everything below requires a live bearer token
		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)

			pr.Post("/auth/logout", h.Auth.Logout)

			pr.Route("/categories", func(cr chi.Router) {
				cr.Post("/create", h.Category.Create)
				cr.Get("/index", h.Category.Index)
				cr.Put("/update/{id}", h.Category.Update)
				cr.Delete("/delete/{id}", h.Category.Delete)
			})

			pr.Route("/documents", func(dr chi.Router) {
				dr.Post("/create", h.Document.Create)
				dr.Get("/index", h.Document.Index)
				dr.Put("/update/{id}", h.Document.Update)
				dr.Delete("/delete/{id}", h.Document.Delete)
			})

			pr.Route("/posts", func(psr chi.Router) {
				psr.Post("/create", h.Post.Create)
				psr.Get("/index", h.Post.Index)
				psr.Delete("/delete/{id}", h.Post.Delete)
			})

			pr.Route("/users", func(ur chi.Router) {
				ur.Get("/get_profile", h.User.GetProfile)
				ur.Put("/edit_profile", h.User.EditProfile)

				ur.With(h.RBAC.RequirePermission("List Users")).
					Get("/index", h.User.Index)
				ur.With(h.RBAC.RequirePermission("Assign Role to User")).
					Put("/update/{id}", h.User.Update)
				ur.With(h.RBAC.RequirePermission("Delete a User")).
					Delete("/delete/{id}", h.User.Delete)

				ur.Route("/{userId}/permissions", func(gr chi.Router) {
					gr.With(h.RBAC.RequirePermission("Assign a Permission")).
						Post("/{permissionId}/assign", h.Permission.AssignToUser)
					gr.With(h.RBAC.RequirePermission("List User Permissions")).
						Get("/index", h.Permission.IndexForUser)
					gr.With(h.RBAC.RequirePermission("Revoke a Permission")).
						Delete("/{permissionId}/revoke", h.Permission.RevokeFromUser)
				})
			})

			pr.Route("/roles", func(rr chi.Router) {
				rr.With(h.RBAC.RequirePermission("Create a Role")).
					Post("/create", h.Role.Create)
				rr.With(h.RBAC.RequirePermission("List Roles")).
					Get("/index", h.Role.Index)
				rr.With(h.RBAC.RequirePermission("Update a Role")).
					Put("/update/{id}", h.Role.Update)
				rr.With(h.RBAC.RequirePermission("Delete a Role")).
					Delete("/delete/{id}", h.Role.Delete)
			})

			pr.Route("/permissions", func(pmr chi.Router) {
				pmr.With(h.RBAC.RequirePermission("Create a Permission")).
					Post("/create", h.Permission.Create)
				pmr.With(h.RBAC.RequirePermission("List Permissions")).
					Get("/index", h.Permission.Index)
				pmr.With(h.RBAC.RequirePermission("Update a Permission")).
					Put("/update/{id}", h.Permission.Update)
				pmr.With(h.RBAC.RequirePermission("Delete a Permission")).
					Delete("/delete/{id}", h.Permission.Delete)
			})
		})
	})
}
