// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for the
// corpsite API. Routes are organized into a public group, the session
// endpoints, and the permission-guarded content groups.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"corpsite/internal/handlers"
	"corpsite/internal/metrics"
	"corpsite/internal/middleware"
	"corpsite/internal/rbac"
	"corpsite/internal/session"
)

// Deps carries everything the router needs wired in.
type Deps struct {
	Sessions *session.Store

	Auth       *handlers.Auth
	Posts      *handlers.Posts
	Jobs       *handlers.Jobs
	Projects   *handlers.Projects
	MasterData *handlers.MasterData
	Users      *handlers.Users
	Media      *handlers.Media
	Public     *handlers.Public

	// CORSOrigins lists the browser origins allowed to call the API.
	CORSOrigins []string

	// LoginLimiter throttles credential guessing on the login endpoint.
	LoginLimiter *middleware.RateLimiter

	// UploadsDir, when non-empty, is served under /uploads for the local
	// storage backend. S3 deployments leave it empty.
	UploadsDir string
}

// New creates the configured Chi router with all middleware and route
// groups wired up.
func New(d Deps) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(metrics.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", middleware.CSRFHeaderName},
		ExposedHeaders:   []string{"X-Total-Count", "X-Total-Pages"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(middleware.LoadSession(d.Sessions))

	// Ops endpoints, no auth and no CSRF.
	r.Get("/health", healthHandler)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	if d.UploadsDir != "" {
		fs := http.StripPrefix("/uploads/", http.FileServer(http.Dir(d.UploadsDir)))
		r.Get("/uploads/*", fs.ServeHTTP)
	}

	// Public read API for the marketing site.
	r.Route("/api/public", func(r chi.Router) {
		r.Get("/blog/posts", d.Public.ListPosts)
		r.Get("/blog/posts/{slug}", d.Public.GetPost)
		r.Get("/careers/jobs", d.Public.ListJobs)
		r.Get("/careers/jobs/{slug}", d.Public.GetJob)
		r.Get("/projects", d.Public.ListProjects)
		r.Get("/projects/{slug}", d.Public.GetProject)
	})

	// Session endpoints. Login is throttled instead of CSRF-guarded
	// since the caller has no session yet.
	r.Route("/api/auth", func(r chi.Router) {
		r.With(d.LoginLimiter.Middleware).Post("/login", d.Auth.Login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Use(middleware.CSRF)
			r.Post("/logout", d.Auth.Logout)
			r.Get("/me", d.Auth.Me)
			r.Post("/2fa/setup", d.Auth.TwoFASetup)
			r.Post("/2fa/verify", d.Auth.TwoFAVerify)
			r.With(middleware.Require2FA).Post("/password", d.Auth.ChangePassword)
		})
	})

	// Content groups are authenticated, 2FA complete, CSRF protected, and
	// permission checked per resource before any handler runs.
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Use(middleware.Require2FA)
		r.Use(middleware.CSRF)

		r.Route("/api/blog/posts", func(r chi.Router) {
			r.With(perm(rbac.ResourceBlog, rbac.ActionRead)).Get("/", d.Posts.List)
			r.With(perm(rbac.ResourceBlog, rbac.ActionRead)).Get("/{id}", d.Posts.Get)
			r.With(perm(rbac.ResourceBlog, rbac.ActionWrite)).Post("/", d.Posts.Create)
			r.With(perm(rbac.ResourceBlog, rbac.ActionWrite)).Put("/{id}", d.Posts.Update)
			r.With(perm(rbac.ResourceBlog, rbac.ActionWrite)).Put("/{id}/status", d.Posts.SetStatus)
			r.With(perm(rbac.ResourceBlog, rbac.ActionDelete)).Delete("/{id}", d.Posts.Delete)
		})

		r.Route("/api/master-data", func(r chi.Router) {
			blogEntity(r, "/categories", d.MasterData.ListCategories, d.MasterData.CreateCategory, d.MasterData.UpdateCategory, d.MasterData.DeleteCategory)
			blogEntity(r, "/tags", d.MasterData.ListTags, d.MasterData.CreateTag, d.MasterData.UpdateTag, d.MasterData.DeleteTag)
			blogEntity(r, "/authors", d.MasterData.ListAuthors, d.MasterData.CreateAuthor, d.MasterData.UpdateAuthor, d.MasterData.DeleteAuthor)
			careersEntity(r, "/departments", d.MasterData.ListDepartments, d.MasterData.CreateDepartment, d.MasterData.UpdateDepartment, d.MasterData.DeleteDepartment)
			careersEntity(r, "/locations", d.MasterData.ListLocations, d.MasterData.CreateLocation, d.MasterData.UpdateLocation, d.MasterData.DeleteLocation)
		})

		r.Route("/api/careers/jobs", func(r chi.Router) {
			r.With(perm(rbac.ResourceCareers, rbac.ActionRead)).Get("/", d.Jobs.List)
			r.With(perm(rbac.ResourceCareers, rbac.ActionRead)).Get("/{id}", d.Jobs.Get)
			r.With(perm(rbac.ResourceCareers, rbac.ActionWrite)).Post("/", d.Jobs.Create)
			r.With(perm(rbac.ResourceCareers, rbac.ActionWrite)).Put("/{id}", d.Jobs.Update)
			r.With(perm(rbac.ResourceCareers, rbac.ActionWrite)).Put("/{id}/status", d.Jobs.SetStatus)
			r.With(perm(rbac.ResourceCareers, rbac.ActionDelete)).Delete("/{id}", d.Jobs.Delete)
		})

		r.Route("/api/projects", func(r chi.Router) {
			r.With(perm(rbac.ResourceProjects, rbac.ActionRead)).Get("/", d.Projects.List)
			r.With(perm(rbac.ResourceProjects, rbac.ActionRead)).Get("/{id}", d.Projects.Get)
			r.With(perm(rbac.ResourceProjects, rbac.ActionWrite)).Post("/", d.Projects.Create)
			r.With(perm(rbac.ResourceProjects, rbac.ActionWrite)).Put("/{id}", d.Projects.Update)
			r.With(perm(rbac.ResourceProjects, rbac.ActionWrite)).Put("/{id}/status", d.Projects.SetStatus)
			r.With(perm(rbac.ResourceProjects, rbac.ActionDelete)).Delete("/{id}", d.Projects.Delete)
		})

		r.Route("/api/users", func(r chi.Router) {
			r.Use(middleware.RequireAdmin)
			r.Get("/", d.Users.List)
			r.Get("/{id}", d.Users.Get)
			r.Post("/", d.Users.Create)
			r.Put("/{id}", d.Users.Update)
			r.Delete("/{id}", d.Users.Delete)
			r.Post("/{id}/reset-2fa", d.Users.ResetTOTP)
		})

		r.Route("/api/media", func(r chi.Router) {
			r.With(perm(rbac.ResourceMedia, rbac.ActionRead)).Get("/", d.Media.List)
			r.With(perm(rbac.ResourceMedia, rbac.ActionRead)).Get("/{id}", d.Media.Get)
			r.With(perm(rbac.ResourceMedia, rbac.ActionWrite)).Post("/", d.Media.Upload)
			r.With(perm(rbac.ResourceMedia, rbac.ActionWrite)).Put("/{id}", d.Media.Update)
			r.With(perm(rbac.ResourceMedia, rbac.ActionDelete)).Delete("/{id}", d.Media.Delete)
		})
	})

	return r
}

func perm(resource rbac.Resource, action rbac.Action) func(http.Handler) http.Handler {
	return middleware.RequirePermission(resource, action)
}

// blogEntity mounts the standard CRUD routes for a blog master data
// entity under the blog resource policy.
func blogEntity(r chi.Router, path string, list, create, update, del http.HandlerFunc) {
	entity(r, path, rbac.ResourceBlog, list, create, update, del)
}

// careersEntity mounts the same CRUD routes under the careers policy.
func careersEntity(r chi.Router, path string, list, create, update, del http.HandlerFunc) {
	entity(r, path, rbac.ResourceCareers, list, create, update, del)
}

func entity(r chi.Router, path string, resource rbac.Resource, list, create, update, del http.HandlerFunc) {
	r.Route(path, func(r chi.Router) {
		r.With(perm(resource, rbac.ActionRead)).Get("/", list)
		r.With(perm(resource, rbac.ActionWrite)).Post("/", create)
		r.With(perm(resource, rbac.ActionWrite)).Put("/{id}", update)
		r.With(perm(resource, rbac.ActionDelete)).Delete("/{id}", del)
	})
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
