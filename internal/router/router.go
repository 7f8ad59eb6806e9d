// Package router sets up all HTTP routes and middleware chains. It
// organizes routes into public and admin groups with appropriate
// middleware stacks.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"foliopress/internal/handlers"
	"foliopress/internal/middleware"
	"foliopress/internal/session"
	"foliopress/web"
)

// Options carries router construction parameters beyond the handler groups.
type Options struct {
	// Secure marks cookies Secure; true when serving behind TLS.
	Secure bool
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(sessionStore *session.Store, admin *handlers.Admin, auth *handlers.Auth, public *handlers.Public, opts Options) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.LoadSession(sessionStore))

	// Health check. No auth, no CSRF.
	r.Get("/health", healthHandler)

	// Static assets (compiled CSS, vendored HTMX).
	r.Handle("/static/*", http.FileServer(http.FS(web.StaticFS)))

	// Login attempts are rate limited per IP.
	loginLimiter := middleware.NewRateLimiter(10, time.Minute)

	// Admin routes. CSRF protection everywhere, auth on the console.
	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.NewCSRF(opts.Secure))

		// Auth pages, accessible without a session.
		r.With(loginLimiter.Middleware).Get("/login", auth.LoginPage)
		r.With(loginLimiter.Middleware).Post("/login", auth.LoginSubmit)
		r.Post("/logout", auth.Logout)

		// Authenticated admin console.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)

			r.Get("/", redirectTo("/admin/posts"))

			// Posts
			r.Route("/posts", func(r chi.Router) {
				r.Get("/", admin.Posts)
				r.Get("/new", admin.PostNew)
				r.Post("/", admin.PostCreate)
				r.Get("/picker", admin.PickerPartial)
				r.Get("/{id}/edit", admin.PostEdit)
				r.Post("/{id}", admin.PostUpdate)
				r.Post("/{id}/delete", admin.PostDelete)
				r.Post("/{id}/publish", admin.PostPublish)
				r.Post("/{id}/unpublish", admin.PostUnpublish)
			})

			// Section tree editor
			r.Route("/sections", func(r chi.Router) {
				r.Get("/", admin.Sections)
				r.Post("/", admin.SectionCreate)
				r.Get("/tree", admin.SectionsTree)
				r.Post("/{id}", admin.SectionRename)
				r.Post("/{id}/delete", admin.SectionDelete)
				r.Post("/{id}/assign", admin.SectionAssign)
				r.Post("/{id}/unassign", admin.SectionUnassign)
			})
		})
	})

	// Public site.
	r.Get("/", public.Home)
	r.Get("/about", public.About)
	r.Get("/projects", public.Projects)
	r.Get("/blog", public.Blog)
	r.Get("/blog/{slug}", public.Post)

	return r
}

// redirectTo returns a handler that redirects to a fixed path.
func redirectTo(path string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, path, http.StatusSeeOther)
	}
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
