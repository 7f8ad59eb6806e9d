package handlers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"foliopress/internal/apiclient"
	"foliopress/internal/middleware"
	"foliopress/internal/render"
	"foliopress/internal/session"
)

// Auth groups the authentication handlers. Credentials are never verified
// locally; the login form is exchanged for a bearer token at the journal
// API and the token lives in the server-side session from then on.
type Auth struct {
	renderer *render.Renderer
	sessions *session.Store
	api      *apiclient.Client
}

// NewAuth creates a new Auth handler group.
func NewAuth(renderer *render.Renderer, sessions *session.Store, api *apiclient.Client) *Auth {
	return &Auth{
		renderer: renderer,
		sessions: sessions,
		api:      api,
	}
}

// LoginPage renders the login form.
func (a *Auth) LoginPage(w http.ResponseWriter, r *http.Request) {
	// Already logged in, go straight to the console.
	if middleware.SessionFromCtx(r.Context()) != nil {
		http.Redirect(w, r, "/admin/posts", http.StatusSeeOther)
		return
	}

	a.renderer.Page(w, r, "admin/login", &render.PageData{
		Title: "Sign In",
	})
}

// LoginSubmit exchanges the submitted credentials for a bearer token and
// creates the session around it.
func (a *Auth) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")

	if username == "" || password == "" {
		a.renderer.Page(w, r, "admin/login", &render.PageData{
			Title: "Sign In",
			Data:  map[string]any{"Error": "Username and password are required."},
		})
		return
	}

	resp, err := a.api.Login(r.Context(), username, password)
	if err != nil {
		if apiclient.IsUnauthorized(err) {
			a.renderer.Page(w, r, "admin/login", &render.PageData{
				Title: "Sign In",
				Data:  map[string]any{"Error": "Invalid username or password."},
			})
			return
		}
		slog.Error("login against journal api failed", "error", err)
		a.renderer.Page(w, r, "admin/login", &render.PageData{
			Title: "Sign In",
			Data:  map[string]any{"Error": "The journal API is unreachable. Try again shortly."},
		})
		return
	}

	expiresAt := time.Time{}
	if resp.ExpiresIn > 0 {
		expiresAt = time.Now().Add(time.Duration(resp.ExpiresIn) * time.Second)
	}

	_, err = a.sessions.Create(r.Context(), w, &session.Data{
		Username:  username,
		Token:     resp.Token,
		ExpiresAt: expiresAt,
	})
	if err != nil {
		slog.Error("session create failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/admin/posts", http.StatusSeeOther)
}

// Logout destroys the session and redirects to the login page.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	a.sessions.Destroy(r.Context(), w, r)
	http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
}
