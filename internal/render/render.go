// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render provides HTML template rendering for the public site and
// the admin console. It supports full-page and HTMX partial rendering,
// automatically detecting the request type via the HX-Request header.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"strings"
	"time"

	"foliopress/internal/middleware"
	"foliopress/internal/session"
)

//go:embed templates/site/*.html templates/admin/*.html
var templateFS embed.FS

// PageData holds all data passed to templates.
type PageData struct {
	Title     string         // Page title for <title> tag
	Active    string         // Active nav item (e.g., "blog", "posts", "sections")
	Session   *session.Data  // Current admin session (nil if unauthenticated)
	CSRFToken string         // CSRF token for forms and HTMX headers
	Data      map[string]any // Page-specific data
	Flashes   []Flash        // One-time notification messages
}

// Flash represents a one-time notification message displayed to the user.
type Flash struct {
	Type    string // "success", "error", "warning", "info"
	Message string
}

// Renderer handles template parsing and execution. Each template group
// (site, admin) pairs its pages with that group's base layout.
type Renderer struct {
	templates map[string]*template.Template
	funcMap   template.FuncMap
}

// standaloneTemplates lists templates that render as full HTML pages
// without a base layout (they have their own <html>, <head>, etc.).
var standaloneTemplates = map[string]bool{
	"admin/login": true,
}

// New creates a Renderer by parsing all templates from the embedded
// filesystem. When devMode is true, templates load CDN-hosted assets;
// when false, they reference the embedded static files.
func New(devMode bool) (*Renderer, error) {
	r := &Renderer{
		templates: make(map[string]*template.Template),
		funcMap: template.FuncMap{
			"activeClass": func(current, target string) string {
				if current == target {
					return "text-white"
				}
				return "text-gray-400 hover:text-white"
			},
			// deref safely dereferences a string pointer for use in templates.
			"deref": func(s *string) string {
				if s == nil {
					return ""
				}
				return *s
			},
			// strEq compares a *string with a string. Used to mark the
			// selected section in pickers.
			"strEq": func(ptr *string, val string) bool {
				return ptr != nil && *ptr == val
			},
			// isDev returns true when the app runs in development mode.
			"isDev": func() bool {
				return devMode
			},
			// indent pads a section name with non-breaking spaces based on
			// its tree depth. Used for flattened tree rows.
			"indent": func(depth int, name string) string {
				if depth == 0 {
					return name
				}
				return strings.Repeat("    ", depth) + name
			},
			// date formats a timestamp for display.
			"date": func(t time.Time) string {
				return t.Format("Jan 2, 2006")
			},
			// safe marks pre-rendered HTML (goldmark output) as trusted.
			"safe": func(s string) template.HTML {
				return template.HTML(s)
			},
			"join": strings.Join,
			// add and sub keep pagination arithmetic out of handlers.
			"add": func(a, b int) int { return a + b },
			"sub": func(a, b int) int { return a - b },
		},
	}

	for _, group := range []string{"site", "admin"} {
		if err := r.parseGroup(group); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// parseGroup parses every page of a template group against its base layout.
func (rn *Renderer) parseGroup(group string) error {
	dir := "templates/" + group
	entries, err := templateFS.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read embedded templates %s: %w", group, err)
	}

	for _, e := range entries {
		if e.IsDir() || e.Name() == "base.html" {
			continue
		}

		name := group + "/" + strings.TrimSuffix(e.Name(), ".html")

		var tmpl *template.Template
		var parseErr error
		if standaloneTemplates[name] {
			tmpl, parseErr = template.New(e.Name()).Funcs(rn.funcMap).ParseFS(
				templateFS, dir+"/"+e.Name(),
			)
		} else {
			tmpl, parseErr = template.New("base.html").Funcs(rn.funcMap).ParseFS(
				templateFS, dir+"/base.html", dir+"/"+e.Name(),
			)
		}
		if parseErr != nil {
			return fmt.Errorf("parse template %s: %w", name, parseErr)
		}

		rn.templates[name] = tmpl
	}
	return nil
}

// Page renders a full page or an HTMX partial, depending on the request
// headers. For HTMX requests, only the "content" block is sent. Template
// names are group-qualified, e.g. "site/blog" or "admin/sections".
func (rn *Renderer) Page(w http.ResponseWriter, r *http.Request, name string, data *PageData) {
	tmpl, ok := rn.templates[name]
	if !ok {
		http.Error(w, fmt.Sprintf("template %q not found", name), http.StatusInternalServerError)
		return
	}

	// Inject CSRF token from context (set by CSRF middleware).
	data.CSRFToken = middleware.CSRFTokenFromCtx(r.Context())

	// Inject session from context.
	if data.Session == nil {
		data.Session = middleware.SessionFromCtx(r.Context())
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	// HTMX request: render only the content fragment.
	if isHTMX(r) {
		if err := executeTemplate(w, tmpl, "content", data); err != nil {
			http.Error(w, "template error", http.StatusInternalServerError)
		}
		return
	}

	// Full page request: render the complete layout.
	execName := "base.html"
	if standaloneTemplates[name] {
		execName = name[strings.LastIndexByte(name, '/')+1:] + ".html"
	}

	if err := executeTemplate(w, tmpl, execName, data); err != nil {
		http.Error(w, "template error", http.StatusInternalServerError)
	}
}

// Partial renders one named block of a page template regardless of the
// HX-Request header. Used for HTMX endpoints that always return fragments
// (picker rows, editor tree).
func (rn *Renderer) Partial(w http.ResponseWriter, r *http.Request, page, block string, data *PageData) {
	tmpl, ok := rn.templates[page]
	if !ok {
		http.Error(w, fmt.Sprintf("template %q not found", page), http.StatusInternalServerError)
		return
	}

	data.CSRFToken = middleware.CSRFTokenFromCtx(r.Context())
	if data.Session == nil {
		data.Session = middleware.SessionFromCtx(r.Context())
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := executeTemplate(w, tmpl, block, data); err != nil {
		http.Error(w, "template error", http.StatusInternalServerError)
	}
}

// executeTemplate wraps template execution with error handling.
func executeTemplate(w io.Writer, tmpl *template.Template, name string, data any) error {
	return tmpl.ExecuteTemplate(w, name, data)
}

// isHTMX returns true if the request was made by HTMX (has HX-Request header).
func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
