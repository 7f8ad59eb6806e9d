// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"foliopress/internal/apiclient"
	"foliopress/internal/cache"
	"foliopress/internal/github"
	"foliopress/internal/grouping"
	"foliopress/internal/markdown"
	"foliopress/internal/models"
	"foliopress/internal/render"
	"foliopress/internal/sectiontree"
	"foliopress/internal/toc"
)

// publicListLimit is how many published posts are pulled from the journal
// API for the blog views. Grouping, pills, and pagination are computed
// here, so the full list is needed rather than one API page.
const publicListLimit = 100

// Public groups handlers for the public-facing site. Every view is built
// from journal API (or GitHub API) responses, with the Valkey query cache
// consulted first and populated on miss.
type Public struct {
	renderer   *render.Renderer
	api        *apiclient.Client
	gh         *github.Client
	queries    *cache.QueryCache
	githubUser string
}

// NewPublic creates a new Public handler group.
func NewPublic(renderer *render.Renderer, api *apiclient.Client, gh *github.Client, queries *cache.QueryCache, githubUser string) *Public {
	return &Public{
		renderer:   renderer,
		api:        api,
		gh:         gh,
		queries:    queries,
		githubUser: githubUser,
	}
}

// publishedPosts returns all published posts, cache first.
func (p *Public) publishedPosts(ctx context.Context) ([]models.PostSummary, error) {
	key := cache.Key(cache.SetPosts, "all")

	var resp models.PostListResponse
	if p.queries.Get(ctx, key, &resp) {
		return resp.Posts, nil
	}

	fresh, err := p.api.Posts(ctx, apiclient.ListParams{Limit: publicListLimit})
	if err != nil {
		return nil, err
	}
	p.queries.Set(ctx, key, fresh)
	return fresh.Posts, nil
}

// sections returns the section forest, cache first.
func (p *Public) sections(ctx context.Context) ([]models.SectionNode, error) {
	key := cache.Key(cache.SetSections, "")

	var cached []models.SectionNode
	if p.queries.Get(ctx, key, &cached) {
		return cached, nil
	}

	fresh, err := p.api.SectionTree(ctx)
	if err != nil {
		return nil, err
	}
	p.queries.Set(ctx, key, fresh)
	return fresh, nil
}

// Home renders the landing page with the most recent posts.
func (p *Public) Home(w http.ResponseWriter, r *http.Request) {
	posts, err := p.publishedPosts(r.Context())
	if err != nil {
		slog.Error("home: list posts failed", "error", err)
		posts = nil
	}

	recent := posts
	if len(recent) > 3 {
		recent = recent[:3]
	}

	p.renderer.Page(w, r, "site/home", &render.PageData{
		Title:  "Home",
		Active: "home",
		Data:   map[string]any{"Recent": recent},
	})
}

// About renders the static about page.
func (p *Public) About(w http.ResponseWriter, r *http.Request) {
	p.renderer.Page(w, r, "site/about", &render.PageData{
		Title:  "About",
		Active: "about",
	})
}

// Projects renders the portfolio built from public GitHub repositories.
// When GitHub is unreachable the page renders empty rather than erroring.
func (p *Public) Projects(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	key := cache.Key(cache.SetProjects, "")

	var projects []models.Project
	if !p.queries.Get(ctx, key, &projects) {
		fresh, err := p.gh.Projects(ctx, p.githubUser)
		if err != nil {
			slog.Warn("github projects fetch failed", "error", err, "user", p.githubUser)
		} else {
			projects = fresh
			p.queries.Set(ctx, key, projects)
		}
	}

	p.renderer.Page(w, r, "site/projects", &render.PageData{
		Title:  "Projects",
		Active: "projects",
		Data:   map[string]any{"Projects": projects},
	})
}

// Blog renders the post listing in flat or grouped view.
//
// Query parameters: view (flat|grouped), pill (section id, "all", or
// "uncategorized"), tag, page.
func (p *Public) Blog(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	posts, err := p.publishedPosts(ctx)
	if err != nil {
		slog.Error("blog: list posts failed", "error", err)
		http.Error(w, "Service Unavailable", http.StatusServiceUnavailable)
		return
	}
	forest, err := p.sections(ctx)
	if err != nil {
		slog.Error("blog: section tree failed", "error", err)
		http.Error(w, "Service Unavailable", http.StatusServiceUnavailable)
		return
	}

	view := r.URL.Query().Get("view")
	if view != "grouped" {
		view = "flat"
	}
	pill := r.URL.Query().Get("pill")
	if pill == "" {
		pill = grouping.PillAll
	}
	tag := r.URL.Query().Get("tag")
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))

	if tag != "" {
		posts = filterByTag(posts, tag)
	}

	data := map[string]any{
		"View":  view,
		"Pill":  pill,
		"Tag":   tag,
		"Pills": grouping.Pills(forest, posts),
	}

	if view == "grouped" {
		data["Groups"] = grouping.BuildGroups(forest, posts)
		data["Uncategorized"] = grouping.Uncategorized(posts)
	} else {
		filtered := grouping.Filter(forest, posts, pill)
		data["Page"] = grouping.Paginate(filtered, page)
	}

	p.renderer.Page(w, r, "site/blog", &render.PageData{
		Title:  "Blog",
		Active: "blog",
		Data:   data,
	})
}

// Post renders a single published post with its table of contents and
// section breadcrumb.
func (p *Public) Post(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slugParam := chi.URLParam(r, "slug")
	key := cache.Key(cache.SetPost, slugParam)

	var post models.Post
	if !p.queries.Get(ctx, key, &post) {
		fresh, err := p.api.PostBySlug(ctx, slugParam)
		if err != nil {
			if apiclient.IsNotFound(err) {
				http.NotFound(w, r)
				return
			}
			slog.Error("post fetch failed", "error", err, "slug", slugParam)
			http.Error(w, "Service Unavailable", http.StatusServiceUnavailable)
			return
		}
		post = *fresh
		p.queries.Set(ctx, key, post)
	}

	body, err := markdown.ToHTML(post.Content)
	if err != nil {
		slog.Error("post markdown render failed", "error", err, "slug", slugParam)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	var breadcrumb []string
	if post.SectionID != nil {
		if forest, err := p.sections(ctx); err == nil {
			breadcrumb = sectiontree.BuildBreadcrumb(forest, *post.SectionID)
		}
	}

	p.renderer.Page(w, r, "site/post", &render.PageData{
		Title:  post.Title,
		Active: "blog",
		Data: map[string]any{
			"Post":       post,
			"Body":       body,
			"TOC":        toc.Extract(post.Content),
			"Breadcrumb": breadcrumb,
		},
	})
}

// filterByTag keeps posts carrying the tag, case-insensitively.
func filterByTag(posts []models.PostSummary, tag string) []models.PostSummary {
	var out []models.PostSummary
	for _, p := range posts {
		for _, t := range p.Tags {
			if strings.EqualFold(t, tag) {
				out = append(out, p)
				break
			}
		}
	}
	return out
}
