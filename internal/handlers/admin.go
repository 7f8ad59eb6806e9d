// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"foliopress/internal/apiclient"
	"foliopress/internal/cache"
	"foliopress/internal/editor"
	"foliopress/internal/models"
	"foliopress/internal/picker"
	"foliopress/internal/render"
	"foliopress/internal/slug"
)

// adminPageSize is the admin post listing page size.
const adminPageSize = 20

// Admin groups the admin console handlers: the post manager and the
// section tree editor. All writes go to the journal API with the session's
// bearer token and invalidate the query cache on success.
type Admin struct {
	renderer *render.Renderer
	api      *apiclient.Client
	queries  *cache.QueryCache
}

// NewAdmin creates a new Admin handler group.
func NewAdmin(renderer *render.Renderer, api *apiclient.Client, queries *cache.QueryCache) *Admin {
	return &Admin{
		renderer: renderer,
		api:      api,
		queries:  queries,
	}
}

// sections returns the section forest, cache first. Shared with the public
// handlers through the same cache set.
func (a *Admin) sections(ctx context.Context) ([]models.SectionNode, error) {
	key := cache.Key(cache.SetSections, "")

	var cached []models.SectionNode
	if a.queries.Get(ctx, key, &cached) {
		return cached, nil
	}

	fresh, err := a.api.SectionTree(ctx)
	if err != nil {
		return nil, err
	}
	a.queries.Set(ctx, key, fresh)
	return fresh, nil
}

// allPosts returns every post regardless of status, for the section editor
// counts and the assignment panel.
func (a *Admin) allPosts(ctx context.Context) ([]models.PostSummary, error) {
	key := cache.Key(cache.SetAdminPosts, "all")

	var resp models.PostListResponse
	if a.queries.Get(ctx, key, &resp) {
		return resp.Posts, nil
	}

	fresh, err := a.api.AdminPosts(ctx, apiclient.ListParams{Limit: publicListLimit})
	if err != nil {
		return nil, err
	}
	a.queries.Set(ctx, key, fresh)
	return fresh.Posts, nil
}

// --- Posts ---

// Posts renders the admin post listing with status filter and search.
func (a *Admin) Posts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	status := models.PostStatus(q.Get("status"))
	if status != models.PostStatusDraft && status != models.PostStatusPublished {
		status = ""
	}
	search := q.Get("q")
	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}

	resp, err := a.api.AdminPosts(r.Context(), apiclient.ListParams{
		Limit:  adminPageSize,
		Offset: (page - 1) * adminPageSize,
		Status: status,
		Search: search,
	})
	if err != nil {
		a.renderAPIFailure(w, r, err)
		return
	}

	a.renderer.Page(w, r, "admin/posts", &render.PageData{
		Title:  "Posts",
		Active: "posts",
		Data: map[string]any{
			"Posts":      resp.Posts,
			"Pagination": resp.Pagination,
			"Status":     string(status),
			"Search":     search,
			"PageNum":    page,
		},
	})
}

// PostNew renders an empty post form.
func (a *Admin) PostNew(w http.ResponseWriter, r *http.Request) {
	forest, err := a.sections(r.Context())
	if err != nil {
		a.renderAPIFailure(w, r, err)
		return
	}

	st := picker.New("")
	a.renderer.Page(w, r, "admin/post_form", &render.PageData{
		Title:  "New Post",
		Active: "posts",
		Data:   a.postFormData(nil, forest, st, ""),
	})
}

// PostEdit renders the form for an existing post.
func (a *Admin) PostEdit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	post, err := a.api.AdminPost(r.Context(), id)
	if err != nil {
		if apiclient.IsNotFound(err) {
			http.NotFound(w, r)
			return
		}
		a.renderAPIFailure(w, r, err)
		return
	}
	forest, err := a.sections(r.Context())
	if err != nil {
		a.renderAPIFailure(w, r, err)
		return
	}

	selected := ""
	if post.SectionID != nil {
		selected = *post.SectionID
	}
	st := picker.New(selected)
	st.EnsureSelectionVisible(forest)

	a.renderer.Page(w, r, "admin/post_form", &render.PageData{
		Title:  "Edit Post",
		Active: "posts",
		Data:   a.postFormData(post, forest, st, ""),
	})
}

// postFormData assembles the template data shared by the post form page
// and its error re-renders.
func (a *Admin) postFormData(post *models.Post, forest []models.SectionNode, st *picker.State, formError string) map[string]any {
	return map[string]any{
		"Post":     post,
		"Error":    formError,
		"Picker":   st.Rows(forest),
		"Selected": st.SelectedID,
		"Crumbs":   st.Breadcrumb(forest),
		"Expanded": picker.EncodeExpanded(st.Expanded),
		"Open":     st.Open,
		"Search":   st.Search,
	}
}

// PostCreate handles the new-post form submission.
func (a *Admin) PostCreate(w http.ResponseWriter, r *http.Request) {
	title := r.FormValue("title")
	slugField := strings.TrimSpace(r.FormValue("slug"))
	content := r.FormValue("content")
	excerpt := r.FormValue("excerpt")

	if msg := validatePost(title, slugField, content, excerpt); msg != "" {
		a.rerenderPostForm(w, r, nil, msg)
		return
	}
	if slugField == "" {
		slugField = slug.Derive(title)
	}

	req := models.CreatePostRequest{
		Title:   strings.TrimSpace(title),
		Slug:    slugField,
		Excerpt: excerpt,
		Content: content,
		Tags:    parseTags(r.FormValue("tags")),
	}
	if r.FormValue("publish") != "" {
		req.Status = models.PostStatusPublished
	}
	if sectionID := r.FormValue("section"); sectionID != "" {
		req.SectionID = &sectionID
	}

	if _, err := a.api.CreatePost(r.Context(), req); err != nil {
		slog.Error("create post failed", "error", err)
		a.rerenderPostForm(w, r, nil, apiErrorMessage(err))
		return
	}

	a.queries.OnMutation(r.Context(), cache.MutationPostCreated)
	http.Redirect(w, r, "/admin/posts", http.StatusSeeOther)
}

// PostUpdate handles the edit form submission. The whole form is sent, so
// every field is included in the partial update, with the section field
// mapping to an explicit null when cleared.
func (a *Admin) PostUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	title := r.FormValue("title")
	slugField := strings.TrimSpace(r.FormValue("slug"))
	content := r.FormValue("content")
	excerpt := r.FormValue("excerpt")

	if msg := validatePost(title, slugField, content, excerpt); msg != "" {
		a.rerenderPostForm(w, r, &id, msg)
		return
	}
	if slugField == "" {
		slugField = slug.Derive(title)
	}

	title = strings.TrimSpace(title)
	tags := parseTags(r.FormValue("tags"))
	var sectionID *string
	if v := r.FormValue("section"); v != "" {
		sectionID = &v
	}

	req := models.UpdatePostRequest{
		Title:     &title,
		Slug:      &slugField,
		Excerpt:   &excerpt,
		Content:   &content,
		Tags:      &tags,
		SectionID: &sectionID,
	}

	if _, err := a.api.UpdatePost(r.Context(), id, req); err != nil {
		if apiclient.IsNotFound(err) {
			http.NotFound(w, r)
			return
		}
		slog.Error("update post failed", "error", err, "id", id)
		a.rerenderPostForm(w, r, &id, apiErrorMessage(err))
		return
	}

	a.queries.OnMutation(r.Context(), cache.MutationPostUpdated)
	http.Redirect(w, r, "/admin/posts", http.StatusSeeOther)
}

// rerenderPostForm re-renders the post form with an error banner, keeping
// the submitted values and picker state.
func (a *Admin) rerenderPostForm(w http.ResponseWriter, r *http.Request, id *string, msg string) {
	forest, err := a.sections(r.Context())
	if err != nil {
		a.renderAPIFailure(w, r, err)
		return
	}

	st := picker.New(r.FormValue("section"))
	st.Expanded = picker.ParseExpanded(r.FormValue("expanded"))
	st.EnsureSelectionVisible(forest)

	var cover *string
	if v := r.FormValue("coverImage"); v != "" {
		cover = &v
	}
	post := &models.Post{
		PostSummary: models.PostSummary{
			Title:      r.FormValue("title"),
			Slug:       r.FormValue("slug"),
			Excerpt:    r.FormValue("excerpt"),
			Tags:       parseTags(r.FormValue("tags")),
			CoverImage: cover,
		},
		Content: r.FormValue("content"),
	}
	if id != nil {
		post.ID = *id
	}

	title := "New Post"
	if id != nil {
		title = "Edit Post"
	}
	a.renderer.Page(w, r, "admin/post_form", &render.PageData{
		Title:  title,
		Active: "posts",
		Data:   a.postFormData(post, forest, st, msg),
	})
}

// PostDelete permanently removes a post.
func (a *Admin) PostDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := a.api.DeletePost(r.Context(), id); err != nil && !apiclient.IsNotFound(err) {
		slog.Error("delete post failed", "error", err, "id", id)
		http.Error(w, "Bad Gateway", http.StatusBadGateway)
		return
	}

	a.queries.OnMutation(r.Context(), cache.MutationPostDeleted)
	http.Redirect(w, r, "/admin/posts", http.StatusSeeOther)
}

// PostPublish transitions a post to PUBLISHED.
func (a *Admin) PostPublish(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if _, err := a.api.PublishPost(r.Context(), id); err != nil {
		slog.Error("publish post failed", "error", err, "id", id)
		http.Error(w, "Bad Gateway", http.StatusBadGateway)
		return
	}

	a.queries.OnMutation(r.Context(), cache.MutationPostPublished)
	http.Redirect(w, r, "/admin/posts", http.StatusSeeOther)
}

// PostUnpublish transitions a post back to DRAFT.
func (a *Admin) PostUnpublish(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if _, err := a.api.UnpublishPost(r.Context(), id); err != nil {
		slog.Error("unpublish post failed", "error", err, "id", id)
		http.Error(w, "Bad Gateway", http.StatusBadGateway)
		return
	}

	a.queries.OnMutation(r.Context(), cache.MutationPostUnpublished)
	http.Redirect(w, r, "/admin/posts", http.StatusSeeOther)
}

// PickerPartial serves the section picker fragment on the post form. The
// op parameter applies one transition to the state carried in the query
// before rendering.
func (a *Admin) PickerPartial(w http.ResponseWriter, r *http.Request) {
	forest, err := a.sections(r.Context())
	if err != nil {
		http.Error(w, "Bad Gateway", http.StatusBadGateway)
		return
	}

	q := r.URL.Query()
	st := picker.New(q.Get("selected"))
	st.Expanded = picker.ParseExpanded(q.Get("expanded"))
	st.Search = q.Get("search")
	st.Open = q.Get("open") == "1"

	switch q.Get("op") {
	case "open":
		st.Open = true
		st.EnsureSelectionVisible(forest)
	case "toggle":
		st.Toggle(q.Get("id"))
	case "select":
		st.Select(q.Get("id"))
	case "clear":
		st.Clear()
	case "close":
		st.Close()
	case "search":
		// Search text already applied from the query.
	}

	a.renderer.Partial(w, r, "admin/post_form", "picker", &render.PageData{
		Data: a.postFormData(nil, forest, st, ""),
	})
}

// --- Sections ---

// editorStateFromRequest rebuilds the tree editor state from request
// values (query or form).
func editorStateFromRequest(r *http.Request) *editor.State {
	st := editor.New()
	st.Expanded = picker.ParseExpanded(r.FormValue("expanded"))
	st.Mode = editor.Mode{
		Kind:     editor.ModeKind(r.FormValue("mode")),
		TargetID: r.FormValue("target"),
	}
	if st.Mode.Kind == "" {
		st.Mode = editor.Idle()
	}
	return st
}

// Sections renders the section tree editor page.
func (a *Admin) Sections(w http.ResponseWriter, r *http.Request) {
	st := editorStateFromRequest(r)
	a.renderSections(w, r, st, "", false)
}

// SectionsTree serves the editor tree fragment after applying the op
// transition from the query parameters.
func (a *Admin) SectionsTree(w http.ResponseWriter, r *http.Request) {
	st := editorStateFromRequest(r)
	q := r.URL.Query()

	switch q.Get("op") {
	case "toggle":
		st.Toggle(q.Get("id"))
	case "edit":
		st.StartEdit(q.Get("id"))
	case "add-child":
		st.StartAddChild(q.Get("id"))
	case "add-root":
		st.StartAddRoot()
	case "assign":
		st.ToggleAssign(q.Get("id"))
	case "cancel":
		st.Cancel()
	}

	a.renderSections(w, r, st, "", true)
}

// renderSections renders either the whole editor page or just its tree
// fragment, with the assignment panel populated when that mode is active.
func (a *Admin) renderSections(w http.ResponseWriter, r *http.Request, st *editor.State, formError string, fragment bool) {
	ctx := r.Context()

	forest, err := a.sections(ctx)
	if err != nil {
		a.renderAPIFailure(w, r, err)
		return
	}
	posts, err := a.allPosts(ctx)
	if err != nil {
		a.renderAPIFailure(w, r, err)
		return
	}

	data := map[string]any{
		"Rows":       st.Rows(forest, posts),
		"Expanded":   picker.EncodeExpanded(st.Expanded),
		"Mode":       string(st.Mode.Kind),
		"Target":     st.Mode.TargetID,
		"AddingRoot": st.AddingRoot(),
		"Error":      formError,
	}

	if st.Mode.Kind == editor.ModeAssigningPosts {
		target := st.Mode.TargetID
		query := r.FormValue("q")
		data["Assigned"] = editor.AssignedPosts(posts, target)
		data["Suggestions"] = editor.Suggestions(posts, target, query)
		data["AssignQuery"] = query
	}

	page := &render.PageData{
		Title:  "Sections",
		Active: "sections",
		Data:   data,
	}
	if fragment {
		a.renderer.Partial(w, r, "admin/sections", "tree", page)
		return
	}
	a.renderer.Page(w, r, "admin/sections", page)
}

// sectionsRedirect sends the browser back to the editor page, preserving
// the expanded set.
func sectionsRedirect(w http.ResponseWriter, r *http.Request, extra url.Values) {
	q := url.Values{}
	if expanded := r.FormValue("expanded"); expanded != "" {
		q.Set("expanded", expanded)
	}
	for k, vs := range extra {
		for _, v := range vs {
			q.Set(k, v)
		}
	}
	target := "/admin/sections"
	if len(q) > 0 {
		target += "?" + q.Encode()
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// SectionCreate creates a root or child section from the inline input.
func (a *Admin) SectionCreate(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.FormValue("name"))
	if msg := validateSectionName(name); msg != "" {
		st := editorStateFromRequest(r)
		a.renderSections(w, r, st, msg, false)
		return
	}

	req := models.CreateSectionRequest{
		Name: name,
		Slug: slug.Derive(name),
	}
	if parentID := r.FormValue("parentId"); parentID != "" {
		req.ParentID = &parentID
	}

	created, err := a.api.CreateSection(r.Context(), req)
	if err != nil {
		slog.Error("create section failed", "error", err)
		st := editorStateFromRequest(r)
		a.renderSections(w, r, st, apiErrorMessage(err), false)
		return
	}

	a.queries.OnMutation(r.Context(), cache.MutationSectionCreated)

	// Expand the parent so the new child is visible.
	extra := url.Values{}
	if created.ParentID != nil {
		expanded := picker.ParseExpanded(r.FormValue("expanded"))
		expanded[*created.ParentID] = struct{}{}
		extra.Set("expanded", picker.EncodeExpanded(expanded))
	}
	sectionsRedirect(w, r, extra)
}

// SectionRename applies the inline rename form.
func (a *Admin) SectionRename(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	name := strings.TrimSpace(r.FormValue("name"))
	if msg := validateSectionName(name); msg != "" {
		st := editorStateFromRequest(r)
		st.StartEdit(id)
		a.renderSections(w, r, st, msg, false)
		return
	}

	req := models.UpdateSectionRequest{
		Name: name,
		Slug: slug.Derive(name),
	}
	if _, err := a.api.UpdateSection(r.Context(), id, req); err != nil {
		if apiclient.IsNotFound(err) {
			http.NotFound(w, r)
			return
		}
		slog.Error("rename section failed", "error", err, "id", id)
		st := editorStateFromRequest(r)
		st.StartEdit(id)
		a.renderSections(w, r, st, apiErrorMessage(err), false)
		return
	}

	a.queries.OnMutation(r.Context(), cache.MutationSectionUpdated)
	sectionsRedirect(w, r, nil)
}

// SectionDelete removes a section. The journal API decides what happens to
// its descendants and posts.
func (a *Admin) SectionDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := a.api.DeleteSection(r.Context(), id); err != nil && !apiclient.IsNotFound(err) {
		slog.Error("delete section failed", "error", err, "id", id)
		st := editorStateFromRequest(r)
		a.renderSections(w, r, st, apiErrorMessage(err), false)
		return
	}

	a.queries.OnMutation(r.Context(), cache.MutationSectionDeleted)
	sectionsRedirect(w, r, nil)
}

// SectionAssign moves a post into the section from the assignment panel.
func (a *Admin) SectionAssign(w http.ResponseWriter, r *http.Request) {
	sectionID := chi.URLParam(r, "id")
	postID := r.FormValue("postId")
	if postID == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	if _, err := a.api.AssignPostSection(r.Context(), postID, &sectionID); err != nil {
		slog.Error("assign post failed", "error", err, "post", postID, "section", sectionID)
		http.Error(w, "Bad Gateway", http.StatusBadGateway)
		return
	}

	a.queries.OnMutation(r.Context(), cache.MutationPostUpdated)

	extra := url.Values{}
	extra.Set("mode", string(editor.ModeAssigningPosts))
	extra.Set("target", sectionID)
	sectionsRedirect(w, r, extra)
}

// SectionUnassign removes a post from every section.
func (a *Admin) SectionUnassign(w http.ResponseWriter, r *http.Request) {
	sectionID := chi.URLParam(r, "id")
	postID := r.FormValue("postId")
	if postID == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	if _, err := a.api.AssignPostSection(r.Context(), postID, nil); err != nil {
		slog.Error("unassign post failed", "error", err, "post", postID)
		http.Error(w, "Bad Gateway", http.StatusBadGateway)
		return
	}

	a.queries.OnMutation(r.Context(), cache.MutationPostUpdated)

	extra := url.Values{}
	extra.Set("mode", string(editor.ModeAssigningPosts))
	extra.Set("target", sectionID)
	sectionsRedirect(w, r, extra)
}

// renderAPIFailure shows a minimal error page when the journal API is
// unreachable.
func (a *Admin) renderAPIFailure(w http.ResponseWriter, r *http.Request, err error) {
	slog.Error("journal api request failed", "error", err, "path", r.URL.Path)
	http.Error(w, "The journal API is unreachable.", http.StatusBadGateway)
}

// apiErrorMessage turns an API error into a user-facing form message.
func apiErrorMessage(err error) string {
	if apiErr, ok := err.(*apiclient.APIError); ok && apiErr.Status < 500 {
		return apiErr.Message
	}
	return "The journal API rejected the request. Try again."
}
