// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// © Vlah Software House SRL
// All rights reserved. See LICENSE for details.

// Package apiclient is the HTTP client for the journal API, the remote
// backend that owns posts, sections, and authentication. Every method takes
// a context and returns decoded models; non-2xx responses surface as
// *APIError. The bearer token is pulled per request from a token.Source so
// the client itself stays stateless.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"foliopress/internal/models"
	"foliopress/internal/token"
)

// Client talks to the journal API over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     token.Source
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client (tests, custom
// transports).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a journal API client. The token source supplies the bearer
// token for admin endpoints; public endpoints work without one.
func New(baseURL string, tokens token.Source, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		tokens:     tokens,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do performs one request against the API. A nil in skips the request body;
// a nil out discards the response body. Non-2xx responses are decoded into
// *APIError.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("journal api marshal: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("journal api request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if tok, ok := c.tokens.Token(ctx); ok {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("journal api http: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("journal api read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var envelope errorEnvelope
		if json.Unmarshal(raw, &envelope) == nil && envelope.Error != "" {
			apiErr.Message = envelope.Error
			apiErr.Code = envelope.Code
			apiErr.Details = envelope.Details
		}
		return apiErr
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("journal api decode: %w", err)
		}
	}
	return nil
}

// ListParams narrows a post listing. Zero values are omitted from the query.
type ListParams struct {
	Limit   int
	Offset  int
	Tag     string
	Section string // section id filter
	Status  models.PostStatus
	Search  string
}

func (p ListParams) encode() string {
	q := url.Values{}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Offset > 0 {
		q.Set("offset", strconv.Itoa(p.Offset))
	}
	if p.Tag != "" {
		q.Set("tag", p.Tag)
	}
	if p.Section != "" {
		q.Set("sectionId", p.Section)
	}
	if p.Status != "" {
		q.Set("status", string(p.Status))
	}
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

// Health probes the API's health endpoint.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/api/health", nil, nil)
}

// --- Auth ---

// Login exchanges admin credentials for a bearer token.
func (c *Client) Login(ctx context.Context, username, password string) (*models.LoginResponse, error) {
	var out models.LoginResponse
	in := models.LoginRequest{Username: username, Password: password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyToken checks whether the current bearer token is still accepted.
func (c *Client) VerifyToken(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/auth/verify", nil, nil)
}

// --- Sections ---

// SectionTree fetches the full section forest, children nested, siblings
// in display order.
func (c *Client) SectionTree(ctx context.Context) ([]models.SectionNode, error) {
	var out models.SectionTreeResponse
	if err := c.do(ctx, http.MethodGet, "/api/sections/tree", nil, &out); err != nil {
		return nil, err
	}
	return out.Sections, nil
}

// CreateSection creates a section. A nil ParentID in the request creates a
// root section.
func (c *Client) CreateSection(ctx context.Context, in models.CreateSectionRequest) (*models.SectionNode, error) {
	var out models.SectionNode
	if err := c.do(ctx, http.MethodPost, "/api/admin/sections", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateSection renames a section (and refreshes its slug).
func (c *Client) UpdateSection(ctx context.Context, id string, in models.UpdateSectionRequest) (*models.SectionNode, error) {
	var out models.SectionNode
	if err := c.do(ctx, http.MethodPut, "/api/admin/sections/"+url.PathEscape(id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteSection removes a section. The API reparents or orphans its posts
// server-side.
func (c *Client) DeleteSection(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/admin/sections/"+url.PathEscape(id), nil, nil)
}

// --- Posts, public ---

// Posts lists published posts.
func (c *Client) Posts(ctx context.Context, params ListParams) (*models.PostListResponse, error) {
	var out models.PostListResponse
	if err := c.do(ctx, http.MethodGet, "/api/posts"+params.encode(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PostBySlug fetches one published post with full content.
func (c *Client) PostBySlug(ctx context.Context, slug string) (*models.Post, error) {
	var out models.Post
	if err := c.do(ctx, http.MethodGet, "/api/posts/"+url.PathEscape(slug), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Tags lists tags with usage counts across published posts.
func (c *Client) Tags(ctx context.Context) ([]models.TagCount, error) {
	var out models.TagListResponse
	if err := c.do(ctx, http.MethodGet, "/api/tags", nil, &out); err != nil {
		return nil, err
	}
	return out.Tags, nil
}

// --- Posts, admin ---

// AdminPosts lists posts of every status. Requires a bearer token.
func (c *Client) AdminPosts(ctx context.Context, params ListParams) (*models.PostListResponse, error) {
	var out models.PostListResponse
	if err := c.do(ctx, http.MethodGet, "/api/admin/posts"+params.encode(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AdminPost fetches one post by id regardless of status.
func (c *Client) AdminPost(ctx context.Context, id string) (*models.Post, error) {
	var out models.Post
	if err := c.do(ctx, http.MethodGet, "/api/admin/posts/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreatePost creates a post (draft unless the request says otherwise).
func (c *Client) CreatePost(ctx context.Context, in models.CreatePostRequest) (*models.Post, error) {
	var out models.Post
	if err := c.do(ctx, http.MethodPost, "/api/admin/posts", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdatePost applies a partial update. Nil fields are left untouched by
// the API.
func (c *Client) UpdatePost(ctx context.Context, id string, in models.UpdatePostRequest) (*models.Post, error) {
	var out models.Post
	if err := c.do(ctx, http.MethodPut, "/api/admin/posts/"+url.PathEscape(id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeletePost permanently removes a post.
func (c *Client) DeletePost(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/admin/posts/"+url.PathEscape(id), nil, nil)
}

// PublishPost transitions a post to PUBLISHED.
func (c *Client) PublishPost(ctx context.Context, id string) (*models.Post, error) {
	var out models.Post
	if err := c.do(ctx, http.MethodPost, "/api/admin/posts/"+url.PathEscape(id)+"/publish", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UnpublishPost transitions a post back to DRAFT.
func (c *Client) UnpublishPost(ctx context.Context, id string) (*models.Post, error) {
	var out models.Post
	if err := c.do(ctx, http.MethodPost, "/api/admin/posts/"+url.PathEscape(id)+"/unpublish", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AssignPostSection moves a post into a section, or out of every section
// when sectionID is nil. Built on the partial update endpoint, which needs
// the sectionId key present (possibly null) to distinguish "unassign" from
// "leave alone".
func (c *Client) AssignPostSection(ctx context.Context, postID string, sectionID *string) (*models.Post, error) {
	return c.UpdatePost(ctx, postID, models.UpdatePostRequest{SectionID: &sectionID})
}
