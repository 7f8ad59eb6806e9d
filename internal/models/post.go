// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// PostStatus represents the publishing state of a post.
type PostStatus string

const (
	PostStatusDraft     PostStatus = "DRAFT"
	PostStatusPublished PostStatus = "PUBLISHED"
)

// PostSummary is the list-view shape of a post as returned by
// GET /api/posts and GET /api/admin/posts. A post is assigned to at most
// one section directly; SectionID is nil for uncategorized posts.
type PostSummary struct {
	ID          string     `json:"id"`
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Excerpt     string     `json:"excerpt"`
	Tags        []string   `json:"tags"`
	CoverImage  *string    `json:"coverImage"`
	Status      PostStatus `json:"status,omitempty"`
	ReadingTime int        `json:"readingTime"`
	SectionID   *string    `json:"sectionId"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Post is the full shape of a post, including its markdown body.
type Post struct {
	PostSummary
	Content string `json:"content"`
}

// IsPublished returns true if the post is in published status.
func (p PostSummary) IsPublished() bool {
	return p.Status == PostStatusPublished
}

// Pagination describes the paging envelope the journal API attaches to
// list responses.
type Pagination struct {
	Total   int  `json:"total"`
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"hasMore"`
}

// PostListResponse is the envelope of the post listing endpoints.
type PostListResponse struct {
	Posts      []PostSummary `json:"posts"`
	Pagination Pagination    `json:"pagination"`
}

// TagCount pairs a tag name with the number of posts carrying it.
type TagCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// TagListResponse is the envelope of GET /api/tags.
type TagListResponse struct {
	Tags  []TagCount `json:"tags"`
	Total int        `json:"total"`
}

// CreatePostRequest is the payload of POST /api/admin/posts.
type CreatePostRequest struct {
	Title      string     `json:"title"`
	Slug       string     `json:"slug,omitempty"`
	Excerpt    string     `json:"excerpt"`
	Content    string     `json:"content"`
	Tags       []string   `json:"tags,omitempty"`
	CoverImage *string    `json:"coverImage,omitempty"`
	Status     PostStatus `json:"status,omitempty"`
	SectionID  *string    `json:"sectionId,omitempty"`
}

// UpdatePostRequest is the payload of PUT /api/admin/posts/{id}. All fields
// are optional; only non-nil fields are sent. SectionID uses a double
// pointer so the client can distinguish "leave unchanged" (nil) from
// "unassign" (pointer to nil). The assign and unassign operations both go
// through this request.
type UpdatePostRequest struct {
	Title      *string     `json:"title,omitempty"`
	Slug       *string     `json:"slug,omitempty"`
	Excerpt    *string     `json:"excerpt,omitempty"`
	Content    *string     `json:"content,omitempty"`
	Tags       *[]string   `json:"tags,omitempty"`
	CoverImage *string     `json:"coverImage,omitempty"`
	Status     *PostStatus `json:"status,omitempty"`
	SectionID  **string    `json:"sectionId,omitempty"`
}

// LoginRequest is the payload of POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the bearer token issued on successful login.
// ExpiresIn is in seconds.
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expiresIn"`
}
