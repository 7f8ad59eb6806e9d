// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package github fetches a user's public repositories for the projects
// page. Only the public REST API is used, unauthenticated; the projects
// page degrades to an empty list when GitHub is unreachable or rate
// limits the server.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"foliopress/internal/models"
)

const (
	defaultBaseURL = "https://api.github.com"

	// apiVersion pins the REST API revision per GitHub's versioning policy.
	apiVersion = "2022-11-28"
)

// Client fetches repository data from the GitHub REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at a different API host (tests).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a GitHub API client.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// repo is the subset of GitHub's repository shape this application reads.
type repo struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	HTMLURL     string    `json:"html_url"`
	Homepage    string    `json:"homepage"`
	Stars       int       `json:"stargazers_count"`
	Forks       int       `json:"forks_count"`
	Language    string    `json:"language"`
	Topics      []string  `json:"topics"`
	Fork        bool      `json:"fork"`
	Archived    bool      `json:"archived"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Projects lists the user's public repositories as portfolio projects,
// newest activity first. Forks and archived repositories are skipped.
func (c *Client) Projects(ctx context.Context, user string) ([]models.Project, error) {
	url := fmt.Sprintf("%s/users/%s/repos?type=public&sort=updated&per_page=100", c.baseURL, user)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("github request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", apiVersion)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("github http: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("github read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("github API error (status %d): %s", resp.StatusCode, raw)
	}

	var repos []repo
	if err := json.Unmarshal(raw, &repos); err != nil {
		return nil, fmt.Errorf("github decode: %w", err)
	}

	projects := make([]models.Project, 0, len(repos))
	for _, r := range repos {
		if r.Fork || r.Archived {
			continue
		}
		projects = append(projects, models.Project{
			Title:       TitleFromRepoName(r.Name),
			Description: r.Description,
			Tags:        projectTags(r),
			GitHub:      r.HTMLURL,
			Link:        r.Homepage,
			Stars:       r.Stars,
			Forks:       r.Forks,
			Language:    r.Language,
			UpdatedAt:   r.UpdatedAt,
		})
	}
	return projects, nil
}

// projectTags merges the primary language with repository topics, language
// first, without duplicates.
func projectTags(r repo) []string {
	tags := make([]string, 0, len(r.Topics)+1)
	if r.Language != "" {
		tags = append(tags, r.Language)
	}
	for _, topic := range r.Topics {
		if !strings.EqualFold(topic, r.Language) {
			tags = append(tags, topic)
		}
	}
	return tags
}

// TitleFromRepoName turns a repository name like "section-tree-editor"
// into a display title like "Section Tree Editor".
func TitleFromRepoName(name string) string {
	words := strings.FieldsFunc(name, func(r rune) bool {
		return r == '-' || r == '_'
	})
	for i, w := range words {
		first, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(first)) + w[size:]
	}
	return strings.Join(words, " ")
}
