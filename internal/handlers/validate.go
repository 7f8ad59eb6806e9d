package handlers

import (
	"strings"
	"unicode/utf8"
)

// Validation limits for post and section form fields.
const (
	maxTitleLen       = 300
	maxSlugLen        = 300
	maxContentLen     = 100_000
	maxExcerptLen     = 1_000
	maxSectionNameLen = 100
	maxTagLen         = 50
	maxTagCount       = 20
)

// validatePost checks post form inputs and returns the first error found.
func validatePost(title, slug, content, excerpt string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return "Title is required."
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return "Title is too long (max 300 characters)."
	}
	if utf8.RuneCountInString(slug) > maxSlugLen {
		return "Slug is too long (max 300 characters)."
	}
	if utf8.RuneCountInString(content) > maxContentLen {
		return "Content is too long (max 100,000 characters)."
	}
	if utf8.RuneCountInString(excerpt) > maxExcerptLen {
		return "Excerpt is too long (max 1,000 characters)."
	}
	return ""
}

// validateSectionName checks a section name and returns the first error
// found. Names may repeat across the tree; only emptiness and length are
// rejected here.
func validateSectionName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "Section name is required."
	}
	if utf8.RuneCountInString(name) > maxSectionNameLen {
		return "Section name is too long (max 100 characters)."
	}
	return ""
}

// parseTags splits a comma-separated tag field, trimming whitespace and
// dropping empties and duplicates.
func parseTags(raw string) []string {
	seen := make(map[string]struct{})
	var tags []string
	for _, t := range strings.Split(raw, ",") {
		t = strings.TrimSpace(t)
		if t == "" || utf8.RuneCountInString(t) > maxTagLen {
			continue
		}
		key := strings.ToLower(t)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		tags = append(tags, t)
		if len(tags) == maxTagCount {
			break
		}
	}
	return tags
}
