// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the data structures exchanged with the journal API
// and provides the core types used throughout the application.
package models

// SectionNode represents one folder in the section hierarchy returned by
// GET /api/sections/tree. The authoritative parent/child relation is the
// Children containment list; ParentID is a non-owning back-reference.
// The server guarantees a strict forest (no cycles, one parent per node);
// the client does not validate this.
type SectionNode struct {
	ID          string        `json:"id"`
	Slug        string        `json:"slug"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Order       int           `json:"order"`
	ParentID    *string       `json:"parentId"`
	Children    []SectionNode `json:"children,omitempty"`

	// Server-supplied display aggregates. Not recomputed client-side except
	// where the grouping view derives subtree-inclusive counts itself.
	PostCount  int `json:"postCount,omitempty"`
	ChildCount int `json:"childCount,omitempty"`
}

// HasChildren reports whether the node heads a non-empty subtree.
func (n *SectionNode) HasChildren() bool {
	return len(n.Children) > 0
}

// SectionTreeResponse is the envelope of GET /api/sections/tree.
type SectionTreeResponse struct {
	Sections []SectionNode `json:"sections"`
}

// CreateSectionRequest is the payload of POST /api/sections.
type CreateSectionRequest struct {
	Name     string  `json:"name"`
	Slug     string  `json:"slug"`
	ParentID *string `json:"parentId"`
}

// UpdateSectionRequest is the payload of PUT /api/sections/{id}.
type UpdateSectionRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}
