// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package editor holds the state machine behind the admin section tree.
// Exactly one edit mode is active at a time across the whole tree; entering
// a new mode cancels whatever was active before. The mode is a tagged value
// rather than a set of independent flags so that invariant holds by
// construction.
package editor

import (
	"strings"

	"foliopress/internal/models"
)

// ModeKind enumerates the mutually exclusive edit modes.
type ModeKind string

const (
	ModeIdle           ModeKind = "idle"
	ModeEditing        ModeKind = "editing"
	ModeAddingChild    ModeKind = "adding-child"
	ModeAddingRoot     ModeKind = "adding-root"
	ModeAssigningPosts ModeKind = "assigning"
)

// Mode is the active edit mode plus its target node, when the kind has one.
// TargetID is the edited node for ModeEditing, the parent for
// ModeAddingChild, and the open section for ModeAssigningPosts.
type Mode struct {
	Kind     ModeKind
	TargetID string
}

// Idle is the quiescent mode.
func Idle() Mode { return Mode{Kind: ModeIdle} }

// State is the editor's UI state: the active mode and the set of expanded
// branches. Like the picker, it round-trips through HTMX request fields.
type State struct {
	Mode     Mode
	Expanded map[string]struct{}
}

// New returns an idle editor state with nothing expanded.
func New() *State {
	return &State{Mode: Idle(), Expanded: make(map[string]struct{})}
}

// Toggle flips the expanded state of one branch.
func (s *State) Toggle(id string) {
	if _, ok := s.Expanded[id]; ok {
		delete(s.Expanded, id)
	} else {
		s.Expanded[id] = struct{}{}
	}
}

// StartEdit switches to inline-rename mode for the given node, cancelling
// any other active mode.
func (s *State) StartEdit(id string) {
	s.Mode = Mode{Kind: ModeEditing, TargetID: id}
}

// StartAddChild switches to child-creation mode under the given parent and
// force-expands it so the inline input is visible.
func (s *State) StartAddChild(parentID string) {
	s.Mode = Mode{Kind: ModeAddingChild, TargetID: parentID}
	s.Expanded[parentID] = struct{}{}
}

// StartAddRoot switches to top-level creation mode.
func (s *State) StartAddRoot() {
	s.Mode = Mode{Kind: ModeAddingRoot}
}

// ToggleAssign opens the post-assignment panel for the given section, or
// closes it when it is already open for that section (idempotent toggle).
// Any other active mode is cancelled either way.
func (s *State) ToggleAssign(id string) {
	if s.Mode.Kind == ModeAssigningPosts && s.Mode.TargetID == id {
		s.Mode = Idle()
		return
	}
	s.Mode = Mode{Kind: ModeAssigningPosts, TargetID: id}
}

// Cancel returns to idle, discarding the active mode.
func (s *State) Cancel() {
	s.Mode = Idle()
}

// Editing reports whether the given node is being renamed.
func (s *State) Editing(id string) bool {
	return s.Mode.Kind == ModeEditing && s.Mode.TargetID == id
}

// AddingChildOf reports whether a child input is open under the given parent.
func (s *State) AddingChildOf(id string) bool {
	return s.Mode.Kind == ModeAddingChild && s.Mode.TargetID == id
}

// AddingRoot reports whether the top-level input is open.
func (s *State) AddingRoot() bool {
	return s.Mode.Kind == ModeAddingRoot
}

// Assigning reports whether the assignment panel is open for the given node.
func (s *State) Assigning(id string) bool {
	return s.Mode.Kind == ModeAssigningPosts && s.Mode.TargetID == id
}

// Row is one rendered line of the admin tree: either a section node or the
// inline child-creation input that appears among a parent's children.
type Row struct {
	Node        models.SectionNode
	Depth       int
	Expanded    bool
	HasChildren bool
	Editing     bool
	Assigning   bool
	DirectCount int

	// AddInput marks the inline child-creation row; ParentID carries the
	// node the new child will attach to.
	AddInput bool
	ParentID string
}

// Rows computes the rendered tree for the current state. A parent in
// adding-child mode counts as having children so its expansion toggle and
// child slot appear even when it is a leaf.
func (s *State) Rows(forest []models.SectionNode, posts []models.PostSummary) []Row {
	counts := directCounts(posts)
	var rows []Row
	s.appendRows(forest, 0, counts, &rows)
	return rows
}

func (s *State) appendRows(nodes []models.SectionNode, depth int, counts map[string]int, rows *[]Row) {
	for _, n := range nodes {
		adding := s.AddingChildOf(n.ID)
		hasChildren := n.HasChildren() || adding
		_, expanded := s.Expanded[n.ID]

		*rows = append(*rows, Row{
			Node:        n,
			Depth:       depth,
			Expanded:    expanded,
			HasChildren: hasChildren,
			Editing:     s.Editing(n.ID),
			Assigning:   s.Assigning(n.ID),
			DirectCount: counts[n.ID],
		})
		if expanded {
			s.appendRows(n.Children, depth+1, counts, rows)
			if adding {
				*rows = append(*rows, Row{AddInput: true, ParentID: n.ID, Depth: depth + 1})
			}
		}
	}
}

// directCounts tallies posts by their direct section assignment.
func directCounts(posts []models.PostSummary) map[string]int {
	counts := make(map[string]int)
	for _, p := range posts {
		if p.SectionID != nil {
			counts[*p.SectionID]++
		}
	}
	return counts
}

// AssignedPosts returns the posts directly assigned to the section, in
// input order. The assignment panel never filters this list.
func AssignedPosts(posts []models.PostSummary, sectionID string) []models.PostSummary {
	var assigned []models.PostSummary
	for _, p := range posts {
		if p.SectionID != nil && *p.SectionID == sectionID {
			assigned = append(assigned, p)
		}
	}
	return assigned
}

// Suggestions returns the addable posts for the assignment panel: every
// post not already in the section, filtered by a case-insensitive substring
// match against the title or any tag. An empty query keeps all candidates.
func Suggestions(posts []models.PostSummary, sectionID, query string) []models.PostSummary {
	q := strings.ToLower(strings.TrimSpace(query))
	var out []models.PostSummary
	for _, p := range posts {
		if p.SectionID != nil && *p.SectionID == sectionID {
			continue
		}
		if q == "" || matchesPost(p, q) {
			out = append(out, p)
		}
	}
	return out
}

func matchesPost(p models.PostSummary, q string) bool {
	if strings.Contains(strings.ToLower(p.Title), q) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}
