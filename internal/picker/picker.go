// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package picker implements the searchable section dropdown used on the
// post editor. The control renders server-side as an HTMX partial; its
// state (open flag, expanded branches, search query, selection) round-trips
// through form fields, and this package holds the pure transition and
// derivation logic over that state.
package picker

import (
	"strings"

	"foliopress/internal/models"
	"foliopress/internal/sectiontree"
)

// State is the picker's UI state. SelectedID is controlled by the caller
// (it is the post form's section field); the zero value of State is a
// closed, collapsed, unfiltered picker with no selection.
type State struct {
	Open       bool
	Expanded   map[string]struct{}
	Search     string
	SelectedID string
}

// New returns a picker state with the given selection and no expanded
// branches.
func New(selectedID string) *State {
	return &State{
		Expanded:   make(map[string]struct{}),
		SelectedID: selectedID,
	}
}

// EnsureSelectionVisible unions the ancestors of the current selection into
// the expanded set, so a pre-selected node is visible without user action.
// No-op when nothing is selected.
func (s *State) EnsureSelectionVisible(forest []models.SectionNode) {
	if s.SelectedID == "" {
		return
	}
	for id := range sectiontree.AncestorsOf(forest, s.SelectedID) {
		s.Expanded[id] = struct{}{}
	}
}

// Toggle flips the expanded state of one branch.
func (s *State) Toggle(id string) {
	if _, ok := s.Expanded[id]; ok {
		delete(s.Expanded, id)
	} else {
		s.Expanded[id] = struct{}{}
	}
}

// Select picks a node. Selecting the current selection again deselects it.
// Either way the dropdown closes and the search query is cleared.
func (s *State) Select(id string) {
	if id == s.SelectedID {
		s.SelectedID = ""
	} else {
		s.SelectedID = id
	}
	s.Open = false
	s.Search = ""
}

// Clear drops the selection without opening the dropdown.
func (s *State) Clear() {
	s.SelectedID = ""
}

// Close closes the dropdown and resets the search query. This is the
// focus-loss contract: the page script triggers it on outside clicks.
func (s *State) Close() {
	s.Open = false
	s.Search = ""
}

// Row is one rendered line of the dropdown tree.
type Row struct {
	Node        models.SectionNode
	Depth       int
	Expanded    bool
	Selected    bool
	HasChildren bool
}

// Rows computes the visible tree rows for the current state. With a
// non-empty search query, only branches containing a match are kept, and
// every kept branch with children is force-expanded regardless of the
// manual collapse state. Returns an empty slice when nothing is visible;
// the template shows an explicit empty state in that case.
func (s *State) Rows(forest []models.SectionNode) []Row {
	var rows []Row
	s.appendRows(forest, 0, strings.TrimSpace(s.Search), &rows)
	return rows
}

func (s *State) appendRows(nodes []models.SectionNode, depth int, query string, rows *[]Row) {
	for _, n := range nodes {
		if query != "" && !sectiontree.MatchesSearch(n, query) {
			continue
		}
		hasChildren := n.HasChildren()
		_, manuallyExpanded := s.Expanded[n.ID]
		expanded := manuallyExpanded || (query != "" && hasChildren)

		*rows = append(*rows, Row{
			Node:        n,
			Depth:       depth,
			Expanded:    expanded,
			Selected:    n.ID == s.SelectedID,
			HasChildren: hasChildren,
		})
		if hasChildren && expanded {
			s.appendRows(n.Children, depth+1, query, rows)
		}
	}
}

// Breadcrumb returns the full path of names for the current selection,
// root first, or nil when nothing is selected or the selection is missing
// from the forest.
func (s *State) Breadcrumb(forest []models.SectionNode) []string {
	if s.SelectedID == "" {
		return nil
	}
	return sectiontree.BuildBreadcrumb(forest, s.SelectedID)
}

// Label returns the breadcrumb joined for the trigger button, e.g.
// "Systems › Databases". Empty when nothing is selected.
func (s *State) Label(forest []models.SectionNode) string {
	return strings.Join(s.Breadcrumb(forest), " › ")
}

// ParseExpanded rebuilds the expanded set from its comma-joined form-field
// encoding. Blank entries are ignored.
func ParseExpanded(encoded string) map[string]struct{} {
	expanded := make(map[string]struct{})
	for _, id := range strings.Split(encoded, ",") {
		if id = strings.TrimSpace(id); id != "" {
			expanded[id] = struct{}{}
		}
	}
	return expanded
}

// EncodeExpanded serializes the expanded set for the form field round-trip.
func EncodeExpanded(expanded map[string]struct{}) string {
	ids := make([]string, 0, len(expanded))
	for id := range expanded {
		ids = append(ids, id)
	}
	return strings.Join(ids, ",")
}
