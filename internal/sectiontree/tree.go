// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package sectiontree provides pure traversal and derivation functions over
// a section forest (an ordered slice of root SectionNodes). None of the
// functions mutate their input, none of them panic on a well-formed forest,
// and absence is always an explicit result (nil or empty set), never an error.
//
// A forest containing a cycle is a precondition violation; traversal over
// such input is unspecified. The server guarantees forests are acyclic.
package sectiontree

import (
	"strings"

	"foliopress/internal/models"
)

// FlatNode pairs a node with its depth in the forest. Depth is 0 for roots
// and increases by one per level.
type FlatNode struct {
	Node  models.SectionNode
	Depth int
}

// Flatten returns the forest as a pre-order sequence: every node is emitted
// before its children, and sibling order is preserved from the input.
func Flatten(forest []models.SectionNode) []FlatNode {
	var result []FlatNode
	flattenInto(forest, 0, &result)
	return result
}

func flattenInto(nodes []models.SectionNode, depth int, result *[]FlatNode) {
	for _, n := range nodes {
		*result = append(*result, FlatNode{Node: n, Depth: depth})
		if len(n.Children) > 0 {
			flattenInto(n.Children, depth+1, result)
		}
	}
}

// FindByID returns the first node with the given id in pre-order, or nil if
// the id is absent. Ids are expected to be unique across the forest; with
// duplicates, the first pre-order match wins.
func FindByID(forest []models.SectionNode, id string) *models.SectionNode {
	for i := range forest {
		if forest[i].ID == id {
			return &forest[i]
		}
		if found := FindByID(forest[i].Children, id); found != nil {
			return found
		}
	}
	return nil
}

// BuildBreadcrumb returns the names on the path from a root ancestor down to
// and including the target node, in top-to-bottom order. Returns nil if the
// id is absent from the forest.
func BuildBreadcrumb(forest []models.SectionNode, id string) []string {
	return breadcrumbPath(forest, id, nil)
}

func breadcrumbPath(nodes []models.SectionNode, id string, path []string) []string {
	for _, n := range nodes {
		if n.ID == id {
			return append(append([]string{}, path...), n.Name)
		}
		if found := breadcrumbPath(n.Children, id, append(path, n.Name)); found != nil {
			return found
		}
	}
	return nil
}

// CollectSubtreeIDs returns the node's own id plus every descendant id.
// Used to test subtree-inclusive membership: a post belongs to a section
// for grouping purposes when its direct assignment is in this set.
func CollectSubtreeIDs(node models.SectionNode) map[string]struct{} {
	ids := make(map[string]struct{})
	collectInto(node, ids)
	return ids
}

func collectInto(node models.SectionNode, ids map[string]struct{}) {
	ids[node.ID] = struct{}{}
	for _, c := range node.Children {
		collectInto(c, ids)
	}
}

// MatchesSearch reports whether the query is a case-insensitive substring of
// the node's name or of any descendant's name. A branch matches as long as
// anything beneath it matches, so ancestors of a match are never pruned.
func MatchesSearch(node models.SectionNode, query string) bool {
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(node.Name), q) {
		return true
	}
	for _, c := range node.Children {
		if MatchesSearch(c, query) {
			return true
		}
	}
	return false
}

// AncestorsOf returns the set of ids on the path from a root down to the
// target, excluding the target itself. Returns an empty set if the id is
// absent or is itself a root. Used to auto-expand the tree so a
// pre-selected node is visible.
func AncestorsOf(forest []models.SectionNode, targetID string) map[string]struct{} {
	ancestors := make(map[string]struct{})
	findAncestors(forest, targetID, nil, ancestors)
	return ancestors
}

// findAncestors walks the forest carrying the current path; when the target
// is found, the path ids are recorded and the walk stops.
func findAncestors(nodes []models.SectionNode, targetID string, path []string, out map[string]struct{}) bool {
	for _, n := range nodes {
		if n.ID == targetID {
			for _, id := range path {
				out[id] = struct{}{}
			}
			return true
		}
		if findAncestors(n.Children, targetID, append(path, n.ID), out) {
			return true
		}
	}
	return false
}
