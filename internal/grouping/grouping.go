// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package grouping derives the blog listing views from the live post list
// and section forest: the grouped-by-section accordion, the per-top-level
// filter pills, and flat-mode pagination. Membership is subtree-inclusive:
// a post counts under a section when its direct assignment is the section
// itself or any descendant.
package grouping

import (
	"foliopress/internal/models"
	"foliopress/internal/sectiontree"
)

// PageSize is the fixed flat-view page size (a 3-column grid of cards).
const PageSize = 9

// Pill id values for the two non-section filters.
const (
	PillAll           = "all"
	PillUncategorized = "uncategorized"
)

// defaultOpenDepth is the deepest accordion level that starts expanded.
const defaultOpenDepth = 2

// Group is one accordion entry of the grouped view: a section with its
// directly assigned posts and nested child groups. Zero-total branches are
// omitted entirely rather than rendered with an empty badge.
type Group struct {
	Node        models.SectionNode
	Depth       int
	Posts       []models.PostSummary // direct assignments, input order
	Total       int                  // subtree-inclusive count
	Children    []Group
	DefaultOpen bool
}

// BuildGroups converts the forest into accordion groups, hiding every
// branch whose subtree-inclusive count is zero.
func BuildGroups(forest []models.SectionNode, posts []models.PostSummary) []Group {
	return buildGroups(forest, posts, 0)
}

func buildGroups(nodes []models.SectionNode, posts []models.PostSummary, depth int) []Group {
	var groups []Group
	for _, n := range nodes {
		subtree := sectiontree.CollectSubtreeIDs(n)

		var direct []models.PostSummary
		total := 0
		for _, p := range posts {
			if p.SectionID == nil {
				continue
			}
			if *p.SectionID == n.ID {
				direct = append(direct, p)
			}
			if _, ok := subtree[*p.SectionID]; ok {
				total++
			}
		}
		if total == 0 {
			continue
		}

		groups = append(groups, Group{
			Node:        n,
			Depth:       depth,
			Posts:       direct,
			Total:       total,
			Children:    buildGroups(n.Children, posts, depth+1),
			DefaultOpen: depth <= defaultOpenDepth,
		})
	}
	return groups
}

// Uncategorized returns the posts with no section assignment at any depth.
func Uncategorized(posts []models.PostSummary) []models.PostSummary {
	var out []models.PostSummary
	for _, p := range posts {
		if p.SectionID == nil {
			out = append(out, p)
		}
	}
	return out
}

// Pill is one filter toggle of the flat view.
type Pill struct {
	ID    string // PillAll, PillUncategorized, or a top-level section id
	Label string
	Count int
}

// Pills returns the filter row: "All", one pill per top-level section with
// its subtree-inclusive count, and "Uncategorized". Counts come from the
// live post list, never from server aggregates.
func Pills(forest []models.SectionNode, posts []models.PostSummary) []Pill {
	pills := []Pill{{ID: PillAll, Label: "All", Count: len(posts)}}
	for _, root := range forest {
		pills = append(pills, Pill{
			ID:    root.ID,
			Label: root.Name,
			Count: countSubtree(root, posts),
		})
	}
	pills = append(pills, Pill{
		ID:    PillUncategorized,
		Label: "Uncategorized",
		Count: len(Uncategorized(posts)),
	})
	return pills
}

func countSubtree(node models.SectionNode, posts []models.PostSummary) int {
	subtree := sectiontree.CollectSubtreeIDs(node)
	count := 0
	for _, p := range posts {
		if p.SectionID == nil {
			continue
		}
		if _, ok := subtree[*p.SectionID]; ok {
			count++
		}
	}
	return count
}

// Filter applies the active pill to the post list. Unknown pill ids behave
// like PillAll so a stale query parameter cannot blank the page.
func Filter(forest []models.SectionNode, posts []models.PostSummary, pillID string) []models.PostSummary {
	switch pillID {
	case "", PillAll:
		return posts
	case PillUncategorized:
		return Uncategorized(posts)
	}
	root := sectiontree.FindByID(forest, pillID)
	if root == nil {
		return posts
	}
	subtree := sectiontree.CollectSubtreeIDs(*root)
	var out []models.PostSummary
	for _, p := range posts {
		if p.SectionID == nil {
			continue
		}
		if _, ok := subtree[*p.SectionID]; ok {
			out = append(out, p)
		}
	}
	return out
}

// Page describes one flat-view page and the controls around it.
type Page struct {
	Posts      []models.PostSummary
	Number     int // 1-based
	TotalPages int
	HasPrev    bool
	HasNext    bool
	Numbers    []int // page numbers to render; Ellipsis marks a gap
}

// Ellipsis is the sentinel in Page.Numbers for a "…" gap.
const Ellipsis = -1

// Paginate slices the filtered post list into the requested page. Page
// numbers out of range are clamped, so a filter change that shrinks the
// list lands on a valid page.
func Paginate(posts []models.PostSummary, page int) Page {
	totalPages := (len(posts) + PageSize - 1) / PageSize
	if totalPages == 0 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * PageSize
	end := start + PageSize
	if start > len(posts) {
		start = len(posts)
	}
	if end > len(posts) {
		end = len(posts)
	}

	return Page{
		Posts:      posts[start:end],
		Number:     page,
		TotalPages: totalPages,
		HasPrev:    page > 1,
		HasNext:    page < totalPages,
		Numbers:    pageNumbers(page, totalPages),
	}
}

// pageNumbers returns the numbered-with-ellipsis control sequence: the
// first and last page always appear, with a window around the current page
// and Ellipsis sentinels for the gaps.
func pageNumbers(current, total int) []int {
	if total <= 7 {
		nums := make([]int, total)
		for i := range nums {
			nums[i] = i + 1
		}
		return nums
	}

	nums := []int{1}
	lo, hi := current-1, current+1
	if lo < 2 {
		lo = 2
	}
	if hi > total-1 {
		hi = total - 1
	}
	if lo > 2 {
		nums = append(nums, Ellipsis)
	}
	for i := lo; i <= hi; i++ {
		nums = append(nums, i)
	}
	if hi < total-1 {
		nums = append(nums, Ellipsis)
	}
	return append(nums, total)
}
