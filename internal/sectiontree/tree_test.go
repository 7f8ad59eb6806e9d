package sectiontree

import (
	"reflect"
	"testing"

	"foliopress/internal/models"
)

// testForest builds the fixture hierarchy used across tests:
//
//	Systems (a)
//	├── Databases (b)
//	│   └── Storage Engines (d)
//	└── Networking (c)
//	Writing (e)
func testForest() []models.SectionNode {
	return []models.SectionNode{
		{
			ID: "a", Slug: "systems", Name: "Systems",
			Children: []models.SectionNode{
				{
					ID: "b", Slug: "databases", Name: "Databases", ParentID: strPtr("a"),
					Children: []models.SectionNode{
						{ID: "d", Slug: "storage-engines", Name: "Storage Engines", ParentID: strPtr("b")},
					},
				},
				{ID: "c", Slug: "networking", Name: "Networking", ParentID: strPtr("a")},
			},
		},
		{ID: "e", Slug: "writing", Name: "Writing"},
	}
}

func strPtr(s string) *string { return &s }

func TestFlatten(t *testing.T) {
	flat := Flatten(testForest())

	wantOrder := []string{"a", "b", "d", "c", "e"}
	wantDepth := []int{0, 1, 2, 1, 0}

	if len(flat) != len(wantOrder) {
		t.Fatalf("Flatten returned %d nodes, want %d", len(flat), len(wantOrder))
	}
	for i, fn := range flat {
		if fn.Node.ID != wantOrder[i] {
			t.Errorf("position %d: got id %q, want %q", i, fn.Node.ID, wantOrder[i])
		}
		if fn.Depth != wantDepth[i] {
			t.Errorf("node %q: got depth %d, want %d", fn.Node.ID, fn.Depth, wantDepth[i])
		}
	}
}

func TestFlatten_PreOrder(t *testing.T) {
	// Every node must appear before any of its descendants.
	flat := Flatten(testForest())
	position := make(map[string]int)
	for i, fn := range flat {
		position[fn.Node.ID] = i
	}

	pairs := []struct{ ancestor, descendant string }{
		{"a", "b"}, {"a", "c"}, {"a", "d"}, {"b", "d"},
	}
	for _, p := range pairs {
		if position[p.ancestor] >= position[p.descendant] {
			t.Errorf("node %q should precede descendant %q", p.ancestor, p.descendant)
		}
	}
}

func TestFlatten_Empty(t *testing.T) {
	if got := Flatten(nil); len(got) != 0 {
		t.Errorf("Flatten(nil) = %v, want empty", got)
	}
}

func TestFindByID(t *testing.T) {
	forest := testForest()

	tests := []struct {
		id       string
		wantName string
	}{
		{"a", "Systems"},
		{"b", "Databases"},
		{"d", "Storage Engines"},
		{"e", "Writing"},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			got := FindByID(forest, tt.id)
			if got == nil {
				t.Fatalf("FindByID(%q) = nil, want %q", tt.id, tt.wantName)
			}
			if got.Name != tt.wantName {
				t.Errorf("FindByID(%q).Name = %q, want %q", tt.id, got.Name, tt.wantName)
			}
		})
	}
}

func TestFindByID_Absent(t *testing.T) {
	if got := FindByID(testForest(), "missing"); got != nil {
		t.Errorf("FindByID(missing) = %v, want nil", got)
	}
	if got := FindByID(nil, "a"); got != nil {
		t.Errorf("FindByID on empty forest = %v, want nil", got)
	}
}

func TestFindByID_SubtreeContainsSelf(t *testing.T) {
	// For every id present in the forest, the found node's subtree set
	// must contain that id.
	forest := testForest()
	for _, fn := range Flatten(forest) {
		node := FindByID(forest, fn.Node.ID)
		if node == nil {
			t.Fatalf("FindByID(%q) = nil", fn.Node.ID)
		}
		ids := CollectSubtreeIDs(*node)
		if _, ok := ids[fn.Node.ID]; !ok {
			t.Errorf("CollectSubtreeIDs(%q) missing the node's own id", fn.Node.ID)
		}
	}
}

func TestBuildBreadcrumb(t *testing.T) {
	forest := testForest()

	tests := []struct {
		id   string
		want []string
	}{
		{"a", []string{"Systems"}},
		{"b", []string{"Systems", "Databases"}},
		{"d", []string{"Systems", "Databases", "Storage Engines"}},
		{"c", []string{"Systems", "Networking"}},
		{"e", []string{"Writing"}},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			got := BuildBreadcrumb(forest, tt.id)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("BuildBreadcrumb(%q) = %v, want %v", tt.id, got, tt.want)
			}
		})
	}
}

func TestBuildBreadcrumb_Absent(t *testing.T) {
	if got := BuildBreadcrumb(testForest(), "zzz"); got != nil {
		t.Errorf("BuildBreadcrumb(zzz) = %v, want nil", got)
	}
}

func TestBuildBreadcrumb_LengthEqualsDepthPlusOne(t *testing.T) {
	forest := testForest()
	for _, fn := range Flatten(forest) {
		crumb := BuildBreadcrumb(forest, fn.Node.ID)
		if len(crumb) != fn.Depth+1 {
			t.Errorf("breadcrumb for %q has length %d, want depth+1 = %d",
				fn.Node.ID, len(crumb), fn.Depth+1)
		}
		if crumb[len(crumb)-1] != fn.Node.Name {
			t.Errorf("breadcrumb for %q ends with %q, want %q",
				fn.Node.ID, crumb[len(crumb)-1], fn.Node.Name)
		}
	}
}

func TestCollectSubtreeIDs(t *testing.T) {
	forest := testForest()

	tests := []struct {
		id   string
		want []string
	}{
		{"a", []string{"a", "b", "c", "d"}},
		{"b", []string{"b", "d"}},
		{"d", []string{"d"}},
		{"e", []string{"e"}},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			node := FindByID(forest, tt.id)
			if node == nil {
				t.Fatalf("fixture missing node %q", tt.id)
			}
			got := CollectSubtreeIDs(*node)
			if len(got) != len(tt.want) {
				t.Fatalf("CollectSubtreeIDs(%q) has %d ids, want %d", tt.id, len(got), len(tt.want))
			}
			for _, id := range tt.want {
				if _, ok := got[id]; !ok {
					t.Errorf("CollectSubtreeIDs(%q) missing %q", tt.id, id)
				}
			}
		})
	}
}

func TestCollectSubtreeIDs_UnionOfChildren(t *testing.T) {
	// A node's subtree set equals {self} ∪ the union of its children's sets.
	forest := testForest()
	root := FindByID(forest, "a")

	got := CollectSubtreeIDs(*root)
	want := map[string]struct{}{root.ID: {}}
	for _, c := range root.Children {
		for id := range CollectSubtreeIDs(c) {
			want[id] = struct{}{}
		}
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CollectSubtreeIDs = %v, want %v", got, want)
	}
}

func TestMatchesSearch(t *testing.T) {
	forest := testForest()

	tests := []struct {
		name  string
		id    string
		query string
		want  bool
	}{
		{"direct match", "b", "data", true},
		{"match via descendant", "a", "data", true},
		{"case insensitive", "a", "DATA", true},
		{"deep descendant match", "a", "storage", true},
		{"no match anywhere", "a", "zzz", false},
		{"leaf no match", "c", "data", false},
		{"empty query matches", "e", "", true},
		{"full name", "e", "writing", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := FindByID(forest, tt.id)
			if got := MatchesSearch(*node, tt.query); got != tt.want {
				t.Errorf("MatchesSearch(%q, %q) = %v, want %v", tt.id, tt.query, got, tt.want)
			}
		})
	}
}

func TestAncestorsOf(t *testing.T) {
	forest := testForest()

	tests := []struct {
		id   string
		want []string
	}{
		{"d", []string{"a", "b"}},
		{"b", []string{"a"}},
		{"c", []string{"a"}},
		{"a", nil},
		{"e", nil},
		{"missing", nil},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			got := AncestorsOf(forest, tt.id)
			if len(got) != len(tt.want) {
				t.Fatalf("AncestorsOf(%q) = %v, want %v", tt.id, got, tt.want)
			}
			for _, id := range tt.want {
				if _, ok := got[id]; !ok {
					t.Errorf("AncestorsOf(%q) missing %q", tt.id, id)
				}
			}
		})
	}
}

func TestTraversal_DoesNotMutateInput(t *testing.T) {
	forest := testForest()
	pristine := testForest()

	Flatten(forest)
	FindByID(forest, "d")
	BuildBreadcrumb(forest, "d")
	CollectSubtreeIDs(forest[0])
	MatchesSearch(forest[0], "data")
	AncestorsOf(forest, "d")

	if !reflect.DeepEqual(forest, pristine) {
		t.Error("traversal functions mutated the input forest")
	}
}
