package editor

import (
	"testing"

	"foliopress/internal/models"
)

func testForest() []models.SectionNode {
	return []models.SectionNode{
		{
			ID: "a", Name: "Systems",
			Children: []models.SectionNode{
				{ID: "b", Name: "Databases"},
			},
		},
		{ID: "e", Name: "Writing"},
	}
}

func strPtr(s string) *string { return &s }

func testPosts() []models.PostSummary {
	return []models.PostSummary{
		{ID: "1", Title: "B-Trees in Practice", Tags: []string{"databases", "storage"}, SectionID: strPtr("b")},
		{ID: "2", Title: "The Art of the Syscall", Tags: []string{"linux"}, SectionID: strPtr("a")},
		{ID: "3", Title: "On Writing Well", Tags: []string{"writing"}, SectionID: nil},
	}
}

func TestModeTransitionsAreExclusive(t *testing.T) {
	s := New()

	s.StartEdit("a")
	if !s.Editing("a") {
		t.Fatal("expected editing mode for a")
	}

	// Entering any other mode cancels the previous one outright.
	s.StartAddChild("b")
	if s.Editing("a") {
		t.Error("editing mode survived entering adding-child mode")
	}
	if !s.AddingChildOf("b") {
		t.Error("expected adding-child mode for b")
	}

	s.StartAddRoot()
	if s.AddingChildOf("b") {
		t.Error("adding-child mode survived entering adding-root mode")
	}
	if !s.AddingRoot() {
		t.Error("expected adding-root mode")
	}

	s.ToggleAssign("a")
	if s.AddingRoot() {
		t.Error("adding-root mode survived opening the assignment panel")
	}
	if !s.Assigning("a") {
		t.Error("expected assigning mode for a")
	}
}

func TestCancelReturnsToIdle(t *testing.T) {
	s := New()
	s.StartEdit("a")
	s.Cancel()
	if s.Mode.Kind != ModeIdle {
		t.Errorf("mode after cancel = %q, want idle", s.Mode.Kind)
	}
}

func TestToggleAssign_IdempotentToggle(t *testing.T) {
	s := New()

	s.ToggleAssign("a")
	if !s.Assigning("a") {
		t.Fatal("panel should open for a")
	}

	// Re-invoking on the same node closes the panel.
	s.ToggleAssign("a")
	if s.Mode.Kind != ModeIdle {
		t.Error("re-toggling the same node should close the panel")
	}

	// Toggling a different node moves the panel instead of closing.
	s.ToggleAssign("a")
	s.ToggleAssign("e")
	if !s.Assigning("e") {
		t.Error("panel should move to e")
	}
	if s.Assigning("a") {
		t.Error("panel should no longer be open for a")
	}
}

func TestStartAddChild_ForceExpandsParent(t *testing.T) {
	s := New()
	s.StartAddChild("a")
	if _, ok := s.Expanded["a"]; !ok {
		t.Error("parent should be force-expanded so the inline input is visible")
	}
}

func TestRows_AddInputAppearsAmongChildren(t *testing.T) {
	s := New()
	s.StartAddChild("a")

	rows := s.Rows(testForest(), nil)

	// Expected: a (expanded), b, add-input under a, e.
	if len(rows) != 4 {
		t.Fatalf("got %d rows: %+v", len(rows), rows)
	}
	if rows[0].Node.ID != "a" || !rows[0].Expanded {
		t.Errorf("row 0 = %+v, want expanded node a", rows[0])
	}
	if rows[1].Node.ID != "b" || rows[1].Depth != 1 {
		t.Errorf("row 1 = %+v, want node b at depth 1", rows[1])
	}
	if !rows[2].AddInput || rows[2].ParentID != "a" || rows[2].Depth != 1 {
		t.Errorf("row 2 = %+v, want add-input under a at depth 1", rows[2])
	}
	if rows[3].Node.ID != "e" {
		t.Errorf("row 3 = %+v, want node e", rows[3])
	}
}

func TestRows_LeafInAddingChildModeGainsChildSlot(t *testing.T) {
	s := New()
	s.StartAddChild("e") // e is a leaf

	rows := s.Rows(testForest(), nil)
	var leaf *Row
	for i := range rows {
		if rows[i].Node.ID == "e" {
			leaf = &rows[i]
		}
	}
	if leaf == nil {
		t.Fatal("leaf e missing from rows")
	}
	if !leaf.HasChildren {
		t.Error("a leaf in adding-child mode should present as having children")
	}
}

func TestRows_DirectCounts(t *testing.T) {
	s := New()
	s.Toggle("a")

	rows := s.Rows(testForest(), testPosts())
	counts := make(map[string]int)
	for _, r := range rows {
		if !r.AddInput {
			counts[r.Node.ID] = r.DirectCount
		}
	}
	// Counts are direct assignments only; the subtree-inclusive rule belongs
	// to the grouping view, not the editor badge.
	if counts["a"] != 1 || counts["b"] != 1 || counts["e"] != 0 {
		t.Errorf("direct counts = %v, want a:1 b:1 e:0", counts)
	}
}

func TestAssignedPosts(t *testing.T) {
	assigned := AssignedPosts(testPosts(), "b")
	if len(assigned) != 1 || assigned[0].ID != "1" {
		t.Errorf("AssignedPosts(b) = %+v, want post 1 only", assigned)
	}
	if got := AssignedPosts(testPosts(), "missing"); len(got) != 0 {
		t.Errorf("AssignedPosts(missing) = %+v, want empty", got)
	}
}

func TestSuggestions(t *testing.T) {
	posts := testPosts()

	tests := []struct {
		name      string
		sectionID string
		query     string
		wantIDs   []string
	}{
		{"empty query keeps all candidates", "b", "", []string{"2", "3"}},
		{"excludes posts already in section", "a", "", []string{"1", "3"}},
		{"title substring", "b", "writing", []string{"3"}},
		{"title case-insensitive", "b", "SYSCALL", []string{"2"}},
		{"tag substring", "b", "linux", []string{"2"}},
		{"no matches", "b", "kubernetes", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Suggestions(posts, tt.sectionID, tt.query)
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("Suggestions = %+v, want ids %v", got, tt.wantIDs)
			}
			for i, id := range tt.wantIDs {
				if got[i].ID != id {
					t.Errorf("suggestion %d = %q, want %q", i, got[i].ID, id)
				}
			}
		})
	}
}

func TestSuggestions_DifferentlyAssignedStillSuggested(t *testing.T) {
	// A post assigned elsewhere is a valid candidate; assignment is
	// exclusive, so adding it moves it.
	got := Suggestions(testPosts(), "e", "")
	if len(got) != 3 {
		t.Errorf("Suggestions(e) = %d posts, want all 3", len(got))
	}
}
