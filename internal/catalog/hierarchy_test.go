package catalog

import (
	"testing"

	"github.com/bmartin2011/Fetterman-s-sub000/internal/domain"
	"github.com/bmartin2011/Fetterman-s-sub000/internal/upstream"
)

func countNodes(forest []*domain.Category) int {
	total := 0
	for _, node := range forest {
		total += 1 + countNodes(node.Subcategories)
	}
	return total
}

func checkLevels(t *testing.T, forest []*domain.Category, depth int) {
	t.Helper()
	for _, node := range forest {
		if node.Level != depth {
			t.Fatalf("category %s: level %d, expected depth %d", node.ID, node.Level, depth)
		}
		checkLevels(t, node.Subcategories, depth+1)
	}
}

func TestBuildHierarchy_PreservesNodeCountAndLevels(t *testing.T) {
	flat := []domain.Category{
		{ID: "root1"},
		{ID: "root2"},
		{ID: "child1", ParentID: "root1"},
		{ID: "child2", ParentID: "root1"},
		{ID: "grandchild", ParentID: "child1"},
		{ID: "greatgrandchild", ParentID: "grandchild"},
	}

	forest := BuildHierarchy(flat)

	if got := countNodes(forest); got != len(flat) {
		t.Fatalf("expected %d nodes, got %d", len(flat), got)
	}
	if len(forest) != 2 {
		t.Fatalf("expected 2 roots, got %d", len(forest))
	}
	checkLevels(t, forest, 0)
}

func TestBuildHierarchy_SelfReferenceBecomesRoot(t *testing.T) {
	flat := []domain.Category{
		{ID: "loop", ParentID: "loop"},
		{ID: "child", ParentID: "loop"},
	}

	forest := BuildHierarchy(flat)

	if len(forest) != 1 || forest[0].ID != "loop" {
		t.Fatalf("expected self-referential category as root, got %+v", forest)
	}
	if countNodes(forest) != 2 {
		t.Fatalf("expected both nodes in the forest")
	}
	if forest[0].Subcategories[0].Level != 1 {
		t.Fatalf("expected child at level 1")
	}
}

func TestBuildHierarchy_OrphanedParentBecomesRoot(t *testing.T) {
	flat := []domain.Category{
		{ID: "known"},
		{ID: "orphan", ParentID: "missing-from-batch"},
	}

	forest := BuildHierarchy(flat)

	if len(forest) != 2 {
		t.Fatalf("an orphaned pointer must not drop the node, got %d roots", len(forest))
	}
	if countNodes(forest) != 2 {
		t.Fatalf("expected 2 nodes, got %d", countNodes(forest))
	}
}

func TestBuildHierarchy_ParentCycleKeepsAllNodes(t *testing.T) {
	flat := []domain.Category{
		{ID: "root"},
		{ID: "a", ParentID: "b"},
		{ID: "b", ParentID: "a"},
	}

	forest := BuildHierarchy(flat)

	if got := countNodes(forest); got != len(flat) {
		t.Fatalf("expected %d nodes, got %d", len(flat), got)
	}

	// the first cycle member in input order is promoted to a root and keeps
	// the other as its child
	var promoted *domain.Category
	for _, node := range forest {
		if node.ID == "a" {
			promoted = node
		}
	}
	if promoted == nil {
		t.Fatal("expected cycle member a to become a root")
	}
	if len(promoted.Subcategories) != 1 || promoted.Subcategories[0].ID != "b" {
		t.Fatalf("expected b under a, got %+v", promoted.Subcategories)
	}
	checkLevels(t, forest, 0)
}

func TestBuildHierarchy_CycleWithDescendants(t *testing.T) {
	flat := []domain.Category{
		{ID: "a", ParentID: "b"},
		{ID: "b", ParentID: "a"},
		{ID: "child", ParentID: "b"},
	}

	forest := BuildHierarchy(flat)

	if got := countNodes(forest); got != len(flat) {
		t.Fatalf("expected %d nodes, got %d", len(flat), got)
	}
	checkLevels(t, forest, 0)
}

func TestBuildHierarchy_SortsSiblingsRecursively(t *testing.T) {
	flat := []domain.Category{
		{ID: "b", SortOrder: 2},
		{ID: "a", SortOrder: 1},
		{ID: "b2", ParentID: "b", SortOrder: 20},
		{ID: "b1", ParentID: "b", SortOrder: 10},
	}

	forest := BuildHierarchy(flat)

	if forest[0].ID != "a" || forest[1].ID != "b" {
		t.Fatalf("roots not sorted: %s, %s", forest[0].ID, forest[1].ID)
	}

	children := forest[1].Subcategories
	if children[0].ID != "b1" || children[1].ID != "b2" {
		t.Fatalf("children not sorted: %s, %s", children[0].ID, children[1].ID)
	}
}

func TestMapCategories_ParentFieldCandidates(t *testing.T) {
	raw := []upstream.RawCategory{
		{ID: "C1", Data: map[string]interface{}{"name": "Subs", "parent_category_id": "ROOT"}},
		{ID: "C2", Data: map[string]interface{}{"name": "Drinks", "parent_id": "ROOT"}},
		{ID: "C3", Data: map[string]interface{}{"name": "Sides", "parentCategoryId": "ROOT"}},
		{ID: "C4", Data: map[string]interface{}{"name": "Combos", "parent_category": map[string]interface{}{"id": "ROOT"}}},
		{ID: "C5", Data: map[string]interface{}{"name": "Seasonal"}},
	}

	categories := MapCategories(raw)

	for i := 0; i < 4; i++ {
		if categories[i].ParentID != "ROOT" {
			t.Fatalf("category %s: expected parent ROOT, got %q", categories[i].ID, categories[i].ParentID)
		}
	}
	if categories[4].ParentID != "" {
		t.Fatalf("expected empty parent, got %q", categories[4].ParentID)
	}
}

func TestMapCategories_MissingNameAndPeriods(t *testing.T) {
	raw := []upstream.RawCategory{
		{
			ID:   "C1",
			Data: map[string]interface{}{"ordinal": 3},
			AvailabilityPeriods: []upstream.RawAvailabilityPeriod{
				{StartTime: "09:00:00", EndTime: "17:00:00", DayOfWeek: "MONDAY"},
			},
		},
	}

	categories := MapCategories(raw)

	c := categories[0]
	if c.Name != "Unnamed Category" {
		t.Fatalf("expected fallback name, got %q", c.Name)
	}
	if c.SortOrder != 3 {
		t.Fatalf("expected sort order 3, got %d", c.SortOrder)
	}
	if len(c.AvailabilityPeriods) != 1 || c.AvailabilityPeriods[0].DayOfWeek != "MONDAY" {
		t.Fatalf("unexpected periods: %+v", c.AvailabilityPeriods)
	}
}
