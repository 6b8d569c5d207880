package catalog

import (
	"sort"

	"github.com/bmartin2011/Fetterman-s-sub000/internal/domain"
	"github.com/bmartin2011/Fetterman-s-sub000/internal/upstream"
	"github.com/spf13/cast"
)

// parentFieldCandidates lists every historical name the upstream API has
// used for the parent-category pointer, in probe order. The ambiguity is
// resolved here once and never leaks past the mapping boundary.
var parentFieldCandidates = []string{
	"parent_category_id",
	"parent_id",
	"parentCategoryId",
	"root_category_id",
}

// MapCategories converts raw category objects into flat domain categories.
// A category missing a name still materializes as "Unnamed Category".
func MapCategories(raw []upstream.RawCategory) []domain.Category {
	categories := make([]domain.Category, 0, len(raw))
	for _, rc := range raw {
		category := domain.Category{
			ID:     rc.ID,
			Name:   "Unnamed Category",
			Active: true,
		}

		if rc.Data != nil {
			if name := cast.ToString(rc.Data["name"]); name != "" {
				category.Name = name
			}
			category.ParentID = resolveParentID(rc.Data)
			category.SortOrder = cast.ToInt(rc.Data["ordinal"])
			if visible, ok := rc.Data["online_visibility"]; ok {
				category.Active = cast.ToBool(visible)
			}
		}

		for _, p := range rc.AvailabilityPeriods {
			category.AvailabilityPeriods = append(category.AvailabilityPeriods, domain.AvailabilityPeriod{
				StartTime: p.StartTime,
				EndTime:   p.EndTime,
				DayOfWeek: p.DayOfWeek,
			})
		}

		categories = append(categories, category)
	}

	return categories
}

func resolveParentID(data map[string]interface{}) string {
	for _, field := range parentFieldCandidates {
		if id := cast.ToString(data[field]); id != "" {
			return id
		}
	}

	// some API versions nest the pointer as parent_category.id
	if nested, ok := data["parent_category"].(map[string]interface{}); ok {
		return cast.ToString(nested["id"])
	}

	return ""
}

// BuildHierarchy links a flat category list into an ordered forest. A
// category whose parent pointer is absent, self-referential or does not
// resolve within the batch becomes a root; an orphaned pointer never drops
// the node. Parent cycles (a -> b -> a) are broken by promoting the first
// cycle member in input order to a root, so the forest always holds every
// input node exactly once. Every node's level is its depth from a root.
func BuildHierarchy(flat []domain.Category) []*domain.Category {
	nodes := make(map[string]*domain.Category, len(flat))
	ordered := make([]*domain.Category, 0, len(flat))
	for i := range flat {
		node := flat[i]
		node.Subcategories = nil
		node.Level = 0
		nodes[node.ID] = &node
		ordered = append(ordered, &node)
	}

	var roots []*domain.Category
	for _, node := range ordered {
		parent, ok := nodes[node.ParentID]
		if node.ParentID == "" || node.ParentID == node.ID || !ok {
			roots = append(roots, node)
			continue
		}
		parent.Subcategories = append(parent.Subcategories, node)
	}

	// Cycle members end up attached to each other but reachable from no
	// root. Promote one per cycle, detaching it from its parent, and rescan
	// until the whole forest is reachable.
	visited := make(map[string]bool, len(ordered))
	for _, root := range roots {
		markReachable(root, visited)
	}
	for len(visited) < len(ordered) {
		promoted := false
		for _, node := range ordered {
			if visited[node.ID] {
				continue
			}
			detachFromParent(node, nodes)
			roots = append(roots, node)
			markReachable(node, visited)
			promoted = true
			break
		}
		if !promoted {
			break
		}
	}

	for _, root := range roots {
		assignLevels(root, 0)
	}

	sortForest(roots)

	return roots
}

func markReachable(node *domain.Category, visited map[string]bool) {
	if visited[node.ID] {
		return
	}
	visited[node.ID] = true
	for _, child := range node.Subcategories {
		markReachable(child, visited)
	}
}

func detachFromParent(node *domain.Category, nodes map[string]*domain.Category) {
	parent, ok := nodes[node.ParentID]
	if !ok {
		return
	}
	for i, child := range parent.Subcategories {
		if child.ID == node.ID {
			parent.Subcategories = append(parent.Subcategories[:i], parent.Subcategories[i+1:]...)
			return
		}
	}
}

func assignLevels(node *domain.Category, level int) {
	node.Level = level
	for _, child := range node.Subcategories {
		assignLevels(child, level+1)
	}
}

// sortForest orders every sibling list by SortOrder, depth-first.
func sortForest(siblings []*domain.Category) {
	sort.SliceStable(siblings, func(i, j int) bool {
		return siblings[i].SortOrder < siblings[j].SortOrder
	})
	for _, node := range siblings {
		sortForest(node.Subcategories)
	}
}
