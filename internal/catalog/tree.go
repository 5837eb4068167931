// Package catalog holds the store category tree logic.
package catalog

import (
	"sort"

	"github.com/bazaar-dev/bazaar/internal/models"
)

// Node is a category with its children, sorted by name.
type Node struct {
	ID       uint    `json:"id"`
	Name     string  `json:"name"`
	Slug     string  `json:"slug"`
	IsActive bool    `json:"is_active"`
	Children []*Node `json:"children"`
}

// BuildTree arranges a flat category list into root nodes. Categories whose
// parent is not in the list are treated as roots.
func BuildTree(categories []models.Category) []*Node {
	nodes := make(map[uint]*Node, len(categories))

	for _, c := range categories {
		nodes[c.ID] = &Node{ID: c.ID, Name: c.Name, Slug: c.Slug, IsActive: c.IsActive, Children: []*Node{}}
	}

	roots := []*Node{}

	for _, c := range categories {
		node := nodes[c.ID]

		if c.ParentID != nil {
			if parent, ok := nodes[*c.ParentID]; ok && parent != node {
				parent.Children = append(parent.Children, node)
				continue
			}
		}

		roots = append(roots, node)
	}

	sortNodes(roots)

	return roots
}

func sortNodes(nodes []*Node) {
	sort.SliceStable(nodes, func(i, j int) bool {
		return nodes[i].Name < nodes[j].Name
	})

	for _, n := range nodes {
		sortNodes(n.Children)
	}
}

// WouldCycle reports whether making parent the parent of id would put id
// among its own ancestors. parents maps each category to its current parent.
func WouldCycle(parents map[uint]*uint, id, parent uint) bool {
	seen := map[uint]bool{}

	for cur := parent; ; {
		if cur == id {
			return true
		}

		if seen[cur] {
			// Existing data already loops; refuse to extend it.
			return true
		}
		seen[cur] = true

		next, ok := parents[cur]
		if !ok || next == nil {
			return false
		}
		cur = *next
	}
}
