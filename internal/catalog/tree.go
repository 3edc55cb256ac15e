// Copyright (c) 2026 Lotsawa. All rights reserved.

package catalog

import (
	"sort"

	"github.com/lotsawa/canon/internal/platform/lang"
)

// TreeNode is the navigation view of a category. Children is never nil.
type TreeNode struct {
	ID          string      `json:"id"`
	Slug        string      `json:"slug"`
	Title       lang.Text   `json:"title"`
	Description lang.Text   `json:"description"`
	Count       int         `json:"count"`
	OrderIndex  int         `json:"order_index"`
	Children    []*TreeNode `json:"children"`
}

/*
BuildTree assembles the forest rooted at rootID from a flat category list.

Description: Categories are grouped by parent once, then each level is
stably sorted by OrderIndex (input order breaks ties) and expanded
recursively. A nil rootID yields the top-level forest. When activeOnly is set,
inactive categories are skipped together with their whole subtree.

The parent relation is assumed acyclic; writes enforce that.

Parameters:
  - categories: []*Category (flat, any order)
  - rootID: *string (nil for top level)
  - activeOnly: bool

Returns:
  - []*TreeNode: never nil
*/
func BuildTree(categories []*Category, rootID *string, activeOnly bool) []*TreeNode {
	byParent := make(map[string][]*Category, len(categories))
	var topLevel []*Category

	for _, category := range categories {
		if activeOnly && !category.IsActive {
			continue
		}
		if category.ParentID == nil {
			topLevel = append(topLevel, category)
			continue
		}
		byParent[*category.ParentID] = append(byParent[*category.ParentID], category)
	}

	for _, siblings := range byParent {
		sortByOrder(siblings)
	}
	sortByOrder(topLevel)

	if rootID == nil {
		return expand(topLevel, byParent)
	}
	return expand(byParent[*rootID], byParent)
}

func expand(level []*Category, byParent map[string][]*Category) []*TreeNode {
	nodes := make([]*TreeNode, 0, len(level))
	for _, category := range level {
		nodes = append(nodes, &TreeNode{
			ID:          category.ID,
			Slug:        category.Slug,
			Title:       category.Title,
			Description: category.Description,
			Count:       category.TextCount,
			OrderIndex:  category.OrderIndex,
			Children:    expand(byParent[category.ID], byParent),
		})
	}
	return nodes
}

func sortByOrder(categories []*Category) {
	sort.SliceStable(categories, func(i, j int) bool {
		return categories[i].OrderIndex < categories[j].OrderIndex
	})
}
