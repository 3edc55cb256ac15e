// Copyright (c) 2026 Lotsawa. All rights reserved.

package catalog

import (
	"time"

	"github.com/lotsawa/canon/internal/platform/lang"
)

// Category is a node of the canon hierarchy. ParentID is nil for top-level nodes.
type Category struct {
	ID          string    `json:"id"           yaml:"id"`
	Slug        string    `json:"slug"         yaml:"slug"`
	ParentID    *string   `json:"parent_id"    yaml:"parent_id"`
	Title       lang.Text `json:"title"        yaml:"title"`
	Description lang.Text `json:"description"  yaml:"description"`
	OrderIndex  int       `json:"order_index"  yaml:"order_index"`
	IsActive    bool      `json:"is_active"    yaml:"is_active"`
	TextCount   int       `json:"text_count"   yaml:"-"`
	CreatedAt   time.Time `json:"created_at"   yaml:"-"`
	UpdatedAt   time.Time `json:"updated_at"   yaml:"-"`
}

// CategoryFilter narrows a flat category listing.
type CategoryFilter struct {
	// ParentID selects the direct children of a category.
	ParentID *string
	// TopLevel selects categories without a parent. Ignored when ParentID is set.
	TopLevel   bool
	ActiveOnly bool
}

// Matches reports whether category passes the filter.
func (filter CategoryFilter) Matches(category *Category) bool {
	if filter.ActiveOnly && !category.IsActive {
		return false
	}
	if filter.ParentID != nil {
		return category.ParentID != nil && *category.ParentID == *filter.ParentID
	}
	if filter.TopLevel {
		return category.ParentID == nil
	}
	return true
}

/*
CategoryPatch carries a partial category update.

Nil fields are left untouched. SetParent distinguishes "move to the top level"
(SetParent with a nil ParentID) from "leave the parent alone".
*/
type CategoryPatch struct {
	Slug        *string
	SetParent   bool
	ParentID    *string
	Title       *lang.Text
	Description *lang.Text
	OrderIndex  *int
	IsActive    *bool
}

// Apply merges the patch into category.
func (patch CategoryPatch) Apply(category *Category) {
	if patch.SetParent {
		category.ParentID = patch.ParentID
	}
	if patch.Title != nil {
		category.Title = *patch.Title
	}
	if patch.Description != nil {
		category.Description = *patch.Description
	}
	if patch.OrderIndex != nil {
		category.OrderIndex = *patch.OrderIndex
	}
	if patch.IsActive != nil {
		category.IsActive = *patch.IsActive
	}
}
