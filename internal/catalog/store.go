// Copyright (c) 2026 Lotsawa. All rights reserved.

package catalog

import (
	"context"

	"github.com/lotsawa/canon/pkg/pagination"
)

// # Repository Interfaces

// CategoryRepository persists the category hierarchy.
type CategoryRepository interface {
	FindByID(context context.Context, id string) (*Category, error)
	FindBySlug(context context.Context, slug string) (*Category, error)
	List(context context.Context, filter CategoryFilter, params pagination.Params) ([]*Category, int, error)

	// All returns every category in creation order; the tree builder consumes it.
	All(context context.Context) ([]*Category, error)

	Create(context context.Context, category *Category) error

	// Update stores the mutable fields of category. A changed parent moves the
	// category's TextCount from the old ancestor chain to the new one.
	Update(context context.Context, category *Category) error

	// Delete removes a category, re-checking dependents inside the write.
	Delete(context context.Context, id string) error

	CountChildren(context context.Context, id string) (int, error)
	Search(context context.Context, term string, limit int) ([]*Category, int, error)
}

// TextRepository persists texts and everything they own.
type TextRepository interface {
	// FindByID returns the text with its owned records.
	FindByID(context context.Context, id string) (*Text, error)
	Exists(context context.Context, id string) (bool, error)
	List(context context.Context, filter TextFilter, params pagination.Params) ([]*Text, int, error)
	CountByCategory(context context.Context, categoryID string) (int, error)

	// Create stores the text with its owned records and increments the
	// TextCount of its category and every ancestor.
	Create(context context.Context, text *Text) error

	// Update stores the scalar fields of text and replaces the owned
	// collections flagged in changes. A changed category moves the count.
	Update(context context.Context, text *Text, changes TextChanges) error

	// Delete cascades to sections, collated content, metadata, edition links
	// and audio recordings, and decrements category counts.
	Delete(context context.Context, id string) error

	Search(context context.Context, term string, limit int) ([]*Text, int, error)

	CreateEditionLink(context context.Context, link *EditionLink) error
	DeleteEditionLink(context context.Context, textID, linkID string) error
	ListEditionLinks(context context.Context, textID string) ([]EditionLink, error)
}

// EditionRepository persists editions.
type EditionRepository interface {
	FindByID(context context.Context, id string) (*Edition, error)
	List(context context.Context, filter EditionFilter, params pagination.Params) ([]*Edition, int, error)
	Create(context context.Context, edition *Edition) error
	Update(context context.Context, edition *Edition) error

	// Delete removes the edition and every link to it.
	Delete(context context.Context, id string) error
}
