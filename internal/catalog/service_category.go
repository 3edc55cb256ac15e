// Copyright (c) 2026 Lotsawa. All rights reserved.

package catalog

import (
	"context"
	"log/slog"

	"github.com/lotsawa/canon/internal/platform/lang"
	"github.com/lotsawa/canon/internal/platform/validate"
	"github.com/lotsawa/canon/pkg/pagination"
	"github.com/lotsawa/canon/pkg/pointer"
	"github.com/lotsawa/canon/pkg/slug"
	"github.com/lotsawa/canon/pkg/uuid"
)

// # Category Lookups

func (service *Service) ListCategories(context context.Context, filter CategoryFilter, params pagination.Params) ([]*Category, int, error) {
	return service.categories.List(context, filter, params)
}

func (service *Service) GetCategory(context context.Context, id string) (*Category, error) {
	return service.categories.FindByID(context, id)
}

func (service *Service) GetCategoryBySlug(context context.Context, slug string) (*Category, error) {
	return service.categories.FindBySlug(context, slug)
}

/*
Tree returns the navigation tree.

Description: With an empty rootSlug the whole forest is built; otherwise the
subtree below the category with that slug. Results are served from the tree
cache when present and written back after a rebuild, unless a write
invalidated the cache while the tree was being built.

Returns:
  - []*TreeNode: never nil
  - error: NOT_FOUND when rootSlug does not resolve
*/
func (service *Service) Tree(context context.Context, rootSlug string, activeOnly bool) ([]*TreeNode, error) {
	key := TreeCacheKey(rootSlug, activeOnly)
	if nodes, ok := service.cache.Get(context, key); ok {
		return nodes, nil
	}
	generation, cacheable := service.cache.Generation(context)

	var rootID *string
	if rootSlug != "" {
		root, err := service.categories.FindBySlug(context, rootSlug)
		if err != nil {
			return nil, err
		}
		rootID = &root.ID
	}

	categories, err := service.categories.All(context)
	if err != nil {
		return nil, err
	}

	nodes := BuildTree(categories, rootID, activeOnly)
	if cacheable {
		service.cache.Set(context, key, generation, nodes)
	}
	return nodes, nil
}

// # Category Management

/*
CreateCategory validates and stores a new category.

Description: When no slug is given one is derived from the English title,
falling back to the romanised Sanskrit title. The guard then checks slug
uniqueness and the parent reference.
*/
func (service *Service) CreateCategory(context context.Context, category *Category) error {
	if category.Slug == "" {
		category.Slug = deriveSlug(category.Title)
	}

	validator := &validate.Validator{}
	validator.AnyLanguage(FieldTitle, category.Title).
		Slug(FieldSlug, category.Slug).
		MaxLen(FieldSlug, category.Slug, slug.MaxLength)
	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.guard.CheckCreateCategory(context, category.Slug, category.ParentID); err != nil {
		return err
	}

	category.ID = uuid.New()
	if err := service.categories.Create(context, category); err != nil {
		return err
	}

	service.cache.Invalidate(context)
	service.logger.Info("category_created",
		slog.String("category_id", category.ID),
		slog.String("slug", category.Slug),
	)
	return nil
}

func deriveSlug(title lang.Text) string {
	if derived := slug.From(pointer.Val(title.English)); derived != "" {
		return derived
	}
	return slug.From(pointer.Val(title.Sanskrit))
}

// UpdateCategory applies a partial update. Re-parenting moves the category's
// text count to the new ancestor chain.
func (service *Service) UpdateCategory(context context.Context, id string, patch CategoryPatch) (*Category, error) {
	validator := &validate.Validator{}
	if patch.Title != nil {
		validator.AnyLanguage(FieldTitle, *patch.Title)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	current, err := service.categories.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if err := service.guard.CheckUpdateCategory(context, current, patch); err != nil {
		return nil, err
	}

	patch.Apply(current)
	if err := service.categories.Update(context, current); err != nil {
		return nil, err
	}

	service.cache.Invalidate(context)
	service.logger.Info("category_updated", slog.String("category_id", id))
	return current, nil
}

// DeleteCategory removes a category that has neither children nor texts.
func (service *Service) DeleteCategory(context context.Context, id string) error {
	if err := service.guard.CheckDeleteCategory(context, id); err != nil {
		return err
	}

	if err := service.categories.Delete(context, id); err != nil {
		return err
	}

	service.cache.Invalidate(context)
	service.logger.Warn("category_deleted", slog.String("category_id", id))
	return nil
}
