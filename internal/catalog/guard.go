// Copyright (c) 2026 Lotsawa. All rights reserved.

package catalog

import (
	"context"
	"fmt"

	"github.com/lotsawa/canon/internal/platform/apperr"
	"github.com/lotsawa/canon/pkg/pointer"
)

/*
Guard enforces referential integrity before the catalog is mutated.

Every check only reads; a failed check leaves the store untouched. The
repositories repeat the dependent checks of a delete inside their own write so
a concurrent writer cannot slip a child in between check and act.
*/
type Guard struct {
	categories CategoryRepository
	texts      TextRepository
	editions   EditionRepository
}

// NewGuard constructs a [Guard] over the catalog repositories.
func NewGuard(categories CategoryRepository, texts TextRepository, editions EditionRepository) *Guard {
	return &Guard{categories: categories, texts: texts, editions: editions}
}

// # Categories

/*
CheckCreateCategory verifies that slug is free and parentID resolves.

Returns:
  - DUPLICATE_RESOURCE with a "slug" detail when the slug is taken
  - NOT_FOUND with a "parent_id" detail when the parent does not exist
*/
func (guard *Guard) CheckCreateCategory(context context.Context, slug string, parentID *string) error {
	_, err := guard.categories.FindBySlug(context, slug)
	switch {
	case err == nil:
		return apperr.Duplicate("Category slug already exists",
			apperr.FieldError{Field: FieldSlug, Message: fmt.Sprintf("Slug %q is already in use", slug)})
	case !apperr.HasCode(err, apperr.CodeNotFound):
		return err
	}

	if parentID != nil {
		return guard.requireCategory(context, *parentID, FieldParentID)
	}
	return nil
}

/*
CheckUpdateCategory verifies a patch against the stored category.

Description: Slugs are immutable. A new parent must exist and must not be the
category itself or one of its descendants; the ancestor walk is bounded by the
number of categories so corrupt data cannot loop forever.
*/
func (guard *Guard) CheckUpdateCategory(context context.Context, current *Category, patch CategoryPatch) error {
	if patch.Slug != nil && *patch.Slug != current.Slug {
		return apperr.ValidationError("Validation failed",
			apperr.FieldError{Field: FieldSlug, Message: "Slug cannot be changed"})
	}

	if !patch.SetParent || patch.ParentID == nil || pointer.Equal(current.ParentID, patch.ParentID) {
		return nil
	}

	newParent := *patch.ParentID
	if newParent == current.ID {
		return apperr.ValidationError("Validation failed",
			apperr.FieldError{Field: FieldParentID, Message: "A category cannot be its own parent"})
	}

	all, err := guard.categories.All(context)
	if err != nil {
		return err
	}

	parents := make(map[string]*string, len(all))
	for _, category := range all {
		parents[category.ID] = category.ParentID
	}

	if _, ok := parents[newParent]; !ok {
		return apperr.NotFound(resourceCategory,
			apperr.FieldError{Field: FieldParentID, Message: "Parent category does not exist"})
	}

	cursor := &newParent
	for steps := 0; cursor != nil && steps <= len(all); steps++ {
		if *cursor == current.ID {
			return apperr.ValidationError("Validation failed",
				apperr.FieldError{Field: FieldParentID, Message: "A category cannot be moved under its own descendant"})
		}
		cursor = parents[*cursor]
	}
	return nil
}

/*
CheckDeleteCategory refuses to delete a category that still has dependents.

Description: Children and texts are both counted so the error lists every
blocking reason, children first.

Returns:
  - NOT_FOUND when the category does not exist
  - INTEGRITY_VIOLATION (409) with "children" and/or "texts" details
*/
func (guard *Guard) CheckDeleteCategory(context context.Context, id string) error {
	if _, err := guard.categories.FindByID(context, id); err != nil {
		return err
	}

	children, err := guard.categories.CountChildren(context, id)
	if err != nil {
		return err
	}

	texts, err := guard.texts.CountByCategory(context, id)
	if err != nil {
		return err
	}

	return DeleteBlocked(children, texts)
}

// DeleteBlocked builds the integrity error for a category with dependents, or
// returns nil when there are none.
func DeleteBlocked(children, texts int) error {
	var details []apperr.FieldError
	if children > 0 {
		details = append(details, apperr.FieldError{
			Field:   ReasonChildren,
			Message: fmt.Sprintf("Category has %d child categories", children),
		})
	}
	if texts > 0 {
		details = append(details, apperr.FieldError{
			Field:   ReasonTexts,
			Message: fmt.Sprintf("Category has %d texts", texts),
		})
	}

	if len(details) == 0 {
		return nil
	}
	return apperr.Integrity("Cannot delete category: "+details[0].Message, details...)
}

// # Texts

// CheckCreateText verifies that the target category exists. It also guards
// moving a text to another category.
func (guard *Guard) CheckCreateText(context context.Context, categoryID string) error {
	return guard.requireCategory(context, categoryID, FieldCategoryID)
}

/*
CheckCreateEditionLink verifies that the text and edition exist and are not
already linked.
*/
func (guard *Guard) CheckCreateEditionLink(context context.Context, link *EditionLink) error {
	exists, err := guard.texts.Exists(context, link.TextID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound(resourceText)
	}

	if _, err := guard.editions.FindByID(context, link.EditionID); err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			return apperr.NotFound(resourceEdition,
				apperr.FieldError{Field: FieldEditionID, Message: "Edition does not exist"})
		}
		return err
	}

	links, err := guard.texts.ListEditionLinks(context, link.TextID)
	if err != nil {
		return err
	}
	for _, existing := range links {
		if existing.EditionID == link.EditionID {
			return duplicateLink()
		}
	}
	return nil
}

func duplicateLink() error {
	return apperr.Duplicate("Text is already linked to this edition",
		apperr.FieldError{Field: FieldEditionID, Message: "Link already exists"})
}

func (guard *Guard) requireCategory(context context.Context, id, field string) error {
	if _, err := guard.categories.FindByID(context, id); err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			return apperr.NotFound(resourceCategory,
				apperr.FieldError{Field: field, Message: "Category does not exist"})
		}
		return err
	}
	return nil
}
