// Copyright (c) 2026 Lotsawa. All rights reserved.

/*
Package catalog owns the hierarchical canon: categories, texts and the
historical editions texts are found in.

# Invariants

  - Category slugs are globally unique and immutable once created.
  - The parent relation is acyclic; re-parenting under a descendant is rejected.
  - Category.TextCount counts texts in the category and all of its descendants.
  - A category with children or texts cannot be deleted.
  - Deleting a text removes everything it owns in one logical write.
*/
package catalog

// # Field Names
//
// Field names double as the JSON keys used in validation details.
const (
	FieldID              = "id"
	FieldSlug            = "slug"
	FieldParentID        = "parent_id"
	FieldTitle           = "title"
	FieldDescription     = "description"
	FieldOrderIndex      = "order_index"
	FieldCategoryID      = "category_id"
	FieldTurning         = "turning"
	FieldVehicle         = "vehicle"
	FieldTranslationType = "translation_type"
	FieldSections        = "sections"
	FieldMetadata        = "metadata"
	FieldEditionID       = "edition_id"
	FieldName            = "name"
	FieldYear            = "year"
	FieldVolumeCount     = "volume_count"
	FieldTextCount       = "text_count"
	FieldLanguage        = "lang"
)

// Blocking reasons reported by a refused category delete, in report order.
const (
	ReasonChildren = "children"
	ReasonTexts    = "texts"
)

// Resource names used in not-found and conflict messages.
const (
	resourceCategory    = "Category"
	resourceText        = "Text"
	resourceEdition     = "Edition"
	resourceEditionLink = "Edition link"
)
