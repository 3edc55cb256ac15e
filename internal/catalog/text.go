// Copyright (c) 2026 Lotsawa. All rights reserved.

package catalog

import (
	"slices"
	"time"

	"github.com/lotsawa/canon/internal/platform/lang"
	"github.com/lotsawa/canon/pkg/uuid"
)

// Identifiers are the text's numbers in the standard catalogues.
type Identifiers struct {
	Derge  *string `json:"derge"  yaml:"derge"`
	Tohoku *string `json:"tohoku" yaml:"tohoku"`
	Peking *string `json:"peking" yaml:"peking"`
}

// Matches reports whether any identifier contains term.
func (ids Identifiers) Matches(term string) bool {
	for _, value := range []*string{ids.Derge, ids.Tohoku, ids.Peking} {
		if value != nil && lang.Contains(*value, term) {
			return true
		}
	}
	return false
}

// Text is one canonical work. List endpoints return texts without their owned
// records; FindByID hydrates Sections, Collated, Metadata and Editions.
type Text struct {
	ID              string           `json:"id"                 yaml:"id"`
	CategoryID      string           `json:"category_id"        yaml:"category_id"`
	Title           lang.Text        `json:"title"              yaml:"title"`
	CatalogIDs      Identifiers      `json:"catalog_ids"        yaml:"catalog_ids"`
	Turning         string           `json:"turning"            yaml:"turning"`
	Vehicle         string           `json:"vehicle"            yaml:"vehicle"`
	TranslationType string           `json:"translation_type"   yaml:"translation_type"`
	Sections        []Section        `json:"sections,omitempty" yaml:"sections"`
	Collated        *CollatedContent `json:"collated,omitempty" yaml:"collated"`
	Metadata        []MetadataEntry  `json:"metadata,omitempty" yaml:"metadata"`
	Editions        []EditionLink    `json:"editions,omitempty" yaml:"editions"`
	CreatedAt       time.Time        `json:"created_at"         yaml:"-"`
	UpdatedAt       time.Time        `json:"updated_at"         yaml:"-"`
}

// Section is an ordered part of a text (prologue, chapter, colophon...).
type Section struct {
	ID         string    `json:"id"          yaml:"id"`
	TextID     string    `json:"text_id"     yaml:"-"`
	Type       string    `json:"type"        yaml:"type"`
	Title      lang.Text `json:"title"       yaml:"title"`
	Content    lang.Text `json:"content"     yaml:"content"`
	OrderIndex int       `json:"order_index" yaml:"order_index"`
}

// CollatedContent is the full collated body of a text. A text has at most one.
type CollatedContent struct {
	ID      string    `json:"id"      yaml:"id"`
	TextID  string    `json:"text_id" yaml:"-"`
	Content lang.Text `json:"content" yaml:"content"`
}

// MetadataEntry is a free-form key/value fact about a text.
type MetadataEntry struct {
	ID         string `json:"id"          yaml:"id"`
	TextID     string `json:"text_id"     yaml:"-"`
	Key        string `json:"key"         yaml:"key"`
	Value      string `json:"value"       yaml:"value"`
	Group      string `json:"group"       yaml:"group"`
	Label      string `json:"label"       yaml:"label"`
	OrderIndex int    `json:"order_index" yaml:"order_index"`
}

// EditionLink places a text in an edition. (TextID, EditionID) is unique.
type EditionLink struct {
	ID        string `json:"id"         yaml:"id"`
	TextID    string `json:"text_id"    yaml:"-"`
	EditionID string `json:"edition_id" yaml:"edition_id"`
	Volume    string `json:"volume"     yaml:"volume"`
	PageRange string `json:"page_range" yaml:"page_range"`
	Available bool   `json:"available"  yaml:"available"`
}

// TextFilter narrows a text listing. Every set field must match; a list
// field matches when the text's value is any of its entries.
type TextFilter struct {
	CategoryID *string
	// Language keeps texts that carry a title in that language.
	Language        *lang.Code
	Turning         []string
	Vehicle         []string
	TranslationType []string
}

// Matches reports whether text passes the filter.
func (filter TextFilter) Matches(text *Text) bool {
	switch {
	case filter.CategoryID != nil && text.CategoryID != *filter.CategoryID:
		return false
	case filter.Language != nil && !text.Title.Has(*filter.Language):
		return false
	case !anyOf(filter.Turning, text.Turning):
		return false
	case !anyOf(filter.Vehicle, text.Vehicle):
		return false
	case !anyOf(filter.TranslationType, text.TranslationType):
		return false
	}
	return true
}

// anyOf reports whether value is in allowed. An empty list allows everything.
func anyOf(allowed []string, value string) bool {
	return len(allowed) == 0 || slices.Contains(allowed, value)
}

/*
TextPatch carries a partial text update.

Owned collections are replaced wholesale when their field is non-nil.
*/
type TextPatch struct {
	CategoryID      *string
	Title           *lang.Text
	CatalogIDs      *Identifiers
	Turning         *string
	Vehicle         *string
	TranslationType *string
	Sections        *[]Section
	Collated        *CollatedContent
	Metadata        *[]MetadataEntry
}

// Apply merges the scalar fields of the patch into text.
func (patch TextPatch) Apply(text *Text) {
	if patch.CategoryID != nil {
		text.CategoryID = *patch.CategoryID
	}
	if patch.Title != nil {
		text.Title = *patch.Title
	}
	if patch.CatalogIDs != nil {
		text.CatalogIDs = *patch.CatalogIDs
	}
	if patch.Turning != nil {
		text.Turning = *patch.Turning
	}
	if patch.Vehicle != nil {
		text.Vehicle = *patch.Vehicle
	}
	if patch.TranslationType != nil {
		text.TranslationType = *patch.TranslationType
	}
}

// TextChanges tells a repository which owned collections an update replaces.
type TextChanges struct {
	Sections bool
	Collated bool
	Metadata bool
}

// prepareOwned stamps the owning text id on every owned record and assigns
// ids to records that have none.
func prepareOwned(text *Text) {
	for i := range text.Sections {
		text.Sections[i].TextID = text.ID
		if text.Sections[i].ID == "" {
			text.Sections[i].ID = uuid.New()
		}
	}
	for i := range text.Metadata {
		text.Metadata[i].TextID = text.ID
		if text.Metadata[i].ID == "" {
			text.Metadata[i].ID = uuid.New()
		}
	}
	for i := range text.Editions {
		text.Editions[i].TextID = text.ID
		if text.Editions[i].ID == "" {
			text.Editions[i].ID = uuid.New()
		}
	}
	if text.Collated != nil {
		text.Collated.TextID = text.ID
		if text.Collated.ID == "" {
			text.Collated.ID = uuid.New()
		}
	}
}

// bare returns a copy of text without its owned records.
func bare(text *Text) *Text {
	copied := *text
	copied.Sections = nil
	copied.Collated = nil
	copied.Metadata = nil
	copied.Editions = nil
	return &copied
}
