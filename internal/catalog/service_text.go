// Copyright (c) 2026 Lotsawa. All rights reserved.

package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lotsawa/canon/internal/platform/apperr"
	"github.com/lotsawa/canon/internal/platform/lang"
	"github.com/lotsawa/canon/internal/platform/validate"
	"github.com/lotsawa/canon/pkg/pagination"
	"github.com/lotsawa/canon/pkg/uuid"
)

// # Text Lookups

func (service *Service) ListTexts(context context.Context, filter TextFilter, params pagination.Params) ([]*Text, int, error) {
	return service.texts.List(context, filter, params)
}

// GetText returns the text with its sections, collated content, metadata and edition links.
func (service *Service) GetText(context context.Context, id string) (*Text, error) {
	return service.texts.FindByID(context, id)
}

// # Text Management

/*
CreateText validates and stores a text with its owned records.

Description: Tibetan and English titles are required. The category must
exist, and so must every edition referenced by an inline edition link.
Creating the text increments the text count of its category chain.
*/
func (service *Service) CreateText(context context.Context, text *Text) error {
	validator := &validate.Validator{}
	validator.Required(FieldCategoryID, text.CategoryID).
		Languages(FieldTitle, text.Title, lang.Tibetan, lang.English)
	validateOwned(validator, text.Sections, text.Metadata)
	for i, link := range text.Editions {
		validator.Required(fmt.Sprintf("editions[%d].%s", i, FieldEditionID), link.EditionID)
	}
	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.guard.CheckCreateText(context, text.CategoryID); err != nil {
		return err
	}
	for _, link := range text.Editions {
		if err := service.requireEdition(context, link.EditionID); err != nil {
			return err
		}
	}

	text.ID = uuid.New()
	clearOwnedIDs(text.Sections, text.Metadata, text.Collated)
	for i := range text.Editions {
		text.Editions[i].ID = ""
	}
	if err := service.texts.Create(context, text); err != nil {
		return err
	}

	service.cache.Invalidate(context)
	service.logger.Info("text_created",
		slog.String("text_id", text.ID),
		slog.String("category_id", text.CategoryID),
		slog.String("title", text.Title.Display()),
	)
	return nil
}

func validateOwned(validator *validate.Validator, sections []Section, metadata []MetadataEntry) {
	for i, section := range sections {
		validator.MaxLen(fmt.Sprintf("%s[%d].type", FieldSections, i), section.Type, 50)
	}
	for i, entry := range metadata {
		validator.Required(fmt.Sprintf("%s[%d].key", FieldMetadata, i), entry.Key)
	}
}

// clearOwnedIDs drops client-supplied ids so the store assigns fresh ones.
func clearOwnedIDs(sections []Section, metadata []MetadataEntry, collated *CollatedContent) {
	for i := range sections {
		sections[i].ID = ""
	}
	for i := range metadata {
		metadata[i].ID = ""
	}
	if collated != nil {
		collated.ID = ""
	}
}

func (service *Service) requireEdition(context context.Context, id string) error {
	if _, err := service.editions.FindByID(context, id); err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			return apperr.NotFound(resourceEdition,
				apperr.FieldError{Field: FieldEditionID, Message: "Edition does not exist"})
		}
		return err
	}
	return nil
}

/*
UpdateText applies a partial update.

Description: Moving the text to another category runs the same category
check as a create and moves one unit of text count between the two chains.
Sections, collated content and metadata are replaced only when present in
the patch. Edition links are managed through their own operations.
*/
func (service *Service) UpdateText(context context.Context, id string, patch TextPatch) (*Text, error) {
	validator := &validate.Validator{}
	if patch.Title != nil {
		validator.Languages(FieldTitle, *patch.Title, lang.Tibetan, lang.English)
	}
	var sections []Section
	var metadata []MetadataEntry
	if patch.Sections != nil {
		sections = *patch.Sections
	}
	if patch.Metadata != nil {
		metadata = *patch.Metadata
	}
	validateOwned(validator, sections, metadata)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	current, err := service.texts.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	moved := patch.CategoryID != nil && *patch.CategoryID != current.CategoryID
	if moved {
		if err := service.guard.CheckCreateText(context, *patch.CategoryID); err != nil {
			return nil, err
		}
	}

	patch.Apply(current)
	changes := TextChanges{
		Sections: patch.Sections != nil,
		Collated: patch.Collated != nil,
		Metadata: patch.Metadata != nil,
	}
	if changes.Sections {
		current.Sections = *patch.Sections
	}
	if changes.Collated {
		current.Collated = patch.Collated
	}
	if changes.Metadata {
		current.Metadata = *patch.Metadata
	}
	clearOwnedIDs(sections, metadata, patch.Collated)

	if err := service.texts.Update(context, current, changes); err != nil {
		return nil, err
	}

	if moved {
		service.cache.Invalidate(context)
	}
	service.logger.Info("text_updated", slog.String("text_id", id), slog.Bool("moved", moved))
	return current, nil
}

// DeleteText removes a text together with everything it owns.
func (service *Service) DeleteText(context context.Context, id string) error {
	if err := service.texts.Delete(context, id); err != nil {
		return err
	}

	service.cache.Invalidate(context)
	service.logger.Warn("text_deleted", slog.String("text_id", id))
	return nil
}

// # Edition Links

func (service *Service) CreateEditionLink(context context.Context, link *EditionLink) error {
	validator := &validate.Validator{}
	validator.Required(FieldEditionID, link.EditionID)
	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.guard.CheckCreateEditionLink(context, link); err != nil {
		return err
	}

	link.ID = uuid.New()
	if err := service.texts.CreateEditionLink(context, link); err != nil {
		return err
	}

	service.logger.Info("edition_link_created",
		slog.String("text_id", link.TextID),
		slog.String("edition_id", link.EditionID),
	)
	return nil
}

func (service *Service) DeleteEditionLink(context context.Context, textID, linkID string) error {
	if err := service.texts.DeleteEditionLink(context, textID, linkID); err != nil {
		return err
	}

	service.logger.Warn("edition_link_deleted", slog.String("text_id", textID), slog.String("link_id", linkID))
	return nil
}

// ListEditionLinks returns the editions a text appears in.
func (service *Service) ListEditionLinks(context context.Context, textID string) ([]EditionLink, error) {
	exists, err := service.texts.Exists(context, textID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound(resourceText)
	}
	return service.texts.ListEditionLinks(context, textID)
}
