// Copyright (c) 2026 Lotsawa. All rights reserved.

package catalog

import (
	"net/http"

	"github.com/lotsawa/canon/internal/platform/apperr"
	"github.com/lotsawa/canon/internal/platform/lang"
	requestutil "github.com/lotsawa/canon/internal/platform/request"
	"github.com/lotsawa/canon/internal/platform/respond"
	"github.com/lotsawa/canon/pkg/pagination"
	"github.com/lotsawa/canon/pkg/query"
)

// # Text Endpoints

/*
GET /api/v1/texts.

Request:
  - category_id: string (direct texts of one category)
  - lang: string (bo, en, sa, zh or the language name; texts titled in it)
  - turning, vehicle, translation_type: string (comma-separated, any exact match)
  - page, limit: int

Response:
  - 200: {texts: []Text, pagination}
  - 400: unknown language
*/
func (handler *Handler) listTexts(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	filter := TextFilter{
		CategoryID:      requestutil.OptionalQuery(request, FieldCategoryID),
		Turning:         query.StringSlice(requestutil.Query(request, FieldTurning)),
		Vehicle:         query.StringSlice(requestutil.Query(request, FieldVehicle)),
		TranslationType: query.StringSlice(requestutil.Query(request, FieldTranslationType)),
	}

	if raw := requestutil.Query(request, FieldLanguage); raw != "" {
		code, ok := lang.ParseCode(raw)
		if !ok {
			respond.Error(writer, request, apperr.ValidationError("Validation failed",
				apperr.FieldError{Field: FieldLanguage, Message: "Must be one of: bo, en, sa, zh"}))
			return
		}
		filter.Language = &code
	}

	texts, total, err := handler.service.ListTexts(request.Context(), filter, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.List(writer, "texts", texts, pagination.NewMeta(params, total))
}

func (handler *Handler) getText(writer http.ResponseWriter, request *http.Request) {
	text, err := handler.service.GetText(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, text)
}

type createTextRequest struct {
	CategoryID      string           `json:"category_id"`
	Title           lang.Text        `json:"title"`
	CatalogIDs      Identifiers      `json:"catalog_ids"`
	Turning         string           `json:"turning"`
	Vehicle         string           `json:"vehicle"`
	TranslationType string           `json:"translation_type"`
	Sections        []Section        `json:"sections"`
	Collated        *CollatedContent `json:"collated"`
	Metadata        []MetadataEntry  `json:"metadata"`
	Editions        []EditionLink    `json:"editions"`
}

/*
POST /api/v1/texts.

Request:
  - Text fields; sections, collated, metadata and editions are optional and
    stored with the text.

Response:
  - 201: Text
  - 400: missing Tibetan or English title
  - 404: unknown category or edition
*/
func (handler *Handler) createText(writer http.ResponseWriter, request *http.Request) {
	var input createTextRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	text := &Text{
		CategoryID:      input.CategoryID,
		Title:           input.Title,
		CatalogIDs:      input.CatalogIDs,
		Turning:         input.Turning,
		Vehicle:         input.Vehicle,
		TranslationType: input.TranslationType,
		Sections:        input.Sections,
		Collated:        input.Collated,
		Metadata:        input.Metadata,
		Editions:        input.Editions,
	}

	if err := handler.service.CreateText(request.Context(), text); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, text)
}

type updateTextRequest struct {
	CategoryID      *string          `json:"category_id"`
	Title           *lang.Text       `json:"title"`
	CatalogIDs      *Identifiers     `json:"catalog_ids"`
	Turning         *string          `json:"turning"`
	Vehicle         *string          `json:"vehicle"`
	TranslationType *string          `json:"translation_type"`
	Sections        *[]Section       `json:"sections"`
	Collated        *CollatedContent `json:"collated"`
	Metadata        *[]MetadataEntry `json:"metadata"`
}

func (handler *Handler) updateText(writer http.ResponseWriter, request *http.Request) {
	var input updateTextRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	patch := TextPatch{
		CategoryID:      input.CategoryID,
		Title:           input.Title,
		CatalogIDs:      input.CatalogIDs,
		Turning:         input.Turning,
		Vehicle:         input.Vehicle,
		TranslationType: input.TranslationType,
		Sections:        input.Sections,
		Collated:        input.Collated,
		Metadata:        input.Metadata,
	}

	text, err := handler.service.UpdateText(request.Context(), requestutil.Param(request, "id"), patch)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, text)
}

func (handler *Handler) deleteText(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteText(request.Context(), requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Edition Link Endpoints

func (handler *Handler) listEditionLinks(writer http.ResponseWriter, request *http.Request) {
	links, err := handler.service.ListEditionLinks(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, links)
}

type createEditionLinkRequest struct {
	EditionID string `json:"edition_id"`
	Volume    string `json:"volume"`
	PageRange string `json:"page_range"`
	Available bool   `json:"available"`
}

/*
POST /api/v1/texts/{id}/editions.

Response:
  - 201: EditionLink
  - 404: unknown text or edition
  - 409: the text is already linked to the edition
*/
func (handler *Handler) createEditionLink(writer http.ResponseWriter, request *http.Request) {
	var input createEditionLinkRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	link := &EditionLink{
		TextID:    requestutil.Param(request, "id"),
		EditionID: input.EditionID,
		Volume:    input.Volume,
		PageRange: input.PageRange,
		Available: input.Available,
	}

	if err := handler.service.CreateEditionLink(request.Context(), link); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, link)
}

func (handler *Handler) deleteEditionLink(writer http.ResponseWriter, request *http.Request) {
	err := handler.service.DeleteEditionLink(request.Context(),
		requestutil.Param(request, "id"),
		requestutil.Param(request, "linkID"),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
