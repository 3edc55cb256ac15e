// Copyright (c) 2026 Lotsawa. All rights reserved.

package catalog

import (
	"net/http"

	"github.com/lotsawa/canon/internal/platform/lang"
	requestutil "github.com/lotsawa/canon/internal/platform/request"
	"github.com/lotsawa/canon/internal/platform/respond"
	"github.com/lotsawa/canon/pkg/convert"
	"github.com/lotsawa/canon/pkg/pagination"
)

// # Edition Endpoints

func (handler *Handler) listEditions(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	filter := EditionFilter{ActiveOnly: convert.ToBoolD(requestutil.Query(request, "active"), true)}

	editions, total, err := handler.service.ListEditions(request.Context(), filter, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.List(writer, "editions", editions, pagination.NewMeta(params, total))
}

func (handler *Handler) getEdition(writer http.ResponseWriter, request *http.Request) {
	edition, err := handler.service.GetEdition(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, edition)
}

type createEditionRequest struct {
	Name        lang.Text `json:"name"`
	Description lang.Text `json:"description"`
	Year        *int      `json:"year"`
	Location    string    `json:"location"`
	VolumeCount int       `json:"volume_count"`
	TextCount   int       `json:"text_count"`
	IsActive    *bool     `json:"is_active"`
}

func (handler *Handler) createEdition(writer http.ResponseWriter, request *http.Request) {
	var input createEditionRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	edition := &Edition{
		Name:        input.Name,
		Description: input.Description,
		Year:        input.Year,
		Location:    input.Location,
		VolumeCount: input.VolumeCount,
		TextCount:   input.TextCount,
		IsActive:    input.IsActive == nil || *input.IsActive,
	}

	if err := handler.service.CreateEdition(request.Context(), edition); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, edition)
}

type updateEditionRequest struct {
	Name        *lang.Text `json:"name"`
	Description *lang.Text `json:"description"`
	Year        *int       `json:"year"`
	Location    *string    `json:"location"`
	VolumeCount *int       `json:"volume_count"`
	TextCount   *int       `json:"text_count"`
	IsActive    *bool      `json:"is_active"`
}

func (handler *Handler) updateEdition(writer http.ResponseWriter, request *http.Request) {
	var input updateEditionRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	patch := EditionPatch(input)

	edition, err := handler.service.UpdateEdition(request.Context(), requestutil.Param(request, "id"), patch)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, edition)
}

func (handler *Handler) deleteEdition(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteEdition(request.Context(), requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
