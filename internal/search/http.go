// Copyright (c) 2026 Lotsawa. All rights reserved.

package search

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/lotsawa/canon/internal/platform/request"
	"github.com/lotsawa/canon/internal/platform/respond"
	"github.com/lotsawa/canon/pkg/pagination"
)

// Handler implements the HTTP layer for search.
type Handler struct {
	aggregator *Aggregator
}

// NewHandler constructs a search [Handler].
func NewHandler(aggregator *Aggregator) *Handler {
	return &Handler{aggregator: aggregator}
}

// Routes returns a [chi.Router] with the search endpoint, meant to be mounted at the API root.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/search", handler.search)
	return router
}

/*
GET /api/v1/search.

Request:
  - q: string (blank returns empty groups)
  - type: content | taxonomy | news | timeline | all (default all)
  - page, limit: int (envelope metadata only)

Response:
  - 200: Envelope
  - 400: unknown type
*/
func (handler *Handler) search(writer http.ResponseWriter, request *http.Request) {
	query := Query{
		Term: requestutil.Query(request, "q"),
		Type: requestutil.Query(request, FieldType),
		Page: pagination.FromRequest(request),
	}

	envelope, err := handler.aggregator.Search(request.Context(), query)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, envelope)
}
